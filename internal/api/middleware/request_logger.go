package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	HeaderRequestID = "X-Request-Id"
	CtxRequestID    = "request_id"
)

// healthRoutes are polled by load balancers; successful hits are logged at debug.
var healthRoutes = map[string]bool{"/ping": true, "/healthz": true}

// RequestLogger tags each request with an id and logs one line per request.
// Failures carry the errors handlers attached with c.Error.
func RequestLogger(l *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		reqID := c.GetHeader(HeaderRequestID)
		if reqID == "" || len(reqID) > 64 {
			reqID = uuid.NewString()
		}
		c.Header(HeaderRequestID, reqID)
		c.Set(CtxRequestID, reqID)

		c.Next()

		status := c.Writer.Status()
		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}

		fields := logrus.Fields{
			"request_id": reqID,
			"method":     c.Request.Method,
			"route":      route,
			"resource":   resourceOf(route),
			"status":     status,
			"bytes":      c.Writer.Size(),
			"latency_ms": time.Since(start).Milliseconds(),
			"ip":         c.ClientIP(),
		}
		if uid, ok := c.Get(CtxUserID); ok {
			fields["user_id"] = uid
		}
		entry := l.WithFields(fields)
		if len(c.Errors) > 0 {
			entry = entry.WithField("errors", c.Errors.String())
		}

		switch {
		case status >= 500:
			entry.Error("request")
		case status >= 400:
			entry.Warn("request")
		case healthRoutes[route]:
			entry.Debug("request")
		default:
			entry.Info("request")
		}
	}
}

// resourceOf returns the first path segment, e.g. "about" for /about/:id.
func resourceOf(route string) string {
	route = strings.TrimPrefix(route, "/")
	if i := strings.IndexByte(route, '/'); i >= 0 {
		return route[:i]
	}
	return route
}

package middleware

import (
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/folio/internal/auth"
)

// Dashboard page paths used by PageGuard.
const (
	LoginPage     = "/admin/login"
	RegisterPage  = "/admin/register"
	DashboardPage = "/admin/dashboard"
)

// assetExt lists the static file types the login and register pages load
// before a token exists.
var assetExt = map[string]bool{
	".css": true, ".js": true, ".map": true, ".ico": true,
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".svg": true, ".webp": true,
	".woff": true, ".woff2": true, ".ttf": true,
}

// PageGuard applies the dashboard navigation rule to page requests under
// /admin: without a valid token every page except login and register
// redirects to login, and with one login and register redirect to the
// dashboard. Static assets pass through untouched.
func PageGuard(tokens *auth.Tokens) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := strings.TrimSuffix(c.Request.URL.Path, "/")
		if p == "" {
			p = "/"
		}
		if assetExt[strings.ToLower(path.Ext(p))] {
			c.Next()
			return
		}
		public := p == LoginPage || p == RegisterPage

		authed := false
		if raw := BearerToken(c); raw != "" {
			if _, err := tokens.Parse(raw); err == nil {
				authed = true
			}
		}

		switch {
		case !authed && !public:
			c.Redirect(http.StatusFound, LoginPage)
			c.Abort()
		case authed && public:
			c.Redirect(http.StatusFound, DashboardPage)
			c.Abort()
		default:
			c.Next()
		}
	}
}

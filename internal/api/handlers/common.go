package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/folio/internal/utils"
)

// Envelope wraps every successful response.
type Envelope struct {
	StatusCode int `json:"statusCode"`
	Data       any `json:"data"`
}

type APIError struct {
	Error string     `json:"error"`
	Code  utils.Code `json:"code"`
}

const maxPageLimit = 100

func respond(c *gin.Context, status int, data any) {
	c.JSON(status, Envelope{StatusCode: status, Data: data})
}

func writeError(c *gin.Context, err error) {
	status := utils.HTTPStatus(err)
	_ = c.Error(err)

	var ae *utils.AppError
	if errors.As(err, &ae) && ae.Code != utils.CodeInternal {
		c.JSON(status, APIError{Error: ae.Message, Code: ae.Code})
		return
	}

	code := utils.CodeInternal
	switch status {
	case http.StatusNotFound:
		code = utils.CodeNotFound
	case http.StatusServiceUnavailable:
		code = utils.CodeUnavailable
	}
	c.JSON(status, APIError{Error: http.StatusText(status), Code: code})
}

func bindJSON(c *gin.Context, op string, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "invalid request body: "+err.Error(), err))
		return false
	}
	return true
}

// pageQuery reports whether page or limit was given and parses them.
func pageQuery(c *gin.Context, op string) (page, limit int64, paged bool, ok bool) {
	ps, ls := c.Query("page"), c.Query("limit")
	if ps == "" && ls == "" {
		return 0, 0, false, true
	}

	page, limit = 1, 10
	var err error
	if ps != "" {
		if page, err = strconv.ParseInt(ps, 10, 64); err != nil || page < 1 {
			writeError(c, utils.E(utils.CodeInvalidArgument, op, "page must be a positive integer", err))
			return 0, 0, true, false
		}
	}
	if ls != "" {
		if limit, err = strconv.ParseInt(ls, 10, 64); err != nil || limit < 1 || limit > maxPageLimit {
			writeError(c, utils.E(utils.CodeInvalidArgument, op, "limit must be between 1 and 100", err))
			return 0, 0, true, false
		}
	}
	return page, limit, true, true
}

func requireUserID(c *gin.Context) (string, bool) {
	if v, ok := c.Get("user_id"); ok {
		if s, ok := v.(string); ok && s != "" {
			return s, true
		}
	}

	writeError(c, utils.E(utils.CodeUnauthorized, "Auth", "unauthorized", nil))
	return "", false
}

// ActivateRequest is the body of PUT /{collection}/activate.
type ActivateRequest struct {
	ID string `json:"id" binding:"required"`
}

type deleted struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

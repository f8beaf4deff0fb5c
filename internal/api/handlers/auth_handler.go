package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/folio/internal/api/middleware"
	"github.com/yoockh/folio/internal/services"
)

type AuthHandler struct {
	svc          services.AuthService
	secureCookie bool
}

// secureCookie marks the token cookie Secure; set it in release mode.
func NewAuthHandler(svc services.AuthService, secureCookie bool) *AuthHandler {
	return &AuthHandler{svc: svc, secureCookie: secureCookie}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var in services.RegisterInput
	if !bindJSON(c, "AuthHandler.Register", &in) {
		return
	}
	u, err := h.svc.Register(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusCreated, u)
}

// Login returns the token and also sets it as the dashboard cookie.
func (h *AuthHandler) Login(c *gin.Context) {
	var in services.LoginInput
	if !bindJSON(c, "AuthHandler.Login", &in) {
		return
	}
	sess, err := h.svc.Login(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}

	maxAge := int(time.Until(sess.ExpiresAt).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.TokenCookie, sess.AccessToken, maxAge, "/", "", h.secureCookie, true)
	respond(c, http.StatusOK, sess)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.TokenCookie, "", -1, "/", "", h.secureCookie, true)
	respond(c, http.StatusOK, gin.H{"loggedOut": true})
}

func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	u, err := h.svc.Me(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, u)
}

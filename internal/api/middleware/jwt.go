package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/folio/internal/auth"
	"github.com/yoockh/folio/internal/utils"
)

// TokenCookie is where the dashboard keeps its bearer token.
const TokenCookie = "token"

// Context keys set by JWTAuth.
const (
	CtxUserID = "user_id"
	CtxRoles  = "roles"
	CtxClaims = "claims"
)

// BearerToken reads the token from the Authorization header, then the
// token cookie.
func BearerToken(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	if v, err := c.Cookie(TokenCookie); err == nil {
		return strings.TrimSpace(v)
	}
	return ""
}

func JWTAuth(tokens *auth.Tokens) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := BearerToken(c)
		if raw == "" {
			abort(c, utils.CodeUnauthorized, "missing bearer token")
			return
		}

		claims, err := tokens.Parse(raw)
		if err != nil {
			abort(c, utils.CodeUnauthorized, "invalid token")
			return
		}

		c.Set(CtxUserID, claims.Subject)
		c.Set(CtxRoles, claims.Roles)
		c.Set(CtxClaims, claims)
		c.Next()
	}
}

package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/folio/internal/models"
	"github.com/yoockh/folio/internal/utils"
)

func RequireRole(allowed ...string) gin.HandlerFunc {
	allow := map[string]struct{}{}
	for _, a := range allowed {
		a = strings.TrimSpace(strings.ToLower(a))
		if a != "" {
			allow[a] = struct{}{}
		}
	}

	return func(c *gin.Context) {
		v, ok := c.Get(CtxRoles)
		roles, _ := v.([]string)

		if !ok || len(roles) == 0 {
			abort(c, utils.CodeForbidden, "forbidden")
			return
		}

		for _, r := range roles {
			if _, ok := allow[strings.ToLower(strings.TrimSpace(r))]; ok {
				c.Next()
				return
			}
		}
		abort(c, utils.CodeForbidden, "forbidden")
	}
}

func RequireAdmin() gin.HandlerFunc { return RequireRole(models.RoleAdmin) }

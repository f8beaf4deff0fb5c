package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yoockh/folio/internal/api/handlers"
	"github.com/yoockh/folio/internal/api/middleware"
	"github.com/yoockh/folio/internal/auth"
)

type Deps struct {
	Tokens       *auth.Tokens
	LoginLimiter *middleware.RateLimiter

	About   *handlers.AboutHandler
	Profile *handlers.ProfileHandler
	Project *handlers.ProjectHandler
	Auth    *handlers.AuthHandler
	Media   *handlers.MediaHandler
	Health  *handlers.HealthHandler

	// AdminDir serves the dashboard pages under /admin when set.
	AdminDir string
}

// RegisterRoutes mounts the API. Reads are public; every write needs an
// admin token. Keyword routes (current, active, activate) are static
// segments, so they never shadow a record id.
func RegisterRoutes(r *gin.Engine, d Deps) {
	r.GET("/ping", d.Health.Ping)
	r.GET("/healthz", d.Health.Healthz)

	authn := middleware.JWTAuth(d.Tokens)
	admin := []gin.HandlerFunc{authn, middleware.RequireAdmin()}

	a := r.Group("/auth")
	a.POST("/register", d.Auth.Register)
	a.POST("/login", d.LoginLimiter.Middleware(), d.Auth.Login)
	a.POST("/logout", d.Auth.Logout)
	a.GET("/me", authn, d.Auth.Me)

	about := r.Group("/about")
	about.GET("", d.About.List)
	about.GET("/current", d.About.Current)
	about.GET("/:id", d.About.Get)
	{
		w := about.Group("", admin...)
		w.POST("", d.About.Create)
		w.PUT("/activate", d.About.Activate)
		w.PUT("/:id", d.About.Update)
		w.PATCH("/:id", d.About.Update)
		w.DELETE("/:id", d.About.Delete)
		w.PATCH("/:id/set-active", d.About.SetActive)

		w.PUT("/:id/skills/add", d.About.AddSkill)
		w.DELETE("/:id/skills/:subId", d.About.RemoveSkill)
		w.PUT("/:id/education/add", d.About.AddEducation)
		w.DELETE("/:id/education/:subId", d.About.RemoveEducation)
		w.PUT("/:id/experience/add", d.About.AddExperience)
		w.DELETE("/:id/experience/:subId", d.About.RemoveExperience)
	}

	profile := r.Group("/profile")
	profile.GET("", d.Profile.List)
	profile.GET("/active", d.Profile.Active)
	profile.GET("/:id", d.Profile.Get)
	{
		w := profile.Group("", admin...)
		w.POST("", d.Profile.Create)
		w.PUT("/activate", d.Profile.Activate)
		w.PUT("/:id", d.Profile.Update)
		w.PATCH("/:id", d.Profile.Update)
		w.DELETE("/:id", d.Profile.Delete)
		w.PATCH("/:id/set-active", d.Profile.SetActive)

		w.POST("/:id/social", d.Profile.AddSocialLink)
		w.PATCH("/:id/social/:index", d.Profile.UpdateSocialLink)
		w.DELETE("/:id/social/:index", d.Profile.RemoveSocialLink)
		w.PATCH("/:id/social-links/:linkId", d.Profile.UpdateSocialLinkByID)
		w.DELETE("/:id/social-links/:linkId", d.Profile.RemoveSocialLinkByID)
	}

	projects := r.Group("/projects")
	projects.GET("", d.Project.List)
	projects.GET("/:id", d.Project.Get)
	{
		w := projects.Group("", admin...)
		w.POST("", d.Project.Create)
		w.PUT("/:id", d.Project.Update)
		w.PATCH("/:id", d.Project.Update)
		w.DELETE("/:id", d.Project.Delete)
	}

	if d.Media != nil {
		r.POST("/uploads/images", append(admin, d.Media.UploadImage)...)
	}

	if d.AdminDir != "" {
		pages := r.Group("/admin", middleware.PageGuard(d.Tokens))
		pages.StaticFS("/", gin.Dir(d.AdminDir, false))
	}
}

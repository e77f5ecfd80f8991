package api

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"artportfolio/internal/middleware"
	"artportfolio/internal/modules/artwork"
	"artportfolio/internal/modules/auth"
	"artportfolio/internal/modules/user"
	"artportfolio/internal/pkg/response"
	"artportfolio/internal/store"
)

// Deps are the handlers and services the router mounts.
type Deps struct {
	Store    store.DocumentStore
	Tokens   middleware.TokenValidator
	Auth     *auth.Handler
	Artworks *artwork.Handler
	Users    *user.Handler

	CORSAllowedOrigins []string

	// UploadsDir is served under UploadsURLPrefix when set.
	UploadsDir       string
	UploadsURLPrefix string
}

func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(middleware.ErrorLogger())
	r.Use(middleware.CORS(d.CORSAllowedOrigins))

	if d.UploadsDir != "" && d.UploadsURLPrefix != "" {
		r.Static(d.UploadsURLPrefix, d.UploadsDir)
	}

	api := r.Group("/api")
	{
		// public
		api.GET("/health", healthCheck(d.Store))
		d.Auth.RegisterRoutes(api)
		d.Artworks.RegisterPublicRoutes(api)

		protected := api.Group("")
		protected.Use(middleware.JWTAuth(d.Tokens))
		{
			d.Artworks.RegisterProtectedRoutes(protected)
			d.Users.RegisterProtectedRoutes(protected)

			admin := protected.Group("/admin")
			admin.Use(middleware.AdminOnly())
			d.Users.RegisterAdminRoutes(admin)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Resource not found"})
	})

	return r
}

// healthCheck reports whether the document store answers.
func healthCheck(s store.DocumentStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		if _, err := s.Load(c.Request.Context(), store.Users); err != nil {
			log.Printf("health_check_failed error=%v", err)
			response.Error(c, http.StatusServiceUnavailable, "STORE_UNAVAILABLE", "Document store is unavailable")
			return
		}
		response.Success(c, http.StatusOK, gin.H{
			"status":  "ok",
			"latency": time.Since(start).String(),
		})
	}
}

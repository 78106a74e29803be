package http

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouteOptions carries the settings SetupRoutes needs from config.
type RouteOptions struct {
	CORSOrigin string
	Logger     zerolog.Logger
}

// NewRouter returns a gin engine with every route and middleware installed.
func NewRouter(env *Env, opts RouteOptions) *gin.Engine {
	router := gin.New()
	SetupRoutes(router, env, opts)
	return router
}

// SetupRoutes configures all application routes and middleware.
func SetupRoutes(router *gin.Engine, env *Env, opts RouteOptions) {

	// --- Middleware ---

	// Logger first so recovery and handlers can reach it through the context
	router.Use(RequestLoggerMiddleware(opts.Logger))
	router.Use(AccessLogMiddleware())
	router.Use(RecoveryMiddleware())
	router.Use(SecurityHeadersMiddleware())
	router.Use(cors.New(corsConfig(opts.CORSOrigin)))

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})

	// --- API Routes ---

	api := router.Group("/api")
	{
		api.GET("/health", env.Health)
		api.GET("/stats", env.GetStats)

		api.GET("/confessions", env.ListConfessions)
		api.POST("/confessions", env.CreateConfession)
		api.GET("/confessions/:id", env.GetConfession)
		api.POST("/confessions/:id/like", env.LikeConfession)
		api.DELETE("/confessions/:id", env.DeleteConfession)
	}
}

func corsConfig(origin string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", RequestIDHeader},
	}
	// No cookies or auth, so credentials stay off and "*" is safe for local dev
	if origin == "" || origin == "*" {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = []string{origin}
	}
	return cfg
}

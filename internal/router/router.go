package router

import (
	"github.com/gin-gonic/gin"

	"nutriscan/internal/config"
	"nutriscan/internal/handler"
	"nutriscan/internal/middleware"
)

// Handlers bundles the HTTP handlers the router mounts.
type Handlers struct {
	Analyze *handler.AnalyzeHandler
	Meta    *handler.MetaHandler
	Health  *handler.HealthHandler
}

// New builds the gin engine with middleware and all routes mounted.
func New(cfg *config.Config, h Handlers) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	r.GET("/healthz", h.Health.Health)

	api := r.Group("/api")
	{
		api.POST("/analyze", h.Analyze.Analyze)
		api.GET("/provider", h.Meta.Provider)
		api.GET("/config", h.Meta.Config)
	}

	return r
}

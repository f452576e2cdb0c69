package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/luvit/moodfit/internal/domain/access"
	"github.com/luvit/moodfit/internal/infra/config"
)

// NewRouter wires up the HTTP handlers and returns a configured server.
func NewRouter(cfg *config.Config, handler *Handler, accessSvc access.Service) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		requestLogger(handler.logger),
		corsMiddleware(cfg.HTTP.AllowedOrigins),
		errorHandlingMiddleware(handler.logger),
		rateLimitMiddleware(cfg.HTTP.RateLimit, handler.logger),
	)

	router.GET("/healthz", handler.Health)
	router.POST("/api/v1/session", handler.CreateSession)

	api := router.Group("/api/v1")
	if cfg.Access.Enabled() && accessSvc != nil {
		api.Use(authMiddleware(accessSvc))
	}
	{
		api.POST("/recommendations", handler.Recommend)
		api.POST("/recommendations/local", handler.RecommendLocal)
		api.GET("/recommendations/latest", handler.Latest)
		api.POST("/recipes/fridge", handler.FridgeRecipe)
		api.POST("/images", handler.GenerateImage)
	}

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        router,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("http request", "method", c.Request.Method, "path", c.Request.URL.Path, "status", c.Writer.Status(), "latency_ms", latency.Milliseconds())
	}
}

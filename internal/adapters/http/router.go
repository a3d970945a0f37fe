// Package http - HTTP адаптер веб-сервера: роутер и lifecycle.
//
// Router собирает handlers и middleware в единую точку входа.
//
// Pattern: Composition Root
// - Все зависимости собираются здесь
// - Handlers получают только то, что им нужно
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Haleralex/foodyhub/internal/adapters/http/handlers"
	"github.com/Haleralex/foodyhub/internal/adapters/http/middleware"
	"github.com/Haleralex/foodyhub/internal/assets"
)

// RouterConfig - конфигурация роутера.
type RouterConfig struct {
	// Logger для middleware
	Logger *slog.Logger
	// Root - выбранный каталог статики
	Root *assets.Root
	// Prefix - URL префикс статики (e.g. "/web")
	Prefix string
	// BackendURL - адрес бекенда, пробрасываемый в /config.js
	BackendURL string
	// Version приложения
	Version string
	// Environment (development, staging, production)
	Environment string
	// AllowedOrigins для CORS
	AllowedOrigins []string
}

// NewRouter создаёт сконфигурированный Gin Engine.
func NewRouter(cfg *RouterConfig) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	router := gin.New()

	// Recovery первым, дальше request id, лог, CORS, метрики
	router.Use(middleware.Recovery(&middleware.RecoveryConfig{
		Logger:           cfg.Logger,
		EnableStackTrace: cfg.Environment != "production",
	}))
	router.Use(middleware.RequestID())
	router.Use(middleware.Logging(&middleware.LoggingConfig{
		Logger:    cfg.Logger,
		SkipPaths: []string{"/health", "/health/", "/metrics"},
	}))

	corsConfig := middleware.DefaultCORSConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	}
	router.Use(middleware.CORS(corsConfig))
	router.Use(middleware.Metrics())

	// ============================================
	// Routes
	// ============================================

	health := handlers.NewHealthHandler(cfg.Root.Base(), cfg.Version)
	// Обе формы, со слэшем и без, как в исходном деплое
	router.GET("/health", health.Health)
	router.GET("/health/", health.Health)

	configJS := handlers.NewConfigHandler(cfg.BackendURL)
	router.GET("/config.js", configJS.ConfigJS)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Статика с SPA-фоллбеком под префиксом
	spa := handlers.NewSPAHandler(cfg.Root, cfg.Prefix, cfg.Logger)
	router.GET(cfg.Prefix, spa.Serve)
	router.HEAD(cfg.Prefix, spa.Serve)
	router.GET(cfg.Prefix+"/*filepath", spa.Serve)
	router.HEAD(cfg.Prefix+"/*filepath", spa.Serve)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "not found"})
	})

	return router
}

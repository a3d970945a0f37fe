package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/Haleralex/foodyhub/internal/config"
	"github.com/Haleralex/foodyhub/internal/container"
)

// Version подставляется при сборке через -ldflags.
var Version = "dev"

func main() {
	// .env удобен локально; в production окружение задаёт платформа
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	cfg, err := config.LoadFromEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	if Version != "dev" {
		cfg.App.Version = Version
	}

	c := container.New(cfg)
	logger := c.Logger()

	logger.Info("🚀 Starting FOODY web server...",
		slog.String("version", cfg.App.Version),
		slog.String("env", cfg.App.Environment),
	)

	if err := c.InitServer(); err != nil {
		// Фронтенд не собран: перечисляем, где искали, и выходим
		logger.Error("❌ Static assets missing", slog.String("error", err.Error()))
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr, "build the frontend first (web/dist), then restart")
		os.Exit(1)
	}

	logger.Info("✅ Serving static build",
		slog.String("base", c.AssetRoot().Base()),
		slog.String("prefix", cfg.Web.Prefix),
		slog.String("backend", cfg.API.BaseURL),
	)

	if err := c.Server().Run(); err != nil {
		logger.Error("server stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"github.com/agenthands/discourse/internal/app"
	"github.com/agenthands/discourse/internal/config"
	"github.com/agenthands/discourse/internal/logger"
	"github.com/agenthands/discourse/internal/logger/console"
	"github.com/agenthands/discourse/internal/server"
	"github.com/agenthands/discourse/internal/ui"
)

func main() {
	envErr := godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config/config.toml"
	}
	cfg, cfgErr := config.LoadOrDefault(cfgPath)
	if cfg == nil {
		cfg = config.Default()
	}
	cfg.ApplyEnv()

	logger.Init(console.NewConsoleLogger(console.ConsoleLoggerParams{Debug: cfg.Server.Debug}))
	if envErr != nil {
		logger.Info("No .env file found, using defaults")
	}
	if cfgErr != nil {
		logger.Fatal("Failed to load configuration", "path", cfgPath, "error", cfgErr)
	}

	reg, err := app.Bootstrap(context.Background(), cfg)
	if err != nil {
		logger.Fatal("Failed to load dashboard data", "error", err)
	}

	renderer, err := ui.NewRenderer()
	if err != nil {
		logger.Fatal("Failed to prepare templates", "error", err)
	}

	srv := server.NewServer(reg, renderer, cfg.Data.AssetsDir)
	r := srv.SetupRouter()

	logger.Info("Starting server", "port", cfg.Server.Port, "pages", len(reg.Pages()))
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal("Server stopped", "error", err)
	}
}

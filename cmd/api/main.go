package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"convsig/app"
	"convsig/internal"
	"convsig/internal/analyzer"
	"convsig/internal/config"
	"convsig/ui"
)

func main() {
	// .env is optional; environment variables win either way
	if err := godotenv.Load(); err != nil {
		internal.DefaultLogger.Debug("no .env file loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	gin.SetMode(cfg.Server.GinMode)

	service := app.NewAnalysisService(analyzer.New(cfg.Engine), cfg.Engine)
	server := ui.NewServer(service)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx, ":"+cfg.Server.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"gridiron-data-service/internal/config"
	"gridiron-data-service/internal/logging"
	"gridiron-data-service/internal/server"
)

func main() {
	if os.Getenv("SKIP_SERVER_RUN") == "1" {
		return
	}

	cfg := config.Load()
	logger := logging.NewLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Error("server startup failed", "error", err)
		os.Exit(1)
	}
	srv.Run(ctx, stop)
}

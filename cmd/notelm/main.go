package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/kirillkom/notelm-client/internal/bootstrap"
	"github.com/kirillkom/notelm-client/internal/config"
	"github.com/kirillkom/notelm-client/internal/observability/logging"
)

func main() {
	cfg := config.Load()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, closeLog := logging.NewFileLogger("notelm-client", cfg.LogLevel, cfg.LogFile)
	defer closeLog()

	app, err := bootstrap.New(cfg, logger)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}
	defer app.Close()

	if err := app.Shell.Run(ctx); err != nil {
		logger.Error("shell exited", "error", err)
		log.Fatalf("shell error: %v", err)
	}
}

package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dparedesb/gymcontrol/internal/app/validationlogger"
	"github.com/dparedesb/gymcontrol/internal/config"
)

func main() {
	cfg := config.MustLoad()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	logger.Info("starting validation-logger", slog.String("env", cfg.Env))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := validationlogger.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize validation-logger", slog.Any("err", err))
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		logger.Error("validation-logger stopped with error", slog.Any("err", err))
		os.Exit(1)
	}

	logger.Info("validation-logger stopped gracefully")
}

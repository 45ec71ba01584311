package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/kingdomchronicles/funnel/internal/app"
	"github.com/kingdomchronicles/funnel/pkg/clientip"
	"github.com/kingdomchronicles/funnel/pkg/config"
	"github.com/kingdomchronicles/funnel/pkg/httpserver"
	"github.com/kingdomchronicles/funnel/pkg/logger"
	"github.com/kingdomchronicles/funnel/pkg/requestid"
)

func main() {
	var cfg app.Config
	config.MustLoad(&cfg)

	log := logger.New(
		logger.WithEnvironment(cfg.Environment, cfg.ServiceName),
		logger.WithContextExtractors(
			requestid.LoggerExtractor(),
			clientip.LoggerExtractor(),
		),
	)
	logger.SetAsDefault(log)

	a, err := app.New(cfg, log)
	if err != nil {
		log.Error("startup failed", logger.Error(err))
		os.Exit(1)
	}

	ctx := context.Background()
	srv := httpserver.New(
		httpserver.WithAddr(cfg.Addr),
		httpserver.WithLogger(log),
		httpserver.WithStartHook(func(l *slog.Logger) {
			l.Info("funnel server listening", slog.String("addr", cfg.Addr))
		}),
		httpserver.WithStopHook(func(l *slog.Logger) {
			l.Info("funnel server stopped")
		}),
	)

	if err := srv.Run(ctx, a.Handler(ctx)); err != nil {
		log.Error("server exited with error", logger.Error(err))
		os.Exit(1)
	}
}

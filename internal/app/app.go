package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kingdomchronicles/funnel/modules/funnel"
	"github.com/kingdomchronicles/funnel/modules/notify"
	"github.com/kingdomchronicles/funnel/pkg/catalog"
	"github.com/kingdomchronicles/funnel/pkg/clientip"
	"github.com/kingdomchronicles/funnel/pkg/httpserver"
	"github.com/kingdomchronicles/funnel/pkg/mailer"
	"github.com/kingdomchronicles/funnel/pkg/requestid"
)

// App holds the assembled service.
type App struct {
	cfg Config
	log *slog.Logger

	catalog    *catalog.Catalog
	sender     mailer.Sender
	endpoint   *notify.Endpoint
	dispatcher *notify.Dispatcher
	service    *funnel.Service
}

// New assembles the service from configuration. In production the Postmark
// sender is required; development falls back to writing emails to disk when
// no server token is configured.
func New(cfg Config, log *slog.Logger) (*App, error) {
	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	sender, err := newSender(cfg, log)
	if err != nil {
		return nil, err
	}

	dispatcher, err := notify.NewDispatcher(cfg.EmailEndpoint,
		notify.WithDestination(cfg.NotificationEmail),
		notify.WithLogger(log))
	if err != nil {
		return nil, fmt.Errorf("build dispatcher: %w", err)
	}

	return &App{
		cfg:        cfg,
		log:        log,
		catalog:    cat,
		sender:     sender,
		endpoint:   notify.NewEndpoint(sender, cfg.NotificationEmail, log),
		dispatcher: dispatcher,
		service:    funnel.NewService(cat, dispatcher, log),
	}, nil
}

func newSender(cfg Config, log *slog.Logger) (mailer.Sender, error) {
	if cfg.Mailer.PostmarkServerToken != "" {
		sender, err := mailer.NewPostmarkSender(cfg.Mailer)
		if err != nil {
			return nil, fmt.Errorf("build postmark sender: %w", err)
		}
		return sender, nil
	}
	if cfg.IsProduction() {
		return nil, fmt.Errorf("POSTMARK_SERVER_TOKEN is required in production")
	}
	log.Warn("no Postmark token configured, writing emails to disk",
		slog.String("dir", cfg.Mailer.DevOutputDir))
	return mailer.NewDevSender(cfg.Mailer.DevOutputDir), nil
}

// Handler returns the full HTTP surface of the service.
func (a *App) Handler(ctx context.Context) http.Handler {
	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(clientip.Middleware)

	r.Get("/health", httpserver.HealthCheckHandler(ctx, a.log))
	r.Route("/api", func(r chi.Router) {
		r.Handle("/send-email", a.endpoint)
		r.Mount("/", a.service.Handle())
	})
	return r
}

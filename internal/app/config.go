// Package app wires the funnel service together: configuration, logging,
// routing, and the outbound mail path.
package app

import (
	"github.com/kingdomchronicles/funnel/pkg/mailer"
)

// Config is the service configuration, loaded from the environment once at
// startup. It is the single source of operational settings; components
// receive values from here instead of reading the environment themselves.
type Config struct {
	ServiceName string `env:"SERVICE_NAME" envDefault:"funnel"`
	Environment string `env:"APP_ENV" envDefault:"development"`
	Addr        string `env:"SERVER_ADDR" envDefault:":8080"`

	// CatalogPath points at a YAML catalog file. Empty means the compiled-in
	// default catalog.
	CatalogPath string `env:"CATALOG_PATH"`

	// NotificationEmail receives all funnel notifications. The endpoint
	// refuses to send when it is empty.
	NotificationEmail string `env:"NOTIFICATION_EMAIL"`

	// EmailEndpoint is where the dispatcher posts notification events.
	// Defaults to this process's own relay endpoint.
	EmailEndpoint string `env:"EMAIL_API_ENDPOINT" envDefault:"http://127.0.0.1:8080/api/send-email"`

	Mailer mailer.Config
}

// IsProduction reports whether the service runs with production settings.
func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

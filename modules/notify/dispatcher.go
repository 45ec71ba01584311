package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/kingdomchronicles/funnel/pkg/logger"
)

// DefaultEndpointPath is the path the notification endpoint is mounted on
// when no explicit endpoint URL is configured.
const DefaultEndpointPath = "/api/send-email"

// Dispatcher delivers notification events with a single HTTP POST per
// invocation. There is deliberately no retry, backoff, or queuing: the
// funnel proceeds regardless of notification fate and the caller decides
// what to surface.
type Dispatcher struct {
	client      *http.Client
	endpoint    string
	destination string
	log         *slog.Logger
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithHTTPClient overrides the HTTP client, e.g. for tests.
func WithHTTPClient(c *http.Client) DispatcherOption {
	return func(d *Dispatcher) {
		if c != nil {
			d.client = c
		}
	}
}

// WithDestination sets the advisory "to" address included in the payload.
func WithDestination(addr string) DispatcherOption {
	return func(d *Dispatcher) { d.destination = addr }
}

// WithLogger sets the dispatcher logger.
func WithLogger(log *slog.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		if log != nil {
			d.log = log
		}
	}
}

// NewDispatcher creates a dispatcher posting to the given endpoint URL.
func NewDispatcher(endpoint string, opts ...DispatcherOption) (*Dispatcher, error) {
	if err := validateEndpoint(endpoint); err != nil {
		return nil, err
	}

	d := &Dispatcher{
		client:   &http.Client{Timeout: 10 * time.Second},
		endpoint: endpoint,
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Dispatch serializes the event and issues exactly one POST to the endpoint.
// A non-2xx response or transport failure yields ErrDeliveryFailed with the
// underlying cause; the caller decides whether to surface it.
func (d *Dispatcher) Dispatch(ctx context.Context, event Event) error {
	if event == nil {
		return fmt.Errorf("%w: nil event", ErrDeliveryFailed)
	}
	if err := event.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrDeliveryFailed, err)
	}

	body, err := json.Marshal(envelope{
		Type: event.Kind(),
		Data: event.payload(),
		To:   d.destination,
	})
	if err != nil {
		return fmt.Errorf("%w: marshal payload: %w", ErrDeliveryFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDeliveryFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "funnel-notify/1.0")

	start := time.Now()
	resp, err := d.client.Do(req)
	if err != nil {
		d.log.ErrorContext(ctx, "notification dispatch failed",
			logger.Event(string(event.Kind())), logger.Error(err))
		return fmt.Errorf("%w: %w", ErrDeliveryFailed, err)
	}
	defer resp.Body.Close()

	// Drain so the connection can be reused.
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		d.log.ErrorContext(ctx, "notification endpoint rejected event",
			logger.Event(string(event.Kind())),
			slog.Int("status", resp.StatusCode),
			slog.Duration("duration", time.Since(start)))
		return fmt.Errorf("%w: endpoint returned status %d", ErrDeliveryFailed, resp.StatusCode)
	}

	d.log.InfoContext(ctx, "notification dispatched",
		logger.Event(string(event.Kind())),
		slog.Duration("duration", time.Since(start)))
	return nil
}

func validateEndpoint(endpoint string) error {
	if endpoint == "" {
		return fmt.Errorf("%w: URL is required", ErrInvalidEndpoint)
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidEndpoint, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: only http and https schemes are supported", ErrInvalidEndpoint)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: host is required", ErrInvalidEndpoint)
	}
	return nil
}

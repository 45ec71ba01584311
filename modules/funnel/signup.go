package funnel

import (
	"context"
	"io"
	"log/slog"

	"github.com/kingdomchronicles/funnel/modules/notify"
	"github.com/kingdomchronicles/funnel/pkg/logger"
	"github.com/kingdomchronicles/funnel/pkg/sanitizer"
	"github.com/kingdomchronicles/funnel/pkg/validator"
)

// SignupFlow handles email-list signups. Unlike the reservation path, a
// signup is nothing but the notification: a delivery failure fails the
// signup and the user is asked to try again.
type SignupFlow struct {
	dispatcher Dispatcher
	log        *slog.Logger
}

// NewSignupFlow creates a signup flow.
func NewSignupFlow(d Dispatcher, log *slog.Logger) *SignupFlow {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &SignupFlow{dispatcher: d, log: log}
}

// Submit validates the contact fields and dispatches a signup event.
func (s *SignupFlow) Submit(ctx context.Context, name, email string) error {
	name = sanitizer.SingleLine(name)
	email = sanitizer.NormalizeEmail(email)

	if err := validator.Apply(
		validator.RequiredString("name", name),
		validator.RequiredString("email", email),
		validator.ValidEmail("email", email),
	); err != nil {
		return err
	}

	event, err := notify.NewSignupEvent(name, email)
	if err != nil {
		return err
	}

	if err := s.dispatcher.Dispatch(ctx, event); err != nil {
		s.log.ErrorContext(ctx, "signup notification failed", logger.Error(err))
		return err
	}

	s.log.InfoContext(ctx, "signup submitted",
		slog.String("email", sanitizer.MaskEmail(email)))
	return nil
}

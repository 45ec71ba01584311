package funnel

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/kingdomchronicles/funnel/modules/notify"
	"github.com/kingdomchronicles/funnel/pkg/catalog"
	"github.com/kingdomchronicles/funnel/pkg/logger"
	"github.com/kingdomchronicles/funnel/pkg/sanitizer"
)

// Dispatcher delivers notification events. Satisfied by *notify.Dispatcher.
type Dispatcher interface {
	Dispatch(ctx context.Context, event notify.Event) error
}

// Config is the single source of operational configuration for the flow.
// It is supplied at construction; components hold no embedded fallback copies.
type Config struct {
	// DefaultAmount is the reservation amount when no tier is selected.
	DefaultAmount int
	Currency      string
	WalletAddress string
	WalletNetwork string
}

// ConfigFromCatalog derives the flow configuration from the payment section
// of the catalog.
func ConfigFromCatalog(c *catalog.Catalog) Config {
	return Config{
		DefaultAmount: c.Payment.ReservationAmount,
		Currency:      c.Payment.Currency,
		WalletAddress: c.Payment.USDTWalletAddress,
		WalletNetwork: c.Payment.USDTNetwork,
	}
}

// Phase tracks submission progress so double-clicks cannot produce duplicate
// dispatches.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseSubmitting Phase = "submitting"
	PhaseDone       Phase = "done"
)

// DeliveryResult reports the outcome of the single notification dispatch
// attempt for a submission. Both submission paths return it explicitly and
// the caller decides what to surface.
type DeliveryResult struct {
	Delivered bool
	Err       error
}

// SubmitOutcome is the result of a successful (validated) submission.
// Exactly one of USDT and Delivery is set: USDT when the flow handed off to
// the off-band confirmation step, Delivery when the event was dispatched
// immediately.
type SubmitOutcome struct {
	USDT     *USDTStep
	Delivery *DeliveryResult
}

// ReservationFlow owns one reservation intake session: the form, the
// submission phase, and the branch into the USDT confirmation step.
// A flow instance serves a single logical user; methods are safe against
// concurrent double-submission.
type ReservationFlow struct {
	cfg        Config
	dispatcher Dispatcher
	log        *slog.Logger

	mu    sync.Mutex
	form  Form
	phase Phase
}

// NewReservationFlow opens an empty reservation intake flow.
func NewReservationFlow(cfg Config, d Dispatcher, log *slog.Logger) *ReservationFlow {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &ReservationFlow{
		cfg:        cfg,
		dispatcher: d,
		log:        log,
		phase:      PhaseIdle,
	}
}

// SetContact fills the contact fields. Input is normalized before it is
// stored so validation and notifications see clean values.
func (f *ReservationFlow) SetContact(name, email, phone string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.form.Name = sanitizer.SingleLine(name)
	f.form.Email = sanitizer.NormalizeEmail(email)
	f.form.Phone = sanitizer.SingleLine(phone)
}

// SelectTier associates a funding tier with the reservation.
func (f *ReservationFlow) SelectTier(t *catalog.FundingTier) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.form.SelectTier(t)
}

// SelectMethod requests a payment method selection.
func (f *ReservationFlow) SelectMethod(m Method) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.form.SelectMethod(m)
}

// SelectedMethod returns the current payment method selection, or "".
func (f *ReservationFlow) SelectedMethod() Method {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.form.Method()
}

// Amount returns the derived reservation amount.
func (f *ReservationFlow) Amount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.form.Amount(f.cfg.DefaultAmount)
}

// Phase returns the current submission phase.
func (f *ReservationFlow) Phase() Phase {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.phase
}

// Close discards all entered data and returns the flow to its opened-empty
// state. Nothing is persisted.
func (f *ReservationFlow) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.form.Reset()
	f.phase = PhaseIdle
}

// Submit validates the form and runs the submission branch.
//
// Validation order: required contact fields, then method selected, then
// method enabled. Validation failures leave the form untouched.
//
// The USDT branch returns a confirmation step without dispatching anything.
// Every other enabled method dispatches a reservation event immediately; on
// delivery failure the form survives so the user can resubmit, and the
// failure is reported in the returned DeliveryResult rather than as an error.
func (f *ReservationFlow) Submit(ctx context.Context) (*SubmitOutcome, error) {
	f.mu.Lock()

	switch f.phase {
	case PhaseSubmitting:
		f.mu.Unlock()
		return nil, ErrSubmissionInProgress
	case PhaseDone:
		f.mu.Unlock()
		return nil, ErrAlreadySubmitted
	}

	if err := f.form.validateContact(); err != nil {
		f.mu.Unlock()
		return nil, err
	}

	method := f.form.Method()
	if method == "" {
		f.mu.Unlock()
		return nil, ErrNoMethodSelected
	}
	info, ok := MethodInfoFor(method)
	if !ok {
		f.mu.Unlock()
		return nil, fmt.Errorf("%w: %q", ErrUnknownMethod, method)
	}
	if !info.Enabled {
		f.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrMethodNotAvailable, info.Name)
	}

	f.phase = PhaseSubmitting

	if method == MethodUSDT {
		step := newUSDTStep(f)
		f.mu.Unlock()
		return &SubmitOutcome{USDT: step}, nil
	}

	event, err := f.reservationEventLocked(method)
	f.mu.Unlock()
	if err != nil {
		f.reopen()
		return nil, err
	}

	if err := f.dispatcher.Dispatch(ctx, event); err != nil {
		f.log.ErrorContext(ctx, "reservation notification failed",
			logger.PaymentMethod(string(method)), logger.Error(err))
		f.reopen()
		return &SubmitOutcome{Delivery: &DeliveryResult{Delivered: false, Err: err}}, nil
	}

	f.complete()
	f.log.InfoContext(ctx, "reservation submitted",
		logger.PaymentMethod(string(method)), logger.Tier(event.Tier))
	return &SubmitOutcome{Delivery: &DeliveryResult{Delivered: true}}, nil
}

// reservationEventLocked builds the notification event from the current form.
// Callers must hold f.mu.
func (f *ReservationFlow) reservationEventLocked(method Method) (notify.ReservationEvent, error) {
	return notify.NewReservationEvent(notify.ReservationParams{
		Name:   f.form.Name,
		Email:  f.form.Email,
		Phone:  f.form.Phone,
		Method: string(method),
		Amount: f.form.Amount(f.cfg.DefaultAmount),
		Tier:   f.form.TierName(),
	})
}

// reopen returns the flow to idle with the form intact, permitting a retry.
func (f *ReservationFlow) reopen() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.phase = PhaseIdle
}

// complete marks the submission done and clears the form.
func (f *ReservationFlow) complete() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.phase = PhaseDone
	f.form.Reset()
}

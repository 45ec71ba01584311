package funnel

import (
	"context"
	"sync"

	"github.com/kingdomchronicles/funnel/pkg/logger"
	"github.com/kingdomchronicles/funnel/pkg/statemachine"
)

// USDT confirmation step states. The transfer happens off-band, so the only
// evidence the system has is the user's attestation.
const (
	StateAwaitingAttestation = statemachine.StringState("awaiting_attestation")
	StateConfirmable         = statemachine.StringState("confirmable")
	StateDispatching         = statemachine.StringState("dispatching")
	StateDone                = statemachine.StringState("done")
	StateCancelled           = statemachine.StringState("cancelled")
)

const (
	eventAttest  = statemachine.StringEvent("attest")
	eventRetract = statemachine.StringEvent("retract")
	eventConfirm = statemachine.StringEvent("confirm")
	eventFinish  = statemachine.StringEvent("finish")
	eventCancel  = statemachine.StringEvent("cancel")
)

// PaymentInstructions tells the user where to send the off-band transfer.
type PaymentInstructions struct {
	WalletAddress string `json:"walletAddress"`
	Network       string `json:"network"`
	Amount        int    `json:"amount"`
	Currency      string `json:"currency"`
}

// USDTStep drives the off-band USDT payment confirmation. It is created by
// ReservationFlow.Submit when the USDT method is selected and completes the
// parent flow when confirmed.
type USDTStep struct {
	flow    *ReservationFlow
	machine statemachine.StateMachine

	mu       sync.Mutex
	attested bool
}

func newUSDTStep(flow *ReservationFlow) *USDTStep {
	s := &USDTStep{flow: flow}

	attestedGuard := func(ctx context.Context, from statemachine.State, event statemachine.Event, data any) bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.attested
	}

	s.machine = statemachine.MustNew(StateAwaitingAttestation,
		statemachine.WithTransition(StateAwaitingAttestation, StateConfirmable, eventAttest),
		statemachine.WithTransition(StateConfirmable, StateAwaitingAttestation, eventRetract),
		statemachine.WithTransition(StateConfirmable, StateDispatching, eventConfirm,
			statemachine.WithGuards(attestedGuard)),
		statemachine.WithTransition(StateDispatching, StateDone, eventFinish),
		statemachine.WithTransition(StateAwaitingAttestation, StateCancelled, eventCancel),
		statemachine.WithTransition(StateConfirmable, StateCancelled, eventCancel),
	)
	return s
}

// State returns the current step state.
func (s *USDTStep) State() statemachine.State {
	return s.machine.Current()
}

// Instructions returns the off-band transfer details for display.
func (s *USDTStep) Instructions() PaymentInstructions {
	return PaymentInstructions{
		WalletAddress: s.flow.cfg.WalletAddress,
		Network:       s.flow.cfg.WalletNetwork,
		Amount:        s.flow.Amount(),
		Currency:      s.flow.cfg.Currency,
	}
}

// SetAttestation records whether the user has checked the "I have sent the
// payment" box. Toggling is allowed until the step is confirmed or cancelled.
func (s *USDTStep) SetAttestation(ctx context.Context, v bool) error {
	s.mu.Lock()
	if s.attested == v {
		s.mu.Unlock()
		return nil
	}
	s.attested = v
	s.mu.Unlock()

	if v {
		return s.machine.Fire(ctx, eventAttest, nil)
	}
	return s.machine.Fire(ctx, eventRetract, nil)
}

// Confirm finalizes the reservation. It requires the attestation flag to be
// set; otherwise it fails locally and the step stays where it is.
//
// On confirm the reservation event is dispatched exactly once and the step
// transitions to Done regardless of the dispatch outcome: the payment still
// needs manual verification either way. The delivery result is returned so
// the caller can decide whether to surface a failure.
func (s *USDTStep) Confirm(ctx context.Context) (*DeliveryResult, error) {
	switch s.machine.Current() {
	case StateDispatching:
		return nil, ErrSubmissionInProgress
	case StateDone:
		return nil, ErrAlreadySubmitted
	case StateCancelled:
		return nil, ErrAlreadySubmitted
	}

	if err := s.machine.Fire(ctx, eventConfirm, nil); err != nil {
		// Either the attestation guard rejected the transition or the step
		// is still awaiting attestation; both read the same to the user.
		return nil, ErrAttestationRequired
	}

	result := &DeliveryResult{}

	s.flow.mu.Lock()
	event, err := s.flow.reservationEventLocked(MethodUSDT)
	s.flow.mu.Unlock()
	if err != nil {
		result.Err = err
	} else if err := s.flow.dispatcher.Dispatch(ctx, event); err != nil {
		result.Err = err
	} else {
		result.Delivered = true
	}

	if result.Err != nil {
		s.flow.log.ErrorContext(ctx, "usdt reservation notification failed",
			logger.PaymentMethod(string(MethodUSDT)), logger.Error(result.Err))
	} else {
		s.flow.log.InfoContext(ctx, "usdt reservation confirmed, pending verification",
			logger.PaymentMethod(string(MethodUSDT)))
	}

	// Done regardless of delivery outcome; the form is cleared and the
	// reservation is treated as pending verification.
	if err := s.machine.Fire(ctx, eventFinish, nil); err != nil {
		return result, err
	}
	s.flow.complete()

	return result, nil
}

// Cancel abandons the confirmation step without dispatching and hands
// control back to the parent flow, which keeps its form data.
func (s *USDTStep) Cancel(ctx context.Context) error {
	if err := s.machine.Fire(ctx, eventCancel, nil); err != nil {
		return err
	}
	s.flow.reopen()
	return nil
}

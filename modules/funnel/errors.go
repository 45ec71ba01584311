package funnel

import "errors"

var (
	// ErrUnknownMethod indicates a payment method outside the closed set.
	ErrUnknownMethod = errors.New("unknown payment method")
	// ErrMethodNotAvailable indicates the method exists but is not yet enabled.
	ErrMethodNotAvailable = errors.New("this payment method is not yet available")
	// ErrNoMethodSelected indicates submission without a payment method.
	ErrNoMethodSelected = errors.New("please select a payment method")
	// ErrSubmissionInProgress guards against duplicate dispatches from
	// double-submission: at most one dispatch per logical submission.
	ErrSubmissionInProgress = errors.New("submission already in progress")
	// ErrAlreadySubmitted indicates the flow has completed and must be
	// reopened before another submission.
	ErrAlreadySubmitted = errors.New("reservation already submitted")
	// ErrAttestationRequired gates the USDT confirmation step.
	ErrAttestationRequired = errors.New("please confirm you sent payment")
)

// Package notify reports funnel activity to the operator. It defines the
// typed notification events, the single-shot HTTP dispatcher that delivers
// them, and the stateless endpoint that turns a delivered event into an
// outbound email.
package notify

import (
	"github.com/google/uuid"

	"github.com/kingdomchronicles/funnel/pkg/validator"
)

// Kind is the wire-level notification type.
type Kind string

const (
	// KindSignup is the wire name for email-list signups. The value "email"
	// is kept for compatibility with the original endpoint contract.
	KindSignup Kind = "email"
	// KindReservation marks VIP reservation notifications.
	KindReservation Kind = "reservation"
)

// Event is a single notification. The set of implementations is closed:
// SignupEvent and ReservationEvent. Events are validated at construction and
// immutable afterward.
type Event interface {
	Kind() Kind
	Validate() error
	payload() any
}

// SignupEvent reports a new email-list signup. Only contact fields are carried.
type SignupEvent struct {
	ID    string
	Email string
	Name  string
}

// NewSignupEvent builds a validated signup event.
func NewSignupEvent(name, email string) (SignupEvent, error) {
	e := SignupEvent{
		ID:    uuid.New().String(),
		Email: email,
		Name:  name,
	}
	if err := e.Validate(); err != nil {
		return SignupEvent{}, err
	}
	return e, nil
}

func (e SignupEvent) Kind() Kind { return KindSignup }

func (e SignupEvent) Validate() error {
	return validator.Apply(
		validator.RequiredString("email", e.Email),
		validator.ValidEmail("email", e.Email),
	)
}

type signupPayload struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

func (e SignupEvent) payload() any {
	return signupPayload{Email: e.Email, Name: e.Name}
}

// ReservationEvent reports a VIP reservation. It always carries a payment
// method and a positive amount.
type ReservationEvent struct {
	ID     string
	Name   string
	Email  string
	Phone  string
	Method string
	Amount int
	Tier   string
}

// ReservationParams carries the reservation fields for event construction.
type ReservationParams struct {
	Name   string
	Email  string
	Phone  string
	Method string
	Amount int
	Tier   string
}

// NewReservationEvent builds a validated reservation event.
func NewReservationEvent(p ReservationParams) (ReservationEvent, error) {
	e := ReservationEvent{
		ID:     uuid.New().String(),
		Name:   p.Name,
		Email:  p.Email,
		Phone:  p.Phone,
		Method: p.Method,
		Amount: p.Amount,
		Tier:   p.Tier,
	}
	if err := e.Validate(); err != nil {
		return ReservationEvent{}, err
	}
	return e, nil
}

func (e ReservationEvent) Kind() Kind { return KindReservation }

func (e ReservationEvent) Validate() error {
	return validator.Apply(
		validator.RequiredString("name", e.Name),
		validator.RequiredString("email", e.Email),
		validator.ValidEmail("email", e.Email),
		validator.RequiredString("paymentMethod", e.Method),
		validator.Positive("amount", e.Amount),
	)
}

type reservationPayload struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone,omitempty"`
	PaymentMethod string `json:"paymentMethod"`
	Amount        int    `json:"amount"`
	Tier          string `json:"tier,omitempty"`
}

func (e ReservationEvent) payload() any {
	return reservationPayload{
		Name:          e.Name,
		Email:         e.Email,
		Phone:         e.Phone,
		PaymentMethod: e.Method,
		Amount:        e.Amount,
		Tier:          e.Tier,
	}
}

// envelope is the wire format shared by the dispatcher and the endpoint:
// {"type": ..., "data": {...}, "to": ...}.
type envelope struct {
	Type Kind   `json:"type"`
	Data any    `json:"data"`
	To   string `json:"to,omitempty"`
}

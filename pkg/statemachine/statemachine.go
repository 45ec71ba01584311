// Package statemachine implements a small guarded finite state machine used
// to drive multi-step user flows such as the off-band payment confirmation.
package statemachine

import "context"

// State represents a state in the state machine.
type State interface {
	Name() string
}

// Event represents an event that can trigger a state transition.
type Event interface {
	Name() string
}

// Action executes side effects during a transition. Returning an error
// prevents the transition.
type Action func(ctx context.Context, from, to State, event Event, data any) error

// Guard evaluates whether a transition should be allowed.
type Guard func(ctx context.Context, from State, event Event, data any) bool

// Transition defines a state change triggered by an event, with optional
// guards and actions.
type Transition struct {
	From    State
	To      State
	Event   Event
	Guards  []Guard  // All must pass for the transition to proceed
	Actions []Action // Executed in order before the state change
}

// StateMachine is the core finite state machine contract.
type StateMachine interface {
	Current() State
	Fire(ctx context.Context, event Event, data any) error
	CanFire(ctx context.Context, event Event, data any) bool
	Reset() error
}

// StringState is a string-based State for simple flows.
type StringState string

func (s StringState) Name() string { return string(s) }

// StringEvent is a string-based Event for simple flows.
type StringEvent string

func (e StringEvent) Name() string { return string(e) }

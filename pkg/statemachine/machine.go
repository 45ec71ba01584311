package statemachine

import (
	"fmt"
	"sync"

	"context"
)

// machine is a thread-safe in-memory state machine.
// Transitions are indexed [fromState][event] for O(1) lookup.
type machine struct {
	initialState State
	currentState State
	transitions  map[string]map[string][]Transition
	mu           sync.RWMutex
}

func newMachine(initialState State) *machine {
	return &machine{
		initialState: initialState,
		currentState: initialState,
		transitions:  make(map[string]map[string][]Transition),
	}
}

func (m *machine) Current() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.currentState
}

func (m *machine) addTransition(from, to State, event Event, guards []Guard, actions []Action) error {
	if from == nil || to == nil || event == nil {
		return ErrInvalidTransition
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	fromName := from.Name()
	if _, ok := m.transitions[fromName]; !ok {
		m.transitions[fromName] = make(map[string][]Transition)
	}

	// Multiple transitions per from/event pair support guard-based branching.
	m.transitions[fromName][event.Name()] = append(m.transitions[fromName][event.Name()], Transition{
		From:    from,
		To:      to,
		Event:   event,
		Guards:  guards,
		Actions: actions,
	})
	return nil
}

func (m *machine) Fire(ctx context.Context, event Event, data any) error {
	if event == nil {
		return ErrInvalidEvent
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	transition, err := m.match(ctx, event, data)
	if err != nil {
		return err
	}

	// Any action failure aborts the transition; state stays put.
	for _, action := range transition.Actions {
		if action != nil {
			if err := action(ctx, m.currentState, transition.To, event, data); err != nil {
				return fmt.Errorf("action failed: %w", err)
			}
		}
	}

	m.currentState = transition.To
	return nil
}

func (m *machine) CanFire(ctx context.Context, event Event, data any) bool {
	if event == nil {
		return false
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	_, err := m.match(ctx, event, data)
	return err == nil
}

func (m *machine) Reset() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentState = m.initialState
	return nil
}

// match finds the first transition for the current state and event whose
// guards all pass. Callers must hold at least a read lock.
func (m *machine) match(ctx context.Context, event Event, data any) (*Transition, error) {
	stateName := m.currentState.Name()
	eventName := event.Name()

	transitions, ok := m.transitions[stateName][eventName]
	if !ok || len(transitions) == 0 {
		return nil, NewErrNoTransitionAvailable(stateName, eventName)
	}

	for i := range transitions {
		t := &transitions[i]
		passed := true
		for _, guard := range t.Guards {
			if guard != nil && !guard(ctx, m.currentState, event, data) {
				passed = false
				break
			}
		}
		if passed {
			return t, nil
		}
	}

	return nil, NewErrTransitionRejected(stateName, eventName)
}

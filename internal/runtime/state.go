// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"errors"
	"fmt"
	"slices"
)

const (
	// StateIdle is the state of every launch before its first step.
	StateIdle State = iota
	// StateCommandBuilt means the child command line has been assembled.
	StateCommandBuilt
	// StateSpawned means the child process exists and is owned by the launcher.
	StateSpawned
	// StateWaited means the child process has terminated.
	StateWaited
	// StateSucceeded is terminal: the child ran and its handles were released.
	StateSucceeded
	// StateConfigured means every runtime configuration field was written.
	StateConfigured
	// StateInitialized means the embedded runtime accepted the configuration.
	StateInitialized
	// StateRunning means control is inside the runtime's main entry point.
	StateRunning
	// StateTerminated is terminal: the runtime's main entry point returned.
	StateTerminated
	// StateFailed is terminal: the launch stopped before the target ran, or
	// the launcher lost track of the child while waiting on it.
	StateFailed
)

var (
	// ErrInvalidState is returned when a State value is not one of the defined launch states.
	ErrInvalidState = errors.New("invalid state")

	// ErrInvalidTransition is returned when a launch attempts a step out of order.
	ErrInvalidTransition = errors.New("invalid state transition")

	childTransitions = map[State][]State{
		StateIdle:         {StateCommandBuilt, StateFailed},
		StateCommandBuilt: {StateSpawned, StateFailed},
		StateSpawned:      {StateWaited},
		StateWaited:       {StateSucceeded, StateFailed},
	}

	embeddedTransitions = map[State][]State{
		StateIdle:        {StateConfigured, StateFailed},
		StateConfigured:  {StateInitialized, StateFailed},
		StateInitialized: {StateRunning},
		StateRunning:     {StateTerminated},
	}
)

type (
	// State is one step of a launch strategy's state machine.
	State int32

	// InvalidStateError is returned when a State value is not recognized.
	// It wraps ErrInvalidState for errors.Is() compatibility.
	InvalidStateError struct {
		Value State
	}

	// InvalidTransitionError is returned when a strategy steps from a state
	// that does not lead to the requested one.
	InvalidTransitionError struct {
		From State
		To   State
	}

	// stateMachine tracks one launch attempt. It is owned by a single call to
	// Launch and never shared.
	stateMachine struct {
		allowed map[State][]State
		history []State
	}
)

// String returns a human-readable representation of the launch state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateCommandBuilt:
		return "command-built"
	case StateSpawned:
		return "spawned"
	case StateWaited:
		return "waited"
	case StateSucceeded:
		return "succeeded"
	case StateConfigured:
		return "configured"
	case StateInitialized:
		return "initialized"
	case StateRunning:
		return "running"
	case StateTerminated:
		return "terminated"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Validate returns nil if the State is one of the defined launch states,
// or an error wrapping ErrInvalidState otherwise.
func (s State) Validate() error {
	if s < StateIdle || s > StateFailed {
		return &InvalidStateError{Value: s}
	}
	return nil
}

// IsTerminal reports whether no further transition can leave s.
func (s State) IsTerminal() bool {
	return s == StateSucceeded || s == StateTerminated || s == StateFailed
}

// Error implements the error interface for InvalidStateError.
func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("invalid launch state %d", int32(e.Value))
}

// Unwrap returns ErrInvalidState for errors.Is() compatibility.
func (e *InvalidStateError) Unwrap() error { return ErrInvalidState }

// Error implements the error interface for InvalidTransitionError.
func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot move launch from %s to %s", e.From, e.To)
}

// Unwrap returns ErrInvalidTransition for errors.Is() compatibility.
func (e *InvalidTransitionError) Unwrap() error { return ErrInvalidTransition }

func newStateMachine(allowed map[State][]State) *stateMachine {
	return &stateMachine{allowed: allowed, history: []State{StateIdle}}
}

// Current returns the latest state.
func (m *stateMachine) Current() State {
	return m.history[len(m.history)-1]
}

// advance moves to next when the current state allows it.
func (m *stateMachine) advance(next State) error {
	cur := m.Current()
	if !slices.Contains(m.allowed[cur], next) {
		return &InvalidTransitionError{From: cur, To: next}
	}
	m.history = append(m.history, next)
	return nil
}

// mustAdvance is advance for the fixed step sequences of the strategies,
// where an out-of-order step is a programming error.
func (m *stateMachine) mustAdvance(next State) {
	if err := m.advance(next); err != nil {
		panic(err)
	}
}

// History returns every state visited, starting with StateIdle.
func (m *stateMachine) History() []State {
	return slices.Clone(m.history)
}

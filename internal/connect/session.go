// Package connect tracks the "draw a connection" gesture: pick a source
// block, then a target, then hand the pair to the graph store.
package connect

import (
	"errors"
	"fmt"

	"github.com/msalah0e/tourney/internal/graph"
)

// ErrNotConnecting is returned by Complete when no gesture is in progress.
var ErrNotConnecting = errors.New("no connection in progress")

// Connector is the part of graph.Store a session needs.
type Connector interface {
	AddConnection(from, to string) (*graph.Connection, error)
}

// State is the session state.
type State int

const (
	Idle State = iota
	Connecting
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Connecting:
		return "connecting"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Session is a small state machine: Idle -> Connecting(source) -> Idle.
// The zero value is Idle and ready to use.
type Session struct {
	state  State
	source string
}

// State returns the current state.
func (s *Session) State() State { return s.state }

// Active reports whether a gesture is in progress.
func (s *Session) Active() bool { return s.state == Connecting }

// Source returns the source block id, or "" when idle.
func (s *Session) Source() string { return s.source }

// Start begins a gesture from blockID. While a gesture is already in
// progress the call is ignored and Start returns false, so a half-drawn
// connection is never silently abandoned.
func (s *Session) Start(blockID string) bool {
	if s.state == Connecting {
		return false
	}
	s.state = Connecting
	s.source = blockID
	return true
}

// Complete ends the gesture at target. The session returns to Idle whether
// or not a connection was created; a failed attempt returns an error
// wrapping graph.ErrInvalidConnection.
func (s *Session) Complete(store Connector, target string) (*graph.Connection, error) {
	if s.state != Connecting {
		return nil, ErrNotConnecting
	}
	source := s.source
	s.reset()

	if target == source {
		return nil, fmt.Errorf("%w: %s connects to itself", graph.ErrInvalidConnection, source)
	}
	return store.AddConnection(source, target)
}

// Cancel abandons the gesture without touching the store.
func (s *Session) Cancel() {
	s.reset()
}

func (s *Session) reset() {
	s.state = Idle
	s.source = ""
}

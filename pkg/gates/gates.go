// Package gates implements per-player turn gates: single-producer,
// single-consumer-per-slot signals with exactly-once consume semantics.
package gates

import "github.com/cbodonnell/wordduel/pkg/game/types"

// TurnGates holds one gate per player slot. A gate buffers at most one
// pending open, so a duplicate open while one is pending collapses into it
// and a handler can never double-advance.
type TurnGates struct {
	ch [types.NumPlayers]chan struct{}
}

func New() *TurnGates {
	g := &TurnGates{}
	for i := range g.ch {
		g.ch[i] = make(chan struct{}, 1)
	}
	return g
}

// Open posts one signal to the slot's gate. A no-op if a signal is
// already pending.
func (g *TurnGates) Open(slot int) {
	select {
	case g.ch[slot] <- struct{}{}:
	default:
	}
}

// Wait returns the slot's gate channel for use in a select. Receiving
// consumes the pending open.
func (g *TurnGates) Wait(slot int) <-chan struct{} {
	return g.ch[slot]
}

// Drain discards a pending open, if any. Used when a handler terminates
// so a leftover signal cannot wake a future occupant of the slot early.
func (g *TurnGates) Drain(slot int) {
	select {
	case <-g.ch[slot]:
	default:
	}
}

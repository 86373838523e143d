// Package scheduler decides whose turn gate to open next. It is a polling
// state-machine loop: a short bounded sleep between inspections of the
// shared state, a deliberate simplicity/latency trade-off at
// human-interaction timescale rather than an oversight.
package scheduler

import (
	"context"
	"time"

	"github.com/cbodonnell/wordduel/pkg/eventlog"
	"github.com/cbodonnell/wordduel/pkg/game"
	"github.com/cbodonnell/wordduel/pkg/game/types"
	"github.com/cbodonnell/wordduel/pkg/gates"
)

// DefaultPollInterval is the sleep between scheduler polls.
const DefaultPollInterval = 10 * time.Millisecond

type Scheduler struct {
	state    *game.StateManager
	gates    *gates.TurnGates
	events   *eventlog.Logger
	interval time.Duration
}

type NewSchedulerOptions struct {
	State *game.StateManager
	Gates *gates.TurnGates
	Events *eventlog.Logger
	// Interval overrides DefaultPollInterval when positive.
	Interval time.Duration
}

func NewScheduler(opts NewSchedulerOptions) *Scheduler {
	interval := opts.Interval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Scheduler{
		state:    opts.State,
		gates:    opts.Gates,
		events:   opts.Events,
		interval: interval,
	}
}

// Start runs the polling loop until the context is cancelled or the
// shutdown flag is set.
func (sc *Scheduler) Start(ctx context.Context) {
	ticker := time.NewTicker(sc.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if stop := sc.Tick(); stop {
				return
			}
		}
	}
}

// Tick runs one scheduler poll. It reports true when the shutdown flag is
// set and the loop should stop.
func (sc *Scheduler) Tick() bool {
	var stop bool
	sc.state.Update(func(s *types.GameState) {
		if s.ShuttingDown {
			stop = true
			return
		}

		switch s.Phase {
		case types.PhaseWaitingPlayers:
			if s.Connected[types.SlotWordmaster] &&
				s.Connected[types.SlotGuesser1] &&
				s.Connected[types.SlotGuesser2] {
				s.Phase = types.PhaseWaitingWord
				s.GameNumber++
				s.CurrentTurn = types.SlotWordmaster
				s.TurnGated = true
				sc.events.Printf("All players connected. Starting game #%d. Waiting for wordmaster.", s.GameNumber)
				sc.gates.Open(types.SlotWordmaster)
			}

		case types.PhaseWaitingWord:
			// The wordmaster handler flips to InProgress. TurnGated marks
			// an outstanding prompt; a disconnect clears it, so a refilled
			// slot 0 gets the gate again.
			if !s.TurnGated && s.Connected[types.SlotWordmaster] {
				s.TurnGated = true
				sc.gates.Open(types.SlotWordmaster)
			}

		case types.PhaseInProgress:
			if !s.Connected[types.SlotGuesser1] || !s.Connected[types.SlotGuesser2] {
				s.Phase = types.PhaseGameOver
				sc.events.Printf("A guesser disconnected. Ending game #%d.", s.GameNumber)
				return
			}

			// open exactly one gate per (position, turn) pair
			if !s.TurnGated {
				next := s.CurrentTurn
				if next != types.SlotGuesser1 && next != types.SlotGuesser2 {
					next = types.SlotGuesser1
				}
				s.CurrentTurn = next
				s.TurnGated = true
				sc.events.Printf("Turn: player %d (pass=%d/%d pos=%d display=%s scoreA=%d scoreB=%d)",
					next, s.PassNumber+1, types.MaxPasses, s.PositionIndex+1,
					s.Display, s.Scores[types.SlotGuesser1], s.Scores[types.SlotGuesser2])
				sc.gates.Open(next)
			}

		case types.PhaseGameOver:
			game.ResetForNextMatch(s)
			s.TurnGated = true
			sc.events.Printf("Reset complete. Waiting for wordmaster for game #%d.", s.GameNumber)
			sc.gates.Open(types.SlotWordmaster)
		}
	})
	return stop
}

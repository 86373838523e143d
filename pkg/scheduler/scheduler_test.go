package scheduler

import (
	"io"
	"testing"

	"github.com/cbodonnell/wordduel/pkg/eventlog"
	"github.com/cbodonnell/wordduel/pkg/game"
	"github.com/cbodonnell/wordduel/pkg/game/types"
	"github.com/cbodonnell/wordduel/pkg/gates"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

func newTestScheduler(t *testing.T) (*Scheduler, *game.StateManager, *gates.TurnGates) {
	t.Helper()
	state := game.NewStateManager()
	turnGates := gates.New()
	events := eventlog.NewWithWriter(nopWriteCloser{io.Discard}, 64)
	t.Cleanup(events.Stop)

	sc := NewScheduler(NewSchedulerOptions{
		State:  state,
		Gates:  turnGates,
		Events: events,
	})
	return sc, state, turnGates
}

func gateOpen(g *gates.TurnGates, slot int) bool {
	select {
	case <-g.Wait(slot):
		return true
	default:
		return false
	}
}

func connectAll(state *game.StateManager) {
	state.Update(func(s *types.GameState) {
		for i := range s.Connected {
			s.Connected[i] = true
		}
	})
}

func TestWaitingPlayersHoldsUntilAllConnected(t *testing.T) {
	sc, state, turnGates := newTestScheduler(t)

	state.Update(func(s *types.GameState) {
		s.Connected[types.SlotWordmaster] = true
		s.Connected[types.SlotGuesser1] = true
	})
	sc.Tick()

	snap := state.Snapshot()
	assert.Equal(t, types.PhaseWaitingPlayers, snap.Phase)
	assert.False(t, gateOpen(turnGates, types.SlotWordmaster))
}

func TestWaitingPlayersToWaitingWord(t *testing.T) {
	sc, state, turnGates := newTestScheduler(t)
	connectAll(state)

	sc.Tick()

	snap := state.Snapshot()
	assert.Equal(t, types.PhaseWaitingWord, snap.Phase)
	assert.Equal(t, 1, snap.GameNumber)
	assert.True(t, gateOpen(turnGates, types.SlotWordmaster))

	// the transition fires once
	sc.Tick()
	assert.Equal(t, 1, state.Snapshot().GameNumber)
	assert.False(t, gateOpen(turnGates, types.SlotWordmaster))
}

func TestInProgressGatesExactlyOncePerTurn(t *testing.T) {
	sc, state, turnGates := newTestScheduler(t)
	connectAll(state)
	sc.Tick()
	gateOpen(turnGates, types.SlotWordmaster)

	state.Update(func(s *types.GameState) {
		game.StartMatch(s, "CRANE")
	})

	sc.Tick()
	snap := state.Snapshot()
	assert.True(t, snap.TurnGated)
	assert.Equal(t, types.SlotGuesser1, snap.CurrentTurn)
	require.True(t, gateOpen(turnGates, types.SlotGuesser1))

	// already gated: further polls must not open another gate
	sc.Tick()
	sc.Tick()
	assert.False(t, gateOpen(turnGates, types.SlotGuesser1))
	assert.False(t, gateOpen(turnGates, types.SlotGuesser2))
}

func TestWaitingWordRearmsAReconnectedWordmaster(t *testing.T) {
	sc, state, turnGates := newTestScheduler(t)
	connectAll(state)
	sc.Tick()
	gateOpen(turnGates, types.SlotWordmaster)

	// wordmaster drops before sending a word
	state.Update(func(s *types.GameState) {
		s.Connected[types.SlotWordmaster] = false
		s.TurnGated = false
	})
	sc.Tick()
	assert.False(t, gateOpen(turnGates, types.SlotWordmaster))

	// a new connection fills the slot and gets the gate again
	state.Update(func(s *types.GameState) {
		s.Connected[types.SlotWordmaster] = true
	})
	sc.Tick()
	assert.True(t, gateOpen(turnGates, types.SlotWordmaster))
	assert.Equal(t, types.PhaseWaitingWord, state.Snapshot().Phase)
}

func TestGuesserDisconnectForcesGameOver(t *testing.T) {
	sc, state, _ := newTestScheduler(t)
	connectAll(state)
	sc.Tick()
	state.Update(func(s *types.GameState) {
		game.StartMatch(s, "CRANE")
	})
	sc.Tick()

	state.Update(func(s *types.GameState) {
		s.Connected[types.SlotGuesser2] = false
	})
	sc.Tick()

	assert.Equal(t, types.PhaseGameOver, state.Snapshot().Phase)
}

func TestGameOverResetsAndReopensWordmaster(t *testing.T) {
	sc, state, turnGates := newTestScheduler(t)
	connectAll(state)
	sc.Tick()
	gateOpen(turnGates, types.SlotWordmaster)
	state.Update(func(s *types.GameState) {
		game.StartMatch(s, "CRANE")
		s.Scores[types.SlotGuesser1] = 3
		s.Display = "CRANE"
		s.Phase = types.PhaseGameOver
	})

	sc.Tick()

	snap := state.Snapshot()
	assert.Equal(t, types.PhaseWaitingWord, snap.Phase)
	assert.Empty(t, snap.SecretWord)
	assert.Equal(t, "_____", snap.Display)
	assert.Equal(t, 0, snap.Scores[types.SlotGuesser1])
	assert.Equal(t, 2, snap.GameNumber)
	assert.True(t, gateOpen(turnGates, types.SlotWordmaster))
}

func TestShutdownStopsTicking(t *testing.T) {
	sc, state, _ := newTestScheduler(t)
	state.Update(func(s *types.GameState) {
		s.ShuttingDown = true
	})
	assert.True(t, sc.Tick())
}

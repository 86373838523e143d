package gates

import (
	"testing"

	"github.com/cbodonnell/wordduel/pkg/game/types"
	"github.com/stretchr/testify/assert"
)

func pending(g *TurnGates, slot int) bool {
	select {
	case <-g.Wait(slot):
		return true
	default:
		return false
	}
}

func TestOpenThenWait(t *testing.T) {
	g := New()
	g.Open(types.SlotGuesser1)

	assert.True(t, pending(g, types.SlotGuesser1))
	// the signal is consumed exactly once
	assert.False(t, pending(g, types.SlotGuesser1))
}

func TestDoubleOpenCollapses(t *testing.T) {
	g := New()
	g.Open(types.SlotGuesser2)
	g.Open(types.SlotGuesser2)

	assert.True(t, pending(g, types.SlotGuesser2))
	assert.False(t, pending(g, types.SlotGuesser2), "a duplicate open must not double-advance")
}

func TestGatesAreIndependent(t *testing.T) {
	g := New()
	g.Open(types.SlotWordmaster)

	assert.False(t, pending(g, types.SlotGuesser1))
	assert.False(t, pending(g, types.SlotGuesser2))
	assert.True(t, pending(g, types.SlotWordmaster))
}

func TestDrain(t *testing.T) {
	g := New()
	g.Open(types.SlotGuesser1)
	g.Drain(types.SlotGuesser1)

	assert.False(t, pending(g, types.SlotGuesser1))
	// draining an empty gate must not block
	g.Drain(types.SlotGuesser1)
}

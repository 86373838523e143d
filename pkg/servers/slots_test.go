package servers

import (
	"testing"

	"github.com/cbodonnell/wordduel/pkg/game/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotManagerAssignsInConnectionOrder(t *testing.T) {
	m := NewSlotManager()

	for want := 0; want < types.NumPlayers; want++ {
		slot, ok := m.Acquire()
		require.True(t, ok)
		assert.Equal(t, want, slot)
	}

	_, ok := m.Acquire()
	assert.False(t, ok, "all slots taken")
}

func TestSlotManagerReusesReleasedSlot(t *testing.T) {
	m := NewSlotManager()
	for i := 0; i < types.NumPlayers; i++ {
		m.Acquire()
	}

	m.Release(types.SlotGuesser1)

	slot, ok := m.Acquire()
	require.True(t, ok)
	assert.Equal(t, types.SlotGuesser1, slot)

	_, ok = m.Acquire()
	assert.False(t, ok)
}

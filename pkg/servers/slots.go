package servers

import (
	"sync"

	"github.com/cbodonnell/wordduel/pkg/game/types"
)

// SlotManager assigns player slots in connection order: the first
// connection becomes the wordmaster, the next two the guessers. A slot
// freed by a disconnect can be taken by a later connection.
type SlotManager struct {
	lock  sync.Mutex
	taken [types.NumPlayers]bool
}

func NewSlotManager() *SlotManager {
	return &SlotManager{}
}

// Acquire claims the lowest free slot. It reports false when all slots
// are taken.
func (m *SlotManager) Acquire() (int, bool) {
	m.lock.Lock()
	defer m.lock.Unlock()
	for slot := range m.taken {
		if !m.taken[slot] {
			m.taken[slot] = true
			return slot, true
		}
	}
	return 0, false
}

// Release frees a slot.
func (m *SlotManager) Release(slot int) {
	m.lock.Lock()
	defer m.lock.Unlock()
	if slot >= 0 && slot < len(m.taken) {
		m.taken[slot] = false
	}
}

package game

import (
	"sync"

	"github.com/cbodonnell/wordduel/pkg/game/types"
)

// StateManager provides mutex-guarded access to the shared game state.
// Every read used for a decision and every write goes through Update or View.
type StateManager struct {
	lock  sync.Mutex
	state *types.GameState
}

func NewStateManager() *StateManager {
	return &StateManager{
		state: &types.GameState{
			Phase:   types.PhaseWaitingPlayers,
			Display: types.HiddenDisplay(),
		},
	}
}

// Update runs fn with the state mutex held. fn may mutate the state.
func (m *StateManager) Update(fn func(s *types.GameState)) {
	m.lock.Lock()
	defer m.lock.Unlock()
	fn(m.state)
}

// View runs fn with the state mutex held. fn must not mutate the state.
func (m *StateManager) View(fn func(s *types.GameState)) {
	m.lock.Lock()
	defer m.lock.Unlock()
	fn(m.state)
}

// Snapshot returns a copy of the current state.
func (m *StateManager) Snapshot() types.GameState {
	m.lock.Lock()
	defer m.lock.Unlock()
	return *m.state
}

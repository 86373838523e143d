package scores

import (
	"context"
	"fmt"
	"sync"

	"github.com/cbodonnell/wordduel/pkg/game/types"
)

// Keeper holds the in-memory score table behind its own mutex, kept
// separate from the game-state mutex so score I/O never contends with
// gameplay progress.
type Keeper struct {
	lock  sync.Mutex
	table Table
	repo  Repository
}

func NewKeeper(repo Repository) *Keeper {
	return &Keeper{
		table: DefaultTable(),
		repo:  repo,
	}
}

// Load replaces the in-memory table with the stored one, defaulting when
// no record exists.
func (k *Keeper) Load(ctx context.Context) error {
	table, err := k.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load score table: %w", err)
	}
	k.lock.Lock()
	defer k.lock.Unlock()
	k.table = table
	return nil
}

// RecordWin increments the winner's cumulative wins, refreshes its stored
// name from the live player name if known, and rewrites the whole table to
// storage immediately. A draw (winner outside the guesser slots) is a no-op.
func (k *Keeper) RecordWin(ctx context.Context, winner int, liveName string) error {
	if winner != types.SlotGuesser1 && winner != types.SlotGuesser2 {
		return nil
	}

	k.lock.Lock()
	defer k.lock.Unlock()

	k.table[winner].Wins++
	if liveName != "" {
		k.table[winner].Name = liveName
	}

	if err := k.repo.Save(ctx, k.table); err != nil {
		return fmt.Errorf("failed to save score table: %w", err)
	}
	return nil
}

// Snapshot returns a copy of the current table.
func (k *Keeper) Snapshot() Table {
	k.lock.Lock()
	defer k.lock.Unlock()
	return k.table
}

// Package scores persists cumulative win counts across server runs.
package scores

import (
	"context"

	"github.com/cbodonnell/wordduel/pkg/game/types"
)

const (
	defaultNameGuesser1 = "GuesserA"
	defaultNameGuesser2 = "GuesserB"
)

// Entry is the persisted record for one guesser slot.
type Entry struct {
	ID   int
	Wins int
	Name string
}

// Table holds one entry per player slot. Only the guesser slots (1 and 2)
// carry meaningful data.
type Table [types.NumPlayers]Entry

// DefaultTable returns the table used when no prior record exists:
// placeholder names with zero wins.
func DefaultTable() Table {
	var t Table
	for i := range t {
		t[i].ID = i
	}
	t[types.SlotGuesser1].Name = defaultNameGuesser1
	t[types.SlotGuesser2].Name = defaultNameGuesser2
	return t
}

// Repository loads and stores the score table. Save overwrites the entire
// stored table (full rewrite, not append).
type Repository interface {
	Load(ctx context.Context) (Table, error)
	Save(ctx context.Context, table Table) error
	Close(ctx context.Context) error
}

type ErrNotFound struct {
}

func (e *ErrNotFound) Error() string {
	return "not found"
}

func IsNotFound(err error) bool {
	_, ok := err.(*ErrNotFound)
	return ok
}

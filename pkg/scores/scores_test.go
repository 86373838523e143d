package scores

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/cbodonnell/wordduel/pkg/game/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileRepositoryDefaultsOnMissingFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "scores.txt")
	repo := NewFileRepository(path)

	table, err := repo.Load(ctx)
	require.NoError(t, err)

	assert.Equal(t, "GuesserA", table[types.SlotGuesser1].Name)
	assert.Equal(t, "GuesserB", table[types.SlotGuesser2].Name)
	assert.Equal(t, 0, table[types.SlotGuesser1].Wins)
	assert.Equal(t, 0, table[types.SlotGuesser2].Wins)

	// the missing file is created so later saves have a home
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestFileRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "scores.txt")
	repo := NewFileRepository(path)

	table := DefaultTable()
	table[types.SlotGuesser1].Wins = 3
	table[types.SlotGuesser1].Name = "Alice"
	table[types.SlotGuesser2].Wins = 1
	table[types.SlotGuesser2].Name = "Bob"
	require.NoError(t, repo.Save(ctx, table))

	// a fresh repository simulates a server restart
	reloaded, err := NewFileRepository(path).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, table[types.SlotGuesser1], reloaded[types.SlotGuesser1])
	assert.Equal(t, table[types.SlotGuesser2], reloaded[types.SlotGuesser2])
}

func TestFileRepositoryNameWithSpaces(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "scores.txt")
	repo := NewFileRepository(path)

	table := DefaultTable()
	table[types.SlotGuesser1].Name = "Alice the Brave"
	require.NoError(t, repo.Save(ctx, table))

	reloaded, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Alice the Brave", reloaded[types.SlotGuesser1].Name)
}

func TestFileRepositorySkipsMalformedLines(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "scores.txt")
	content := "1 3 Alice\ngarbage line\n9 2 OutOfRange\n2 -1 Bob\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	table, err := NewFileRepository(path).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, table[types.SlotGuesser1].Wins)
	assert.Equal(t, "Alice", table[types.SlotGuesser1].Name)
	// the malformed guesser-2 line falls back to defaults
	assert.Equal(t, 0, table[types.SlotGuesser2].Wins)
	assert.Equal(t, "GuesserB", table[types.SlotGuesser2].Name)
}

func TestKeeperRecordWin(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "scores.txt")
	keeper := NewKeeper(NewFileRepository(path))
	require.NoError(t, keeper.Load(ctx))

	require.NoError(t, keeper.RecordWin(ctx, types.SlotGuesser2, "Bob"))
	require.NoError(t, keeper.RecordWin(ctx, types.SlotGuesser2, "Bob"))
	require.NoError(t, keeper.RecordWin(ctx, types.SlotGuesser1, "Alice"))

	table := keeper.Snapshot()
	assert.Equal(t, 1, table[types.SlotGuesser1].Wins)
	assert.Equal(t, "Alice", table[types.SlotGuesser1].Name)
	assert.Equal(t, 2, table[types.SlotGuesser2].Wins)
	assert.Equal(t, "Bob", table[types.SlotGuesser2].Name)

	// every win is rewritten to storage immediately
	reloaded, err := NewFileRepository(path).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, table[types.SlotGuesser1], reloaded[types.SlotGuesser1])
	assert.Equal(t, table[types.SlotGuesser2], reloaded[types.SlotGuesser2])
}

func TestKeeperRecordWinDrawIsNoop(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "scores.txt")
	keeper := NewKeeper(NewFileRepository(path))
	require.NoError(t, keeper.Load(ctx))

	require.NoError(t, keeper.RecordWin(ctx, 0, ""))

	table := keeper.Snapshot()
	assert.Equal(t, 0, table[types.SlotGuesser1].Wins)
	assert.Equal(t, 0, table[types.SlotGuesser2].Wins)
}

func TestKeeperKeepsStoredNameWhenLiveNameUnknown(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "scores.txt")
	keeper := NewKeeper(NewFileRepository(path))
	require.NoError(t, keeper.Load(ctx))

	require.NoError(t, keeper.RecordWin(ctx, types.SlotGuesser1, ""))

	table := keeper.Snapshot()
	assert.Equal(t, 1, table[types.SlotGuesser1].Wins)
	assert.Equal(t, "GuesserA", table[types.SlotGuesser1].Name)
}

package scores

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/cbodonnell/wordduel/pkg/game/types"
)

// FileRepository stores the score table as a plain text file, one line per
// guesser slot: "<id> <wins> <name>".
type FileRepository struct {
	path string
}

func NewFileRepository(path string) *FileRepository {
	return &FileRepository{
		path: path,
	}
}

func (r *FileRepository) Load(_ context.Context) (Table, error) {
	table := DefaultTable()

	f, err := os.Open(r.path)
	if err != nil {
		if !os.IsNotExist(err) {
			return table, fmt.Errorf("failed to open score file: %w", err)
		}
		// first run: create an empty file so later saves have a home
		created, err := os.Create(r.path)
		if err != nil {
			return table, fmt.Errorf("failed to create score file: %w", err)
		}
		created.Close()
		return table, nil
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, " ", 3)
		if len(parts) != 3 {
			continue
		}
		id, err := strconv.Atoi(parts[0])
		if err != nil || id < 0 || id >= types.NumPlayers {
			continue
		}
		wins, err := strconv.Atoi(parts[1])
		if err != nil || wins < 0 {
			continue
		}
		table[id].Wins = wins
		table[id].Name = parts[2]
	}
	if err := scanner.Err(); err != nil {
		return table, fmt.Errorf("failed to read score file: %w", err)
	}

	return table, nil
}

func (r *FileRepository) Save(_ context.Context, table Table) error {
	var b strings.Builder
	for _, slot := range []int{types.SlotGuesser1, types.SlotGuesser2} {
		name := table[slot].Name
		if name == "" {
			if slot == types.SlotGuesser1 {
				name = defaultNameGuesser1
			} else {
				name = defaultNameGuesser2
			}
		}
		fmt.Fprintf(&b, "%d %d %s\n", slot, table[slot].Wins, name)
	}
	if err := os.WriteFile(r.path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("failed to write score file: %w", err)
	}
	return nil
}

func (r *FileRepository) Close(_ context.Context) error {
	return nil
}

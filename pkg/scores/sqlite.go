package scores

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/cbodonnell/wordduel/pkg/game/types"
	_ "github.com/mattn/go-sqlite3"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS scores (
	player_id INTEGER PRIMARY KEY,
	wins INTEGER NOT NULL,
	name TEXT NOT NULL
);
`

// SQLiteRepository stores the score table in a SQLite database.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(ctx context.Context, path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %v", err)
	}

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		return nil, fmt.Errorf("failed to create scores table: %v", err)
	}

	return &SQLiteRepository{
		db: db,
	}, nil
}

func (r *SQLiteRepository) Load(ctx context.Context) (Table, error) {
	table := DefaultTable()

	rows, err := r.db.QueryContext(ctx, `SELECT player_id, wins, name FROM scores;`)
	if err != nil {
		return table, fmt.Errorf("failed to query scores: %v", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id, wins int
		var name string
		if err := rows.Scan(&id, &wins, &name); err != nil {
			return table, fmt.Errorf("failed to scan score row: %v", err)
		}
		if id < 0 || id >= types.NumPlayers {
			continue
		}
		table[id].Wins = wins
		table[id].Name = name
	}
	if err := rows.Err(); err != nil {
		return table, fmt.Errorf("failed to read score rows: %v", err)
	}

	return table, nil
}

func (r *SQLiteRepository) Save(ctx context.Context, table Table) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}

	for _, slot := range []int{types.SlotGuesser1, types.SlotGuesser2} {
		q := `
		INSERT OR REPLACE INTO scores (player_id, wins, name)
		VALUES (?, ?, ?);
		`
		if _, err := tx.ExecContext(ctx, q, slot, table[slot].Wins, table[slot].Name); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert score: %v", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %v", err)
	}

	return nil
}

func (r *SQLiteRepository) Close(_ context.Context) error {
	return r.db.Close()
}

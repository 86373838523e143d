package scores

import (
	"context"
	"fmt"

	"github.com/cbodonnell/wordduel/pkg/game/types"
	"github.com/jackc/pgx/v5"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS scores (
	player_id INTEGER PRIMARY KEY,
	wins INTEGER NOT NULL,
	name TEXT NOT NULL
);
`

// PostgresRepository stores the score table in a Postgres database.
type PostgresRepository struct {
	conn *pgx.Conn
}

func NewPostgresRepository(ctx context.Context, connStr string) (*PostgresRepository, error) {
	conn, err := pgx.Connect(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %v", err)
	}

	if _, err := conn.Exec(ctx, postgresSchema); err != nil {
		return nil, fmt.Errorf("failed to create scores table: %v", err)
	}

	return &PostgresRepository{
		conn: conn,
	}, nil
}

func (r *PostgresRepository) Load(ctx context.Context) (Table, error) {
	table := DefaultTable()

	rows, err := r.conn.Query(ctx, `SELECT player_id, wins, name FROM scores;`)
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

func (r *PostgresRepository) Save(ctx context.Context, table Table) error {
	tx, err := r.conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}

	for _, slot := range []int{types.SlotGuesser1, types.SlotGuesser2} {
		q := `
		INSERT INTO scores (player_id, wins, name) VALUES ($1, $2, $3)
		ON CONFLICT (player_id) DO UPDATE SET wins = $2, name = $3;
		`
		if _, err := tx.Exec(ctx, q, slot, table[slot].Wins, table[slot].Name); err != nil {
			tx.Rollback(ctx)
			return fmt.Errorf("failed to insert score: %v", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %v", err)
	}

	return nil
}

func (r *PostgresRepository) Close(ctx context.Context) error {
	return r.conn.Close(ctx)
}

// Package postgres stores maze completion times in PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dkeye/mazetown/internal/domain"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	createCompletionTimeTable = `
CREATE TABLE IF NOT EXISTS maze_completion_time (
	id        BIGSERIAL PRIMARY KEY,
	player_id TEXT   NOT NULL,
	username  TEXT   NOT NULL,
	time      BIGINT NOT NULL
)`
	getMazeCompletionTime    = `SELECT player_id, username, time FROM maze_completion_time ORDER BY time ASC, id ASC`
	insertMazeCompletionTime = `INSERT INTO maze_completion_time (player_id, username, time) VALUES ($1, $2, $3)`
	deleteMazeCompletionTime = `DELETE FROM maze_completion_time WHERE username = $1`
)

type Leaderboard struct {
	db *sql.DB
}

// Open connects to dsn, checks the connection and creates the table if needed.
func Open(ctx context.Context, dsn string) (*Leaderboard, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	lb := New(db)
	if err := lb.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	log.Info().Str("module", "storage.postgres").Msg("leaderboard ready")
	return lb, nil
}

func New(db *sql.DB) *Leaderboard {
	return &Leaderboard{db: db}
}

func (l *Leaderboard) Migrate(ctx context.Context) error {
	if _, err := l.db.ExecContext(ctx, createCompletionTimeTable); err != nil {
		return fmt.Errorf("create maze_completion_time: %w", err)
	}
	return nil
}

func (l *Leaderboard) Insert(ctx context.Context, row domain.CompletionTime) error {
	if _, err := l.db.ExecContext(ctx, insertMazeCompletionTime, string(row.PlayerID), row.Username, row.Time); err != nil {
		return fmt.Errorf("insert completion time: %w", err)
	}
	return nil
}

func (l *Leaderboard) Query(ctx context.Context) ([]domain.CompletionTime, error) {
	rows, err := l.db.QueryContext(ctx, getMazeCompletionTime)
	if err != nil {
		return nil, fmt.Errorf("query completion times: %w", err)
	}
	defer rows.Close()

	out := make([]domain.CompletionTime, 0)
	for rows.Next() {
		var (
			row      domain.CompletionTime
			playerID string
		)
		if err := rows.Scan(&playerID, &row.Username, &row.Time); err != nil {
			return nil, fmt.Errorf("scan completion time: %w", err)
		}
		row.PlayerID = domain.PlayerID(playerID)
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate completion times: %w", err)
	}
	return out, nil
}

func (l *Leaderboard) Delete(ctx context.Context, username string) error {
	if _, err := l.db.ExecContext(ctx, deleteMazeCompletionTime, username); err != nil {
		return fmt.Errorf("delete completion times: %w", err)
	}
	return nil
}

func (l *Leaderboard) Close() error {
	return l.db.Close()
}

// Package memory keeps the leaderboard in process memory. It backs tests and
// deployments without a database_url.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/dkeye/mazetown/internal/domain"
)

type Leaderboard struct {
	mu   sync.RWMutex
	rows []domain.CompletionTime
}

func NewLeaderboard() *Leaderboard {
	return &Leaderboard{}
}

func (l *Leaderboard) Insert(ctx context.Context, row domain.CompletionTime) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.rows = append(l.rows, row)
	return nil
}

// Query returns a copy ordered by time; equal times keep insertion order.
func (l *Leaderboard) Query(ctx context.Context) ([]domain.CompletionTime, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	l.mu.RLock()
	out := slices.Clone(l.rows)
	l.mu.RUnlock()
	slices.SortStableFunc(out, func(a, b domain.CompletionTime) int {
		switch {
		case a.Time < b.Time:
			return -1
		case a.Time > b.Time:
			return 1
		}
		return 0
	})
	if out == nil {
		out = []domain.CompletionTime{}
	}
	return out, nil
}

func (l *Leaderboard) Delete(ctx context.Context, username string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.rows = slices.DeleteFunc(l.rows, func(r domain.CompletionTime) bool { return r.Username == username })
	return nil
}

package core

import (
	"context"
	"fmt"
	"sync"

	"github.com/dkeye/mazetown/internal/domain"
)

// recordingListener keeps a textual log of every callback it sees.
type recordingListener struct {
	id domain.PlayerID

	mu     sync.Mutex
	events []string
}

func newRecordingListener(id domain.PlayerID) *recordingListener {
	return &recordingListener{id: id}
}

func (r *recordingListener) record(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, fmt.Sprintf(format, args...))
}

func (r *recordingListener) Events() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	copy(out, r.events)
	return out
}

func (r *recordingListener) Count(event string) int {
	n := 0
	for _, e := range r.Events() {
		if e == event {
			n++
		}
	}
	return n
}

func (r *recordingListener) ListeningPlayerID() domain.PlayerID { return r.id }

func (r *recordingListener) OnPlayerJoined(p *Player)       { r.record("joined %s", p.ID()) }
func (r *recordingListener) OnPlayerMoved(p *Player)        { r.record("moved %s", p.ID()) }
func (r *recordingListener) OnPlayerDisconnected(p *Player) { r.record("disconnected %s", p.ID()) }
func (r *recordingListener) OnTownDestroyed()               { r.record("destroyed") }

func (r *recordingListener) OnMazeGameRequested(sender, recipient *Player) {
	r.record("requested %s %s", sender.ID(), recipient.ID())
}

func (r *recordingListener) OnMazeGameResponded(sender, recipient *Player, accepted bool) {
	r.record("responded %s %s %t", sender.ID(), recipient.ID(), accepted)
}

func (r *recordingListener) OnFinishGame(finished, partner *Player, score int64, gaveUp bool) {
	partnerID := domain.PlayerID("<nil>")
	if partner != nil {
		partnerID = partner.ID()
	}
	r.record("finished %s %s %d %t", finished.ID(), partnerID, score, gaveUp)
}

func (r *recordingListener) OnFullMazeGameRequested(sender *Player) {
	r.record("full %s", sender.ID())
}

func (r *recordingListener) OnUpdatePlayerRaceSettings(p *Player, enabled bool) {
	r.record("race_settings %s %t", p.ID(), enabled)
}

// panickingListener blows up on every callback.
type panickingListener struct{ recordingListener }

func (p *panickingListener) OnPlayerMoved(*Player) { panic("listener exploded") }

// blockingLeaderboard holds every Insert until release is closed.
type blockingLeaderboard struct {
	entered chan struct{}
	release chan struct{}

	mu   sync.Mutex
	rows []domain.CompletionTime
}

func newBlockingLeaderboard() *blockingLeaderboard {
	return &blockingLeaderboard{
		entered: make(chan struct{}, 8),
		release: make(chan struct{}),
	}
}

func (b *blockingLeaderboard) Insert(ctx context.Context, row domain.CompletionTime) error {
	b.entered <- struct{}{}
	select {
	case <-b.release:
	case <-ctx.Done():
		return ctx.Err()
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.rows = append(b.rows, row)
	return nil
}

func (b *blockingLeaderboard) Query(context.Context) ([]domain.CompletionTime, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]domain.CompletionTime(nil), b.rows...), nil
}

func (b *blockingLeaderboard) Delete(context.Context, string) error { return nil }

package core

import (
	"context"

	"github.com/dkeye/mazetown/internal/domain"
)

//go:generate mockgen -destination=mocks/mock_interfaces.go -package=mocks . VideoClient,LeaderboardStore

// TownListener observes the events of one town.
// It is owned by the transport layer, one per live connection.
// Callbacks run synchronously while the town is locked: an implementation
// must not call back into the TownController and must not keep the *Player.
type TownListener interface {
	// ListeningPlayerID scopes the listener to one player; empty means unscoped.
	ListeningPlayerID() domain.PlayerID

	OnPlayerJoined(newPlayer *Player)
	OnPlayerMoved(movedPlayer *Player)
	OnPlayerDisconnected(removedPlayer *Player)
	OnTownDestroyed()

	OnMazeGameRequested(sender, recipient *Player)
	OnMazeGameResponded(sender, recipient *Player, accepted bool)
	// OnFinishGame reports a finish. partner is nil when the opponent already left.
	OnFinishGame(finished, partner *Player, score int64, gaveUp bool)
	OnFullMazeGameRequested(sender *Player)
	OnUpdatePlayerRaceSettings(player *Player, enabled bool)
}

// VideoClient provisions video-call credentials for a (town, player) pair.
type VideoClient interface {
	AccessToken(ctx context.Context, townID domain.TownID, playerID domain.PlayerID) (string, error)
}

// LeaderboardStore is the durable table of completed race times.
type LeaderboardStore interface {
	Insert(ctx context.Context, row domain.CompletionTime) error
	// Query returns every row ordered ascending by time.
	Query(ctx context.Context) ([]domain.CompletionTime, error)
	Delete(ctx context.Context, username string) error
}

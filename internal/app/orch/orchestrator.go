package orch

import (
	"context"
	"errors"

	"github.com/dkeye/mazetown/internal/app"
	"github.com/dkeye/mazetown/internal/core"
	"github.com/dkeye/mazetown/internal/domain"
	"github.com/rs/zerolog/log"
)

var (
	ErrTownNotFound    = errors.New("town not found")
	ErrSessionNotFound = errors.New("session not found")
	ErrRateLimited     = errors.New("too many invites")
)

// Orchestrator is the entry point the transports call. It resolves towns and
// sessions and hands the action to the owning TownController.
type Orchestrator struct {
	Registry    *app.Registry
	Leaderboard core.LeaderboardStore
	Limiter     *app.InviteRateLimiter
	Policy      app.Policy
}

// Join creates a player named username in the town and returns its session.
func (o *Orchestrator) Join(ctx context.Context, townID domain.TownID, username string) (*core.TownController, *core.PlayerSession, error) {
	town, ok := o.Registry.GetTown(townID)
	if !ok {
		return nil, nil, ErrTownNotFound
	}
	p, err := core.NewPlayer(username)
	if err != nil {
		return nil, nil, err
	}
	session, err := town.AddPlayer(ctx, p)
	if err != nil {
		return nil, nil, err
	}
	log.Info().Str("module", "app.orch").Str("town", string(townID)).Str("player", string(p.ID())).Msg("joined")
	return town, session, nil
}

// Attach resolves the session a live connection belongs to.
func (o *Orchestrator) Attach(townID domain.TownID, token string) (*core.TownController, *core.PlayerSession, error) {
	town, ok := o.Registry.GetTown(townID)
	if !ok {
		return nil, nil, ErrTownNotFound
	}
	session, ok := town.GetSessionByToken(token)
	if !ok {
		return nil, nil, ErrSessionNotFound
	}
	return town, session, nil
}

// Detach unregisters the connection's listener and ends its session.
func (o *Orchestrator) Detach(town *core.TownController, session *core.PlayerSession, l core.TownListener) {
	if l != nil {
		town.RemoveTownListener(l)
	}
	town.DestroySession(session)
	if o.Limiter != nil {
		o.Limiter.Forget(session.Player().ID())
	}
	log.Info().Str("module", "app.orch").Str("town", string(town.ID())).Str("player", string(session.Player().ID())).Msg("detached")
}

func (o *Orchestrator) Move(town *core.TownController, session *core.PlayerSession, loc domain.Location) bool {
	return town.UpdatePlayerLocation(session.Player(), loc)
}

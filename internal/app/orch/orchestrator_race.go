package orch

import (
	"context"

	"github.com/dkeye/mazetown/internal/core"
	"github.com/dkeye/mazetown/internal/domain"
	"github.com/rs/zerolog/log"
)

// Invite sends a game invite from the session's player to recipientID.
func (o *Orchestrator) Invite(town *core.TownController, session *core.PlayerSession, recipientID domain.PlayerID) (bool, error) {
	sender := session.Player().ID()
	if o.Limiter != nil && !o.Limiter.Allow(sender) {
		log.Warn().Str("module", "app.orch").Str("town", string(town.ID())).Str("player", string(sender)).Msg("invite rate limited")
		return false, ErrRateLimited
	}
	return town.OnGameRequested(sender, recipientID), nil
}

// Respond answers the invite senderID sent to the session's player.
func (o *Orchestrator) Respond(town *core.TownController, session *core.PlayerSession, senderID domain.PlayerID, accepted bool) (bool, error) {
	return town.RespondToGameInvite(senderID, session.Player().ID(), accepted)
}

func (o *Orchestrator) Finish(ctx context.Context, town *core.TownController, session *core.PlayerSession, score int64, gaveUp bool) bool {
	return town.PlayerFinish(ctx, session.Player().ID(), score, gaveUp)
}

func (o *Orchestrator) RaceSettings(town *core.TownController, session *core.PlayerSession, enabled bool) bool {
	return town.UpdatePlayerRaceSettings(session.Player().ID(), enabled)
}

// QueryLeaderboard returns every recorded completion, fastest first.
func (o *Orchestrator) QueryLeaderboard(ctx context.Context) ([]domain.CompletionTime, error) {
	return o.Leaderboard.Query(ctx)
}

func (o *Orchestrator) DeleteLeaderboardEntry(ctx context.Context, username string) error {
	return o.Leaderboard.Delete(ctx, username)
}

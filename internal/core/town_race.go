package core

import (
	"context"

	"github.com/dkeye/mazetown/internal/domain"
	"github.com/rs/zerolog/log"
)

type finishOutcome struct {
	player     *Player
	opponentID domain.PlayerID
	opponent   *Player
	score      int64
	gaveUp     bool
	persist    bool
}

// finishLocked ends p's part in its game and frees the maze slot once both
// players are done. Callers hold t.mu.
func (t *TownController) finishLocked(p *Player, score int64, gaveUp bool) (finishOutcome, bool) {
	if gaveUp {
		score = NoScore
	}
	status, ok := p.Finish(score, gaveUp)
	if !ok {
		return finishOutcome{}, false
	}
	if status.BothPlayersFinished {
		t.maze.RemoveGame(status.GameKey)
		log.Info().Str("module", "core.race").Str("town", string(t.id)).Str("game", string(status.GameKey)).Msg("game released")
	}
	return finishOutcome{
		player:     p,
		opponentID: status.OpposingPlayerID,
		opponent:   t.findPlayer(status.OpposingPlayerID),
		score:      score,
		gaveUp:     gaveUp,
		persist:    !gaveUp && score > 0,
	}, true
}

func (t *TownController) notifyFinish(out finishOutcome) {
	t.notify("finish_game", nil, func(l TownListener) { l.OnFinishGame(out.player, out.opponent, out.score, out.gaveUp) })
}

// PlayerFinish records a race result for playerID. It returns false when the
// player is unknown or not racing. Only positive, non give-up scores reach the
// leaderboard, and a failed write never rolls back the game state.
func (t *TownController) PlayerFinish(ctx context.Context, playerID domain.PlayerID, score int64, gaveUp bool) bool {
	t.mu.Lock()
	p := t.findPlayer(playerID)
	if p == nil {
		t.mu.Unlock()
		return false
	}
	if !gaveUp {
		p.hasCompletedMaze = true
	}
	out, ok := t.finishLocked(p, score, gaveUp)
	t.mu.Unlock()
	if !ok {
		return false
	}

	if out.persist {
		row := domain.CompletionTime{PlayerID: p.id, Username: p.username, Time: out.score}
		if err := t.leaderboard.Insert(ctx, row); err != nil {
			log.Error().Err(err).Str("module", "core.race").Str("town", string(t.id)).Str("player", string(p.id)).Int64("score", out.score).Msg("leaderboard insert")
		}
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	// The partner may have left while the write was in flight.
	out.opponent = t.findPlayer(out.opponentID)
	log.Info().Str("module", "core.race").Str("town", string(t.id)).Str("player", string(p.id)).Int64("score", out.score).Bool("gave_up", gaveUp).Msg("player finished")
	t.notifyFinish(out)
	return true
}

// UpdatePlayerRaceSettings toggles whether playerID accepts invites.
func (t *TownController) UpdatePlayerRaceSettings(playerID domain.PlayerID, enabled bool) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	p := t.findPlayer(playerID)
	if p == nil {
		return false
	}
	p.enableInvite = enabled
	t.notify("race_settings", nil, func(l TownListener) { l.OnUpdatePlayerRaceSettings(p, enabled) })
	return true
}

package signal

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/dkeye/mazetown/internal/app/orch"
	"github.com/dkeye/mazetown/internal/core"
	"github.com/dkeye/mazetown/internal/domain"
	"github.com/rs/zerolog/log"
)

func (ctl *SignalWSController) handleInvite(
	st *connState,
	data []byte,
) {
	type invitePayload struct {
		Type        string          `json:"type"`
		RecipientID domain.PlayerID `json:"recipientID"`
	}
	var p invitePayload
	if err := json.Unmarshal(data, &p); err != nil || p.RecipientID == "" {
		log.Error().Err(err).Str("module", "signal").Msg("bad invite payload")
		ctl.sendError(st.conn, "bad_payload")
		return
	}

	ok, err := ctl.Orch.Invite(st.town, st.session, p.RecipientID)
	switch {
	case errors.Is(err, orch.ErrRateLimited):
		ctl.sendError(st.conn, "rate_limited")
	case !ok:
		ctl.sendError(st.conn, "invite_rejected")
	}
}

func (ctl *SignalWSController) handleInviteResponse(
	st *connState,
	data []byte,
) {
	type responsePayload struct {
		Type     string          `json:"type"`
		SenderID domain.PlayerID `json:"senderID"`
		Accepted bool            `json:"accepted"`
	}
	var p responsePayload
	if err := json.Unmarshal(data, &p); err != nil || p.SenderID == "" {
		log.Error().Err(err).Str("module", "signal").Msg("bad invite response payload")
		ctl.sendError(st.conn, "bad_payload")
		return
	}

	ok, err := ctl.Orch.Respond(st.town, st.session, p.SenderID, p.Accepted)
	switch {
	case errors.Is(err, core.ErrMazeFull):
		ctl.sendError(st.conn, "maze_full")
	case errors.Is(err, core.ErrPlayerInGame):
		ctl.sendError(st.conn, "player_in_game")
	case !ok:
		ctl.sendError(st.conn, "no_pending_invite")
	}
}

func (ctl *SignalWSController) handleFinish(
	ctx context.Context,
	st *connState,
	data []byte,
) {
	type finishPayload struct {
		Type   string `json:"type"`
		Score  int64  `json:"score"`
		GaveUp bool   `json:"gaveUp"`
	}
	var p finishPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad finish payload")
		ctl.sendError(st.conn, "bad_payload")
		return
	}
	if !ctl.Orch.Finish(ctx, st.town, st.session, p.Score, p.GaveUp) {
		ctl.sendError(st.conn, "not_racing")
	}
}

func (ctl *SignalWSController) handleRaceSettings(
	st *connState,
	data []byte,
) {
	type settingsPayload struct {
		Type    string `json:"type"`
		Enabled bool   `json:"enabled"`
	}
	var p settingsPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad race settings payload")
		ctl.sendError(st.conn, "bad_payload")
		return
	}
	ctl.Orch.RaceSettings(st.town, st.session, p.Enabled)
}

package signal

import (
	"encoding/json"

	"github.com/dkeye/mazetown/internal/domain"
	"github.com/rs/zerolog/log"
)

func (ctl *SignalWSController) handleMovement(
	st *connState,
	data []byte,
) {
	type movementPayload struct {
		Type     string          `json:"type"`
		Location domain.Location `json:"location"`
	}
	var p movementPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad movement payload")
		ctl.sendError(st.conn, "bad_payload")
		return
	}
	ctl.Orch.Move(st.town, st.session, p.Location)
}

package signal

import (
	"context"
	"encoding/json"
	"time"

	"github.com/dkeye/mazetown/internal/core"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

func (ctl *SignalWSController) writePump(ctx context.Context, c *WsSignalConn) {
	ticker := time.NewTicker(ctl.PingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()
	for {
		select {
		case <-ctx.Done():
			log.Debug().Str("module", "signal").Msg("writePump ctx done")
			return
		case <-ticker.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				log.Debug().Err(err).Str("module", "signal").Msg("writePump ping")
				return
			}
		case data, ok := <-c.send:
			if !ok {
				_ = c.conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
				return
			}
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				log.Error().Err(err).Str("module", "signal").Msg("writePump set deadline")
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Error().Err(err).Str("module", "signal").Msg("writePump write error")
				return
			}
		}
	}
}

// readPump owns the connection's lifetime: when it returns the player leaves
// the town.
func (ctl *SignalWSController) readPump(ctx context.Context, cancel context.CancelFunc, st *connState) {
	player := string(st.session.Player().ID())
	defer func() {
		ctl.Orch.Detach(st.town, st.session, st.listener)
		st.conn.Close()
		cancel()
		log.Info().Str("module", "signal").Str("player", player).Msg("readPump closing")
	}()

	pongWait := ctl.PingPeriod * 10 / 9
	_ = st.conn.conn.SetReadDeadline(time.Now().Add(pongWait))
	st.conn.conn.SetPongHandler(func(string) error {
		return st.conn.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		select {
		case <-ctx.Done():
			log.Info().Str("module", "signal").Str("player", player).Msg("readPump ctx done")
			return
		default:
			_, data, err := st.conn.conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					log.Warn().Err(err).Str("module", "signal").Str("player", player).Msg("readPump read error")
				}
				return
			}
			ctl.handleSignal(ctx, st, data)
		}
	}
}

func (ctl *SignalWSController) handleSignal(ctx context.Context, st *connState, data []byte) {
	var env struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad json")
		ctl.sendError(st.conn, "bad_payload")
		return
	}

	switch env.Type {
	case "ping":
		ctl.handlePing(st.conn)
	case "playerMovement":
		ctl.handleMovement(st, data)
	case "sendGameInvite":
		ctl.handleInvite(st, data)
	case "sendGameInviteResponse":
		ctl.handleInviteResponse(st, data)
	case "finishGame":
		ctl.handleFinish(ctx, st, data)
	case "toggleRaceSettings":
		ctl.handleRaceSettings(st, data)
	default:
		log.Warn().Str("module", "signal").Str("type", env.Type).Msg("unknown signal")
		ctl.sendError(st.conn, "unknown_type")
	}
}

func (ctl *SignalWSController) sendJSON(c core.SignalConnection, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("sendJSON marshal")
		return
	}
	_ = c.TrySend(b)
}

func (ctl *SignalWSController) sendError(c core.SignalConnection, reason string) {
	ctl.sendJSON(c, map[string]any{
		"type":  "error",
		"error": reason,
	})
}

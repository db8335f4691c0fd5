package signal

import "github.com/dkeye/mazetown/internal/core"

type pongFrame struct {
	Type string `json:"type"`
}

// handlePing answers on the sender's socket only; it never reaches the town.
func (ctl *SignalWSController) handlePing(conn core.SignalConnection) {
	ctl.sendJSON(conn, pongFrame{Type: "pong"})
}

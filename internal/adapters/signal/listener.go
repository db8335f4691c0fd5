package signal

import (
	"encoding/json"
	"errors"

	"github.com/dkeye/mazetown/internal/app"
	"github.com/dkeye/mazetown/internal/core"
	"github.com/dkeye/mazetown/internal/domain"
	"github.com/rs/zerolog/log"
)

// townListener turns town events into frames on one socket. It runs under
// the town lock, so it only encodes and queues.
type townListener struct {
	town   domain.TownID
	player domain.PlayerID
	conn   core.SignalConnection
	policy app.Policy
}

func newTownListener(town domain.TownID, player domain.PlayerID, conn core.SignalConnection, policy app.Policy) *townListener {
	return &townListener{town: town, player: player, conn: conn, policy: policy}
}

type playerEvent struct {
	Type   string            `json:"type"`
	Player domain.PlayerInfo `json:"player"`
}

type pairEvent struct {
	Type      string            `json:"type"`
	Sender    domain.PlayerInfo `json:"sender"`
	Recipient domain.PlayerInfo `json:"recipient"`
	Accepted  *bool             `json:"accepted,omitempty"`
}

type finishEvent struct {
	Type     string             `json:"type"`
	Finished domain.PlayerInfo  `json:"finished"`
	Partner  *domain.PlayerInfo `json:"partner"`
	Score    int64              `json:"score"`
	GaveUp   bool               `json:"gaveUp"`
}

type raceSettingsEvent struct {
	Type    string            `json:"type"`
	Player  domain.PlayerInfo `json:"player"`
	Enabled bool              `json:"enabled"`
}

func (l *townListener) ListeningPlayerID() domain.PlayerID { return l.player }

func (l *townListener) OnPlayerJoined(p *core.Player) {
	l.emit("newPlayer", playerEvent{Type: "newPlayer", Player: p.Info()})
}

func (l *townListener) OnPlayerMoved(p *core.Player) {
	l.emit("playerMoved", playerEvent{Type: "playerMoved", Player: p.Info()})
}

func (l *townListener) OnPlayerDisconnected(p *core.Player) {
	l.emit("playerDisconnect", playerEvent{Type: "playerDisconnect", Player: p.Info()})
}

// OnTownDestroyed queues townClosing and lets the socket close behind it.
func (l *townListener) OnTownDestroyed() {
	l.emit("townClosing", struct {
		Type string `json:"type"`
	}{Type: "townClosing"})
	l.conn.Drain()
}

func (l *townListener) OnMazeGameRequested(sender, recipient *core.Player) {
	l.emit("receivedGameInvite", pairEvent{Type: "receivedGameInvite", Sender: sender.Info(), Recipient: recipient.Info()})
}

func (l *townListener) OnMazeGameResponded(sender, recipient *core.Player, accepted bool) {
	l.emit("mazeGameResponse", pairEvent{Type: "mazeGameResponse", Sender: sender.Info(), Recipient: recipient.Info(), Accepted: &accepted})
}

func (l *townListener) OnFinishGame(finished, partner *core.Player, score int64, gaveUp bool) {
	ev := finishEvent{Type: "playerFinished", Finished: finished.Info(), Score: score, GaveUp: gaveUp}
	if partner != nil {
		info := partner.Info()
		ev.Partner = &info
	}
	l.emit("playerFinished", ev)
}

func (l *townListener) OnFullMazeGameRequested(sender *core.Player) {
	l.emit("mazeFullGameResponse", playerEvent{Type: "mazeFullGameResponse", Player: sender.Info()})
}

func (l *townListener) OnUpdatePlayerRaceSettings(p *core.Player, enabled bool) {
	l.emit("updatePlayerRaceSettings", raceSettingsEvent{Type: "updatePlayerRaceSettings", Player: p.Info(), Enabled: enabled})
}

func (l *townListener) emit(event string, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Str("event", event).Msg("marshal event")
		return
	}
	err = l.conn.TrySend(b)
	if err == nil || errors.Is(err, ErrConnClosed) || l.policy == nil {
		return
	}
	switch l.policy.OnBackPressure(l.town, l.player, event) {
	case app.KickMember:
		log.Warn().Str("module", "signal").Str("town", string(l.town)).Str("player", string(l.player)).Str("event", event).Msg("slow connection kicked")
		l.conn.Close()
	case app.DropFrame, app.NoAction:
		log.Debug().Str("module", "signal").Str("player", string(l.player)).Str("event", event).Msg("frame dropped")
	}
}

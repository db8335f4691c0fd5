package core

import (
	"github.com/dkeye/mazetown/internal/domain"
)

// NoScore marks a finish without a recorded time (give-up or disconnect).
const NoScore int64 = -1

// GameKey identifies a game. It does not depend on argument order.
type GameKey string

func NewGameKey(a, b domain.PlayerID) GameKey {
	if b < a {
		a, b = b, a
	}
	return GameKey(string(a) + ":" + string(b))
}

type FinishRecord struct {
	PlayerID domain.PlayerID
	Username string
	Score    int64
	GaveUp   bool
}

// Game is one race between two players.
type Game struct {
	key     GameKey
	players [2]domain.PlayerID
	results []FinishRecord
}

func NewGame(a, b domain.PlayerID) *Game {
	return &Game{
		key:     NewGameKey(a, b),
		players: [2]domain.PlayerID{a, b},
		results: make([]FinishRecord, 0, 2),
	}
}

func (g *Game) Key() GameKey                { return g.key }
func (g *Game) Players() [2]domain.PlayerID { return g.players }
func (g *Game) Has(id domain.PlayerID) bool { return g.players[0] == id || g.players[1] == id }
func (g *Game) BothPlayersFinished() bool   { return len(g.results) == 2 }

// Opponent returns the other player's id, or "" if id is not in the game.
func (g *Game) Opponent(id domain.PlayerID) domain.PlayerID {
	switch id {
	case g.players[0]:
		return g.players[1]
	case g.players[1]:
		return g.players[0]
	}
	return ""
}

// RecordFinish stores rec unless its player is foreign to the game or
// already finished. A give-up always carries NoScore.
func (g *Game) RecordFinish(rec FinishRecord) bool {
	if !g.Has(rec.PlayerID) {
		return false
	}
	for _, r := range g.results {
		if r.PlayerID == rec.PlayerID {
			return false
		}
	}
	if rec.GaveUp {
		rec.Score = NoScore
	}
	g.results = append(g.results, rec)
	return true
}

func (g *Game) Results() []FinishRecord {
	out := make([]FinishRecord, len(g.results))
	copy(out, g.results)
	return out
}

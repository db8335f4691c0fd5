package core

import (
	"github.com/dkeye/mazetown/internal/domain"
)

// Player is a user connected to a town.
// Mutations happen under the owning TownController's lock.
type Player struct {
	id       domain.PlayerID
	username string
	location domain.Location

	enableInvite     bool
	hasCompletedMaze bool
	game             *Game
}

func NewPlayer(username string) (*Player, error) {
	name, err := domain.ValidateUsername(username)
	if err != nil {
		return nil, err
	}
	return &Player{
		id:           domain.NewPlayerID(),
		username:     name,
		location:     domain.SpawnLocation(),
		enableInvite: true,
	}, nil
}

func (p *Player) ID() domain.PlayerID       { return p.id }
func (p *Player) Username() string          { return p.username }
func (p *Player) Location() domain.Location { return p.location }
func (p *Player) EnableInvite() bool        { return p.enableInvite }
func (p *Player) HasCompletedMaze() bool    { return p.hasCompletedMaze }
func (p *Player) Game() *Game               { return p.game }

func (p *Player) Info() domain.PlayerInfo {
	return domain.PlayerInfo{
		ID:               p.id,
		Username:         p.username,
		Location:         p.location,
		EnableInvite:     p.enableInvite,
		HasCompletedMaze: p.hasCompletedMaze,
	}
}

func (p *Player) updateLocation(loc domain.Location) { p.location = loc }

// AcceptInvite makes the recipient p create a game with sender and hands the
// sender a reference to it. An existing game is returned unchanged.
func (p *Player) AcceptInvite(sender *Player) *Game {
	if p.game != nil {
		return p.game
	}
	g := NewGame(p.id, sender.id)
	p.game = g
	sender.game = g
	return g
}

// FinishStatus describes a game right after one of its players finished.
type FinishStatus struct {
	OpposingPlayerID    domain.PlayerID
	BothPlayersFinished bool
	GameKey             GameKey
}

// Finish records the player's result in their current game.
// The game reference is dropped first, so a second Finish reports false
// instead of registering the player twice.
func (p *Player) Finish(score int64, gaveUp bool) (FinishStatus, bool) {
	g := p.game
	p.game = nil
	if g == nil {
		return FinishStatus{}, false
	}
	g.RecordFinish(FinishRecord{
		PlayerID: p.id,
		Username: p.username,
		Score:    score,
		GaveUp:   gaveUp,
	})
	return FinishStatus{
		OpposingPlayerID:    g.Opponent(p.id),
		BothPlayersFinished: g.BothPlayersFinished(),
		GameKey:             g.Key(),
	}, true
}

package core

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/dkeye/mazetown/internal/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	DefaultTownCapacity  = 50
	DefaultInviteTimeout = 20 * time.Second
)

var (
	ErrTownFull          = errors.New("town is full")
	ErrPlayerExists      = errors.New("player already in town")
	ErrVideoProvisioning = errors.New("video provisioning failed")
)

// TownConfig carries what a TownController needs at creation.
type TownConfig struct {
	ID               domain.TownID
	FriendlyName     string
	IsPubliclyListed bool
	Capacity         int
	InviteTimeout    time.Duration
	Video            VideoClient
	Leaderboard      LeaderboardStore
}

// TownController owns every piece of mutable state of one town and applies
// player actions to it one at a time.
type TownController struct {
	id             domain.TownID
	updatePassword string
	capacity       int
	inviteTimeout  time.Duration
	video          VideoClient
	leaderboard    LeaderboardStore

	mu           sync.Mutex
	friendlyName string
	public       bool
	players      []*Player // occupancy counts these, not listeners
	sessions     []*PlayerSession
	listeners    []TownListener
	maze         *Maze
	invites      map[inviteKey]*pendingInvite
}

func NewTownController(cfg TownConfig) *TownController {
	if cfg.ID == "" {
		cfg.ID = domain.NewTownID()
	}
	if cfg.Capacity <= 0 {
		cfg.Capacity = DefaultTownCapacity
	}
	if cfg.InviteTimeout <= 0 {
		cfg.InviteTimeout = DefaultInviteTimeout
	}
	return &TownController{
		id:             cfg.ID,
		updatePassword: uuid.NewString(),
		capacity:       cfg.Capacity,
		inviteTimeout:  cfg.InviteTimeout,
		video:          cfg.Video,
		leaderboard:    cfg.Leaderboard,
		friendlyName:   cfg.FriendlyName,
		public:         cfg.IsPubliclyListed,
		maze:           NewMaze(),
		invites:        make(map[inviteKey]*pendingInvite),
	}
}

func (t *TownController) ID() domain.TownID      { return t.id }
func (t *TownController) Capacity() int          { return t.capacity }
func (t *TownController) UpdatePassword() string { return t.updatePassword }

func (t *TownController) FriendlyName() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.friendlyName
}

func (t *TownController) SetFriendlyName(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.friendlyName = name
}

func (t *TownController) IsPubliclyListed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.public
}

func (t *TownController) SetPubliclyListed(public bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.public = public
}

// Occupancy is the number of players in the roster, not the number of live
// connections. ListPublicTowns reports this count as CurrentOccupancy.
func (t *TownController) Occupancy() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.players)
}

func (t *TownController) Players() []domain.PlayerInfo {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]domain.PlayerInfo, 0, len(t.players))
	for _, p := range t.players {
		out = append(out, p.Info())
	}
	return out
}

func (t *TownController) PlayerInfo(id domain.PlayerID) (domain.PlayerInfo, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	p := t.findPlayer(id)
	if p == nil {
		return domain.PlayerInfo{}, false
	}
	return p.Info(), true
}

func (t *TownController) HasPlayer(id domain.PlayerID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.findPlayer(id) != nil
}

func (t *TownController) ActiveGames() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.maze.ActiveGames()
}

func (t *TownController) HasActiveGame(key GameKey) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.maze.HasGame(key)
}

func (t *TownController) MazeReachedCapacity() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.maze.ReachedCapacity()
}

func (t *TownController) findPlayer(id domain.PlayerID) *Player {
	for _, p := range t.players {
		if p.id == id {
			return p
		}
	}
	return nil
}

// AddPlayer provisions video access for p, then adds it to the roster with a
// fresh session. A provisioning failure leaves the roster untouched.
func (t *TownController) AddPlayer(ctx context.Context, p *Player) (*PlayerSession, error) {
	t.mu.Lock()
	full := len(t.players) >= t.capacity
	t.mu.Unlock()
	if full {
		return nil, ErrTownFull
	}

	token, err := t.video.AccessToken(ctx, t.id, p.id)
	if err != nil {
		log.Error().Err(err).Str("module", "core.town").Str("town", string(t.id)).Str("player", string(p.id)).Msg("video token")
		return nil, fmt.Errorf("%w: %w", ErrVideoProvisioning, err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.players) >= t.capacity {
		return nil, ErrTownFull
	}
	if t.findPlayer(p.id) != nil {
		return nil, ErrPlayerExists
	}
	session := NewPlayerSession(p, token)
	t.players = append(t.players, p)
	t.sessions = append(t.sessions, session)
	log.Info().Str("module", "core.town").Str("town", string(t.id)).Str("player", string(p.id)).Str("username", p.username).Msg("player added")

	t.notify("player_joined", nil, func(l TownListener) { l.OnPlayerJoined(p) })
	return session, nil
}

// DestroySession forces the player's running race to end as a give-up, then
// drops the player and the session. Unknown sessions are ignored.
func (t *TownController) DestroySession(session *PlayerSession) {
	t.mu.Lock()
	defer t.mu.Unlock()
	idx := slices.Index(t.sessions, session)
	if idx < 0 {
		return
	}
	p := session.player

	if out, ok := t.finishLocked(p, NoScore, true); ok {
		t.notifyFinish(out)
	}
	t.cancelInvitesLocked(p.id)

	t.players = slices.DeleteFunc(t.players, func(x *Player) bool { return x.id == p.id })
	t.sessions = slices.Delete(t.sessions, idx, idx+1)
	log.Info().Str("module", "core.town").Str("town", string(t.id)).Str("player", string(p.id)).Msg("session destroyed")

	t.notify("player_disconnected", nil, func(l TownListener) { l.OnPlayerDisconnected(p) })
}

// GetSessionByToken returns the session bound to token, if any.
func (t *TownController) GetSessionByToken(token string) (*PlayerSession, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, s := range t.sessions {
		if s.sessionToken == token {
			return s, true
		}
	}
	return nil, false
}

// UpdatePlayerLocation moves p and tells every listener. Players no longer in
// the roster are ignored.
func (t *TownController) UpdatePlayerLocation(p *Player, loc domain.Location) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.findPlayer(p.id) != p {
		return false
	}
	p.updateLocation(loc)
	t.notify("player_moved", nil, func(l TownListener) { l.OnPlayerMoved(p) })
	return true
}

// DisconnectAllPlayers tells every listener the town is going away. State is
// left to the registry, which drops the controller afterwards.
func (t *TownController) DisconnectAllPlayers() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for key, inv := range t.invites {
		inv.timer.Stop()
		delete(t.invites, key)
	}
	log.Info().Str("module", "core.town").Str("town", string(t.id)).Int("listeners", len(t.listeners)).Msg("town destroyed")
	t.notify("town_destroyed", nil, func(l TownListener) { l.OnTownDestroyed() })
}

func (t *TownController) AddTownListener(l TownListener) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.listeners = append(t.listeners, l)
}

// RemoveTownListener is a no-op for a listener that was never added.
func (t *TownController) RemoveTownListener(l TownListener) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.listeners = slices.DeleteFunc(t.listeners, func(x TownListener) bool { return x == l })
}

func (t *TownController) ListenerCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.listeners)
}

package core

import "github.com/google/uuid"

// PlayerSession binds a Player to its connection credential and video token.
type PlayerSession struct {
	player       *Player
	sessionToken string
	videoToken   string
}

func NewPlayerSession(player *Player, videoToken string) *PlayerSession {
	return &PlayerSession{
		player:       player,
		sessionToken: uuid.NewString(),
		videoToken:   videoToken,
	}
}

func (s *PlayerSession) Player() *Player      { return s.player }
func (s *PlayerSession) SessionToken() string { return s.sessionToken }
func (s *PlayerSession) VideoToken() string   { return s.videoToken }

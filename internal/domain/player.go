// Package domain contains entity without logic, just meta-data
package domain

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

const MaxUsernameLen = 36

var (
	ErrUsernameTooLong = errors.New("username too long")
	ErrUsernameEmpty   = errors.New("username empty")
)

type PlayerID string

// NewPlayerID returns a fresh random player id.
func NewPlayerID() PlayerID {
	return PlayerID(uuid.NewString())
}

// ValidateUsername trims the name and checks its length.
func ValidateUsername(username string) (string, error) {
	username = strings.TrimSpace(username)
	if len(username) == 0 {
		return "", ErrUsernameEmpty
	}
	if len(username) > MaxUsernameLen {
		return "", ErrUsernameTooLong
	}
	return username, nil
}

// PlayerInfo is a read-only view for APIs.
type PlayerInfo struct {
	ID               PlayerID `json:"_id"`
	Username         string   `json:"_userName"`
	Location         Location `json:"location"`
	EnableInvite     bool     `json:"enableInvite"`
	HasCompletedMaze bool     `json:"hasCompletedMaze"`
}

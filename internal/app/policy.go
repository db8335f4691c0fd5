package app

import "github.com/dkeye/mazetown/internal/domain"

type BackpressureAction int

const (
	NoAction BackpressureAction = iota
	DropFrame
	KickMember
)

// Policy decides what to do with a connection whose send queue is full.
type Policy interface {
	OnBackPressure(town domain.TownID, player domain.PlayerID, event string) BackpressureAction
}

// SimplePolicy drops position updates, which the next move supersedes, and
// kicks connections that cannot keep up with anything else.
type SimplePolicy struct{}

func (SimplePolicy) OnBackPressure(_ domain.TownID, _ domain.PlayerID, event string) BackpressureAction {
	if event == "playerMoved" {
		return DropFrame
	}
	return KickMember
}

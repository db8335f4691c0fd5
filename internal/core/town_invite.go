package core

import (
	"errors"
	"time"

	"github.com/dkeye/mazetown/internal/domain"
	"github.com/rs/zerolog/log"
)

var ErrPlayerInGame = errors.New("player already in a game")

type inviteKey struct {
	sender    domain.PlayerID
	recipient domain.PlayerID
}

// pendingInvite is an invite waiting for an answer. Whoever removes it from
// t.invites under t.mu owns the single onMazeGameResponded for it.
type pendingInvite struct {
	timer *time.Timer
}

// OnGameRequested opens an invite from sender to recipient. It returns false
// when either player is unknown or cannot race right now. If the maze is full
// only the sender hears about it and no invite is opened.
func (t *TownController) OnGameRequested(senderID, recipientID domain.PlayerID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	sender := t.findPlayer(senderID)
	recipient := t.findPlayer(recipientID)
	if sender == nil || recipient == nil || sender == recipient {
		return false
	}
	if !recipient.enableInvite || sender.game != nil || recipient.game != nil {
		return false
	}

	if t.maze.ReachedCapacity() {
		log.Info().Str("module", "core.invite").Str("town", string(t.id)).Str("sender", string(senderID)).Msg("maze full")
		t.notify("full_maze_game_requested", scopedTo(senderID), func(l TownListener) { l.OnFullMazeGameRequested(sender) })
		return true
	}

	key := inviteKey{sender: senderID, recipient: recipientID}
	if old, ok := t.invites[key]; ok {
		old.timer.Stop()
	}
	inv := &pendingInvite{}
	t.invites[key] = inv
	inv.timer = time.AfterFunc(t.inviteTimeout, func() { t.expireInvite(key, inv) })

	log.Info().Str("module", "core.invite").Str("town", string(t.id)).Str("sender", string(senderID)).Str("recipient", string(recipientID)).Msg("game requested")
	t.notify("maze_game_requested", scopedTo(senderID, recipientID), func(l TownListener) { l.OnMazeGameRequested(sender, recipient) })
	return true
}

// expireInvite is the auto-reject. It does nothing if inv was already
// answered, replaced or cancelled.
func (t *TownController) expireInvite(key inviteKey, inv *pendingInvite) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.invites[key] != inv {
		return
	}
	delete(t.invites, key)
	sender := t.findPlayer(key.sender)
	recipient := t.findPlayer(key.recipient)
	if sender == nil || recipient == nil {
		return
	}
	log.Info().Str("module", "core.invite").Str("town", string(t.id)).Str("sender", string(key.sender)).Str("recipient", string(key.recipient)).Msg("invite timed out")
	t.notify("maze_game_responded", scopedTo(key.sender, key.recipient), func(l TownListener) { l.OnMazeGameResponded(sender, recipient, false) })
}

// RespondToGameInvite answers the pending invite from sender to recipient.
// It returns false when there is no such invite. Accepting on a full maze
// returns ErrMazeFull and leaves the invite pending.
func (t *TownController) RespondToGameInvite(senderID, recipientID domain.PlayerID, accepted bool) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	sender := t.findPlayer(senderID)
	recipient := t.findPlayer(recipientID)
	if sender == nil || recipient == nil {
		return false, nil
	}
	key := inviteKey{sender: senderID, recipient: recipientID}
	inv, ok := t.invites[key]
	if !ok {
		return false, nil
	}

	var err error
	if accepted {
		switch {
		case t.maze.ReachedCapacity():
			return false, ErrMazeFull
		case sender.game != nil || recipient.game != nil:
			accepted = false
			err = ErrPlayerInGame
		}
	}

	delete(t.invites, key)
	inv.timer.Stop()
	t.notify("maze_game_responded", scopedTo(senderID, recipientID), func(l TownListener) { l.OnMazeGameResponded(sender, recipient, accepted) })
	if err != nil {
		return false, err
	}
	if !accepted {
		log.Info().Str("module", "core.invite").Str("town", string(t.id)).Str("sender", string(senderID)).Str("recipient", string(recipientID)).Msg("invite declined")
		return true, nil
	}

	g := recipient.AcceptInvite(sender)
	if err := t.maze.AddGame(g.Key()); err != nil {
		sender.game, recipient.game = nil, nil
		return false, err
	}
	log.Info().Str("module", "core.invite").Str("town", string(t.id)).Str("game", string(g.Key())).Int("active_games", t.maze.ActiveGames()).Msg("game started")
	return true, nil
}

// cancelInvitesLocked drops every invite involving id and tells each pair the
// invite was rejected.
func (t *TownController) cancelInvitesLocked(id domain.PlayerID) {
	for key, inv := range t.invites {
		if key.sender != id && key.recipient != id {
			continue
		}
		delete(t.invites, key)
		inv.timer.Stop()
		sender := t.findPlayer(key.sender)
		recipient := t.findPlayer(key.recipient)
		if sender == nil || recipient == nil {
			continue
		}
		t.notify("maze_game_responded", scopedTo(key.sender, key.recipient), func(l TownListener) { l.OnMazeGameResponded(sender, recipient, false) })
	}
}

func (t *TownController) PendingInvites() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.invites)
}

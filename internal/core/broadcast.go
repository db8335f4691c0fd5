package core

import (
	"github.com/dkeye/mazetown/internal/domain"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/panics"
)

type listenerFilter func(TownListener) bool

// scopedTo keeps listeners bound to one of ids.
func scopedTo(ids ...domain.PlayerID) listenerFilter {
	return func(l TownListener) bool {
		lid := l.ListeningPlayerID()
		for _, id := range ids {
			if lid == id {
				return true
			}
		}
		return false
	}
}

// notify delivers an event to the matching listeners in registration order.
// A panicking listener is logged and skipped. Callers hold t.mu.
func (t *TownController) notify(event string, filter listenerFilter, fn func(TownListener)) {
	delivered := 0
	for _, l := range t.listeners {
		if filter != nil && !filter(l) {
			continue
		}
		var pc panics.Catcher
		pc.Try(func() { fn(l) })
		if r := pc.Recovered(); r != nil {
			log.Error().
				Err(r.AsError()).
				Str("module", "core.town").
				Str("town", string(t.id)).
				Str("event", event).
				Str("listener", string(l.ListeningPlayerID())).
				Msg("listener panicked")
			continue
		}
		delivered++
	}
	log.Debug().Str("module", "core.town").Str("town", string(t.id)).Str("event", event).Int("delivered", delivered).Msg("broadcast result")
}

package app

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/dkeye/mazetown/internal/core"
	"github.com/dkeye/mazetown/internal/domain"
	"github.com/rs/zerolog/log"
)

var ErrInvalidFriendlyName = errors.New("friendly name must not be empty")

// TownDefaults is applied to every town the registry creates.
type TownDefaults struct {
	Capacity      int
	InviteTimeout time.Duration
	// DemoTownID is used as the id of a town whose friendly name equals it.
	DemoTownID  string
	Video       core.VideoClient
	Leaderboard core.LeaderboardStore
}

// Registry is the process-wide directory of towns.
type Registry struct {
	mu       sync.RWMutex
	towns    map[domain.TownID]*core.TownController
	defaults TownDefaults
}

func NewRegistry(defaults TownDefaults) *Registry {
	return &Registry{
		towns:    make(map[domain.TownID]*core.TownController),
		defaults: defaults,
	}
}

// CreateTown registers a new town. Asking again for the demo town returns the
// existing one.
func (r *Registry) CreateTown(friendlyName string, isPubliclyListed bool) (*core.TownController, error) {
	friendlyName = strings.TrimSpace(friendlyName)
	if friendlyName == "" {
		return nil, ErrInvalidFriendlyName
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	var id domain.TownID
	if r.defaults.DemoTownID != "" && friendlyName == r.defaults.DemoTownID {
		id = domain.TownID(friendlyName)
		if town, ok := r.towns[id]; ok {
			return town, nil
		}
	} else {
		id = domain.NewTownID()
		for r.towns[id] != nil {
			id = domain.NewTownID()
		}
	}

	town := core.NewTownController(core.TownConfig{
		ID:               id,
		FriendlyName:     friendlyName,
		IsPubliclyListed: isPubliclyListed,
		Capacity:         r.defaults.Capacity,
		InviteTimeout:    r.defaults.InviteTimeout,
		Video:            r.defaults.Video,
		Leaderboard:      r.defaults.Leaderboard,
	})
	r.towns[id] = town
	log.Info().Str("module", "app.registry").Str("town", string(id)).Str("name", friendlyName).Bool("public", isPubliclyListed).Msg("created town")
	return town, nil
}

func (r *Registry) GetTown(id domain.TownID) (*core.TownController, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	town, ok := r.towns[id]
	return town, ok
}

// ListPublicTowns returns the publicly listed towns ordered by name.
func (r *Registry) ListPublicTowns() []domain.TownSummary {
	r.mu.RLock()
	towns := make([]*core.TownController, 0, len(r.towns))
	for _, t := range r.towns {
		towns = append(towns, t)
	}
	r.mu.RUnlock()

	out := make([]domain.TownSummary, 0, len(towns))
	for _, t := range towns {
		if !t.IsPubliclyListed() {
			continue
		}
		out = append(out, domain.TownSummary{
			FriendlyName:     t.FriendlyName(),
			TownID:           t.ID(),
			CurrentOccupancy: t.Occupancy(),
			MaximumOccupancy: t.Capacity(),
		})
	}
	slices.SortFunc(out, func(a, b domain.TownSummary) int {
		if c := strings.Compare(a.FriendlyName, b.FriendlyName); c != 0 {
			return c
		}
		return strings.Compare(string(a.TownID), string(b.TownID))
	})
	return out
}

// UpdateTown changes the name and/or listing of a town. It reports false on
// an unknown town, a wrong password or an empty new name.
func (r *Registry) UpdateTown(id domain.TownID, password string, friendlyName *string, isPubliclyListed *bool) bool {
	town, ok := r.GetTown(id)
	if !ok || town.UpdatePassword() != password {
		return false
	}
	if friendlyName != nil {
		name := strings.TrimSpace(*friendlyName)
		if name == "" {
			return false
		}
		town.SetFriendlyName(name)
	}
	if isPubliclyListed != nil {
		town.SetPubliclyListed(*isPubliclyListed)
	}
	log.Info().Str("module", "app.registry").Str("town", string(id)).Msg("updated town")
	return true
}

// DeleteTown tells every listener the town is closing and forgets it.
func (r *Registry) DeleteTown(id domain.TownID, password string) bool {
	r.mu.Lock()
	town, ok := r.towns[id]
	if !ok || town.UpdatePassword() != password {
		r.mu.Unlock()
		return false
	}
	delete(r.towns, id)
	r.mu.Unlock()

	town.DisconnectAllPlayers()
	log.Info().Str("module", "app.registry").Str("town", string(id)).Msg("deleted town")
	return true
}

// StopAll closes every town, used on shutdown.
func (r *Registry) StopAll(ctx context.Context) {
	r.mu.Lock()
	towns := make([]*core.TownController, 0, len(r.towns))
	for id, t := range r.towns {
		towns = append(towns, t)
		delete(r.towns, id)
	}
	r.mu.Unlock()

	for _, t := range towns {
		if ctx.Err() != nil {
			return
		}
		t.DisconnectAllPlayers()
	}
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.towns)
}

package domain

import (
	"strings"

	"github.com/google/uuid"
)

type TownID string

const townIDLen = 8

// NewTownID returns a short id drawn from 0-9A-F.
func NewTownID() TownID {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return TownID(strings.ToUpper(raw[:townIDLen]))
}

// TownSummary is one row of the public town directory.
type TownSummary struct {
	FriendlyName     string `json:"friendlyName"`
	TownID           TownID `json:"townID"`
	CurrentOccupancy int    `json:"currentOccupancy"`
	MaximumOccupancy int    `json:"maximumOccupancy"`
}

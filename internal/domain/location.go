package domain

type Direction string

const (
	DirectionFront Direction = "front"
	DirectionBack  Direction = "back"
	DirectionLeft  Direction = "left"
	DirectionRight Direction = "right"
)

// Location is where a player stands on the town map.
// Bounds are the renderer's business.
type Location struct {
	X        float64   `json:"x"`
	Y        float64   `json:"y"`
	Rotation Direction `json:"rotation"`
	Moving   bool      `json:"moving"`
}

func SpawnLocation() Location {
	return Location{Rotation: DirectionFront}
}

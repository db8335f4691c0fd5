package core

import "errors"

// MazeCapacity counts racers, so at most MazeCapacity/2 games run at once.
const MazeCapacity = 10

var ErrMazeFull = errors.New("maze is over capacity")

// Maze is the capacity gate over the games running in one town.
// It is not safe for concurrent use; the owning TownController serialises access.
type Maze struct {
	games map[GameKey]struct{}
}

func NewMaze() *Maze {
	return &Maze{games: make(map[GameKey]struct{})}
}

func (m *Maze) ReachedCapacity() bool {
	return len(m.games) >= MazeCapacity/2
}

// AddGame re-checks capacity and leaves the set untouched on failure.
func (m *Maze) AddGame(key GameKey) error {
	if m.ReachedCapacity() {
		return ErrMazeFull
	}
	m.games[key] = struct{}{}
	return nil
}

func (m *Maze) RemoveGame(key GameKey) {
	delete(m.games, key)
}

func (m *Maze) HasGame(key GameKey) bool {
	_, ok := m.games[key]
	return ok
}

func (m *Maze) ActiveGames() int { return len(m.games) }

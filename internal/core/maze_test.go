package core

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaze_Capacity(t *testing.T) {
	m := NewMaze()
	for i := 0; i < MazeCapacity/2; i++ {
		require.False(t, m.ReachedCapacity())
		require.NoError(t, m.AddGame(GameKey(fmt.Sprintf("g%d", i))))
	}
	assert.True(t, m.ReachedCapacity())

	err := m.AddGame("overflow")
	assert.ErrorIs(t, err, ErrMazeFull)
	assert.False(t, m.HasGame("overflow"), "a rejected game must not be stored")
	assert.Equal(t, MazeCapacity/2, m.ActiveGames())
}

func TestMaze_RemoveGameIsIdempotent(t *testing.T) {
	m := NewMaze()
	require.NoError(t, m.AddGame("g"))
	m.RemoveGame("g")
	m.RemoveGame("g")
	m.RemoveGame("never-added")
	assert.Zero(t, m.ActiveGames())
	assert.False(t, m.HasGame("g"))
}

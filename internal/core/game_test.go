package core

import (
	"testing"

	"github.com/dkeye/mazetown/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The key must not depend on which player is named first
func TestNewGameKey_OrderIndependent(t *testing.T) {
	a, b := domain.PlayerID("alpha"), domain.PlayerID("bravo")
	assert.Equal(t, NewGameKey(a, b), NewGameKey(b, a))
	assert.NotEqual(t, NewGameKey(a, b), NewGameKey(a, "charlie"))
	assert.Equal(t, NewGame(b, a).Key(), NewGame(a, b).Key())
}

func TestGame_RecordFinish(t *testing.T) {
	g := NewGame("p1", "p2")

	assert.True(t, g.RecordFinish(FinishRecord{PlayerID: "p1", Score: 40}))
	assert.False(t, g.BothPlayersFinished())
	assert.False(t, g.RecordFinish(FinishRecord{PlayerID: "p1", Score: 12}), "second record for the same player")
	assert.False(t, g.RecordFinish(FinishRecord{PlayerID: "stranger", Score: 12}))

	assert.True(t, g.RecordFinish(FinishRecord{PlayerID: "p2", Score: 99, GaveUp: true}))
	assert.True(t, g.BothPlayersFinished())

	results := g.Results()
	require.Len(t, results, 2)
	assert.Equal(t, int64(40), results[0].Score)
	assert.Equal(t, NoScore, results[1].Score, "give-up must not keep a time")
}

func TestGame_Opponent(t *testing.T) {
	g := NewGame("p1", "p2")
	assert.Equal(t, domain.PlayerID("p2"), g.Opponent("p1"))
	assert.Equal(t, domain.PlayerID("p1"), g.Opponent("p2"))
	assert.Empty(t, g.Opponent("p3"))
}

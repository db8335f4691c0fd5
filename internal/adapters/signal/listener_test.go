package signal

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/dkeye/mazetown/internal/app"
	"github.com/dkeye/mazetown/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	mu      sync.Mutex
	frames  []core.Frame
	sendErr error
	drained bool
	closed  bool
}

func (c *fakeConn) TrySend(f core.Frame) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sendErr != nil {
		return c.sendErr
	}
	c.frames = append(c.frames, f)
	return nil
}

func (c *fakeConn) Drain() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.drained = true
}

func (c *fakeConn) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

func (c *fakeConn) decoded(t *testing.T) []map[string]any {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]map[string]any, 0, len(c.frames))
	for _, f := range c.frames {
		var m map[string]any
		require.NoError(t, json.Unmarshal(f, &m))
		out = append(out, m)
	}
	return out
}

func mustPlayer(t *testing.T, name string) *core.Player {
	t.Helper()
	p, err := core.NewPlayer(name)
	require.NoError(t, err)
	return p
}

func TestTownListenerFrames(t *testing.T) {
	conn := &fakeConn{}
	alice := mustPlayer(t, "alice")
	bob := mustPlayer(t, "bob")
	l := newTownListener("T1", alice.ID(), conn, app.SimplePolicy{})

	assert.Equal(t, alice.ID(), l.ListeningPlayerID())

	l.OnPlayerJoined(bob)
	l.OnMazeGameRequested(alice, bob)
	l.OnMazeGameResponded(alice, bob, false)
	l.OnFinishGame(alice, nil, core.NoScore, true)
	l.OnFullMazeGameRequested(alice)
	l.OnUpdatePlayerRaceSettings(bob, false)

	frames := conn.decoded(t)
	require.Len(t, frames, 6)

	assert.Equal(t, "newPlayer", frames[0]["type"])
	assert.Equal(t, "bob", frames[0]["player"].(map[string]any)["_userName"])

	assert.Equal(t, "receivedGameInvite", frames[1]["type"])
	assert.NotContains(t, frames[1], "accepted")

	assert.Equal(t, "mazeGameResponse", frames[2]["type"])
	assert.Equal(t, false, frames[2]["accepted"])

	assert.Equal(t, "playerFinished", frames[3]["type"])
	assert.Nil(t, frames[3]["partner"])
	assert.EqualValues(t, -1, frames[3]["score"])
	assert.Equal(t, true, frames[3]["gaveUp"])

	assert.Equal(t, "mazeFullGameResponse", frames[4]["type"])

	assert.Equal(t, "updatePlayerRaceSettings", frames[5]["type"])
	assert.Equal(t, false, frames[5]["enabled"])
}

func TestTownListenerTownDestroyedDrains(t *testing.T) {
	conn := &fakeConn{}
	l := newTownListener("T1", "p1", conn, app.SimplePolicy{})

	l.OnTownDestroyed()

	frames := conn.decoded(t)
	require.Len(t, frames, 1)
	assert.Equal(t, "townClosing", frames[0]["type"])
	assert.True(t, conn.drained)
	assert.False(t, conn.closed)
}

func TestTownListenerBackpressure(t *testing.T) {
	bob := mustPlayer(t, "bob")

	t.Run("movement is dropped", func(t *testing.T) {
		conn := &fakeConn{sendErr: ErrBackpressure}
		l := newTownListener("T1", "p1", conn, app.SimplePolicy{})
		l.OnPlayerMoved(bob)
		assert.False(t, conn.closed)
	})

	t.Run("other events kick", func(t *testing.T) {
		conn := &fakeConn{sendErr: ErrBackpressure}
		l := newTownListener("T1", "p1", conn, app.SimplePolicy{})
		l.OnPlayerJoined(bob)
		assert.True(t, conn.closed)
	})

	t.Run("closed connection is left alone", func(t *testing.T) {
		conn := &fakeConn{sendErr: ErrConnClosed}
		l := newTownListener("T1", "p1", conn, app.SimplePolicy{})
		l.OnPlayerJoined(bob)
		assert.False(t, conn.closed)
	})
}

var _ core.TownListener = (*townListener)(nil)
var _ core.SignalConnection = (*WsSignalConn)(nil)

func TestHandlePingRepliesPong(t *testing.T) {
	conn := &fakeConn{}
	ctl := NewSignalWSController(nil, 0, 0)

	ctl.handlePing(conn)

	frames := conn.decoded(t)
	require.Len(t, frames, 1)
	assert.Equal(t, map[string]any{"type": "pong"}, frames[0])
	assert.Equal(t, int64(defaultReadCap), ctl.ReadLimit)
}

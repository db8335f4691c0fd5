package signal

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/dkeye/mazetown/internal/app/orch"
	"github.com/dkeye/mazetown/internal/core"
	"github.com/dkeye/mazetown/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var (
	ErrBackpressure = errors.New("backpressure")
	ErrConnClosed   = errors.New("connection closed")
)

const (
	sendBuffer     = 32
	writeWait      = 5 * time.Second
	defaultPing    = 54 * time.Second
	defaultReadCap = 32768
)

type SignalWSController struct {
	Orch       *orch.Orchestrator
	ReadLimit  int64
	PingPeriod time.Duration
}

func NewSignalWSController(o *orch.Orchestrator, readLimit int64, pingPeriod time.Duration) *SignalWSController {
	if readLimit <= 0 {
		readLimit = defaultReadCap
	}
	if pingPeriod <= 0 {
		pingPeriod = defaultPing
	}
	return &SignalWSController{
		Orch:       o,
		ReadLimit:  readLimit,
		PingPeriod: pingPeriod,
	}
}

type WsSignalConn struct {
	conn *websocket.Conn
	send chan core.Frame

	mu     sync.RWMutex
	closed bool
}

func newWsSignalConn(ws *websocket.Conn) *WsSignalConn {
	return &WsSignalConn{
		conn: ws,
		send: make(chan core.Frame, sendBuffer),
	}
}

func (c *WsSignalConn) TrySend(f core.Frame) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return ErrConnClosed
	}
	select {
	case c.send <- f:
	default:
		return ErrBackpressure
	}
	return nil
}

// Drain stops accepting frames. The write pump flushes what is queued and
// then closes the socket.
func (c *WsSignalConn) Drain() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

func (c *WsSignalConn) Close() {
	c.Drain()
	_ = c.conn.Close()
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// connState is what the pumps share for one connection.
type connState struct {
	town     *core.TownController
	session  *core.PlayerSession
	conn     *WsSignalConn
	listener *townListener
}

// HandleSignal upgrades the request and binds the socket to an existing
// player session. The session must come from a prior join.
func (ctl *SignalWSController) HandleSignal(ctx context.Context, c *gin.Context, townID domain.TownID, token string) {
	town, session, err := ctl.Orch.Attach(townID, token)
	if err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("town", string(townID)).Msg("ws attach")
		status := http.StatusNotFound
		if errors.Is(err, orch.ErrSessionNotFound) {
			status = http.StatusUnauthorized
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("ws upgrade")
		return
	}
	ws.SetReadLimit(ctl.ReadLimit)

	conn := newWsSignalConn(ws)
	st := &connState{
		town:    town,
		session: session,
		conn:    conn,
	}
	st.listener = newTownListener(town.ID(), session.Player().ID(), conn, ctl.Orch.Policy)
	town.AddTownListener(st.listener)
	log.Info().Str("module", "signal").Str("town", string(town.ID())).Str("player", string(session.Player().ID())).Msg("new WS connection")

	ctx, cancel := context.WithCancel(ctx)
	go ctl.writePump(ctx, conn)
	go ctl.readPump(ctx, cancel, st)
}

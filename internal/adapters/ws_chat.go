// Package adapters binds the realtime core to its transports. The adapter
// owns transport resources; the core never closes a connection itself.
package adapters

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/DevanshiArora1/learnlink/internal/config"
	"github.com/DevanshiArora1/learnlink/internal/domain"
	"github.com/DevanshiArora1/learnlink/internal/realtime"
)

const writeWait = 5 * time.Second

// Authenticator validates a bearer token and resolves its user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}

// ChatWSController upgrades HTTP requests to chat WebSocket sessions and
// pumps protocol envelopes between the socket and the broadcaster. Clients
// authenticate the upgrade with their JWT passed as a query token.
type ChatWSController struct {
	Broadcaster *realtime.Broadcaster
	Limiter     *realtime.RateLimiter
	Auth        Authenticator

	readLimit  int64
	pingPeriod time.Duration
	pongWait   time.Duration
	upgrader   websocket.Upgrader
}

func NewChatWSController(cfg *config.Config, auth Authenticator, b *realtime.Broadcaster, rl *realtime.RateLimiter) *ChatWSController {
	allowed := make(map[string]struct{}, len(cfg.AllowedOrigins))
	allowAll := false
	for _, o := range cfg.AllowedOrigins {
		if o == "*" {
			allowAll = true
		}
		allowed[o] = struct{}{}
	}
	return &ChatWSController{
		Broadcaster: b,
		Limiter:     rl,
		Auth:        auth,
		readLimit:   cfg.ReadLimit,
		pingPeriod:  cfg.PingPeriod,
		pongWait:    cfg.PingPeriod * 10 / 9,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if allowAll || origin == "" {
					return true
				}
				_, ok := allowed[origin]
				return ok
			},
		},
	}
}

// WSConn is an indirection over *websocket.Conn to ease testing.
type WSConn interface {
	ReadMessage() (int, []byte, error)
	WriteMessage(mt int, data []byte) error
	SetWriteDeadline(t time.Time) error
	SetReadDeadline(t time.Time) error
	SetReadLimit(limit int64)
	SetPongHandler(h func(string) error)
	Close() error
}

var errConnClosed = errors.New("connection closed")

// wsChatConn wraps the socket with a non-blocking buffered send side,
// implementing realtime.Subscriber. The broadcaster fans out outside its
// room lock, so a publisher may hold a reference to a connection that has
// since disconnected; the closed flag makes that send a plain error instead
// of a send on a closed channel.
type wsChatConn struct {
	conn WSConn

	mu     sync.Mutex
	send   chan []byte
	closed bool
}

func newWSChatConn(conn WSConn) *wsChatConn {
	return &wsChatConn{
		conn: conn,
		send: make(chan []byte, 32),
	}
}

func (c *wsChatConn) TrySend(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return errConnClosed
	}
	select {
	case c.send <- data:
		return nil
	default:
		return realtime.ErrBackpressure
	}
}

func (c *wsChatConn) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
	_ = c.conn.Close()
}

func (ctl *ChatWSController) HandleChat(ctx context.Context, c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "authentication required"})
		return
	}
	user, err := ctl.Auth.Authenticate(c.Request.Context(), token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid or expired token"})
		return
	}

	ws, err := ctl.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn().Err(err).Str("module", "adapters.ws").Msg("ws upgrade failed")
		return
	}

	sid := realtime.SessionID(uuid.NewString())
	conn := newWSChatConn(ws)
	sess := realtime.NewSession(sid, conn, ctl.Broadcaster)
	log.Info().Str("module", "adapters.ws").Str("sid", string(sid)).Str("user", string(user.ID)).Msg("chat connection opened")

	ctx, cancel := context.WithCancel(ctx)
	go ctl.writePump(ctx, cancel, conn)
	go ctl.readPump(ctx, cancel, sess, conn)
}

// writePump drains the send buffer and keeps the connection alive with
// pings. Exit closes the socket, which unblocks the read pump.
func (ctl *ChatWSController) writePump(ctx context.Context, cancel context.CancelFunc, c *wsChatConn) {
	ticker := time.NewTicker(ctl.pingPeriod)
	defer func() {
		ticker.Stop()
		cancel()
		c.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case data, ok := <-c.send:
			if !ok {
				return
			}
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		}
	}
}

// readPump is the session's event loop; every inbound envelope is handled
// here, so session state needs no locking. The deferred cleanup runs for
// every termination path.
func (ctl *ChatWSController) readPump(ctx context.Context, cancel context.CancelFunc, sess *realtime.Session, c *wsChatConn) {
	defer func() {
		sess.Close()
		ctl.Limiter.Forget(sess.ID())
		cancel()
		c.Close()
		log.Info().Str("module", "adapters.ws").Str("sid", string(sess.ID())).Msg("chat connection closed")
	}()

	c.conn.SetReadLimit(ctl.readLimit)
	_ = c.conn.SetReadDeadline(time.Now().Add(ctl.pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(ctl.pongWait))
	})

	for {
		select {
		case <-ctx.Done():
			return
		default:
			_, data, err := c.conn.ReadMessage()
			if err != nil {
				return
			}
			ctl.handleEnvelope(sess, c, data)
		}
	}
}

func (ctl *ChatWSController) handleEnvelope(sess *realtime.Session, c *wsChatConn, data []byte) {
	env, err := realtime.DecodeEnvelope(data)
	if err != nil {
		log.Debug().Err(err).Str("module", "adapters.ws").Str("sid", string(sess.ID())).Msg("bad envelope")
		ctl.sendError(c, "malformed event")
		return
	}

	switch env.Type {
	case realtime.EventJoinGroup:
		if err := sess.Bind(env.GroupID); err != nil {
			ctl.sendError(c, err.Error())
		}
	case realtime.EventLeaveGroup:
		sess.Leave(env.GroupID)
	case realtime.EventSendMessage:
		if !ctl.Limiter.Allow(sess.ID()) {
			ctl.sendError(c, "too many messages, slow down")
			return
		}
		if _, err := sess.Submit(env.GroupID, env.Message, env.User); err != nil {
			ctl.sendError(c, err.Error())
		}
	}
}

func (ctl *ChatWSController) sendError(c *wsChatConn, msg string) {
	_ = c.TrySend(realtime.ErrorEnvelope(msg))
}

package realtime

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/DevanshiArora1/learnlink/internal/domain"
)

// Session is the per-connection chat state. A session is bound to at most
// one group room at a time; binding a new room always unsubscribes the old
// one first so a client never receives messages for a room it left behind.
// All transitions are serialized through the session's event loop in the
// transport adapter, so no internal locking is needed.
type Session struct {
	id    SessionID
	conn  Subscriber
	b     *Broadcaster
	group domain.GroupID
	bound bool
}

func NewSession(id SessionID, conn Subscriber, b *Broadcaster) *Session {
	return &Session{id: id, conn: conn, b: b}
}

func (s *Session) ID() SessionID { return s.id }

// Group returns the currently bound room, if any.
func (s *Session) Group() (domain.GroupID, bool) {
	return s.group, s.bound
}

// Bind subscribes the session to a group room, leaving the previous one
// first. Rebinding to the current room is a no-op.
func (s *Session) Bind(groupID domain.GroupID) error {
	if groupID == "" {
		return fmt.Errorf("%w: groupId is required", domain.ErrValidation)
	}
	if s.bound && s.group == groupID {
		return nil
	}
	if s.bound {
		s.b.Unsubscribe(s.id, s.group)
	}
	s.b.Subscribe(s.id, groupID, s.conn)
	s.group = groupID
	s.bound = true
	log.Info().Str("module", "realtime.session").Str("sid", string(s.id)).Str("room", string(groupID)).Msg("session bound")
	return nil
}

// Unbind leaves the current room. Unbinding an unbound session is a no-op.
func (s *Session) Unbind() {
	if !s.bound {
		return
	}
	s.b.Unsubscribe(s.id, s.group)
	s.group = ""
	s.bound = false
}

// Leave handles a leave_group event. It unbinds only when groupID names the
// room currently bound; leaving a room the session is not in is a no-op.
func (s *Session) Leave(groupID domain.GroupID) {
	if s.bound && s.group == groupID {
		s.Unbind()
	}
}

// Submit publishes a chat message to the bound room. The server stamps
// createdAt at publish time. Submitting while unbound, or naming a room
// other than the bound one, is an error.
func (s *Session) Submit(groupID domain.GroupID, message, user string) (PublishResult, error) {
	if !s.bound {
		return PublishResult{}, fmt.Errorf("%w: no group bound", domain.ErrInvalidState)
	}
	if groupID != s.group {
		return PublishResult{}, fmt.Errorf("%w: message targets a room the session is not in", domain.ErrInvalidState)
	}
	if message == "" {
		return PublishResult{}, fmt.Errorf("%w: message is required", domain.ErrValidation)
	}
	env := chatMessage(s.group, message, user, time.Now())
	return s.b.Publish(s.group, env), nil
}

// Close tears down every subscription the session holds. Safe to call more
// than once; must run on every disconnect path.
func (s *Session) Close() {
	s.b.Disconnect(s.id)
	s.group = ""
	s.bound = false
}

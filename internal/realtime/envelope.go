// Package realtime implements the room-based chat layer: the broadcaster
// owning the room/subscriber map, per-connection sessions, and the wire
// envelopes. Messages are never persisted; delivery is best-effort fan-out
// to the subscribers present at publish time.
package realtime

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/DevanshiArora1/learnlink/internal/domain"
)

const (
	EventJoinGroup      = "join_group"
	EventLeaveGroup     = "leave_group"
	EventSendMessage    = "send_message"
	EventReceiveMessage = "receive_message"
	EventError          = "error"
)

// Envelope is the wire schema for every chat event. Type discriminates;
// unused fields are omitted.
type Envelope struct {
	Type      string         `json:"type"`
	GroupID   domain.GroupID `json:"groupId,omitempty"`
	Message   string         `json:"message,omitempty"`
	User      string         `json:"user,omitempty"`
	CreatedAt string         `json:"createdAt,omitempty"`
	Error     string         `json:"error,omitempty"`
}

// DecodeEnvelope parses a client frame. Unknown event types are rejected
// here so sessions only ever see the protocol's vocabulary.
func DecodeEnvelope(data []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return Envelope{}, fmt.Errorf("malformed envelope: %w", err)
	}
	switch env.Type {
	case EventJoinGroup, EventLeaveGroup, EventSendMessage:
		return env, nil
	default:
		return Envelope{}, fmt.Errorf("unknown event type %q", env.Type)
	}
}

// chatMessage builds the fan-out payload. CreatedAt is assigned by the
// server at publish time, never taken from the client.
func chatMessage(groupID domain.GroupID, message, user string, at time.Time) Envelope {
	return Envelope{
		Type:      EventReceiveMessage,
		GroupID:   groupID,
		Message:   message,
		User:      user,
		CreatedAt: at.UTC().Format(time.RFC3339),
	}
}

// ErrorEnvelope encodes a server-side error signal for one client.
func ErrorEnvelope(msg string) []byte {
	return Envelope{Type: EventError, Error: msg}.encode()
}

func (e Envelope) encode() []byte {
	b, _ := json.Marshal(e)
	return b
}

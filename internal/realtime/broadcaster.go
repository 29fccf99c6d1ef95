package realtime

import (
	"errors"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/DevanshiArora1/learnlink/internal/domain"
)

var ErrBackpressure = errors.New("subscriber send buffer full")

type SessionID string

// Subscriber is the transport endpoint a room fans out to. TrySend must not
// block; a full buffer is reported as ErrBackpressure and the frame dropped.
type Subscriber interface {
	TrySend(data []byte) error
}

// PublishResult reports delivery stats for one fan-out.
type PublishResult struct {
	SentTo  int
	Dropped []SessionID
}

// Broadcaster owns the room -> subscriber-set mapping. It is the single
// shared mutable structure of the chat layer; all mutations are serialized
// behind one RWMutex, and Publish fans out to a snapshot taken under the
// read lock. Room subscription is ephemeral and independent of persisted
// group membership.
type Broadcaster struct {
	mu        sync.RWMutex
	rooms     map[domain.GroupID]map[SessionID]Subscriber
	bySession map[SessionID]map[domain.GroupID]struct{}
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		rooms:     make(map[domain.GroupID]map[SessionID]Subscriber),
		bySession: make(map[SessionID]map[domain.GroupID]struct{}),
	}
}

// Subscribe adds the connection to the room's subscriber set. Idempotent.
func (b *Broadcaster) Subscribe(sid SessionID, groupID domain.GroupID, sub Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()
	room, ok := b.rooms[groupID]
	if !ok {
		room = make(map[SessionID]Subscriber)
		b.rooms[groupID] = room
	}
	room[sid] = sub

	groups, ok := b.bySession[sid]
	if !ok {
		groups = make(map[domain.GroupID]struct{})
		b.bySession[sid] = groups
	}
	groups[groupID] = struct{}{}
	log.Debug().Str("module", "realtime.broadcaster").Str("sid", string(sid)).Str("room", string(groupID)).Msg("subscribed")
}

// Unsubscribe removes the connection from the room. Idempotent; no error if
// it was never subscribed.
func (b *Broadcaster) Unsubscribe(sid SessionID, groupID domain.GroupID) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.removeLocked(sid, groupID)
	log.Debug().Str("module", "realtime.broadcaster").Str("sid", string(sid)).Str("room", string(groupID)).Msg("unsubscribed")
}

// Disconnect removes the connection from every room it was subscribed to.
// Runs for every termination path; after it returns the session receives
// nothing further.
func (b *Broadcaster) Disconnect(sid SessionID) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for groupID := range b.bySession[sid] {
		b.removeLocked(sid, groupID)
	}
	delete(b.bySession, sid)
	log.Debug().Str("module", "realtime.broadcaster").Str("sid", string(sid)).Msg("disconnected")
}

func (b *Broadcaster) removeLocked(sid SessionID, groupID domain.GroupID) {
	room, ok := b.rooms[groupID]
	if !ok {
		return
	}
	delete(room, sid)
	if len(room) == 0 {
		delete(b.rooms, groupID)
	}
	if groups, ok := b.bySession[sid]; ok {
		delete(groups, groupID)
		if len(groups) == 0 {
			delete(b.bySession, sid)
		}
	}
}

// Publish delivers env to every connection subscribed to the room at call
// time. No acknowledgement, no retry; a subscriber whose buffer is full is
// skipped and reported in the result.
func (b *Broadcaster) Publish(groupID domain.GroupID, env Envelope) PublishResult {
	b.mu.RLock()
	room := b.rooms[groupID]
	snapshot := make(map[SessionID]Subscriber, len(room))
	for sid, sub := range room {
		snapshot[sid] = sub
	}
	b.mu.RUnlock()

	data := env.encode()
	res := PublishResult{}
	for sid, sub := range snapshot {
		if err := sub.TrySend(data); err != nil {
			res.Dropped = append(res.Dropped, sid)
			continue
		}
		res.SentTo++
	}
	log.Debug().Str("module", "realtime.broadcaster").Str("room", string(groupID)).Int("sent_to", res.SentTo).Int("dropped", len(res.Dropped)).Msg("publish")
	return res
}

// SubscriberCount reports the current size of a room's subscriber set.
func (b *Broadcaster) SubscriberCount(groupID domain.GroupID) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.rooms[groupID])
}

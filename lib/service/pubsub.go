package service

import (
	"sync"

	"github.com/google/uuid"
)

const (
	SessionEventLogin  = "login"
	SessionEventLogout = "logout"
)

// SessionEvent is delivered to subscribers when a session starts or ends,
// so dependent views can re-fetch or redirect instead of polling ambient
// auth state.
type SessionEvent struct {
	UserID int64  `json:"user_id"`
	Type   string `json:"type"`
}

type Pubsub struct {
	mu   sync.RWMutex
	subs map[int64]map[string]chan SessionEvent
}

func NewPubsub() *Pubsub {
	ps := &Pubsub{}
	ps.subs = make(map[int64]map[string]chan SessionEvent)
	return ps
}

func (ps *Pubsub) Subscribe(topic int64, ch chan SessionEvent) (subId string, err error) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if ps.subs[topic] == nil {
		ps.subs[topic] = make(map[string]chan SessionEvent)
	}
	subId = uuid.NewString()
	ps.subs[topic][subId] = ch
	return subId, nil
}

func (ps *Pubsub) Unsubscribe(id string, topic int64) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if ps.subs[topic] == nil {
		return
	}
	if ps.subs[topic][id] == nil {
		return
	}
	close(ps.subs[topic][id])
	delete(ps.subs[topic], id)
}

func (ps *Pubsub) Publish(topic int64, msg SessionEvent) {
	ps.mu.RLock()
	defer ps.mu.RUnlock()

	if ps.subs[topic] == nil {
		return
	}

	for _, ch := range ps.subs[topic] {
		ch <- msg
	}
}

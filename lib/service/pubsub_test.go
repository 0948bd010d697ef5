package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPubsubDeliversToSubscriber(t *testing.T) {
	ps := NewPubsub()
	ch := make(chan SessionEvent, 1)

	subId, err := ps.Subscribe(1, ch)
	assert.NoError(t, err)

	ps.Publish(1, SessionEvent{UserID: 1, Type: SessionEventLogin})
	event := <-ch
	assert.Equal(t, int64(1), event.UserID)
	assert.Equal(t, SessionEventLogin, event.Type)

	ps.Unsubscribe(subId, 1)
	_, open := <-ch
	assert.False(t, open)
}

func TestPubsubScopesEventsToTopic(t *testing.T) {
	ps := NewPubsub()
	ch := make(chan SessionEvent, 1)

	subId, err := ps.Subscribe(1, ch)
	assert.NoError(t, err)
	defer ps.Unsubscribe(subId, 1)

	// events for another user never reach this subscriber
	ps.Publish(2, SessionEvent{UserID: 2, Type: SessionEventLogout})
	assert.Empty(t, ch)
}

func TestPubsubPublishWithoutSubscribers(t *testing.T) {
	ps := NewPubsub()
	// must not panic or block
	ps.Publish(42, SessionEvent{UserID: 42, Type: SessionEventLogout})
}

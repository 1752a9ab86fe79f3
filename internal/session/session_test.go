package session

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_Tenant(t *testing.T) {
	tid := uuid.New()
	s := Session{TenantID: &tid}
	got, ok := s.Tenant()
	assert.True(t, ok)
	assert.Equal(t, tid, got)

	_, ok = Session{}.Tenant()
	assert.False(t, ok)
}

func TestNotifier_DeliversOnlyToSameUser(t *testing.T) {
	n := NewNotifier()
	alice, bob := uuid.New(), uuid.New()

	ch, unsubscribe := n.Subscribe(alice)
	defer unsubscribe()

	n.Publish(Event{UserID: bob, Type: SignedIn})
	n.Publish(Event{UserID: alice, Type: SignedOut})

	select {
	case ev := <-ch:
		assert.Equal(t, alice, ev.UserID)
		assert.Equal(t, SignedOut, ev.Type)
		assert.False(t, ev.At.IsZero())
	case <-time.After(time.Second):
		t.Fatal("expected an event")
	}
	assert.Len(t, ch, 0)
}

func TestNotifier_UnsubscribeClosesChannel(t *testing.T) {
	n := NewNotifier()
	uid := uuid.New()

	ch, unsubscribe := n.Subscribe(uid)
	require.Equal(t, 1, n.Subscribers(uid))

	unsubscribe()
	unsubscribe()

	_, open := <-ch
	assert.False(t, open)
	assert.Equal(t, 0, n.Subscribers(uid))

	// publishing after unsubscribe must not panic
	n.Publish(Event{UserID: uid, Type: SignedIn})
}

func TestNotifier_FullBufferDoesNotBlock(t *testing.T) {
	n := NewNotifier()
	uid := uuid.New()
	_, unsubscribe := n.Subscribe(uid)
	defer unsubscribe()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			n.Publish(Event{UserID: uid, Type: SignedIn})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a full subscriber")
	}
}

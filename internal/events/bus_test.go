package events

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestPublishReachesSubscribersOfTopic(t *testing.T) {
	bus := NewBus()
	var rsvp, entourage int

	bus.Subscribe(RSVPUpdated, func() { rsvp++ })
	bus.Subscribe(RSVPUpdated, func() { rsvp++ })
	bus.Subscribe(EntourageUpdated, func() { entourage++ })

	bus.Publish(RSVPUpdated)

	if rsvp != 2 {
		t.Errorf("rsvp handlers called %d times, want 2", rsvp)
	}
	if entourage != 0 {
		t.Errorf("entourage handler called %d times, want 0", entourage)
	}
}

func TestUnsubscribe(t *testing.T) {
	bus := NewBus()
	var calls int

	unsubscribe := bus.Subscribe(EntourageUpdated, func() { calls++ })
	bus.Publish(EntourageUpdated)
	unsubscribe()
	unsubscribe()
	bus.Publish(EntourageUpdated)

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestSubscribeDelayed(t *testing.T) {
	bus := NewBus()
	done := make(chan struct{})
	var calls atomic.Int32

	bus.SubscribeDelayed(RSVPUpdated, 20*time.Millisecond, func() {
		calls.Add(1)
		close(done)
	})

	start := time.Now()
	bus.Publish(RSVPUpdated)
	if calls.Load() != 0 {
		t.Fatal("delayed handler ran synchronously")
	}

	select {
	case <-done:
		if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
			t.Errorf("handler ran after %v, want at least 20ms", elapsed)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("delayed handler never ran")
	}
}

func TestPublishWithoutSubscribers(t *testing.T) {
	NewBus().Publish(RSVPUpdated)
}

func TestUnsubscribeDelayedStopsPendingRuns(t *testing.T) {
	bus := NewBus()
	var calls atomic.Int32

	unsubscribe := bus.SubscribeDelayed(RSVPUpdated, 30*time.Millisecond, func() { calls.Add(1) })
	bus.Publish(RSVPUpdated)
	bus.Publish(RSVPUpdated)
	unsubscribe()
	bus.Publish(RSVPUpdated)

	time.Sleep(100 * time.Millisecond)
	if n := calls.Load(); n != 0 {
		t.Errorf("calls = %d, want 0 after unsubscribe", n)
	}
}

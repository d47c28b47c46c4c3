// Package events is a small in-process publish/subscribe bus used to tell
// views that data changed so they can refetch.
package events

import (
	"sync"
	"time"
)

// Topic names a signal. Signals carry no payload.
type Topic string

const (
	RSVPUpdated      Topic = "rsvp-updated"
	EntourageUpdated Topic = "entourage-updated"
)

// Bus delivers published topics to every current subscriber. Handlers run
// synchronously on the publishing goroutine, in subscription order.
type Bus struct {
	mu     sync.RWMutex
	nextID int
	subs   map[Topic][]subscription
}

type subscription struct {
	id int
	fn func()
}

func NewBus() *Bus {
	return &Bus{subs: make(map[Topic][]subscription)}
}

// Subscribe registers fn for topic and returns a function that removes it.
func (b *Bus) Subscribe(topic Topic, fn func()) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.subs[topic] = append(b.subs[topic], subscription{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(topic, id) })
	}
}

// SubscribeDelayed runs fn once delay has passed after each publish. A
// publish does not cancel or merge with earlier pending runs. Unsubscribing
// also stops runs that are still pending.
func (b *Bus) SubscribeDelayed(topic Topic, delay time.Duration, fn func()) (unsubscribe func()) {
	var (
		mu      sync.Mutex
		stopped bool
		timers  = make(map[*time.Timer]struct{})
	)

	remove := b.Subscribe(topic, func() {
		mu.Lock()
		defer mu.Unlock()
		if stopped {
			return
		}
		var t *time.Timer
		t = time.AfterFunc(delay, func() {
			mu.Lock()
			delete(timers, t)
			skip := stopped
			mu.Unlock()
			if !skip {
				fn()
			}
		})
		timers[t] = struct{}{}
	})

	return func() {
		remove()
		mu.Lock()
		defer mu.Unlock()
		stopped = true
		for t := range timers {
			t.Stop()
		}
		clear(timers)
	}
}

// Publish calls every subscriber of topic.
func (b *Bus) Publish(topic Topic) {
	b.mu.RLock()
	subs := make([]subscription, len(b.subs[topic]))
	copy(subs, b.subs[topic])
	b.mu.RUnlock()

	for _, s := range subs {
		s.fn()
	}
}

func (b *Bus) remove(topic Topic, id int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.subs[topic]
	for i, s := range subs {
		if s.id == id {
			b.subs[topic] = append(subs[:i:i], subs[i+1:]...)
			return
		}
	}
}

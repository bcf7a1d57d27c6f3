// Package keybus is the process-wide keyboard event source for TUI
// components that need to see every key press regardless of focus.
package keybus

import (
	"sync"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"
)

// Handler is a callback invoked for every published key press.
type Handler = func(tea.KeyPressMsg)

type subscription struct {
	id int
	fn Handler
}

// Bus is a synchronous in-process key event bus. The host program publishes
// each key press from its Update loop and subscribers run inline, in
// subscription order. Publishing never consumes a key: every subscriber sees
// it and the host keeps handling it afterwards.
type Bus struct {
	mu          sync.Mutex
	nextID      int
	subscribers []subscription
	logger      zerolog.Logger
}

// New creates an empty bus.
func New(logger zerolog.Logger) *Bus {
	return &Bus{logger: logger}
}

// Subscribe registers fn and returns the function that removes it. The
// release function is safe to call more than once and from any goroutine.
// A nil bus or handler returns a nil release.
func (b *Bus) Subscribe(fn Handler) (release func()) {
	if b == nil || fn == nil {
		return nil
	}

	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subscribers = append(b.subscribers, subscription{id: id, fn: fn})
	count := len(b.subscribers)
	b.mu.Unlock()

	b.logger.Debug().Int("id", id).Int("subscribers", count).Msg("key subscriber added")

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(id) })
	}
}

func (b *Bus) remove(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, s := range b.subscribers {
		if s.id == id {
			b.subscribers = append(b.subscribers[:i], b.subscribers[i+1:]...)
			b.logger.Debug().Int("id", id).Int("subscribers", len(b.subscribers)).Msg("key subscriber released")
			return
		}
	}
}

// Publish dispatches msg to all current subscribers.
func (b *Bus) Publish(msg tea.KeyPressMsg) {
	b.mu.Lock()
	subs := make([]subscription, len(b.subscribers))
	copy(subs, b.subscribers)
	b.mu.Unlock()

	for _, s := range subs {
		s.fn(msg)
	}
}

// Len returns the number of live subscriptions.
func (b *Bus) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subscribers)
}

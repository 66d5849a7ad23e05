// Package events fans engine events out to front-end subscribers.
package events

import (
	"slices"
	"sync"
	"sync/atomic"

	"github.com/jscyril/wpl_player/api"
)

// Buffer sizes for new subscriptions. Progress events arrive every polling
// tick, so catch-all subscribers get room for a few seconds of them.
const (
	typedBuffer = 10
	allBuffer   = 64
)

type subscriber struct {
	ch    chan api.AudioEvent
	types []api.EventType // nil receives every type
}

func (s subscriber) wants(t api.EventType) bool {
	return s.types == nil || slices.Contains(s.types, t)
}

// EventBus delivers events without blocking the publisher. A subscriber
// whose buffer is full misses the event.
type EventBus struct {
	mu      sync.RWMutex
	subs    []subscriber
	closed  bool
	dropped atomic.Uint64
}

// NewEventBus creates a new event bus
func NewEventBus() *EventBus {
	return &EventBus{}
}

// Subscribe returns a channel receiving events of the given types
func (b *EventBus) Subscribe(types ...api.EventType) <-chan api.AudioEvent {
	if len(types) == 0 {
		return b.SubscribeAll()
	}
	return b.add(subscriber{
		ch:    make(chan api.AudioEvent, typedBuffer),
		types: slices.Clone(types),
	})
}

// SubscribeAll returns a channel receiving every event
func (b *EventBus) SubscribeAll() <-chan api.AudioEvent {
	return b.add(subscriber{ch: make(chan api.AudioEvent, allBuffer)})
}

func (b *EventBus) add(s subscriber) <-chan api.AudioEvent {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		close(s.ch)
		return s.ch
	}
	b.subs = append(b.subs, s)
	return s.ch
}

// Publish hands event to every interested subscriber
func (b *EventBus) Publish(event api.AudioEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, s := range b.subs {
		if !s.wants(event.Type) {
			continue
		}
		select {
		case s.ch <- event:
		default:
			b.dropped.Add(1)
		}
	}
}

// Dropped returns how many deliveries were skipped because a subscriber
// was not keeping up
func (b *EventBus) Dropped() uint64 {
	return b.dropped.Load()
}

// Unsubscribe removes a subscriber channel and closes it
func (b *EventBus) Unsubscribe(ch <-chan api.AudioEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := slices.IndexFunc(b.subs, func(s subscriber) bool { return s.ch == ch })
	if i < 0 {
		return
	}
	close(b.subs[i].ch)
	b.subs = slices.Delete(b.subs, i, i+1)
}

// Close closes all subscriber channels. Later subscriptions get a closed
// channel.
func (b *EventBus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for _, s := range b.subs {
		close(s.ch)
	}
	b.subs = nil
}

package events

import (
	"testing"

	"github.com/jscyril/wpl_player/api"
)

func TestPublishSubscribe(t *testing.T) {
	bus := NewEventBus()
	defer bus.Close()

	progress := bus.Subscribe(api.EventProgress)
	all := bus.SubscribeAll()

	bus.Publish(api.AudioEvent{Type: api.EventProgress, Payload: int64(42)})
	bus.Publish(api.AudioEvent{Type: api.EventStateChange, Payload: api.StatusPaused})

	got := <-progress
	if got.Payload.(int64) != 42 {
		t.Errorf("progress payload = %v, want 42", got.Payload)
	}
	select {
	case ev := <-progress:
		t.Errorf("progress subscriber received %v", ev)
	default:
	}

	first, second := <-all, <-all
	if first.Type != api.EventProgress || second.Type != api.EventStateChange {
		t.Errorf("SubscribeAll order = %v, %v", first.Type, second.Type)
	}
}

func TestPublishDoesNotBlock(t *testing.T) {
	bus := NewEventBus()
	defer bus.Close()

	ch := bus.Subscribe(api.EventError)
	for i := 0; i < 100; i++ {
		bus.Publish(api.AudioEvent{Type: api.EventError})
	}
	if len(ch) != cap(ch) {
		t.Errorf("buffered events = %d, want %d", len(ch), cap(ch))
	}
}

func TestUnsubscribe(t *testing.T) {
	bus := NewEventBus()
	defer bus.Close()

	ch := bus.SubscribeAll()
	bus.Unsubscribe(ch)

	if _, ok := <-ch; ok {
		t.Error("channel should be closed after Unsubscribe")
	}
	bus.Publish(api.AudioEvent{Type: api.EventProgress})
}

func TestClose(t *testing.T) {
	bus := NewEventBus()
	a := bus.SubscribeAll()
	b := bus.Subscribe(api.EventTrackEnded)

	bus.Close()

	if _, ok := <-a; ok {
		t.Error("SubscribeAll channel should be closed")
	}
	if _, ok := <-b; ok {
		t.Error("Subscribe channel should be closed")
	}
}

func TestSubscribe_MultipleTypes(t *testing.T) {
	bus := NewEventBus()
	defer bus.Close()

	ch := bus.Subscribe(api.EventTrackStarted, api.EventTrackEnded)
	bus.Publish(api.AudioEvent{Type: api.EventProgress})
	bus.Publish(api.AudioEvent{Type: api.EventTrackEnded})
	bus.Publish(api.AudioEvent{Type: api.EventTrackStarted})

	if len(ch) != 2 {
		t.Fatalf("buffered events = %d, want 2", len(ch))
	}
	if ev := <-ch; ev.Type != api.EventTrackEnded {
		t.Errorf("first event = %v, want EventTrackEnded", ev.Type)
	}
}

func TestDropped(t *testing.T) {
	bus := NewEventBus()
	defer bus.Close()

	ch := bus.Subscribe(api.EventProgress)
	for i := 0; i < cap(ch)+5; i++ {
		bus.Publish(api.AudioEvent{Type: api.EventProgress})
	}
	if bus.Dropped() != 5 {
		t.Errorf("Dropped() = %d, want 5", bus.Dropped())
	}
}

func TestSubscribeAfterClose(t *testing.T) {
	bus := NewEventBus()
	bus.Close()
	bus.Close()

	if _, ok := <-bus.SubscribeAll(); ok {
		t.Error("subscription after Close should be closed")
	}
	bus.Publish(api.AudioEvent{Type: api.EventError})
}

package events

import (
	"testing"
	"time"
)

func TestBus_PublishSubscribe(t *testing.T) {
	bus := New()
	received := make(chan LogEntryEvent, 1)

	unsub := bus.Subscribe(func(e LogEntryEvent) {
		received <- e
	})
	defer unsub()

	event := LogEntryEvent{
		Seq:       7,
		Level:     "info",
		Namespace: "frontend::session",
		Message:   "session opened",
	}
	bus.Publish(event)

	got := <-received
	if got.Namespace != event.Namespace {
		t.Errorf("Expected namespace %s, got %s", event.Namespace, got.Namespace)
	}
	if got.Seq != event.Seq {
		t.Errorf("Expected seq %d, got %d", event.Seq, got.Seq)
	}
}

func TestBus_MultipleSubscribers(_ *testing.T) {
	bus := New()
	received1 := make(chan RotationEvent, 1)
	received2 := make(chan RotationEvent, 1)

	unsub1 := bus.Subscribe(func(e RotationEvent) {
		received1 <- e
	})
	defer unsub1()

	unsub2 := bus.Subscribe(func(e RotationEvent) {
		received2 <- e
	})
	defer unsub2()

	bus.Publish(RotationEvent{Filename: "app-2025-01-09.log"})

	<-received1
	<-received2
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := New()
	received := make(chan ConfigReloadedEvent, 1)

	unsub := bus.Subscribe(func(e ConfigReloadedEvent) {
		received <- e
	})
	unsub()

	bus.Publish(ConfigReloadedEvent{Path: "config.toml"})

	select {
	case <-received:
		t.Error("received event after unsubscribe")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSubscribeToChannel_DropsWhenFull(t *testing.T) {
	bus := New()
	ch := make(chan any, 1)

	unsub := SubscribeToChannel[LogEntryEvent](bus, ch)
	defer unsub()

	bus.Publish(LogEntryEvent{Seq: 1})
	bus.Publish(LogEntryEvent{Seq: 2}) // channel full, dropped without blocking

	// Give the dispatcher a moment to deliver.
	deadline := time.After(time.Second)
	for {
		select {
		case e := <-ch:
			if got := e.(LogEntryEvent).Seq; got != 1 {
				t.Errorf("Expected first event, got seq %d", got)
			}
			return
		case <-deadline:
			t.Fatal("no event delivered")
		}
	}
}

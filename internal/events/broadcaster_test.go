package events

import (
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestBroadcaster_SubscribeUnsubscribe(t *testing.T) {
	b := NewBroadcaster(4)

	id, ch := b.Subscribe()
	if b.SubscriberCount() != 1 {
		t.Errorf("expected 1 subscriber, got %d", b.SubscriberCount())
	}

	b.Unsubscribe(id)
	if b.SubscriberCount() != 0 {
		t.Errorf("expected 0 subscribers, got %d", b.SubscriberCount())
	}

	// Channel should be closed
	select {
	case _, ok := <-ch:
		if ok {
			t.Error("expected channel to be closed")
		}
	default:
		t.Error("channel should be closed and readable")
	}
}

func TestBroadcaster_Publish(t *testing.T) {
	b := NewBroadcaster(4)

	id, ch := b.Subscribe()
	defer b.Unsubscribe(id)

	b.Publish(Event{Type: DisasterResolved, ID: "D1", At: time.Now()})

	select {
	case received := <-ch:
		if received.Type != DisasterResolved || received.ID != "D1" {
			t.Errorf("unexpected event %+v", received)
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("timeout waiting for event")
	}
}

func TestBroadcaster_SlowSubscriberIsSkipped(t *testing.T) {
	b := NewBroadcaster(1)

	id, ch := b.Subscribe()
	defer b.Unsubscribe(id)

	b.Publish(Event{Type: DroneAdded, ID: "DR1"})
	b.Publish(Event{Type: DroneAdded, ID: "DR2"}) // buffer full, dropped

	first := <-ch
	if first.ID != "DR1" {
		t.Errorf("expected DR1, got %s", first.ID)
	}
	select {
	case e := <-ch:
		t.Errorf("expected second event to be dropped, got %+v", e)
	default:
	}
}

func TestBroadcaster_ConcurrentSubscribePublish(t *testing.T) {
	b := NewBroadcaster(8)
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			id, _ := b.Subscribe()
			time.Sleep(time.Millisecond)
			b.Unsubscribe(id)
		}()
		go func() {
			defer wg.Done()
			b.Publish(Event{Type: AlertAdded, ID: "A1"})
		}()
	}

	wg.Wait()

	if b.SubscriberCount() != 0 {
		t.Errorf("expected 0 subscribers after cleanup, got %d", b.SubscriberCount())
	}
}

func TestBroadcaster_Close(t *testing.T) {
	b := NewBroadcaster(4)
	_, ch := b.Subscribe()

	b.Close()

	if _, ok := <-ch; ok {
		t.Error("expected channel closed after Close")
	}

	_, late := b.Subscribe()
	if _, ok := <-late; ok {
		t.Error("expected subscription after Close to be closed immediately")
	}
	if b.SubscriberCount() != 0 {
		t.Errorf("expected 0 subscribers, got %d", b.SubscriberCount())
	}
}

package events

import (
	"sync"
	"sync/atomic"
	"time"
)

type Type string

const (
	DisasterAdded    Type = "disaster.added"
	DisasterResolved Type = "disaster.resolved"
	DisasterDeleted  Type = "disaster.deleted"
	DroneAdded       Type = "drone.added"
	OperatorAdded    Type = "operator.added"
	OperatorAssigned Type = "operator.assigned"
	MissionAdded     Type = "mission.added"
	AlertAdded       Type = "alert.added"
	AppUserSaved     Type = "app_user.saved"
)

// Event tells dashboards which record changed so they can re-read the
// views they show. It never carries report rows.
type Event struct {
	Type Type      `json:"type"`
	ID   string    `json:"id"`
	At   time.Time `json:"at"`
}

type Broadcaster struct {
	subscribers map[uint64]chan Event
	nextID      atomic.Uint64
	bufferSize  int
	closed      bool
	mu          sync.RWMutex
}

func NewBroadcaster(bufferSize int) *Broadcaster {
	if bufferSize < 1 {
		bufferSize = 1
	}
	return &Broadcaster{
		subscribers: make(map[uint64]chan Event),
		bufferSize:  bufferSize,
	}
}

// Subscribe returns a closed channel once the broadcaster is closed.
func (b *Broadcaster) Subscribe() (uint64, <-chan Event) {
	id := b.nextID.Add(1)
	ch := make(chan Event, b.bufferSize)

	b.mu.Lock()
	if b.closed {
		close(ch)
	} else {
		b.subscribers[id] = ch
	}
	b.mu.Unlock()

	return id, ch
}

func (b *Broadcaster) Unsubscribe(id uint64) {
	b.mu.Lock()
	if ch, ok := b.subscribers[id]; ok {
		close(ch)
		delete(b.subscribers, id)
	}
	b.mu.Unlock()
}

func (b *Broadcaster) Publish(e Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subscribers {
		select {
		case ch <- e:
		default:
			// Skip slow subscribers
		}
	}
}

func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}

// Close closes all subscriber channels, ending their streams
func (b *Broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	for id, ch := range b.subscribers {
		close(ch)
		delete(b.subscribers, id)
	}
}

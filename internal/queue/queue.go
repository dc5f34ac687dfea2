// Package queue implements the per-kind event queues between detection
// workers and the alert aggregator.
package queue

import (
	"sync"

	"github.com/chetanyadav256/Aegis-Surveillance-System/internal/models"
)

// DefaultCapacity bounds each queue; oldest events are dropped on overflow
// so a stalled aggregator never grows the process without bound.
const DefaultCapacity = 1024

// Queue is a FIFO of detection events. Multi-producer, single-consumer.
// TryPop never blocks: an empty queue is the normal steady state.
type Queue struct {
	mu     sync.Mutex
	events []models.DetectionEvent
	cap    int
	drops  uint64
}

func New(capacity int) *Queue {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Queue{cap: capacity}
}

// Push appends an event. If the queue is full the oldest event is dropped
// and the drop counter incremented.
func (q *Queue) Push(ev models.DetectionEvent) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.events) >= q.cap {
		q.events = q.events[1:]
		q.drops++
	}
	q.events = append(q.events, ev)
}

// TryPop removes and returns the oldest event, or ok=false when empty.
func (q *Queue) TryPop() (models.DetectionEvent, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.events) == 0 {
		return models.DetectionEvent{}, false
	}
	ev := q.events[0]
	q.events = q.events[1:]
	return ev, true
}

// Drain discards everything currently queued and returns the count.
func (q *Queue) Drain() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	n := len(q.events)
	q.events = nil
	return n
}

// Len returns the number of queued events.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}

// Drops returns the number of events discarded by the overflow policy.
func (q *Queue) Drops() uint64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.drops
}

// Set groups the three queues by kind. Weapon events share the object queue;
// the event itself stays tagged kind=weapon.
type Set struct {
	Motion *Queue
	Object *Queue
	Face   *Queue
}

func NewSet(capacity int) *Set {
	return &Set{
		Motion: New(capacity),
		Object: New(capacity),
		Face:   New(capacity),
	}
}

// ForKind returns the queue that carries events of the given kind.
func (s *Set) ForKind(kind models.Kind) *Queue {
	switch kind {
	case models.KindMotion:
		return s.Motion
	case models.KindFace:
		return s.Face
	default:
		return s.Object
	}
}

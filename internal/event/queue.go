package event

import (
	"errors"
	"sync"
)

// ErrClosed is returned when pushing to or popping from a closed queue.
var ErrClosed = errors.New("event queue closed")

// Queue is an unbounded FIFO with many producers and one consumer. Push never
// blocks, so a slow consumer cannot stall the window manager or signal readers.
type Queue struct {
	mu     sync.Mutex
	cond   *sync.Cond
	items  []Event
	closed bool
}

func NewQueue() *Queue {
	q := &Queue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Push appends ev. It fails once the queue is closed.
func (q *Queue) Push(ev Event) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return ErrClosed
	}
	q.items = append(q.items, ev)
	q.cond.Signal()
	return nil
}

// Pop blocks until an event is available. Events pushed before Close are still
// delivered; after that Pop returns ErrClosed.
func (q *Queue) Pop() (Event, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for len(q.items) == 0 {
		if q.closed {
			return Event{}, ErrClosed
		}
		q.cond.Wait()
	}

	ev := q.items[0]
	q.items[0] = Event{}
	q.items = q.items[1:]
	return ev, nil
}

// Len returns the number of queued events.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Close rejects further pushes and wakes a blocked Pop.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.closed = true
	q.cond.Broadcast()
}

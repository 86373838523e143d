// Package queue provides the two bounded queue flavors the server relies
// on: drop-new outboxes for broadcast lines and a blocking queue for the
// game event log. The asymmetry is deliberate: broadcast staleness is
// tolerable because fresh state lives server-side, audit data is not
// allowed to drop.
package queue

import "sync"

// Outbox is a bounded queue of protocol lines destined for one player's
// socket. Producers never block: Enqueue drops the newest message when the
// queue is full.
type Outbox struct {
	ch chan string
}

func NewOutbox(size int) *Outbox {
	return &Outbox{
		ch: make(chan string, size),
	}
}

// Enqueue adds a line to the outbox. It reports false if the outbox is
// full and the line was dropped.
func (o *Outbox) Enqueue(line string) bool {
	select {
	case o.ch <- line:
		return true
	default:
		return false
	}
}

// Lines returns the receive side of the outbox for select-based draining.
func (o *Outbox) Lines() <-chan string {
	return o.ch
}

// Len returns the number of queued lines.
func (o *Outbox) Len() int {
	return len(o.ch)
}

// Blocking is a bounded queue whose Enqueue blocks while the queue is
// full. Close stops intake; items already queued remain receivable until
// the channel drains.
type Blocking struct {
	lock   sync.Mutex
	ch     chan interface{}
	closed bool
}

func NewBlocking(size int) *Blocking {
	return &Blocking{
		ch: make(chan interface{}, size),
	}
}

// Enqueue adds an item, blocking while the queue is full. It reports
// false if the queue has been closed.
func (q *Blocking) Enqueue(item interface{}) bool {
	q.lock.Lock()
	defer q.lock.Unlock()
	if q.closed {
		return false
	}
	q.ch <- item
	return true
}

// Items returns the receive side of the queue. The channel is closed by
// Close after any in-flight Enqueue completes.
func (q *Blocking) Items() <-chan interface{} {
	return q.ch
}

// Close stops intake. Safe to call once.
func (q *Blocking) Close() {
	q.lock.Lock()
	defer q.lock.Unlock()
	if q.closed {
		return
	}
	q.closed = true
	close(q.ch)
}

// Len returns the number of queued items.
func (q *Blocking) Len() int {
	return len(q.ch)
}

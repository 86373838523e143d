// Package eventlog is the asynchronous game event log: a bounded queue
// drained by a single consumer goroutine that appends to durable storage.
package eventlog

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/cbodonnell/wordduel/pkg/log"
	"github.com/cbodonnell/wordduel/pkg/queue"
)

const timestampLayout = "2006-01-02 15:04:05"

// Event is one immutable, timestamped game event.
type Event struct {
	Time    time.Time
	Message string
}

// Logger appends game events to an append-only log file. Producers block
// briefly when the queue is full; the audit trail outranks non-blocking
// liveness at this boundary.
type Logger struct {
	q    *queue.Blocking
	w    io.WriteCloser
	done chan struct{}
}

// Open opens (or creates) the log file in append mode and starts the
// consumer goroutine.
func Open(path string, capacity int) (*Logger, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open event log %s: %w", path, err)
	}
	l := newLogger(f, capacity)
	return l, nil
}

// NewWithWriter builds a Logger on an arbitrary writer. Used by tests.
func NewWithWriter(w io.WriteCloser, capacity int) *Logger {
	return newLogger(w, capacity)
}

func newLogger(w io.WriteCloser, capacity int) *Logger {
	l := &Logger{
		q:    queue.NewBlocking(capacity),
		w:    w,
		done: make(chan struct{}),
	}
	go l.consume()
	return l
}

// Printf enqueues a formatted event. It blocks while the queue is full
// and is a no-op after Stop.
func (l *Logger) Printf(format string, args ...interface{}) {
	l.q.Enqueue(Event{
		Time:    time.Now(),
		Message: fmt.Sprintf(format, args...),
	})
}

// Stop closes intake, waits for the consumer to drain every queued event,
// then closes the underlying file.
func (l *Logger) Stop() {
	l.q.Close()
	<-l.done
	if f, ok := l.w.(*os.File); ok {
		if err := f.Sync(); err != nil {
			log.Error("Failed to sync event log: %v", err)
		}
	}
	if err := l.w.Close(); err != nil {
		log.Error("Failed to close event log: %v", err)
	}
}

func (l *Logger) consume() {
	defer close(l.done)
	for item := range l.q.Items() {
		event, ok := item.(Event)
		if !ok {
			log.Error("Failed to cast event log item")
			continue
		}
		line := fmt.Sprintf("%s | %s\n", event.Time.Format(timestampLayout), event.Message)
		// one write per event so a crash loses at most the line in flight
		if _, err := io.WriteString(l.w, line); err != nil {
			log.Error("Failed to write event log line: %v", err)
		}
	}
}

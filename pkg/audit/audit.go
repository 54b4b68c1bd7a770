// Package audit keeps a trail of shared-memory namespace operations.
//
// A Recorder is written by the operation path and drained by whoever ships
// the events (a log sink, a test). It never blocks the writer.
package audit

import (
	"errors"
	"sync/atomic"
	"time"

	"github.com/Workiva/go-datastructures/queue"
)

// Event describes one namespace operation.
type Event struct {
	Op     string
	Name   string
	Result string
	Err    error
	At     time.Time
}

// Failed reports whether the operation returned an error.
func (e Event) Failed() bool { return e.Err != nil }

// Recorder buffers events in an unbounded queue.
type Recorder struct {
	q       *queue.Queue
	dropped atomic.Uint64
}

// NewRecorder returns a Recorder; hint sizes the initial queue allocation.
func NewRecorder(hint int64) *Recorder {
	if hint <= 0 {
		hint = 64
	}
	return &Recorder{q: queue.New(hint)}
}

// Record appends e. Events recorded after Close are counted as dropped.
func (r *Recorder) Record(e Event) {
	if e.At.IsZero() {
		e.At = time.Now()
	}
	if err := r.q.Put(e); err != nil {
		r.dropped.Add(1)
	}
}

// Drain removes and returns up to max buffered events without waiting
// for new ones. max <= 0 drains everything.
func (r *Recorder) Drain(max int) []Event {
	n := r.q.Len()
	if n == 0 {
		return nil
	}
	if max > 0 && int64(max) < n {
		n = int64(max)
	}
	items, err := r.q.Poll(n, time.Millisecond)
	if err != nil {
		return nil
	}
	return toEvents(items)
}

// Wait blocks until an event is available or timeout elapses.
func (r *Recorder) Wait(timeout time.Duration) (Event, bool) {
	items, err := r.q.Poll(1, timeout)
	if err != nil {
		if !errors.Is(err, queue.ErrTimeout) && !errors.Is(err, queue.ErrDisposed) {
			r.dropped.Add(1)
		}
		return Event{}, false
	}
	events := toEvents(items)
	if len(events) == 0 {
		return Event{}, false
	}
	return events[0], true
}

// Closed reports whether Close has been called.
func (r *Recorder) Closed() bool { return r.q.Disposed() }

func (r *Recorder) Len() int { return int(r.q.Len()) }

// Dropped is the number of events rejected after Close.
func (r *Recorder) Dropped() uint64 { return r.dropped.Load() }

// Close discards buffered events and releases any waiter.
func (r *Recorder) Close() {
	r.q.Dispose()
}

func toEvents(items []interface{}) []Event {
	events := make([]Event, 0, len(items))
	for _, it := range items {
		if e, ok := it.(Event); ok {
			events = append(events, e)
		}
	}
	return events
}

// Package adapter provides adapters for shmopen integration with external systems.
package adapter

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/srediag/shmopen/pkg/audit"
)

// AuditSource is what AuditLogSink reads from; *audit.Recorder satisfies it.
type AuditSource interface {
	Wait(timeout time.Duration) (audit.Event, bool)
	Drain(max int) []audit.Event
	Closed() bool
}

// AuditLogSink ships audit events to a logger: failures at warn level,
// everything else at info.
type AuditLogSink struct {
	Source AuditSource
	Logger logrus.FieldLogger
	// Poll bounds how long Run waits before rechecking ctx.
	Poll time.Duration
}

// Run forwards events until ctx is done, then flushes what is buffered.
// It returns early once the source is closed.
func (s *AuditLogSink) Run(ctx context.Context) {
	poll := s.Poll
	if poll <= 0 {
		poll = 100 * time.Millisecond
	}
	for {
		select {
		case <-ctx.Done():
			s.Flush()
			return
		default:
		}
		e, ok := s.Source.Wait(poll)
		if ok {
			s.emit(e)
			continue
		}
		if s.Source.Closed() {
			return
		}
	}
}

// Flush forwards every buffered event without waiting.
func (s *AuditLogSink) Flush() {
	for _, e := range s.Source.Drain(0) {
		s.emit(e)
	}
}

func (s *AuditLogSink) emit(e audit.Event) {
	entry := s.Logger.WithFields(logrus.Fields{
		"audit":  true,
		"op":     e.Op,
		"name":   e.Name,
		"result": e.Result,
		"at":     e.At.Format(time.RFC3339Nano),
	})
	if e.Failed() {
		entry.WithError(e.Err).Warn("audit")
		return
	}
	entry.Info("audit")
}

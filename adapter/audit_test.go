package adapter

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/srediag/shmopen/pkg/audit"
)

func TestAuditLogSink(t *testing.T) {
	var out bytes.Buffer
	logger := logrus.New()
	logger.Out = &out
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true, DisableColors: true})

	rec := audit.NewRecorder(0)
	defer rec.Close()
	rec.Record(audit.Event{Op: "shm_open", Name: "/a", Result: "ok"})

	ctx, cancel := context.WithCancel(context.Background())
	sink := &AuditLogSink{Source: rec, Logger: logger, Poll: 5 * time.Millisecond}
	done := make(chan struct{})
	go func() {
		sink.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return rec.Len() == 0 }, time.Second, time.Millisecond)
	cancel()
	<-done

	rec.Record(audit.Event{Op: "shm_unlink", Name: "/b", Result: "not-found", Err: errors.New("gone")})
	sink.Flush()

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Len(t, lines, 2)
	assert.Contains(t, lines[0], "level=info")
	assert.Contains(t, lines[0], "name=/a")
	assert.Contains(t, lines[1], "level=warning")
	assert.Contains(t, lines[1], "error=gone")
}

func TestAuditLogSinkStopsWhenSourceCloses(t *testing.T) {
	logger := logrus.New()
	logger.Out = &bytes.Buffer{}

	rec := audit.NewRecorder(0)
	sink := &AuditLogSink{Source: rec, Logger: logger, Poll: time.Hour}
	done := make(chan struct{})
	go func() {
		sink.Run(context.Background())
		close(done)
	}()
	rec.Close()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run kept polling a closed source")
	}
}

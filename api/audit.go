// Package api defines public API contracts for shmopen.
package api

import (
	"github.com/srediag/shmopen/pkg/audit"
	"github.com/srediag/shmopen/pkg/shm"
)

// Auditor receives one event per namespace operation.
type Auditor = shm.Auditor

var _ Auditor = (*audit.Recorder)(nil)

// Package health provides liveness and readiness checks for a process that
// depends on the shared-memory namespace.
package health

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/heptiolabs/healthcheck"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shirou/gopsutil/v3/disk"

	"github.com/srediag/shmopen/pkg/shm"
)

const (
	checkTimeout = 2 * time.Second

	NamespaceCheckName = "shm-namespace"
	CapacityCheckName  = "shm-capacity"
)

// Config selects what the handler checks.
type Config struct {
	// Prefix is used for the probe names the namespace check creates.
	Prefix string
	// Dir is the mount backing the namespace; empty skips the capacity check.
	Dir string
	// MinFreeBytes is the free space Dir must have to report ready.
	MinFreeBytes uint64
	// Registry, when set, receives one gauge per check.
	Registry prometheus.Registerer
	// MetricsNamespace prefixes the check gauges.
	MetricsNamespace string
}

// NamespaceCheck exclusively creates and then unlinks a throwaway name.
func NamespaceCheck(prefix string) healthcheck.Check {
	return func() error {
		name := shm.ShortName(prefix, strings.ReplaceAll(uuid.NewString(), "-", ""))
		fd, err := shm.Open(name, shm.Create|shm.Exclusive|shm.ReadWrite, 0600)
		if err != nil {
			return fmt.Errorf("probe create: %w", err)
		}
		_ = shm.Close(fd)
		if err := shm.Unlink(name); err != nil {
			return fmt.Errorf("probe unlink: %w", err)
		}
		return nil
	}
}

// CapacityCheck fails when dir has less than minFree bytes available.
func CapacityCheck(dir string, minFree uint64) healthcheck.Check {
	return func() error {
		if dir == "" {
			return nil
		}
		usage, err := disk.Usage(dir)
		if err != nil {
			return fmt.Errorf("usage of %s: %w", dir, err)
		}
		if usage.Free < minFree {
			return fmt.Errorf("%s has %d bytes free, need %d", dir, usage.Free, minFree)
		}
		return nil
	}
}

// NewHandler returns a handler serving /live and /ready.
func NewHandler(cfg Config) healthcheck.Handler {
	var h healthcheck.Handler
	if cfg.Registry != nil {
		h = healthcheck.NewMetricsHandler(cfg.Registry, cfg.MetricsNamespace)
	} else {
		h = healthcheck.NewHandler()
	}
	h.AddLivenessCheck(NamespaceCheckName, healthcheck.Timeout(NamespaceCheck(cfg.Prefix), checkTimeout))
	h.AddReadinessCheck(CapacityCheckName, healthcheck.Timeout(CapacityCheck(cfg.Dir, cfg.MinFreeBytes), checkTimeout))
	return h
}

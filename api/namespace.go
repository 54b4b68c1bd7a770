// Package api defines public API contracts for shmopen.
package api

import (
	"context"
	"os"

	"github.com/srediag/shmopen/pkg/shm"
)

// Namespace is the fixed-arity contract over the shared-memory namespace.
type Namespace interface {
	// Open opens or creates name and returns its descriptor.
	Open(ctx context.Context, name string, flag shm.Flag, perm os.FileMode) (int, error)
	// Unlink removes name from the namespace.
	Unlink(ctx context.Context, name string) error
}

// OwningNamespace is a Namespace that remembers the names it created.
type OwningNamespace interface {
	Namespace
	CreateUnique(ctx context.Context, prefix string, perm os.FileMode) (string, int, error)
	Owned() []string
	UnlinkAll(ctx context.Context) error
	Close() error
}

// Direct is the uninstrumented Namespace: the package-level shm functions.
type Direct struct{}

func (Direct) Open(_ context.Context, name string, flag shm.Flag, perm os.FileMode) (int, error) {
	return shm.Open(name, flag, perm)
}

func (Direct) Unlink(_ context.Context, name string) error {
	return shm.Unlink(name)
}

var (
	_ Namespace       = Direct{}
	_ OwningNamespace = (*shm.Namespace)(nil)
)

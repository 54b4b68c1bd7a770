// Package shm contains the platform-specific forwarding layer for the POSIX
// shared-memory namespace.
//
// Every function here is a fixed-arity pass-through: it adds no policy of
// its own and returns whatever the platform reports, as a unix.Errno.
package shm

import (
	"errors"
	"fmt"
	"runtime"
)

// ErrUnsupported is returned on platforms without a POSIX shared-memory namespace.
var ErrUnsupported = fmt.Errorf("shared memory namespace on %s: %w", runtime.GOOS, errors.ErrUnsupported)

package shm

import (
	"errors"
	"syscall"
)

// ErrNotOwner is returned by Segment.Remove on a segment that was attached
// rather than created.
var ErrNotOwner = errors.New("segment was not created by this process")

// Error records a failed namespace operation and the platform error behind it.
type Error struct {
	Op   string
	Name string
	Err  error
}

func (e *Error) Error() string {
	return e.Op + " " + e.Name + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// Kind classifies the underlying platform error.
func (e *Error) Kind() Kind { return KindOf(e.Err) }

// Kind is the error taxonomy of the platform calls.
type Kind int

const (
	KindOther Kind = iota
	KindInvalidName
	KindNotFound
	KindAlreadyExists
	KindPermissionDenied
	KindResourceExhausted
	KindInvalidArgument
	KindUnsupported
)

var kindNames = [...]string{
	KindOther:             "other",
	KindInvalidName:       "invalid-name",
	KindNotFound:          "not-found",
	KindAlreadyExists:     "already-exists",
	KindPermissionDenied:  "permission-denied",
	KindResourceExhausted: "resource-exhausted",
	KindInvalidArgument:   "invalid-argument",
	KindUnsupported:       "unsupported",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return kindNames[KindOther]
	}
	return kindNames[k]
}

// KindOf classifies err. A nil error, or one that carries no errno, is KindOther.
func KindOf(err error) Kind {
	if err == nil {
		return KindOther
	}
	if errors.Is(err, errors.ErrUnsupported) {
		return KindUnsupported
	}
	var errno syscall.Errno
	if !errors.As(err, &errno) {
		return KindOther
	}
	switch errno {
	case syscall.ENAMETOOLONG:
		return KindInvalidName
	case syscall.ENOENT:
		return KindNotFound
	case syscall.EEXIST:
		return KindAlreadyExists
	case syscall.EACCES, syscall.EPERM:
		return KindPermissionDenied
	case syscall.EMFILE, syscall.ENFILE, syscall.ENOSPC, syscall.ENOMEM:
		return KindResourceExhausted
	case syscall.EINVAL:
		return KindInvalidArgument
	}
	return KindOther
}

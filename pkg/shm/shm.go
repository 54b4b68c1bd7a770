package shm

import (
	"os"

	internalshm "github.com/srediag/shmopen/internal/shm"
)

const (
	opOpen   = "shm_open"
	opUnlink = "shm_unlink"
)

// Open opens or creates the shared-memory object name and returns its
// descriptor. perm is applied only when flag contains Create. The caller
// owns the descriptor and must close it.
func Open(name string, flag Flag, perm os.FileMode) (int, error) {
	fd, err := internalshm.Open(name, int(flag), uint32(perm.Perm()))
	if err != nil {
		return -1, &Error{Op: opOpen, Name: name, Err: err}
	}
	return fd, nil
}

// Unlink removes name from the namespace. Descriptors and mappings already
// open against the object stay valid until released.
func Unlink(name string) error {
	if err := internalshm.Unlink(name); err != nil {
		return &Error{Op: opUnlink, Name: name, Err: err}
	}
	return nil
}

// Close closes a descriptor returned by Open.
func Close(fd int) error {
	return internalshm.Close(fd)
}

// OpenFile is Open with the descriptor wrapped in an *os.File.
func OpenFile(name string, flag Flag, perm os.FileMode) (*os.File, error) {
	fd, err := Open(name, flag, perm)
	if err != nil {
		return nil, err
	}
	return os.NewFile(uintptr(fd), name), nil
}

// UnlinkIfExists is Unlink with a missing name treated as success.
func UnlinkIfExists(name string) error {
	err := Unlink(name)
	if KindOf(err) == KindNotFound {
		return nil
	}
	return err
}

// Exists reports whether name is present in the namespace.
func Exists(name string) (bool, error) {
	fd, err := Open(name, ReadOnly, 0)
	if err != nil {
		if KindOf(err) == KindNotFound {
			return false, nil
		}
		return false, err
	}
	_ = Close(fd)
	return true, nil
}

package shm

import (
	"os"
	"sync"
	"syscall"

	internalshm "github.com/srediag/shmopen/internal/shm"
)

// Segment is a named shared-memory object mapped read-write into this process.
type Segment struct {
	name  string
	fd    int
	mem   []byte
	owner bool

	closeOnce sync.Once
	closeErr  error
}

// CreateSegment exclusively creates name, sizes it and maps it. If any
// step after the create fails the descriptor is closed and the name
// unlinked, so a failed call leaves nothing behind.
func CreateSegment(name string, size int, perm os.FileMode) (*Segment, error) {
	if size <= 0 {
		return nil, &Error{Op: "create", Name: name, Err: syscall.EINVAL}
	}
	fd, err := Open(name, Create|Exclusive|ReadWrite, perm)
	if err != nil {
		return nil, err
	}
	rollback := func(cause error) (*Segment, error) {
		_ = internalshm.Close(fd)
		_ = internalshm.Unlink(name)
		return nil, &Error{Op: "create", Name: name, Err: cause}
	}
	if err := internalshm.Truncate(fd, int64(size)); err != nil {
		return rollback(err)
	}
	mem, err := internalshm.Map(fd, size)
	if err != nil {
		return rollback(err)
	}
	return &Segment{name: name, fd: fd, mem: mem, owner: true}, nil
}

// AttachSegment opens an existing name and maps all of it.
func AttachSegment(name string) (*Segment, error) {
	fd, err := Open(name, ReadWrite, 0)
	if err != nil {
		return nil, err
	}
	fail := func(cause error) (*Segment, error) {
		_ = internalshm.Close(fd)
		return nil, &Error{Op: "attach", Name: name, Err: cause}
	}
	size, err := internalshm.Size(fd)
	if err != nil {
		return fail(err)
	}
	if size == 0 {
		// creator has not sized it yet
		return fail(syscall.EINVAL)
	}
	mem, err := internalshm.Map(fd, int(size))
	if err != nil {
		return fail(err)
	}
	return &Segment{name: name, fd: fd, mem: mem}, nil
}

func (s *Segment) Name() string  { return s.name }
func (s *Segment) Bytes() []byte { return s.mem }
func (s *Segment) Size() int     { return len(s.mem) }
func (s *Segment) Fd() int       { return s.fd }

// Owner reports whether this process created the segment.
func (s *Segment) Owner() bool { return s.owner }

// Close unmaps the segment and closes its descriptor. The name stays in
// the namespace. Calling Close more than once returns the first result.
func (s *Segment) Close() error {
	s.closeOnce.Do(func() {
		if err := internalshm.Unmap(s.mem); err != nil {
			s.closeErr = &Error{Op: "close", Name: s.name, Err: err}
		}
		if err := internalshm.Close(s.fd); err != nil && s.closeErr == nil {
			s.closeErr = &Error{Op: "close", Name: s.name, Err: err}
		}
		s.mem = nil
	})
	return s.closeErr
}

// Remove closes the segment and unlinks its name. Only the creator may
// remove it.
func (s *Segment) Remove() error {
	if !s.owner {
		return &Error{Op: "remove", Name: s.name, Err: ErrNotOwner}
	}
	closeErr := s.Close()
	if err := UnlinkIfExists(s.name); err != nil {
		return err
	}
	return closeErr
}

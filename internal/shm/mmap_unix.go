//go:build linux || darwin

package shm

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Map maps [0, size) of fd shared and read-write.
func Map(fd int, size int) ([]byte, error) {
	addr, err := unix.Mmap(fd, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("mmap: %w", err)
	}
	return addr, nil
}

// Unmap releases a mapping returned by Map.
func Unmap(addr []byte) error {
	if addr == nil {
		return nil
	}
	if err := unix.Munmap(addr); err != nil {
		return fmt.Errorf("munmap: %w", err)
	}
	return nil
}

// Truncate sets the object size. New objects start at zero length.
func Truncate(fd int, size int64) error {
	if err := unix.Ftruncate(fd, size); err != nil {
		return fmt.Errorf("ftruncate: %w", err)
	}
	return nil
}

// Size reports the current object size.
func Size(fd int) (int64, error) {
	var st unix.Stat_t
	if err := unix.Fstat(fd, &st); err != nil {
		return 0, fmt.Errorf("fstat: %w", err)
	}
	return st.Size, nil
}

// Close closes a descriptor returned by Open.
func Close(fd int) error {
	return unix.Close(fd)
}

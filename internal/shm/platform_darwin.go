//go:build darwin

package shm

import (
	"runtime"
	"unsafe"

	"golang.org/x/sys/unix"
)

// Dir returns the directory backing the namespace. Darwin keeps the
// namespace in the kernel, so there is none.
func Dir() string {
	return ""
}

// Open opens or creates the named object and returns its descriptor.
func Open(name string, oflag int, mode uint32) (int, error) {
	p, err := unix.BytePtrFromString(name)
	if err != nil {
		return -1, err
	}
	fd, _, errno := unix.Syscall(unix.SYS_SHM_OPEN, uintptr(unsafe.Pointer(p)), uintptr(oflag), uintptr(mode))
	runtime.KeepAlive(p)
	if errno != 0 {
		return -1, errno
	}
	return int(fd), nil
}

// Unlink removes the name from the namespace.
func Unlink(name string) error {
	p, err := unix.BytePtrFromString(name)
	if err != nil {
		return err
	}
	_, _, errno := unix.Syscall(unix.SYS_SHM_UNLINK, uintptr(unsafe.Pointer(p)), 0, 0)
	runtime.KeepAlive(p)
	if errno != 0 {
		return errno
	}
	return nil
}

//go:build linux

package shm

import (
	"errors"
	"strings"

	"golang.org/x/sys/unix"
)

// Linux has no shm_open syscall: glibc maps the namespace onto a tmpfs
// mount and the rules below mirror its name handling.
const (
	devShm  = "/dev/shm"
	nameMax = 255
)

// Dir returns the directory backing the namespace.
func Dir() string {
	return devShm
}

func objectPath(name string) (string, error) {
	rest := strings.TrimLeft(name, "/")
	switch {
	case rest == "", rest == ".", rest == "..":
		return "", unix.EINVAL
	case strings.IndexByte(rest, '/') >= 0:
		return "", unix.EINVAL
	case strings.IndexByte(rest, 0) >= 0:
		return "", unix.EINVAL
	case len(rest) >= nameMax:
		return "", unix.ENAMETOOLONG
	}
	return devShm + "/" + rest, nil
}

// Open opens or creates the named object and returns its descriptor.
func Open(name string, oflag int, mode uint32) (int, error) {
	path, err := objectPath(name)
	if err != nil {
		return -1, err
	}
	fd, err := unix.Open(path, oflag|unix.O_NOFOLLOW|unix.O_CLOEXEC, mode)
	if err != nil {
		if errors.Is(err, unix.EISDIR) {
			return -1, unix.EINVAL
		}
		return -1, err
	}
	return fd, nil
}

// Unlink removes the name from the namespace.
func Unlink(name string) error {
	path, err := objectPath(name)
	if err != nil {
		return err
	}
	if err := unix.Unlink(path); err != nil {
		// EPERM is what unlink reports for a sticky /dev/shm owned by someone else
		if errors.Is(err, unix.EPERM) {
			return unix.EACCES
		}
		return err
	}
	return nil
}

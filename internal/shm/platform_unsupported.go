//go:build !linux && !darwin

package shm

// Dir returns the directory backing the namespace.
func Dir() string {
	return ""
}

// Open is not available on this platform.
func Open(name string, oflag int, mode uint32) (int, error) {
	return -1, ErrUnsupported
}

// Unlink is not available on this platform.
func Unlink(name string) error {
	return ErrUnsupported
}

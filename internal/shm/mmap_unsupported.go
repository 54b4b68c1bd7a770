//go:build !linux && !darwin

package shm

func Map(fd int, size int) ([]byte, error) { return nil, ErrUnsupported }

func Unmap(addr []byte) error { return ErrUnsupported }

func Truncate(fd int, size int64) error { return ErrUnsupported }

func Size(fd int) (int64, error) { return 0, ErrUnsupported }

func Close(fd int) error { return ErrUnsupported }

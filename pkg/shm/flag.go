package shm

import (
	"os"
	"strings"
)

// Flag is the open-flag bitmask passed to Open.
type Flag int

// The platform O_* values. ReadOnly is zero, so it is implied when
// ReadWrite is absent.
const (
	ReadOnly  Flag = Flag(os.O_RDONLY)
	ReadWrite Flag = Flag(os.O_RDWR)
	Create    Flag = Flag(os.O_CREATE)
	Exclusive Flag = Flag(os.O_EXCL)
	Truncate  Flag = Flag(os.O_TRUNC)
)

func (f Flag) String() string {
	parts := make([]string, 0, 4)
	if f&ReadWrite != 0 {
		parts = append(parts, "ReadWrite")
	} else {
		parts = append(parts, "ReadOnly")
	}
	if f&Create != 0 {
		parts = append(parts, "Create")
	}
	if f&Exclusive != 0 {
		parts = append(parts, "Exclusive")
	}
	if f&Truncate != 0 {
		parts = append(parts, "Truncate")
	}
	return strings.Join(parts, "|")
}

package shm

import (
	"strings"
	"syscall"
)

const (
	// MaxPortableNameLen is the longest name, leading slash included, that
	// every supported platform accepts. Darwin is the limiting one.
	MaxPortableNameLen = 31

	// DefaultPrefix is prepended to session names.
	DefaultPrefix = "/ub_"

	// SessionIDLen is how many characters of a session id go into its name.
	SessionIDLen = 8
)

// ShortName joins prefix and id, dropping any '/' from id and truncating
// it so the result fits MaxPortableNameLen. A missing leading slash on
// prefix is added.
func ShortName(prefix, id string) string {
	if !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}
	id = strings.ReplaceAll(id, "/", "")
	room := MaxPortableNameLen - len(prefix)
	if room < 0 {
		room = 0
	}
	if len(id) > room {
		id = id[:room]
	}
	return prefix + id
}

// SessionName is the namespace name for a session: DefaultPrefix followed
// by the first SessionIDLen characters of sessionID.
func SessionName(sessionID string) string {
	if len(sessionID) > SessionIDLen {
		sessionID = sessionID[:SessionIDLen]
	}
	return ShortName(DefaultPrefix, sessionID)
}

// ValidateName checks name against the portable rules: a leading '/',
// at least one more character, no further '/' or NUL, and at most
// MaxPortableNameLen bytes. Open and Unlink never call it.
func ValidateName(name string) error {
	var errno syscall.Errno
	switch {
	case len(name) < 2 || name[0] != '/':
		errno = syscall.EINVAL
	case strings.ContainsAny(name[1:], "/\x00"):
		errno = syscall.EINVAL
	case len(name) > MaxPortableNameLen:
		errno = syscall.ENAMETOOLONG
	default:
		return nil
	}
	return &Error{Op: "validate", Name: name, Err: errno}
}

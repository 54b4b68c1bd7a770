// Package shm exposes the POSIX shared-memory namespace (shm_open and
// shm_unlink) as two fixed-arity Go functions with explicit error results.
//
// Open and Unlink are pure pass-through: no validation, retries, or state.
// Failures come back as *Error, whose Err is the platform errno, so callers
// can match with errors.Is(err, fs.ErrExist) or classify with KindOf.
//
// Example usage:
//
//	fd, err := shm.Open("/stream-1", shm.Create|shm.Exclusive|shm.ReadWrite, 0600)
//	if shm.KindOf(err) == shm.KindAlreadyExists {
//	  // someone else owns the name
//	}
//	// ...
//	err = shm.Unlink("/stream-1")
//
// Segment adds the create-truncate-map sequence most callers perform next,
// and Namespace adds logging, metrics, tracing and ownership tracking for
// long-lived processes that create names.
package shm

package shm

import (
	"os"
	"runtime"
	"testing"
)

func requireNamespace(t *testing.T) {
	t.Helper()
	switch runtime.GOOS {
	case "linux":
		if _, err := os.Stat("/dev/shm"); err != nil {
			t.Skipf("no /dev/shm: %v", err)
		}
	case "darwin":
	default:
		t.Skipf("no POSIX shared memory namespace on %s", runtime.GOOS)
	}
}

// testName returns a fresh portable name that is unlinked when t ends.
func testName(t *testing.T) string {
	t.Helper()
	name := ShortName("/sot_", randomSuffix()[:12])
	t.Cleanup(func() { _ = UnlinkIfExists(name) })
	return name
}

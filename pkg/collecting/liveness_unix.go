//go:build unix

package collecting

import (
	"golang.org/x/sys/unix"
)

// pidAlive probes pid with signal 0. EPERM still means the process exists.
func pidAlive(pid uint32) bool {
	err := unix.Kill(int(pid), 0)
	return err == nil || err == unix.EPERM
}

//go:build !unix

package collecting

import (
	"github.com/shirou/gopsutil/v4/process"
)

func pidAlive(pid uint32) bool {
	ok, err := process.PidExists(int32(pid))
	return err == nil && ok
}

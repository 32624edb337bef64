//go:build linux

package fs

import (
	"os"
	"syscall"
	"time"
)

// fileTimes reports the status-change and access times. Linux has no
// portable birth time, so ctime stands in for creation.
func fileTimes(info os.FileInfo) (created, accessed time.Time) {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return time.Time{}, time.Time{}
	}
	return time.Unix(st.Ctim.Unix()), time.Unix(st.Atim.Unix())
}

//go:build windows

package fs

import (
	"os"
	"syscall"
	"time"
)

func fileTimes(info os.FileInfo) (created, accessed time.Time) {
	data, ok := info.Sys().(*syscall.Win32FileAttributeData)
	if !ok {
		return time.Time{}, time.Time{}
	}
	return time.Unix(0, data.CreationTime.Nanoseconds()), time.Unix(0, data.LastAccessTime.Nanoseconds())
}

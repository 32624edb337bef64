//go:build !linux && !darwin && !freebsd && !netbsd && !windows

package fs

import (
	"os"
	"time"
)

func fileTimes(os.FileInfo) (created, accessed time.Time) {
	return time.Time{}, time.Time{}
}

package catalog

import (
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
)

const (
	// TimeLayout matches the listing's modified column.
	TimeLayout = "2006-01-02 15:04"

	unknownTime = "Unknown"
)

// FormatSize renders a byte count for the listing's size column.
func FormatSize(size int64) string {
	if size < 0 {
		size = 0
	}
	return humanize.IBytes(uint64(size))
}

// FormatSizeDetail renders a size for the detail panel, e.g. "1.2 KiB (1,234 bytes)".
func FormatSizeDetail(size int64) string {
	return fmt.Sprintf("%s (%s bytes)", FormatSize(size), humanize.Comma(size))
}

// FormatTime renders a timestamp; the zero time means the value was unreadable.
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return unknownTime
	}
	return t.Local().Format(TimeLayout)
}

// FormatRelative renders a timestamp relative to now ("3 days ago").
func FormatRelative(t time.Time) string {
	if t.IsZero() {
		return unknownTime
	}
	return humanize.Time(t)
}

// FormatPermissions returns the octal permission bits, e.g. "644".
func FormatPermissions(mode os.FileMode) string {
	return fmt.Sprintf("%03o", mode.Perm())
}

package fs

import (
	"os"
	"time"

	"github.com/kk-code-lab/fex/internal/catalog"
)

// Entry represents a single file or directory on disk as observed by one
// listing. Entries are never mutated after the listing returns them.
type Entry struct {
	Name      string
	FullPath  string
	IsDir     bool
	IsSymlink bool
	Size      int64
	Modified  time.Time
	Mode      os.FileMode
	Kind      catalog.Kind

	// Unreadable marks a placeholder for a child whose metadata could not
	// be read. Size and Modified are zero and Kind is catalog.KindUnknown.
	Unreadable bool
}

// TypeLabel returns the label used for the type column and type sorting.
func (e Entry) TypeLabel() string {
	return catalog.TypeLabel(e.Kind, e.Name)
}

// Icon returns the entry's icon.
func (e Entry) Icon() string {
	return e.Kind.Icon()
}

// Detail is the extended metadata shown for a single selected path.
type Detail struct {
	Entry
	Created  time.Time // zero when the platform does not report it
	Accessed time.Time
}

// Permissions returns the octal permission bits, e.g. "644".
func (d Detail) Permissions() string {
	return catalog.FormatPermissions(d.Mode)
}

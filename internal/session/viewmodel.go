package session

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/kk-code-lab/fex/internal/catalog"
	fsutil "github.com/kk-code-lab/fex/internal/fs"
	"github.com/kk-code-lab/fex/internal/listing"
)

// Crumb is one clickable breadcrumb segment.
type Crumb struct {
	Label string
	Path  string
}

// ViewModel is the read-only projection handed to the presentation layer
// after every operation.
type ViewModel struct {
	CurrentPath  string
	Breadcrumbs  []Crumb
	Items        []fsutil.Entry
	CanGoBack    bool
	CanGoForward bool
	FolderCount  int
	FileCount    int
	TotalBytes   int64 // non-directory items in the filtered view

	Query      string
	SortKey    listing.SortKey
	Descending bool
}

// Empty reports whether the rendered listing has no items.
func (v ViewModel) Empty() bool {
	return len(v.Items) == 0
}

// Summary returns the status line text, e.g.
// "2 folder(s), 3 file(s) | Total: 1.2 KiB | Search: 'x'".
func (v ViewModel) Summary() string {
	if v.Empty() {
		return "0 items"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d folder(s), %d file(s)", v.FolderCount, v.FileCount)
	if v.TotalBytes > 0 {
		fmt.Fprintf(&b, " | Total: %s", catalog.FormatSize(v.TotalBytes))
	}
	if v.Query != "" {
		fmt.Fprintf(&b, " | Search: '%s'", v.Query)
	}
	return b.String()
}

// Breadcrumbs splits an absolute path into crumbs. The first crumb is the
// filesystem root ("/" or a volume such as "C:").
func Breadcrumbs(path string) []Crumb {
	if path == "" {
		return nil
	}

	sep := string(filepath.Separator)
	clean := filepath.Clean(path)
	vol := filepath.VolumeName(clean)
	rest := clean[len(vol):]

	var crumbs []Crumb
	current := vol
	if strings.HasPrefix(rest, sep) {
		current = vol + sep
		label := vol
		if label == "" {
			label = sep
		}
		crumbs = append(crumbs, Crumb{Label: label, Path: current})
	}

	for _, part := range strings.Split(rest, sep) {
		if part == "" {
			continue
		}
		current = filepath.Join(current, part)
		crumbs = append(crumbs, Crumb{Label: part, Path: current})
	}
	return crumbs
}

// Package listing derives the displayed item sequence from a raw directory
// listing: filter by name, then sort with directories grouped first.
package listing

import (
	"sort"
	"strings"

	fsutil "github.com/kk-code-lab/fex/internal/fs"
	"golang.org/x/text/cases"
)

// Options is the filter and sort state applied by Render.
type Options struct {
	Query      string
	Key        SortKey
	Descending bool
}

// Render filters entries whose name contains Query (case-insensitively),
// then sorts directories and files independently and concatenates them
// directories-first. The sort is stable, so ties keep enumeration order.
// The input slice is never modified.
func Render(entries []fsutil.Entry, opts Options) []fsutil.Entry {
	fold := cases.Fold()

	keys := make([]sortItem, 0, len(entries))
	query := fold.String(opts.Query)
	for _, e := range entries {
		folded := fold.String(e.Name)
		if query != "" && !strings.Contains(folded, query) {
			continue
		}
		item := sortItem{entry: e, name: folded}
		if opts.Key == SortByType {
			item.typeLabel = fold.String(e.TypeLabel())
		}
		keys = append(keys, item)
	}

	dirs := make([]sortItem, 0, len(keys))
	files := make([]sortItem, 0, len(keys))
	for _, item := range keys {
		if item.entry.IsDir {
			dirs = append(dirs, item)
		} else {
			files = append(files, item)
		}
	}

	sortPartition(dirs, opts)
	sortPartition(files, opts)

	out := make([]fsutil.Entry, 0, len(keys))
	for _, item := range dirs {
		out = append(out, item.entry)
	}
	for _, item := range files {
		out = append(out, item.entry)
	}
	return out
}

type sortItem struct {
	entry     fsutil.Entry
	name      string
	typeLabel string
}

func sortPartition(items []sortItem, opts Options) {
	sort.SliceStable(items, func(i, j int) bool {
		c := compare(items[i], items[j], opts.Key)
		if opts.Descending {
			return c > 0
		}
		return c < 0
	})
}

func compare(a, b sortItem, key SortKey) int {
	switch key {
	case SortBySize:
		return compareInt64(a.entry.Size, b.entry.Size)
	case SortByDate:
		return a.entry.Modified.Compare(b.entry.Modified)
	case SortByType:
		return strings.Compare(a.typeLabel, b.typeLabel)
	default:
		return strings.Compare(a.name, b.name)
	}
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Counts summarises a rendered sequence for the status line.
type Counts struct {
	Folders    int
	Files      int
	TotalBytes int64 // sum of non-directory sizes
}

// Count tallies folders, files and file bytes in items.
func Count(items []fsutil.Entry) Counts {
	var c Counts
	for _, e := range items {
		if e.IsDir {
			c.Folders++
			continue
		}
		c.Files++
		c.TotalBytes += e.Size
	}
	return c
}

package fs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kk-code-lab/fex/internal/catalog"
	"golang.org/x/text/unicode/norm"
)

// Accessor reads directory listings and single-path metadata.
type Accessor interface {
	// ListDirectory returns the entries of an absolute directory path. A
	// child whose metadata cannot be read is returned as a placeholder
	// entry; only a failure to read the directory itself is an error.
	ListDirectory(path string) ([]Entry, error)
	// Stat returns the metadata of a single path, following symlinks.
	Stat(path string) (Detail, error)
}

// OSAccessor implements Accessor on the local filesystem.
type OSAccessor struct{}

// NewOSAccessor returns the local filesystem accessor.
func NewOSAccessor() OSAccessor {
	return OSAccessor{}
}

// statFn and lstatFn are overridable in tests.
var (
	statFn  = os.Stat
	lstatFn = os.Lstat
)

// ListDirectory implements Accessor.
func (OSAccessor) ListDirectory(dirPath string) ([]Entry, error) {
	dirEntries, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, fmt.Errorf("cannot read directory %s: %w", dirPath, err)
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		rawName := de.Name()
		fullPath := filepath.Join(dirPath, rawName)

		if skipListing(fullPath, rawName) {
			continue
		}

		isSymlink := de.Type()&os.ModeSymlink != 0
		name := norm.NFC.String(rawName)

		info, err := statFn(fullPath)
		if err != nil && isSymlink {
			// Dangling symlink: describe the link itself.
			info, err = lstatFn(fullPath)
		}
		if err != nil {
			entries = append(entries, placeholderEntry(name, fullPath, isSymlink))
			continue
		}

		entries = append(entries, entryFromInfo(name, fullPath, isSymlink, info))
	}

	return entries, nil
}

// Stat implements Accessor.
func (OSAccessor) Stat(path string) (Detail, error) {
	info, err := statFn(path)
	if err != nil {
		return Detail{}, err
	}

	linfo, lerr := lstatFn(path)
	isSymlink := lerr == nil && linfo.Mode()&os.ModeSymlink != 0

	name := norm.NFC.String(filepath.Base(path))
	created, accessed := fileTimes(info)
	return Detail{
		Entry:    entryFromInfo(name, path, isSymlink, info),
		Created:  created,
		Accessed: accessed,
	}, nil
}

func entryFromInfo(name, fullPath string, isSymlink bool, info os.FileInfo) Entry {
	isDir := info.IsDir()
	size := info.Size()
	if isDir {
		size = 0
	}
	return Entry{
		Name:      name,
		FullPath:  fullPath,
		IsDir:     isDir,
		IsSymlink: isSymlink,
		Size:      size,
		Modified:  info.ModTime(),
		Mode:      info.Mode(),
		Kind:      catalog.Classify(name, isDir),
	}
}

func placeholderEntry(name, fullPath string, isSymlink bool) Entry {
	return Entry{
		Name:       name,
		FullPath:   fullPath,
		IsSymlink:  isSymlink,
		Kind:       catalog.KindUnknown,
		Unreadable: true,
	}
}

// Package session owns the navigation state of one browser window: the
// current directory, back/forward history, search and sort state, and the
// entries of the last listing.
package session

import (
	"os"
	"path/filepath"
	"strings"

	fsutil "github.com/kk-code-lab/fex/internal/fs"
	"github.com/kk-code-lab/fex/internal/history"
	"github.com/kk-code-lab/fex/internal/listing"
	"go.uber.org/zap"
)

// Session is the single writer of navigation state. It is not safe for
// concurrent use; the event loop calls it from one goroutine.
type Session struct {
	accessor fsutil.Accessor
	history  *history.History
	logger   *zap.Logger

	homeDir       string
	userHomeDirFn func() (string, error)

	currentPath string
	entries     []fsutil.Entry
	opts        listing.Options
	view        ViewModel
}

// Option configures a Session.
type Option func(*Session)

// WithHistoryLimit bounds the back/forward history. limit <= 0 is unbounded.
func WithHistoryLimit(limit int) Option {
	return func(s *Session) {
		s.history = history.New(limit)
	}
}

// WithSort sets the initial sort key and direction.
func WithSort(key listing.SortKey, descending bool) Option {
	return func(s *Session) {
		s.opts.Key = key
		s.opts.Descending = descending
	}
}

// WithHomeDir overrides the directory used by GoHome and "~" expansion.
func WithHomeDir(dir string) Option {
	return func(s *Session) {
		s.homeDir = dir
	}
}

// WithLogger sets the debug logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a session with no current directory; call Open to list the
// starting path.
func New(accessor fsutil.Accessor, opts ...Option) *Session {
	s := &Session{
		accessor:      accessor,
		history:       history.New(history.DefaultLimit),
		logger:        zap.NewNop(),
		userHomeDirFn: os.UserHomeDir,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.Named("session")
	return s
}

// Open lists the starting directory and seeds the history with it.
func (s *Session) Open(path string) (ViewModel, error) {
	return s.Navigate(path, true)
}

// View returns the projection of the current state.
func (s *Session) View() ViewModel {
	return s.view
}

// CurrentPath returns the directory being listed, or "" before Open.
func (s *Session) CurrentPath() string {
	return s.currentPath
}

// Navigate lists path and makes it current. When path names a file the
// state is left unchanged and an error of kind KindNotADirectory carrying
// the resolved path is returned; callers route it to the detail view.
//
// A directory whose listing is denied still becomes current with an empty
// listing; the returned view is valid alongside the KindPermissionDenied
// error. Every other failure leaves the state unchanged.
func (s *Session) Navigate(path string, record bool) (ViewModel, error) {
	_, err := s.navigate(path, record)
	return s.view, err
}

func (s *Session) navigate(path string, record bool) (bool, error) {
	target, err := s.resolve(path)
	if err != nil {
		return false, err
	}

	info, statErr := s.accessor.Stat(target)
	if statErr != nil {
		serr := classify(target, statErr)
		s.logger.Debug("stat failed", zap.String("path", target), zap.Stringer("kind", serr.Kind), zap.Error(statErr))
		return false, serr
	}
	if !info.IsDir {
		return false, &Error{Kind: KindNotADirectory, Path: target}
	}

	entries, listErr := s.accessor.ListDirectory(target)
	var serr *Error
	if listErr != nil {
		serr = classify(target, listErr)
		s.logger.Debug("list failed", zap.String("path", target), zap.Stringer("kind", serr.Kind), zap.Error(listErr))
		if serr.Kind != KindPermissionDenied {
			return false, serr
		}
		entries = nil
	}

	s.currentPath = target
	s.entries = entries
	if record {
		s.history.Record(target)
	}
	s.render()
	s.logger.Debug("navigated",
		zap.String("path", target),
		zap.Bool("record", record),
		zap.Int("entries", len(entries)),
		zap.Int("history_index", s.history.Index()),
		zap.Int("history_len", s.history.Len()),
	)

	if serr != nil {
		return true, serr
	}
	return true, nil
}

// GoBack replays the previous history entry. The bool reports whether the
// session moved; false with a nil error means there was nothing to go back
// to. If the replayed directory cannot be opened the cursor stays put.
func (s *Session) GoBack() (ViewModel, bool, error) {
	path, ok := s.history.Back()
	if !ok {
		return s.view, false, nil
	}
	committed, err := s.navigate(path, false)
	if !committed {
		s.history.Forward()
		return s.view, false, err
	}
	return s.view, true, err
}

// GoForward replays the next history entry; see GoBack.
func (s *Session) GoForward() (ViewModel, bool, error) {
	path, ok := s.history.Forward()
	if !ok {
		return s.view, false, nil
	}
	committed, err := s.navigate(path, false)
	if !committed {
		s.history.Back()
		return s.view, false, err
	}
	return s.view, true, err
}

// GoUp navigates to the parent directory. At the filesystem root it is a
// no-op and reports false.
func (s *Session) GoUp() (ViewModel, bool, error) {
	if s.currentPath == "" {
		return s.view, false, nil
	}
	parent := filepath.Dir(s.currentPath)
	if parent == s.currentPath {
		return s.view, false, nil
	}
	committed, err := s.navigate(parent, true)
	return s.view, committed, err
}

// GoHome navigates to the home directory.
func (s *Session) GoHome() (ViewModel, error) {
	home, err := s.home()
	if err != nil {
		return s.view, err
	}
	return s.Navigate(home, true)
}

// SetSearch filters the cached listing; it never touches the filesystem.
func (s *Session) SetSearch(query string) ViewModel {
	s.opts.Query = query
	s.render()
	return s.view
}

// ClearSearch is SetSearch("").
func (s *Session) ClearSearch() ViewModel {
	return s.SetSearch("")
}

// SetSort re-sorts the cached listing; it never touches the filesystem.
func (s *Session) SetSort(key listing.SortKey, descending bool) ViewModel {
	s.opts.Key = key
	s.opts.Descending = descending
	s.render()
	return s.view
}

// Refresh re-reads the current directory. A directory that has disappeared
// reports KindNotFound and keeps the previous listing.
func (s *Session) Refresh() (ViewModel, error) {
	if s.currentPath == "" {
		return s.view, nil
	}
	entries, err := s.accessor.ListDirectory(s.currentPath)
	if err != nil {
		serr := classify(s.currentPath, err)
		s.logger.Debug("refresh failed", zap.String("path", s.currentPath), zap.Stringer("kind", serr.Kind), zap.Error(err))
		if serr.Kind != KindPermissionDenied {
			return s.view, serr
		}
		s.entries = nil
		s.render()
		return s.view, serr
	}
	s.entries = entries
	s.render()
	return s.view, nil
}

// Details returns extended metadata for a single path.
func (s *Session) Details(path string) (fsutil.Detail, error) {
	target, err := s.resolve(path)
	if err != nil {
		return fsutil.Detail{}, err
	}
	detail, statErr := s.accessor.Stat(target)
	if statErr != nil {
		return fsutil.Detail{}, classify(target, statErr)
	}
	return detail, nil
}

func (s *Session) render() {
	items := listing.Render(s.entries, s.opts)
	counts := listing.Count(items)
	s.view = ViewModel{
		CurrentPath:  s.currentPath,
		Breadcrumbs:  Breadcrumbs(s.currentPath),
		Items:        items,
		CanGoBack:    s.history.CanGoBack(),
		CanGoForward: s.history.CanGoForward(),
		FolderCount:  counts.Folders,
		FileCount:    counts.Files,
		TotalBytes:   counts.TotalBytes,
		Query:        s.opts.Query,
		SortKey:      s.opts.Key,
		Descending:   s.opts.Descending,
	}
}

// resolve expands "~", anchors relative paths at the current directory
// (or the process working directory before Open) and cleans the result.
func (s *Session) resolve(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		path = s.currentPath
	}

	if path == "~" || strings.HasPrefix(path, "~/") || strings.HasPrefix(path, "~"+string(filepath.Separator)) {
		home, err := s.home()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, path[1:])
	}

	if !filepath.IsAbs(path) && s.currentPath != "" {
		path = filepath.Join(s.currentPath, path)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", &Error{Kind: KindOther, Path: path, Err: err}
	}
	return abs, nil
}

func (s *Session) home() (string, error) {
	if s.homeDir != "" {
		return filepath.Clean(s.homeDir), nil
	}
	home, err := s.userHomeDirFn()
	if err != nil || home == "" {
		if err == nil {
			err = os.ErrNotExist
		}
		return "", &Error{Kind: KindNotFound, Path: "~", Err: err}
	}
	return filepath.Clean(home), nil
}

package state

import (
	"path/filepath"
	"time"

	fsutil "github.com/kk-code-lab/fex/internal/fs"
	"github.com/kk-code-lab/fex/internal/session"
)

// FileEntry mirrors fs.Entry so UI/state code can rely on a stable type.
type FileEntry = fsutil.Entry

// InputMode selects which prompt, if any, receives typed runes.
type InputMode int

const (
	ModeNormal InputMode = iota
	ModeSearch
	ModePath
)

// Screen rows reserved around the list: header, toolbar and column header
// above; status line and footer below.
const (
	ListTopRow    = 3
	listFooterRow = 2
)

// AppState is the single source of truth for the presentation layer. The
// listing itself lives in View, which only the session produces.
type AppState struct {
	View session.ViewModel

	// Selection & viewport
	SelectedIndex int // index into View.Items, -1 when empty
	ScrollOffset  int

	// Prompts
	Mode      InputMode
	PathInput string

	// Detail panel
	Detail *fsutil.Detail

	HelpVisible bool

	// Dimensions
	ScreenWidth  int
	ScreenHeight int

	// Status line
	StatusMessage      string
	StatusIsError      bool
	ClipboardAvailable bool      // Whether clipboard command is available
	LastYankTime       time.Time // Time of last successful yank (for flash effect)

	// Error state
	LastError error
}

// CurrentPath returns the directory being listed.
func (s *AppState) CurrentPath() string {
	return s.View.CurrentPath
}

// DisplayFiles returns the filtered, sorted entries shown in the list.
func (s *AppState) DisplayFiles() []FileEntry {
	return s.View.Items
}

func (s *AppState) CurrentFile() *FileEntry {
	if s.SelectedIndex < 0 || s.SelectedIndex >= len(s.View.Items) {
		return nil
	}
	return &s.View.Items[s.SelectedIndex]
}

// CurrentFilePath returns the selected entry's path, or the current
// directory when nothing is selected.
func (s *AppState) CurrentFilePath() string {
	if file := s.CurrentFile(); file != nil {
		return file.FullPath
	}
	if s.View.CurrentPath == "" {
		return "."
	}
	return filepath.Clean(s.View.CurrentPath)
}

// SearchActive reports whether typed runes edit the search query.
func (s *AppState) SearchActive() bool {
	return s.Mode == ModeSearch
}

// PathPromptActive reports whether typed runes edit the path prompt.
func (s *AppState) PathPromptActive() bool {
	return s.Mode == ModePath
}

// VisibleLines is the number of list rows that fit on screen.
func (s *AppState) VisibleLines() int {
	lines := s.ScreenHeight - ListTopRow - listFooterRow
	if lines < 1 {
		return 1
	}
	return lines
}

// SetStatus replaces the status line message until the next action.
func (s *AppState) SetStatus(msg string, isError bool) {
	s.StatusMessage = msg
	s.StatusIsError = isError
}

func (s *AppState) clearStatus() {
	s.StatusMessage = ""
	s.StatusIsError = false
}

// indexOfName returns the position of name in the current items, or -1.
func (s *AppState) indexOfName(name string) int {
	if name == "" {
		return -1
	}
	for idx, item := range s.View.Items {
		if item.Name == name {
			return idx
		}
	}
	return -1
}

func (s *AppState) clampSelection() {
	if len(s.View.Items) == 0 {
		s.SelectedIndex = -1
		s.ScrollOffset = 0
		return
	}
	if s.SelectedIndex < 0 {
		s.SelectedIndex = 0
	}
	if s.SelectedIndex >= len(s.View.Items) {
		s.SelectedIndex = len(s.View.Items) - 1
	}
}

func (s *AppState) clampScroll() {
	maxOffset := len(s.View.Items) - s.VisibleLines()
	if maxOffset < 0 {
		maxOffset = 0
	}
	if s.ScrollOffset > maxOffset {
		s.ScrollOffset = maxOffset
	}
	if s.ScrollOffset < 0 {
		s.ScrollOffset = 0
	}
}

func (s *AppState) updateScrollVisibility() {
	if s.SelectedIndex < 0 {
		s.clampScroll()
		return
	}
	visibleLines := s.VisibleLines()
	if s.SelectedIndex < s.ScrollOffset {
		s.ScrollOffset = s.SelectedIndex
	} else if s.SelectedIndex >= s.ScrollOffset+visibleLines {
		s.ScrollOffset = s.SelectedIndex - visibleLines + 1
	}
	s.clampScroll()
}

func (s *AppState) centerScrollOnSelection() {
	if s.SelectedIndex < 0 {
		s.clampScroll()
		return
	}
	s.ScrollOffset = s.SelectedIndex - s.VisibleLines()/2
	s.clampScroll()
}

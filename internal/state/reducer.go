package state

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/kk-code-lab/fex/internal/session"
	"go.uber.org/zap"
)

// StateReducer applies actions to state. Every listing change goes through
// the session; the reducer only tracks selection, prompts and messages.
type StateReducer struct {
	session          *session.Session
	logger           *zap.Logger
	selectionHistory map[string]string // directory -> selected entry name
}

// NewStateReducer creates a reducer driving sess. A nil logger discards.
func NewStateReducer(sess *session.Session, logger *zap.Logger) *StateReducer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StateReducer{
		session:          sess,
		logger:           logger.Named("reducer"),
		selectionHistory: make(map[string]string),
	}
}

// Open lists the starting path. A file path opens its directory with the
// file selected and its details shown.
func (r *StateReducer) Open(state *AppState, path string) error {
	view, err := r.session.Open(path)
	if filePath, ok := session.IsNotADirectory(err); ok {
		view, err = r.session.Open(filepath.Dir(filePath))
		if committed(err) {
			r.applyNavigation(state, view, filepath.Base(filePath))
			if detailErr := r.showDetails(state, filePath); detailErr != nil {
				return detailErr
			}
		}
		return r.handleError(state, err)
	}
	if committed(err) {
		r.applyNavigation(state, view, "")
	}
	return r.handleError(state, err)
}

func (r *StateReducer) Reduce(state *AppState, action Action) (*AppState, error) {
	if _, ok := action.(ResizeAction); !ok {
		state.clearStatus()
	}

	switch a := action.(type) {

	// ===== SELECTION =====

	case NavigateDownAction:
		return state, r.moveSelection(state, state.SelectedIndex+1)

	case NavigateUpAction:
		if state.SelectedIndex <= 0 {
			return state, nil
		}
		return state, r.moveSelection(state, state.SelectedIndex-1)

	case ScrollPageUpAction:
		return state, r.moveSelection(state, state.SelectedIndex-state.VisibleLines())

	case ScrollPageDownAction:
		return state, r.moveSelection(state, state.SelectedIndex+state.VisibleLines())

	case ScrollToStartAction:
		return state, r.moveSelection(state, 0)

	case ScrollToEndAction:
		return state, r.moveSelection(state, len(state.View.Items)-1)

	case MouseSelectAction:
		if a.DisplayIndex < 0 || a.DisplayIndex >= len(state.View.Items) {
			return state, nil
		}
		return state, r.moveSelection(state, a.DisplayIndex)

	// ===== NAVIGATION =====

	case OpenSelectedAction:
		file := state.CurrentFile()
		if file == nil {
			return state, nil
		}
		return state, r.navigate(state, file.FullPath, "")

	case GoUpAction:
		focus := filepath.Base(state.View.CurrentPath)
		r.rememberSelection(state)
		view, moved, err := r.session.GoUp()
		if moved {
			r.applyNavigation(state, view, focus)
		}
		return state, r.handleError(state, err)

	case GoHomeAction:
		r.rememberSelection(state)
		view, err := r.session.GoHome()
		if committed(err) {
			r.applyNavigation(state, view, "")
		}
		return state, r.handleError(state, err)

	case GoToPathAction:
		if a.Path == "" {
			return state, nil
		}
		return state, r.navigate(state, a.Path, "")

	case GoToHistoryAction:
		r.rememberSelection(state)
		var (
			view  session.ViewModel
			moved bool
			err   error
		)
		switch a.Direction {
		case "back":
			view, moved, err = r.session.GoBack()
		case "forward":
			view, moved, err = r.session.GoForward()
		default:
			return state, fmt.Errorf("unknown history direction %q", a.Direction)
		}
		if moved {
			r.applyNavigation(state, view, "")
		}
		return state, r.handleError(state, err)

	case RefreshDirectoryAction:
		view, err := r.session.Refresh()
		if committed(err) {
			r.applyListingChange(state, view)
			if state.Detail != nil {
				r.followSelection(state)
			}
		}
		if err == nil {
			state.SetStatus("Refreshed", false)
		}
		return state, r.handleError(state, err)

	// ===== SEARCH =====

	case FilterStartAction:
		state.Mode = ModeSearch
		return state, nil

	case FilterCharAction:
		if !state.SearchActive() {
			return state, nil
		}
		r.applyListingChange(state, r.session.SetSearch(state.View.Query+string(a.Char)))
		return state, nil

	case FilterBackspaceAction:
		if !state.SearchActive() || state.View.Query == "" {
			return state, nil
		}
		runes := []rune(state.View.Query)
		r.applyListingChange(state, r.session.SetSearch(string(runes[:len(runes)-1])))
		return state, nil

	case FilterAcceptAction:
		state.Mode = ModeNormal
		return state, nil

	case FilterClearAction:
		state.Mode = ModeNormal
		if state.View.Query != "" {
			r.applyListingChange(state, r.session.ClearSearch())
			state.centerScrollOnSelection()
		}
		return state, nil

	// ===== PATH PROMPT =====

	case PathPromptStartAction:
		state.Mode = ModePath
		state.PathInput = state.View.CurrentPath
		return state, nil

	case PathCharAction:
		if state.PathPromptActive() {
			state.PathInput += string(a.Char)
		}
		return state, nil

	case PathBackspaceAction:
		if state.PathPromptActive() && state.PathInput != "" {
			runes := []rune(state.PathInput)
			state.PathInput = string(runes[:len(runes)-1])
		}
		return state, nil

	case PathSubmitAction:
		if !state.PathPromptActive() {
			return state, nil
		}
		path := state.PathInput
		state.Mode = ModeNormal
		state.PathInput = ""
		if path == "" {
			return state, nil
		}
		return state, r.navigate(state, path, "")

	case PathCancelAction:
		state.Mode = ModeNormal
		state.PathInput = ""
		return state, nil

	// ===== SORT =====

	case CycleSortAction:
		r.applyListingChange(state, r.session.SetSort(state.View.SortKey.Next(), state.View.Descending))
		return state, nil

	case ToggleSortDirectionAction:
		r.applyListingChange(state, r.session.SetSort(state.View.SortKey, !state.View.Descending))
		return state, nil

	case SetSortAction:
		r.applyListingChange(state, r.session.SetSort(a.Key, a.Descending))
		return state, nil

	// ===== VIEW =====

	case ResizeAction:
		state.ScreenWidth = a.Width
		state.ScreenHeight = a.Height
		state.updateScrollVisibility()
		return state, nil

	case ShowDetailsAction:
		file := state.CurrentFile()
		if file == nil {
			return state, nil
		}
		if state.Detail != nil && state.Detail.FullPath == file.FullPath {
			state.Detail = nil
			return state, nil
		}
		return state, r.showDetails(state, file.FullPath)

	case HideDetailsAction:
		state.Detail = nil
		return state, nil

	case HelpToggleAction:
		state.HelpVisible = !state.HelpVisible
		return state, nil

	case HelpHideAction:
		state.HelpVisible = false
		return state, nil
	}

	return state, nil
}

func committed(err error) bool {
	return err == nil || errors.Is(err, session.ErrPermissionDenied)
}

func (r *StateReducer) navigate(state *AppState, path, focus string) error {
	r.rememberSelection(state)
	view, err := r.session.Navigate(path, true)
	if committed(err) {
		r.applyNavigation(state, view, focus)
	}
	return r.handleError(state, err)
}

func (r *StateReducer) moveSelection(state *AppState, idx int) error {
	if len(state.View.Items) == 0 {
		return nil
	}
	if idx < 0 {
		idx = 0
	}
	if idx >= len(state.View.Items) {
		idx = len(state.View.Items) - 1
	}
	if idx == state.SelectedIndex {
		return nil
	}
	state.SelectedIndex = idx
	state.updateScrollVisibility()
	if state.Detail != nil {
		return r.followSelection(state)
	}
	return nil
}

// followSelection keeps an open detail panel on the selected entry.
func (r *StateReducer) followSelection(state *AppState) error {
	file := state.CurrentFile()
	if file == nil {
		state.Detail = nil
		return nil
	}
	if state.Detail != nil && state.Detail.FullPath == file.FullPath && state.Detail.Modified.Equal(file.Modified) {
		return nil
	}
	return r.showDetails(state, file.FullPath)
}

func (r *StateReducer) rememberSelection(state *AppState) {
	if file := state.CurrentFile(); file != nil && state.View.CurrentPath != "" {
		r.selectionHistory[state.View.CurrentPath] = file.Name
	}
}

// applyNavigation installs the view of a new directory. The selection goes
// to focus if present, else to the entry last selected there, else the top.
func (r *StateReducer) applyNavigation(state *AppState, view session.ViewModel, focus string) {
	state.View = view
	state.Detail = nil

	idx := state.indexOfName(focus)
	if idx < 0 {
		idx = state.indexOfName(r.selectionHistory[view.CurrentPath])
	}
	if idx < 0 {
		idx = 0
	}
	state.SelectedIndex = idx
	state.clampSelection()
	state.centerScrollOnSelection()
}

// applyListingChange installs a re-sorted or re-filtered view of the same
// directory, keeping the selected entry when it is still listed.
func (r *StateReducer) applyListingChange(state *AppState, view session.ViewModel) {
	var selected string
	if file := state.CurrentFile(); file != nil {
		selected = file.Name
	}
	state.View = view

	idx := state.indexOfName(selected)
	if idx < 0 {
		idx = 0
	}
	state.SelectedIndex = idx
	state.clampSelection()
	state.updateScrollVisibility()
}

func (r *StateReducer) showDetails(state *AppState, path string) error {
	detail, err := r.session.Details(path)
	if err != nil {
		return r.handleError(state, err)
	}
	state.Detail = &detail
	return nil
}

// handleError turns a session error into a status message. NotADirectory
// is not a failure: it opens the detail panel for that file.
func (r *StateReducer) handleError(state *AppState, err error) error {
	if err == nil {
		return nil
	}
	if path, ok := session.IsNotADirectory(err); ok {
		return r.showDetails(state, path)
	}

	path := ""
	var serr *session.Error
	if errors.As(err, &serr) {
		path = serr.Path
	}

	switch {
	case errors.Is(err, session.ErrNotFound):
		state.SetStatus("Path does not exist: "+path, true)
	case errors.Is(err, session.ErrPermissionDenied):
		state.SetStatus("Permission denied: "+path, true)
	default:
		state.SetStatus("Error: "+err.Error(), true)
	}
	state.LastError = err
	r.logger.Debug("action failed", zap.String("path", path), zap.Error(err))
	return err
}

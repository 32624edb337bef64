package state

import "github.com/kk-code-lab/fex/internal/listing"

// Action is the base interface for all state mutations
type Action interface{}

// ===== SELECTION ACTIONS =====

type NavigateUpAction struct{}
type NavigateDownAction struct{}
type ScrollPageUpAction struct{}
type ScrollPageDownAction struct{}
type ScrollToStartAction struct{}
type ScrollToEndAction struct{}
type MouseSelectAction struct {
	DisplayIndex int
}

// ===== NAVIGATION ACTIONS =====

// OpenSelectedAction enters the selected directory or shows details for
// the selected file.
type OpenSelectedAction struct{}
type GoUpAction struct{}
type GoHomeAction struct{}
type GoToPathAction struct {
	Path string
}
type GoToHistoryAction struct {
	Direction string // "back" or "forward"
}
type RefreshDirectoryAction struct{}

// ===== SEARCH ACTIONS =====

type FilterStartAction struct{}
type FilterCharAction struct {
	Char rune
}
type FilterBackspaceAction struct{}
type FilterAcceptAction struct{} // Enter - keep query, leave prompt
type FilterClearAction struct{}  // Esc - drop query, leave prompt

// ===== PATH PROMPT ACTIONS =====

type PathPromptStartAction struct{}
type PathCharAction struct {
	Char rune
}
type PathBackspaceAction struct{}
type PathSubmitAction struct{}
type PathCancelAction struct{}

// ===== SORT ACTIONS =====

type CycleSortAction struct{}
type ToggleSortDirectionAction struct{}
type SetSortAction struct {
	Key        listing.SortKey
	Descending bool
}

// ===== VIEW ACTIONS =====

type ResizeAction struct {
	Width  int
	Height int
}

type ShowDetailsAction struct{}
type HideDetailsAction struct{}
type HelpToggleAction struct{}
type HelpHideAction struct{}
type YankPathAction struct{}

// ===== APPLICATION ACTIONS =====

type QuitAction struct{}

// QuitAndChangeAction quits and hands the current directory to the shell
// wrapper so it can cd there.
type QuitAndChangeAction struct{}
type SuspendAction struct{}

package input

import (
	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/fex/internal/state"
)

// InputHandler converts tcell events to Actions
type InputHandler struct {
	actionChan chan statepkg.Action
	state      *statepkg.AppState // Reference to current state for mode checking
}

// NewInputHandler creates a new input handler
func NewInputHandler(actionChan chan statepkg.Action) *InputHandler {
	return &InputHandler{
		actionChan: actionChan,
	}
}

// SetState sets the state reference for mode checking
func (ih *InputHandler) SetState(state *statepkg.AppState) {
	ih.state = state
}

// ProcessEvent converts a tcell event into an Action. It returns false when
// the application should quit.
func (ih *InputHandler) ProcessEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return ih.processKeyEvent(ev)
	case *tcell.EventResize:
		w, h := ev.Size()
		ih.actionChan <- statepkg.ResizeAction{Width: w, Height: h}
		return true
	default:
		return true
	}
}

func (ih *InputHandler) processKeyEvent(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyCtrlC {
		ih.actionChan <- statepkg.QuitAction{}
		return false
	}
	if ev.Key() == tcell.KeyCtrlZ {
		ih.actionChan <- statepkg.SuspendAction{}
		return true
	}

	if ih.state != nil {
		switch {
		case ih.state.HelpVisible:
			return ih.processHelpKey(ev)
		case ih.state.PathPromptActive():
			return ih.processPathKey(ev)
		case ih.state.SearchActive():
			return ih.processSearchKey(ev)
		}
	}
	return ih.processNormalKey(ev)
}

func (ih *InputHandler) processHelpKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape:
		ih.actionChan <- statepkg.HelpHideAction{}
	case tcell.KeyRune:
		switch ev.Rune() {
		case '?', 'q', 'Q':
			ih.actionChan <- statepkg.HelpHideAction{}
		}
	}
	return true
}

func (ih *InputHandler) processPathKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape:
		ih.actionChan <- statepkg.PathCancelAction{}
	case tcell.KeyEnter:
		ih.actionChan <- statepkg.PathSubmitAction{}
	case tcell.KeyBackspace, tcell.KeyBackspace2, tcell.KeyDelete:
		ih.actionChan <- statepkg.PathBackspaceAction{}
	case tcell.KeyRune:
		ih.actionChan <- statepkg.PathCharAction{Char: ev.Rune()}
	}
	return true
}

func (ih *InputHandler) processSearchKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape:
		ih.actionChan <- statepkg.FilterClearAction{}
	case tcell.KeyEnter:
		ih.actionChan <- statepkg.FilterAcceptAction{}
	case tcell.KeyBackspace, tcell.KeyBackspace2, tcell.KeyDelete:
		ih.actionChan <- statepkg.FilterBackspaceAction{}
	case tcell.KeyUp:
		ih.actionChan <- statepkg.NavigateUpAction{}
	case tcell.KeyDown:
		ih.actionChan <- statepkg.NavigateDownAction{}
	case tcell.KeyPgUp:
		ih.actionChan <- statepkg.ScrollPageUpAction{}
	case tcell.KeyPgDn:
		ih.actionChan <- statepkg.ScrollPageDownAction{}
	case tcell.KeyRune:
		if ev.Modifiers()&tcell.ModCtrl != 0 && (ev.Rune() == 'h' || ev.Rune() == 'H') {
			ih.actionChan <- statepkg.FilterBackspaceAction{}
			return true
		}
		// All runes are query input, including 'q'.
		ih.actionChan <- statepkg.FilterCharAction{Char: ev.Rune()}
	}
	return true
}

func (ih *InputHandler) processNormalKey(ev *tcell.EventKey) bool {
	detailVisible := ih.state != nil && ih.state.Detail != nil

	switch ev.Key() {
	case tcell.KeyEscape:
		if detailVisible {
			ih.actionChan <- statepkg.HideDetailsAction{}
		} else if ih.state != nil && ih.state.View.Query != "" {
			ih.actionChan <- statepkg.FilterClearAction{}
		}
		return true

	case tcell.KeyUp:
		ih.actionChan <- statepkg.NavigateUpAction{}
	case tcell.KeyDown:
		ih.actionChan <- statepkg.NavigateDownAction{}
	case tcell.KeyPgUp:
		ih.actionChan <- statepkg.ScrollPageUpAction{}
	case tcell.KeyPgDn:
		ih.actionChan <- statepkg.ScrollPageDownAction{}
	case tcell.KeyHome:
		ih.actionChan <- statepkg.ScrollToStartAction{}
	case tcell.KeyEnd:
		ih.actionChan <- statepkg.ScrollToEndAction{}
	case tcell.KeyEnter, tcell.KeyRight:
		ih.actionChan <- statepkg.OpenSelectedAction{}
	case tcell.KeyLeft, tcell.KeyBackspace, tcell.KeyBackspace2:
		ih.actionChan <- statepkg.GoUpAction{}

	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			ih.actionChan <- statepkg.QuitAction{}
			return false
		case 'x':
			ih.actionChan <- statepkg.QuitAndChangeAction{}
			return false
		case '?':
			ih.actionChan <- statepkg.HelpToggleAction{}
		case '/':
			ih.actionChan <- statepkg.FilterStartAction{}
		case ':', 'g':
			ih.actionChan <- statepkg.PathPromptStartAction{}
		case '[':
			ih.actionChan <- statepkg.GoToHistoryAction{Direction: "back"}
		case ']':
			ih.actionChan <- statepkg.GoToHistoryAction{Direction: "forward"}
		case '~':
			ih.actionChan <- statepkg.GoHomeAction{}
		case 'h':
			ih.actionChan <- statepkg.GoUpAction{}
		case 'l':
			ih.actionChan <- statepkg.OpenSelectedAction{}
		case 'k':
			ih.actionChan <- statepkg.NavigateUpAction{}
		case 'j':
			ih.actionChan <- statepkg.NavigateDownAction{}
		case 's':
			ih.actionChan <- statepkg.CycleSortAction{}
		case 'd':
			ih.actionChan <- statepkg.ToggleSortDirectionAction{}
		case 'r', 'R':
			ih.actionChan <- statepkg.RefreshDirectoryAction{}
		case 'i':
			ih.actionChan <- statepkg.ShowDetailsAction{}
		case 'y':
			ih.actionChan <- statepkg.YankPathAction{}
		}
	}
	return true
}

package input

import (
	"fmt"
	"testing"

	"github.com/gdamore/tcell/v2"
	fsutil "github.com/kk-code-lab/fex/internal/fs"
	statepkg "github.com/kk-code-lab/fex/internal/state"
)

func emit(t *testing.T, state *statepkg.AppState, ev *tcell.EventKey) ([]statepkg.Action, bool) {
	t.Helper()
	actionChan := make(chan statepkg.Action, 4)
	handler := NewInputHandler(actionChan)
	handler.SetState(state)

	keepRunning := handler.ProcessEvent(ev)
	close(actionChan)

	var actions []statepkg.Action
	for action := range actionChan {
		actions = append(actions, action)
	}
	return actions, keepRunning
}

func expectSingle(t *testing.T, state *statepkg.AppState, ev *tcell.EventKey, want statepkg.Action) {
	t.Helper()
	actions, _ := emit(t, state, ev)
	if len(actions) != 1 {
		t.Fatalf("Expected exactly one action, got %d (%v)", len(actions), actions)
	}
	if fmt.Sprintf("%T%+v", actions[0], actions[0]) != fmt.Sprintf("%T%+v", want, want) {
		t.Fatalf("Expected %T%+v, got %T%+v", want, want, actions[0], actions[0])
	}
}

func runeKey(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestNormalModeKeyBindings(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want statepkg.Action
	}{
		{"up", tcell.NewEventKey(tcell.KeyUp, 0, 0), statepkg.NavigateUpAction{}},
		{"down", tcell.NewEventKey(tcell.KeyDown, 0, 0), statepkg.NavigateDownAction{}},
		{"j", runeKey('j'), statepkg.NavigateDownAction{}},
		{"k", runeKey('k'), statepkg.NavigateUpAction{}},
		{"page up", tcell.NewEventKey(tcell.KeyPgUp, 0, 0), statepkg.ScrollPageUpAction{}},
		{"page down", tcell.NewEventKey(tcell.KeyPgDn, 0, 0), statepkg.ScrollPageDownAction{}},
		{"home", tcell.NewEventKey(tcell.KeyHome, 0, 0), statepkg.ScrollToStartAction{}},
		{"end", tcell.NewEventKey(tcell.KeyEnd, 0, 0), statepkg.ScrollToEndAction{}},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, 0), statepkg.OpenSelectedAction{}},
		{"right", tcell.NewEventKey(tcell.KeyRight, 0, 0), statepkg.OpenSelectedAction{}},
		{"left", tcell.NewEventKey(tcell.KeyLeft, 0, 0), statepkg.GoUpAction{}},
		{"backspace", tcell.NewEventKey(tcell.KeyBackspace2, 0, 0), statepkg.GoUpAction{}},
		{"back", runeKey('['), statepkg.GoToHistoryAction{Direction: "back"}},
		{"forward", runeKey(']'), statepkg.GoToHistoryAction{Direction: "forward"}},
		{"home dir", runeKey('~'), statepkg.GoHomeAction{}},
		{"search", runeKey('/'), statepkg.FilterStartAction{}},
		{"path prompt colon", runeKey(':'), statepkg.PathPromptStartAction{}},
		{"path prompt g", runeKey('g'), statepkg.PathPromptStartAction{}},
		{"cycle sort", runeKey('s'), statepkg.CycleSortAction{}},
		{"toggle direction", runeKey('d'), statepkg.ToggleSortDirectionAction{}},
		{"refresh", runeKey('r'), statepkg.RefreshDirectoryAction{}},
		{"details", runeKey('i'), statepkg.ShowDetailsAction{}},
		{"yank", runeKey('y'), statepkg.YankPathAction{}},
		{"help", runeKey('?'), statepkg.HelpToggleAction{}},
		{"suspend", tcell.NewEventKey(tcell.KeyCtrlZ, 0, tcell.ModCtrl), statepkg.SuspendAction{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectSingle(t, &statepkg.AppState{}, tt.ev, tt.want)
		})
	}
}

func TestQuitKeysStopTheLoop(t *testing.T) {
	for _, ev := range []*tcell.EventKey{runeKey('q'), tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)} {
		actions, keepRunning := emit(t, &statepkg.AppState{}, ev)
		if keepRunning {
			t.Fatalf("Expected %v to stop the loop", ev.Name())
		}
		if len(actions) != 1 {
			t.Fatalf("Expected QuitAction, got %v", actions)
		}
		if _, ok := actions[0].(statepkg.QuitAction); !ok {
			t.Fatalf("Expected QuitAction, got %T", actions[0])
		}
	}
}

func TestQuitAndChangeKey(t *testing.T) {
	actions, keepRunning := emit(t, &statepkg.AppState{}, runeKey('x'))
	if keepRunning {
		t.Fatal("'x' should stop the loop")
	}
	if len(actions) != 1 {
		t.Fatalf("Expected QuitAndChangeAction, got %v", actions)
	}
	if _, ok := actions[0].(statepkg.QuitAndChangeAction); !ok {
		t.Fatalf("Expected QuitAndChangeAction, got %T", actions[0])
	}
}

func TestSearchModeTreatsRunesAsQuery(t *testing.T) {
	state := &statepkg.AppState{Mode: statepkg.ModeSearch}
	for _, r := range []rune{'q', 's', '/', 'j'} {
		expectSingle(t, state, runeKey(r), statepkg.FilterCharAction{Char: r})
	}
	_, keepRunning := emit(t, state, runeKey('q'))
	if !keepRunning {
		t.Fatal("'q' in search mode must not quit")
	}
}

func TestSearchModeKeys(t *testing.T) {
	state := &statepkg.AppState{Mode: statepkg.ModeSearch}
	expectSingle(t, state, tcell.NewEventKey(tcell.KeyEscape, 0, 0), statepkg.FilterClearAction{})
	expectSingle(t, state, tcell.NewEventKey(tcell.KeyEnter, 0, 0), statepkg.FilterAcceptAction{})
	expectSingle(t, state, tcell.NewEventKey(tcell.KeyBackspace2, 0, 0), statepkg.FilterBackspaceAction{})
	expectSingle(t, state, tcell.NewEventKey(tcell.KeyDown, 0, 0), statepkg.NavigateDownAction{})
	expectSingle(t, state, tcell.NewEventKey(tcell.KeyRune, 'h', tcell.ModCtrl), statepkg.FilterBackspaceAction{})
}

func TestSearchModeIgnoresNavigationKeys(t *testing.T) {
	state := &statepkg.AppState{Mode: statepkg.ModeSearch}
	actions, _ := emit(t, state, tcell.NewEventKey(tcell.KeyLeft, 0, 0))
	if len(actions) != 0 {
		t.Fatalf("Left arrow must not leave the directory while searching, got %v", actions)
	}
}

func TestPathPromptKeys(t *testing.T) {
	state := &statepkg.AppState{Mode: statepkg.ModePath}
	expectSingle(t, state, runeKey('q'), statepkg.PathCharAction{Char: 'q'})
	expectSingle(t, state, runeKey('~'), statepkg.PathCharAction{Char: '~'})
	expectSingle(t, state, tcell.NewEventKey(tcell.KeyEnter, 0, 0), statepkg.PathSubmitAction{})
	expectSingle(t, state, tcell.NewEventKey(tcell.KeyEscape, 0, 0), statepkg.PathCancelAction{})
	expectSingle(t, state, tcell.NewEventKey(tcell.KeyBackspace, 0, 0), statepkg.PathBackspaceAction{})
}

func TestEscapeHidesDetailsBeforeClearingSearch(t *testing.T) {
	state := &statepkg.AppState{Detail: &fsutil.Detail{}}
	state.View.Query = "foo"
	expectSingle(t, state, tcell.NewEventKey(tcell.KeyEscape, 0, 0), statepkg.HideDetailsAction{})

	state.Detail = nil
	expectSingle(t, state, tcell.NewEventKey(tcell.KeyEscape, 0, 0), statepkg.FilterClearAction{})
}

func TestEscapeWithNothingOpenIsNoop(t *testing.T) {
	actions, keepRunning := emit(t, &statepkg.AppState{}, tcell.NewEventKey(tcell.KeyEscape, 0, 0))
	if len(actions) != 0 || !keepRunning {
		t.Fatalf("Expected no actions, got %v", actions)
	}
}

func TestEscapeHidesHelpBeforeOtherModes(t *testing.T) {
	state := &statepkg.AppState{HelpVisible: true, Mode: statepkg.ModeSearch}
	expectSingle(t, state, tcell.NewEventKey(tcell.KeyEscape, 0, 0), statepkg.HelpHideAction{})
}

func TestQClosesHelpWithoutQuitting(t *testing.T) {
	state := &statepkg.AppState{HelpVisible: true}
	actions, keepRunning := emit(t, state, runeKey('q'))
	if !keepRunning {
		t.Fatal("q with help visible must not quit")
	}
	if len(actions) != 1 {
		t.Fatalf("Expected HelpHideAction, got %v", actions)
	}
	if _, ok := actions[0].(statepkg.HelpHideAction); !ok {
		t.Fatalf("Expected HelpHideAction, got %T", actions[0])
	}
}

func TestCtrlCQuitsFromAnyMode(t *testing.T) {
	for _, state := range []*statepkg.AppState{
		{HelpVisible: true},
		{Mode: statepkg.ModeSearch},
		{Mode: statepkg.ModePath},
	} {
		_, keepRunning := emit(t, state, tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl))
		if keepRunning {
			t.Fatalf("Ctrl-C should quit in %+v", state)
		}
	}
}

func TestResizeEmitsResizeAction(t *testing.T) {
	actionChan := make(chan statepkg.Action, 1)
	handler := NewInputHandler(actionChan)
	handler.ProcessEvent(tcell.NewEventResize(120, 40))

	action := <-actionChan
	resize, ok := action.(statepkg.ResizeAction)
	if !ok {
		t.Fatalf("Expected ResizeAction, got %T", action)
	}
	if resize.Width != 120 || resize.Height != 40 {
		t.Fatalf("Unexpected size %dx%d", resize.Width, resize.Height)
	}
}

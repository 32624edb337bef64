package state

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	fsutil "github.com/kk-code-lab/fex/internal/fs"
	"github.com/kk-code-lab/fex/internal/listing"
	"github.com/kk-code-lab/fex/internal/session"
)

func mustMkdir(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", path, err)
	}
}

func mustWrite(t *testing.T, path string, size int) {
	t.Helper()
	if err := os.WriteFile(path, []byte(strings.Repeat("x", size)), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// newTestTree builds root/{a/,b/,y.csv,z.txt,a/inner.md} and opens it.
func newTestTree(t *testing.T) (string, *StateReducer, *AppState) {
	t.Helper()
	root := t.TempDir()
	mustMkdir(t, filepath.Join(root, "a"))
	mustMkdir(t, filepath.Join(root, "b"))
	mustWrite(t, filepath.Join(root, "a", "inner.md"), 3)
	mustWrite(t, filepath.Join(root, "y.csv"), 50)
	mustWrite(t, filepath.Join(root, "z.txt"), 100)

	sess := session.New(fsutil.NewOSAccessor(), session.WithHomeDir(filepath.Join(root, "b")))
	reducer := NewStateReducer(sess, nil)
	state := &AppState{ScreenWidth: 80, ScreenHeight: 24}
	if err := reducer.Open(state, root); err != nil {
		t.Fatalf("Open: %v", err)
	}
	return root, reducer, state
}

func reduce(t *testing.T, r *StateReducer, state *AppState, actions ...Action) {
	t.Helper()
	for _, action := range actions {
		if _, err := r.Reduce(state, action); err != nil {
			t.Fatalf("%T: %v", action, err)
		}
	}
}

func itemNames(state *AppState) []string {
	names := make([]string, 0, len(state.View.Items))
	for _, item := range state.View.Items {
		names = append(names, item.Name)
	}
	return names
}

func selectName(t *testing.T, r *StateReducer, state *AppState, name string) {
	t.Helper()
	idx := state.indexOfName(name)
	if idx < 0 {
		t.Fatalf("%q not listed in %v", name, itemNames(state))
	}
	reduce(t, r, state, MouseSelectAction{DisplayIndex: idx})
}

func TestOpenListsDirectory(t *testing.T) {
	root, _, state := newTestTree(t)

	if state.CurrentPath() != root {
		t.Fatalf("expected %s, got %s", root, state.CurrentPath())
	}
	want := []string{"a", "b", "y.csv", "z.txt"}
	if got := itemNames(state); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if state.SelectedIndex != 0 {
		t.Fatalf("expected selection at top, got %d", state.SelectedIndex)
	}
}

func TestOpenFileSelectsItAndShowsDetails(t *testing.T) {
	root := t.TempDir()
	mustWrite(t, filepath.Join(root, "notes.txt"), 5)

	reducer := NewStateReducer(session.New(fsutil.NewOSAccessor()), nil)
	state := &AppState{ScreenWidth: 80, ScreenHeight: 24}
	if err := reducer.Open(state, filepath.Join(root, "notes.txt")); err != nil {
		t.Fatalf("Open: %v", err)
	}
	if state.CurrentPath() != root {
		t.Fatalf("expected parent directory, got %s", state.CurrentPath())
	}
	if file := state.CurrentFile(); file == nil || file.Name != "notes.txt" {
		t.Fatalf("expected notes.txt selected, got %+v", file)
	}
	if state.Detail == nil || state.Detail.Size != 5 {
		t.Fatalf("expected details for notes.txt, got %+v", state.Detail)
	}
}

func TestNavigateDownAndUp(t *testing.T) {
	_, r, state := newTestTree(t)

	reduce(t, r, state, NavigateDownAction{}, NavigateDownAction{})
	if state.SelectedIndex != 2 {
		t.Fatalf("expected 2, got %d", state.SelectedIndex)
	}
	reduce(t, r, state, NavigateUpAction{})
	if state.SelectedIndex != 1 {
		t.Fatalf("expected 1, got %d", state.SelectedIndex)
	}
	reduce(t, r, state, ScrollToEndAction{}, NavigateDownAction{})
	if state.SelectedIndex != 3 {
		t.Fatalf("should stay at last item, got %d", state.SelectedIndex)
	}
	reduce(t, r, state, ScrollToStartAction{}, NavigateUpAction{})
	if state.SelectedIndex != 0 {
		t.Fatalf("should stay at first item, got %d", state.SelectedIndex)
	}
}

func TestMovementWithoutItemsIsNoop(t *testing.T) {
	state := &AppState{SelectedIndex: -1, ScreenHeight: 24}
	r := NewStateReducer(nil, nil)
	for _, action := range []Action{NavigateDownAction{}, NavigateUpAction{}, ScrollPageDownAction{}, ScrollToEndAction{}} {
		reduce(t, r, state, action)
		if state.SelectedIndex != -1 {
			t.Fatalf("%T moved selection to %d", action, state.SelectedIndex)
		}
	}
}

func TestPageMovementKeepsSelectionVisible(t *testing.T) {
	var items []FileEntry
	for i := 0; i < 50; i++ {
		items = append(items, FileEntry{Name: string(rune('a'+i%26)) + strings.Repeat("x", i/26)})
	}
	state := &AppState{View: session.ViewModel{Items: items}, ScreenHeight: 15}
	r := NewStateReducer(nil, nil)

	reduce(t, r, state, ScrollPageDownAction{})
	if state.SelectedIndex != state.VisibleLines() {
		t.Fatalf("expected page step %d, got %d", state.VisibleLines(), state.SelectedIndex)
	}
	if state.SelectedIndex < state.ScrollOffset || state.SelectedIndex >= state.ScrollOffset+state.VisibleLines() {
		t.Fatalf("selection %d outside viewport at %d", state.SelectedIndex, state.ScrollOffset)
	}

	reduce(t, r, state, ScrollToEndAction{})
	if state.ScrollOffset != len(items)-state.VisibleLines() {
		t.Fatalf("expected offset %d, got %d", len(items)-state.VisibleLines(), state.ScrollOffset)
	}
	reduce(t, r, state, ScrollPageUpAction{}, ScrollPageUpAction{}, ScrollPageUpAction{}, ScrollPageUpAction{}, ScrollPageUpAction{})
	if state.SelectedIndex != 0 || state.ScrollOffset != 0 {
		t.Fatalf("expected top, got selected=%d offset=%d", state.SelectedIndex, state.ScrollOffset)
	}
}

func TestOpenSelectedEntersDirectory(t *testing.T) {
	root, r, state := newTestTree(t)

	reduce(t, r, state, OpenSelectedAction{})
	if want := filepath.Join(root, "a"); state.CurrentPath() != want {
		t.Fatalf("expected %s, got %s", want, state.CurrentPath())
	}
	if !state.View.CanGoBack {
		t.Fatal("expected back history after entering a directory")
	}
}

func TestOpenSelectedFileShowsDetails(t *testing.T) {
	root, r, state := newTestTree(t)
	selectName(t, r, state, "z.txt")

	reduce(t, r, state, OpenSelectedAction{})
	if state.CurrentPath() != root {
		t.Fatalf("opening a file must not navigate, got %s", state.CurrentPath())
	}
	if state.Detail == nil {
		t.Fatal("expected detail panel")
	}
	if state.Detail.FullPath != filepath.Join(root, "z.txt") || state.Detail.Size != 100 {
		t.Fatalf("unexpected detail %+v", state.Detail)
	}
	if state.StatusIsError {
		t.Fatalf("routing to details is not an error: %q", state.StatusMessage)
	}
}

func TestDetailPanelFollowsSelection(t *testing.T) {
	_, r, state := newTestTree(t)
	selectName(t, r, state, "y.csv")
	reduce(t, r, state, ShowDetailsAction{})
	if state.Detail == nil || state.Detail.Name != "y.csv" {
		t.Fatalf("expected y.csv details, got %+v", state.Detail)
	}

	reduce(t, r, state, NavigateDownAction{})
	if state.Detail == nil || state.Detail.Name != "z.txt" {
		t.Fatalf("expected details to follow selection, got %+v", state.Detail)
	}

	reduce(t, r, state, ShowDetailsAction{})
	if state.Detail != nil {
		t.Fatal("second ShowDetailsAction should close the panel")
	}
}

func TestGoUpSelectsDirectoryWeCameFrom(t *testing.T) {
	root, r, state := newTestTree(t)
	selectName(t, r, state, "b")
	reduce(t, r, state, OpenSelectedAction{}, GoUpAction{})

	if state.CurrentPath() != root {
		t.Fatalf("expected %s, got %s", root, state.CurrentPath())
	}
	if file := state.CurrentFile(); file == nil || file.Name != "b" {
		t.Fatalf("expected b selected, got %+v", file)
	}
}

func TestHistoryBackRestoresSelection(t *testing.T) {
	root, r, state := newTestTree(t)
	selectName(t, r, state, "y.csv")
	reduce(t, r, state, GoToPathAction{Path: filepath.Join(root, "a")})
	reduce(t, r, state, GoToHistoryAction{Direction: "back"})

	if state.CurrentPath() != root {
		t.Fatalf("expected %s, got %s", root, state.CurrentPath())
	}
	if file := state.CurrentFile(); file == nil || file.Name != "y.csv" {
		t.Fatalf("expected y.csv restored, got %+v", file)
	}
	if !state.View.CanGoForward {
		t.Fatal("expected forward history after back")
	}

	reduce(t, r, state, GoToHistoryAction{Direction: "forward"})
	if want := filepath.Join(root, "a"); state.CurrentPath() != want {
		t.Fatalf("expected %s, got %s", want, state.CurrentPath())
	}
}

func TestGoHome(t *testing.T) {
	root, r, state := newTestTree(t)
	reduce(t, r, state, GoHomeAction{})
	if want := filepath.Join(root, "b"); state.CurrentPath() != want {
		t.Fatalf("expected %s, got %s", want, state.CurrentPath())
	}
	if state.SelectedIndex != -1 {
		t.Fatalf("empty directory should have no selection, got %d", state.SelectedIndex)
	}
}

func TestMissingPathSetsStatus(t *testing.T) {
	root, r, state := newTestTree(t)
	missing := filepath.Join(root, "missing")

	_, err := r.Reduce(state, GoToPathAction{Path: missing})
	if !errors.Is(err, session.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if state.CurrentPath() != root {
		t.Fatalf("state must not change, got %s", state.CurrentPath())
	}
	if state.StatusMessage != "Path does not exist: "+missing || !state.StatusIsError {
		t.Fatalf("unexpected status %q", state.StatusMessage)
	}
	if state.LastError == nil {
		t.Fatal("expected LastError")
	}

	reduce(t, r, state, NavigateDownAction{})
	if state.StatusMessage != "" {
		t.Fatalf("status should clear on the next action, got %q", state.StatusMessage)
	}
}

func TestPathThroughFileIsMissing(t *testing.T) {
	root, r, state := newTestTree(t)
	target := filepath.Join(root, "z.txt", "x")

	_, err := r.Reduce(state, GoToPathAction{Path: target})
	if !errors.Is(err, session.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if state.StatusMessage != "Path does not exist: "+target || !state.StatusIsError {
		t.Fatalf("unexpected status %q", state.StatusMessage)
	}
	if state.CurrentPath() != root || state.Detail != nil {
		t.Fatalf("state must not change, path=%s detail=%+v", state.CurrentPath(), state.Detail)
	}
}

func TestPermissionDeniedShowsEmptyListing(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("chmod semantics differ on Windows")
	}
	if os.Geteuid() == 0 {
		t.Skip("root ignores directory permissions")
	}
	root, r, state := newTestTree(t)
	locked := filepath.Join(root, "locked")
	mustMkdir(t, locked)
	mustWrite(t, filepath.Join(locked, "secret"), 1)
	if err := os.Chmod(locked, 0o300); err != nil {
		t.Fatalf("chmod: %v", err)
	}
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	_, err := r.Reduce(state, GoToPathAction{Path: locked})
	if !errors.Is(err, session.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
	if state.CurrentPath() != locked {
		t.Fatalf("expected %s, got %s", locked, state.CurrentPath())
	}
	if len(state.View.Items) != 0 || state.SelectedIndex != -1 {
		t.Fatalf("expected empty listing, got %v", itemNames(state))
	}
	if !strings.HasPrefix(state.StatusMessage, "Permission denied: ") {
		t.Fatalf("unexpected status %q", state.StatusMessage)
	}
}

func TestSearchFiltersAndClears(t *testing.T) {
	_, r, state := newTestTree(t)

	reduce(t, r, state, FilterStartAction{})
	if !state.SearchActive() {
		t.Fatal("expected search mode")
	}
	reduce(t, r, state, FilterCharAction{Char: 'T'}, FilterCharAction{Char: 'X'})
	if got := itemNames(state); len(got) != 1 || got[0] != "z.txt" {
		t.Fatalf("expected [z.txt], got %v", got)
	}

	reduce(t, r, state, FilterBackspaceAction{})
	if state.View.Query != "T" {
		t.Fatalf("expected query T, got %q", state.View.Query)
	}

	reduce(t, r, state, FilterClearAction{})
	if state.SearchActive() || state.View.Query != "" {
		t.Fatalf("expected cleared search, mode=%v query=%q", state.Mode, state.View.Query)
	}
	if len(state.View.Items) != 4 {
		t.Fatalf("expected full listing, got %v", itemNames(state))
	}
}

func TestSearchAcceptKeepsQuery(t *testing.T) {
	_, r, state := newTestTree(t)
	reduce(t, r, state, FilterStartAction{}, FilterCharAction{Char: 'y'}, FilterAcceptAction{})

	if state.SearchActive() {
		t.Fatal("accept should leave search mode")
	}
	if state.View.Query != "y" || len(state.View.Items) != 1 {
		t.Fatalf("expected filtered listing, got %q %v", state.View.Query, itemNames(state))
	}
}

func TestFilterCharOutsideSearchModeIsIgnored(t *testing.T) {
	_, r, state := newTestTree(t)
	reduce(t, r, state, FilterCharAction{Char: 'z'})
	if state.View.Query != "" {
		t.Fatalf("expected no query, got %q", state.View.Query)
	}
}

func TestSortKeepsSelectedEntry(t *testing.T) {
	_, r, state := newTestTree(t)
	selectName(t, r, state, "y.csv")

	reduce(t, r, state, SetSortAction{Key: listing.SortBySize, Descending: true})
	if got := strings.Join(itemNames(state), ","); got != "a,b,z.txt,y.csv" {
		t.Fatalf("unexpected order %s", got)
	}
	if file := state.CurrentFile(); file == nil || file.Name != "y.csv" {
		t.Fatalf("expected y.csv still selected, got %+v", file)
	}

	reduce(t, r, state, CycleSortAction{})
	if state.View.SortKey != listing.SortByDate {
		t.Fatalf("expected date after size, got %v", state.View.SortKey)
	}
	reduce(t, r, state, ToggleSortDirectionAction{})
	if state.View.Descending {
		t.Fatal("expected ascending after toggle")
	}
}

func TestPathPrompt(t *testing.T) {
	root, r, state := newTestTree(t)

	reduce(t, r, state, PathPromptStartAction{})
	if !state.PathPromptActive() || state.PathInput != root {
		t.Fatalf("expected prompt prefilled with %s, got %q", root, state.PathInput)
	}
	reduce(t, r, state, PathCharAction{Char: filepath.Separator}, PathCharAction{Char: 'a'}, PathCharAction{Char: 'x'}, PathBackspaceAction{}, PathSubmitAction{})

	if want := filepath.Join(root, "a"); state.CurrentPath() != want {
		t.Fatalf("expected %s, got %s", want, state.CurrentPath())
	}
	if state.PathPromptActive() || state.PathInput != "" {
		t.Fatal("submit should close the prompt")
	}

	reduce(t, r, state, PathPromptStartAction{}, PathCharAction{Char: 'q'}, PathCancelAction{})
	if state.PathPromptActive() || state.PathInput != "" {
		t.Fatal("cancel should close the prompt")
	}
}

func TestPathPromptToFileShowsDetails(t *testing.T) {
	root, r, state := newTestTree(t)
	reduce(t, r, state, GoToPathAction{Path: filepath.Join(root, "a", "inner.md")})

	if state.CurrentPath() != root {
		t.Fatalf("expected no navigation, got %s", state.CurrentPath())
	}
	if state.Detail == nil || state.Detail.Name != "inner.md" {
		t.Fatalf("expected inner.md details, got %+v", state.Detail)
	}
}

func TestRefreshPicksUpNewFiles(t *testing.T) {
	root, r, state := newTestTree(t)
	selectName(t, r, state, "z.txt")
	mustWrite(t, filepath.Join(root, "new.log"), 1)

	reduce(t, r, state, RefreshDirectoryAction{})
	if state.indexOfName("new.log") < 0 {
		t.Fatalf("expected new.log after refresh, got %v", itemNames(state))
	}
	if file := state.CurrentFile(); file == nil || file.Name != "z.txt" {
		t.Fatalf("expected selection kept, got %+v", file)
	}
	if state.StatusMessage != "Refreshed" || state.StatusIsError {
		t.Fatalf("expected refresh confirmation, got %q (error=%v)", state.StatusMessage, state.StatusIsError)
	}
}

func TestResizeClampsScroll(t *testing.T) {
	var items []FileEntry
	for i := 0; i < 30; i++ {
		items = append(items, FileEntry{Name: strings.Repeat("f", i+1)})
	}
	state := &AppState{View: session.ViewModel{Items: items}, ScreenHeight: 10, SelectedIndex: 29, ScrollOffset: 25}
	r := NewStateReducer(nil, nil)

	reduce(t, r, state, ResizeAction{Width: 100, Height: 20})
	if state.ScreenWidth != 100 || state.ScreenHeight != 20 {
		t.Fatalf("unexpected size %dx%d", state.ScreenWidth, state.ScreenHeight)
	}
	if state.ScrollOffset != len(items)-state.VisibleLines() {
		t.Fatalf("expected offset %d, got %d", len(items)-state.VisibleLines(), state.ScrollOffset)
	}
}

func TestHelpToggle(t *testing.T) {
	state := &AppState{}
	r := NewStateReducer(nil, nil)
	reduce(t, r, state, HelpToggleAction{})
	if !state.HelpVisible {
		t.Fatal("expected help visible")
	}
	reduce(t, r, state, HelpHideAction{})
	if state.HelpVisible {
		t.Fatal("expected help hidden")
	}
}

func TestCurrentFilePathFallsBackToDirectory(t *testing.T) {
	root, _, _ := newTestTree(t)
	state := &AppState{View: session.ViewModel{CurrentPath: root}, SelectedIndex: -1}
	if state.CurrentFilePath() != root {
		t.Fatalf("expected %s, got %s", root, state.CurrentFilePath())
	}
}

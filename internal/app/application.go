package app

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/fex/internal/session"
	statepkg "github.com/kk-code-lab/fex/internal/state"
	inputui "github.com/kk-code-lab/fex/internal/ui/input"
	renderui "github.com/kk-code-lab/fex/internal/ui/render"
	"go.uber.org/zap"
)

// Application represents the running app.
type Application struct {
	screen         tcell.Screen
	state          *statepkg.AppState
	reducer        *statepkg.StateReducer
	renderer       *renderui.Renderer
	input          *inputui.InputHandler
	actionCh       chan statepkg.Action
	logger         *zap.Logger
	shouldQuit     bool
	exitPath       string
	clipboardCmd   []string
	clipboardAvail bool

	lastClickKey  string
	lastClickTime time.Time
}

// NewApplication opens the terminal and lists startPath through sess.
func NewApplication(sess *session.Session, startPath string, logger *zap.Logger) (*Application, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return newApplication(screen, sess, startPath, logger)
}

func newApplication(screen tcell.Screen, sess *session.Session, startPath string, logger *zap.Logger) (*Application, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	// Parse mouse sequences so modified clicks don't leak as key events.
	screen.EnableMouse()

	clipboardCmd, clipboardAvail := detectClipboard()

	state := &statepkg.AppState{
		SelectedIndex:      -1,
		ClipboardAvailable: clipboardAvail,
	}
	state.ScreenWidth, state.ScreenHeight = screen.Size()

	actionCh := make(chan statepkg.Action, 10)
	reducer := statepkg.NewStateReducer(sess, logger)
	inputHandler := inputui.NewInputHandler(actionCh)

	// Failing to list the start path is fatal only when nothing could be
	// shown; a permission error still opens an empty view.
	if err := reducer.Open(state, startPath); err != nil && state.CurrentPath() == "" {
		screen.Fini()
		return nil, fmt.Errorf("open %s: %w", startPath, err)
	}

	app := &Application{
		screen:         screen,
		state:          state,
		reducer:        reducer,
		renderer:       renderui.NewRenderer(screen),
		input:          inputHandler,
		actionCh:       actionCh,
		logger:         logger.Named("app"),
		clipboardCmd:   clipboardCmd,
		clipboardAvail: clipboardAvail,
	}
	inputHandler.SetState(state)

	app.logger.Debug("application started",
		zap.String("path", state.CurrentPath()),
		zap.Bool("clipboard", clipboardAvail),
		zap.Int("width", state.ScreenWidth),
		zap.Int("height", state.ScreenHeight))
	return app, nil
}

// Close cleans up resources.
func (app *Application) Close() error {
	close(app.actionCh)
	app.screen.Fini()
	if err := flushPendingInput(); err != nil {
		app.logger.Debug("flush console input", zap.Error(err))
	}
	return nil
}

// ExitPath returns the directory chosen with quit-and-cd, or "" after a
// plain quit.
func (app *Application) ExitPath() string {
	return app.exitPath
}

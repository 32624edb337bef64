//go:build !windows

package app

import (
	"syscall"

	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/fex/internal/state"
	"go.uber.org/zap"
)

func (app *Application) suspendToShell() {
	// Hand the terminal back before stopping.
	if err := app.screen.Suspend(); err != nil {
		app.logger.Debug("suspend screen", zap.Error(err))
	}
	// Signal only this process, not the group: the group can include the
	// shell wrapper from fex --setup, and stopping it breaks `fg`.
	_ = syscall.Kill(syscall.Getpid(), syscall.SIGTSTP)
}

// resumeAfterStop retakes the terminal after SIGCONT. The terminal may have
// been resized while we were stopped, so the new size goes through the
// reducer to re-clamp the viewport.
func (app *Application) resumeAfterStop() bool {
	if err := app.screen.Resume(); err != nil {
		app.logger.Debug("resume screen", zap.Error(err))
		return false
	}
	app.screen.EnableMouse()
	app.screen.Sync()
	_ = app.screen.PostEvent(tcell.NewEventInterrupt("resume"))
	if w, h := app.screen.Size(); w > 0 && h > 0 {
		_, _ = app.reducer.Reduce(app.state, statepkg.ResizeAction{Width: w, Height: h})
	}
	return true
}

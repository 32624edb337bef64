//go:build windows

package app

// Ctrl-Z has nothing to return to on Windows consoles.
func (app *Application) suspendToShell() {
	app.state.SetStatus("Suspend is not supported on Windows", false)
}

func (app *Application) resumeAfterStop() bool {
	return false
}

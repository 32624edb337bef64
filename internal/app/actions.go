package app

import (
	"fmt"
	"os/exec"
	"path"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"go.uber.org/zap"
)

// commandBuilder is swapped in tests.
var commandBuilder = exec.Command

// handleClipboard copies the selected path, or the current directory when
// nothing is selected.
func (app *Application) handleClipboard() bool {
	if !app.clipboardAvail || len(app.clipboardCmd) == 0 {
		app.state.SetStatus("No clipboard command found (pbcopy, wl-copy, xclip, xsel, clip)", true)
		return true
	}

	target := normalizeClipboardPath(app.state.CurrentFilePath(), runtime.GOOS)
	cmd := commandBuilder(app.clipboardCmd[0], app.clipboardCmd[1:]...)
	cmd.Stdin = strings.NewReader(target)
	// Stdout stays unset: xclip keeps serving the selection from a forked
	// child that would otherwise hold our pipe open.
	if err := cmd.Run(); err != nil {
		err = fmt.Errorf("clipboard command %s: %w", app.clipboardCmd[0], err)
		app.state.LastError = err
		app.state.SetStatus("Error: "+err.Error(), true)
		app.logger.Debug("yank failed", zap.Error(err))
		return true
	}

	app.state.LastYankTime = time.Now()
	app.state.SetStatus("Copied "+target, false)
	app.logger.Debug("yanked path", zap.String("path", target))
	return true
}

func normalizeClipboardPath(inputPath string, goos string) string {
	if strings.EqualFold(goos, "windows") {
		cleaned := filepath.Clean(inputPath)
		return strings.ReplaceAll(cleaned, "/", `\`)
	}
	return path.Clean(filepath.ToSlash(inputPath))
}

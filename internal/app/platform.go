package app

import (
	"os"
	"os/exec"
	"runtime"
	"strings"
)

func detectClipboard() ([]string, bool) {
	return detectClipboardInternal(runtime.GOOS, os.Getenv, exec.LookPath)
}

// detectClipboardInternal picks a command that copies stdin to the system
// clipboard. On Wayland wl-copy wins over the X11 tools.
func detectClipboardInternal(goos string, getenv func(string) string, lookPath func(string) (string, error)) ([]string, bool) {
	find := func(name string, args ...string) ([]string, bool) {
		resolved, err := lookPath(name)
		if err != nil || resolved == "" {
			return nil, false
		}
		return append([]string{resolved}, args...), true
	}

	if strings.EqualFold(goos, "windows") {
		for _, candidate := range []string{"clip.exe", "clip"} {
			if cmd, ok := find(candidate); ok {
				return cmd, true
			}
		}
		for _, ps := range []string{"powershell", "powershell.exe", "pwsh"} {
			if cmd, ok := find(ps, "-NoLogo", "-NoProfile", "-Command", "Set-Clipboard"); ok {
				return cmd, true
			}
		}
		return nil, false
	}

	if cmd, ok := find("pbcopy"); ok {
		return cmd, true
	}
	if getenv("WAYLAND_DISPLAY") != "" {
		if cmd, ok := find("wl-copy"); ok {
			return cmd, true
		}
	}
	if cmd, ok := find("xclip", "-selection", "clipboard"); ok {
		return cmd, true
	}
	if cmd, ok := find("xsel", "--clipboard", "--input"); ok {
		return cmd, true
	}
	if cmd, ok := find("wl-copy"); ok {
		return cmd, true
	}
	return nil, false
}

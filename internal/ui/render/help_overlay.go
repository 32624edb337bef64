package render

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/fex/internal/state"
	textutil "github.com/kk-code-lab/fex/internal/textutil"
)

type helpOverlayEntry struct {
	keys string
	desc string
}

type helpOverlaySection struct {
	title   string
	entries []helpOverlayEntry
}

func buildHelpOverlayLines(state *statepkg.AppState) []string {
	actions := []helpOverlayEntry{
		{keys: "r", desc: "Refresh directory"},
		{keys: "i", desc: "Show / hide details"},
	}
	if state != nil && state.ClipboardAvailable {
		actions = append(actions, helpOverlayEntry{keys: "y", desc: "Yank path to clipboard"})
	}

	sections := []helpOverlaySection{
		{
			title: "Navigation",
			entries: []helpOverlayEntry{
				{keys: "↑/↓ j/k", desc: "Move selection"},
				{keys: "PgUp/PgDn", desc: "Move by a page"},
				{keys: "Home/End", desc: "First / last item"},
				{keys: "↵ → l", desc: "Open folder / show file details"},
				{keys: "← ⌫ h", desc: "Parent folder"},
				{keys: "[ / ]", desc: "History back/forward"},
				{keys: "~", desc: "Go home"},
				{keys: ": or g", desc: "Go to path"},
			},
		},
		{
			title: "Search & Sort",
			entries: []helpOverlayEntry{
				{keys: "/", desc: "Search current folder"},
				{keys: "↵", desc: "Keep search, back to list"},
				{keys: "Esc", desc: "Clear search"},
				{keys: "s", desc: "Cycle sort: name, size, date, type"},
				{keys: "d", desc: "Toggle ascending / descending"},
			},
		},
		{
			title:   "Actions",
			entries: actions,
		},
		{
			title: "Mouse",
			entries: []helpOverlayEntry{
				{keys: "click", desc: "Select item / go to breadcrumb"},
				{keys: "double click", desc: "Open item"},
				{keys: "wheel", desc: "Move selection"},
			},
		},
		{
			title: "Exit",
			entries: []helpOverlayEntry{
				{keys: "q", desc: "Quit"},
				{keys: "x", desc: "Quit and cd here (needs fex --setup)"},
				{keys: "Ctrl+C", desc: "Quit immediately"},
				{keys: "Ctrl+Z", desc: "Suspend"},
				{keys: "?", desc: "Close this help"},
			},
		},
	}

	lines := make([]string, 0, 32)
	for i, section := range sections {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, section.title)
		for _, entry := range section.entries {
			lines = append(lines, formatHelpOverlayEntry(entry))
		}
	}

	return lines
}

func formatHelpOverlayEntry(entry helpOverlayEntry) string {
	key := textutil.SanitizeTerminalText(entry.keys)
	desc := textutil.SanitizeTerminalText(entry.desc)
	return fmt.Sprintf("  %-14s %s", key, desc)
}

func (r *Renderer) drawHelpOverlay(state *statepkg.AppState, w, h int) {
	baseStyle := tcell.StyleDefault.Background(r.theme.Background).Foreground(r.theme.Foreground)
	headerStyle := baseStyle.Background(r.theme.FooterBg).Foreground(r.theme.FooterFg).Bold(true)

	title := " " + appName + " help "
	titleStart := 0
	if titleWidth := r.measureTextWidth(title); w > titleWidth {
		titleStart = (w - titleWidth) / 2
	}
	r.drawTextLine(titleStart, 0, w-titleStart, title, headerStyle)

	lines := buildHelpOverlayLines(state)
	row := 2
	maxRow := h - 1
	for _, line := range lines {
		if row >= maxRow {
			break
		}
		text := strings.TrimRight(line, " ")
		text = r.truncateTextToWidth(text, w-4)
		r.drawTextLine(2, row, w-4, text, baseStyle)
		row++
	}

	if h > 0 {
		footer := r.truncateTextToWidth("? toggle · Esc/q close", w)
		r.drawTextLine(0, h-1, w, footer, headerStyle)
	}
}

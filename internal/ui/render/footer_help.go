package render

import (
	"strings"

	statepkg "github.com/kk-code-lab/fex/internal/state"
)

// buildFooterHelpText returns the contextual footer hint string with leading/trailing padding.
func buildFooterHelpText(state *statepkg.AppState) string {
	parts := buildFooterHelpSegments(state)
	if len(parts) == 0 {
		return ""
	}
	return " " + strings.Join(parts, "  ") + " "
}

// buildFooterHelpSegments assembles context-aware help hints for the footer.
func buildFooterHelpSegments(state *statepkg.AppState) []string {
	if state == nil {
		return nil
	}

	segments := contextualHelpSegments(state)
	segments = append(segments, persistentHelpSegments(state)...)

	return segments
}

func contextualHelpSegments(state *statepkg.AppState) []string {
	switch {
	case state.SearchActive():
		return []string{
			"type: search",
			"↵: keep",
			"Esc: clear",
			"↑↓: select",
		}
	case state.PathPromptActive():
		return []string{
			"type: path",
			"↵: go",
			"Esc: cancel",
		}
	case state.Detail != nil:
		return []string{
			"↑/↓: next item",
			"i/Esc: close details",
			"[]: history",
		}
	default:
		return []string{
			"↑/↓/↵/→/←: navigate",
			"[]: history",
			"~: home",
			"/: search",
			"g: go to",
			"s/d: sort",
			"r: refresh",
			"i: details",
		}
	}
}

func persistentHelpSegments(state *statepkg.AppState) []string {
	if state == nil || state.SearchActive() || state.PathPromptActive() {
		return nil
	}

	segments := []string{}
	if state.ClipboardAvailable {
		segments = append(segments, "y: yank path")
	}
	segments = append(segments, "?: help", "q/x: quit/cd")
	return segments
}

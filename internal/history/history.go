// Package history keeps the back/forward navigation stack of a session.
package history

// DefaultLimit bounds the number of remembered paths.
const DefaultLimit = 100

// History is an ordered list of visited paths with a cursor. Recording a
// visit drops every entry after the cursor; moving back or forward only
// shifts the cursor. Consecutive identical paths are kept as separate
// entries.
type History struct {
	paths []string
	index int
	limit int
}

// New returns an empty history holding at most limit paths. A limit <= 0
// means unbounded.
func New(limit int) *History {
	return &History{index: -1, limit: limit}
}

// Record appends path after the cursor, discarding forward entries.
func (h *History) Record(path string) {
	h.paths = append(h.paths[:h.index+1], path)
	if h.limit > 0 && len(h.paths) > h.limit {
		drop := len(h.paths) - h.limit
		h.paths = append(h.paths[:0], h.paths[drop:]...)
	}
	h.index = len(h.paths) - 1
}

// Back moves the cursor one step back and returns the path there.
func (h *History) Back() (string, bool) {
	if !h.CanGoBack() {
		return "", false
	}
	h.index--
	return h.paths[h.index], true
}

// Forward moves the cursor one step forward and returns the path there.
func (h *History) Forward() (string, bool) {
	if !h.CanGoForward() {
		return "", false
	}
	h.index++
	return h.paths[h.index], true
}

func (h *History) CanGoBack() bool {
	return h.index > 0
}

func (h *History) CanGoForward() bool {
	return h.index >= 0 && h.index < len(h.paths)-1
}

// Current returns the path under the cursor.
func (h *History) Current() (string, bool) {
	if h.index < 0 || h.index >= len(h.paths) {
		return "", false
	}
	return h.paths[h.index], true
}

func (h *History) Len() int {
	return len(h.paths)
}

// Index returns the cursor position, or -1 for an empty history.
func (h *History) Index() int {
	return h.index
}

// Paths returns a copy of the recorded paths, oldest first.
func (h *History) Paths() []string {
	return append([]string(nil), h.paths...)
}

package render

import (
	"strings"
	"unicode"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

const ellipsis = "…"

type highlightSpan struct {
	start int
	end   int
}

func (r *Renderer) cachedRuneWidth(ru rune) int {
	if ru < 128 {
		r.runeWidthCacheMu.RLock()
		width := r.runeWidthCache[ru]
		r.runeWidthCacheMu.RUnlock()

		if width == 0 && ru != 0 {
			actualWidth := runewidth.RuneWidth(ru)
			if actualWidth < 0 {
				actualWidth = 0
			}
			r.runeWidthCacheMu.Lock()
			r.runeWidthCache[ru] = actualWidth + 1
			r.runeWidthCacheMu.Unlock()
			return actualWidth
		}
		return width - 1
	}

	if cached, ok := r.runeWidthWide.Load(ru); ok {
		return cached.(int)
	}

	width := runewidth.RuneWidth(ru)
	if width < 0 {
		width = 0
	}
	r.runeWidthWide.Store(ru, width)
	return width
}

func (r *Renderer) measureTextWidth(text string) int {
	width := 0
	for _, ru := range text {
		width += r.cachedRuneWidth(ru)
	}
	return width
}

// truncateTextToWidth cuts text to maxWidth columns, ending in an ellipsis
// when anything was dropped.
func (r *Renderer) truncateTextToWidth(text string, maxWidth int) string {
	if maxWidth <= 0 || text == "" {
		return ""
	}
	if r.measureTextWidth(text) <= maxWidth {
		return text
	}

	ellipsisWidth := r.measureTextWidth(ellipsis)
	if maxWidth <= ellipsisWidth {
		return ellipsis
	}

	available := maxWidth - ellipsisWidth
	var builder strings.Builder
	currentWidth := 0
	for _, ru := range text {
		runeWidth := r.cachedRuneWidth(ru)
		if currentWidth+runeWidth > available {
			break
		}
		builder.WriteRune(ru)
		currentWidth += runeWidth
	}

	builder.WriteString(ellipsis)
	return builder.String()
}

// truncateLeft keeps the tail of text, which is the informative end of a path.
func (r *Renderer) truncateLeft(text string, maxWidth int) string {
	if maxWidth <= 0 || text == "" {
		return ""
	}
	if r.measureTextWidth(text) <= maxWidth {
		return text
	}

	ellipsisWidth := r.measureTextWidth(ellipsis)
	if maxWidth <= ellipsisWidth {
		return ellipsis
	}

	runes := []rune(text)
	available := maxWidth - ellipsisWidth
	width := 0
	start := len(runes)
	for start > 0 {
		rw := r.cachedRuneWidth(runes[start-1])
		if width+rw > available {
			break
		}
		width += rw
		start--
	}
	return ellipsis + string(runes[start:])
}

// padRight pads text with spaces to exactly width columns, truncating first
// when it is too wide.
func (r *Renderer) padRight(text string, width int) string {
	text = r.truncateTextToWidth(text, width)
	if gap := width - r.measureTextWidth(text); gap > 0 {
		text += strings.Repeat(" ", gap)
	}
	return text
}

// padLeft right-aligns text within width columns.
func (r *Renderer) padLeft(text string, width int) string {
	text = r.truncateTextToWidth(text, width)
	if gap := width - r.measureTextWidth(text); gap > 0 {
		text = strings.Repeat(" ", gap) + text
	}
	return text
}

// drawTextLine draws text starting at startX and returns the column after
// the last drawn cell. Zero-width runes ride along as combining characters.
func (r *Renderer) drawTextLine(startX, y, maxWidth int, text string, style tcell.Style) int {
	x := startX
	runes := []rune(text)
	i := 0

	for i < len(runes) {
		mainc := runes[i]
		w := r.cachedRuneWidth(mainc)
		if x-startX+w > maxWidth {
			break
		}
		i++

		var combc []rune
		for i < len(runes) && r.cachedRuneWidth(runes[i]) == 0 {
			combc = append(combc, runes[i])
			i++
		}

		r.screen.SetContent(x, y, mainc, combc, style)
		x += w
	}

	return x
}

func (r *Renderer) drawStyledRune(x, y, maxX int, ru rune, style tcell.Style) int {
	if x >= maxX {
		return x
	}

	width := r.cachedRuneWidth(ru)
	if width <= 0 {
		width = 1
	}

	r.screen.SetContent(x, y, ru, nil, style)
	for w := 1; w < width && x+w < maxX; w++ {
		r.screen.SetContent(x+w, y, ' ', nil, style)
	}
	return x + width
}

// fillRow paints [fromX, toX) on row y with blanks.
func (r *Renderer) fillRow(fromX, toX, y int, style tcell.Style) {
	for x := fromX; x < toX; x++ {
		r.screen.SetContent(x, y, ' ', nil, style)
	}
}

// drawHighlightedText draws text with the runes inside span drawn in
// highlightStyle. It returns the column after the last drawn cell.
func (r *Renderer) drawHighlightedText(startX, y, maxX int, text string, span highlightSpan, baseStyle, highlightStyle tcell.Style) int {
	x := startX
	for idx, ru := range []rune(text) {
		if x >= maxX {
			break
		}
		style := baseStyle
		if idx >= span.start && idx < span.end {
			style = highlightStyle
		}
		if r.cachedRuneWidth(ru) == 0 {
			continue
		}
		x = r.drawStyledRune(x, y, maxX, ru, style)
	}
	return x
}

// matchSpan locates the first case-insensitive occurrence of query in text,
// in rune offsets.
func matchSpan(text, query string) (highlightSpan, bool) {
	if query == "" {
		return highlightSpan{}, false
	}
	hay := lowerRunes(text)
	needle := lowerRunes(query)
	if len(needle) > len(hay) {
		return highlightSpan{}, false
	}
outer:
	for i := 0; i+len(needle) <= len(hay); i++ {
		for j, ru := range needle {
			if hay[i+j] != ru {
				continue outer
			}
		}
		return highlightSpan{start: i, end: i + len(needle)}, true
	}
	return highlightSpan{}, false
}

func lowerRunes(text string) []rune {
	runes := []rune(text)
	for i, ru := range runes {
		runes[i] = unicode.ToLower(ru)
	}
	return runes
}

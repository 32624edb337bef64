package render

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/fex/internal/catalog"
	fsutil "github.com/kk-code-lab/fex/internal/fs"
	statepkg "github.com/kk-code-lab/fex/internal/state"
	textutil "github.com/kk-code-lab/fex/internal/textutil"
)

const (
	toolbarRow      = 1
	columnHeaderRow = 2

	yankFlashDuration = 100 * time.Millisecond
)

// Renderer handles all UI rendering
type Renderer struct {
	screen           tcell.Screen
	theme            ColorTheme
	runeWidthCache   [128]int // ASCII cache (0-127)
	runeWidthCacheMu sync.RWMutex
	runeWidthWide    sync.Map // For non-ASCII runes

	lastLayout    Layout
	hasLastLayout bool
}

// Layout is the panel geometry of the last rendered frame, used to route
// mouse clicks.
type Layout struct {
	ListWidth   int
	DetailStart int
	DetailWidth int
	ShowList    bool
	ShowDetail  bool
}

// LastLayout returns the geometry of the most recent Render call.
func (r *Renderer) LastLayout() (Layout, bool) {
	return r.lastLayout, r.hasLastLayout
}

// NewRenderer creates a new renderer
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{
		screen: screen,
		theme:  GetColorTheme(),
	}
}

// Render draws the entire UI based on state
func (r *Renderer) Render(state *statepkg.AppState) {
	r.screen.Clear()
	defer r.screen.Show()

	if state == nil {
		return
	}

	w, h := r.screen.Size()
	if state.HelpVisible {
		r.hasLastLayout = false
		r.drawHelpOverlay(state, w, h)
		return
	}

	layout := r.computeLayout(w, state)
	r.lastLayout = Layout{
		ListWidth:   layout.listWidth,
		DetailStart: layout.detailStart,
		DetailWidth: layout.detailWidth,
		ShowList:    layout.showList,
		ShowDetail:  layout.showDetail,
	}
	r.hasLastLayout = true

	r.drawHeader(state, w)
	r.drawToolbar(state, w)
	if layout.showList {
		r.drawColumnHeader(0, layout.listWidth)
		r.drawFileList(state, 0, layout.listWidth, h)
	}
	if layout.showDetail {
		if layout.showList {
			sepStyle := tcell.StyleDefault.Foreground(r.theme.ColumnFg)
			for y := columnHeaderRow; y < h-2; y++ {
				r.screen.SetContent(layout.listWidth, y, '│', nil, sepStyle)
			}
		}
		r.drawDetailPanel(state, layout.detailStart, layout.detailWidth, h)
	}
	r.drawStatusLine(state, w, h)
}

// drawHeader renders the top bar with title and breadcrumb
func (r *Renderer) drawHeader(state *statepkg.AppState, w int) {
	headerStyle := tcell.StyleDefault.Background(r.theme.FooterBg).Foreground(r.theme.FooterFg)
	titleStyle := headerStyle.Bold(true)

	endX := r.drawTextLine(0, 0, w, appName, titleStyle)

	spans, elided := r.headerLayout(state.View.Breadcrumbs, w)
	if elided && len(spans) > 0 {
		r.drawTextLine(endX+1, 0, w-endX-1, ellipsis+breadcrumbSeparator, headerStyle)
	}
	for i, span := range spans {
		if i > 0 {
			r.drawTextLine(spans[i-1].endX, 0, w-spans[i-1].endX, breadcrumbSeparator, headerStyle)
		}
		style := headerStyle.Underline(true)
		if i == len(spans)-1 {
			style = headerStyle.Bold(true)
		}
		r.drawTextLine(span.startX, 0, w-span.startX, span.label, style)
	}
}

// drawToolbar shows the active prompt, or the sort order and history state.
func (r *Renderer) drawToolbar(state *statepkg.AppState, w int) {
	baseStyle := tcell.StyleDefault.Background(r.theme.Background).Foreground(r.theme.Foreground)
	cursorStyle := baseStyle.Background(r.theme.SelectionBg).Foreground(r.theme.SelectionFg)

	switch state.Mode {
	case statepkg.ModeSearch:
		text := "/" + textutil.SanitizeTerminalText(state.View.Query)
		endX := r.drawTextLine(0, toolbarRow, w-1, r.truncateLeft(text, w-1), baseStyle)
		r.drawStyledRune(endX, toolbarRow, w, '█', cursorStyle)
		return
	case statepkg.ModePath:
		text := ":" + textutil.SanitizeTerminalText(state.PathInput)
		endX := r.drawTextLine(0, toolbarRow, w-1, r.truncateLeft(text, w-1), baseStyle)
		r.drawStyledRune(endX, toolbarRow, w, '█', cursorStyle)
		return
	}

	arrow := "↑"
	if state.View.Descending {
		arrow = "↓"
	}
	left := fmt.Sprintf("sort: %s %s", state.View.SortKey, arrow)
	if state.View.Query != "" {
		left += "   search: " + textutil.SanitizeTerminalText(state.View.Query)
	}

	back, forward := "◂ back", "forward ▸"
	rightWidth := r.measureTextWidth(back) + 2 + r.measureTextWidth(forward)
	leftMax := w
	if w-rightWidth > r.measureTextWidth(left)+2 {
		leftMax = w - rightWidth - 2
		x := w - rightWidth
		x = r.drawTextLine(x, toolbarRow, w-x, back, r.historyStyle(baseStyle, state.View.CanGoBack))
		x += 2
		r.drawTextLine(x, toolbarRow, w-x, forward, r.historyStyle(baseStyle, state.View.CanGoForward))
	}
	r.drawTextLine(0, toolbarRow, leftMax, r.truncateTextToWidth(left, leftMax), baseStyle)
}

func (r *Renderer) historyStyle(base tcell.Style, enabled bool) tcell.Style {
	if enabled {
		return base
	}
	return base.Foreground(r.theme.ColumnFg).Dim(true)
}

func (r *Renderer) drawColumnHeader(startX, width int) {
	style := tcell.StyleDefault.Foreground(r.theme.ColumnFg).Bold(true)
	cols := columnsFor(width)

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", 1+iconColumnWidth+1))
	b.WriteString(r.padRight("Name", cols.name))
	b.WriteString(" ")
	b.WriteString(r.padLeft("Size", cols.size))
	if cols.modified > 0 {
		b.WriteString(strings.Repeat(" ", columnGap))
		b.WriteString(r.padRight("Modified", cols.modified))
	}
	if cols.kind > 0 {
		b.WriteString(strings.Repeat(" ", columnGap))
		b.WriteString(r.padRight("Type", cols.kind))
	}
	r.drawTextLine(startX, columnHeaderRow, width, b.String(), style)
}

// drawFileList renders the visible window of the listing.
func (r *Renderer) drawFileList(state *statepkg.AppState, startX, panelWidth, h int) {
	baseStyle := tcell.StyleDefault.Background(r.theme.Background).Foreground(r.theme.Foreground)
	items := state.DisplayFiles()
	bottomLimit := h - 2
	listStartY := statepkg.ListTopRow

	if len(items) == 0 {
		message := "This folder is empty"
		if state.View.Query != "" {
			message = "No items match your search"
		}
		if listStartY < bottomLimit {
			msgStyle := baseStyle.Foreground(r.theme.ColumnFg).Italic(true)
			r.drawTextLine(startX+2, listStartY+1, panelWidth-2, r.truncateTextToWidth(message, panelWidth-2), msgStyle)
		}
		return
	}

	cols := columnsFor(panelWidth)
	y := listStartY
	for idx := state.ScrollOffset; idx < len(items) && y < bottomLimit; idx++ {
		r.drawFileRow(state, items[idx], idx == state.SelectedIndex, startX, y, panelWidth, cols, baseStyle)
		y++
	}
}

func (r *Renderer) drawFileRow(state *statepkg.AppState, entry fsutil.Entry, selected bool, startX, y, width int, cols columnLayout, baseStyle tcell.Style) {
	rowStyle := r.rowStyle(entry, selected, baseStyle)
	endX := startX + width
	r.fillRow(startX, endX, y, rowStyle)

	x := startX + 1
	icon := entry.Icon()
	r.drawTextLine(x, y, iconColumnWidth, icon, rowStyle)
	x += iconColumnWidth + 1

	name := textutil.SanitizeTerminalText(entry.Name)
	name = r.truncateTextToWidth(name, cols.name)
	matchStyle := rowStyle.Foreground(r.theme.MatchFg).Bold(true)
	if selected {
		matchStyle = rowStyle.Bold(true).Underline(true)
	}
	if span, ok := matchSpan(name, state.View.Query); ok {
		r.drawHighlightedText(x, y, x+cols.name, name, span, rowStyle, matchStyle)
	} else {
		r.drawTextLine(x, y, cols.name, name, rowStyle)
	}
	x += cols.name + 1

	var tail strings.Builder
	tail.WriteString(r.padLeft(sizeText(entry), cols.size))
	if cols.modified > 0 {
		tail.WriteString(strings.Repeat(" ", columnGap))
		tail.WriteString(r.padRight(catalog.FormatTime(entry.Modified), cols.modified))
	}
	if cols.kind > 0 {
		tail.WriteString(strings.Repeat(" ", columnGap))
		tail.WriteString(r.padRight(entry.TypeLabel(), cols.kind))
	}
	r.drawTextLine(x, y, endX-x, tail.String(), rowStyle)
}

func (r *Renderer) rowStyle(entry fsutil.Entry, selected bool, baseStyle tcell.Style) tcell.Style {
	if selected {
		return tcell.StyleDefault.Background(r.theme.SelectionBg).Foreground(r.theme.SelectionFg)
	}
	switch {
	case entry.Unreadable:
		return baseStyle.Foreground(r.theme.UnreadableFg)
	case strings.HasPrefix(entry.Name, "."):
		return baseStyle.Foreground(r.theme.HiddenFg)
	case entry.IsSymlink:
		return baseStyle.Foreground(r.theme.SymlinkFg)
	case entry.IsDir:
		return baseStyle.Foreground(r.theme.DirectoryFg)
	default:
		return baseStyle.Foreground(r.theme.FileFg)
	}
}

// sizeText is the size column: "--" for folders, "??" for unreadable entries.
func sizeText(entry fsutil.Entry) string {
	switch {
	case entry.Unreadable:
		return "??"
	case entry.IsDir:
		return "--"
	default:
		return catalog.FormatSize(entry.Size)
	}
}

type detailField struct {
	label string
	value string
}

func detailFields(d *fsutil.Detail) []detailField {
	size := "--"
	if !d.IsDir {
		size = catalog.FormatSizeDetail(d.Size)
	}
	fields := []detailField{
		{"Path", d.FullPath},
		{"Type", d.TypeLabel()},
		{"Size", size},
		{"Modified", formatDetailTime(d.Modified)},
		{"Created", formatDetailTime(d.Created)},
		{"Accessed", formatDetailTime(d.Accessed)},
		{"Perms", fmt.Sprintf("%s (%s)", d.Permissions(), d.Mode.Perm())},
	}
	if d.IsSymlink {
		fields = append(fields, detailField{"Symlink", "yes"})
	}
	if textutil.HasFormattingRunes(d.Name) {
		fields = append(fields, detailField{"Warning", "name contains hidden formatting characters"})
	}
	return fields
}

func formatDetailTime(t time.Time) string {
	if t.IsZero() {
		return catalog.FormatTime(t)
	}
	return fmt.Sprintf("%s (%s)", catalog.FormatTime(t), catalog.FormatRelative(t))
}

const detailLabelWidth = 10

func (r *Renderer) drawDetailPanel(state *statepkg.AppState, startX, width, h int) {
	d := state.Detail
	if d == nil || width <= 2 {
		return
	}
	baseStyle := tcell.StyleDefault.Background(r.theme.Background).Foreground(r.theme.Foreground)
	labelStyle := baseStyle.Foreground(r.theme.DetailLabelFg)
	bottomLimit := h - 2

	innerX := startX + 1
	innerWidth := width - 2
	y := columnHeaderRow
	if y >= bottomLimit {
		return
	}

	title := d.Icon() + " " + textutil.SanitizeTerminalText(d.Name)
	r.drawTextLine(innerX, y, innerWidth, r.truncateTextToWidth(title, innerWidth), baseStyle.Bold(true))
	y += 2

	valueX := innerX + detailLabelWidth
	valueWidth := innerWidth - detailLabelWidth
	if valueWidth <= 0 {
		return
	}
	for _, field := range detailFields(d) {
		if y >= bottomLimit {
			return
		}
		r.drawTextLine(innerX, y, detailLabelWidth, field.label, labelStyle)
		for _, line := range r.wrapText(textutil.SanitizeTerminalText(field.value), valueWidth) {
			if y >= bottomLimit {
				return
			}
			r.drawTextLine(valueX, y, valueWidth, line, baseStyle)
			y++
		}
	}
}

// wrapText hard-wraps text at width columns.
func (r *Renderer) wrapText(text string, width int) []string {
	if width <= 0 {
		return nil
	}
	var lines []string
	var current strings.Builder
	currentWidth := 0
	for _, ru := range text {
		rw := r.cachedRuneWidth(ru)
		if currentWidth+rw > width && currentWidth > 0 {
			lines = append(lines, current.String())
			current.Reset()
			currentWidth = 0
		}
		current.WriteRune(ru)
		currentWidth += rw
	}
	if current.Len() > 0 || len(lines) == 0 {
		lines = append(lines, current.String())
	}
	return lines
}

// drawStatusLine renders the summary or message row and the footer help row.
func (r *Renderer) drawStatusLine(state *statepkg.AppState, w, h int) {
	if h < 2 {
		return
	}
	normalStyle := tcell.StyleDefault.Background(r.theme.FooterBg).Foreground(r.theme.FooterFg)
	statusY := h - 2

	statusStyle := normalStyle
	text := state.View.Summary()
	if state.StatusMessage != "" {
		text = state.StatusMessage
		if state.StatusIsError {
			statusStyle = normalStyle.Foreground(r.theme.ErrorFg)
		}
	}
	if isFlashing(state.LastYankTime) {
		statusStyle = tcell.StyleDefault.Background(r.theme.FlashBg).Foreground(r.theme.FlashFg)
		r.fillRow(0, w, statusY, statusStyle)
	}

	position := ""
	if n := len(state.View.Items); n > 0 && state.SelectedIndex >= 0 {
		position = fmt.Sprintf("%d/%d", state.SelectedIndex+1, n)
	}
	textMax := w
	if position != "" {
		posWidth := r.measureTextWidth(position)
		if w-posWidth-1 > 0 {
			textMax = w - posWidth - 1
			r.drawTextLine(w-posWidth, statusY, posWidth, position, normalStyle)
		}
	}
	text = textutil.SanitizeTerminalText(text)
	r.drawTextLine(0, statusY, textMax, r.truncateTextToWidth(text, textMax), statusStyle)

	helpText := textutil.SanitizeTerminalText(buildFooterHelpText(state))
	r.drawTextLine(0, h-1, w, r.truncateTextToWidth(helpText, w), normalStyle)
}

func isFlashing(lastYank time.Time) bool {
	return !lastYank.IsZero() && time.Since(lastYank) < yankFlashDuration
}

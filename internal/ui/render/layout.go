package render

import (
	"github.com/kk-code-lab/fex/internal/session"
	statepkg "github.com/kk-code-lab/fex/internal/state"
	textutil "github.com/kk-code-lab/fex/internal/textutil"
)

const (
	appName = "fex"

	minDetailTerminalWidth = 100
	minDetailPanelWidth    = 36
	maxDetailPanelWidth    = 64
	detailWidthRatio       = 0.38
	separatorWidth         = 1

	breadcrumbSeparator = " › "
)

type layoutMetrics struct {
	listWidth   int
	detailStart int
	detailWidth int
	showList    bool
	showDetail  bool
}

// computeLayout splits the body between the list and the detail panel. On
// narrow terminals an open detail panel replaces the list.
func (r *Renderer) computeLayout(w int, state *statepkg.AppState) layoutMetrics {
	if state == nil || state.Detail == nil || w <= 0 {
		return layoutMetrics{listWidth: w, showList: true}
	}

	if w < minDetailTerminalWidth {
		return layoutMetrics{detailStart: 0, detailWidth: w, showDetail: true}
	}

	detailWidth := int(float64(w) * detailWidthRatio)
	if detailWidth < minDetailPanelWidth {
		detailWidth = minDetailPanelWidth
	}
	if detailWidth > maxDetailPanelWidth {
		detailWidth = maxDetailPanelWidth
	}
	listWidth := w - detailWidth - separatorWidth
	return layoutMetrics{
		listWidth:   listWidth,
		detailStart: listWidth + separatorWidth,
		detailWidth: detailWidth,
		showList:    true,
		showDetail:  true,
	}
}

const (
	iconColumnWidth     = 2
	sizeColumnWidth     = 10
	modifiedColumnWidth = 16
	typeColumnWidth     = 10
	columnGap           = 2

	// below these list widths the type, then the modified column is dropped
	minWidthForType     = 64
	minWidthForModified = 44
)

type columnLayout struct {
	name     int
	size     int
	modified int
	kind     int
}

// columnsFor distributes width between the list columns. The row is laid out
// as " icon name size  modified  type ".
func columnsFor(width int) columnLayout {
	cols := columnLayout{size: sizeColumnWidth}
	if width >= minWidthForModified {
		cols.modified = modifiedColumnWidth
	}
	if width >= minWidthForType {
		cols.kind = typeColumnWidth
	}

	fixed := 1 + iconColumnWidth + 1 + 1 + cols.size + 1
	if cols.modified > 0 {
		fixed += columnGap + cols.modified
	}
	if cols.kind > 0 {
		fixed += columnGap + cols.kind
	}
	cols.name = width - fixed
	if cols.name < 0 {
		cols.name = 0
	}
	return cols
}

type crumbSpan struct {
	startX int
	endX   int
	label  string
	path   string
}

// headerLayout positions breadcrumbs after the app name. Leading crumbs are
// elided until the rest fits; the last crumb is truncated as a final resort.
func (r *Renderer) headerLayout(crumbs []session.Crumb, width int) ([]crumbSpan, bool) {
	if len(crumbs) == 0 {
		return nil, false
	}

	labels := make([]string, len(crumbs))
	widths := make([]int, len(crumbs))
	for i, crumb := range crumbs {
		labels[i] = textutil.SanitizeTerminalText(crumb.Label)
		widths[i] = r.measureTextWidth(labels[i])
	}

	startX := r.measureTextWidth(appName) + 1
	sepWidth := r.measureTextWidth(breadcrumbSeparator)
	elidedWidth := r.measureTextWidth(ellipsis) + sepWidth
	available := width - startX

	first := len(crumbs) - 1
	for k := 0; k < len(crumbs); k++ {
		total := 0
		for i := k; i < len(crumbs); i++ {
			total += widths[i]
			if i > k {
				total += sepWidth
			}
		}
		if k > 0 {
			total += elidedWidth
		}
		if total <= available {
			first = k
			break
		}
	}

	elided := first > 0
	x := startX
	if elided {
		x += elidedWidth
	}
	spans := make([]crumbSpan, 0, len(crumbs)-first)
	for i := first; i < len(crumbs); i++ {
		if i > first {
			x += sepWidth
		}
		label := labels[i]
		if i == len(crumbs)-1 && x+widths[i] > width {
			label = r.truncateTextToWidth(label, width-x)
		}
		end := x + r.measureTextWidth(label)
		spans = append(spans, crumbSpan{startX: x, endX: end, label: label, path: crumbs[i].Path})
		x = end
	}
	return spans, elided
}

// BreadcrumbAt returns the path of the breadcrumb drawn at screen cell (x, y).
func (r *Renderer) BreadcrumbAt(state *statepkg.AppState, x, y int) (string, bool) {
	if state == nil || y != 0 || state.HelpVisible {
		return "", false
	}
	w, _ := r.screen.Size()
	spans, _ := r.headerLayout(state.View.Breadcrumbs, w)
	for _, span := range spans {
		if x >= span.startX && x < span.endX {
			return span.path, true
		}
	}
	return "", false
}

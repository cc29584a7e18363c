package components

import "strings"

// VisibleRange returns the [start, end) slice of a list of total rows that
// fits in height rows while keeping cursor visible. The window scrolls only
// as far as needed.
func VisibleRange(cursor, total, height int) (start, end int) {
	if height <= 0 || total <= 0 {
		return 0, 0
	}
	if total <= height {
		return 0, total
	}
	cursor = min(max(cursor, 0), total-1)

	start = cursor - height/2
	start = min(max(start, 0), total-height)
	return start, start + height
}

// RenderScrollbar renders a 1-column vertical scrollbar of viewHeight rows
// for contentHeight rows scrolled to yOffset. When everything fits it renders
// a blank gutter so the layout width stays stable.
func RenderScrollbar(viewHeight, contentHeight, yOffset int) string {
	if viewHeight <= 0 {
		return ""
	}
	if contentHeight <= viewHeight {
		return strings.Repeat(" \n", viewHeight-1) + " "
	}

	const (
		track = "│"
		thumb = "█"
	)

	thumbSize := max(viewHeight*viewHeight/contentHeight, 1)
	thumbMaxTop := viewHeight - thumbSize
	thumbTop := yOffset * thumbMaxTop / (contentHeight - viewHeight)
	thumbTop = min(max(thumbTop, 0), thumbMaxTop)

	rows := make([]string, viewHeight)
	for i := range rows {
		if i >= thumbTop && i < thumbTop+thumbSize {
			rows[i] = thumb
		} else {
			rows[i] = track
		}
	}
	return strings.Join(rows, "\n")
}

package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// overlayCenter composites box over the middle of a width x height screen
// showing page. Styling on both layers survives; page rows beyond height
// are dropped and short pages are padded with blank rows.
func overlayCenter(page, box string, width, height int) string {
	rows := strings.Split(page, "\n")
	if len(rows) > height {
		rows = rows[:height]
	}
	for len(rows) < height {
		rows = append(rows, "")
	}

	boxRows := strings.Split(box, "\n")
	boxW := 0
	for _, r := range boxRows {
		boxW = max(boxW, ansi.StringWidth(r))
	}
	left := max(0, (width-boxW)/2)
	top := max(0, (height-len(boxRows))/2)

	for i, r := range boxRows {
		y := top + i
		if y >= height {
			break
		}
		row := rows[y]
		if gap := width - ansi.StringWidth(row); gap > 0 {
			row += strings.Repeat(" ", gap)
		}
		head := ansi.Truncate(row, left, "")
		head += strings.Repeat(" ", left-ansi.StringWidth(head))
		r += strings.Repeat(" ", boxW-ansi.StringWidth(r))
		rows[y] = head + r + ansi.TruncateLeft(row, left+boxW, "")
	}
	return strings.Join(rows, "\n")
}

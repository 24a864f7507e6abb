package docfmt

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// columnWidths computes the display width of each column across the header
// and every row, with a floor of min per column. Widths are terminal cell
// counts, not byte or rune counts, so wide runes line up.
func columnWidths(headers []string, rows [][]string, min int) []int {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
		if widths[i] < min {
			widths[i] = min
		}
	}
	for _, row := range rows {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

// padCell left-aligns s within width display cells.
func padCell(s string, width int) string {
	if pad := width - runewidth.StringWidth(s); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}

// gridWidth returns the widest display width over a set of lines.
func gridWidth(lines []string) int {
	widest := 0
	for _, line := range lines {
		if w := runewidth.StringWidth(line); w > widest {
			widest = w
		}
	}
	return widest
}

package tui

import (
	"strings"

	xansi "github.com/charmbracelet/x/ansi"
)

// Screen rows: title, column headers, cards..., status line, help line.
const (
	boardTop     = 2
	footerHeight = 2
	columnGap    = 2
	cardHeight   = 3 // title, meta, spacer
	minColumnW   = 12
)

// geometry is the board layout shared by rendering and mouse hit-testing.
type geometry struct {
	width, height int
	colW          int
	nCols         int
}

func newGeometry(width, height, nCols int) geometry {
	g := geometry{width: width, height: height, nCols: nCols}
	if nCols <= 0 {
		return g
	}
	avail := width - columnGap*(nCols-1)
	g.colW = avail / nCols
	if g.colW < minColumnW {
		g.colW = minColumnW
	}
	return g
}

// bodyHeight is the number of rows available for cards.
func (g geometry) bodyHeight() int {
	h := g.height - boardTop - footerHeight
	if h < 0 {
		return 0
	}
	return h
}

func (g geometry) visibleCards() int {
	n := g.bodyHeight() / cardHeight
	if n < 1 {
		return 1
	}
	return n
}

func (g geometry) colX(col int) int {
	return col * (g.colW + columnGap)
}

// columnAt maps a screen x to a column index, -1 for gaps and out of range.
func (g geometry) columnAt(x int) int {
	if x < 0 || g.colW <= 0 {
		return -1
	}
	col := x / (g.colW + columnGap)
	if col >= g.nCols || x-g.colX(col) >= g.colW {
		return -1
	}
	return col
}

// inBoard reports whether (x, y) falls inside the card area or the headers.
func (g geometry) inBoard(x, y int) bool {
	return y >= boardTop-1 && y < g.height-footerHeight && g.columnAt(x) >= 0
}

// cardAt returns the visible slot under y (0-based from the column's scroll
// offset), or -1 when y is on a header or below the body.
func (g geometry) cardAt(y int) int {
	if y < boardTop || y >= boardTop+g.bodyHeight() {
		return -1
	}
	return (y - boardTop) / cardHeight
}

// normalizePane forces s to be exactly width columns wide (ANSI-aware) and height
// lines tall, so panes line up under lipgloss.JoinHorizontal.
func normalizePane(s string, width, height int) string {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}

	lines := strings.Split(s, "\n")
	if height > 0 {
		if len(lines) > height {
			lines = lines[:height]
		}
		for len(lines) < height {
			lines = append(lines, "")
		}
	}

	for i, ln := range lines {
		w := xansi.StringWidth(ln)
		if w > width {
			switch {
			case width <= 0:
				ln = ""
			case width == 1:
				ln = xansi.Cut(ln, 0, 1)
			default:
				ln = xansi.Cut(ln, 0, width-1) + glyphEllipsis()
			}
			w = xansi.StringWidth(ln)
		}
		if w < width {
			ln += strings.Repeat(" ", width-w)
		}
		lines[i] = ln
	}
	return strings.Join(lines, "\n")
}

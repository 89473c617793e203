package tui

import (
	"strings"
	"testing"

	xansi "github.com/charmbracelet/x/ansi"
)

func TestNormalizePane_PadsAndTruncates(t *testing.T) {
	setGlyphs(glyphSetASCII)
	t.Cleanup(func() { setGlyphs(glyphSetUnicode) })

	out := normalizePane("short\nthis line is far too long", 10, 3)
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	for i, ln := range lines {
		if w := xansi.StringWidth(ln); w != 10 {
			t.Fatalf("line %d: width %d, want 10 (%q)", i, w, ln)
		}
	}
	if !strings.HasSuffix(lines[1], "~") {
		t.Fatalf("expected truncation marker, got %q", lines[1])
	}
}

func TestGeometry_HitTesting(t *testing.T) {
	g := newGeometry(120, 30, 3)
	if g.colW != 38 {
		t.Fatalf("unexpected column width %d", g.colW)
	}
	if g.columnAt(0) != 0 || g.columnAt(37) != 0 || g.columnAt(38) != -1 || g.columnAt(40) != 1 || g.columnAt(119) != -1 {
		t.Fatalf("columnAt boundaries are off")
	}
	if g.cardAt(boardTop-1) != -1 || g.cardAt(boardTop) != 0 || g.cardAt(boardTop+cardHeight) != 1 {
		t.Fatalf("cardAt slots are off")
	}
	if g.inBoard(1, 0) || !g.inBoard(1, boardTop-1) || g.inBoard(1, 29) {
		t.Fatalf("inBoard rows are off")
	}
}

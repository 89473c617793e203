package tui

import (
	"os"
	"strings"
	"sync"
)

// Unicode glyphs can be swapped for ASCII on terminals/fonts that render them
// poorly (CLARITY_BOARD_TUI_GLYPHS=ascii).

type glyphSet int

const (
	glyphSetUnicode glyphSet = iota
	glyphSetASCII
)

var (
	glyphsMu      sync.RWMutex
	currentGlyphs = glyphSetUnicode
)

func applyGlyphPreference() {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("CLARITY_BOARD_TUI_GLYPHS"))) {
	case "", "unicode", "utf8":
		setGlyphs(glyphSetUnicode)
	case "ascii":
		setGlyphs(glyphSetASCII)
	}
}

func setGlyphs(gs glyphSet) {
	glyphsMu.Lock()
	currentGlyphs = gs
	glyphsMu.Unlock()
}

func glyphs() glyphSet {
	glyphsMu.RLock()
	defer glyphsMu.RUnlock()
	return currentGlyphs
}

func glyphEllipsis() string {
	if glyphs() == glyphSetASCII {
		return "~"
	}
	return "…"
}

func glyphDropMarker() string {
	if glyphs() == glyphSetASCII {
		return ">>"
	}
	return "▸▸"
}

func glyphCheck() string {
	if glyphs() == glyphSetASCII {
		return "[x]"
	}
	return "✓"
}

func glyphPinned() string {
	if glyphs() == glyphSetASCII {
		return "*"
	}
	return "◆"
}

func glyphMore() string {
	if glyphs() == glyphSetASCII {
		return "v"
	}
	return "▾"
}

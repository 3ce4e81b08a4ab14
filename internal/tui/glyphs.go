package tui

import (
	"strings"
	"sync"
)

// Some terminals/fonts render Unicode affordances poorly, so every glyph has
// an ASCII fallback.

type glyphSet int

const (
	glyphSetUnicode glyphSet = iota
	glyphSetASCII
)

var (
	glyphsMu      sync.RWMutex
	currentGlyphs = glyphSetUnicode
)

func applyGlyphPreference(v string) {
	switch strings.ToLower(strings.TrimSpace(v)) {
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
	gs := currentGlyphs
	glyphsMu.RUnlock()
	return gs
}

func glyphRegenerate() string {
	if glyphs() == glyphSetASCII {
		return "@"
	}
	return "↻"
}

func glyphAvailable() string {
	if glyphs() == glyphSetASCII {
		return "ok"
	}
	return "✓"
}

func glyphUnavailable() string {
	if glyphs() == glyphSetASCII {
		return "x"
	}
	return "✗"
}

func glyphArrow() string {
	if glyphs() == glyphSetASCII {
		return "->"
	}
	return "→"
}

func glyphSeparator() string {
	if glyphs() == glyphSetASCII {
		return ">"
	}
	return "›"
}

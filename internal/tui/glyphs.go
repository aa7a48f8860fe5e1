package tui

import (
	"os"
	"strings"
	"sync"
)

// Terminal apps can't change the user's font, but they can pick between Unicode and
// ASCII glyphs for the row markers.

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
	switch strings.ToLower(strings.TrimSpace(os.Getenv("COUNTDOWN_TUI_GLYPHS"))) {
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

func glyphChecked() string {
	if glyphs() == glyphSetASCII {
		return "[x]"
	}
	return "[✓]"
}

func glyphUnchecked() string {
	return "[ ]"
}

func glyphGrabbed() string {
	if glyphs() == glyphSetASCII {
		return "<>"
	}
	return "⇅"
}

func glyphDirty() string {
	if glyphs() == glyphSetASCII {
		return "*"
	}
	return "●"
}

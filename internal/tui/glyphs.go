package tui

import (
	"strings"
	"sync"
)

// Terminal fonts vary; ASCII glyphs are available for ones that render the
// Unicode checkboxes poorly.

type glyphSet int

const (
	glyphSetUnicode glyphSet = iota
	glyphSetASCII
)

var (
	glyphsMu      sync.RWMutex
	currentGlyphs = glyphSetUnicode
)

// applyGlyphPreference takes the TODO_GLYPHS value. Unknown values are ignored.
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

func glyphCheckbox(done bool) string {
	if glyphs() == glyphSetASCII {
		if done {
			return "[x]"
		}
		return "[ ]"
	}
	if done {
		return "☑"
	}
	return "☐"
}

func glyphCursor() string {
	if glyphs() == glyphSetASCII {
		return ">"
	}
	return "›"
}

func glyphNotes() string {
	if glyphs() == glyphSetASCII {
		return "*"
	}
	return "✎"
}

func glyphTheme(dark bool) string {
	if glyphs() == glyphSetASCII {
		if dark {
			return "(dark)"
		}
		return "(light)"
	}
	if dark {
		return "☾"
	}
	return "☀"
}

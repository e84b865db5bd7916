package tui

import (
	"testing"

	"todo-cli/internal/store"
)

func TestResolveTheme(t *testing.T) {
	t.Setenv("COLORFGBG", "")

	kv := store.NewMemory()
	if _, ok := resolveTheme("auto", kv); ok {
		t.Fatalf("expected no decision without override, stored value or COLORFGBG")
	}

	if err := kv.Set(themeStorageKey, "light"); err != nil {
		t.Fatal(err)
	}
	if dark, ok := resolveTheme("", kv); !ok || dark {
		t.Fatalf("expected persisted light, got dark=%v ok=%v", dark, ok)
	}
	if dark, ok := resolveTheme("DARK", kv); !ok || !dark {
		t.Fatalf("expected override to win, got dark=%v ok=%v", dark, ok)
	}

	t.Setenv("COLORFGBG", "15;0")
	if dark, ok := resolveTheme("", store.NewMemory()); !ok || !dark {
		t.Fatalf("expected COLORFGBG dark background, got dark=%v ok=%v", dark, ok)
	}
	t.Setenv("COLORFGBG", "0;15")
	if dark, ok := resolveTheme("", store.NewMemory()); !ok || dark {
		t.Fatalf("expected COLORFGBG light background, got dark=%v ok=%v", dark, ok)
	}
}

func TestGlyphPreference(t *testing.T) {
	t.Cleanup(func() { setGlyphs(glyphSetUnicode) })

	applyGlyphPreference("ascii")
	if got := glyphCheckbox(true); got != "[x]" {
		t.Fatalf("ascii checkbox: %q", got)
	}
	applyGlyphPreference("nonsense")
	if got := glyphCheckbox(false); got != "[ ]" {
		t.Fatalf("unknown value should leave glyphs alone, got %q", got)
	}
	applyGlyphPreference("unicode")
	if got := glyphCheckbox(false); got != "☐" {
		t.Fatalf("unicode checkbox: %q", got)
	}
}

func TestNormalizePane(t *testing.T) {
	got := normalizePane("abcdef\nx", 4, 3)
	want := "abc…\nx   \n    "
	if got != want {
		t.Fatalf("normalizePane = %q, want %q", got, want)
	}
}

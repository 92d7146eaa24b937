package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDirDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Glyphs != DefaultGlyphs() {
		t.Fatalf("expected default glyphs, got %+v", cfg.Glyphs)
	}
	if len(cfg.Keys) != 0 {
		t.Fatalf("expected empty keymap, got %v", cfg.Keys)
	}
	// first run drops an editable glyphs file
	if _, err := os.Stat(filepath.Join(dir, glyphsFile)); err != nil {
		t.Fatalf("expected default glyphs file to be written: %v", err)
	}
}

func TestLoadDirOverrides(t *testing.T) {
	dir := t.TempDir()
	keys := "shiftTab = \"\\u001b[Z\"\nup = \"\\u001bOA\"\n"
	if err := os.WriteFile(filepath.Join(dir, keysFile), []byte(keys), 0o644); err != nil {
		t.Fatal(err)
	}
	glyphs := "scroll_up = \"\\u2191\"\nactive_item = \">\"\n"
	if err := os.WriteFile(filepath.Join(dir, glyphsFile), []byte(glyphs), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Keys["shiftTab"] != "\x1b[Z" || cfg.Keys["up"] != "\x1bOA" {
		t.Fatalf("unexpected keymap %v", cfg.Keys)
	}
	if cfg.Glyphs.ScrollUp != "↑" || cfg.Glyphs.ActiveItem != ">" {
		t.Fatalf("unexpected glyphs %+v", cfg.Glyphs)
	}
	// unset glyph fields keep their defaults
	if cfg.Glyphs.SelectedItem != DefaultGlyphs().SelectedItem {
		t.Fatalf("expected default selected marker, got %q", cfg.Glyphs.SelectedItem)
	}
}

func TestLoadDirMalformed(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, keysFile), []byte("not toml ["), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadDir(dir); err == nil {
		t.Fatal("expected error for malformed keymap")
	}
}

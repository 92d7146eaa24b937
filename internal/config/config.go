// Package config loads the optional user preference files from
// ~/.termenu: keys.toml remaps symbolic key names to escape sequences,
// glyphs.toml adjusts the marker characters menus draw. The engine only
// ever sees the resulting lookup tables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

const (
	dirName    = ".termenu"
	keysFile   = "keys.toml"
	glyphsFile = "glyphs.toml"
)

// Keymap maps symbolic key names to the byte sequences that produce them.
type Keymap map[string]string

// Glyphs holds the marker characters used when decorating menu rows.
// Values may contain color markup.
type Glyphs struct {
	ScrollUp           string `toml:"scroll_up"`
	ScrollDown         string `toml:"scroll_down"`
	ActiveItem         string `toml:"active_item"`
	SelectedItem       string `toml:"selected_item"`
	SelectableItem     string `toml:"selectable_item"`
	ContinuationPrefix string `toml:"continuation_prefix"`
	ContinuationSuffix string `toml:"continuation_suffix"`
}

// Config bundles the loaded preference tables.
type Config struct {
	Keys   Keymap
	Glyphs Glyphs
}

// DefaultGlyphs returns the compiled-in marker set.
func DefaultGlyphs() Glyphs {
	return Glyphs{
		ScrollUp:           "^",
		ScrollDown:         "V",
		ActiveItem:         " WHITE@{>}@",
		SelectedItem:       "WHITE@{*}@",
		SelectableItem:     "-",
		ContinuationPrefix: "DARK_RED@{↪}@",
		ContinuationSuffix: "DARK_RED@{↩}@",
	}
}

const defaultGlyphsFile = `# termenu has created for you this default configuration file.
# You can modify it to control which glyphs are used by termenu menus, to
# improve their readability depending on the terminal you use.
# This could be helpful: http://xahlee.info/comp/unicode_geometric_shapes.html

scroll_up = "^"  # consider 🢁
scroll_down = "V"  # consider 🢃
active_item = " WHITE@{>}@"  # consider 🞂
selected_item = "WHITE@{*}@"  # consider ⚫
selectable_item = "-"  # consider ⚪
continuation_prefix = "DARK_RED@{↪}@"  # for when a line overflows
continuation_suffix = "DARK_RED@{↩}@"  # for when a line overflows
`

// Load reads the preference files from ~/.termenu. Missing files yield
// defaults; a default glyphs.toml is written on first run when possible.
func Load() (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{Keys: Keymap{}, Glyphs: DefaultGlyphs()}, nil
	}
	return LoadDir(filepath.Join(home, dirName))
}

// LoadDir reads the preference files from the given directory.
func LoadDir(dir string) (Config, error) {
	cfg := Config{Keys: Keymap{}, Glyphs: DefaultGlyphs()}

	keys, err := loadKeymap(filepath.Join(dir, keysFile))
	if err != nil {
		return Config{}, err
	}
	cfg.Keys = keys

	glyphs, found, err := loadGlyphs(filepath.Join(dir, glyphsFile))
	if err != nil {
		return Config{}, err
	}
	if found {
		cfg.Glyphs = glyphs
	} else {
		writeDefaultGlyphs(dir)
	}
	return cfg, nil
}

func loadKeymap(path string) (Keymap, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Keymap{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	keys := Keymap{}
	if err := toml.Unmarshal(data, &keys); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return keys, nil
}

func loadGlyphs(path string) (Glyphs, bool, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Glyphs{}, false, nil
	}
	if err != nil {
		return Glyphs{}, false, fmt.Errorf("read %s: %w", path, err)
	}
	glyphs := DefaultGlyphs()
	if err := toml.Unmarshal(data, &glyphs); err != nil {
		return Glyphs{}, false, fmt.Errorf("parse %s: %w", path, err)
	}
	return glyphs, true, nil
}

// writeDefaultGlyphs drops the annotated default file so users can find
// and edit it. Failures are deliberately ignored; the directory may be
// read-only.
func writeDefaultGlyphs(dir string) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return
	}
	path := filepath.Join(dir, glyphsFile)
	if _, err := os.Stat(path); err == nil {
		return
	}
	_ = os.WriteFile(path, []byte(defaultGlyphsFile), 0o644)
}

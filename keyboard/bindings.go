// Package keyboard decodes a raw terminal byte stream into symbolic key
// events and manages the raw terminal mode the stream requires.
package keyboard

import (
	"bytes"
	"sort"
)

// Key is a symbolic key event: "up", "enter", "F5", "ctrl_a", "heartbeat"
// or a literal character.
type Key string

// Heartbeat is emitted when no input arrives within the poll interval.
const Heartbeat Key = "heartbeat"

// ansiSequences maps symbolic names to the multi-byte sequences terminals
// emit for them.
var ansiSequences = map[string]string{
	"up":     "\x1b[A",
	"down":   "\x1b[B",
	"right":  "\x1b[C",
	"left":   "\x1b[D",
	"home":   "\x1bOH",
	"end":    "\x1bOF",
	"insert": "\x1b[2~",
	"delete": "\x1b[3~",

	"pageUp":   "\x1b[5~",
	"pageDown": "\x1b[6~",

	"ctrlLeft":  "\x1b[1;5C",
	"ctrlRight": "\x1b[1;5D",
	"ctrlUp":    "\x1b[1;5A",
	"ctrlDown":  "\x1b[1;5B",
	"ctrlSlash": "\x1f",

	"F1":  "\x1bOP",
	"F2":  "\x1bOQ",
	"F3":  "\x1bOR",
	"F4":  "\x1bOS",
	"F5":  "\x1b[15~",
	"F6":  "\x1b[17~",
	"F7":  "\x1b[18~",
	"F8":  "\x1b[19~",
	"F9":  "\x1b[20~",
	"F10": "\x1b[21~",
	"F11": "\x1b[23~",
	"F12": "\x1b[24~",

	"ctrlF2":  "\x1bO1;5Q",
	"ctrlF3":  "\x1bO1;5R",
	"ctrlF4":  "\x1bO1;5S",
	"ctrlF5":  "\x1b[15;5~",
	"ctrlF6":  "\x1b[17;5~",
	"ctrlF7":  "\x1b[18;5~",
	"ctrlF8":  "\x1b[19;5~",
	"ctrlF9":  "\x1b[20;5~",
	"ctrlF10": "\x1b[21;5~",
	"ctrlF11": "\x1b[23;5~",
	"ctrlF12": "\x1b[24;5~",

	"shiftF1":  "\x1bO1;2P",
	"shiftF2":  "\x1bO1;2Q",
	"shiftF3":  "\x1bO1;2R",
	"shiftF4":  "\x1bO1;2S",
	"shiftF5":  "\x1b[15;2~",
	"shiftF6":  "\x1b[17;2~",
	"shiftF7":  "\x1b[18;2~",
	"shiftF8":  "\x1b[19;2~",
	"shiftF9":  "\x1b[20;2~",
	"shiftF11": "\x1b[23;2~",
	"shiftF12": "\x1b[24;2~",
}

// literalKeys names the single bytes that decode to something other than
// their raw character.
var literalKeys = map[byte]string{
	0x1b: "esc",
	'\n': "enter",
	'\r': "enter",
	' ':  "space",
	0x7f: "backspace",
}

type sequence struct {
	name  string
	bytes string
}

// Bindings resolves byte-sequence prefixes to symbolic key names.
type Bindings struct {
	ordered []sequence
}

// NewBindings builds the lookup table from the built-in sequences, the
// programmatically derived ctrl_a..ctrl_z entries, and any user overrides.
// When several sequences share a prefix the longest one wins; equal-length
// ties resolve by name so matching stays deterministic.
func NewBindings(overrides map[string]string) Bindings {
	seqName := make(map[string]string, len(ansiSequences)+26+len(overrides))
	for name, seq := range ansiSequences {
		seqName[seq] = name
	}
	for c := byte('a'); c <= 'z'; c++ {
		seqName[string(rune(c-'a'+1))] = "ctrl_" + string(rune(c))
	}
	for name, seq := range overrides {
		if seq == "" {
			continue
		}
		seqName[seq] = name
	}
	// single bytes with a literal name always decode to it
	for b, name := range literalKeys {
		if _, ok := seqName[string(b)]; ok {
			seqName[string(b)] = name
		}
	}
	ordered := make([]sequence, 0, len(seqName))
	for seq, name := range seqName {
		ordered = append(ordered, sequence{name: name, bytes: seq})
	}
	sort.Slice(ordered, func(i, j int) bool {
		if len(ordered[i].bytes) != len(ordered[j].bytes) {
			return len(ordered[i].bytes) > len(ordered[j].bytes)
		}
		return ordered[i].name < ordered[j].name
	})
	return Bindings{ordered: ordered}
}

// Len returns the number of bound sequences; zero means the Bindings value
// was never built with NewBindings.
func (b Bindings) Len() int {
	return len(b.ordered)
}

// Match reports the symbolic name of the longest known sequence prefixing
// buf and how many bytes it consumes.
func (b Bindings) Match(buf []byte) (name string, n int, ok bool) {
	for _, s := range b.ordered {
		if bytes.HasPrefix(buf, []byte(s.bytes)) {
			return s.name, len(s.bytes), true
		}
	}
	return "", 0, false
}

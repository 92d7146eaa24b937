package keyboard

import (
	"testing"
	"time"
)

// fakeSource replays scripted poll results.
type fakeSource struct {
	chunks [][]byte
	idle   int // polls that time out before each chunk
}

func (f *fakeSource) Poll(wait time.Duration) ([]byte, error) {
	if f.idle > 0 {
		f.idle--
		return nil, nil
	}
	if len(f.chunks) == 0 {
		return nil, nil
	}
	chunk := f.chunks[0]
	f.chunks = f.chunks[1:]
	return chunk, nil
}

func collect(t *testing.T, l *Listener, n int) []Key {
	t.Helper()
	keys := make([]Key, 0, n)
	for i := 0; i < n; i++ {
		key, err := l.Next()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		keys = append(keys, key)
	}
	return keys
}

func TestDecodeSequences(t *testing.T) {
	src := &fakeSource{chunks: [][]byte{[]byte("\x1b[A\x1b[B\x1b[5~")}}
	l := NewListener(src, NewBindings(nil), time.Second)
	got := collect(t, l, 3)
	want := []Key{"up", "down", "pageUp"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("key %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestDecodeLiteralsAndRunes(t *testing.T) {
	src := &fakeSource{chunks: [][]byte{[]byte("a \x7f\rQ")}}
	l := NewListener(src, NewBindings(nil), time.Second)
	got := collect(t, l, 5)
	want := []Key{"a", "space", "backspace", "enter", "Q"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("key %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestDecodeCtrlLetters(t *testing.T) {
	src := &fakeSource{chunks: [][]byte{{0x01, 0x1a, 0x1f}}}
	l := NewListener(src, NewBindings(nil), time.Second)
	got := collect(t, l, 3)
	want := []Key{"ctrl_a", "ctrl_z", "ctrlSlash"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("key %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestEnterOverridesCtrlJ(t *testing.T) {
	src := &fakeSource{chunks: [][]byte{{'\n'}}}
	l := NewListener(src, NewBindings(nil), time.Second)
	if got := collect(t, l, 1)[0]; got != "enter" {
		t.Fatalf("got %q, want enter", got)
	}
}

func TestHeartbeatOnIdle(t *testing.T) {
	src := &fakeSource{idle: 2, chunks: [][]byte{[]byte("x")}}
	l := NewListener(src, NewBindings(nil), 10*time.Millisecond)
	got := collect(t, l, 3)
	want := []Key{Heartbeat, Heartbeat, "x"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("key %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestHeartbeatKeepsPendingBytes(t *testing.T) {
	// a half-received rune must survive an idle poll
	src := &fakeSource{chunks: [][]byte{{0xc3}, nil, {0xa9}}}
	l := NewListener(src, NewBindings(nil), 10*time.Millisecond)
	got := collect(t, l, 2)
	if got[0] != Heartbeat {
		t.Fatalf("expected heartbeat first, got %q", got[0])
	}
	if got[1] != Key("é") {
		t.Fatalf("expected é, got %q", got[1])
	}
}

func TestUnknownSequenceDegradesToLiterals(t *testing.T) {
	src := &fakeSource{chunks: [][]byte{[]byte("\x1b[Z")}}
	l := NewListener(src, NewBindings(nil), time.Second)
	got := collect(t, l, 3)
	want := []Key{"esc", "[", "Z"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("key %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestOverridesAndLongestMatch(t *testing.T) {
	b := NewBindings(map[string]string{
		"custom":     "\x1b[1;2",
		"customLong": "\x1b[1;25~",
	})
	name, n, ok := b.Match([]byte("\x1b[1;25~rest"))
	if !ok || name != "customLong" || n != 8 {
		t.Fatalf("expected longest match customLong/8, got %q/%d/%v", name, n, ok)
	}
	name, n, ok = b.Match([]byte("\x1b[1;2X"))
	if !ok || name != "custom" || n != 5 {
		t.Fatalf("expected custom/5, got %q/%d/%v", name, n, ok)
	}
}

func TestMatchPrefersLongerSharedPrefix(t *testing.T) {
	b := NewBindings(nil)
	// ctrlUp shares the CSI prefix with up; the longer sequence must win
	name, n, ok := b.Match([]byte("\x1b[1;5A"))
	if !ok || name != "ctrlUp" || n != 6 {
		t.Fatalf("expected ctrlUp/6, got %q/%d/%v", name, n, ok)
	}
}

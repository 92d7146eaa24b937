package keyboard

import (
	"time"
	"unicode/utf8"
)

// Source supplies raw terminal bytes. Poll returns whatever bytes are
// available, waiting at most the given duration; a nil slice with a nil
// error means the wait elapsed with no input. A non-positive wait blocks
// until input arrives.
type Source interface {
	Poll(wait time.Duration) ([]byte, error)
}

// Listener turns a byte source into a lazy, non-restartable sequence of
// key events. It is tied to one open terminal session and must only be
// used from the loop that owns it.
type Listener struct {
	source    Source
	bindings  Bindings
	heartbeat time.Duration
	pending   []byte
}

// NewListener returns a listener over src. With a positive heartbeat the
// listener emits Heartbeat whenever that long passes without input.
func NewListener(src Source, bindings Bindings, heartbeat time.Duration) *Listener {
	return &Listener{source: src, bindings: bindings, heartbeat: heartbeat}
}

// Next blocks until the next key event is available and returns it.
func (l *Listener) Next() (Key, error) {
	for {
		if key, ok := l.decode(); ok {
			return key, nil
		}
		data, err := l.source.Poll(l.heartbeat)
		if err != nil {
			return "", err
		}
		if len(data) == 0 {
			if l.heartbeat > 0 {
				return Heartbeat, nil
			}
			continue
		}
		l.pending = append(l.pending, data...)
	}
}

// decode consumes one event from the pending buffer. Known multi-byte
// sequences win over single bytes; anything unrecognized degrades to a
// literal rune.
func (l *Listener) decode() (Key, bool) {
	if len(l.pending) == 0 {
		return "", false
	}
	if name, n, ok := l.bindings.Match(l.pending); ok {
		l.pending = l.pending[n:]
		return Key(name), true
	}
	if name, ok := literalKeys[l.pending[0]]; ok {
		l.pending = l.pending[1:]
		return Key(name), true
	}
	if !utf8.FullRune(l.pending) && len(l.pending) < utf8.UTFMax {
		// an incomplete rune; wait for the remaining bytes
		return "", false
	}
	r, size := utf8.DecodeRune(l.pending)
	l.pending = l.pending[size:]
	return Key(string(r)), true
}

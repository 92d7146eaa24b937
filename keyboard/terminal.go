package keyboard

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/term"
)

// ErrTerminalUnavailable reports that the input stream is not a terminal
// or that raw mode could not be acquired.
var ErrTerminalUnavailable = errors.New("keyboard: terminal unavailable")

// Terminal owns the raw-mode state of one terminal. Open and Close are
// reference counted so nested listen scopes share one acquisition; the
// prior mode is restored exactly when the count returns to zero.
type Terminal struct {
	in     *os.File
	out    *os.File
	opened int
	state  *term.State
}

// NewTerminal returns a Terminal over stdin/stdout.
func NewTerminal() *Terminal {
	return &Terminal{in: os.Stdin, out: os.Stdout}
}

// NewTerminalFiles returns a Terminal over the given files.
func NewTerminalFiles(in, out *os.File) *Terminal {
	return &Terminal{in: in, out: out}
}

// In returns the input file.
func (t *Terminal) In() *os.File { return t.in }

// Out returns the output file.
func (t *Terminal) Out() *os.File { return t.out }

// Open acquires raw, non-canonical, non-echo mode. Nested calls only
// bump the reference count. Failure leaves the terminal untouched.
func (t *Terminal) Open() error {
	t.opened++
	if t.opened > 1 {
		return nil
	}
	fd := int(t.in.Fd())
	if !term.IsTerminal(fd) {
		t.opened--
		return ErrTerminalUnavailable
	}
	state, err := term.MakeRaw(fd)
	if err != nil {
		t.opened--
		return fmt.Errorf("%w: %v", ErrTerminalUnavailable, err)
	}
	t.state = state
	return nil
}

// Close releases one reference; the last release restores the prior mode.
func (t *Terminal) Close() error {
	if t.opened == 0 {
		return nil
	}
	t.opened--
	if t.opened > 0 {
		return nil
	}
	state := t.state
	t.state = nil
	if state == nil {
		return nil
	}
	if err := term.Restore(int(t.in.Fd()), state); err != nil {
		return fmt.Errorf("restore terminal: %w", err)
	}
	return nil
}

// Suspended restores the terminal around fn, re-acquiring raw mode after
// it returns. Useful when a selection action needs cooked-mode input.
func (t *Terminal) Suspended(fn func() error) error {
	if err := t.Close(); err != nil {
		return err
	}
	defer func() { _ = t.Open() }()
	return fn()
}

// Poll implements Source against the terminal input. A non-positive wait
// blocks until bytes arrive.
func (t *Terminal) Poll(wait time.Duration) ([]byte, error) {
	if wait > 0 {
		if err := t.in.SetReadDeadline(time.Now().Add(wait)); err != nil {
			return nil, fmt.Errorf("set read deadline: %w", err)
		}
	} else {
		if err := t.in.SetReadDeadline(time.Time{}); err != nil {
			return nil, fmt.Errorf("clear read deadline: %w", err)
		}
	}
	buf := make([]byte, 64)
	n, err := t.in.Read(buf)
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return nil, nil
	}
	if err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		return nil, fmt.Errorf("read terminal: %w", err)
	}
	return buf[:n], nil
}

// Size returns the terminal dimensions in columns and rows.
func (t *Terminal) Size() (width, height int, err error) {
	width, height, err = term.GetSize(int(t.out.Fd()))
	if err != nil {
		return 0, 0, fmt.Errorf("terminal size: %w", err)
	}
	return width, height, nil
}

// Listen opens the terminal and returns a listener plus a release
// function; release must be called on every exit path.
func (t *Terminal) Listen(bindings Bindings, heartbeat time.Duration) (*Listener, func() error, error) {
	if err := t.Open(); err != nil {
		return nil, nil, err
	}
	return NewListener(t, bindings, heartbeat), t.Close, nil
}

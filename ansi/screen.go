package ansi

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Screen writes text and cursor/line control sequences to a terminal. The
// underlying writer is expected to be in raw mode, so bare newlines are
// expanded to CR/LF before writing.
type Screen struct {
	w io.Writer
}

// NewScreen returns a Screen writing to w.
func NewScreen(w io.Writer) *Screen {
	return &Screen{w: w}
}

// Stdout returns a Screen attached to standard output.
func Stdout() *Screen {
	return NewScreen(os.Stdout)
}

// Write sends text to the terminal.
func (s *Screen) Write(text string) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\n", "\r\n")
	_, _ = io.WriteString(s.w, text)
}

func (s *Screen) esc(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.w, "\x1b"+format, args...)
}

// Up moves the cursor up n rows.
func (s *Screen) Up(n int) { s.esc("[%dA", n) }

// Down moves the cursor down n rows.
func (s *Screen) Down(n int) { s.esc("[%dB", n) }

// Forward moves the cursor right n columns.
func (s *Screen) Forward(n int) { s.esc("[%dC", n) }

// Back moves the cursor left n columns.
func (s *Screen) Back(n int) { s.esc("[%dD", n) }

// Column moves the cursor to the given 1-based column.
func (s *Screen) Column(n int) { s.esc("[%dG", n) }

// Move positions the cursor at the given 1-based row and column.
func (s *Screen) Move(row, column int) { s.esc("[%d;%dH", row, column) }

// Home moves the cursor to the top-left corner.
func (s *Screen) Home() { s.esc("[H") }

// ClearScreen erases the whole screen.
func (s *Screen) ClearScreen() { s.esc("[2J") }

// ClearEOL erases from the cursor to the end of the line.
func (s *Screen) ClearEOL() { s.esc("[0K") }

// ClearLine erases the whole current line.
func (s *Screen) ClearLine() { s.esc("[2K") }

// SavePosition records the cursor position for RestorePosition.
func (s *Screen) SavePosition() { s.esc("[s") }

// RestorePosition returns the cursor to the last saved position.
func (s *Screen) RestorePosition() { s.esc("[u") }

// HideCursor makes the cursor invisible.
func (s *Screen) HideCursor() { s.esc("[?25l") }

// ShowCursor makes the cursor visible again.
func (s *Screen) ShowCursor() { s.esc("[?25h") }

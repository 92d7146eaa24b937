package termenu

import (
	"strings"

	"github.com/weka/termenu/ansi"
	"github.com/weka/termenu/keyboard"
)

// Minimenu is a one-line horizontal picker: the options sit side by side
// on the current row, left/right move the highlight, enter accepts and
// esc cancels. Handy for short confirmations where a full window would be
// noise.
type Minimenu struct {
	terminal *keyboard.Terminal
	screen   *ansi.Screen
	bindings keyboard.Bindings
	options  []string
	cursor   int
}

// NewMinimenu builds a Minimenu over the process terminal with the
// highlight on defaultOption when present.
func NewMinimenu(options []string, defaultOption string) *Minimenu {
	return NewMinimenuOn(keyboard.NewTerminal(), ansi.Stdout(), options, defaultOption)
}

// NewMinimenuOn builds a Minimenu over the given terminal and screen.
func NewMinimenuOn(terminal *keyboard.Terminal, screen *ansi.Screen, options []string, defaultOption string) *Minimenu {
	m := &Minimenu{
		terminal: terminal,
		screen:   screen,
		bindings: keyboard.NewBindings(nil),
		options:  options,
	}
	for i, o := range options {
		if o == defaultOption {
			m.cursor = i
			break
		}
	}
	return m
}

// Show runs the picker and returns the chosen option; ok is false when
// the user cancelled.
func (m *Minimenu) Show() (choice string, ok bool, err error) {
	listener, release, err := m.terminal.Listen(m.bindings, 0)
	if err != nil {
		return "", false, err
	}
	defer func() { _ = release() }()

	m.screen.Write(m.render())
	for {
		key, err := listener.Next()
		if err != nil {
			m.clear()
			return "", false, err
		}
		switch key {
		case "left":
			if m.cursor > 0 {
				m.cursor--
			}
		case "right":
			if m.cursor < len(m.options)-1 {
				m.cursor++
			}
		case "enter":
			m.clear()
			return m.options[m.cursor], true, nil
		case "esc":
			m.clear()
			return "", false, nil
		default:
			continue
		}
		m.screen.Write(strings.Repeat("\b", m.width()) + m.render())
	}
}

func (m *Minimenu) width() int {
	n := 0
	for _, o := range m.options {
		n += len(o)
	}
	return n + len(m.options) - 1
}

func (m *Minimenu) render() string {
	parts := make([]string, len(m.options))
	for i, o := range m.options {
		if i == m.cursor {
			parts[i] = ansi.Colorize(o, "black", "white", false)
		} else {
			parts[i] = o
		}
	}
	return strings.Join(parts, " ")
}

func (m *Minimenu) clear() {
	n := m.width()
	m.screen.Write(strings.Repeat("\b", n) + strings.Repeat(" ", n) + strings.Repeat("\b", n))
}

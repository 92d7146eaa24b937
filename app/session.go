package app

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/weka/termenu/ansi"
	"github.com/weka/termenu/internal/config"
	"github.com/weka/termenu/internal/logging/events"
	"github.com/weka/termenu/keyboard"
	"github.com/weka/termenu/termenu"
)

const breadcrumbSep = " DARK_GRAY@{>>}@ "

// Session runs a menu application: it owns the terminal, the key
// bindings and glyphs from the user's configuration, and the frame stack.
// A Session is single-threaded; Run drives everything.
type Session struct {
	terminal *keyboard.Terminal
	screen   *ansi.Screen
	bindings keyboard.Bindings
	glyphs   termenu.Glyphs

	titles []string
	depth  int
	resize chan os.Signal

	// show is the window-presenting step, separated so the frame loop can
	// be exercised without a terminal.
	show func(w *termenu.Window, defaultResult interface{}) (termenu.Selection, error)
}

// NewSession builds a Session over the process terminal, loading key and
// glyph preferences from ~/.termenu. Malformed preference files are
// reported rather than ignored.
func NewSession() (*Session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	return &Session{
		terminal: keyboard.NewTerminal(),
		screen:   ansi.Stdout(),
		bindings: keyboard.NewBindings(cfg.Keys),
		glyphs:   termenu.Glyphs(cfg.Glyphs),
		resize:   make(chan os.Signal, 1),
		show: func(w *termenu.Window, defaultResult interface{}) (termenu.Selection, error) {
			return w.Show(defaultResult)
		},
	}, nil
}

// Terminal exposes the session terminal, e.g. for Suspended scopes inside
// actions.
func (s *Session) Terminal() *keyboard.Terminal {
	return s.terminal
}

// Screen exposes the session screen writer.
func (s *Session) Screen() *ansi.Screen {
	return s.screen
}

// Run shows the root menu and blocks until the stack unwinds. The result
// value comes from a Return signal or a plain selected value; a quit or
// timeout surfaces as QuitSignal or TimeoutSignal. Backing out of the
// root menu ends the session with no result.
func (s *Session) Run(root *Menu) (interface{}, error) {
	signal.Notify(s.resize, syscall.SIGWINCH)
	defer signal.Stop(s.resize)

	value, err := s.run(root)
	var back *BackSignal
	if errors.As(err, &back) {
		// nothing above the root to go back to
		return nil, nil
	}
	return value, err
}

// run is one frame of the menu stack. It loops showing the window and
// interpreting the outcome until a signal pops the frame.
func (s *Session) run(m *Menu) (interface{}, error) {
	s.depth++
	defer func() { s.depth-- }()

	win := termenu.NewWindow(s.terminal, s.screen, termenu.WindowOptions{
		Bindings:  s.bindings,
		Glyphs:    &s.glyphs,
		Heartbeat: m.heartbeat(),
		Timeout:   m.Timeout,
		Width:     m.Width,
	})
	win.SetResize(s.resize)
	for k, h := range m.OnKey {
		win.Hooks[k] = h
	}
	if m.Fullscreen {
		win.AutoClear = false
		defer win.ClearMenu()
	}

	refresh := "first"
	defaultResult := m.Default
	var seed []interface{}

	for {
		if refresh != "" {
			if m.Fullscreen {
				s.screen.ClearScreen()
				s.screen.Home()
			}
			options, err := m.items(s)
			if err != nil {
				return nil, fmt.Errorf("build items for %q: %w", m.title(), err)
			}
			if len(options) == 0 {
				events.Menu.Empty(m.title())
				return nil, nil
			}
			banner := ""
			if m.Banner != nil {
				banner = m.Banner()
			}
			win.Reset(s.breadcrumb(m), banner, options, m.Height, m.Multiselect, seed)
			seed = nil
		}
		refresh = ""

		title := m.title()
		s.titles = append(s.titles, title)
		events.Menu.Push(title, s.depth)

		sel, err := s.show(win, defaultResult)
		defaultResult = nil

		var selectSig *termenu.SelectSignal
		if errors.As(err, &selectSig) {
			sel, err = selectSig.Selection, nil
		}
		if err == nil {
			err = s.onSelected(m, sel)
		}

		s.titles = s.titles[:len(s.titles)-1]
		events.Menu.Pop(title, s.depth)

		if err == nil {
			refresh = "show"
			continue
		}

		var (
			refreshSig   *termenu.RefreshSignal
			helpSig      *termenu.HelpSignal
			timeoutSig   *termenu.TimeoutSignal
			interruptSig *termenu.InterruptSignal
			retry        *RetrySignal
			back         *BackSignal
			ret          *ReturnSignal
		)
		switch {
		case errors.As(err, &refreshSig):
			refresh = refreshSig.Source
		case errors.As(err, &helpSig):
			if err := s.showHelp(m); err != nil {
				return nil, err
			}
			refresh = "help"
		case errors.As(err, &timeoutSig):
			events.Signal.Raised("timeout", title)
			return nil, &TimeoutSignal{}
		case errors.As(err, &interruptSig):
			events.Signal.Raised("quit", title)
			return nil, &QuitSignal{}
		case errors.As(err, &retry):
			events.Signal.Raised("retry", retry.Refresh)
			refresh = retry.Refresh
			seed = retry.Selection
		case errors.As(err, &back):
			if back.Levels > 0 {
				back.Levels--
				return nil, back
			}
			events.Signal.Raised("back", title)
			if back.Refresh {
				refresh = "back"
			}
		case errors.As(err, &ret):
			events.Signal.Raised("return", ret.Value)
			return ret.Value, nil
		default:
			return nil, err
		}
	}
}

// onSelected interprets a finished selection: empty goes back, declared
// actions open an action menu, and everything else is evaluated to a
// value that, when non-nil, unwinds the stack.
func (s *Session) onSelected(m *Menu, sel termenu.Selection) error {
	if m.OnSelected != nil {
		return m.OnSelected(s, sel)
	}
	if sel.Empty() {
		return Back(1, true)
	}
	events.Menu.Enter(m.title(), sel.Values)

	actions := m.Actions
	if m.SelectionActions != nil {
		actions = m.SelectionActions(s, sel)
	}

	var value interface{}
	if len(actions) == 0 {
		v, err := s.evaluate(m, sel)
		if err != nil {
			return err
		}
		value = v
	} else {
		v, err := s.showActions(m, sel, actions)
		if err != nil {
			return err
		}
		value = v
	}
	if value != nil {
		return Return(value)
	}
	return nil
}

// evaluate resolves selected results: submenus descend, actions run, and
// plain values pass through. Under multiselect the values are collected;
// a collection of nothing stays nothing.
func (s *Session) evaluate(m *Menu, sel termenu.Selection) (interface{}, error) {
	one := func(v interface{}) (interface{}, error) {
		switch t := v.(type) {
		case *Menu:
			return s.run(t)
		case Action:
			return t(s)
		case func(s *Session) (interface{}, error):
			return t(s)
		default:
			return v, nil
		}
	}

	if !m.Multiselect {
		return one(sel.Value())
	}
	var out []interface{}
	any := false
	for _, v := range sel.Values {
		r, err := one(v)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
		if r != nil {
			any = true
		}
	}
	if !any {
		return nil, nil
	}
	return out, nil
}

// showActions opens the action menu for a selection.
func (s *Session) showActions(m *Menu, sel termenu.Selection, actions []SelectionAction) (interface{}, error) {
	title := fmt.Sprintf("Selected %d item(s)", len(sel.Values))
	if m.SelectionTitle != nil {
		title = m.SelectionTitle(sel)
	}
	options := make([]*termenu.Option, 0, len(actions))
	for _, a := range actions {
		run := a.Run
		options = append(options, termenu.NewOption(a.Name, Action(func(s *Session) (interface{}, error) {
			return run(s, sel)
		})))
	}
	return s.ShowMenu(title, options, ShowOptions{})
}

// ShowOptions parameterizes an ad-hoc menu.
type ShowOptions struct {
	Default     interface{}
	Multiselect bool
	Height      int
}

// ShowMenu pushes an ad-hoc frame over the given options; handy from
// inside actions. It returns when the frame pops.
func (s *Session) ShowMenu(title string, options []*termenu.Option, opts ShowOptions) (interface{}, error) {
	return s.run(&Menu{
		Name: title,
		Items: func(*Session) ([]*termenu.Option, error) {
			return options, nil
		},
		Default:     opts.Default,
		Multiselect: opts.Multiselect,
		Height:      opts.Height,
	})
}

// breadcrumb joins the ancestor titles with the frame's own.
func (s *Session) breadcrumb(m *Menu) string {
	parts := append(append([]string(nil), s.titles...), m.title())
	return strings.Join(parts, breadcrumbSep)
}

// WaitForKeys prompts and blocks until one of the given keys (or any key,
// when none are given) is pressed.
func (s *Session) WaitForKeys(prompt string, keys ...keyboard.Key) (keyboard.Key, error) {
	if prompt != "" {
		s.screen.Write(colorize(prompt) + " ")
	}
	listener, release, err := s.terminal.Listen(s.bindings, 0)
	if err != nil {
		return "", err
	}
	defer func() { _ = release() }()

	allowed := make(map[keyboard.Key]bool, len(keys))
	for _, k := range keys {
		allowed[k] = true
	}
	for {
		key, err := listener.Next()
		if err != nil {
			return "", err
		}
		if len(allowed) == 0 || allowed[key] {
			s.screen.Write("\n")
			return key, nil
		}
	}
}

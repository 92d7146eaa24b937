package termenu

import (
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/weka/termenu/ansi"
	"github.com/weka/termenu/internal/logging/events"
	"github.com/weka/termenu/keyboard"
)

// highlightFlash is how long marked rows stay highlighted before a
// multiselect result is returned.
const highlightFlash = 100 * time.Millisecond

// Show draws the window and runs its key loop until a selection is made,
// the filter is escaped with nothing selected, or a signal is raised.
// Signals (refresh, help, timeout, interrupt, hook-made selections) come
// back as errors for the caller to interpret.
func (w *Window) Show(defaultResult interface{}) (Selection, error) {
	w.refilter()
	w.setDefault(defaultResult)

	heartbeat := w.heartbeat
	if heartbeat == 0 && !w.deadline.IsZero() {
		heartbeat = time.Second
	}
	listener, release, err := w.terminal.Listen(w.bindings, heartbeat)
	if err != nil {
		return Selection{}, err
	}
	defer func() { _ = release() }()

	w.printMenu()
	w.screen.SavePosition()
	w.screen.HideCursor()
	defer w.screen.ShowCursor()
	if w.AutoClear {
		defer w.clearMenu()
	}

	for {
		if w.resizePending() {
			return Selection{}, Refresh("signal")
		}
		key, err := listener.Next()
		if err != nil {
			return Selection{}, err
		}
		stop, err := w.handleKey(key)
		if err != nil {
			return Selection{}, err
		}
		if stop {
			return w.result(), nil
		}
		w.gotoTop()
		w.printMenu()
	}
}

// handleKey routes one key event. Caller hooks win over the built-in
// handlers; unhandled printable characters feed the filter.
func (w *Window) handleKey(key keyboard.Key) (stop bool, err error) {
	events.Key.Pressed(string(key))

	// any real key disarms the timeout; only a fully idle window expires
	if key != keyboard.Heartbeat {
		w.deadline = time.Time{}
	}

	if hook, ok := w.Hooks[key]; ok {
		return false, hook(w)
	}

	switch key {
	case "up":
		w.onUp()
	case "down":
		w.onDown()
	case "pageUp":
		w.onPageUp()
	case "pageDown":
		w.onPageDown()
	case "home":
		w.onHome()
	case "end":
		w.onEnd()
	case "insert", "`":
		w.onInsert()
	case "*":
		w.toggleAll()
	case "F5":
		return false, Refresh("user")
	case "F1":
		return false, Help()
	case "ctrl_c":
		return false, &InterruptSignal{}
	case "ctrlSlash":
		w.cycleFilterMode()
	case keyboard.Heartbeat:
		return false, w.tick()
	case "enter":
		return w.onEnter()
	case "esc":
		return w.onEsc()
	case "backspace":
		w.backspaceFilter()
	case "space":
		w.appendFilter(' ')
	default:
		if r, size := utf8.DecodeRuneInString(string(key)); size == len(key) && unicode.IsPrint(r) {
			w.appendFilter(r)
		}
	}
	return false, nil
}

// onEnter accepts the selection. On an empty match list or an
// unselectable active option it is inert; with marks set the marked rows
// flash before the result is returned.
func (w *Window) onEnter() (bool, error) {
	if w.isEmpty {
		return false, nil
	}
	if w.anySelected() {
		w.highlighted = true
		w.gotoTop()
		w.printMenu()
		time.Sleep(highlightFlash)
		return true, nil
	}
	if o := w.activeOption(); o == nil || !o.Selectable {
		return false, nil
	}
	return true, nil
}

// onEsc peels back state one layer at a time: first the last filter term,
// then the selection marks, and finally the window itself (aborting).
func (w *Window) onEsc() (bool, error) {
	switch {
	case w.filter != nil:
		w.popFilterTerm()
		w.screen.HideCursor()
	case w.anySelected():
		w.clearSelection()
	default:
		w.aborted = true
		events.Signal.Raised("abort", nil)
		return true, nil
	}
	return false, nil
}

// MenuConfig parameterizes the one-shot Show helper.
type MenuConfig struct {
	Title       string
	Default     interface{}
	Height      int
	Width       int
	Multiselect bool
	Timeout     time.Duration
	Heartbeat   time.Duration
}

// Show presents a one-shot menu over the process terminal and returns the
// selection. Signal errors surface unchanged; most callers only need to
// distinguish TimeoutSignal.
func Show(cfg MenuConfig, options []*Option) (Selection, error) {
	w := NewWindow(keyboard.NewTerminal(), ansi.Stdout(), WindowOptions{
		Timeout:   cfg.Timeout,
		Heartbeat: cfg.Heartbeat,
		Width:     cfg.Width,
	})
	w.Reset(cfg.Title, "", options, cfg.Height, cfg.Multiselect, nil)
	return w.Show(cfg.Default)
}

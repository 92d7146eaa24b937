package termenu

import (
	"os"
	"reflect"
	"time"

	"github.com/weka/termenu/ansi"
	"github.com/weka/termenu/colors"
	"github.com/weka/termenu/internal/theme"
	"github.com/weka/termenu/keyboard"
)

// Glyphs holds the marker characters used when decorating rows. Values
// may contain color markup.
type Glyphs struct {
	ScrollUp           string
	ScrollDown         string
	ActiveItem         string
	SelectedItem       string
	SelectableItem     string
	ContinuationPrefix string
	ContinuationSuffix string
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

// Hook is a caller-installed key handler. Returning a signal error (for
// example Refresh or Help) ends Show with that signal; returning nil keeps
// the window running.
type Hook func(*Window) error

// WindowOptions configures a Window at construction time.
type WindowOptions struct {
	// Bindings resolves raw byte sequences to key names; the zero value
	// uses the built-in table.
	Bindings keyboard.Bindings

	// Glyphs overrides the marker characters.
	Glyphs *Glyphs

	// Heartbeat is the idle interval between synthetic heartbeat events.
	// Zero disables them unless a Timeout is set.
	Heartbeat time.Duration

	// Timeout arms a deadline; once it passes with no input, the next
	// heartbeat ends Show with a TimeoutSignal. Any key press disarms it.
	// The remaining time is shown in the title.
	Timeout time.Duration

	// Width caps the rendered option width. Zero means the terminal width.
	Width int
}

// Window is a scrollable, filterable selection list drawn in place on the
// terminal. It is not safe for concurrent use.
type Window struct {
	terminal *keyboard.Terminal
	screen   *ansi.Screen
	bindings keyboard.Bindings
	glyphs   Glyphs
	styles   theme.Styles

	// Hooks maps key names to caller handlers, consulted before the
	// built-in ones.
	Hooks map[keyboard.Key]Hook

	// AutoClear erases the menu from the screen when Show returns.
	AutoClear bool

	maxWidth  int
	heartbeat time.Duration
	deadline  time.Time

	title       colors.Colorized
	titleHeight int

	all     []*Option
	options []*Option
	cursor  int
	scroll  int
	width   int
	height  int

	multiselect bool
	filter      []rune
	filterMode  int
	isEmpty     bool
	highlighted bool
	aborted     bool

	lineCache map[int]string
	resize    <-chan os.Signal
}

// NewWindow builds a Window over the given terminal and screen.
func NewWindow(terminal *keyboard.Terminal, screen *ansi.Screen, opts WindowOptions) *Window {
	bindings := opts.Bindings
	if bindings.Len() == 0 {
		bindings = keyboard.NewBindings(nil)
	}
	glyphs := DefaultGlyphs()
	if opts.Glyphs != nil {
		glyphs = *opts.Glyphs
	}
	w := &Window{
		terminal:  terminal,
		screen:    screen,
		bindings:  bindings,
		glyphs:    glyphs,
		styles:    theme.Current(),
		Hooks:     map[keyboard.Key]Hook{},
		AutoClear: true,
		maxWidth:  opts.Width,
		heartbeat: opts.Heartbeat,
		isEmpty:   true,
		lineCache: map[int]string{},
	}
	if opts.Timeout > 0 {
		w.deadline = time.Now().Add(opts.Timeout)
	}
	return w
}

// SetResize installs a channel whose readiness forces a refresh, typically
// fed from SIGWINCH.
func (w *Window) SetResize(ch <-chan os.Signal) {
	w.resize = ch
}

// Reset rebuilds the window over a fresh option list. Cursor position and
// selection marks survive the rebuild for options whose results still
// exist; seed, when non-nil, overrides the preserved marks with the given
// result values.
func (w *Window) Reset(title, header string, options []*Option, height int, multiselect bool, seed []interface{}) {
	w.highlighted = false
	w.aborted = false

	termW, termH, err := w.terminal.Size()
	if err != nil || termW <= 0 || termH <= 0 {
		termW, termH = 80, 25
	}

	w.buildTitle(title, header, termW)

	if height <= 0 {
		height = termH - 2
	}
	height -= w.titleHeight

	active, selected, preserve := w.snapshotSelection()

	w.all = options
	h := height
	if h <= 0 {
		h = 10
	}
	if h > len(options) {
		h = len(options)
	}
	if maxH := termH - 1; h > maxH {
		h = maxH
	}
	if h < 1 {
		h = 1
	}
	w.height = h
	w.multiselect = multiselect
	w.cursor, w.scroll = 0, 0
	w.lineCache = map[int]string{}
	w.computeWidth(termW)
	w.refilter()

	if preserve {
		w.restoreSelection(active, selected)
	}
	if seed != nil {
		want := make(map[interface{}]bool, len(seed))
		for _, v := range seed {
			if comparableResult(v) {
				want[v] = true
			}
		}
		for _, o := range w.all {
			o.Selected = comparableResult(o.Result) && want[o.Result]
		}
	}
}

// snapshotSelection captures the active result and the marked results so
// both can be re-applied after the option list changes.
func (w *Window) snapshotSelection() (active interface{}, selected map[interface{}]bool, ok bool) {
	if w.isEmpty || len(w.all) == 0 {
		return nil, nil, false
	}
	if o := w.activeOption(); o != nil {
		active = o.Result
	}
	selected = map[interface{}]bool{}
	for _, o := range w.all {
		if o.Selected && comparableResult(o.Result) {
			selected[o.Result] = true
		}
	}
	return active, selected, true
}

// comparableResult guards the equality-based bookkeeping against results
// such as funcs that would make interface comparison panic.
func comparableResult(v interface{}) bool {
	if v == nil {
		return true
	}
	return reflect.TypeOf(v).Comparable()
}

func equalResults(a, b interface{}) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}

func (w *Window) restoreSelection(active interface{}, selected map[interface{}]bool) {
	if len(selected) > 0 {
		for _, o := range w.all {
			o.Selected = comparableResult(o.Result) && selected[o.Result]
		}
	}
	w.setDefault(active)
}

// setDefault positions the cursor on the option carrying the given result.
func (w *Window) setDefault(result interface{}) {
	if result == nil {
		return
	}
	idx := -1
	for i, o := range w.options {
		if equalResults(o.Result, result) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	w.cursor, w.scroll = 0, 0
	for i := 0; i < idx; i++ {
		w.onDown()
	}
}

// window returns the slice of options currently on screen.
func (w *Window) window() []*Option {
	end := w.scroll + w.height
	if end > len(w.options) {
		end = len(w.options)
	}
	if w.scroll >= end {
		return nil
	}
	return w.options[w.scroll:end]
}

func (w *Window) activeOption() *Option {
	if len(w.options) == 0 {
		return nil
	}
	idx := w.scroll + w.cursor
	if idx >= len(w.options) {
		idx = len(w.options) - 1
	}
	return w.options[idx]
}

// ActiveOption returns the option under the cursor, or nil.
func (w *Window) ActiveOption() *Option {
	if w.isEmpty {
		return nil
	}
	return w.activeOption()
}

// Multiselect reports whether marking is enabled.
func (w *Window) Multiselect() bool {
	return w.multiselect
}

func (w *Window) visibleHeight() int {
	h := w.height
	if h > len(w.options) {
		h = len(w.options)
	}
	return h
}

func (w *Window) onUp() {
	if w.cursor > 0 {
		w.cursor--
	} else if w.scroll > 0 {
		w.scroll--
	}
}

func (w *Window) onDown() {
	h := w.visibleHeight()
	if w.cursor < h-1 {
		w.cursor++
	} else if w.scroll+h < len(w.options) {
		w.scroll++
	}
}

func (w *Window) onPageUp() {
	h := w.visibleHeight()
	if w.cursor > 0 {
		w.cursor = 0
	} else if w.scroll-h > 0 {
		w.scroll -= h
	} else {
		w.scroll = 0
	}
}

func (w *Window) onPageDown() {
	h := w.visibleHeight()
	if w.cursor < h-1 {
		w.cursor = h - 1
	} else if w.scroll+h*2 < len(w.options) {
		w.scroll += h
	} else {
		w.scroll = len(w.options) - h
	}
}

func (w *Window) onHome() {
	w.cursor, w.scroll = 0, 0
}

func (w *Window) onEnd() {
	h := w.visibleHeight()
	w.scroll = len(w.options) - h
	w.cursor = h - 1
}

// onInsert toggles the mark on the active option and advances; on an
// unmarkable option it just advances.
func (w *Window) onInsert() {
	o := w.activeOption()
	if o == nil || w.isEmpty {
		return
	}
	if o.IsMarkable() {
		if !w.multiselect {
			return
		}
		o.Selected = !o.Selected
	}
	w.onDown()
}

// toggleAll inverts the mark on every markable visible option.
func (w *Window) toggleAll() {
	if !w.multiselect || w.isEmpty {
		return
	}
	for _, o := range w.options {
		if o.IsMarkable() {
			o.Selected = !o.Selected
		}
	}
}

func (w *Window) anySelected() bool {
	for _, o := range w.all {
		if o.Selected {
			return true
		}
	}
	return false
}

func (w *Window) clearSelection() {
	for _, o := range w.all {
		o.Selected = false
	}
}

// result assembles the outcome of the current state: the marked results,
// or the active one when nothing is marked.
func (w *Window) result() Selection {
	if w.aborted {
		return Selection{Aborted: true}
	}
	var values []interface{}
	for _, o := range w.options {
		if o.Selected {
			values = append(values, o.Result)
		}
	}
	if len(values) == 0 && !w.isEmpty {
		if o := w.activeOption(); o != nil {
			values = append(values, o.Result)
		}
	}
	return Selection{Values: values}
}

// CurrentSelection returns what Show would return if enter were hit now.
// Intended for key hooks that raise SelectSignal.
func (w *Window) CurrentSelection() Selection {
	return w.result()
}

// tick handles a heartbeat: past the deadline it times out, otherwise it
// asks for a rebuild so dynamic items and the countdown stay current.
func (w *Window) tick() error {
	if !w.deadline.IsZero() {
		if time.Now().After(w.deadline) {
			return &TimeoutSignal{}
		}
		return Refresh("heartbeat")
	}
	if w.heartbeat > 0 {
		return Refresh("heartbeat")
	}
	return nil
}

func (w *Window) resizePending() bool {
	if w.resize == nil {
		return false
	}
	select {
	case <-w.resize:
		return true
	default:
		return false
	}
}

package termenu

import (
	"fmt"
	"io"
	"os"
	"testing"
	"time"

	"github.com/weka/termenu/ansi"
	"github.com/weka/termenu/keyboard"
)

func newTestWindow(t *testing.T, options []*Option, height int, multiselect bool) *Window {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		r.Close()
		w.Close()
	})
	// a pipe is not a terminal, so sizing falls back to 80x25
	win := NewWindow(keyboard.NewTerminalFiles(r, w), ansi.NewScreen(io.Discard), WindowOptions{})
	win.Reset("", "", options, height, multiselect, nil)
	return win
}

func numberedOptions(n int) []*Option {
	options := make([]*Option, n)
	for i := range options {
		options[i] = Text(fmt.Sprintf("option-%06d", i))
	}
	return options
}

func press(t *testing.T, w *Window, keys ...keyboard.Key) {
	t.Helper()
	for _, k := range keys {
		if _, err := w.handleKey(k); err != nil {
			t.Fatalf("key %q: %v", k, err)
		}
	}
}

func TestCursorThenScroll(t *testing.T) {
	w := newTestWindow(t, numberedOptions(100), 10, false)
	for i := 0; i < 12; i++ {
		press(t, w, "down")
	}
	if w.cursor != 9 || w.scroll != 3 {
		t.Fatalf("expected cursor=9 scroll=3, got cursor=%d scroll=%d", w.cursor, w.scroll)
	}
	if got := w.ActiveOption().Result; got != "option-000012" {
		t.Fatalf("unexpected active option %v", got)
	}
}

func TestUpAtTopIsInert(t *testing.T) {
	w := newTestWindow(t, numberedOptions(5), 10, false)
	press(t, w, "up", "up")
	if w.cursor != 0 || w.scroll != 0 {
		t.Fatalf("expected top, got cursor=%d scroll=%d", w.cursor, w.scroll)
	}
}

func TestDownAtBottomIsInert(t *testing.T) {
	w := newTestWindow(t, numberedOptions(4), 10, false)
	for i := 0; i < 10; i++ {
		press(t, w, "down")
	}
	if w.cursor != 3 || w.scroll != 0 {
		t.Fatalf("expected cursor=3 scroll=0, got cursor=%d scroll=%d", w.cursor, w.scroll)
	}
}

func TestPageMovement(t *testing.T) {
	w := newTestWindow(t, numberedOptions(100), 10, false)
	press(t, w, "pageDown") // cursor jumps to the window bottom
	if w.cursor != 9 || w.scroll != 0 {
		t.Fatalf("after first pageDown: cursor=%d scroll=%d", w.cursor, w.scroll)
	}
	press(t, w, "pageDown") // then whole pages scroll
	if w.cursor != 9 || w.scroll != 10 {
		t.Fatalf("after second pageDown: cursor=%d scroll=%d", w.cursor, w.scroll)
	}
	press(t, w, "end")
	if w.cursor != 9 || w.scroll != 90 {
		t.Fatalf("after end: cursor=%d scroll=%d", w.cursor, w.scroll)
	}
	press(t, w, "pageUp")
	if w.cursor != 0 || w.scroll != 90 {
		t.Fatalf("after pageUp: cursor=%d scroll=%d", w.cursor, w.scroll)
	}
	press(t, w, "home")
	if w.cursor != 0 || w.scroll != 0 {
		t.Fatalf("after home: cursor=%d scroll=%d", w.cursor, w.scroll)
	}
}

func TestToggleAndResult(t *testing.T) {
	w := newTestWindow(t, numberedOptions(5), 10, true)
	press(t, w, "insert") // marks option-000000 and advances
	press(t, w, "down")
	press(t, w, "insert") // marks option-000002
	sel := w.result()
	if len(sel.Values) != 2 || sel.Values[0] != "option-000000" || sel.Values[1] != "option-000002" {
		t.Fatalf("unexpected selection %v", sel.Values)
	}
}

func TestToggleIgnoredWithoutMultiselect(t *testing.T) {
	w := newTestWindow(t, numberedOptions(5), 10, false)
	press(t, w, "insert")
	if w.anySelected() {
		t.Fatal("insert should not mark in single-select mode")
	}
	if w.cursor != 0 {
		t.Fatalf("insert on a markable option should not move in single-select mode, cursor=%d", w.cursor)
	}
	sel := w.result()
	if len(sel.Values) != 1 || sel.Values[0] != "option-000000" {
		t.Fatalf("expected the active option as result, got %v", sel.Values)
	}
}

func TestToggleAll(t *testing.T) {
	options := numberedOptions(4)
	options[2].Selectable = false
	w := newTestWindow(t, options, 10, true)
	press(t, w, "*")
	sel := w.result()
	if len(sel.Values) != 3 {
		t.Fatalf("expected 3 marked options, got %v", sel.Values)
	}
	press(t, w, "*")
	if w.anySelected() {
		t.Fatal("second toggle-all should unmark everything")
	}
}

func TestEscPeelsSelectionThenAborts(t *testing.T) {
	w := newTestWindow(t, numberedOptions(5), 10, true)
	press(t, w, "insert")
	stop, err := w.handleKey("esc")
	if err != nil || stop {
		t.Fatalf("first esc should only clear marks, stop=%v err=%v", stop, err)
	}
	if w.anySelected() {
		t.Fatal("marks should be cleared")
	}
	stop, err = w.handleKey("esc")
	if err != nil || !stop {
		t.Fatalf("second esc should abort, stop=%v err=%v", stop, err)
	}
	if sel := w.result(); !sel.Aborted {
		t.Fatalf("expected aborted selection, got %v", sel)
	}
}

func TestEnterOnUnselectableIsInert(t *testing.T) {
	options := numberedOptions(3)
	options[0].Selectable = false
	w := newTestWindow(t, options, 10, false)
	w.cursor, w.scroll = 0, 0
	stop, err := w.handleKey("enter")
	if err != nil || stop {
		t.Fatalf("enter on unselectable option should be inert, stop=%v err=%v", stop, err)
	}
	press(t, w, "down")
	stop, err = w.handleKey("enter")
	if err != nil || !stop {
		t.Fatalf("enter on selectable option should stop, stop=%v err=%v", stop, err)
	}
}

func TestSelectionSurvivesReset(t *testing.T) {
	options := numberedOptions(10)
	w := newTestWindow(t, options, 10, true)
	press(t, w, "down", "down", "insert") // mark option-000002, cursor on 3
	w.Reset("", "", numberedOptions(12), 10, true, nil)
	sel := w.result()
	if len(sel.Values) != 1 || sel.Values[0] != "option-000002" {
		t.Fatalf("mark should survive the rebuild, got %v", sel.Values)
	}
	if got := w.ActiveOption().Result; got != "option-000003" {
		t.Fatalf("cursor should stay on the same result, got %v", got)
	}
}

func TestResetDropsVanishedResults(t *testing.T) {
	w := newTestWindow(t, numberedOptions(5), 10, true)
	press(t, w, "insert")
	w.Reset("", "", numberedOptions(5)[1:], 10, true, nil)
	if w.anySelected() {
		t.Fatal("mark on a vanished result should not survive")
	}
}

func TestSeedOverridesPreservedMarks(t *testing.T) {
	w := newTestWindow(t, numberedOptions(5), 10, true)
	press(t, w, "insert")
	w.Reset("", "", numberedOptions(5), 10, true, []interface{}{"option-000004"})
	sel := w.result()
	if len(sel.Values) != 1 || sel.Values[0] != "option-000004" {
		t.Fatalf("seed should replace preserved marks, got %v", sel.Values)
	}
}

func TestSetDefaultScrolls(t *testing.T) {
	w := newTestWindow(t, numberedOptions(100), 10, false)
	w.setDefault("option-000042")
	if got := w.ActiveOption().Result; got != "option-000042" {
		t.Fatalf("unexpected active option %v", got)
	}
	if w.cursor >= w.height {
		t.Fatalf("cursor must stay inside the window, cursor=%d height=%d", w.cursor, w.height)
	}
}

func TestHeartbeatTick(t *testing.T) {
	w := newTestWindow(t, numberedOptions(3), 10, false)

	// no deadline, no heartbeat: inert
	if err := w.tick(); err != nil {
		t.Fatalf("unexpected tick error: %v", err)
	}

	w.heartbeat = time.Second
	err := w.tick()
	refresh, ok := err.(*RefreshSignal)
	if !ok || refresh.Source != "heartbeat" {
		t.Fatalf("expected heartbeat refresh, got %v", err)
	}

	w.deadline = time.Now().Add(-time.Second)
	if _, ok := w.tick().(*TimeoutSignal); !ok {
		t.Fatalf("expected timeout past the deadline, got %v", err)
	}
}

func TestKeypressDisarmsTimeout(t *testing.T) {
	w := newTestWindow(t, numberedOptions(5), 10, false)
	w.heartbeat = time.Second
	w.deadline = time.Now().Add(-time.Second)

	// navigating past the deadline must cancel it
	press(t, w, "down")

	_, err := w.handleKey(keyboard.Heartbeat)
	if _, ok := err.(*TimeoutSignal); ok {
		t.Fatal("an actively navigating user must not be timed out")
	}
	refresh, ok := err.(*RefreshSignal)
	if !ok || refresh.Source != "heartbeat" {
		t.Fatalf("expected a heartbeat refresh after the disarm, got %v", err)
	}
}

func TestIdleWindowTimesOut(t *testing.T) {
	w := newTestWindow(t, numberedOptions(5), 10, false)
	w.heartbeat = time.Second
	w.deadline = time.Now().Add(-time.Second)
	_, err := w.handleKey(keyboard.Heartbeat)
	if _, ok := err.(*TimeoutSignal); !ok {
		t.Fatalf("expected a timeout with no intervening input, got %v", err)
	}
}

func TestHooksWinOverBuiltins(t *testing.T) {
	w := newTestWindow(t, numberedOptions(5), 10, false)
	called := false
	w.Hooks["down"] = func(*Window) error {
		called = true
		return nil
	}
	press(t, w, "down")
	if !called {
		t.Fatal("hook was not invoked")
	}
	if w.cursor != 0 {
		t.Fatal("hook should shadow the built-in handler")
	}
}

func TestHookSignalEndsShow(t *testing.T) {
	w := newTestWindow(t, numberedOptions(5), 10, false)
	w.Hooks["F9"] = func(win *Window) error {
		return &SelectSignal{Selection: win.CurrentSelection()}
	}
	_, err := w.handleKey("F9")
	sig, ok := err.(*SelectSignal)
	if !ok {
		t.Fatalf("expected SelectSignal, got %v", err)
	}
	if sig.Selection.Value() != "option-000000" {
		t.Fatalf("unexpected hook selection %v", sig.Selection.Values)
	}
}

func TestFlattenGroups(t *testing.T) {
	options := Flatten([]OptionGroup{
		{Header: "WHITE<<First>>", Options: numberedOptions(2)},
		{Header: "WHITE<<Second>>", Options: numberedOptions(1)},
	})
	if len(options) != 5 {
		t.Fatalf("expected 5 options, got %d", len(options))
	}
	h := options[0]
	if !h.Header || h.Selectable || !h.ShowAlways {
		t.Fatalf("unexpected header attrs %+v", h)
	}
	w := newTestWindow(t, options, 10, false)
	// the cursor starts below the header
	if got := w.ActiveOption().Result; got != "option-000000" {
		t.Fatalf("cursor should skip the header, got %v", got)
	}
}

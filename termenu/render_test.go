package termenu

import (
	"strings"
	"testing"
	"time"

	"github.com/weka/termenu/ansi"
	"github.com/weka/termenu/colors"
)

func TestAdjustWidthPadsAndJoins(t *testing.T) {
	w := newTestWindow(t, numberedOptions(3), 10, false)
	got := w.adjustWidth(colors.New("short"))
	if got.Len() != w.width {
		t.Fatalf("expected padding to width %d, got %d", w.width, got.Len())
	}
	if !strings.HasPrefix(got.Plain(), "short") {
		t.Fatalf("unexpected text %q", got.Plain())
	}

	multi := w.adjustWidth(colors.New("one\ntwo"))
	if !strings.HasPrefix(multi.Plain(), `one\two`) {
		t.Fatalf("multi-line options should fold onto one row, got %q", multi.Plain())
	}
}

func TestShortenElidesMiddle(t *testing.T) {
	c := colors.New("abcdefghijklmnopqrstuvwxyz")
	got := shorten(c, 12)
	plain := got.Plain()
	if len(plain) > 12 {
		t.Fatalf("shortened text too long: %q", plain)
	}
	if !strings.HasPrefix(plain, "abcd") || !strings.HasSuffix(plain, "vwxyz") {
		t.Fatalf("expected head...tail, got %q", plain)
	}
	if !strings.Contains(plain, "...") {
		t.Fatalf("expected ellipsis, got %q", plain)
	}
}

func TestDecorateMarksActiveRow(t *testing.T) {
	w := newTestWindow(t, numberedOptions(100), 10, false)
	active := ansi.Strip(w.decorate(colors.New("item"), rowFlags{active: true}))
	if !strings.Contains(active, ">item") {
		t.Fatalf("expected active marker, got %q", active)
	}
	idle := ansi.Strip(w.decorate(colors.New("item"), rowFlags{}))
	if strings.Contains(idle, ">") {
		t.Fatalf("unexpected marker on idle row: %q", idle)
	}
}

func TestDecorateScrollMarkers(t *testing.T) {
	w := newTestWindow(t, numberedOptions(100), 10, false)
	for i := 0; i < 15; i++ {
		press(t, w, "down")
	}
	top := ansi.Strip(w.decorate(colors.New("item"), w.flagsFor(0)))
	if !strings.HasPrefix(top, "^") {
		t.Fatalf("expected scroll-up marker, got %q", top)
	}
	bottom := ansi.Strip(w.decorate(colors.New("item"), w.flagsFor(w.height-1)))
	if !strings.HasPrefix(bottom, "V") {
		t.Fatalf("expected scroll-down marker, got %q", bottom)
	}
	middle := ansi.Strip(w.decorate(colors.New("item"), w.flagsFor(3)))
	if strings.HasPrefix(middle, "^") || strings.HasPrefix(middle, "V") {
		t.Fatalf("unexpected scroll marker mid-window: %q", middle)
	}
}

func TestDecorateSelectionMark(t *testing.T) {
	w := newTestWindow(t, numberedOptions(5), 10, true)
	marked := ansi.Strip(w.decorate(colors.New("item"), rowFlags{selected: true, markable: true}))
	if !strings.Contains(marked, "*") {
		t.Fatalf("expected selection mark, got %q", marked)
	}
	unmarked := ansi.Strip(w.decorate(colors.New("item"), rowFlags{markable: true}))
	if !strings.Contains(unmarked, "-") {
		t.Fatalf("expected markable placeholder, got %q", unmarked)
	}
}

func TestWrapTitleContinuation(t *testing.T) {
	w := newTestWindow(t, numberedOptions(3), 10, false)
	long := strings.Repeat("x", 50)
	lines := w.wrapTitle(colors.New(long), 30)
	if len(lines) < 2 {
		t.Fatalf("expected the title to wrap, got %d line(s)", len(lines))
	}
	if !strings.HasSuffix(lines[0].Plain(), "↩") {
		t.Fatalf("expected continuation suffix, got %q", lines[0].Plain())
	}
	if !strings.HasPrefix(lines[1].Plain(), "↪") {
		t.Fatalf("expected continuation prefix, got %q", lines[1].Plain())
	}
	var joined strings.Builder
	for _, l := range lines {
		joined.WriteString(strings.Trim(l.Plain(), "↩↪"))
	}
	if joined.String() != long {
		t.Fatalf("wrapping must not lose text, got %q", joined.String())
	}
}

func TestWrapTitleKeepsIndent(t *testing.T) {
	w := newTestWindow(t, numberedOptions(3), 10, false)
	lines := w.wrapTitle(colors.New("    "+strings.Repeat("y", 40)), 30)
	for i, l := range lines {
		if !strings.HasPrefix(l.Plain(), "    ") {
			t.Fatalf("line %d lost its indentation: %q", i, l.Plain())
		}
	}
}

func TestCountdownTitle(t *testing.T) {
	w := newTestWindow(t, numberedOptions(3), 10, false)
	if got := w.countdownTitle("Pick"); got != "Pick" {
		t.Fatalf("no deadline, title must pass through: %q", got)
	}

	w.deadline = time.Now().Add(30 * time.Second)
	if got := w.countdownTitle("Pick"); !strings.Contains(got, "DARK_YELLOW<<") {
		t.Fatalf("expected a calm countdown, got %q", got)
	}
	w.deadline = time.Now().Add(8 * time.Second)
	if got := w.countdownTitle("Pick"); !strings.Contains(got, "YELLOW<<") {
		t.Fatalf("expected a warning countdown, got %q", got)
	}
	w.deadline = time.Now().Add(3 * time.Second)
	if got := w.countdownTitle("Pick"); !strings.Contains(got, "RED<<") {
		t.Fatalf("expected an urgent countdown, got %q", got)
	}
}

func TestTitleBlockPadding(t *testing.T) {
	w := newTestWindow(t, numberedOptions(3), 10, false)
	w.buildTitle("Pick one", "WHITE<<hint>>", 80)
	if w.titleHeight != 2 {
		t.Fatalf("expected 2 title lines, got %d", w.titleHeight)
	}
	for _, line := range strings.Split(w.title.Plain(), "\n") {
		if !strings.HasPrefix(line, titlePad) {
			t.Fatalf("title line missing pad: %q", line)
		}
	}
}

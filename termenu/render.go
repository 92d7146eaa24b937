package termenu

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/weka/termenu/ansi"
	"github.com/weka/termenu/colors"
)

const titlePad = "  "

var leadingSpaceRE = regexp.MustCompile(`^\s*`)

// countdownTitle appends the remaining time to the title when a deadline
// is armed, turning from dark yellow to red as it runs out.
func (w *Window) countdownTitle(title string) string {
	if w.deadline.IsZero() {
		return title
	}
	left := time.Until(w.deadline)
	if left < 0 {
		left = 0
	}
	secs := left.Seconds()
	var tag string
	switch {
	case secs <= 5:
		tag = fmt.Sprintf("RED<<%.1fs left>>", secs)
	case secs < 11:
		tag = fmt.Sprintf("YELLOW<<%ds left>>", int(secs))
	default:
		tag = fmt.Sprintf("DARK_YELLOW<<%ds left>>", int(secs))
	}
	return fmt.Sprintf("%s (%s)", title, tag)
}

// buildTitle lays out the title block: countdown, header line, wrapping
// with continuation glyphs, and the left pad.
func (w *Window) buildTitle(title, header string, termWidth int) {
	title = w.countdownTitle(title)
	if header != "" {
		title = title + "\n" + strings.TrimRight(header, "\n")
	}
	lines := w.wrapTitle(colors.New(title), termWidth-len(titlePad))
	raws := make([]string, len(lines))
	for i, l := range lines {
		raws[i] = titlePad + l.Raw()
	}
	w.title = colors.New(strings.Join(raws, "\n"))
	w.titleHeight = len(lines)
}

// wrapTitle breaks long title lines at the terminal edge, keeping the
// line's indentation and marking the break with continuation glyphs.
func (w *Window) wrapTitle(title colors.Colorized, width int) []colors.Colorized {
	if width < 8 {
		width = 8
	}
	prefix := colors.New(w.glyphs.ContinuationPrefix)
	suffix := colors.New(w.glyphs.ContinuationSuffix)

	var out []colors.Colorized
	for _, line := range title.SplitLines() {
		line = line.ExpandTabs(8)
		if line.Len() <= width {
			out = append(out, line)
			continue
		}
		indent := leadingSpaceRE.FindString(line.Plain())
		line = line.Slice(utf8.RuneCountInString(indent), line.Len())
		cont := false
		for line.Len() > 0 {
			avail := width - utf8.RuneCountInString(indent) - suffix.Len()
			if cont {
				avail -= prefix.Len()
				line = prefix.Concat(line)
			}
			if avail < 1 {
				avail = 1
			}
			chunk := colors.New(indent).Concat(line.Slice(0, avail))
			line = line.Slice(avail, line.Len())
			if line.Len() > 0 {
				chunk = chunk.Concat(suffix)
			}
			out = append(out, chunk)
			cont = true
		}
	}
	return out
}

// computeWidth fixes the rendered option width for this window: the
// longest option, capped by the terminal minus row decorations.
func (w *Window) computeWidth(termWidth int) {
	maxw := termWidth
	if w.maxWidth > 0 && w.maxWidth < maxw {
		maxw = w.maxWidth
	}
	longest := 0
	for _, o := range w.all {
		if n := o.Text.Len(); n > longest {
			longest = n
		}
	}
	w.width = maxw - w.decorationWidth()
	if longest < w.width {
		w.width = longest
	}
}

// decorationWidth measures the columns a row spends on markers.
func (w *Window) decorationWidth() int {
	s := w.decorate(colors.Colorized{}, rowFlags{})
	return utf8.RuneCountInString(ansi.Strip(s))
}

// adjustWidth folds multi-line options onto one row and pads or shortens
// them to the window width.
func (w *Window) adjustWidth(text colors.Colorized) colors.Colorized {
	joined := colors.New(`BLACK<<\>>`).Join(text.SplitLines())
	width := w.width
	if width < 8 {
		width = 8
	}
	if joined.Len() > width {
		joined = shorten(joined, width)
	}
	if joined.Len() < width {
		joined = joined.Ljust(width)
	}
	return joined
}

// shorten elides the middle of the text, keeping both ends visible.
func shorten(c colors.Colorized, width int) colors.Colorized {
	n := c.Len()
	if n <= width || width < 4 {
		return c
	}
	head := width/2 - 2
	tail := width/2 - 1
	return c.Slice(0, head).
		Concat(colors.New("...")).
		Concat(c.Slice(n-tail, n))
}

type rowFlags struct {
	active      bool
	selected    bool
	markable    bool
	moreAbove   bool
	moreBelow   bool
	highlighted bool
}

func (w *Window) flagsFor(i int) rowFlags {
	o := w.options[w.scroll+i]
	f := rowFlags{
		active:    i == w.cursor,
		selected:  o.Selected,
		markable:  w.multiselect && o.IsMarkable(),
		moreAbove: w.scroll > 0 && i == 0,
		moreBelow: w.scroll+w.height < len(w.options) && i == w.height-1,
	}
	f.highlighted = w.highlighted && f.selected
	return f
}

// glyph renders a marker: markup expands through the color model, bare
// text through the given style.
func glyph(g string, style *lipgloss.Style) string {
	if colors.HasMarkup(g) {
		return colors.New(g).String()
	}
	if style != nil {
		return style.Render(g)
	}
	return g
}

// decorate turns a width-adjusted option into its final screen row:
// scroll marker, selection mark, active marker, text.
func (w *Window) decorate(text colors.Colorized, f rowFlags) string {
	mark := " "
	if f.markable {
		mark = glyph(w.glyphs.SelectableItem, nil)
	}
	if f.selected {
		mark = glyph(w.glyphs.SelectedItem, nil)
	}
	active := "  "
	if f.active {
		active = glyph(w.glyphs.ActiveItem, nil)
	}

	var row string
	if f.highlighted {
		plain := ansi.Strip(mark+active) + text.Plain()
		row = ansi.Colorize(plain, "cyan", "", true)
	} else {
		row = mark + active + text.String()
	}

	scroll := " "
	switch {
	case f.moreAbove:
		scroll = glyph(w.glyphs.ScrollUp, w.styles.ScrollMarker)
	case f.moreBelow:
		scroll = glyph(w.glyphs.ScrollDown, w.styles.ScrollMarker)
	}
	return scroll + " " + row
}

// printMenu draws the title, the visible rows and the filter footer,
// rewriting only rows whose rendering changed since the last pass.
func (w *Window) printMenu() {
	w.screen.Write("\r")
	if w.titleHeight > 0 {
		w.screen.Write(w.title.String() + "\n")
	}
	visible := w.window()
	for i, o := range visible {
		line := w.decorate(w.adjustWidth(o.Text), w.flagsFor(i))
		if cached, ok := w.lineCache[i]; ok && cached == line {
			w.screen.Down(1)
			continue
		}
		w.screen.Write(line + "\n")
		w.lineCache[i] = line
	}
	for i := len(visible); i < w.height; i++ {
		delete(w.lineCache, i)
		w.screen.ClearEOL()
		w.screen.Write("\n")
	}
	w.printFooter()
	w.screen.ClearEOL()
}

// printFooter shows the filter state: a slash (backslash when negated),
// the mode name when not the default, and the terms.
func (w *Window) printFooter() {
	if w.filter == nil {
		return
	}
	mode := w.FilterMode()
	mark := w.styles.FilterAnd.Render("/")
	if mode == "nand" || mode == "nor" {
		mark = w.styles.FilterNegated.Render(`\`)
	}
	prefix := ""
	if mode != "and" {
		prefix = w.styles.Footer.Render("(" + mode + ") ")
	}
	terms := strings.Split(string(w.filter), ",")
	for i, t := range terms {
		terms[i] = w.styles.FilterTerm.Render(t)
	}
	w.screen.Write(prefix + mark + " " + strings.Join(terms, w.styles.Footer.Render(" , ")))
	w.screen.ShowCursor()
}

// gotoTop puts the cursor back on the first title row for a redraw.
func (w *Window) gotoTop() {
	w.screen.RestorePosition()
	w.screen.Up(w.height)
	if w.titleHeight > 0 {
		w.screen.Up(w.titleHeight)
	}
}

// clearMenu erases everything the window drew.
func (w *Window) clearMenu() {
	w.screen.RestorePosition()
	for i := 0; i < w.height+w.titleHeight; i++ {
		w.screen.ClearEOL()
		w.screen.Up(1)
	}
	w.screen.ClearEOL()
	w.screen.Write("\r")
}

// ClearMenu erases the window from the screen. Only needed by callers
// that disable AutoClear.
func (w *Window) ClearMenu() {
	w.clearMenu()
}

package termenu

import (
	"fmt"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/weka/termenu/internal/logging/events"
)

// Filter modes, cycled with ctrl-/. The comma splits the filter text into
// terms; "and" keeps options containing every term, "or" any term, and the
// n-variants invert them. "fuzzy" keeps options every term fuzzy-matches.
var filterModes = []string{"and", "nand", "or", "nor", "fuzzy"}

// FilterMode returns the active mode name.
func (w *Window) FilterMode() string {
	return filterModes[w.filterMode]
}

// FilterText returns the raw filter text, or "" when filtering is off.
func (w *Window) FilterText() string {
	return string(w.filter)
}

// filterTerms splits the filter text into distinct lower-cased terms.
func (w *Window) filterTerms() []string {
	if len(w.filter) == 0 {
		return nil
	}
	seen := map[string]bool{}
	var terms []string
	for _, t := range strings.Split(strings.ToLower(string(w.filter)), ",") {
		if t != "" && !seen[t] {
			seen[t] = true
			terms = append(terms, t)
		}
	}
	return terms
}

// matcher builds the visibility predicate for the current terms and mode.
// An empty term set is permissive under every mode.
func (w *Window) matcher() func(*Option) bool {
	terms := w.filterTerms()
	if len(terms) == 0 {
		return func(*Option) bool { return true }
	}
	contains := func(key string) (all, any bool) {
		all, any = true, false
		for _, t := range terms {
			if strings.Contains(key, t) {
				any = true
			} else {
				all = false
			}
		}
		return all, any
	}
	mode := w.FilterMode()
	return func(o *Option) bool {
		key := o.filterKey()
		switch mode {
		case "and":
			all, _ := contains(key)
			return all
		case "nand":
			all, _ := contains(key)
			return !all
		case "or":
			_, any := contains(key)
			return any
		case "nor":
			_, any := contains(key)
			return !any
		case "fuzzy":
			for _, t := range terms {
				if !fuzzy.MatchNormalizedFold(t, key) {
					return false
				}
			}
			return true
		}
		return true
	}
}

// refilter recomputes the visible option list, scrolls back to the top and
// puts the cursor on the first real match. Marks and the active result are
// re-applied afterwards where they survive.
func (w *Window) refilter() {
	active, selected, preserve := w.snapshotSelection()

	w.lineCache = map[int]string{}
	match := w.matcher()
	terms := w.filterTerms()

	var visible []*Option
	for _, o := range w.all {
		if o.ShowAlways || match(o) {
			visible = append(visible, o)
		}
	}
	w.options = visible
	w.cursor, w.scroll = 0, 0

	first := -1
	for i, o := range visible {
		if !o.ShowAlways && match(o) {
			first = i
			break
		}
	}
	if first >= 0 {
		w.isEmpty = false
		for i := 0; i < first; i++ {
			w.onDown()
		}
	} else {
		w.isEmpty = true
		w.options = append(w.options, w.emptyOption(terms))
	}
	events.Filter.Changed(string(w.filter), w.FilterMode(), len(visible))

	if preserve {
		w.restoreSelection(active, selected)
	}
}

// emptyOption is the placeholder row shown when nothing matches.
func (w *Window) emptyOption(terms []string) *Option {
	quoted := make([]string, len(terms))
	for i, t := range terms {
		quoted[i] = "'" + t + "'"
	}
	text := fmt.Sprintf(" (No match for RED<<%s>>; WHITE@{<ESC>}@ to reset filter)",
		strings.Join(quoted, " , "))
	o := NewOption(text, nil)
	o.Selectable = false
	o.Markable = false
	return o
}

// appendFilter adds one typed character to the filter text. A leading
// space is ignored so the bare space key stays inert outside filtering.
func (w *Window) appendFilter(r rune) {
	if r == ' ' && len(w.filter) == 0 {
		return
	}
	w.filter = append(w.filter, r)
	w.refilter()
}

// backspaceFilter removes the last typed character. The filter stays
// armed even when its text becomes empty; esc disarms it.
func (w *Window) backspaceFilter() {
	if len(w.filter) == 0 {
		return
	}
	w.filter = w.filter[:len(w.filter)-1]
	w.refilter()
}

// popFilterTerm drops the last comma-separated term; dropping the last
// one disarms the filter and resets the mode.
func (w *Window) popFilterTerm() {
	terms := strings.Split(string(w.filter), ",")
	terms = terms[:len(terms)-1]
	if len(terms) == 0 {
		w.filter = nil
		w.filterMode = 0
	} else {
		w.filter = []rune(strings.Join(terms, ","))
	}
	w.refilter()
}

// cycleFilterMode advances to the next mode; inert without filter text.
func (w *Window) cycleFilterMode() {
	if len(w.filter) == 0 {
		return
	}
	w.filterMode = (w.filterMode + 1) % len(filterModes)
	w.refilter()
}

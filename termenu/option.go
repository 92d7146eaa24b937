// Package termenu implements the scrollable, filterable selection window
// at the heart of the menu engine: cursor and scroll state over a dynamic
// option list, comma-separated term filtering with multiple modes,
// multiselect marking, and markup-aware rendering.
package termenu

import (
	"fmt"
	"strings"

	"github.com/weka/termenu/ansi"
	"github.com/weka/termenu/colors"
)

// Option is one selectable menu entry. Result values are compared by
// equality when selections are preserved across rebuilds, so they must be
// comparable.
type Option struct {
	Text     colors.Colorized
	Result   interface{}
	Selected bool

	// Selectable entries can be activated with enter; markable entries can
	// additionally carry a selection mark under multiselect.
	Selectable bool
	Markable   bool

	// ShowAlways entries bypass filtering but are never auto-activated
	// unless they match the filter on their own.
	ShowAlways bool

	// Header entries label a group; they are shown but never selected.
	Header bool

	// FilterText overrides the text the filter matches against.
	FilterText string

	filterText string
}

// NewOption builds an Option from markup text and a result value. String
// results are stripped of escape codes so they compare cleanly.
func NewOption(text string, result interface{}) *Option {
	if s, ok := result.(string); ok {
		result = ansi.Decolorize(s)
	}
	return &Option{
		Text:       colors.New(text),
		Result:     result,
		Selectable: true,
		Markable:   true,
	}
}

// Text builds an Option whose result is its own markup text.
func Text(text string) *Option {
	return NewOption(text, text)
}

// Separator returns a non-selectable horizontal rule entry.
func Separator() *Option {
	o := NewOption(fmt.Sprintf("BLACK<<%s>>", strings.Repeat("-", 80)), true)
	o.Selectable = false
	o.Markable = false
	return o
}

// IsMarkable reports whether the option may carry a selection mark.
func (o *Option) IsMarkable() bool {
	return o.Markable && o.Selectable
}

// filterKey returns the lower-cased text the filter matches against.
func (o *Option) filterKey() string {
	if o.filterText == "" {
		src := o.FilterText
		if src == "" {
			src = o.Text.Plain()
		}
		o.filterText = strings.ToLower(src)
	}
	return o.filterText
}

// OptionGroup declares a header with the options listed under it.
type OptionGroup struct {
	Header  string
	Options []*Option
}

// Flatten expands groups into a single option list with header entries.
func Flatten(groups []OptionGroup) []*Option {
	var out []*Option
	for _, g := range groups {
		h := NewOption(g.Header, nil)
		h.Selectable = false
		h.Markable = false
		h.ShowAlways = true
		h.Header = true
		out = append(out, h)
		out = append(out, g.Options...)
	}
	return out
}

// Selection is the outcome of showing a window.
type Selection struct {
	Values  []interface{}
	Aborted bool
}

// Empty reports whether nothing was selected.
func (s Selection) Empty() bool {
	return len(s.Values) == 0
}

// Value returns the first selected value, or nil.
func (s Selection) Value() interface{} {
	if len(s.Values) == 0 {
		return nil
	}
	return s.Values[0]
}

// Package app stacks termenu windows into a hierarchical menu
// application: declared menus become frames, selections descend into
// submenus or run actions, and typed signals travel back up the stack.
package app

import (
	"time"

	"github.com/weka/termenu/keyboard"
	"github.com/weka/termenu/termenu"
)

// Action is a callable menu item. A non-nil return value unwinds the
// whole stack and becomes the session's result; returning a signal error
// navigates instead.
type Action func(s *Session) (interface{}, error)

// SelectionAction is an operation offered on a finished selection. When a
// menu declares any, selecting items opens a second menu of these instead
// of evaluating the items directly.
type SelectionAction struct {
	Name string
	Run  func(s *Session, sel termenu.Selection) (interface{}, error)
}

// Menu declares one frame of the application. All fields are optional
// except a source of items: either Items or Submenus.
type Menu struct {
	// Name identifies the menu and doubles as its default title and its
	// default entry text in the parent menu.
	Name string

	// OptionName overrides the entry text (may carry markup).
	OptionName string

	// Title supplies a dynamic title.
	Title func() string

	// Banner is printed under the title, above the options.
	Banner func() string

	// Items builds the option list. Option results may be *Menu values
	// (descend), Action values (run), or plain values (returned as the
	// session result).
	Items func(s *Session) ([]*termenu.Option, error)

	// Submenus is the static item source used when Items is nil.
	Submenus []*Menu

	// Actions are offered on the selection instead of evaluating it.
	Actions []SelectionAction

	// SelectionActions overrides Actions per selection.
	SelectionActions func(s *Session, sel termenu.Selection) []SelectionAction

	// SelectionTitle names the action menu for a selection.
	SelectionTitle func(sel termenu.Selection) string

	// OnSelected replaces the default selection handling entirely.
	OnSelected func(s *Session, sel termenu.Selection) error

	// OnKey adds key hooks to the frame's window.
	OnKey map[keyboard.Key]termenu.Hook

	// Help replaces the built-in help screen.
	Help func(s *Session) error

	Default     interface{}
	Multiselect bool
	Fullscreen  bool
	Timeout     time.Duration
	Heartbeat   time.Duration
	Height      int
	Width       int
}

func (m *Menu) title() string {
	if m.Title != nil {
		return m.Title()
	}
	return m.Name
}

func (m *Menu) optionName() string {
	if m.OptionName != "" {
		return m.OptionName
	}
	return m.Name
}

// Submenu finds a declared submenu by name.
func (m *Menu) Submenu(name string) (*Menu, bool) {
	for _, sub := range m.Submenus {
		if sub.Name == name {
			return sub, true
		}
	}
	return nil, false
}

// items builds the frame's options from Items or Submenus.
func (m *Menu) items(s *Session) ([]*termenu.Option, error) {
	if m.Items != nil {
		return m.Items(s)
	}
	options := make([]*termenu.Option, 0, len(m.Submenus))
	for _, sub := range m.Submenus {
		options = append(options, termenu.NewOption(sub.optionName(), sub))
	}
	return options, nil
}

// heartbeat picks the frame's idle interval: the declared one, or one
// second when a timeout needs its countdown redrawn.
func (m *Menu) heartbeat() time.Duration {
	if m.Heartbeat > 0 {
		return m.Heartbeat
	}
	if m.Timeout > 0 {
		return time.Second
	}
	return 0
}

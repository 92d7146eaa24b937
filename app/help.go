package app

import (
	"strings"

	"github.com/weka/termenu/colors"
)

var helpText = strings.TrimLeft(`
Navigating the menu:
    Use the WHITE@{arrow}@ keys to move, WHITE@{<ENTER>}@ to select.
    WHITE@{<PgUp>}@/WHITE@{<PgDn>}@/WHITE@{<Home>}@/WHITE@{<End>}@ jump around long menus.

Filtering:
    Just type to filter the menu; a WHITE@{,}@ separates filter terms.
    WHITE@{<CTRL-/>}@ cycles the filter mode (and/nand/or/nor/fuzzy).
    WHITE@{<ESC>}@ drops the last filter term.

Selecting multiple items:
    WHITE@{<INS>}@ (or WHITE@{`+"`"+`}@) marks the current item, WHITE@{*}@ marks all.
    WHITE@{<ESC>}@ clears the marks; WHITE@{<ENTER>}@ accepts them.

Other keys:
    WHITE@{<F5>}@ rebuilds the current menu.
    WHITE@{<ESC>}@ with nothing to clear goes back; WHITE@{<CTRL-C>}@ quits.
`, "\n")

func colorize(text string) string {
	return colors.ColorizeByPatterns(text, false)
}

// showHelp presents the menu's help screen, or the built-in key summary.
func (s *Session) showHelp(m *Menu) error {
	if m.Help != nil {
		return m.Help(s)
	}
	s.screen.Write("\n" + colorize(helpText) + "\n")
	_, err := s.WaitForKeys("(Hit any key to continue)")
	return err
}

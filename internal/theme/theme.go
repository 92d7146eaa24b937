// Package theme holds the Lip Gloss styles shared by the menu renderer.
package theme

import "github.com/charmbracelet/lipgloss"

// Styles describes reusable styles for the parts of a menu that are not
// user-supplied markup: the scroll markers and the filter footer.
type Styles struct {
	ScrollMarker  *lipgloss.Style
	Footer        *lipgloss.Style
	FilterTerm    *lipgloss.Style
	FilterAnd     *lipgloss.Style
	FilterNegated *lipgloss.Style
}

var defaultStyles = Styles{
	ScrollMarker: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	),
	Footer: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	FilterTerm: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	),
	FilterAnd: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	),
	FilterNegated: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	),
}

var current = defaultStyles

// Current returns the active style set.
func Current() Styles {
	return current
}

// Set replaces the active style set; nil fields keep their defaults.
func Set(s Styles) {
	if s.ScrollMarker == nil {
		s.ScrollMarker = defaultStyles.ScrollMarker
	}
	if s.Footer == nil {
		s.Footer = defaultStyles.Footer
	}
	if s.FilterTerm == nil {
		s.FilterTerm = defaultStyles.FilterTerm
	}
	if s.FilterAnd == nil {
		s.FilterAnd = defaultStyles.FilterAnd
	}
	if s.FilterNegated == nil {
		s.FilterNegated = defaultStyles.FilterNegated
	}
	current = s
}

func ptr(s lipgloss.Style) *lipgloss.Style {
	return &s
}

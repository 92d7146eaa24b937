package theme

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestSetFillsNilFieldsWithDefaults(t *testing.T) {
	prev := Current()
	t.Cleanup(func() { Set(prev) })

	custom := lipgloss.NewStyle().Bold(true)
	Set(Styles{ScrollMarker: &custom})

	got := Current()
	if got.ScrollMarker != &custom {
		t.Fatal("expected the custom scroll marker style to be kept")
	}
	if got.Footer == nil || got.FilterTerm == nil || got.FilterAnd == nil || got.FilterNegated == nil {
		t.Fatalf("expected nil fields to fall back to defaults, got %+v", got)
	}
}

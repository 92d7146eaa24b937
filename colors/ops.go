package colors

import (
	"strings"
	"unicode"
	"unicode/utf8"

	xansi "github.com/charmbracelet/x/ansi"
)

// Len returns the number of runes in the plain projection.
func (c Colorized) Len() int {
	return utf8.RuneCountInString(c.plain)
}

// Width returns the display width of the plain projection in terminal
// cells.
func (c Colorized) Width() int {
	return xansi.StringWidth(c.plain)
}

// Slice returns the sub-text whose plain projection equals plain[start:stop]
// (rune offsets), preserving token boundaries and re-wrapping styling only
// around the retained text.
func (c Colorized) Slice(start, stop int) Colorized {
	if start < 0 {
		start = 0
	}
	if n := c.Len(); stop > n {
		stop = n
	}
	var kept []Token
	cursor := 0
	for _, t := range c.tokens {
		runes := []rune(t.Text)
		lo := start - cursor
		if lo < 0 {
			lo = 0
		}
		hi := stop - cursor
		if hi > len(runes) {
			hi = len(runes)
		}
		if lo < len(runes) && hi > lo {
			kept = append(kept, Token{Text: string(runes[lo:hi]), Name: t.Name})
		}
		cursor += len(runes)
		if cursor >= stop {
			break
		}
	}
	return fromTokens(kept)
}

// Concat joins two values, keeping each side's styling.
func (c Colorized) Concat(other Colorized) Colorized {
	return New(c.Raw() + other.Raw())
}

// Join concatenates parts with c as the separator.
func (c Colorized) Join(parts []Colorized) Colorized {
	raws := make([]string, len(parts))
	for i, p := range parts {
		raws[i] = p.Raw()
	}
	return New(strings.Join(raws, c.Raw()))
}

func (c Colorized) mapTokens(f func(string) string) Colorized {
	mapped := make([]Token, 0, len(c.tokens))
	for _, t := range c.tokens {
		if t.Text == "" {
			continue
		}
		mapped = append(mapped, Token{Text: f(t.Text), Name: t.Name})
	}
	return fromTokens(mapped)
}

// Upper folds the text to upper case, keeping styling.
func (c Colorized) Upper() Colorized {
	return c.mapTokens(strings.ToUpper)
}

// Lower folds the text to lower case, keeping styling.
func (c Colorized) Lower() Colorized {
	return c.mapTokens(strings.ToLower)
}

// Replace substitutes old with new inside every token.
func (c Colorized) Replace(old, new string) Colorized {
	return c.mapTokens(func(s string) string { return strings.ReplaceAll(s, old, new) })
}

// ExpandTabs replaces tabs with the given number of spaces.
func (c Colorized) ExpandTabs(width int) Colorized {
	if width <= 0 {
		width = 8
	}
	pad := strings.Repeat(" ", width)
	return c.mapTokens(func(s string) string { return strings.ReplaceAll(s, "\t", pad) })
}

// Ljust pads on the right with spaces up to width runes.
func (c Colorized) Ljust(width int) Colorized {
	pad := width - c.Len()
	if pad <= 0 {
		return c
	}
	return New(c.Raw() + strings.Repeat(" ", pad))
}

// Rjust pads on the left with spaces up to width runes.
func (c Colorized) Rjust(width int) Colorized {
	pad := width - c.Len()
	if pad <= 0 {
		return c
	}
	return New(strings.Repeat(" ", pad) + c.Raw())
}

// Center pads both sides with spaces up to width runes, the extra space
// going to the right.
func (c Colorized) Center(width int) Colorized {
	pad := width - c.Len()
	if pad <= 0 {
		return c
	}
	left := pad / 2
	return New(strings.Repeat(" ", left) + c.Raw() + strings.Repeat(" ", pad-left))
}

// parts maps substrings of the plain projection, in order, back to styled
// slices.
func (c Colorized) parts(plainParts []string) []Colorized {
	res := make([]Colorized, 0, len(plainParts))
	cursor := 0
	for _, part := range plainParts {
		idx := strings.Index(c.plain[cursor:], part)
		if idx < 0 {
			continue
		}
		byteStart := cursor + idx
		runeStart := utf8.RuneCountInString(c.plain[:byteStart])
		res = append(res, c.Slice(runeStart, runeStart+utf8.RuneCountInString(part)))
		cursor = byteStart + len(part)
	}
	return res
}

// Split divides the text around sep, styling preserved per part.
func (c Colorized) Split(sep string) []Colorized {
	return c.parts(strings.Split(c.plain, sep))
}

// Fields splits the text around runs of whitespace.
func (c Colorized) Fields() []Colorized {
	return c.parts(strings.Fields(c.plain))
}

// SplitLines divides the text on newlines; a trailing newline yields no
// empty final part.
func (c Colorized) SplitLines() []Colorized {
	plain := strings.TrimSuffix(c.plain, "\n")
	if plain == "" {
		return nil
	}
	return c.parts(strings.Split(plain, "\n"))
}

// Strip trims surrounding whitespace, keeping interior styling.
func (c Colorized) Strip() Colorized {
	return c.parts([]string{strings.TrimSpace(c.plain)})[0]
}

// LStrip trims leading whitespace.
func (c Colorized) LStrip() Colorized {
	return c.parts([]string{strings.TrimLeftFunc(c.plain, unicode.IsSpace)})[0]
}

// RStrip trims trailing whitespace.
func (c Colorized) RStrip() Colorized {
	return c.parts([]string{strings.TrimRightFunc(c.plain, unicode.IsSpace)})[0]
}

// Package colors implements the markup-aware text model used throughout
// the menu engine. A Colorized value parses strings such as "RED<<text>>",
// "RED(WHITE)<<text>>" or "RED@{text}@" into a token list and keeps three
// projections in sync: the raw markup, the plain display text, and the
// escape-coded rendering. All measurement and slicing operates on the
// plain projection, so escape codes never count as characters.
package colors

import (
	"regexp"
	"strings"
	"sync"

	"github.com/weka/termenu/ansi"
)

var (
	// colorSpanRE locates a whole markup span: name, optional background,
	// and the delimited body in either of the two forms.
	colorSpanRE = regexp.MustCompile(`(?s)[A-Z_]+(?:\([^)]+\))?(?:<<.*?>>|@\{.*?\}@)`)

	// coloringRE decomposes a span into its name and delimited body.
	coloringRE = regexp.MustCompile(`(?s)^([A-Z_]+(?:\([^)]+\))?)(<<.*?>>|@\{.*?\}@)$`)

	// colorSpecRE splits a colorizer name into foreground and background.
	colorSpecRE = regexp.MustCompile(`^(\w+)(?:\((.*)\))?`)
)

// Colorizer turns plain text into its escape-coded form for one style name.
type Colorizer func(text string) string

var (
	colorizersMu sync.Mutex
	colorizers   = map[string]Colorizer{}
)

// GetColorizer resolves a colorizer by name, e.g. "red", "DARK_RED" or
// "red(white)". Names are case-insensitive; a DARK_ prefix lowers
// brightness; unknown colors fall back to white on the default background.
// Results are memoized.
func GetColorizer(name string) Colorizer {
	key := strings.ToLower(name)
	colorizersMu.Lock()
	defer colorizersMu.Unlock()
	if c, ok := colorizers[key]; ok {
		return c
	}

	bright := true
	m := colorSpecRE.FindStringSubmatch(key)
	color, background := m[1], m[2]
	if i := strings.LastIndex(color, "_"); i >= 0 {
		if color[:i] == "dark" {
			bright = false
		}
		color = color[i+1:]
	}
	if _, ok := ansi.Colors[color]; !ok {
		color = "white"
	}
	if _, ok := ansi.Colors[background]; !ok {
		background = ""
	}
	fg, bg, br := color, background, bright
	c := func(text string) string { return ansi.Colorize(text, fg, bg, br) }
	colorizers[key] = c
	return c
}

// AddColorizer registers a custom colorizer under the given name.
func AddColorizer(name string, c Colorizer) {
	colorizersMu.Lock()
	colorizers[strings.ToLower(name)] = c
	colorizersMu.Unlock()
}

// Token is one run of text, either plain or tagged with a style name.
type Token struct {
	Text string
	Name string // colorizer name, empty for plain text
}

// Raw reconstructs the token's markup form.
func (t Token) Raw() string {
	if t.Name == "" {
		return t.Text
	}
	prefix, suffix := "<<", ">>"
	if strings.Contains(t.Text, "<<") || strings.Contains(t.Text, ">>") {
		prefix, suffix = "@{", "}@"
	}
	return t.Name + prefix + t.Text + suffix
}

// Render returns the token's escape-coded form.
func (t Token) Render() string {
	if t.Name == "" {
		return t.Text
	}
	return GetColorizer(t.Name)(t.Text)
}

// Colorized is an immutable parsed markup string.
type Colorized struct {
	tokens []Token
	plain  string
}

// New parses markup into a Colorized. Escape codes already present in the
// input are stripped first, so only markup determines styling.
func New(markup string) Colorized {
	markup = ansi.Decolorize(markup)
	var tokens []Token
	last := 0
	for _, span := range colorSpanRE.FindAllStringIndex(markup, -1) {
		if span[0] > last {
			tokens = append(tokens, Token{Text: markup[last:span[0]]})
		}
		m := coloringRE.FindStringSubmatch(markup[span[0]:span[1]])
		name := strings.Trim(m[1], "_")
		body := m[2][2 : len(m[2])-2]
		// multi-line bodies become one colored token per line with plain
		// newline tokens between, so line-based operations stay simple
		for i, line := range strings.Split(body, "\n") {
			if i > 0 {
				tokens = append(tokens, Token{Text: "\n"})
			}
			if line != "" {
				tokens = append(tokens, Token{Text: line, Name: name})
			}
		}
		last = span[1]
	}
	if last < len(markup) {
		tokens = append(tokens, Token{Text: markup[last:]})
	}
	var plain strings.Builder
	for _, t := range tokens {
		plain.WriteString(t.Text)
	}
	return Colorized{tokens: tokens, plain: plain.String()}
}

func fromTokens(tokens []Token) Colorized {
	var raw strings.Builder
	for _, t := range tokens {
		if t.Text == "" {
			continue
		}
		raw.WriteString(t.Raw())
	}
	return New(raw.String())
}

// Tokens returns a copy of the token list.
func (c Colorized) Tokens() []Token {
	return append([]Token(nil), c.tokens...)
}

// Plain returns the display text with all markup removed.
func (c Colorized) Plain() string {
	return c.plain
}

// Raw returns the original markup; parsing it again yields an equal value.
func (c Colorized) Raw() string {
	var b strings.Builder
	for _, t := range c.tokens {
		b.WriteString(t.Raw())
	}
	return b.String()
}

// String renders the escape-coded output form.
func (c Colorized) String() string {
	var b strings.Builder
	for _, t := range c.tokens {
		b.WriteString(t.Render())
	}
	return b.String()
}

// HasMarkup reports whether text contains at least one markup span.
func HasMarkup(text string) bool {
	return colorSpanRE.MatchString(text)
}

// ColorizeByPatterns expands every markup span in text to its escape-coded
// form, leaving the rest untouched. With noColor set the markup is removed
// instead.
func ColorizeByPatterns(text string, noColor bool) string {
	out := colorSpanRE.ReplaceAllStringFunc(text, func(span string) string {
		m := coloringRE.FindStringSubmatch(span)
		body := m[2][2 : len(m[2])-2]
		if noColor {
			return body
		}
		return GetColorizer(strings.Trim(m[1], "_"))(body)
	})
	if noColor {
		out = ansi.Decolorize(out)
	}
	return out
}

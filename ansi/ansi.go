// Package ansi provides the escape-code color table and a cursor/line
// control writer used by the menu engine. It deliberately stays below the
// markup layer in package colors: everything here deals in final escape
// sequences.
package ansi

import (
	"fmt"
	"regexp"
	"strings"

	xansi "github.com/charmbracelet/x/ansi"
)

// Colors maps color names to their ANSI offsets.
var Colors = map[string]int{
	"black":   0,
	"red":     1,
	"green":   2,
	"yellow":  3,
	"blue":    4,
	"magenta": 5,
	"cyan":    6,
	"white":   7,
	"default": 9,
}

var colorCodeRE = regexp.MustCompile(`\x1b\[(\d+)?(;\d+)*;?m`)

func colorCode(name string, offset int) int {
	code, ok := Colors[name]
	if !ok {
		code = Colors["default"]
	}
	return offset + code
}

// Colorize wraps text in color escape codes. Unknown names render as the
// terminal default.
func Colorize(text, color string, background string, bright bool) string {
	b := 0
	if bright {
		b = 1
	}
	return fmt.Sprintf("\x1b[0;%d;%d;%dm%s\x1b[0;m", b, colorCode(color, 30), colorCode(background, 40), text)
}

// Highlight adds a background to text that may already carry color codes,
// re-applying the background after every reset so it survives embedded
// styling.
func Highlight(text, background string) string {
	bkcmd := fmt.Sprintf("\x1b[%dm", colorCode(background, 40))
	const stopcmd = "\x1b[m"
	return bkcmd + strings.ReplaceAll(text, stopcmd, stopcmd+bkcmd) + stopcmd
}

// Decolorize removes SGR color sequences from text.
func Decolorize(text string) string {
	return colorCodeRE.ReplaceAllString(text, "")
}

// Strip removes every escape sequence from text, not only color codes.
func Strip(text string) string {
	return xansi.Strip(text)
}

// Package ascii draws fixed-width text tables for terminal output
package ascii

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Align selects how a cell is padded within its column.
type Align int

const (
	AlignLeft Align = iota
	AlignRight
	AlignCenter
)

// StringWidth returns the display width of a string, accounting for
// multi-width Unicode characters (emoji, CJK, etc.).
func StringWidth(s string) int {
	return runewidth.StringWidth(s)
}

// Pad fills s with spaces up to width display columns. Strings already at or
// past width are returned unchanged.
func Pad(s string, width int, align Align) string {
	fill := width - StringWidth(s)
	if fill <= 0 {
		return s
	}
	switch align {
	case AlignRight:
		return strings.Repeat(" ", fill) + s
	case AlignCenter:
		left := fill / 2
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", fill-left)
	default:
		return s + strings.Repeat(" ", fill)
	}
}

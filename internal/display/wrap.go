// v1
// internal/display/wrap.go
package display

import "strings"

// Wrap lays text out for a fixed character display. Each emitted line is at
// most maxChars long and at most maxLines lines are produced; anything beyond
// the line budget is dropped without an ellipsis or error.
//
// The remainder is emitted whole once it fits. Otherwise the break point is
// the last space at or before position maxChars, exclusive of the space
// itself; when the window holds no space the line is cut hard at maxChars,
// accepting a mid-word break so the display width bound always holds.
func Wrap(text string, maxLines, maxChars int) []string {
	if maxLines <= 0 || maxChars <= 0 || text == "" {
		return nil
	}
	var lines []string
	rest := text
	for len(lines) < maxLines && rest != "" {
		if len(rest) <= maxChars {
			lines = append(lines, rest)
			break
		}
		sp := strings.LastIndexByte(rest[:maxChars+1], ' ')
		if sp < 0 {
			lines = append(lines, rest[:maxChars])
			rest = rest[maxChars:]
			continue
		}
		lines = append(lines, rest[:sp])
		rest = rest[sp+1:]
	}
	return lines
}

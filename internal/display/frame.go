// v1
// internal/display/frame.go
package display

// Frame is the fixed-geometry line buffer a node renders from. It re-runs the
// layout only when the underlying text actually changes, and it always
// exposes exactly maxLines entries so an empty or short text still clears the
// remaining slots on the display.
type Frame struct {
	maxLines int
	maxChars int
	text     string
	lines    []string
}

func NewFrame(maxLines, maxChars int) *Frame {
	f := &Frame{maxLines: maxLines, maxChars: maxChars}
	f.lines = make([]string, maxLines)
	return f
}

// SetText replaces the frame text and reports whether the frame changed.
// Unchanged text is a no-op so callers can feed it every tick.
func (f *Frame) SetText(text string) bool {
	if text == f.text && f.lines != nil {
		return false
	}
	f.text = text
	wrapped := Wrap(text, f.maxLines, f.maxChars)
	lines := make([]string, f.maxLines)
	copy(lines, wrapped)
	f.lines = lines
	return true
}

// Text returns the origin text currently laid out.
func (f *Frame) Text() string { return f.text }

// Lines returns a copy of the frame, always maxLines entries long.
func (f *Frame) Lines() []string {
	out := make([]string, len(f.lines))
	copy(out, f.lines)
	return out
}

package bar

import "strings"

// Segment is one adapter's rendered slot in the bar.
type Segment struct {
	Name       string // adapter identity, e.g. "battery"
	Text       string
	Foreground string // hex color, empty for the renderer default
	Background string
	Padding    int // spaces on each side of Text
	Urgent     bool
}

// Padded returns Text with Padding spaces on both sides.
func (s Segment) Padded() string {
	if s.Padding <= 0 {
		return s.Text
	}
	pad := strings.Repeat(" ", s.Padding)
	return pad + s.Text + pad
}

// Empty reports whether the segment has nothing to display.
func (s Segment) Empty() bool {
	return s.Text == ""
}

package state

import "fmt"

// Color is a single entry from the RTF color table. Auto represents the
// sentinel "auto" color that always occupies index 0 of the table.
type Color struct {
	Auto  bool
	Red   uint8
	Green uint8
	Blue  uint8
	Tint  uint8
	Shade uint8
}

// AutoColor is the sentinel color written into index 0 of every color
// table, and the zero value returned for \cfN / \cbN references that
// resolve to it.
var AutoColor = Color{Auto: true}

func (c Color) String() string {
	if c.Auto {
		return "auto"
	}
	return fmt.Sprintf("#%02x%02x%02x", c.Red, c.Green, c.Blue)
}

// ColorTable is the ordered side table built from a {\colortbl ...} group.
// Entries are stored contiguously from index 0 (the auto sentinel written by
// the table's leading empty record), and a \cfN / \cbN reference is used as
// the entry index directly.
type ColorTable struct {
	entries []Color
}

// NewColorTable returns an empty color table. It holds no entries, not even
// the auto sentinel, until Append is called, so Get(0) on it reports false.
func NewColorTable() *ColorTable {
	return &ColorTable{}
}

// Append adds a color to the end of the table.
func (ct *ColorTable) Append(c Color) {
	ct.entries = append(ct.entries, c)
}

// Len returns the number of entries appended so far.
func (ct *ColorTable) Len() int {
	return len(ct.entries)
}

// Get returns the color at index i and true, or the zero Color and false if
// i is out of range. \cfN / \cbN references index the table directly: the
// writer's index 0 is the auto sentinel stored at entries[0].
func (ct *ColorTable) Get(i int) (Color, bool) {
	if i < 0 || i >= len(ct.entries) {
		return Color{}, false
	}
	return ct.entries[i], true
}

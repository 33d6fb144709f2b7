// Package stylesheet holds the named-style side table built from an RTF
// document's {\stylesheet ...} destination, and consulted whenever a
// \sN, \dsN, \tsN or \csN control word references a style by index.
package stylesheet

import "github.com/dimelords/rtfdom/pkg/state"

// Type distinguishes the four style families an RTF stylesheet entry can
// belong to.
type Type int

const (
	Paragraph Type = iota
	Section
	Table
	Character
)

// Properties is the sparse attribute bag accumulated while parsing one
// stylesheet entry. Only the attributes recognized for the entry's Type
// are ever populated; pointer fields distinguish "not set by this style"
// from an explicit false/zero value, same as state.Frame.
type Properties struct {
	// Paragraph.
	Alignment       *state.Alignment
	PageBreakBefore *bool

	// Character.
	Bold          *bool
	Italic        *bool
	Underline     *bool
	Strikethrough *bool
	FColor        *int
	BColor        *int
}

// Style is one named entry: a display name plus its recognized formatting
// properties.
type Style struct {
	Name       string
	Properties Properties
}

// Stylesheet is the { styleType -> { index -> Style } } side table built
// while parsing a {\stylesheet ...} group.
type Stylesheet struct {
	tables map[Type]map[int]Style
}

// New returns an empty stylesheet.
func New() *Stylesheet {
	return &Stylesheet{tables: make(map[Type]map[int]Style)}
}

// Insert records a fully-parsed style entry, overwriting any previous
// entry at the same (type, index).
func (s *Stylesheet) Insert(t Type, index int, style Style) {
	table, ok := s.tables[t]
	if !ok {
		table = make(map[int]Style)
		s.tables[t] = table
	}
	table[index] = style
}

// Get looks up a style by type and index.
func (s *Stylesheet) Get(t Type, index int) (Style, bool) {
	table, ok := s.tables[t]
	if !ok {
		return Style{}, false
	}
	style, ok := table[index]
	return style, ok
}

// DefaultParagraph returns the paragraph style at index 0, if the
// stylesheet defined one. On finalization of {\stylesheet ...} this
// style's attributes override the document's built-in paragraph defaults.
func (s *Stylesheet) DefaultParagraph() (Style, bool) {
	return s.Get(Paragraph, 0)
}

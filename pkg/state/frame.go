package state

// Frame is one level of the formatting state stack, pushed on '{' and
// popped on '}'. Every public field is a pointer so a Frame can represent
// "this attribute is untouched at this level" (nil) distinctly from
// "this attribute is explicitly set to false/zero" (non-nil pointing at
// the zero value). Stack.Effective walks frames top-down and the first
// non-nil pointer for a given attribute wins.
type Frame struct {
	// Character-run attributes.
	Bold          *bool
	Italic        *bool
	Underline     *bool
	Strikethrough *bool
	FColor        *int
	BColor        *int

	// Paragraph attributes.
	Alignment       *Alignment
	Style           *int
	PageBreakBefore *bool

	// Parser-private flags; never surfaced to DOM builder callbacks.
	GroupSkip      bool
	InField        bool
	InFieldInst    bool
	InFieldRslt    bool
	InStylesheet   bool
	InPict         bool
	InBlipUID      bool
	PictAttributes map[string]int
	BlipUID        string
	StyleType      int
	StyleIndex     int
	StyleName      string
	StyleProps     *Frame
}

// NewFrame returns an empty frame: every public attribute unset, every
// private flag zero.
func NewFrame() *Frame {
	return &Frame{}
}

// Clone returns a shallow copy of f suitable for pushing as a new stack
// level: pointer fields are shared (read-only inheritance) until one of
// them is overwritten by a setter, which replaces the pointer rather than
// mutating the pointee.
func (f *Frame) Clone() *Frame {
	clone := *f
	clone.PictAttributes = nil
	return &clone
}

func boolPtr(b bool) *bool          { return &b }
func intPtr(i int) *int             { return &i }
func alignPtr(a Alignment) *Alignment { return &a }

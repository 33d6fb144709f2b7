package state

import "github.com/dimelords/rtfdom/pkg/common"

// Effective is the resolved, fully-defaulted formatting state at a given
// stack depth: every attribute that every Frame leaves optional is filled
// in here with its document default.
type Effective struct {
	Bold            bool
	Italic          bool
	Underline       bool
	Strikethrough   bool
	FColor          int // -1 means auto/unset
	BColor          int
	Alignment       Alignment
	Style           int // -1 means no named style applied
	PageBreakBefore bool
}

// Stack is the push/pop formatting state stack maintained alongside brace
// depth. Depth 0 is the implicit top-level frame that exists before any
// '{' has been seen; Stack.Len() always equals one plus the number of '{'
// seen minus the number of '}' seen so far.
type Stack struct {
	frames []*Frame
}

// NewStack returns a stack containing a single top-level frame.
func NewStack() *Stack {
	return &Stack{frames: []*Frame{NewFrame()}}
}

// Len reports the current brace depth (1 for the implicit top-level frame
// plus one per open group).
func (s *Stack) Len() int {
	return len(s.frames)
}

// Push opens a new group: a clone of the current top frame is pushed so
// unset attributes keep inheriting from enclosing frames.
func (s *Stack) Push() {
	top := s.frames[len(s.frames)-1]
	s.frames = append(s.frames, top.Clone())
}

// Pop closes the current group. It is an error to pop the implicit
// top-level frame; callers must track brace balance themselves and call
// Pop once per '}'.
func (s *Stack) Pop() error {
	if len(s.frames) <= 1 {
		return common.WrapError("state", "pop", common.ErrUnbalancedBraces)
	}
	s.frames = s.frames[:len(s.frames)-1]
	return nil
}

// Base returns the implicit root frame (depth 0), letting a caller rewrite
// document-wide defaults once the stylesheet has been fully parsed.
func (s *Stack) Base() *Frame {
	return s.frames[0]
}

// Top returns the frame at the current depth for in-place mutation by the
// parser (setting a character or paragraph attribute local to this group).
func (s *Stack) Top() *Frame {
	return s.frames[len(s.frames)-1]
}

// Effective walks the stack top-down and resolves every attribute to its
// first explicitly-set value, falling back to document defaults.
func (s *Stack) Effective() Effective {
	eff := Effective{FColor: -1, BColor: -1, Alignment: AlignLeft, Style: -1}

	// Resolve each attribute independently, topmost frame first, so a
	// value set deep in the stack isn't masked just because a shallower
	// frame set a different attribute.
	var boldSet, italicSet, underlineSet, strikeSet, fcolorSet, bcolorSet, alignSet, styleSet, pbSet bool
	for i := len(s.frames) - 1; i >= 0; i-- {
		f := s.frames[i]
		if !boldSet && f.Bold != nil {
			eff.Bold, boldSet = *f.Bold, true
		}
		if !italicSet && f.Italic != nil {
			eff.Italic, italicSet = *f.Italic, true
		}
		if !underlineSet && f.Underline != nil {
			eff.Underline, underlineSet = *f.Underline, true
		}
		if !strikeSet && f.Strikethrough != nil {
			eff.Strikethrough, strikeSet = *f.Strikethrough, true
		}
		if !fcolorSet && f.FColor != nil {
			eff.FColor, fcolorSet = *f.FColor, true
		}
		if !bcolorSet && f.BColor != nil {
			eff.BColor, bcolorSet = *f.BColor, true
		}
		if !alignSet && f.Alignment != nil {
			eff.Alignment, alignSet = *f.Alignment, true
		}
		if !styleSet && f.Style != nil {
			eff.Style, styleSet = *f.Style, true
		}
		if !pbSet && f.PageBreakBefore != nil {
			eff.PageBreakBefore, pbSet = *f.PageBreakBefore, true
		}
	}
	return eff
}

// SetBold sets the bold attribute local to the current group.
func (s *Stack) SetBold(v bool)          { s.Top().Bold = boolPtr(v) }
func (s *Stack) SetItalic(v bool)        { s.Top().Italic = boolPtr(v) }
func (s *Stack) SetUnderline(v bool)     { s.Top().Underline = boolPtr(v) }
func (s *Stack) SetStrikethrough(v bool) { s.Top().Strikethrough = boolPtr(v) }
func (s *Stack) SetFColor(idx int)         { s.Top().FColor = intPtr(idx) }
func (s *Stack) SetBColor(idx int)         { s.Top().BColor = intPtr(idx) }
func (s *Stack) SetAlignment(a Alignment)  { s.Top().Alignment = alignPtr(a) }
func (s *Stack) SetStyle(idx int)           { s.Top().Style = intPtr(idx) }
func (s *Stack) SetPageBreakBefore(v bool)  { s.Top().PageBreakBefore = boolPtr(v) }

// ResetCharacterDefaults clears every character-run attribute local to the
// current group, the effect of a bare \plain control word. Paragraph
// attributes and private parser flags are left untouched.
func (s *Stack) ResetCharacterDefaults() {
	top := s.Top()
	top.Bold = boolPtr(false)
	top.Italic = boolPtr(false)
	top.Underline = boolPtr(false)
	top.Strikethrough = boolPtr(false)
	top.FColor = intPtr(-1)
	top.BColor = intPtr(-1)
}

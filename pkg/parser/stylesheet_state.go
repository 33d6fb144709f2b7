package parser

import (
	"github.com/dimelords/rtfdom/pkg/state"
	"github.com/dimelords/rtfdom/pkg/stylesheet"
)

// styleEntry accumulates one {\sN | \*\dsN | \*\tsN | \*\csN ... name;}
// record while it is being parsed.
type styleEntry struct {
	styleType stylesheet.Type
	index     int
	name      string
	props     stylesheet.Properties

	haveType, haveIndex, haveName, invalid bool
}

// stylesheetState parses a {\stylesheet ...} destination into p.styles.
type stylesheetState struct {
	cur                styleEntry
	awaitingFirstWord  bool
	awaitingStarTarget bool
}

func newStylesheetState() *stylesheetState {
	return &stylesheetState{}
}

// pendingLookahead reports whether this state is mid-way through resolving
// a \*\dsN/\tsN/\csN style-type lookahead; reaching EOF in this window is
// the one stylesheet failure the spec calls out as fatal.
func (s *stylesheetState) pendingLookahead() bool {
	return s.awaitingStarTarget
}

func (s *stylesheetState) resetEntry() {
	s.cur = styleEntry{}
	s.awaitingFirstWord = true
	s.awaitingStarTarget = false
}

func (s *stylesheetState) OnOpenBrace(p *Parser) {
	if p.relDepth() == 1 {
		s.resetEntry()
	}
}

func (s *stylesheetState) OnCloseBrace(p *Parser, old, newState state.Effective) {
	switch p.relDepth() {
	case 0:
		if s.cur.haveType && s.cur.haveIndex && s.cur.haveName && !s.cur.invalid {
			p.styles.Insert(s.cur.styleType, s.cur.index, stylesheet.Style{
				Name:       s.cur.name,
				Properties: s.cur.props,
			})
		}
	case -1:
		s.finalizeDefaults(p)
	}
}

func (s *stylesheetState) finalizeDefaults(p *Parser) {
	def, ok := p.styles.DefaultParagraph()
	if !ok {
		return
	}
	base := p.stack.Base()
	if def.Properties.Alignment != nil {
		base.Alignment = def.Properties.Alignment
	}
	if def.Properties.PageBreakBefore != nil {
		base.PageBreakBefore = def.Properties.PageBreakBefore
	}
}

func (s *stylesheetState) OnControl(p *Parser, raw, word string, param int, hasParam bool) error {
	if p.relDepth() != 1 || s.cur.invalid {
		return nil
	}

	if s.awaitingFirstWord {
		s.resolveEntryType(word, param)
		return nil
	}

	switch s.cur.styleType {
	case stylesheet.Paragraph:
		s.applyParagraphWord(word)
	case stylesheet.Character:
		s.applyCharacterWord(p, word, param, hasParam)
		// Section and table styles aren't assigned recognized properties yet.
	}
	return nil
}

func (s *stylesheetState) resolveEntryType(word string, param int) {
	if s.awaitingStarTarget {
		switch word {
		case `\ds`:
			s.cur.styleType, s.cur.index, s.cur.haveType, s.cur.haveIndex = stylesheet.Section, param, true, true
		case `\ts`:
			s.cur.styleType, s.cur.index, s.cur.haveType, s.cur.haveIndex = stylesheet.Table, param, true, true
		case `\cs`:
			s.cur.styleType, s.cur.index, s.cur.haveType, s.cur.haveIndex = stylesheet.Character, param, true, true
		default:
			s.cur.invalid = true
		}
		s.awaitingFirstWord, s.awaitingStarTarget = false, false
		return
	}

	switch word {
	case `\s`:
		s.cur.styleType, s.cur.index, s.cur.haveType, s.cur.haveIndex = stylesheet.Paragraph, param, true, true
		s.awaitingFirstWord = false
	case `\*`:
		s.awaitingStarTarget = true
	default:
		s.cur.invalid = true
		s.awaitingFirstWord = false
	}
}

func (s *stylesheetState) applyParagraphWord(word string) {
	switch word {
	case `\pagebb`:
		v := true
		s.cur.props.PageBreakBefore = &v
	case `\ql`:
		setAlign(&s.cur.props, state.AlignLeft)
	case `\qr`:
		setAlign(&s.cur.props, state.AlignRight)
	case `\qc`:
		setAlign(&s.cur.props, state.AlignCenter)
	case `\qd`:
		setAlign(&s.cur.props, state.AlignDistributed)
	case `\qj`:
		setAlign(&s.cur.props, state.AlignJustified)
	case `\qt`:
		setAlign(&s.cur.props, state.AlignThaiDistributed)
	}
}

func setAlign(props *stylesheet.Properties, a state.Alignment) {
	props.Alignment = &a
}

func (s *stylesheetState) applyCharacterWord(p *Parser, word string, param int, hasParam bool) {
	switch word {
	case `\i`:
		v := onOffParam(param, hasParam)
		s.cur.props.Italic = &v
	case `\b`:
		v := onOffParam(param, hasParam)
		s.cur.props.Bold = &v
	case `\ul`:
		v := onOffParam(param, hasParam)
		s.cur.props.Underline = &v
	case `\strike`:
		v := onOffParam(param, hasParam)
		s.cur.props.Strikethrough = &v
	case `\cf`:
		if hasParam {
			if _, ok := p.colors.Get(param); ok {
				idx := param
				s.cur.props.FColor = &idx
			}
		}
	case `\cb`:
		if hasParam {
			if _, ok := p.colors.Get(param); ok {
				idx := param
				s.cur.props.BColor = &idx
			}
		}
	}
}

func (s *stylesheetState) OnCharacter(p *Parser, ch byte) error {
	if p.relDepth() != 1 || s.cur.invalid {
		return nil
	}
	if ch == ';' || ch == '\n' {
		return nil
	}
	s.cur.name += string(rune(ch))
	s.cur.haveName = true
	return nil
}

package parser

import "github.com/dimelords/rtfdom/pkg/state"

// colorTableState parses a {\colortbl ...} destination: a run of
// \red/\green/\blue/\tint/\shade records terminated by ';'. An empty
// record (no color control words seen since the last ';') inserts the
// sentinel auto color.
type colorTableState struct {
	cur     state.Color
	sawWord bool
}

func newColorTableState() *colorTableState {
	return &colorTableState{cur: freshColorEntry()}
}

func freshColorEntry() state.Color {
	return state.Color{Tint: 255, Shade: 255}
}

func (s *colorTableState) OnOpenBrace(p *Parser) {}

func (s *colorTableState) OnCloseBrace(p *Parser, old, newState state.Effective) {}

func (s *colorTableState) OnControl(p *Parser, raw, word string, param int, hasParam bool) error {
	if !hasParam {
		return nil
	}
	switch word {
	case `\red`:
		s.cur.Red, s.sawWord = uint8(param), true
	case `\green`:
		s.cur.Green, s.sawWord = uint8(param), true
	case `\blue`:
		s.cur.Blue, s.sawWord = uint8(param), true
	case `\tint`:
		s.cur.Tint, s.sawWord = uint8(param), true
	case `\shade`:
		s.cur.Shade, s.sawWord = uint8(param), true
	}
	return nil
}

func (s *colorTableState) OnCharacter(p *Parser, ch byte) error {
	if ch != ';' {
		return nil
	}
	if s.sawWord {
		p.colors.Append(s.cur)
	} else {
		p.colors.Append(state.AutoColor)
	}
	s.cur = freshColorEntry()
	s.sawWord = false
	return nil
}

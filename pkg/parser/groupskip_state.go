package parser

import "github.com/dimelords/rtfdom/pkg/state"

// groupSkipState consumes tokens until its governing group closes. It
// emits no events and never alters public attributes; nested groups
// inside the skipped destination don't terminate the skip early because
// they're tracked by the same generic relDepth mechanism every state
// uses.
type groupSkipState struct{}

func (s *groupSkipState) OnOpenBrace(p *Parser) {}

func (s *groupSkipState) OnCloseBrace(p *Parser, old, newState state.Effective) {}

func (s *groupSkipState) OnControl(p *Parser, raw, word string, param int, hasParam bool) error {
	return nil
}

func (s *groupSkipState) OnCharacter(p *Parser, ch byte) error {
	return nil
}

package parser

import (
	"github.com/dimelords/rtfdom/pkg/state"
	"github.com/dimelords/rtfdom/pkg/token"
)

// ParseState is the capability set every parse-state variant implements:
// Main, GroupSkip, Field, Pict, Stylesheet, ColorTable. A state may be
// pushed onto the parser's state-machine stack to interpret a sub-range
// of tokens in a destination-specific context, returning control to its
// caller once its governing brace group closes (detected generically by
// Parser.relDepth dropping below zero).
type ParseState interface {
	OnOpenBrace(p *Parser)
	OnCloseBrace(p *Parser, old, newState state.Effective)
	OnControl(p *Parser, raw, word string, param int, hasParam bool) error
	OnCharacter(p *Parser, ch byte) error
}

var groupSkipWords = map[string]bool{
	`\fonttbl`:           true,
	`\filetbl`:           true,
	`\stylerestrictions`: true,
	`\info`:              true,
}

var groupSkipStarWords = map[string]bool{
	`\generator`:         true,
	`\pgdsctbl`:          true,
	`\mmathPr`:           true,
	`\userprops`:         true,
	`\revtbl`:            true,
	`\rsidtbl`:           true,
	`\listtable`:         true,
	`\listoverridetable`: true,
}

// detectDestination implements the Main-state entry rules of §4.3: given
// the two tokens preceding the current control word, decide whether a new
// destination sub-state should be entered.
func detectDestination(prev2, prev token.Token, word string) (ParseState, bool) {
	if prev.Type == token.OpenBrace && groupSkipWords[word] {
		return &groupSkipState{}, true
	}
	if prev2.Type == token.OpenBrace && prev.Raw == `\*` && groupSkipStarWords[word] {
		return &groupSkipState{}, true
	}
	if prev.Type != token.OpenBrace {
		return nil, false
	}
	switch word {
	case `\stylesheet`:
		return newStylesheetState(), true
	case `\colortbl`:
		return newColorTableState(), true
	case `\field`:
		return newFieldState(), true
	case `\pict`:
		return newPictState(), true
	}
	return nil, false
}

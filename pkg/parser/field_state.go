package parser

import (
	"strings"

	"github.com/dimelords/rtfdom/pkg/state"
)

// fieldState accumulates a field's instruction and result text from its
// {\*\fldinst ...} and {\fldrslt ...} sub-destinations. Content inside
// fldrslt -- including nested braces and control words -- is copied
// verbatim so the client can re-parse it as an independent RTF body.
type fieldState struct {
	fldinst, fldrslt strings.Builder
	inFieldInst      bool
	inFieldRslt      bool
}

func newFieldState() *fieldState {
	return &fieldState{}
}

func (f *fieldState) OnOpenBrace(p *Parser) {
	if f.inFieldRslt {
		f.fldrslt.WriteByte('{')
	}
}

func (f *fieldState) OnCloseBrace(p *Parser, old, newState state.Effective) {
	switch p.relDepth() {
	case -1:
		p.fireField(f.fldinst.String(), f.fldrslt.String())
	case 0:
		f.inFieldInst = false
		f.inFieldRslt = false
	default:
		if f.inFieldRslt {
			f.fldrslt.WriteByte('}')
		}
	}
}

func (f *fieldState) OnControl(p *Parser, raw, word string, param int, hasParam bool) error {
	rd := p.relDepth()

	if rd == 1 {
		switch word {
		case `\fldinst`:
			f.inFieldInst = true
			return nil
		case `\fldrslt`:
			f.inFieldRslt = true
			return nil
		}
	}
	if f.inFieldInst && word == `\*` {
		f.inFieldInst = false
		return nil
	}
	if f.inFieldRslt {
		f.fldrslt.WriteString(raw)
	}
	return nil
}

func (f *fieldState) OnCharacter(p *Parser, ch byte) error {
	switch {
	case f.inFieldInst:
		f.fldinst.WriteByte(ch)
	case f.inFieldRslt:
		f.fldrslt.WriteByte(ch)
	}
	return nil
}

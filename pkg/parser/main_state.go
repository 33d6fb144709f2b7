package parser

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/dimelords/rtfdom/pkg/state"
	"github.com/dimelords/rtfdom/pkg/stylesheet"
)

// mainState is the top-level state, always present at the bottom of the
// parse-state machine stack. It implements the generic control-word
// catalogue of §4.4; every other state replaces this behavior entirely
// rather than falling back to it.
type mainState struct{}

func (m *mainState) OnOpenBrace(p *Parser) {}

func (m *mainState) OnCloseBrace(p *Parser, old, newState state.Effective) {
	p.fireStateChange(old, newState)
}

func (m *mainState) OnCharacter(p *Parser, ch byte) error {
	if ch == '\n' || ch == '\r' {
		return nil
	}
	p.appendText(decodeANSIByte(ch))
	return nil
}

// decodeANSIByte maps a single literal source byte to its rune under
// Windows-1252, the ANSI code page real-world RTF writers emit literal
// high-bit bytes in (§6: "single-byte (ANSI/Windows-1252 by default) with
// \uN/\'HH escapes carrying Unicode"). Plain byte-to-rune casting is wrong for 0x80-0x9F,
// where Windows-1252 diverges from Latin-1 (e.g. 0x96 is an en dash, not
// a C1 control code).
func decodeANSIByte(ch byte) string {
	r := charmap.Windows1252.DecodeByte(ch)
	if r == utf8.RuneError {
		return string(rune(ch))
	}
	return string(r)
}

func (m *mainState) OnControl(p *Parser, raw, word string, param int, hasParam bool) error {
	suppressHex := p.lastWasUnicode && word == `\'`
	if word != `\u` {
		p.lastWasUnicode = false
	}

	switch word {
	case `\\`:
		p.appendText(`\`)
	case `\{`:
		p.appendText(`{`)
	case `\}`:
		p.appendText(`}`)
	case `\~`:
		p.appendText(" ")
	case `\_`:
		p.appendText("‑")
	case `\emspace`:
		p.appendText(" ")
	case `\enspace`:
		p.appendText(" ")
	case `\emdash`:
		p.appendText("—")
	case `\endash`:
		p.appendText("–")
	case `\lquote`:
		p.appendText("‘")
	case `\rquote`:
		p.appendText("’")
	case `\ldblquote`:
		p.appendText("“")
	case `\rdblquote`:
		p.appendText("”")
	case `\bullet`:
		p.appendText("•")
	case `\line`:
		p.appendText("\n")
	case `\tab`:
		p.appendText("\t")

	case `\chdate`, `\chdpl`:
		p.appendText(p.clock().Format("Monday, January 2, 2006"))
	case `\chdpa`:
		p.appendText(p.clock().Format("01/02/2006"))
	case `\chtime`:
		p.appendText(p.clock().Format("03:04:05 PM"))

	case `\u`:
		p.lastWasUnicode = true
		if hasParam {
			p.appendText(string(rune(param)))
		}

	case `\'`:
		if suppressHex {
			return nil
		}
		if hasParam && param >= 0 && param <= 0xff {
			p.appendText(string(rune(param)))
		}

	case `\page`:
		p.firePageBreak()

	case `\pagebb`:
		p.withStateChange(func() { p.stack.SetPageBreakBefore(true) })

	case `\par`:
		p.closeParagraph()
		p.ensureParagraphOpen()

	case `\plain`:
		p.withStateChange(func() { p.stack.ResetCharacterDefaults() })

	case `\ql`:
		p.withStateChange(func() { p.stack.SetAlignment(state.AlignLeft) })
	case `\qr`:
		p.withStateChange(func() { p.stack.SetAlignment(state.AlignRight) })
	case `\qc`:
		p.withStateChange(func() { p.stack.SetAlignment(state.AlignCenter) })
	case `\qd`:
		p.withStateChange(func() { p.stack.SetAlignment(state.AlignDistributed) })
	case `\qj`:
		p.withStateChange(func() { p.stack.SetAlignment(state.AlignJustified) })
	case `\qt`:
		p.withStateChange(func() { p.stack.SetAlignment(state.AlignThaiDistributed) })

	case `\s`:
		p.applyStyle(stylesheet.Paragraph, param)
	case `\ds`:
		p.applyStyle(stylesheet.Section, param)
	case `\ts`:
		p.applyStyle(stylesheet.Table, param)
	case `\cs`:
		p.applyStyle(stylesheet.Character, param)

	case `\i`:
		p.withStateChange(func() { p.stack.SetItalic(onOffParam(param, hasParam)) })
	case `\b`:
		p.withStateChange(func() { p.stack.SetBold(onOffParam(param, hasParam)) })
	case `\ul`:
		p.withStateChange(func() { p.stack.SetUnderline(onOffParam(param, hasParam)) })
	case `\strike`:
		p.withStateChange(func() { p.stack.SetStrikethrough(onOffParam(param, hasParam)) })

	case `\cf`:
		if hasParam {
			if _, ok := p.colors.Get(param); ok {
				p.withStateChange(func() { p.stack.SetFColor(param) })
			}
		}
	case `\cb`:
		if hasParam {
			if _, ok := p.colors.Get(param); ok {
				p.withStateChange(func() { p.stack.SetBColor(param) })
			}
		}

	default:
		// Unknown control word: silently ignored per the forward-compat policy.
	}
	return nil
}

// onOffParam implements the standard RTF on/off parameter rule shared by
// \i, \b, \ul and \strike: a missing parameter or any nonzero parameter
// means on; 0 means off.
func onOffParam(param int, hasParam bool) bool {
	if !hasParam {
		return true
	}
	return param != 0
}

func (p *Parser) applyStyle(t stylesheet.Type, index int) {
	style, ok := p.styles.Get(t, index)
	if !ok {
		return
	}
	p.withStateChange(func() {
		p.stack.SetStyle(index)
		props := style.Properties
		if props.Alignment != nil {
			p.stack.SetAlignment(*props.Alignment)
		}
		if props.PageBreakBefore != nil {
			p.stack.SetPageBreakBefore(*props.PageBreakBefore)
		}
		if props.Bold != nil {
			p.stack.SetBold(*props.Bold)
		}
		if props.Italic != nil {
			p.stack.SetItalic(*props.Italic)
		}
		if props.Underline != nil {
			p.stack.SetUnderline(*props.Underline)
		}
		if props.Strikethrough != nil {
			p.stack.SetStrikethrough(*props.Strikethrough)
		}
		if props.FColor != nil {
			p.stack.SetFColor(*props.FColor)
		}
		if props.BColor != nil {
			p.stack.SetBColor(*props.BColor)
		}
	})
}

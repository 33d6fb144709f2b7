// Package parser implements the hierarchical parse-state machine that
// drives an RTF token stream: it maintains the formatting state stack,
// consults the stylesheet and color table side tables, and emits semantic
// events to a client (normally a dom.Builder).
package parser

import (
	"log/slog"
	"time"

	"github.com/dimelords/rtfdom/pkg/common"
	"github.com/dimelords/rtfdom/pkg/state"
	"github.com/dimelords/rtfdom/pkg/stylesheet"
	"github.com/dimelords/rtfdom/pkg/token"
)

// ImageAttributes is the attribute bag accumulated while parsing a \pict
// destination, handed to Callbacks.OnImage alongside the decoded payload.
type ImageAttributes struct {
	Source              string
	MetafileType         int
	MetafileMappingMode  int
	BitmapType           string
	ScaleX, ScaleY       int
	CropL, CropR         int
	CropT, CropB         int
	W, H                 int
	WGoal, HGoal         int
	Bpp                  int
	WBitsPixel           int
	WPlanes              int
	WWidthBytes          int
	BlipTag              int
	BlipUID              string
}

// Callbacks is the client contract. Every callback receives the Parser
// driving it, mirroring the dispatcher's "parser" first argument: a client
// that needs the current full formatting state (OnOpenParagraph does, to
// seed a new paragraph's formatting chain) calls back into p.Effective().
// OnOpenParagraph, OnAppendParagraph, OnStateChange and OnField are
// required; a Parser cannot be constructed without them. The rest are
// optional and may be left nil.
type Callbacks struct {
	OnOpenParagraph        func(p *Parser)
	OnCloseParagraph       func(p *Parser)
	OnAppendParagraph      func(p *Parser, text string)
	OnStateChange          func(p *Parser, old, newState state.Effective)
	OnPageBreak            func(p *Parser)
	OnField                func(p *Parser, fldinst, fldrslt string)
	OnImage                func(p *Parser, attrs ImageAttributes, data []byte)
	OnSetDocumentAttribute func(p *Parser, key, value string)
}

func (c Callbacks) validate() error {
	switch {
	case c.OnOpenParagraph == nil:
		return common.Errorf("parser", "construct", "", "%w: onOpenParagraph", common.ErrMissingCallback)
	case c.OnAppendParagraph == nil:
		return common.Errorf("parser", "construct", "", "%w: onAppendParagraph", common.ErrMissingCallback)
	case c.OnStateChange == nil:
		return common.Errorf("parser", "construct", "", "%w: onStateChange", common.ErrMissingCallback)
	case c.OnField == nil:
		return common.Errorf("parser", "construct", "", "%w: onField", common.ErrMissingCallback)
	}
	return nil
}

// Config groups the construction-time dependencies of a Parser.
type Config struct {
	Callbacks Callbacks
	// Clock is consulted by \chdate/\chdpl/\chdpa/\chtime. Defaults to
	// time.Now when nil.
	Clock func() time.Time
	// Logger receives non-fatal recovery notices (a dropped truncated
	// image, say). Defaults to slog.Default() when nil; the parser never
	// logs at a level above Warn, since every condition it logs is one
	// the recovery policy in §4.7 already tolerates.
	Logger *slog.Logger
}

// stateEntry is one level of the parse-state machine stack.
type stateEntry struct {
	state      ParseState
	enterDepth int
}

// Parser drives a single pass over an RTF byte buffer.
type Parser struct {
	scanner *token.Scanner
	stack   *state.Stack
	colors  *state.ColorTable
	styles  *stylesheet.Stylesheet

	callbacks Callbacks
	clock     func() time.Time
	logger    *slog.Logger

	states []stateEntry

	prev, prev2 token.Token

	paraOpen       bool
	lastWasUnicode bool
}

// New constructs a Parser over buf. It fails at construction time, not
// parse time, if a required callback is missing.
func New(buf []byte, cfg Config) (*Parser, error) {
	if err := cfg.Callbacks.validate(); err != nil {
		return nil, err
	}
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	p := &Parser{
		scanner:   token.New(buf),
		stack:     state.NewStack(),
		colors:    state.NewColorTable(),
		styles:    stylesheet.New(),
		callbacks: cfg.Callbacks,
		clock:     clock,
		logger:    logger,
	}
	p.states = []stateEntry{{state: &mainState{}, enterDepth: 0}}
	return p, nil
}

// Colors returns the color table built so far; useful for a client that
// needs to resolve fColor/bColor indices from an Effective state snapshot.
func (p *Parser) Colors() *state.ColorTable { return p.colors }

// Styles returns the stylesheet built so far.
func (p *Parser) Styles() *stylesheet.Stylesheet { return p.styles }

// Logger returns the logger configured for this parser, for use by parse
// states that need to report a tolerated recovery condition.
func (p *Parser) Logger() *slog.Logger { return p.logger }

// Effective returns the fully-resolved public formatting state at the
// parser's current position, the "full state" of §3. OnOpenParagraph
// calls back into this to decide which formatting chain a fresh
// paragraph should start with.
func (p *Parser) Effective() state.Effective { return p.stack.Effective() }

func (p *Parser) top() ParseState {
	return p.states[len(p.states)-1].state
}

// relDepth reports the current brace depth relative to the entry point of
// the active parse-state: 0 at the state's own body, >0 inside a nested
// group within the destination, and -1 immediately after the destination's
// own governing group has closed (signaling the state machine to pop).
func (p *Parser) relDepth() int {
	top := p.states[len(p.states)-1]
	return p.stack.Len() - top.enterDepth
}

func (p *Parser) pushState(s ParseState) {
	p.states = append(p.states, stateEntry{state: s, enterDepth: p.stack.Len()})
}

func (p *Parser) popStateIfDone() {
	if len(p.states) > 1 && p.relDepth() < 0 {
		p.states = p.states[:len(p.states)-1]
	}
}

func (p *Parser) ensureParagraphOpen() {
	if !p.paraOpen {
		p.callbacks.OnOpenParagraph(p)
		p.paraOpen = true
	}
}

func (p *Parser) closeParagraph() {
	if p.paraOpen && p.callbacks.OnCloseParagraph != nil {
		p.callbacks.OnCloseParagraph(p)
	}
	p.paraOpen = false
}

func (p *Parser) appendText(s string) {
	p.ensureParagraphOpen()
	p.callbacks.OnAppendParagraph(p, s)
}

func (p *Parser) fireStateChange(old, newState state.Effective) {
	p.callbacks.OnStateChange(p, old, newState)
}

// withStateChange runs fn, which mutates the formatting stack, and fires
// OnStateChange with the state observed immediately before and after.
func (p *Parser) withStateChange(fn func()) {
	old := p.stack.Effective()
	fn()
	p.fireStateChange(old, p.stack.Effective())
}

func (p *Parser) fireField(fldinst, fldrslt string) {
	p.ensureParagraphOpen()
	p.callbacks.OnField(p, fldinst, fldrslt)
}

func (p *Parser) fireImage(attrs ImageAttributes, data []byte) {
	if p.callbacks.OnImage == nil {
		return
	}
	p.ensureParagraphOpen()
	p.callbacks.OnImage(p, attrs, data)
}

func (p *Parser) firePageBreak() {
	p.ensureParagraphOpen()
	if p.callbacks.OnPageBreak != nil {
		p.callbacks.OnPageBreak(p)
	}
}

// Parse runs the parser to completion. A fatal structural or lexical
// error aborts and is returned; non-fatal conditions (unknown control
// words, malformed stylesheet entries, malformed \'HH, etc.) are
// swallowed per the recovery policy and parsing continues.
func (p *Parser) Parse() error {
	p.ensureParagraphOpen()
	for {
		tok, err := p.scanner.Next()
		if err != nil {
			return common.WrapError("parser", "scan", err)
		}

		switch tok.Type {
		case token.EOF:
			if ss, ok := p.top().(*stylesheetState); ok && ss.pendingLookahead() {
				return common.Errorf("parser", "parse", "", "premature EOF while resolving stylesheet entry type")
			}
			p.closeParagraph()
			return nil

		case token.OpenBrace:
			p.stack.Push()
			p.top().OnOpenBrace(p)

		case token.CloseBrace:
			old := p.stack.Effective()
			if err := p.stack.Pop(); err != nil {
				return common.WrapError("parser", "parse", err)
			}
			newEff := p.stack.Effective()
			p.top().OnCloseBrace(p, old, newEff)
			p.popStateIfDone()

		case token.Control:
			word, param, hasParam := tok.Word()
			if _, isMain := p.top().(*mainState); isMain {
				if sub, ok := detectDestination(p.prev2, p.prev, word); ok {
					p.pushState(sub)
					p.prev2, p.prev = p.prev, tok
					continue
				}
			}
			if err := p.top().OnControl(p, tok.Raw, word, param, hasParam); err != nil {
				return err
			}

		case token.Character:
			if err := p.top().OnCharacter(p, tok.Ch); err != nil {
				return err
			}
		}

		p.prev2, p.prev = p.prev, tok
	}
}

package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/dimelords/rtfdom/pkg/common"
	"github.com/dimelords/rtfdom/pkg/state"
	"github.com/dimelords/rtfdom/pkg/stylesheet"
)

// stubCallbacks records every event a test cares about without depending
// on pkg/dom, which itself depends on this package.
type stubCallbacks struct {
	paras        []string
	opened       int
	stateChanges []state.Effective
	fields       []fieldEvent
	images       []imageEvent
}

type fieldEvent struct{ fldinst, fldrslt string }
type imageEvent struct {
	attrs ImageAttributes
	data  []byte
}

func (s *stubCallbacks) callbacks() Callbacks {
	return Callbacks{
		OnOpenParagraph: func(p *Parser) {
			s.opened++
			s.paras = append(s.paras, "")
		},
		OnAppendParagraph: func(p *Parser, text string) {
			s.paras[len(s.paras)-1] += text
		},
		OnStateChange: func(p *Parser, old, newState state.Effective) {
			s.stateChanges = append(s.stateChanges, newState)
		},
		OnField: func(p *Parser, fldinst, fldrslt string) {
			s.fields = append(s.fields, fieldEvent{fldinst, fldrslt})
		},
		OnImage: func(p *Parser, attrs ImageAttributes, data []byte) {
			s.images = append(s.images, imageEvent{attrs, data})
		},
	}
}

func mustParse(t *testing.T, rtf string) (*Parser, *stubCallbacks) {
	t.Helper()
	s := &stubCallbacks{}
	p, err := New([]byte(rtf), Config{Callbacks: s.callbacks()})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := p.Parse(); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return p, s
}

func TestParser_ColorTableParsesEntriesInOrder(t *testing.T) {
	p, _ := mustParse(t, `{\rtf1{\colortbl;\red255\green0\blue0;\red0\green255\blue0;} text}`)

	if got := p.Colors().Len(); got != 3 {
		t.Fatalf("Colors().Len() = %d, want 3", got)
	}
	auto, ok := p.Colors().Get(0)
	if !ok || !auto.Auto {
		t.Fatalf("index 0 = %+v, want the auto sentinel", auto)
	}
	red, ok := p.Colors().Get(1)
	if !ok || red.Red != 255 || red.Green != 0 || red.Blue != 0 {
		t.Fatalf("index 1 = %+v, want red", red)
	}
	green, ok := p.Colors().Get(2)
	if !ok || green.Green != 255 {
		t.Fatalf("index 2 = %+v, want green", green)
	}
}

func TestParser_ColorTableEmptyRecordIsAuto(t *testing.T) {
	p, _ := mustParse(t, `{\rtf1{\colortbl;\red10\green20\blue30;;}}`)

	if got := p.Colors().Len(); got != 3 {
		t.Fatalf("Colors().Len() = %d, want 3", got)
	}
	last, ok := p.Colors().Get(2)
	if !ok || !last.Auto {
		t.Fatalf("empty record = %+v, want auto", last)
	}
}

func TestParser_GroupSkipIgnoresFontTable(t *testing.T) {
	// No space between the font table's closing brace and "hello": unlike
	// a control word's trailing space, a literal space here is ordinary
	// text and would otherwise show up in the captured paragraph.
	_, s := mustParse(t, `{\rtf1{\fonttbl{\f0 Times New Roman;}}hello}`)

	if len(s.paras) != 1 || s.paras[0] != "hello" {
		t.Fatalf("paras = %v, want [hello]; font table destination leaked into output", s.paras)
	}
}

func TestParser_GroupSkipIgnoresStarDestination(t *testing.T) {
	_, s := mustParse(t, `{\rtf1{\*\generator Some Writer;}hello}`)

	if len(s.paras) != 1 || s.paras[0] != "hello" {
		t.Fatalf("paras = %v, want [hello]", s.paras)
	}
}

func TestParser_FieldCapturesInstAndResult(t *testing.T) {
	_, s := mustParse(t, `{\rtf1{\field{\*\fldinst HYPERLINK "http://example.com"}{\fldrslt example}}}`)

	if len(s.fields) != 1 {
		t.Fatalf("fields = %v, want exactly one", s.fields)
	}
	// The single space delimiting \fldinst/\fldrslt from what follows is
	// consumed by the scanner like any other control word's delimiter, so
	// neither captured string starts with it.
	if s.fields[0].fldinst != `HYPERLINK "http://example.com"` {
		t.Fatalf("fldinst = %q", s.fields[0].fldinst)
	}
	if s.fields[0].fldrslt != `example` {
		t.Fatalf("fldrslt = %q", s.fields[0].fldrslt)
	}
}

func TestParser_FieldResultPreservesNestedBraces(t *testing.T) {
	_, s := mustParse(t, `{\rtf1{\field{\*\fldinst HYPERLINK "x"}{\fldrslt {plain text} more}}}`)

	if len(s.fields) != 1 {
		t.Fatalf("fields = %v, want exactly one", s.fields)
	}
	if s.fields[0].fldrslt != `{plain text} more` {
		t.Fatalf("fldrslt = %q, want nested braces preserved verbatim", s.fields[0].fldrslt)
	}
}

func TestParser_PictDecodesHexPayload(t *testing.T) {
	_, s := mustParse(t, `{\rtf1{\pict\picw1\pich1\pngblip 89504e470d0a}}`)

	if len(s.images) != 1 {
		t.Fatalf("images = %v, want exactly one", s.images)
	}
	img := s.images[0]
	if img.attrs.Source != "png" {
		t.Fatalf("attrs.Source = %q, want png", img.attrs.Source)
	}
	if img.attrs.W != 1 || img.attrs.H != 1 {
		t.Fatalf("attrs W/H = %d/%d, want 1/1", img.attrs.W, img.attrs.H)
	}
	want := []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a}
	if string(img.data) != string(want) {
		t.Fatalf("data = %x, want %x", img.data, want)
	}
}

func TestParser_PictOddHexDropsImage(t *testing.T) {
	// An odd digit count leaves the final byte half-specified, so the image
	// is dropped without aborting the parse; the text after it still arrives.
	_, s := mustParse(t, `{\rtf1{\pict\pngblip 89504e470d0a9}after}`)

	if len(s.images) != 0 {
		t.Fatalf("images = %v, want none for an odd-length hex payload", s.images)
	}
	if len(s.paras) != 1 || s.paras[0] != "after" {
		t.Fatalf("paras = %v, want [after]; content after the dropped image was lost", s.paras)
	}
}

func TestParser_StylesheetRegistersParagraphStyle(t *testing.T) {
	p, _ := mustParse(t, `{\rtf1{\stylesheet{\s1\ql Body Text;}} hi}`)

	style, ok := p.Styles().Get(stylesheet.Paragraph, 1)
	if !ok {
		t.Fatal("expected paragraph style at index 1")
	}
	if style.Name != "Body Text" {
		t.Fatalf("style.Name = %q, want %q", style.Name, "Body Text")
	}
	if style.Properties.Alignment == nil || *style.Properties.Alignment != state.AlignLeft {
		t.Fatalf("style.Properties.Alignment = %v, want AlignLeft", style.Properties.Alignment)
	}
}

func TestParser_StylesheetCharacterStyleViaStarCs(t *testing.T) {
	p, _ := mustParse(t, `{\rtf1{\stylesheet{\*\cs2\b Strong;}}}`)

	style, ok := p.Styles().Get(stylesheet.Character, 2)
	if !ok {
		t.Fatal("expected character style at index 2")
	}
	if style.Properties.Bold == nil || !*style.Properties.Bold {
		t.Fatalf("style.Properties.Bold = %v, want true", style.Properties.Bold)
	}
}

func TestParser_UnbalancedClosingBraceIsFatal(t *testing.T) {
	s := &stubCallbacks{}
	p, err := New([]byte(`{\rtf1 hi}}`), Config{Callbacks: s.callbacks()})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	err = p.Parse()
	if err == nil {
		t.Fatal("expected an error for an extra closing brace")
	}
	if !errors.Is(err, common.ErrUnbalancedBraces) {
		t.Fatalf("err = %v, want wrapping ErrUnbalancedBraces", err)
	}
}

func TestParser_MissingRequiredCallbackFailsAtConstruction(t *testing.T) {
	_, err := New([]byte(`{\rtf1}`), Config{Callbacks: Callbacks{
		OnAppendParagraph: func(p *Parser, text string) {},
		OnStateChange:     func(p *Parser, old, newState state.Effective) {},
		OnField:           func(p *Parser, fldinst, fldrslt string) {},
	}})
	if err == nil {
		t.Fatal("expected construction to fail without OnOpenParagraph")
	}
	if !strings.Contains(err.Error(), "onOpenParagraph") {
		t.Fatalf("err = %v, want it to name the missing callback", err)
	}
}

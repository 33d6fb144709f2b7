package dom

import (
	"strconv"
	"strings"

	"github.com/dimelords/rtfdom/pkg/parser"
	"github.com/dimelords/rtfdom/pkg/state"
	"github.com/dimelords/rtfdom/pkg/stylesheet"
)

// boolAttrOrder fixes the order formatting chains are built and rebuilt
// in. It isn't canonicalized against anything the RTF stream says -- the
// DOM's invariant 2 only requires one node per active boolean, not a
// particular nesting order -- but a fixed order keeps output
// deterministic across runs.
var boolAttrOrder = []string{"italic", "bold", "underline", "strikethrough"}

func boolAttr(eff state.Effective, name string) bool {
	switch name {
	case "italic":
		return eff.Italic
	case "bold":
		return eff.Bold
	case "underline":
		return eff.Underline
	case "strikethrough":
		return eff.Strikethrough
	default:
		return false
	}
}

// FieldDriver transforms a recognized {\field ...} occurrence into DOM
// nodes. arg is the field instruction's second whitespace-separated
// token (e.g. a quoted HYPERLINK URL); fldrslt is the field's
// accumulated, unparsed result text.
type FieldDriver func(b *Builder, arg, fldrslt string)

// Builder is the DOM-construction client of a parser.Parser: it implements
// the callback contract of §4.5 and grows a tree rooted at an `rtf` node
// while the parser drives it. The builder is the sole mutator of the
// tree, same as the parser is the sole mutator of its own state stack.
type Builder struct {
	root    *Node
	current *Node

	baseDrivers     map[string]FieldDriver
	overrideDrivers map[string]FieldDriver

	subParse func(fldrslt string) (*Node, error)
}

// NewBuilder returns a Builder with a fresh `rtf` root and the built-in
// HYPERLINK field driver registered.
func NewBuilder() *Builder {
	b := &Builder{
		root:            newNode(RTF),
		baseDrivers:     map[string]FieldDriver{"HYPERLINK": hyperlinkDriver},
		overrideDrivers: map[string]FieldDriver{},
	}
	b.current = b.root
	b.subParse = b.defaultSubParse
	return b
}

// Root returns the builder's live tree. Mutating it directly breaks the
// builder's invariants; use Tree for a safe-to-keep snapshot.
func (b *Builder) Root() *Node { return b.root }

// Tree returns a deep copy of the tree built so far, detached from the
// builder's live state.
func (b *Builder) Tree() *Node { return b.root.Clone() }

// RegisterFieldDriver adds or overrides a field driver. If name already
// names a base driver (such as the built-in HYPERLINK), the new driver is
// recorded as an override and consulted first; otherwise it's recorded as
// a new base driver. This lets a caller restore the original behavior by
// never registering the same name twice, while still allowing a genuine
// override to take precedence.
func (b *Builder) RegisterFieldDriver(name string, driver FieldDriver) {
	if _, ok := b.baseDrivers[name]; ok {
		b.overrideDrivers[name] = driver
		return
	}
	b.baseDrivers[name] = driver
}

func (b *Builder) lookupDriver(name string) (FieldDriver, bool) {
	if d, ok := b.overrideDrivers[name]; ok {
		return d, true
	}
	d, ok := b.baseDrivers[name]
	return d, ok
}

// Callbacks wires the builder's handlers into a parser.Callbacks value.
func (b *Builder) Callbacks() parser.Callbacks {
	return parser.Callbacks{
		OnOpenParagraph:   b.onOpenParagraph,
		OnAppendParagraph: b.onAppendParagraph,
		OnStateChange:     b.onStateChange,
		OnPageBreak:       b.onPageBreak,
		OnField:           b.onField,
		OnImage:           b.onImage,
	}
}

// onOpenParagraph appends a fresh para node to root, replays every active
// character boolean into a fresh formatting chain, copies non-boolean
// attributes onto the paragraph, and opens an empty text node as the
// insertion point.
func (b *Builder) onOpenParagraph(p *parser.Parser) {
	para := newNode(Para)
	b.root.AppendChild(para)

	eff := p.Effective()
	writeParagraphAttrs(para, p, eff)

	cur := para
	for _, name := range boolAttrOrder {
		if boolAttr(eff, name) {
			node := newNode(charNodeType[name])
			cur.AppendChild(node)
			cur = node
		}
	}

	text := newNode(TextNode)
	cur.AppendChild(text)
	b.current = text
}

func (b *Builder) onAppendParagraph(p *parser.Parser, text string) {
	b.current.Text += text
}

// isFormattingNode reports whether t is one of the boolean character
// formatting node types, as opposed to a structural node like Para or
// PageBreak.
func isFormattingNode(t Type) bool {
	switch t {
	case Bold, Italic, Underline, Strikethrough:
		return true
	default:
		return false
	}
}

// onStateChange implements the re-anchoring algorithm of §4.6: booleans
// turning on grow the chain immediately, discarding current's node first
// if it's still the empty placeholder text left over from opening the
// paragraph or an enclosing chain link; booleans turning off are
// recorded, and once the whole transition is scanned the chain is cut
// back past the shallowest one that turned off -- and past any
// still-active ancestors above it, since those belong to the same stale
// chain -- then rebuilt fresh for whatever's still active. Non-boolean
// changes just overwrite the enclosing paragraph's attribute.
func (b *Builder) onStateChange(p *parser.Parser, old, newState state.Effective) {
	type turnedOffEntry struct {
		nodeType Type
		depth    int
	}
	var turnedOff []turnedOffEntry

	oldBools := map[string]bool{"italic": old.Italic, "bold": old.Bold, "underline": old.Underline, "strikethrough": old.Strikethrough}
	for _, name := range boolAttrOrder {
		was, now := oldBools[name], boolAttr(newState, name)
		if was == now {
			continue
		}
		if now {
			parentOfChain := b.current.Parent
			if b.current.Type == TextNode && b.current.Text == "" {
				parentOfChain.RemoveChild(b.current)
			}
			node := newNode(charNodeType[name])
			text := newNode(TextNode)
			node.AppendChild(text)
			parentOfChain.AppendChild(node)
			b.current = text
		} else {
			ancestor := b.current.Ancestor(charNodeType[name])
			if ancestor != nil {
				turnedOff = append(turnedOff, turnedOffEntry{nodeType: charNodeType[name], depth: ancestor.depth()})
			}
		}
	}

	if old.Alignment != newState.Alignment {
		writeParaAttr(b.current, "alignment", newState.Alignment.String())
	}
	if old.Style != newState.Style {
		writeParaAttr(b.current, "style", styleName(p, newState.Style))
	}
	if old.PageBreakBefore != newState.PageBreakBefore {
		writeParaAttr(b.current, "pagebreakBefore", strconv.FormatBool(newState.PageBreakBefore))
	}
	if old.FColor != newState.FColor {
		writeParaAttr(b.current, "fColor", colorAttr(p, newState.FColor))
	}
	if old.BColor != newState.BColor {
		writeParaAttr(b.current, "bColor", colorAttr(p, newState.BColor))
	}

	if len(turnedOff) == 0 {
		return
	}

	shallowest := turnedOff[0]
	for _, t := range turnedOff[1:] {
		if t.depth < shallowest.depth {
			shallowest = t
		}
	}

	cur := b.current
	for cur.Type != shallowest.nodeType {
		cur = cur.Parent
	}
	cur = cur.Parent
	// cur may have landed on a formatting node for an attribute that's
	// still active (e.g. an enclosing bold wrapping the italic that just
	// turned off) -- that node belongs to the stale chain too, so climb
	// past it rather than nesting a second node of the same type inside it.
	for isFormattingNode(cur.Type) {
		cur = cur.Parent
	}

	for _, name := range boolAttrOrder {
		if boolAttr(newState, name) {
			node := newNode(charNodeType[name])
			cur.AppendChild(node)
			cur = node
		}
	}
	text := newNode(TextNode)
	cur.AppendChild(text)
	b.current = text
}

func writeParagraphAttrs(para *Node, p *parser.Parser, eff state.Effective) {
	para.Attrs["alignment"] = eff.Alignment.String()
	para.Attrs["pagebreakBefore"] = strconv.FormatBool(eff.PageBreakBefore)
	if name := styleName(p, eff.Style); name != "" {
		para.Attrs["style"] = name
	}
	if c := colorAttr(p, eff.FColor); c != "" {
		para.Attrs["fColor"] = c
	}
	if c := colorAttr(p, eff.BColor); c != "" {
		para.Attrs["bColor"] = c
	}
}

// writeParaAttr walks up from node to its enclosing paragraph and writes
// the attribute there, per invariant 3: paragraph-level attributes never
// become nested elements.
func writeParaAttr(node *Node, key, value string) {
	para := node.Ancestor(Para)
	if para == nil {
		return
	}
	para.Attrs[key] = value
}

func styleName(p *parser.Parser, index int) string {
	if index < 0 {
		return ""
	}
	if style, ok := p.Styles().Get(stylesheet.Paragraph, index); ok {
		return style.Name
	}
	return ""
}

// colorAttr resolves a paragraph's fColor/bColor table index to its
// display form. An index of -1 means no \cf/\cb control was ever seen in
// this attribute's scope, which is distinct from an explicit reference to
// table index 0 (the "auto" sentinel) -- the former writes no attribute
// at all, the latter writes "auto".
func colorAttr(p *parser.Parser, index int) string {
	if index < 0 {
		return ""
	}
	c, ok := p.Colors().Get(index)
	if !ok {
		return ""
	}
	return c.String()
}

func (b *Builder) onPageBreak(p *parser.Parser) {
	para := b.current.Ancestor(Para)
	if para == nil {
		para = b.root
	}
	brk := newNode(PageBreak)
	para.AppendChild(brk)

	eff := p.Effective()
	cur := brk
	for _, name := range boolAttrOrder {
		if boolAttr(eff, name) {
			node := newNode(charNodeType[name])
			cur.AppendChild(node)
			cur = node
		}
	}
	text := newNode(TextNode)
	cur.AppendChild(text)
	b.current = text
}

func (b *Builder) onImage(p *parser.Parser, attrs parser.ImageAttributes, data []byte) {
	cur := b.current
	for cur.Type == TextNode {
		cur = cur.Parent
	}
	img := newNode(Image)
	img.Data = data
	writeImageAttrs(img, attrs)
	cur.AppendChild(img)

	text := newNode(TextNode)
	cur.AppendChild(text)
	b.current = text
}

func writeImageAttrs(n *Node, attrs parser.ImageAttributes) {
	if attrs.Source != "" {
		n.Attrs["source"] = attrs.Source
	}
	setIntAttr(n, "scaleX", attrs.ScaleX)
	setIntAttr(n, "scaleY", attrs.ScaleY)
	setIntAttr(n, "cropL", attrs.CropL)
	setIntAttr(n, "cropR", attrs.CropR)
	setIntAttr(n, "cropT", attrs.CropT)
	setIntAttr(n, "cropB", attrs.CropB)
	setIntAttr(n, "w", attrs.W)
	setIntAttr(n, "h", attrs.H)
	setIntAttr(n, "wGoal", attrs.WGoal)
	setIntAttr(n, "hGoal", attrs.HGoal)
	setIntAttr(n, "bpp", attrs.Bpp)
	setIntAttr(n, "wBitsPixel", attrs.WBitsPixel)
	setIntAttr(n, "wPlanes", attrs.WPlanes)
	setIntAttr(n, "wWidthBytes", attrs.WWidthBytes)
	setIntAttr(n, "metafileType", attrs.MetafileType)
	setIntAttr(n, "metafileMappingMode", attrs.MetafileMappingMode)
	if attrs.BitmapType != "" {
		n.Attrs["bitmapType"] = attrs.BitmapType
	}
	if attrs.BlipUID != "" {
		n.Attrs["blipUID"] = attrs.BlipUID
	} else if attrs.BlipTag != 0 {
		n.Attrs["blipTag"] = strconv.Itoa(attrs.BlipTag)
	}
}

func setIntAttr(n *Node, key string, v int) {
	if v != 0 {
		n.Attrs[key] = strconv.Itoa(v)
	}
}

// onField dispatches a completed field to the matching driver, or falls
// back to splicing fldrslt's parsed content directly into the current
// paragraph when no driver recognizes the field type.
func (b *Builder) onField(p *parser.Parser, fldinst, fldrslt string) {
	parts := strings.Fields(fldinst)
	if len(parts) == 0 {
		b.insertFldrslt(fldrslt)
		return
	}
	driver, ok := b.lookupDriver(parts[0])
	if !ok {
		b.insertFldrslt(fldrslt)
		return
	}
	var arg string
	if len(parts) > 1 {
		arg = parts[1]
	}
	driver(b, arg, fldrslt)
}

// dropEmptyCurrentText removes the current insertion node from its parent
// if it's an empty text node, since it would otherwise become unreachable
// dead weight once this field replaces it with real content. It returns
// the (possibly now-current) paragraph the node lived under.
func (b *Builder) dropEmptyCurrentText() *Node {
	para := b.current.Ancestor(Para)
	if b.current.Type == TextNode && b.current.Text == "" {
		parent := b.current.Parent
		parent.RemoveChild(b.current)
		b.current = parent
	}
	return para
}

// insertFldrslt is the generic fallback of §4.6: sub-parse fldrslt as an
// independent RTF body, adopt its first paragraph's children directly
// into the current paragraph, and resume appending in a fresh text node.
func (b *Builder) insertFldrslt(fldrslt string) {
	para := b.dropEmptyCurrentText()
	if para == nil {
		para = b.root
	}
	b.adoptSubParse(fldrslt, para)

	text := newNode(TextNode)
	para.AppendChild(text)
	b.current = text
}

// adoptSubParse runs an independent parser+builder pair over fldrslt
// wrapped in its own brace group, then moves (not copies) the first
// paragraph's children from the throwaway tree into target.
func (b *Builder) adoptSubParse(fldrslt string, target *Node) {
	sub, err := b.subParse(fldrslt)
	if err != nil || sub == nil || len(sub.Children) == 0 {
		return
	}
	firstPara := sub.Children[0]
	for _, child := range append([]*Node(nil), firstPara.Children...) {
		target.AppendChild(child)
	}
}

// defaultSubParse is the production sub-parser: a brand new Builder and
// Parser with a fresh state stack, parsing fldrslt re-wrapped in its own
// group exactly as §4.6 and §5 describe.
func (b *Builder) defaultSubParse(fldrslt string) (*Node, error) {
	sub := NewBuilder()
	p, err := parser.New([]byte("{"+fldrslt+"}"), parser.Config{Callbacks: sub.Callbacks()})
	if err != nil {
		return nil, err
	}
	if err := p.Parse(); err != nil {
		return nil, err
	}
	return sub.Root(), nil
}

// hyperlinkDriver is the built-in HYPERLINK field driver. As in the
// generic fallback, the trailing text node it opens for further typing
// lives directly under the paragraph, here a sibling of the hyperlink it
// just closed off, not inside the hyperlink itself.
func hyperlinkDriver(b *Builder, arg, fldrslt string) {
	para := b.dropEmptyCurrentText()
	if para == nil {
		para = b.root
	}

	href := strings.Trim(arg, `"`)
	hyper := newNode(Hyperlink)
	hyper.Attrs["href"] = href
	para.AppendChild(hyper)

	placeholder := newNode(TextNode)
	hyper.AppendChild(placeholder)
	b.current = placeholder

	// The placeholder only exists to give adoptSubParse's target an
	// anchor; fldrslt's own content becomes the hyperlink's actual
	// children, so drop it before adopting rather than after.
	b.dropEmptyCurrentText()
	b.adoptSubParse(fldrslt, hyper)

	trailing := newNode(TextNode)
	para.AppendChild(trailing)
	b.current = trailing
}

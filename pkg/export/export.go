// Package export renders a parsed rtfdom tree to formats a caller can
// write to a file or diff in a test: an XML projection built on
// beevik/etree, and a flattened plain-text rendering in the spirit of
// the reference implementation's debug tree printer.
package export

import (
	"encoding/base64"
	"io"
	"sort"
	"strings"

	"github.com/beevik/etree"

	"github.com/dimelords/rtfdom/pkg/common"
	"github.com/dimelords/rtfdom/pkg/dom"
)

// WriteXML walks root and writes an XML projection of it to w: element
// names are the node's nodeType string, attributes are copied over
// sorted by key for deterministic output, text node values become
// element text, and image payloads are base64-encoded as element text
// since XML has no native binary content model.
func WriteXML(w io.Writer, root *dom.Node) error {
	doc := etree.NewDocument()
	doc.Indent(2)
	buildRoot(doc, root)
	if _, err := doc.WriteTo(w); err != nil {
		return common.WrapError("export", "writeXML", err)
	}
	return nil
}

// elementCreator is satisfied by both *etree.Document and *etree.Element,
// letting buildRoot and buildElement share the same population logic for
// the top-level element and every descendant.
type elementCreator interface {
	CreateElement(tag string) *etree.Element
}

func buildRoot(doc *etree.Document, n *dom.Node) {
	buildElement(doc, n)
}

func buildElement(parent elementCreator, n *dom.Node) {
	el := parent.CreateElement(n.Type.String())

	keys := make([]string, 0, len(n.Attrs))
	for k := range n.Attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		el.CreateAttr(k, n.Attrs[k])
	}

	switch n.Type {
	case dom.TextNode:
		if n.Text != "" {
			el.SetText(n.Text)
		}
	case dom.Image:
		if len(n.Data) > 0 {
			el.SetText(base64.StdEncoding.EncodeToString(n.Data))
		}
	}

	for _, child := range n.Children {
		buildElement(el, child)
	}
}

// WriteText walks root's paragraphs and writes their concatenated text
// content to w, one paragraph per line, separated by blank lines. It
// ignores formatting entirely; callers who need structure should use
// WriteXML or walk the tree directly.
func WriteText(w io.Writer, root *dom.Node) error {
	var b strings.Builder
	for i, para := range root.Children {
		if i > 0 {
			b.WriteString("\n\n")
		}
		writeParagraphText(&b, para)
	}
	b.WriteString("\n")
	if _, err := io.WriteString(w, b.String()); err != nil {
		return common.WrapError("export", "writeText", err)
	}
	return nil
}

func writeParagraphText(b *strings.Builder, n *dom.Node) {
	if n.Type == dom.TextNode {
		b.WriteString(n.Text)
		return
	}
	for _, child := range n.Children {
		writeParagraphText(b, child)
	}
}

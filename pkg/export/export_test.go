package export

import (
	"bytes"
	"testing"

	"github.com/beevik/etree"
	"github.com/google/go-cmp/cmp"

	"github.com/dimelords/rtfdom/internal/testutil"
	"github.com/dimelords/rtfdom/pkg/rtfdom"
)

func TestWriteText_TwoParagraphs(t *testing.T) {
	root, err := rtfdom.ParseString(`{\rtf1 hello\par world}`)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteText(&buf, root); err != nil {
		t.Fatalf("WriteText: %v", err)
	}

	testutil.NewGoldenFileInTestdata(t).Assert(t, "two_paragraphs", buf.Bytes())
}

// elementShape is a go-cmp-friendly flattening of an etree.Element used to
// assert XML structure without depending on etree's exact byte-level
// indentation, which WriteXML delegates to the library.
type elementShape struct {
	Tag      string
	Attrs    map[string]string
	Text     string
	Children []elementShape
}

func shapeOf(el *etree.Element) elementShape {
	shape := elementShape{Tag: el.Tag, Text: el.Text()}
	if len(el.Attr) > 0 {
		shape.Attrs = map[string]string{}
		for _, a := range el.Attr {
			shape.Attrs[a.Key] = a.Value
		}
	}
	for _, child := range el.ChildElements() {
		shape.Children = append(shape.Children, shapeOf(child))
	}
	return shape
}

func TestWriteXML_BoldToggleRoundTrips(t *testing.T) {
	root, err := rtfdom.ParseString(`{\rtf1 \b bold\b0 plain}`)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteXML(&buf, root); err != nil {
		t.Fatalf("WriteXML: %v", err)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(buf.Bytes()); err != nil {
		t.Fatalf("re-parsing exported XML: %v\n---\n%s", err, buf.String())
	}

	got := shapeOf(doc.Root())
	want := elementShape{
		Tag: "rtf",
		Children: []elementShape{
			{
				Tag: "para",
				Children: []elementShape{
					{
						Tag: "bold",
						Children: []elementShape{
							{Tag: "text", Text: "bold"},
						},
					},
					{Tag: "text", Text: "plain"},
				},
			},
		},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("exported XML shape mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteXML_ImageBase64Encoded(t *testing.T) {
	root, err := rtfdom.ParseString(`{\rtf1 {\pict\picw1\pich1\pngblip 89504e470d0a}}`)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteXML(&buf, root); err != nil {
		t.Fatalf("WriteXML: %v", err)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(buf.Bytes()); err != nil {
		t.Fatalf("re-parsing exported XML: %v\n---\n%s", err, buf.String())
	}

	img := doc.FindElement("//image")
	if img == nil {
		t.Fatalf("expected an <image> element in:\n%s", buf.String())
	}
	if img.SelectAttrValue("source", "") != "png" {
		t.Fatalf("image source = %q, want png", img.SelectAttrValue("source", ""))
	}
	if img.Text() == "" {
		t.Fatalf("expected non-empty base64 image text")
	}
}

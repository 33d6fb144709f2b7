package dom

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestNode_AppendChildSetsParent(t *testing.T) {
	root := newNode(RTF)
	para := newNode(Para)
	root.AppendChild(para)

	if para.Parent != root {
		t.Fatalf("para.Parent = %v, want root", para.Parent)
	}
	if len(root.Children) != 1 || root.Children[0] != para {
		t.Fatalf("root.Children = %v, want [para]", root.Children)
	}
}

func TestNode_AppendChildDetachesFromPreviousParent(t *testing.T) {
	a := newNode(Para)
	b := newNode(Para)
	child := newNode(TextNode)

	a.AppendChild(child)
	b.AppendChild(child)

	if len(a.Children) != 0 {
		t.Fatalf("a.Children = %v, want empty after child moved", a.Children)
	}
	if child.Parent != b {
		t.Fatalf("child.Parent = %v, want b", child.Parent)
	}
}

func TestNode_RemoveChild(t *testing.T) {
	root := newNode(RTF)
	para := newNode(Para)
	root.AppendChild(para)

	root.RemoveChild(para)

	if len(root.Children) != 0 {
		t.Fatalf("root.Children = %v, want empty", root.Children)
	}
	if para.Parent != nil {
		t.Fatalf("para.Parent = %v, want nil", para.Parent)
	}
}

func TestNode_RemoveChildNotPresentIsNoop(t *testing.T) {
	root := newNode(RTF)
	other := newNode(Para)
	root.RemoveChild(other)
}

func TestNode_LastChild(t *testing.T) {
	root := newNode(RTF)
	if root.LastChild() != nil {
		t.Fatalf("LastChild() = %v, want nil on empty node", root.LastChild())
	}

	first := newNode(Para)
	second := newNode(Para)
	root.AppendChild(first)
	root.AppendChild(second)

	if root.LastChild() != second {
		t.Fatalf("LastChild() = %v, want second", root.LastChild())
	}
}

func TestNode_AncestorFindsNearestMatch(t *testing.T) {
	root := newNode(RTF)
	para := newNode(Para)
	bold := newNode(Bold)
	text := newNode(TextNode)
	root.AppendChild(para)
	para.AppendChild(bold)
	bold.AppendChild(text)

	if got := text.Ancestor(Bold); got != bold {
		t.Fatalf("Ancestor(Bold) = %v, want bold", got)
	}
	if got := text.Ancestor(Para); got != para {
		t.Fatalf("Ancestor(Para) = %v, want para", got)
	}
	if got := text.Ancestor(RTF); got != root {
		t.Fatalf("Ancestor(RTF) = %v, want root", got)
	}
}

func TestNode_AncestorIncludesSelf(t *testing.T) {
	para := newNode(Para)
	if got := para.Ancestor(Para); got != para {
		t.Fatalf("Ancestor(Para) on a Para node = %v, want itself", got)
	}
}

func TestNode_AncestorReturnsNilWhenAbsent(t *testing.T) {
	root := newNode(RTF)
	para := newNode(Para)
	root.AppendChild(para)

	if got := para.Ancestor(Hyperlink); got != nil {
		t.Fatalf("Ancestor(Hyperlink) = %v, want nil", got)
	}
}

func TestNode_Depth(t *testing.T) {
	root := newNode(RTF)
	para := newNode(Para)
	bold := newNode(Bold)
	root.AppendChild(para)
	para.AppendChild(bold)

	if root.depth() != 0 {
		t.Fatalf("root.depth() = %d, want 0", root.depth())
	}
	if para.depth() != 1 {
		t.Fatalf("para.depth() = %d, want 1", para.depth())
	}
	if bold.depth() != 2 {
		t.Fatalf("bold.depth() = %d, want 2", bold.depth())
	}
}

func TestNode_CloneIsDeepAndDetached(t *testing.T) {
	root := newNode(RTF)
	para := newNode(Para)
	para.Attrs["alignment"] = "left"
	text := newNode(TextNode)
	text.Text = "hello"
	para.AppendChild(text)
	root.AppendChild(para)
	img := newNode(Image)
	img.Data = []byte{1, 2, 3}
	root.AppendChild(img)

	clone := root.Clone()

	// Structural equality, ignoring Parent back-references (cmp can't
	// follow the cycle) and unexported depth-only behavior.
	diff := cmp.Diff(root, clone, cmpopts.IgnoreFields(Node{}, "Parent"))
	if diff != "" {
		t.Fatalf("clone diverges from original (-want +got):\n%s", diff)
	}

	// Mutating the clone must not affect the original: no shared slices,
	// maps, or node pointers.
	clone.Children[0].Attrs["alignment"] = "right"
	if root.Children[0].Attrs["alignment"] != "left" {
		t.Fatalf("mutating clone's attrs leaked into original")
	}

	clone.Children[1].Data[0] = 99
	if root.Children[1].Data[0] != 1 {
		t.Fatalf("mutating clone's image data leaked into original")
	}

	if clone.Children[0] == root.Children[0] {
		t.Fatal("clone shares node pointers with original")
	}
	if clone.Parent != nil {
		t.Fatalf("clone.Parent = %v, want nil (detached root)", clone.Parent)
	}
}

func TestType_String(t *testing.T) {
	cases := map[Type]string{
		RTF:           "rtf",
		Para:          "para",
		TextNode:      "text",
		Bold:          "bold",
		Italic:        "italic",
		Underline:     "underline",
		Strikethrough: "strikethrough",
		Hyperlink:     "hyperlink",
		Image:         "image",
		PageBreak:     "pagebreak",
		Type(999):     "unknown",
	}
	for typ, want := range cases {
		if got := typ.String(); got != want {
			t.Errorf("Type(%d).String() = %q, want %q", typ, got, want)
		}
	}
}

package tui

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dimelords/rtfdom/pkg/dom"
)

// treeLine is one flattened, indented row of a rendered node tree.
type treeLine struct {
	depth int
	text  string
}

// TreeViewer scrolls through a flattened rendering of a document's node
// tree, one line per node, indented by nesting depth.
type TreeViewer struct {
	lines    []treeLine
	top      int
	height   int
	quitting bool
}

// NewTreeViewer flattens root into a scrollable list of lines.
func NewTreeViewer(root *dom.Node) *TreeViewer {
	var lines []treeLine
	flatten(root, 0, &lines)
	return &TreeViewer{lines: lines, height: 20}
}

func flatten(n *dom.Node, depth int, out *[]treeLine) {
	*out = append(*out, treeLine{depth: depth, text: describeNode(n)})
	for _, child := range n.Children {
		flatten(child, depth+1, out)
	}
}

func describeNode(n *dom.Node) string {
	label := NodeTypeStyle.Render(n.Type.String())

	keys := make([]string, 0, len(n.Attrs))
	for k := range n.Attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var attrParts []string
	for _, k := range keys {
		attrParts = append(attrParts, fmt.Sprintf("%s=%s", k, n.Attrs[k]))
	}
	if len(attrParts) > 0 {
		label += " " + NodeAttrStyle.Render(strings.Join(attrParts, " "))
	}

	switch n.Type {
	case dom.TextNode:
		label += " " + NodeTextStyle.Render(fmt.Sprintf("%q", n.Text))
	case dom.Image:
		label += " " + NodeAttrStyle.Render(fmt.Sprintf("(%d bytes)", len(n.Data)))
	}
	return label
}

func (m *TreeViewer) Init() tea.Cmd {
	return nil
}

func (m *TreeViewer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc", "enter":
			m.quitting = true
			return m, tea.Quit

		case "up", "k":
			if m.top > 0 {
				m.top--
			}

		case "down", "j":
			if m.top < len(m.lines)-1 {
				m.top++
			}
		}
	}
	return m, nil
}

func (m *TreeViewer) View() string {
	if m.quitting {
		return ""
	}

	var s strings.Builder
	s.WriteString(TitleStyle.Render("Document tree"))
	s.WriteString("\n\n")

	end := m.top + m.height
	if end > len(m.lines) {
		end = len(m.lines)
	}
	for _, line := range m.lines[m.top:end] {
		s.WriteString(strings.Repeat("  ", line.depth))
		s.WriteString(line.text)
		s.WriteString("\n")
	}

	s.WriteString(FormatHelp("j/k, up/down: scroll", "q, enter: back"))
	return s.String()
}

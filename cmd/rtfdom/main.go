// Command rtfdom inspects an RTF file: parse it and either dump it in a
// chosen format non-interactively, or browse it with the bundled TUI.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dimelords/rtfdom/cmd/rtfdom/tui"
	"github.com/dimelords/rtfdom/pkg/export"
	"github.com/dimelords/rtfdom/pkg/rtfdom"
)

func main() {
	textOut := flag.Bool("text", false, "dump the document's flattened text to stdout and exit")
	xmlOut := flag.Bool("xml", false, "dump the document as XML to stdout and exit")
	flag.Parse()

	path := flag.Arg(0)

	if *textOut || *xmlOut {
		if path == "" {
			fmt.Fprintln(os.Stderr, "usage: rtfdom [-text|-xml] <file.rtf>")
			os.Exit(2)
		}
		if err := dumpFile(path, *textOut); err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}
		return
	}

	runInteractive(path)
}

func dumpFile(path string, asText bool) error {
	root, err := rtfdom.ParseFile(path)
	if err != nil {
		return err
	}
	if asText {
		return export.WriteText(os.Stdout, root)
	}
	return export.WriteXML(os.Stdout, root)
}

func runInteractive(path string) {
	if path == "" {
		path = promptForPath()
		if path == "" {
			return
		}
	}

	root, err := rtfdom.ParseFile(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	for {
		menu := tui.NewMainMenu()
		p := tea.NewProgram(menu)
		m, err := p.Run()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		switch m.(*tui.MainMenu).GetSelected() {
		case 0:
			viewer := tui.NewTreeViewer(root)
			if _, err := tea.NewProgram(viewer).Run(); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}

		case 1:
			if err := export.WriteText(os.Stdout, root); err != nil {
				fmt.Fprintln(os.Stderr, "error:", err)
			}
			fmt.Println()

		case 2:
			if err := export.WriteXML(os.Stdout, root); err != nil {
				fmt.Fprintln(os.Stderr, "error:", err)
			}
			fmt.Println()

		default:
			fmt.Println()
			return
		}

		fmt.Println("\n" + strings.Repeat("─", 50) + "\n")
	}
}

func promptForPath() string {
	input := tui.NewTextInput("Path to RTF file:", "document.rtf")
	p := tea.NewProgram(input)
	m, err := p.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	final := m.(*tui.TextInput)
	if final.WasCancelled() || !final.WasSubmitted() {
		return ""
	}
	return final.GetValue()
}

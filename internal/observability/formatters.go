// Package observability provides formatted terminal output for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/skillgap/internal/types"
	"github.com/jonathan/skillgap/internal/view"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// previewLines is how many input lines the input summary shows
	previewLines = 3
)

// Printer handles formatted output for the analyze command
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most width runes, marking the cut with "...".
func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-3]) + "..."
}

// PrintInput outputs a short summary of one analysis input.
func (p *Printer) PrintInput(label string, text string) {
	lines := strings.Split(strings.TrimSpace(text), "\n")

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Length:   %d chars, %d lines\n\n", len(text), len(lines)))
	for i := 0; i < min(len(lines), previewLines); i++ {
		sb.WriteString(lines[i] + "\n")
	}
	if len(lines) > previewLines {
		sb.WriteString(fmt.Sprintf("... and %d more lines\n", len(lines)-previewLines))
	}

	p.printBox(strings.ToUpper(label), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintDialog outputs one result list the way the web dialog shows it.
func (p *Printer) PrintDialog(d view.Dialog) {
	if d.Empty() {
		p.printBox(strings.ToUpper(d.Title), d.Placeholder)
		return
	}

	var sb strings.Builder
	for _, item := range d.Items {
		sb.WriteString(fmt.Sprintf("  • %s\n", item))
	}
	p.printBox(fmt.Sprintf("%s (%d)", strings.ToUpper(d.Title), len(d.Items)), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintAnalysis outputs both result lists.
func (p *Printer) PrintAnalysis(result *types.AnalysisResult) {
	if result == nil {
		return
	}
	p.PrintDialog(view.DialogFor(result, view.DialogCommon))
	p.PrintDialog(view.DialogFor(result, view.DialogDevelop))
}

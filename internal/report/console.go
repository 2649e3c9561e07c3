package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/lintgate/lintgate/internal/types"
)

// ConsoleRenderer writes a styled, file-grouped report to a writer.
type ConsoleRenderer struct {
	out      io.Writer
	colorize bool

	currentFile string
	count       int
	perSeverity map[types.Severity]int
}

// NewConsoleRenderer creates a ConsoleRenderer.
func NewConsoleRenderer(out io.Writer, colorize bool) *ConsoleRenderer {
	return &ConsoleRenderer{
		out:         out,
		colorize:    colorize,
		perSeverity: make(map[types.Severity]int),
	}
}

func (r *ConsoleRenderer) style(s types.Severity) lipgloss.Style {
	if !r.colorize {
		return lipgloss.NewStyle()
	}
	switch s {
	case types.SeverityError:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("9")) // red
	case types.SeverityWarning:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("3")) // yellow
	case types.SeverityWeakWarning:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("11")) // bright yellow
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("7")) // gray
	}
}

// Accept renders one finding. Findings arrive already grouped by file, so a
// file header is printed whenever the file changes.
func (r *ConsoleRenderer) Accept(f *types.Finding, toolID string) error {
	if f.File != r.currentFile {
		header := f.File
		if r.colorize {
			header = lipgloss.NewStyle().Bold(true).Render(header)
		}
		if _, err := fmt.Fprintf(r.out, "%s\n", header); err != nil {
			return err
		}
		r.currentFile = f.File
	}

	line := fmt.Sprintf("  %d:%d  %-12s %s  (%s)", f.Line, f.Row, f.Severity, f.Message, toolID)
	if _, err := fmt.Fprintf(r.out, "%s\n", r.style(f.Severity).Render(line)); err != nil {
		return err
	}

	r.count++
	r.perSeverity[f.Severity]++
	return nil
}

// Finalize prints the summary line.
func (r *ConsoleRenderer) Finalize() error {
	if r.count == 0 {
		_, err := fmt.Fprintln(r.out, "No problems found")
		return err
	}
	_, err := fmt.Fprintf(r.out, "\n%d problems (%d errors, %d warnings, %d weak warnings, %d info)\n",
		r.count,
		r.perSeverity[types.SeverityError],
		r.perSeverity[types.SeverityWarning],
		r.perSeverity[types.SeverityWeakWarning],
		r.perSeverity[types.SeverityInfo])
	return err
}

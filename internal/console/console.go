// Package console prints the user-facing output of a run: progress lines,
// colored per-repository results and the final summary.
package console

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"
)

// Console writes human-readable lines to an output stream.
type Console struct {
	out io.Writer
}

// New returns a Console writing to out.
func New(out io.Writer) *Console {
	return &Console{out: out}
}

// Progress prints a cyan status line, used once per requested page.
func (c *Console) Progress(format string, a ...any) {
	pterm.Fprintln(c.out, pterm.FgCyan.Sprintf(format, a...))
}

// Success prints a green line.
func (c *Console) Success(format string, a ...any) {
	pterm.Fprintln(c.out, pterm.FgGreen.Sprintf(format, a...))
}

// Error prints a red line.
func (c *Console) Error(format string, a ...any) {
	pterm.Fprintln(c.out, pterm.FgRed.Sprintf(format, a...))
}

// Printf prints uncolored text.
func (c *Console) Printf(format string, a ...any) {
	pterm.Fprint(c.out, fmt.Sprintf(format, a...))
}

// List prints items as an indented bullet list.
func (c *Console) List(items []string) {
	for _, item := range items {
		pterm.Fprintln(c.out, "  • "+item)
	}
}

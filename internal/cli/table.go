package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"golang.org/x/term"
)

// isTTY reports whether w is connected to a terminal.
func isTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// bold wraps s in ANSI bold escape codes.
func bold(s string, color bool) string {
	if !color {
		return s
	}
	return "\033[1m" + s + "\033[0m"
}

// Table writes column-aligned output for the human-readable forms of
// resolve and config. Headers are bold when output is a TTY.
type Table struct {
	tw    *tabwriter.Writer
	color bool
	blank string
}

// NewTable creates a Table that writes to w. If headers are provided, they are
// written as a header row.
func NewTable(w io.Writer, headers ...string) *Table {
	t := &Table{
		tw:    tabwriter.NewWriter(w, 0, 4, 2, ' ', 0),
		color: isTTY(w),
	}
	if len(headers) > 0 {
		row := make([]string, len(headers))
		for i, h := range headers {
			row[i] = bold(h, t.color)
		}
		fmt.Fprintln(t.tw, strings.Join(row, "\t"))
	}
	return t
}

// WithBlank sets the text printed in place of empty cells.
func (t *Table) WithBlank(s string) *Table {
	t.blank = s
	return t
}

// Row writes a data row.
func (t *Table) Row(vals ...string) {
	if t.blank != "" {
		for i, v := range vals {
			if v == "" {
				vals[i] = t.blank
			}
		}
	}
	fmt.Fprintln(t.tw, strings.Join(vals, "\t"))
}

// Flush flushes the underlying tabwriter.
func (t *Table) Flush() error {
	return t.tw.Flush()
}

package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/tordrt/zoodb/internal/zoo"
)

// MarkdownFormatter formats tables as markdown
type MarkdownFormatter struct {
	writer io.Writer
}

// NewMarkdownFormatter creates a new markdown formatter
func NewMarkdownFormatter(w io.Writer) *MarkdownFormatter {
	return &MarkdownFormatter{writer: w}
}

// Format writes every table under a single document heading
func (f *MarkdownFormatter) Format(tables ...zoo.Table) error {
	_, _ = fmt.Fprintln(f.writer, "# Zoo Data")
	_, _ = fmt.Fprintln(f.writer)

	for _, table := range tables {
		if err := f.FormatTable(table); err != nil {
			return err
		}
	}
	return nil
}

// FormatTable formats a single table (exported for use by multifile formatter)
func (f *MarkdownFormatter) FormatTable(table zoo.Table) error {
	_, _ = fmt.Fprintf(f.writer, "## %s\n\n", table.Name)

	if len(table.Rows) == 0 {
		_, _ = fmt.Fprintln(f.writer, "_No rows._")
		_, _ = fmt.Fprintln(f.writer)
		return nil
	}

	_, _ = fmt.Fprintf(f.writer, "| %s |\n", strings.Join(escapeCells(table.Columns), " | "))
	separators := make([]string, len(table.Columns))
	for i := range separators {
		separators[i] = "---"
	}
	_, _ = fmt.Fprintf(f.writer, "| %s |\n", strings.Join(separators, " | "))

	for _, row := range table.Rows {
		_, _ = fmt.Fprintf(f.writer, "| %s |\n", strings.Join(escapeCells(row), " | "))
	}
	_, _ = fmt.Fprintln(f.writer)

	return nil
}

// escapeCells keeps pipes and newlines inside a value from breaking the table
func escapeCells(cells []string) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		c = strings.ReplaceAll(c, "|", `\|`)
		out[i] = strings.ReplaceAll(c, "\n", " ")
	}
	return out
}

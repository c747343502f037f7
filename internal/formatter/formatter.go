// Package formatter renders zoo tables as text or markdown.
package formatter

import (
	"io"

	"github.com/cockroachdb/errors"

	"github.com/tordrt/zoodb/internal/zoo"
)

const (
	FormatMarkdown = "markdown"
	FormatText     = "text"
)

// Formatter renders tables to a single stream
type Formatter interface {
	Format(tables ...zoo.Table) error
}

// New returns the formatter for format
func New(w io.Writer, format string) (Formatter, error) {
	switch format {
	case FormatText, "":
		return NewTextFormatter(w), nil
	case FormatMarkdown:
		return NewMarkdownFormatter(w), nil
	}
	return nil, errors.Newf("unsupported format %q (must be text or markdown)", format)
}

package formatter

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/cockroachdb/errors"

	"github.com/tordrt/zoodb/internal/zoo"
)

// MultiFileFormatter writes each table to its own file in a directory
type MultiFileFormatter struct {
	OutputDir    string
	OutputFormat string // "text" or "markdown"
}

// NewMultiFileFormatter creates a new multi-file formatter
func NewMultiFileFormatter(outputDir, format string) *MultiFileFormatter {
	return &MultiFileFormatter{
		OutputDir:    outputDir,
		OutputFormat: format,
	}
}

// Format writes an overview file plus one file per table
func (f *MultiFileFormatter) Format(tables ...zoo.Table) error {
	if err := os.MkdirAll(f.OutputDir, 0755); err != nil {
		return errors.Wrap(err, "failed to create output directory")
	}

	if err := f.writeOverview(tables); err != nil {
		return errors.Wrap(err, "failed to write overview")
	}

	for _, table := range tables {
		if err := f.writeTableFile(table); err != nil {
			return errors.Wrapf(err, "failed to write table file for %s", table.Name)
		}
	}

	return nil
}

func (f *MultiFileFormatter) writeOverview(tables []zoo.Table) error {
	ext := f.getFileExtension()
	file, err := os.Create(filepath.Join(f.OutputDir, "_overview"+ext))
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	sorted := make([]zoo.Table, len(tables))
	copy(sorted, tables)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Name < sorted[j].Name
	})

	if f.OutputFormat == FormatMarkdown {
		_, _ = fmt.Fprintf(file, "# Zoo Data Overview\n\n")
		_, _ = fmt.Fprintf(file, "Each table has a corresponding file: `<table_name>%s`\n\n", ext)
		_, _ = fmt.Fprintf(file, "## Tables\n\n")
		for _, t := range sorted {
			_, _ = fmt.Fprintf(file, "- **%s** (%s)\n", t.Name, rowCount(len(t.Rows)))
		}
		return nil
	}

	_, _ = fmt.Fprintf(file, "ZOO DATA OVERVIEW\n")
	_, _ = fmt.Fprintf(file, "Each table has a file: <table_name>%s\n\n", ext)
	for _, t := range sorted {
		_, _ = fmt.Fprintf(file, "%s (%s)\n", t.Name, rowCount(len(t.Rows)))
	}
	return nil
}

func (f *MultiFileFormatter) writeTableFile(table zoo.Table) error {
	file, err := os.Create(filepath.Join(f.OutputDir, table.Name+f.getFileExtension()))
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	if f.OutputFormat == FormatMarkdown {
		return NewMarkdownFormatter(file).FormatTable(table)
	}
	return NewTextFormatter(file).Format(table)
}

func (f *MultiFileFormatter) getFileExtension() string {
	if f.OutputFormat == FormatMarkdown {
		return ".md"
	}
	return ".txt"
}

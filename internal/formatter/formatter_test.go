package formatter

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tordrt/zoodb/internal/zoo"
)

func sampleTables() []zoo.Table {
	return []zoo.Table{
		zoo.NewTable("shops", []zoo.Shop{
			{ID: "1", Name: "Gift Hut", Type: "gifts"},
			{ID: "2", Name: "Snack | Bar", Type: "food"},
		}),
		zoo.NewTable[zoo.StorageUnit]("storage_units", nil),
	}
}

func TestTextFormatter(t *testing.T) {
	var buf bytes.Buffer
	if err := NewTextFormatter(&buf).Format(sampleTables()...); err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	out := buf.String()

	tests := []struct {
		name     string
		contains string
	}{
		{"table header", "TABLE shops (2 rows)"},
		{"column header", "p_id  name         type"},
		{"row", "1     Gift Hut     gifts"},
		{"empty table", "TABLE storage_units (0 rows)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !strings.Contains(out, tt.contains) {
				t.Errorf("Expected output to contain %q, got:\n%s", tt.contains, out)
			}
		})
	}
}

func TestMarkdownFormatter(t *testing.T) {
	var buf bytes.Buffer
	if err := NewMarkdownFormatter(&buf).Format(sampleTables()...); err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"# Zoo Data",
		"## shops",
		"| p_id | name | type |",
		"| --- | --- | --- |",
		`| 2 | Snack \| Bar | food |`,
		"## storage_units\n\n_No rows._",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	if _, err := New(&buf, "text"); err != nil {
		t.Errorf("Expected text to be supported: %v", err)
	}
	if _, err := New(&buf, "markdown"); err != nil {
		t.Errorf("Expected markdown to be supported: %v", err)
	}
	if _, err := New(&buf, "html"); err == nil {
		t.Error("Expected html to be rejected")
	}
}

func TestMultiFileFormatter(t *testing.T) {
	for _, format := range []string{FormatText, FormatMarkdown} {
		t.Run(format, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "dump")
			if err := NewMultiFileFormatter(dir, format).Format(sampleTables()...); err != nil {
				t.Fatalf("Format failed: %v", err)
			}

			ext := ".txt"
			if format == FormatMarkdown {
				ext = ".md"
			}
			for _, name := range []string{"_overview", "shops", "storage_units"} {
				if _, err := os.Stat(filepath.Join(dir, name+ext)); err != nil {
					t.Errorf("Expected %s%s to exist: %v", name, ext, err)
				}
			}

			overview, err := os.ReadFile(filepath.Join(dir, "_overview"+ext))
			if err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(string(overview), "shops") || !strings.Contains(string(overview), "2 rows") {
				t.Errorf("Expected overview to list shops, got:\n%s", overview)
			}

			shops, err := os.ReadFile(filepath.Join(dir, "shops"+ext))
			if err != nil {
				t.Fatal(err)
			}
			if strings.Contains(string(shops), "storage_units") {
				t.Errorf("Expected shops file to hold only the shops table, got:\n%s", shops)
			}
		})
	}
}

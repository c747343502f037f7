package db

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// newTestStore returns a Store connected to a fresh in-memory SQLite database
// loaded with testdata/schema_sqlite.sql and testdata/seed.sql
func newTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()

	client := NewClient(opts...)
	require.NoError(t, client.Establish(context.Background(), Credentials{URL: "sqlite://:memory:"}))
	t.Cleanup(client.Release)

	loadFixture(t, client, "schema_sqlite.sql")
	loadFixture(t, client, "seed.sql")
	return NewStore(client)
}

func loadFixture(t *testing.T, c *Client, name string) {
	t.Helper()
	content, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	execSQL(t, c, string(content))
}

// execSQL runs statements directly on the client's connection
func execSQL(t *testing.T, c *Client, statements string, args ...any) {
	t.Helper()
	_, err := c.conn.ExecContext(context.Background(), statements, args...)
	require.NoError(t, err)
}

func countRows(t *testing.T, c *Client, table, where string, args ...any) int {
	t.Helper()
	query := "SELECT COUNT(*) FROM " + table
	if where != "" {
		query += " WHERE " + where
	}
	var n int
	require.NoError(t, c.conn.QueryRowContext(context.Background(), query, args...).Scan(&n))
	return n
}

func ids[T any](records []T, id func(T) string) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = id(r)
	}
	return out
}

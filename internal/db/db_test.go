package db

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
)

func TestDSNCarriesPragmas(t *testing.T) {
	dsn := DSN("/tmp/quotes.db")
	if !strings.HasPrefix(dsn, "file:/tmp/quotes.db?") {
		t.Fatalf("unexpected dsn prefix: %s", dsn)
	}
	for _, want := range []string{"journal_mode%28WAL%29", "foreign_keys%281%29", "busy_timeout%285000%29"} {
		if !strings.Contains(dsn, want) {
			t.Fatalf("dsn %q missing %q", dsn, want)
		}
	}
}

func TestOpenEnablesWALAndForeignKeys(t *testing.T) {
	database, err := Open(context.Background(), filepath.Join(t.TempDir(), "open-test.db"))
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	defer database.Close()

	var mode string
	if err := database.QueryRow(`PRAGMA journal_mode`).Scan(&mode); err != nil {
		t.Fatalf("query journal_mode: %v", err)
	}
	if strings.ToLower(mode) != "wal" {
		t.Fatalf("journal_mode=%q, want wal", mode)
	}
}

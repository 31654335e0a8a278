package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadRecords(t *testing.T) {
	t.Run("maps rows by header", func(t *testing.T) {
		csv := "brand,description\nAcme,\"A sturdy, waterproof bag\"\nGlobex,Plain shirt\n"
		records, err := ReadRecords(strings.NewReader(csv))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(records) != 2 {
			t.Fatalf("len(records) = %d, want 2", len(records))
		}
		if records[0]["brand"] != "Acme" {
			t.Errorf("brand = %q, want Acme", records[0]["brand"])
		}
		if records[0]["description"] != "A sturdy, waterproof bag" {
			t.Errorf("description = %q", records[0]["description"])
		}
	})

	t.Run("tolerates short rows", func(t *testing.T) {
		csv := "brand,description,variations\nAcme,Bag\n"
		records, err := ReadRecords(strings.NewReader(csv))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if records[0]["variations"] != "" {
			t.Errorf("variations = %q, want empty", records[0]["variations"])
		}
	})

	t.Run("fails on empty input", func(t *testing.T) {
		_, err := ReadRecords(strings.NewReader(""))
		if err == nil {
			t.Error("expected error for empty input")
		}
	})
}

func TestLoadCSV(t *testing.T) {
	t.Run("loads records from disk", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "products.csv")
		if err := os.WriteFile(path, []byte("brand\nAcme\n"), 0o644); err != nil {
			t.Fatal(err)
		}

		records, err := LoadCSV(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(records) != 1 || records[0]["brand"] != "Acme" {
			t.Errorf("records = %v", records)
		}
	})

	t.Run("fails for missing file", func(t *testing.T) {
		_, err := LoadCSV(filepath.Join(t.TempDir(), "missing.csv"))
		if err == nil {
			t.Error("expected error for missing file")
		}
	})
}

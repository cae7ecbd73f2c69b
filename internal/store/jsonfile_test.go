package store

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/coinop-logan/personal-finance-display/internal/core"
)

func TestJSONStoreLoadMissingFile(t *testing.T) {
	s := NewJSONStore(filepath.Join(t.TempDir(), "data.json"))

	c, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if len(c) != 0 {
		t.Fatalf("expected empty collection, got %v", c)
	}
}

func TestJSONStoreLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	s := NewJSONStore(path)

	c, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("corrupt document must not fail the read: %v", err)
	}
	if len(c) != 0 {
		t.Fatalf("expected empty collection, got %v", c)
	}
}

func TestJSONStoreSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	s := NewJSONStore(path)
	ctx := context.Background()

	in := core.Collection{
		{ID: 1, Date: "2024-01-15", Checking: 1200.50, CreditAvailable: 300, HoursWorked: 40, PayPerHour: 22.5, Note: "payday"},
		{ID: 2, Date: "2024-02-01", OtherIncoming: 15},
	}
	if err := s.Save(ctx, in); err != nil {
		t.Fatalf("save: %v", err)
	}

	out, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(out))
	}
	if out[0] != in[0] || out[1] != in[1] {
		t.Fatalf("round trip mismatch: %v vs %v", out, in)
	}
}

func TestJSONStoreSaveIsIndented(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	s := NewJSONStore(path)

	if err := s.Save(context.Background(), core.Collection{{ID: 1, Date: "2024-01-01"}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !strings.Contains(string(data), "\n  ") {
		t.Fatalf("document not indented:\n%s", data)
	}
}

func TestJSONStoreSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s := NewJSONStore(filepath.Join(dir, "data.json"))

	if err := s.Save(context.Background(), core.Collection{}); err != nil {
		t.Fatalf("save: %v", err)
	}
	names, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(names) != 1 || names[0].Name() != "data.json" {
		t.Fatalf("expected only data.json, got %v", names)
	}
}

package storage

import (
	"path/filepath"
	"strings"
	"testing"
)

func testKV(t *testing.T, kv KV) {
	t.Helper()

	if _, ok, err := kv.Get("tasks"); err != nil || ok {
		t.Fatalf("expected missing key, got ok=%v err=%v", ok, err)
	}

	if err := kv.Set("tasks", `[{"id":"1"}]`); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	got, ok, err := kv.Get("tasks")
	if err != nil || !ok {
		t.Fatalf("expected key present, got ok=%v err=%v", ok, err)
	}
	if got != `[{"id":"1"}]` {
		t.Errorf("unexpected value %q", got)
	}

	// last write wins
	if err := kv.Set("tasks", "[]"); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}
	got, _, _ = kv.Get("tasks")
	if got != "[]" {
		t.Errorf("expected overwritten value, got %q", got)
	}

	if _, ok, _ := kv.Get("lists"); ok {
		t.Error("keys must be independent")
	}
}

func TestMemory(t *testing.T) {
	testKV(t, NewMemory())
}

func TestSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "tasks.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	defer s.Close()

	testKV(t, s)
}

func TestSQLiteReopenKeepsValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	if err := s.Set("lists", `[{"id":"work"}]`); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer s.Close()
	got, ok, err := s.Get("lists")
	if err != nil || !ok || got != `[{"id":"work"}]` {
		t.Errorf("expected persisted value, got %q ok=%v err=%v", got, ok, err)
	}
}

func TestOpenEmptyPath(t *testing.T) {
	if _, err := Open(""); err == nil {
		t.Error("expected error for empty path")
	}
}

func TestSQLiteDSN(t *testing.T) {
	if got := sqliteDSN("file:mem?mode=memory"); got != "file:mem?mode=memory" {
		t.Errorf("file: DSN should pass through, got %q", got)
	}
	got := sqliteDSN("/tmp/x.db")
	if !strings.HasPrefix(got, "file:///tmp/x.db?") || !strings.Contains(got, "mode=rwc") {
		t.Errorf("unexpected DSN %q", got)
	}
}

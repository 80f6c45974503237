package prefabs

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"
)

func TestWatcherReportsSpecChanges(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, BombFile), []byte("name: bomb\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	deadline := time.Now().Add(5 * time.Second)
	var got []string
	for time.Now().Before(deadline) {
		got = append(got, w.Poll()...)
		if slices.Contains(got, BombFile) {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	if !slices.Contains(got, BombFile) {
		t.Fatalf("expected %s change, got %v", BombFile, got)
	}
	if slices.Contains(got, "notes.txt") {
		t.Fatalf("non-spec files must be ignored, got %v", got)
	}
}

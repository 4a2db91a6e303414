package statedir

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestRunLogPath(t *testing.T) {
	start := time.Date(2025, 3, 4, 15, 6, 7, 0, time.UTC)
	got := RunLogPath("/state/logs", start, "luminol")
	want := filepath.Join("/state/logs", "2025-03-04_15-06-07", "luminol.log")
	if got != want {
		t.Fatalf("RunLogPath = %q, want %q", got, want)
	}
}

func TestSweepStaleDeletesOldDirsKeepsFresh(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	old := now.Add(-10 * 24 * time.Hour)
	fresh := now.Add(-2 * 24 * time.Hour)

	mustMkdir(t, filepath.Join(dir, old.Format("2006-01-02_15-04-05")))
	mustMkdir(t, filepath.Join(dir, fresh.Format("2006-01-02_15-04-05")))
	mustMkdir(t, filepath.Join(dir, "not-a-timestamp"))

	SweepStale(dir, now)

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	names := make(map[string]bool)
	for _, e := range entries {
		names[e.Name()] = true
	}
	if names[old.Format("2006-01-02_15-04-05")] {
		t.Fatalf("expected stale log directory to be removed")
	}
	if !names[fresh.Format("2006-01-02_15-04-05")] {
		t.Fatalf("expected fresh log directory to survive the sweep")
	}
	if !names["not-a-timestamp"] {
		t.Fatalf("expected non-timestamp directory to be left alone")
	}
}

func TestSweepStaleOnMissingDirIsNoop(t *testing.T) {
	SweepStale(filepath.Join(t.TempDir(), "does-not-exist"), time.Now())
}

func mustMkdir(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("mkdir %q: %v", path, err)
	}
}

// Package statedir manages Luminol's persisted run state: timestamped log
// directories under $XDG_STATE_HOME/luminol/logs/, swept for staleness at
// startup.
package statedir

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const maxLogAge = 7 * 24 * time.Hour

// LogsDir resolves $XDG_STATE_HOME/luminol/logs, falling back to
// $HOME/.local/state/luminol/logs.
func LogsDir() (string, error) {
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, "luminol", "logs"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("statedir: cannot resolve home directory: %w", err)
	}
	return filepath.Join(home, ".local", "state", "luminol", "logs"), nil
}

// RunLogPath returns the path for this invocation's log file, named by the
// start time and the invoked command.
func RunLogPath(dir string, start time.Time, command string) string {
	return filepath.Join(dir, start.Format("2006-01-02_15-04-05"), command+".log")
}

// SweepStale deletes log directories older than 7 days under dir. This is
// an advisory startup step: failures are swallowed, never surfaced as
// warnings or fatal errors.
func SweepStale(dir string, now time.Time) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}

	cutoff := now.Add(-maxLogAge)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		ts, err := time.Parse("2006-01-02_15-04-05", entry.Name())
		if err != nil {
			continue
		}
		if ts.Before(cutoff) {
			_ = os.RemoveAll(filepath.Join(dir, entry.Name()))
		}
	}
}

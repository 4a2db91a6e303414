package subprocess

import (
	"context"
	"testing"

	"github.com/hashicorp/go-hclog"
)

func TestRunReloadCommandsSkipsNonRunningTarget(t *testing.T) {
	runner := NewRunner(false, hclog.NewNullLogger())

	// A reload command targeting an executable that certainly isn't
	// running should be skipped rather than attempted and reported as a
	// failure.
	errs := runner.RunReloadCommands(context.Background(), []string{
		"luminol-reload-target-that-does-not-exist-xyz --reload",
	})
	if len(errs) != 0 {
		t.Fatalf("expected reload command for a non-running target to be skipped without error, got %v", errs)
	}
}

func TestExecutableNameExtractsBareName(t *testing.T) {
	cases := map[string]string{
		"":                      "",
		"kitty @ set-colors":    "kitty",
		"/usr/bin/waybar --cfg": "waybar",
		"  ":                    "",
	}
	for input, want := range cases {
		if got := executableName(input); got != want {
			t.Fatalf("executableName(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestIsProcessRunningForUnknownName(t *testing.T) {
	running, err := IsProcessRunning("luminol-reload-target-that-does-not-exist-xyz")
	if err != nil {
		t.Fatalf("IsProcessRunning returned error: %v", err)
	}
	if running {
		t.Fatalf("expected unknown process name to be reported as not running")
	}
}

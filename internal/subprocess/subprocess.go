// Package subprocess runs the wallpaper-setting command and the
// post-run reload commands, sequentially and with bounded timeouts,
// grounded on the teacher's hook-script execution pattern.
package subprocess

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/go-ps"
)

const (
	wallpaperTimeout = 30 * time.Second
	reloadTimeout    = 10 * time.Second
)

// Runner executes the wallpaper-setter and reload-commands sequentially.
type Runner struct {
	UseShell bool
	Logger   hclog.Logger
}

// NewRunner constructs a Runner.
func NewRunner(useShell bool, logger hclog.Logger) *Runner {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Runner{UseShell: useShell, Logger: logger}
}

// SetWallpaper runs the configured wallpaper-setting command template,
// substituting {wallpaper_path} with imagePath.
func (r *Runner) SetWallpaper(ctx context.Context, commandTemplate, imagePath string) error {
	if strings.TrimSpace(commandTemplate) == "" {
		return nil
	}
	command := strings.ReplaceAll(commandTemplate, "{wallpaper_path}", imagePath)
	return r.run(ctx, command, wallpaperTimeout, "wallpaper-command")
}

// RunReloadCommands runs each reload command in declaration order,
// waiting for each to finish before starting the next. A command is
// skipped (not an error) when its target executable isn't currently
// running, mirroring the teacher's kitty reload-by-signal discovery
// generalized to an arbitrary is-it-running check.
func (r *Runner) RunReloadCommands(ctx context.Context, commands []string) []error {
	var errs []error
	for _, command := range commands {
		target := executableName(command)
		if target != "" {
			running, err := IsProcessRunning(target)
			if err != nil {
				r.Logger.Debug("process discovery failed, running reload command anyway", "target", target, "error", err)
			} else if !running {
				r.Logger.Debug("skipping reload command, target process not running", "target", target, "command", command)
				continue
			}
		}
		if err := r.run(ctx, command, reloadTimeout, "reload-commands"); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// executableName extracts the bare executable name (no path, no
// arguments) a reload command targets, for the IsProcessRunning check.
func executableName(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return ""
	}
	return filepath.Base(fields[0])
}

func (r *Runner) run(ctx context.Context, command string, timeout time.Duration, label string) error {
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var cmd *exec.Cmd
	if r.UseShell {
		cmd = exec.CommandContext(runCtx, "sh", "-c", command) // #nosec G204 -- user-configured command, use-shell opted in explicitly
	} else {
		fields := strings.Fields(command)
		if len(fields) == 0 {
			return nil
		}
		cmd = exec.CommandContext(runCtx, fields[0], fields[1:]...) // #nosec G204 -- user-configured command
	}
	cmd.Env = os.Environ()

	r.Logger.Debug("running subprocess", "label", label, "command", command)

	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s %q failed: %w: %s", label, command, err, strings.TrimSpace(string(output)))
	}
	if len(output) > 0 {
		r.Logger.Debug("subprocess output", "label", label, "output", strings.TrimSpace(string(output)))
	}
	return nil
}

// IsProcessRunning reports whether a process with the given executable
// name is currently running, used to skip a reload command when its
// target process isn't up (mirrors the teacher's kitty reload-by-signal
// discovery, generalized to arbitrary reload targets).
func IsProcessRunning(name string) (bool, error) {
	processes, err := ps.Processes()
	if err != nil {
		return false, fmt.Errorf("subprocess: cannot list processes: %w", err)
	}
	for _, p := range processes {
		if p.Executable() == name {
			return true, nil
		}
	}
	return false, nil
}

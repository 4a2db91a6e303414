// Package driver orchestrates the full Luminol pipeline: sampling,
// clustering, scoring, role assignment, per-application rendering, and the
// wallpaper-setter/reload-commands subprocess steps.
package driver

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/dheemansa/luminol/internal/config"
	"github.com/dheemansa/luminol/internal/kmeans"
	"github.com/dheemansa/luminol/internal/logging"
	"github.com/dheemansa/luminol/internal/preview"
	"github.com/dheemansa/luminol/internal/render"
	"github.com/dheemansa/luminol/internal/role"
	"github.com/dheemansa/luminol/internal/sampler"
	"github.com/dheemansa/luminol/internal/scorer"
	"github.com/dheemansa/luminol/internal/statedir"
	"github.com/dheemansa/luminol/internal/subprocess"
)

// Exit codes, per the CLI contract.
const (
	ExitSuccess        = 0
	ExitBadCLI         = 2
	ExitBadConfig      = 3
	ExitBadImage       = 4
	ExitIOFailure      = 5
	ExitPartialSuccess = 6
)

// Options carries the fully-resolved CLI invocation.
type Options struct {
	ImagePath   string
	ConfigPath  string
	Theme       role.ThemeType // empty means no CLI override
	Quality     sampler.Quality
	Verbose     bool
	DryRun      bool
	Preview     bool
	SavePalette string
	Logger      hclog.Logger
}

// Diagnostics accumulates every fatal and warning diagnostic produced
// during a run, for end-of-run reporting. Fatals are split by the §7
// taxonomy: config-class (bad app configuration — missing [app.colors],
// unknown source role, invalid color-format, missing template) vs.
// I/O-class (the output write itself failed), since they map to different
// exit codes when every configured app fails.
type Diagnostics struct {
	ConfigFatals []error
	IOFatals     []error
	Warnings     []string
}

func (d *Diagnostics) addConfigFatal(err error) { d.ConfigFatals = append(d.ConfigFatals, err) }
func (d *Diagnostics) addIOFatal(err error)     { d.IOFatals = append(d.IOFatals, err) }
func (d *Diagnostics) addWarning(msg string)    { d.Warnings = append(d.Warnings, msg) }
func (d *Diagnostics) empty() bool {
	return len(d.ConfigFatals) == 0 && len(d.IOFatals) == 0 && len(d.Warnings) == 0
}
func (d *Diagnostics) fatals() []error {
	all := make([]error, 0, len(d.ConfigFatals)+len(d.IOFatals))
	all = append(all, d.ConfigFatals...)
	all = append(all, d.IOFatals...)
	return all
}

// buildLogger constructs the run's logger and, when logOutput is true,
// tees it to a timestamped run-log file under $XDG_STATE_HOME/luminol/logs
// (spec §6 "Persisted state"). The returned close func flushes and closes
// that file, if one was opened; it is always safe to call.
func buildLogger(opts Options, logOutput bool) (hclog.Logger, func()) {
	noop := func() {}

	if opts.Logger != nil {
		return opts.Logger, noop
	}
	if opts.DryRun {
		return logging.Discard(), noop
	}

	sink := io.Writer(os.Stderr)
	closeFn := noop

	if logOutput {
		if logsDir, err := statedir.LogsDir(); err == nil {
			logPath := statedir.RunLogPath(logsDir, time.Now(), "luminol")
			if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err == nil {
				if f, err := os.Create(logPath); err == nil { // #nosec G304 -- path derived from XDG state dir, not user input
					sink = io.MultiWriter(os.Stderr, f)
					closeFn = func() { _ = f.Close() }
				}
			}
		}
	}

	return logging.New(opts.Verbose, sink), closeFn
}

// Run executes one full Luminol invocation and returns the process exit code.
func Run(ctx context.Context, opts Options) int {
	if opts.ImagePath == "" {
		fmt.Fprintln(os.Stderr, "luminol: no image path given (use -i/--image or a positional argument)")
		return ExitBadCLI
	}

	cfgPath := opts.ConfigPath
	if cfgPath == "" {
		p, err := config.ConfigPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "luminol: %v\n", err)
			return ExitBadConfig
		}
		cfgPath = p
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "luminol: %v\n", err)
		return ExitBadConfig
	}

	logger, closeLog := buildLogger(opts, cfg.Global.LogOutput)
	defer closeLog()

	if logsDir, err := statedir.LogsDir(); err == nil {
		statedir.SweepStale(logsDir, time.Now())
	}

	diag := &Diagnostics{}

	img, err := sampler.Load(opts.ImagePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "luminol: %v\n", err)
		return ExitBadImage
	}

	target := sampler.DownscaleTarget(opts.Quality)
	result, err := sampler.Sample(img, target)
	if err != nil {
		fmt.Fprintf(os.Stderr, "luminol: %v\n", err)
		return ExitBadImage
	}

	maxIter := kmeans.MaxIterationsForQuality(opts.Quality)
	clusters, err := kmeans.Run(result.Points, result.Width, result.Height, maxIter)
	if err != nil {
		fmt.Fprintf(os.Stderr, "luminol: %v\n", err)
		return ExitBadImage
	}

	candidates := scorer.Rank(clusters)

	themeOverride := opts.Theme
	if themeOverride == "" && cfg.Global.ThemeType != "" {
		themeOverride = role.ThemeType(cfg.Global.ThemeType)
	}
	theme := role.ClassifyTheme(candidates, themeOverride)
	avgL, stdDevL := role.LightnessStats(candidates)
	logger.Debug("theme classification", "theme", theme, "avg_l", avgL, "stddev_l", stdDevL)

	palette, roleWarnings := role.Assign(candidates, theme)
	for _, w := range roleWarnings {
		diag.addWarning(w.Error())
		logger.Warn("role assignment", "role", w.Role, "message", w.Message)
	}

	runner := subprocess.NewRunner(cfg.Global.UseShell, logger)
	if !opts.DryRun {
		if err := runner.SetWallpaper(ctx, cfg.Global.WallpaperCommand, opts.ImagePath); err != nil {
			diag.addWarning(err.Error())
			logger.Warn("wallpaper-command failed", "error", err)
		}
	}

	appNames := make([]string, 0, len(cfg.Apps))
	for name := range cfg.Apps {
		appNames = append(appNames, name)
	}
	sort.Strings(appNames)

	succeeded := 0
	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, name := range appNames {
		app := cfg.Apps[name]
		wg.Add(1)
		go func(name string, app config.AppConfig) {
			defer wg.Done()

			var templateContents []byte
			mode := render.ResolveMode(app)
			if mode == render.ModeTemplate {
				tmplPath, err := render.ResolveTemplatePath(app.Template)
				if err != nil {
					mu.Lock()
					diag.addConfigFatal(fmt.Errorf("%s: %w", name, err))
					mu.Unlock()
					return
				}
				contents, err := os.ReadFile(tmplPath) // #nosec G304 -- user-configured template path
				if err != nil {
					mu.Lock()
					diag.addConfigFatal(fmt.Errorf("%s: cannot read template %q: %w", name, tmplPath, err))
					mu.Unlock()
					return
				}
				templateContents = contents
			}

			out, warnings, err := render.Render(name, app, palette, templateContents)
			if err != nil {
				mu.Lock()
				diag.addConfigFatal(err)
				mu.Unlock()
				logger.Error("render failed", "app", name, "error", err)
				return
			}
			for _, w := range warnings {
				mu.Lock()
				diag.addWarning(w.Error())
				mu.Unlock()
				logger.Warn("render warning", "app", name, "message", w.Message)
			}

			outPath, err := render.ResolveOutputPath(name, app.OutputFile)
			if err != nil {
				mu.Lock()
				diag.addConfigFatal(fmt.Errorf("%s: %w", name, err))
				mu.Unlock()
				return
			}

			if opts.DryRun {
				logger.Debug("dry-run: would write", "app", name, "path", outPath, "bytes", len(out))
				mu.Lock()
				succeeded++
				mu.Unlock()
				return
			}

			if err := render.WriteAtomic(outPath, out, 0o644); err != nil {
				mu.Lock()
				diag.addIOFatal(fmt.Errorf("%s: write %q: %w", name, outPath, err))
				mu.Unlock()
				logger.Error("write failed", "app", name, "path", outPath, "error", err)
				return
			}
			mu.Lock()
			succeeded++
			mu.Unlock()
		}(name, app)
	}
	wg.Wait()

	if !opts.DryRun && len(cfg.Global.ReloadCommands) > 0 {
		for _, err := range runner.RunReloadCommands(ctx, cfg.Global.ReloadCommands) {
			diag.addWarning(err.Error())
			logger.Warn("reload-commands failed", "error", err)
		}
	}

	if opts.Preview {
		fmt.Print(preview.Table(palette, theme, preview.SupportsColour()))
	}
	if opts.SavePalette != "" {
		data, err := preview.ToJSON(palette, theme)
		if err != nil {
			diag.addWarning(fmt.Sprintf("--save-palette: %v", err))
		} else if err := render.WriteAtomic(opts.SavePalette, data, 0o644); err != nil {
			diag.addWarning(fmt.Sprintf("--save-palette: %v", err))
		}
	}

	for _, msg := range diag.Warnings {
		fmt.Fprintf(os.Stderr, "luminol: warning: %s\n", msg)
	}
	for _, e := range diag.fatals() {
		fmt.Fprintf(os.Stderr, "luminol: error: %v\n", e)
	}

	switch {
	// Every configured app failed and at least one failure was an actual
	// I/O failure (the write itself, not the configuration) -> exit 5.
	case len(cfg.Apps) > 0 && succeeded == 0 && len(diag.IOFatals) > 0:
		return ExitIOFailure
	// Every configured app failed, purely on bad per-app configuration
	// (spec §8 scenario 6: missing [app.colors] under remap-colors, etc.)
	// -> exit 3, not the generic I/O-failure code.
	case len(cfg.Apps) > 0 && succeeded == 0 && len(diag.ConfigFatals) > 0:
		return ExitBadConfig
	case !diag.empty():
		return ExitPartialSuccess
	default:
		return ExitSuccess
	}
}

// Package logging wires the leveled hclog logger that the driver builds
// for a run and passes on to the subprocess runner.
package logging

import (
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
)

// New returns an hclog.Logger named "luminol", writing to w at Debug level
// when verbose is true and at Warn level otherwise.
func New(verbose bool, w io.Writer) hclog.Logger {
	level := hclog.Warn
	if verbose {
		level = hclog.Debug
	}
	if w == nil {
		w = os.Stderr
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "luminol",
		Output: w,
		Level:  level,
		Color:  hclog.AutoColor,
	})
}

// Discard returns a logger that drops everything, used for tests and
// --dry-run paths where log output would otherwise clutter assertions.
func Discard() hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:   "luminol",
		Output: io.Discard,
		Level:  hclog.Off,
	})
}

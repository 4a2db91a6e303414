package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ResolveOutputPath implements §output-writing path resolution: a path
// containing a separator or beginning with "~" is treated as absolute
// (after "~" and environment expansion); otherwise the file is placed
// under $XDG_CACHE_HOME/luminol/<app>/<output-file>.
func ResolveOutputPath(appName, outputFile string) (string, error) {
	if strings.ContainsRune(outputFile, filepath.Separator) || strings.HasPrefix(outputFile, "~") {
		expanded := os.ExpandEnv(outputFile)
		if strings.HasPrefix(expanded, "~") {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("render: cannot resolve home directory: %w", err)
			}
			expanded = filepath.Join(home, strings.TrimPrefix(expanded, "~"))
		}
		return filepath.Abs(expanded)
	}

	cacheDir := os.Getenv("XDG_CACHE_HOME")
	if cacheDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("render: cannot resolve home directory: %w", err)
		}
		cacheDir = filepath.Join(home, ".cache")
	}
	return filepath.Join(cacheDir, "luminol", appName, outputFile), nil
}

// WriteAtomic writes data to path by creating a sibling temp file and
// renaming it into place, so a crash or interrupt never leaves a
// partially written output file. Grounded on the teacher corpus's
// create-temp-then-rename idiom for safe file replacement.
func WriteAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("render: cannot create directory %q: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".luminol-tmp-*")
	if err != nil {
		return fmt.Errorf("render: cannot create temp file in %q: %w", dir, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("render: cannot write temp file %q: %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("render: cannot close temp file %q: %w", tmpPath, err)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("render: cannot chmod temp file %q: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("render: cannot rename temp file into place at %q: %w", path, err)
	}
	return nil
}

// ResolveTemplatePath resolves a template reference: a bare filename is
// looked up under $XDG_CONFIG_HOME/luminol/templates/, an absolute path is
// used as-is.
func ResolveTemplatePath(ref string) (string, error) {
	if filepath.IsAbs(ref) {
		return ref, nil
	}
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("render: cannot resolve home directory: %w", err)
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "luminol", "templates", ref), nil
}

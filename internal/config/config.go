// Package config loads Luminol's TOML configuration: a global section plus
// one section per managed application, each optionally carrying a colour
// remap table.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/pelletier/go-toml/v2"
)

// File is the full decoded configuration document.
type File struct {
	Global GlobalConfig           `toml:"global"`
	Apps   map[string]AppConfig   `toml:"-"`
}

// rawFile decodes only the [global] section. App sections are discovered
// by Load through a separate generic decode of the whole document, since
// app names are not known ahead of time and [global] must not be mistaken
// for an app.
type rawFile struct {
	Global GlobalConfig `toml:"global"`
}

// GlobalConfig holds cross-application settings.
type GlobalConfig struct {
	WallpaperCommand string   `toml:"wallpaper-command"`
	ThemeType        string   `toml:"theme-type"`
	ReloadCommands   []string `toml:"reload-commands"`
	UseShell         bool     `toml:"use-shell"`
	LogOutput        bool     `toml:"log-output"`
}

// AppConfig holds one managed application's rendering configuration.
type AppConfig struct {
	OutputFile  string      `toml:"output-file"`
	ColorFormat string      `toml:"color-format"`
	Syntax      string      `toml:"syntax"`
	Template    string      `toml:"template"`
	RemapColors bool        `toml:"remap-colors"`
	Colors      ColorBindings `toml:"colors"`
}

// ColorBindings is a map of custom binding name to ColorBinding. TOML maps
// have no inherent ordering; OrderedKeys returns the binding names sorted
// so that rendering order is stable and deterministic across runs, per the
// determinism invariant (identical config + image bytes produce identical
// output).
type ColorBindings map[string]ColorBinding

// OrderedKeys returns the binding names in a deterministic (sorted) order.
func (c ColorBindings) OrderedKeys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ColorBinding is either a bare string (a source role name, transform-free)
// or an inline table with an explicit source plus transforms.
type ColorBinding struct {
	Source      string
	Hue         *float64
	Saturation  *float64
	Brightness  *float64
	Contrast    *float64
	Temperature *float64
	Opacity     *float64
}

// UnmarshalTOML implements a custom decode so a binding may appear either
// as a bare string shorthand or as an inline table; Load calls it for each
// entry of an app's generically decoded colors table. Grounded on the
// hand-written decode style used throughout the plugin config loaders this
// project is descended from.
func (c *ColorBinding) UnmarshalTOML(value any) error {
	switch v := value.(type) {
	case string:
		c.Source = v
		return nil
	case map[string]any:
		source, ok := v["source"].(string)
		if !ok || source == "" {
			return fmt.Errorf("config: color binding missing required \"source\" field")
		}
		c.Source = source
		for key, ptr := range map[string]**float64{
			"hue": &c.Hue, "saturation": &c.Saturation, "brightness": &c.Brightness,
			"contrast": &c.Contrast, "temperature": &c.Temperature, "opacity": &c.Opacity,
		} {
			if raw, ok := v[key]; ok {
				f, err := toFloat(raw)
				if err != nil {
					return fmt.Errorf("config: color binding %q: %w", key, err)
				}
				*ptr = &f
			}
		}
		return nil
	default:
		return fmt.Errorf("config: color binding must be a string or an inline table, got %T", value)
	}
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case int64:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("unsupported value type %T", v)
	}
}

// ConfigPath resolves the configuration file path per XDG conventions:
// $XDG_CONFIG_HOME/luminol/config.toml, falling back to
// $HOME/.config/luminol/config.toml.
func ConfigPath() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "luminol", "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: cannot resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", "luminol", "config.toml"), nil
}

// Load reads and decodes the configuration file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-configured config path
	if err != nil {
		return nil, fmt.Errorf("config: cannot read %q: %w", path, err)
	}

	var raw rawFile
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("config: cannot parse %q: %w", path, err)
	}

	var generic map[string]any
	if err := toml.Unmarshal(data, &generic); err != nil {
		return nil, fmt.Errorf("config: cannot parse %q: %w", path, err)
	}

	apps := make(map[string]AppConfig)
	for name, section := range generic {
		if name == "global" {
			continue
		}
		table, _ := section.(map[string]any)
		rawColors, hasColors := table["colors"]
		delete(table, "colors")
		tableBytes, err := toml.Marshal(section)
		if err != nil {
			return nil, fmt.Errorf("config: app %q: %w", name, err)
		}
		var app AppConfig
		if err := toml.Unmarshal(tableBytes, &app); err != nil {
			return nil, fmt.Errorf("config: app %q: %w", name, err)
		}
		colorsTable, isTable := rawColors.(map[string]any)
		if hasColors && !isTable {
			return nil, fmt.Errorf("config: app %q: colors must be a table", name)
		}
		app.Colors = make(ColorBindings, len(colorsTable))
		for key, raw := range colorsTable {
			var binding ColorBinding
			if err := binding.UnmarshalTOML(raw); err != nil {
				return nil, fmt.Errorf("config: app %q: colors.%s: %w", name, key, err)
			}
			app.Colors[key] = binding
		}
		apps[name] = app
	}

	return &File{Global: raw.Global, Apps: apps}, nil
}

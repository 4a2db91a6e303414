// Package render implements Luminol's three-mode rendering engine: Default,
// Custom Mapping, and Template, plus the atomic output writer.
package render

import (
	"fmt"
	"strings"

	"github.com/dheemansa/luminol/internal/colourmodel"
	"github.com/dheemansa/luminol/internal/config"
	"github.com/dheemansa/luminol/internal/role"
	"github.com/dheemansa/luminol/internal/transform"
)

// Mode identifies which of the three rendering state-machine branches
// applies to an application.
type Mode string

const (
	ModeDefault  Mode = "default"
	ModeCustom   Mode = "custom"
	ModeTemplate Mode = "template"
)

// ResolveMode implements the fixed precedence: template set wins, then
// remap-colors, else Default.
func ResolveMode(app config.AppConfig) Mode {
	if strings.TrimSpace(app.Template) != "" {
		return ModeTemplate
	}
	if app.RemapColors {
		return ModeCustom
	}
	return ModeDefault
}

// FatalError is a structured, actionable rendering failure.
type FatalError struct {
	App        string
	KeyPath    string
	Message    string
	Suggestion string
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("%s: %s (%s): %s", e.App, e.KeyPath, e.Message, e.Suggestion)
}

// Warning is a non-fatal rendering diagnostic.
type Warning struct {
	App     string
	Message string
}

func (w Warning) Error() string { return w.Message }

// Render produces the output bytes for one application, given the app's
// name, its config record, the semantic palette, and template file
// contents (nil unless Mode is Template).
func Render(appName string, app config.AppConfig, palette role.Palette, templateContents []byte) ([]byte, []Warning, error) {
	format := colourmodel.Format(app.ColorFormat)
	if !format.IsValid() {
		return nil, nil, &FatalError{
			App: appName, KeyPath: "color-format", Message: fmt.Sprintf("invalid color format %q", app.ColorFormat),
			Suggestion: "use one of hex6, hex8, rgb, rgba, rgb_decimal, rgba_decimal",
		}
	}

	switch ResolveMode(app) {
	case ModeTemplate:
		return renderTemplate(appName, app, palette, format, templateContents)
	case ModeCustom:
		return renderCustom(appName, app, palette, format)
	default:
		return renderDefault(appName, app, palette, format)
	}
}

func renderDefault(appName string, app config.AppConfig, palette role.Palette, format colourmodel.Format) ([]byte, []Warning, error) {
	var buf strings.Builder
	for _, name := range role.UIRoles {
		c, err := palette.Lookup(name)
		if err != nil {
			return nil, nil, &FatalError{App: appName, KeyPath: "palette", Message: err.Error(), Suggestion: "this is an internal invariant violation"}
		}
		colourStr, err := c.Format(format)
		if err != nil {
			return nil, nil, &FatalError{App: appName, KeyPath: "color-format", Message: err.Error(), Suggestion: "check color-format value"}
		}
		line := substitutePattern(app.Syntax, name, colourStr)
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
	return []byte(buf.String()), nil, nil
}

func renderCustom(appName string, app config.AppConfig, palette role.Palette, format colourmodel.Format) ([]byte, []Warning, error) {
	if len(app.Colors) == 0 {
		return nil, nil, &FatalError{
			App: appName, KeyPath: "colors", Message: "remap-colors is true but [app.colors] is missing or empty",
			Suggestion: fmt.Sprintf("add a [%s.colors] table with at least one binding", appName),
		}
	}

	var warnings []Warning
	var buf strings.Builder

	for _, customName := range app.Colors.OrderedKeys() {
		binding := app.Colors[customName]
		source, err := palette.Lookup(binding.Source)
		if err != nil {
			return nil, nil, &FatalError{
				App: appName, KeyPath: fmt.Sprintf("colors.%s.source", customName), Message: err.Error(),
				Suggestion: "source must name one of the 29 semantic roles",
			}
		}

		transformed, tWarnings := transform.Apply(source, bindingTransforms(binding))
		for _, w := range tWarnings {
			warnings = append(warnings, Warning{App: appName, Message: w.Error()})
		}

		colourStr, err := transformed.Format(format)
		if err != nil {
			return nil, nil, &FatalError{App: appName, KeyPath: "color-format", Message: err.Error(), Suggestion: "check color-format value"}
		}

		buf.WriteString(substitutePattern(app.Syntax, customName, colourStr))
		buf.WriteByte('\n')
	}

	return []byte(buf.String()), warnings, nil
}

func bindingTransforms(b config.ColorBinding) []transform.Transform {
	var ts []transform.Transform
	add := func(kind string, v *float64) {
		if v != nil {
			ts = append(ts, transform.Transform{Kind: kind, Value: *v})
		}
	}
	add("hue", b.Hue)
	add("saturation", b.Saturation)
	add("brightness", b.Brightness)
	add("contrast", b.Contrast)
	add("temperature", b.Temperature)
	add("opacity", b.Opacity)
	return ts
}

func substitutePattern(syntax, name, colour string) string {
	line := strings.ReplaceAll(syntax, "{name}", name)
	line = strings.ReplaceAll(line, "{color}", colour)
	return line
}

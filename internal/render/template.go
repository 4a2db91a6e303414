package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dheemansa/luminol/internal/colourmodel"
	"github.com/dheemansa/luminol/internal/config"
	"github.com/dheemansa/luminol/internal/role"
	"github.com/dheemansa/luminol/internal/transform"
)

const placeholderToken = "placeholder"

// derivePrefixSuffix extracts the literal text surrounding the first
// occurrence of the token "placeholder" in syntax, using it as a fixed
// prefix/suffix pair. This is a plain substring split, not a parser;
// nested braces are never interpreted.
func derivePrefixSuffix(syntax string) (prefix, suffix string, ok bool) {
	idx := strings.Index(syntax, placeholderToken)
	if idx < 0 {
		return "", "", false
	}
	prefix = syntax[:idx]
	suffix = syntax[idx+len(placeholderToken):]
	return prefix, suffix, true
}

func renderTemplate(appName string, app config.AppConfig, palette role.Palette, format colourmodel.Format, templateContents []byte) ([]byte, []Warning, error) {
	prefix, suffix, ok := derivePrefixSuffix(app.Syntax)
	if !ok {
		return nil, nil, &FatalError{
			App: appName, KeyPath: "syntax", Message: fmt.Sprintf("syntax %q does not contain the literal token %q", app.Syntax, placeholderToken),
			Suggestion: "include the literal word \"placeholder\" in syntax, e.g. \"{placeholder}\"",
		}
	}

	candidates, warnings, err := templateCandidates(appName, app, palette, format)
	if err != nil {
		return nil, nil, err
	}

	names := make([]string, 0, len(candidates))
	for name := range candidates {
		names = append(names, name)
	}
	sort.Strings(names)

	out := string(templateContents)
	for _, name := range names {
		out = strings.ReplaceAll(out, prefix+name+suffix, candidates[name])
	}

	return []byte(out), warnings, nil
}

// templateCandidates resolves the candidate placeholder name -> formatted
// colour mapping, honouring remap-colors' effect on which names are valid
// and whether transforms are permitted.
func templateCandidates(appName string, app config.AppConfig, palette role.Palette, format colourmodel.Format) (map[string]string, []Warning, error) {
	result := make(map[string]string)

	if !app.RemapColors {
		for _, name := range role.AllRoles() {
			c, err := palette.Lookup(name)
			if err != nil {
				continue
			}
			s, err := c.Format(format)
			if err != nil {
				return nil, nil, &FatalError{App: appName, KeyPath: "color-format", Message: err.Error(), Suggestion: "check color-format value"}
			}
			result[name] = s
		}
		return result, nil, nil
	}

	if len(app.Colors) == 0 {
		return nil, nil, &FatalError{
			App: appName, KeyPath: "colors", Message: "remap-colors is true but [app.colors] is missing or empty",
			Suggestion: fmt.Sprintf("add a [%s.colors] table with at least one binding", appName),
		}
	}

	var warnings []Warning
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
		s, err := transformed.Format(format)
		if err != nil {
			return nil, nil, &FatalError{App: appName, KeyPath: "color-format", Message: err.Error(), Suggestion: "check color-format value"}
		}
		result[customName] = s
	}

	return result, warnings, nil
}

package render

import (
	"strings"
	"testing"

	"github.com/dheemansa/luminol/internal/colourmodel"
	"github.com/dheemansa/luminol/internal/config"
	"github.com/dheemansa/luminol/internal/role"
)

func fullPalette() role.Palette {
	p := make(role.Palette)
	for _, name := range role.AllRoles() {
		p[name] = colourmodel.FromRGB(colourmodel.RGB{R: 30, G: 30, B: 46}, 1.0)
	}
	p["bg-primary"] = colourmodel.FromRGB(colourmodel.RGB{R: 0x1e, G: 0x1e, B: 0x2e}, 1.0)
	p["accent-primary"] = colourmodel.FromHSL(colourmodel.HSL{H: 180, S: 0.5, L: 0.6}, 1.0)
	return p
}

func TestResolveModePrecedence(t *testing.T) {
	if got := ResolveMode(config.AppConfig{Template: "foo.tmpl", RemapColors: true}); got != ModeTemplate {
		t.Fatalf("template should win, got %v", got)
	}
	if got := ResolveMode(config.AppConfig{RemapColors: true}); got != ModeCustom {
		t.Fatalf("remap-colors should select custom mode, got %v", got)
	}
	if got := ResolveMode(config.AppConfig{}); got != ModeDefault {
		t.Fatalf("expected default mode, got %v", got)
	}
}

func TestDefaultModeScenario1(t *testing.T) {
	app := config.AppConfig{
		OutputFile:  "colors.rasi",
		ColorFormat: "hex8",
		Syntax:      "*{{name}: {color};}",
	}
	out, _, err := Render("rofi", app, fullPalette(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(out), "\n"), "\n")
	if lines[0] != "*{bg-primary: #1e1e2eff;}" {
		t.Fatalf("unexpected first line: %q", lines[0])
	}
}

func TestCustomMappingMissingColorsFatal(t *testing.T) {
	app := config.AppConfig{RemapColors: true, ColorFormat: "hex6", Syntax: "${name} = {color}"}
	_, _, err := Render("waybar", app, fullPalette(), nil)
	if err == nil {
		t.Fatalf("expected fatal error for missing [app.colors]")
	}
}

func TestCustomMappingUnknownSourceRoleFatal(t *testing.T) {
	app := config.AppConfig{
		RemapColors: true, ColorFormat: "hex6", Syntax: "${name} = {color}",
		Colors: config.ColorBindings{"frame": {Source: "not-a-role"}},
	}
	_, _, err := Render("dunst", app, fullPalette(), nil)
	if err == nil {
		t.Fatalf("expected fatal error for unknown source role")
	}
}

func TestTemplateModeRequiresPlaceholderToken(t *testing.T) {
	app := config.AppConfig{Template: "theme.conf", ColorFormat: "hex6", Syntax: "no-token-here"}
	_, _, err := Render("foo", app, fullPalette(), []byte("x"))
	if err == nil {
		t.Fatalf("expected fatal error when syntax lacks the placeholder token")
	}
}

func TestTemplateModeUnmappedPlaceholderLeftUntouched(t *testing.T) {
	app := config.AppConfig{Template: "theme.conf", ColorFormat: "hex6", Syntax: "{placeholder}"}
	content := []byte("frame = \"{accent-primary}\"\nicon = \"{unknown}\"\n")
	out, _, err := Render("semantic", app, fullPalette(), content)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := string(out)
	if !strings.Contains(got, "icon = \"{unknown}\"") {
		t.Fatalf("unmapped placeholder should remain verbatim, got %q", got)
	}
	if strings.Contains(got, "{accent-primary}") {
		t.Fatalf("mapped placeholder should have been substituted, got %q", got)
	}
}

func TestDerivePrefixSuffix(t *testing.T) {
	cases := []struct {
		syntax, prefix, suffix string
	}{
		{"{placeholder}", "{", "}"},
		{"@placeholder", "@", ""},
	}
	for _, c := range cases {
		prefix, suffix, ok := derivePrefixSuffix(c.syntax)
		if !ok || prefix != c.prefix || suffix != c.suffix {
			t.Errorf("derivePrefixSuffix(%q) = (%q, %q, %v), want (%q, %q, true)", c.syntax, prefix, suffix, ok, c.prefix, c.suffix)
		}
	}
}

func TestResolveOutputPathAbsoluteOnSeparator(t *testing.T) {
	path, err := ResolveOutputPath("app", "sub/dir/out.conf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(path, "sub/dir/out.conf") {
		t.Fatalf("expected path-separator form to resolve as given, got %q", path)
	}
}

func TestResolveOutputPathCacheRelative(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdgcache")
	path, err := ResolveOutputPath("waybar", "colors.css")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "/tmp/xdgcache/luminol/waybar/colors.css"
	if path != want {
		t.Fatalf("expected %q, got %q", want, path)
	}
}

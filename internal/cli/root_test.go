package cli

import (
	"testing"

	"github.com/dheemansa/luminol/internal/role"
	"github.com/dheemansa/luminol/internal/sampler"
)

func TestParseThemeValid(t *testing.T) {
	cases := map[string]role.ThemeType{
		"":      "",
		"light": role.ThemeLight,
		"dark":  role.ThemeDark,
	}
	for in, want := range cases {
		got, err := parseTheme(in)
		if err != nil {
			t.Fatalf("parseTheme(%q) unexpected error: %v", in, err)
		}
		if got != want {
			t.Errorf("parseTheme(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseThemeInvalid(t *testing.T) {
	if _, err := parseTheme("sepia"); err == nil {
		t.Fatalf("expected error for invalid theme value")
	}
}

func TestParseQualityValid(t *testing.T) {
	cases := map[string]sampler.Quality{
		"fast":     sampler.QualityFast,
		"balanced": sampler.QualityBalanced,
		"high":     sampler.QualityHigh,
	}
	for in, want := range cases {
		got, err := parseQuality(in)
		if err != nil {
			t.Fatalf("parseQuality(%q) unexpected error: %v", in, err)
		}
		if got != want {
			t.Errorf("parseQuality(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseQualityInvalid(t *testing.T) {
	if _, err := parseQuality("ultra"); err == nil {
		t.Fatalf("expected error for invalid quality value")
	}
}

func TestNewRootCmdRejectsExtraArgs(t *testing.T) {
	var code int
	root := newRootCmd(&code)
	root.SetArgs([]string{"one.png", "two.png"})
	if err := root.Execute(); err == nil {
		t.Fatalf("expected error for more than one positional argument")
	}
}

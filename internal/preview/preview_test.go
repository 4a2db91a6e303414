package preview

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/dheemansa/luminol/internal/colourmodel"
	"github.com/dheemansa/luminol/internal/role"
)

func testPalette() role.Palette {
	p := make(role.Palette)
	for _, name := range role.AllRoles() {
		p[name] = colourmodel.FromRGB(colourmodel.RGB{R: 30, G: 30, B: 46}, 1.0)
	}
	p["bg-primary"] = colourmodel.FromRGB(colourmodel.RGB{R: 0x1e, G: 0x1e, B: 0x2e}, 1.0)
	return p
}

func TestTableListsAllRolesWithoutColour(t *testing.T) {
	out := Table(testPalette(), role.ThemeDark, false)
	if !strings.Contains(out, "bg-primary") || !strings.Contains(out, "#1e1e2e") {
		t.Fatalf("expected table to contain bg-primary hex value, got %q", out)
	}
	if strings.Contains(out, "\033[") {
		t.Fatalf("expected no ANSI escapes when colour is false, got %q", out)
	}
}

func TestTableIncludesColourBlocks(t *testing.T) {
	out := Table(testPalette(), role.ThemeDark, true)
	if !strings.Contains(out, "\033[48;2;") {
		t.Fatalf("expected ANSI background escapes when colour is true, got %q", out)
	}
}

func TestToJSONRoundTrips(t *testing.T) {
	data, err := ToJSON(testPalette(), role.ThemeLight)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var doc struct {
		Theme  string `json:"theme"`
		Colors []struct {
			Role string `json:"role"`
			Hex  string `json:"hex"`
		} `json:"colors"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if doc.Theme != "light" {
		t.Errorf("expected theme light, got %q", doc.Theme)
	}
	if len(doc.Colors) != len(role.AllRoles()) {
		t.Errorf("expected %d colours, got %d", len(role.AllRoles()), len(doc.Colors))
	}
}

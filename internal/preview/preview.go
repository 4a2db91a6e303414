// Package preview renders a semantic palette as an ANSI colour-block table
// for terminal display, and as JSON for --save-palette export.
package preview

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"golang.org/x/term"

	"github.com/dheemansa/luminol/internal/colourmodel"
	"github.com/dheemansa/luminol/internal/role"
)

const (
	ansiReset    = "\033[0m"
	ansiBgPrefix = "\033[48;2;"
	ansiSuffix   = "m"
	blockWidth   = 8
)

// ColourBlock returns an ANSI-coloured block string for c, width characters
// wide. Callers should gate use of this on SupportsColour.
func ColourBlock(c colourmodel.Colour, width int) string {
	if width <= 0 {
		width = blockWidth
	}
	rgb := c.RGB()
	bg := fmt.Sprintf("%s%d;%d;%d%s", ansiBgPrefix, rgb.R, rgb.G, rgb.B, ansiSuffix)
	return bg + strings.Repeat(" ", width) + ansiReset
}

// SupportsColour reports whether stdout is a terminal capable of displaying
// ANSI colour escapes.
func SupportsColour() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// Table renders the palette's roles in a simple aligned table: role name,
// colour block, and hex value. Colour blocks are omitted when colour is
// false (e.g. output is being redirected to a file).
func Table(p role.Palette, theme role.ThemeType, colour bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Theme: %s\n\n", theme)

	names := append([]string(nil), role.AllRoles()...)
	width := 0
	for _, n := range names {
		if len(n) > width {
			width = len(n)
		}
	}

	for _, name := range names {
		c, err := p.Lookup(name)
		if err != nil {
			continue
		}
		hex, _ := c.Format(colourmodel.FormatHex6)
		if colour {
			fmt.Fprintf(&b, "%-*s  %s  %s\n", width, name, ColourBlock(c, blockWidth), hex)
		} else {
			fmt.Fprintf(&b, "%-*s  %s\n", width, name, hex)
		}
	}

	return b.String()
}

// exportEntry is one role's JSON representation for --save-palette.
type exportEntry struct {
	Role string  `json:"role"`
	Hex  string  `json:"hex"`
	L    float64 `json:"l"`
	A    float64 `json:"a"`
	B    float64 `json:"b"`
}

// export is the top-level JSON document written by --save-palette.
type export struct {
	Theme  string        `json:"theme"`
	Colors []exportEntry `json:"colors"`
}

// ToJSON serializes the palette to an indented JSON document, roles sorted
// alphabetically for stable output.
func ToJSON(p role.Palette, theme role.ThemeType) ([]byte, error) {
	names := make([]string, 0, len(p))
	for name := range p {
		names = append(names, name)
	}
	sort.Strings(names)

	doc := export{Theme: string(theme)}
	for _, name := range names {
		c := p[name]
		hex, err := c.Format(colourmodel.FormatHex6)
		if err != nil {
			return nil, fmt.Errorf("preview: formatting role %q: %w", name, err)
		}
		doc.Colors = append(doc.Colors, exportEntry{Role: name, Hex: hex, L: c.L, A: c.A, B: c.B})
	}

	return json.MarshalIndent(doc, "", "  ")
}

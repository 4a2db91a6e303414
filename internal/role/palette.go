// Package role assigns semantic UI and ANSI terminal roles to a ranked
// set of candidate colours, classifies the overall theme as light or
// dark, and validates the result against contrast and separation rules.
package role

import (
	"fmt"

	"github.com/dheemansa/luminol/internal/colourmodel"
)

// UIRoles lists the 13 UI role names in canonical rendering order.
var UIRoles = []string{
	"bg-primary", "bg-secondary", "bg-tertiary",
	"text-primary", "text-secondary", "text-tertiary",
	"accent-primary", "accent-secondary",
	"error-color", "warning-color", "success-color",
	"border-active", "border-inactive",
}

// ANSIRoles lists the 16 ANSI slot names in order.
var ANSIRoles = []string{
	"ansi-0", "ansi-1", "ansi-2", "ansi-3", "ansi-4", "ansi-5", "ansi-6", "ansi-7",
	"ansi-8", "ansi-9", "ansi-10", "ansi-11", "ansi-12", "ansi-13", "ansi-14", "ansi-15",
}

// AllRoles lists all 29 roles in canonical order: UI roles then ANSI roles.
func AllRoles() []string {
	all := make([]string, 0, len(UIRoles)+len(ANSIRoles))
	all = append(all, UIRoles...)
	all = append(all, ANSIRoles...)
	return all
}

// Palette maps every one of the 29 role names to a colour.
type Palette map[string]colourmodel.Colour

// Lookup returns the colour for a role name, or an error if the role is
// unknown to this palette (used by the renderer for fatal unknown-role
// bindings).
func (p Palette) Lookup(role string) (colourmodel.Colour, error) {
	c, ok := p[role]
	if !ok {
		return colourmodel.Colour{}, fmt.Errorf("role: unknown semantic role %q", role)
	}
	return c, nil
}

// Complete reports whether all 29 roles are populated.
func (p Palette) Complete() bool {
	for _, r := range AllRoles() {
		if _, ok := p[r]; !ok {
			return false
		}
	}
	return true
}

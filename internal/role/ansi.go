package role

import (
	"math"

	"github.com/dheemansa/luminol/internal/colourmodel"
	"github.com/dheemansa/luminol/internal/scorer"
)

// ansiTarget describes one of the 16 ANSI slots' hue target and the
// dark-theme lightness target; light themes invert the lightness.
type ansiTarget struct {
	name     string
	hasHue   bool
	hue      float64
	darkL    float64
}

// ansiSlots is grounded on the standard 16-color terminal palette
// hue-bucket convention (black/red/green/yellow/blue/magenta/cyan/white,
// each with a bright variant).
var ansiSlots = []ansiTarget{
	{name: "ansi-0", hasHue: false, darkL: 8},
	{name: "ansi-1", hasHue: true, hue: 0, darkL: 45},
	{name: "ansi-2", hasHue: true, hue: 120, darkL: 45},
	{name: "ansi-3", hasHue: true, hue: 50, darkL: 55},
	{name: "ansi-4", hasHue: true, hue: 230, darkL: 45},
	{name: "ansi-5", hasHue: true, hue: 300, darkL: 45},
	{name: "ansi-6", hasHue: true, hue: 190, darkL: 50},
	{name: "ansi-7", hasHue: false, darkL: 80},
	{name: "ansi-8", hasHue: false, darkL: 40},
	{name: "ansi-9", hasHue: true, hue: 0, darkL: 60},
	{name: "ansi-10", hasHue: true, hue: 120, darkL: 60},
	{name: "ansi-11", hasHue: true, hue: 50, darkL: 70},
	{name: "ansi-12", hasHue: true, hue: 230, darkL: 60},
	{name: "ansi-13", hasHue: true, hue: 300, darkL: 60},
	{name: "ansi-14", hasHue: true, hue: 190, darkL: 65},
	{name: "ansi-15", hasHue: false, darkL: 95},
}

const ansiDeltaEThreshold = 25

func assignANSI(candidates []scorer.Candidate, theme ThemeType) map[string]colourmodel.Colour {
	result := make(map[string]colourmodel.Colour, len(ansiSlots))

	for _, slot := range ansiSlots {
		targetL := slot.darkL
		if theme == ThemeLight {
			targetL = invertLightness(slot.darkL)
		}

		if !slot.hasHue {
			result[slot.name] = colourmodel.FromLAB(targetL, 0, 0, 1.0)
			continue
		}

		target := colourmodel.FromHSL(colourmodel.HSL{H: slot.hue, S: 0.7, L: targetL / 100}, 1.0)

		var best colourmodel.Colour
		bestDist := math.MaxFloat64
		found := false
		for _, c := range candidates {
			d := colourmodel.DeltaE76(c.Colour, target)
			if d < bestDist {
				bestDist = d
				best = c.Colour
				found = true
			}
		}

		if found && bestDist <= ansiDeltaEThreshold {
			result[slot.name] = best
		} else {
			result[slot.name] = target
		}
	}

	return result
}

// invertLightness maps a dark-theme lightness target to its light-theme
// counterpart: bright slots (high L) become dim, dim slots become bright.
func invertLightness(darkL float64) float64 {
	return 100 - darkL
}

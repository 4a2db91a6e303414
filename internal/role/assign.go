package role

import (
	"math"
	"sort"

	"github.com/dheemansa/luminol/internal/colourmodel"
	"github.com/dheemansa/luminol/internal/scorer"
)

// Assign builds the full 29-role semantic palette from ranked candidates
// and a theme decision, including the background/text/accent/status/border
// selections, the 16-slot ANSI mapping, and the harmony validation pass.
func Assign(candidates []scorer.Candidate, theme ThemeType) (Palette, []Warning) {
	var warnings []Warning
	p := make(Palette, len(UIRoles)+len(ANSIRoles))

	bgs := pickBackgrounds(candidates, theme)
	p["bg-primary"] = bgs[0]
	p["bg-secondary"] = bgs[1]
	p["bg-tertiary"] = bgs[2]

	texts := pickTexts(candidates, bgs[0])
	p["text-primary"] = texts[0]
	p["text-secondary"] = texts[1]
	p["text-tertiary"] = texts[2]

	accentPrimary, accentSecondary := pickAccents(candidates, bgs[0])
	p["accent-primary"] = accentPrimary
	p["accent-secondary"] = accentSecondary

	p["error-color"] = pickStatus(candidates, accentPrimary, 340, 20)
	p["warning-color"] = pickStatus(candidates, accentPrimary, 35, 55)
	p["success-color"] = pickStatus(candidates, accentPrimary, 100, 140)

	p["border-active"] = texts[0]
	p["border-inactive"] = bgs[1]

	ansi := assignANSI(candidates, theme)
	for name, c := range ansi {
		p[name] = c
	}

	warnings = append(warnings, validateHarmony(p)...)

	return p, warnings
}

// Warning is a non-fatal role-assignment diagnostic (used for residual
// harmony-validation misses).
type Warning struct {
	Role    string
	Message string
}

func (w Warning) Error() string { return w.Message }

// --- Backgrounds ---

func bgScore(c scorer.Candidate) float64 {
	hsl := c.Colour.HSL()
	neutrality := (100 - hsl.S*100) / 100
	white := colourmodel.FromRGB(colourmodel.RGB{R: 255, G: 255, B: 255}, 1.0)
	black := colourmodel.FromRGB(colourmodel.RGB{R: 0, G: 0, B: 0}, 1.0)
	cw := colourmodel.ContrastRatio(c.Colour, white)
	cb := colourmodel.ContrastRatio(c.Colour, black)
	contrastPotential := math.Max(cw, cb) / 21
	return 0.4*c.Breakdown.Coverage + 0.3*neutrality + 0.3*contrastPotential
}

func pickBackgrounds(candidates []scorer.Candidate, theme ThemeType) [3]colourmodel.Colour {
	var filtered []scorer.Candidate
	for _, c := range candidates {
		l := c.Colour.L
		if theme == ThemeDark && l <= 45 {
			filtered = append(filtered, c)
		} else if theme == ThemeLight && l >= 55 {
			filtered = append(filtered, c)
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return bgScore(filtered[i]) > bgScore(filtered[j])
	})

	var result [3]colourmodel.Colour
	n := len(filtered)
	for i := 0; i < 3; i++ {
		if i < n {
			result[i] = filtered[i].Colour
		}
	}

	if n == 0 {
		// No candidate qualifies at all: synthesize a base from the theme.
		if theme == ThemeDark {
			result[0] = colourmodel.FromLAB(12, 0, 0, 1.0)
		} else {
			result[0] = colourmodel.FromLAB(95, 0, 0, 1.0)
		}
		n = 1
	}
	for i := n; i < 3; i++ {
		sign := 1.0
		if i%2 == 0 {
			sign = -1.0
		}
		delta := 10.0 * sign * float64(i)
		result[i] = perturbTowardMidGray(result[0], delta)
	}

	return result
}

func perturbTowardMidGray(c colourmodel.Colour, delta float64) colourmodel.Colour {
	l := c.L
	if l > 50 {
		l -= math.Abs(delta)
	} else {
		l += math.Abs(delta)
	}
	l = clampRange(l, 0, 100)
	return colourmodel.FromLAB(l, c.A, c.B, c.Alpha)
}

func clampRange(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// --- Texts ---

func pickTexts(candidates []scorer.Candidate, bgPrimary colourmodel.Colour) [3]colourmodel.Colour {
	thresholds := [3]float64{4.5, 3.0, 2.0}
	var result [3]colourmodel.Colour

	sorted := append([]scorer.Candidate(nil), candidates...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return colourmodel.ContrastRatio(sorted[i].Colour, bgPrimary) > colourmodel.ContrastRatio(sorted[j].Colour, bgPrimary)
	})

	for i, threshold := range thresholds {
		found := false
		for _, c := range sorted {
			if colourmodel.ContrastRatio(c.Colour, bgPrimary) >= threshold {
				result[i] = c.Colour
				found = true
				break
			}
		}
		if !found {
			result[i] = synthesizeTextFallback(bgPrimary, threshold)
		}
	}

	for i := range result {
		result[i] = temperatureMatch(result[i], bgPrimary)
	}

	return result
}

func synthesizeTextFallback(bg colourmodel.Colour, threshold float64) colourmodel.Colour {
	// Prefer near-white on a dark background, near-black on a light one.
	if bg.L < 50 {
		return shiftUntilContrast(colourmodel.FromLAB(98, 0, 0, 1.0), bg, threshold, 1)
	}
	return shiftUntilContrast(colourmodel.FromLAB(4, 0, 0, 1.0), bg, threshold, -1)
}

func shiftUntilContrast(start, bg colourmodel.Colour, threshold float64, direction float64) colourmodel.Colour {
	c := start
	for i := 0; i < 50; i++ {
		if colourmodel.ContrastRatio(c, bg) >= threshold {
			return c
		}
		l := clampRange(c.L+direction*1, 0, 100)
		c = colourmodel.FromLAB(l, c.A, c.B, c.Alpha)
	}
	return c
}

func temperatureMatch(c, bg colourmodel.Colour) colourmodel.Colour {
	switch {
	case bg.B > 8:
		return colourmodel.FromLAB(clampRange(c.L-2, 0, 100), c.A, c.B, c.Alpha)
	case bg.B < -8:
		return colourmodel.FromLAB(clampRange(c.L+2, 0, 100), c.A, c.B, c.Alpha)
	default:
		return c
	}
}

// --- Accents ---

func accentScore(c scorer.Candidate, bgPrimary colourmodel.Colour) float64 {
	hsl := c.Colour.HSL()
	contrast := colourmodel.ContrastRatio(c.Colour, bgPrimary) / 21
	return 0.35*hsl.S + 0.25*contrast + 0.25*c.Breakdown.Uniqueness + 0.15*c.Breakdown.Coverage
}

func pickAccents(candidates []scorer.Candidate, bgPrimary colourmodel.Colour) (colourmodel.Colour, colourmodel.Colour) {
	var eligible []scorer.Candidate
	for _, c := range candidates {
		if c.Colour.HSL().S >= 0.4 && colourmodel.ContrastRatio(c.Colour, bgPrimary) >= 3.0 {
			eligible = append(eligible, c)
		}
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		return accentScore(eligible[i], bgPrimary) > accentScore(eligible[j], bgPrimary)
	})

	if len(eligible) == 0 {
		primary := colourmodel.FromHSL(colourmodel.HSL{H: 210, S: 0.6, L: 0.55}, 1.0)
		return primary, rotateHue(primary, 150)
	}

	primary := eligible[0].Colour
	for _, candidate := range eligible[1:] {
		if colourmodel.DeltaE76(primary, candidate.Colour) >= 15 {
			return primary, candidate.Colour
		}
	}

	return primary, rotateHue(primary, 150)
}

func rotateHue(c colourmodel.Colour, degrees float64) colourmodel.Colour {
	hsl := c.HSL()
	hsl.H = math.Mod(math.Mod(hsl.H+degrees, 360)+360, 360)
	return colourmodel.FromHSL(hsl, c.Alpha)
}

// --- Status colours ---

func pickStatus(candidates []scorer.Candidate, accentPrimary colourmodel.Colour, hueLo, hueHi float64) colourmodel.Colour {
	var best scorer.Candidate
	bestDist := math.MaxFloat64
	found := false

	for _, c := range candidates {
		h := c.Colour.HSL().H
		if !hueInRange(h, hueLo, hueHi) {
			continue
		}
		target := (hueLo + hueHi) / 2
		if hueLo > hueHi {
			target = math.Mod(hueLo+(360-hueLo+hueHi)/2, 360)
		}
		d := hueDistance(h, target)
		if d < bestDist {
			bestDist = d
			best = c
			found = true
		}
	}

	if found {
		return best.Colour
	}

	hue := (hueLo + hueHi) / 2
	if hueLo > hueHi {
		hue = math.Mod(hueLo+(360-hueLo+hueHi)/2, 360)
	}
	l := accentPrimary.HSL().L
	return colourmodel.FromHSL(colourmodel.HSL{H: hue, S: 0.7, L: l}, 1.0)
}

func hueInRange(h, lo, hi float64) bool {
	if lo <= hi {
		return h >= lo && h <= hi
	}
	return h >= lo || h <= hi
}

func hueDistance(a, b float64) float64 {
	d := math.Mod(math.Abs(a-b), 360)
	if d > 180 {
		d = 360 - d
	}
	return d
}

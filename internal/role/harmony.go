package role

import (
	"fmt"

	"github.com/dheemansa/luminol/internal/colourmodel"
)

const (
	harmonyMaxPasses  = 3
	harmonyTextRatio  = 4.5
	harmonyAccentRatio = 3.0
	harmonySeparation = 10.0
)

// harmonyCheckNames lists the roles whose pairwise ΔE must be ≥10.
var harmonyCheckNames = []string{"bg-primary", "accent-primary", "error-color", "warning-color", "success-color"}

// validateHarmony checks contrast and separation invariants, nudging
// violating roles' lightness by ±10 for up to harmonyMaxPasses; any
// residual violation after that is reported as a warning, never fatal.
func validateHarmony(p Palette) []Warning {
	var warnings []Warning

	for pass := 0; pass < harmonyMaxPasses; pass++ {
		violated := false

		if colourmodel.ContrastRatio(p["bg-primary"], p["text-primary"]) < harmonyTextRatio {
			p["text-primary"] = nudgeAwayFrom(p["text-primary"], p["bg-primary"])
			violated = true
		}

		if colourmodel.ContrastRatio(p["accent-primary"], p["bg-primary"]) < harmonyAccentRatio {
			p["accent-primary"] = nudgeAwayFrom(p["accent-primary"], p["bg-primary"])
			violated = true
		}

		for i := 0; i < len(harmonyCheckNames); i++ {
			for j := i + 1; j < len(harmonyCheckNames); j++ {
				a, b := harmonyCheckNames[i], harmonyCheckNames[j]
				if colourmodel.DeltaE76(p[a], p[b]) < harmonySeparation {
					p[b] = nudgeApart(p[b], p[a])
					violated = true
				}
			}
		}

		if !violated {
			return warnings
		}
	}

	if colourmodel.ContrastRatio(p["bg-primary"], p["text-primary"]) < harmonyTextRatio {
		warnings = append(warnings, Warning{Role: "text-primary", Message: fmt.Sprintf(
			"harmony validation: bg-primary/text-primary contrast below %.1f:1 after %d passes", harmonyTextRatio, harmonyMaxPasses)})
	}
	if colourmodel.ContrastRatio(p["accent-primary"], p["bg-primary"]) < harmonyAccentRatio {
		warnings = append(warnings, Warning{Role: "accent-primary", Message: fmt.Sprintf(
			"harmony validation: accent-primary/bg-primary contrast below %.1f:1 after %d passes", harmonyAccentRatio, harmonyMaxPasses)})
	}
	for i := 0; i < len(harmonyCheckNames); i++ {
		for j := i + 1; j < len(harmonyCheckNames); j++ {
			a, b := harmonyCheckNames[i], harmonyCheckNames[j]
			if colourmodel.DeltaE76(p[a], p[b]) < harmonySeparation {
				warnings = append(warnings, Warning{Role: b, Message: fmt.Sprintf(
					"harmony validation: %s/%s separation below ΔE %.0f after %d passes", a, b, harmonySeparation, harmonyMaxPasses)})
			}
		}
	}

	return warnings
}

func nudgeAwayFrom(c, reference colourmodel.Colour) colourmodel.Colour {
	l := c.L
	if reference.L > 50 {
		l -= 10
	} else {
		l += 10
	}
	l = clampRange(l, 0, 100)
	return colourmodel.FromLAB(l, c.A, c.B, c.Alpha)
}

func nudgeApart(c, reference colourmodel.Colour) colourmodel.Colour {
	l := c.L
	if c.L >= reference.L {
		l += 10
	} else {
		l -= 10
	}
	l = clampRange(l, 0, 100)
	return colourmodel.FromLAB(l, c.A, c.B, c.Alpha)
}

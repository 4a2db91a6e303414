package role

import (
	"math"

	"github.com/dheemansa/luminol/internal/scorer"
)

// ThemeType is the light/dark classification.
type ThemeType string

const (
	ThemeLight ThemeType = "light"
	ThemeDark  ThemeType = "dark"
)

// ClassifyTheme decides light vs dark for the given ranked candidates.
// override, if non-empty, is either the CLI --theme flag or the config
// theme-type, which wins outright over the computed classification.
func ClassifyTheme(candidates []scorer.Candidate, override ThemeType) ThemeType {
	if override == ThemeLight || override == ThemeDark {
		return override
	}
	return classifyAuto(candidates)
}

func classifyAuto(candidates []scorer.Candidate) ThemeType {
	if len(candidates) == 0 {
		return ThemeDark
	}

	var weightedL, totalWeight float64
	for _, c := range candidates {
		weightedL += c.Colour.L * c.Weight
		totalWeight += c.Weight
	}
	avgL := weightedL / totalWeight

	switch {
	case avgL > 60:
		return ThemeLight
	case avgL < 40:
		return ThemeDark
	}

	dominant := candidates[0]
	for _, c := range candidates {
		if c.Weight > dominant.Weight {
			dominant = c
		}
	}
	if dominant.Colour.L > 50 {
		return ThemeLight
	}
	return ThemeDark
}

// LightnessStats returns the coverage-weighted mean and standard deviation
// of candidate lightness ("L_avg" and the §4.8 "weighted stddev of L").
// The automatic classification uses the same weighted mean (computed in
// classifyAuto) and never the standard deviation; both are exposed so
// callers can log them as diagnostics alongside the theme decision.
func LightnessStats(candidates []scorer.Candidate) (mean, stdDev float64) {
	var weightedL, totalWeight float64
	for _, c := range candidates {
		weightedL += c.Colour.L * c.Weight
		totalWeight += c.Weight
	}
	if totalWeight == 0 {
		return 0, 0
	}
	mean = weightedL / totalWeight

	var weightedVar float64
	for _, c := range candidates {
		d := c.Colour.L - mean
		weightedVar += d * d * c.Weight
	}
	return mean, math.Sqrt(weightedVar / totalWeight)
}

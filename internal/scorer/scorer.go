// Package scorer ranks k-means clusters by a weighted combination of
// coverage, perceptual uniqueness, chroma, and lightness balance.
package scorer

import (
	"math"
	"sort"

	"github.com/dheemansa/luminol/internal/colourmodel"
	"github.com/dheemansa/luminol/internal/kmeans"
)

// Candidate is a scored cluster, ready for role assignment.
type Candidate struct {
	Colour    colourmodel.Colour
	Weight    float64
	Score     float64
	Breakdown Breakdown
}

// Breakdown exposes the four sub-scores for diagnostics and tests.
type Breakdown struct {
	Coverage   float64
	Uniqueness float64
	Chroma     float64
	Lightness  float64
}

const (
	weightCoverage   = 0.35
	weightUniqueness = 0.25
	weightChroma     = 0.25
	weightLightness  = 0.15

	minKeep = 10
	maxKeep = 15
)

// Rank scores every cluster and returns the top 10-15 candidates sorted by
// descending combined score. If fewer than minKeep clusters are supplied,
// all of them are returned.
func Rank(clusters []kmeans.Cluster) []Candidate {
	if len(clusters) == 0 {
		return nil
	}

	var totalWeight float64
	for _, c := range clusters {
		totalWeight += c.Weight
	}

	candidates := make([]Candidate, 0, len(clusters))
	for i, c := range clusters {
		minDeltaE := math.MaxFloat64
		for j, other := range clusters {
			if i == j {
				continue
			}
			d := colourmodel.DeltaE76(c.Centroid, other.Centroid)
			if d < minDeltaE {
				minDeltaE = d
			}
		}
		if minDeltaE == math.MaxFloat64 {
			minDeltaE = 50
		}

		coverage := clamp01(math.Log(1+c.Weight) / logOrOne(math.Log(1+totalWeight)))
		uniqueness := clamp01(minDeltaE / 50)
		chroma := clamp01(math.Sqrt(c.Centroid.A*c.Centroid.A+c.Centroid.B*c.Centroid.B) / 140)
		lightness := clamp01(1 - math.Abs(c.Centroid.L-50)/50)

		score := weightCoverage*coverage + weightUniqueness*uniqueness + weightChroma*chroma + weightLightness*lightness

		candidates = append(candidates, Candidate{
			Colour: c.Centroid,
			Weight: c.Weight,
			Score:  score,
			Breakdown: Breakdown{
				Coverage:   coverage,
				Uniqueness: uniqueness,
				Chroma:     chroma,
				Lightness:  lightness,
			},
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	keep := maxKeep
	if len(candidates) < keep {
		keep = len(candidates)
	}
	if keep < minKeep && len(candidates) < minKeep {
		keep = len(candidates)
	}

	return candidates[:keep]
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func logOrOne(v float64) float64 {
	if v == 0 {
		return 1
	}
	return v
}

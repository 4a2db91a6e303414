// Package kmeans clusters a weighted cloud of LAB points into a small set
// of representative colours using k-means++ seeding and ΔE-based merging.
package kmeans

import (
	"math"
	"math/rand"

	"github.com/dheemansa/luminol/internal/colourmodel"
	"github.com/dheemansa/luminol/internal/sampler"
)

// K is the fixed cluster count used for seeding.
const K = 8

// mergeThreshold is the ΔE below which two converged clusters are merged.
const mergeThreshold = 12.0

// convergenceThreshold is the max-centroid-shift below which iteration stops.
const convergenceThreshold = 0.5

// Cluster is a converged (possibly merged) colour cluster.
type Cluster struct {
	Centroid colourmodel.Colour
	Weight   float64
}

// MaxIterationsForQuality returns the k-means iteration cap for a quality
// setting, defaulting to balanced for unrecognised values.
func MaxIterationsForQuality(q sampler.Quality) int {
	switch q {
	case sampler.QualityFast:
		return 10
	case sampler.QualityHigh:
		return 40
	default:
		return 20
	}
}

// Seed derives a deterministic RNG seed from the source image's dimensions,
// so identical input images always produce identical clustering.
func Seed(width, height int) int64 {
	return int64(width)*1_000_003 + int64(height)
}

// Run clusters points into at most K clusters, seeded deterministically
// from (width, height), iterating up to maxIterations times.
func Run(points []sampler.Point, width, height, maxIterations int) ([]Cluster, error) {
	if len(points) == 0 {
		return nil, errNoPoints
	}

	unique := uniqueColours(points)
	if len(unique) < K {
		return mergeClose(oneClusterPerUniqueColour(points)), nil
	}

	rng := rand.New(rand.NewSource(Seed(width, height)))
	centroids := seedPlusPlus(points, K, rng)

	var assignments []int
	for iter := 0; iter < maxIterations; iter++ {
		assignments = assign(points, centroids)
		newCentroids, shift := recompute(points, assignments, centroids)
		centroids = newCentroids
		if shift < convergenceThreshold {
			break
		}
	}

	assignments = assign(points, centroids)
	weights := make([]float64, len(centroids))
	for i, p := range points {
		weights[assignments[i]] += p.Weight
	}

	clusters := make([]Cluster, 0, len(centroids))
	for i, c := range centroids {
		if math.IsNaN(c.L) || math.IsNaN(c.A) || math.IsNaN(c.B) {
			continue
		}
		if weights[i] <= 0 {
			continue
		}
		clusters = append(clusters, Cluster{Centroid: c, Weight: weights[i]})
	}

	return mergeClose(clusters), nil
}

type samplerErr string

func (e samplerErr) Error() string { return string(e) }

const errNoPoints = samplerErr("kmeans: no sample points supplied")

func colourKey(c colourmodel.Colour) [3]int {
	return [3]int{int(math.Round(c.L * 4)), int(math.Round(c.A * 4)), int(math.Round(c.B * 4))}
}

func uniqueColours(points []sampler.Point) map[[3]int]bool {
	set := make(map[[3]int]bool)
	for _, p := range points {
		set[colourKey(p.Colour)] = true
	}
	return set
}

// oneClusterPerUniqueColour groups points by colour (LAB rounded to
// quarter units, as colourKey does), used when the image contains fewer
// distinct colours than K.
func oneClusterPerUniqueColour(points []sampler.Point) []Cluster {
	byKey := make(map[[3]int]*Cluster)
	order := make([][3]int, 0)
	for _, p := range points {
		key := colourKey(p.Colour)
		c, ok := byKey[key]
		if !ok {
			c = &Cluster{Centroid: p.Colour, Weight: 0}
			byKey[key] = c
			order = append(order, key)
		}
		c.Weight += p.Weight
	}
	clusters := make([]Cluster, 0, len(order))
	for _, key := range order {
		clusters = append(clusters, *byKey[key])
	}
	return clusters
}

// seedPlusPlus implements k-means++ seeding: the first centroid is chosen
// uniformly, each subsequent centroid is chosen with probability
// proportional to its squared distance from the nearest existing centroid.
func seedPlusPlus(points []sampler.Point, k int, rng *rand.Rand) []colourmodel.Colour {
	if k <= 0 {
		return nil
	}

	centroids := make([]colourmodel.Colour, 0, k)
	first := points[rng.Intn(len(points))].Colour
	centroids = append(centroids, first)

	for len(centroids) < k {
		distances := make([]float64, len(points))
		var total float64
		for i, p := range points {
			minDist := math.MaxFloat64
			for _, c := range centroids {
				d := colourmodel.DeltaE76(p.Colour, c)
				if d < minDist {
					minDist = d
				}
			}
			sq := minDist * minDist
			distances[i] = sq
			total += sq
		}

		if total == 0 {
			centroids = append(centroids, points[rng.Intn(len(points))].Colour)
			continue
		}

		target := rng.Float64() * total
		var cum float64
		chosen := points[len(points)-1].Colour
		for i, d := range distances {
			cum += d
			if cum >= target {
				chosen = points[i].Colour
				break
			}
		}
		centroids = append(centroids, chosen)
	}

	return centroids
}

func assign(points []sampler.Point, centroids []colourmodel.Colour) []int {
	assignments := make([]int, len(points))
	for i, p := range points {
		best := 0
		bestDist := math.MaxFloat64
		for j, c := range centroids {
			d := colourmodel.DeltaE76(p.Colour, c)
			if d < bestDist {
				bestDist = d
				best = j
			}
		}
		assignments[i] = best
	}
	return assignments
}

func recompute(points []sampler.Point, assignments []int, old []colourmodel.Colour) ([]colourmodel.Colour, float64) {
	sums := make([][3]float64, len(old))
	weights := make([]float64, len(old))

	for i, p := range points {
		c := assignments[i]
		sums[c][0] += p.Colour.L * p.Weight
		sums[c][1] += p.Colour.A * p.Weight
		sums[c][2] += p.Colour.B * p.Weight
		weights[c] += p.Weight
	}

	newCentroids := make([]colourmodel.Colour, len(old))
	var maxShift float64
	for i := range old {
		if weights[i] == 0 {
			newCentroids[i] = old[i]
			continue
		}
		nc := colourmodel.FromLAB(sums[i][0]/weights[i], sums[i][1]/weights[i], sums[i][2]/weights[i], 1.0)
		shift := colourmodel.DeltaE76(nc, old[i])
		if shift > maxShift {
			maxShift = shift
		}
		newCentroids[i] = nc
	}
	return newCentroids, maxShift
}

// mergeClose merges any two clusters whose centroids are within
// mergeThreshold ΔE, by weighted centroid average, repeating until no pair
// remains within threshold.
func mergeClose(clusters []Cluster) []Cluster {
	merged := append([]Cluster(nil), clusters...)

	for {
		mergedAny := false
		for i := 0; i < len(merged); i++ {
			for j := i + 1; j < len(merged); j++ {
				if colourmodel.DeltaE76(merged[i].Centroid, merged[j].Centroid) < mergeThreshold {
					merged[i] = weightedAverage(merged[i], merged[j])
					merged = append(merged[:j], merged[j+1:]...)
					mergedAny = true
					break
				}
			}
			if mergedAny {
				break
			}
		}
		if !mergedAny {
			break
		}
	}

	return merged
}

func weightedAverage(a, b Cluster) Cluster {
	total := a.Weight + b.Weight
	if total == 0 {
		return a
	}
	l := (a.Centroid.L*a.Weight + b.Centroid.L*b.Weight) / total
	al := (a.Centroid.A*a.Weight + b.Centroid.A*b.Weight) / total
	bl := (a.Centroid.B*a.Weight + b.Centroid.B*b.Weight) / total
	return Cluster{Centroid: colourmodel.FromLAB(l, al, bl, 1.0), Weight: total}
}

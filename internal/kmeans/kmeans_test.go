package kmeans

import (
	"testing"

	"github.com/dheemansa/luminol/internal/colourmodel"
	"github.com/dheemansa/luminol/internal/sampler"
)

func TestRunIsDeterministic(t *testing.T) {
	points := syntheticPoints()

	r1, err := Run(points, 100, 80, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r2, err := Run(points, 100, 80, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(r1) != len(r2) {
		t.Fatalf("non-deterministic cluster count: %d vs %d", len(r1), len(r2))
	}
	for i := range r1 {
		if r1[i].Centroid != r2[i].Centroid {
			t.Fatalf("non-deterministic centroid at %d: %+v vs %+v", i, r1[i].Centroid, r2[i].Centroid)
		}
	}
}

func TestRunEmptyPointsErrors(t *testing.T) {
	if _, err := Run(nil, 10, 10, 20); err == nil {
		t.Fatalf("expected error for empty point set")
	}
}

func TestRunFewerUniqueThanKFallsBack(t *testing.T) {
	points := []sampler.Point{
		{Colour: colourmodel.FromRGB(colourmodel.RGB{R: 10, G: 10, B: 10}, 1.0), Weight: 5},
		{Colour: colourmodel.FromRGB(colourmodel.RGB{R: 200, G: 200, B: 200}, 1.0), Weight: 5},
	}
	clusters, err := Run(points, 10, 10, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(clusters) > 2 {
		t.Fatalf("expected at most 2 clusters for 2 unique colours, got %d", len(clusters))
	}
}

func TestMergeCloseCentroids(t *testing.T) {
	clusters := []Cluster{
		{Centroid: colourmodel.FromLAB(50, 10, 10, 1.0), Weight: 5},
		{Centroid: colourmodel.FromLAB(51, 11, 11, 1.0), Weight: 5},
		{Centroid: colourmodel.FromLAB(10, -50, -50, 1.0), Weight: 3},
	}
	merged := mergeClose(clusters)
	if len(merged) != 2 {
		t.Fatalf("expected merge to produce 2 clusters, got %d", len(merged))
	}
}

func syntheticPoints() []sampler.Point {
	var pts []sampler.Point
	palette := []colourmodel.RGB{
		{R: 20, G: 20, B: 30},
		{R: 220, G: 220, B: 210},
		{R: 180, G: 60, B: 60},
		{R: 60, G: 160, B: 90},
		{R: 70, G: 90, B: 200},
		{R: 230, G: 200, B: 80},
		{R: 150, G: 80, B: 180},
		{R: 90, G: 200, B: 210},
		{R: 100, G: 100, B: 100},
		{R: 40, G: 40, B: 40},
	}
	for _, rgb := range palette {
		for i := 0; i < 20; i++ {
			pts = append(pts, sampler.Point{Colour: colourmodel.FromRGB(rgb, 1.0), Weight: 1})
		}
	}
	return pts
}

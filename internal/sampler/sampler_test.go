package sampler

import (
	"image"
	"image/color"
	"testing"
)

func solidImage(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestDownscaleNoOpWhenSmaller(t *testing.T) {
	img := solidImage(100, 50, color.RGBA{R: 10, G: 20, B: 30, A: 255})
	out := downscale(img, 800)
	if out.Bounds().Dx() != 100 || out.Bounds().Dy() != 50 {
		t.Fatalf("downscale should be a no-op for a smaller image, got %v", out.Bounds())
	}
}

func TestDownscalePreservesAspectRatio(t *testing.T) {
	img := solidImage(1600, 800, color.RGBA{R: 10, G: 20, B: 30, A: 255})
	out := downscale(img, 800)
	w, h := out.Bounds().Dx(), out.Bounds().Dy()
	if w > 800 || h > 800 {
		t.Fatalf("downscale exceeded target: %dx%d", w, h)
	}
	ratio := float64(w) / float64(h)
	if ratio < 1.9 || ratio > 2.1 {
		t.Fatalf("aspect ratio not preserved: %dx%d", w, h)
	}
}

func TestExtractPointsSkipsTransparent(t *testing.T) {
	img := solidImage(20, 20, color.RGBA{R: 255, G: 0, B: 0, A: 0})
	_, _, err := extractPoints(img)
	if err == nil {
		t.Fatalf("expected fatal error when all pixels are transparent")
	}
}

func TestExtractPointsCentreWeighting(t *testing.T) {
	img := solidImage(10, 10, color.RGBA{R: 100, G: 100, B: 100, A: 255})
	points, total, err := extractPoints(img)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) == 0 || total == 0 {
		t.Fatalf("expected non-empty point cloud")
	}
	for _, p := range points {
		if p.Weight < 1 {
			t.Fatalf("multiplicity must be at least 1, got %v", p.Weight)
		}
	}
}

func TestSampleCapsPointCount(t *testing.T) {
	img := solidImage(400, 400, color.RGBA{R: 50, G: 60, B: 70, A: 255})
	result, err := Sample(img, 800)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Points) > MaxSamplePoints {
		t.Fatalf("sample count %d exceeds cap %d", len(result.Points), MaxSamplePoints)
	}
}

func TestDownscaleTargetByQuality(t *testing.T) {
	cases := map[Quality]int{
		QualityFast:     400,
		QualityBalanced: 800,
		QualityHigh:     1200,
		Quality("bogus"): 800,
	}
	for q, want := range cases {
		if got := DownscaleTarget(q); got != want {
			t.Errorf("DownscaleTarget(%q) = %d, want %d", q, got, want)
		}
	}
}

// Package sampler loads a wallpaper image, downsizes and denoises it, and
// reduces it to a weighted cloud of LAB sample points for clustering.
package sampler

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg" // register JPEG format
	_ "image/png"  // register PNG format
	"math"
	"os"

	_ "golang.org/x/image/webp" // register WebP format

	"github.com/dheemansa/luminol/internal/colourmodel"
	"github.com/dheemansa/luminol/internal/security"
)

// MaxImageBytes is the hard cap on input image size.
const MaxImageBytes = 10 * 1024 * 1024

// MaxSamplePoints caps the number of retained sample points.
const MaxSamplePoints = 40000

// blurSigma is the Gaussian blur standard deviation applied before sampling.
const blurSigma = 1.0

// Point is a single weighted LAB sample.
type Point struct {
	Colour colourmodel.Colour
	Weight float64
}

// Result is the full output of the sampler: the weighted point cloud, the
// total weight, and the source image's original dimensions (the seed for
// k-means++ determinism is derived from these).
type Result struct {
	Points      []Point
	TotalWeight float64
	Width       int
	Height      int
}

// Load decodes an image file from disk, rejecting it fatally if it exceeds
// MaxImageBytes or fails to decode.
func Load(path string) (image.Image, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("sampler: cannot stat image %q: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("sampler: %q is a directory, not an image file", path)
	}
	if info.Size() > MaxImageBytes {
		return nil, fmt.Errorf("sampler: image %q is %d bytes, exceeds the %d byte limit", path, info.Size(), MaxImageBytes)
	}

	f, err := os.Open(path) // #nosec G304 -- user-supplied image path, intended to be read
	if err != nil {
		return nil, fmt.Errorf("sampler: cannot open image %q: %w", path, err)
	}
	defer f.Close()

	limited := security.NewLimitedReader(f, MaxImageBytes)
	img, format, err := image.Decode(limited)
	if err != nil {
		return nil, fmt.Errorf("sampler: failed to decode image %q (format %s): %w", path, format, err)
	}
	return img, nil
}

// Quality selects the downscale target for a run.
type Quality string

const (
	QualityFast     Quality = "fast"
	QualityBalanced Quality = "balanced"
	QualityHigh     Quality = "high"
)

// DownscaleTarget returns the maximum-dimension target in pixels for q,
// defaulting to balanced for unrecognised values.
func DownscaleTarget(q Quality) int {
	switch q {
	case QualityFast:
		return 400
	case QualityHigh:
		return 1200
	default:
		return 800
	}
}

// Sample runs the full decode-adjacent pipeline: downscale, blur, and
// weighted-point extraction. img must already be decoded (see Load).
func Sample(img image.Image, target int) (Result, error) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return Result{}, fmt.Errorf("sampler: image has zero dimensions")
	}

	rgba := toRGBA(img)
	rgba = downscale(rgba, target)
	rgba = blur(rgba, blurSigma)

	points, total, err := extractPoints(rgba)
	if err != nil {
		return Result{}, err
	}

	return Result{Points: points, TotalWeight: total, Width: w, Height: h}, nil
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			out.Set(x-b.Min.X, y-b.Min.Y, img.At(x, y))
		}
	}
	return out
}

// downscale shrinks src so max(width,height) <= target, using an
// area-averaging (box filter) reduction. It is a no-op if the image is
// already within the target.
func downscale(src *image.RGBA, target int) *image.RGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	longest := w
	if h > longest {
		longest = h
	}
	if longest <= target || target <= 0 {
		return src
	}

	scale := float64(target) / float64(longest)
	dstW := int(math.Round(float64(w) * scale))
	dstH := int(math.Round(float64(h) * scale))
	if dstW < 1 {
		dstW = 1
	}
	if dstH < 1 {
		dstH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, dstW, dstH))
	for dy := 0; dy < dstH; dy++ {
		srcY0 := int(float64(dy) / scale)
		srcY1 := int(float64(dy+1) / scale)
		if srcY1 <= srcY0 {
			srcY1 = srcY0 + 1
		}
		if srcY1 > h {
			srcY1 = h
		}
		for dx := 0; dx < dstW; dx++ {
			srcX0 := int(float64(dx) / scale)
			srcX1 := int(float64(dx+1) / scale)
			if srcX1 <= srcX0 {
				srcX1 = srcX0 + 1
			}
			if srcX1 > w {
				srcX1 = w
			}

			var sr, sg, sb, sa, count float64
			for sy := srcY0; sy < srcY1; sy++ {
				for sx := srcX0; sx < srcX1; sx++ {
					r, g, bl, a := src.RGBAAt(b.Min.X+sx, b.Min.Y+sy).RGBA()
					sr += float64(r >> 8)
					sg += float64(g >> 8)
					sb += float64(bl >> 8)
					sa += float64(a >> 8)
					count++
				}
			}
			if count == 0 {
				count = 1
			}
			dst.SetRGBA(dx, dy, rgbaOf(sr/count, sg/count, sb/count, sa/count))
		}
	}
	return dst
}

func rgbaOf(r, g, b, a float64) color.RGBA {
	return color.RGBA{
		R: security.SafeUint8(int(math.Round(r))),
		G: security.SafeUint8(int(math.Round(g))),
		B: security.SafeUint8(int(math.Round(b))),
		A: security.SafeUint8(int(math.Round(a))),
	}
}

// blur applies a small separable Gaussian blur to attenuate JPEG/PNG
// compression noise before sampling.
func blur(src *image.RGBA, sigma float64) *image.RGBA {
	kernel := gaussianKernel(sigma)
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	horiz := image.NewRGBA(b)
	radius := len(kernel) / 2
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var r, g, bl, a, wsum float64
			for k := -radius; k <= radius; k++ {
				sx := x + k
				if sx < 0 || sx >= w {
					continue
				}
				kw := kernel[k+radius]
				cr, cg, cb, ca := src.RGBAAt(b.Min.X+sx, b.Min.Y+y).RGBA()
				r += float64(cr>>8) * kw
				g += float64(cg>>8) * kw
				bl += float64(cb>>8) * kw
				a += float64(ca>>8) * kw
				wsum += kw
			}
			if wsum == 0 {
				wsum = 1
			}
			horiz.SetRGBA(x, y, toRGBAColor(r/wsum, g/wsum, bl/wsum, a/wsum))
		}
	}

	out := image.NewRGBA(b)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var r, g, bl, a, wsum float64
			for k := -radius; k <= radius; k++ {
				sy := y + k
				if sy < 0 || sy >= h {
					continue
				}
				kw := kernel[k+radius]
				cr, cg, cb, ca := horiz.RGBAAt(b.Min.X+x, b.Min.Y+sy).RGBA()
				r += float64(cr>>8) * kw
				g += float64(cg>>8) * kw
				bl += float64(cb>>8) * kw
				a += float64(ca>>8) * kw
				wsum += kw
			}
			if wsum == 0 {
				wsum = 1
			}
			out.SetRGBA(x, y, toRGBAColor(r/wsum, g/wsum, bl/wsum, a/wsum))
		}
	}
	return out
}

func toRGBAColor(r, g, b, a float64) color.RGBA {
	return rgbaOf(r, g, b, a)
}

func gaussianKernel(sigma float64) []float64 {
	radius := int(math.Ceil(sigma * 3))
	if radius < 1 {
		radius = 1
	}
	size := 2*radius + 1
	kernel := make([]float64, size)
	var sum float64
	for i := range kernel {
		x := float64(i - radius)
		v := math.Exp(-(x * x) / (2 * sigma * sigma))
		kernel[i] = v
		sum += v
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	return kernel
}

// extractPoints walks the processed image with a stride chosen to cap the
// sample count near MaxSamplePoints, skipping near-transparent pixels and
// weighting center pixels higher.
func extractPoints(img *image.RGBA) ([]Point, float64, error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	total := w * h
	stride := 1
	if total > MaxSamplePoints {
		stride = int(math.Ceil(math.Sqrt(float64(total) / float64(MaxSamplePoints))))
	}

	cx, cy := float64(w)/2.0, float64(h)/2.0
	halfDiag := math.Sqrt(cx*cx+cy*cy) + 1e-9

	var points []Point
	var totalWeight float64
	sawOpaque := false

	for y := 0; y < h; y += stride {
		for x := 0; x < w; x += stride {
			c := img.RGBAAt(b.Min.X+x, b.Min.Y+y)
			if c.A < 128 {
				continue
			}
			sawOpaque = true

			dx := float64(x) - cx
			dy := float64(y) - cy
			d := math.Sqrt(dx*dx+dy*dy) / halfDiag

			mult := math.Round(3 * (1 - 0.3*d))
			if mult < 1 {
				mult = 1
			}

			colour := colourmodel.FromRGB(colourmodel.RGB{R: c.R, G: c.G, B: c.B}, float64(c.A)/255.0)
			points = append(points, Point{Colour: colour, Weight: mult})
			totalWeight += mult
		}
	}

	if !sawOpaque {
		return nil, 0, fmt.Errorf("sampler: all pixels are transparent (alpha < 128)")
	}

	return points, totalWeight, nil
}

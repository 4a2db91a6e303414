// Package colourmodel provides the canonical colour value used throughout
// Luminol: a CIE L*a*b* coordinate with an alpha channel, plus RGB and HSL
// projections derived from it on demand.
package colourmodel

import "math"

// D65 white point reference, matching the CIE standard illuminant used by
// sRGB.
const (
	whiteX = 0.95047
	whiteY = 1.0
	whiteZ = 1.08883
)

// Colour is a single colour expressed in CIE L*a*b* space, the authoritative
// form for distance and scoring. RGB and HSL are pure projections of
// L/A/B/Alpha and are recomputed on every call; callers that need them
// repeatedly should cache the result themselves.
type Colour struct {
	L, A, B float64
	Alpha   float64
}

// RGB is an 8-bit-per-channel colour with no alpha.
type RGB struct {
	R, G, B uint8
}

// HSL is hue (degrees, [0,360)), saturation and lightness ([0,1]).
type HSL struct {
	H, S, L float64
}

// FromRGB builds a Colour from 8-bit RGB channels and an alpha in [0,1].
func FromRGB(rgb RGB, alpha float64) Colour {
	l, a, b := rgbToLab(rgb)
	return Colour{L: l, A: a, B: b, Alpha: clamp01(alpha)}
}

// FromLAB builds a Colour directly from LAB coordinates.
func FromLAB(l, a, b, alpha float64) Colour {
	return Colour{L: l, A: a, B: b, Alpha: clamp01(alpha)}
}

// FromHSL builds a Colour via HSL -> RGB -> LAB, the canonicalisation path
// used after every HSL-based transform stage.
func FromHSL(hsl HSL, alpha float64) Colour {
	return FromRGB(hslToRGB(hsl), alpha)
}

// RGB projects the colour to 8-bit RGB, clamping each channel to [0,255]
// after the inverse LAB->XYZ->linearRGB->sRGB conversion. Clamping is a
// deliberate design decision, not an error condition.
func (c Colour) RGB() RGB {
	return labToRGB(c.L, c.A, c.B)
}

// HSL projects the colour to hue/saturation/lightness via its RGB form.
func (c Colour) HSL() HSL {
	return rgbToHSL(c.RGB())
}

// WithAlpha returns a copy of the colour with a new alpha, clamped to [0,1].
func (c Colour) WithAlpha(a float64) Colour {
	c.Alpha = clamp01(a)
	return c
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

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// --- sRGB <-> linear RGB, D65 XYZ, CIE Lab ---
//
// Formulas follow the standard piecewise gamma and CIE Lab pivot used by
// colour libraries across the ecosystem (e.g. the vendored lucasb-eyer
// go-colorful implementation): linearize at the 0.04045 breakpoint,
// XYZ via the sRGB D65 matrix, Lab via the cube-root/linear pivot at
// (6/29)^3.

func srgbToLinear(v float64) float64 {
	if v <= 0.04045 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

func linearToSRGB(v float64) float64 {
	if v <= 0.0031308 {
		return 12.92 * v
	}
	return 1.055*math.Pow(v, 1.0/2.4) - 0.055
}

func rgbToLab(rgb RGB) (l, a, b float64) {
	r := srgbToLinear(float64(rgb.R) / 255.0)
	g := srgbToLinear(float64(rgb.G) / 255.0)
	bl := srgbToLinear(float64(rgb.B) / 255.0)

	x := 0.4124564*r + 0.3575761*g + 0.1804375*bl
	y := 0.2126729*r + 0.7151522*g + 0.0721750*bl
	z := 0.0193339*r + 0.1191920*g + 0.9503041*bl

	fx := labF(x / whiteX)
	fy := labF(y / whiteY)
	fz := labF(z / whiteZ)

	l = 116*fy - 16
	a = 500 * (fx - fy)
	b = 200 * (fy - fz)
	return
}

func labToRGB(l, a, b float64) RGB {
	fy := (l + 16) / 116
	fx := fy + a/500
	fz := fy - b/200

	x := whiteX * labFInv(fx)
	y := whiteY * labFInv(fy)
	z := whiteZ * labFInv(fz)

	r := 3.2404542*x - 1.5371385*y - 0.4985314*z
	g := -0.9692660*x + 1.8760108*y + 0.0415560*z
	bl := 0.0556434*x - 0.2040259*y + 1.0572252*z

	return RGB{
		R: toByte(linearToSRGB(r)),
		G: toByte(linearToSRGB(g)),
		B: toByte(linearToSRGB(bl)),
	}
}

func toByte(v float64) uint8 {
	return RoundChannel(v)
}

// RoundChannel converts a [0,1] (unclamped input tolerated) channel value
// to its 8-bit form, rounding half-to-even per the §4.2 format codec
// contract. Shared by colour-space conversion and any transform stage that
// needs to round an intermediate channel the same way.
func RoundChannel(v float64) uint8 {
	v = clamp(v, 0, 1) * 255
	return uint8(roundHalfToEven(v))
}

func roundHalfToEven(v float64) float64 {
	floor := math.Floor(v)
	diff := v - floor
	switch {
	case diff < 0.5:
		return floor
	case diff > 0.5:
		return floor + 1
	default:
		if math.Mod(floor, 2) == 0 {
			return floor
		}
		return floor + 1
	}
}

const labDelta = 6.0 / 29.0

func labF(t float64) float64 {
	if t > labDelta*labDelta*labDelta {
		return math.Cbrt(t)
	}
	return t/(3*labDelta*labDelta) + 4.0/29.0
}

func labFInv(t float64) float64 {
	if t > labDelta {
		return t * t * t
	}
	return 3 * labDelta * labDelta * (t - 4.0/29.0)
}

// --- RGB <-> HSL ---

func rgbToHSL(rgb RGB) HSL {
	r := float64(rgb.R) / 255.0
	g := float64(rgb.G) / 255.0
	b := float64(rgb.B) / 255.0

	maxV := math.Max(r, math.Max(g, b))
	minV := math.Min(r, math.Min(g, b))
	delta := maxV - minV

	l := (maxV + minV) / 2.0

	if delta == 0 {
		return HSL{H: 0, S: 0, L: l}
	}

	var s float64
	if l < 0.5 {
		s = delta / (maxV + minV)
	} else {
		s = delta / (2.0 - maxV - minV)
	}

	var h float64
	switch maxV {
	case r:
		h = (g - b) / delta
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/delta + 2
	default:
		h = (r-g)/delta + 4
	}
	h *= 60

	return HSL{H: h, S: s, L: l}
}

func hslToRGB(hsl HSL) RGB {
	h, s, l := math.Mod(math.Mod(hsl.H, 360)+360, 360), clamp01(hsl.S), clamp01(hsl.L)

	if s == 0 {
		v := toByte(l)
		return RGB{R: v, G: v, B: v}
	}

	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q

	return RGB{
		R: toByte(hueToChannel(p, q, h+120)),
		G: toByte(hueToChannel(p, q, h)),
		B: toByte(hueToChannel(p, q, h-120)),
	}
}

func hueToChannel(p, q, t float64) float64 {
	for t < 0 {
		t += 360
	}
	for t >= 360 {
		t -= 360
	}
	switch {
	case t < 60:
		return p + (q-p)*t/60
	case t < 180:
		return q
	case t < 240:
		return p + (q-p)*(240-t)/60
	default:
		return p
	}
}

// DeltaE76 computes the Euclidean distance between two colours in LAB
// space, the ΔE76 approximation used throughout k-means, scoring and
// role-assignment separation checks.
func DeltaE76(c1, c2 Colour) float64 {
	dl := c1.L - c2.L
	da := c1.A - c2.A
	db := c1.B - c2.B
	return math.Sqrt(dl*dl + da*da + db*db)
}

// Luminance returns the WCAG relative luminance of the colour's RGB
// projection, in [0,1].
func (c Colour) Luminance() float64 {
	rgb := c.RGB()
	r := gammaExpand(float64(rgb.R) / 255.0)
	g := gammaExpand(float64(rgb.G) / 255.0)
	b := gammaExpand(float64(rgb.B) / 255.0)
	return 0.2126*r + 0.7152*g + 0.0722*b
}

func gammaExpand(v float64) float64 {
	if v <= 0.03928 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// ContrastRatio computes the WCAG 2.0 contrast ratio between two colours,
// in [1,21].
func ContrastRatio(c1, c2 Colour) float64 {
	l1, l2 := c1.Luminance(), c2.Luminance()
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}

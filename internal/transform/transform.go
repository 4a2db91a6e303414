// Package transform applies the fixed-order colour transform pipeline:
// hue -> saturation -> brightness -> contrast -> temperature -> opacity.
// The pipeline's application order is independent of the declaration order
// of the individual transforms supplied to Apply.
package transform

import (
	"fmt"
	"math"
	"strconv"

	"github.com/dheemansa/luminol/internal/colourmodel"
)

// Kind names one of the six transform stages.
type Kind string

// Supported transform kinds, listed in their fixed application order.
const (
	KindHue         Kind = "hue"
	KindSaturation  Kind = "saturation"
	KindBrightness  Kind = "brightness"
	KindContrast    Kind = "contrast"
	KindTemperature Kind = "temperature"
	KindOpacity     Kind = "opacity"
)

// order fixes the application sequence regardless of declaration order.
var order = []Kind{KindHue, KindSaturation, KindBrightness, KindContrast, KindTemperature, KindOpacity}

// Transform is a single (kind, value) pair as declared in a colour binding.
type Transform struct {
	Kind  string
	Value float64
}

// Warning describes a non-fatal condition raised while applying a
// transform: an out-of-range value that was clamped, or a malformed
// transform entry that was skipped.
type Warning struct {
	Kind    string
	Message string
}

func (w Warning) Error() string { return w.Message }

// ParseValue converts a raw config value (string or number) to a float64,
// returning an error for malformed transform entries so the caller can
// skip them with a warning.
func ParseValue(raw any) (float64, error) {
	switch v := raw.(type) {
	case float64:
		return v, nil
	case int64:
		return float64(v), nil
	case int:
		return float64(v), nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, fmt.Errorf("non-numeric transform value %q", v)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("unsupported transform value type %T", raw)
	}
}

// Apply runs the full fixed-order pipeline over c, applying every
// transform whose Kind matches a known stage (possibly more than one per
// stage — entries of the same kind are each applied in turn, in
// declaration order, so their effects compound). Transforms with an unknown
// kind are skipped with a warning. Returns the transformed colour and any
// warnings collected along the way.
func Apply(c colourmodel.Colour, transforms []Transform) (colourmodel.Colour, []Warning) {
	var warnings []Warning

	byKind := make(map[Kind][]float64, len(order))
	for _, t := range transforms {
		k := Kind(t.Kind)
		valid := false
		for _, ok := range order {
			if ok == k {
				valid = true
				break
			}
		}
		if !valid {
			warnings = append(warnings, Warning{
				Kind:    t.Kind,
				Message: fmt.Sprintf("unknown transform kind %q skipped", t.Kind),
			})
			continue
		}
		byKind[k] = append(byKind[k], t.Value)
	}

	result := c
	for _, k := range order {
		values, ok := byKind[k]
		if !ok {
			continue
		}
		for _, v := range values {
			var clamped float64
			var w *Warning
			result, clamped, w = applyStage(result, k, v)
			if w != nil {
				warnings = append(warnings, *w)
			}
			_ = clamped
		}
	}

	return result, warnings
}

func applyStage(c colourmodel.Colour, k Kind, value float64) (colourmodel.Colour, float64, *Warning) {
	switch k {
	case KindHue:
		hsl := c.HSL()
		hsl.H = math.Mod(math.Mod(hsl.H+value, 360)+360, 360)
		return colourmodel.FromHSL(hsl, c.Alpha), value, nil

	case KindSaturation:
		clampedVal, warn := clampRange(k, value, 0, 3)
		hsl := c.HSL()
		hsl.S = clamp01(hsl.S * clampedVal)
		return colourmodel.FromHSL(hsl, c.Alpha), clampedVal, warn

	case KindBrightness:
		clampedVal, warn := clampRange(k, value, 0, 3)
		hsl := c.HSL()
		hsl.L = clamp01(hsl.L * clampedVal)
		return colourmodel.FromHSL(hsl, c.Alpha), clampedVal, warn

	case KindContrast:
		clampedVal, warn := clampRange(k, value, 0, 3)
		rgb := c.RGB()
		adjust := func(ch uint8) uint8 {
			v := (float64(ch)/255.0-0.5)*clampedVal + 0.5
			return colourmodel.RoundChannel(v)
		}
		newRGB := colourmodel.RGB{R: adjust(rgb.R), G: adjust(rgb.G), B: adjust(rgb.B)}
		return colourmodel.FromRGB(newRGB, c.Alpha), clampedVal, warn

	case KindTemperature:
		clampedVal, warn := clampRange(k, value, -100, 100)
		next := colourmodel.FromLAB(c.L, c.A+clampedVal*0.6, c.B-clampedVal*0.3, c.Alpha)
		return next, clampedVal, warn

	case KindOpacity:
		clampedVal, warn := clampRange(k, value, 0, 1)
		return c.WithAlpha(clampedVal), clampedVal, warn

	default:
		return c, value, nil
	}
}

func clampRange(k Kind, v, lo, hi float64) (float64, *Warning) {
	if v < lo || v > hi {
		clamped := v
		if clamped < lo {
			clamped = lo
		}
		if clamped > hi {
			clamped = hi
		}
		return clamped, &Warning{
			Kind:    string(k),
			Message: fmt.Sprintf("%s value %g out of range [%g,%g], clamped to %g", k, v, lo, hi, clamped),
		}
	}
	return v, nil
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

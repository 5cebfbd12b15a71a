package types

import (
	"math"

	"golang.org/x/image/math/f32"
)

// Spectrum holds a radiometric quantity sampled at the R, G and B
// wavelengths.
type Spectrum f32.Vec3

// Define a spectrum from individual R, G, B intensities.
func RGB(r, g, b float32) Spectrum {
	return Spectrum{r, g, b}
}

// Define a spectrum with the same intensity at each wavelength.
func Grey(v float32) Spectrum {
	return Spectrum{v, v, v}
}

// Add a spectrum.
func (s Spectrum) Add(s2 Spectrum) Spectrum {
	return Spectrum{s[0] + s2[0], s[1] + s2[1], s[2] + s2[2]}
}

// Subtract a spectrum.
func (s Spectrum) Sub(s2 Spectrum) Spectrum {
	return Spectrum{s[0] - s2[0], s[1] - s2[1], s[2] - s2[2]}
}

// Multiply spectrum with a scalar.
func (s Spectrum) Mul(v float32) Spectrum {
	return Spectrum{s[0] * v, s[1] * v, s[2] * v}
}

// Divide spectrum by a scalar.
func (s Spectrum) Div(v float32) Spectrum {
	inv := 1.0 / v
	return Spectrum{s[0] * inv, s[1] * inv, s[2] * inv}
}

// Modulate a spectrum component-wise with another spectrum.
func (s Spectrum) Modulate(s2 Spectrum) Spectrum {
	return Spectrum{s[0] * s2[0], s[1] * s2[1], s[2] * s2[2]}
}

// Linearly interpolate between two spectrums.
func (s Spectrum) Lerp(s2 Spectrum, t float32) Spectrum {
	return Spectrum{
		s[0] + (s2[0]-s[0])*t,
		s[1] + (s2[1]-s[1])*t,
		s[2] + (s2[2]-s[2])*t,
	}
}

// Clamp all intensities to the [min, max] range.
func (s Spectrum) Clamp(min, max float32) Spectrum {
	out := s
	for i, v := range out {
		if v < min {
			out[i] = min
		} else if v > max {
			out[i] = max
		}
	}
	return out
}

// Check whether all intensities are zero.
func (s Spectrum) IsBlack() bool {
	return s[0] == 0 && s[1] == 0 && s[2] == 0
}

// Check that all intensities are finite numbers.
func (s Spectrum) IsFinite() bool {
	for _, v := range s {
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			return false
		}
	}
	return true
}

// Get the luminance of the spectrum using the CIE Y weights.
func (s Spectrum) Y() float32 {
	return 0.212671*s[0] + 0.715160*s[1] + 0.072169*s[2]
}

package bsdf

import (
	"math"

	"github.com/achilleasa/rigel/types"
)

// Map a uniform sample to the unit disk using the concentric mapping,
// which preserves stratification better than polar warping.
func ConcentricSampleDisk(u types.Vec2) types.Vec2 {
	ox := 2*u[0] - 1
	oy := 2*u[1] - 1
	if ox == 0 && oy == 0 {
		return types.Vec2{}
	}

	var r, theta float32
	if abs32(ox) > abs32(oy) {
		r = ox
		theta = math.Pi / 4 * (oy / ox)
	} else {
		r = oy
		theta = math.Pi/2 - math.Pi/4*(ox/oy)
	}

	return types.XY(
		r*float32(math.Cos(float64(theta))),
		r*float32(math.Sin(float64(theta))),
	)
}

// Map a uniform sample to a cosine weighted direction on the
// hemisphere around the local normal.
func CosineSampleHemisphere(u types.Vec2) types.Vec3 {
	d := ConcentricSampleDisk(u)
	z := 1 - d.Dot(d)
	if z < 0 {
		z = 0
	}
	return types.XYZ(d[0], d[1], sqrt32(z))
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

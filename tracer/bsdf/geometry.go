// Package bsdf implements the scattering lobes that materials combine
// into per-intersection BSDFs. Lobe math runs in a local shading frame
// where the surface normal is (0, 0, 1), so trigonometric terms of a
// direction reduce to simple component arithmetic.
package bsdf

import (
	"math"

	"github.com/achilleasa/rigel/types"
)

const invPi = 1.0 / math.Pi

// Cosine of the angle between w and the local normal.
func CosTheta(w types.Vec3) float32 {
	return w[2]
}

func Cos2Theta(w types.Vec3) float32 {
	return w[2] * w[2]
}

func AbsCosTheta(w types.Vec3) float32 {
	if w[2] < 0 {
		return -w[2]
	}
	return w[2]
}

func Sin2Theta(w types.Vec3) float32 {
	s := 1 - Cos2Theta(w)
	if s < 0 {
		return 0
	}
	return s
}

func SinTheta(w types.Vec3) float32 {
	return sqrt32(Sin2Theta(w))
}

func TanTheta(w types.Vec3) float32 {
	return SinTheta(w) / CosTheta(w)
}

func Tan2Theta(w types.Vec3) float32 {
	return Sin2Theta(w) / Cos2Theta(w)
}

// Cosine of the azimuthal angle of w around the local normal.
func CosPhi(w types.Vec3) float32 {
	sinTheta := SinTheta(w)
	if sinTheta == 0 {
		return 1
	}
	return clamp32(w[0]/sinTheta, -1, 1)
}

func SinPhi(w types.Vec3) float32 {
	sinTheta := SinTheta(w)
	if sinTheta == 0 {
		return 0
	}
	return clamp32(w[1]/sinTheta, -1, 1)
}

func Cos2Phi(w types.Vec3) float32 {
	c := CosPhi(w)
	return c * c
}

func Sin2Phi(w types.Vec3) float32 {
	s := SinPhi(w)
	return s * s
}

// Check whether two local directions lie on the same side of the
// surface.
func SameHemisphere(w, w2 types.Vec3) bool {
	return w[2]*w2[2] > 0
}

// Mirror w about the local normal.
func Reflect(w types.Vec3) types.Vec3 {
	return types.XYZ(-w[0], -w[1], w[2])
}

// Refract wi through a surface with normal n and relative index of
// refraction eta = etaIncident/etaTransmitted. Returns false under
// total internal reflection.
func Refract(wi, n types.Vec3, eta float32) (types.Vec3, bool) {
	cosThetaI := n.Dot(wi)
	sin2ThetaI := 1 - cosThetaI*cosThetaI
	if sin2ThetaI < 0 {
		sin2ThetaI = 0
	}

	sin2ThetaT := eta * eta * sin2ThetaI
	if sin2ThetaT >= 1 {
		return types.Vec3{}, false
	}

	cosThetaT := sqrt32(1 - sin2ThetaT)
	wt := wi.Neg().Mul(eta).Add(n.Mul(eta*cosThetaI - cosThetaT))
	return wt, true
}

func sqrt32(v float32) float32 {
	return float32(math.Sqrt(float64(v)))
}

func clamp32(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

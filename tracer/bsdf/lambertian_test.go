package bsdf

import (
	"math"
	"math/rand"
	"testing"

	"github.com/achilleasa/rigel/types"
)

func TestLambertianF(t *testing.T) {
	l := NewLambertianReflection(types.Grey(0.75))
	if got := l.Type(); got != Reflection|Diffuse {
		t.Fatalf("expected a diffuse reflection lobe; got %b", got)
	}

	// The lobe value is constant over the hemisphere.
	exp := types.Grey(0.75 * invPi)
	dirs := []types.Vec3{
		types.XYZ(0, 0, 1),
		types.XYZ(0.48, 0.36, 0.8),
		types.XYZ(-0.6, 0, 0.8),
	}
	for _, wo := range dirs {
		for _, wi := range dirs {
			if got := l.F(wo, wi); !approxEqSpectrum(got, exp, 1e-6) {
				t.Fatalf("expected %v for wo %v wi %v; got %v", exp, wo, wi, got)
			}
		}
	}
}

func TestLambertianSampleF(t *testing.T) {
	type spec struct {
		wo types.Vec3
	}
	specs := []spec{
		spec{types.XYZ(0, 0, 1)},
		spec{types.XYZ(0.48, 0.36, 0.8)},
		// Directions below the surface flip the sampled hemisphere.
		spec{types.XYZ(0.48, 0.36, -0.8)},
	}

	r := types.Grey(0.6)
	l := NewLambertianReflection(r)
	for index, s := range specs {
		for _, u := range []types.Vec2{types.XY(0.1, 0.3), types.XY(0.5, 0.5), types.XY(0.82, 0.67)} {
			wi, f, pdf := l.SampleF(s.wo, u)

			if !SameHemisphere(s.wo, wi) {
				t.Fatalf("[spec %d] expected wi on the same side as wo %v; got %v", index, s.wo, wi)
			}
			if !approxEq(wi.Len(), 1, 1e-4) {
				t.Fatalf("[spec %d] expected a unit wi; got %v with length %v", index, wi, wi.Len())
			}
			if exp := AbsCosTheta(wi) * invPi; !approxEq(pdf, exp, 1e-5) {
				t.Fatalf("[spec %d] expected cosine pdf %v; got %v", index, exp, pdf)
			}

			// With a cosine pdf the sample weight f*cos/pdf collapses
			// to the reflectance itself.
			weight := f.Mul(AbsCosTheta(wi) / pdf)
			if !approxEqSpectrum(weight, r, 1e-4) {
				t.Fatalf("[spec %d] expected sample weight %v; got %v", index, r, weight)
			}
		}
	}
}

func TestLambertianHemisphericalReflectance(t *testing.T) {
	// Integrating f*cos over the hemisphere with uniform directions
	// must recover the configured reflectance.
	const albedo = 0.75
	l := NewLambertianReflection(types.Grey(albedo))
	wo := types.XYZ(0, 0, 1)

	rng := rand.New(rand.NewSource(1))
	const n = 50000
	var sum float64
	for i := 0; i < n; i++ {
		z := rng.Float32()
		sinTheta := sqrt32(1 - z*z)
		phi := 2 * math.Pi * rng.Float64()
		wi := types.XYZ(
			sinTheta*float32(math.Cos(phi)),
			sinTheta*float32(math.Sin(phi)),
			z,
		)

		// Uniform hemisphere pdf is 1/(2*pi).
		f := l.F(wo, wi)
		sum += float64(f[0]) * float64(AbsCosTheta(wi)) * 2 * math.Pi
	}

	if got := sum / n; math.Abs(got-albedo) > 0.01 {
		t.Fatalf("expected the reflectance estimate to be within 0.01 of %v; got %v", albedo, got)
	}
}

func TestConcentricSampleDisk(t *testing.T) {
	type spec struct {
		u   types.Vec2
		exp types.Vec2
	}
	specs := []spec{
		spec{types.XY(0.5, 0.5), types.XY(0, 0)},
		spec{types.XY(1, 0.5), types.XY(1, 0)},
		spec{types.XY(0.5, 1), types.XY(0, 1)},
		spec{types.XY(0, 0.5), types.XY(-1, 0)},
	}
	for index, s := range specs {
		got := ConcentricSampleDisk(s.u)
		if !approxEq(got[0], s.exp[0], 1e-5) || !approxEq(got[1], s.exp[1], 1e-5) {
			t.Fatalf("[spec %d] expected disk point %v; got %v", index, s.exp, got)
		}
	}

	// Every sample stays inside the unit disk.
	for ux := float32(0.05); ux < 1; ux += 0.1 {
		for uy := float32(0.05); uy < 1; uy += 0.1 {
			p := ConcentricSampleDisk(types.XY(ux, uy))
			if p.Dot(p) > 1+1e-5 {
				t.Fatalf("expected samples inside the unit disk; got %v for u (%v, %v)", p, ux, uy)
			}
		}
	}
}

func TestCosineSampleHemisphere(t *testing.T) {
	if got := CosineSampleHemisphere(types.XY(0.5, 0.5)); !approxEqVec3(got, types.XYZ(0, 0, 1), 1e-5) {
		t.Fatalf("expected the domain center to map to the normal; got %v", got)
	}

	for ux := float32(0.05); ux < 1; ux += 0.1 {
		for uy := float32(0.05); uy < 1; uy += 0.1 {
			w := CosineSampleHemisphere(types.XY(ux, uy))
			if w[2] < 0 {
				t.Fatalf("expected samples in the upper hemisphere; got %v", w)
			}
			if !approxEq(w.Len(), 1, 1e-4) {
				t.Fatalf("expected unit samples; got %v with length %v", w, w.Len())
			}
		}
	}
}

package bsdf

import (
	"testing"

	"github.com/achilleasa/rigel/types"
)

func TestSpecularReflectionSampleF(t *testing.T) {
	type spec struct {
		wo    types.Vec3
		expWi types.Vec3
		expF  types.Spectrum
	}
	specs := []spec{
		// Mirror direction with the implied 1/|cos| folded in.
		spec{types.XYZ(0.6, 0, 0.8), types.XYZ(-0.6, 0, 0.8), types.Grey(0.9 / 0.8)},
		spec{types.XYZ(0, 0, 1), types.XYZ(0, 0, 1), types.Grey(0.9)},
		// Reflection works from below the surface as well.
		spec{types.XYZ(0.6, 0, -0.8), types.XYZ(-0.6, 0, -0.8), types.Grey(0.9 / 0.8)},
	}

	mirror := NewSpecularReflection(types.Grey(0.9), NewFresnelNoOp())
	if got := mirror.Type(); got != Reflection|Specular {
		t.Fatalf("expected a specular reflection lobe; got %b", got)
	}

	for index, s := range specs {
		wi, f, pdf := mirror.SampleF(s.wo, types.XY(0.5, 0.5))
		if pdf != 1 {
			t.Fatalf("[spec %d] expected pdf 1 for a delta lobe; got %v", index, pdf)
		}
		if !approxEqVec3(wi, s.expWi, 1e-5) {
			t.Fatalf("[spec %d] expected wi %v; got %v", index, s.expWi, wi)
		}
		if !approxEqSpectrum(f, s.expF, 1e-4) {
			t.Fatalf("[spec %d] expected f %v; got %v", index, s.expF, f)
		}
	}

	// Delta lobes evaluate to black for explicit direction pairs.
	if got := mirror.F(types.XYZ(0.6, 0, 0.8), types.XYZ(-0.6, 0, 0.8)); got != (types.Spectrum{}) {
		t.Fatalf("expected black for an explicit pair; got %v", got)
	}
}

func TestSpecularReflectionFresnelScale(t *testing.T) {
	mirror := NewSpecularReflection(types.Grey(1), NewFresnelDielectric(1, 1.5))

	// At normal incidence only 4% reflects off a glass boundary.
	_, f, pdf := mirror.SampleF(types.XYZ(0, 0, 1), types.XY(0.5, 0.5))
	if pdf != 1 {
		t.Fatalf("expected pdf 1; got %v", pdf)
	}
	if !approxEqSpectrum(f, types.Grey(0.04), 1e-3) {
		t.Fatalf("expected f %v; got %v", types.Grey(0.04), f)
	}
}

func TestSpecularTransmissionSampleF(t *testing.T) {
	type spec struct {
		wo     types.Vec3
		expWi  types.Vec3
		expF   types.Spectrum
		expPdf float32
	}
	specs := []spec{
		// Straight through at normal incidence, scaled by (1-Fr)/eta^2.
		spec{types.XYZ(0, 0, 1), types.XYZ(0, 0, -1), types.Grey(0.4266667), 1},
		// 30 degrees off normal bends to sin = 1/3 on the far side.
		spec{types.XYZ(0.5, 0, 0.8660254), types.XYZ(-0.3333333, 0, -0.9428090), types.Grey(0.4518302), 1},
		// Leaving the medium inverts the radiance compression.
		spec{types.XYZ(0.2, 0, -0.9797959), types.XYZ(-0.3, 0, 0.9539392), types.Grey(2.2639385), 1},
		// Total internal reflection yields no sample.
		spec{types.XYZ(0.8, 0, -0.6), types.Vec3{}, types.Spectrum{}, 0},
	}

	glass := NewSpecularTransmission(types.Grey(1), 1, 1.5)
	if got := glass.Type(); got != Transmission|Specular {
		t.Fatalf("expected a specular transmission lobe; got %b", got)
	}

	for index, s := range specs {
		wi, f, pdf := glass.SampleF(s.wo, types.XY(0.5, 0.5))
		if !approxEq(pdf, s.expPdf, 1e-6) {
			t.Fatalf("[spec %d] expected pdf %v; got %v", index, s.expPdf, pdf)
		}
		if !approxEqVec3(wi, s.expWi, 1e-4) {
			t.Fatalf("[spec %d] expected wi %v; got %v", index, s.expWi, wi)
		}
		if !approxEqSpectrum(f, s.expF, 1e-3) {
			t.Fatalf("[spec %d] expected f %v; got %v", index, s.expF, f)
		}
	}

	if got := glass.F(types.XYZ(0, 0, 1), types.XYZ(0, 0, -1)); got != (types.Spectrum{}) {
		t.Fatalf("expected black for an explicit pair; got %v", got)
	}
}

func TestRefract(t *testing.T) {
	type spec struct {
		wi    types.Vec3
		eta   float32
		expWt types.Vec3
		expOk bool
	}
	specs := []spec{
		// Normal incidence passes straight through.
		spec{types.XYZ(0, 0, 1), 1 / 1.5, types.XYZ(0, 0, -1), true},
		// Snell's law: sin(out) = sin(in)*eta.
		spec{types.XYZ(0.5, 0, 0.8660254), 1 / 1.5, types.XYZ(-0.3333333, 0, -0.9428090), true},
		// Beyond the critical angle nothing refracts.
		spec{types.XYZ(0.8, 0, 0.6), 1.5, types.Vec3{}, false},
	}

	n := types.XYZ(0, 0, 1)
	for index, s := range specs {
		wt, ok := Refract(s.wi, n, s.eta)
		if ok != s.expOk {
			t.Fatalf("[spec %d] expected refraction status %v; got %v", index, s.expOk, ok)
		}
		if !approxEqVec3(wt, s.expWt, 1e-4) {
			t.Fatalf("[spec %d] expected transmitted dir %v; got %v", index, s.expWt, wt)
		}
		if ok {
			// The transmitted direction must satisfy Snell's law.
			if got, exp := SinTheta(wt), SinTheta(s.wi)*s.eta; !approxEq(got, exp, 1e-4) {
				t.Fatalf("[spec %d] expected transmitted sine %v; got %v", index, exp, got)
			}
		}
	}
}

func TestReflect(t *testing.T) {
	type spec struct {
		w   types.Vec3
		exp types.Vec3
	}
	specs := []spec{
		spec{types.XYZ(0, 0, 1), types.XYZ(0, 0, 1)},
		spec{types.XYZ(0.6, 0, 0.8), types.XYZ(-0.6, 0, 0.8)},
		spec{types.XYZ(-0.3, 0.4, 0.866), types.XYZ(0.3, -0.4, 0.866)},
	}
	for index, s := range specs {
		if got := Reflect(s.w); !approxEqVec3(got, s.exp, 1e-6) {
			t.Fatalf("[spec %d] expected %v; got %v", index, s.exp, got)
		}
	}
}

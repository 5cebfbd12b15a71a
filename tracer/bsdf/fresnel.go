package bsdf

import "github.com/achilleasa/rigel/types"

// The Fresnel interface computes the fraction of incident light that a
// surface interface reflects for a given incidence angle. cosThetaI is
// measured against the surface normal on the incident side.
type Fresnel interface {
	Evaluate(cosThetaI float32) types.Spectrum
}

type fresnelDielectric struct {
	etaI float32
	etaT float32
}

// Create a fresnel term for the boundary between two dielectrics with
// the given indices of refraction.
func NewFresnelDielectric(etaI, etaT float32) Fresnel {
	return &fresnelDielectric{etaI: etaI, etaT: etaT}
}

func (f *fresnelDielectric) Evaluate(cosThetaI float32) types.Spectrum {
	return types.Grey(frDielectric(cosThetaI, f.etaI, f.etaT))
}

type fresnelConductor struct {
	etaI types.Spectrum
	etaT types.Spectrum
	k    types.Spectrum
}

// Create a fresnel term for the boundary between a dielectric and a
// conductor with index of refraction etaT and absorption coefficient
// k.
func NewFresnelConductor(etaI, etaT, k types.Spectrum) Fresnel {
	return &fresnelConductor{etaI: etaI, etaT: etaT, k: k}
}

func (f *fresnelConductor) Evaluate(cosThetaI float32) types.Spectrum {
	var out types.Spectrum
	for i := range out {
		out[i] = frConductor1(abs32(cosThetaI), f.etaI[i], f.etaT[i], f.k[i])
	}
	return out
}

type fresnelNoOp struct{}

// Create a fresnel term that reflects everything. Used by idealized
// mirrors.
func NewFresnelNoOp() Fresnel {
	return fresnelNoOp{}
}

func (fresnelNoOp) Evaluate(cosThetaI float32) types.Spectrum {
	return types.Grey(1)
}

// Unpolarized fresnel reflectance at the boundary of two dielectrics.
// A negative cosThetaI means the incident ray arrives from inside the
// medium, in which case the indices swap roles.
func frDielectric(cosThetaI, etaI, etaT float32) float32 {
	cosThetaI = clamp32(cosThetaI, -1, 1)
	if cosThetaI <= 0 {
		etaI, etaT = etaT, etaI
		cosThetaI = -cosThetaI
	}

	sinThetaI := sqrt32(1 - cosThetaI*cosThetaI)
	sinThetaT := etaI / etaT * sinThetaI
	if sinThetaT >= 1 {
		// Total internal reflection.
		return 1
	}

	cosThetaT := sqrt32(1 - sinThetaT*sinThetaT)
	rParl := (etaT*cosThetaI - etaI*cosThetaT) / (etaT*cosThetaI + etaI*cosThetaT)
	rPerp := (etaI*cosThetaI - etaT*cosThetaT) / (etaI*cosThetaI + etaT*cosThetaT)
	return (rParl*rParl + rPerp*rPerp) / 2
}

// Fresnel reflectance at the boundary between a dielectric and a
// conductor for a single wavelength.
func frConductor1(cosThetaI, etaI, etaT, k float32) float32 {
	cosThetaI = clamp32(cosThetaI, -1, 1)
	cos2 := cosThetaI * cosThetaI
	sin2 := 1 - cos2

	eta := etaT / etaI
	etaK := k / etaI
	eta2 := eta * eta
	etaK2 := etaK * etaK

	t0 := eta2 - etaK2 - sin2
	a2plusb2 := sqrt32(max32(0, t0*t0+4*eta2*etaK2))
	t1 := a2plusb2 + cos2
	a := sqrt32(max32(0, (a2plusb2+t0)/2))
	t2 := 2 * a * cosThetaI
	rs := (t1 - t2) / (t1 + t2)

	t3 := cos2*a2plusb2 + sin2*sin2
	t4 := t2 * sin2
	rp := rs * (t3 - t4) / (t3 + t4)

	return (rs + rp) / 2
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

package bsdf

import "github.com/achilleasa/rigel/types"

// BSDF bundles the scattering lobes active at a surface point together
// with the shading frame they are evaluated in.
type BSDF struct {
	ns types.Vec3
	ng types.Vec3
	ss types.Vec3
	ts types.Vec3

	lobes []BxDF
}

// Create an empty BSDF for a surface point with the given shading
// normal, geometric normal and primary tangent. The tangent is
// orthogonalized against the shading normal; degenerate tangents fall
// back to an arbitrary frame around the normal.
func New(shadingNormal, geomNormal, dpdu types.Vec3) *BSDF {
	ss := dpdu.Sub(shadingNormal.Mul(shadingNormal.Dot(dpdu))).Normalize()
	if ss == (types.Vec3{}) {
		ss, _ = types.CoordinateSystem(shadingNormal)
	}

	return &BSDF{
		ns:    shadingNormal,
		ng:    geomNormal,
		ss:    ss,
		ts:    shadingNormal.Cross(ss),
		lobes: make([]BxDF, 0, 4),
	}
}

// Attach a scattering lobe.
func (b *BSDF) Add(lobe BxDF) {
	b.lobes = append(b.lobes, lobe)
}

// Count the lobes matching the given type flags.
func (b *BSDF) NumLobes(flags Type) int {
	count := 0
	for _, lobe := range b.lobes {
		if lobe.Type().Matches(flags) {
			count++
		}
	}
	return count
}

// Transform a world space direction into the shading frame.
func (b *BSDF) WorldToLocal(v types.Vec3) types.Vec3 {
	return types.XYZ(v.Dot(b.ss), v.Dot(b.ts), v.Dot(b.ns))
}

// Transform a shading frame direction back to world space.
func (b *BSDF) LocalToWorld(v types.Vec3) types.Vec3 {
	return b.ss.Mul(v[0]).Add(b.ts.Mul(v[1])).Add(b.ns.Mul(v[2]))
}

// Evaluate the BSDF for a world space outgoing/incoming direction
// pair. The geometric normal decides whether the pair is a reflection
// or a transmission so shading normals cannot flip the transport side.
func (b *BSDF) F(woWorld, wiWorld types.Vec3) types.Spectrum {
	wo := b.WorldToLocal(woWorld)
	if AbsCosTheta(wo) == 0 {
		return types.Spectrum{}
	}
	wi := b.WorldToLocal(wiWorld)

	reflect := wiWorld.Dot(b.ng)*woWorld.Dot(b.ng) > 0

	var sum types.Spectrum
	for _, lobe := range b.lobes {
		t := lobe.Type()
		if (reflect && t&Reflection != 0) || (!reflect && t&Transmission != 0) {
			sum = sum.Add(lobe.F(wo, wi))
		}
	}
	return sum
}

// Sample an incoming direction from the lobes matching flags. The
// lobe is picked uniformly using the first sample dimension, which is
// remapped before being handed to the lobe sampler. When several
// lobes match, the returned value covers the sampled lobe alone and
// the pdf is scaled by the selection probability.
func (b *BSDF) SampleF(woWorld types.Vec3, u types.Vec2, flags Type) (types.Vec3, types.Spectrum, float32, Type) {
	matching := b.NumLobes(flags)
	if matching == 0 {
		return types.Vec3{}, types.Spectrum{}, 0, 0
	}

	idx := int(u[0] * float32(matching))
	if idx > matching-1 {
		idx = matching - 1
	}

	var lobe BxDF
	seen := 0
	for _, l := range b.lobes {
		if !l.Type().Matches(flags) {
			continue
		}
		if seen == idx {
			lobe = l
			break
		}
		seen++
	}

	wo := b.WorldToLocal(woWorld)
	if AbsCosTheta(wo) == 0 {
		return types.Vec3{}, types.Spectrum{}, 0, 0
	}

	uRemapped := types.XY(u[0]*float32(matching)-float32(idx), u[1])
	wi, f, pdf := lobe.SampleF(wo, uRemapped)
	if pdf == 0 {
		return types.Vec3{}, types.Spectrum{}, 0, 0
	}
	if matching > 1 {
		pdf /= float32(matching)
	}

	return b.LocalToWorld(wi), f, pdf, lobe.Type()
}

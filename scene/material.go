package scene

import (
	"fmt"

	"github.com/achilleasa/rigel/tracer"
	"github.com/achilleasa/rigel/tracer/bsdf"
	"github.com/achilleasa/rigel/types"
)

// The Material interface combines per-intersection BSDF construction
// with configuration time validation. Validation runs once before a
// render starts; BSDF construction runs on every intersection.
type Material interface {
	tracer.Material
	Validate() error
}

// The microfacet distribution models materials can choose from.
type DistributionModel uint8

const (
	ModelBeckmann DistributionModel = iota
	ModelTrowbridgeReitz
)

// Matte is a purely diffuse material.
type Matte struct {
	kd Texture
}

// Create a matte material with diffuse reflectance kd.
func NewMatte(kd Texture) *Matte {
	return &Matte{kd: kd}
}

func (m *Matte) Validate() error {
	if m.kd == nil {
		return fmt.Errorf("scene: matte: missing reflectance texture")
	}
	return validateReflectance("matte", m.kd)
}

func (m *Matte) BSDF(si *tracer.SurfaceInteraction) *bsdf.BSDF {
	b := bsdf.New(si.ShadingNormal, si.Normal, si.Dpdu)
	kd := m.kd.Evaluate(si).Clamp(0, 1)
	if !kd.IsBlack() {
		b.Add(bsdf.NewLambertianReflection(kd))
	}
	return b
}

// Mirror is an idealized perfectly specular reflector.
type Mirror struct {
	kr Texture
}

// Create a mirror material with reflectance kr.
func NewMirror(kr Texture) *Mirror {
	return &Mirror{kr: kr}
}

func (m *Mirror) Validate() error {
	if m.kr == nil {
		return fmt.Errorf("scene: mirror: missing reflectance texture")
	}
	return validateReflectance("mirror", m.kr)
}

func (m *Mirror) BSDF(si *tracer.SurfaceInteraction) *bsdf.BSDF {
	b := bsdf.New(si.ShadingNormal, si.Normal, si.Dpdu)
	kr := m.kr.Evaluate(si).Clamp(0, 1)
	if !kr.IsBlack() {
		b.Add(bsdf.NewSpecularReflection(kr, bsdf.NewFresnelNoOp()))
	}
	return b
}

// Glass is a smooth dielectric that splits light between a fresnel
// weighted specular reflection and transmission.
type Glass struct {
	kr  Texture
	kt  Texture
	eta float32
}

// Create a glass material with reflectance kr, transmittance kt and
// interior index of refraction eta.
func NewGlass(kr, kt Texture, eta float32) *Glass {
	return &Glass{
		kr:  kr,
		kt:  kt,
		eta: eta,
	}
}

func (g *Glass) Validate() error {
	if g.kr == nil || g.kt == nil {
		return fmt.Errorf("scene: glass: missing reflectance or transmittance texture")
	}
	if g.eta <= 0 {
		return fmt.Errorf("scene: glass: index of refraction %g must be positive", g.eta)
	}
	if err := validateReflectance("glass", g.kr); err != nil {
		return err
	}
	return validateReflectance("glass", g.kt)
}

func (g *Glass) BSDF(si *tracer.SurfaceInteraction) *bsdf.BSDF {
	b := bsdf.New(si.ShadingNormal, si.Normal, si.Dpdu)

	kr := g.kr.Evaluate(si).Clamp(0, 1)
	kt := g.kt.Evaluate(si).Clamp(0, 1)
	if !kr.IsBlack() {
		b.Add(bsdf.NewSpecularReflection(kr, bsdf.NewFresnelDielectric(1, g.eta)))
	}
	if !kt.IsBlack() {
		b.Add(bsdf.NewSpecularTransmission(kt, 1, g.eta))
	}
	return b
}

// Metal is a rough conductor shaded with a Torrance-Sparrow microfacet
// lobe.
type Metal struct {
	eta       types.Spectrum
	k         types.Spectrum
	roughness ScalarTexture
	model     DistributionModel
}

// Create a metal material from conductor constants eta and k, a
// roughness texture in (0, 1] and a microfacet distribution model.
func NewMetal(eta, k types.Spectrum, roughness ScalarTexture, model DistributionModel) *Metal {
	return &Metal{
		eta:       eta,
		k:         k,
		roughness: roughness,
		model:     model,
	}
}

func (m *Metal) Validate() error {
	if m.roughness == nil {
		return fmt.Errorf("scene: metal: missing roughness texture")
	}
	for i, v := range m.eta {
		if v <= 0 {
			return fmt.Errorf("scene: metal: eta component %d must be positive", i)
		}
	}
	for i, v := range m.k {
		if v < 0 {
			return fmt.Errorf("scene: metal: absorption component %d must be non-negative", i)
		}
	}
	return nil
}

func (m *Metal) BSDF(si *tracer.SurfaceInteraction) *bsdf.BSDF {
	b := bsdf.New(si.ShadingNormal, si.Normal, si.Dpdu)

	alpha := bsdf.RoughnessToAlpha(m.roughness.Evaluate(si))
	fresnel := bsdf.NewFresnelConductor(types.Grey(1), m.eta, m.k)
	b.Add(bsdf.NewMicrofacetReflection(types.Grey(1), newDistribution(m.model, alpha), fresnel))
	return b
}

// Plastic layers a glossy dielectric coat over a diffuse base.
type Plastic struct {
	kd        Texture
	ks        Texture
	roughness ScalarTexture
}

// Create a plastic material with diffuse base kd, specular coat ks and
// a roughness texture controlling the coat glossiness.
func NewPlastic(kd, ks Texture, roughness ScalarTexture) *Plastic {
	return &Plastic{
		kd:        kd,
		ks:        ks,
		roughness: roughness,
	}
}

func (p *Plastic) Validate() error {
	if p.kd == nil || p.ks == nil {
		return fmt.Errorf("scene: plastic: missing reflectance texture")
	}
	if p.roughness == nil {
		return fmt.Errorf("scene: plastic: missing roughness texture")
	}
	if err := validateReflectance("plastic", p.kd); err != nil {
		return err
	}
	return validateReflectance("plastic", p.ks)
}

func (p *Plastic) BSDF(si *tracer.SurfaceInteraction) *bsdf.BSDF {
	b := bsdf.New(si.ShadingNormal, si.Normal, si.Dpdu)

	kd := p.kd.Evaluate(si).Clamp(0, 1)
	if !kd.IsBlack() {
		b.Add(bsdf.NewLambertianReflection(kd))
	}

	ks := p.ks.Evaluate(si).Clamp(0, 1)
	if !ks.IsBlack() {
		alpha := bsdf.RoughnessToAlpha(p.roughness.Evaluate(si))
		fresnel := bsdf.NewFresnelDielectric(1, 1.5)
		b.Add(bsdf.NewMicrofacetReflection(ks, bsdf.TrowbridgeReitz(alpha), fresnel))
	}
	return b
}

func newDistribution(model DistributionModel, alpha float32) *bsdf.Distribution {
	if model == ModelBeckmann {
		return bsdf.Beckmann(alpha)
	}
	return bsdf.TrowbridgeReitz(alpha)
}

// Constant reflectance textures must stay within [0, 1] to conserve
// energy; procedural textures clamp at evaluation time instead.
func validateReflectance(material string, tex Texture) error {
	c, ok := tex.(*constantTexture)
	if !ok {
		return nil
	}
	for i, v := range c.value {
		if v < 0 || v > 1 {
			return fmt.Errorf("scene: %s: reflectance component %d (%g) outside [0, 1]", material, i, v)
		}
	}
	return nil
}

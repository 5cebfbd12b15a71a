package scene

import (
	"github.com/achilleasa/rigel/tracer"
	"github.com/achilleasa/rigel/types"
)

// The Texture interface maps surface interactions to spectrum values.
type Texture interface {
	Evaluate(si *tracer.SurfaceInteraction) types.Spectrum
}

// The ScalarTexture interface maps surface interactions to scalar
// values such as roughness.
type ScalarTexture interface {
	Evaluate(si *tracer.SurfaceInteraction) float32
}

type constantTexture struct {
	value types.Spectrum
}

// Create a texture with the same value everywhere.
func Constant(value types.Spectrum) Texture {
	return &constantTexture{value: value}
}

func (t *constantTexture) Evaluate(si *tracer.SurfaceInteraction) types.Spectrum {
	return t.value
}

type constantScalarTexture struct {
	value float32
}

// Create a scalar texture with the same value everywhere.
func ConstantScalar(value float32) ScalarTexture {
	return &constantScalarTexture{value: value}
}

func (t *constantScalarTexture) Evaluate(si *tracer.SurfaceInteraction) float32 {
	return t.value
}

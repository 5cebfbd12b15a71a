package tracer

import (
	"math"

	"github.com/achilleasa/rigel/types"
)

// The Filter interface is implemented by all image reconstruction
// filters. Filters weigh a sample's contribution to nearby pixels by
// its offset from each pixel center. Implementations are stateless and
// safe for concurrent use.
type Filter interface {
	// Evaluate the filter at the given offset from a pixel center.
	// Offsets outside the filter support evaluate to 0.
	Eval(dx, dy float32) float32

	// Get the half extents of the filter support.
	Radius() types.Vec2
}

type boxFilter struct {
	radius types.Vec2
}

// Create a box filter weighing all samples within its support equally.
func NewBoxFilter(radius types.Vec2) Filter {
	return &boxFilter{radius: radius}
}

func (f *boxFilter) Eval(dx, dy float32) float32 {
	if !inSupport(f.radius, dx, dy) {
		return 0
	}
	return 1
}

func (f *boxFilter) Radius() types.Vec2 {
	return f.radius
}

type triangleFilter struct {
	radius types.Vec2
}

// Create a triangle filter whose weight falls off linearly towards the
// edge of its support.
func NewTriangleFilter(radius types.Vec2) Filter {
	return &triangleFilter{radius: radius}
}

func (f *triangleFilter) Eval(dx, dy float32) float32 {
	if !inSupport(f.radius, dx, dy) {
		return 0
	}
	return (f.radius[0] - abs32(dx)) * (f.radius[1] - abs32(dy))
}

func (f *triangleFilter) Radius() types.Vec2 {
	return f.radius
}

type gaussianFilter struct {
	radius types.Vec2
	alpha  float32
	expX   float32
	expY   float32
}

// Create a gaussian filter with the given falloff rate. The gaussian
// is offset so that it reaches exactly 0 at the edge of its support.
func NewGaussianFilter(radius types.Vec2, alpha float32) Filter {
	return &gaussianFilter{
		radius: radius,
		alpha:  alpha,
		expX:   exp32(-alpha * radius[0] * radius[0]),
		expY:   exp32(-alpha * radius[1] * radius[1]),
	}
}

func (f *gaussianFilter) Eval(dx, dy float32) float32 {
	if !inSupport(f.radius, dx, dy) {
		return 0
	}
	return f.gaussian(dx, f.expX) * f.gaussian(dy, f.expY)
}

func (f *gaussianFilter) Radius() types.Vec2 {
	return f.radius
}

func (f *gaussianFilter) gaussian(d, expRadius float32) float32 {
	v := exp32(-f.alpha*d*d) - expRadius
	if v < 0 {
		return 0
	}
	return v
}

type mitchellFilter struct {
	radius types.Vec2
	b      float32
	c      float32
}

// Create a Mitchell-Netravali filter. The b and c parameters trade
// blur against ringing; b + 2c = 1 gives the best behaved family with
// b = c = 1/3 as the common default.
func NewMitchellFilter(radius types.Vec2, b, c float32) Filter {
	return &mitchellFilter{
		radius: radius,
		b:      b,
		c:      c,
	}
}

func (f *mitchellFilter) Eval(dx, dy float32) float32 {
	if !inSupport(f.radius, dx, dy) {
		return 0
	}
	return f.mitchell1D(dx/f.radius[0]) * f.mitchell1D(dy/f.radius[1])
}

func (f *mitchellFilter) Radius() types.Vec2 {
	return f.radius
}

// Evaluate the 1D Mitchell polynomial for x in [-1, 1] covering the
// full filter width.
func (f *mitchellFilter) mitchell1D(x float32) float32 {
	x = abs32(2 * x)
	if x > 1 {
		return ((-f.b-6*f.c)*x*x*x + (6*f.b+30*f.c)*x*x + (-12*f.b-48*f.c)*x + (8*f.b + 24*f.c)) * (1.0 / 6.0)
	}
	return ((12-9*f.b-6*f.c)*x*x*x + (-18+12*f.b+6*f.c)*x*x + (6 - 2*f.b)) * (1.0 / 6.0)
}

func inSupport(radius types.Vec2, dx, dy float32) bool {
	return abs32(dx) <= radius[0] && abs32(dy) <= radius[1]
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func exp32(v float32) float32 {
	return float32(math.Exp(float64(v)))
}

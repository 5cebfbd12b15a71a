package renderer

import (
	"fmt"
	"math"

	"github.com/achilleasa/rigel/tracer"
	"github.com/achilleasa/rigel/types"
)

// Supported sampler and filter selections.
const (
	SamplerStratified = "stratified"
	SamplerConstant   = "constant"

	FilterBox      = "box"
	FilterTriangle = "triangle"
	FilterGaussian = "gaussian"
	FilterMitchell = "mitchell"
)

type Options struct {
	// Frame dims.
	FrameW uint32
	FrameH uint32

	// Number of samples per pixel. The stratified sampler rounds this
	// up to the nearest stratification grid.
	SamplesPerPixel uint32

	// Max length of specular bounce chains; 1 renders direct lighting
	// only.
	MaxDepth uint32

	// Number of render workers; 0 selects one worker per logical cpu.
	NumWorkers uint32

	// Edge length of render tiles in pixels; 0 selects the tracer
	// default.
	TileSize uint32

	// Sampler and reconstruction filter selection.
	Sampler string
	Filter  string

	// Exposure and gamma for tonemapping.
	Exposure float32
	Gamma    float32

	// Base seed for the per-tile sampler streams.
	Seed uint64
}

// Get an options instance populated with the default settings.
func DefaultOptions() Options {
	return Options{
		FrameW:          512,
		FrameH:          512,
		SamplesPerPixel: 16,
		MaxDepth:        5,
		Sampler:         SamplerStratified,
		Filter:          FilterMitchell,
		Exposure:        1.0,
		Gamma:           2.2,
		Seed:            1,
	}
}

// Check the options for configuration errors.
func (o Options) Validate() error {
	if o.FrameW == 0 || o.FrameH == 0 {
		return fmt.Errorf("renderer: invalid frame dimensions %dx%d", o.FrameW, o.FrameH)
	}
	if o.SamplesPerPixel == 0 {
		return fmt.Errorf("renderer: samples per pixel must be at least 1")
	}
	if o.MaxDepth == 0 {
		return fmt.Errorf("renderer: max depth must be at least 1")
	}
	if o.Exposure <= 0 {
		return fmt.Errorf("renderer: exposure %g must be positive", o.Exposure)
	}
	if o.Gamma <= 0 {
		return fmt.Errorf("renderer: gamma %g must be positive", o.Gamma)
	}
	if _, err := o.sampler(); err != nil {
		return err
	}
	if _, err := o.filter(); err != nil {
		return err
	}
	return nil
}

func (o Options) sampler() (tracer.Sampler, error) {
	switch o.Sampler {
	case SamplerStratified:
		xStrata := int(math.Ceil(math.Sqrt(float64(o.SamplesPerPixel))))
		yStrata := int(math.Ceil(float64(o.SamplesPerPixel) / float64(xStrata)))
		return tracer.NewStratifiedSampler(xStrata, yStrata, true, o.Seed), nil
	case SamplerConstant:
		return tracer.NewConstantSampler(int(o.SamplesPerPixel)), nil
	}
	return nil, fmt.Errorf(`renderer: unknown sampler "%s"`, o.Sampler)
}

func (o Options) filter() (tracer.Filter, error) {
	switch o.Filter {
	case FilterBox:
		return tracer.NewBoxFilter(types.XY(0.5, 0.5)), nil
	case FilterTriangle:
		return tracer.NewTriangleFilter(types.XY(2, 2)), nil
	case FilterGaussian:
		return tracer.NewGaussianFilter(types.XY(2, 2), 2), nil
	case FilterMitchell:
		return tracer.NewMitchellFilter(types.XY(2, 2), 1.0/3.0, 1.0/3.0), nil
	}
	return nil, fmt.Errorf(`renderer: unknown filter "%s"`, o.Filter)
}

package tracer

import (
	"image"

	"github.com/achilleasa/rigel/types"
)

// Accumulated filtered radiance for a single film pixel.
type filmPixel struct {
	// Weighted sum of radiance samples.
	l types.Spectrum

	// Sum of the filter weights applied so far.
	weightSum float32
}

// FilmTile accumulates samples for a rectangular film region into a
// private buffer. Tiles are rendered by a single worker and merged
// into the film once complete; the tile itself is not safe for
// concurrent use.
type FilmTile struct {
	bounds image.Rectangle
	filter Filter
	pixels []filmPixel
}

// Get the film pixel bounds this tile can write to. The bounds cover
// every pixel whose filter support overlaps the tile's sample region.
func (t *FilmTile) Bounds() image.Rectangle {
	return t.bounds
}

// Record a radiance sample taken at the given film position. The
// sample contributes to all tile pixels within the reconstruction
// filter support around p.
func (t *FilmTile) AddSample(p types.Vec2, l types.Spectrum, sampleWeight float32) {
	splatSample(t.pixels, t.bounds, t.filter, p, l, sampleWeight)
}

// Splat a sample onto the pixels backing the given bounds. Degenerate
// radiance values are dropped so they can never poison the pixel sums.
func splatSample(pixels []filmPixel, bounds image.Rectangle, filter Filter, p types.Vec2, l types.Spectrum, sampleWeight float32) {
	if !l.IsFinite() {
		return
	}

	// Find the discrete pixel footprint of the filter support around
	// the sample. Continuous film coordinates place pixel centers at
	// offset 0.5.
	radius := filter.Radius()
	shiftedX := p[0] - 0.5
	shiftedY := p[1] - 0.5
	x0 := maxInt(ceilInt(shiftedX-radius[0]), bounds.Min.X)
	y0 := maxInt(ceilInt(shiftedY-radius[1]), bounds.Min.Y)
	x1 := minInt(floorInt(shiftedX+radius[0])+1, bounds.Max.X)
	y1 := minInt(floorInt(shiftedY+radius[1])+1, bounds.Max.Y)

	width := bounds.Dx()
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			weight := filter.Eval(p[0]-(float32(x)+0.5), p[1]-(float32(y)+0.5))
			if weight == 0 {
				continue
			}

			px := &pixels[(y-bounds.Min.Y)*width+(x-bounds.Min.X)]
			px.l = px.l.Add(l.Mul(weight * sampleWeight))
			px.weightSum += weight
		}
	}
}

package tracer

import (
	"image"
	"image/color"
	"math"
	"sync"

	"github.com/achilleasa/rigel/types"
)

// Film accumulates weighted radiance samples for a fixed resolution
// frame and resolves them into final pixel values. Tiles rendered by
// concurrent workers are merged under the film mutex; all other state
// is written before workers start or read after they exit.
type Film struct {
	width  int
	height int
	filter Filter

	mu     sync.Mutex
	pixels []filmPixel
}

// Create a new film with the given resolution and reconstruction
// filter.
func NewFilm(width, height int, filter Filter) *Film {
	return &Film{
		width:  width,
		height: height,
		filter: filter,
		pixels: make([]filmPixel, width*height),
	}
}

// Get the film width in pixels.
func (f *Film) Width() int {
	return f.width
}

// Get the film height in pixels.
func (f *Film) Height() int {
	return f.height
}

// Get the discrete pixel bounds of the film.
func (f *Film) Bounds() image.Rectangle {
	return image.Rect(0, 0, f.width, f.height)
}

// Get the region of film coordinates that should be sampled. The
// region extends past the pixel bounds by the filter half extents so
// border pixels collect the same filter support as interior ones.
func (f *Film) SampleBounds() image.Rectangle {
	radius := f.filter.Radius()
	return image.Rect(
		floorInt(0.5-radius[0]),
		floorInt(0.5-radius[1]),
		ceilInt(float32(f.width)-0.5+radius[0]),
		ceilInt(float32(f.height)-0.5+radius[1]),
	)
}

// Get the film pixels that samples inside the given sample-space
// region can contribute to through the reconstruction filter.
func (f *Film) PixelRegion(sampleBounds image.Rectangle) image.Rectangle {
	radius := f.filter.Radius()
	return image.Rect(
		ceilInt(float32(sampleBounds.Min.X)-0.5-radius[0]),
		ceilInt(float32(sampleBounds.Min.Y)-0.5-radius[1]),
		floorInt(float32(sampleBounds.Max.X)-0.5+radius[0])+1,
		floorInt(float32(sampleBounds.Max.Y)-0.5+radius[1])+1,
	).Intersect(f.Bounds())
}

// Create a film tile buffering samples for the given sample-space
// region. The tile's pixel bounds include every film pixel its samples
// can contribute to through the reconstruction filter.
func (f *Film) Tile(sampleBounds image.Rectangle) *FilmTile {
	bounds := f.PixelRegion(sampleBounds)

	return &FilmTile{
		bounds: bounds,
		filter: f.filter,
		pixels: make([]filmPixel, bounds.Dx()*bounds.Dy()),
	}
}

// Merge a completed tile into the film. Safe to call while other
// workers render their own tiles.
func (f *Film) MergeTile(t *FilmTile) {
	f.mu.Lock()
	defer f.mu.Unlock()

	width := t.bounds.Dx()
	for y := t.bounds.Min.Y; y < t.bounds.Max.Y; y++ {
		for x := t.bounds.Min.X; x < t.bounds.Max.X; x++ {
			src := &t.pixels[(y-t.bounds.Min.Y)*width+(x-t.bounds.Min.X)]
			dst := &f.pixels[y*f.width+x]
			dst.l = dst.l.Add(src.l)
			dst.weightSum += src.weightSum
		}
	}
}

// Record a single radiance sample directly on the film, bypassing the
// tile path.
func (f *Film) AddSample(p types.Vec2, l types.Spectrum, sampleWeight float32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	splatSample(f.pixels, f.Bounds(), f.filter, p, l, sampleWeight)
}

// Get the resolved value of a pixel: the weighted radiance sum divided
// by the accumulated filter weight. Pixels that received no samples
// and out of bounds coordinates resolve to black.
func (f *Film) Pixel(x, y int) types.Spectrum {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return types.Spectrum{}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	px := f.pixels[y*f.width+x]
	if px.weightSum == 0 {
		return types.Spectrum{}
	}
	return px.l.Div(px.weightSum)
}

// Convert the film contents to an LDR image using exponential exposure
// mapping followed by gamma compression. Pixels that received no
// samples come out fully transparent.
func (f *Film) Image(exposure, gamma float32) *image.RGBA {
	img := image.NewRGBA(f.Bounds())
	f.WriteRegion(img, f.Bounds(), exposure, gamma)
	return img
}

// Tonemap a region of the film into img, which must share the film's
// coordinate space. Used to refresh display buffers while a render is
// still in flight.
func (f *Film) WriteRegion(img *image.RGBA, region image.Rectangle, exposure, gamma float32) {
	region = region.Intersect(f.Bounds())
	invGamma := float64(1 / gamma)

	f.mu.Lock()
	defer f.mu.Unlock()
	for y := region.Min.Y; y < region.Max.Y; y++ {
		for x := region.Min.X; x < region.Max.X; x++ {
			px := f.pixels[y*f.width+x]
			if px.weightSum == 0 {
				img.SetRGBA(x, y, color.RGBA{})
				continue
			}

			l := px.l.Div(px.weightSum)
			img.SetRGBA(x, y, color.RGBA{
				R: tonemapChannel(l[0], exposure, invGamma),
				G: tonemapChannel(l[1], exposure, invGamma),
				B: tonemapChannel(l[2], exposure, invGamma),
				A: 255,
			})
		}
	}
}

func tonemapChannel(v, exposure float32, invGamma float64) uint8 {
	if v <= 0 || math.IsNaN(float64(v)) {
		return 0
	}

	ldr := 1 - math.Exp(float64(-v*exposure))
	ldr = math.Pow(ldr, invGamma)
	if ldr >= 1 {
		return 255
	}
	return uint8(ldr*255 + 0.5)
}

func floorInt(v float32) int {
	return int(math.Floor(float64(v)))
}

func ceilInt(v float32) int {
	return int(math.Ceil(float64(v)))
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

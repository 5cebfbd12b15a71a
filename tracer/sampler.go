package tracer

import (
	"math/rand"

	"github.com/achilleasa/rigel/types"
)

// Largest float32 strictly below 1. Sample values are clamped to it so
// downstream code can rely on the [0, 1) contract.
const oneMinusEpsilon = float32(0.99999994)

// Number of stratified sample dimensions precomputed per pixel.
// Requests past this fall back to uniform draws.
const maxPrecomputedDims = 8

// The Sampler interface is implemented by all sample generators. A
// sampler produces the stream of values in [0, 1) that drives camera
// and light sampling for one pixel at a time.
//
// The stream for a pixel depends only on the sampler seed, the pixel
// coordinates and the sample index, never on the order pixels are
// visited in. Samplers are not safe for concurrent use; workers clone
// the base sampler per tile.
type Sampler interface {
	// Create an independent sampler with the same configuration and
	// the given seed.
	Clone(seed uint64) Sampler

	// Get the number of samples generated per pixel.
	SamplesPerPixel() int

	// Begin generating samples for the given pixel, starting at
	// sample index 0.
	StartPixel(x, y int)

	// Get the next single sample value for the current sample.
	Get1D() float32

	// Get the next sample value pair for the current sample.
	Get2D() types.Vec2

	// Advance to the next sample of the current pixel. Returns false
	// once the per pixel sample budget is exhausted.
	StartNextSample() bool
}

// Assemble the camera sample for the current sample of pixel (x, y).
// Values are always consumed in the same order (film offset, time,
// lens) so sampler streams stay aligned across camera kinds.
func GetCameraSample(s Sampler, x, y int) CameraSample {
	film := s.Get2D()
	time := s.Get1D()
	lens := s.Get2D()
	return CameraSample{
		FilmPoint: types.XY(float32(x)+film[0], float32(y)+film[1]),
		Time:      time,
		LensPoint: lens,
	}
}

type constantSampler struct {
	spp       int
	sampleIdx int
}

// Create a sampler that always returns 0.5, placing every sample at
// the center of its domain. Used by debug renders and analytic tests
// where jitter noise would get in the way.
func NewConstantSampler(samplesPerPixel int) Sampler {
	if samplesPerPixel < 1 {
		samplesPerPixel = 1
	}
	return &constantSampler{spp: samplesPerPixel}
}

func (s *constantSampler) Clone(seed uint64) Sampler {
	return &constantSampler{spp: s.spp}
}

func (s *constantSampler) SamplesPerPixel() int {
	return s.spp
}

func (s *constantSampler) StartPixel(x, y int) {
	s.sampleIdx = 0
}

func (s *constantSampler) Get1D() float32 {
	return 0.5
}

func (s *constantSampler) Get2D() types.Vec2 {
	return types.XY(0.5, 0.5)
}

func (s *constantSampler) StartNextSample() bool {
	s.sampleIdx++
	return s.sampleIdx < s.spp
}

type stratifiedSampler struct {
	xStrata int
	yStrata int
	jitter  bool
	seed    uint64

	rng       *rand.Rand
	samples1D [][]float32
	samples2D [][]types.Vec2
	sampleIdx int
	dim1D     int
	dim2D     int
}

// Create a sampler that subdivides the sample domain into a grid of
// strata and draws one sample from each. With jitter disabled samples
// sit at stratum centers. The per pixel sample count is the stratum
// count xStrata*yStrata.
func NewStratifiedSampler(xStrata, yStrata int, jitter bool, seed uint64) Sampler {
	if xStrata < 1 {
		xStrata = 1
	}
	if yStrata < 1 {
		yStrata = 1
	}

	s := &stratifiedSampler{
		xStrata: xStrata,
		yStrata: yStrata,
		jitter:  jitter,
		seed:    seed,
	}

	spp := xStrata * yStrata
	s.samples1D = make([][]float32, maxPrecomputedDims)
	s.samples2D = make([][]types.Vec2, maxPrecomputedDims)
	for dim := 0; dim < maxPrecomputedDims; dim++ {
		s.samples1D[dim] = make([]float32, spp)
		s.samples2D[dim] = make([]types.Vec2, spp)
	}
	return s
}

func (s *stratifiedSampler) Clone(seed uint64) Sampler {
	return NewStratifiedSampler(s.xStrata, s.yStrata, s.jitter, seed)
}

func (s *stratifiedSampler) SamplesPerPixel() int {
	return s.xStrata * s.yStrata
}

// Begin generating samples for the given pixel. The pixel stream is
// seeded from the sampler seed and the pixel coordinates alone, making
// it independent of tile traversal order.
func (s *stratifiedSampler) StartPixel(x, y int) {
	s.rng = rand.New(rand.NewSource(pixelSeed(s.seed, x, y)))
	s.sampleIdx = 0
	s.dim1D = 0
	s.dim2D = 0

	for dim := 0; dim < maxPrecomputedDims; dim++ {
		s.stratify1D(s.samples1D[dim])
		s.stratify2D(s.samples2D[dim])
	}
}

func (s *stratifiedSampler) Get1D() float32 {
	if s.dim1D < len(s.samples1D) {
		v := s.samples1D[s.dim1D][s.sampleIdx]
		s.dim1D++
		return v
	}
	return s.rng.Float32()
}

func (s *stratifiedSampler) Get2D() types.Vec2 {
	if s.dim2D < len(s.samples2D) {
		v := s.samples2D[s.dim2D][s.sampleIdx]
		s.dim2D++
		return v
	}
	return types.XY(s.rng.Float32(), s.rng.Float32())
}

func (s *stratifiedSampler) StartNextSample() bool {
	s.dim1D = 0
	s.dim2D = 0
	s.sampleIdx++
	return s.sampleIdx < s.SamplesPerPixel()
}

// Fill out with one stratified sample per stratum, then shuffle so
// consecutive sample indices are not correlated across dimensions.
func (s *stratifiedSampler) stratify1D(out []float32) {
	inv := 1 / float32(len(out))
	for i := range out {
		out[i] = clampSample((float32(i) + s.jitterValue()) * inv)
	}
	s.rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
}

func (s *stratifiedSampler) stratify2D(out []types.Vec2) {
	invX := 1 / float32(s.xStrata)
	invY := 1 / float32(s.yStrata)
	i := 0
	for y := 0; y < s.yStrata; y++ {
		for x := 0; x < s.xStrata; x++ {
			out[i] = types.XY(
				clampSample((float32(x)+s.jitterValue())*invX),
				clampSample((float32(y)+s.jitterValue())*invY),
			)
			i++
		}
	}
	s.rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
}

func (s *stratifiedSampler) jitterValue() float32 {
	if s.jitter {
		return s.rng.Float32()
	}
	return 0.5
}

func clampSample(v float32) float32 {
	if v > oneMinusEpsilon {
		return oneMinusEpsilon
	}
	return v
}

// Mix a sampler seed and a pixel coordinate into an rng seed using the
// splitmix64 finalizer.
func pixelSeed(seed uint64, x, y int) int64 {
	h := seed
	h ^= uint64(int64(x)) * 0x9e3779b97f4a7c15
	h ^= uint64(int64(y)) * 0xc2b2ae3d27d4eb4f
	h ^= h >> 30
	h *= 0xbf58476d1ce4e5b9
	h ^= h >> 27
	h *= 0x94d049bb133111eb
	h ^= h >> 31
	return int64(h)
}

package renderer

import (
	"context"
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/achilleasa/rigel/tracer"
)

// Validator is implemented by scenes that support pre-render
// validation.
type Validator interface {
	Validate() error
}

// The default renderer draws frames on the cpu using the tracer worker
// pool and reconstructs them into tonemapped images.
type defaultRenderer struct {
	opts Options

	scene      tracer.Scene
	camera     *tracer.Camera
	film       *tracer.Film
	sampler    tracer.Sampler
	integrator tracer.Integrator

	stats FrameStats

	// Invoked after each tile is merged into the film. Used by the
	// interactive renderer to refresh its display buffer.
	onTileDone func(tracer.Tile)
}

// Create a renderer that draws sc through cam using the given options.
// All configuration errors are reported before any rendering starts.
func NewDefault(sc tracer.Scene, cam *tracer.Camera, opts Options) (Renderer, error) {
	r, err := newDefault(sc, cam, opts)
	if err != nil {
		return nil, err
	}
	return r, nil
}

func newDefault(sc tracer.Scene, cam *tracer.Camera, opts Options) (*defaultRenderer, error) {
	if sc == nil {
		return nil, ErrSceneNotDefined
	}
	if cam == nil {
		return nil, ErrCameraNotDefined
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if v, ok := sc.(Validator); ok {
		if err := v.Validate(); err != nil {
			return nil, fmt.Errorf("renderer: scene validation failed: %w", err)
		}
	}

	filter, err := opts.filter()
	if err != nil {
		return nil, err
	}
	sampler, err := opts.sampler()
	if err != nil {
		return nil, err
	}

	return &defaultRenderer{
		opts:       opts,
		scene:      sc,
		camera:     cam,
		film:       tracer.NewFilm(int(opts.FrameW), int(opts.FrameH), filter),
		sampler:    sampler,
		integrator: tracer.NewWhittedIntegrator(int(opts.MaxDepth)),
	}, nil
}

// Render frame.
func (r *defaultRenderer) Render(ctx context.Context) (*image.RGBA, error) {
	start := time.Now()
	workerStats, err := tracer.Render(ctx, tracer.RenderConfig{
		Camera:     r.camera,
		Scene:      r.scene,
		Integrator: r.integrator,
		Sampler:    r.sampler,
		Film:       r.film,
		TileSize:   int(r.opts.TileSize),
		NumWorkers: int(r.opts.NumWorkers),
		Seed:       r.opts.Seed,
		OnTileDone: r.onTileDone,
	})
	if err != nil {
		if errors.Is(err, tracer.ErrInterrupted) || errors.Is(err, context.Canceled) {
			return nil, ErrInterrupted
		}
		return nil, err
	}

	r.stats = collectStats(workerStats, time.Since(start))
	return r.film.Image(r.opts.Exposure, r.opts.Gamma), nil
}

// Shutdown renderer.
func (r *defaultRenderer) Close() {
}

// Get render statistics.
func (r *defaultRenderer) Stats() FrameStats {
	return r.stats
}

func collectStats(workers []tracer.WorkerStats, total time.Duration) FrameStats {
	stats := FrameStats{
		Workers:    make([]WorkerStat, len(workers)),
		RenderTime: total,
	}

	var totalTiles int
	for _, w := range workers {
		totalTiles += w.Tiles
	}

	for i, w := range workers {
		var pct float32
		if totalTiles > 0 {
			pct = float32(w.Tiles) / float32(totalTiles) * 100
		}
		stats.Workers[i] = WorkerStat{
			Id:           fmt.Sprintf("worker-%d", w.Worker),
			Tiles:        uint32(w.Tiles),
			FramePercent: pct,
			Samples:      uint64(w.Samples),
			RenderTime:   w.Busy,
		}
	}
	return stats
}

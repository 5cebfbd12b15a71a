package tracer

import (
	"context"
	"errors"
	"fmt"
	"image"
	"runtime"
	"sync"
	"time"
)

// Default tile edge length in pixels.
const DefaultTileSize = 16

// Render was cancelled via its context before all tiles completed.
var ErrInterrupted = errors.New("tracer: render interrupted")

// A rectangular region of the film sample bounds rendered as a unit by
// a single worker.
type Tile struct {
	// Row-major index of the tile within the sample bounds. Tile
	// sampler seeds derive from this index, which keeps renders
	// deterministic for any worker count and completion order.
	Index int

	// The sample positions covered by this tile.
	Bounds image.Rectangle
}

// Split bounds into square tiles with the given edge length, ordered
// row major. Tiles on the right and bottom edges are clipped to the
// bounds.
func MakeTiles(bounds image.Rectangle, tileSize int) []Tile {
	if tileSize <= 0 {
		tileSize = DefaultTileSize
	}

	countX := (bounds.Dx() + tileSize - 1) / tileSize
	countY := (bounds.Dy() + tileSize - 1) / tileSize

	tiles := make([]Tile, 0, countX*countY)
	for ty := 0; ty < countY; ty++ {
		for tx := 0; tx < countX; tx++ {
			tileBounds := image.Rect(
				bounds.Min.X+tx*tileSize,
				bounds.Min.Y+ty*tileSize,
				bounds.Min.X+(tx+1)*tileSize,
				bounds.Min.Y+(ty+1)*tileSize,
			).Intersect(bounds)

			tiles = append(tiles, Tile{
				Index:  ty*countX + tx,
				Bounds: tileBounds,
			})
		}
	}
	return tiles
}

// Per worker counters collected during a render.
type WorkerStats struct {
	// Worker index within the pool.
	Worker int

	// Number of tiles this worker rendered.
	Tiles int

	// Number of camera samples this worker traced.
	Samples int64

	// Time spent rendering tiles.
	Busy time.Duration
}

// Configuration for a parallel render pass.
type RenderConfig struct {
	Camera     *Camera
	Scene      Scene
	Integrator Integrator

	// Base sampler configuration; every tile renders with an
	// independent clone seeded from the tile index.
	Sampler Sampler

	// Destination film. Its sample bounds define the tile grid.
	Film *Film

	// Tile edge length in pixels; DefaultTileSize when 0.
	TileSize int

	// Number of worker goroutines; GOMAXPROCS when 0.
	NumWorkers int

	// Base value mixed into every tile sampler seed.
	Seed uint64

	// Invoked after a tile has been merged into the film. Runs on the
	// scheduling goroutine.
	OnTileDone func(Tile)
}

// A completed (or failed) tile travelling from a worker to the merge
// loop.
type tileResult struct {
	tile    Tile
	film    *FilmTile
	worker  int
	samples int64
	err     error
}

// Render draws the configured scene onto cfg.Film using a pool of
// worker goroutines. Workers render tiles into private film tiles;
// completed tiles are merged by the calling goroutine in tile index
// order so the accumulated film is identical no matter how tiles were
// scheduled.
//
// Cancelling ctx stops the render between tiles with ErrInterrupted.
// A worker failure aborts the whole render and surfaces as an error;
// in both cases the partially filled film must be discarded by the
// caller. Render returns only after every worker has exited.
func Render(ctx context.Context, cfg RenderConfig) ([]WorkerStats, error) {
	numWorkers := cfg.NumWorkers
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	tiles := MakeTiles(cfg.Film.SampleBounds(), cfg.TileSize)

	tileChan := make(chan Tile, len(tiles))
	for _, tile := range tiles {
		tileChan <- tile
	}
	close(tileChan)

	resultChan := make(chan tileResult, numWorkers)
	abort := make(chan struct{})
	var abortOnce sync.Once

	stats := make([]WorkerStats, numWorkers)

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			stats[worker].Worker = worker

			for tile := range tileChan {
				select {
				case <-abort:
					return
				case <-ctx.Done():
					resultChan <- tileResult{worker: worker, err: ErrInterrupted}
					return
				default:
				}

				start := time.Now()
				ft, samples, err := renderTileSafe(tile, cfg)
				stats[worker].Busy += time.Since(start)
				if err != nil {
					resultChan <- tileResult{worker: worker, err: err}
					return
				}

				stats[worker].Tiles++
				stats[worker].Samples += samples
				resultChan <- tileResult{
					tile:    tile,
					film:    ft,
					worker:  worker,
					samples: samples,
				}
			}
		}(w)
	}

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	// Merge completed tiles in index order. Out of order results are
	// parked until their predecessors arrive so film accumulation
	// never depends on scheduling.
	pending := make(map[int]tileResult)
	nextIndex := 0
	var firstErr error

	for res := range resultChan {
		if res.err != nil {
			if firstErr == nil {
				firstErr = res.err
			}
			abortOnce.Do(func() { close(abort) })
			continue
		}
		if firstErr != nil {
			continue
		}

		pending[res.tile.Index] = res
		for {
			next, ok := pending[nextIndex]
			if !ok {
				break
			}
			delete(pending, nextIndex)
			cfg.Film.MergeTile(next.film)
			if cfg.OnTileDone != nil {
				cfg.OnTileDone(next.tile)
			}
			nextIndex++
		}
	}

	if firstErr != nil {
		return nil, firstErr
	}
	return stats, nil
}

// Render one tile, converting worker panics into errors so a failing
// tile aborts the render instead of killing the process.
func renderTileSafe(tile Tile, cfg RenderConfig) (ft *FilmTile, samples int64, err error) {
	defer func() {
		if r := recover(); r != nil {
			ft, samples = nil, 0
			err = fmt.Errorf("tracer: worker panic while rendering tile %d: %v", tile.Index, r)
		}
	}()

	ft = cfg.Film.Tile(tile.Bounds)
	smp := cfg.Sampler.Clone(cfg.Seed + uint64(tile.Index))
	samples = RenderTile(tile, cfg.Camera, cfg.Scene, cfg.Integrator, smp, ft)
	return ft, samples, nil
}

// Render every pixel of a tile into ft. For each pixel the sampler is
// positioned with StartPixel and consumed one camera sample at a time
// until the per pixel budget runs out.
func RenderTile(tile Tile, cam *Camera, sc Scene, integ Integrator, smp Sampler, ft *FilmTile) int64 {
	var samples int64

	for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
		for x := tile.Bounds.Min.X; x < tile.Bounds.Max.X; x++ {
			smp.StartPixel(x, y)
			for {
				cs := GetCameraSample(smp, x, y)
				ray, weight := cam.GenerateRayDifferential(cs)
				if weight > 0 {
					l := integ.IncomingRadiance(ray, sc, smp)
					ft.AddSample(cs.FilmPoint, l, weight)
				}
				samples++

				if !smp.StartNextSample() {
					break
				}
			}
		}
	}
	return samples
}

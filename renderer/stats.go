package renderer

import "time"

type WorkerStat struct {
	// The worker id.
	Id string

	// The number of tiles rendered by this worker and the percentage of
	// total frame tiles they represent.
	Tiles        uint32
	FramePercent float32

	// Number of camera samples traced by this worker.
	Samples uint64

	// Time spent rendering tiles.
	RenderTime time.Duration
}

type FrameStats struct {
	// Individual worker stats.
	Workers []WorkerStat

	// Total render time for entire frame.
	RenderTime time.Duration
}

package renderer

import (
	"context"
	"image"
)

type Renderer interface {
	// Render frame. Cancelling the context aborts the render with
	// ErrInterrupted.
	Render(ctx context.Context) (*image.RGBA, error)

	// Shutdown renderer and release any attached resources.
	Close()

	// Get render statistics for the last completed frame.
	Stats() FrameStats
}

package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/png"
	"os"
	"runtime"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/achilleasa/rigel/renderer"
	"github.com/achilleasa/rigel/scene"
	"github.com/achilleasa/rigel/tracer"
)

// Populate renderer options from the command flags.
func parseRenderOptions(ctx *cli.Context) renderer.Options {
	opts := renderer.DefaultOptions()
	opts.FrameW = uint32(ctx.Int("width"))
	opts.FrameH = uint32(ctx.Int("height"))
	opts.SamplesPerPixel = uint32(ctx.Int("spp"))
	opts.MaxDepth = uint32(ctx.Int("max-depth"))
	opts.NumWorkers = uint32(ctx.Int("num-workers"))
	opts.TileSize = uint32(ctx.Int("tile-size"))
	opts.Sampler = ctx.String("sampler")
	opts.Filter = ctx.String("filter")
	opts.Exposure = float32(ctx.Float64("exposure"))
	opts.Gamma = float32(ctx.Float64("gamma"))
	opts.Seed = uint64(ctx.Int("seed"))
	return opts
}

// Look up the scene argument in the catalog and build its world and
// camera.
func buildScene(ctx *cli.Context, opts renderer.Options) (*scene.World, *tracer.Camera, error) {
	if ctx.NArg() != 1 {
		return nil, nil, errors.New("missing scene name argument")
	}

	entry, err := scene.Find(ctx.Args().First())
	if err != nil {
		return nil, nil, err
	}
	logger.Noticef(`using scene "%s"`, entry.Name)

	world, view := entry.Build()
	camera, err := view.Camera(int(opts.FrameW), int(opts.FrameH))
	if err != nil {
		return nil, nil, err
	}
	return world, camera, nil
}

// Render a still frame.
func RenderFrame(ctx *cli.Context) error {
	setupLogging(ctx)

	opts := parseRenderOptions(ctx)
	world, camera, err := buildScene(ctx, opts)
	if err != nil {
		return err
	}

	// Create renderer
	r, err := renderer.NewDefault(world, camera, opts)
	if err != nil {
		return err
	}
	defer r.Close()

	logger.Noticef("rendering %dx%d frame with %d samples/pixel", opts.FrameW, opts.FrameH, opts.SamplesPerPixel)
	start := time.Now()
	frame, err := r.Render(context.Background())
	if err != nil {
		return err
	}
	logger.Noticef("rendered frame in %d ms", time.Since(start).Nanoseconds()/1e6)

	// Export PNG
	imgFile := ctx.String("out")
	f, err := os.Create(imgFile)
	if err != nil {
		return err
	}
	defer f.Close()

	start = time.Now()
	if err = png.Encode(f, frame); err != nil {
		return err
	}
	logger.Noticef("wrote frame to %s in %d ms", imgFile, time.Since(start).Nanoseconds()/1e6)

	// Display stats
	displayFrameStats(r.Stats())

	return nil
}

// Render an interactive view of the scene, displaying tiles as the
// workers complete them.
func RenderInteractive(ctx *cli.Context) error {
	setupLogging(ctx)

	// The opengl context must stay on the main os thread.
	runtime.LockOSThread()

	opts := parseRenderOptions(ctx)
	world, camera, err := buildScene(ctx, opts)
	if err != nil {
		return err
	}

	r, err := renderer.NewInteractive(world, camera, opts)
	if err != nil {
		return err
	}
	defer r.Close()

	if _, err = r.Render(context.Background()); err != nil {
		if errors.Is(err, renderer.ErrInterrupted) {
			logger.Notice("render interrupted")
			return nil
		}
		return err
	}

	// Display stats
	displayFrameStats(r.Stats())

	return nil
}

func displayFrameStats(stats renderer.FrameStats) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Worker", "Tiles", "% of frame", "Samples", "Render time"})
	for _, stat := range stats.Workers {
		table.Append([]string{
			stat.Id,
			fmt.Sprintf("%d", stat.Tiles),
			fmt.Sprintf("%02.1f %%", stat.FramePercent),
			fmt.Sprintf("%d", stat.Samples),
			fmt.Sprintf("%s", stat.RenderTime),
		})
	}
	table.SetFooter([]string{"", "", "", "TOTAL", fmt.Sprintf("%s", stats.RenderTime)})

	table.Render()
	logger.Noticef("frame statistics\n%s", buf.String())
}

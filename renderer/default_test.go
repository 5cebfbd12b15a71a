package renderer

import (
	"context"
	"fmt"
	"image"
	"strings"
	"testing"

	"github.com/achilleasa/rigel/scene"
	"github.com/achilleasa/rigel/tracer"
	"github.com/achilleasa/rigel/types"
)

func TestOptionsValidate(t *testing.T) {
	type spec struct {
		mutate func(*Options)
		expErr string
	}
	specs := []spec{
		spec{mutate: func(o *Options) {}},
		spec{mutate: func(o *Options) { o.Sampler = SamplerConstant }},
		spec{mutate: func(o *Options) { o.Filter = FilterBox }},
		spec{mutate: func(o *Options) { o.Filter = FilterTriangle }},
		spec{mutate: func(o *Options) { o.Filter = FilterGaussian }},
		spec{
			mutate: func(o *Options) { o.FrameW = 0 },
			expErr: "renderer: invalid frame dimensions 0x512",
		},
		spec{
			mutate: func(o *Options) { o.FrameH = 0 },
			expErr: "renderer: invalid frame dimensions 512x0",
		},
		spec{
			mutate: func(o *Options) { o.SamplesPerPixel = 0 },
			expErr: "renderer: samples per pixel must be at least 1",
		},
		spec{
			mutate: func(o *Options) { o.MaxDepth = 0 },
			expErr: "renderer: max depth must be at least 1",
		},
		spec{
			mutate: func(o *Options) { o.Exposure = 0 },
			expErr: "renderer: exposure 0 must be positive",
		},
		spec{
			mutate: func(o *Options) { o.Gamma = -1 },
			expErr: "renderer: gamma -1 must be positive",
		},
		spec{
			mutate: func(o *Options) { o.Sampler = "bogus" },
			expErr: `renderer: unknown sampler "bogus"`,
		},
		spec{
			mutate: func(o *Options) { o.Filter = "bogus" },
			expErr: `renderer: unknown filter "bogus"`,
		},
	}
	for index, s := range specs {
		opts := DefaultOptions()
		s.mutate(&opts)

		err := opts.Validate()
		if s.expErr == "" {
			if err != nil {
				t.Fatalf("[spec %d] expected no validation error; got %v", index, err)
			}
			continue
		}
		if err == nil || err.Error() != s.expErr {
			t.Fatalf("[spec %d] expected error %q; got %v", index, s.expErr, err)
		}
	}
}

func TestNewDefaultErrors(t *testing.T) {
	world, camera := makeTestScene(t)

	if _, err := NewDefault(nil, camera, DefaultOptions()); err != ErrSceneNotDefined {
		t.Fatalf("expected ErrSceneNotDefined; got %v", err)
	}
	if _, err := NewDefault(world, nil, DefaultOptions()); err != ErrCameraNotDefined {
		t.Fatalf("expected ErrCameraNotDefined; got %v", err)
	}

	opts := DefaultOptions()
	opts.SamplesPerPixel = 0
	if _, err := NewDefault(world, camera, opts); err == nil {
		t.Fatal("expected an options validation error")
	}

	broken := scene.NewWorld()
	broken.AddPrimitive(scene.NewSphere(types.Vec3{}, -1), scene.NewMatte(scene.Constant(types.Grey(0.5))))
	_, err := NewDefault(broken, camera, DefaultOptions())
	if err == nil || !strings.Contains(err.Error(), "renderer: scene validation failed") {
		t.Fatalf("expected a scene validation error; got %v", err)
	}
}

func TestDefaultRendererRender(t *testing.T) {
	world, camera := makeTestScene(t)

	opts := Options{
		FrameW:          24,
		FrameH:          16,
		SamplesPerPixel: 1,
		MaxDepth:        2,
		NumWorkers:      2,
		TileSize:        8,
		Sampler:         SamplerConstant,
		Filter:          FilterBox,
		Exposure:        1,
		Gamma:           1,
		Seed:            7,
	}

	r, err := NewDefault(world, camera, opts)
	if err != nil {
		t.Fatalf("expected the renderer to build; got %v", err)
	}
	defer r.Close()

	img, err := r.Render(context.Background())
	if err != nil {
		t.Fatalf("expected the frame to render; got %v", err)
	}
	if exp := image.Rect(0, 0, 24, 16); img.Bounds() != exp {
		t.Fatalf("expected image bounds %v; got %v", exp, img.Bounds())
	}

	// The camera looks down at a lit ground plane; rays through the
	// lower half of the frame hit it while upper rays miss into black.
	if px := img.RGBAAt(12, 13); px.R == 0 || px.A != 255 {
		t.Fatalf("expected a lit ground pixel at (12,13); got %v", px)
	}
	if px := img.RGBAAt(12, 1); px.R != 0 || px.G != 0 || px.B != 0 || px.A != 255 {
		t.Fatalf("expected an opaque black sky pixel at (12,1); got %v", px)
	}

	stats := r.Stats()
	if got := len(stats.Workers); got != 2 {
		t.Fatalf("expected stats for 2 workers; got %d", got)
	}
	var (
		tiles   uint32
		samples uint64
		pct     float32
	)
	for i, ws := range stats.Workers {
		if exp := fmt.Sprintf("worker-%d", i); ws.Id != exp {
			t.Fatalf("expected worker id %q; got %q", exp, ws.Id)
		}
		tiles += ws.Tiles
		samples += ws.Samples
		pct += ws.FramePercent
	}
	if tiles != 6 {
		t.Fatalf("expected 6 tiles across all workers; got %d", tiles)
	}
	if samples != 24*16 {
		t.Fatalf("expected %d samples across all workers; got %d", 24*16, samples)
	}
	if pct < 99.9 || pct > 100.1 {
		t.Fatalf("expected worker frame percentages to sum to 100; got %g", pct)
	}
	if stats.RenderTime <= 0 {
		t.Fatalf("expected a positive render time; got %v", stats.RenderTime)
	}
}

func TestDefaultRendererInterrupted(t *testing.T) {
	world, camera := makeTestScene(t)

	opts := DefaultOptions()
	opts.FrameW, opts.FrameH = 24, 16
	opts.SamplesPerPixel = 1

	r, err := NewDefault(world, camera, opts)
	if err != nil {
		t.Fatalf("expected the renderer to build; got %v", err)
	}
	defer r.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	img, err := r.Render(ctx)
	if err != ErrInterrupted {
		t.Fatalf("expected ErrInterrupted; got %v", err)
	}
	if img != nil {
		t.Fatal("expected no image from an interrupted render")
	}
}

func makeTestScene(t *testing.T) (*scene.World, *tracer.Camera) {
	t.Helper()

	world := scene.NewWorld()
	world.AddPrimitive(
		scene.NewPlane(types.Vec3{}, types.XYZ(0, 1, 0)),
		scene.NewMatte(scene.Constant(types.Grey(0.6))),
	)
	world.AddLight(tracer.NewPointLight(types.XYZ(0, 4, 0), types.Grey(40)))

	cameraToWorld := tracer.LookAt(types.XYZ(0, 2, -5), types.Vec3{}, types.XYZ(0, 1, 0))
	camera, err := tracer.NewPerspectiveCamera(cameraToWorld, 60, 24, 16)
	if err != nil {
		t.Fatalf("expected the camera to build; got %v", err)
	}
	return world, camera
}

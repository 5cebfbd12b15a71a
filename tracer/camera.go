package tracer

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/achilleasa/rigel/types"
)

// The set of supported camera projections. The camera is a closed
// type; both kinds share the same film and screen window plumbing.
type CameraKind uint8

const (
	Orthographic CameraKind = iota
	Perspective
)

// The sampled values used to generate a single camera ray.
type CameraSample struct {
	// Sample position in continuous film coordinates.
	FilmPoint types.Vec2

	// Sample position on the lens. Reserved for camera models with a
	// physical aperture.
	LensPoint types.Vec2

	// Normalized sample time. Reserved for motion blur.
	Time float32
}

// Camera maps film samples to world space rays. Camera space looks
// down +z with +y up; the screen window lies on the film plane and is
// addressed with y growing upwards, while film coordinates grow
// downwards.
type Camera struct {
	kind          CameraKind
	cameraToWorld mgl32.Mat4

	filmW float32
	filmH float32

	screenMin types.Vec2
	screenMax types.Vec2

	// Film plane offset for orthographic projections.
	zNear float32

	// Half field of view scale for perspective projections.
	tanHalfFov float32
}

// Create an orthographic camera covering the given screen window.
// Rays start on the film plane at zNear and travel along camera +z.
func NewOrthographicCamera(cameraToWorld mgl32.Mat4, screenMin, screenMax types.Vec2, zNear float32, filmW, filmH int) (*Camera, error) {
	if filmW <= 0 || filmH <= 0 {
		return nil, fmt.Errorf("tracer: camera: invalid film resolution %dx%d", filmW, filmH)
	}
	if screenMax[0] <= screenMin[0] || screenMax[1] <= screenMin[1] {
		return nil, fmt.Errorf("tracer: camera: degenerate screen window")
	}

	return &Camera{
		kind:          Orthographic,
		cameraToWorld: cameraToWorld,
		filmW:         float32(filmW),
		filmH:         float32(filmH),
		screenMin:     screenMin,
		screenMax:     screenMax,
		zNear:         zNear,
	}, nil
}

// Create a perspective camera with the given vertical field of view in
// degrees. The screen window is derived from the film aspect ratio.
func NewPerspectiveCamera(cameraToWorld mgl32.Mat4, fovY float32, filmW, filmH int) (*Camera, error) {
	if filmW <= 0 || filmH <= 0 {
		return nil, fmt.Errorf("tracer: camera: invalid film resolution %dx%d", filmW, filmH)
	}
	if fovY <= 0 || fovY >= 180 {
		return nil, fmt.Errorf("tracer: camera: field of view %g out of range (0, 180)", fovY)
	}

	aspect := float32(filmW) / float32(filmH)
	var screenMin, screenMax types.Vec2
	if aspect > 1 {
		screenMin = types.XY(-aspect, -1)
		screenMax = types.XY(aspect, 1)
	} else {
		screenMin = types.XY(-1, -1/aspect)
		screenMax = types.XY(1, 1/aspect)
	}

	return &Camera{
		kind:          Perspective,
		cameraToWorld: cameraToWorld,
		filmW:         float32(filmW),
		filmH:         float32(filmH),
		screenMin:     screenMin,
		screenMax:     screenMax,
		tanHalfFov:    float32(math.Tan(float64(fovY) * math.Pi / 360)),
	}, nil
}

// Get the camera projection kind.
func (c *Camera) Kind() CameraKind {
	return c.kind
}

// Generate the world space ray for a camera sample together with its
// contribution weight.
func (c *Camera) GenerateRay(s CameraSample) (Ray, float32) {
	r := c.rayAt(s.FilmPoint)
	r.Time = s.Time
	return r, 1
}

// Generate the world space ray for a camera sample along with the
// rays for the film points one pixel to the right and one pixel below.
func (c *Camera) GenerateRayDifferential(s CameraSample) (Ray, float32) {
	r := c.rayAt(s.FilmPoint)
	r.Time = s.Time

	rx := c.rayAt(s.FilmPoint.Add(types.XY(1, 0)))
	ry := c.rayAt(s.FilmPoint.Add(types.XY(0, 1)))
	r.Diff = &RayDifferential{
		RxOrigin: rx.Origin,
		RxDir:    rx.Dir,
		RyOrigin: ry.Origin,
		RyDir:    ry.Dir,
	}
	return r, 1
}

func (c *Camera) rayAt(filmPoint types.Vec2) Ray {
	p := c.rasterToScreen(filmPoint)

	if c.kind == Orthographic {
		origin := transformPoint(c.cameraToWorld, types.XYZ(p[0], p[1], c.zNear))
		dir := transformDir(c.cameraToWorld, types.XYZ(0, 0, 1)).Normalize()
		return NewRay(origin, dir)
	}

	origin := transformPoint(c.cameraToWorld, types.Vec3{})
	dirCamera := types.XYZ(p[0]*c.tanHalfFov, p[1]*c.tanHalfFov, 1)
	dir := transformDir(c.cameraToWorld, dirCamera).Normalize()
	return NewRay(origin, dir)
}

// Map continuous film coordinates to the screen window, flipping the
// y axis.
func (c *Camera) rasterToScreen(p types.Vec2) types.Vec2 {
	return types.XY(
		c.screenMin[0]+(p[0]/c.filmW)*(c.screenMax[0]-c.screenMin[0]),
		c.screenMax[1]-(p[1]/c.filmH)*(c.screenMax[1]-c.screenMin[1]),
	)
}

// Build a camera to world transform for a camera placed at eye looking
// towards look. Follows the camera space convention above: +z forward,
// +y up.
func LookAt(eye, look, up types.Vec3) mgl32.Mat4 {
	dir := look.Sub(eye).Normalize()
	right := up.Normalize().Cross(dir).Normalize()
	newUp := dir.Cross(right)

	return mgl32.Mat4FromCols(
		mgl32.Vec4{right[0], right[1], right[2], 0},
		mgl32.Vec4{newUp[0], newUp[1], newUp[2], 0},
		mgl32.Vec4{dir[0], dir[1], dir[2], 0},
		mgl32.Vec4{eye[0], eye[1], eye[2], 1},
	)
}

func transformPoint(m mgl32.Mat4, v types.Vec3) types.Vec3 {
	out := m.Mul4x1(mgl32.Vec4{v[0], v[1], v[2], 1})
	return types.XYZ(out[0], out[1], out[2])
}

func transformDir(m mgl32.Mat4, v types.Vec3) types.Vec3 {
	out := m.Mul4x1(mgl32.Vec4{v[0], v[1], v[2], 0})
	return types.XYZ(out[0], out[1], out[2])
}

package scene

import (
	"fmt"

	"github.com/achilleasa/rigel/tracer"
	"github.com/achilleasa/rigel/types"
)

// View describes how a catalog scene expects to be photographed. The
// film resolution is not part of the view; it is supplied when the
// camera is instantiated.
type View struct {
	Kind tracer.CameraKind

	Eye  types.Vec3
	Look types.Vec3
	Up   types.Vec3

	// Vertical field of view in degrees. Perspective views only.
	FovY float32

	// Screen window extents and film plane offset. Orthographic views
	// only.
	ScreenMin types.Vec2
	ScreenMax types.Vec2
	ZNear     float32
}

// Create the camera that realizes the view at the given film
// resolution.
func (v View) Camera(filmW, filmH int) (*tracer.Camera, error) {
	cameraToWorld := tracer.LookAt(v.Eye, v.Look, v.Up)
	if v.Kind == tracer.Orthographic {
		return tracer.NewOrthographicCamera(cameraToWorld, v.ScreenMin, v.ScreenMax, v.ZNear, filmW, filmH)
	}
	return tracer.NewPerspectiveCamera(cameraToWorld, v.FovY, filmW, filmH)
}

// An Entry ties a named built in scene to its builder.
type Entry struct {
	Name        string
	Description string
	Build       func() (*World, View)
}

// Get the catalog of built in scenes.
func Catalog() []Entry {
	return []Entry{
		{
			Name:        "spheres",
			Description: "matte, mirror, glass and plastic spheres on a matte floor",
			Build:       buildSpheresScene,
		},
		{
			Name:        "mirrors",
			Description: "nested reflections between two facing mirror walls",
			Build:       buildMirrorsScene,
		},
		{
			Name:        "roughness",
			Description: "metal roughness ladder, gold over copper, viewed orthographically",
			Build:       buildRoughnessScene,
		},
	}
}

// Look up a catalog entry by name.
func Find(name string) (Entry, error) {
	for _, entry := range Catalog() {
		if entry.Name == name {
			return entry, nil
		}
	}
	return Entry{}, fmt.Errorf(`scene: unknown scene "%s"`, name)
}

func buildSpheresScene() (*World, View) {
	w := NewWorld()
	w.AddPrimitive(
		NewPlane(types.Vec3{}, types.XYZ(0, 1, 0)),
		NewMatte(Constant(types.Grey(0.75))),
	)
	w.AddPrimitive(
		NewSphere(types.XYZ(-2.4, 1, 1.2), 1),
		NewMatte(Constant(types.RGB(0.9, 0.25, 0.2))),
	)
	w.AddPrimitive(
		NewSphere(types.XYZ(0.9, 1, 2.4), 1),
		NewMirror(Constant(types.Grey(0.9))),
	)
	w.AddPrimitive(
		NewSphere(types.XYZ(-0.4, 1, -0.6), 1),
		NewGlass(Constant(types.Grey(1)), Constant(types.Grey(1)), 1.52),
	)
	w.AddPrimitive(
		NewSphere(types.XYZ(2.6, 1, 0.4), 1),
		NewPlastic(Constant(types.RGB(0.2, 0.3, 0.8)), Constant(types.Grey(0.55)), ConstantScalar(0.08)),
	)

	w.AddLight(tracer.NewPointLight(types.XYZ(-6, 9, -5), types.Grey(260)))
	w.AddLight(tracer.NewPointLight(types.XYZ(7, 10, 2), types.RGB(230, 205, 176)))

	return w, View{
		Kind: tracer.Perspective,
		Eye:  types.XYZ(0, 2.2, -6.5),
		Look: types.XYZ(0, 1, 0),
		Up:   types.XYZ(0, 1, 0),
		FovY: 45,
	}
}

func buildMirrorsScene() (*World, View) {
	w := NewWorld()
	w.AddPrimitive(
		NewPlane(types.Vec3{}, types.XYZ(0, 1, 0)),
		NewMatte(Constant(types.Grey(0.7))),
	)
	// Facing mirror walls; the camera looks down the corridor at a
	// slight angle so the reflections repeat sideways. The render depth
	// flag bounds how many of them show up.
	w.AddPrimitive(
		NewPlane(types.XYZ(-3, 0, 0), types.XYZ(1, 0, 0)),
		NewMirror(Constant(types.Grey(0.92))),
	)
	w.AddPrimitive(
		NewPlane(types.XYZ(3, 0, 0), types.XYZ(-1, 0, 0)),
		NewMirror(Constant(types.Grey(0.92))),
	)
	w.AddPrimitive(
		NewSphere(types.XYZ(0.4, 1, 0.5), 1),
		NewMatte(Constant(types.RGB(0.2, 0.55, 0.85))),
	)

	w.AddLight(tracer.NewPointLight(types.XYZ(0, 6, 0), types.Grey(140)))
	w.AddLight(tracer.NewPointLight(types.XYZ(-1, 4, -5), types.Grey(70)))

	return w, View{
		Kind: tracer.Perspective,
		Eye:  types.XYZ(-1.4, 1.6, -5.5),
		Look: types.XYZ(0.3, 1, 0),
		Up:   types.XYZ(0, 1, 0),
		FovY: 55,
	}
}

func buildRoughnessScene() (*World, View) {
	// Gold and copper conductor constants, rgb averaged.
	goldEta := types.RGB(0.143, 0.375, 1.44)
	goldK := types.RGB(3.98, 2.39, 1.6)
	copperEta := types.RGB(0.2, 0.92, 1.1)
	copperK := types.RGB(3.9, 2.45, 2.14)

	w := NewWorld()
	w.AddPrimitive(
		NewPlane(types.Vec3{}, types.XYZ(0, 1, 0)),
		NewMatte(Constant(types.Grey(0.72))),
	)

	roughness := []float32{0.02, 0.08, 0.25, 0.6}
	for i, r := range roughness {
		x := -3.3 + float32(i)*2.2
		w.AddPrimitive(
			NewSphere(types.XYZ(x, 0.9, 0), 0.9),
			NewMetal(goldEta, goldK, ConstantScalar(r), ModelTrowbridgeReitz),
		)
		w.AddPrimitive(
			NewSphere(types.XYZ(x, 0.9, 3), 0.9),
			NewMetal(copperEta, copperK, ConstantScalar(r), ModelBeckmann),
		)
	}

	w.AddLight(tracer.NewPointLight(types.XYZ(-4, 9, -6), types.Grey(300)))
	w.AddLight(tracer.NewPointLight(types.XYZ(5, 8, -2), types.Grey(160)))

	return w, View{
		Kind:      tracer.Orthographic,
		Eye:       types.XYZ(0, 5.5, -9),
		Look:      types.XYZ(0, 0.5, 0),
		Up:        types.XYZ(0, 1, 0),
		ScreenMin: types.XY(-4.4, -4.4),
		ScreenMax: types.XY(4.4, 4.4),
	}
}

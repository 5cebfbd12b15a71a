package scene

import (
	"fmt"

	"github.com/achilleasa/rigel/tracer"
	"github.com/achilleasa/rigel/types"
)

// World aggregates the primitives and lights that make up a renderable
// scene. Intersection queries scan the primitive list; the built in
// scenes are small enough that no acceleration structure is needed.
// Once assembled and validated a world is immutable and safe for
// concurrent queries from multiple render workers.
type World struct {
	primitives []Primitive
	lights     []tracer.Light
}

// Create an empty world.
func NewWorld() *World {
	return &World{}
}

// Add a shape covered by the given material.
func (w *World) AddPrimitive(shape Shape, material Material) {
	w.primitives = append(w.primitives, Primitive{Shape: shape, Material: material})
}

// Add a light source.
func (w *World) AddLight(l tracer.Light) {
	w.lights = append(w.lights, l)
}

// Check every primitive and material for configuration errors. A world
// that fails validation must not be rendered.
func (w *World) Validate() error {
	if len(w.primitives) == 0 {
		return fmt.Errorf("scene: world contains no primitives")
	}

	for i, prim := range w.primitives {
		if prim.Shape == nil || prim.Material == nil {
			return fmt.Errorf("scene: primitive %d is missing a shape or material", i)
		}
		if err := prim.Shape.Validate(); err != nil {
			return fmt.Errorf("scene: primitive %d: %w", i, err)
		}
		if err := prim.Material.Validate(); err != nil {
			return fmt.Errorf("scene: primitive %d: %w", i, err)
		}
	}
	return nil
}

// Find the nearest primitive intersection along the ray. The caller's
// ray is never modified; the candidate range shrinks as closer hits are
// found.
func (w *World) NearestHit(r *tracer.Ray) (*tracer.SurfaceInteraction, bool) {
	if r.Dir == (types.Vec3{}) {
		return nil, false
	}

	var (
		nearest tracer.SurfaceInteraction
		mat     Material
		hit     bool
	)

	probe := *r
	for _, prim := range w.primitives {
		si, t, ok := prim.Shape.Intersect(&probe)
		if !ok {
			continue
		}
		probe.TMax = t
		nearest = si
		mat = prim.Material
		hit = true
	}
	if !hit {
		return nil, false
	}

	nearest.Wo = r.Dir.Neg().Normalize()
	nearest.Material = mat
	return &nearest, true
}

// Check whether any primitive blocks the ray within its parametric
// range.
func (w *World) Occluded(r *tracer.Ray) bool {
	for _, prim := range w.primitives {
		if prim.Shape.IntersectP(r) {
			return true
		}
	}
	return false
}

// Get the set of lights that illuminate the world.
func (w *World) Lights() []tracer.Light {
	return w.lights
}

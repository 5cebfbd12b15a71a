package scene

import "github.com/achilleasa/rigel/tracer"

// The Shape interface is implemented by the analytic surfaces that
// scenes are assembled from.
type Shape interface {
	// Find the nearest intersection with r inside (0, r.TMax) and
	// return the local surface geometry together with the hit
	// distance. The ray is not modified.
	Intersect(r *tracer.Ray) (tracer.SurfaceInteraction, float32, bool)

	// Check whether r intersects the shape inside (0, r.TMax).
	IntersectP(r *tracer.Ray) bool

	// Check the shape parameters for configuration errors.
	Validate() error
}

// A primitive ties a shape to the material covering it.
type Primitive struct {
	Shape    Shape
	Material Material
}

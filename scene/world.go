package scene

import (
	"errors"

	"github.com/achilleasa/go-raytrace/types"
)

var (
	ErrNoCamera     = errors.New("scene: no camera defined")
	ErrNoBvh        = errors.New("scene: bvh not built")
	ErrInvalidFrame = errors.New("scene: frame dimensions must be greater than zero")
)

// The World contains everything needed for rendering a frame. It is populated
// once by a scene reader or builder and treated as read-only afterwards.
type World struct {
	Camera *Camera

	// The acceleration structure built over Primitives.
	Bvh *Bvh

	Primitives PrimitiveList
	Lights     []Light

	// Ambient color added to every surface hit.
	Ambient types.Vec3

	// Constant, linear and quadratic point light attenuation coefficients.
	Attenuation types.Vec3

	// Maximum recursion depth for reflection rays.
	MaxDepth uint32

	// Optional output file name requested by the scene description.
	OutputFile string
}

// Find the closest intersection of ray with the world geometry. The BVH is
// used when available, otherwise all primitives are tested.
func (w *World) Intersect(r types.Ray, tMin, tMax float32) (Hit, bool) {
	if w.Bvh != nil {
		return w.Bvh.Query(w.Primitives, r, tMin, tMax)
	}
	return w.Primitives.Intersect(r, tMin, tMax)
}

// Check that the world can be rendered.
func (w *World) Validate() error {
	if w.Camera == nil {
		return ErrNoCamera
	}
	if w.Camera.Width == 0 || w.Camera.Height == 0 {
		return ErrInvalidFrame
	}
	if w.Bvh == nil {
		return ErrNoBvh
	}
	return nil
}

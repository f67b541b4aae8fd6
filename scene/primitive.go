package scene

import "github.com/achilleasa/go-raytrace/types"

// The Primitive interface is implemented by all intersectable shapes.
type Primitive interface {
	// Intersect the primitive with a world-space ray and report the closest
	// intersection whose t lies in [tMin, tMax].
	Intersect(r types.Ray, tMin, tMax float32) (Hit, bool)

	// Get the world-space bounding box of the primitive.
	BBox() AABB
}

// The placement shared by all primitives: a model transform, its inverse and
// the inverse-transpose used for mapping normals back to world space.
type placement struct {
	transform    types.Mat4
	invTransform types.Mat4
	normalMat    types.Mat4
}

func newPlacement(transform types.Mat4) placement {
	inv := transform.Inv()
	return placement{
		transform:    transform,
		invTransform: inv,
		normalMat:    inv.Transpose(),
	}
}

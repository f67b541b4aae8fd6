package scene

import "github.com/achilleasa/go-raytrace/types"

// Information about a ray/primitive intersection.
type Hit struct {
	// World-space intersection point.
	Point types.Vec3

	// The ray parameter at the intersection point.
	T float32

	// Unit-length world-space surface normal.
	Normal types.Vec3

	// The material of the intersected primitive.
	Material *Material
}

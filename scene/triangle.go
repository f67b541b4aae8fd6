package scene

import "github.com/achilleasa/go-raytrace/types"

const (
	// Rays whose system determinant falls below this value are considered
	// parallel to the triangle (or hitting its back face) and are rejected.
	triDetEpsilon float32 = 1e-7

	// Tolerance for barycentric weights of hits landing on triangle edges.
	triBaryEpsilon float32 = 1e-10
)

// A triangle defined in local space and placed in the world by a transform.
// Vertices are expected in counter-clockwise order when viewed from the side
// the face normal points to.
type Triangle struct {
	placement

	Vertices [3]types.Vec3
	Material *Material

	bbox AABB
}

// Create a new triangle.
func NewTriangle(v1, v2, v3 types.Vec3, material *Material, transform types.Mat4) *Triangle {
	return &Triangle{
		placement: newPlacement(transform),
		Vertices:  [3]types.Vec3{v1, v2, v3},
		Material:  material,
		bbox: AABBFromPoints(
			transform.MulPoint(v1),
			transform.MulPoint(v2),
			transform.MulPoint(v3),
		).padded(),
	}
}

// Get the world-space bounding box.
func (tri *Triangle) BBox() AABB {
	return tri.bbox
}

// Solve the barycentric system for a local-space ray. Returns the three
// barycentric weights, the ray parameter and the system determinant.
func (tri *Triangle) solve(r types.Ray) (w1, w2, w3, t, det float32) {
	e1 := tri.Vertices[1].Sub(tri.Vertices[0])
	e2 := tri.Vertices[2].Sub(tri.Vertices[0])
	q := r.Dir.Cross(e2)
	det = e1.Dot(q)
	s := r.Origin.Sub(tri.Vertices[0])
	rs := s.Cross(e1)

	w2 = s.Dot(q) / det
	w3 = r.Dir.Dot(rs) / det
	w1 = 1.0 - w2 - w3
	t = e2.Dot(rs) / det
	return w1, w2, w3, t, det
}

// Intersect triangle with a world-space ray.
func (tri *Triangle) Intersect(r types.Ray, tMin, tMax float32) (Hit, bool) {
	lr := r.Transform(tri.invTransform)
	w1, w2, w3, t, det := tri.solve(lr)
	if det <= triDetEpsilon ||
		w1 < -triBaryEpsilon || w2 < -triBaryEpsilon || w3 < -triBaryEpsilon ||
		t < tMin || t > tMax {
		return Hit{}, false
	}

	v := tri.Vertices
	p := v[0].Mul(w1).Add(v[1].Mul(w2)).Add(v[2].Mul(w3))
	n := v[1].Sub(v[0]).Cross(v[2].Sub(v[0]))
	return Hit{
		Point:    tri.transform.MulPoint(p),
		T:        t,
		Normal:   tri.normalMat.MulVector(n).Normalize(),
		Material: tri.Material,
	}, true
}

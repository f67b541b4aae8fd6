package scene

import (
	"math"

	"github.com/achilleasa/go-raytrace/types"
)

// A sphere defined in local space and placed in the world by a transform.
type Sphere struct {
	placement

	Center   types.Vec3
	Radius   float32
	Material *Material

	bbox AABB
}

// Create a new sphere.
func NewSphere(center types.Vec3, radius float32, material *Material, transform types.Mat4) *Sphere {
	ext := types.XYZ(radius, radius, radius)
	local := NewAABB(center.Sub(ext), center.Add(ext))
	return &Sphere{
		placement: newPlacement(transform),
		Center:    center,
		Radius:    radius,
		Material:  material,
		bbox:      local.transform(transform).padded(),
	}
}

// Get the world-space bounding box.
func (s *Sphere) BBox() AABB {
	return s.bbox
}

// Intersect sphere with a world-space ray.
func (s *Sphere) Intersect(r types.Ray, tMin, tMax float32) (Hit, bool) {
	lr := r.Transform(s.invTransform)
	oc := lr.Origin.Sub(s.Center)
	a := lr.Dir.LenSqr()
	halfB := oc.Dot(lr.Dir)
	c := oc.LenSqr() - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return Hit{}, false
	}

	sqrtD := float32(math.Sqrt(float64(discriminant)))
	root := (-halfB - sqrtD) / a
	if root < tMin || root > tMax {
		root = (-halfB + sqrtD) / a
		if root < tMin || root > tMax {
			return Hit{}, false
		}
	}

	p := lr.At(root)
	return Hit{
		Point:    s.transform.MulPoint(p),
		T:        root,
		Normal:   s.normalMat.MulVector(p.Sub(s.Center)).Normalize(),
		Material: s.Material,
	}, true
}

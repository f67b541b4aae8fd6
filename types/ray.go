package types

// A ray with an origin and a direction. The direction is not required to be
// unit-length; intersection distances are expressed in multiples of its length.
type Ray struct {
	Origin Vec3
	Dir    Vec3
}

// Create a new ray.
func NewRay(origin, dir Vec3) Ray {
	return Ray{Origin: origin, Dir: dir}
}

// Get the point at distance t along the ray.
func (r Ray) At(t float32) Vec3 {
	return r.Origin.Add(r.Dir.Mul(t))
}

// Transform ray by an affine matrix. The origin is transformed as a point
// while the direction is transformed as a vector (no translation).
func (r Ray) Transform(m Mat4) Ray {
	return Ray{
		Origin: m.MulPoint(r.Origin),
		Dir:    m.MulVector(r.Dir),
	}
}

package scene

import (
	"math"

	"github.com/achilleasa/go-raytrace/types"
)

// The minimum extent of a primitive bounding box along any axis. Flat
// primitives (e.g. axis-aligned triangles) get their boxes padded to at least
// this thickness so that the slab test can report a non-empty interval for them.
const minBoxExtent float32 = 1e-4

// Padding applied to flat box axes relative to the coordinate magnitude. A
// fixed pad falls below float32 resolution far from the origin.
const relBoxPad float32 = 1e-6

// An axis-aligned bounding box. The zero value is the empty box placed at
// the origin.
type AABB struct {
	Min types.Vec3
	Max types.Vec3
}

// Create a new AABB from its min/max corners.
func NewAABB(min, max types.Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// Create the smallest AABB enclosing all supplied points.
func AABBFromPoints(points ...types.Vec3) AABB {
	if len(points) == 0 {
		return AABB{}
	}

	box := AABB{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		box.Min = types.MinVec3(box.Min, p)
		box.Max = types.MaxVec3(box.Max, p)
	}
	return box
}

// Check whether the ray intersects the box within the [tMin, tMax] interval
// using the slab method. Zero direction components produce signed infinities
// which the comparisons below handle without special casing.
func (b AABB) Hit(r types.Ray, tMin, tMax float32) bool {
	for axis := 0; axis < 3; axis++ {
		invD := 1.0 / r.Dir[axis]
		t0 := (b.Min[axis] - r.Origin[axis]) * invD
		t1 := (b.Max[axis] - r.Origin[axis]) * invD
		if invD < 0 {
			t0, t1 = t1, t0
		}

		if t0 > tMin {
			tMin = t0
		}
		if t1 < tMax {
			tMax = t1
		}
		if tMax <= tMin {
			return false
		}
	}

	return true
}

// Return the smallest box that encloses both this box and other.
func (b AABB) Union(other AABB) AABB {
	return AABB{
		Min: types.MinVec3(b.Min, other.Min),
		Max: types.MaxVec3(b.Max, other.Max),
	}
}

// Compare two boxes by their min coordinate along axis. Returns -1, 0 or 1.
func (b AABB) Compare(other AABB, axis int) int {
	switch {
	case b.Min[axis] < other.Min[axis]:
		return -1
	case b.Min[axis] > other.Min[axis]:
		return 1
	}
	return 0
}

// Get box center.
func (b AABB) Center() types.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Expand any axis whose extent is below minBoxExtent. Each padded bound is
// also stepped outwards by one ulp so it never rounds back onto the original
// coordinate.
func (b AABB) padded() AABB {
	negInf, posInf := float32(math.Inf(-1)), float32(math.Inf(1))
	for axis := 0; axis < 3; axis++ {
		if b.Max[axis]-b.Min[axis] >= minBoxExtent {
			continue
		}

		magnitude := float32(math.Max(math.Abs(float64(b.Min[axis])), math.Abs(float64(b.Max[axis]))))
		pad := minBoxExtent*0.5 + magnitude*relBoxPad
		b.Min[axis] = math.Nextafter32(b.Min[axis]-pad, negInf)
		b.Max[axis] = math.Nextafter32(b.Max[axis]+pad, posInf)
	}
	return b
}

// Transform the box corners by m and return the box enclosing the result.
func (b AABB) transform(m types.Mat4) AABB {
	var corners [8]types.Vec3
	for i := 0; i < 8; i++ {
		corner := b.Min
		if i&1 != 0 {
			corner[0] = b.Max[0]
		}
		if i&2 != 0 {
			corner[1] = b.Max[1]
		}
		if i&4 != 0 {
			corner[2] = b.Max[2]
		}
		corners[i] = m.MulPoint(corner)
	}
	return AABBFromPoints(corners[:]...)
}

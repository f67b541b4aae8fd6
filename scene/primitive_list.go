package scene

import "github.com/achilleasa/go-raytrace/types"

// An ordered list of scene primitives.
type PrimitiveList []Primitive

// Find the closest intersection by testing every primitive in the list. The
// upper bound shrinks to the closest hit found so far so later primitives only
// report closer intersections.
func (pl PrimitiveList) Intersect(r types.Ray, tMin, tMax float32) (Hit, bool) {
	var closest Hit
	var found bool
	for _, prim := range pl {
		if hit, ok := prim.Intersect(r, tMin, tMax); ok {
			tMax = hit.T
			closest = hit
			found = true
		}
	}

	return closest, found
}

// Get the bounding box enclosing all primitives in the list. An empty list
// yields the empty box.
func (pl PrimitiveList) BBox() AABB {
	if len(pl) == 0 {
		return AABB{}
	}

	box := pl[0].BBox()
	for _, prim := range pl[1:] {
		box = box.Union(prim.BBox())
	}
	return box
}

package scene

import (
	"math"
	"testing"

	"github.com/achilleasa/go-raytrace/types"
)

type mockPrimitive struct {
	bbox  AABB
	t     float32
	calls int
}

func (m *mockPrimitive) BBox() AABB {
	return m.bbox
}

func (m *mockPrimitive) Intersect(r types.Ray, tMin, tMax float32) (Hit, bool) {
	m.calls++
	if m.t < tMin || m.t > tMax {
		return Hit{}, false
	}
	return Hit{T: m.t}, true
}

func TestBvhQueryPrefersCloserHit(t *testing.T) {
	near := &mockPrimitive{bbox: NewAABB(types.XYZ(-1, -1, -3), types.XYZ(1, 1, -2)), t: 2}
	far := &mockPrimitive{bbox: NewAABB(types.XYZ(-1, -1, -6), types.XYZ(1, 1, -5)), t: 5}

	type spec struct {
		prims PrimitiveList
		expT  float32
	}
	specs := []spec{
		// Closest primitive in the left subtree
		{PrimitiveList{near, far}, 2},
		// Closest primitive in the right subtree
		{PrimitiveList{far, near}, 2},
	}

	for index, s := range specs {
		bvh := &Bvh{
			Nodes: []BvhNode{
				{Type: BranchNode, BBox: s.prims[0].BBox().Union(s.prims[1].BBox()), Left: 1, Right: 2},
				{Type: LeafNode, BBox: s.prims[0].BBox(), Primitive: 0},
				{Type: LeafNode, BBox: s.prims[1].BBox(), Primitive: 1},
			},
		}

		hit, ok := bvh.Query(s.prims, types.NewRay(types.XYZ(0, 0, 0), types.XYZ(0, 0, -1)), 0.001, math.MaxFloat32)
		if !ok {
			t.Fatalf("[spec %d] expected a hit", index)
		}
		if hit.T != s.expT {
			t.Fatalf("[spec %d] expected closest hit at t=%f; got %f", index, s.expT, hit.T)
		}
	}
}

func TestBvhQueryPrunesMissedBoxes(t *testing.T) {
	prim := &mockPrimitive{bbox: NewAABB(types.XYZ(5, 5, 5), types.XYZ(6, 6, 6)), t: 1}
	bvh := &Bvh{
		Nodes: []BvhNode{
			{Type: LeafNode, BBox: prim.bbox, Primitive: 0},
		},
	}

	if _, ok := bvh.Query(PrimitiveList{prim}, types.NewRay(types.XYZ(0, 0, 0), types.XYZ(0, 0, -1)), 0.001, math.MaxFloat32); ok {
		t.Fatal("expected no hit")
	}
	if prim.calls != 0 {
		t.Fatalf("expected primitive intersection test to be skipped; called %d times", prim.calls)
	}
}

func TestEmptyBvh(t *testing.T) {
	r := types.NewRay(types.XYZ(0, 0, 0), types.XYZ(0, 0, -1))

	if _, ok := (&Bvh{}).Query(nil, r, 0.001, math.MaxFloat32); ok {
		t.Fatal("expected no hit for a tree without nodes")
	}

	bvh := &Bvh{Nodes: []BvhNode{{Type: EmptyNode}}}
	if _, ok := bvh.Query(nil, r, 0.001, math.MaxFloat32); ok {
		t.Fatal("expected no hit for an empty node")
	}
	if leaves := bvh.LeafPrimitives(); len(leaves) != 0 {
		t.Fatalf("expected no leaves; got %v", leaves)
	}
	stats := bvh.Stats()
	if stats.Nodes != 1 || stats.Leaves != 0 {
		t.Fatalf("expected 1 node and 0 leaves; got %+v", stats)
	}
}

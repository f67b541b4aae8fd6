package scene

import "github.com/achilleasa/go-raytrace/types"

type BvhNodeType uint8

const (
	EmptyNode BvhNodeType = iota
	LeafNode
	BranchNode
)

// A BVH tree node. Nodes are stored in a contiguous list and reference their
// children by index.
type BvhNode struct {
	Type BvhNodeType

	// For branches, the union of the children boxes. For leaves, the bbox of
	// the wrapped primitive. Empty nodes use the empty box.
	BBox AABB

	// Child node indices (branch nodes only).
	Left  uint32
	Right uint32

	// Index of the wrapped primitive (leaf nodes only).
	Primitive uint32
}

// A bounding volume hierarchy over a primitive list. The tree is immutable
// once built and can be queried concurrently.
type Bvh struct {
	Nodes []BvhNode
	Root  uint32
}

// Bvh tree statistics.
type BvhStats struct {
	Nodes    int
	Leaves   int
	MaxDepth int
}

// Find the closest intersection of ray with the primitives indexed by the tree.
func (b *Bvh) Query(prims PrimitiveList, r types.Ray, tMin, tMax float32) (Hit, bool) {
	if len(b.Nodes) == 0 {
		return Hit{}, false
	}
	return b.query(b.Root, prims, r, tMin, tMax)
}

func (b *Bvh) query(nodeIndex uint32, prims PrimitiveList, r types.Ray, tMin, tMax float32) (Hit, bool) {
	node := &b.Nodes[nodeIndex]
	if !node.BBox.Hit(r, tMin, tMax) {
		return Hit{}, false
	}

	switch node.Type {
	case BranchNode:
		leftHit, leftOk := b.query(node.Left, prims, r, tMin, tMax)
		if leftOk {
			tMax = leftHit.T
		}

		// Any right hit was found using the tightened bound so it is
		// at least as close as the left one.
		if rightHit, rightOk := b.query(node.Right, prims, r, tMin, tMax); rightOk {
			return rightHit, true
		}
		return leftHit, leftOk
	case LeafNode:
		return prims[node.Primitive].Intersect(r, tMin, tMax)
	}

	return Hit{}, false
}

// Collect primitive indices from all leaves in depth-first order.
func (b *Bvh) LeafPrimitives() []uint32 {
	out := make([]uint32, 0)
	if len(b.Nodes) == 0 {
		return out
	}

	stack := []uint32{b.Root}
	for len(stack) > 0 {
		node := &b.Nodes[stack[len(stack)-1]]
		stack = stack[:len(stack)-1]
		switch node.Type {
		case BranchNode:
			stack = append(stack, node.Right, node.Left)
		case LeafNode:
			out = append(out, node.Primitive)
		}
	}
	return out
}

// Calculate tree statistics.
func (b *Bvh) Stats() BvhStats {
	var stats BvhStats
	if len(b.Nodes) == 0 {
		return stats
	}

	type entry struct {
		node  uint32
		depth int
	}
	stack := []entry{{b.Root, 0}}
	for len(stack) > 0 {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		stats.Nodes++
		if e.depth > stats.MaxDepth {
			stats.MaxDepth = e.depth
		}

		node := &b.Nodes[e.node]
		switch node.Type {
		case BranchNode:
			stack = append(stack, entry{node.Right, e.depth + 1}, entry{node.Left, e.depth + 1})
		case LeafNode:
			stats.Leaves++
		}
	}
	return stats
}

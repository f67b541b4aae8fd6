package compiler

import (
	"sort"
	"time"

	"github.com/achilleasa/go-raytrace/log"
	"github.com/achilleasa/go-raytrace/scene"
)

type bvhStats struct {
	nodes    int
	leafs    int
	maxDepth int
}

type bvhBuilder struct {
	logger log.Logger

	// Primitives being partitioned.
	prims scene.PrimitiveList

	// Cached primitive bboxes.
	bboxes []scene.AABB

	// Bvh nodes stored as a contiguous list.
	nodes []scene.BvhNode

	// Stats
	stats bvhStats
}

// Construct a BVH over all primitives in the list, starting the partitioning
// on the X axis.
func BuildBVH(prims scene.PrimitiveList) *scene.Bvh {
	indices := make([]uint32, len(prims))
	for idx := range indices {
		indices[idx] = uint32(idx)
	}
	return BuildBVHFrom(prims, indices, 0)
}

// Construct a BVH over a subset of primitive indices.
//
// The builder uses a mean split: items whose bbox min coordinate along the
// current axis is below the mean of all items go to the left subtree and
// the rest to the right one. Items exactly at the mean are assigned to the
// side with fewer items. The split axis rotates with each tree level.
func BuildBVHFrom(prims scene.PrimitiveList, indices []uint32, axis int) *scene.Bvh {
	b := &bvhBuilder{
		logger: log.New("bvhBuilder"),
		prims:  prims,
		bboxes: make([]scene.AABB, len(prims)),
		nodes:  make([]scene.BvhNode, 0, 2*len(indices)),
	}
	for idx, prim := range prims {
		b.bboxes[idx] = prim.BBox()
	}

	start := time.Now()
	root := b.partition(indices, axis%3, 0)
	b.logger.Debugf(
		"BVH tree build time: %d ms, primitives: %d, maxDepth: %d, nodes: %d, leafs: %d",
		time.Since(start).Nanoseconds()/1e6,
		len(indices), b.stats.maxDepth, b.stats.nodes, b.stats.leafs,
	)

	return &scene.Bvh{
		Nodes: b.nodes,
		Root:  root,
	}
}

// Partition index list and return node index.
func (b *bvhBuilder) partition(indices []uint32, axis, depth int) uint32 {
	if depth > b.stats.maxDepth {
		b.stats.maxDepth = depth
	}

	switch len(indices) {
	case 0:
		return b.appendNode(scene.BvhNode{Type: scene.EmptyNode})
	case 1:
		return b.createLeaf(indices[0])
	case 2:
		first, second := indices[0], indices[1]
		if b.bboxes[first].Compare(b.bboxes[second], axis) >= 0 {
			first, second = second, first
		}

		nodeIndex := b.appendNode(scene.BvhNode{Type: scene.BranchNode})
		left := b.createLeaf(first)
		right := b.createLeaf(second)
		b.setChildren(nodeIndex, left, right)
		return nodeIndex
	}

	leftList, rightList := b.split(indices, axis)

	nodeIndex := b.appendNode(scene.BvhNode{Type: scene.BranchNode})
	nextAxis := (axis + 1) % 3
	left := b.partition(leftList, nextAxis, depth+1)
	right := b.partition(rightList, nextAxis, depth+1)
	b.setChildren(nodeIndex, left, right)
	return nodeIndex
}

// Split indices around the mean bbox min coordinate along axis.
func (b *bvhBuilder) split(indices []uint32, axis int) (left, right []uint32) {
	var sum float64
	for _, idx := range indices {
		sum += float64(b.bboxes[idx].Min[axis])
	}
	mean := float32(sum / float64(len(indices)))

	left = make([]uint32, 0, len(indices))
	right = make([]uint32, 0, len(indices))
	for _, idx := range indices {
		v := b.bboxes[idx].Min[axis]
		switch {
		case v == mean:
			if len(left) < len(right) {
				left = append(left, idx)
			} else {
				right = append(right, idx)
			}
		case v < mean:
			left = append(left, idx)
		default:
			right = append(right, idx)
		}
	}

	if len(left) != 0 && len(right) != 0 {
		return left, right
	}

	// Rounding of the mean for near-identical coordinates can push every item
	// to the same side; fall back to splitting the axis-sorted list in half.
	sorted := make([]uint32, len(indices))
	copy(sorted, indices)
	sort.SliceStable(sorted, func(i, j int) bool {
		return b.bboxes[sorted[i]].Compare(b.bboxes[sorted[j]], axis) < 0
	})
	mid := len(sorted) / 2
	return sorted[:mid], sorted[mid:]
}

// Create a leaf for the primitive with the given index and return the node index.
func (b *bvhBuilder) createLeaf(primIndex uint32) uint32 {
	b.stats.leafs++
	return b.appendNode(scene.BvhNode{
		Type:      scene.LeafNode,
		BBox:      b.bboxes[primIndex],
		Primitive: primIndex,
	})
}

func (b *bvhBuilder) appendNode(node scene.BvhNode) uint32 {
	b.nodes = append(b.nodes, node)
	b.stats.nodes++
	return uint32(len(b.nodes) - 1)
}

func (b *bvhBuilder) setChildren(nodeIndex, left, right uint32) {
	node := &b.nodes[nodeIndex]
	node.Left = left
	node.Right = right
	node.BBox = b.nodes[left].BBox.Union(b.nodes[right].BBox)
}

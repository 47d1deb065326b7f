package accel

import (
	"sort"

	"github.com/df07/go-chunk-raytracer/pkg/core"
)

// Leaf threshold: nodes with fewer instances than this are not split
const leafThreshold = 4

// Node is a BVH node. A leaf holds instances; a composite node holds exactly
// two non-empty children. Box is the union of everything below the node.
type Node struct {
	Box       core.AABB
	Left      *Node
	Right     *Node
	Instances []*Instance // Leaf contents (nil for composite nodes)
	leaf      bool
}

// IsLeaf reports whether the node is a leaf
func (n *Node) IsLeaf() bool {
	return n.leaf
}

// BVH is a bounding volume hierarchy over instances. Its nodes are built once
// and never change; only the counters move.
type BVH struct {
	root     *Node
	counters *Counters
}

// NewBVH builds the hierarchy. The input slice is copied, never reordered.
func NewBVH(instances []*Instance) *BVH {
	instancesCopy := make([]*Instance, len(instances))
	copy(instancesCopy, instances)

	return &BVH{root: buildBVH(instancesCopy, 0), counters: &Counters{}}
}

// buildBVH splits by count: sort on the current axis by box minimum, give the
// first ceil(n/2) instances to the left child and cycle the axis X, Y, Z.
func buildBVH(instances []*Instance, axis int) *Node {
	if len(instances) < leafThreshold {
		box := core.EmptyAABB()
		for _, instance := range instances {
			box = box.Union(instance.BoundingBox())
		}
		return &Node{Box: box, Instances: instances, leaf: true}
	}

	sortInstancesByAxis(instances, axis)

	mid := (len(instances) + 1) / 2
	next := (axis + 1) % 3
	left := buildBVH(instances[:mid:mid], next)
	right := buildBVH(instances[mid:], next)

	return &Node{
		Box:   left.Box.Union(right.Box),
		Left:  left,
		Right: right,
	}
}

// sortInstancesByAxis orders instances by the minimum corner of their box.
// NaN compares false both ways and therefore counts as equal.
func sortInstancesByAxis(instances []*Instance, axis int) {
	sort.SliceStable(instances, func(i, j int) bool {
		return instances[i].BoundingBox().Min.Axis(axis) < instances[j].BoundingBox().Min.Axis(axis)
	})
}

// Root returns the root node
func (bvh *BVH) Root() *Node {
	return bvh.root
}

// Leaves returns every leaf in left-to-right order
func (bvh *BVH) Leaves() []*Node {
	var leaves []*Node
	var walk func(node *Node)
	walk = func(node *Node) {
		if node.IsLeaf() {
			leaves = append(leaves, node)
			return
		}
		walk(node.Left)
		walk(node.Right)
	}
	walk(bvh.root)
	return leaves
}

// BoundingBox returns the root box after transform
func (bvh *BVH) BoundingBox(transform core.Transform) core.AABB {
	return bvh.root.Box.Transformed(transform)
}

// Intersect returns the nearest hit along the ray
func (bvh *BVH) Intersect(ray core.Ray) (core.Intersection, bool) {
	if !usableRay(ray) {
		return core.Intersection{}, false
	}
	if _, _, _, ok := bvh.root.Box.Intersect(ray); !ok {
		return core.Intersection{}, false
	}
	return bvh.root.intersect(ray, bvh.counters)
}

// Counters returns the intersection tests run so far
func (bvh *BVH) Counters() *Counters {
	return bvh.counters
}

// intersect assumes the ray already hits the node's box
func (n *Node) intersect(ray core.Ray, counters *Counters) (core.Intersection, bool) {
	if n.IsLeaf() {
		var closest core.Intersection
		found := false
		for _, instance := range n.Instances {
			hit, ok := counters.intersect(instance, ray)
			closest, found = core.Closest(closest, found, hit, ok)
		}
		return closest, found
	}

	tLeft, _, _, hitLeft := n.Left.Box.Intersect(ray)
	tRight, _, _, hitRight := n.Right.Box.Intersect(ray)

	switch {
	case !hitLeft && !hitRight:
		return core.Intersection{}, false
	case !hitRight:
		return n.Left.intersect(ray, counters)
	case !hitLeft:
		return n.Right.intersect(ray, counters)
	}

	first, second, secondEntry := n.Left, n.Right, tRight
	if tRight < tLeft {
		first, second, secondEntry = n.Right, n.Left, tLeft
	}

	hit, ok := first.intersect(ray, counters)
	if ok && hit.T < secondEntry {
		// Nothing in the other box can be closer than its entry point
		return hit, true
	}

	other, otherOk := second.intersect(ray, counters)
	return core.Closest(hit, ok, other, otherOk)
}

// Visible reports whether no instance lies strictly between from and to
func (bvh *BVH) Visible(from, to core.Vec3) bool {
	ray, distance, ok := shadowRay(from, to)
	if !ok {
		return true
	}
	if _, _, _, ok := bvh.root.Box.Intersect(ray); !ok {
		return true
	}
	return bvh.root.visible(ray, distance, bvh.counters)
}

// visible assumes the ray already hits the node's box. A child box miss means
// nothing along that branch can occlude.
func (n *Node) visible(ray core.Ray, distance float64, counters *Counters) bool {
	if n.IsLeaf() {
		for _, instance := range n.Instances {
			if hit, ok := counters.intersect(instance, ray); ok && hit.T < distance {
				return false
			}
		}
		return true
	}

	tLeft, _, _, hitLeft := n.Left.Box.Intersect(ray)
	tRight, _, _, hitRight := n.Right.Box.Intersect(ray)

	first, second := n.Left, n.Right
	firstHit, secondHit := hitLeft, hitRight
	if hitLeft && hitRight && tRight < tLeft {
		first, second = n.Right, n.Left
	}

	if firstHit && !first.visible(ray, distance, counters) {
		return false
	}
	if secondHit && !second.visible(ray, distance, counters) {
		return false
	}
	return true
}

// Stats summarises the shape of a BVH
type Stats struct {
	Nodes        int
	Leaves       int
	MaxDepth     int
	Instances    int
	AvgLeafDepth float64
}

// Stats walks the tree and collects its statistics
func (bvh *BVH) Stats() Stats {
	stats := Stats{}
	bvh.collectStats(bvh.root, 0, &stats)

	// Calculate average depth after collecting all data
	if stats.Leaves > 0 {
		stats.AvgLeafDepth = stats.AvgLeafDepth / float64(stats.Leaves)
	}

	return stats
}

// collectStats recursively collects statistics about the BVH
func (bvh *BVH) collectStats(node *Node, depth int, stats *Stats) {
	stats.Nodes++

	if depth > stats.MaxDepth {
		stats.MaxDepth = depth
	}

	if node.IsLeaf() {
		stats.Leaves++
		stats.Instances += len(node.Instances)
		stats.AvgLeafDepth += float64(depth) // Accumulate depth for average calculation
		return
	}

	bvh.collectStats(node.Left, depth+1, stats)
	bvh.collectStats(node.Right, depth+1, stats)
}

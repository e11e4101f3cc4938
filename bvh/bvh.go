// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bvh implements the acceleration-structure builder: a
// median-split bounding volume hierarchy over a volume's primitive
// references (triangles or tetrahedra), plus the box-dilation formula used
// to keep grazing rays from missing a leaf.
package bvh

import (
	"math"
	"sort"

	"github.com/pshriwise/xdg-sub000/isect"
	"github.com/pshriwise/xdg-sub000/mesh"
	"github.com/pshriwise/xdg-sub000/vec3"
)

// MaxDepth bounds recursive tree construction: once a node is MaxDepth
// levels deep, Build makes it a leaf holding every primitive left in its
// range instead of splitting it further.
const MaxDepth = 64

// leafSize is the primitive-count threshold at or below which a node stops
// splitting and becomes a leaf.
const leafSize = 4

// digits10Float32 is the number of decimal digits a float32 can represent
// exactly; box dilation is scaled by 10^-digits10(float).
const digits10Float32 = 6

// PrimitiveRef is a lightweight {primitive_id, sense} record stored in a
// volume's contiguous acceleration-structure buffer.
type PrimitiveRef struct {
	ID    mesh.ID
	Sense mesh.Sense
}

type node struct {
	bounds      vec3.Box
	left, right int32 // -1 marks a leaf
	start, count int32
}

// Tree is a built bounding volume hierarchy over a fixed set of primitive
// references. It is immutable after Build returns.
type Tree struct {
	nodes []node
	prims []PrimitiveRef
}

// Dilation computes the box_dilation formula: the
// per-volume AABB enlargement that keeps a ray skimming a face from
// missing its leaf. volDiag is the diagonal of the owning volume's
// bounding box.
func Dilation(volDiag float64) float64 {
	d := volDiag * math.Pow(10, -digits10Float32)
	if d < isect.NumericalPrecision {
		return isect.NumericalPrecision
	}
	return d
}

// Build constructs a BVH over prims, whose i-th bounding box is boxes[i].
// Each leaf box is dilated by dilation before being stored, so traversal
// tests against the enlarged box rather than the primitive's exact extent.
func Build(prims []PrimitiveRef, boxes []vec3.Box, dilation float64) *Tree {
	t := &Tree{}
	if len(prims) == 0 {
		t.nodes = append(t.nodes, node{bounds: vec3.NewEmptyBox(), left: -1, right: -1, start: 0, count: 0})
		return t
	}

	idx := make([]int, len(prims))
	dilated := make([]vec3.Box, len(boxes))
	for i := range boxes {
		idx[i] = i
		dilated[i] = boxes[i].Dilate(dilation)
	}

	t.prims = make([]PrimitiveRef, 0, len(prims))
	t.buildRange(idx, prims, dilated, 0)
	return t
}

func boundsOf(idx []int, boxes []vec3.Box) vec3.Box {
	b := vec3.NewEmptyBox()
	for _, i := range idx {
		b.Update(boxes[i])
	}
	return b
}

// buildRange recursively partitions idx (indices into prims/boxes) along
// the widest axis of their combined centroid spread, appending the
// resulting primitive order to t.prims and returning the new node's index.
func (t *Tree) buildRange(idx []int, prims []PrimitiveRef, boxes []vec3.Box, depth int) int32 {
	bounds := boundsOf(idx, boxes)

	if len(idx) <= leafSize || depth >= MaxDepth {
		start := int32(len(t.prims))
		for _, i := range idx {
			t.prims = append(t.prims, prims[i])
		}
		t.nodes = append(t.nodes, node{bounds: bounds, left: -1, right: -1, start: start, count: int32(len(idx))})
		return int32(len(t.nodes) - 1)
	}

	axis := widestAxis(idx, boxes)
	sort.Slice(idx, func(a, b int) bool {
		return boxes[idx[a]].Center().Component(axis) < boxes[idx[b]].Center().Component(axis)
	})
	mid := len(idx) / 2

	// Reserve this node's slot before recursing so left/right indices are
	// stable regardless of recursion order.
	nodeIdx := int32(len(t.nodes))
	t.nodes = append(t.nodes, node{bounds: bounds})

	left := t.buildRange(idx[:mid], prims, boxes, depth+1)
	right := t.buildRange(idx[mid:], prims, boxes, depth+1)

	t.nodes[nodeIdx].left = left
	t.nodes[nodeIdx].right = right
	t.nodes[nodeIdx].start = -1
	t.nodes[nodeIdx].count = 0
	return nodeIdx
}

func widestAxis(idx []int, boxes []vec3.Box) int {
	spread := vec3.NewEmptyBox()
	for _, i := range idx {
		spread.UpdatePoint(boxes[i].Center())
	}
	ext := spread.Max.Sub(spread.Min)
	axis := 0
	max := ext.X
	if ext.Y > max {
		axis, max = 1, ext.Y
	}
	if ext.Z > max {
		axis = 2
	}
	return axis
}

// NumPrimitives returns how many primitive references the tree holds.
func (t *Tree) NumPrimitives() int { return len(t.prims) }

// Bounds returns the root node's (dilated) bounding box.
func (t *Tree) Bounds() vec3.Box {
	if len(t.nodes) == 0 {
		return vec3.NewEmptyBox()
	}
	return t.nodes[0].bounds
}

func rayBoxHit(box vec3.Box, origin, invDir vec3.Vec, tMin, tMax float64) bool {
	for axis := 0; axis < 3; axis++ {
		o := origin.Component(axis)
		d := invDir.Component(axis)
		lo := (box.Min.Component(axis) - o) * d
		hi := (box.Max.Component(axis) - o) * d
		if lo > hi {
			lo, hi = hi, lo
		}
		if lo > tMin {
			tMin = lo
		}
		if hi < tMax {
			tMax = hi
		}
		if tMin > tMax {
			return false
		}
	}
	return true
}

// RayQuery walks every node whose box the ray (origin, dir) crosses within
// [tMin, tMax], invoking visit once per primitive reference in the leaves
// it reaches. visit returns a (possibly tightened) tMax and whether
// traversal should stop immediately (e.g. an occlusion query that only
// needs one hit).
func (t *Tree) RayQuery(origin, dir vec3.Vec, tMin, tMax float64, visit func(ref PrimitiveRef) (newTMax float64, stop bool)) {
	if len(t.nodes) == 0 {
		return
	}
	invDir := vec3.New(safeRcp(dir.X), safeRcp(dir.Y), safeRcp(dir.Z))
	t.rayQueryNode(0, origin, invDir, tMin, &tMax, visit)
}

func safeRcp(x float64) float64 {
	if x == 0 {
		return math.Inf(1)
	}
	return 1.0 / x
}

func (t *Tree) rayQueryNode(n int32, origin, invDir vec3.Vec, tMin float64, tMax *float64, visit func(PrimitiveRef) (float64, bool)) bool {
	nd := t.nodes[n]
	if !rayBoxHit(nd.bounds, origin, invDir, tMin, *tMax) {
		return false
	}
	if nd.left == -1 {
		for i := nd.start; i < nd.start+nd.count; i++ {
			newTMax, stop := visit(t.prims[i])
			if newTMax < *tMax {
				*tMax = newTMax
			}
			if stop {
				return true
			}
		}
		return false
	}
	if t.rayQueryNode(nd.left, origin, invDir, tMin, tMax, visit) {
		return true
	}
	return t.rayQueryNode(nd.right, origin, invDir, tMin, tMax, visit)
}

// PointQuery visits every primitive whose leaf box contains p, used by
// point-in-volume's containment shortcuts and by closest-point's initial
// candidate gathering.
func (t *Tree) PointQuery(p vec3.Vec, visit func(ref PrimitiveRef)) {
	if len(t.nodes) == 0 {
		return
	}
	t.pointQueryNode(0, p, visit)
}

func (t *Tree) pointQueryNode(n int32, p vec3.Vec, visit func(PrimitiveRef)) {
	nd := t.nodes[n]
	if !nd.bounds.Contains(p) {
		return
	}
	if nd.left == -1 {
		for i := nd.start; i < nd.start+nd.count; i++ {
			visit(t.prims[i])
		}
		return
	}
	t.pointQueryNode(nd.left, p, visit)
	t.pointQueryNode(nd.right, p, visit)
}

// RadiusQuery visits every primitive whose leaf box lies within radius of
// center, used by the closest-point query to prune the search as the
// running minimum distance tightens. visit returns the (possibly
// tightened) radius to use for the remainder of the traversal.
func (t *Tree) RadiusQuery(center vec3.Vec, radius float64, visit func(ref PrimitiveRef) (newRadius float64)) {
	if len(t.nodes) == 0 {
		return
	}
	t.radiusQueryNode(0, center, &radius, visit)
}

func (t *Tree) radiusQueryNode(n int32, center vec3.Vec, radius *float64, visit func(PrimitiveRef) float64) {
	nd := t.nodes[n]
	if boxDistance(nd.bounds, center) > *radius {
		return
	}
	if nd.left == -1 {
		for i := nd.start; i < nd.start+nd.count; i++ {
			if r := visit(t.prims[i]); r < *radius {
				*radius = r
			}
		}
		return
	}
	t.radiusQueryNode(nd.left, center, radius, visit)
	t.radiusQueryNode(nd.right, center, radius, visit)
}

func boxDistance(box vec3.Box, p vec3.Vec) float64 {
	dx := math.Max(math.Max(box.Min.X-p.X, 0), p.X-box.Max.X)
	dy := math.Max(math.Max(box.Min.Y-p.Y, 0), p.Y-box.Max.Y)
	dz := math.Max(math.Max(box.Min.Z-p.Z, 0), p.Z-box.Max.Z)
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

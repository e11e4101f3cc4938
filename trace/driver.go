// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trace

import (
	"math"

	"github.com/pshriwise/xdg-sub000/bvh"
	"github.com/pshriwise/xdg-sub000/isect"
	"github.com/pshriwise/xdg-sub000/mesh"
	"github.com/pshriwise/xdg-sub000/vec3"
	"github.com/pshriwise/xdg-sub000/xlog"
)

// TreeHandle is an opaque identifier for one built acceleration structure
// used to index into Driver.trees.
type TreeHandle int32

// NoTree is the zero handle's sentinel: no acceleration structure is
// registered.
const NoTree TreeHandle = -1

// SurfaceUserData is the {surface_id, forward_tree, reverse_tree,
// box_dilation} block attached to each registered surface, shared by
// reference between the (up to) two volumes that bound it.
type SurfaceUserData struct {
	SurfaceID   mesh.ID
	ForwardTree TreeHandle
	ReverseTree TreeHandle
	BoxDilation float64
}

// Driver owns every acceleration structure built for one mesh.Adapter: a
// surface tree and (when the volume has a tetrahedral mesh) an element
// tree per volume, one global surface tree and one global element tree,
// and the per-surface user-data arena shared across volumes. It is the
// concrete ray-tracer backend.
type Driver struct {
	adapter mesh.Adapter

	trees []*bvh.Tree // arena indexed by TreeHandle

	volumeSurfaceTree map[mesh.ID]TreeHandle
	volumeElementTree map[mesh.ID]TreeHandle
	globalSurfaceTree TreeHandle
	globalElementTree TreeHandle

	surfaceData map[mesh.ID]*SurfaceUserData
}

// NewDriver allocates an empty driver; call Register to build its trees
// against an adapter's current topology.
func NewDriver() *Driver {
	return &Driver{
		volumeSurfaceTree: map[mesh.ID]TreeHandle{},
		volumeElementTree: map[mesh.ID]TreeHandle{},
		surfaceData:       map[mesh.ID]*SurfaceUserData{},
		globalSurfaceTree: NoTree,
		globalElementTree: NoTree,
	}
}

func (d *Driver) addTree(t *bvh.Tree) TreeHandle {
	d.trees = append(d.trees, t)
	return TreeHandle(len(d.trees) - 1)
}

func (d *Driver) tree(h TreeHandle) *bvh.Tree {
	if h == NoTree {
		return nil
	}
	return d.trees[h]
}

// Register builds every acceleration structure: a per-volume surface
// tree (one primitive reference per triangle face, sensed relative to
// that volume), a per-volume element tree when
// the volume carries a tetrahedral mesh, and cross-volume global trees
// over every registered face/element. Surface user-data blocks are
// allocated the first time a surface is seen and their box_dilation is
// widened to the max of every volume that subsequently attaches to them.
func (d *Driver) Register(a mesh.Adapter) {
	d.adapter = a

	var allSurfacePrims []bvh.PrimitiveRef
	var allSurfaceBoxes []vec3.Box
	var allElementPrims []bvh.PrimitiveRef
	var allElementBoxes []vec3.Box

	for _, v := range a.Volumes() {
		volBox := mesh.VolumeBoundingBox(a, v)
		dilation := bvh.Dilation(volBox.Diagonal())

		var prims []bvh.PrimitiveRef
		var boxes []vec3.Box
		for _, s := range a.VolumeSurfaces(v) {
			sense, err := a.SurfaceSense(s, v)
			if err != nil {
				continue
			}
			for _, f := range a.SurfaceFaces(s) {
				ref := bvh.PrimitiveRef{ID: f, Sense: sense}
				box := mesh.FaceBoundingBox(a, f)
				prims = append(prims, ref)
				boxes = append(boxes, box)
				allSurfacePrims = append(allSurfacePrims, ref)
				allSurfaceBoxes = append(allSurfaceBoxes, box)
			}

			ud, ok := d.surfaceData[s]
			if !ok {
				ud = &SurfaceUserData{SurfaceID: s, ForwardTree: NoTree, ReverseTree: NoTree}
				d.surfaceData[s] = ud
			}
			if dilation > ud.BoxDilation {
				ud.BoxDilation = dilation
			}
		}
		th := d.addTree(bvh.Build(prims, boxes, dilation))
		d.volumeSurfaceTree[v] = th
		for _, s := range a.VolumeSurfaces(v) {
			sense, err := a.SurfaceSense(s, v)
			if err != nil {
				continue
			}
			ud := d.surfaceData[s]
			if sense == mesh.SenseForward {
				ud.ForwardTree = th
			} else {
				ud.ReverseTree = th
			}
		}

		if elems := a.VolumeElements(v); len(elems) > 0 {
			eprims := make([]bvh.PrimitiveRef, len(elems))
			eboxes := make([]vec3.Box, len(elems))
			for i, e := range elems {
				eprims[i] = bvh.PrimitiveRef{ID: e, Sense: mesh.SenseUnset}
				eboxes[i] = mesh.ElementBoundingBox(a, e)
			}
			eth := d.addTree(bvh.Build(eprims, eboxes, dilation))
			d.volumeElementTree[v] = eth
			allElementPrims = append(allElementPrims, eprims...)
			allElementBoxes = append(allElementBoxes, eboxes...)
		}
	}

	d.globalSurfaceTree = d.addTree(bvh.Build(allSurfacePrims, allSurfaceBoxes, 0))
	if len(allElementPrims) > 0 {
		d.globalElementTree = d.addTree(bvh.Build(allElementPrims, allElementBoxes, 0))
	}
}

// SurfaceData returns the shared user-data block for surface s, or nil if
// Register has not attached that surface to any volume.
func (d *Driver) SurfaceData(s mesh.ID) *SurfaceUserData { return d.surfaceData[s] }

// Filter is the hit-filter pipeline: orientation culling
// (reject a candidate whose sensed crossing direction doesn't match) and
// primitive-exclusion culling (reject a face already present in Exclude).
type Filter struct {
	HasOrientation bool
	Orientation    isect.Orientation
	Exclude        []mesh.ID
}

func (f *Filter) isExcluded(face mesh.ID) bool {
	for _, e := range f.Exclude {
		if e == face {
			return true
		}
	}
	return false
}

// effectiveOrientation accounts for a primitive reference's sense: a
// REVERSE-sensed face's stored vertex winding is the other volume's
// "natural" orientation, so the entering/exiting test must be flipped to
// stay correct for the volume currently being queried.
func effectiveOrientation(o isect.Orientation, sense mesh.Sense) isect.Orientation {
	if sense == mesh.SenseReverse {
		return isect.Orientation(-int(o))
	}
	return o
}

// RayFire fires (origin, dir) through volume v's surface tree, returning
// the nearest accepted crossing within (0, dMax]. On a hit, the face's ID
// is appended to filter.Exclude so a repeated fire from the same origin
// does not re-find the same face.
func (d *Driver) RayFire(v mesh.ID, origin, dir vec3.Vec, dMax float64, filter *Filter) (dist float64, face mesh.ID, hit bool) {
	dist, face, _, hit = d.RayFireSensed(v, origin, dir, dMax, filter)
	return dist, face, hit
}

// RayFireSensed is RayFire extended with the winning primitive's sense
// relative to v, which callers like point-in-volume's parity test need to
// tell an entering crossing from an exiting one.
func (d *Driver) RayFireSensed(v mesh.ID, origin, dir vec3.Vec, dMax float64, filter *Filter) (dist float64, face mesh.ID, sense mesh.Sense, hit bool) {
	th, registered := d.volumeSurfaceTree[v]
	if !registered {
		xlog.Fatalf("ray_fire: volume %d is not registered with this driver", v)
	}
	tree := d.tree(th)

	bestDist := math.Inf(1)
	bestFace := mesh.IDNone
	bestSense := mesh.SenseUnset

	tree.RayQuery(origin, dir, 0, dMax, func(ref bvh.PrimitiveRef) (float64, bool) {
		if filter != nil && filter.isExcluded(ref.ID) {
			return bestDist, false
		}
		tri := d.adapter.FaceVertices(ref.ID)
		q := isect.PluckerTriangle{
			Vertices:  tri,
			Origin:    origin,
			Direction: dir,
			Far:       bestDist,
		}
		if filter != nil && filter.HasOrientation {
			q.HasOrient = true
			q.Orientation = effectiveOrientation(filter.Orientation, ref.Sense)
		}
		t, ok := isect.RayTriangle(q)
		if !ok || t > dMax {
			return bestDist, false
		}
		if t < bestDist {
			bestDist, bestFace, bestSense = t, ref.ID, ref.Sense
		}
		return bestDist, false
	})

	if bestFace == mesh.IDNone {
		return 0, mesh.IDNone, mesh.SenseUnset, false
	}
	if filter != nil {
		filter.Exclude = append(filter.Exclude, bestFace)
	}
	return bestDist, bestFace, bestSense, true
}

// Occluded is RayFire's boolean-only sibling: it stops at the first
// accepted crossing instead of finding the nearest one.
func (d *Driver) Occluded(v mesh.ID, origin, dir vec3.Vec, dMax float64, filter *Filter) bool {
	th, registered := d.volumeSurfaceTree[v]
	if !registered {
		xlog.Fatalf("occluded: volume %d is not registered with this driver", v)
	}
	tree := d.tree(th)
	found := false
	tree.RayQuery(origin, dir, 0, dMax, func(ref bvh.PrimitiveRef) (float64, bool) {
		if filter != nil && filter.isExcluded(ref.ID) {
			return dMax, false
		}
		tri := d.adapter.FaceVertices(ref.ID)
		q := isect.PluckerTriangle{Vertices: tri, Origin: origin, Direction: dir, Far: dMax}
		if filter != nil && filter.HasOrientation {
			q.HasOrient = true
			q.Orientation = effectiveOrientation(filter.Orientation, ref.Sense)
		}
		if _, ok := isect.RayTriangle(q); ok {
			found = true
			return 0, true
		}
		return dMax, false
	})
	return found
}

// Closest submits a radius query against volume v's surface tree,
// tightening the search radius as candidate leaves are visited, and
// returns the distance to and ID of the nearest face.
func (d *Driver) Closest(v mesh.ID, p vec3.Vec) (dist float64, face mesh.ID, found bool) {
	th, registered := d.volumeSurfaceTree[v]
	if !registered {
		xlog.Fatalf("closest: volume %d is not registered with this driver", v)
	}
	tree := d.tree(th)
	bestDist := math.Inf(1)
	bestFace := mesh.IDNone
	tree.RadiusQuery(p, math.Inf(1), func(ref bvh.PrimitiveRef) float64 {
		tri := d.adapter.FaceVertices(ref.ID)
		cp := isect.ClosestPointOnTriangle(tri, p)
		dd := cp.Sub(p).Length()
		if dd < bestDist {
			bestDist, bestFace = dd, ref.ID
		}
		return bestDist
	})
	if bestFace == mesh.IDNone {
		return 0, mesh.IDNone, false
	}
	return bestDist, bestFace, true
}

// PointInElement finds the tetrahedron of volume v's element tree
// containing p, or mesh.IDNone if none does.
func (d *Driver) PointInElement(v mesh.ID, p vec3.Vec) mesh.ID {
	tree := d.tree(d.volumeElementTree[v])
	if tree == nil {
		return mesh.IDNone
	}
	found := mesh.IDNone
	tree.PointQuery(p, func(ref bvh.PrimitiveRef) {
		if found != mesh.IDNone {
			return
		}
		if isect.TetContainment(d.adapter.ElementVertices(ref.ID), p) {
			found = ref.ID
		}
	})
	return found
}

// FindElementGlobal is PointInElement against the cross-volume global
// element tree, used when the caller has no volume hint.
func (d *Driver) FindElementGlobal(p vec3.Vec) mesh.ID {
	tree := d.tree(d.globalElementTree)
	if tree == nil {
		return mesh.IDNone
	}
	found := mesh.IDNone
	tree.PointQuery(p, func(ref bvh.PrimitiveRef) {
		if found != mesh.IDNone {
			return
		}
		if isect.TetContainment(d.adapter.ElementVertices(ref.ID), p) {
			found = ref.ID
		}
	})
	return found
}

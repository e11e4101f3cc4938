// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import "github.com/pshriwise/xdg-sub000/vec3"

// Adapter is the back-end-neutral contract a concrete mesh library (MOAB,
// Exodus-II, or a test mock) implements. It exposes topology, geometry and
// sense data only; it must never perform ray tracing or own acceleration
// structures (those live in the bvh/trace packages, composed on top of an
// Adapter by query.XDG).
type Adapter interface {
	// Volumes returns the IDs of every registered volume, including the
	// implicit complement once it has been created.
	Volumes() []ID
	// Surfaces returns the IDs of every registered surface.
	Surfaces() []ID
	// VolumeSurfaces returns the surfaces bounding volume v, in the order
	// they were added (this order is load-bearing: it determines
	// primitive-reference layout in the acceleration structure).
	VolumeSurfaces(v ID) []ID
	// SurfaceFaces returns the triangle face IDs belonging to surface s.
	SurfaceFaces(s ID) []ID
	// VolumeElements returns the tetrahedron element IDs belonging to
	// volume v, or nil if v has no volumetric mesh.
	VolumeElements(v ID) []ID

	// FaceVertices returns the three vertex positions of a triangle face,
	// in counter-clockwise order as seen from the face's normal side.
	FaceVertices(face ID) [3]vec3.Vec
	// ElementVertices returns the four vertex positions of a tetrahedron.
	ElementVertices(elem ID) [4]vec3.Vec

	// SurfaceSenses returns the (forward, reverse) parent volumes of a
	// surface; either may be IDNone.
	SurfaceSenses(s ID) (forward, reverse ID)
	// SurfaceSense returns the sense of surface s with respect to volume
	// v, or an error if v does not bound s.
	SurfaceSense(s, v ID) (Sense, error)

	// CreateVolume allocates a new, empty volume and returns its ID.
	CreateVolume() ID
	// AddSurfaceToVolume attaches surface s to volume v with the given
	// sense. If that sense slot is already assigned to a different
	// volume, the call fails unless overwrite is true.
	AddSurfaceToVolume(v, s ID, sense Sense, overwrite bool) error

	// WalkElements enumerates (element, chord) pairs along the ray
	// (r, u) starting in element start, covering at most distRemaining
	// of arc length. It may return fewer segments than distRemaining
	// implies if the walk would exit the mesh.
	WalkElements(start ID, r, u vec3.Vec, distRemaining float64) []Segment
	// WalkElementsTo enumerates (element, chord) pairs along the closed
	// segment [start, end], assuming both lie within the same meshed
	// volume.
	WalkElementsTo(start ID, from, to vec3.Vec) []Segment

	// ImplicitComplement returns the IPC's volume ID, or IDNone if
	// CreateImplicitComplement has not yet been called.
	ImplicitComplement() ID
	// SetImplicitComplement records the IPC's volume ID; called only by
	// CreateImplicitComplement.
	SetImplicitComplement(ipc ID)

	// Tag identifies the mesh back-end (e.g. "mock", "moab", "exodus").
	Tag() string
}

// PropertyAdapter is an optional capability: adapters that can record
// opaque volume/surface properties (material names, boundary-condition
// strings) implement it so query.XDG can tag the implicit complement's
// material as "void" once it is created.
type PropertyAdapter interface {
	SetProperty(id ID, p Property)
	GetProperty(id ID, t PropertyType) (Property, bool)
}

// NumVolumes returns the number of registered volumes.
func NumVolumes(a Adapter) int { return len(a.Volumes()) }

// NumSurfaces returns the number of registered surfaces.
func NumSurfaces(a Adapter) int { return len(a.Surfaces()) }

// NumVolumeFaces returns the total triangle count across all of v's
// surfaces.
func NumVolumeFaces(a Adapter, v ID) int {
	n := 0
	for _, s := range a.VolumeSurfaces(v) {
		n += len(a.SurfaceFaces(s))
	}
	return n
}

// NumVolumeElements returns the number of tetrahedra in v's volumetric
// mesh.
func NumVolumeElements(a Adapter, v ID) int { return len(a.VolumeElements(v)) }

// NumSurfaceFaces returns the number of triangles in surface s.
func NumSurfaceFaces(a Adapter, s ID) int { return len(a.SurfaceFaces(s)) }

// ParentVolumes is an alias for SurfaceSenses, matching the original's
// get_parent_volumes name for readers coming from the C++ interface.
func ParentVolumes(a Adapter, s ID) (forward, reverse ID) { return a.SurfaceSenses(s) }

// IsIPC reports whether v is the adapter's implicit complement.
func IsIPC(a Adapter, v ID) bool {
	ipc := a.ImplicitComplement()
	return ipc != IDNone && v == ipc
}

// NextVolume returns the volume on the other side of surface from
// current, or ErrNotParent if current does not bound surface.
func NextVolume(a Adapter, current, surface ID) (ID, error) {
	fwd, rev := a.SurfaceSenses(surface)
	switch current {
	case fwd:
		return rev, nil
	case rev:
		return fwd, nil
	default:
		return IDNone, &ErrNotParent{Volume: current, Surface: surface}
	}
}

// FaceNormal returns the unnormalized cross product of a triangle face's
// edges, following the right-hand rule relative to the face's vertex
// order. TriangleNormal is an alias kept for readers used to that name,
// which names both.
func FaceNormal(a Adapter, face ID) vec3.Vec {
	v := a.FaceVertices(face)
	return v[1].Sub(v[0]).Cross(v[2].Sub(v[0]))
}

// TriangleNormal is an alias for FaceNormal.
func TriangleNormal(a Adapter, face ID) vec3.Vec { return FaceNormal(a, face) }

// ElementBoundingBox returns the AABB of a tetrahedron's four vertices.
func ElementBoundingBox(a Adapter, elem ID) vec3.Box {
	v := a.ElementVertices(elem)
	return vec3.BoxFromPoints(v[:])
}

// FaceBoundingBox returns the AABB of a triangle's three vertices.
func FaceBoundingBox(a Adapter, face ID) vec3.Box {
	v := a.FaceVertices(face)
	return vec3.BoxFromPoints(v[:])
}

// SurfaceBoundingBox returns the AABB of every triangle in surface s.
func SurfaceBoundingBox(a Adapter, s ID) vec3.Box {
	b := vec3.NewEmptyBox()
	for _, f := range a.SurfaceFaces(s) {
		b.Update(FaceBoundingBox(a, f))
	}
	return b
}

// VolumeBoundingBox returns the AABB of every surface bounding volume v.
func VolumeBoundingBox(a Adapter, v ID) vec3.Box {
	b := vec3.NewEmptyBox()
	for _, s := range a.VolumeSurfaces(v) {
		b.Update(SurfaceBoundingBox(a, s))
	}
	return b
}

// CreateImplicitComplement synthesizes the catch-all outer volume: every
// surface side left dangling (forward or reverse parent == IDNone) is
// attached to a freshly created volume, which is then recorded as the
// adapter's implicit complement. Calling it a second time creates another
// volume with no surfaces (every side already has a parent) and records
// that one as the IPC, so the first IPC, which holds the dangling sides,
// is no longer reported; callers should guard with
// `a.ImplicitComplement() == IDNone`.
func CreateImplicitComplement(a Adapter) ID {
	ipc := a.CreateVolume()
	for _, s := range a.Surfaces() {
		fwd, rev := a.SurfaceSenses(s)
		if fwd == IDNone {
			a.AddSurfaceToVolume(ipc, s, SenseForward, false)
		}
		if rev == IDNone {
			a.AddSurfaceToVolume(ipc, s, SenseReverse, false)
		}
	}
	a.SetImplicitComplement(ipc)
	return ipc
}

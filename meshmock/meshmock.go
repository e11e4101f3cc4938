// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package meshmock is a test-only implementer of mesh.Adapter. It builds an in-memory box mesh directly from vertex/face/element
// index lists, with no file format behind it, so the query engine's tests
// do not depend on a MOAB or Exodus-II installation.
package meshmock

import (
	"math"

	"github.com/pshriwise/xdg-sub000/isect"
	"github.com/pshriwise/xdg-sub000/mesh"
	"github.com/pshriwise/xdg-sub000/vec3"
)

type faceRec struct {
	verts [3]int
}

type tetRec struct {
	verts     [4]int
	neighbors [4]mesh.ID // mesh.IDNone where the face is a mesh boundary
}

type surfaceRec struct {
	faces           []mesh.ID
	forward, reverse mesh.ID
}

type volumeRec struct {
	surfaces []mesh.ID
	senses   []mesh.Sense
	elements []mesh.ID
}

// Mesh is an in-memory mesh.Adapter backed by plain slices. The zero value
// is an empty mesh; use NewBox or Empty to construct one.
type Mesh struct {
	verts     []vec3.Vec
	faces     []faceRec
	tets      []tetRec
	surfaces  []surfaceRec
	volumes   []volumeRec
	ipc       mesh.ID
	adjacency map[mesh.ID]bool // volume IDs whose tet neighbors have been resolved
	props     map[mesh.ID]map[mesh.PropertyType]mesh.Property
}

// Empty returns a mesh with no geometry, ready to be built up via
// CreateVolume/AddSurfaceToVolume; NewBox starts from it and appends its
// vertices, faces and tetrahedra directly.
func Empty() *Mesh {
	return &Mesh{
		ipc:       mesh.IDNone,
		adjacency: map[mesh.ID]bool{},
		props:     map[mesh.ID]map[mesh.PropertyType]mesh.Property{},
	}
}

// SetProperty records an opaque property against a volume or surface ID,
// satisfying mesh.PropertyAdapter.
func (m *Mesh) SetProperty(id mesh.ID, p mesh.Property) {
	if m.props[id] == nil {
		m.props[id] = map[mesh.PropertyType]mesh.Property{}
	}
	m.props[id][p.Type] = p
}

// GetProperty returns the property of type t recorded against id. When
// none was set it reports false, with mesh.DefaultSurfaceProperty() as the
// value for a boundary condition and the zero Property for any other type.
func (m *Mesh) GetProperty(id mesh.ID, t mesh.PropertyType) (mesh.Property, bool) {
	if p, ok := m.props[id][t]; ok {
		return p, true
	}
	if t == mesh.PropertyBoundaryCondition {
		return mesh.DefaultSurfaceProperty(), false
	}
	return mesh.Property{}, false
}

// DefaultBox returns the 7x9x11 mock mesh used throughout this package's
// concrete scenarios: bbox = {-2,-3,-4; 5,6,7}, one volume, six surfaces
// (one per cube face, two triangles each) and a twelve-tetrahedron fan
// decomposition from the box's center.
func DefaultBox() *Mesh {
	return NewBox(vec3.New(-2, -3, -4), vec3.New(5, 6, 7))
}

// NewBox builds a single-volume, six-surface box mesh spanning [min, max],
// decomposed into twelve tetrahedra fanning out from the box's center
// vertex. Every surface's two triangles are wound so their cross product
// points outward; volume 0 is the box interior.
func NewBox(min, max vec3.Vec) *Mesh {
	m := Empty()

	v := func(x, y, z float64) int {
		m.verts = append(m.verts, vec3.New(x, y, z))
		return len(m.verts) - 1
	}
	v0 := v(min.X, min.Y, min.Z)
	v1 := v(max.X, min.Y, min.Z)
	v2 := v(max.X, max.Y, min.Z)
	v3 := v(min.X, max.Y, min.Z)
	v4 := v(min.X, min.Y, max.Z)
	v5 := v(max.X, min.Y, max.Z)
	v6 := v(max.X, max.Y, max.Z)
	v7 := v(min.X, max.Y, max.Z)
	center := v((min.X+max.X)/2, (min.Y+max.Y)/2, (min.Z+max.Z)/2)

	// Each entry is the two outward-wound triangles of one cube face.
	cubeFaces := [6][2][3]int{
		{{v0, v3, v2}, {v0, v2, v1}}, // z = min.Z
		{{v4, v5, v6}, {v4, v6, v7}}, // z = max.Z
		{{v0, v4, v7}, {v0, v7, v3}}, // x = min.X
		{{v1, v2, v6}, {v1, v6, v5}}, // x = max.X
		{{v0, v1, v5}, {v0, v5, v4}}, // y = min.Y
		{{v3, v7, v6}, {v3, v6, v2}}, // y = max.Y
	}

	vol := m.CreateVolume()
	for _, tris := range cubeFaces {
		faceIDs := make([]mesh.ID, 0, 2)
		for _, tri := range tris {
			fid := mesh.ID(len(m.faces))
			m.faces = append(m.faces, faceRec{verts: tri})
			faceIDs = append(faceIDs, fid)

			tid := mesh.ID(len(m.tets))
			m.tets = append(m.tets, tetRec{
				verts:     [4]int{tri[0], tri[1], tri[2], center},
				neighbors: [4]mesh.ID{mesh.IDNone, mesh.IDNone, mesh.IDNone, mesh.IDNone},
			})
			m.volumes[vol].elements = append(m.volumes[vol].elements, tid)
		}
		sid := mesh.ID(len(m.surfaces))
		m.surfaces = append(m.surfaces, surfaceRec{faces: faceIDs, forward: mesh.IDNone, reverse: mesh.IDNone})
		_ = m.AddSurfaceToVolume(vol, sid, mesh.SenseForward, false)
	}

	return m
}

func (m *Mesh) Volumes() []mesh.ID {
	ids := make([]mesh.ID, len(m.volumes))
	for i := range ids {
		ids[i] = mesh.ID(i)
	}
	return ids
}

func (m *Mesh) Surfaces() []mesh.ID {
	ids := make([]mesh.ID, len(m.surfaces))
	for i := range ids {
		ids[i] = mesh.ID(i)
	}
	return ids
}

func (m *Mesh) VolumeSurfaces(vID mesh.ID) []mesh.ID { return m.volumes[vID].surfaces }

func (m *Mesh) SurfaceFaces(s mesh.ID) []mesh.ID { return m.surfaces[s].faces }

func (m *Mesh) VolumeElements(vID mesh.ID) []mesh.ID { return m.volumes[vID].elements }

func (m *Mesh) FaceVertices(face mesh.ID) [3]vec3.Vec {
	f := m.faces[face]
	return [3]vec3.Vec{m.verts[f.verts[0]], m.verts[f.verts[1]], m.verts[f.verts[2]]}
}

func (m *Mesh) ElementVertices(elem mesh.ID) [4]vec3.Vec {
	e := m.tets[elem]
	return [4]vec3.Vec{m.verts[e.verts[0]], m.verts[e.verts[1]], m.verts[e.verts[2]], m.verts[e.verts[3]]}
}

func (m *Mesh) SurfaceSenses(s mesh.ID) (forward, reverse mesh.ID) {
	rec := m.surfaces[s]
	return rec.forward, rec.reverse
}

func (m *Mesh) SurfaceSense(s, vID mesh.ID) (mesh.Sense, error) {
	fwd, rev := m.SurfaceSenses(s)
	switch vID {
	case fwd:
		return mesh.SenseForward, nil
	case rev:
		return mesh.SenseReverse, nil
	default:
		return mesh.SenseUnset, &mesh.ErrNotParent{Volume: vID, Surface: s}
	}
}

func (m *Mesh) CreateVolume() mesh.ID {
	id := mesh.ID(len(m.volumes))
	m.volumes = append(m.volumes, volumeRec{})
	return id
}

func (m *Mesh) AddSurfaceToVolume(vID, s mesh.ID, sense mesh.Sense, overwrite bool) error {
	rec := &m.surfaces[s]
	switch sense {
	case mesh.SenseForward:
		if rec.forward != mesh.IDNone && rec.forward != vID && !overwrite {
			return &mesh.ErrSenseConflict{Volume: vID, Surface: s, Existing: mesh.SenseForward}
		}
		rec.forward = vID
	case mesh.SenseReverse:
		if rec.reverse != mesh.IDNone && rec.reverse != vID && !overwrite {
			return &mesh.ErrSenseConflict{Volume: vID, Surface: s, Existing: mesh.SenseReverse}
		}
		rec.reverse = vID
	}
	m.volumes[vID].surfaces = append(m.volumes[vID].surfaces, s)
	m.volumes[vID].senses = append(m.volumes[vID].senses, sense)
	return nil
}

func (m *Mesh) ImplicitComplement() mesh.ID    { return m.ipc }
func (m *Mesh) SetImplicitComplement(ipc mesh.ID) { m.ipc = ipc }
func (m *Mesh) Tag() string                    { return "mock" }

// faceIndexTriple returns the three vertex indices of tetrahedron t's face
// opposite local vertex i, in the canonical (sorted) order used to key
// adjacency: identical triples from two different tets mean those tets
// share that face.
func faceIndexTriple(t tetRec, i int) [3]int {
	var out [3]int
	n := 0
	for j := 0; j < 4; j++ {
		if j == i {
			continue
		}
		out[n] = t.verts[j]
		n++
	}
	if out[0] > out[1] {
		out[0], out[1] = out[1], out[0]
	}
	if out[1] > out[2] {
		out[1], out[2] = out[2], out[1]
	}
	if out[0] > out[1] {
		out[0], out[1] = out[1], out[0]
	}
	return out
}

// ensureAdjacency resolves, once per volume, the neighbor across each of
// its tetrahedra's four faces by matching canonicalized vertex-index
// triples: a triple shared by exactly two tets is an interior face, a
// triple owned by only one tet is a mesh boundary. This makes WalkElements
// generic over any tetrahedralization, not just the box fan built by
// NewBox.
func (m *Mesh) ensureAdjacency(vID mesh.ID) {
	if m.adjacency[vID] {
		return
	}
	m.adjacency[vID] = true

	type owner struct {
		tet  mesh.ID
		face int
	}
	byFace := map[[3]int][]owner{}
	for _, eid := range m.volumes[vID].elements {
		t := m.tets[eid]
		for f := 0; f < 4; f++ {
			key := faceIndexTriple(t, f)
			byFace[key] = append(byFace[key], owner{tet: eid, face: f})
		}
	}
	for _, owners := range byFace {
		if len(owners) != 2 {
			continue
		}
		a, b := owners[0], owners[1]
		m.tets[a.tet].neighbors[a.face] = b.tet
		m.tets[b.tet].neighbors[b.face] = a.tet
	}
}

func elementFaceTriangle(verts [4]vec3.Vec, i int) [3]vec3.Vec {
	var out [3]vec3.Vec
	n := 0
	for j := 0; j < 4; j++ {
		if j == i {
			continue
		}
		out[n] = verts[j]
		n++
	}
	return out
}

// WalkElements marches a ray through the tetrahedra of whatever volume
// owns the element `start`, returning one Segment per tetrahedron crossed
// until distRemaining is exhausted or the walk exits the meshed region.
func (m *Mesh) WalkElements(start mesh.ID, r, u vec3.Vec, distRemaining float64) []mesh.Segment {
	vID := m.elementVolume(start)
	if vID == mesh.IDNone {
		return nil
	}
	m.ensureAdjacency(vID)

	var segs []mesh.Segment
	cur := start
	pos := r
	dir := u.Normalize()

	for distRemaining > isect.PluckerZeroTol && cur != mesh.IDNone {
		t := m.tets[cur]
		verts := m.ElementVertices(cur)

		bestDist := math.Inf(1)
		bestFace := -1
		for f := 0; f < 4; f++ {
			tri := elementFaceTriangle(verts, f)
			q := isect.PluckerTriangle{
				Vertices:  tri,
				Origin:    pos,
				Direction: dir,
				Far:       math.Inf(1),
				HasNear:   true,
				Near:      isect.PluckerZeroTol,
			}
			if d, hit := isect.RayTriangle(q); hit && d < bestDist {
				bestDist, bestFace = d, f
			}
		}
		if bestFace < 0 {
			break
		}

		chord := bestDist
		ranOut := chord > distRemaining
		if ranOut {
			chord = distRemaining
		}
		segs = append(segs, mesh.Segment{Element: cur, Length: chord})
		distRemaining -= chord
		if ranOut {
			break
		}

		pos = pos.Add(dir.Scale(bestDist))
		cur = t.neighbors[bestFace]
	}
	return segs
}

// WalkElementsTo enumerates segments along the closed chord [from, to],
// assuming both endpoints lie within the same meshed volume as start.
func (m *Mesh) WalkElementsTo(start mesh.ID, from, to vec3.Vec) []mesh.Segment {
	delta := to.Sub(from)
	dist := delta.Length()
	if dist < vec3.MinRcpInput {
		return nil
	}
	return m.WalkElements(start, from, delta.Normalize(), dist)
}

func (m *Mesh) elementVolume(elem mesh.ID) mesh.ID {
	for vID, rec := range m.volumes {
		for _, e := range rec.elements {
			if e == elem {
				return mesh.ID(vID)
			}
		}
	}
	return mesh.IDNone
}

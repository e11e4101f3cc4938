// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/pshriwise/xdg-sub000/vec3"
)

// fakeAdapter is a minimal Adapter used only to exercise the free
// functions in this package without depending on meshmock (which imports
// mesh and would create an import cycle).
type fakeAdapter struct {
	verts    []vec3.Vec
	faces    [][3]int
	senses   map[ID][2]ID
	surfaces map[ID][]ID
	volumes  []ID
	ipc      ID
}

func newFakeAdapter() *fakeAdapter {
	return &fakeAdapter{
		verts: []vec3.Vec{
			vec3.New(0, 0, 0),
			vec3.New(1, 0, 0),
			vec3.New(0, 1, 0),
		},
		faces:    [][3]int{{0, 1, 2}},
		senses:   map[ID][2]ID{0: {0, IDNone}},
		surfaces: map[ID][]ID{0: {0}},
		volumes:  []ID{0},
		ipc:      IDNone,
	}
}

func (f *fakeAdapter) Volumes() []ID  { return f.volumes }
func (f *fakeAdapter) Surfaces() []ID { return []ID{0} }
func (f *fakeAdapter) VolumeSurfaces(v ID) []ID {
	return f.surfaces[v]
}
func (f *fakeAdapter) SurfaceFaces(s ID) []ID      { return []ID{0} }
func (f *fakeAdapter) VolumeElements(v ID) []ID    { return nil }
func (f *fakeAdapter) FaceVertices(face ID) [3]vec3.Vec {
	tri := f.faces[face]
	return [3]vec3.Vec{f.verts[tri[0]], f.verts[tri[1]], f.verts[tri[2]]}
}
func (f *fakeAdapter) ElementVertices(elem ID) [4]vec3.Vec { return [4]vec3.Vec{} }
func (f *fakeAdapter) SurfaceSenses(s ID) (ID, ID) {
	p := f.senses[s]
	return p[0], p[1]
}
func (f *fakeAdapter) SurfaceSense(s, v ID) (Sense, error) {
	fwd, rev := f.SurfaceSenses(s)
	switch v {
	case fwd:
		return SenseForward, nil
	case rev:
		return SenseReverse, nil
	default:
		return SenseUnset, &ErrNotParent{Volume: v, Surface: s}
	}
}
func (f *fakeAdapter) CreateVolume() ID {
	id := ID(len(f.volumes))
	f.volumes = append(f.volumes, id)
	return id
}
func (f *fakeAdapter) AddSurfaceToVolume(v, s ID, sense Sense, overwrite bool) error {
	p := f.senses[s]
	if sense == SenseForward {
		p[0] = v
	} else {
		p[1] = v
	}
	f.senses[s] = p
	f.surfaces[v] = append(f.surfaces[v], s)
	return nil
}
func (f *fakeAdapter) WalkElements(start ID, r, u vec3.Vec, dist float64) []Segment { return nil }
func (f *fakeAdapter) WalkElementsTo(start ID, from, to vec3.Vec) []Segment        { return nil }
func (f *fakeAdapter) ImplicitComplement() ID                                      { return f.ipc }
func (f *fakeAdapter) SetImplicitComplement(ipc ID)                                { f.ipc = ipc }
func (f *fakeAdapter) Tag() string                                                 { return "fake" }

func TestFaceNormalAndBoundingBox(t *testing.T) {
	a := newFakeAdapter()
	n := FaceNormal(a, 0)
	chk.Scalar(t, "nz", 1e-15, n.Z, 1)
	box := FaceBoundingBox(a, 0)
	chk.Scalar(t, "box.max.x", 1e-15, box.Max.X, 1)
}

func TestNextVolumeAndIPC(t *testing.T) {
	a := newFakeAdapter()
	if _, err := NextVolume(a, 5, 0); err == nil {
		t.Fatal("expected ErrNotParent for volume not bounding surface 0")
	}
	next, err := NextVolume(a, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if next != IDNone {
		t.Fatalf("expected reverse side of surface 0 to be IDNone, got %d", next)
	}

	ipc := CreateImplicitComplement(a)
	if !IsIPC(a, ipc) {
		t.Fatal("expected newly created volume to be the IPC")
	}
	fwd, rev := a.SurfaceSenses(0)
	if fwd != 0 || rev != ipc {
		t.Fatalf("expected surface 0 senses (0, ipc=%d), got (%d, %d)", ipc, fwd, rev)
	}
}

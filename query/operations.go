// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package query

import (
	"math"

	"github.com/pshriwise/xdg-sub000/isect"
	"github.com/pshriwise/xdg-sub000/mesh"
	"github.com/pshriwise/xdg-sub000/trace"
	"github.com/pshriwise/xdg-sub000/vec3"
)

// RayFire fires (origin, dir) through volume v's boundary, returning the
// distance to and surface ID of the nearest surviving crossing within
// (0, dMax]. If excl is non-nil the hit face's ID is appended to it, so a
// caller can pass the same slice back on the next call to suppress
// self-intersection at the previous hit point.
func (x *XDG) RayFire(v mesh.ID, origin, dir vec3.Vec, dMax float64, orientation *isect.Orientation, excl *[]mesh.ID) (dist float64, surface mesh.ID, hit bool) {
	filter := &trace.Filter{}
	if orientation != nil {
		filter.HasOrientation = true
		filter.Orientation = *orientation
	}
	if excl != nil {
		filter.Exclude = *excl
	}

	d, face, ok := x.driver.RayFire(v, origin, dir, dMax, filter)
	if excl != nil {
		*excl = filter.Exclude
	}
	if !ok {
		return math.Inf(1), mesh.IDNone, false
	}
	return d, x.surfaceOf(face), true
}

// PointInVolume reports whether p lies inside volume v, via the
// witness-ray trick: fire a ray with no orientation filter and test
// whether the nearest crossing is exiting (witness direction dotted
// with the sensed hit normal is positive).
func (x *XDG) PointInVolume(v mesh.ID, p vec3.Vec, dir *vec3.Vec) bool {
	if mesh.IsIPC(x.adapter, v) {
		for _, other := range x.adapter.Volumes() {
			if other == v {
				continue
			}
			if x.PointInVolume(other, p, dir) {
				return false
			}
		}
		return true
	}

	witness := defaultWitnessDirection
	if dir != nil {
		witness = dir.Normalize()
	}

	d, face, sense, ok := x.driver.RayFireSensed(v, p, witness, math.Inf(1), &trace.Filter{})
	_ = d
	if !ok {
		return false
	}
	n := mesh.FaceNormal(x.adapter, face).Normalize()
	if sense == mesh.SenseReverse {
		n = n.Scale(-1)
	}
	return witness.Dot(n) > 0
}

// Closest returns the distance from p to the nearest point on volume v's
// boundary, and the surface that point belongs to.
func (x *XDG) Closest(v mesh.ID, p vec3.Vec) (dist float64, surface mesh.ID, found bool) {
	d, face, ok := x.driver.Closest(v, p)
	if !ok {
		return 0, mesh.IDNone, false
	}
	return d, x.surfaceOf(face), true
}

// SurfaceNormal returns the outward normal at or near p on surface s. If
// excl has at least one entry, the last entry is treated as the
// responsible face and its normal is returned directly;
// otherwise a closest-point query against the surface's forward-parent
// volume locates the responsible face.
func (x *XDG) SurfaceNormal(s mesh.ID, p vec3.Vec, excl []mesh.ID) vec3.Vec {
	if len(excl) > 0 {
		face := excl[len(excl)-1]
		return mesh.FaceNormal(x.adapter, face).Normalize()
	}
	fwd, _ := x.adapter.SurfaceSenses(s)
	_, face, ok := x.driver.Closest(fwd, p)
	if !ok {
		return vec3.Vec{}
	}
	return mesh.FaceNormal(x.adapter, face).Normalize()
}

// FindVolume returns the first non-IPC volume containing p, or the IPC if
// none does.
func (x *XDG) FindVolume(p vec3.Vec, dir *vec3.Vec) mesh.ID {
	ipc := x.adapter.ImplicitComplement()
	for _, v := range x.adapter.Volumes() {
		if v == ipc {
			continue
		}
		if x.PointInVolume(v, p, dir) {
			return v
		}
	}
	return ipc
}

// FindElement locates the tetrahedron containing p using the global
// element tree, with no volume hint.
func (x *XDG) FindElement(p vec3.Vec) mesh.ID {
	return x.driver.FindElementGlobal(p)
}

// FindElementIn locates the tetrahedron of volume v containing p.
func (x *XDG) FindElementIn(v mesh.ID, p vec3.Vec) mesh.ID {
	return x.driver.PointInElement(v, p)
}

// MeasureVolume computes v's volume via the divergence theorem:
// (1/6) Σ sign · v0 · ((v1-v0) x (v2-v0)) over v's bounding triangles,
// sign = +1 for a FORWARD-sensed face and -1 for REVERSE.
func (x *XDG) MeasureVolume(v mesh.ID) float64 {
	sum := 0.0
	for _, s := range x.adapter.VolumeSurfaces(v) {
		sense, err := x.adapter.SurfaceSense(s, v)
		if err != nil {
			continue
		}
		sign := 1.0
		if sense == mesh.SenseReverse {
			sign = -1.0
		}
		for _, f := range x.adapter.SurfaceFaces(s) {
			tri := x.adapter.FaceVertices(f)
			sum += sign * tri[0].Dot(tri[1].Sub(tri[0]).Cross(tri[2].Sub(tri[0])))
		}
	}
	return sum / 6.0
}

// MeasureSurfaceArea returns surface s's total triangle area.
func (x *XDG) MeasureSurfaceArea(s mesh.ID) float64 {
	sum := 0.0
	for _, f := range x.adapter.SurfaceFaces(s) {
		tri := x.adapter.FaceVertices(f)
		sum += tri[1].Sub(tri[0]).Cross(tri[2].Sub(tri[0])).Length() / 2.0
	}
	return sum
}

// MeasureVolumeArea returns the sum of the areas of every surface
// bounding v.
func (x *XDG) MeasureVolumeArea(v mesh.ID) float64 {
	sum := 0.0
	for _, s := range x.adapter.VolumeSurfaces(v) {
		sum += x.MeasureSurfaceArea(s)
	}
	return sum
}

// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package trace implements the ray-tracer backend: it owns the per-volume
// and global BVHs built by package bvh and dispatches intersect/occluded/
// point-query operations through the hit-filter pipeline (orientation
// culling + primitive exclusion).
package trace

import "github.com/pshriwise/xdg-sub000/vec3"

// Ray is a dual-precision ray record: a single-precision and a
// double-precision copy of origin/direction/tnear/tfar, kept in sync
// through the setter methods rather than written directly. Package bvh
// traverses in float64 and Driver's queries take origin and direction as
// plain vectors, so no traversal in this module reads a Ray.
type Ray struct {
	orgF, dirF       [3]float32
	tnearF, tfarF    float32
	org, dir         vec3.Vec
	tnear, tfar      float64
}

// NewRay builds a ray from a double-precision origin/direction and an
// initial [tnear, tfar] window, populating both precision copies.
func NewRay(origin, dir vec3.Vec, tnear, tfar float64) *Ray {
	r := &Ray{}
	r.SetOrigin(origin)
	r.SetDirection(dir)
	r.SetNear(tnear)
	r.SetFar(tfar)
	return r
}

func (r *Ray) SetOrigin(o vec3.Vec) {
	r.org = o
	r.orgF = [3]float32{float32(o.X), float32(o.Y), float32(o.Z)}
}

func (r *Ray) SetDirection(d vec3.Vec) {
	r.dir = d
	r.dirF = [3]float32{float32(d.X), float32(d.Y), float32(d.Z)}
}

func (r *Ray) SetNear(t float64) {
	r.tnear = t
	r.tnearF = float32(t)
}

func (r *Ray) SetFar(t float64) {
	r.tfar = t
	r.tfarF = float32(t)
}

func (r *Ray) Origin() vec3.Vec    { return r.org }
func (r *Ray) Direction() vec3.Vec { return r.dir }
func (r *Ray) Near() float64       { return r.tnear }
func (r *Ray) Far() float64        { return r.tfar }

// OriginF32/DirectionF32 expose the single-precision copies a real
// Embree-style traversal core would read; the kernels in package isect
// never touch these, only Origin/Direction.
func (r *Ray) OriginF32() [3]float32    { return r.orgF }
func (r *Ray) DirectionF32() [3]float32 { return r.dirF }

// Hit records one intersection: Distance, FaceID, SurfaceID and Found,
// plus single-precision U/V barycentrics of the kind a hardware backend
// reports, written only through SetUV. Driver's queries return their
// results as plain values and do not fill a Hit.
type Hit struct {
	Distance    float64
	FaceID      int32
	SurfaceID   int32
	Found       bool
	u, v        float32
}

func (h *Hit) SetUV(u, v float32) { h.u, h.v = u, v }
func (h *Hit) UV() (float32, float32) { return h.u, h.v }

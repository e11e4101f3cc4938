// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package isect

import (
	"math"

	"github.com/pshriwise/xdg-sub000/vec3"
	"github.com/pshriwise/xdg-sub000/xlog"
)

// Orientation constrains which crossing direction a Plücker test accepts.
type Orientation int

const (
	// OrientationAny accepts either an entering or exiting crossing; all
	// three Plücker coordinates must share a sign (or be zero).
	OrientationAny Orientation = 0
	// OrientationExiting accepts only crossings whose hit normal points
	// with the ray direction (the ray is leaving a volume).
	OrientationExiting Orientation = 1
	// OrientationEntering accepts only crossings whose hit normal points
	// against the ray direction (the ray is entering a volume).
	OrientationEntering Orientation = -1
)

// PluckerTriangle is a query against the Plücker ray-triangle kernel.
type PluckerTriangle struct {
	Vertices    [3]vec3.Vec
	Origin      vec3.Vec
	Direction   vec3.Vec
	Far         float64  // inclusive upper distance limit; use math.Inf(1) for unbounded
	HasNear     bool     // whether Near is meaningful
	Near        float64  // exclusive lower distance limit when HasNear is true
	HasOrient   bool     // whether to apply an orientation-signed edge test
	Orientation Orientation
}

func edgeTest(a, b, raya, rayb vec3.Vec) float64 {
	var pip float64
	if vec3.Lower(a, b) {
		edge := b.Sub(a)
		edgeNormal := edge.Cross(a)
		pip = raya.Dot(edgeNormal) + rayb.Dot(edge)
	} else {
		edge := a.Sub(b)
		edgeNormal := edge.Cross(b)
		pip = raya.Dot(edgeNormal) + rayb.Dot(edge)
		pip = -pip
	}
	if math.Abs(pip) < PluckerZeroTol {
		pip = 0.0
	}
	return pip
}

// RayTriangle runs the Plücker ray-triangle intersection test described in
// It returns the hit distance and whether a hit occurred;
// coplanar rays, orientation mismatches and out-of-range distances all
// report hit=false rather than an error.
func RayTriangle(q PluckerTriangle) (dist float64, hit bool) {
	raya := q.Direction
	rayb := q.Direction.Cross(q.Origin)

	pip0 := edgeTest(q.Vertices[0], q.Vertices[1], raya, rayb)
	if q.HasOrient && float64(q.Orientation)*pip0 > 0 {
		return 0, false
	}

	pip1 := edgeTest(q.Vertices[1], q.Vertices[2], raya, rayb)
	if q.HasOrient {
		if float64(q.Orientation)*pip1 > 0 {
			return 0, false
		}
	} else if (pip0 > 0 && pip1 < 0) || (pip0 < 0 && pip1 > 0) {
		return 0, false
	}

	pip2 := edgeTest(q.Vertices[2], q.Vertices[0], raya, rayb)
	if q.HasOrient {
		if float64(q.Orientation)*pip2 > 0 {
			return 0, false
		}
	} else if (pip1 > 0 && pip2 < 0) || (pip1 < 0 && pip2 > 0) ||
		(pip0 > 0 && pip2 < 0) || (pip0 < 0 && pip2 > 0) {
		return 0, false
	}

	if pip0 == 0 && pip1 == 0 && pip2 == 0 {
		xlog.Warning("ray_triangle: coplanar ray against triangle, rejecting")
		return 0, false
	}

	sum := pip0 + pip1 + pip2
	invSum := 1.0 / sum

	intersection := q.Vertices[2].Scale(pip0 * invSum).
		Add(q.Vertices[0].Scale(pip1 * invSum)).
		Add(q.Vertices[1].Scale(pip2 * invSum))

	idx := q.Direction.MaxAbsAxis()
	t := (intersection.Component(idx) - q.Origin.Component(idx)) / q.Direction.Component(idx)

	switch {
	case !math.IsInf(q.Far, 1) && t > q.Far:
		return 0, false
	case q.HasNear && t <= q.Near:
		return 0, false
	case !q.HasNear && t <= 0:
		return 0, false
	}

	return t, true
}

// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package isect

import "github.com/pshriwise/xdg-sub000/vec3"

// Region names the 7 planar regions the MOAB/Eberly closest-point
// derivation splits a triangle's plane into.
type Region int

const (
	RegionZero Region = iota
	RegionOne
	RegionTwo
	RegionThree
	RegionFour
	RegionFive
	RegionSix
)

func determineRegion(s, t, det float64) Region {
	if s+t < det {
		switch {
		case s < 0 && t < 0:
			return RegionFour
		case s < 0:
			return RegionThree
		case t < 0:
			return RegionFive
		default:
			return RegionZero
		}
	}
	switch {
	case s < 0:
		return RegionTwo
	case t < 0:
		return RegionSix
	default:
		return RegionOne
	}
}

// ClosestPointOnTriangle returns the point of triangle verts nearest to p,
// following the 7-region classification from the Eberly/MOAB derivation:
// the interior region (zero) solves a 2x2 linear system directly, and each
// boundary region clamps to an edge or vertex of the triangle.
func ClosestPointOnTriangle(verts [3]vec3.Vec, p vec3.Vec) vec3.Vec {
	sv := verts[1].Sub(verts[0])
	tv := verts[2].Sub(verts[0])
	pv := verts[0].Sub(p)

	ss := sv.Dot(sv)
	st := sv.Dot(tv)
	tt := tv.Dot(tv)
	sp := sv.Dot(pv)
	tp := tv.Dot(pv)
	det := ss*tt - st*st

	s := st*tp - tt*sp
	t := st*sp - ss*tp

	region := determineRegion(s, t, det)

	switch region {
	case RegionZero:
		invDet := 1.0 / det
		s *= invDet
		t *= invDet
		return verts[0].Add(sv.Scale(s)).Add(tv.Scale(t))

	case RegionOne:
		num := tt + tp - st - sp
		if num <= 0 {
			return verts[2]
		}
		den := ss - 2*st + tt
		if num >= den {
			return verts[1]
		}
		q := num / den
		return verts[1].Scale(q).Add(verts[2].Scale(1 - q))

	case RegionTwo:
		s = st + sp
		t = tt + tp
		switch {
		case t > s:
			num := t - s
			den := ss - 2*st + tt
			if num > den {
				return verts[1]
			}
			q := num / den
			return verts[1].Scale(q).Add(verts[2].Scale(1 - q))
		case t <= 0:
			return verts[2]
		case tp >= 0:
			return verts[0]
		default:
			return verts[0].Sub(tv.Scale(tp / tt))
		}

	case RegionThree:
		switch {
		case tp >= 0:
			return verts[0]
		case -tp >= tt:
			return verts[2]
		default:
			return verts[0].Sub(tv.Scale(tp / tt))
		}

	case RegionFour:
		if sp < 0 {
			if -sp > ss {
				return verts[1]
			}
			return verts[0].Sub(sv.Scale(sp / ss))
		}
		if tp < 0 {
			if -tp > tt {
				return verts[2]
			}
			return verts[0].Sub(tv.Scale(tp / tt))
		}
		return verts[0]

	case RegionFive:
		switch {
		case sp >= 0:
			return verts[0]
		case -sp >= ss:
			return verts[1]
		default:
			return verts[0].Sub(sv.Scale(sp / ss))
		}

	case RegionSix:
		t = st + tp
		s = ss + sp
		switch {
		case s > t:
			num := s - t
			den := tt - 2*st + ss
			if num > den {
				return verts[2]
			}
			q := num / den
			return verts[1].Scale(1 - q).Add(verts[2].Scale(q))
		case s <= 0:
			return verts[1]
		case sp >= 0:
			return verts[0]
		default:
			return verts[0].Sub(sv.Scale(sp / ss))
		}
	}

	return verts[0]
}

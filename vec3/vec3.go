// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package vec3 implements the double-precision 3-vector and axis-aligned
// bounding box primitives shared by the mesh, intersection and
// acceleration-structure packages.
package vec3

import "math"

// MinRcpInput guards normalization of a near-zero-length vector against
// division by zero. Opaque and small; its exact magnitude is not
// load-bearing for any query result.
const MinRcpInput = 1e-18

// Vec is a position, direction or vertex in ℝ³.
type Vec struct {
	X, Y, Z float64
}

// New builds a Vec from three components.
func New(x, y, z float64) Vec { return Vec{x, y, z} }

// Add returns v + w.
func (v Vec) Add(w Vec) Vec { return Vec{v.X + w.X, v.Y + w.Y, v.Z + w.Z} }

// Sub returns v - w.
func (v Vec) Sub(w Vec) Vec { return Vec{v.X - w.X, v.Y - w.Y, v.Z - w.Z} }

// Scale returns v scaled by s.
func (v Vec) Scale(s float64) Vec { return Vec{v.X * s, v.Y * s, v.Z * s} }

// Dot returns the dot product of v and w.
func (v Vec) Dot(w Vec) float64 { return v.X*w.X + v.Y*w.Y + v.Z*w.Z }

// Cross returns v × w.
func (v Vec) Cross(w Vec) Vec {
	return Vec{
		v.Y*w.Z - v.Z*w.Y,
		v.Z*w.X - v.X*w.Z,
		v.X*w.Y - v.Y*w.X,
	}
}

// LengthSqr returns ‖v‖².
func (v Vec) LengthSqr() float64 { return v.Dot(v) }

// Length returns ‖v‖.
func (v Vec) Length() float64 { return math.Sqrt(v.LengthSqr()) }

// Normalize returns v scaled to unit length. A near-zero vector is scaled
// by 1/MinRcpInput instead of dividing by (near) zero.
func (v Vec) Normalize() Vec {
	len := v.Length()
	if len < MinRcpInput {
		len = MinRcpInput
	}
	return v.Scale(1.0 / len)
}

// Component returns the i-th component (0=x, 1=y, 2=z).
func (v Vec) Component(i int) float64 {
	switch i {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// MaxAbsAxis returns the index (0,1,2) of the component with the largest
// absolute value, used to pick a numerically stable projection axis.
func (v Vec) MaxAbsAxis() int {
	idx, max := 0, math.Abs(v.X)
	if a := math.Abs(v.Y); a > max {
		idx, max = 1, a
	}
	if a := math.Abs(v.Z); a > max {
		idx = 2
	}
	return idx
}

// ApproxEqual reports whether v and w differ by less than tol in every
// component.
func (v Vec) ApproxEqual(w Vec, tol float64) bool {
	return math.Abs(v.X-w.X) < tol && math.Abs(v.Y-w.Y) < tol && math.Abs(v.Z-w.Z) < tol
}

// Lower reports whether a is lexicographically lower than b; used by the
// Plücker kernel to canonicalize edge orientation.
func Lower(a, b Vec) bool {
	if a.X != b.X {
		return a.X < b.X
	}
	if a.Y != b.Y {
		return a.Y < b.Y
	}
	return a.Z < b.Z
}

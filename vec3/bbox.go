// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vec3

import "math"

// Box is an axis-aligned bounding box. An empty Box (the zero value is not
// valid for this purpose) is created with NewEmptyBox and grown with
// Update/Union.
type Box struct {
	Min, Max Vec
}

// NewEmptyBox returns a box with inverted extents, ready to be grown by
// Update/Union.
func NewEmptyBox() Box {
	return Box{
		Min: Vec{math.Inf(1), math.Inf(1), math.Inf(1)},
		Max: Vec{math.Inf(-1), math.Inf(-1), math.Inf(-1)},
	}
}

// BoxFromPoints returns the bounding box of a set of points.
func BoxFromPoints(pts []Vec) Box {
	b := NewEmptyBox()
	for _, p := range pts {
		b.UpdatePoint(p)
	}
	return b
}

// UpdatePoint grows the box to contain p.
func (b *Box) UpdatePoint(p Vec) {
	b.Min.X = math.Min(b.Min.X, p.X)
	b.Min.Y = math.Min(b.Min.Y, p.Y)
	b.Min.Z = math.Min(b.Min.Z, p.Z)
	b.Max.X = math.Max(b.Max.X, p.X)
	b.Max.Y = math.Max(b.Max.Y, p.Y)
	b.Max.Z = math.Max(b.Max.Z, p.Z)
}

// Update grows the box to contain other.
func (b *Box) Update(other Box) {
	b.UpdatePoint(other.Min)
	b.UpdatePoint(other.Max)
}

// Union returns the smallest box containing both a and b.
func Union(a, b Box) Box {
	u := a
	u.Update(b)
	return u
}

// Contains reports whether p lies within the box (inclusive).
func (b Box) Contains(p Vec) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Diagonal returns the length of the box's diagonal.
func (b Box) Diagonal() float64 {
	return b.Max.Sub(b.Min).Length()
}

// Dilate returns a copy of the box expanded by d in every direction.
func (b Box) Dilate(d float64) Box {
	return Box{
		Min: Vec{b.Min.X - d, b.Min.Y - d, b.Min.Z - d},
		Max: Vec{b.Max.X + d, b.Max.Y + d, b.Max.Z + d},
	}
}

// Center returns the box's centroid.
func (b Box) Center() Vec {
	return b.Min.Add(b.Max).Scale(0.5)
}

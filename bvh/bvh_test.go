// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bvh

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/pshriwise/xdg-sub000/mesh"
	"github.com/pshriwise/xdg-sub000/vec3"
)

func boxAt(center float64) vec3.Box {
	return vec3.BoxFromPoints([]vec3.Vec{
		vec3.New(center-0.1, -0.1, -0.1),
		vec3.New(center+0.1, 0.1, 0.1),
	})
}

func TestBuildAndRayQueryFindsNearest(t *testing.T) {
	chk.PrintTitle("BuildAndRayQueryFindsNearest")
	prims := []PrimitiveRef{
		{ID: 0, Sense: mesh.SenseForward},
		{ID: 1, Sense: mesh.SenseForward},
		{ID: 2, Sense: mesh.SenseForward},
	}
	boxes := []vec3.Box{boxAt(1), boxAt(5), boxAt(9)}
	tree := Build(prims, boxes, 0)

	var hitID mesh.ID = mesh.IDNone
	tree.RayQuery(vec3.New(0, 0, 0), vec3.New(1, 0, 0), 0, math.Inf(1), func(ref PrimitiveRef) (float64, bool) {
		if hitID == mesh.IDNone || ref.ID < hitID {
			hitID = ref.ID
		}
		return math.Inf(1), false
	})
	if hitID != 0 {
		t.Fatalf("expected nearest box (id 0) visited, got %d", hitID)
	}
}

func TestRadiusQueryShrinks(t *testing.T) {
	chk.PrintTitle("RadiusQueryShrinks")
	// Five boxes split into a near leaf {2, 3} and a far leaf {8, 9, 10}.
	// The far leaf is 7.9 away: inside the initial radius of 10, outside
	// the 2.5 the near leaf's visits tighten it to.
	prims := []PrimitiveRef{{ID: 0}, {ID: 1}, {ID: 2}, {ID: 3}, {ID: 4}}
	boxes := []vec3.Box{boxAt(2), boxAt(3), boxAt(8), boxAt(9), boxAt(10)}
	tree := Build(prims, boxes, 0)

	visited := 0
	tree.RadiusQuery(vec3.New(0, 0, 0), 10, func(ref PrimitiveRef) float64 {
		visited++
		return 2.5
	})
	if visited != 2 {
		t.Fatalf("expected only the near leaf's two boxes to be visited once the radius tightened, got %d visits", visited)
	}
}

func TestDilationFloor(t *testing.T) {
	chk.PrintTitle("DilationFloor")
	d := Dilation(1.0)
	chk.Scalar(t, "dilation floor", 1e-15, d, 1e-3)
}

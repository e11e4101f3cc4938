// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package isect

import (
	"math"
	"math/rand"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/pshriwise/xdg-sub000/vec3"
)

func unitTriangle() [3]vec3.Vec {
	return [3]vec3.Vec{
		vec3.New(0, 0, 0),
		vec3.New(1, 0, 0),
		vec3.New(0, 1, 0),
	}
}

func TestRayTriangleHitsCenter(t *testing.T) {
	chk.PrintTitle("RayTriangleHitsCenter")
	tri := unitTriangle()
	q := PluckerTriangle{
		Vertices:  tri,
		Origin:    vec3.New(0.2, 0.2, 1),
		Direction: vec3.New(0, 0, -1),
		Far:       math.Inf(1),
	}
	dist, hit := RayTriangle(q)
	if !hit {
		t.Fatal("expected a hit through the triangle interior")
	}
	chk.Scalar(t, "dist", 1e-12, dist, 1)
}

func TestRayTriangleMissesOutside(t *testing.T) {
	chk.PrintTitle("RayTriangleMissesOutside")
	tri := unitTriangle()
	q := PluckerTriangle{
		Vertices:  tri,
		Origin:    vec3.New(5, 5, 1),
		Direction: vec3.New(0, 0, -1),
		Far:       math.Inf(1),
	}
	if _, hit := RayTriangle(q); hit {
		t.Fatal("expected no hit outside the triangle footprint")
	}
}

func TestRayTriangleOrientationFilter(t *testing.T) {
	chk.PrintTitle("RayTriangleOrientationFilter")
	tri := unitTriangle() // normal = +Z
	base := PluckerTriangle{
		Vertices:  tri,
		Origin:    vec3.New(0.2, 0.2, 1),
		Direction: vec3.New(0, 0, -1), // travelling -Z, against the normal: entering
		Far:       math.Inf(1),
	}
	enter := base
	enter.HasOrient = true
	enter.Orientation = OrientationEntering
	if _, hit := RayTriangle(enter); !hit {
		t.Fatal("expected entering-filtered hit from above")
	}

	exit := base
	exit.HasOrient = true
	exit.Orientation = OrientationExiting
	if _, hit := RayTriangle(exit); hit {
		t.Fatal("expected exiting filter to reject an entering crossing")
	}
}

func TestTetContainment(t *testing.T) {
	chk.PrintTitle("TetContainment")
	tet := [4]vec3.Vec{
		vec3.New(0, 0, 0),
		vec3.New(1, 0, 0),
		vec3.New(0, 1, 0),
		vec3.New(0, 0, 1),
	}
	if !TetContainment(tet, vec3.New(0.1, 0.1, 0.1)) {
		t.Fatal("expected centroid-ish point to be contained")
	}
	if TetContainment(tet, vec3.New(2, 2, 2)) {
		t.Fatal("expected far point to be rejected")
	}
}

func TestTetBarycentricSumsToOne(t *testing.T) {
	chk.PrintTitle("TetBarycentricSumsToOne")
	tet := [4]vec3.Vec{
		vec3.New(0, 0, 0),
		vec3.New(2, 0, 0),
		vec3.New(0, 3, 0),
		vec3.New(0, 0, 4),
	}
	p := vec3.New(0.3, 0.4, 0.5)
	lambda, ok := TetBarycentric(tet, p)
	if !ok {
		t.Fatal("expected non-degenerate tetrahedron solve")
	}
	sum := lambda[0] + lambda[1] + lambda[2] + lambda[3]
	chk.Scalar(t, "barycentric sum", 1e-9, sum, 1)
}

func TestClosestPointOnTriangleCorners(t *testing.T) {
	chk.PrintTitle("ClosestPointOnTriangleCorners")
	tri := unitTriangle()
	cp := ClosestPointOnTriangle(tri, vec3.New(-1, -1, 0))
	chk.Vector(t, "closest to corner", 1e-12, []float64{cp.X, cp.Y, cp.Z}, []float64{0, 0, 0})
}

func TestClosestPointOnTriangleInterior(t *testing.T) {
	chk.PrintTitle("ClosestPointOnTriangleInterior")
	tri := unitTriangle()
	p := vec3.New(0.25, 0.25, 3)
	cp := ClosestPointOnTriangle(tri, p)
	chk.Vector(t, "closest stays in-plane", 1e-12, []float64{cp.X, cp.Y, cp.Z}, []float64{0.25, 0.25, 0})
}

// TestClosestPointIdempotent checks the idempotence property:
// projecting an already-on-triangle point should return that same point,
// across a fixed-seed sweep of random in-triangle barycentric samples.
func TestClosestPointIdempotent(t *testing.T) {
	chk.PrintTitle("ClosestPointIdempotent")
	tri := [3]vec3.Vec{
		vec3.New(0, 0, 0),
		vec3.New(3, 0, 1),
		vec3.New(0, 4, -1),
	}
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		a := rng.Float64()
		b := rng.Float64() * (1 - a)
		c := 1 - a - b
		p := tri[0].Scale(a).Add(tri[1].Scale(b)).Add(tri[2].Scale(c))
		cp := ClosestPointOnTriangle(tri, p)
		if !cp.ApproxEqual(p, 1e-9) {
			t.Fatalf("iteration %d: expected idempotent projection, got %v want %v", i, cp, p)
		}
	}
}

// TestRayTriangleRoundTrip fires a ray from a random in-triangle point back
// along a perpendicular offset and checks the reported hit distance matches
// the offset distance.
func TestRayTriangleRoundTrip(t *testing.T) {
	chk.PrintTitle("RayTriangleRoundTrip")
	tri := unitTriangle()
	normal := tri[1].Sub(tri[0]).Cross(tri[2].Sub(tri[0])).Normalize()
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 100; i++ {
		a := rng.Float64()
		b := rng.Float64() * (1 - a)
		c := 1 - a - b
		target := tri[0].Scale(a).Add(tri[1].Scale(b)).Add(tri[2].Scale(c))
		offset := 2.5
		origin := target.Add(normal.Scale(offset))
		q := PluckerTriangle{
			Vertices:  tri,
			Origin:    origin,
			Direction: normal.Scale(-1),
			Far:       math.Inf(1),
		}
		dist, hit := RayTriangle(q)
		if !hit {
			t.Fatalf("iteration %d: expected round-trip hit", i)
		}
		chk.Scalar(t, "round-trip distance", 1e-9, dist, offset)
	}
}

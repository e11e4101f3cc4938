// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package isect

import (
	"github.com/cpmech/gosl/la"

	"github.com/pshriwise/xdg-sub000/vec3"
	"github.com/pshriwise/xdg-sub000/xlog"
)

// tetMinDet mirrors shp.MINDET: below this determinant the tetrahedron is
// degenerate and containment is reported false rather than risking a
// division blow-up inside la.MatInv.
const tetMinDet = 1.0e-14

// TetContainment reports whether point p lies within the (possibly
// degenerate) tetrahedron verts, using the same barycentric linear solve
// an isoparametric-element solver uses to invert its Jacobian: build
// the edge matrix T = [v1-v0 | v2-v0 | v3-v0], solve T·λ = p - v0, and test
// that all three solved coordinates plus their complement lie in [0,1].
func TetContainment(verts [4]vec3.Vec, p vec3.Vec) bool {
	t := [][]float64{
		{verts[1].X - verts[0].X, verts[2].X - verts[0].X, verts[3].X - verts[0].X},
		{verts[1].Y - verts[0].Y, verts[2].Y - verts[0].Y, verts[3].Y - verts[0].Y},
		{verts[1].Z - verts[0].Z, verts[2].Z - verts[0].Z, verts[3].Z - verts[0].Z},
	}
	tinv := [][]float64{{0, 0, 0}, {0, 0, 0}, {0, 0, 0}}
	det, err := la.MatInv(tinv, t, tetMinDet)
	if err != nil || det == 0 {
		xlog.Warning("tet_containment: degenerate tetrahedron, rejecting")
		return false
	}

	rhs := []float64{p.X - verts[0].X, p.Y - verts[0].Y, p.Z - verts[0].Z}
	lambda := make([]float64, 3)
	la.MatVecMul(lambda, 1.0, tinv, rhs)

	l1, l2, l3 := lambda[0], lambda[1], lambda[2]
	l0 := 1.0 - l1 - l2 - l3

	const tol = -1e-10
	return l0 >= tol && l1 >= tol && l2 >= tol && l3 >= tol
}

// TetBarycentric returns the barycentric coordinates (λ0, λ1, λ2, λ3) of p
// with respect to the tetrahedron verts, without the containment clamp
// TetContainment applies. The second return is false if the tetrahedron is
// degenerate (zero volume).
func TetBarycentric(verts [4]vec3.Vec, p vec3.Vec) (lambda [4]float64, ok bool) {
	t := [][]float64{
		{verts[1].X - verts[0].X, verts[2].X - verts[0].X, verts[3].X - verts[0].X},
		{verts[1].Y - verts[0].Y, verts[2].Y - verts[0].Y, verts[3].Y - verts[0].Y},
		{verts[1].Z - verts[0].Z, verts[2].Z - verts[0].Z, verts[3].Z - verts[0].Z},
	}
	tinv := [][]float64{{0, 0, 0}, {0, 0, 0}, {0, 0, 0}}
	det, err := la.MatInv(tinv, t, tetMinDet)
	if err != nil || det == 0 {
		xlog.Warning("tet_barycentric: degenerate tetrahedron, rejecting")
		return lambda, false
	}

	rhs := []float64{p.X - verts[0].X, p.Y - verts[0].Y, p.Z - verts[0].Z}
	sol := make([]float64, 3)
	la.MatVecMul(sol, 1.0, tinv, rhs)

	lambda[1], lambda[2], lambda[3] = sol[0], sol[1], sol[2]
	lambda[0] = 1.0 - sol[0] - sol[1] - sol[2]
	return lambda, true
}

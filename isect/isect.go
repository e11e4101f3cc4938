// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package isect implements the primitive-intersection kernels: the
// Plücker ray-triangle test, tetrahedron containment via barycentric
// inversion, and point-triangle closest-point via 7-region classification.
// Every function here is a pure geometric predicate; none of them own or
// traverse an acceleration structure.
package isect

// PluckerZeroTol is the tolerance below which a Plücker coordinate is
// clamped to exactly zero.
const PluckerZeroTol = 1e-6

// NumericalPrecision is the engine-wide floor used when computing
// acceleration-structure box dilation.
const NumericalPrecision = 1e-3

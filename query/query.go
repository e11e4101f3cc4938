// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package query composes the mesh adapter, acceleration structures and
// ray-tracer backend into XDG's public query engine, plus the
// topology/implicit-complement helpers.
package query

import (
	"github.com/pshriwise/xdg-sub000/mesh"
	"github.com/pshriwise/xdg-sub000/trace"
	"github.com/pshriwise/xdg-sub000/vec3"
)

// XDG is the driver-facing façade a caller constructs once per loaded
// mesh: New wraps an adapter, PrepareRaytracer builds every acceleration
// structure, and the remaining methods answer the four questions listed
// against one mesh.Adapter.
type XDG struct {
	adapter mesh.Adapter
	driver  *trace.Driver

	faceSurface map[mesh.ID]mesh.ID
	ready       bool
}

// New wraps a mesh adapter; call PrepareRaytracer before issuing any
// query.
func New(adapter mesh.Adapter) *XDG {
	return &XDG{adapter: adapter, driver: trace.NewDriver()}
}

// PrepareRaytracer builds the per-volume and global acceleration
// structures and the face→surface lookup table queries need to
// translate a hit face back into the surface API callers expect.
func (x *XDG) PrepareRaytracer() {
	x.driver.Register(x.adapter)

	x.faceSurface = map[mesh.ID]mesh.ID{}
	for _, s := range x.adapter.Surfaces() {
		for _, f := range x.adapter.SurfaceFaces(s) {
			x.faceSurface[f] = s
		}
	}
	x.ready = true
}

// Adapter returns the underlying mesh adapter.
func (x *XDG) Adapter() mesh.Adapter { return x.adapter }

func (x *XDG) surfaceOf(face mesh.ID) mesh.ID {
	if s, ok := x.faceSurface[face]; ok {
		return s
	}
	return mesh.IDNone
}

// defaultWitnessDirection is the fixed, no-coordinate-axis-aligned
// direction point_in_volume fires along when the caller doesn't supply
// one.
var defaultWitnessDirection = vec3.New(0.6123724356957945, 0.7071067811865476, 0.35355339059327373).Normalize()

// CreateImplicitComplement synthesizes the catch-all outer volume and,
// when the adapter supports mesh.PropertyAdapter, records its material
// as "void".
func (x *XDG) CreateImplicitComplement() mesh.ID {
	ipc := mesh.CreateImplicitComplement(x.adapter)
	if pa, ok := x.adapter.(mesh.PropertyAdapter); ok {
		pa.SetProperty(ipc, mesh.VoidMaterial)
	}
	return ipc
}

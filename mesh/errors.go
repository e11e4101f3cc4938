// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import "fmt"

// ErrNotParent is returned when a volume is asked to cross a surface it
// does not bound.
type ErrNotParent struct {
	Volume, Surface ID
}

func (e *ErrNotParent) Error() string {
	return fmt.Sprintf("mesh: volume %d is not a parent of surface %d", e.Volume, e.Surface)
}

// ErrSenseConflict is returned when a sense assignment would silently
// overwrite an existing one without the caller opting in via overwrite=true.
type ErrSenseConflict struct {
	Volume, Surface ID
	Existing        Sense
}

func (e *ErrSenseConflict) Error() string {
	return fmt.Sprintf("mesh: surface %d already has sense %s assigned for volume %d; pass overwrite=true to replace it",
		e.Surface, e.Existing, e.Volume)
}

// ErrDegenerateSurface is returned at registration when a surface has no
// parent volume on either side.
type ErrDegenerateSurface struct {
	Surface ID
}

func (e *ErrDegenerateSurface) Error() string {
	return fmt.Sprintf("mesh: surface %d has no forward or reverse parent volume", e.Surface)
}

// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package query

import (
	"github.com/pshriwise/xdg-sub000/isect"
	"github.com/pshriwise/xdg-sub000/mesh"
	"github.com/pshriwise/xdg-sub000/vec3"
)

const segmentEpsilon = 1e-9

// Segments produces the (element, chord-length) pairs covering the closed
// chord [start, end] within volume v's tetrahedral mesh: locate the
// starting element, walk it as far as adjacency and remaining distance
// allow, and relocate whenever the walk stops short of the chord's end.
func (x *XDG) Segments(v mesh.ID, start, end vec3.Vec) []mesh.Segment {
	delta := end.Sub(start)
	remaining := delta.Length()
	if remaining < vec3.MinRcpInput {
		return nil
	}
	u := delta.Normalize()
	r := start

	var out []mesh.Segment
	for remaining > segmentEpsilon {
		elem := x.FindElementIn(v, r)
		if elem == mesh.IDNone {
			entering := isect.OrientationEntering
			d, _, hit := x.RayFire(v, r, u, remaining, &entering, nil)
			if !hit {
				break
			}
			r = r.Add(u.Scale(d))
			remaining -= d
			continue
		}

		segs := x.adapter.WalkElements(elem, r, u, remaining)
		if len(segs) == 0 {
			break
		}
		out = append(out, segs...)

		sum := 0.0
		for _, s := range segs {
			sum += s.Length
		}
		r = r.Add(u.Scale(sum))
		remaining -= sum
	}
	return out
}

// SegmentsMultiVolume is the volume-hint-free entry point: the track
// starts in the implicit complement, ray-fires through it to locate each
// meshed-volume entry, segments that volume, and returns to the
// complement to find the next one, until the chord is exhausted or the
// track leaves the model.
func (x *XDG) SegmentsMultiVolume(start, end vec3.Vec) []mesh.Segment {
	ipc := x.adapter.ImplicitComplement()
	delta := end.Sub(start)
	remaining := delta.Length()
	if remaining < vec3.MinRcpInput {
		return nil
	}
	u := delta.Normalize()
	r := start
	v := ipc

	var out []mesh.Segment
	for remaining > segmentEpsilon {
		if v == ipc || mesh.NumVolumeElements(x.adapter, v) == 0 {
			d, _, hit := x.RayFire(ipc, r, u, remaining, nil, nil)
			if !hit {
				break
			}
			r = r.Add(u.Scale(d))
			remaining -= d
			v = x.FindVolume(r, &u)
			continue
		}

		segs := x.Segments(v, r, r.Add(u.Scale(remaining)))
		if len(segs) == 0 {
			break
		}
		out = append(out, segs...)

		sum := 0.0
		for _, s := range segs {
			sum += s.Length
		}
		r = r.Add(u.Scale(sum))
		remaining -= sum
		v = ipc
	}
	return out
}

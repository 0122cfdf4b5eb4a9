// Copyright ©2024 The Delaunay Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package curve computes Hilbert-curve orderings of point sets so that an
// incremental geometric algorithm can insert spatially nearby points close
// together in time, keeping point-location walks short. The curve
// arithmetic is the Gray-code construction long used for integer grids: a
// fixed per-level rotation/reflection table maps grid coordinates to a
// scalar distance along the curve.
package curve

import (
	"sort"

	"github.com/gonum-community/delaunay/spatial/r2"
	"github.com/gonum-community/delaunay/spatial/r3"
)

// gridOrder is the number of bits of resolution per axis used to quantize
// a bounding box onto the integer grid the curve walks. 2D keys use
// 2*gridOrder bits and 3D keys use 3*gridOrder bits, both well under 64.
const gridOrder = 20

// Hilbert2D is a 2-dimensional Hilbert curve over a (1<<Order)×(1<<Order)
// integer grid.
type Hilbert2D struct{ Order int }

func (h Hilbert2D) rot(n int, v []int, d int) {
	switch d {
	case 0:
		v[0], v[1] = v[1], v[0]
	case 3:
		v[0], v[1] = (1<<n-1)-v[1], (1<<n-1)-v[0]
	}
}

// Curve returns the curve coordinate of v. The rotation/reflection steps
// work on a copy, so the caller's v is not modified.
func (h Hilbert2D) Curve(v [2]int) uint64 {
	var d uint64
	p := v
	for n := h.Order - 1; n >= 0; n-- {
		rx := (p[0] >> n) & 1
		ry := (p[1] >> n) & 1
		rd := ry<<1 | (ry ^ rx)
		d += uint64(rd) << (2 * n)
		h.rot(h.Order, p[:], rd)
	}
	return d
}

// Hilbert3D is a 3-dimensional Hilbert curve over a (1<<Order)^3 integer
// grid, generalizing Hilbert2D's Gray-code construction to octants.
type Hilbert3D struct{ Order int }

func (h Hilbert3D) rot(n int, v []int, d int) {
	mask := 1<<n - 1
	switch d {
	case 0:
		v[1], v[2] = v[2], v[1]
		v[0], v[2] = v[2], v[0]
	case 1, 2:
		v[0], v[2] = v[2], v[0]
		v[1], v[2] = v[2], v[1]
	case 3, 4:
		v[0], v[1] = mask-v[1], mask-v[0]
	case 5, 6:
		v[0], v[2] = mask-v[2], mask-v[0]
		v[1], v[2] = mask-v[2], mask-v[1]
	case 7:
		v[1], v[2] = mask-v[2], mask-v[1]
		v[0], v[2] = mask-v[2], mask-v[0]
	}
}

// Curve returns the curve coordinate of v.
func (h Hilbert3D) Curve(v [3]int) uint64 {
	var d uint64
	p := v
	for n := h.Order - 1; n >= 0; n-- {
		rx := (p[0] >> n) & 1
		ry := (p[1] >> n) & 1
		rz := (p[2] >> n) & 1
		rd := rz<<2 | (rz^ry)<<1 | (rz ^ ry ^ rx)
		d += uint64(rd) << (3 * n)
		h.rot(h.Order, p[:], rd)
	}
	return d
}

// Order2D returns a permutation of indices approximating a Hilbert
// traversal of the points they reference. The input slice is not modified.
func Order2D(points []r2.Vec, indices []int) []int {
	if len(indices) == 0 {
		return nil
	}
	box := r2.BoundingBox(subset2D(points, indices))
	sizeX := box.Max.X - box.Min.X
	sizeY := box.Max.Y - box.Min.Y
	if sizeX == 0 {
		sizeX = 1
	}
	if sizeY == 0 {
		sizeY = 1
	}
	h := Hilbert2D{Order: gridOrder}
	grid := float64(int(1) << gridOrder)
	key := func(i int) uint64 {
		p := points[i]
		gx := int((p.X - box.Min.X) / sizeX * (grid - 1))
		gy := int((p.Y - box.Min.Y) / sizeY * (grid - 1))
		return h.Curve([2]int{clamp(gx, h.Order), clamp(gy, h.Order)})
	}
	out := append([]int(nil), indices...)
	keys := make([]uint64, len(out))
	for i, idx := range out {
		keys[i] = key(idx)
	}
	sort.Sort(&byKey{idx: out, key: keys})
	return out
}

// Order3D returns a permutation of indices approximating a Hilbert
// traversal of the points they reference. The input slice is not modified.
func Order3D(points []r3.Vec, indices []int) []int {
	if len(indices) == 0 {
		return nil
	}
	box := r3.BoundingBox(subset3D(points, indices))
	size := r3.Sub(box.Max, box.Min)
	if size.X == 0 {
		size.X = 1
	}
	if size.Y == 0 {
		size.Y = 1
	}
	if size.Z == 0 {
		size.Z = 1
	}
	h := Hilbert3D{Order: gridOrder}
	grid := float64(int(1) << gridOrder)
	key := func(i int) uint64 {
		p := points[i]
		gx := int((p.X - box.Min.X) / size.X * (grid - 1))
		gy := int((p.Y - box.Min.Y) / size.Y * (grid - 1))
		gz := int((p.Z - box.Min.Z) / size.Z * (grid - 1))
		return h.Curve([3]int{clamp(gx, h.Order), clamp(gy, h.Order), clamp(gz, h.Order)})
	}
	out := append([]int(nil), indices...)
	keys := make([]uint64, len(out))
	for i, idx := range out {
		keys[i] = key(idx)
	}
	sort.Sort(&byKey{idx: out, key: keys})
	return out
}

func clamp(v, order int) int {
	max := 1<<order - 1
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}

// subset2D gathers the points referenced by indices into a flat slice
// for r2.BoundingBox, which has no notion of an index set of its own.
func subset2D(points []r2.Vec, indices []int) []r2.Vec {
	out := make([]r2.Vec, len(indices))
	for i, idx := range indices {
		out[i] = points[idx]
	}
	return out
}

// subset3D is subset2D's 3D counterpart, for r3.BoundingBox.
func subset3D(points []r3.Vec, indices []int) []r3.Vec {
	out := make([]r3.Vec, len(indices))
	for i, idx := range indices {
		out[i] = points[idx]
	}
	return out
}

// byKey sorts idx by the parallel key slice, breaking ties on the index
// value itself so the result depends only on the set of indices, not on
// their incoming order.
type byKey struct {
	idx []int
	key []uint64
}

func (b *byKey) Len() int { return len(b.idx) }
func (b *byKey) Less(i, j int) bool {
	if b.key[i] != b.key[j] {
		return b.key[i] < b.key[j]
	}
	return b.idx[i] < b.idx[j]
}
func (b *byKey) Swap(i, j int) {
	b.idx[i], b.idx[j] = b.idx[j], b.idx[i]
	b.key[i], b.key[j] = b.key[j], b.key[i]
}

// Copyright ©2024 The Delaunay Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package delaunay

import "errors"

var (
	// ErrDegenerateInput indicates the input point set has no full
	// dimensional extent: all points are coincident or collinear in 2D,
	// or coplanar in 3D.
	ErrDegenerateInput = errors.New("delaunay: degenerate input, no full-dimensional mesh possible")

	// ErrCorruptMesh indicates an internal adjacency invariant was
	// violated. It signals a bug in the mesh rather than bad input.
	ErrCorruptMesh = errors.New("delaunay: corrupt mesh")

	// ErrNonFiniteInput indicates a point with a NaN or infinite
	// coordinate was passed to a driver's insertion API. Such points
	// have no defined position relative to the predicates the mesh
	// relies on and are rejected at ingress rather than inserted.
	ErrNonFiniteInput = errors.New("delaunay: point has a non-finite coordinate")

	// ErrNotLocated indicates point location failed: the visibility walk
	// gave up, or no simplex whose circumsphere contains the point being
	// inserted was found. Points outside the convex hull are located in
	// simplices incident to the Infinity node and do not cause it.
	ErrNotLocated = errors.New("delaunay: point could not be located in mesh")

	// ErrIndexOutOfRange indicates a triangle, half-edge, tetrahedron or
	// half-triangle index argument fell outside the bounds of the mesh.
	ErrIndexOutOfRange = errors.New("delaunay: index out of range")
)

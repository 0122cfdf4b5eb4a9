// Copyright ©2024 The Delaunay Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package delaunay computes Delaunay triangulations of planar point sets
// and Delaunay tetrahedralizations of spatial point sets, incrementally,
// by inserting points one at a time into a mesh that is kept in Delaunay
// form throughout.
//
// What:
//
//   - mesh2d and mesh3d hold the combinatorial mesh: a half-edge graph in
//     2D, a half-triangle graph in 3D, both addressed by flat index arrays
//     rather than pointers, plus a single sentinel Node that closes the
//     convex hull into a manifold.
//   - delaunay2d and delaunay3d drive incremental insertion: point
//     location by visibility walk, local repair by Lawson flips in 2D and
//     Bowyer-Watson cavity retriangulation in 3D.
//   - internal/predicate supplies exact-when-needed orientation and
//     in-circle/in-sphere sign tests so degenerate and near-degenerate
//     input never corrupts the mesh.
//   - internal/curve orders input points along a Hilbert curve before
//     insertion, which keeps the visibility walk short on large inputs.
//
// Errors:
//
//   - ErrDegenerateInput: every input point is coincident or collinear
//     (2D) / coplanar (3D), so no full-dimensional mesh can be built.
//   - ErrCorruptMesh: an internal consistency check failed; indicates a
//     bug rather than bad input.
//   - ErrNotLocated: a query point could not be located in the mesh.
//   - ErrIndexOutOfRange: a triangle, half-edge, tetrahedron or
//     half-triangle index argument fell outside the bounds of the mesh.
package delaunay

// Copyright ©2024 The Delaunay Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package r3 provides the 3D vector and bounding-box primitives used as the
// in-memory representation of input and query coordinates.
package r3

import "math"

// Vec is a point or displacement in space.
type Vec struct {
	X, Y, Z float64
}

// Sub returns the vector difference a-b.
func Sub(a, b Vec) Vec { return Vec{a.X - b.X, a.Y - b.Y, a.Z - b.Z} }

// Dot returns the dot product a·b.
func Dot(a, b Vec) float64 { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }

// IsFinite reports whether all components of v are finite.
func IsFinite(v Vec) bool {
	for _, c := range [3]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

func minElem(a, b Vec) Vec {
	return Vec{math.Min(a.X, b.X), math.Min(a.Y, b.Y), math.Min(a.Z, b.Z)}
}
func maxElem(a, b Vec) Vec {
	return Vec{math.Max(a.X, b.X), math.Max(a.Y, b.Y), math.Max(a.Z, b.Z)}
}

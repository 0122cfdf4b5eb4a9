// Copyright ©2024 The Delaunay Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package r2 provides the 2D vector and bounding-box primitives used as the
// in-memory representation of input and query coordinates.
package r2

import "math"

// Vec is a point or displacement in the plane.
type Vec struct {
	X, Y float64
}

// Sub returns the vector difference a-b.
func Sub(a, b Vec) Vec { return Vec{a.X - b.X, a.Y - b.Y} }

// Dot returns the dot product a·b.
func Dot(a, b Vec) float64 { return a.X*b.X + a.Y*b.Y }

// IsFinite reports whether both components of v are finite.
func IsFinite(v Vec) bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) &&
		!math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}

func minElem(a, b Vec) Vec { return Vec{math.Min(a.X, b.X), math.Min(a.Y, b.Y)} }
func maxElem(a, b Vec) Vec { return Vec{math.Max(a.X, b.X), math.Max(a.Y, b.Y)} }

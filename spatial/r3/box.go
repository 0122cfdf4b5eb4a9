// Copyright ©2024 The Delaunay Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package r3

// Box is an axis-aligned 3D bounding box. Well formed Boxes have
// Min components no greater than Max components.
type Box struct {
	Min, Max Vec
}

// BoundingBox returns the smallest Box containing every point in pts.
// BoundingBox panics if pts is empty.
func BoundingBox(pts []Vec) Box {
	b := Box{Min: pts[0], Max: pts[0]}
	for _, p := range pts[1:] {
		b.Min = minElem(b.Min, p)
		b.Max = maxElem(b.Max, p)
	}
	return b
}

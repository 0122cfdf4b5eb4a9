// Copyright ©2024 The Delaunay Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package delaunay

import "strconv"

// Node identifies a vertex of the mesh: either the index of one of the
// caller's input points, or the single sentinel Infinity node that closes
// the convex hull into a manifold so every half-edge (2D) or half-triangle
// (3D) has an opposite.
//
// The zero Node is Finite(0); use the Infinity variable for the sentinel
// and construct finite nodes with Finite.
type Node struct {
	index    int
	infinite bool
}

// Infinity is the sentinel node beyond the convex hull.
var Infinity = Node{infinite: true}

// Finite returns the Node for input point index i. i must be non-negative.
func Finite(i int) Node {
	if i < 0 {
		panic("delaunay: negative node index")
	}
	return Node{index: i}
}

// IsInfinite reports whether n is the Infinity sentinel.
func (n Node) IsInfinite() bool { return n.infinite }

// Index returns the input point index of n and true, or (0, false) if n
// is Infinity.
func (n Node) Index() (int, bool) {
	if n.infinite {
		return 0, false
	}
	return n.index, true
}

// Equal reports whether n and m refer to the same node.
func (n Node) Equal(m Node) bool {
	return n.infinite == m.infinite && (n.infinite || n.index == m.index)
}

// String returns "inf" for Infinity, and the decimal index otherwise.
func (n Node) String() string {
	if n.infinite {
		return "inf"
	}
	return strconv.Itoa(n.index)
}

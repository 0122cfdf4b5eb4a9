// Copyright ©2024 The Delaunay Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh2d

import (
	"fmt"

	"github.com/gonum-community/delaunay"
)

// Triangle is a cursor onto one triangle of a Mesh.
type Triangle struct {
	m   *Mesh
	ind int
}

// Index returns the triangle's index.
func (t Triangle) Index() int { return t.ind }

// HalfEdges returns the three half-edges bounding t, in order.
func (t Triangle) HalfEdges() [3]HalfEdge {
	base := t.ind * 3
	return [3]HalfEdge{{t.m, base}, {t.m, base + 1}, {t.m, base + 2}}
}

// Nodes returns the three nodes of t, in order.
func (t Triangle) Nodes() [3]delaunay.Node {
	base := t.ind * 3
	return [3]delaunay.Node{
		t.m.firstNode[base],
		t.m.firstNode[base+1],
		t.m.firstNode[base+2],
	}
}

// ContainsInfinity reports whether one of t's nodes is the Infinity node.
func (t Triangle) ContainsInfinity() bool {
	for _, n := range t.Nodes() {
		if n.IsInfinite() {
			return true
		}
	}
	return false
}

// String implements fmt.Stringer.
func (t Triangle) String() string {
	n := t.Nodes()
	return fmt.Sprintf("face %d: %s -> %s -> %s", t.ind, n[0], n[1], n[2])
}

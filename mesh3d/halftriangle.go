// Copyright ©2024 The Delaunay Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh3d

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/gonum-community/delaunay"
)

// HalfTriangle is a cursor onto one oriented triangular face of a
// tetrahedron.
type HalfTriangle struct {
	m   *Mesh
	ind int
}

// Index returns the half-triangle's flat index.
func (t HalfTriangle) Index() int { return t.ind }

// Tetrahedron returns the tetrahedron t bounds.
func (t HalfTriangle) Tetrahedron() Tetrahedron { return Tetrahedron{m: t.m, ind: t.ind >> 2} }

// HalfEdges returns the three half-edges bounding t, in order.
func (t HalfTriangle) HalfEdges() [3]HalfEdge {
	return [3]HalfEdge{
		{m: t.m, indTri: t.ind, indHalfedge: 0},
		{m: t.m, indTri: t.ind, indHalfedge: 1},
		{m: t.m, indTri: t.ind, indHalfedge: 2},
	}
}

// Nodes returns t's three nodes, in order.
func (t HalfTriangle) Nodes() [3]delaunay.Node {
	mod4 := t.ind % 4
	sub := triangleSubindices[mod4]
	base := t.ind - mod4
	return [3]delaunay.Node{t.m.tetNodes[base+sub[0]], t.m.tetNodes[base+sub[1]], t.m.tetNodes[base+sub[2]]}
}

// OppositeNode returns the fourth vertex of t's tetrahedron, the one not
// on t.
func (t HalfTriangle) OppositeNode() delaunay.Node { return t.m.tetNodes[t.ind] }

// Opposite returns the half-triangle on the neighboring tetrahedron that
// shares t's face.
func (t HalfTriangle) Opposite() HalfTriangle {
	return HalfTriangle{m: t.m, ind: t.m.opposite[t.ind]}
}

// ContainsInfinity reports whether one of t's nodes is the Infinity node.
func (t HalfTriangle) ContainsInfinity() bool {
	for _, n := range t.Nodes() {
		if n.IsInfinite() {
			return true
		}
	}
	return false
}

func (t HalfTriangle) valid(log *zap.SugaredLogger) bool {
	n := t.Nodes()
	no := t.Opposite().Nodes()

	switch {
	case n[0].Equal(no[0]) && n[1].Equal(no[2]) && n[2].Equal(no[1]):
	case n[0].Equal(no[2]) && n[1].Equal(no[1]) && n[2].Equal(no[0]):
	case n[0].Equal(no[1]) && n[1].Equal(no[0]) && n[2].Equal(no[2]):
	default:
		log.Errorf("%s: wrong opposite half-triangle", t)
		log.Errorf("%s", t.Opposite())
		return false
	}
	return true
}

// String implements fmt.Stringer.
func (t HalfTriangle) String() string {
	n := t.Nodes()
	return fmt.Sprintf("triangle %d: %s -> %s -> %s", t.ind, n[0], n[1], n[2])
}

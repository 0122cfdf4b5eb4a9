// Copyright ©2024 The Delaunay Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh3d

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/gonum-community/delaunay"
)

// HalfEdge is a cursor onto one oriented edge of a Mesh half-triangle.
type HalfEdge struct {
	m           *Mesh
	indTri      int
	indHalfedge int
}

// TriangleSubind returns the edge's local index (0, 1 or 2) within its
// triangle.
func (h HalfEdge) TriangleSubind() int { return h.indHalfedge }

// FirstNode returns the node the half-edge points away from.
func (h HalfEdge) FirstNode() delaunay.Node {
	mod4 := h.indTri % 4
	sub := triangleSubindices[mod4]
	return h.m.tetNodes[h.indTri-mod4+sub[h.indHalfedge]]
}

// LastNode returns the node the half-edge points to.
func (h HalfEdge) LastNode() delaunay.Node {
	mod4 := h.indTri % 4
	sub := triangleSubindices[mod4]
	return h.m.tetNodes[h.indTri-mod4+sub[(h.indHalfedge+1)%3]]
}

// Next returns the next half-edge around h's triangle.
func (h HalfEdge) Next() HalfEdge {
	return HalfEdge{m: h.m, indTri: h.indTri, indHalfedge: (h.indHalfedge + 1) % 3}
}

// Prev returns the previous half-edge around h's triangle.
func (h HalfEdge) Prev() HalfEdge {
	return HalfEdge{m: h.m, indTri: h.indTri, indHalfedge: (h.indHalfedge + 2) % 3}
}

// Opposite returns the half-edge on the opposite half-triangle (the one
// on the neighboring tetrahedron across h's triangle) that shares h's two
// endpoints in reverse order.
func (h HalfEdge) Opposite() HalfEdge {
	he := h.Triangle().Opposite().HalfEdges()
	last := h.LastNode()
	for _, e := range he {
		if e.FirstNode().Equal(last) {
			return e
		}
	}
	return he[2]
}

// Neighbor returns the half-edge sharing h's two endpoints on the other
// triangle of the same tetrahedron that also borders this edge.
func (h HalfEdge) Neighbor() HalfEdge {
	modTri := h.indTri % 4
	n := neighborHalfedge[modTri][h.indHalfedge]
	return HalfEdge{m: h.m, indTri: h.indTri - modTri + n[0], indHalfedge: n[1]}
}

// Triangle returns the half-triangle h belongs to.
func (h HalfEdge) Triangle() HalfTriangle { return HalfTriangle{m: h.m, ind: h.indTri} }

func (h HalfEdge) valid(log *zap.SugaredLogger) bool {
	first := h.FirstNode()
	last := h.LastNode()
	next := h.Next()
	prev := h.Prev()
	opp := h.Opposite()
	nei := h.Neighbor()

	valid := true
	if !next.FirstNode().Equal(last) {
		log.Errorf("%s: wrong next half-edge", h)
		valid = false
	}
	if !prev.LastNode().Equal(first) {
		log.Errorf("%s: wrong previous half-edge", h)
		valid = false
	}
	if !opp.FirstNode().Equal(last) || !opp.LastNode().Equal(first) {
		log.Errorf("%s: wrong opposite half-edge", h)
		valid = false
	}
	if !nei.FirstNode().Equal(last) || !nei.LastNode().Equal(first) {
		log.Errorf("%s: wrong neighbor half-edge", h)
		valid = false
	}
	return valid
}

// String implements fmt.Stringer.
func (h HalfEdge) String() string {
	return fmt.Sprintf("edge: %s -> %s", h.FirstNode(), h.LastNode())
}

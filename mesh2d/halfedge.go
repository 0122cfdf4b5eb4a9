// Copyright ©2024 The Delaunay Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh2d

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/gonum-community/delaunay"
)

// HalfEdge is a cursor onto one oriented edge of a Mesh triangle.
type HalfEdge struct {
	m   *Mesh
	ind int
}

// Index returns the half-edge's flat index.
func (h HalfEdge) Index() int { return h.ind }

// FirstNode returns the node the half-edge points away from.
func (h HalfEdge) FirstNode() delaunay.Node { return h.m.firstNode[h.ind] }

// LastNode returns the node the half-edge points to.
func (h HalfEdge) LastNode() delaunay.Node { return h.m.firstNode[h.next().ind] }

func (h HalfEdge) next() HalfEdge {
	if h.ind%3 == 2 {
		return HalfEdge{h.m, h.ind - 2}
	}
	return HalfEdge{h.m, h.ind + 1}
}

// Next returns the next half-edge around h's triangle.
func (h HalfEdge) Next() HalfEdge { return h.next() }

func (h HalfEdge) prev() HalfEdge {
	if h.ind%3 == 0 {
		return HalfEdge{h.m, h.ind + 2}
	}
	return HalfEdge{h.m, h.ind - 1}
}

// Prev returns the previous half-edge around h's triangle.
func (h HalfEdge) Prev() HalfEdge { return h.prev() }

// Opposite returns the half-edge on the neighboring triangle that shares
// h's two endpoints in reverse order.
func (h HalfEdge) Opposite() HalfEdge { return HalfEdge{h.m, h.m.opposite[h.ind]} }

// Triangle returns the triangle h belongs to.
func (h HalfEdge) Triangle() Triangle { return Triangle{h.m, h.ind / 3} }

func (h HalfEdge) valid(log *zap.SugaredLogger) bool {
	first := h.FirstNode()
	last := h.LastNode()
	next := h.next()
	prev := h.prev()
	opp := h.Opposite()

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
	return valid
}

// String implements fmt.Stringer.
func (h HalfEdge) String() string {
	return fmt.Sprintf("edge %d: %s -> %s", h.ind, h.FirstNode(), h.LastNode())
}

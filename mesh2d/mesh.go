// Copyright ©2024 The Delaunay Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mesh2d is a combinatorial half-edge mesh over a triangulated
// planar point set, addressed by flat index arrays rather than pointers.
// A single Infinity node closes the convex hull into a manifold so every
// half-edge always has an opposite.
package mesh2d

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/gonum-community/delaunay"
)

// Mesh is a 2D half-edge simplicial structure.
//
// Triangles are stored as three consecutive half-edges: indices
// 3*t, 3*t+1, 3*t+2 for triangle t, where half-edge 3*t+1 follows
// 3*t, 3*t+2 follows 3*t+1, and 3*t follows 3*t+2. Only the first node of
// each half-edge is stored; its last node is the first node of the next
// half-edge around the same triangle.
type Mesh struct {
	firstNode []delaunay.Node
	opposite  []int

	numTriangles int

	log *zap.SugaredLogger
}

// New returns an empty Mesh. log may be nil, in which case diagnostics
// from Valid are discarded.
func New(log *zap.SugaredLogger) *Mesh {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Mesh{log: log}
}

// NumTriangles returns the number of triangles currently in the mesh,
// including triangles incident to the Infinity node.
func (m *Mesh) NumTriangles() int { return m.numTriangles }

// NumHalfEdges returns the number of half-edge slots, 3*NumTriangles.
func (m *Mesh) NumHalfEdges() int { return len(m.firstNode) }

// HalfEdge returns a cursor onto half-edge ind.
func (m *Mesh) HalfEdge(ind int) (HalfEdge, error) {
	if ind < 0 || ind >= len(m.firstNode) {
		return HalfEdge{}, fmt.Errorf("mesh2d: half-edge %d: %w", ind, delaunay.ErrIndexOutOfRange)
	}
	return HalfEdge{m: m, ind: ind}, nil
}

// Triangle returns a cursor onto triangle ind.
func (m *Mesh) Triangle(ind int) (Triangle, error) {
	if ind < 0 || ind >= m.numTriangles {
		return Triangle{}, fmt.Errorf("mesh2d: triangle %d: %w", ind, delaunay.ErrIndexOutOfRange)
	}
	return Triangle{m: m, ind: ind}, nil
}

func (m *Mesh) insertTriangle(n0, n1, n2 delaunay.Node) (h0, h1, h2 int) {
	first := len(m.firstNode)
	m.firstNode = append(m.firstNode, n0, n1, n2)
	m.numTriangles++
	return first, first + 1, first + 2
}

func (m *Mesh) replaceTriangle(indTri int, n0, n1, n2 delaunay.Node) (h0, h1, h2 int) {
	first := indTri * 3
	m.firstNode[first] = n0
	m.firstNode[first+1] = n1
	m.firstNode[first+2] = n2
	return first, first + 1, first + 2
}

// FirstTriangle bootstraps the mesh from a single finite triangle
// nodes[0],nodes[1],nodes[2], taken in counterclockwise order, and the
// three infinite triangles that close it into a manifold. It returns the
// four triangles created: the finite one first, then the three infinite
// ones opposite nodes[0], nodes[1] and nodes[2] respectively.
//
// FirstTriangle fails if the mesh already contains triangles.
func (m *Mesh) FirstTriangle(nodes [3]int) ([4]Triangle, error) {
	if m.numTriangles != 0 {
		return [4]Triangle{}, fmt.Errorf("mesh2d: FirstTriangle: %w", delaunay.ErrCorruptMesh)
	}
	n0 := delaunay.Finite(nodes[0])
	n1 := delaunay.Finite(nodes[1])
	n2 := delaunay.Finite(nodes[2])
	ninf := delaunay.Infinity

	firstTri := m.numTriangles
	h01, h12, h20 := m.insertTriangle(n0, n1, n2)
	hi2, h21, h1i := m.insertTriangle(ninf, n2, n1)
	h2i, hi0, h02 := m.insertTriangle(n2, ninf, n0)
	h10, h0i, hi1 := m.insertTriangle(n1, n0, ninf)

	m.opposite = append(m.opposite,
		h10, h21, h02, // triangle 0: n0->n1, n1->n2, n2->n0 opposites
		h2i, h12, hi1, // triangle 1 (inf,n2,n1)
		hi2, h0i, h20, // triangle 2 (n2,inf,n0)
		h01, hi0, h1i, // triangle 3 (n1,n0,inf)
	)

	return [4]Triangle{
		{m: m, ind: firstTri},
		{m: m, ind: firstTri + 1},
		{m: m, ind: firstTri + 2},
		{m: m, ind: firstTri + 3},
	}, nil
}

// InsertNodeWithinTriangle splits triangle indTri into three triangles
// meeting at node, reusing indTri's slot for the first and appending the
// other two. It returns the three resulting triangles.
func (m *Mesh) InsertNodeWithinTriangle(node int, indTri int) ([3]Triangle, error) {
	if indTri < 0 || indTri >= m.numTriangles {
		return [3]Triangle{}, fmt.Errorf("mesh2d: InsertNodeWithinTriangle: %w", delaunay.ErrIndexOutOfRange)
	}
	h01 := indTri * 3
	h12 := indTri*3 + 1
	h20 := indTri*3 + 2

	n0 := m.firstNode[h01]
	n1 := m.firstNode[h12]
	n2 := m.firstNode[h20]
	nn := delaunay.Finite(node)

	h10 := m.opposite[h01]
	h21 := m.opposite[h12]
	h02 := m.opposite[h20]

	h01, h1n, hn0 := m.replaceTriangle(indTri, n0, n1, nn)
	h12, h2n, hn1 := m.insertTriangle(n1, n2, nn)
	h20, h0n, hn2 := m.insertTriangle(n2, n0, nn)

	m.opposite[h10] = h01
	m.opposite[h21] = h12
	m.opposite[h02] = h20
	m.opposite[h01] = h10
	m.opposite[h1n] = hn1
	m.opposite[hn0] = h0n
	m.opposite = append(m.opposite, h21, hn2, h1n, h02, hn0, h2n)

	return [3]Triangle{
		{m: m, ind: indTri},
		{m: m, ind: m.numTriangles - 2},
		{m: m, ind: m.numTriangles - 1},
	}, nil
}

// FlipHalfEdge flips the diagonal shared by the triangle owning half-edge
// indHe and its opposite triangle: if the quad is a-b-c-d with the shared
// edge b-d, the edge is replaced by a-c.
func (m *Mesh) FlipHalfEdge(indHe int) {
	indHeOpp := m.opposite[indHe]
	indTri1 := indHe / 3
	indTri2 := indHeOpp / 3

	h01 := indTri1 * 3
	h12 := indTri1*3 + 1
	h20 := indTri1*3 + 2

	h01Opp := indTri2 * 3
	h12Opp := indTri2*3 + 1
	h20Opp := indTri2*3 + 2

	var hab, hbc int
	switch indHe {
	case h01:
		hab, hbc = h12, h20
	case h12:
		hab, hbc = h20, h01
	default:
		hab, hbc = h01, h12
	}

	var hcd, hda int
	switch indHeOpp {
	case h01Opp:
		hcd, hda = h12Opp, h20Opp
	case h12Opp:
		hcd, hda = h20Opp, h01Opp
	default:
		hcd, hda = h01Opp, h12Opp
	}

	na := m.firstNode[hab]
	nb := m.firstNode[hbc]
	nc := m.firstNode[hcd]
	nd := m.firstNode[hda]

	hba := m.opposite[hab]
	hcb := m.opposite[hbc]
	hdc := m.opposite[hcd]
	had := m.opposite[hda]

	hbc, hcd, hdb := m.replaceTriangle(indTri1, nb, nc, nd)
	hda, hab, hbd := m.replaceTriangle(indTri2, nd, na, nb)

	m.opposite[hab] = hba
	m.opposite[hda] = had
	m.opposite[hbc] = hcb
	m.opposite[hcd] = hdc

	m.opposite[hbd] = hdb
	m.opposite[hdb] = hbd

	m.opposite[hba] = hab
	m.opposite[had] = hda
	m.opposite[hcb] = hbc
	m.opposite[hdc] = hcd
}

// Valid reports whether every half-edge's next/prev/opposite links are
// mutually consistent, logging each inconsistency found. It is intended
// for tests.
func (m *Mesh) Valid() bool {
	valid := true
	for i := range m.firstNode {
		he := HalfEdge{m: m, ind: i}
		if !he.valid(m.log) {
			valid = false
		}
	}
	return valid
}

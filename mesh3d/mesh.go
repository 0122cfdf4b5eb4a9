// Copyright ©2024 The Delaunay Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mesh3d is a combinatorial half-triangle mesh over a
// tetrahedralized spatial point set, addressed by flat index arrays
// rather than pointers. A single Infinity node closes the convex hull
// into a manifold so every half-triangle always has an opposite, and
// carries the bookkeeping a Bowyer-Watson cavity insertion needs:
// marking tetrahedra for removal or retention while a cavity is grown,
// then committing the replacement fan in one pass.
package mesh3d

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/gonum-community/delaunay"
)

// triangleSubindices[t] gives, for halftriangle t of a tetrahedron, the
// tetrahedron-local vertex indices that make up that triangle.
var triangleSubindices = [4][3]int{{1, 3, 2}, {0, 2, 3}, {0, 3, 1}, {0, 1, 2}}

// neighborHalfedge[t][e] gives the (triangle, halfedge) local index of the
// halfedge, within the same tetrahedron, that shares the same two
// endpoints as halfedge e of triangle t but runs the other way round
// their shared edge.
var neighborHalfedge = [4][3][2]int{
	{{2, 1}, {1, 1}, {3, 1}},
	{{3, 2}, {0, 1}, {2, 0}},
	{{1, 2}, {0, 0}, {3, 0}},
	{{2, 2}, {0, 2}, {1, 0}},
}

// Mesh is a 3D half-triangle simplicial structure.
//
// Tetrahedra are stored as four consecutive nodes: indices 4*t..4*t+3 for
// tetrahedron t. Halftriangle 4*t+k is the triangle opposite local vertex
// k, built from the other three vertices in the order given by
// triangleSubindices.
type Mesh struct {
	tetNodes []delaunay.Node
	opposite []int

	numTetrahedra int

	shouldRemTet  []bool
	shouldKeepTet []bool
	tetToRem      []int
	tetToKeep     []int
	tetToCheck    []int

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

// NumTetrahedra returns the number of tetrahedra currently in the mesh.
func (m *Mesh) NumTetrahedra() int { return m.numTetrahedra }

// Tetrahedron returns a cursor onto tetrahedron ind.
func (m *Mesh) Tetrahedron(ind int) (Tetrahedron, error) {
	if ind < 0 || ind >= m.numTetrahedra {
		return Tetrahedron{}, fmt.Errorf("mesh3d: tetrahedron %d: %w", ind, delaunay.ErrIndexOutOfRange)
	}
	return Tetrahedron{m: m, ind: ind}, nil
}

// HalfTriangle returns a cursor onto half-triangle ind.
func (m *Mesh) HalfTriangle(ind int) (HalfTriangle, error) {
	if ind < 0 || ind >= len(m.opposite) {
		return HalfTriangle{}, fmt.Errorf("mesh3d: half-triangle %d: %w", ind, delaunay.ErrIndexOutOfRange)
	}
	return HalfTriangle{m: m, ind: ind}, nil
}

// TetrahedraContaining returns every tetrahedron with node among its
// four vertices.
func (m *Mesh) TetrahedraContaining(node delaunay.Node) []Tetrahedron {
	var out []Tetrahedron
	for i := 0; i < m.numTetrahedra; i++ {
		base := i << 2
		for j := 0; j < 4; j++ {
			if m.tetNodes[base+j].Equal(node) {
				out = append(out, Tetrahedron{m: m, ind: i})
				break
			}
		}
	}
	return out
}

func (m *Mesh) insertTetrahedron(n0, n1, n2, n3 delaunay.Node) (t0, t1, t2, t3 int) {
	first := len(m.tetNodes)
	m.tetNodes = append(m.tetNodes, n0, n1, n2, n3)
	m.shouldRemTet = append(m.shouldRemTet, false)
	m.shouldKeepTet = append(m.shouldKeepTet, false)
	m.numTetrahedra++
	return first, first + 1, first + 2, first + 3
}

func (m *Mesh) replaceTetrahedron(indTetra int, n0, n1, n2, n3 delaunay.Node) (t0, t1, t2, t3 int) {
	first := indTetra * 4
	m.tetNodes[first] = n0
	m.tetNodes[first+1] = n1
	m.tetNodes[first+2] = n2
	m.tetNodes[first+3] = n3
	m.shouldRemTet[indTetra] = false
	m.shouldKeepTet[indTetra] = false
	return first, first + 1, first + 2, first + 3
}

func (m *Mesh) movEndTetrahedron(indTetra int) {
	last := m.numTetrahedra - 1
	if indTetra != last {
		oppBase := len(m.opposite) - 4
		oppTri1, oppTri2, oppTri3, oppTri4 := m.opposite[oppBase], m.opposite[oppBase+1], m.opposite[oppBase+2], m.opposite[oppBase+3]

		nodes := Tetrahedron{m: m, ind: last}.Nodes()

		tri1, tri2, tri3, tri4 := m.replaceTetrahedron(indTetra, nodes[0], nodes[1], nodes[2], nodes[3])

		m.opposite[tri1] = oppTri1
		m.opposite[tri2] = oppTri2
		m.opposite[tri3] = oppTri3
		m.opposite[tri4] = oppTri4

		m.opposite[oppTri1] = tri1
		m.opposite[oppTri2] = tri2
		m.opposite[oppTri3] = tri3
		m.opposite[oppTri4] = tri4
	}

	m.tetNodes = m.tetNodes[:len(m.tetNodes)-4]
	m.opposite = m.opposite[:len(m.opposite)-4]
	m.shouldRemTet = m.shouldRemTet[:len(m.shouldRemTet)-1]
	m.shouldKeepTet = m.shouldKeepTet[:len(m.shouldKeepTet)-1]
	m.numTetrahedra--
}

// FirstTetrahedron bootstraps the mesh from a single finite tetrahedron
// over nodes[0..3], oriented so that Orient3D(nodes[0],nodes[1],nodes[2],nodes[3]) > 0,
// and the four infinite tetrahedra that close it into a manifold.
//
// FirstTetrahedron fails if the mesh already contains tetrahedra.
func (m *Mesh) FirstTetrahedron(nodes [4]int) ([4]Tetrahedron, error) {
	if m.numTetrahedra != 0 {
		return [4]Tetrahedron{}, fmt.Errorf("mesh3d: FirstTetrahedron: %w", delaunay.ErrCorruptMesh)
	}
	n0 := delaunay.Finite(nodes[0])
	n1 := delaunay.Finite(nodes[1])
	n2 := delaunay.Finite(nodes[2])
	n3 := delaunay.Finite(nodes[3])
	ni := delaunay.Infinity

	firstTetra := m.numTetrahedra
	t132, t023, t031, t012 := m.insertTetrahedron(n0, n1, n2, n3)
	t2i3, t13i, t1i2, t123 := m.insertTetrahedron(n1, n2, n3, ni)
	t3i2, t02i, t0i3, t032 := m.insertTetrahedron(n0, n3, n2, ni)
	t1i3, t03i, t0i1, t013 := m.insertTetrahedron(n0, n1, n3, ni)
	t2i1, t01i, t0i2, t021 := m.insertTetrahedron(n0, n2, n1, ni)

	m.opposite = append(m.opposite,
		t123, t032, t013, t021, // t132, t023, t031, t012
		t3i2, t1i3, t2i1, t132, // t2i3, t13i, t1i2, t123
		t2i3, t0i2, t03i, t023, // t3i2, t02i, t0i3, t032
		t13i, t0i3, t01i, t031, // t1i3, t03i, t0i1, t013
		t1i2, t0i1, t02i, t012, // t2i1, t01i, t0i2, t021
	)

	return [4]Tetrahedron{
		{m: m, ind: firstTetra},
		{m: m, ind: firstTetra + 1},
		{m: m, ind: firstTetra + 2},
		{m: m, ind: firstTetra + 3},
	}, nil
}

// BWStart begins a Bowyer-Watson insertion session by marking
// indFirstTetra for removal and queuing its neighbors to check. It fails
// if a session is already in progress.
func (m *Mesh) BWStart(indFirstTetra int) error {
	if len(m.tetToCheck) != 0 || len(m.tetToKeep) != 0 {
		return fmt.Errorf("mesh3d: BWStart: Bowyer-Watson session already in progress: %w", delaunay.ErrCorruptMesh)
	}
	m.bwRemTetra(indFirstTetra)
	return nil
}

func (m *Mesh) bwRemTetra(indTetra int) {
	base := indTetra << 2
	for j := 0; j < 4; j++ {
		m.tetToCheck = append(m.tetToCheck, m.opposite[base+j]>>2)
	}
	m.shouldRemTet[indTetra] = true
	m.tetToRem = append(m.tetToRem, indTetra)
}

// BWRemTetra marks indTetra for removal and queues its neighbors to
// check. Callers drive the cavity growth loop: pop a tetrahedron from
// BWTetraToCheck, test it against the inserted point, then call either
// BWRemTetra or BWKeepTetra.
func (m *Mesh) BWRemTetra(indTetra int) { m.bwRemTetra(indTetra) }

// BWKeepTetra marks indTetra as bounding the cavity from outside: it
// stays in the mesh, and its triangle facing the cavity seeds the
// boundary-triangle walk in BWInsertNode.
func (m *Mesh) BWKeepTetra(indTetra int) {
	m.shouldKeepTet[indTetra] = true
	m.tetToKeep = append(m.tetToKeep, indTetra)
}

// BWTetraToCheck pops the next tetrahedron the caller must classify with
// BWRemTetra or BWKeepTetra, skipping any already classified. It returns
// false once the queue is empty.
func (m *Mesh) BWTetraToCheck() (int, bool) {
	for len(m.tetToCheck) > 0 {
		n := len(m.tetToCheck) - 1
		ind := m.tetToCheck[n]
		m.tetToCheck = m.tetToCheck[:n]
		if !m.shouldRemTet[ind] && !m.shouldKeepTet[ind] {
			return ind, true
		}
	}
	return 0, false
}

type boundaryTri struct {
	ind int
	nei [3]int
}

// BWInsertNode fills the cavity carved out by BWRemTetra calls with new
// tetrahedra fanning out from node, reusing removed tetrahedra's slots
// before appending new ones. It returns the indices of every tetrahedron
// created or reused. BWInsertNode requires all queued tetrahedra to have
// been classified (BWTetraToCheck exhausted) and at least one kept
// tetrahedron bounding the cavity.
func (m *Mesh) BWInsertNode(node delaunay.Node) ([]int, error) {
	if len(m.tetToCheck) != 0 {
		return nil, fmt.Errorf("mesh3d: BWInsertNode: not all tetrahedra checked: %w", delaunay.ErrCorruptMesh)
	}
	if len(m.tetToKeep) == 0 {
		return nil, fmt.Errorf("mesh3d: BWInsertNode: no kept tetrahedron: %w", delaunay.ErrCorruptMesh)
	}
	indTetraKeep := m.tetToKeep[len(m.tetToKeep)-1]
	tris := Tetrahedron{m: m, ind: indTetraKeep}.HalfTriangles()
	indTriFirst := -1
	for _, t := range tris {
		if t.Opposite().Tetrahedron().shouldRem() {
			indTriFirst = t.Index()
			break
		}
	}
	if indTriFirst < 0 {
		return nil, fmt.Errorf("mesh3d: BWInsertNode: isolated kept tetrahedron: %w", delaunay.ErrCorruptMesh)
	}

	vecTri := []int{indTriFirst}
	vecNei := [][3]int{{-1, -1, -1}}
	for indCur := 0; indCur < len(vecTri); indCur++ {
		curTri := HalfTriangle{m: m, ind: vecTri[indCur]}
		he := curTri.HalfEdges()
		for j := 0; j < 3; j++ {
			if vecNei[indCur][j] >= 0 {
				continue
			}
			heCur := he[j].Opposite().Neighbor().Opposite()
			var indCur2, j2 int
			for {
				if !heCur.Triangle().Tetrahedron().shouldRem() {
					indTri2 := heCur.Triangle().Index()
					j2 = heCur.TriangleSubind()
					found := -1
					for i2, ind := range vecTri {
						if ind == indTri2 {
							found = i2
							break
						}
					}
					if found >= 0 {
						indCur2 = found
					} else {
						vecTri = append(vecTri, indTri2)
						vecNei = append(vecNei, [3]int{-1, -1, -1})
						indCur2 = len(vecTri) - 1
					}
					break
				}
				heCur = heCur.Neighbor().Opposite()
			}
			vecNei[indCur][j] = indCur2
			vecNei[indCur2][j2] = indCur
		}
	}

	addedTets := make([]int, len(vecTri))
	for i, indTri := range vecTri {
		curTri := HalfTriangle{m: m, ind: indTri}
		n := curTri.Nodes()
		if len(m.tetToRem) > 0 {
			indAdd := m.tetToRem[len(m.tetToRem)-1]
			m.tetToRem = m.tetToRem[:len(m.tetToRem)-1]
			addedTets[i] = indAdd
			m.replaceTetrahedron(indAdd, n[0], n[2], n[1], node)
		} else {
			addedTets[i] = m.numTetrahedra
			m.opposite = append(m.opposite, 0, 0, 0, 0)
			m.insertTetrahedron(n[0], n[2], n[1], node)
		}
	}

	for i := range vecTri {
		tri0 := addedTets[i] * 4
		tri1 := tri0 + 1
		tri2 := tri0 + 2
		tri3 := tri0 + 3

		indTriNei := vecTri[i]

		indNei0 := vecNei[i][1]
		indNei1 := vecNei[i][0]
		indNei2 := vecNei[i][2]

		indTetNei0 := addedTets[indNei0]
		indTetNei1 := addedTets[indNei1]
		indTetNei2 := addedTets[indNei2]

		neighborTri := func(indNei, self int) int {
			switch {
			case vecNei[indNei][0] == self:
				return 1
			case vecNei[indNei][1] == self:
				return 0
			default:
				return 2
			}
		}

		indTri0Nei := indTetNei0*4 + neighborTri(indNei0, i)
		indTri1Nei := indTetNei1*4 + neighborTri(indNei1, i)
		indTri2Nei := indTetNei2*4 + neighborTri(indNei2, i)

		m.opposite[tri0] = indTri0Nei
		m.opposite[tri1] = indTri1Nei
		m.opposite[tri2] = indTri2Nei
		m.opposite[tri3] = indTriNei
		m.opposite[indTriNei] = tri3
	}

	for len(m.tetToKeep) > 0 {
		n := len(m.tetToKeep) - 1
		m.shouldKeepTet[m.tetToKeep[n]] = false
		m.tetToKeep = m.tetToKeep[:n]
	}

	return addedTets, nil
}

// CleanToRem compacts the mesh by physically removing every tetrahedron
// queued by BWRemTetra whose slot BWInsertNode did not reuse, moving the
// last tetrahedra into the freed slots. Leftover slots may accumulate
// across several Bowyer-Watson insertions; CleanToRem must run before
// the mesh is inspected or validated.
func (m *Mesh) CleanToRem() {
	sort.Ints(m.tetToRem)
	for len(m.tetToRem) > 0 {
		n := len(m.tetToRem) - 1
		ind := m.tetToRem[n]
		m.tetToRem = m.tetToRem[:n]
		m.shouldRemTet[ind] = false
		m.movEndTetrahedron(ind)
	}
}

// Valid reports whether every tetrahedron, half-triangle and half-edge
// adjacency invariant holds, and that no stale Bowyer-Watson bookkeeping
// remains, logging each inconsistency found. It is intended for tests.
func (m *Mesh) Valid() bool {
	valid := true
	for i := 0; i < m.numTetrahedra; i++ {
		tet := Tetrahedron{m: m, ind: i}
		if !tet.valid(m.log) {
			valid = false
		}
		for _, tri := range tet.HalfTriangles() {
			if !tri.valid(m.log) {
				valid = false
			}
			for _, he := range tri.HalfEdges() {
				if !he.valid(m.log) {
					valid = false
				}
			}
		}
	}
	return valid
}

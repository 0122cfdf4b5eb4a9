// Copyright ©2024 The Delaunay Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package delaunay3d incrementally builds a Delaunay tetrahedralization
// of a spatial point set: point location by visibility walk (falling
// back to an exhaustive scan when the walk stalls), local repair by
// Bowyer-Watson cavity retriangulation.
package delaunay3d

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/gonum-community/delaunay"
	"github.com/gonum-community/delaunay/internal/curve"
	"github.com/gonum-community/delaunay/internal/predicate"
	"github.com/gonum-community/delaunay/mesh3d"
	"github.com/gonum-community/delaunay/spatial/r3"
)

// Delaunay3D incrementally tetrahedralizes a growing set of 3D points.
type Delaunay3D struct {
	mesh     *mesh3d.Mesh
	vertices []r3.Vec

	log *zap.SugaredLogger
}

// New returns an empty Delaunay3D. log may be nil, in which case
// diagnostics from Valid are discarded.
func New(log *zap.SugaredLogger) *Delaunay3D {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Delaunay3D{mesh: mesh3d.New(log), log: log}
}

// Mesh returns the underlying half-triangle mesh.
func (d *Delaunay3D) Mesh() *mesh3d.Mesh { return d.mesh }

// Vertices returns every point inserted so far, indexed by Node index.
func (d *Delaunay3D) Vertices() []r3.Vec { return d.vertices }

// ExtendedTetrahedron is a mesh tetrahedron lifted into coordinate
// space: a Tetrahedron when all four nodes are finite, or a Triangle
// bounding the convex hull when one node is the Infinity sentinel.
type ExtendedTetrahedron struct {
	// Points holds length 4 for a finite tetrahedron, in mesh order, or
	// length 3 for a hull-bounding triangle, in the node order of the
	// half-triangle opposite the Infinity node.
	Points []r3.Vec
}

// IsTriangle reports whether the tetrahedron has a node at infinity.
func (e ExtendedTetrahedron) IsTriangle() bool { return len(e.Points) == 3 }

// ExtendedTetrahedron returns the coordinate-space lift of mesh
// tetrahedron indTetra.
func (d *Delaunay3D) ExtendedTetrahedron(indTetra int) (ExtendedTetrahedron, error) {
	tet, err := d.mesh.Tetrahedron(indTetra)
	if err != nil {
		return ExtendedTetrahedron{}, err
	}
	n := tet.Nodes()
	switch {
	case n[0].IsInfinite():
		v2, _ := n[1].Index()
		v3, _ := n[2].Index()
		v4, _ := n[3].Index()
		return ExtendedTetrahedron{Points: []r3.Vec{d.vertices[v2], d.vertices[v4], d.vertices[v3]}}, nil
	case n[1].IsInfinite():
		v1, _ := n[0].Index()
		v3, _ := n[2].Index()
		v4, _ := n[3].Index()
		return ExtendedTetrahedron{Points: []r3.Vec{d.vertices[v1], d.vertices[v3], d.vertices[v4]}}, nil
	case n[2].IsInfinite():
		v1, _ := n[0].Index()
		v2, _ := n[1].Index()
		v4, _ := n[3].Index()
		return ExtendedTetrahedron{Points: []r3.Vec{d.vertices[v1], d.vertices[v4], d.vertices[v2]}}, nil
	case n[3].IsInfinite():
		v1, _ := n[0].Index()
		v2, _ := n[1].Index()
		v3, _ := n[2].Index()
		return ExtendedTetrahedron{Points: []r3.Vec{d.vertices[v1], d.vertices[v2], d.vertices[v3]}}, nil
	default:
		v1, _ := n[0].Index()
		v2, _ := n[1].Index()
		v3, _ := n[2].Index()
		v4, _ := n[3].Index()
		return ExtendedTetrahedron{Points: []r3.Vec{d.vertices[v1], d.vertices[v2], d.vertices[v3], d.vertices[v4]}}, nil
	}
}

// isVertexInSphere reports whether vert lies within or on the
// circumsphere of tetrahedron indTetra (inclusive), which is the test
// Bowyer-Watson cavity growth uses.
func (d *Delaunay3D) isVertexInSphere(indVert, indTetra int) (bool, error) {
	vert := d.vertices[indVert]
	ext, err := d.ExtendedTetrahedron(indTetra)
	if err != nil {
		return false, err
	}
	var s int
	if ext.IsTriangle() {
		s = predicate.Orient3D(ext.Points[0], ext.Points[1], ext.Points[2], vert)
	} else {
		s = predicate.InSphere3D(ext.Points[0], ext.Points[1], ext.Points[2], ext.Points[3], vert)
	}
	return s >= 0, nil
}

// isVertexStrictInSphere is the strict form of isVertexInSphere, used
// only by Valid's final audit.
func (d *Delaunay3D) isVertexStrictInSphere(indVert, indTetra int) (bool, error) {
	vert := d.vertices[indVert]
	ext, err := d.ExtendedTetrahedron(indTetra)
	if err != nil {
		return false, err
	}
	var s int
	if ext.IsTriangle() {
		s = predicate.Orient3D(ext.Points[0], ext.Points[1], ext.Points[2], vert)
	} else {
		s = predicate.InSphere3D(ext.Points[0], ext.Points[1], ext.Points[2], ext.Points[3], vert)
	}
	return s > 0, nil
}

func (d *Delaunay3D) isTetrahedronFlat(indTetra int) (bool, error) {
	ext, err := d.ExtendedTetrahedron(indTetra)
	if err != nil {
		return false, err
	}
	if ext.IsTriangle() {
		return false, nil
	}
	return predicate.Orient3D(ext.Points[0], ext.Points[1], ext.Points[2], ext.Points[3]) == 0, nil
}

func (d *Delaunay3D) chooseTriangle(tris []mesh3d.HalfTriangle, vert r3.Vec) (mesh3d.HalfTriangle, bool) {
	for _, tri := range tris {
		n := tri.Nodes()
		v1, ok1 := n[0].Index()
		v2, ok2 := n[1].Index()
		v3, ok3 := n[2].Index()
		if !ok1 || !ok2 || !ok3 {
			continue
		}
		s := predicate.Orient3D(d.vertices[v1], d.vertices[v2], d.vertices[v3], vert)
		if tri.Tetrahedron().ContainsInfinity() {
			if s <= 0 {
				return tri, true
			}
		} else if s < 0 {
			return tri, true
		}
	}
	return mesh3d.HalfTriangle{}, false
}

func (d *Delaunay3D) walkCheckAll(indVert int) (int, error) {
	for indTetra := 0; indTetra < d.mesh.NumTetrahedra(); indTetra++ {
		flat, err := d.isTetrahedronFlat(indTetra)
		if err != nil {
			return 0, err
		}
		if flat {
			continue
		}
		in, err := d.isVertexInSphere(indVert, indTetra)
		if err != nil {
			return 0, err
		}
		if in {
			return indTetra, nil
		}
	}
	return 0, fmt.Errorf("delaunay3d: could not find sphere containing point: %w", delaunay.ErrNotLocated)
}

func (d *Delaunay3D) walkByVisibility(indVert, indStartingTetrahedron int) (int, error) {
	vert := d.vertices[indVert]
	indTetraCur := indStartingTetrahedron
	startTetra, err := d.mesh.Tetrahedron(indTetraCur)
	if err != nil {
		return 0, err
	}
	ht := startTetra.HalfTriangles()
	vecTri := []mesh3d.HalfTriangle{ht[0], ht[1], ht[2], ht[3]}
	side := 0
	nbVisited := 0
	thVisited := d.mesh.NumTetrahedra() >> 2
	for {
		if nbVisited > thVisited {
			return 0, fmt.Errorf("delaunay3d: could not find sphere containing point: %w", delaunay.ErrNotLocated)
		}
		tri, ok := d.chooseTriangle(vecTri, vert)
		if !ok {
			in, err := d.isVertexInSphere(indVert, indTetraCur)
			if err != nil {
				return 0, err
			}
			if in {
				return indTetraCur, nil
			}
			return 0, fmt.Errorf("delaunay3d: could not find sphere containing point: %w", delaunay.ErrNotLocated)
		}
		nbVisited++
		triOpp := tri.Opposite()
		indTetraCur = triOpp.Tetrahedron().Index()
		he := triOpp.HalfEdges()
		vecTri = []mesh3d.HalfTriangle{
			he[(0+side)%3].Neighbor().Triangle(),
			he[(1+side)%3].Neighbor().Triangle(),
			he[(2+side)%3].Neighbor().Triangle(),
		}
		side = (side + 1) % 3
	}
}

func (d *Delaunay3D) insertBW(indVert, indFirstTetra int) ([]int, error) {
	if err := d.mesh.BWStart(indFirstTetra); err != nil {
		return nil, err
	}
	for {
		indTetra, ok := d.mesh.BWTetraToCheck()
		if !ok {
			break
		}
		in, err := d.isVertexInSphere(indVert, indTetra)
		if err != nil {
			return nil, err
		}
		if in {
			d.mesh.BWRemTetra(indTetra)
		} else {
			d.mesh.BWKeepTetra(indTetra)
		}
	}
	return d.mesh.BWInsertNode(delaunay.Finite(indVert))
}

func (d *Delaunay3D) insertVertexHelper(indVertex, nearTo int) (int, error) {
	indTetrahedron, err := d.walkByVisibility(indVertex, nearTo)
	if err != nil {
		d.mesh.CleanToRem()
		indTetrahedron, err = d.walkCheckAll(indVertex)
		if err != nil {
			return 0, err
		}
	}
	added, err := d.insertBW(indVertex, indTetrahedron)
	if err != nil {
		return 0, err
	}
	return added[0], nil
}

// insertFirstTetrahedron consumes indicesToInsert from the end until it
// finds four non-coplanar points to bootstrap the mesh, returning the
// remaining indices.
//
// The third point is chosen to maximize its projected distance along the
// first edge, which keeps the bootstrap triangle well conditioned; ties
// among collinear candidates are broken in their original order.
func (d *Delaunay3D) insertFirstTetrahedron(indicesToInsert []int) ([]int, error) {
	if len(indicesToInsert) < 2 {
		return nil, fmt.Errorf("delaunay3d: insertFirstTetrahedron: %w", delaunay.ErrDegenerateInput)
	}
	n := len(indicesToInsert)
	ind1, ind2 := indicesToInsert[n-1], indicesToInsert[n-2]
	indicesToInsert = indicesToInsert[:n-2]
	pt1, pt2 := d.vertices[ind1], d.vertices[ind2]
	vec12 := r3.Sub(pt2, pt1)

	if len(indicesToInsert) == 0 {
		return nil, fmt.Errorf("delaunay3d: insertFirstTetrahedron: %w", delaunay.ErrDegenerateInput)
	}
	best := 0
	bestScore := math.Abs(r3.Dot(r3.Sub(d.vertices[indicesToInsert[0]], pt1), vec12))
	for i := 1; i < len(indicesToInsert); i++ {
		score := math.Abs(r3.Dot(r3.Sub(d.vertices[indicesToInsert[i]], pt1), vec12))
		if score > bestScore {
			best, bestScore = i, score
		}
	}
	ind3 := indicesToInsert[best]
	indicesToInsert = append(indicesToInsert[:best], indicesToInsert[best+1:]...)
	pt3 := d.vertices[ind3]

	var aligned []int
	for {
		if len(indicesToInsert) == 0 {
			return nil, fmt.Errorf("delaunay3d: could not find four non-coplanar points: %w", delaunay.ErrDegenerateInput)
		}
		m := len(indicesToInsert) - 1
		ind4 := indicesToInsert[m]
		indicesToInsert = indicesToInsert[:m]
		pt4 := d.vertices[ind4]

		s := predicate.Orient3D(pt1, pt2, pt3, pt4)
		switch {
		case s > 0:
			if _, err := d.mesh.FirstTetrahedron([4]int{ind1, ind2, ind3, ind4}); err != nil {
				return nil, err
			}
		case s < 0:
			if _, err := d.mesh.FirstTetrahedron([4]int{ind1, ind3, ind2, ind4}); err != nil {
				return nil, err
			}
		default:
			aligned = append(aligned, ind4)
			continue
		}
		break
	}
	return append(indicesToInsert, aligned...), nil
}

// InsertVertex inserts a single point into an already-bootstrapped mesh,
// starting the visibility walk from nearTo, or from the most recently
// created tetrahedron if nearTo is nil. Unlike InsertVertices, it
// compacts removed tetrahedra immediately.
func (d *Delaunay3D) InsertVertex(vertex r3.Vec, nearTo *int) error {
	if !r3.IsFinite(vertex) {
		return fmt.Errorf("delaunay3d: InsertVertex: %w", delaunay.ErrNonFiniteInput)
	}
	if d.mesh.NumTetrahedra() == 0 {
		return fmt.Errorf("delaunay3d: InsertVertex: %w", delaunay.ErrCorruptMesh)
	}
	indVertex := len(d.vertices)
	d.vertices = append(d.vertices, vertex)
	near := d.mesh.NumTetrahedra() - 1
	if nearTo != nil {
		near = *nearTo
	}
	if _, err := d.insertVertexHelper(indVertex, near); err != nil {
		return err
	}
	d.mesh.CleanToRem()
	return nil
}

// InsertVertices inserts every point of toInsert, bootstrapping the mesh
// first if it is still empty. If reorderPoints is true the points are
// inserted in Hilbert-curve order for faster point location; the
// resulting tetrahedralization does not depend on this order. Removed
// tetrahedra are compacted at the end, and before any exhaustive scan
// that follows a failed visibility walk, not after each point, so
// consecutive insertions can reuse each other's freed slots.
func (d *Delaunay3D) InsertVertices(toInsert []r3.Vec, reorderPoints bool) error {
	for _, v := range toInsert {
		if !r3.IsFinite(v) {
			return fmt.Errorf("delaunay3d: InsertVertices: %w", delaunay.ErrNonFiniteInput)
		}
	}
	indicesToInsert := make([]int, 0, len(toInsert))
	for _, v := range toInsert {
		indicesToInsert = append(indicesToInsert, len(d.vertices))
		d.vertices = append(d.vertices, v)
	}

	if len(d.vertices) < 4 {
		return fmt.Errorf("delaunay3d: InsertVertices: %w", delaunay.ErrDegenerateInput)
	}

	if reorderPoints {
		indicesToInsert = curve.Order3D(d.vertices, indicesToInsert)
	}

	if d.mesh.NumTetrahedra() == 0 {
		var err error
		indicesToInsert, err = d.insertFirstTetrahedron(indicesToInsert)
		if err != nil {
			return err
		}
	}

	lastAdded := d.mesh.NumTetrahedra() - 1
	for len(indicesToInsert) > 0 {
		n := len(indicesToInsert) - 1
		indVertex := indicesToInsert[n]
		indicesToInsert = indicesToInsert[:n]
		var err error
		lastAdded, err = d.insertVertexHelper(indVertex, lastAdded)
		if err != nil {
			return err
		}
	}
	d.mesh.CleanToRem()
	return nil
}

// Valid reports whether the tetrahedralization is a valid Delaunay
// tetrahedralization: the mesh's adjacency invariants hold, and no
// vertex lies strictly inside another tetrahedron's circumsphere. Flat
// tetrahedra are logged but do not fail validity, matching the
// tolerance the insertion algorithm itself applies. It is intended for
// tests.
func (d *Delaunay3D) Valid() bool {
	if !d.mesh.Valid() {
		return false
	}
	valid := true
	for indTetra := 0; indTetra < d.mesh.NumTetrahedra(); indTetra++ {
		flat, err := d.isTetrahedronFlat(indTetra)
		if err != nil {
			d.log.Errorf("Valid: %v", err)
			valid = false
			continue
		}
		if flat {
			tet, _ := d.mesh.Tetrahedron(indTetra)
			d.log.Warnf("flat tetrahedron: %s", tet)
			continue
		}
		for indVert := range d.vertices {
			inSphere, err := d.isVertexStrictInSphere(indVert, indTetra)
			if err != nil {
				d.log.Errorf("Valid: %v", err)
				valid = false
				break
			}
			if inSphere {
				tet, _ := d.mesh.Tetrahedron(indTetra)
				d.log.Errorf("non-Delaunay tetrahedron: %s", tet)
				valid = false
				break
			}
		}
	}
	return valid
}

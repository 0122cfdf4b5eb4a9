// Copyright ©2024 The Delaunay Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package delaunay2d incrementally builds a Delaunay triangulation of a
// planar point set: point location by visibility walk, local repair by
// Lawson edge flips.
package delaunay2d

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/gonum-community/delaunay"
	"github.com/gonum-community/delaunay/internal/curve"
	"github.com/gonum-community/delaunay/internal/predicate"
	"github.com/gonum-community/delaunay/mesh2d"
	"github.com/gonum-community/delaunay/spatial/r2"
)

// Delaunay2D incrementally triangulates a growing set of 2D points.
type Delaunay2D struct {
	mesh     *mesh2d.Mesh
	vertices []r2.Vec

	log *zap.SugaredLogger
}

// New returns an empty Delaunay2D. log may be nil, in which case
// diagnostics from Valid are discarded.
func New(log *zap.SugaredLogger) *Delaunay2D {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Delaunay2D{mesh: mesh2d.New(log), log: log}
}

// Mesh returns the underlying half-edge mesh.
func (d *Delaunay2D) Mesh() *mesh2d.Mesh { return d.mesh }

// Vertices returns every point inserted so far, indexed by Node index.
func (d *Delaunay2D) Vertices() []r2.Vec { return d.vertices }

// ExtendedTriangle is a mesh triangle lifted into coordinate space: a
// Triangle when all three nodes are finite, or a Segment bounding the
// convex hull when one node is the Infinity sentinel.
type ExtendedTriangle struct {
	// Points holds the triangle's vertices in mesh order. It has length
	// 3 for a finite triangle, or length 2 for a hull-bounding segment.
	Points []r2.Vec
}

// IsSegment reports whether the triangle has a node at infinity.
func (e ExtendedTriangle) IsSegment() bool { return len(e.Points) == 2 }

// ExtendedTriangle returns the coordinate-space lift of mesh triangle
// indTri.
func (d *Delaunay2D) ExtendedTriangle(indTri int) (ExtendedTriangle, error) {
	tri, err := d.mesh.Triangle(indTri)
	if err != nil {
		return ExtendedTriangle{}, err
	}
	nodes := tri.Nodes()
	switch {
	case nodes[0].IsInfinite():
		v2, _ := nodes[1].Index()
		v3, _ := nodes[2].Index()
		return ExtendedTriangle{Points: []r2.Vec{d.vertices[v2], d.vertices[v3]}}, nil
	case nodes[1].IsInfinite():
		v1, _ := nodes[0].Index()
		v3, _ := nodes[2].Index()
		return ExtendedTriangle{Points: []r2.Vec{d.vertices[v3], d.vertices[v1]}}, nil
	case nodes[2].IsInfinite():
		v1, _ := nodes[0].Index()
		v2, _ := nodes[1].Index()
		return ExtendedTriangle{Points: []r2.Vec{d.vertices[v1], d.vertices[v2]}}, nil
	default:
		v1, _ := nodes[0].Index()
		v2, _ := nodes[1].Index()
		v3, _ := nodes[2].Index()
		return ExtendedTriangle{Points: []r2.Vec{d.vertices[v1], d.vertices[v2], d.vertices[v3]}}, nil
	}
}

func (d *Delaunay2D) isVertexStrictInCircle(indVert, indTri int) (bool, error) {
	vert := d.vertices[indVert]
	ext, err := d.ExtendedTriangle(indTri)
	if err != nil {
		return false, err
	}
	var s int
	if ext.IsSegment() {
		s = predicate.Orient2D(ext.Points[0], ext.Points[1], vert)
	} else {
		s = predicate.InCircle2D(ext.Points[0], ext.Points[1], ext.Points[2], vert)
	}
	return s > 0, nil
}

func (d *Delaunay2D) isTriangleFlat(indTri int) (bool, error) {
	ext, err := d.ExtendedTriangle(indTri)
	if err != nil {
		return false, err
	}
	if ext.IsSegment() {
		return false, nil
	}
	return predicate.Orient2D(ext.Points[0], ext.Points[1], ext.Points[2]) == 0, nil
}

// isConvex reports whether the angle pt1-pt0, pt1-pt2 turns convex (1),
// flat (0) or concave (-1).
func isConvex(pt0, pt1, pt2 r2.Vec) int {
	s := predicate.Orient2D(pt0, pt1, pt2)
	if s > 0 {
		return 1
	}
	if s < 0 {
		return -1
	}
	d1 := r2.Sub(pt1, pt0)
	d2 := r2.Sub(pt1, pt2)
	if r2.Dot(d1, d2) > 0 {
		return 1
	}
	return 0
}

func (d *Delaunay2D) chooseHalfEdge(edges []mesh2d.HalfEdge, vert r2.Vec) (mesh2d.HalfEdge, bool) {
	for _, he := range edges {
		v1, ok1 := he.FirstNode().Index()
		v2, ok2 := he.LastNode().Index()
		if !ok1 || !ok2 {
			continue
		}
		s := predicate.Orient2D(d.vertices[v1], d.vertices[v2], vert)
		if he.Triangle().ContainsInfinity() {
			if s <= 0 {
				return he, true
			}
		} else if s < 0 {
			return he, true
		}
	}
	return mesh2d.HalfEdge{}, false
}

func (d *Delaunay2D) walkByVisibility(indVert, indStartingTriangle int) (int, error) {
	vert := d.vertices[indVert]
	indTriCur := indStartingTriangle
	startTri, err := d.mesh.Triangle(indTriCur)
	if err != nil {
		return 0, err
	}
	he := startTri.HalfEdges()
	vecEdg := []mesh2d.HalfEdge{he[0], he[1], he[2]}
	side := false
	for {
		he, ok := d.chooseHalfEdge(vecEdg, vert)
		if !ok {
			return indTriCur, nil
		}
		heOpp := he.Opposite()
		indTriCur = heOpp.Triangle().Index()
		if side {
			vecEdg = []mesh2d.HalfEdge{heOpp.Next(), heOpp.Prev()}
		} else {
			vecEdg = []mesh2d.HalfEdge{heOpp.Prev(), heOpp.Next()}
		}
		side = !side
	}
}

func (d *Delaunay2D) shouldFlipHalfEdge(indHe int) (bool, error) {
	he, err := d.mesh.HalfEdge(indHe)
	if err != nil {
		return false, err
	}
	indTriAbd := he.Triangle().Index()
	nodeA := he.Prev().FirstNode()
	nodeB := he.FirstNode()

	heOpp := he.Opposite()
	indTriBcd := heOpp.Triangle().Index()
	nodeC := heOpp.Prev().FirstNode()
	nodeD := heOpp.FirstNode()

	aInf, bInf, cInf, dInf := nodeA.IsInfinite(), nodeB.IsInfinite(), nodeC.IsInfinite(), nodeD.IsInfinite()

	switch {
	case !aInf && !bInf && !cInf && !dInf:
		a, _ := nodeA.Index()
		c, _ := nodeC.Index()
		inAbd, err := d.isVertexStrictInCircle(c, indTriAbd)
		if err != nil {
			return false, err
		}
		inBcd, err := d.isVertexStrictInCircle(a, indTriBcd)
		if err != nil {
			return false, err
		}
		return inAbd || inBcd, nil
	case aInf && !bInf && !cInf && !dInf:
		c, _ := nodeC.Index()
		inAbd, err := d.isVertexStrictInCircle(c, indTriAbd)
		if err != nil {
			return false, err
		}
		flat, err := d.isTriangleFlat(indTriBcd)
		if err != nil {
			return false, err
		}
		return inAbd || flat, nil
	case !aInf && bInf && !cInf && !dInf:
		a, _ := nodeA.Index()
		c, _ := nodeC.Index()
		dd, _ := nodeD.Index()
		return isConvex(d.vertices[c], d.vertices[dd], d.vertices[a]) == 1, nil
	case !aInf && !bInf && cInf && !dInf:
		a, _ := nodeA.Index()
		flat, err := d.isTriangleFlat(indTriAbd)
		if err != nil {
			return false, err
		}
		inBcd, err := d.isVertexStrictInCircle(a, indTriBcd)
		if err != nil {
			return false, err
		}
		return flat || inBcd, nil
	case !aInf && !bInf && !cInf && dInf:
		a, _ := nodeA.Index()
		b, _ := nodeB.Index()
		c, _ := nodeC.Index()
		return isConvex(d.vertices[a], d.vertices[b], d.vertices[c]) == 1, nil
	default:
		return false, fmt.Errorf("delaunay2d: multiple infinity nodes linked together: %w", delaunay.ErrCorruptMesh)
	}
}

func (d *Delaunay2D) insertVertexHelper(indVertex, nearTo int) error {
	indTriangle, err := d.walkByVisibility(indVertex, nearTo)
	if err != nil {
		return err
	}

	tri, err := d.mesh.Triangle(indTriangle)
	if err != nil {
		return err
	}
	he := tri.HalfEdges()
	heToEvaluate := []int{he[0].Opposite().Index(), he[1].Opposite().Index(), he[2].Opposite().Index()}

	if _, err := d.mesh.InsertNodeWithinTriangle(indVertex, indTriangle); err != nil {
		return err
	}

	for len(heToEvaluate) > 0 {
		n := len(heToEvaluate) - 1
		indHe := heToEvaluate[n]
		heToEvaluate = heToEvaluate[:n]

		flip, err := d.shouldFlipHalfEdge(indHe)
		if err != nil {
			return err
		}
		if !flip {
			continue
		}
		he, err := d.mesh.HalfEdge(indHe)
		if err != nil {
			return err
		}
		add1 := he.Prev().Opposite().Index()
		add2 := he.Next().Opposite().Index()
		add3 := he.Opposite().Prev().Opposite().Index()
		add4 := he.Opposite().Next().Opposite().Index()
		d.mesh.FlipHalfEdge(indHe)
		heToEvaluate = append(heToEvaluate, add1, add2, add3, add4)
	}
	return nil
}

// insertFirstTriangle consumes indicesToInsert from the end until it
// finds three non-collinear points to bootstrap the mesh, returning the
// remaining indices (including any collinear points skipped along the
// way, which go back on top of the stack).
func (d *Delaunay2D) insertFirstTriangle(indicesToInsert []int) ([]int, error) {
	if len(indicesToInsert) < 2 {
		return nil, fmt.Errorf("delaunay2d: insertFirstTriangle: %w", delaunay.ErrDegenerateInput)
	}
	n := len(indicesToInsert)
	ind1, ind2 := indicesToInsert[n-1], indicesToInsert[n-2]
	indicesToInsert = indicesToInsert[:n-2]
	pt1, pt2 := d.vertices[ind1], d.vertices[ind2]

	var aligned []int
	for {
		if len(indicesToInsert) == 0 {
			return nil, fmt.Errorf("delaunay2d: could not find three non-collinear points: %w", delaunay.ErrDegenerateInput)
		}
		m := len(indicesToInsert) - 1
		ind3 := indicesToInsert[m]
		indicesToInsert = indicesToInsert[:m]
		pt3 := d.vertices[ind3]

		s := predicate.Orient2D(pt1, pt2, pt3)
		switch {
		case s > 0:
			if _, err := d.mesh.FirstTriangle([3]int{ind1, ind2, ind3}); err != nil {
				return nil, err
			}
		case s < 0:
			if _, err := d.mesh.FirstTriangle([3]int{ind1, ind3, ind2}); err != nil {
				return nil, err
			}
		default:
			aligned = append(aligned, ind3)
			continue
		}
		break
	}
	return append(indicesToInsert, aligned...), nil
}

// InsertVertex inserts a single point into an already-bootstrapped mesh,
// starting the visibility walk from nearTo, or from the most recently
// created triangle if nearTo is nil.
func (d *Delaunay2D) InsertVertex(vertex r2.Vec, nearTo *int) error {
	if !r2.IsFinite(vertex) {
		return fmt.Errorf("delaunay2d: InsertVertex: %w", delaunay.ErrNonFiniteInput)
	}
	if d.mesh.NumTriangles() == 0 {
		return fmt.Errorf("delaunay2d: InsertVertex: %w", delaunay.ErrCorruptMesh)
	}
	indVertex := len(d.vertices)
	d.vertices = append(d.vertices, vertex)
	near := d.mesh.NumTriangles() - 1
	if nearTo != nil {
		near = *nearTo
	}
	return d.insertVertexHelper(indVertex, near)
}

// InsertVertices inserts every point of toInsert, bootstrapping the mesh
// first if it is still empty. If reorderPoints is true the points are
// inserted in Hilbert-curve order for faster point location; the
// resulting triangulation does not depend on this order.
func (d *Delaunay2D) InsertVertices(toInsert []r2.Vec, reorderPoints bool) error {
	for _, v := range toInsert {
		if !r2.IsFinite(v) {
			return fmt.Errorf("delaunay2d: InsertVertices: %w", delaunay.ErrNonFiniteInput)
		}
	}
	indicesToInsert := make([]int, 0, len(toInsert))
	for _, v := range toInsert {
		indicesToInsert = append(indicesToInsert, len(d.vertices))
		d.vertices = append(d.vertices, v)
	}

	if len(d.vertices) < 3 {
		return fmt.Errorf("delaunay2d: InsertVertices: %w", delaunay.ErrDegenerateInput)
	}

	if reorderPoints {
		indicesToInsert = curve.Order2D(d.vertices, indicesToInsert)
	}

	if d.mesh.NumTriangles() == 0 {
		var err error
		indicesToInsert, err = d.insertFirstTriangle(indicesToInsert)
		if err != nil {
			return err
		}
	}

	for len(indicesToInsert) > 0 {
		n := len(indicesToInsert) - 1
		indVertex := indicesToInsert[n]
		indicesToInsert = indicesToInsert[:n]
		if err := d.insertVertexHelper(indVertex, d.mesh.NumTriangles()-1); err != nil {
			return err
		}
	}
	return nil
}

// Valid reports whether the triangulation is a valid Delaunay
// triangulation: the mesh's adjacency invariants hold, no triangle is
// flat, and no vertex lies strictly inside another triangle's
// circumcircle. It is intended for tests.
func (d *Delaunay2D) Valid() bool {
	if !d.mesh.Valid() {
		return false
	}
	valid := true
	for indTri := 0; indTri < d.mesh.NumTriangles(); indTri++ {
		flat, err := d.isTriangleFlat(indTri)
		if err != nil {
			d.log.Errorf("Valid: %v", err)
			valid = false
			continue
		}
		if flat {
			tri, _ := d.mesh.Triangle(indTri)
			d.log.Errorf("flat triangle: %s", tri)
			valid = false
		}
		for indVert := range d.vertices {
			inCircle, err := d.isVertexStrictInCircle(indVert, indTri)
			if err != nil {
				d.log.Errorf("Valid: %v", err)
				valid = false
				continue
			}
			if inCircle {
				tri, _ := d.mesh.Triangle(indTri)
				d.log.Errorf("non-Delaunay triangle: %s", tri)
				valid = false
			}
		}
	}
	return valid
}

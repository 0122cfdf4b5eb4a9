// Copyright ©2024 The Delaunay Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package delaunay2d

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/gonum-community/delaunay"
	"github.com/gonum-community/delaunay/spatial/r2"
)

func TestInsertVerticesTriangle(t *testing.T) {
	d := New(nil)
	pts := []r2.Vec{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}
	if err := d.InsertVertices(pts, false); err != nil {
		t.Fatalf("InsertVertices: %v", err)
	}
	if !d.Valid() {
		t.Errorf("triangulation should be valid")
	}
	if d.Mesh().NumTriangles() != 4 {
		t.Errorf("NumTriangles = %d, want 4", d.Mesh().NumTriangles())
	}
}

func TestInsertVerticesCocircular(t *testing.T) {
	d := New(nil)
	pts := []r2.Vec{{X: 1, Y: 0}, {X: 0, Y: 1}, {X: -1, Y: 0}, {X: 0, Y: -1}}
	if err := d.InsertVertices(pts, false); err != nil {
		t.Fatalf("InsertVertices: %v", err)
	}
	if !d.Valid() {
		t.Errorf("triangulation should be valid for cocircular points")
	}
}

func TestInsertVerticesGrid(t *testing.T) {
	var pts []r2.Vec
	for i := 0; i < 8; i++ {
		for j := 0; j < 8; j++ {
			pts = append(pts, r2.Vec{X: float64(i), Y: float64(j)})
		}
	}
	d := New(nil)
	if err := d.InsertVertices(pts, true); err != nil {
		t.Fatalf("InsertVertices: %v", err)
	}
	if !d.Valid() {
		t.Errorf("triangulation of grid should be valid")
	}
}

func TestInsertVerticesRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	pts := make([]r2.Vec, 200)
	for i := range pts {
		pts[i] = r2.Vec{X: rng.Float64(), Y: rng.Float64()}
	}
	d := New(nil)
	if err := d.InsertVertices(pts, true); err != nil {
		t.Fatalf("InsertVertices: %v", err)
	}
	if !d.Valid() {
		t.Errorf("triangulation of random points should be valid")
	}
}

func TestInsertVerticesOrderInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	pts := make([]r2.Vec, 40)
	for i := range pts {
		pts[i] = r2.Vec{X: rng.Float64(), Y: rng.Float64()}
	}

	d1 := New(nil)
	if err := d1.InsertVertices(pts, false); err != nil {
		t.Fatalf("InsertVertices: %v", err)
	}

	shuffled := append([]r2.Vec(nil), pts...)
	rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
	d2 := New(nil)
	if err := d2.InsertVertices(shuffled, true); err != nil {
		t.Fatalf("InsertVertices: %v", err)
	}

	if d1.Mesh().NumTriangles() != d2.Mesh().NumTriangles() {
		t.Errorf("NumTriangles differ between insertion orders: %d vs %d",
			d1.Mesh().NumTriangles(), d2.Mesh().NumTriangles())
	}
}

func TestInsertVertexIncremental(t *testing.T) {
	d := New(nil)
	base := []r2.Vec{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}
	if err := d.InsertVertices(base, false); err != nil {
		t.Fatalf("InsertVertices: %v", err)
	}
	if err := d.InsertVertex(r2.Vec{X: 0.2, Y: 0.2}, nil); err != nil {
		t.Fatalf("InsertVertex: %v", err)
	}
	if !d.Valid() {
		t.Errorf("triangulation should remain valid after incremental insertion")
	}
}

func TestInsertVerticesDegenerate(t *testing.T) {
	d := New(nil)
	pts := []r2.Vec{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 3, Y: 0}}
	if err := d.InsertVertices(pts, false); err == nil {
		t.Errorf("collinear input should fail to triangulate")
	}
}

func TestInsertVerticesRejectsNonFinite(t *testing.T) {
	d := New(nil)
	pts := []r2.Vec{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: math.NaN(), Y: 1}}
	if err := d.InsertVertices(pts, false); !errors.Is(err, delaunay.ErrNonFiniteInput) {
		t.Errorf("InsertVertices with NaN point: err = %v, want ErrNonFiniteInput", err)
	}
}

func TestInsertVertexRejectsNonFinite(t *testing.T) {
	d := New(nil)
	base := []r2.Vec{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}
	if err := d.InsertVertices(base, false); err != nil {
		t.Fatalf("InsertVertices: %v", err)
	}
	if err := d.InsertVertex(r2.Vec{X: math.Inf(1), Y: 0}, nil); !errors.Is(err, delaunay.ErrNonFiniteInput) {
		t.Errorf("InsertVertex with infinite point: err = %v, want ErrNonFiniteInput", err)
	}
}

func TestIsConvex(t *testing.T) {
	if got := isConvex(r2.Vec{X: 0, Y: 1}, r2.Vec{X: 0, Y: 0}, r2.Vec{X: 1, Y: 0}); got != 1 {
		t.Errorf("isConvex = %d, want 1", got)
	}
	flat := isConvex(r2.Vec{X: 0, Y: 0}, r2.Vec{X: 1, Y: 0}, r2.Vec{X: 2, Y: 0})
	if flat != 0 {
		t.Errorf("isConvex(flat, opposing) = %d, want 0", flat)
	}
	if got := isConvex(r2.Vec{X: 0, Y: 0}, r2.Vec{X: 2, Y: 0}, r2.Vec{X: 1, Y: 0}); got != 1 {
		t.Errorf("isConvex(flat, aligned) = %d, want 1", got)
	}
}

// Copyright ©2024 The Delaunay Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package delaunay3d

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/gonum-community/delaunay"
	"github.com/gonum-community/delaunay/spatial/r3"
)

func TestInsertVerticesTetrahedron(t *testing.T) {
	d := New(nil)
	pts := []r3.Vec{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}, {X: 0, Y: 0, Z: 1}}
	if err := d.InsertVertices(pts, false); err != nil {
		t.Fatalf("InsertVertices: %v", err)
	}
	if !d.Valid() {
		t.Errorf("tetrahedralization should be valid")
	}
	if d.Mesh().NumTetrahedra() != 5 {
		t.Errorf("NumTetrahedra = %d, want 5", d.Mesh().NumTetrahedra())
	}
}

func TestInsertVerticesCospherical(t *testing.T) {
	d := New(nil)
	pts := []r3.Vec{
		{X: 1, Y: 0, Z: 0}, {X: -1, Y: 0, Z: 0},
		{X: 0, Y: 1, Z: 0}, {X: 0, Y: -1, Z: 0},
		{X: 0, Y: 0, Z: 1},
	}
	if err := d.InsertVertices(pts, false); err != nil {
		t.Fatalf("InsertVertices: %v", err)
	}
	if !d.Valid() {
		t.Errorf("tetrahedralization should be valid for cospherical points")
	}
}

func TestInsertVerticesGrid(t *testing.T) {
	var pts []r3.Vec
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			for k := 0; k < 4; k++ {
				pts = append(pts, r3.Vec{X: float64(i), Y: float64(j), Z: float64(k)})
			}
		}
	}
	d := New(nil)
	if err := d.InsertVertices(pts, true); err != nil {
		t.Fatalf("InsertVertices: %v", err)
	}
	if !d.Valid() {
		t.Errorf("tetrahedralization of grid should be valid")
	}
}

func TestInsertVerticesRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	pts := make([]r3.Vec, 80)
	for i := range pts {
		pts[i] = r3.Vec{X: rng.Float64(), Y: rng.Float64(), Z: rng.Float64()}
	}
	d := New(nil)
	if err := d.InsertVertices(pts, true); err != nil {
		t.Fatalf("InsertVertices: %v", err)
	}
	if !d.Valid() {
		t.Errorf("tetrahedralization of random points should be valid")
	}
}

func TestInsertVerticesOrderInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	pts := make([]r3.Vec, 30)
	for i := range pts {
		pts[i] = r3.Vec{X: rng.Float64(), Y: rng.Float64(), Z: rng.Float64()}
	}

	d1 := New(nil)
	if err := d1.InsertVertices(pts, false); err != nil {
		t.Fatalf("InsertVertices: %v", err)
	}

	shuffled := append([]r3.Vec(nil), pts...)
	rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
	d2 := New(nil)
	if err := d2.InsertVertices(shuffled, true); err != nil {
		t.Fatalf("InsertVertices: %v", err)
	}

	if d1.Mesh().NumTetrahedra() != d2.Mesh().NumTetrahedra() {
		t.Errorf("NumTetrahedra differ between insertion orders: %d vs %d",
			d1.Mesh().NumTetrahedra(), d2.Mesh().NumTetrahedra())
	}
}

func TestInsertVertexIncremental(t *testing.T) {
	d := New(nil)
	base := []r3.Vec{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}, {X: 0, Y: 0, Z: 1}}
	if err := d.InsertVertices(base, false); err != nil {
		t.Fatalf("InsertVertices: %v", err)
	}
	if err := d.InsertVertex(r3.Vec{X: 0.1, Y: 0.1, Z: 0.1}, nil); err != nil {
		t.Fatalf("InsertVertex: %v", err)
	}
	if !d.Valid() {
		t.Errorf("tetrahedralization should remain valid after incremental insertion")
	}
}

func TestInsertVerticesDegenerate(t *testing.T) {
	d := New(nil)
	pts := []r3.Vec{
		{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0},
		{X: 0, Y: 1, Z: 0}, {X: 1, Y: 1, Z: 0},
	}
	if err := d.InsertVertices(pts, false); err == nil {
		t.Errorf("coplanar input should fail to tetrahedralize")
	}
}

func TestInsertVerticesRejectsNonFinite(t *testing.T) {
	d := New(nil)
	pts := []r3.Vec{
		{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0},
		{X: 0, Y: 1, Z: 0}, {X: math.NaN(), Y: 0, Z: 1},
	}
	if err := d.InsertVertices(pts, false); !errors.Is(err, delaunay.ErrNonFiniteInput) {
		t.Errorf("InsertVertices with NaN point: err = %v, want ErrNonFiniteInput", err)
	}
}

func TestInsertVertexRejectsNonFinite(t *testing.T) {
	d := New(nil)
	base := []r3.Vec{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}, {X: 0, Y: 0, Z: 1}}
	if err := d.InsertVertices(base, false); err != nil {
		t.Fatalf("InsertVertices: %v", err)
	}
	if err := d.InsertVertex(r3.Vec{X: math.Inf(-1), Y: 0, Z: 0}, nil); !errors.Is(err, delaunay.ErrNonFiniteInput) {
		t.Errorf("InsertVertex with infinite point: err = %v, want ErrNonFiniteInput", err)
	}
}

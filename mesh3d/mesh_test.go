// Copyright ©2024 The Delaunay Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh3d

import (
	"testing"

	"github.com/gonum-community/delaunay"
)

func TestFirstTetrahedronValid(t *testing.T) {
	m := New(nil)
	tets, err := m.FirstTetrahedron([4]int{0, 1, 2, 3})
	if err != nil {
		t.Fatalf("FirstTetrahedron: %v", err)
	}
	if m.NumTetrahedra() != 5 {
		t.Fatalf("NumTetrahedra = %d, want 5", m.NumTetrahedra())
	}
	if tets[0].ContainsInfinity() {
		t.Errorf("tetrahedron 0 should be finite")
	}
	for i := 1; i < 5; i++ {
		if !tets[i].ContainsInfinity() {
			t.Errorf("tetrahedron %d should contain infinity", i)
		}
	}
	if !m.Valid() {
		t.Errorf("mesh should be valid after FirstTetrahedron")
	}
}

func TestBowyerWatsonInsertValid(t *testing.T) {
	m := New(nil)
	if _, err := m.FirstTetrahedron([4]int{0, 1, 2, 3}); err != nil {
		t.Fatalf("FirstTetrahedron: %v", err)
	}

	// Grow the cavity from the finite tetrahedron only, keeping every
	// neighbor: this degenerates to a 1-in/4-out Bowyer-Watson star, the
	// combinatorial analogue of inserting a point strictly inside tet 0.
	if err := m.BWStart(0); err != nil {
		t.Fatalf("BWStart: %v", err)
	}
	for {
		ind, ok := m.BWTetraToCheck()
		if !ok {
			break
		}
		m.BWKeepTetra(ind)
	}
	added, err := m.BWInsertNode(delaunay.Finite(4))
	if err != nil {
		t.Fatalf("BWInsertNode: %v", err)
	}
	if len(added) != 4 {
		t.Fatalf("len(added) = %d, want 4", len(added))
	}
	m.CleanToRem()
	if !m.Valid() {
		t.Errorf("mesh should be valid after Bowyer-Watson insertion")
	}
	if m.NumTetrahedra() != 8 {
		t.Fatalf("NumTetrahedra = %d, want 8", m.NumTetrahedra())
	}
}

func TestTetrahedronOutOfRange(t *testing.T) {
	m := New(nil)
	if _, err := m.Tetrahedron(0); err == nil {
		t.Errorf("Tetrahedron on empty mesh should error")
	}
	if _, err := m.HalfTriangle(0); err == nil {
		t.Errorf("HalfTriangle on empty mesh should error")
	}
}

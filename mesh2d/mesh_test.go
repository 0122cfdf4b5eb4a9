// Copyright ©2024 The Delaunay Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh2d

import "testing"

func TestFirstTriangleValid(t *testing.T) {
	m := New(nil)
	tris, err := m.FirstTriangle([3]int{0, 1, 2})
	if err != nil {
		t.Fatalf("FirstTriangle: %v", err)
	}
	if m.NumTriangles() != 4 {
		t.Fatalf("NumTriangles = %d, want 4", m.NumTriangles())
	}
	if tris[0].ContainsInfinity() {
		t.Errorf("triangle 0 should be finite")
	}
	for i := 1; i < 4; i++ {
		if !tris[i].ContainsInfinity() {
			t.Errorf("triangle %d should contain infinity", i)
		}
	}
	if !m.Valid() {
		t.Errorf("mesh should be valid after FirstTriangle")
	}
}

func TestInsertNodeWithinTriangleValid(t *testing.T) {
	m := New(nil)
	if _, err := m.FirstTriangle([3]int{0, 1, 2}); err != nil {
		t.Fatalf("FirstTriangle: %v", err)
	}
	if _, err := m.InsertNodeWithinTriangle(3, 0); err != nil {
		t.Fatalf("InsertNodeWithinTriangle: %v", err)
	}
	if m.NumTriangles() != 6 {
		t.Fatalf("NumTriangles = %d, want 6", m.NumTriangles())
	}
	if !m.Valid() {
		t.Errorf("mesh should be valid after InsertNodeWithinTriangle")
	}
}

func TestFlipHalfEdgeValid(t *testing.T) {
	m := New(nil)
	if _, err := m.FirstTriangle([3]int{0, 1, 2}); err != nil {
		t.Fatalf("FirstTriangle: %v", err)
	}
	if _, err := m.InsertNodeWithinTriangle(3, 0); err != nil {
		t.Fatalf("InsertNodeWithinTriangle: %v", err)
	}
	// Flip the edge shared by triangle 0 and triangle 3 (n0-n1, opposite node 3 / the infinity node).
	he, err := m.HalfEdge(0)
	if err != nil {
		t.Fatalf("HalfEdge: %v", err)
	}
	m.FlipHalfEdge(he.Index())
	if !m.Valid() {
		t.Errorf("mesh should be valid after FlipHalfEdge")
	}
}

func TestHalfEdgeOutOfRange(t *testing.T) {
	m := New(nil)
	if _, err := m.HalfEdge(0); err == nil {
		t.Errorf("HalfEdge on empty mesh should error")
	}
	if _, err := m.Triangle(0); err == nil {
		t.Errorf("Triangle on empty mesh should error")
	}
}

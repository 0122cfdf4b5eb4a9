// Copyright ©2024 The Delaunay Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh3d

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/gonum-community/delaunay"
)

// Tetrahedron is a cursor onto one tetrahedron of a Mesh.
type Tetrahedron struct {
	m   *Mesh
	ind int
}

// Index returns the tetrahedron's index.
func (t Tetrahedron) Index() int { return t.ind }

func (t Tetrahedron) shouldRem() bool { return t.m.shouldRemTet[t.ind] }
func (t Tetrahedron) bwToKeep() bool  { return t.m.shouldKeepTet[t.ind] }

// HalfTriangles returns the four half-triangles bounding t, in order.
func (t Tetrahedron) HalfTriangles() [4]HalfTriangle {
	base := t.ind << 2
	return [4]HalfTriangle{
		{m: t.m, ind: base}, {m: t.m, ind: base + 1}, {m: t.m, ind: base + 2}, {m: t.m, ind: base + 3},
	}
}

// Nodes returns t's four nodes, in order.
func (t Tetrahedron) Nodes() [4]delaunay.Node {
	base := t.ind << 2
	return [4]delaunay.Node{
		t.m.tetNodes[base], t.m.tetNodes[base+1], t.m.tetNodes[base+2], t.m.tetNodes[base+3],
	}
}

// ContainsInfinity reports whether one of t's nodes is the Infinity node.
func (t Tetrahedron) ContainsInfinity() bool {
	for _, n := range t.Nodes() {
		if n.IsInfinite() {
			return true
		}
	}
	return false
}

func (t Tetrahedron) valid(log *zap.SugaredLogger) bool {
	if t.shouldRem() || t.bwToKeep() {
		log.Errorf("%s: non cleaned tetrahedron", t)
		return false
	}
	n := t.Nodes()
	if n[0].Equal(n[1]) || n[0].Equal(n[2]) || n[0].Equal(n[3]) ||
		n[1].Equal(n[2]) || n[1].Equal(n[3]) || n[2].Equal(n[3]) {
		log.Errorf("%s: wrong set of nodes", t)
		return false
	}
	return true
}

// String implements fmt.Stringer.
func (t Tetrahedron) String() string {
	n := t.Nodes()
	return fmt.Sprintf("tetrahedron %d: %s -> %s -> %s -> %s", t.ind, n[0], n[1], n[2], n[3])
}

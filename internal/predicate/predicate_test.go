// Copyright ©2024 The Delaunay Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package predicate

import (
	"math"
	"testing"

	"github.com/gonum-community/delaunay/spatial/r2"
	"github.com/gonum-community/delaunay/spatial/r3"
)

func TestOrient2D(t *testing.T) {
	cases := []struct {
		a, b, c r2.Vec
		want    int
	}{
		{r2.Vec{X: 0, Y: 0}, r2.Vec{X: 1, Y: 0}, r2.Vec{X: 0, Y: 1}, 1},
		{r2.Vec{X: 0, Y: 1}, r2.Vec{X: 1, Y: 0}, r2.Vec{X: 0, Y: 0}, -1},
		{r2.Vec{X: 0, Y: 0}, r2.Vec{X: 1, Y: 1}, r2.Vec{X: 2, Y: 2}, 0},
	}
	for _, c := range cases {
		if got := Orient2D(c.a, c.b, c.c); got != c.want {
			t.Errorf("Orient2D(%v,%v,%v) = %d, want %d", c.a, c.b, c.c, got, c.want)
		}
	}
}

func TestOrient2DNearDegenerate(t *testing.T) {
	// A triple that is collinear to within float64 rounding error but not
	// exactly: the exact fallback must still resolve a definite sign.
	a := r2.Vec{X: 0, Y: 0}
	b := r2.Vec{X: 1, Y: 1}
	c := r2.Vec{X: 2, Y: 2 + math.Pow(2, -51)}
	if got := Orient2D(a, b, c); got == 0 {
		t.Errorf("Orient2D should resolve a nonzero sign for a near-degenerate triple, got 0")
	}
}

func TestInCircle2D(t *testing.T) {
	a := r2.Vec{X: 0, Y: 0}
	b := r2.Vec{X: 1, Y: 0}
	c := r2.Vec{X: 0, Y: 1}
	inside := r2.Vec{X: 0.1, Y: 0.1}
	outside := r2.Vec{X: 5, Y: 5}
	onCircle := r2.Vec{X: 1, Y: 1}

	if got := InCircle2D(a, b, c, inside); got <= 0 {
		t.Errorf("InCircle2D(inside) = %d, want > 0", got)
	}
	if got := InCircle2D(a, b, c, outside); got >= 0 {
		t.Errorf("InCircle2D(outside) = %d, want < 0", got)
	}
	if got := InCircle2D(a, b, c, onCircle); got != 0 {
		t.Errorf("InCircle2D(onCircle) = %d, want 0", got)
	}
}

func TestOrient3D(t *testing.T) {
	a := r3.Vec{X: 0, Y: 0, Z: 0}
	b := r3.Vec{X: 1, Y: 0, Z: 0}
	c := r3.Vec{X: 0, Y: 1, Z: 0}
	below := r3.Vec{X: 0, Y: 0, Z: -1}
	above := r3.Vec{X: 0, Y: 0, Z: 1}
	coplanar := r3.Vec{X: 1, Y: 1, Z: 0}

	if got := Orient3D(a, b, c, below); got <= 0 {
		t.Errorf("Orient3D(below) = %d, want > 0", got)
	}
	if got := Orient3D(a, b, c, above); got >= 0 {
		t.Errorf("Orient3D(above) = %d, want < 0", got)
	}
	if got := Orient3D(a, b, c, coplanar); got != 0 {
		t.Errorf("Orient3D(coplanar) = %d, want 0", got)
	}
}

func TestInSphere3D(t *testing.T) {
	a := r3.Vec{X: 0, Y: 0, Z: 0}
	b := r3.Vec{X: 1, Y: 0, Z: 0}
	c := r3.Vec{X: 0, Y: 1, Z: 0}
	d := r3.Vec{X: 0, Y: 0, Z: -1}
	inside := r3.Vec{X: 0.1, Y: 0.1, Z: -0.1}
	outside := r3.Vec{X: 10, Y: 10, Z: 10}

	if got := InSphere3D(a, b, c, d, inside); got <= 0 {
		t.Errorf("InSphere3D(inside) = %d, want > 0", got)
	}
	if got := InSphere3D(a, b, c, d, outside); got >= 0 {
		t.Errorf("InSphere3D(outside) = %d, want < 0", got)
	}
}

func TestInSphere3DCospherical(t *testing.T) {
	// Five points on the unit sphere, exactly cospherical.
	a := r3.Vec{X: 1, Y: 0, Z: 0}
	b := r3.Vec{X: -1, Y: 0, Z: 0}
	c := r3.Vec{X: 0, Y: 1, Z: 0}
	d := r3.Vec{X: 0, Y: -1, Z: 0}
	e := r3.Vec{X: 0, Y: 0, Z: 1}
	if got := InSphere3D(a, b, c, d, e); got != 0 {
		t.Errorf("InSphere3D(cospherical) = %d, want 0", got)
	}
}

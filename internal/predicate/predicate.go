// Copyright ©2024 The Delaunay Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package predicate implements the sign-exact orientation and in-circle /
// in-sphere tests the triangulation engine relies on for combinatorial
// correctness. Each predicate first evaluates a plain float64 determinant
// together with a conservative backward error bound (the static filter of
// Shewchuk's adaptive-precision scheme); when the magnitude of the
// determinant cannot beat rounding error, the sign is recomputed exactly
// with rational arithmetic so the result always matches the sign of the
// true, infinite-precision determinant.
package predicate

import (
	"math"
	"math/big"

	"github.com/gonum-community/delaunay/spatial/r2"
	"github.com/gonum-community/delaunay/spatial/r3"
)

// epsilon is half the float64 machine epsilon, the unit roundoff used by
// Shewchuk's error-bound derivations.
const epsilon = 1.0 / (1 << 53)

// ccwErrBoundA bounds the error of the unfiltered 2D orientation
// determinant as a multiple of the sum of the absolute values of its
// two products.
const ccwErrBoundA = (3.0 + 16.0*epsilon) * epsilon

// iccErrBoundA bounds the error of the unfiltered 2D in-circle
// determinant.
const iccErrBoundA = (10.0 + 96.0*epsilon) * epsilon

// o3dErrBoundA bounds the error of the unfiltered 3D orientation
// determinant.
const o3dErrBoundA = (7.0 + 56.0*epsilon) * epsilon

// ispErrBoundA bounds the error of the unfiltered 3D in-sphere
// determinant.
const ispErrBoundA = (16.0 + 224.0*epsilon) * epsilon

// sign returns -1, 0 or +1 matching the sign of x, with x==0 returning 0.
func sign(x float64) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

// Orient2D returns the sign of the determinant
//
//	| a.X-c.X  a.Y-c.Y |
//	| b.X-c.X  b.Y-c.Y |
//
// It is positive when a, b, c are in counter-clockwise order, negative when
// clockwise, and exactly zero when the three points are collinear.
func Orient2D(a, b, c r2.Vec) int {
	acx := a.X - c.X
	bcx := b.X - c.X
	acy := a.Y - c.Y
	bcy := b.Y - c.Y
	det := acx*bcy - acy*bcx

	bound := ccwErrBoundA * (math.Abs(acx*bcy) + math.Abs(acy*bcx))
	if math.Abs(det) > bound {
		return sign(det)
	}
	return exactOrient2D(a, b, c)
}

// InCircle2D returns the sign of the in-circle determinant of d against
// the circle through a, b, c (assumed counter-clockwise). The result is
// positive when d lies strictly inside that circle, negative when outside,
// and zero when the four points are cocircular.
func InCircle2D(a, b, c, d r2.Vec) int {
	adx := a.X - d.X
	ady := a.Y - d.Y
	bdx := b.X - d.X
	bdy := b.Y - d.Y
	cdx := c.X - d.X
	cdy := c.Y - d.Y

	alift := adx*adx + ady*ady
	blift := bdx*bdx + bdy*bdy
	clift := cdx*cdx + cdy*cdy

	det := alift*(bdx*cdy-bdy*cdx) -
		blift*(adx*cdy-ady*cdx) +
		clift*(adx*bdy-ady*bdx)

	permanent := (math.Abs(bdx*cdy)+math.Abs(bdy*cdx))*alift +
		(math.Abs(adx*cdy)+math.Abs(ady*cdx))*blift +
		(math.Abs(adx*bdy)+math.Abs(ady*bdx))*clift
	bound := iccErrBoundA * permanent
	if math.Abs(det) > bound {
		return sign(det)
	}
	return exactInCircle2D(a, b, c, d)
}

// Orient3D returns the sign of the determinant
//
//	| a-d |
//	| b-d |
//	| c-d |
//
// It is positive when d lies below the plane through a, b, c (so that
// a, b, c, d form a positively oriented tetrahedron), negative when above,
// and exactly zero when the four points are coplanar.
func Orient3D(a, b, c, d r3.Vec) int {
	adx, ady, adz := a.X-d.X, a.Y-d.Y, a.Z-d.Z
	bdx, bdy, bdz := b.X-d.X, b.Y-d.Y, b.Z-d.Z
	cdx, cdy, cdz := c.X-d.X, c.Y-d.Y, c.Z-d.Z

	bdxcdy := bdx * cdy
	bdycdx := bdy * cdx
	cdxady := cdx * ady
	cdyadx := cdy * adx
	adxbdy := adx * bdy
	adybdx := ady * bdx

	det := adz*(bdxcdy-bdycdx) + bdz*(cdxady-cdyadx) + cdz*(adxbdy-adybdx)

	permanent := (math.Abs(bdxcdy)+math.Abs(bdycdx))*math.Abs(adz) +
		(math.Abs(cdxady)+math.Abs(cdyadx))*math.Abs(bdz) +
		(math.Abs(adxbdy)+math.Abs(adybdx))*math.Abs(cdz)
	bound := o3dErrBoundA * permanent
	if math.Abs(det) > bound {
		return sign(det)
	}
	return exactOrient3D(a, b, c, d)
}

// InSphere3D returns the sign of the in-sphere determinant of e against
// the sphere through a, b, c, d (assumed positively oriented). The result
// is positive when e lies strictly inside that sphere, negative when
// outside, and zero when the five points are cospherical.
func InSphere3D(a, b, c, d, e r3.Vec) int {
	ax, ay, az := a.X-e.X, a.Y-e.Y, a.Z-e.Z
	bx, by, bz := b.X-e.X, b.Y-e.Y, b.Z-e.Z
	cx, cy, cz := c.X-e.X, c.Y-e.Y, c.Z-e.Z
	dx, dy, dz := d.X-e.X, d.Y-e.Y, d.Z-e.Z

	al := ax*ax + ay*ay + az*az
	bl := bx*bx + by*by + bz*bz
	cl := cx*cx + cy*cy + cz*cz
	dl := dx*dx + dy*dy + dz*dz

	det3 := func(x1, y1, z1, x2, y2, z2, x3, y3, z3 float64) float64 {
		return x1*(y2*z3-z2*y3) - y1*(x2*z3-z2*x3) + z1*(x2*y3-y2*x3)
	}
	m0 := det3(bx, by, bz, cx, cy, cz, dx, dy, dz)
	m1 := det3(ax, ay, az, cx, cy, cz, dx, dy, dz)
	m2 := det3(ax, ay, az, bx, by, bz, dx, dy, dz)
	m3 := det3(ax, ay, az, bx, by, bz, cx, cy, cz)

	det := -al*m0 + bl*m1 - cl*m2 + dl*m3
	permanent := al*math.Abs(m0) + bl*math.Abs(m1) + cl*math.Abs(m2) + dl*math.Abs(m3)
	bound := ispErrBoundA * permanent
	if math.Abs(det) > bound {
		return sign(det)
	}
	return exactInSphereRat(a, b, c, d, e).Sign()
}

// exactOrient2D recomputes Orient2D's determinant with exact rational
// arithmetic. float64 values convert to big.Rat without loss, so the
// returned sign always matches the true determinant's sign.
func exactOrient2D(a, b, c r2.Vec) int {
	ax, ay := ratf(a.X), ratf(a.Y)
	bx, by := ratf(b.X), ratf(b.Y)
	cx, cy := ratf(c.X), ratf(c.Y)

	acx := new(big.Rat).Sub(ax, cx)
	bcy := new(big.Rat).Sub(by, cy)
	acy := new(big.Rat).Sub(ay, cy)
	bcx := new(big.Rat).Sub(bx, cx)

	det := new(big.Rat).Sub(mul(acx, bcy), mul(acy, bcx))
	return det.Sign()
}

func exactInCircle2D(a, b, c, d r2.Vec) int {
	sub := func(p, q r2.Vec) (*big.Rat, *big.Rat) {
		return new(big.Rat).Sub(ratf(p.X), ratf(q.X)), new(big.Rat).Sub(ratf(p.Y), ratf(q.Y))
	}
	adx, ady := sub(a, d)
	bdx, bdy := sub(b, d)
	cdx, cdy := sub(c, d)

	lift := func(x, y *big.Rat) *big.Rat { return new(big.Rat).Add(mul(x, x), mul(y, y)) }
	alift := lift(adx, ady)
	blift := lift(bdx, bdy)
	clift := lift(cdx, cdy)

	term := func(l, x1, y1, x2, y2 *big.Rat) *big.Rat {
		return mul(l, new(big.Rat).Sub(mul(x1, y2), mul(y1, x2)))
	}
	det := new(big.Rat)
	det.Add(det, term(alift, bdx, bdy, cdx, cdy))
	det.Sub(det, term(blift, adx, ady, cdx, cdy))
	det.Add(det, term(clift, adx, ady, bdx, bdy))
	return det.Sign()
}

func exactOrient3D(a, b, c, d r3.Vec) int {
	sub := func(p, q r3.Vec) (*big.Rat, *big.Rat, *big.Rat) {
		return new(big.Rat).Sub(ratf(p.X), ratf(q.X)),
			new(big.Rat).Sub(ratf(p.Y), ratf(q.Y)),
			new(big.Rat).Sub(ratf(p.Z), ratf(q.Z))
	}
	adx, ady, adz := sub(a, d)
	bdx, bdy, bdz := sub(b, d)
	cdx, cdy, cdz := sub(c, d)

	det := new(big.Rat)
	det.Add(det, mul(adz, new(big.Rat).Sub(mul(bdx, cdy), mul(bdy, cdx))))
	det.Add(det, mul(bdz, new(big.Rat).Sub(mul(cdx, ady), mul(cdy, adx))))
	det.Add(det, mul(cdz, new(big.Rat).Sub(mul(adx, bdy), mul(ady, bdx))))
	return det.Sign()
}

func exactInSphereRat(a, b, c, d, e r3.Vec) *big.Rat {
	sub := func(p, q r3.Vec) (*big.Rat, *big.Rat, *big.Rat) {
		return new(big.Rat).Sub(ratf(p.X), ratf(q.X)),
			new(big.Rat).Sub(ratf(p.Y), ratf(q.Y)),
			new(big.Rat).Sub(ratf(p.Z), ratf(q.Z))
	}
	ax, ay, az := sub(a, e)
	bx, by, bz := sub(b, e)
	cx, cy, cz := sub(c, e)
	dx, dy, dz := sub(d, e)

	lift := func(x, y, z *big.Rat) *big.Rat {
		s := new(big.Rat)
		s.Add(s, mul(x, x))
		s.Add(s, mul(y, y))
		s.Add(s, mul(z, z))
		return s
	}
	al := lift(ax, ay, az)
	bl := lift(bx, by, bz)
	cl := lift(cx, cy, cz)
	dl := lift(dx, dy, dz)

	det3 := func(x1, y1, z1, x2, y2, z2, x3, y3, z3 *big.Rat) *big.Rat {
		t1 := mul(x1, new(big.Rat).Sub(mul(y2, z3), mul(z2, y3)))
		t2 := mul(y1, new(big.Rat).Sub(mul(x2, z3), mul(z2, x3)))
		t3 := mul(z1, new(big.Rat).Sub(mul(x2, y3), mul(y2, x3)))
		r := new(big.Rat)
		r.Add(r, t1)
		r.Sub(r, t2)
		r.Add(r, t3)
		return r
	}

	// Expand the 5x5 in-sphere determinant by cofactors of its lifted
	// column, matching the classic formulation used by Bowyer-Watson
	// implementations.
	m0 := det3(bx, by, bz, cx, cy, cz, dx, dy, dz)
	m1 := det3(ax, ay, az, cx, cy, cz, dx, dy, dz)
	m2 := det3(ax, ay, az, bx, by, bz, dx, dy, dz)
	m3 := det3(ax, ay, az, bx, by, bz, cx, cy, cz)

	det := new(big.Rat)
	det.Sub(det, mul(al, m0))
	det.Add(det, mul(bl, m1))
	det.Sub(det, mul(cl, m2))
	det.Add(det, mul(dl, m3))
	return det
}

func ratf(x float64) *big.Rat {
	r := new(big.Rat)
	r.SetFloat64(x)
	return r
}

func mul(a, b *big.Rat) *big.Rat { return new(big.Rat).Mul(a, b) }

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package clipplane recovers the world-space camera plane from a
// world-to-screen matrix.
//
// The line shader clips thick lines against this plane so that segments
// crossing behind the camera do not flip across the screen.
package clipplane

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/gogpu/campath/device"
)

// ErrSingular is returned when the matrix cannot be inverted reliably.
var ErrSingular = errors.New("clipplane: world-to-screen matrix is singular")

// Solve returns a point on the camera plane and the plane's unit normal,
// pointing into the view.
//
// For a world point p, the matrix m maps (p, 1) to clip coordinates
// (x, y, z, w). The plane point is the world point with clip coordinates
// (0, 0, 0, w); the normal points from it towards the world point with clip
// coordinates (0, 0, 1, w). Both come from the linear system
//
//	m[r][0]*px + m[r][1]*py + m[r][2]*pz + m[r][3] = c[r]   (r = 0..2)
//	m[3][0]*px + m[3][1]*py + m[3][2]*pz + m[3][3] = w
//
// with unknowns (px, py, pz, w) and c = (0, 0, 0) or (0, 0, 1).
func Solve(m device.Matrix4) (point, normal r3.Vec, err error) {
	a := mat.NewDense(4, 4, nil)
	for r := 0; r < 4; r++ {
		for c := 0; c < 3; c++ {
			a.Set(r, c, float64(m[r][c]))
		}
	}
	a.Set(3, 3, -1)

	var lu mat.LU
	lu.Factorize(a)
	if c := lu.Cond(); math.IsInf(c, 0) || math.IsNaN(c) || c > mat.ConditionTolerance {
		return r3.Vec{}, r3.Vec{}, fmt.Errorf("%w: condition number %g", ErrSingular, c)
	}

	offset := [4]float64{-float64(m[0][3]), -float64(m[1][3]), -float64(m[2][3]), -float64(m[3][3])}
	b0 := mat.NewVecDense(4, offset[:])
	bn := mat.NewVecDense(4, []float64{offset[0], offset[1], offset[2] + 1, offset[3]})

	var x0, xn mat.VecDense
	if err := lu.SolveVecTo(&x0, false, b0); err != nil {
		return r3.Vec{}, r3.Vec{}, fmt.Errorf("%w: %w", ErrSingular, err)
	}
	if err := lu.SolveVecTo(&xn, false, bn); err != nil {
		return r3.Vec{}, r3.Vec{}, fmt.Errorf("%w: %w", ErrSingular, err)
	}

	point = r3.Vec{X: x0.AtVec(0), Y: x0.AtVec(1), Z: x0.AtVec(2)}
	dir := r3.Sub(r3.Vec{X: xn.AtVec(0), Y: xn.AtVec(1), Z: xn.AtVec(2)}, point)
	n := r3.Norm(dir)
	if n == 0 || math.IsNaN(n) || math.IsInf(n, 0) {
		return r3.Vec{}, r3.Vec{}, fmt.Errorf("%w: degenerate plane normal", ErrSingular)
	}
	return point, r3.Scale(1/n, dir), nil
}

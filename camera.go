// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package campath

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Glyph sizes in world units and line widths in pixels.
const (
	CrossRadius          = 36.0
	CameraRadius         = CrossRadius / 2
	crossPixelWidth      = 4
	cameraPixelWidth     = 4
	trajectoryPixelWidth = 8
)

// Field of view limits in degrees.
const (
	minFov = 1.0
	maxFov = 179.0
)

// CameraEdges returns the ten edges of the wireframe camera glyph for v:
// four from the eye to the corners of the image rectangle, the rectangle
// itself and a small roof over its top edge marking up.
//
// aspect is the screen height divided by its width.
func CameraEdges(v Value, aspect float64) [10][2]r3.Vec {
	fov := min(maxFov, max(minFov, v.Fov))
	if math.IsNaN(fov) {
		fov = minFov
	}

	rot := rotation(v.Rotation)
	fwd := rot.Rotate(r3.Vec{X: 1})
	right := rot.Rotate(r3.Vec{Y: -1})
	up := rot.Rotate(r3.Vec{Z: 1})

	a := math.Sin(fov*math.Pi/360) * CameraRadius
	b := a * aspect

	cp := v.Position
	center := r3.Add(cp, r3.Scale(CameraRadius, fwd))
	corner := func(sx, sy float64) r3.Vec {
		return r3.Add(center, r3.Add(r3.Scale(sx*a, right), r3.Scale(sy*b, up)))
	}
	lu := corner(-1, 1)
	ru := corner(1, 1)
	ld := corner(-1, -1)
	rd := corner(1, -1)
	mu := r3.Add(lu, r3.Scale(0.5, r3.Sub(ru, lu)))
	muu := r3.Add(mu, r3.Scale(0.5*b, up))

	return [10][2]r3.Vec{
		{cp, ld}, {cp, rd}, {cp, lu}, {cp, ru},
		{ld, rd}, {rd, ru}, {ru, lu}, {lu, ld},
		{lu, muu}, {ru, muu},
	}
}

// CrossEdges returns the three axis-aligned lines of the keyframe cross
// centered on p.
func CrossEdges(p r3.Vec) [3][2]r3.Vec {
	return [3][2]r3.Vec{
		{{X: p.X - CrossRadius, Y: p.Y, Z: p.Z}, {X: p.X + CrossRadius, Y: p.Y, Z: p.Z}},
		{{X: p.X, Y: p.Y - CrossRadius, Z: p.Z}, {X: p.X, Y: p.Y + CrossRadius, Z: p.Z}},
		{{X: p.X, Y: p.Y, Z: p.Z - CrossRadius}, {X: p.X, Y: p.Y, Z: p.Z + CrossRadius}},
	}
}

// rotation normalizes q. A zero quaternion is the identity.
func rotation(q quat.Number) r3.Rotation {
	n := quat.Abs(q)
	if n == 0 || math.IsNaN(n) || math.IsInf(n, 0) {
		return r3.Rotation{Real: 1}
	}
	return r3.Rotation(quat.Scale(1/n, q))
}

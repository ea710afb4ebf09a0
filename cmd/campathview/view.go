// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"math"

	"github.com/gogpu/gpucontext"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/gogpu/campath/device"
	"github.com/gogpu/campath/internal/keyframes"
)

// view is a fixed viewer looking at the scene.
type view struct {
	gpucontext.NullWindowProvider
	matrix device.Matrix4
	now    float64
}

func newView(out OutputConfig, cam CameraConfig) *view {
	return &view{
		NullWindowProvider: gpucontext.NullWindowProvider{W: out.Width, H: out.Height},
		matrix:             lookMatrix(cam, out.Width, out.Height),
	}
}

func (v *view) WorldToScreen() device.Matrix4 { return v.matrix }
func (v *view) Time() float64                 { return v.now }

// lookMatrix builds the world-to-screen matrix of cam for a w by h screen.
// The camera looks down its rotated +X axis with +Z up. Clip depth is 0 at
// the near plane and w at the far plane.
func lookMatrix(cam CameraConfig, w, h int) device.Matrix4 {
	rot := r3.Rotation(keyframes.Euler(cam.Pitch, cam.Yaw, 0))
	fwd := rot.Rotate(r3.Vec{X: 1})
	right := rot.Rotate(r3.Vec{Y: -1})
	up := rot.Rotate(r3.Vec{Z: 1})
	eye := r3.Vec{X: cam.X, Y: cam.Y, Z: cam.Z}

	sx := 1 / math.Tan(cam.Fov*math.Pi/360)
	sy := sx
	if h != 0 {
		sy = sx * float64(w) / float64(h)
	}
	q := cam.Far / (cam.Far - cam.Near)

	row := func(axis r3.Vec, scale, offset float64) [4]float32 {
		return [4]float32{
			float32(scale * axis.X),
			float32(scale * axis.Y),
			float32(scale * axis.Z),
			float32(-scale*r3.Dot(axis, eye) + offset),
		}
	}
	return device.Matrix4{
		row(right, sx, 0),
		row(up, sy, 0),
		row(fwd, q, -q*cam.Near),
		row(fwd, 1, 0),
	}
}

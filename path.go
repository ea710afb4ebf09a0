// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package campath

import (
	"iter"

	"github.com/gogpu/gpucontext"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/gogpu/campath/device"
)

// Value is the camera state of a path at one point in time.
type Value struct {
	Position r3.Vec
	// Rotation is a unit quaternion. The camera looks down +X with +Z up
	// when Rotation is the identity.
	Rotation quat.Number
	// Fov is the horizontal field of view in degrees.
	Fov      float64
	Selected bool
}

// Path is a time-parameterized camera path.
type Path interface {
	// Len returns the number of keyframes.
	Len() int
	// LowerBound returns the time of the first keyframe.
	LowerBound() float64
	// UpperBound returns the time of the last keyframe.
	UpperBound() float64
	// CanEval reports whether Eval may be called.
	CanEval() bool
	// Enabled reports whether the path currently drives the camera.
	Enabled() bool
	// Eval returns the interpolated value at t.
	Eval(t float64) Value
	// Keyframes yields the keyframes in increasing time order.
	Keyframes() iter.Seq2[float64, Value]
	// SetOnChanged registers fn to be called after every change to the
	// path. Nil removes the callback.
	SetOnChanged(fn func())
}

// View is the host's view of the scene being rendered.
type View interface {
	gpucontext.WindowProvider

	// WorldToScreen returns the current world-to-screen matrix.
	WorldToScreen() device.Matrix4
	// Time returns the current playback time in the path's time base.
	Time() float64
}

// ShaderProvider resolves the line shaders on a device. The caller owns the
// returned references.
type ShaderProvider interface {
	VertexShader(dev device.Device, name string) (device.Shader, error)
	PixelShader(dev device.Device, name string) (device.Shader, error)
}

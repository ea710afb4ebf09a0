// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package device

// RenderState identifies a fixed-function render state.
type RenderState uint32

// Render states. Values are documented per state; booleans use 0 and 1.
const (
	// RenderStateSRGBWrite enables linear-to-sRGB conversion on write (bool).
	RenderStateSRGBWrite RenderState = iota

	// RenderStateColorWrite is the gputypes.ColorWriteMask of written channels.
	RenderStateColorWrite

	// RenderStateDepthEnable enables the depth test (bool).
	RenderStateDepthEnable

	// RenderStateDepthWrite enables depth buffer writes (bool).
	RenderStateDepthWrite

	// RenderStateDepthFunc is the gputypes.CompareFunction of the depth test.
	RenderStateDepthFunc

	// RenderStateAlphaTest enables the alpha test (bool).
	RenderStateAlphaTest

	// RenderStateSeparateAlphaBlend enables a separate alpha blend equation (bool).
	RenderStateSeparateAlphaBlend

	// RenderStateAlphaBlend enables blending (bool).
	RenderStateAlphaBlend

	// RenderStateBlendOp is the gputypes.BlendOperation of the color equation.
	RenderStateBlendOp

	// RenderStateSrcBlend is the gputypes.BlendFactor applied to the source.
	RenderStateSrcBlend

	// RenderStateDestBlend is the gputypes.BlendFactor applied to the destination.
	RenderStateDestBlend

	// RenderStateCullMode is the gputypes.CullMode.
	RenderStateCullMode

	// NumRenderStates is the number of render states.
	NumRenderStates
)

var renderStateNames = [NumRenderStates]string{
	"SRGBWrite",
	"ColorWrite",
	"DepthEnable",
	"DepthWrite",
	"DepthFunc",
	"AlphaTest",
	"SeparateAlphaBlend",
	"AlphaBlend",
	"BlendOp",
	"SrcBlend",
	"DestBlend",
	"CullMode",
}

// String returns the state name.
func (s RenderState) String() string {
	if s < NumRenderStates {
		return renderStateNames[s]
	}
	return "Unknown"
}

// Bool encodes a boolean render-state value.
func Bool(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

// Matrix4 is a row-major 4x4 matrix applied to column vectors:
// clip = M * (x, y, z, 1).
type Matrix4 [4][4]float32

// Rows returns the matrix as four shader constant registers.
func (m Matrix4) Rows() [][4]float32 {
	return [][4]float32{m[0], m[1], m[2], m[3]}
}

// Transform applies m to the point (x, y, z, 1).
func (m Matrix4) Transform(x, y, z float64) [4]float64 {
	var out [4]float64
	for r := 0; r < 4; r++ {
		out[r] = float64(m[r][0])*x + float64(m[r][1])*y + float64(m[r][2])*z + float64(m[r][3])
	}
	return out
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package batch

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/gputypes"
	"gonum.org/v1/gonum/spatial/r3"
)

// VertexSize is the encoded size of a Vertex in bytes.
const VertexSize = 52

// LengthScale converts world lengths into the range the line shader expects.
const LengthScale = 1.0 / 8192

// Color is an 8-bit RGBA color. It is stored in vertices as a packed ARGB word.
type Color struct {
	R, G, B, A uint8
}

// ARGB returns the color packed as 0xAARRGGBB.
func (c Color) ARGB() uint32 {
	return uint32(c.A)<<24 | uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// ColorFromARGB unpacks a 0xAARRGGBB word.
func ColorFromARGB(v uint32) Color {
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: uint8(v >> 24)}
}

// Complement returns c with each color channel replaced by 0xFF minus its
// value. Alpha is kept.
func (c Color) Complement() Color {
	return Color{R: 0xFF - c.R, G: 0xFF - c.G, B: 0xFF - c.B, A: c.A}
}

// Vertex is one line vertex.
//
// Pos is the line point. ToPrev and ToNext are unit vectors towards the
// neighboring points (zero when a neighbor coincides). Side is +1 or -1 and
// selects which edge of the thick line the vertex is pushed to. LenPrev and
// LenNext are the distances to the neighbors scaled by LengthScale.
type Vertex struct {
	Pos     [3]float32
	ToPrev  [3]float32
	ToNext  [3]float32
	Side    float32
	LenPrev float32
	LenNext float32
	Color   Color
}

// Layout returns the vertex buffer layout matching Vertex encoding.
func Layout() gputypes.VertexBufferLayout {
	return gputypes.VertexBufferLayout{
		ArrayStride: VertexSize,
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes: []gputypes.VertexAttribute{
			{Format: gputypes.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
			{Format: gputypes.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
			{Format: gputypes.VertexFormatFloat32x3, Offset: 24, ShaderLocation: 2},
			{Format: gputypes.VertexFormatFloat32x3, Offset: 36, ShaderLocation: 3},
			{Format: gputypes.VertexFormatUnorm8x4, Offset: 48, ShaderLocation: 4},
		},
	}
}

// Encode writes v into b in little-endian order. b must hold VertexSize bytes.
func (v *Vertex) Encode(b []byte) {
	_ = b[VertexSize-1]
	put3(b[0:], v.Pos)
	put3(b[12:], v.ToPrev)
	put3(b[24:], v.ToNext)
	put3(b[36:], [3]float32{v.Side, v.LenPrev, v.LenNext})
	binary.LittleEndian.PutUint32(b[48:], v.Color.ARGB())
}

// Decode reads a vertex written by Encode.
func Decode(b []byte) Vertex {
	_ = b[VertexSize-1]
	t := get3(b[36:])
	return Vertex{
		Pos:     get3(b[0:]),
		ToPrev:  get3(b[12:]),
		ToNext:  get3(b[24:]),
		Side:    t[0],
		LenPrev: t[1],
		LenNext: t[2],
		Color:   ColorFromARGB(binary.LittleEndian.Uint32(b[48:])),
	}
}

func put3(b []byte, v [3]float32) {
	binary.LittleEndian.PutUint32(b[0:], math.Float32bits(v[0]))
	binary.LittleEndian.PutUint32(b[4:], math.Float32bits(v[1]))
	binary.LittleEndian.PutUint32(b[8:], math.Float32bits(v[2]))
}

func get3(b []byte) [3]float32 {
	return [3]float32{
		math.Float32frombits(binary.LittleEndian.Uint32(b[0:])),
		math.Float32frombits(binary.LittleEndian.Uint32(b[4:])),
		math.Float32frombits(binary.LittleEndian.Uint32(b[8:])),
	}
}

// BuildPolylinePoint returns the vertex pair for cur in a strip running from
// prev through cur to next.
func BuildPolylinePoint(prev, cur r3.Vec, color Color, next r3.Vec) [2]Vertex {
	dp := r3.Sub(prev, cur)
	dn := r3.Sub(next, cur)
	v := Vertex{
		Pos:     vec32(cur),
		ToPrev:  vec32(unit(dp)),
		ToNext:  vec32(unit(dn)),
		LenPrev: float32(r3.Norm(dp) * LengthScale),
		LenNext: float32(r3.Norm(dn) * LengthScale),
		Color:   color,
	}
	out := [2]Vertex{v, v}
	out[0].Side = 1
	out[1].Side = -1
	return out
}

// BuildSingleLine returns the four vertices of an isolated segment: a pair at
// from followed by a pair at to.
func BuildSingleLine(from r3.Vec, fromColor Color, to r3.Vec, toColor Color) [4]Vertex {
	d := r3.Sub(to, from)
	n := unit(d)
	length := float32(r3.Norm(d) * LengthScale)

	base := Vertex{
		ToPrev: vec32(r3.Scale(-1, n)),
		ToNext: vec32(n),
	}
	var out [4]Vertex
	for i := range out {
		out[i] = base
		if i%2 == 0 {
			out[i].Side = 1
		} else {
			out[i].Side = -1
		}
		if i < 2 {
			out[i].Pos = vec32(from)
			out[i].LenNext = length
			out[i].Color = fromColor
		} else {
			out[i].Pos = vec32(to)
			out[i].LenPrev = length
			out[i].Color = toColor
		}
	}
	return out
}

// unit returns v normalized, or the zero vector when v has no length.
func unit(v r3.Vec) r3.Vec {
	n := r3.Norm(v)
	if n == 0 || math.IsNaN(n) || math.IsInf(n, 0) {
		return r3.Vec{}
	}
	return r3.Scale(1/n, v)
}

func vec32(v r3.Vec) [3]float32 {
	return [3]float32{float32(v.X), float32(v.Y), float32(v.Z)}
}

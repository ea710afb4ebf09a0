// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package soft

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gogpu/gg"
	"github.com/gogpu/gputypes"
)

// nearW is the smallest clip-space w a preview line endpoint may have.
const nearW = 1e-4

// Previewer rasterizes recorded triangle-strip line draws with gg.
//
// Each draw is read as a sequence of coincident vertex pairs: vertex 2i is the
// line point, vertex 2i+1 its mirrored twin. Consecutive points are joined by
// a stroke. Positions come from the attribute at shader location 0
// (Float32x3) and colors from the first Unorm8x4 attribute, read as a packed
// little-endian ARGB word.
type Previewer struct {
	// MatrixRegister is the first of four constant registers holding the
	// world-to-clip matrix rows.
	MatrixRegister int

	// ScreenRegister holds {1/width, 1/height, pixelWidth, 0}.
	ScreenRegister int
}

// Draw strokes every triangle-strip draw in draws into dc. Draws with other
// topologies or without a position attribute are skipped.
func (p Previewer) Draw(dc *gg.Context, draws []Draw) error {
	if p.MatrixRegister < 0 || p.MatrixRegister+4 > NumConstants {
		return fmt.Errorf("soft: matrix register %d out of range", p.MatrixRegister)
	}
	w, h := float64(dc.Width()), float64(dc.Height())
	for i := range draws {
		d := &draws[i]
		if d.Topology != gputypes.PrimitiveTopologyTriangleStrip {
			continue
		}
		posOff, ok := attributeOffset(d.Layout, func(a gputypes.VertexAttribute) bool {
			return a.ShaderLocation == 0 && a.Format == gputypes.VertexFormatFloat32x3
		})
		if !ok {
			continue
		}
		colOff, hasColor := attributeOffset(d.Layout, func(a gputypes.VertexAttribute) bool {
			return a.Format == gputypes.VertexFormatUnorm8x4
		})

		width := 1.0
		if r := p.ScreenRegister; r >= 0 && r < NumConstants && d.Constants[r][2] > 0 {
			width = float64(d.Constants[r][2])
		}
		var m [4][4]float64
		for r := 0; r < 4; r++ {
			for c := 0; c < 4; c++ {
				m[r][c] = float64(d.Constants[p.MatrixRegister+r][c])
			}
		}

		n := d.VertexCount()
		for v := 0; v+2 < n; v += 2 {
			a := project(m, readVec3(d.Vertex(v), posOff))
			b := project(m, readVec3(d.Vertex(v+2), posOff))
			a, b, visible := clipNear(a, b)
			if !visible {
				continue
			}
			ax, ay := toScreen(a, w, h)
			bx, by := toScreen(b, w, h)

			if hasColor {
				argb := binary.LittleEndian.Uint32(d.Vertex(v)[colOff:])
				dc.SetRGBA(
					float64(argb>>16&0xFF)/255,
					float64(argb>>8&0xFF)/255,
					float64(argb&0xFF)/255,
					float64(argb>>24)/255,
				)
			} else {
				dc.SetRGBA(1, 1, 1, 1)
			}
			dc.SetLineWidth(width)
			dc.DrawLine(ax, ay, bx, by)
			if err := dc.Stroke(); err != nil {
				return err
			}
		}
	}
	return nil
}

func attributeOffset(layout gputypes.VertexBufferLayout, match func(gputypes.VertexAttribute) bool) (int, bool) {
	for _, a := range layout.Attributes {
		if match(a) {
			return int(a.Offset), true
		}
	}
	return 0, false
}

func readVec3(b []byte, off int) [3]float64 {
	return [3]float64{
		float64(math.Float32frombits(binary.LittleEndian.Uint32(b[off:]))),
		float64(math.Float32frombits(binary.LittleEndian.Uint32(b[off+4:]))),
		float64(math.Float32frombits(binary.LittleEndian.Uint32(b[off+8:]))),
	}
}

func project(m [4][4]float64, p [3]float64) [4]float64 {
	var out [4]float64
	for r := 0; r < 4; r++ {
		out[r] = m[r][0]*p[0] + m[r][1]*p[1] + m[r][2]*p[2] + m[r][3]
	}
	return out
}

// clipNear clips the clip-space segment ab against w = nearW.
func clipNear(a, b [4]float64) ([4]float64, [4]float64, bool) {
	ina, inb := a[3] >= nearW, b[3] >= nearW
	switch {
	case ina && inb:
		return a, b, true
	case !ina && !inb:
		return a, b, false
	}
	t := (nearW - a[3]) / (b[3] - a[3])
	var c [4]float64
	for i := range c {
		c[i] = a[i] + t*(b[i]-a[i])
	}
	if ina {
		return a, c, true
	}
	return c, b, true
}

func toScreen(c [4]float64, w, h float64) (float64, float64) {
	x := c[0] / c[3]
	y := c[1] / c[3]
	return (x + 1) * 0.5 * w, (1 - y) * 0.5 * h
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package stateguard snapshots the device state the overlay changes and puts
// it back.
//
// Typical use:
//
//	g := stateguard.Save(dev)
//	defer g.Restore()
package stateguard

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/campath/device"
)

// Register blocks captured by a Guard.
const (
	// MatrixRegister is the first of four world-to-screen matrix registers.
	MatrixRegister = 8

	// ScreenInfoRegister holds {1/width, 1/height, pixelWidth, 0}.
	ScreenInfoRegister = 48

	// PlanePointRegister holds a point on the near clip plane.
	PlanePointRegister = 49

	// PlaneNormalRegister holds the near clip plane normal.
	PlaneNormalRegister = 50
)

// States lists the render states a Guard captures, in capture order.
var States = [...]device.RenderState{
	device.RenderStateSRGBWrite,
	device.RenderStateColorWrite,
	device.RenderStateDepthEnable,
	device.RenderStateDepthWrite,
	device.RenderStateDepthFunc,
	device.RenderStateAlphaTest,
	device.RenderStateSeparateAlphaBlend,
	device.RenderStateAlphaBlend,
	device.RenderStateBlendOp,
	device.RenderStateSrcBlend,
	device.RenderStateDestBlend,
	device.RenderStateCullMode,
}

// Guard is a snapshot of device state. It holds a reference to every
// resource it captured until Restore.
type Guard struct {
	dev device.Device

	vs   device.Shader
	ps   device.Shader
	vb   device.VertexBuffer
	off  int
	str  int
	ib   device.IndexBuffer
	decl device.VertexDeclaration

	matrix [4][4]float32
	screen [3][4]float32
	states [len(States)]uint32

	restored bool
}

// Save captures the current state of dev.
func Save(dev device.Device) *Guard {
	g := &Guard{dev: dev}

	g.vs = hold(dev.VertexShader())
	g.ps = hold(dev.PixelShader())
	vb, off, str := dev.StreamSource(0)
	g.vb, g.off, g.str = hold(vb), off, str
	g.ib = hold(dev.Indices())
	g.decl = hold(dev.VertexDeclaration())

	dev.VertexShaderConstants(MatrixRegister, g.matrix[:])
	dev.VertexShaderConstants(ScreenInfoRegister, g.screen[:])
	for i, s := range States {
		g.states[i] = dev.RenderState(s)
	}
	return g
}

// Restore puts every captured value back and releases the captured
// references. Calling Restore more than once has no further effect.
func (g *Guard) Restore() {
	if g == nil || g.restored {
		return
	}
	g.restored = true
	dev := g.dev

	for i, s := range States {
		dev.SetRenderState(s, g.states[i])
	}
	dev.SetVertexShaderConstants(ScreenInfoRegister, g.screen[:])
	dev.SetVertexShaderConstants(MatrixRegister, g.matrix[:])

	dev.SetVertexDeclaration(g.decl)
	dev.SetIndices(g.ib)
	dev.SetStreamSource(0, g.vb, g.off, g.str)
	dev.SetPixelShader(g.ps)
	dev.SetVertexShader(g.vs)

	drop(g.decl)
	drop(g.ib)
	drop(g.vb)
	drop(g.ps)
	drop(g.vs)
	g.decl, g.ib, g.vb, g.ps, g.vs = nil, nil, nil, nil, nil
}

// Apply sets the render states the overlay draws with.
func Apply(dev device.Device) {
	dev.SetRenderState(device.RenderStateSRGBWrite, device.Bool(false))
	dev.SetRenderState(device.RenderStateColorWrite, uint32(gputypes.ColorWriteMaskAll))
	dev.SetRenderState(device.RenderStateDepthEnable, device.Bool(true))
	dev.SetRenderState(device.RenderStateDepthWrite, device.Bool(false))
	dev.SetRenderState(device.RenderStateDepthFunc, uint32(gputypes.CompareFunctionLessEqual))
	dev.SetRenderState(device.RenderStateAlphaTest, device.Bool(false))
	dev.SetRenderState(device.RenderStateSeparateAlphaBlend, device.Bool(false))
	dev.SetRenderState(device.RenderStateAlphaBlend, device.Bool(true))
	dev.SetRenderState(device.RenderStateBlendOp, uint32(gputypes.BlendOperationAdd))
	dev.SetRenderState(device.RenderStateSrcBlend, uint32(gputypes.BlendFactorSrcAlpha))
	dev.SetRenderState(device.RenderStateDestBlend, uint32(gputypes.BlendFactorOneMinusSrcAlpha))
	dev.SetRenderState(device.RenderStateCullMode, uint32(gputypes.CullModeBack))
}

func hold[T device.Resource](r T) T {
	if any(r) != nil {
		r.AddRef()
	}
	return r
}

func drop[T device.Resource](r T) {
	if any(r) != nil {
		r.Release()
	}
}

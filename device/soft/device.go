// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package soft provides an in-memory implementation of [device.Device].
//
// The soft device keeps every piece of state the interface exposes, enforces
// the vertex buffer lock discipline and records each draw call together with
// a copy of the vertices it consumed and a snapshot of the shader constants.
// Recorded draws can be rasterized with a [Previewer].
//
// Binding a resource takes a reference on it and unbinding releases that
// reference, so reference counts observed through RefCount include bindings.
package soft

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/campath/device"
)

const (
	// NumConstants is the number of vertex shader constant registers.
	NumConstants = 256

	// NumStreams is the number of vertex stream slots.
	NumStreams = 4
)

// ErrForeignResource is returned when a resource created by another device is
// used with a soft device.
var ErrForeignResource = errors.New("soft: resource does not belong to this device")

// Draw is one recorded DrawPrimitive call.
type Draw struct {
	Topology       gputypes.PrimitiveTopology
	StartVertex    int
	PrimitiveCount int

	// Stride is the stream 0 stride in bytes.
	Stride int

	// Vertices holds a copy of the consumed vertices, Stride bytes each.
	Vertices []byte

	// Layout is the bound vertex declaration layout, if any.
	Layout gputypes.VertexBufferLayout

	// VertexShader and PixelShader are the labels of the bound shaders.
	VertexShader string
	PixelShader  string

	Constants    [NumConstants][4]float32
	RenderStates [device.NumRenderStates]uint32
}

// VertexCount returns the number of vertices the draw consumed.
func (d *Draw) VertexCount() int {
	if d.Stride == 0 {
		return 0
	}
	return len(d.Vertices) / d.Stride
}

// Vertex returns the bytes of vertex i.
func (d *Draw) Vertex(i int) []byte {
	return d.Vertices[i*d.Stride : (i+1)*d.Stride]
}

type stream struct {
	buf    device.VertexBuffer
	offset int
	stride int
}

// Device is an in-memory device.
//
// Device is not safe for concurrent use.
type Device struct {
	resource

	// FailCreate, when non-nil, is returned by every Create method.
	FailCreate error

	// FailLock, when non-nil, is returned by VertexBuffer.Lock.
	FailLock error

	// FailUnlock, when non-nil, is returned by VertexBuffer.Unlock. The buffer
	// stays locked.
	FailUnlock error

	// FailDraw, when non-nil, is returned by DrawPrimitive.
	FailDraw error

	live         atomic.Int32
	overReleased atomic.Int32

	vs      device.Shader
	ps      device.Shader
	streams [NumStreams]stream
	indices device.IndexBuffer
	decl    device.VertexDeclaration

	constants [NumConstants][4]float32
	states    [device.NumRenderStates]uint32

	draws []Draw
}

// New returns a soft device holding one reference.
func New() *Device {
	d := &Device{}
	d.resource.init(nil, "soft")
	return d
}

// Live returns the number of resources created by the device that still hold
// at least one reference.
func (d *Device) Live() int { return int(d.live.Load()) }

// OverReleased returns how many Release calls dropped a count below zero.
func (d *Device) OverReleased() int { return int(d.overReleased.Load()) }

// Draws returns the recorded draw calls.
func (d *Device) Draws() []Draw { return d.draws }

// ResetDraws discards recorded draw calls.
func (d *Device) ResetDraws() { d.draws = d.draws[:0] }

// CreateVertexBuffer creates a vertex buffer of size bytes.
func (d *Device) CreateVertexBuffer(label string, size int) (device.VertexBuffer, error) {
	if d.FailCreate != nil {
		return nil, d.FailCreate
	}
	if size <= 0 {
		return nil, fmt.Errorf("soft: invalid vertex buffer size %d", size)
	}
	b := &VertexBuffer{data: make([]byte, size)}
	b.init(d, label)
	return b, nil
}

// CreateIndexBuffer creates an index buffer. It is not part of
// [device.Device]; hosts use it to bind state the overlay must preserve.
func (d *Device) CreateIndexBuffer(label string, format gputypes.IndexFormat) (*IndexBuffer, error) {
	if d.FailCreate != nil {
		return nil, d.FailCreate
	}
	b := &IndexBuffer{format: format}
	b.init(d, label)
	return b, nil
}

// CreateVertexDeclaration creates a vertex declaration.
func (d *Device) CreateVertexDeclaration(label string, layout gputypes.VertexBufferLayout) (device.VertexDeclaration, error) {
	if d.FailCreate != nil {
		return nil, d.FailCreate
	}
	if len(layout.Attributes) == 0 {
		return nil, fmt.Errorf("soft: vertex declaration %q has no attributes", label)
	}
	v := &VertexDeclaration{layout: layout}
	v.layout.Attributes = append([]gputypes.VertexAttribute(nil), layout.Attributes...)
	v.init(d, label)
	return v, nil
}

// CreateShader creates a shader from SPIR-V words.
func (d *Device) CreateShader(label string, stage gputypes.ShaderStage, spirv []uint32) (device.Shader, error) {
	if d.FailCreate != nil {
		return nil, d.FailCreate
	}
	if len(spirv) == 0 {
		return nil, fmt.Errorf("soft: shader %q has no code", label)
	}
	s := &Shader{stage: stage, code: append([]uint32(nil), spirv...)}
	s.init(d, label)
	return s, nil
}

// VertexShader returns the bound vertex shader.
func (d *Device) VertexShader() device.Shader { return d.vs }

// SetVertexShader binds a vertex shader.
func (d *Device) SetVertexShader(s device.Shader) { rebind(&d.vs, s) }

// PixelShader returns the bound pixel shader.
func (d *Device) PixelShader() device.Shader { return d.ps }

// SetPixelShader binds a pixel shader.
func (d *Device) SetPixelShader(s device.Shader) { rebind(&d.ps, s) }

// StreamSource returns the binding of slot.
func (d *Device) StreamSource(slot int) (device.VertexBuffer, int, int) {
	if slot < 0 || slot >= NumStreams {
		return nil, 0, 0
	}
	s := d.streams[slot]
	return s.buf, s.offset, s.stride
}

// SetStreamSource binds buf to slot.
func (d *Device) SetStreamSource(slot int, buf device.VertexBuffer, offset, stride int) {
	if slot < 0 || slot >= NumStreams {
		return
	}
	s := &d.streams[slot]
	rebind(&s.buf, buf)
	s.offset = offset
	s.stride = stride
}

// Indices returns the bound index buffer.
func (d *Device) Indices() device.IndexBuffer { return d.indices }

// SetIndices binds an index buffer.
func (d *Device) SetIndices(ib device.IndexBuffer) { rebind(&d.indices, ib) }

// VertexDeclaration returns the bound vertex declaration.
func (d *Device) VertexDeclaration() device.VertexDeclaration { return d.decl }

// SetVertexDeclaration binds a vertex declaration.
func (d *Device) SetVertexDeclaration(v device.VertexDeclaration) { rebind(&d.decl, v) }

// VertexShaderConstants copies registers starting at start into dst.
// Registers outside the file read as zero.
func (d *Device) VertexShaderConstants(start int, dst [][4]float32) {
	for i := range dst {
		r := start + i
		if r < 0 || r >= NumConstants {
			dst[i] = [4]float32{}
			continue
		}
		dst[i] = d.constants[r]
	}
}

// SetVertexShaderConstants writes src into registers starting at start.
// Registers outside the file are ignored.
func (d *Device) SetVertexShaderConstants(start int, src [][4]float32) {
	for i, v := range src {
		r := start + i
		if r < 0 || r >= NumConstants {
			continue
		}
		d.constants[r] = v
	}
}

// RenderState returns the value of s.
func (d *Device) RenderState(s device.RenderState) uint32 {
	if s >= device.NumRenderStates {
		return 0
	}
	return d.states[s]
}

// SetRenderState sets the value of s.
func (d *Device) SetRenderState(s device.RenderState, v uint32) {
	if s >= device.NumRenderStates {
		return
	}
	d.states[s] = v
}

// DrawPrimitive records a draw from stream source 0.
func (d *Device) DrawPrimitive(topology gputypes.PrimitiveTopology, startVertex, primitiveCount int) error {
	if d.FailDraw != nil {
		return d.FailDraw
	}
	src := d.streams[0]
	if src.buf == nil {
		return device.ErrNoStreamSource
	}
	vb, ok := src.buf.(*VertexBuffer)
	if !ok || vb.dev != d {
		return ErrForeignResource
	}
	if vb.Destroyed() {
		return device.ErrReleased
	}
	if vb.Locked() {
		return device.ErrBufferLocked
	}

	n := device.VertexCount(topology, primitiveCount)
	begin := src.offset + startVertex*src.stride
	end := begin + n*src.stride
	if startVertex < 0 || begin < 0 || end > len(vb.data) {
		return fmt.Errorf("%w: bytes [%d, %d) of %d", device.ErrDrawOutOfRange, begin, end, len(vb.data))
	}

	rec := Draw{
		Topology:       topology,
		StartVertex:    startVertex,
		PrimitiveCount: primitiveCount,
		Stride:         src.stride,
		Vertices:       append([]byte(nil), vb.data[begin:end]...),
		Constants:      d.constants,
		RenderStates:   d.states,
	}
	if d.decl != nil {
		rec.Layout = d.decl.Layout()
	}
	if d.vs != nil {
		rec.VertexShader = d.vs.Label()
	}
	if d.ps != nil {
		rec.PixelShader = d.ps.Label()
	}
	d.draws = append(d.draws, rec)
	return nil
}

// Unbind releases every binding the device holds.
func (d *Device) Unbind() {
	d.SetVertexShader(nil)
	d.SetPixelShader(nil)
	for i := range d.streams {
		d.SetStreamSource(i, nil, 0, 0)
	}
	d.SetIndices(nil)
	d.SetVertexDeclaration(nil)
}

// rebind stores v in *slot, taking a reference on v and releasing the old
// binding.
func rebind[T device.Resource](slot *T, v T) {
	old := *slot
	if isNil(v) {
		var zero T
		v = zero
	} else {
		v.AddRef()
	}
	if !isNil(old) {
		old.Release()
	}
	*slot = v
}

func isNil(r device.Resource) bool {
	if r == nil {
		return true
	}
	switch v := r.(type) {
	case *Shader:
		return v == nil
	case *VertexBuffer:
		return v == nil
	case *IndexBuffer:
		return v == nil
	case *VertexDeclaration:
		return v == nil
	}
	return false
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package device

import (
	"errors"

	"github.com/gogpu/gputypes"
)

// Device errors.
var (
	// ErrBufferLocked is returned when a locked buffer is locked again or
	// drawn from before it has been unlocked.
	ErrBufferLocked = errors.New("device: vertex buffer is locked")

	// ErrBufferNotLocked is returned when unlocking a buffer that is not locked.
	ErrBufferNotLocked = errors.New("device: vertex buffer is not locked")

	// ErrNoStreamSource is returned when drawing without a bound vertex buffer.
	ErrNoStreamSource = errors.New("device: no vertex buffer bound to stream 0")

	// ErrDrawOutOfRange is returned when a draw reads past the end of the
	// bound vertex buffer.
	ErrDrawOutOfRange = errors.New("device: draw exceeds vertex buffer")

	// ErrReleased is returned when using a resource whose last reference was
	// released.
	ErrReleased = errors.New("device: resource released")
)

// Resource is a reference-counted device object.
type Resource interface {
	// AddRef takes an additional reference.
	AddRef()

	// Release drops one reference. The resource is destroyed when the last
	// reference is released.
	Release()

	// Label returns the debug label given at creation.
	Label() string
}

// Shader is a compiled shader bound to one pipeline stage.
type Shader interface {
	Resource

	// Stage reports the stage the shader was created for.
	Stage() gputypes.ShaderStage
}

// VertexBuffer is a write-only vertex buffer that must be locked (mapped)
// before the CPU can write to it.
type VertexBuffer interface {
	Resource

	// Size returns the buffer size in bytes.
	Size() int

	// Lock maps the whole buffer for writing and returns its memory.
	// The slice is valid until Unlock.
	Lock() ([]byte, error)

	// Unlock unmaps the buffer. The device may only read it while unlocked.
	Unlock() error

	// Locked reports whether the buffer is currently mapped.
	Locked() bool
}

// IndexBuffer is an index buffer bound by the host.
type IndexBuffer interface {
	Resource

	// Format returns the index format.
	Format() gputypes.IndexFormat
}

// VertexDeclaration describes how vertex buffer bytes map onto vertex shader
// inputs.
type VertexDeclaration interface {
	Resource

	// Layout returns the vertex buffer layout the declaration was created from.
	Layout() gputypes.VertexBufferLayout
}

// Device is an immediate-mode rendering device with readable state.
//
// All methods are called from the host's render thread.
type Device interface {
	Resource

	// CreateVertexBuffer creates a write-only vertex buffer of size bytes.
	CreateVertexBuffer(label string, size int) (VertexBuffer, error)

	// CreateVertexDeclaration creates a declaration for layout.
	CreateVertexDeclaration(label string, layout gputypes.VertexBufferLayout) (VertexDeclaration, error)

	// CreateShader creates a shader for stage from SPIR-V words.
	CreateShader(label string, stage gputypes.ShaderStage, spirv []uint32) (Shader, error)

	// VertexShader returns the bound vertex shader (borrowed, may be nil).
	VertexShader() Shader
	// SetVertexShader binds a vertex shader. Nil unbinds.
	SetVertexShader(s Shader)

	// PixelShader returns the bound pixel shader (borrowed, may be nil).
	PixelShader() Shader
	// SetPixelShader binds a pixel shader. Nil unbinds.
	SetPixelShader(s Shader)

	// StreamSource returns the vertex buffer bound to slot (borrowed, may be
	// nil) with its byte offset and stride.
	StreamSource(slot int) (buf VertexBuffer, offset, stride int)
	// SetStreamSource binds buf to slot.
	SetStreamSource(slot int, buf VertexBuffer, offset, stride int)

	// Indices returns the bound index buffer (borrowed, may be nil).
	Indices() IndexBuffer
	// SetIndices binds an index buffer. Nil unbinds.
	SetIndices(ib IndexBuffer)

	// VertexDeclaration returns the bound declaration (borrowed, may be nil).
	VertexDeclaration() VertexDeclaration
	// SetVertexDeclaration binds a declaration. Nil unbinds.
	SetVertexDeclaration(d VertexDeclaration)

	// VertexShaderConstants copies len(dst) registers starting at start.
	VertexShaderConstants(start int, dst [][4]float32)
	// SetVertexShaderConstants writes len(src) registers starting at start.
	SetVertexShaderConstants(start int, src [][4]float32)

	// RenderState returns the value of a render state.
	RenderState(s RenderState) uint32
	// SetRenderState sets the value of a render state.
	SetRenderState(s RenderState, v uint32)

	// DrawPrimitive draws primitiveCount primitives of topology from stream
	// source 0, starting at startVertex.
	DrawPrimitive(topology gputypes.PrimitiveTopology, startVertex, primitiveCount int) error
}

// VertexCount returns how many vertices a draw of primitiveCount primitives
// of topology consumes.
func VertexCount(topology gputypes.PrimitiveTopology, primitiveCount int) int {
	if primitiveCount <= 0 {
		return 0
	}
	switch topology {
	case gputypes.PrimitiveTopologyPointList:
		return primitiveCount
	case gputypes.PrimitiveTopologyLineList:
		return 2 * primitiveCount
	case gputypes.PrimitiveTopologyLineStrip:
		return primitiveCount + 1
	case gputypes.PrimitiveTopologyTriangleStrip:
		return primitiveCount + 2
	default:
		return 3 * primitiveCount
	}
}

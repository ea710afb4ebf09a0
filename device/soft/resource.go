// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package soft

import (
	"sync/atomic"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/campath/device"
)

// resource implements reference counting shared by every soft object.
type resource struct {
	dev   *Device
	label string
	refs  atomic.Int32
}

func (r *resource) init(dev *Device, label string) {
	r.dev = dev
	r.label = label
	r.refs.Store(1)
	if dev != nil {
		dev.live.Add(1)
	}
}

// AddRef takes an additional reference.
func (r *resource) AddRef() { r.refs.Add(1) }

// Release drops one reference.
func (r *resource) Release() {
	n := r.refs.Add(-1)
	switch {
	case n == 0:
		if r.dev != nil {
			r.dev.live.Add(-1)
		}
	case n < 0:
		r.refs.Store(0)
		if r.dev != nil {
			r.dev.overReleased.Add(1)
		}
	}
}

// Label returns the debug label.
func (r *resource) Label() string { return r.label }

// RefCount returns the current reference count.
func (r *resource) RefCount() int { return int(r.refs.Load()) }

// Destroyed reports whether the last reference has been released.
func (r *resource) Destroyed() bool { return r.refs.Load() <= 0 }

// Shader is a soft shader holding its SPIR-V words.
type Shader struct {
	resource
	stage gputypes.ShaderStage
	code  []uint32
}

// Stage reports the shader stage.
func (s *Shader) Stage() gputypes.ShaderStage { return s.stage }

// Code returns the SPIR-V words the shader was created from.
func (s *Shader) Code() []uint32 { return s.code }

// VertexBuffer is a soft vertex buffer backed by a byte slice.
type VertexBuffer struct {
	resource
	data   []byte
	locked bool
	locks  int
}

// Size returns the buffer size in bytes.
func (b *VertexBuffer) Size() int { return len(b.data) }

// Lock maps the buffer for writing.
func (b *VertexBuffer) Lock() ([]byte, error) {
	if b.Destroyed() {
		return nil, device.ErrReleased
	}
	if b.dev != nil && b.dev.FailLock != nil {
		return nil, b.dev.FailLock
	}
	if b.locked {
		return nil, device.ErrBufferLocked
	}
	b.locked = true
	b.locks++
	return b.data, nil
}

// Unlock unmaps the buffer.
func (b *VertexBuffer) Unlock() error {
	if !b.locked {
		return device.ErrBufferNotLocked
	}
	if b.dev != nil && b.dev.FailUnlock != nil {
		return b.dev.FailUnlock
	}
	b.locked = false
	return nil
}

// Locked reports whether the buffer is mapped.
func (b *VertexBuffer) Locked() bool { return b.locked }

// Locks returns how many times the buffer has been locked.
func (b *VertexBuffer) Locks() int { return b.locks }

// Bytes returns the buffer contents.
func (b *VertexBuffer) Bytes() []byte { return b.data }

// IndexBuffer is a soft index buffer. It only carries its format: the soft
// device draws non-indexed primitives.
type IndexBuffer struct {
	resource
	format gputypes.IndexFormat
}

// Format returns the index format.
func (b *IndexBuffer) Format() gputypes.IndexFormat { return b.format }

// VertexDeclaration is a soft vertex declaration.
type VertexDeclaration struct {
	resource
	layout gputypes.VertexBufferLayout
}

// Layout returns the vertex buffer layout.
func (d *VertexDeclaration) Layout() gputypes.VertexBufferLayout { return d.layout }

// Compile-time interface checks.
var (
	_ device.Shader            = (*Shader)(nil)
	_ device.VertexBuffer      = (*VertexBuffer)(nil)
	_ device.IndexBuffer       = (*IndexBuffer)(nil)
	_ device.VertexDeclaration = (*VertexDeclaration)(nil)
	_ device.Device            = (*Device)(nil)
)

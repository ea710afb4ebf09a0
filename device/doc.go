// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package device defines the immediate-mode rendering device the camera path
// overlay draws through.
//
// The host application owns the device. The overlay borrows it for the
// duration of a render callback, changes a small, known set of states, draws
// and puts every state back. The interface therefore exposes a getter for
// every setter it has: anything the overlay can change, it can also read back.
//
// # Reference counting
//
// Resources ([Shader], [VertexBuffer], [IndexBuffer], [VertexDeclaration] and
// the [Device] itself) are reference counted. Create* methods return a
// reference owned by the caller. Getters return borrowed references: call
// AddRef to keep one past the next state change, and Release when done.
//
// # Value types
//
// Render-state values use the WebGPU vocabulary from
// [github.com/gogpu/gputypes] (compare functions, blend factors, cull modes,
// color write masks) encoded as uint32, so a device implementation can map
// them onto whatever its backend expects.
package device

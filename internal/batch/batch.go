// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package batch streams thick screen-space lines through a small vertex arena.
//
// A Batcher owns one fixed-capacity vertex buffer on a device. Lines are
// written into the locked buffer and drawn as triangle strips when the arena
// fills up or the caller flushes. Two modes share the arena:
//
//   - Polyline mode writes one vertex pair per point of a continuous strip.
//     When a flush interrupts a strip, the first point written afterwards
//     re-emits the last point written before it, so the strip continues
//     without a gap.
//   - Single-line mode writes four vertices per independent segment and
//     draws each segment with its own call.
//
// Failures to create or lock the buffer drop the write. Nothing in this
// package panics on device errors.
package batch

import (
	"log/slog"

	"github.com/gogpu/gputypes"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/gogpu/campath/device"
)

const (
	// DefaultCapacity is the default arena size in vertices.
	DefaultCapacity = 200

	// MinCapacity is the smallest arena that holds one single line.
	MinCapacity = 4
)

// Option configures a Batcher.
type Option func(*Batcher)

// WithCapacity sets the arena size in vertices. Values below MinCapacity are
// raised to MinCapacity.
func WithCapacity(n int) Option {
	return func(b *Batcher) {
		b.capacity = max(n, MinCapacity)
	}
}

// Batcher accumulates line geometry for one device.
//
// Batcher is not safe for concurrent use.
type Batcher struct {
	dev      device.Device
	capacity int

	buf   device.VertexBuffer
	mem   []byte // non-nil while buf is locked
	count int

	started  bool
	oldPrev  r3.Vec
	oldColor Color

	drawCalls int
}

// New returns a Batcher drawing on dev. The device is borrowed: the caller
// keeps it alive for the Batcher's lifetime. The arena is created on first
// use.
func New(dev device.Device, opts ...Option) *Batcher {
	b := &Batcher{dev: dev, capacity: DefaultCapacity}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Capacity returns the arena size in vertices.
func (b *Batcher) Capacity() int { return b.capacity }

// Len returns the number of vertices waiting to be drawn.
func (b *Batcher) Len() int { return b.count }

// DrawCalls returns the number of draw calls issued so far.
func (b *Batcher) DrawCalls() int { return b.drawCalls }

// BeginPolyline starts a new strip. The next point does not continue the
// previous strip.
func (b *Batcher) BeginPolyline() {
	b.started = true
}

// AddPolylinePoint appends cur to the current strip. prev and next are the
// neighboring points and only shape the joins.
func (b *Batcher) AddPolylinePoint(prev, cur r3.Vec, color Color, next r3.Vec) {
	if b.count+2 > b.capacity {
		b.FlushPolyline()
	}
	isFirst := b.count == 0

	if !b.lock() {
		return
	}

	if isFirst && !b.started {
		resume := BuildPolylinePoint(b.oldPrev, prev, b.oldColor, cur)
		b.put(resume[:]...)
	}
	pair := BuildPolylinePoint(prev, cur, color, next)
	b.put(pair[:]...)

	b.started = false
	b.oldColor = color
	b.oldPrev = prev
}

// FlushPolyline draws the pending strip and resets the arena.
func (b *Batcher) FlushPolyline() {
	if !b.unlock() {
		return
	}
	if prims := b.count - 2; prims > 0 {
		b.draw(0, prims)
	}
	b.count = 0
}

// AddSingleLine appends an independent segment.
func (b *Batcher) AddSingleLine(from r3.Vec, fromColor Color, to r3.Vec, toColor Color) {
	if b.count+4 > b.capacity {
		b.FlushSingleLines()
	}
	if !b.lock() {
		return
	}
	quad := BuildSingleLine(from, fromColor, to, toColor)
	b.put(quad[:]...)
}

// FlushSingleLines draws every pending segment and resets the arena.
func (b *Batcher) FlushSingleLines() {
	if !b.unlock() {
		return
	}
	for start := 0; start+4 <= b.count; start += 4 {
		b.draw(start, 2)
	}
	b.count = 0
}

// Release frees the arena. Pending geometry is discarded. The Batcher can be
// used again afterwards and recreates the arena on demand.
func (b *Batcher) Release() {
	if b.mem != nil {
		if err := b.buf.Unlock(); err != nil {
			slogger().Debug("batch: unlock on release failed", slog.Any("err", err))
		}
		b.mem = nil
	}
	if b.buf != nil {
		b.buf.Release()
		b.buf = nil
	}
	b.count = 0
}

// lock maps the arena, creating it first if needed.
func (b *Batcher) lock() bool {
	if b.mem != nil {
		return true
	}
	if b.buf == nil {
		buf, err := b.dev.CreateVertexBuffer("campath.arena", b.capacity*VertexSize)
		if err != nil {
			slogger().Debug("batch: create arena failed", slog.Int("vertices", b.capacity), slog.Any("err", err))
			return false
		}
		b.buf = buf
	}
	mem, err := b.buf.Lock()
	if err != nil {
		slogger().Debug("batch: lock arena failed", slog.Any("err", err))
		return false
	}
	if len(mem) < b.capacity*VertexSize {
		slogger().Debug("batch: arena smaller than requested", slog.Int("bytes", len(mem)))
		_ = b.buf.Unlock()
		return false
	}
	b.mem = mem
	return true
}

// unlock unmaps the arena and binds it to stream 0. It reports false when
// nothing is pending or the arena cannot be unmapped. An arena that fails to
// unmap is dropped with its pending vertices and recreated on the next lock.
func (b *Batcher) unlock() bool {
	if b.mem == nil {
		return false
	}
	b.mem = nil
	if err := b.buf.Unlock(); err != nil {
		slogger().Debug("batch: unlock arena failed", slog.Int("vertices", b.count), slog.Any("err", err))
		b.buf.Release()
		b.buf = nil
		b.count = 0
		return false
	}
	b.dev.SetStreamSource(0, b.buf, 0, VertexSize)
	return true
}

func (b *Batcher) put(vs ...Vertex) {
	for i := range vs {
		vs[i].Encode(b.mem[b.count*VertexSize:])
		b.count++
	}
}

func (b *Batcher) draw(start, prims int) {
	b.drawCalls++
	if err := b.dev.DrawPrimitive(gputypes.PrimitiveTopologyTriangleStrip, start, prims); err != nil {
		slogger().Warn("batch: draw failed",
			slog.Int("start", start), slog.Int("primitives", prims), slog.Any("err", err))
	}
}

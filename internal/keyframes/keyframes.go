// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package keyframes is an in-memory camera path made of keyframes.
//
// Positions and field of view are interpolated linearly between neighboring
// keyframes and rotations with a normalized lerp along the shorter arc.
// Outside the keyframe range the path holds the first or last keyframe.
package keyframes

import (
	"iter"
	"math"
	"slices"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/gogpu/campath"
)

// Keyframe is a camera value pinned to a time.
type Keyframe struct {
	Time float64
	campath.Value
}

// Path is a sorted list of keyframes.
//
// Path is not safe for concurrent use.
type Path struct {
	keys      []Keyframe
	enabled   bool
	onChanged func()
}

var _ campath.Path = (*Path)(nil)

// New returns an empty, enabled path.
func New() *Path {
	return &Path{enabled: true}
}

// Len returns the number of keyframes.
func (p *Path) Len() int { return len(p.keys) }

// LowerBound returns the time of the first keyframe, or 0 for an empty path.
func (p *Path) LowerBound() float64 {
	if len(p.keys) == 0 {
		return 0
	}
	return p.keys[0].Time
}

// UpperBound returns the time of the last keyframe, or 0 for an empty path.
func (p *Path) UpperBound() float64 {
	if len(p.keys) == 0 {
		return 0
	}
	return p.keys[len(p.keys)-1].Time
}

// CanEval reports whether the path has enough keyframes to interpolate.
func (p *Path) CanEval() bool { return len(p.keys) >= 2 }

// Enabled reports whether the path drives the camera.
func (p *Path) Enabled() bool { return p.enabled }

// SetEnabled enables or disables the path.
func (p *Path) SetEnabled(v bool) {
	if p.enabled == v {
		return
	}
	p.enabled = v
	p.changed()
}

// SetOnChanged registers fn to be called after every change.
func (p *Path) SetOnChanged(fn func()) { p.onChanged = fn }

// Keyframes yields every keyframe in time order.
func (p *Path) Keyframes() iter.Seq2[float64, campath.Value] {
	return func(yield func(float64, campath.Value) bool) {
		for _, k := range p.keys {
			if !yield(k.Time, k.Value) {
				return
			}
		}
	}
}

// Add inserts a keyframe at t. A keyframe already at t is replaced.
func (p *Path) Add(t float64, v campath.Value) {
	i, found := p.search(t)
	k := Keyframe{Time: t, Value: v}
	if found {
		p.keys[i] = k
	} else {
		p.keys = slices.Insert(p.keys, i, k)
	}
	p.changed()
}

// Remove deletes the keyframe at t. It reports whether one was found.
func (p *Path) Remove(t float64) bool {
	i, found := p.search(t)
	if !found {
		return false
	}
	p.keys = slices.Delete(p.keys, i, i+1)
	p.changed()
	return true
}

// Select marks every keyframe with a time in [from, to] as selected and
// returns how many keyframes are selected afterwards.
func (p *Path) Select(from, to float64) int {
	n, changed := 0, false
	for i := range p.keys {
		k := &p.keys[i]
		if from <= k.Time && k.Time <= to && !k.Selected {
			k.Selected = true
			changed = true
		}
		if k.Selected {
			n++
		}
	}
	if changed {
		p.changed()
	}
	return n
}

// ClearSelection deselects every keyframe.
func (p *Path) ClearSelection() {
	changed := false
	for i := range p.keys {
		if p.keys[i].Selected {
			p.keys[i].Selected = false
			changed = true
		}
	}
	if changed {
		p.changed()
	}
}

// Eval returns the camera value at t.
//
// A point between two keyframes is selected only when both are selected.
func (p *Path) Eval(t float64) campath.Value {
	switch n := len(p.keys); {
	case n == 0:
		return campath.Value{Rotation: quat.Number{Real: 1}}
	case t <= p.keys[0].Time:
		return p.keys[0].Value
	case t >= p.keys[n-1].Time:
		return p.keys[n-1].Value
	}

	i, found := p.search(t)
	if found {
		return p.keys[i].Value
	}
	a, b := p.keys[i-1], p.keys[i]
	s := 0.0
	if d := b.Time - a.Time; d > 0 {
		s = (t - a.Time) / d
	}
	return campath.Value{
		Position: r3.Add(a.Position, r3.Scale(s, r3.Sub(b.Position, a.Position))),
		Rotation: nlerp(a.Rotation, b.Rotation, s),
		Fov:      a.Fov + s*(b.Fov-a.Fov),
		Selected: a.Selected && b.Selected,
	}
}

func (p *Path) search(t float64) (int, bool) {
	return slices.BinarySearchFunc(p.keys, t, func(k Keyframe, t float64) int {
		switch {
		case k.Time < t:
			return -1
		case k.Time > t:
			return 1
		}
		return 0
	})
}

func (p *Path) changed() {
	if p.onChanged != nil {
		p.onChanged()
	}
}

// nlerp interpolates two rotations along the shorter arc and renormalizes.
func nlerp(a, b quat.Number, s float64) quat.Number {
	if a.Real*b.Real+a.Imag*b.Imag+a.Jmag*b.Jmag+a.Kmag*b.Kmag < 0 {
		b = quat.Scale(-1, b)
	}
	q := quat.Add(quat.Scale(1-s, a), quat.Scale(s, b))
	n := quat.Abs(q)
	if n == 0 || math.IsNaN(n) {
		return quat.Number{Real: 1}
	}
	return quat.Scale(1/n, q)
}

// Euler returns the rotation for angles in degrees: yaw about +Z, then pitch
// about +Y, then roll about +X.
func Euler(pitch, yaw, roll float64) quat.Number {
	const rad = math.Pi / 180
	qz := r3.NewRotation(yaw*rad, r3.Vec{Z: 1})
	qy := r3.NewRotation(pitch*rad, r3.Vec{Y: 1})
	qx := r3.NewRotation(roll*rad, r3.Vec{X: 1})
	return quat.Mul(quat.Mul(quat.Number(qz), quat.Number(qy)), quat.Number(qx))
}

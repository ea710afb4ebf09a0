// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package keyframes

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/gogpu/campath"
)

func at(x, y, z float64) campath.Value {
	return campath.Value{Position: r3.Vec{X: x, Y: y, Z: z}, Rotation: quat.Number{Real: 1}, Fov: 90}
}

func times(p *Path) []float64 {
	var ts []float64
	for t := range p.Keyframes() {
		ts = append(ts, t)
	}
	return ts
}

func TestAddKeepsOrder(t *testing.T) {
	p := New()
	var calls int
	p.SetOnChanged(func() { calls++ })

	p.Add(2, at(2, 0, 0))
	p.Add(0, at(0, 0, 0))
	p.Add(1, at(1, 0, 0))
	p.Add(1, at(5, 0, 0))

	if diff := cmp.Diff([]float64{0, 1, 2}, times(p)); diff != "" {
		t.Errorf("keyframe times mismatch (-want +got):\n%s", diff)
	}
	if got := p.Eval(1).Position; got != (r3.Vec{X: 5}) {
		t.Errorf("replaced keyframe = %v, want {5 0 0}", got)
	}
	if calls != 4 {
		t.Errorf("change callback fired %d times, want 4", calls)
	}
	if p.LowerBound() != 0 || p.UpperBound() != 2 || p.Len() != 3 {
		t.Errorf("bounds = [%v, %v] len %d, want [0, 2] len 3", p.LowerBound(), p.UpperBound(), p.Len())
	}
}

func TestRemove(t *testing.T) {
	p := New()
	p.Add(0, at(0, 0, 0))
	p.Add(1, at(1, 0, 0))

	if p.Remove(0.5) {
		t.Error("Remove(0.5) = true for a missing keyframe")
	}
	if !p.Remove(0) {
		t.Fatal("Remove(0) = false")
	}
	if p.CanEval() {
		t.Error("CanEval() = true with one keyframe")
	}
}

func TestEval(t *testing.T) {
	p := New()
	a := at(0, 0, 0)
	a.Fov = 60
	b := at(10, 20, -10)
	b.Fov = 100
	p.Add(1, a)
	p.Add(3, b)

	tests := []struct {
		name string
		t    float64
		pos  r3.Vec
		fov  float64
	}{
		{"before", -5, r3.Vec{}, 60},
		{"first", 1, r3.Vec{}, 60},
		{"middle", 2, r3.Vec{X: 5, Y: 10, Z: -5}, 80},
		{"quarter", 1.5, r3.Vec{X: 2.5, Y: 5, Z: -2.5}, 70},
		{"last", 3, r3.Vec{X: 10, Y: 20, Z: -10}, 100},
		{"after", 9, r3.Vec{X: 10, Y: 20, Z: -10}, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := p.Eval(tt.t)
			if r3.Norm(r3.Sub(v.Position, tt.pos)) > 1e-12 {
				t.Errorf("Eval(%v).Position = %v, want %v", tt.t, v.Position, tt.pos)
			}
			if math.Abs(v.Fov-tt.fov) > 1e-12 {
				t.Errorf("Eval(%v).Fov = %v, want %v", tt.t, v.Fov, tt.fov)
			}
		})
	}
}

func TestEvalSelection(t *testing.T) {
	p := New()
	p.Add(0, at(0, 0, 0))
	p.Add(1, at(1, 0, 0))
	p.Add(2, at(2, 0, 0))

	if n := p.Select(0, 1); n != 2 {
		t.Fatalf("Select(0, 1) = %d, want 2", n)
	}
	if !p.Eval(0.5).Selected {
		t.Error("span between two selected keyframes is not selected")
	}
	if p.Eval(1.5).Selected {
		t.Error("span with one selected keyframe is selected")
	}
	if !p.Eval(1).Selected {
		t.Error("selected keyframe evaluates as unselected")
	}

	var calls int
	p.SetOnChanged(func() { calls++ })
	p.Select(0, 1)
	p.ClearSelection()
	p.ClearSelection()
	if calls != 1 {
		t.Errorf("change callback fired %d times, want 1", calls)
	}
	if p.Eval(0.5).Selected {
		t.Error("selection survived ClearSelection")
	}
}

func TestEvalRotation(t *testing.T) {
	p := New()
	a := at(0, 0, 0)
	b := at(0, 0, 0)
	b.Rotation = Euler(0, 90, 0)
	p.Add(0, a)
	p.Add(1, b)

	fwd := r3.Rotation(p.Eval(0.5).Rotation).Rotate(r3.Vec{X: 1})
	want := r3.Vec{X: math.Sqrt2 / 2, Y: math.Sqrt2 / 2}
	if r3.Norm(r3.Sub(fwd, want)) > 1e-12 {
		t.Errorf("halfway forward = %v, want %v", fwd, want)
	}
	if n := quat.Abs(p.Eval(0.3).Rotation); math.Abs(n-1) > 1e-12 {
		t.Errorf("|rotation| = %v, want 1", n)
	}
}

func TestNlerpShorterArc(t *testing.T) {
	q := Euler(0, 10, 0)
	got := nlerp(q, quat.Scale(-1, q), 0.5)
	if d := quat.Abs(quat.Sub(got, q)); d > 1e-12 {
		t.Errorf("nlerp(q, -q, 0.5) = %v, want %v", got, q)
	}
}

func TestEuler(t *testing.T) {
	tests := []struct {
		name             string
		pitch, yaw, roll float64
		in, want         r3.Vec
	}{
		{"identity", 0, 0, 0, r3.Vec{X: 1}, r3.Vec{X: 1}},
		{"yaw", 0, 90, 0, r3.Vec{X: 1}, r3.Vec{Y: 1}},
		{"pitch", 90, 0, 0, r3.Vec{X: 1}, r3.Vec{Z: -1}},
		{"roll", 0, 0, 90, r3.Vec{Y: 1}, r3.Vec{Z: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r3.Rotation(Euler(tt.pitch, tt.yaw, tt.roll)).Rotate(tt.in)
			if r3.Norm(r3.Sub(got, tt.want)) > 1e-12 {
				t.Errorf("rotate %v = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestSetEnabled(t *testing.T) {
	p := New()
	var calls int
	p.SetOnChanged(func() { calls++ })
	p.SetEnabled(true)
	p.SetEnabled(false)
	if p.Enabled() || calls != 1 {
		t.Errorf("Enabled() = %t after %d callbacks, want false after 1", p.Enabled(), calls)
	}
}

func TestLoad(t *testing.T) {
	const src = `{
		"enabled": false,
		"keyframes": [
			{"time": 2, "x": 10, "y": 0, "z": 0, "fov": 90, "selected": true},
			{"time": 0, "x": 0, "y": 0, "z": 0, "yaw": 90, "fov": 75}
		]
	}`
	p, err := Load(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if p.Enabled() {
		t.Error("Enabled() = true, want false")
	}
	if diff := cmp.Diff([]float64{0, 2}, times(p)); diff != "" {
		t.Errorf("keyframe times mismatch (-want +got):\n%s", diff)
	}
	v := p.Eval(0)
	if v.Fov != 75 || v.Selected {
		t.Errorf("first keyframe = fov %v selected %t, want 75 false", v.Fov, v.Selected)
	}
	if fwd := r3.Rotation(v.Rotation).Rotate(r3.Vec{X: 1}); r3.Norm(r3.Sub(fwd, r3.Vec{Y: 1})) > 1e-12 {
		t.Errorf("first keyframe forward = %v, want {0 1 0}", fwd)
	}
	if !p.Eval(2).Selected {
		t.Error("last keyframe is not selected")
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{"duplicate", `{"keyframes": [{"time": 1}, {"time": 1}]}`, ErrDuplicateTime},
		{"syntax", `{"keyframes": [`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.src))
			if err == nil {
				t.Fatal("Load() succeeded")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("Load() error = %v, want %v", err, tt.want)
			}
		})
	}
}

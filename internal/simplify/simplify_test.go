// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package simplify

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gonum.org/v1/gonum/spatial/r3"
)

func line(t float64) r3.Vec { return r3.Vec{X: 10 * t} }

func helix(t float64) r3.Vec {
	return r3.Vec{X: 50 * math.Cos(t), Y: 50 * math.Sin(t), Z: 5 * t}
}

func wobble(t float64) r3.Vec {
	return r3.Vec{X: 20 * t, Y: 3 * math.Sin(7*t) + math.Sin(23*t), Z: t * t}
}

func sampled(eval func(float64) r3.Vec, n int, t0, t1 float64) []Point {
	pts := make([]Point, n)
	Sample(pts, eval, t0, t1)
	return pts
}

func TestDistanceToSegment(t *testing.T) {
	a := r3.Vec{X: 0}
	b := r3.Vec{X: 10}
	tests := []struct {
		name string
		p    r3.Vec
		a, b r3.Vec
		want float64
	}{
		{"perpendicular", r3.Vec{X: 5, Y: 3}, a, b, 3},
		{"on segment", r3.Vec{X: 7}, a, b, 0},
		{"before start", r3.Vec{X: -3, Y: 4}, a, b, 5},
		{"past end", r3.Vec{X: 13, Z: 4}, a, b, 5},
		{"degenerate", r3.Vec{X: 3, Y: 4}, a, a, 5},
		{"degenerate on point", r3.Vec{X: 1, Y: 1}, r3.Vec{X: 1, Y: 1}, r3.Vec{X: 1, Y: 1}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DistanceToSegment(tt.p, tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("DistanceToSegment(%v, %v, %v) = %v, want %v", tt.p, tt.a, tt.b, got, tt.want)
			}
			if math.IsNaN(got) {
				t.Errorf("DistanceToSegment returned NaN")
			}
		})
	}
}

func TestDistanceOutsideEqualsNearestEndpoint(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for range 200 {
		a := r3.Vec{X: rng.Float64()*20 - 10, Y: rng.Float64()*20 - 10, Z: rng.Float64()*20 - 10}
		b := r3.Vec{X: rng.Float64()*20 - 10, Y: rng.Float64()*20 - 10, Z: rng.Float64()*20 - 10}
		ab := r3.Sub(b, a)
		// A point beyond b along the segment direction, pushed sideways.
		side := r3.Cross(ab, r3.Vec{X: 1, Y: 2, Z: 3})
		p := r3.Add(r3.Add(b, r3.Scale(0.5+rng.Float64(), ab)), r3.Scale(rng.Float64(), side))
		if r3.Dot(r3.Sub(p, a), ab) <= r3.Norm2(ab) {
			continue
		}
		got := DistanceToSegment(p, a, b)
		want := r3.Norm(r3.Sub(p, b))
		if math.Abs(got-want) > 1e-9 {
			t.Fatalf("DistanceToSegment(%v, %v, %v) = %v, want distance to end %v", p, a, b, got, want)
		}
	}
}

func TestSampleLinksChain(t *testing.T) {
	pts := sampled(line, 5, 2, 4)
	wantTimes := []float64{2, 2.5, 3, 3.5, 4}
	if diff := cmp.Diff(wantTimes, Times(nil, pts, 0)); diff != "" {
		t.Errorf("Times() mismatch (-want +got):\n%s", diff)
	}
	if pts[4].Next != End {
		t.Errorf("last Next = %d, want End", pts[4].Next)
	}
	if pts[4].Time != 4 {
		t.Errorf("last Time = %v, want exactly 4", pts[4].Time)
	}
}

func TestSimplifyStraightLineCollapses(t *testing.T) {
	pts := sampled(line, 1024, 0, 10)
	Simplify(pts, 0, len(pts)-1, 1.0)

	got := Times(nil, pts, 0)
	if diff := cmp.Diff([]float64{0, 10}, got); diff != "" {
		t.Errorf("straight line survivors mismatch (-want +got):\n%s", diff)
	}
}

func TestSimplifyKeepsApex(t *testing.T) {
	corner := func(t float64) r3.Vec {
		if t <= 1 {
			return r3.Vec{X: 100 * t}
		}
		return r3.Vec{X: 100, Y: 100 * (t - 1)}
	}
	pts := sampled(corner, 1025, 0, 2)
	Simplify(pts, 0, len(pts)-1, 1.0)

	got := Times(nil, pts, 0)
	if diff := cmp.Diff([]float64{0, 1, 2}, got); diff != "" {
		t.Errorf("corner survivors mismatch (-want +got):\n%s", diff)
	}
}

func TestSimplifyInfiniteEpsilon(t *testing.T) {
	pts := sampled(helix, 300, 0, 6)
	Simplify(pts, 0, len(pts)-1, math.Inf(1))
	if got := Times(nil, pts, 0); len(got) != 2 || got[0] != 0 || got[1] != 6 {
		t.Errorf("Times() = %v, want [0 6]", got)
	}
}

func TestSimplifyZeroEpsilonKeepsCurvedSamples(t *testing.T) {
	pts := sampled(helix, 300, 0, 6)
	Simplify(pts, 0, len(pts)-1, 0)
	if got := len(Times(nil, pts, 0)); got != len(pts) {
		t.Errorf("survivors = %d, want %d", got, len(pts))
	}
}

// A sample is kept only when it lies strictly farther than eps from the
// chord, so eps = 0 still drops samples lying exactly on it.
func TestSimplifyZeroEpsilonDropsCollinearSamples(t *testing.T) {
	bend := func(t float64) r3.Vec {
		if t <= 4 {
			return r3.Vec{X: t}
		}
		return r3.Vec{X: 4, Y: t - 4}
	}
	tests := []struct {
		name string
		eval func(float64) r3.Vec
		t1   float64
		want []float64
	}{
		{"straight run", line, 8, []float64{0, 8}},
		{"two straight runs", bend, 8, []float64{0, 4, 8}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pts := sampled(tt.eval, 9, 0, tt.t1)
			Simplify(pts, 0, len(pts)-1, 0)
			if diff := cmp.Diff(tt.want, Times(nil, pts, 0)); diff != "" {
				t.Errorf("Times() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSimplifyBound(t *testing.T) {
	curves := []struct {
		name string
		eval func(float64) r3.Vec
	}{
		{"helix", helix},
		{"wobble", wobble},
		{"line", line},
	}
	for _, c := range curves {
		for _, eps := range []float64{0, 0.01, 0.25, 1, 4, 50} {
			dense := sampled(c.eval, 512, 0, 5)
			pts := append([]Point(nil), dense...)
			Simplify(pts, 0, len(pts)-1, eps)

			survivors := 0
			Walk(pts, 0, func(i int, p Point) bool {
				survivors++
				if p.Next == End {
					if i != len(pts)-1 {
						t.Errorf("%s eps=%v: chain ends at %d, want %d", c.name, eps, i, len(pts)-1)
					}
					return false
				}
				for j := i + 1; j < p.Next; j++ {
					if d := DistanceToSegment(dense[j].Pos, p.Pos, pts[p.Next].Pos); d > eps {
						t.Errorf("%s eps=%v: pruned sample %d is %v from chord [%d,%d]", c.name, eps, j, d, i, p.Next)
					}
				}
				return true
			})
			if survivors < 2 {
				t.Errorf("%s eps=%v: %d survivors, want at least 2", c.name, eps, survivors)
			}
		}
	}
}

func TestSimplifyTrivialChains(t *testing.T) {
	pts := sampled(helix, 2, 0, 1)
	Simplify(pts, 0, 1, 0)
	if pts[0].Next != 1 || pts[1].Next != End {
		t.Errorf("two-point chain changed: %+v", pts)
	}

	one := sampled(helix, 1, 0, 1)
	Simplify(one, 0, 0, 0)
	if one[0].Next != End {
		t.Errorf("single point Next = %d, want End", one[0].Next)
	}
}

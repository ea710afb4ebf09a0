// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package simplify reduces densely sampled curves to sparse polylines with the
// Ramer-Douglas-Peucker algorithm.
//
// Samples live in a contiguous slice. Each sample links to the next surviving
// sample by index, so pruning only rewrites Next fields and never moves or
// reallocates points.
package simplify

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// End marks the end of a sample chain.
const End = -1

// Point is one curve sample.
type Point struct {
	Time float64
	Pos  r3.Vec

	// Next is the index of the next surviving sample, or End.
	Next int
}

// Simplify prunes the chain between pts[start] and pts[end] in place so that
// every removed sample lies within eps of the chord joining its surviving
// neighbors. start and end always survive.
//
// The chain between start and end must be linked; end must be reachable from
// start by following Next.
func Simplify(pts []Point, start, end int, eps float64) {
	if start == end || pts[start].Next == end {
		return
	}

	a, b := pts[start].Pos, pts[end].Pos
	maxDist := -1.0
	split := End
	for i := pts[start].Next; i != end && i != End; i = pts[i].Next {
		if d := DistanceToSegment(pts[i].Pos, a, b); d > maxDist {
			maxDist = d
			split = i
		}
	}

	if split != End && maxDist > eps {
		Simplify(pts, start, split, eps)
		Simplify(pts, split, end, eps)
		return
	}
	pts[start].Next = end
}

// DistanceToSegment returns the Euclidean distance from p to the closest point
// of the segment ab. A zero-length segment is treated as the point a.
func DistanceToSegment(p, a, b r3.Vec) float64 {
	ab := r3.Sub(b, a)
	var t float64
	if l2 := r3.Norm2(ab); l2 > 0 {
		t = r3.Dot(r3.Sub(p, a), ab) / l2
		t = min(max(t, 0), 1)
	}
	return r3.Norm(r3.Sub(p, r3.Add(a, r3.Scale(t, ab))))
}

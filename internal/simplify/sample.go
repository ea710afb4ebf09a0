// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package simplify

import "gonum.org/v1/gonum/spatial/r3"

// Sample fills dst with len(dst) samples of eval spaced uniformly in time over
// [t0, t1], endpoints included, and links them into one chain. With a single
// slot only t0 is sampled.
func Sample(dst []Point, eval func(t float64) r3.Vec, t0, t1 float64) {
	n := len(dst)
	for i := range dst {
		t := t0
		if n > 1 {
			if i == n-1 {
				t = t1
			} else {
				t = t0 + (t1-t0)*float64(i)/float64(n-1)
			}
		}
		dst[i] = Point{Time: t, Pos: eval(t), Next: i + 1}
	}
	if n > 0 {
		dst[n-1].Next = End
	}
}

// Walk calls fn for every surviving sample from start to the end of the chain.
// It stops early when fn returns false.
func Walk(pts []Point, start int, fn func(i int, p Point) bool) {
	for i := start; i != End; i = pts[i].Next {
		if !fn(i, pts[i]) {
			return
		}
	}
}

// Times appends the times of the surviving samples from start to the end of
// the chain to dst and returns the extended slice.
func Times(dst []float64, pts []Point, start int) []float64 {
	Walk(pts, start, func(_ int, p Point) bool {
		dst = append(dst, p.Time)
		return true
	})
	return dst
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package campath

import (
	"context"
	"log/slog"
	"math"
	"slices"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/gogpu/campath/internal/simplify"
)

// Trajectory returns the times of the simplified trajectory points,
// rebuilding them first if the path changed since the last call. It works
// with or without a device. It returns nil when the path has fewer than two
// keyframes or cannot be evaluated.
func (o *Overlay) Trajectory() []float64 {
	if !o.hasTrajectory() {
		return nil
	}
	o.ensureTrajectory()
	return slices.Clone(o.trajectory)
}

func (o *Overlay) hasTrajectory() bool {
	return o.path.Len() >= 2 && o.path.CanEval()
}

func (o *Overlay) ensureTrajectory() {
	if o.dirty {
		o.rebuild()
	}
}

// rebuild samples every keyframe interval densely, simplifies each interval
// on its own and concatenates the survivors. Neighboring intervals share
// their boundary keyframe, so each interval contributes everything but its
// last point and the very last keyframe time is appended at the end.
func (o *Overlay) rebuild() {
	n := o.opts.samples
	if cap(o.samples) < n {
		o.samples = make([]simplify.Point, n)
	}
	pts := o.samples[:n]
	eval := func(t float64) r3.Vec { return o.path.Eval(t).Position }

	o.trajectory = o.trajectory[:0]
	first := true
	var last float64
	for t := range o.path.Keyframes() {
		if first {
			first = false
			last = t
			continue
		}
		simplify.Sample(pts, eval, last, t)
		simplify.Simplify(pts, 0, n-1, o.opts.epsilon)
		simplify.Walk(pts, 0, func(_ int, p simplify.Point) bool {
			if p.Next == simplify.End {
				return false
			}
			o.trajectory = append(o.trajectory, p.Time)
			return true
		})
		last = t
	}
	if len(o.trajectory) > 0 {
		o.trajectory = append(o.trajectory, last)
	}
	o.dirty = false

	ctx := context.Background()
	o.metrics.rebuilds.Add(ctx, 1)
	o.metrics.retained.Record(ctx, int64(len(o.trajectory)))
	slogger().Debug("campath: trajectory rebuilt", slog.Int("points", len(o.trajectory)))
}

// drawTrajectory draws the retained trajectory as one polyline.
func (o *Overlay) drawTrajectory(now float64) {
	if !o.hasTrajectory() {
		return
	}
	o.ensureTrajectory()
	times := o.trajectory
	if len(times) == 0 {
		return
	}

	o.setPixelWidth(trajectoryPixelWidth)
	o.batch.BeginPolyline()

	cur := o.path.Eval(times[0])
	prev := cur
	for i, t := range times {
		next := cur
		if i+1 < len(times) {
			next = o.path.Eval(times[i+1])
		}
		c := ProximityColor(math.Abs(now-t), cur.Selected)
		o.batch.AddPolylinePoint(prev.Position, cur.Position, c, next.Position)
		prev, cur = cur, next
	}
	o.batch.FlushPolyline()
}

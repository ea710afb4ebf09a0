// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package campath

import (
	"fmt"

	"go.opentelemetry.io/otel/metric"
)

const meterScope = "github.com/gogpu/campath"

type instruments struct {
	framesDrawn   metric.Int64Counter
	framesSkipped metric.Int64Counter
	drawCalls     metric.Int64Counter
	rebuilds      metric.Int64Counter
	retained      metric.Int64Histogram
}

func newInstruments(m metric.Meter) (*instruments, error) {
	var (
		in  instruments
		err error
	)
	if in.framesDrawn, err = m.Int64Counter("campath.frames.drawn",
		metric.WithDescription("Frames the overlay was drawn in"),
		metric.WithUnit("{frame}")); err != nil {
		return nil, fmt.Errorf("campath: create metric: %w", err)
	}
	if in.framesSkipped, err = m.Int64Counter("campath.frames.skipped",
		metric.WithDescription("Visible frames skipped because resources were missing"),
		metric.WithUnit("{frame}")); err != nil {
		return nil, fmt.Errorf("campath: create metric: %w", err)
	}
	if in.drawCalls, err = m.Int64Counter("campath.draw_calls",
		metric.WithDescription("Draw calls issued by the overlay"),
		metric.WithUnit("{call}")); err != nil {
		return nil, fmt.Errorf("campath: create metric: %w", err)
	}
	if in.rebuilds, err = m.Int64Counter("campath.trajectory.rebuilds",
		metric.WithDescription("Trajectory simplifications")); err != nil {
		return nil, fmt.Errorf("campath: create metric: %w", err)
	}
	if in.retained, err = m.Int64Histogram("campath.trajectory.points",
		metric.WithDescription("Trajectory points kept after simplification"),
		metric.WithUnit("{point}")); err != nil {
		return nil, fmt.Errorf("campath: create metric: %w", err)
	}
	return &in, nil
}

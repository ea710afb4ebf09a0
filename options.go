// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package campath

import (
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/gogpu/campath/internal/batch"
	"github.com/gogpu/campath/shaders"
)

const (
	// DefaultEpsilon is the default simplification tolerance in world units.
	DefaultEpsilon = 1.0

	// DefaultSamplesPerInterval is the default number of samples taken
	// between two neighboring keyframes before simplification.
	DefaultSamplesPerInterval = 1024
)

// Option configures an Overlay during creation.
//
// Example:
//
//	ov, err := campath.New(path, view,
//	    campath.WithEpsilon(0.5),
//	    campath.WithKeyframeCamera(true),
//	)
type Option func(*options)

type options struct {
	shaders  ShaderProvider
	capacity int
	epsilon  float64
	samples  int
	axis     bool
	camera   bool
	meter    metric.Meter
}

func defaultOptions() options {
	return options{
		capacity: batch.DefaultCapacity,
		epsilon:  DefaultEpsilon,
		samples:  DefaultSamplesPerInterval,
		axis:     true,
		meter:    noop.Meter{},
	}
}

// WithShaderProvider sets where the line shaders come from. By default the
// embedded shaders are compiled with naga (see package shaders).
func WithShaderProvider(p ShaderProvider) Option {
	return func(o *options) {
		o.shaders = p
	}
}

// WithVertexCapacity sets the size of the vertex arena in vertices.
// Values below batch.MinCapacity are raised to it.
func WithVertexCapacity(n int) Option {
	return func(o *options) {
		o.capacity = max(n, batch.MinCapacity)
	}
}

// WithEpsilon sets the simplification tolerance in world units. Negative
// values are treated as zero, which keeps every sample.
func WithEpsilon(eps float64) Option {
	return func(o *options) {
		o.epsilon = max(eps, 0)
	}
}

// WithSamplesPerInterval sets how many samples are taken between two
// neighboring keyframes. Values below 2 are raised to 2.
func WithSamplesPerInterval(n int) Option {
	return func(o *options) {
		o.samples = max(n, 2)
	}
}

// WithKeyframeAxis sets whether an axis cross is drawn at every keyframe.
// Enabled by default.
func WithKeyframeAxis(on bool) Option {
	return func(o *options) {
		o.axis = on
	}
}

// WithKeyframeCamera sets whether a camera glyph is drawn at every keyframe.
// Disabled by default.
func WithKeyframeCamera(on bool) Option {
	return func(o *options) {
		o.camera = on
	}
}

// WithMeter sets the meter the overlay records its metrics with.
// By default metrics are discarded.
func WithMeter(m metric.Meter) Option {
	return func(o *options) {
		if m != nil {
			o.meter = m
		}
	}
}

func (o *options) shaderProvider() ShaderProvider {
	if o.shaders == nil {
		o.shaders = shaders.NewLibrary()
	}
	return o.shaders
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package shaders holds the WGSL sources of the camera path line shaders and
// turns them into device shaders.
//
// Sources are compiled to SPIR-V with naga on first use and cached for the
// lifetime of the Library. Device shaders are created per device; the caller
// owns the returned reference.
package shaders

import (
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"

	"github.com/gogpu/campath/device"
)

// Shader names.
const (
	LineVertex   = "line_vs"
	LineFragment = "line_fs"
)

//go:embed line_vs.wgsl
var lineVertexWGSL string

//go:embed line_fs.wgsl
var lineFragmentWGSL string

var (
	// ErrUnknownShader is returned for names the library does not know.
	ErrUnknownShader = errors.New("shaders: unknown shader")

	// ErrWrongStage is returned when a shader is requested for a stage it was
	// not written for.
	ErrWrongStage = errors.New("shaders: shader requested for wrong stage")
)

type source struct {
	stage gputypes.ShaderStage
	wgsl  string
}

var sources = map[string]source{
	LineVertex:   {stage: gputypes.ShaderStageVertex, wgsl: lineVertexWGSL},
	LineFragment: {stage: gputypes.ShaderStageFragment, wgsl: lineFragmentWGSL},
}

// Source returns the WGSL source of name.
func Source(name string) (string, bool) {
	s, ok := sources[name]
	return s.wgsl, ok
}

// Library compiles and caches shaders.
//
// Library is safe for concurrent use.
type Library struct {
	mu       sync.Mutex
	compiled map[string][]uint32
	compile  func(string) ([]byte, error)
}

// NewLibrary returns an empty library.
func NewLibrary() *Library {
	return &Library{
		compiled: make(map[string][]uint32),
		compile:  naga.Compile,
	}
}

// SPIRV returns the SPIR-V words of name, compiling it on first use.
func (l *Library) SPIRV(name string) ([]uint32, error) {
	src, ok := sources[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownShader, name)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if words, ok := l.compiled[name]; ok {
		return words, nil
	}

	spirvBytes, err := l.compile(src.wgsl)
	if err != nil {
		return nil, fmt.Errorf("shaders: compile %s: %w", name, err)
	}
	if len(spirvBytes)%4 != 0 {
		return nil, fmt.Errorf("shaders: compile %s: SPIR-V length %d is not a multiple of 4", name, len(spirvBytes))
	}

	// SPIR-V is little-endian 32-bit words.
	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	l.compiled[name] = words
	slogger().Debug("shaders: compiled", slog.String("name", name), slog.Int("words", len(words)))
	return words, nil
}

// VertexShader creates the vertex shader name on dev.
func (l *Library) VertexShader(dev device.Device, name string) (device.Shader, error) {
	return l.create(dev, name, gputypes.ShaderStageVertex)
}

// PixelShader creates the pixel (fragment) shader name on dev.
func (l *Library) PixelShader(dev device.Device, name string) (device.Shader, error) {
	return l.create(dev, name, gputypes.ShaderStageFragment)
}

func (l *Library) create(dev device.Device, name string, stage gputypes.ShaderStage) (device.Shader, error) {
	src, ok := sources[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownShader, name)
	}
	if src.stage != stage {
		return nil, fmt.Errorf("%w: %s is a %v shader", ErrWrongStage, name, src.stage)
	}
	words, err := l.SPIRV(name)
	if err != nil {
		return nil, err
	}
	s, err := dev.CreateShader(name, stage, words)
	if err != nil {
		return nil, fmt.Errorf("shaders: create %s: %w", name, err)
	}
	return s, nil
}

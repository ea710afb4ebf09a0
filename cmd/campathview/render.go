// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gogpu/gg"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/campath"
	"github.com/gogpu/campath/device"
	"github.com/gogpu/campath/device/soft"
	"github.com/gogpu/campath/internal/keyframes"
	"github.com/gogpu/campath/internal/stateguard"
)

var background = gg.RGB(0.08, 0.08, 0.1)

// run renders every configured frame of the camera path in cfg.Path and
// returns the written file names.
func run(cfg Config, log *slog.Logger) ([]string, error) {
	f, err := os.Open(cfg.Path)
	if err != nil {
		return nil, err
	}
	path, err := keyframes.Load(f)
	_ = f.Close()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cfg.Path, err)
	}
	log.Info("camera path loaded", "path", cfg.Path, "keyframes", path.Len(),
		"from", path.LowerBound(), "to", path.UpperBound())

	v := newView(cfg.Output, cfg.Camera)
	opts := []campath.Option{
		campath.WithEpsilon(cfg.Overlay.Epsilon),
		campath.WithSamplesPerInterval(cfg.Overlay.Samples),
		campath.WithVertexCapacity(cfg.Overlay.Capacity),
		campath.WithKeyframeAxis(cfg.Overlay.Axis),
		campath.WithKeyframeCamera(cfg.Overlay.Camera),
	}
	if !cfg.Overlay.CompileShaders {
		opts = append(opts, campath.WithShaderProvider(placeholderShaders{}))
	}
	ov, err := campath.New(path, v, opts...)
	if err != nil {
		return nil, err
	}
	defer ov.Close()

	dev := soft.New()
	defer func() {
		ov.OnDeviceReleased()
		dev.Unbind()
		if n := dev.Live(); n != 0 {
			log.Warn("device resources leaked", "live", n)
		}
		dev.Release()
	}()
	ov.OnDeviceAcquired(dev)
	ov.SetVisible(true)

	if err := os.MkdirAll(cfg.Output.Dir, 0o755); err != nil {
		return nil, err
	}

	preview := soft.Previewer{
		MatrixRegister: stateguard.MatrixRegister,
		ScreenRegister: stateguard.ScreenInfoRegister,
	}
	var written []string
	for i, t := range frameTimes(cfg, path) {
		v.now = t
		dev.ResetDraws()
		ov.OnFrameRenderedPostGeometry()

		name := filepath.Join(cfg.Output.Dir, fmt.Sprintf("frame_%03d.png", i))
		if err := writeFrame(name, cfg.Output, preview, dev.Draws()); err != nil {
			return written, err
		}
		written = append(written, name)
		log.Info("frame written", "file", name, "time", t, "draws", len(dev.Draws()))
	}

	if cfg.Plot != "" {
		if err := writePlot(cfg.Plot, path, ov.Trajectory()); err != nil {
			return written, err
		}
		written = append(written, cfg.Plot)
		log.Info("trajectory plot written", "file", cfg.Plot)
	}
	return written, nil
}

func writeFrame(name string, out OutputConfig, preview soft.Previewer, draws []soft.Draw) error {
	dc := gg.NewContext(out.Width, out.Height)
	defer dc.Close()

	dc.ClearWithColor(background)
	if err := preview.Draw(dc, draws); err != nil {
		return fmt.Errorf("rasterize %s: %w", name, err)
	}
	return dc.SavePNG(name)
}

// frameTimes returns the explicit times from cfg, or cfg.Frames times spread
// evenly over the path.
func frameTimes(cfg Config, p campath.Path) []float64 {
	if len(cfg.Times) > 0 {
		return cfg.Times
	}
	n := cfg.Frames
	if n <= 0 || p.Len() == 0 {
		return nil
	}
	lo, hi := p.LowerBound(), p.UpperBound()
	if n == 1 {
		return []float64{lo}
	}
	ts := make([]float64, n)
	for i := range ts {
		ts[i] = lo + (hi-lo)*float64(i)/float64(n-1)
	}
	return ts
}

// placeholderShaders creates shaders holding only the SPIR-V magic word.
// The soft device never runs shader code, so previews do not need the
// compiled line shaders.
type placeholderShaders struct{}

var placeholderCode = []uint32{0x07230203}

func (placeholderShaders) VertexShader(dev device.Device, name string) (device.Shader, error) {
	return dev.CreateShader(name, gputypes.ShaderStageVertex, placeholderCode)
}

func (placeholderShaders) PixelShader(dev device.Device, name string) (device.Shader, error) {
	return dev.CreateShader(name, gputypes.ShaderStageFragment, placeholderCode)
}

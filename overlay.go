// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package campath

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/gogpu/campath/device"
	"github.com/gogpu/campath/internal/batch"
	"github.com/gogpu/campath/internal/clipplane"
	"github.com/gogpu/campath/internal/simplify"
	"github.com/gogpu/campath/internal/stateguard"
	"github.com/gogpu/campath/shaders"
)

var (
	// ErrNilPath is returned by New when no path is given.
	ErrNilPath = errors.New("campath: nil path")

	// ErrNilView is returned by New when no view is given.
	ErrNilView = errors.New("campath: nil view")
)

// Overlay draws a camera path on top of a host's scene.
//
// Overlay is not safe for concurrent use. All methods are called from the
// host's render thread.
type Overlay struct {
	path    Path
	view    View
	opts    options
	metrics *instruments

	visible bool
	axis    bool
	camera  bool
	closed  bool

	// Device resources, valid between OnDeviceAcquired and OnDeviceReleased.
	dev   device.Device
	batch *batch.Batcher
	vs    device.Shader
	ps    device.Shader
	decl  device.VertexDeclaration

	missing     string // last reported set of missing resources
	planeFailed bool
	plane0      r3.Vec
	planeN      r3.Vec
	screen      [4]float32

	dirty      bool
	trajectory []float64
	samples    []simplify.Point
}

// New creates an overlay for path as seen through view. The overlay starts
// hidden and without a device. It subscribes to path changes until Close.
func New(path Path, view View, opts ...Option) (*Overlay, error) {
	if path == nil {
		return nil, ErrNilPath
	}
	if view == nil {
		return nil, ErrNilView
	}
	o := &Overlay{
		path:   path,
		view:   view,
		opts:   defaultOptions(),
		planeN: r3.Vec{X: 1},
		dirty:  true,
	}
	for _, opt := range opts {
		opt(&o.opts)
	}
	o.axis = o.opts.axis
	o.camera = o.opts.camera

	in, err := newInstruments(o.opts.meter)
	if err != nil {
		return nil, err
	}
	o.metrics = in
	path.SetOnChanged(o.pathChanged)
	return o, nil
}

// SetVisible shows or hides the overlay.
func (o *Overlay) SetVisible(v bool) { o.visible = v }

// Visible reports whether the overlay is drawn.
func (o *Overlay) Visible() bool { return o.visible }

// SetDrawKeyframeAxis sets whether an axis cross is drawn at every keyframe.
func (o *Overlay) SetDrawKeyframeAxis(v bool) { o.axis = v }

// DrawKeyframeAxis reports whether an axis cross is drawn at every keyframe.
func (o *Overlay) DrawKeyframeAxis() bool { return o.axis }

// SetDrawKeyframeCamera sets whether a camera glyph is drawn at every
// keyframe.
func (o *Overlay) SetDrawKeyframeCamera(v bool) { o.camera = v }

// DrawKeyframeCamera reports whether a camera glyph is drawn at every
// keyframe.
func (o *Overlay) DrawKeyframeCamera() bool { return o.camera }

// OnDeviceAcquired starts drawing on dev. A device acquired earlier is
// released first. The overlay keeps its own reference to dev until
// OnDeviceReleased.
func (o *Overlay) OnDeviceAcquired(dev device.Device) {
	o.OnDeviceReleased()
	if dev == nil {
		return
	}
	if o.closed {
		slogger().Warn("campath: device acquired after Close")
		return
	}

	dev.AddRef()
	o.dev = dev
	o.batch = batch.New(dev, batch.WithCapacity(o.opts.capacity))
	o.dirty = true
	o.missing = ""
	slogger().Info("campath: device acquired", slog.String("device", dev.Label()))
}

// OnDeviceReleased stops drawing on the current device and releases every
// resource created on it. It does nothing without a device.
func (o *Overlay) OnDeviceReleased() {
	if o.dev == nil {
		return
	}

	o.batch.Release()
	o.batch = nil
	if o.decl != nil {
		o.decl.Release()
		o.decl = nil
	}
	if o.ps != nil {
		o.ps.Release()
		o.ps = nil
	}
	if o.vs != nil {
		o.vs.Release()
		o.vs = nil
	}

	label := o.dev.Label()
	o.dev.Release()
	o.dev = nil
	slogger().Info("campath: device released", slog.String("device", label))
}

// Reset frees the vertex arena ahead of a device reset. It is recreated on
// the next frame.
func (o *Overlay) Reset() {
	if o.batch != nil {
		o.batch.Release()
	}
}

// Close releases the device and all resources and stops listening to path
// changes. The overlay ignores further devices afterwards.
func (o *Overlay) Close() error {
	o.OnDeviceReleased()
	if !o.closed {
		o.path.SetOnChanged(nil)
		o.closed = true
	}
	return nil
}

// pathChanged marks the trajectory stale. A visible overlay with a device
// asks the view for a new frame.
func (o *Overlay) pathChanged() {
	o.dirty = true
	if o.visible && o.dev != nil {
		o.view.RequestRedraw()
	}
}

// OnFrameRenderedPostGeometry draws the overlay for the current frame.
//
// The host may call it several times per frame. Nothing is drawn while the
// overlay is hidden or when the shaders or vertex declaration are not
// available. Device state is the same on return as on entry.
func (o *Overlay) OnFrameRenderedPostGeometry() {
	if !o.visible {
		return
	}
	ctx := context.Background()
	if !o.resolve() {
		o.metrics.framesSkipped.Add(ctx, 1)
		return
	}

	g := stateguard.Save(o.dev)
	defer g.Restore()

	calls := o.batch.DrawCalls()
	o.draw()
	o.metrics.framesDrawn.Add(ctx, 1)
	o.metrics.drawCalls.Add(ctx, int64(o.batch.DrawCalls()-calls))
}

// resolve makes sure the shaders and the vertex declaration exist on the
// device. Missing resources are reported once per change of what is missing.
func (o *Overlay) resolve() bool {
	var (
		missing []string
		errs    []error
	)
	if o.dev == nil {
		missing = append(missing, "device")
	} else {
		provider := o.opts.shaderProvider()
		if o.vs == nil {
			vs, err := provider.VertexShader(o.dev, shaders.LineVertex)
			if err != nil {
				missing, errs = append(missing, "vertex shader"), append(errs, err)
			} else {
				o.vs = vs
			}
		}
		if o.ps == nil {
			ps, err := provider.PixelShader(o.dev, shaders.LineFragment)
			if err != nil {
				missing, errs = append(missing, "pixel shader"), append(errs, err)
			} else {
				o.ps = ps
			}
		}
		if o.decl == nil {
			decl, err := o.dev.CreateVertexDeclaration("campath.decl", batch.Layout())
			if err != nil {
				missing, errs = append(missing, "vertex declaration"), append(errs, err)
			} else {
				o.decl = decl
			}
		}
	}

	key := strings.Join(missing, ", ")
	if key != o.missing {
		o.missing = key
		if key != "" {
			slogger().Warn("campath: missing resources, not drawing",
				slog.String("missing", key), slog.Any("err", errors.Join(errs...)))
		}
	}
	return key == ""
}

func (o *Overlay) draw() {
	dev := o.dev
	now := o.view.Time()

	stateguard.Apply(dev)
	dev.SetVertexShader(o.vs)

	m := o.view.WorldToScreen()
	dev.SetVertexShaderConstants(stateguard.MatrixRegister, m.Rows())
	o.updatePlane(m)
	dev.SetVertexShaderConstants(stateguard.PlanePointRegister, [][4]float32{
		{float32(o.plane0.X), float32(o.plane0.Y), float32(o.plane0.Z), 0},
		{float32(o.planeN.X), float32(o.planeN.Y), float32(o.planeN.Z), 0},
	})

	dev.SetPixelShader(o.ps)
	dev.SetVertexDeclaration(o.decl)

	w, h := o.pixelSize()
	o.screen = [4]float32{reciprocal(w), reciprocal(h), 0, 0}

	o.drawTrajectory(now)
	cameraSelected := o.drawKeyframes(now)

	p := o.path
	inside := p.Len() >= 1 && p.LowerBound() <= now && now <= p.UpperBound()
	if inside && p.CanEval() {
		o.drawCamera(p.Eval(now), CameraColor(p.Enabled(), cameraSelected))
	}
}

// drawKeyframes draws the markers of every keyframe. It reports whether now
// lies between two neighboring selected keyframes.
func (o *Overlay) drawKeyframes(now float64) bool {
	o.setPixelWidth(crossPixelWidth)

	var (
		selected     bool
		lastSelected bool
		lastTime     float64
	)
	for t, v := range o.path.Keyframes() {
		selected = selected || lastSelected && v.Selected && lastTime <= now && now <= t
		lastSelected, lastTime = v.Selected, t

		c := ProximityColor(math.Abs(now-t), v.Selected)
		if o.axis {
			for _, e := range CrossEdges(v.Position) {
				o.batch.AddSingleLine(e[0], c, e[1], c)
			}
		}
		if o.camera {
			o.drawCamera(v, c)
		}
	}
	o.batch.FlushSingleLines()
	return selected
}

func (o *Overlay) drawCamera(v Value, c Color) {
	o.setPixelWidth(cameraPixelWidth)

	aspect := 1.0
	if w, h := o.pixelSize(); w != 0 {
		aspect = float64(h) / float64(w)
	}
	for _, e := range CameraEdges(v, aspect) {
		o.batch.AddSingleLine(e[0], c, e[1], c)
	}
	o.batch.FlushSingleLines()
}

// setPixelWidth updates the line width in the screen info register. Pending
// single lines are drawn first so they keep the width they were added with.
func (o *Overlay) setPixelWidth(px float32) {
	if o.batch.Len() > 0 && o.screen[2] != px {
		o.batch.FlushSingleLines()
	}
	o.screen[2] = px
	o.dev.SetVertexShaderConstants(stateguard.ScreenInfoRegister, [][4]float32{o.screen})
}

// updatePlane solves the camera plane for m. On failure the previous plane
// stays in use.
func (o *Overlay) updatePlane(m device.Matrix4) {
	p, n, err := clipplane.Solve(m)
	if err != nil {
		if !o.planeFailed {
			o.planeFailed = true
			slogger().Warn("campath: cannot derive clip plane, keeping previous", slog.Any("err", err))
		}
		return
	}
	o.planeFailed = false
	o.plane0, o.planeN = p, n
}

// pixelSize returns the screen size in physical pixels.
func (o *Overlay) pixelSize() (int, int) {
	w, h := o.view.Size()
	sf := o.view.ScaleFactor()
	if sf <= 0 {
		sf = 1
	}
	return int(math.Round(float64(w) * sf)), int(math.Round(float64(h) * sf))
}

func reciprocal(n int) float32 {
	if n == 0 {
		return 0
	}
	return 1 / float32(n)
}

func (o *Overlay) String() string {
	return fmt.Sprintf("campath.Overlay{visible: %t, device: %t, points: %d}", o.visible, o.dev != nil, len(o.trajectory))
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package campath draws a camera path overlay on top of a host's 3D scene.
//
// An [Overlay] renders three things every frame once geometry is done:
//
//   - the interpolated trajectory, simplified with Ramer-Douglas-Peucker and
//     drawn as one thick polyline coloured by distance in time from now
//   - a small axis cross (and optionally a camera glyph) at every keyframe
//   - a camera glyph at the path position for the current time
//
// The overlay borrows the host's device. It saves every piece of state it
// touches before drawing and puts it back afterwards, so the host renderer
// never sees a difference.
//
// # Host lifecycle
//
// The host calls [Overlay.OnDeviceAcquired] when a device becomes available,
// [Overlay.OnFrameRenderedPostGeometry] once geometry has been rendered in a
// frame, [Overlay.Reset] before a device reset and [Overlay.OnDeviceReleased]
// when the device goes away. All entry points run on the render thread.
//
// # Quick start
//
//	ov, err := campath.New(path, view)
//	if err != nil {
//	    return err
//	}
//	defer ov.Close()
//	ov.OnDeviceAcquired(dev)
//	ov.SetVisible(true)
//	// per frame:
//	ov.OnFrameRenderedPostGeometry()
//
// # Logging
//
// By default nothing is logged. Use [SetLogger] to route diagnostics to a
// [log/slog.Logger].
package campath

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package campath

import "github.com/gogpu/campath/internal/batch"

// Color is an 8-bit RGBA colour as stored in line vertices.
type Color = batch.Color

// ProximityColor returns the colour of a path point d seconds away from the
// current time (d >= 0). Points within one second fade from opaque green to
// yellow, points within two seconds from yellow to red, everything further
// away is a faint red.
//
// Selected points get every RGB channel complemented. Alpha is unchanged.
func ProximityColor(d float64, selected bool) Color {
	var c Color
	switch {
	case d < 1:
		c = Color{R: uint8(255 * d), G: 255, A: uint8(127*(1-d)) + 128}
	case d < 2:
		t := d - 1
		c = Color{R: 255, G: uint8(255 * (1 - t)), A: uint8(64*(1-t)) + 64}
	default:
		c = Color{R: 255, A: 64}
	}
	if selected {
		c = c.Complement()
	}
	return c
}

// CameraColor returns the colour of the live camera glyph: magenta while the
// path drives the camera, white otherwise. selected complements the RGB
// channels.
func CameraColor(enabled, selected bool) Color {
	c := Color{R: 255, G: 255, B: 255, A: 128}
	if enabled {
		c.G = 0
	}
	if selected {
		c = c.Complement()
	}
	return c
}

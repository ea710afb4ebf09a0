// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package keyframes

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/gogpu/campath"
)

// ErrDuplicateTime is returned by Load when two keyframes share a time.
var ErrDuplicateTime = errors.New("keyframes: duplicate keyframe time")

// File is the JSON form of a camera path.
//
//	{
//	  "enabled": true,
//	  "keyframes": [
//	    {"time": 0, "x": 0, "y": 0, "z": 64, "pitch": 0, "yaw": 90, "roll": 0, "fov": 90}
//	  ]
//	}
//
// Angles are in degrees.
type File struct {
	Enabled   *bool          `json:"enabled,omitempty"`
	Keyframes []FileKeyframe `json:"keyframes"`
}

// FileKeyframe is one keyframe of a File.
type FileKeyframe struct {
	Time     float64 `json:"time"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Z        float64 `json:"z"`
	Pitch    float64 `json:"pitch"`
	Yaw      float64 `json:"yaw"`
	Roll     float64 `json:"roll"`
	Fov      float64 `json:"fov"`
	Selected bool    `json:"selected,omitempty"`
}

// Load reads a camera path in JSON form.
func Load(r io.Reader) (*Path, error) {
	var f File
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("keyframes: decode: %w", err)
	}
	p := New()
	if f.Enabled != nil {
		p.enabled = *f.Enabled
	}
	for i, k := range f.Keyframes {
		if _, found := p.search(k.Time); found {
			return nil, fmt.Errorf("%w: keyframe %d at %g", ErrDuplicateTime, i, k.Time)
		}
		p.Add(k.Time, campath.Value{
			Position: r3.Vec{X: k.X, Y: k.Y, Z: k.Z},
			Rotation: Euler(k.Pitch, k.Yaw, k.Roll),
			Fov:      k.Fov,
			Selected: k.Selected,
		})
	}
	return p, nil
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/gogpu/campath"
)

// denseSamples is the number of samples of the reference curve per keyframe
// interval.
const denseSamples = 64

// writePlot saves a top-down plot of the path: the densely sampled curve,
// the simplified trajectory and the keyframes. The format follows the file
// extension of name.
func writePlot(name string, p campath.Path, trajectory []float64) error {
	pl := plot.New()
	pl.Title.Text = fmt.Sprintf("Camera path (%d keyframes, %d trajectory points)", p.Len(), len(trajectory))
	pl.X.Label.Text = "X"
	pl.Y.Label.Text = "Y"

	if p.CanEval() {
		dense := make(plotter.XYs, 0, denseSamples*p.Len())
		n := denseSamples * (p.Len() - 1)
		lo, hi := p.LowerBound(), p.UpperBound()
		for i := 0; i <= n; i++ {
			pos := p.Eval(lo + (hi-lo)*float64(i)/float64(n)).Position
			dense = append(dense, plotter.XY{X: pos.X, Y: pos.Y})
		}
		line, err := plotter.NewLine(dense)
		if err != nil {
			return err
		}
		line.Color = color.RGBA{R: 160, G: 160, B: 160, A: 255}
		line.Width = vg.Points(1)
		pl.Add(line)
		pl.Legend.Add("curve", line)
	}

	if len(trajectory) > 0 {
		pts := make(plotter.XYs, len(trajectory))
		for i, t := range trajectory {
			pos := p.Eval(t).Position
			pts[i] = plotter.XY{X: pos.X, Y: pos.Y}
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return err
		}
		line.Color = color.RGBA{R: 255, A: 255}
		line.Width = vg.Points(1.5)
		pl.Add(line)
		pl.Legend.Add("trajectory", line)
	}

	var keys plotter.XYs
	for _, v := range p.Keyframes() {
		keys = append(keys, plotter.XY{X: v.Position.X, Y: v.Position.Y})
	}
	if len(keys) > 0 {
		sc, err := plotter.NewScatter(keys)
		if err != nil {
			return err
		}
		sc.GlyphStyle.Shape = draw.CrossGlyph{}
		sc.GlyphStyle.Color = color.RGBA{G: 160, B: 255, A: 255}
		sc.GlyphStyle.Radius = vg.Points(4)
		pl.Add(sc)
		pl.Legend.Add("keyframes", sc)
	}

	pl.Legend.Top = true
	pl.Legend.Left = false
	return pl.Save(8*vg.Inch, 8*vg.Inch, name)
}

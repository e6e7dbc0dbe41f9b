// seehuhn.de/go/dieline - packaging template rendering
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package testcases holds named render scenarios.  They are shared by the
// tests, the benchmarks, and the generator commands in the
// subdirectories.
package testcases

import (
	"image"

	"seehuhn.de/go/dieline"
	"seehuhn.de/go/dieline/shape"
	"seehuhn.de/go/dieline/units"
)

// TestCase defines a single render scenario.
type TestCase struct {
	Name     string           // lowercase a-z, 0-9 and _ only
	Shape    shape.Descriptor // the template to render
	Unit     units.Unit       // unit of the shape dimensions
	Width    float64          // viewport width in logical pixels
	Height   float64          // viewport height in logical pixels
	DPR      float64          // device pixel ratio (zero means 1)
	Annotate bool             // draw the dimension lines
	Image    Source           // source image, nil for the placeholder fill
	Slices   int              // warp slice count (zero means automatic)
}

// Viewport returns the viewport of the test case.
func (tc *TestCase) Viewport() shape.Viewport {
	return shape.NewViewport(tc.Width, tc.Height)
}

// Request returns the render request of the test case.  The source
// image, if any, is generated afresh.
func (tc *TestCase) Request() dieline.Request {
	req := dieline.Request{
		Shape:            tc.Shape,
		Unit:             tc.Unit,
		Viewport:         tc.Viewport(),
		DevicePixelRatio: tc.DPR,
		Annotate:         tc.Annotate,
	}
	req.Warp.Slices = tc.Slices
	if tc.Image != nil {
		req.Image = tc.Image()
	}
	return req
}

// Source generates a source image.  Every call returns a new image.
type Source func() image.Image

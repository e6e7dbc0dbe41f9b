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

package shape

import "math"

// Viewport describes the logical canvas a shape is fitted into.
type Viewport struct {
	// Width and Height give the canvas size in logical pixels.
	Width, Height float64

	// Margin is kept free on every side of the scaled bounding box.
	Margin float64

	// Bias overrides the vertical offset added after centering, per kind.
	// Kinds missing from the map use [DefaultBias].
	Bias map[Kind]float64
}

// DefaultMargin is the margin used by [NewViewport].
const DefaultMargin = 60

// NewViewport returns a viewport of the given size with the default margin.
func NewViewport(width, height float64) Viewport {
	return Viewport{Width: width, Height: height, Margin: DefaultMargin}
}

// DefaultBias returns the vertical offset applied to shapes of kind k when
// the viewport does not override it.  Curved tubs sit slightly below the
// canvas centre to leave room for the top dimension line.
func DefaultBias(k Kind) float64 {
	if k == KindCurvedTub {
		return 60
	}
	return 0
}

func (vp Viewport) bias(k Kind) float64 {
	if b, ok := vp.Bias[k]; ok {
		return b
	}
	return DefaultBias(k)
}

// fitScale returns min(scaleX, scaleY, 1) for a bounding box of w×h
// logical pixels.
func (vp Viewport) fitScale(w, h float64) (float64, error) {
	if !(vp.Margin >= 0) || math.IsInf(vp.Margin, 0) {
		return 0, &DimensionError{Field: "viewport.margin", Value: vp.Margin}
	}
	availX := vp.Width - 2*vp.Margin
	availY := vp.Height - 2*vp.Margin
	if err := positive("viewport.width", availX); err != nil {
		return 0, err
	}
	if err := positive("viewport.height", availY); err != nil {
		return 0, err
	}
	scale := min(availX/w, availY/h, 1)
	if err := positive("scale", scale); err != nil {
		return 0, err
	}
	return scale, nil
}

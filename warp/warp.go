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

// Package warp maps a flat source image onto the outline of a shape.
//
// The source is cut into thin vertical slices.  Each slice is placed by a
// separate affine map at the corresponding position of the shape's top
// edge, rotated to follow the local edge direction and stretched to the
// local distance between the top and bottom edges.  For the gentle
// curvature of packaging walls this piecewise affine approximation is
// visually indistinguishable from a true curvilinear warp.
package warp

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/dieline/shape"
)

// DefaultOverlap is the amount, in logical pixels, by which every slice
// is widened so that neighbouring rotated slices leave no hairline gaps.
const DefaultOverlap = 0.6

// Placeholder is the fill colour used when no source image is given.
var Placeholder = color.RGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff}

// Options controls the quality of the warp.  The zero value selects the
// defaults.
type Options struct {
	// Slices is the number of vertical slices.  If zero, one slice is used
	// per device pixel of top edge arc length, limited by the source width.
	Slices int

	// Overlap widens every slice by this many logical pixels.  Zero
	// selects DefaultOverlap, negative values disable the overlap.
	Overlap float64

	// Supersample, if larger than one, draws the slices at this multiple
	// of the device resolution and scales the result down before masking.
	Supersample int

	// Interpolator samples the source image.  If nil, draw.BiLinear is
	// used.
	Interpolator draw.Interpolator

	// Placeholder is the flat fill used without a source image.  If nil,
	// the package level Placeholder colour is used.
	Placeholder color.Color
}

func (o *Options) overlap() float64 {
	switch {
	case o.Overlap == 0:
		return DefaultOverlap
	case o.Overlap < 0:
		return 0
	}
	return o.Overlap
}

func (o *Options) interpolator() draw.Interpolator {
	if o.Interpolator == nil {
		return draw.BiLinear
	}
	return o.Interpolator
}

func (o *Options) placeholder() color.Color {
	if o.Placeholder == nil {
		return Placeholder
	}
	return o.Placeholder
}

func (o *Options) supersample() int {
	return max(o.Supersample, 1)
}

// Slice describes where one strip of the source image is drawn.  All
// positions are in logical pixels.
type Slice struct {
	// X0 and X1 give the fractional range of source columns mapped onto
	// the slice, relative to the source origin.
	X0, X1 float64

	// Src is the smallest pixel rectangle of the source which contains
	// the columns X0 to X1.
	Src image.Rectangle

	// T1 and T2 are the edge parameters of the slice's left and right
	// boundaries.
	T1, T2 float64

	// Origin and End are the top edge points at T1 and T2.
	Origin, End vec.Vec2

	// Width is the distance from Origin to End, Height is the distance
	// from Origin to the bottom edge point at T1.
	Width, Height float64

	// Angle is the rotation of the slice, in radians.
	Angle float64
}

// Count returns the number of slices used for f and a source image of
// width srcW, at device pixel ratio dpr.
func Count(f *shape.Frame, srcW int, opts Options, dpr float64) int {
	if opts.Slices > 0 {
		return opts.Slices
	}
	if srcW < 1 {
		return 0
	}
	if isAffine(f.Top(), f.Bottom()) {
		return 1
	}
	if dpr <= 0 {
		dpr = 1
	}
	n := int(math.Ceil(f.Top().Length() * dpr))
	return max(1, min(n, srcW))
}

// isAffine reports whether the region between top and bottom is a
// parallelogram, so that the whole image can be placed by a single map.
func isAffine(top, bottom shape.Edge) bool {
	if !top.Straight() || !bottom.Straight() {
		return false
	}
	dt := top.At(1).Sub(top.At(0))
	db := bottom.At(1).Sub(bottom.At(0))
	return dt.Sub(db).Length() <= affineTolerance*max(dt.Length(), 1)
}

// Plan computes the slices for f and a source image of size srcW×srcH.
// Slice i maps the source columns i·srcW/N to (i+1)·srcW/N, even when
// this is less than one pixel.  Degenerate slices, with zero width or
// height on the outline, are left out.
func Plan(f *shape.Frame, srcW, srcH int, opts Options, dpr float64) []Slice {
	n := Count(f, srcW, opts, dpr)
	return plan(f.Top(), f.Bottom(), f.Tangent, srcW, srcH, n)
}

func plan(top, bottom shape.Edge, rule shape.TangentRule, srcW, srcH, n int) []Slice {
	if n < 1 || srcW < 1 || srcH < 1 {
		return nil
	}

	column := func(i int) float64 {
		return float64(i) * float64(srcW) / float64(n)
	}

	res := make([]Slice, 0, n)
	for i := range n {
		x0, x1 := column(i), column(i+1)
		c0 := int(math.Floor(x0))
		c1 := min(max(int(math.Ceil(x1)), c0+1), srcW)

		t1 := float64(i) / float64(n)
		t2 := float64(i+1) / float64(n)

		p1, p2 := top.At(t1), top.At(t2)
		b1, b2 := bottom.At(t1), bottom.At(t2)

		d := p2.Sub(p1)
		w := d.Length()
		h := b1.Sub(p1).Length()
		if !(w > 0) || !(h > 0) {
			continue
		}

		dir := d.Mul(1 / w)
		if rule == shape.AverageTangent {
			if db := b2.Sub(b1); db.Length() > 0 {
				dir = dir.Add(db.Mul(1 / db.Length()))
			}
		}

		res = append(res, Slice{
			X0:     x0,
			X1:     x1,
			Src:    image.Rect(c0, 0, c1, srcH),
			T1:     t1,
			T2:     t2,
			Origin: p1,
			End:    p2,
			Width:  w,
			Height: h,
			Angle:  math.Atan2(dir.Y, dir.X),
		})
	}
	return res
}

// affineTolerance is the relative difference between the top and bottom
// edge vectors below which the region counts as a parallelogram.
const affineTolerance = 1e-9

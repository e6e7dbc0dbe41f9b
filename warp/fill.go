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

package warp

import (
	"image"
	"math"

	"github.com/anthonynsimon/bild/clone"
	"github.com/anthonynsimon/bild/transform"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/dieline/shape"
)

// Fill paints the region of dst covered by mask, which must use the same
// device coordinates as dst.  If src is nil or empty, the region is
// filled with the placeholder colour.  Otherwise the slices of src planned for f are drawn
// at device pixel ratio dpr.
//
// Fill never modifies src.  The return value is the number of slices
// drawn.
func Fill(dst *image.RGBA, mask *image.Alpha, src image.Image, f *shape.Frame, opts Options, dpr float64) int {
	if src == nil || src.Bounds().Empty() {
		fill := image.NewUniform(opts.placeholder())
		draw.DrawMask(dst, mask.Bounds(), fill, image.Point{}, mask, mask.Bounds().Min, draw.Over)
		return 0
	}
	if dpr <= 0 {
		dpr = 1
	}

	rgba := clone.AsRGBA(src)
	sb := rgba.Bounds()
	slices := Plan(f, sb.Dx(), sb.Dy(), opts, dpr)
	if len(slices) == 0 {
		return 0
	}

	ss := opts.supersample()
	if ss == 1 {
		drawSlices(dst, rgba, slices, dpr, vec.Vec2{}, &opts, &draw.Options{
			DstMask:  mask,
			DstMaskP: image.Point{},
		})
		return len(slices)
	}

	db := dst.Bounds()
	off := image.NewRGBA(image.Rect(0, 0, db.Dx()*ss, db.Dy()*ss))
	shift := vec.Vec2{X: float64(db.Min.X * ss), Y: float64(db.Min.Y * ss)}
	drawSlices(off, rgba, slices, dpr*float64(ss), shift, &opts, nil)
	down := transform.Resize(off, db.Dx(), db.Dy(), transform.Linear)
	draw.DrawMask(dst, db, down, image.Point{}, mask, db.Min, draw.Over)
	return len(slices)
}

// drawSlices blits every slice of src onto dst.  Logical coordinates are
// multiplied by k and then shifted by -shift to give dst coordinates.
func drawSlices(dst draw.Image, src *image.RGBA, slices []Slice, k float64, shift vec.Vec2, opts *Options, dopts *draw.Options) {
	interp := opts.interpolator()
	eps := opts.overlap()
	sb := src.Bounds()
	srcH := float64(sb.Dy())

	for _, s := range slices {
		sr := s.Src.Add(sb.Min)
		x0 := float64(sb.Min.X) + s.X0
		y0 := float64(sb.Min.Y)
		sx := (s.Width + eps) * k / (s.X1 - s.X0)
		sy := s.Height * k / srcH
		sin, cos := math.Sincos(s.Angle)
		tx := s.Origin.X*k - shift.X
		ty := s.Origin.Y*k - shift.Y

		// rotate(Angle) · scale(sx, sy) · translate(-x0, -y0)
		a, b := cos*sx, -sin*sy
		d, e := sin*sx, cos*sy
		m := f64.Aff3{
			a, b, tx - a*x0 - b*y0,
			d, e, ty - d*x0 - e*y0,
		}
		interp.Transform(dst, m, src, sr, draw.Over, dopts)
	}
}

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

package raster

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"seehuhn.de/go/geom/path"
)

// clipRect returns the clip rectangle as an image rectangle.
func (r *Rasteriser) clipRect() image.Rectangle {
	return image.Rect(int(r.Clip.LLx), int(r.Clip.LLy), int(r.Clip.URx), int(r.Clip.URy))
}

// Mask returns the fill coverage of p as an alpha mask covering the clip
// rectangle.
func (r *Rasteriser) Mask(p *path.Data, rule Rule) *image.Alpha {
	m := image.NewAlpha(r.clipRect())
	r.Fill(p, rule, AlphaWriter(m))
	return m
}

// StrokeMask returns the stroke coverage of p as an alpha mask covering
// the clip rectangle.
func (r *Rasteriser) StrokeMask(p *path.Data) *image.Alpha {
	m := image.NewAlpha(r.clipRect())
	r.Stroke(p, AlphaWriter(m))
	return m
}

// AlphaWriter returns an EmitFunc which stores coverage in m.  Rows and
// columns outside m are ignored.
func AlphaWriter(m *image.Alpha) EmitFunc {
	b := m.Bounds()
	return func(y, xMin int, coverage []float32) {
		if y < b.Min.Y || y >= b.Max.Y {
			return
		}
		row := m.Pix[(y-b.Min.Y)*m.Stride:]
		for i, c := range coverage {
			x := xMin + i
			if x < b.Min.X || x >= b.Max.X {
				continue
			}
			row[x-b.Min.X] = uint8(c*255 + 0.5)
		}
	}
}

// Painter returns an EmitFunc which composites col over dst, weighted by
// coverage.
func Painter(dst *image.RGBA, col color.Color) EmitFunc {
	cr, cg, cb, ca := col.RGBA()
	b := dst.Bounds()
	return func(y, xMin int, coverage []float32) {
		if y < b.Min.Y || y >= b.Max.Y {
			return
		}
		for i, c := range coverage {
			x := xMin + i
			if x < b.Min.X || x >= b.Max.X {
				continue
			}
			// premultiplied source, scaled by coverage, 16 bit
			k := uint32(c*0xffff + 0.5)
			sa := ca * k / 0xffff
			inv := 0xffff - sa
			o := dst.PixOffset(x, y)
			px := dst.Pix[o : o+4 : o+4]
			px[0] = uint8((uint32(px[0])*0x101*inv/0xffff + cr*k/0xffff) >> 8)
			px[1] = uint8((uint32(px[1])*0x101*inv/0xffff + cg*k/0xffff) >> 8)
			px[2] = uint8((uint32(px[2])*0x101*inv/0xffff + cb*k/0xffff) >> 8)
			px[3] = uint8((uint32(px[3])*0x101*inv/0xffff + sa) >> 8)
		}
	}
}

// Paint composites col over dst through the alpha mask m.
func Paint(dst draw.Image, m *image.Alpha, col color.Color) {
	draw.DrawMask(dst, m.Bounds(), image.NewUniform(col), image.Point{}, m, m.Bounds().Min, draw.Over)
}

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
	"fmt"
	"image"
	"image/color"
	"testing"

	"golang.org/x/image/vector"

	"seehuhn.de/go/dieline/shape"
	"seehuhn.de/go/dieline/units"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
)

var benchSizes = []int{200, 800, 2000}

func tubOutline(b *testing.B, size int) *path.Data {
	f, err := shape.Compute(shape.CurvedTub{TopWidth: 313.14, BottomWidth: 244.65, Height: 75},
		units.Millimetre, shape.NewViewport(float64(size), float64(size)))
	if err != nil {
		b.Fatal(err)
	}
	return f.Outline()
}

// BenchmarkFillTub benchmarks our rasteriser filling a curved tub outline.
func BenchmarkFillTub(b *testing.B) {
	for _, size := range benchSizes {
		b.Run(fmt.Sprintf("%dx%d", size, size), func(b *testing.B) {
			clip := rect.Rect{URx: float64(size), URy: float64(size)}
			r := NewRasteriser(clip)
			dst := image.NewAlpha(image.Rect(0, 0, size, size))
			outline := tubOutline(b, size)
			emit := AlphaWriter(dst)

			b.ReportAllocs()
			for b.Loop() {
				r.Reset(clip)
				r.FillNonZero(outline, emit)
			}
		})
	}
}

// BenchmarkStrokeTub benchmarks stroking the same outline.
func BenchmarkStrokeTub(b *testing.B) {
	for _, size := range benchSizes {
		b.Run(fmt.Sprintf("%dx%d", size, size), func(b *testing.B) {
			clip := rect.Rect{URx: float64(size), URy: float64(size)}
			r := NewRasteriser(clip)
			dst := image.NewAlpha(image.Rect(0, 0, size, size))
			outline := tubOutline(b, size)
			emit := AlphaWriter(dst)

			b.ReportAllocs()
			for b.Loop() {
				r.Reset(clip)
				r.Width = 2
				r.Stroke(outline, emit)
			}
		})
	}
}

// BenchmarkVectorTub benchmarks x/image/vector filling the same outline.
func BenchmarkVectorTub(b *testing.B) {
	for _, size := range benchSizes {
		b.Run(fmt.Sprintf("%dx%d", size, size), func(b *testing.B) {
			z := vector.NewRasterizer(size, size)
			dst := image.NewAlpha(image.Rect(0, 0, size, size))
			src := image.NewUniform(color.Alpha{A: 255})
			outline := tubOutline(b, size)

			b.ReportAllocs()
			for b.Loop() {
				z.Reset(size, size)
				addToVector(z, outline)
				z.Draw(dst, dst.Bounds(), src, image.Point{})
			}
		})
	}
}

// addToVector replays p on a vector.Rasterizer.
func addToVector(z *vector.Rasterizer, p *path.Data) {
	k := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			c := p.Coords[k]
			z.MoveTo(float32(c.X), float32(c.Y))
			k++
		case path.CmdLineTo:
			c := p.Coords[k]
			z.LineTo(float32(c.X), float32(c.Y))
			k++
		case path.CmdQuadTo:
			c, q := p.Coords[k], p.Coords[k+1]
			z.QuadTo(float32(c.X), float32(c.Y), float32(q.X), float32(q.Y))
			k += 2
		case path.CmdCubeTo:
			c1, c2, q := p.Coords[k], p.Coords[k+1], p.Coords[k+2]
			z.CubeTo(float32(c1.X), float32(c1.Y), float32(c2.X), float32(c2.Y), float32(q.X), float32(q.Y))
			k += 3
		case path.CmdClose:
			z.ClosePath()
		}
	}
}

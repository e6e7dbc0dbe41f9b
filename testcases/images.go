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

package testcases

import (
	"image"
	"image/color"
)

// Checker returns a source of w×h images with a checkerboard of square
// cells.
func Checker(w, h, cell int) Source {
	return func() image.Image {
		img := image.NewRGBA(image.Rect(0, 0, w, h))
		for y := range h {
			for x := range w {
				c := color.RGBA{R: 0x20, G: 0x60, B: 0xc0, A: 0xff}
				if (x/cell+y/cell)%2 == 1 {
					c = color.RGBA{R: 0xf0, G: 0xd0, B: 0x30, A: 0xff}
				}
				img.SetRGBA(x, y, c)
			}
		}
		return img
	}
}

// Stripes returns a source of w×h images with vertical stripes of the
// given width, so that every slice boundary is easy to see.
func Stripes(w, h, width int) Source {
	return func() image.Image {
		img := image.NewRGBA(image.Rect(0, 0, w, h))
		for y := range h {
			for x := range w {
				c := color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
				if (x/width)%2 == 1 {
					c = color.RGBA{R: 0xc0, G: 0x10, B: 0x10, A: 0xff}
				}
				img.SetRGBA(x, y, c)
			}
		}
		return img
	}
}

// Gradient returns a source of w×h images with a horizontal red and a
// vertical green gradient.
func Gradient(w, h int) Source {
	return func() image.Image {
		img := image.NewRGBA(image.Rect(0, 0, w, h))
		for y := range h {
			for x := range w {
				img.SetRGBA(x, y, color.RGBA{
					R: uint8(255 * x / max(w-1, 1)),
					G: uint8(255 * y / max(h-1, 1)),
					B: 0x80,
					A: 0xff,
				})
			}
		}
		return img
	}
}

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

package annotate

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/dieline/raster"
	"seehuhn.de/go/dieline/shape"
	"seehuhn.de/go/dieline/units"
)

// Blue is the default colour of dimension lines and labels.
var Blue = color.RGBA{B: 0xff, A: 0xff}

// ExtensionDash is the default dash pattern of extension lines, in
// logical pixels.
var ExtensionDash = []float64{4, 3}

// An Annotator draws dimension lines with labels.  It caches font faces
// and rasteriser buffers between calls and must not be used concurrently.
type Annotator struct {
	// Color is used for lines and labels.  If nil, Blue is used.
	Color color.Color

	// Dash is the dash pattern of extension lines.  If nil,
	// ExtensionDash is used.  An empty, non-nil slice gives solid lines.
	Dash []float64

	font  *opentype.Font
	faces map[float64]font.Face
	r     *raster.Rasteriser
}

// NewAnnotator returns an Annotator using the Go Regular font.
func NewAnnotator() (*Annotator, error) {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("annotate: parse font: %w", err)
	}
	return &Annotator{
		font:  f,
		faces: make(map[float64]font.Face),
		r:     raster.NewRasteriser(rect.Rect{}),
	}, nil
}

// Annotate draws the dimensions of d, laid out by f in unit u, onto dst
// at device pixel ratio dpr.
func (a *Annotator) Annotate(dst *image.RGBA, f *shape.Frame, d shape.Descriptor, u units.Unit, dpr float64) error {
	dims, err := Dimensions(f, d, u)
	if err != nil {
		return err
	}
	return a.Draw(dst, dims, FontSize(f, u), LineWidth(f), dpr)
}

// Draw renders dims onto dst.  The font size and line width are given in
// logical pixels, and are multiplied by dpr together with all positions.
func (a *Annotator) Draw(dst *image.RGBA, dims []Dimension, fontSize, lineWidth, dpr float64) error {
	if len(dims) == 0 {
		return nil
	}
	if dpr <= 0 {
		dpr = 1
	}
	face, err := a.face(fontSize * dpr)
	if err != nil {
		return err
	}

	col := a.Color
	if col == nil {
		col = Blue
	}
	paint := raster.Painter(dst, col)

	b := dst.Bounds()
	r := a.r
	r.Reset(rect.Rect{
		LLx: float64(b.Min.X), LLy: float64(b.Min.Y),
		URx: float64(b.Max.X), URy: float64(b.Max.Y),
	})
	r.CTM = matrix.Scale(dpr, dpr)
	r.Width = lineWidth
	r.Cap = graphics.LineCapButt

	lines, heads, extensions := Paths(dims)
	r.Stroke(lines, paint)
	r.FillNonZero(heads, paint)
	r.Dash = a.Dash
	if r.Dash == nil {
		r.Dash = ExtensionDash
	}
	r.Stroke(extensions, paint)

	src := image.NewUniform(col)
	for i := range dims {
		drawLabel(dst, face, &dims[i], dpr, src)
	}
	return nil
}

// face returns the cached font face for the given device pixel size.
func (a *Annotator) face(size float64) (font.Face, error) {
	if f, ok := a.faces[size]; ok {
		return f, nil
	}
	f, err := opentype.NewFace(a.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("annotate: font face: %w", err)
	}
	a.faces[size] = f
	return f, nil
}

// drawLabel draws the label of d centred on its label position.
func drawLabel(dst *image.RGBA, face font.Face, d *Dimension, dpr float64, src image.Image) {
	if d.Label == "" {
		return
	}
	cx, cy := d.LabelAt.X*dpr, d.LabelAt.Y*dpr

	// pen position relative to the label centre
	m := face.Metrics()
	dot := fixed.Point26_6{
		X: -font.MeasureString(face, d.Label) / 2,
		Y: (m.Ascent - m.Descent) / 2,
	}

	if !d.Vertical {
		drawer := &font.Drawer{
			Dst:  dst,
			Src:  src,
			Face: face,
			Dot:  fixp(cx, cy).Add(dot),
		}
		drawer.DrawString(d.Label)
		return
	}

	// Vertical labels are drawn glyph by glyph, mapping the text-local
	// point (x, y) to (cx + y, cy - x).
	prev := rune(-1)
	for _, c := range d.Label {
		if prev >= 0 {
			dot.X += face.Kern(prev, c)
		}
		gr, mask, maskp, advance, ok := face.Glyph(dot, c)
		if !ok {
			continue
		}
		if !gr.Empty() {
			s2d := f64.Aff3{
				0, 1, cx + float64(gr.Min.Y),
				-1, 0, cy - float64(gr.Min.X),
			}
			draw.BiLinear.Transform(dst, s2d, src, gr.Sub(gr.Min), draw.Over, &draw.Options{
				SrcMask:  mask,
				SrcMaskP: maskp,
			})
		}
		dot.X += advance
		prev = c
	}
}

func fixp(x, y float64) fixed.Point26_6 {
	return fixed.Point26_6{X: fixed.Int26_6(x * 64), Y: fixed.Int26_6(y * 64)}
}

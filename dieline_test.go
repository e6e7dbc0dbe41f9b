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

package dieline

import (
	"bytes"
	"image"
	"image/color"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/draw"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/dieline/annotate"
	"seehuhn.de/go/dieline/raster"
	"seehuhn.de/go/dieline/shape"
	"seehuhn.de/go/dieline/units"
	"seehuhn.de/go/dieline/warp"
)

var (
	tub   = shape.CurvedTub{TopWidth: 313.14, BottomWidth: 244.65, Height: 75}
	box   = shape.PlainRect{Width: 200, Height: 160}
	lid   = shape.RoundedRect{Width: 150, Height: 100, CornerRadius: 8}
	panel = shape.BentPanel{Width: 467.83, Height: 34.13, BendHeight: 61.98}

	allShapes = []shape.Descriptor{tub, box, lid, panel}
)

func request(d shape.Descriptor) Request {
	return Request{
		Shape:    d,
		Unit:     units.Millimetre,
		Viewport: shape.NewViewport(800, 600),
	}
}

func solid(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

// TestPlaceholderRectangle renders a plain rectangle without image and
// checks the flat fill and the border.
func TestPlaceholderRectangle(t *testing.T) {
	res, err := Render(request(box))
	require.NoError(t, err)

	img := res.Image
	assert.Equal(t, image.Rect(0, 0, 800, 600), img.Bounds())

	c := res.Frame.Corners
	assert.InDelta(t, 100, c.TopLeft.X, 1e-9)
	assert.InDelta(t, 60, c.TopLeft.Y, 1e-9)
	assert.InDelta(t, 700, c.BottomRight.X, 1e-9)
	assert.InDelta(t, 540, c.BottomRight.Y, 1e-9)

	for _, p := range []image.Point{{400, 300}, {110, 70}, {690, 530}} {
		assert.Equal(t, warp.Placeholder, img.RGBAAt(p.X, p.Y), "interior %v", p)
	}

	// the stroke is centred on the edges
	for _, p := range []image.Point{{400, 60}, {400, 539}, {100, 300}, {699, 300}} {
		px := img.RGBAAt(p.X, p.Y)
		assert.Equal(t, uint8(255), px.A, "inner border %v", p)
		assert.Less(t, px.R, uint8(0xc0), "inner border %v", p)
	}
	for _, p := range []image.Point{{400, 59}, {400, 540}, {99, 300}, {700, 300}} {
		assert.NotZero(t, img.RGBAAt(p.X, p.Y).A, "outer border %v", p)
	}
	for _, p := range []image.Point{{400, 55}, {400, 545}, {95, 300}, {705, 300}, {5, 5}} {
		assert.Equal(t, color.RGBA{}, img.RGBAAt(p.X, p.Y), "outside %v", p)
	}
}

func TestFillOnly(t *testing.T) {
	rd := NewRenderer(nil)
	res, err := rd.Fill(request(box))
	require.NoError(t, err)

	assert.Equal(t, warp.Placeholder, res.Image.RGBAAt(400, 60))
	assert.Equal(t, color.RGBA{}, res.Image.RGBAAt(400, 59))
}

func TestIdempotent(t *testing.T) {
	src := solid(400, 120, color.RGBA{R: 200, G: 30, B: 60, A: 255})
	for _, d := range allShapes {
		req := request(d)
		req.Image = src
		req.Annotate = true

		rd := NewRenderer(nil)
		a, err := rd.Render(req)
		require.NoError(t, err)
		b, err := rd.Render(req)
		require.NoError(t, err)
		assert.Equal(t, a.Image.Pix, b.Image.Pix, "%v", d.Kind())

		c, err := Render(req)
		require.NoError(t, err)
		assert.Equal(t, a.Image.Pix, c.Image.Pix, "%v", d.Kind())
	}
}

// TestStrokeStraddlesClip checks that the border is drawn along the edge
// of the fill region: every boundary pixel of the fill mask is touched by
// the stroke, and the stroke touches nothing far from that boundary.
func TestStrokeStraddlesClip(t *testing.T) {
	rd := NewRenderer(nil)
	for _, d := range allShapes {
		t.Run(d.Kind().String(), func(t *testing.T) {
			req := request(d)
			full, err := rd.Render(req)
			require.NoError(t, err)
			fill, err := rd.Fill(req)
			require.NoError(t, err)

			size := req.DeviceSize()
			r := raster.NewRasteriser(rect.Rect{URx: float64(size.X), URy: float64(size.Y)})
			m := r.Mask(full.Frame.Outline(), raster.NonZero)
			alpha := func(x, y int) uint8 {
				if !(image.Point{x, y}.In(m.Rect)) {
					return 0
				}
				return m.AlphaAt(x, y).A
			}
			boundary := func(x, y int) bool {
				a := alpha(x, y)
				if a == 0 {
					return false
				}
				return a < 255 || alpha(x-1, y) == 0 || alpha(x+1, y) == 0 ||
					alpha(x, y-1) == 0 || alpha(x, y+1) == 0
			}
			stroked := func(x, y int) bool {
				return full.Image.RGBAAt(x, y) != fill.Image.RGBAAt(x, y)
			}

			const reach = 2
			nBoundary, nStroke := 0, 0
			for y := 0; y < size.Y; y++ {
				for x := 0; x < size.X; x++ {
					if boundary(x, y) {
						nBoundary++
						if !stroked(x, y) {
							t.Fatalf("boundary pixel (%d,%d) not stroked", x, y)
						}
					}
					if !stroked(x, y) {
						continue
					}
					nStroke++
					near := false
					for dy := -reach; dy <= reach && !near; dy++ {
						for dx := -reach; dx <= reach && !near; dx++ {
							near = boundary(x+dx, y+dy)
						}
					}
					if !near {
						t.Fatalf("stroked pixel (%d,%d) far from the fill boundary", x, y)
					}
				}
			}
			assert.Greater(t, nBoundary, 100)
			assert.GreaterOrEqual(t, nStroke, nBoundary)
		})
	}
}

func TestWarpedImage(t *testing.T) {
	red := color.RGBA{R: 255, A: 255}
	req := request(tub)
	req.Image = solid(1000, 300, red)

	res, err := Render(req)
	require.NoError(t, err)
	assert.Positive(t, res.Slices)

	f := res.Frame
	for i := 20; i <= 80; i += 5 {
		tt := float64(i) / 100
		p := f.Top().At(tt).Add(f.Bottom().At(tt)).Mul(0.5)
		px := res.Image.RGBAAt(int(p.X), int(p.Y))
		assert.GreaterOrEqual(t, px.R, uint8(250), "t=%g", tt)
		assert.LessOrEqual(t, px.G, uint8(5), "t=%g", tt)
	}
}

func TestDevicePixelRatio(t *testing.T) {
	req := request(box)
	req.DevicePixelRatio = 2
	res, err := Render(req)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 1600, 1200), res.Image.Bounds())
	assert.Equal(t, warp.Placeholder, res.Image.RGBAAt(800, 600))
	assert.Equal(t, color.RGBA{}, res.Image.RGBAAt(190, 110))

	// geometry stays in logical pixels
	assert.InDelta(t, 100, res.Frame.Corners.TopLeft.X, 1e-9)
}

func TestBackground(t *testing.T) {
	req := request(box)
	req.Background = color.White
	res, err := Render(req)
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, res.Image.RGBAAt(3, 3))
	assert.Equal(t, warp.Placeholder, res.Image.RGBAAt(400, 300))
}

func TestAnnotations(t *testing.T) {
	isBlue := func(c color.RGBA) bool {
		return c.B > 100 && c.R < 60 && c.G < 60
	}
	countBlue := func(img *image.RGBA) int {
		n := 0
		b := img.Bounds()
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				if isBlue(img.RGBAAt(x, y)) {
					n++
				}
			}
		}
		return n
	}

	for _, d := range allShapes {
		req := request(d)
		plain, err := Render(req)
		require.NoError(t, err)
		assert.Zero(t, countBlue(plain.Image), "%v", d.Kind())

		req.Annotate = true
		annotated, err := Render(req)
		require.NoError(t, err)
		assert.Greater(t, countBlue(annotated.Image), 100, "%v", d.Kind())

		// annotations never touch the fill
		c := plain.Frame.Corners
		mid := c.TopLeft.Add(c.BottomRight).Mul(0.5)
		x, y := int(mid.X), int(mid.Y)
		assert.Equal(t, plain.Image.RGBAAt(x, y), annotated.Image.RGBAAt(x, y))
	}
}

func TestAnnotationColour(t *testing.T) {
	req := request(box)
	req.Annotate = true
	res, err := Render(req)
	require.NoError(t, err)

	// The top dimension line lies on a pixel boundary, so the two rows
	// next to it are half covered.
	c := res.Frame.Corners
	y := int(c.TopLeft.Y - annotate.Offset + 0.5)
	for _, row := range []int{y - 1, y} {
		px := res.Image.RGBAAt(400, row)
		assert.Zero(t, px.R)
		assert.Zero(t, px.G)
		assert.Equal(t, px.A, px.B)
		assert.InDelta(t, 128, int(px.A), 2)
	}
}

func TestErrors(t *testing.T) {
	cases := []struct {
		name string
		req  Request
		want error
	}{
		{"zero width", request(shape.PlainRect{Width: 0, Height: 10}), shape.ErrInvalidDimensions},
		{"negative bend", request(shape.BentPanel{Width: 10, Height: 10, BendHeight: -1}), shape.ErrInvalidDimensions},
		{"no shape", request(nil), shape.ErrUnsupportedShape},
		{"unit", Request{Shape: box, Unit: "yard", Viewport: shape.NewViewport(800, 600)}, units.ErrInvalidUnit},
		{"viewport", Request{Shape: box, Unit: units.Millimetre, Viewport: shape.NewViewport(100, 100)}, shape.ErrInvalidDimensions},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			res, err := Render(c.req)
			assert.ErrorIs(t, err, c.want)
			assert.Nil(t, res)
		})
	}
}

func TestLogging(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	rd := NewRenderer(logger)
	_, err := rd.Render(request(tub))
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "msg=render")
	assert.Contains(t, out, `kind="curved tub"`)
	assert.Contains(t, out, "width=800")
	assert.Contains(t, out, "slices=0")
}

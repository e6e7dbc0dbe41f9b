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
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/dieline/shape"
	"seehuhn.de/go/dieline/units"
)

func frame(t *testing.T, d shape.Descriptor) *shape.Frame {
	t.Helper()
	f, err := shape.Compute(d, units.Millimetre, shape.NewViewport(800, 600))
	require.NoError(t, err)
	return f
}

func TestCurvedTubDimensions(t *testing.T) {
	d := shape.CurvedTub{TopWidth: 313.14, BottomWidth: 244.65, Height: 75}
	f := frame(t, d)
	c := f.Corners

	dims, err := Dimensions(f, d, units.Millimetre)
	require.NoError(t, err)
	require.Len(t, dims, 3)

	top := dims[0]
	assert.Equal(t, "313.14 mm", top.Label)
	assert.InDelta(t, c.TopLeft.Y-f.CurveOffsetTop/2-Offset, top.From.Y, 1e-9)
	assert.Equal(t, top.From.Y, top.To.Y)
	assert.Equal(t, c.TopLeft.X, top.From.X)
	assert.Equal(t, c.TopRight.X, top.To.X)
	assert.Less(t, top.LabelAt.Y, top.From.Y)
	assert.Equal(t, []Segment{
		{A: c.TopLeft, B: top.From},
		{A: c.TopRight, B: top.To},
	}, top.Extensions)

	bottom := dims[1]
	assert.Equal(t, "244.65 mm", bottom.Label)
	assert.Equal(t, c.BottomLeft.Y+Offset, bottom.From.Y)
	assert.Greater(t, bottom.LabelAt.Y, bottom.From.Y)

	height := dims[2]
	assert.Equal(t, "75.00 mm", height.Label)
	assert.True(t, height.Vertical)
	assert.Equal(t, max(c.TopRight.X, c.BottomRight.X)+Offset, height.From.X)
	assert.Equal(t, height.From.X, height.To.X)
	assert.Equal(t, c.TopRight.Y, height.From.Y)
	assert.Equal(t, c.BottomRight.Y, height.To.Y)
	assert.Greater(t, height.LabelAt.X, height.From.X)
}

func TestBoxDimensions(t *testing.T) {
	d := shape.PlainRect{Width: 200, Height: 160}
	f := frame(t, d)
	dims, err := Dimensions(f, &d, units.Centimetre)
	require.NoError(t, err)
	require.Len(t, dims, 2)
	assert.Equal(t, "200.00 cm", dims[0].Label)
	assert.Equal(t, "160.00 cm", dims[1].Label)
	assert.Equal(t, f.Corners.TopLeft.Y-Offset, dims[0].From.Y)
	assert.Equal(t, f.Corners.TopRight.X+Offset, dims[1].From.X)
}

func TestCornerRadius(t *testing.T) {
	d := shape.RoundedRect{Width: 150, Height: 100, CornerRadius: 8}
	f := frame(t, d)
	dims, err := Dimensions(f, d, units.Millimetre)
	require.NoError(t, err)
	require.Len(t, dims, 3)

	r := dims[2]
	assert.Equal(t, "R 8.00 mm", r.Label)
	assert.Equal(t, ArrowTo, r.Arrows)
	centre := f.Corners.TopLeft.Add(vec.Vec2{X: f.Radius, Y: f.Radius})
	assert.InDelta(t, f.Radius, r.To.Sub(centre).Length(), 1e-9)
	assert.Len(t, r.Heads(), 1)

	d.CornerRadius = 0
	dims, err = Dimensions(frame(t, d), d, units.Millimetre)
	require.NoError(t, err)
	assert.Len(t, dims, 2)
}

func TestBentPanelDimensions(t *testing.T) {
	d := shape.BentPanel{Width: 467.83, Height: 34.13, BendHeight: 61.98}
	f := frame(t, d)
	top, bottom := f.TopPoints, f.BottomPoints
	n := len(top)

	dims, err := Dimensions(f, d, units.Millimetre)
	require.NoError(t, err)
	require.Len(t, dims, 3)

	apex := top[n/2]
	assert.Equal(t, apex.Y-Offset, dims[0].From.Y)
	assert.Equal(t, "467.83 mm", dims[0].Label)

	height := dims[1]
	assert.Less(t, height.From.X, min(top[0].X, bottom[0].X))
	assert.Less(t, height.LabelAt.X, height.From.X)
	assert.Equal(t, top[0].Y, height.From.Y)
	assert.Equal(t, bottom[0].Y, height.To.Y)

	bend := dims[2]
	assert.Equal(t, "61.98 mm", bend.Label)
	assert.Equal(t, top[n-1].Y, bend.From.Y)
	assert.Equal(t, apex.Y, bend.To.Y)
	assert.InDelta(t, f.Bend*shape.BendFactor, bend.From.Y-bend.To.Y, 1e-9)

	d.BendHeight = 0
	dims, err = Dimensions(frame(t, d), d, units.Millimetre)
	require.NoError(t, err)
	assert.Len(t, dims, 2)
}

func TestDimensionErrors(t *testing.T) {
	d := shape.PlainRect{Width: 10, Height: 10}
	f := frame(t, d)

	_, err := Dimensions(f, d, units.Unit("furlong"))
	assert.ErrorIs(t, err, units.ErrInvalidUnit)

	_, err = Dimensions(f, nil, units.Millimetre)
	assert.ErrorIs(t, err, shape.ErrUnsupportedShape)
}

func TestHeads(t *testing.T) {
	d := Dimension{
		From:   vec.Vec2{X: 0, Y: 0},
		To:     vec.Vec2{X: 100, Y: 0},
		Arrows: ArrowBoth,
	}
	heads := d.Heads()
	require.Len(t, heads, 2)
	assert.Equal(t, d.To, heads[0][0])
	assert.Equal(t, d.From, heads[1][0])
	for _, h := range heads {
		for _, w := range h[1:] {
			assert.InDelta(t, ArrowSize, w.Sub(h[0]).Length(), 1e-9)
			assert.InDelta(t, ArrowSize*math.Sin(arrowAngle), math.Abs(w.Y), 1e-9)
		}
	}
	assert.Less(t, heads[0][1].X, 100.0)
	assert.Greater(t, heads[1][1].X, 0.0)
}

func TestPaths(t *testing.T) {
	d := shape.CurvedTub{TopWidth: 313.14, BottomWidth: 244.65, Height: 75}
	f := frame(t, d)
	dims, err := Dimensions(f, d, units.Millimetre)
	require.NoError(t, err)

	lines, heads, ext := Paths(dims)
	assert.Equal(t, 3, count(lines.Cmds, path.CmdMoveTo))
	assert.Equal(t, 6, count(heads.Cmds, path.CmdClose))
	assert.Equal(t, 6, count(ext.Cmds, path.CmdMoveTo))
}

func TestLabelOrientation(t *testing.T) {
	a, err := NewAnnotator()
	require.NoError(t, err)
	face, err := a.face(24)
	require.NoError(t, err)
	src := image.NewUniform(Blue)

	for _, vertical := range []bool{false, true} {
		dst := image.NewRGBA(image.Rect(0, 0, 300, 300))
		d := &Dimension{
			Label:    "313.14 mm",
			LabelAt:  vec.Vec2{X: 150, Y: 150},
			Vertical: vertical,
		}
		drawLabel(dst, face, d, 1, src)

		bbox := inked(dst)
		require.False(t, bbox.Empty())
		if vertical {
			assert.Greater(t, bbox.Dy(), 2*bbox.Dx())
		} else {
			assert.Greater(t, bbox.Dx(), 2*bbox.Dy())
		}
		mid := bbox.Min.Add(bbox.Max).Div(2)
		assert.InDelta(t, 150, mid.X, 4)
		assert.InDelta(t, 150, mid.Y, 4)
	}
}

func TestAnnotate(t *testing.T) {
	a, err := NewAnnotator()
	require.NoError(t, err)

	d := shape.CurvedTub{TopWidth: 313.14, BottomWidth: 244.65, Height: 75}
	f := frame(t, d)
	dst := image.NewRGBA(image.Rect(0, 0, 1600, 1200))
	require.NoError(t, a.Annotate(dst, f, d, units.Millimetre, 2))

	dims, _ := Dimensions(f, d, units.Millimetre)
	for _, dim := range dims {
		mid := dim.From.Add(dim.To).Mul(0.5 * 2)
		assert.Equal(t, Blue, dst.RGBAAt(int(mid.X), int(mid.Y)), dim.Label)
	}
	// the faces are cached per device size
	require.NoError(t, a.Annotate(dst, f, d, units.Millimetre, 2))
	assert.Len(t, a.faces, 1)

	// inside the shape nothing is drawn
	c := f.Corners
	centre := c.TopLeft.Add(c.BottomRight).Mul(0.5 * 2)
	assert.Equal(t, color.RGBA{}, dst.RGBAAt(int(centre.X), int(centre.Y)))
}

func count[T comparable](cmds []T, cmd T) int {
	n := 0
	for _, c := range cmds {
		if c == cmd {
			n++
		}
	}
	return n
}

func inked(img *image.RGBA) image.Rectangle {
	var r image.Rectangle
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.RGBAAt(x, y).A > 0 {
				r = r.Union(image.Rect(x, y, x+1, y+1))
			}
		}
	}
	return r
}

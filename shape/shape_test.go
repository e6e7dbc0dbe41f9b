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

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/dieline/units"
)

func TestCurvedTubScenario(t *testing.T) {
	d := CurvedTub{TopWidth: 313.14, BottomWidth: 244.65, Height: 75}
	f, err := Compute(d, units.Millimetre, NewViewport(800, 600))
	require.NoError(t, err)

	want := min(680/(313.14*3.78), 480/(75*3.78), 1)
	assert.Equal(t, math.Round(want*1e4)/1e4, math.Round(f.Scale*1e4)/1e4)

	scaledHeight := 75 * 3.78 * f.Scale
	assert.InDelta(t, f.Corners.BottomLeft.Y-scaledHeight, f.Corners.TopLeft.Y, 1e-9)
	assert.InDelta(t, f.Corners.TopLeft.Y, f.Corners.TopRight.Y, 1e-12)

	// top is wider than bottom: both edges bow upwards
	assert.Greater(t, f.CurveOffsetTop, 0.0)
	assert.Less(t, f.CurveOffsetBottom, 0.0)
	assert.Less(t, f.LeanAngle, 0.0)
}

func TestCylinderHasNoLean(t *testing.T) {
	d := CurvedTub{TopWidth: 200, BottomWidth: 200, Height: 80}
	f, err := Compute(d, units.Millimetre, NewViewport(800, 600))
	require.NoError(t, err)

	assert.Zero(t, f.CurveOffsetTop)
	assert.Zero(t, f.CurveOffsetBottom)
	assert.True(t, f.Top().Straight())
	assert.True(t, f.Bottom().Straight())
}

func TestScaleFits(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	dim := func() float64 { return 1 + rng.Float64()*1000 }

	for i := range 500 {
		var d Descriptor
		switch i % 4 {
		case 0:
			d = CurvedTub{TopWidth: dim(), BottomWidth: dim(), Height: dim()}
		case 1:
			d = RoundedRect{Width: dim(), Height: dim(), CornerRadius: dim() / 10}
		case 2:
			d = PlainRect{Width: dim(), Height: dim()}
		case 3:
			d = BentPanel{Width: dim(), Height: dim(), BendHeight: dim() / 5}
		}
		vp := NewViewport(200+rng.Float64()*1800, 200+rng.Float64()*1800)

		f, err := Compute(d, units.Millimetre, vp)
		require.NoError(t, err)

		assert.Greater(t, f.Scale, 0.0)
		assert.LessOrEqual(t, f.Scale, 1.0)

		const eps = 1e-9
		w := f.Bounds.URx - f.Bounds.LLx
		h := f.Bounds.URy - f.Bounds.LLy
		assert.LessOrEqual(t, w, vp.Width-2*vp.Margin+eps, "%v", d)
		assert.LessOrEqual(t, h, vp.Height-2*vp.Margin+eps, "%v", d)
	}
}

func TestBentPanelWithoutBendIsRectangle(t *testing.T) {
	vp := NewViewport(900, 500)
	bent, err := Compute(BentPanel{Width: 467.83, Height: 34.13}, units.Millimetre, vp)
	require.NoError(t, err)
	plain, err := Compute(PlainRect{Width: 467.83, Height: 34.13}, units.Millimetre, vp)
	require.NoError(t, err)

	assert.Equal(t, plain.Scale, bent.Scale)
	assert.Equal(t, plain.Corners, bent.Corners)
	assert.Equal(t, plain.Bounds, bent.Bounds)
	assert.Equal(t, plain.Outline(), bent.Outline())
	assert.True(t, bent.Top().Straight())
	assert.True(t, bent.Bottom().Straight())
}

func TestBentPanelProfile(t *testing.T) {
	d := BentPanel{Width: 467.83, Height: 34.13, BendHeight: 61.98}
	f, err := Compute(d, units.Millimetre, NewViewport(1200, 600))
	require.NoError(t, err)
	require.Len(t, f.TopPoints, BendPoints)
	require.Len(t, f.BottomPoints, BendPoints)

	top := f.TopPoints
	rise := f.Bend * BendFactor
	assert.Equal(t, top[0].Y, top[BendPoints-1].Y)
	assert.InDelta(t, top[0].Y-rise, top[BendPoints/2].Y, 1e-9)

	// side edges are perpendicular to the end segments of the top edge
	bot := f.BottomPoints
	left := bot[0].Sub(top[0])
	assert.InDelta(t, 0, left.Dot(top[1].Sub(top[0])), 1e-6)
	right := bot[BendPoints-1].Sub(top[BendPoints-1])
	assert.InDelta(t, 0, right.Dot(top[BendPoints-1].Sub(top[BendPoints-2])), 1e-6)

	// inner bottom points sit straight below the top points
	sh := 34.13 * 3.78 * f.Scale
	for i := 1; i < BendPoints-1; i++ {
		assert.Equal(t, top[i].X, bot[i].X)
		assert.InDelta(t, top[i].Y+sh, bot[i].Y, 1e-9)
	}
}

func TestRadiusClamp(t *testing.T) {
	d := RoundedRect{Width: 150, Height: 100, CornerRadius: 500}
	f, err := Compute(d, units.Millimetre, NewViewport(800, 600))
	require.NoError(t, err)

	sh := f.Bounds.URy - f.Bounds.LLy
	assert.InDelta(t, sh/2, f.Radius, 1e-9)

	d.CornerRadius = 8
	f, err = Compute(d, units.Millimetre, NewViewport(800, 600))
	require.NoError(t, err)
	assert.InDelta(t, 8*3.78*f.Scale, f.Radius, 1e-9)
}

func TestBendClamp(t *testing.T) {
	d := BentPanel{Width: 100, Height: 30, BendHeight: 200}
	f, err := Compute(d, units.Millimetre, NewViewport(800, 600))
	require.NoError(t, err)

	sw := f.Bounds.URx - f.Bounds.LLx
	assert.InDelta(t, sw/2, f.Bend, 1e-9)

	// The sweet box panels bend by more than half their height; only the
	// width limits the bend.
	d = BentPanel{Width: 467.83, Height: 34.13, BendHeight: 61.98}
	f, err = Compute(d, units.Millimetre, NewViewport(800, 600))
	require.NoError(t, err)
	sh := f.Corners.BottomLeft.Y - f.Corners.TopLeft.Y
	assert.InDelta(t, 61.98*3.78*f.Scale, f.Bend, 1e-9)
	assert.Greater(t, f.Bend, sh/2)
}

func TestEdgesMatchCorners(t *testing.T) {
	descs := []Descriptor{
		CurvedTub{TopWidth: 313.14, BottomWidth: 244.65, Height: 75},
		RoundedRect{Width: 162.5, Height: 108.6, CornerRadius: 8},
		PlainRect{Width: 200, Height: 160},
		BentPanel{Width: 630.19, Height: 34.12, BendHeight: 71.61},
	}
	for _, d := range descs {
		t.Run(d.Kind().String(), func(t *testing.T) {
			f, err := Compute(d, units.Millimetre, NewViewport(1000, 700))
			require.NoError(t, err)
			c := f.Corners
			assertVec(t, c.TopLeft, f.Top().At(0))
			assertVec(t, c.TopRight, f.Top().At(1))
			assertVec(t, c.BottomLeft, f.Bottom().At(0))
			assertVec(t, c.BottomRight, f.Bottom().At(1))
		})
	}
}

func TestInvalidDimensions(t *testing.T) {
	bad := []Descriptor{
		CurvedTub{TopWidth: 0, BottomWidth: 10, Height: 10},
		CurvedTub{TopWidth: 10, BottomWidth: math.NaN(), Height: 10},
		RoundedRect{Width: 10, Height: 10, CornerRadius: -1},
		RoundedRect{Width: 10, Height: math.Inf(1)},
		PlainRect{Width: -5, Height: 10},
		BentPanel{Width: 10, Height: 10, BendHeight: math.NaN()},
	}
	for _, d := range bad {
		_, err := Compute(d, units.Millimetre, NewViewport(800, 600))
		assert.ErrorIs(t, err, ErrInvalidDimensions, "%#v", d)

		var de *DimensionError
		assert.True(t, errors.As(err, &de))
	}

	_, err := Compute(PlainRect{Width: 10, Height: 10}, units.Millimetre, NewViewport(100, 100))
	assert.ErrorIs(t, err, ErrInvalidDimensions, "viewport smaller than margins")
}

type hexagon struct{}

func (hexagon) Kind() Kind      { return Kind(99) }
func (hexagon) Validate() error { return nil }

func TestUnsupportedShape(t *testing.T) {
	_, err := Compute(nil, units.Millimetre, NewViewport(800, 600))
	assert.ErrorIs(t, err, ErrUnsupportedShape)

	_, err = Compute(hexagon{}, units.Millimetre, NewViewport(800, 600))
	assert.ErrorIs(t, err, ErrUnsupportedShape)

	var nilRect *PlainRect
	_, err = Compute(nilRect, units.Millimetre, NewViewport(800, 600))
	assert.ErrorIs(t, err, ErrUnsupportedShape)
}

func TestInvalidUnit(t *testing.T) {
	_, err := Compute(PlainRect{Width: 10, Height: 10}, units.Unit("cubit"), NewViewport(800, 600))
	assert.ErrorIs(t, err, units.ErrInvalidUnit)
}

func TestPointerDescriptor(t *testing.T) {
	byValue, err := Compute(PlainRect{Width: 200, Height: 160}, units.Millimetre, NewViewport(800, 600))
	require.NoError(t, err)
	byPointer, err := Compute(&PlainRect{Width: 200, Height: 160}, units.Millimetre, NewViewport(800, 600))
	require.NoError(t, err)
	assert.Equal(t, byValue.Corners, byPointer.Corners)
}

func TestViewportBias(t *testing.T) {
	d := CurvedTub{TopWidth: 100, BottomWidth: 80, Height: 40}
	vp := NewViewport(800, 600)
	def, err := Compute(d, units.Millimetre, vp)
	require.NoError(t, err)

	vp.Bias = map[Kind]float64{KindCurvedTub: 0}
	centred, err := Compute(d, units.Millimetre, vp)
	require.NoError(t, err)

	assert.InDelta(t, DefaultBias(KindCurvedTub), def.Corners.TopLeft.Y-centred.Corners.TopLeft.Y, 1e-9)
}

func TestPolyline(t *testing.T) {
	p := Polyline{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}}
	assertVec(t, vec.Vec2{X: 5, Y: 0}, p.At(0.25))
	assertVec(t, vec.Vec2{X: 10, Y: 0}, p.At(0.5))
	assertVec(t, vec.Vec2{X: 10, Y: 5}, p.At(0.75))
	assertVec(t, vec.Vec2{X: 10, Y: 10}, p.At(1))
	assert.InDelta(t, 20, p.Length(), 1e-12)
	assert.False(t, p.Straight())
}

func TestQuad(t *testing.T) {
	q := Quad{P0: vec.Vec2{X: 0, Y: 0}, P1: vec.Vec2{X: 50, Y: -20}, P2: vec.Vec2{X: 100, Y: 0}}
	for _, tt := range []float64{0, 0.1, 0.5, 0.8, 1} {
		p := q.At(tt)
		assert.InDelta(t, QuadAt(0, 50, 100, tt), p.X, 1e-9)
		assert.InDelta(t, QuadAt(0, -20, 0, tt), p.Y, 1e-9)
	}
	assert.Greater(t, q.Length(), 100.0)
	assert.False(t, q.Straight())
}

func assertVec(t *testing.T, want, got vec.Vec2) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-9)
	assert.InDelta(t, want.Y, got.Y, 1e-9)
}

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
	"fmt"
	"math"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/dieline/units"
)

// Corners holds the four outer corner points of a shape.
type Corners struct {
	TopLeft, TopRight, BottomLeft, BottomRight vec.Vec2
}

// TangentRule selects how the warp derives the rotation of a slice.
type TangentRule int

const (
	// AverageTangent averages the top and bottom edge directions.
	AverageTangent TangentRule = iota

	// TopTangent follows the top edge direction only.
	TopTangent
)

// Frame is the geometry of one shape placed in one viewport.
//
// A Frame is derived fresh for every render and must not be modified.
type Frame struct {
	Kind     Kind
	Viewport Viewport

	// Scale is the uniform scale-to-fit factor, in (0, 1].
	Scale float64

	// Bounds is the scaled bounding box used for fitting and centering.
	Bounds rect.Rect

	Corners Corners

	// LeanAngle is the wall angle of a curved tub, in radians.
	LeanAngle float64

	// CurveOffsetTop and CurveOffsetBottom are the vertical control point
	// offsets of the curved tub edges, in logical pixels.
	CurveOffsetTop, CurveOffsetBottom float64

	// Radius is the clamped corner radius of a rounded rectangle.
	Radius float64

	// Bend is the clamped, scaled bend height of a bent panel.  The top
	// edge rises by Bend·BendFactor at its centre.
	Bend float64

	// TopPoints and BottomPoints are the control points of a bent panel.
	TopPoints, BottomPoints []vec.Vec2

	// Tangent selects the slice rotation rule for the image warp.
	Tangent TangentRule

	top, bottom Edge
	outline     *path.Data
}

// Top returns the parametric top edge, running left to right.
func (f *Frame) Top() Edge { return f.top }

// Bottom returns the parametric bottom edge, running left to right.
func (f *Frame) Bottom() Edge { return f.bottom }

// Outline returns the closed outline path.  The same path serves as clip
// region and as stroke geometry.  Callers must not modify it.
func (f *Frame) Outline() *path.Data { return f.outline }

// StrokeWidth returns the outline stroke width in logical pixels.
func (f *Frame) StrokeWidth() float64 {
	return max(1, 1.2*f.Scale)
}

// Compute derives the frame of d, given in unit u, inside vp.
func Compute(d Descriptor, u units.Unit, vp Viewport) (*Frame, error) {
	d = Canonical(d)
	if d == nil {
		return nil, fmt.Errorf("%w: nil descriptor", ErrUnsupportedShape)
	}
	layout, ok := layouts[d.Kind()]
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedShape, d.Kind())
	}
	k, err := u.Scalar()
	if err != nil {
		return nil, err
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return layout(d, k, vp)
}

// Canonical replaces pointers to the descriptor types of this package by
// their values.  Nil pointers map to a nil Descriptor.
func Canonical(d Descriptor) Descriptor {
	switch v := d.(type) {
	case *CurvedTub:
		if v != nil {
			return *v
		}
	case *RoundedRect:
		if v != nil {
			return *v
		}
	case *PlainRect:
		if v != nil {
			return *v
		}
	case *BentPanel:
		if v != nil {
			return *v
		}
	default:
		return d
	}
	return nil
}

type layoutFunc func(d Descriptor, k float64, vp Viewport) (*Frame, error)

var layouts = map[Kind]layoutFunc{
	KindCurvedTub:   layoutCurvedTub,
	KindRoundedRect: layoutRoundedRect,
	KindPlainRect:   layoutPlainRect,
	KindBentPanel:   layoutBentPanel,
}

func layoutCurvedTub(d Descriptor, k float64, vp Viewport) (*Frame, error) {
	tub, ok := d.(CurvedTub)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedShape, d)
	}

	wPx := tub.TopWidth * k
	bPx := tub.BottomWidth * k
	hPx := tub.Height * k
	maxPx := max(wPx, bPx)

	scale, err := vp.fitScale(maxPx, hPx)
	if err != nil {
		return nil, err
	}
	sw := wPx * scale
	sb := bPx * scale
	sh := hPx * scale
	sMax := maxPx * scale

	x0 := (vp.Width - sMax) / 2
	y0 := (vp.Height-sh)/2 + vp.bias(KindCurvedTub)
	c := Corners{
		TopLeft:     vec.Vec2{X: x0 + (sMax-sw)/2, Y: y0},
		TopRight:    vec.Vec2{X: x0 + (sMax+sw)/2, Y: y0},
		BottomLeft:  vec.Vec2{X: x0 + (sMax-sb)/2, Y: y0 + sh},
		BottomRight: vec.Vec2{X: x0 + (sMax+sb)/2, Y: y0 + sh},
	}

	lean := math.Atan((bPx/2 - wPx/2) / hPx)
	offTop := -math.Tan(lean) * (wPx / 2) * scale
	offBottom := math.Tan(lean) * (bPx / 2) * scale

	midX := x0 + sMax/2
	top := Quad{P0: c.TopLeft, P1: vec.Vec2{X: midX, Y: c.TopLeft.Y - offTop}, P2: c.TopRight}
	bottom := Quad{P0: c.BottomLeft, P1: vec.Vec2{X: midX, Y: c.BottomRight.Y + offBottom}, P2: c.BottomRight}

	outline := (&path.Data{}).
		MoveTo(top.P0).
		QuadTo(top.P1, top.P2).
		LineTo(bottom.P2).
		QuadTo(bottom.P1, bottom.P0).
		Close()

	return &Frame{
		Kind:              KindCurvedTub,
		Viewport:          vp,
		Scale:             scale,
		Bounds:            rect.Rect{LLx: x0, LLy: y0, URx: x0 + sMax, URy: y0 + sh},
		Corners:           c,
		LeanAngle:         lean,
		CurveOffsetTop:    offTop,
		CurveOffsetBottom: offBottom,
		Tangent:           AverageTangent,
		top:               top,
		bottom:            bottom,
		outline:           outline,
	}, nil
}

func layoutRoundedRect(d Descriptor, k float64, vp Viewport) (*Frame, error) {
	rr, ok := d.(RoundedRect)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedShape, d)
	}
	f, err := layoutBox(KindRoundedRect, rr.Width*k, rr.Height*k, vp)
	if err != nil {
		return nil, err
	}
	sw := f.Bounds.URx - f.Bounds.LLx
	sh := f.Bounds.URy - f.Bounds.LLy
	f.Radius = min(rr.CornerRadius*k*f.Scale, min(sw, sh)/2)
	if f.Radius > 0 {
		f.outline = roundedOutline(f.Corners, f.Radius)
	}
	return f, nil
}

func layoutPlainRect(d Descriptor, k float64, vp Viewport) (*Frame, error) {
	pr, ok := d.(PlainRect)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedShape, d)
	}
	return layoutBox(KindPlainRect, pr.Width*k, pr.Height*k, vp)
}

// layoutBox centres an axis-aligned box of wPx×hPx logical pixels.
func layoutBox(kind Kind, wPx, hPx float64, vp Viewport) (*Frame, error) {
	scale, err := vp.fitScale(wPx, hPx)
	if err != nil {
		return nil, err
	}
	sw := wPx * scale
	sh := hPx * scale
	x0 := (vp.Width - sw) / 2
	y0 := (vp.Height-sh)/2 + vp.bias(kind)

	c := Corners{
		TopLeft:     vec.Vec2{X: x0, Y: y0},
		TopRight:    vec.Vec2{X: x0 + sw, Y: y0},
		BottomLeft:  vec.Vec2{X: x0, Y: y0 + sh},
		BottomRight: vec.Vec2{X: x0 + sw, Y: y0 + sh},
	}
	return &Frame{
		Kind:     kind,
		Viewport: vp,
		Scale:    scale,
		Bounds:   rect.Rect{LLx: x0, LLy: y0, URx: x0 + sw, URy: y0 + sh},
		Corners:  c,
		Tangent:  AverageTangent,
		top:      Line{A: c.TopLeft, B: c.TopRight},
		bottom:   Line{A: c.BottomLeft, B: c.BottomRight},
		outline:  boxOutline(c),
	}, nil
}

func layoutBentPanel(d Descriptor, k float64, vp Viewport) (*Frame, error) {
	bp, ok := d.(BentPanel)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedShape, d)
	}

	wPx := bp.Width * k
	hPx := bp.Height * k
	bendPx := bp.BendHeight * k

	scale, err := vp.fitScale(wPx, hPx+bendPx*BendFactor)
	if err != nil {
		return nil, err
	}
	sw := wPx * scale
	sh := hPx * scale
	sBend := min(bendPx*scale, sw/2)
	rise := sBend * BendFactor

	x0 := (vp.Width - sw) / 2
	yTop := (vp.Height-(sh+rise))/2 + vp.bias(KindBentPanel)
	yBase := yTop + rise

	n := BendPoints
	top := make(Polyline, n)
	bottom := make(Polyline, n)
	for i := range n {
		u := float64(i) / float64(n-1)
		top[i] = vec.Vec2{
			X: x0 + sw*u,
			Y: yBase - rise*math.Sin(math.Pi*u),
		}
	}
	// The end points keep the exact baseline, sin(π) is not exactly zero.
	top[n-1].Y = yBase

	angleL := math.Atan2(top[1].Y-top[0].Y, top[1].X-top[0].X)
	angleR := math.Atan2(top[n-1].Y-top[n-2].Y, top[n-1].X-top[n-2].X)
	for i := range n {
		bottom[i] = vec.Vec2{X: top[i].X, Y: top[i].Y + sh}
	}
	bottom[0].X -= math.Tan(angleL) * sh
	bottom[n-1].X -= math.Tan(angleR) * sh

	c := Corners{
		TopLeft:     top[0],
		TopRight:    top[n-1],
		BottomLeft:  bottom[0],
		BottomRight: bottom[n-1],
	}

	var outline *path.Data
	if rise == 0 {
		outline = boxOutline(c)
	} else {
		outline = (&path.Data{}).MoveTo(top[0])
		for _, p := range top[1:] {
			outline = outline.LineTo(p)
		}
		for i := n - 1; i >= 0; i-- {
			outline = outline.LineTo(bottom[i])
		}
		outline = outline.Close()
	}

	return &Frame{
		Kind:         KindBentPanel,
		Viewport:     vp,
		Scale:        scale,
		Bounds:       rect.Rect{LLx: x0, LLy: yTop, URx: x0 + sw, URy: yBase + sh},
		Corners:      c,
		Bend:         sBend,
		TopPoints:    top,
		BottomPoints: bottom,
		Tangent:      TopTangent,
		top:          top,
		bottom:       bottom,
		outline:      outline,
	}, nil
}

func boxOutline(c Corners) *path.Data {
	return (&path.Data{}).
		MoveTo(c.TopLeft).
		LineTo(c.TopRight).
		LineTo(c.BottomRight).
		LineTo(c.BottomLeft).
		Close()
}

// roundedOutline approximates each corner arc by a quadratic curve with
// the corner point as control point.
func roundedOutline(c Corners, r float64) *path.Data {
	x0, y0 := c.TopLeft.X, c.TopLeft.Y
	x1, y1 := c.BottomRight.X, c.BottomRight.Y
	return (&path.Data{}).
		MoveTo(vec.Vec2{X: x0 + r, Y: y0}).
		LineTo(vec.Vec2{X: x1 - r, Y: y0}).
		QuadTo(c.TopRight, vec.Vec2{X: x1, Y: y0 + r}).
		LineTo(vec.Vec2{X: x1, Y: y1 - r}).
		QuadTo(c.BottomRight, vec.Vec2{X: x1 - r, Y: y1}).
		LineTo(vec.Vec2{X: x0 + r, Y: y1}).
		QuadTo(c.BottomLeft, vec.Vec2{X: x0, Y: y1 - r}).
		LineTo(vec.Vec2{X: x0, Y: y0 + r}).
		QuadTo(c.TopLeft, vec.Vec2{X: x0 + r, Y: y0}).
		Close()
}

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

// Package annotate places and draws the dimension lines of a shape.
//
// Dimensions computes the geometry of all measurements in logical pixels
// without drawing anything, so that raster and vector outputs can share
// it.  An Annotator renders the dimensions, including their labels, onto
// a raster surface.
package annotate

import (
	"fmt"
	"math"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/dieline/shape"
	"seehuhn.de/go/dieline/units"
)

const (
	// Offset is the distance between a measured edge and its dimension
	// line, in logical pixels.
	Offset = 30

	// ArrowSize is the length of an arrow head.
	ArrowSize = 8

	// arrowAngle is the half opening angle of an arrow head.
	arrowAngle = math.Pi / 6

	// radiusLeader is the length of the corner radius leader line.
	radiusLeader = 20
)

// Ends selects the arrow heads of a dimension line.
type Ends uint8

// These are the possible arrow heads.
const (
	ArrowFrom Ends = 1 << iota
	ArrowTo
	ArrowBoth = ArrowFrom | ArrowTo
)

// Segment is a straight line segment.
type Segment struct {
	A, B vec.Vec2
}

// Dimension is one measurement.
type Dimension struct {
	// From and To are the end points of the dimension line.
	From, To vec.Vec2

	Arrows Ends

	// Label is the text shown for the measurement, centred at LabelAt.
	Label   string
	LabelAt vec.Vec2

	// Vertical labels are rotated by -90°, reading bottom to top.
	Vertical bool

	// Extensions connect the measured points to the dimension line.
	Extensions []Segment
}

// Heads returns the arrow head triangles of d.  The first vertex of every
// triangle is the tip.
func (d *Dimension) Heads() [][3]vec.Vec2 {
	var res [][3]vec.Vec2
	if d.Arrows&ArrowTo != 0 {
		res = append(res, head(d.From, d.To))
	}
	if d.Arrows&ArrowFrom != 0 {
		res = append(res, head(d.To, d.From))
	}
	return res
}

// head returns the arrow head at tip, for a line arriving from from.
func head(from, tip vec.Vec2) [3]vec.Vec2 {
	dir := tip.Sub(from)
	phi := math.Atan2(dir.Y, dir.X)
	wing := func(a float64) vec.Vec2 {
		return vec.Vec2{
			X: tip.X - ArrowSize*math.Cos(a),
			Y: tip.Y - ArrowSize*math.Sin(a),
		}
	}
	return [3]vec.Vec2{tip, wing(phi - arrowAngle), wing(phi + arrowAngle)}
}

// FontSize returns the label font size, in logical pixels, for a frame
// measured in unit u.
func FontSize(f *shape.Frame, u units.Unit) float64 {
	return max(12, 20*f.Scale*u.FontScale())
}

// LineWidth returns the width of dimension and extension lines.
func LineWidth(f *shape.Frame) float64 {
	return max(1, f.Scale)
}

// Dimensions returns the measurements of the shape d, placed around f
// and labelled in unit u.  The frame f must have been computed from d.
func Dimensions(f *shape.Frame, d shape.Descriptor, u units.Unit) ([]Dimension, error) {
	if !u.Valid() {
		return nil, fmt.Errorf("%w: %q", units.ErrInvalidUnit, string(u))
	}
	l := &layout{f: f, u: u, size: FontSize(f, u)}

	switch d := shape.Canonical(d).(type) {
	case shape.CurvedTub:
		l.curvedTub(d)
	case shape.RoundedRect:
		l.box(d.Width, d.Height)
		l.radius(d.CornerRadius)
	case shape.PlainRect:
		l.box(d.Width, d.Height)
	case shape.BentPanel:
		l.bentPanel(d)
	default:
		return nil, fmt.Errorf("%w: %T", shape.ErrUnsupportedShape, d)
	}
	return l.dims, nil
}

type layout struct {
	f    *shape.Frame
	u    units.Unit
	size float64
	dims []Dimension
}

// above returns the label position above a horizontal line at height y.
func (l *layout) above(x, y float64) vec.Vec2 {
	return vec.Vec2{X: x, Y: y - 0.6*l.size}
}

// below returns the label position below a horizontal line at height y.
func (l *layout) below(x, y float64) vec.Vec2 {
	return vec.Vec2{X: x, Y: y + 0.8*l.size}
}

// beside returns the position of a vertical label next to a vertical
// line at x.  The label is placed on the right if side > 0.
func (l *layout) beside(x, y, side float64) vec.Vec2 {
	return vec.Vec2{X: x + side*0.6*l.size, Y: y}
}

// horizontal adds a width measurement between the points a and b, with
// the dimension line at height y.
func (l *layout) horizontal(a, b vec.Vec2, y float64, value float64, labelAbove bool) {
	from := vec.Vec2{X: a.X, Y: y}
	to := vec.Vec2{X: b.X, Y: y}
	pos := l.below((a.X+b.X)/2, y)
	if labelAbove {
		pos = l.above((a.X+b.X)/2, y)
	}
	l.dims = append(l.dims, Dimension{
		From:    from,
		To:      to,
		Arrows:  ArrowBoth,
		Label:   units.Format(value, l.u),
		LabelAt: pos,
		Extensions: []Segment{
			{A: a, B: from},
			{A: b, B: to},
		},
	})
}

// vertical adds a height measurement between the points a and b, with
// the dimension line at x.
func (l *layout) vertical(a, b vec.Vec2, x float64, value float64, side float64) {
	from := vec.Vec2{X: x, Y: a.Y}
	to := vec.Vec2{X: x, Y: b.Y}
	l.dims = append(l.dims, Dimension{
		From:     from,
		To:       to,
		Arrows:   ArrowBoth,
		Label:    units.Format(value, l.u),
		LabelAt:  l.beside(x, (a.Y+b.Y)/2, side),
		Vertical: true,
		Extensions: []Segment{
			{A: a, B: from},
			{A: b, B: to},
		},
	})
}

func (l *layout) curvedTub(d shape.CurvedTub) {
	c := l.f.Corners

	// the top line clears the apex of the curved top edge
	topY := c.TopLeft.Y - l.f.CurveOffsetTop/2 - Offset
	l.horizontal(c.TopLeft, c.TopRight, topY, d.TopWidth, true)

	bottomY := c.BottomLeft.Y + Offset
	l.horizontal(c.BottomLeft, c.BottomRight, bottomY, d.BottomWidth, false)

	x := max(c.TopRight.X, c.BottomRight.X) + Offset
	l.vertical(c.TopRight, c.BottomRight, x, d.Height, 1)
}

func (l *layout) box(w, h float64) {
	c := l.f.Corners
	l.horizontal(c.TopLeft, c.TopRight, c.TopLeft.Y-Offset, w, true)
	l.vertical(c.TopRight, c.BottomRight, c.TopRight.X+Offset, h, 1)
}

// radius adds a leader line pointing at the middle of the top left
// corner arc.
func (l *layout) radius(r float64) {
	rad := l.f.Radius
	if rad <= 0 {
		return
	}
	c := l.f.Corners.TopLeft
	centre := vec.Vec2{X: c.X + rad, Y: c.Y + rad}
	diag := vec.Vec2{X: -math.Sqrt2 / 2, Y: -math.Sqrt2 / 2}
	tip := centre.Add(diag.Mul(rad))
	from := tip.Add(diag.Mul(radiusLeader))
	l.dims = append(l.dims, Dimension{
		From:    from,
		To:      tip,
		Arrows:  ArrowTo,
		Label:   "R " + units.Format(r, l.u),
		LabelAt: l.above(from.X, from.Y),
	})
}

func (l *layout) bentPanel(d shape.BentPanel) {
	top := l.f.TopPoints
	bottom := l.f.BottomPoints
	n := len(top)
	first, last := top[0], top[n-1]

	apex := first
	for _, p := range top {
		if p.Y < apex.Y {
			apex = p
		}
	}
	l.horizontal(first, last, apex.Y-Offset, d.Width, true)

	left := min(first.X, bottom[0].X) - Offset
	l.vertical(first, bottom[0], left, d.Height, -1)

	if apex.Y >= last.Y {
		return
	}
	right := max(last.X, bottom[n-1].X) + Offset
	l.vertical(last, apex, right, d.BendHeight, 1)
}

// Paths returns the dimension lines, the arrow heads, and the extension
// lines of dims as three separate paths.  Lines and extensions are meant
// for stroking, arrow heads for filling.
func Paths(dims []Dimension) (lines, heads, extensions *path.Data) {
	lines = &path.Data{}
	heads = &path.Data{}
	extensions = &path.Data{}
	for i := range dims {
		d := &dims[i]
		lines = lines.MoveTo(d.From).LineTo(d.To)
		for _, h := range d.Heads() {
			heads = heads.MoveTo(h[0]).LineTo(h[1]).LineTo(h[2]).Close()
		}
		for _, e := range d.Extensions {
			if e.A.Sub(e.B).Length() > 0 {
				extensions = extensions.MoveTo(e.A).LineTo(e.B)
			}
		}
	}
	return lines, heads, extensions
}

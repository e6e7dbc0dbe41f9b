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
	"math"

	"honnef.co/go/curve"
	"seehuhn.de/go/geom/vec"
)

// Edge is a parametric curve on t ∈ [0, 1].
type Edge interface {
	// At returns the point at parameter t.
	At(t float64) vec.Vec2

	// Length returns the arc length.
	Length() float64

	// Straight reports whether the edge is a straight line segment.
	Straight() bool
}

// Line is a straight edge from A to B.
type Line struct {
	A, B vec.Vec2
}

// At implements [Edge].
func (l Line) At(t float64) vec.Vec2 {
	return Lerp(l.A, l.B, t)
}

// Length implements [Edge].
func (l Line) Length() float64 {
	return l.B.Sub(l.A).Length()
}

// Straight implements [Edge].
func (l Line) Straight() bool { return true }

// Quad is a quadratic Bézier edge with control point P1.
type Quad struct {
	P0, P1, P2 vec.Vec2
}

func (q Quad) bez() curve.QuadBez {
	return curve.QuadBez{
		P0: curve.Pt(q.P0.X, q.P0.Y),
		P1: curve.Pt(q.P1.X, q.P1.Y),
		P2: curve.Pt(q.P2.X, q.P2.Y),
	}
}

// At implements [Edge].
func (q Quad) At(t float64) vec.Vec2 {
	p := q.bez().Eval(t)
	return vec.Vec2{X: p.X, Y: p.Y}
}

// Length implements [Edge].
func (q Quad) Length() float64 {
	if q.Straight() {
		return q.P2.Sub(q.P0).Length()
	}
	return q.bez().Arclen(arclenAccuracy)
}

// Straight implements [Edge].
func (q Quad) Straight() bool {
	return collinear(q.P0, q.P1, q.P2)
}

// Polyline is a piecewise linear edge.  The parameter range is divided
// evenly between the segments, independent of their lengths.
type Polyline []vec.Vec2

// At implements [Edge].
func (p Polyline) At(t float64) vec.Vec2 {
	switch len(p) {
	case 0:
		return vec.Vec2{}
	case 1:
		return p[0]
	}
	n := len(p) - 1
	segLen := 1 / float64(n)
	i := int(math.Floor(t / segLen))
	i = max(0, min(i, n-1))
	local := (t - float64(i)*segLen) / segLen
	return Lerp(p[i], p[i+1], local)
}

// Length implements [Edge].
func (p Polyline) Length() float64 {
	var total float64
	for i := 1; i < len(p); i++ {
		total += p[i].Sub(p[i-1]).Length()
	}
	return total
}

// Straight implements [Edge].
func (p Polyline) Straight() bool {
	for i := 2; i < len(p); i++ {
		if !collinear(p[0], p[i-1], p[i]) {
			return false
		}
	}
	return true
}

// Lerp interpolates linearly between a and b.
func Lerp(a, b vec.Vec2, t float64) vec.Vec2 {
	return vec.Vec2{
		X: a.X + (b.X-a.X)*t,
		Y: a.Y + (b.Y-a.Y)*t,
	}
}

// QuadAt evaluates the scalar quadratic Bézier with control values
// p0, p1, p2 at t.
func QuadAt(p0, p1, p2, t float64) float64 {
	mt := 1 - t
	return mt*mt*p0 + 2*mt*t*p1 + t*t*p2
}

// collinear reports whether c lies on the line through a and b, within a
// tolerance relative to the size of the triangle.
func collinear(a, b, c vec.Vec2) bool {
	ab := b.Sub(a)
	ac := c.Sub(a)
	cross := ab.X*ac.Y - ab.Y*ac.X
	scale := max(ab.Length()*ac.Length(), 1)
	return math.Abs(cross) <= collinearTolerance*scale
}

const (
	// arclenAccuracy is the absolute arc length accuracy in logical pixels.
	arclenAccuracy = 1e-3

	// collinearTolerance bounds |sin| of the angle at which three points
	// are still considered to lie on a line.
	collinearTolerance = 1e-9
)

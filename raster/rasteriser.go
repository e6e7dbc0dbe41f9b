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

// Package raster converts outline paths to anti-aliased pixel coverage.
//
// The rasteriser computes exact signed-area coverage per pixel from the
// edges of a flattened path, scanline by scanline, and hands the result
// to a caller-supplied callback.  Helpers turn coverage into alpha masks
// or paint it onto RGBA images.
package raster

import (
	"cmp"
	"math"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// EmitFunc receives the coverage of pixels xMin, xMin+1, ... on row y.
// The coverage slice is only valid for the duration of the call.
type EmitFunc func(y, xMin int, coverage []float32)

// Rule selects the fill rule.
type Rule int

const (
	NonZero Rule = iota
	EvenOdd
)

// edge is a line segment in device coordinates.
type edge struct {
	x0, y0 float64
	x1, y1 float64
	dxdy   float64
	dir    float32 // +1 if the edge points down, -1 if up
}

func (e *edge) yMin() float64 { return min(e.y0, e.y1) }
func (e *edge) yMax() float64 { return max(e.y0, e.y1) }

func (e *edge) xAt(y float64) float64 {
	return e.x0 + e.dxdy*(y-e.y0)
}

// Rasteriser converts paths to coverage values.  One instance can be
// reused for many paths; its internal buffers grow but are never released.
// A Rasteriser must not be used concurrently.
type Rasteriser struct {
	// CTM maps user space to device space.  It must be non-singular.
	CTM matrix.Matrix

	// Clip is the output region in device coordinates.  It must have
	// integer coordinates.
	Clip rect.Rect

	// Flatness is the curve flattening tolerance in device pixels.
	Flatness float64

	// Width is the stroke width in user space units.
	Width float64

	// Cap and Join give the stroke end and corner styles.
	Cap  graphics.LineCapStyle
	Join graphics.LineJoinStyle

	// MiterLimit bounds the length of miter joins, relative to the
	// stroke width.  It must be at least 1.
	MiterLimit float64

	// Dash is the dash pattern in user space units; nil strokes solid lines.
	Dash []float64

	// DashPhase is the offset into the dash pattern.
	DashPhase float64

	edges     []edge
	active    []int
	cover     []float32
	area      []float32
	polys     []vec.Vec2 // stroke polygons, contiguous
	polyStart []int
	runs      []run
}

// NewRasteriser returns a rasteriser for the given clip rectangle, with
// the identity transformation and PDF default stroke parameters.
func NewRasteriser(clip rect.Rect) *Rasteriser {
	r := &Rasteriser{}
	r.Reset(clip)
	return r
}

// Reset restores all parameters to their defaults, keeping buffer capacity.
func (r *Rasteriser) Reset(clip rect.Rect) {
	r.CTM = matrix.Identity
	r.Clip = clip
	r.Flatness = defaultFlatness
	r.Width = 1
	r.Cap = graphics.LineCapButt
	r.Join = graphics.LineJoinMiter
	r.MiterLimit = defaultMiterLimit
	r.Dash = nil
	r.DashPhase = 0

	r.edges = r.edges[:0]
	r.active = r.active[:0]
	r.polys = r.polys[:0]
	r.polyStart = r.polyStart[:0]
	r.runs = r.runs[:0]
}

// FillNonZero rasterises p using the nonzero winding rule.
func (r *Rasteriser) FillNonZero(p *path.Data, emit EmitFunc) {
	r.Fill(p, NonZero, emit)
}

// FillEvenOdd rasterises p using the even-odd rule.
func (r *Rasteriser) FillEvenOdd(p *path.Data, emit EmitFunc) {
	r.Fill(p, EvenOdd, emit)
}

// Fill rasterises the interior of p.  Open subpaths are closed implicitly.
func (r *Rasteriser) Fill(p *path.Data, rule Rule, emit EmitFunc) {
	r.edges = r.edges[:0]

	var cur, start vec.Vec2
	k := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			if cur != start {
				r.addEdge(cur, start)
			}
			cur = p.Coords[k]
			start = cur
			k++
		case path.CmdLineTo:
			r.addEdge(cur, p.Coords[k])
			cur = p.Coords[k]
			k++
		case path.CmdQuadTo:
			r.flattenQuad(cur, p.Coords[k], p.Coords[k+1], r.addEdge)
			cur = p.Coords[k+1]
			k += 2
		case path.CmdCubeTo:
			r.flattenCubic(cur, p.Coords[k], p.Coords[k+1], p.Coords[k+2], r.addEdge)
			cur = p.Coords[k+2]
			k += 3
		case path.CmdClose:
			if cur != start {
				r.addEdge(cur, start)
			}
			cur = start
		}
	}
	if cur != start {
		r.addEdge(cur, start)
	}

	r.scan(rule, emit)
}

// device applies the CTM to a point.
func (r *Rasteriser) device(p vec.Vec2) vec.Vec2 {
	m := r.CTM
	return vec.Vec2{
		X: m[0]*p.X + m[2]*p.Y + m[4],
		Y: m[1]*p.X + m[3]*p.Y + m[5],
	}
}

// linear applies the linear part of the CTM to a vector.
func (r *Rasteriser) linear(v vec.Vec2) vec.Vec2 {
	m := r.CTM
	return vec.Vec2{
		X: m[0]*v.X + m[2]*v.Y,
		Y: m[1]*v.X + m[3]*v.Y,
	}
}

// addEdge appends the user space segment a→b to the edge list.
// Horizontal edges carry no coverage and are dropped.
func (r *Rasteriser) addEdge(a, b vec.Vec2) {
	da := r.device(a)
	db := r.device(b)
	dy := db.Y - da.Y
	if math.Abs(dy) < horizontalEdgeThreshold {
		return
	}
	dir := float32(1)
	if dy < 0 {
		dir = -1
	}
	r.edges = append(r.edges, edge{
		x0: da.X, y0: da.Y,
		x1: db.X, y1: db.Y,
		dxdy: (db.X - da.X) / dy,
		dir:  dir,
	})
}

// flattenQuad emits line segments approximating a quadratic Bézier curve.
// The segment count is chosen so that the device space deviation stays
// below Flatness.
func (r *Rasteriser) flattenQuad(p0, p1, p2 vec.Vec2, emit func(a, b vec.Vec2)) {
	dev := r.linear(p0.Sub(p1.Mul(2)).Add(p2)).Length() / 4
	n := 1
	if dev > r.Flatness {
		n = int(math.Ceil(math.Sqrt(dev / r.Flatness)))
	}
	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		mt := 1 - t
		q := p0.Mul(mt * mt).Add(p1.Mul(2 * mt * t)).Add(p2.Mul(t * t))
		emit(prev, q)
		prev = q
	}
}

// flattenCubic emits line segments approximating a cubic Bézier curve,
// using Wang's formula for the segment count.
func (r *Rasteriser) flattenCubic(p0, p1, p2, p3 vec.Vec2, emit func(a, b vec.Vec2)) {
	d1 := r.linear(p0.Sub(p1.Mul(2)).Add(p2)).Length()
	d2 := r.linear(p1.Sub(p2.Mul(2)).Add(p3)).Length()
	n := 1
	if m := max(d1, d2); m > 0 {
		if nf := math.Sqrt(3 * m / (4 * r.Flatness)); nf > 1 {
			n = int(math.Ceil(nf))
		}
	}
	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		mt := 1 - t
		q := p0.Mul(mt * mt * mt).
			Add(p1.Mul(3 * mt * mt * t)).
			Add(p2.Mul(3 * mt * t * t)).
			Add(p3.Mul(t * t * t))
		emit(prev, q)
		prev = q
	}
}

// Coverage model:
//
// Every edge crossing a pixel deposits two values.  cover is the signed
// vertical extent of the crossing, area is cover weighted by the part of
// the pixel to the right of the crossing.  Summing cover from the left and
// adding the pixel's own area gives the signed area of the path inside the
// pixel, which the fill rule maps to a coverage value in [0, 1].

// scan rasterises the current edge list with an active edge list.
func (r *Rasteriser) scan(rule Rule, emit EmitFunc) {
	if len(r.edges) == 0 {
		return
	}

	xMinF, xMaxF := math.Inf(1), math.Inf(-1)
	yMinF, yMaxF := math.Inf(1), math.Inf(-1)
	for i := range r.edges {
		e := &r.edges[i]
		xMinF = min(xMinF, e.x0, e.x1)
		xMaxF = max(xMaxF, e.x0, e.x1)
		yMinF = min(yMinF, e.y0, e.y1)
		yMaxF = max(yMaxF, e.y0, e.y1)
	}
	// Pixels left of the clip still receive the cover of edges beyond
	// the left margin, via the first buffer slot.
	xMin := max(int(math.Floor(xMinF)), int(r.Clip.LLx))
	xMax := min(int(math.Floor(xMaxF))+1, int(r.Clip.URx))
	yMin := max(int(math.Floor(yMinF)), int(r.Clip.LLy))
	yMax := min(int(math.Floor(yMaxF))+1, int(r.Clip.URy))
	if xMin >= xMax || yMin >= yMax {
		return
	}
	width := xMax - xMin

	r.cover = slices.Grow(r.cover[:0], width)[:width]
	r.area = slices.Grow(r.area[:0], width)[:width]

	slices.SortFunc(r.edges, func(a, b edge) int {
		return cmp.Compare(a.yMin(), b.yMin())
	})

	r.active = r.active[:0]
	next := 0
	for y := yMin; y < yMax; y++ {
		yTop := float64(y)
		yBot := float64(y + 1)

		for next < len(r.edges) && r.edges[next].yMin() < yBot {
			r.active = append(r.active, next)
			next++
		}

		clear(r.cover)
		clear(r.area)
		touched := false
		for i := 0; i < len(r.active); {
			e := &r.edges[r.active[i]]
			if e.yMax() <= yTop {
				last := len(r.active) - 1
				r.active[i] = r.active[last]
				r.active = r.active[:last]
				continue
			}
			if r.accumulate(e, y, xMin, xMax) {
				touched = true
			}
			i++
		}
		if !touched {
			continue
		}

		if rule == EvenOdd {
			integrateEvenOdd(r.cover, r.area)
		} else {
			integrateNonZero(r.cover, r.area)
		}
		if cov, off := trimZeros(r.cover); cov != nil {
			emit(y, xMin+off, cov)
		}
	}
}

// accumulate adds the contribution of e within row y to the cover and
// area buffers, which are indexed by x - xMin.
func (r *Rasteriser) accumulate(e *edge, y, xMin, xMax int) bool {
	yTop := max(float64(y), e.yMin())
	yBot := min(float64(y+1), e.yMax())
	if yBot <= yTop {
		return false
	}

	xa := e.xAt(yTop)
	xb := e.xAt(yBot)

	pa := int(math.Floor(xa))
	pb := int(math.Floor(xb))
	if pa == pb {
		r.deposit(pa, e.dir*float32(yBot-yTop), (xa+xb)/2, xMin, xMax)
		return true
	}

	// Split the edge where it crosses vertical pixel boundaries.  The
	// crossings are visited in order of increasing y.
	step := 1
	bx := pa + 1
	if xb < xa {
		step = -1
		bx = pa
	}
	dydx := (yBot - yTop) / (xb - xa)
	ya, xPrev := yTop, xa
	for p := pa; p != pb; p += step {
		yc := yTop + (float64(bx)-xa)*dydx
		yc = min(max(yc, ya), yBot)
		r.deposit(p, e.dir*float32(yc-ya), (xPrev+float64(bx))/2, xMin, xMax)
		ya, xPrev = yc, float64(bx)
		bx += step
	}
	r.deposit(pb, e.dir*float32(yBot-ya), (xPrev+xb)/2, xMin, xMax)
	return true
}

// deposit records a crossing of signed height cov in pixel column pix,
// at mean horizontal position xMid.
func (r *Rasteriser) deposit(pix int, cov float32, xMid float64, xMin, xMax int) {
	switch {
	case pix < xMin:
		r.cover[0] += cov
		r.area[0] += cov
	case pix < xMax:
		i := pix - xMin
		frac := float32(xMid - float64(pix))
		r.cover[i] += cov
		r.area[i] += cov * (1 - frac)
	}
}

// integrateNonZero turns cover/area into nonzero coverage, in place.
func integrateNonZero(cover, area []float32) {
	var acc float32
	for i := range cover {
		v := acc + area[i]
		acc += cover[i]
		if v < 0 {
			v = -v
		}
		cover[i] = min(v, 1)
	}
}

// integrateEvenOdd turns cover/area into even-odd coverage, in place.
func integrateEvenOdd(cover, area []float32) {
	var acc float32
	for i := range cover {
		v := acc + area[i]
		acc += cover[i]
		if v < 0 {
			v = -v
		}
		m := v - 2*float32(int(v/2))
		if m > 1 {
			m = 2 - m
		}
		cover[i] = m
	}
}

// trimZeros returns the non-zero part of coverage and its offset.
func trimZeros(coverage []float32) ([]float32, int) {
	lo, hi := 0, len(coverage)
	for lo < hi && coverage[lo] == 0 {
		lo++
	}
	for hi > lo && coverage[hi-1] == 0 {
		hi--
	}
	if lo == hi {
		return nil, 0
	}
	return coverage[lo:hi], lo
}

// Default parameter values.
const (
	// defaultFlatness is below the threshold of visual perception.
	defaultFlatness = 0.25

	// defaultMiterLimit matches PDF and PostScript.
	defaultMiterLimit = 10.0
)

// Numerical tolerances.
const (
	horizontalEdgeThreshold = 1e-10
	zeroLengthThreshold     = 1e-10
	collinearityThreshold   = 1e-6
)

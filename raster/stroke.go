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
	"math"
	"slices"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// run is a flattened subpath, or one dash of it.
type run struct {
	pts    []vec.Vec2
	closed bool

	// tangent orients single-point runs created by zero-length dashes.
	// It is zero for isolated points of the input path.
	tangent vec.Vec2
}

// Stroke rasterises p stroked with the current Width, Cap, Join,
// MiterLimit, Dash and DashPhase.
//
// The stroke is built as a union of convex pieces: one quadrilateral per
// segment plus join and cap polygons.  All pieces share the same
// orientation and are filled together with the nonzero rule, so that
// overlaps are painted once.
func (r *Rasteriser) Stroke(p *path.Data, emit EmitFunc) {
	r.runs = r.flatten(p, r.runs[:0])
	if len(r.Dash) > 0 {
		r.runs = r.applyDash(r.runs)
	}

	r.polys = r.polys[:0]
	r.polyStart = r.polyStart[:0]
	for i := range r.runs {
		r.strokeRun(&r.runs[i])
	}

	r.edges = r.edges[:0]
	for i, start := range r.polyStart {
		end := len(r.polys)
		if i+1 < len(r.polyStart) {
			end = r.polyStart[i+1]
		}
		poly := r.polys[start:end]
		for j := range poly {
			r.addEdge(poly[j], poly[(j+1)%len(poly)])
		}
	}
	r.scan(NonZero, emit)
}

// flatten converts p into polylines in user space.  Consecutive duplicate
// points are removed.
func (r *Rasteriser) flatten(p *path.Data, out []run) []run {
	var cur []vec.Vec2
	open := false
	drawn := false // a drawing command followed the last MoveTo
	finish := func(closed bool) {
		if !open || !(drawn || closed) {
			cur = nil
			open = false
			return
		}
		if closed && len(cur) > 1 && near(cur[0], cur[len(cur)-1]) {
			cur = cur[:len(cur)-1]
		}
		if len(cur) < 2 {
			closed = false
		}
		out = append(out, run{pts: cur, closed: closed})
		cur = nil
		open = false
	}
	add := func(_, b vec.Vec2) {
		drawn = true
		if len(cur) == 0 || !near(cur[len(cur)-1], b) {
			cur = append(cur, b)
		}
	}

	var last, start vec.Vec2
	k := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			finish(false)
			last = p.Coords[k]
			start = last
			cur = []vec.Vec2{last}
			open = true
			drawn = false
			k++
		case path.CmdLineTo:
			add(last, p.Coords[k])
			last = p.Coords[k]
			k++
		case path.CmdQuadTo:
			r.flattenQuad(last, p.Coords[k], p.Coords[k+1], add)
			last = p.Coords[k+1]
			k += 2
		case path.CmdCubeTo:
			r.flattenCubic(last, p.Coords[k], p.Coords[k+1], p.Coords[k+2], add)
			last = p.Coords[k+2]
			k += 3
		case path.CmdClose:
			finish(true)
			last = start
			cur = []vec.Vec2{start}
			open = true
			drawn = false
		}
	}
	finish(false)
	return out
}

// applyDash splits every run into its dashes.
func (r *Rasteriser) applyDash(in []run) []run {
	pattern := r.Dash
	var total float64
	for _, d := range pattern {
		if d < 0 {
			return in
		}
		total += d
	}
	if total <= 0 {
		return in
	}
	if len(pattern)%2 == 1 {
		total *= 2
	}
	phase := math.Mod(r.DashPhase, total)
	if phase < 0 {
		phase += total
	}

	var out []run
	for _, rn := range in {
		if len(rn.pts) < 2 {
			out = append(out, rn)
			continue
		}
		pts := rn.pts
		if rn.closed {
			pts = append(slices.Clip(pts), pts[0])
		}

		idx := 0
		rem := pattern[0]
		for ph := phase; ph > 0; {
			if ph < rem {
				rem -= ph
				break
			}
			ph -= rem
			idx++
			rem = pattern[idx%len(pattern)]
		}
		on := idx%2 == 0
		startedOn := on
		first := len(out)
		split := false

		var cur []vec.Vec2
		if on {
			cur = []vec.Vec2{pts[0]}
		}
		var t vec.Vec2
		for i := 0; i+1 < len(pts); i++ {
			a, b := pts[i], pts[i+1]
			d := b.Sub(a)
			segLen := d.Length()
			t = d.Mul(1 / segLen)
			pos := 0.0
			for segLen-pos > rem {
				pos += rem
				q := a.Add(t.Mul(pos))
				if on {
					out = append(out, newRun(append(cur, q), t))
					cur = nil
				} else {
					cur = []vec.Vec2{q}
				}
				split = true
				on = !on
				idx++
				rem = pattern[idx%len(pattern)]
			}
			rem -= segLen - pos
			if on {
				cur = append(cur, b)
			}
		}

		switch {
		case !split:
			if on {
				out = append(out, rn)
			}
		case on && rn.closed && startedOn && len(out) > first:
			// the last dash runs through the start point into the first one
			merged := append(cur, out[first].pts[1:]...)
			out[first] = newRun(merged, out[first].tangent)
		case on:
			out = append(out, newRun(cur, t))
		}
	}
	return out
}

func newRun(pts []vec.Vec2, tangent vec.Vec2) run {
	j := 0
	for i, p := range pts {
		if i > 0 && near(pts[j-1], p) {
			continue
		}
		pts[j] = p
		j++
	}
	return run{pts: pts[:j], tangent: tangent}
}

// strokeRun adds the stroke polygons of one run.
func (r *Rasteriser) strokeRun(rn *run) {
	d := r.Width / 2
	pts := rn.pts
	n := len(pts)

	if n == 1 {
		switch {
		case r.Cap == graphics.LineCapRound:
			r.addCircle(pts[0], d)
		case r.Cap == graphics.LineCapSquare && rn.tangent != (vec.Vec2{}):
			t := rn.tangent
			nrm := normal(t)
			c := pts[0]
			r.addPoly(
				c.Add(t.Mul(d)).Add(nrm.Mul(d)),
				c.Add(t.Mul(d)).Sub(nrm.Mul(d)),
				c.Sub(t.Mul(d)).Sub(nrm.Mul(d)),
				c.Sub(t.Mul(d)).Add(nrm.Mul(d)),
			)
		}
		return
	}

	numSegs := n - 1
	if rn.closed {
		numSegs = n
	}
	tangent := func(i int) vec.Vec2 {
		v := pts[(i+1)%n].Sub(pts[i])
		return v.Mul(1 / v.Length())
	}

	for i := range numSegs {
		a, b := pts[i], pts[(i+1)%n]
		nrm := normal(tangent(i)).Mul(d)
		r.addPoly(a.Add(nrm), b.Add(nrm), b.Sub(nrm), a.Sub(nrm))
	}

	if rn.closed {
		for i := range n {
			prev := (i + n - 1) % n
			r.addJoin(pts[i], tangent(prev), tangent(i), d)
		}
		return
	}
	for i := 1; i < n-1; i++ {
		r.addJoin(pts[i], tangent(i-1), tangent(i), d)
	}
	r.addCap(pts[0], tangent(0).Mul(-1), d)
	r.addCap(pts[n-1], tangent(n-2), d)
}

// addJoin adds the join polygon at p, where the direction changes from t1
// to t2.  The join is placed on the outer side of the corner.
func (r *Rasteriser) addJoin(p, t1, t2 vec.Vec2, d float64) {
	cross := t1.X*t2.Y - t1.Y*t2.X
	cos := t1.Dot(t2)
	if math.Abs(cross) < collinearityThreshold && cos > 0 {
		return
	}

	if r.Join == graphics.LineJoinRound {
		r.addCircle(p, d)
		return
	}

	s := 1.0
	if cross > 0 {
		s = -1
	}
	o1 := p.Add(normal(t1).Mul(s * d))
	o2 := p.Add(normal(t2).Mul(s * d))

	if r.Join == graphics.LineJoinMiter {
		cosHalf := math.Sqrt(max(0, (1+cos)/2))
		const miterEpsilon = 1e-10
		if cosHalf > 0 && 1/cosHalf <= r.MiterLimit+miterEpsilon {
			bis := normal(t1).Add(normal(t2))
			if l := bis.Length(); l > zeroLengthThreshold {
				tip := p.Add(bis.Mul(s * d / (cosHalf * l)))
				r.addPoly(p, o1, tip, o2)
				return
			}
		}
	}
	r.addPoly(p, o1, o2)
}

// addCap adds the cap at end point p, with u pointing away from the line.
func (r *Rasteriser) addCap(p, u vec.Vec2, d float64) {
	switch r.Cap {
	case graphics.LineCapRound:
		r.addCircle(p, d)
	case graphics.LineCapSquare:
		nrm := normal(u).Mul(d)
		e := p.Add(u.Mul(d))
		r.addPoly(p.Add(nrm), e.Add(nrm), e.Sub(nrm), p.Sub(nrm))
	}
}

// addCircle adds a polygon approximating the circle of radius rad
// around c, within the flatness tolerance.
func (r *Rasteriser) addCircle(c vec.Vec2, rad float64) {
	devRad := max(
		r.linear(vec.Vec2{X: rad}).Length(),
		r.linear(vec.Vec2{Y: rad}).Length(),
	)
	n := 8
	if devRad > r.Flatness {
		step := 2 * math.Acos(1-r.Flatness/devRad)
		n = max(n, int(math.Ceil(2*math.Pi/step)))
	}
	start := len(r.polys)
	for i := range n {
		phi := 2 * math.Pi * float64(i) / float64(n)
		r.polys = append(r.polys, vec.Vec2{
			X: c.X + rad*math.Cos(phi),
			Y: c.Y + rad*math.Sin(phi),
		})
	}
	r.closePoly(start)
}

// addPoly appends a polygon, normalising its orientation.
func (r *Rasteriser) addPoly(pts ...vec.Vec2) {
	start := len(r.polys)
	r.polys = append(r.polys, pts...)
	r.closePoly(start)
}

// closePoly finishes the polygon starting at r.polys[start].  Polygons are
// stored with positive signed area; degenerate polygons are dropped.
func (r *Rasteriser) closePoly(start int) {
	poly := r.polys[start:]
	var a float64
	for i := range poly {
		p, q := poly[i], poly[(i+1)%len(poly)]
		a += p.X*q.Y - q.X*p.Y
	}
	if math.Abs(a) < zeroLengthThreshold {
		r.polys = r.polys[:start]
		return
	}
	if a < 0 {
		slices.Reverse(poly)
	}
	r.polyStart = append(r.polyStart, start)
}

// normal returns t rotated by 90°.
func normal(t vec.Vec2) vec.Vec2 {
	return vec.Vec2{X: -t.Y, Y: t.X}
}

func near(a, b vec.Vec2) bool {
	return a.Sub(b).Length() < zeroLengthThreshold
}

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

// Package export writes rendered templates to files.
//
// Raster and SVG exports never contain dimension lines: they are meant for
// print operators.  The PDF export is a dieline drawing of the outline,
// with optional dimension lines and no images.
package export

import (
	"fmt"
	"image/png"
	"io"
	"math"
	"regexp"
	"strings"

	"honnef.co/go/curve"
	"seehuhn.de/go/geom/path"

	"seehuhn.de/go/dieline"
)

// PNG renders req without dimension lines and writes the result to w as a
// PNG image.  If rd is nil, a fresh Renderer is used.
func PNG(w io.Writer, rd *dieline.Renderer, req dieline.Request) error {
	if rd == nil {
		rd = dieline.NewRenderer(nil)
	}
	req.Annotate = false
	res, err := rd.Render(req)
	if err != nil {
		return err
	}
	if err := png.Encode(w, res.Image); err != nil {
		return fmt.Errorf("export: png: %w", err)
	}
	return nil
}

var whitespace = regexp.MustCompile(`\s+`)

// FileName returns the download name for a template of the given shape
// type and model label, e.g. "Round_500_ml_Round.png" for "round",
// "500 ml Round" and "png".
func FileName(shapeType, label, ext string) string {
	name := shapeType
	if name != "" {
		name = strings.ToUpper(name[:1]) + strings.ToLower(name[1:])
	}
	name += "_" + whitespace.ReplaceAllString(label, "_")
	if ext != "" {
		name += "." + strings.TrimPrefix(ext, ".")
	}
	return name
}

// bezPath converts p to a curve.BezPath, with coordinates rounded to
// multiples of 1/prec.
func bezPath(p *path.Data, prec float64) curve.BezPath {
	var bp curve.BezPath
	k := 0
	pt := func() curve.Point {
		c := p.Coords[k]
		k++
		return curve.Pt(math.Round(c.X*prec)/prec, math.Round(c.Y*prec)/prec)
	}
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			bp.MoveTo(pt())
		case path.CmdLineTo:
			bp.LineTo(pt())
		case path.CmdQuadTo:
			p1 := pt()
			bp.QuadTo(p1, pt())
		case path.CmdCubeTo:
			p1 := pt()
			p2 := pt()
			bp.CubicTo(p1, p2, pt())
		case path.CmdClose:
			bp.ClosePath()
		}
	}
	return bp
}

// svgPathData returns the SVG path data of p, with coordinates rounded to
// three decimals.
func svgPathData(p *path.Data) string {
	return bezPath(p, 1000).SVG(curve.SVGOptions{})
}

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

package export

import (
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/graphics"
	"seehuhn.de/go/pdf/graphics/color"

	"seehuhn.de/go/dieline"
	"seehuhn.de/go/dieline/annotate"
	"seehuhn.de/go/dieline/shape"
)

// Grey levels of the PDF dieline.
const (
	outlineGray   = 0x22 / 255.0
	dimensionGray = 0.35
)

// PDF writes the dieline of req to the named file, as a single page of
// the viewport size with one logical pixel per PDF point.  The outline is
// stroked; if req.Annotate is set, the dimension lines are added with
// dashed extension lines.  Images and labels are not included.
func PDF(fileName string, req dieline.Request) error {
	frame, err := shape.Compute(req.Shape, req.Unit, req.Viewport)
	if err != nil {
		return err
	}
	var dims []annotate.Dimension
	if req.Annotate {
		dims, err = annotate.Dimensions(frame, req.Shape, req.Unit)
		if err != nil {
			return err
		}
	}

	w, h := req.Viewport.Width, req.Viewport.Height
	page, err := document.CreateSinglePage(fileName, &pdf.Rectangle{URx: w, URy: h}, pdf.V1_7, nil)
	if err != nil {
		return err
	}

	// PDF origin is bottom-left, frames use top-left.
	page.Transform(matrix.Matrix{1, 0, 0, -1, 0, h})

	page.SetStrokeColor(color.DeviceGray(outlineGray))
	page.SetLineWidth(frame.StrokeWidth())
	page.SetLineJoin(graphics.LineJoinMiter)
	addPath(page, frame.Outline())
	page.Stroke()

	if len(dims) > 0 {
		lines, heads, extensions := annotate.Paths(dims)

		page.SetStrokeColor(color.DeviceGray(dimensionGray))
		page.SetFillColor(color.DeviceGray(dimensionGray))
		page.SetLineWidth(annotate.LineWidth(frame))
		page.SetLineCap(graphics.LineCapButt)
		addPath(page, lines)
		page.Stroke()
		addPath(page, heads)
		page.Fill()

		page.SetLineDash(annotate.ExtensionDash, 0)
		addPath(page, extensions)
		page.Stroke()
	}

	return page.Close()
}

// addPath appends p to the current path of page.  PDF has no quadratic
// curves, so these are converted to cubic ones.
func addPath(page *document.Page, p *path.Data) {
	for cmd, pts := range p.Iter().ToCubic() {
		switch cmd {
		case path.CmdMoveTo:
			page.MoveTo(pts[0].X, pts[0].Y)
		case path.CmdLineTo:
			page.LineTo(pts[0].X, pts[0].Y)
		case path.CmdCubeTo:
			page.CurveTo(pts[0].X, pts[0].Y, pts[1].X, pts[1].Y, pts[2].X, pts[2].Y)
		case path.CmdClose:
			page.ClosePath()
		}
	}
}

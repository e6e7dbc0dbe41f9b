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
	"bufio"
	"encoding/base64"
	"fmt"
	"image/color"
	"image/png"
	"io"
	"math"
	"strconv"

	"seehuhn.de/go/dieline"
	"seehuhn.de/go/dieline/shape"
	"seehuhn.de/go/dieline/warp"
)

// CompositeScale is the resolution, relative to the device resolution of
// the request, at which the embedded SVG image is rendered.
const CompositeScale = 2

// ClipID is the id of the clip path in SVG output.
const ClipID = "shapeClip"

// SVG writes req as an SVG document to w.
//
// The outline is written as a vector path.  With a source image, the
// warped image is rendered once into a single raster at CompositeScale
// times the device resolution, embedded as a PNG, and clipped with the
// outline.  Without an image, the outline is filled with the placeholder
// colour.  If rd is nil, a fresh Renderer is used.
func SVG(w io.Writer, rd *dieline.Renderer, req dieline.Request) error {
	if rd == nil {
		rd = dieline.NewRenderer(nil)
	}
	frame, err := shape.Compute(req.Shape, req.Unit, req.Viewport)
	if err != nil {
		return err
	}
	d := svgPathData(frame.Outline())
	vw := num(req.Viewport.Width)
	vh := num(req.Viewport.Height)

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "<svg xmlns=\"http://www.w3.org/2000/svg\" xmlns:xlink=\"http://www.w3.org/1999/xlink\" width=\"%s\" height=\"%s\" viewBox=\"0 0 %s %s\">\n",
		vw, vh, vw, vh)

	fill, opacity := "none", ""
	if req.Image != nil {
		dpr := req.DevicePixelRatio
		if dpr <= 0 {
			dpr = 1
		}
		composite := req
		composite.DevicePixelRatio = CompositeScale * dpr
		composite.Background = nil
		res, err := rd.Fill(composite)
		if err != nil {
			return err
		}

		fmt.Fprintf(bw, "<defs>\n<clipPath id=%q>\n<path d=%q/>\n</clipPath>\n</defs>\n", ClipID, d)
		fmt.Fprintf(bw, "<image x=\"0\" y=\"0\" width=\"%s\" height=\"%s\" preserveAspectRatio=\"none\" clip-path=\"url(#%s)\" xlink:href=\"data:image/png;base64,",
			vw, vh, ClipID)
		enc := base64.NewEncoder(base64.StdEncoding, bw)
		if err := png.Encode(enc, res.Image); err != nil {
			return fmt.Errorf("export: svg image: %w", err)
		}
		if err := enc.Close(); err != nil {
			return err
		}
		bw.WriteString("\"/>\n")
	} else {
		fill = hex(req.Warp.Placeholder)
		if a := alpha(req.Warp.Placeholder); a < 1 {
			opacity = " fill-opacity=\"" + num(a) + "\""
		}
	}

	fmt.Fprintf(bw, "<path d=%q fill=%q%s stroke=%q stroke-width=\"%s\" stroke-linejoin=\"miter\"/>\n",
		d, fill, opacity, hex(dieline.OutlineColor), num(frame.StrokeWidth()))
	bw.WriteString("</svg>\n")
	return bw.Flush()
}

// hex formats the colour of c, without alpha, as an SVG colour.  A nil
// colour gives the warp placeholder colour.
func hex(c color.Color) string {
	if c == nil {
		c = warp.Placeholder
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
}

// alpha returns the opacity of c, rounded to three decimals.  A nil
// colour gives the opacity of the warp placeholder colour.
func alpha(c color.Color) float64 {
	if c == nil {
		c = warp.Placeholder
	}
	_, _, _, a := c.RGBA()
	return math.Round(float64(a)/0xffff*1000) / 1000
}

func num(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}

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

// Package dieline renders parametric packaging templates.
//
// A [Request] names a shape with its physical dimensions, an optional
// source image, and a viewport.  Rendering computes the shape geometry,
// fills the outline with the warped image (or a flat placeholder), strokes
// the outline, and optionally overlays dimension lines.  Every call paints
// a fresh surface; nothing is carried over between calls.
package dieline

//go:generate go run ./testcases/export -o testdata/out

import (
	"context"
	"image"
	"image/color"
	"log/slog"
	"math"

	"golang.org/x/image/draw"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/dieline/annotate"
	"seehuhn.de/go/dieline/raster"
	"seehuhn.de/go/dieline/shape"
	"seehuhn.de/go/dieline/units"
	"seehuhn.de/go/dieline/warp"
)

// OutlineColor is the colour of the shape border.
var OutlineColor = color.RGBA{R: 0x22, G: 0x22, B: 0x22, A: 0xff}

// Request describes one render.  A Request is a plain value; rendering
// never modifies it or the image it refers to.
type Request struct {
	Shape shape.Descriptor
	Unit  units.Unit

	// Image is the optional source image.  Without an image the outline
	// is filled with the warp placeholder colour.
	Image image.Image

	Viewport shape.Viewport

	// DevicePixelRatio is the number of device pixels per logical pixel.
	// Zero means 1.
	DevicePixelRatio float64

	// Annotate enables the dimension lines.
	Annotate bool

	Warp warp.Options

	// Background, if not nil, is painted before the shape.  Otherwise the
	// surface starts out transparent.
	Background color.Color
}

func (req *Request) dpr() float64 {
	if req.DevicePixelRatio > 0 {
		return req.DevicePixelRatio
	}
	return 1
}

// DeviceSize returns the size of the render surface in device pixels.
func (req *Request) DeviceSize() image.Point {
	dpr := req.dpr()
	return image.Point{
		X: int(math.Ceil(req.Viewport.Width * dpr)),
		Y: int(math.Ceil(req.Viewport.Height * dpr)),
	}
}

// Result is the outcome of a render.
type Result struct {
	// Image is the rendered surface in device pixels.
	Image *image.RGBA

	Frame *shape.Frame

	// Clip and Stroke are the paths used for the fill region and for the
	// border.  They are the same path.
	Clip, Stroke *path.Data

	// Slices is the number of image slices drawn.
	Slices int
}

// A Renderer renders requests, reusing its buffers and font faces between
// calls.  A Renderer must not be used concurrently.
type Renderer struct {
	// Logger receives one debug record per render.  If nil, nothing is
	// logged.
	Logger *slog.Logger

	r   *raster.Rasteriser
	ann *annotate.Annotator
}

// NewRenderer returns a Renderer which logs to logger.
func NewRenderer(logger *slog.Logger) *Renderer {
	return &Renderer{
		Logger: logger,
		r:      raster.NewRasteriser(rect.Rect{}),
	}
}

// Render renders req with a fresh Renderer.
func Render(req Request) (*Result, error) {
	return NewRenderer(nil).Render(req)
}

// Render paints the full template: fill, outline, and, if requested,
// dimension lines.
func (rd *Renderer) Render(req Request) (*Result, error) {
	return rd.render(&req, true)
}

// Fill paints only the clipped fill of the outline, without border or
// dimensions.
func (rd *Renderer) Fill(req Request) (*Result, error) {
	return rd.render(&req, false)
}

func (rd *Renderer) render(req *Request, full bool) (*Result, error) {
	frame, err := shape.Compute(req.Shape, req.Unit, req.Viewport)
	if err != nil {
		return nil, err
	}
	dpr := req.dpr()
	size := req.DeviceSize()
	surface := image.NewRGBA(image.Rectangle{Max: size})
	if req.Background != nil {
		draw.Draw(surface, surface.Bounds(), image.NewUniform(req.Background), image.Point{}, draw.Src)
	}

	if rd.r == nil {
		rd.r = raster.NewRasteriser(rect.Rect{})
	}
	r := rd.r
	clip := rect.Rect{URx: float64(size.X), URy: float64(size.Y)}
	outline := frame.Outline()

	r.Reset(clip)
	r.CTM = matrix.Scale(dpr, dpr)
	mask := r.Mask(outline, raster.NonZero)
	n := warp.Fill(surface, mask, req.Image, frame, req.Warp, dpr)

	if full {
		r.Reset(clip)
		r.CTM = matrix.Scale(dpr, dpr)
		r.Width = frame.StrokeWidth()
		r.Join = graphics.LineJoinMiter
		r.Stroke(outline, raster.Painter(surface, OutlineColor))

		if req.Annotate {
			ann, err := rd.annotator()
			if err != nil {
				return nil, err
			}
			err = ann.Annotate(surface, frame, req.Shape, req.Unit, dpr)
			if err != nil {
				return nil, err
			}
		}
	}

	if rd.Logger != nil {
		rd.Logger.LogAttrs(context.Background(), slog.LevelDebug, "render",
			slog.String("kind", frame.Kind.String()),
			slog.Float64("scale", frame.Scale),
			slog.Int("slices", n),
			slog.Int("width", size.X),
			slog.Int("height", size.Y),
			slog.Bool("outline", full),
			slog.Bool("annotate", full && req.Annotate),
		)
	}

	return &Result{
		Image:  surface,
		Frame:  frame,
		Clip:   outline,
		Stroke: outline,
		Slices: n,
	}, nil
}

func (rd *Renderer) annotator() (*annotate.Annotator, error) {
	if rd.ann == nil {
		ann, err := annotate.NewAnnotator()
		if err != nil {
			return nil, err
		}
		rd.ann = ann
	}
	return rd.ann, nil
}

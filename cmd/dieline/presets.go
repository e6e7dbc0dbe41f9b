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

package main

import (
	"errors"
	"fmt"
	"image"
	"maps"
	"slices"
	"strconv"
	"strings"

	"seehuhn.de/go/dieline/shape"
)

var (
	errUnknownModel = errors.New("unknown model")
	errBadShape     = errors.New("malformed shape")
)

// Orientations of the sweet box models.
const (
	orientationBottom = "bottom"
	orientationTop    = "top"
)

// A preset is a named package model, given in millimetres.
type preset struct {
	Group    string
	Label    string
	Shape    shape.Descriptor
	MinImage image.Point

	// Lid is the top of a sweet box, used for orientation "top".
	Lid    shape.Descriptor
	MinLid image.Point
}

var (
	sweetBox250 = shape.BentPanel{Width: 467.83, Height: 34.13, BendHeight: 61.98}
	sweetBox500 = shape.BentPanel{Width: 630.19, Height: 34.12, BendHeight: 71.61}
	lidSize     = image.Pt(1488, 992)
)

var presets = map[string]preset{
	"round500": {
		Group:    "round",
		Label:    "500 ml Round",
		Shape:    shape.CurvedTub{TopWidth: 313.14, BottomWidth: 244.65, Height: 75},
		MinImage: image.Pt(2890, 886),
	},
	"round250": {
		Group:    "round",
		Label:    "250 ml Round",
		Shape:    shape.CurvedTub{TopWidth: 223.78360438, BottomWidth: 184.4421, Height: 28.426912708},
		MinImage: image.Pt(2906, 448),
	},
	"round750": {
		Group:    "round",
		Label:    "750 ml Round",
		Shape:    shape.CurvedTub{TopWidth: 300.91, BottomWidth: 245.14, Height: 37.92},
		MinImage: image.Pt(4363, 709),
	},
	"round1000": {
		Group:    "round",
		Label:    "1000 ml Round",
		Shape:    shape.CurvedTub{TopWidth: 310.91, BottomWidth: 245.14, Height: 37.92},
		MinImage: image.Pt(4369, 709),
	},
	"square500ml": {
		Group:    "round_Square",
		Label:    "500 ml",
		Shape:    shape.CurvedTub{TopWidth: 309.322, BottomWidth: 245.178, Height: 98.853},
		MinImage: image.Pt(2924, 748),
	},
	"square500g": {
		Group:    "round_Square",
		Label:    "500 gms/450 ml Round",
		Shape:    shape.CurvedTub{TopWidth: 309.322, BottomWidth: 245.178, Height: 96.853},
		MinImage: image.Pt(2924, 748),
	},
	"rectangle750": {
		Group:    "rectangle",
		Label:    "750 ml Rectangle",
		Shape:    shape.RoundedRect{Width: 162.5, Height: 108.6},
		MinImage: lidSize,
	},
	"rectangle500": {
		Group:    "rectangle",
		Label:    "500 ml Rectangle",
		Shape:    shape.PlainRect{Width: 200, Height: 160},
		MinImage: image.Pt(200, 200),
	},
	"sweetBox250": {
		Group:    "sweetBox",
		Label:    "250 SB",
		Shape:    sweetBox250,
		MinImage: image.Pt(468, 35),
		Lid:      shape.RoundedRect{Width: 150, Height: 100, CornerRadius: 8},
		MinLid:   lidSize,
	},
	"sweetBox500": {
		Group:    "sweetBox",
		Label:    "500 SB",
		Shape:    sweetBox500,
		MinImage: image.Pt(631, 35),
		Lid:      shape.RoundedRect{Width: 180, Height: 120, CornerRadius: 10},
		MinLid:   lidSize,
	},
	"teSweetBox250": {
		Group:    "teSweetBox",
		Label:    "TE 250 SB",
		Shape:    sweetBox250,
		MinImage: image.Pt(468, 35),
		Lid:      shape.RoundedRect{Width: 155, Height: 105, CornerRadius: 12},
		MinLid:   lidSize,
	},
	"teSweetBox500": {
		Group:    "teSweetBox",
		Label:    "TE 500 SB",
		Shape:    sweetBox500,
		MinImage: image.Pt(631, 35),
		Lid:      shape.RoundedRect{Width: 185, Height: 125, CornerRadius: 15},
		MinLid:   lidSize,
	},
}

// modelNames returns the preset names, sorted by group and name.
func modelNames() []string {
	names := slices.Collect(maps.Keys(presets))
	slices.SortFunc(names, func(a, b string) int {
		if c := strings.Compare(presets[a].Group, presets[b].Group); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})
	return names
}

// resolve returns the shape, file label and minimum image size of the
// model for the given orientation.  An empty orientation means bottom.
func (p *preset) resolve(orientation string) (shape.Descriptor, string, image.Point, error) {
	switch orientation {
	case "", orientationBottom:
		return p.Shape, p.Label, p.MinImage, nil
	case orientationTop:
		if p.Lid == nil {
			return nil, "", image.Point{}, fmt.Errorf("model %q has no top", p.Label)
		}
		return p.Lid, p.Label + " top", p.MinLid, nil
	default:
		return nil, "", image.Point{}, fmt.Errorf("invalid orientation %q", orientation)
	}
}

// shapeKinds maps the kind names used with -shape to the number of
// dimensions and a constructor.
var shapeKinds = map[string]struct {
	n   int
	new func(v []float64) shape.Descriptor
}{
	"tub": {3, func(v []float64) shape.Descriptor {
		return shape.CurvedTub{TopWidth: v[0], BottomWidth: v[1], Height: v[2]}
	}},
	"rounded": {3, func(v []float64) shape.Descriptor {
		return shape.RoundedRect{Width: v[0], Height: v[1], CornerRadius: v[2]}
	}},
	"rect": {2, func(v []float64) shape.Descriptor {
		return shape.PlainRect{Width: v[0], Height: v[1]}
	}},
	"panel": {3, func(v []float64) shape.Descriptor {
		return shape.BentPanel{Width: v[0], Height: v[1], BendHeight: v[2]}
	}},
}

// parseShape parses a custom shape of the form "kind:d1,d2,...", for
// example "tub:313.14,244.65,75" or "rect:200,160".  It returns the shape
// and its kind name.
func parseShape(s string) (shape.Descriptor, string, error) {
	kind, dims, ok := strings.Cut(s, ":")
	if !ok {
		return nil, "", fmt.Errorf("%w: %q", errBadShape, s)
	}
	kind = strings.ToLower(strings.TrimSpace(kind))
	k, ok := shapeKinds[kind]
	if !ok {
		return nil, "", fmt.Errorf("%w: unknown kind %q", errBadShape, kind)
	}
	fields := strings.Split(dims, ",")
	if len(fields) != k.n {
		return nil, "", fmt.Errorf("%w: %s needs %d dimensions, got %d",
			errBadShape, kind, k.n, len(fields))
	}
	v := make([]float64, len(fields))
	for i, f := range fields {
		x, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %v", errBadShape, err)
		}
		v[i] = x
	}
	d := k.new(v)
	if err := d.Validate(); err != nil {
		return nil, "", err
	}
	return d, kind, nil
}

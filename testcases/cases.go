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

package testcases

import (
	"seehuhn.de/go/dieline/shape"
	"seehuhn.de/go/dieline/units"
)

var tubCases = []TestCase{
	{
		Name:   "round_500",
		Shape:  shape.CurvedTub{TopWidth: 313.14, BottomWidth: 244.65, Height: 75},
		Unit:   units.Millimetre,
		Width:  800,
		Height: 600,
	},
	{
		Name:     "round_500_annotated",
		Shape:    shape.CurvedTub{TopWidth: 313.14, BottomWidth: 244.65, Height: 75},
		Unit:     units.Millimetre,
		Width:    800,
		Height:   600,
		Annotate: true,
		Image:    Checker(1445, 443, 40),
	},
	{
		Name:   "round_250_image",
		Shape:  shape.CurvedTub{TopWidth: 223.78360438, BottomWidth: 184.4421, Height: 28.426912708},
		Unit:   units.Millimetre,
		Width:  800,
		Height: 600,
		Image:  Gradient(1453, 224),
	},
	{
		Name:     "round_750_hidpi",
		Shape:    shape.CurvedTub{TopWidth: 300.91, BottomWidth: 245.14, Height: 37.92},
		Unit:     units.Millimetre,
		Width:    640,
		Height:   480,
		DPR:      2,
		Annotate: true,
		Image:    Stripes(2181, 354, 24),
	},
	{
		Name:   "cylinder",
		Shape:  shape.CurvedTub{TopWidth: 200, BottomWidth: 200, Height: 80},
		Unit:   units.Millimetre,
		Width:  800,
		Height: 600,
		Image:  Checker(800, 320, 32),
	},
	{
		Name:   "coarse_slices",
		Shape:  shape.CurvedTub{TopWidth: 313.14, BottomWidth: 244.65, Height: 75},
		Unit:   units.Millimetre,
		Width:  800,
		Height: 600,
		Image:  Stripes(1445, 443, 30),
		Slices: 24,
	},
}

var rectCases = []TestCase{
	{
		Name:   "square_500",
		Shape:  shape.PlainRect{Width: 200, Height: 160},
		Unit:   units.Millimetre,
		Width:  800,
		Height: 600,
	},
	{
		Name:     "square_500_annotated",
		Shape:    shape.PlainRect{Width: 200, Height: 160},
		Unit:     units.Millimetre,
		Width:    800,
		Height:   600,
		Annotate: true,
		Image:    Checker(600, 480, 48),
	},
	{
		Name:     "tall",
		Shape:    shape.PlainRect{Width: 50, Height: 300},
		Unit:     units.Millimetre,
		Width:    600,
		Height:   800,
		Annotate: true,
	},
}

var roundedCases = []TestCase{
	{
		Name:     "lid_250",
		Shape:    shape.RoundedRect{Width: 150, Height: 100, CornerRadius: 8},
		Unit:     units.Millimetre,
		Width:    800,
		Height:   600,
		Annotate: true,
		Image:    Gradient(744, 496),
	},
	{
		Name:     "lid_te_500",
		Shape:    shape.RoundedRect{Width: 185, Height: 125, CornerRadius: 15},
		Unit:     units.Millimetre,
		Width:    800,
		Height:   600,
		Annotate: true,
	},
	{
		Name:   "radius_clamped",
		Shape:  shape.RoundedRect{Width: 100, Height: 50, CornerRadius: 80},
		Unit:   units.Millimetre,
		Width:  800,
		Height: 600,
	},
	{
		Name:     "rectangle_750",
		Shape:    shape.RoundedRect{Width: 162.5, Height: 108.6, CornerRadius: 0},
		Unit:     units.Millimetre,
		Width:    800,
		Height:   600,
		Annotate: true,
	},
}

var panelCases = []TestCase{
	{
		Name:   "sweetbox_250",
		Shape:  shape.BentPanel{Width: 467.83, Height: 34.13, BendHeight: 61.98},
		Unit:   units.Millimetre,
		Width:  800,
		Height: 600,
	},
	{
		Name:     "sweetbox_500_annotated",
		Shape:    shape.BentPanel{Width: 630.19, Height: 34.12, BendHeight: 71.61},
		Unit:     units.Millimetre,
		Width:    800,
		Height:   600,
		Annotate: true,
		Image:    Stripes(1200, 200, 20),
	},
	{
		Name:     "flat",
		Shape:    shape.BentPanel{Width: 200, Height: 160, BendHeight: 0},
		Unit:     units.Millimetre,
		Width:    800,
		Height:   600,
		Annotate: true,
	},
}

var unitCases = []TestCase{
	{
		Name:     "tub_cm",
		Shape:    shape.CurvedTub{TopWidth: 31.314, BottomWidth: 24.465, Height: 7.5},
		Unit:     units.Centimetre,
		Width:    800,
		Height:   600,
		Annotate: true,
	},
	{
		Name:     "rect_in",
		Shape:    shape.PlainRect{Width: 6, Height: 4},
		Unit:     units.Inch,
		Width:    800,
		Height:   600,
		Annotate: true,
	},
	{
		Name:     "rect_px",
		Shape:    shape.PlainRect{Width: 400, Height: 300},
		Unit:     units.Pixel,
		Width:    800,
		Height:   600,
		Annotate: true,
	},
	{
		Name:     "panel_ft",
		Shape:    shape.BentPanel{Width: 1.5, Height: 0.12, BendHeight: 0.2},
		Unit:     units.Foot,
		Width:    800,
		Height:   600,
		Annotate: true,
	},
}

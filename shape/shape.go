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

// Package shape computes the geometry of parametric packaging templates.
//
// A [Descriptor] gives the physical dimensions of one of a small, fixed set
// of shapes.  [Compute] maps a descriptor, a unit, and a [Viewport] to a
// [Frame]: the scale-to-fit factor, the corner points, the curve control
// parameters, the parametric top and bottom edges used by the image warp,
// and the outline path used for clipping and stroking.
//
// All frame coordinates are logical canvas pixels with the origin in the
// top-left corner and y increasing downwards.
package shape

import (
	"fmt"
	"math"
)

// Kind identifies a shape variant.
type Kind int

// The supported shape kinds.
const (
	KindCurvedTub Kind = iota + 1
	KindRoundedRect
	KindPlainRect
	KindBentPanel
)

func (k Kind) String() string {
	switch k {
	case KindCurvedTub:
		return "curved tub"
	case KindRoundedRect:
		return "rounded rectangle"
	case KindPlainRect:
		return "rectangle"
	case KindBentPanel:
		return "bent panel"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Descriptor is one of [CurvedTub], [RoundedRect], [PlainRect] or
// [BentPanel].  All lengths are given in a single physical unit, which is
// supplied separately to [Compute].
type Descriptor interface {
	Kind() Kind
	Validate() error
}

// CurvedTub is the unrolled wall of a round tub: a trapezoid whose top and
// bottom edges are quadratic curves.
type CurvedTub struct {
	TopWidth    float64
	BottomWidth float64
	Height      float64
}

// Kind implements [Descriptor].
func (CurvedTub) Kind() Kind { return KindCurvedTub }

// Validate implements [Descriptor].
func (d CurvedTub) Validate() error {
	return checkAll(
		positive("topWidth", d.TopWidth),
		positive("bottomWidth", d.BottomWidth),
		positive("height", d.Height),
	)
}

// RoundedRect is a rectangle with quadratic corner arcs.
type RoundedRect struct {
	Width        float64
	Height       float64
	CornerRadius float64
}

// Kind implements [Descriptor].
func (RoundedRect) Kind() Kind { return KindRoundedRect }

// Validate implements [Descriptor].
func (d RoundedRect) Validate() error {
	return checkAll(
		positive("width", d.Width),
		positive("height", d.Height),
		nonNegative("cornerRadius", d.CornerRadius),
	)
}

// PlainRect is an axis-aligned rectangle.
type PlainRect struct {
	Width  float64
	Height float64
}

// Kind implements [Descriptor].
func (PlainRect) Kind() Kind { return KindPlainRect }

// Validate implements [Descriptor].
func (d PlainRect) Validate() error {
	return checkAll(
		positive("width", d.Width),
		positive("height", d.Height),
	)
}

// BentPanel is a wrap panel whose top edge follows a half-sine profile
// through [BendPoints] points.  The bottom edge follows the top edge at a
// constant vertical offset, with the two end points moved so that the side
// edges stay perpendicular to the top edge.
type BentPanel struct {
	Width      float64
	Height     float64
	BendHeight float64
}

// Kind implements [Descriptor].
func (BentPanel) Kind() Kind { return KindBentPanel }

// Validate implements [Descriptor].
func (d BentPanel) Validate() error {
	return checkAll(
		positive("width", d.Width),
		positive("height", d.Height),
		nonNegative("bendHeight", d.BendHeight),
	)
}

// BentPanel shape constants.
const (
	// BendFactor is the fraction of the configured bend height applied to
	// the top edge profile.
	BendFactor = 0.5

	// BendPoints is the number of control points on each long edge.
	BendPoints = 5
)

func positive(field string, v float64) error {
	if !(v > 0) || math.IsInf(v, 0) {
		return &DimensionError{Field: field, Value: v}
	}
	return nil
}

func nonNegative(field string, v float64) error {
	if !(v >= 0) || math.IsInf(v, 0) {
		return &DimensionError{Field: field, Value: v}
	}
	return nil
}

// checkAll returns the first non-nil error.
func checkAll(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

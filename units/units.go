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

// Package units converts physical lengths to logical canvas pixels.
//
// The conversion is a fixed linear scalar per unit. No rounding is applied.
package units

import (
	"errors"
	"fmt"
	"strings"
)

// Unit identifies a length unit.
type Unit string

// Recognised units.
const (
	Pixel      Unit = "px"
	Millimetre Unit = "mm"
	Centimetre Unit = "cm"
	Inch       Unit = "in"
	Foot       Unit = "ft"
	Metre      Unit = "m"
)

// ErrInvalidUnit is returned for unit tags missing from the conversion table.
var ErrInvalidUnit = errors.New("invalid unit")

// pixelsPer holds the number of logical pixels per unit.
var pixelsPer = map[Unit]float64{
	Pixel:      1,
	Millimetre: 3.78,
	Centimetre: 37.8,
	Inch:       3.78 * 25.4,
	Foot:       3.78 * 25.4 * 12,
	Metre:      3780,
}

// fontScale holds the label size multipliers.  Units not listed use 1.
var fontScale = map[Unit]float64{
	Millimetre: 1.0,
	Centimetre: 1.2,
	Inch:       1.5,
	Foot:       1.8,
}

var aliases = map[string]Unit{
	"inch":   Inch,
	"inches": Inch,
	"feet":   Foot,
	"foot":   Foot,
}

// Parse converts a unit name to a Unit.  Matching is case-insensitive and
// accepts a few long-form aliases such as "inch" and "feet".
func Parse(s string) (Unit, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if u, ok := aliases[key]; ok {
		return u, nil
	}
	u := Unit(key)
	if _, ok := pixelsPer[u]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidUnit, s)
	}
	return u, nil
}

// Valid reports whether u is in the conversion table.
func (u Unit) Valid() bool {
	_, ok := pixelsPer[u]
	return ok
}

// Scalar returns the number of logical pixels per unit.
func (u Unit) Scalar() (float64, error) {
	k, ok := pixelsPer[u]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidUnit, string(u))
	}
	return k, nil
}

// ToPixels converts v from unit u to logical pixels.
func (u Unit) ToPixels(v float64) (float64, error) {
	k, err := u.Scalar()
	if err != nil {
		return 0, err
	}
	return v * k, nil
}

// ToPixels converts value from unit u to logical pixels.
func ToPixels(value float64, u Unit) (float64, error) {
	return u.ToPixels(value)
}

// FontScale returns the multiplier applied to dimension label sizes.
func (u Unit) FontScale() float64 {
	if s, ok := fontScale[u]; ok {
		return s
	}
	return 1
}

// Suffix returns the string appended to dimension labels.
func (u Unit) Suffix() string {
	return string(u)
}

// Format renders a dimension label such as "313.14 mm".
func Format(v float64, u Unit) string {
	return fmt.Sprintf("%.2f %s", v, u.Suffix())
}

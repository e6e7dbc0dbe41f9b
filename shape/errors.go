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

package shape

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDimensions indicates a non-positive or non-finite length,
	// or a viewport too small to hold any shape.
	ErrInvalidDimensions = errors.New("invalid dimensions")

	// ErrUnsupportedShape indicates a descriptor without a registered
	// layout.
	ErrUnsupportedShape = errors.New("unsupported shape kind")
)

// DimensionError describes a rejected length.
type DimensionError struct {
	Field string
	Value float64
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("invalid dimensions: %s = %g", e.Field, e.Value)
}

// Is makes errors.Is(err, ErrInvalidDimensions) succeed.
func (e *DimensionError) Is(target error) bool {
	return target == ErrInvalidDimensions
}

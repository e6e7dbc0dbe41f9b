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
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/webp"
)

var errImageTooSmall = errors.New("image too small")

// loadImage decodes a PNG, JPEG, GIF or WebP file.
func loadImage(fname string) (image.Image, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	return img, nil
}

// checkSize rejects images smaller than need in either direction.
func checkSize(img image.Image, need image.Point) error {
	size := img.Bounds().Size()
	if size.X < need.X || size.Y < need.Y {
		return fmt.Errorf("%w: %dx%d, need at least %dx%d",
			errImageTooSmall, size.X, size.Y, need.X, need.Y)
	}
	return nil
}

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
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// A job describes one template to render.  Either Model or Shape must be
// set.
type job struct {
	Model       string   `toml:"model"`
	Shape       string   `toml:"shape"`
	Name        string   `toml:"name"`
	Unit        string   `toml:"unit"`
	Image       string   `toml:"image"`
	Orientation string   `toml:"orientation"`
	Formats     []string `toml:"formats"`
	Annotate    bool     `toml:"annotate"`
	Width       float64  `toml:"width"`
	Height      float64  `toml:"height"`
	DPR         float64  `toml:"dpr"`
}

// jobFile is the layout of a TOML job file:
//
//	output = "out"
//	formats = ["png", "pdf"]
//
//	[[job]]
//	model = "round500"
//	image = "label.jpg"
//
//	[[job]]
//	shape = "rounded:150,100,8"
//	name = "Custom Lid"
//	annotate = true
//
// The top-level formats apply to every job which lists none.
type jobFile struct {
	Output  string   `toml:"output"`
	Formats []string `toml:"formats"`
	Jobs    []job    `toml:"job"`
}

func readJobFile(fname string) (*jobFile, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	jf, err := parseJobFile(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	return jf, nil
}

func parseJobFile(r io.Reader) (*jobFile, error) {
	jf := &jobFile{}
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(jf); err != nil {
		return nil, err
	}
	for i := range jf.Jobs {
		if len(jf.Jobs[i].Formats) == 0 {
			jf.Jobs[i].Formats = jf.Formats
		}
	}
	return jf, nil
}

// override copies the fields of src whose flags were given on the command
// line into j.
func (j *job) override(src *job, set map[string]bool) {
	if set["model"] {
		j.Model = src.Model
		j.Shape = ""
	}
	if set["shape"] {
		j.Shape = src.Shape
		j.Model = ""
	}
	if set["name"] {
		j.Name = src.Name
	}
	if set["unit"] {
		j.Unit = src.Unit
	}
	if set["image"] {
		j.Image = src.Image
	}
	if set["orientation"] {
		j.Orientation = src.Orientation
	}
	if set["format"] {
		j.Formats = src.Formats
	}
	if set["annotate"] {
		j.Annotate = src.Annotate
	}
	if set["width"] {
		j.Width = src.Width
	}
	if set["height"] {
		j.Height = src.Height
	}
	if set["dpr"] {
		j.DPR = src.DPR
	}
}

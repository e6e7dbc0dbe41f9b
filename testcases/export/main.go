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

// Command export renders every test case to PNG and SVG files and writes
// a JSON manifest with the scenario geometry.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"seehuhn.de/go/geom/path"

	"seehuhn.de/go/dieline"
	"seehuhn.de/go/dieline/export"
	"seehuhn.de/go/dieline/shape"
	"seehuhn.de/go/dieline/testcases"
)

func main() {
	outDir := flag.String("o", "testdata/out", "output directory")
	flag.Parse()

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		panic(err)
	}

	var out struct {
		TestCases []jsonTestCase `json:"testcases"`
	}

	rd := dieline.NewRenderer(nil)
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			name := category + "_" + tc.Name
			req := tc.Request()
			jtc, err := writeCase(rd, *outDir, name, req)
			if err != nil {
				panic(fmt.Errorf("%s: %w", name, err))
			}
			out.TestCases = append(out.TestCases, jtc)
		}
	}

	f, err := os.Create(filepath.Join(*outDir, "testcases.json"))
	if err != nil {
		panic(err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		panic(err)
	}
}

func writeCase(rd *dieline.Renderer, dir, name string, req dieline.Request) (jsonTestCase, error) {
	frame, err := shape.Compute(req.Shape, req.Unit, req.Viewport)
	if err != nil {
		return jsonTestCase{}, err
	}

	if err := writeFile(filepath.Join(dir, name+".png"), func(f *os.File) error {
		return export.PNG(f, rd, req)
	}); err != nil {
		return jsonTestCase{}, err
	}
	if err := writeFile(filepath.Join(dir, name+".svg"), func(f *os.File) error {
		return export.SVG(f, rd, req)
	}); err != nil {
		return jsonTestCase{}, err
	}

	size := req.DeviceSize()
	return jsonTestCase{
		Name:        name,
		Kind:        frame.Kind.String(),
		Width:       size.X,
		Height:      size.Y,
		Scale:       frame.Scale,
		StrokeWidth: frame.StrokeWidth(),
		Outline:     pathToJSON(frame.Outline()),
	}, nil
}

func writeFile(fname string, write func(*os.File) error) error {
	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	err = write(f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}

type jsonTestCase struct {
	Name        string        `json:"name"`
	Kind        string        `json:"kind"`
	Width       int           `json:"width"`
	Height      int           `json:"height"`
	Scale       float64       `json:"scale"`
	StrokeWidth float64       `json:"stroke_width"`
	Outline     []jsonSegment `json:"outline"`
}

type jsonSegment struct {
	Cmd string      `json:"cmd"`
	Pts [][]float64 `json:"pts"`
}

func pathToJSON(p *path.Data) []jsonSegment {
	var segs []jsonSegment
	for cmd, pts := range p.Iter() {
		seg := jsonSegment{Pts: make([][]float64, len(pts))}
		switch cmd {
		case path.CmdMoveTo:
			seg.Cmd = "M"
		case path.CmdLineTo:
			seg.Cmd = "L"
		case path.CmdQuadTo:
			seg.Cmd = "Q"
		case path.CmdCubeTo:
			seg.Cmd = "C"
		case path.CmdClose:
			seg.Cmd = "Z"
		}
		for i, pt := range pts {
			seg.Pts[i] = []float64{pt.X, pt.Y}
		}
		segs = append(segs, seg)
	}
	return segs
}

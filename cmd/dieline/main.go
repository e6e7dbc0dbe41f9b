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

// Command dieline renders packaging templates to PNG, SVG and PDF files.
//
// A template is either one of the built-in package models (see -list) or
// a custom shape given with -shape.  Several templates can be described in
// a TOML job file given with -config; flags given on the command line
// override the values of every job in the file.
//
// Usage:
//
//	dieline -model round500 -image label.jpg -format png,svg
//	dieline -shape tub:313.14,244.65,75 -unit mm -annotate -format pdf
//	dieline -config jobs.toml -o out
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"seehuhn.de/go/dieline"
	"seehuhn.de/go/dieline/export"
	"seehuhn.de/go/dieline/shape"
	"seehuhn.de/go/dieline/units"
)

func main() {
	err := run(os.Args[1:], os.Stdout, os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "dieline:", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("dieline", flag.ContinueOnError)
	fs.SetOutput(stderr)

	cmdline := &job{}
	var formats string
	fs.StringVar(&cmdline.Model, "model", "", "package model, see -list")
	fs.StringVar(&cmdline.Shape, "shape", "", "custom shape, e.g. tub:313.14,244.65,75")
	fs.StringVar(&cmdline.Name, "name", "", "label used in output file names")
	fs.StringVar(&cmdline.Unit, "unit", "mm", "unit of custom shape dimensions")
	fs.StringVar(&cmdline.Image, "image", "", "source image (PNG, JPEG, GIF or WebP)")
	fs.StringVar(&cmdline.Orientation, "orientation", orientationBottom, "sweet box side, bottom or top")
	fs.StringVar(&formats, "format", "png", "comma-separated output formats: png, svg, pdf")
	fs.BoolVar(&cmdline.Annotate, "annotate", false, "add dimension lines to PDF output")
	fs.Float64Var(&cmdline.Width, "width", 800, "viewport width in logical pixels")
	fs.Float64Var(&cmdline.Height, "height", 600, "viewport height in logical pixels")
	fs.Float64Var(&cmdline.DPR, "dpr", 1, "device pixel ratio of raster output")
	outDir := fs.String("o", ".", "output directory")
	config := fs.String("config", "", "TOML job file")
	list := fs.Bool("list", false, "list the package models and exit")
	verbose := fs.Bool("v", false, "log every render")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	cmdline.Formats = splitList(formats)

	if *list {
		for _, name := range modelNames() {
			p := presets[name]
			fmt.Fprintf(stdout, "%-14s %-13s %s\n", name, p.Group, p.Label)
		}
		return nil
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	jobs := []job{*cmdline}
	if *config != "" {
		jf, err := readJobFile(*config)
		if err != nil {
			return err
		}
		if jf.Output != "" && !set["o"] {
			*outDir = jf.Output
		}
		jobs = jf.Jobs
		for i := range jobs {
			defaults := *cmdline
			defaults.override(&jobs[i], fileFields(&jobs[i]))
			defaults.override(cmdline, set)
			jobs[i] = defaults
		}
	}
	if len(jobs) == 0 {
		return errors.New("no jobs")
	}

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		return err
	}
	rd := dieline.NewRenderer(logger)
	for i := range jobs {
		if err := execute(rd, logger, &jobs[i], *outDir); err != nil {
			return err
		}
	}
	return nil
}

// fileFields reports which fields of a job read from a file are set.
func fileFields(j *job) map[string]bool {
	return map[string]bool{
		"model":       j.Model != "",
		"shape":       j.Shape != "",
		"name":        j.Name != "",
		"unit":        j.Unit != "",
		"image":       j.Image != "",
		"orientation": j.Orientation != "",
		"format":      len(j.Formats) > 0,
		"annotate":    j.Annotate,
		"width":       j.Width > 0,
		"height":      j.Height > 0,
		"dpr":         j.DPR > 0,
	}
}

// execute renders one job and writes all requested formats to dir.
func execute(rd *dieline.Renderer, logger *slog.Logger, j *job, dir string) error {
	d, group, label, need, err := j.resolve()
	if err != nil {
		return err
	}
	u := units.Millimetre
	if j.Model == "" {
		u, err = units.Parse(j.Unit)
		if err != nil {
			return err
		}
	}

	req := dieline.Request{
		Shape:            d,
		Unit:             u,
		Viewport:         shape.NewViewport(j.Width, j.Height),
		DevicePixelRatio: j.DPR,
		Annotate:         j.Annotate,
	}
	if j.Image != "" {
		img, err := loadImage(j.Image)
		if err != nil {
			return err
		}
		if err := checkSize(img, need); err != nil {
			return fmt.Errorf("%s: %w", j.Image, err)
		}
		req.Image = img
	}

	for _, format := range j.Formats {
		fname := filepath.Join(dir, export.FileName(group, label, format))
		switch format {
		case "png":
			err = writeFile(fname, func(w io.Writer) error { return export.PNG(w, rd, req) })
		case "svg":
			err = writeFile(fname, func(w io.Writer) error { return export.SVG(w, rd, req) })
		case "pdf":
			err = export.PDF(fname, req)
		default:
			err = fmt.Errorf("unknown format %q", format)
		}
		if err != nil {
			return err
		}
		logger.LogAttrs(context.Background(), slog.LevelInfo, "wrote",
			slog.String("file", fname),
			slog.String("shape", d.Kind().String()))
	}
	return nil
}

// resolve returns the shape of the job, the group and label used for the
// file name, and the minimum image size.
func (j *job) resolve() (shape.Descriptor, string, string, image.Point, error) {
	switch {
	case j.Model != "" && j.Shape != "":
		return nil, "", "", image.Point{}, errors.New("both model and shape given")
	case j.Model != "":
		p, ok := presets[j.Model]
		if !ok {
			return nil, "", "", image.Point{}, fmt.Errorf("%w: %q", errUnknownModel, j.Model)
		}
		d, label, need, err := p.resolve(j.Orientation)
		if err != nil {
			return nil, "", "", image.Point{}, err
		}
		if j.Name != "" {
			label = j.Name
		}
		return d, p.Group, label, need, nil
	case j.Shape != "":
		d, kind, err := parseShape(j.Shape)
		if err != nil {
			return nil, "", "", image.Point{}, err
		}
		label := j.Name
		if label == "" {
			label = "custom"
		}
		return d, kind, label, image.Point{}, nil
	default:
		return nil, "", "", image.Point{}, errors.New("no model or shape given")
	}
}

func writeFile(fname string, write func(io.Writer) error) error {
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

func splitList(s string) []string {
	var res []string
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f != "" {
			res = append(res, f)
		}
	}
	return res
}

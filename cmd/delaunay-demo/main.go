// Copyright ©2024 The Delaunay Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The delaunay-demo program triangulates a random or grid point set and
// optionally renders the 2D result to an SVG plot. It exercises the core
// package from outside: point generation, timing and rendering are not
// part of the triangulation engine's contract.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"math/rand"
	"os"
	"time"

	"go.uber.org/zap"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/gonum-community/delaunay/delaunay2d"
	"github.com/gonum-community/delaunay/delaunay3d"
	"github.com/gonum-community/delaunay/spatial/r2"
	"github.com/gonum-community/delaunay/spatial/r3"
)

func main() {
	dim := flag.Int("dim", 2, "dimension of the point set (2 or 3)")
	n := flag.Int("n", 1000, "number of points")
	grid := flag.Bool("grid", false, "lay points on a regular grid instead of sampling uniformly")
	seed := flag.Int64("seed", 1, "random seed")
	reorder := flag.Bool("reorder", true, "sort points along a Hilbert curve before insertion")
	out := flag.String("o", "", "output SVG path (2D only)")
	width := flag.Float64("width", 12, "plot width (cm)")
	height := flag.Float64("height", 12, "plot height (cm)")
	verbose := flag.Bool("v", false, "log diagnostics from the validity audit")
	flag.Parse()

	var logger *zap.SugaredLogger
	if *verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			log.Fatal(err)
		}
		defer l.Sync()
		logger = l.Sugar()
	}

	rng := rand.New(rand.NewSource(*seed))

	switch *dim {
	case 2:
		pts := points2D(rng, *n, *grid)
		d := delaunay2d.New(logger)
		start := time.Now()
		if err := d.InsertVertices(pts, *reorder); err != nil {
			log.Fatalf("delaunay-demo: %v", err)
		}
		elapsed := time.Since(start)
		fmt.Printf("%d points, %d triangles, %s, valid=%v\n",
			len(pts), d.Mesh().NumTriangles(), elapsed, d.Valid())
		if *out != "" {
			if err := renderSVG(d, *out, *width, *height); err != nil {
				log.Fatalf("delaunay-demo: %v", err)
			}
		}
	case 3:
		pts := points3D(rng, *n, *grid)
		d := delaunay3d.New(logger)
		start := time.Now()
		if err := d.InsertVertices(pts, *reorder); err != nil {
			log.Fatalf("delaunay-demo: %v", err)
		}
		elapsed := time.Since(start)
		fmt.Printf("%d points, %d tetrahedra, %s, valid=%v\n",
			len(pts), d.Mesh().NumTetrahedra(), elapsed, d.Valid())
		if *out != "" {
			log.Println("delaunay-demo: SVG rendering is only available for -dim=2")
		}
	default:
		fmt.Fprintln(os.Stderr, "delaunay-demo: -dim must be 2 or 3")
		os.Exit(2)
	}
}

func points2D(rng *rand.Rand, n int, grid bool) []r2.Vec {
	if !grid {
		pts := make([]r2.Vec, n)
		for i := range pts {
			pts[i] = r2.Vec{X: rng.Float64(), Y: rng.Float64()}
		}
		return pts
	}
	side := 1
	for side*side < n {
		side++
	}
	var pts []r2.Vec
	for i := 0; i < side; i++ {
		for j := 0; j < side; j++ {
			pts = append(pts, r2.Vec{X: float64(i), Y: float64(j)})
		}
	}
	return pts
}

func points3D(rng *rand.Rand, n int, grid bool) []r3.Vec {
	if !grid {
		pts := make([]r3.Vec, n)
		for i := range pts {
			pts[i] = r3.Vec{X: rng.Float64(), Y: rng.Float64(), Z: rng.Float64()}
		}
		return pts
	}
	side := 1
	for side*side*side < n {
		side++
	}
	var pts []r3.Vec
	for i := 0; i < side; i++ {
		for j := 0; j < side; j++ {
			for k := 0; k < side; k++ {
				pts = append(pts, r3.Vec{X: float64(i), Y: float64(j), Z: float64(k)})
			}
		}
	}
	return pts
}

func renderSVG(d *delaunay2d.Delaunay2D, out string, width, height float64) error {
	p := plot.New()
	p.Title.Text = "Delaunay triangulation"
	p.Add(plotter.NewGrid())

	edgeColor := color.RGBA{B: 0xff, A: 0xff}
	for i := 0; i < d.Mesh().NumTriangles(); i++ {
		ext, err := d.ExtendedTriangle(i)
		if err != nil {
			return err
		}
		if ext.IsSegment() {
			continue
		}
		pts := ext.Points
		line, err := plotter.NewLine(plotter.XYs{
			{X: pts[0].X, Y: pts[0].Y},
			{X: pts[1].X, Y: pts[1].Y},
			{X: pts[2].X, Y: pts[2].Y},
			{X: pts[0].X, Y: pts[0].Y},
		})
		if err != nil {
			return err
		}
		line.Color = edgeColor
		p.Add(line)
	}

	vertices := make(plotter.XYs, len(d.Vertices()))
	for i, v := range d.Vertices() {
		vertices[i] = plotter.XY{X: v.X, Y: v.Y}
	}
	scatter, err := plotter.NewScatter(vertices)
	if err != nil {
		return err
	}
	scatter.Color = color.RGBA{R: 0xff, A: 0xff}
	scatter.Radius = vg.Points(1)
	p.Add(scatter)

	return p.Save(vg.Length(width)*vg.Centimeter, vg.Length(height)*vg.Centimeter, out)
}

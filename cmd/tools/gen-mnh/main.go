// Command gen-mnh generates synthetic ESRI ASCII height grids for testing
// corridor analyses without real canopy-height rasters.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
)

func main() {
	output := flag.String("o", "sample_mnh.asc", "output path")
	rows := flag.Int("rows", 200, "grid rows")
	cols := flag.Int("cols", 200, "grid columns")
	cell := flag.Float64("cell", 1.0, "cell size in metres")
	llx := flag.Float64("llx", 0, "lower-left x coordinate")
	lly := flag.Float64("lly", 0, "lower-left y coordinate")
	base := flag.Float64("base", 0.5, "base vegetation height in metres")
	clusters := flag.Int("clusters", 12, "number of tall-vegetation clusters")
	maxHeight := flag.Float64("max", 25, "peak cluster height in metres")
	nodata := flag.Float64("nodata", -9999, "no-data marker value")
	gaps := flag.Float64("gaps", 0.01, "fraction of cells written as no-data")
	seed := flag.Int64("seed", 1, "random seed")
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))

	grid := make([][]float64, *rows)
	for r := range grid {
		grid[r] = make([]float64, *cols)
		for c := range grid[r] {
			grid[r][c] = *base + rng.Float64()*0.3
		}
	}

	// Raise pyramid-shaped clusters over the base canopy.
	for i := 0; i < *clusters; i++ {
		cr := rng.Intn(*rows)
		cc := rng.Intn(*cols)
		radius := 3 + rng.Intn(8)
		peak := *maxHeight * (0.4 + 0.6*rng.Float64())
		for r := cr - radius; r <= cr+radius; r++ {
			for c := cc - radius; c <= cc+radius; c++ {
				if r < 0 || r >= *rows || c < 0 || c >= *cols {
					continue
				}
				dr, dc := r-cr, c-cc
				d := abs(dr) + abs(dc)
				if d > radius {
					continue
				}
				h := peak * float64(radius-d) / float64(radius)
				if h > grid[r][c] {
					grid[r][c] = h
				}
			}
		}
	}

	for r := range grid {
		for c := range grid[r] {
			if rng.Float64() < *gaps {
				grid[r][c] = *nodata
			}
		}
	}

	f, err := os.Create(*output)
	if err != nil {
		log.Fatalf("failed to create output: %v", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "ncols %d\n", *cols)
	fmt.Fprintf(w, "nrows %d\n", *rows)
	fmt.Fprintf(w, "xllcorner %g\n", *llx)
	fmt.Fprintf(w, "yllcorner %g\n", *lly)
	fmt.Fprintf(w, "cellsize %g\n", *cell)
	fmt.Fprintf(w, "nodata_value %g\n", *nodata)
	for _, row := range grid {
		for c, v := range row {
			if c > 0 {
				fmt.Fprint(w, " ")
			}
			fmt.Fprintf(w, "%.2f", v)
		}
		fmt.Fprintln(w)
	}
	if err := w.Flush(); err != nil {
		log.Fatalf("failed to write grid: %v", err)
	}

	log.Printf("✓ Created: %s (%dx%d, %d clusters)", *output, *rows, *cols, *clusters)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

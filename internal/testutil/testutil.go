// Package testutil provides shared test utilities and fixtures.
//
// This package centralises common helpers used by the corridor, report and
// storage tests: synthetic routes, ASC grid fixtures on disk and numeric
// assertions.
package testutil

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/convoi-data/corridor.report/internal/geo"
)

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// AssertInDelta checks that got is within delta of want.
func AssertInDelta(t *testing.T, got, want, delta float64) {
	t.Helper()
	if math.IsNaN(got) || math.Abs(got-want) > delta {
		t.Errorf("got %v, want %v (±%v)", got, want, delta)
	}
}

// StraightRoute returns a route along the x axis of the given length.
func StraightRoute(length float64) geo.Polyline {
	return geo.Polyline{{X: 0, Y: 0}, {X: length, Y: 0}}
}

// WriteASCFixture writes a flat ESRI ASCII grid to a temp file and returns
// its path. The grid spans cols x rows cells of 1m with lower-left corner at
// (llx, lly), every cell holding height.
func WriteASCFixture(t *testing.T, rows, cols int, llx, lly, height float64) string {
	t.Helper()
	var b strings.Builder
	fmt.Fprintf(&b, "ncols %d\nnrows %d\nxllcorner %g\nyllcorner %g\ncellsize 1\nNODATA_value -9999\n", cols, rows, llx, lly)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if c > 0 {
				b.WriteByte(' ')
			}
			fmt.Fprintf(&b, "%g", height)
		}
		b.WriteByte('\n')
	}
	path := filepath.Join(t.TempDir(), "heights.asc")
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		t.Fatalf("write ASC fixture: %v", err)
	}
	return path
}

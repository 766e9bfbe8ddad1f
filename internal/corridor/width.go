package corridor

import (
	"math"

	"github.com/convoi-data/corridor.report/internal/vehicle"
)

const (
	// straightRadius is the turning radius (m) beyond which curve sweep is
	// negligible.
	straightRadius = 500.0
	// tightRadius is the turning radius (m) below which the sweep model
	// diverges and is replaced by a hard cap.
	tightRadius = 10.0
	// tightSweepFactor caps the sweep at this fraction of the sweep length
	// in very tight curves.
	tightSweepFactor = 0.5
)

// SweepWidth returns the extra lateral width (m) a rigid convoy of the given
// spec needs at the given turning radius. The mid-range term is the usual
// off-tracking approximation L²/(2R).
func SweepWidth(radius float64, spec vehicle.Spec) float64 {
	switch {
	case math.IsInf(radius, 1) || radius > straightRadius:
		return 0
	case radius < tightRadius:
		return spec.SweepLength * tightSweepFactor
	default:
		return spec.SweepLength * spec.SweepLength / (2 * radius)
	}
}

// HalfWidth returns the dynamic corridor half-width at the given turning
// radius: half the static width plus the curve sweep.
func HalfWidth(radius float64, spec vehicle.Spec) (halfWidth, sweep float64) {
	sweep = SweepWidth(radius, spec)
	return spec.StaticWidth/2 + sweep, sweep
}

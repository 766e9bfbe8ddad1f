package corridor

import (
	"math"

	"github.com/convoi-data/corridor.report/internal/geo"
)

const (
	// curveWindow is the number of stations looked at on each side when
	// estimating the local turning radius.
	curveWindow = 3
	// normEpsilon guards against degenerate (near-coincident) neighbours.
	normEpsilon = 1e-6
	// angleEpsilon is the heading change (rad, ~0.5°) below which the route
	// is treated as straight.
	angleEpsilon = 0.009
)

// CurveRadius estimates the local turning radius at station idx from the
// chord spanning the neighbour window, via the circumscribed-circle
// approximation. Straight or degenerate configurations, and the first and
// last stations, report +Inf.
func CurveRadius(stations []geo.Point, idx int) float64 {
	if idx <= 0 || idx >= len(stations)-1 {
		return math.Inf(1)
	}

	before := clampIndex(idx-curveWindow, len(stations))
	after := clampIndex(idx+curveWindow, len(stations))

	vBefore := stations[idx].Sub(stations[before])
	vAfter := stations[after].Sub(stations[idx])

	nBefore := vBefore.Norm()
	nAfter := vAfter.Norm()
	if nBefore < normEpsilon || nAfter < normEpsilon {
		return math.Inf(1)
	}

	cos := vBefore.Dot(vAfter) / (nBefore * nAfter)
	cos = math.Max(-1, math.Min(1, cos))
	angle := math.Acos(cos)
	if angle < angleEpsilon {
		return math.Inf(1)
	}

	chord := stations[after].Dist(stations[before])
	return math.Abs(chord / (2 * math.Sin(angle/2)))
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n-1 {
		return n - 1
	}
	return i
}

package corridor

import (
	"github.com/convoi-data/corridor.report/internal/geo"
	"github.com/convoi-data/corridor.report/internal/monitoring"
)

const (
	// envelopeMaxDisks caps the number of disks fed to the union so its cost
	// is bounded regardless of station density.
	envelopeMaxDisks = 200
	// diskSegments is the polygonal resolution used for each station disk.
	diskSegments = 32
	// fallbackCapSegments is the cap resolution of the buffered-route
	// fallback envelope.
	fallbackCapSegments = 25
)

// BuildEnvelope unions per-station disks (radius = dynamic half-width) on a
// subsampled set of stations into the corridor envelope ring. When the union
// capability fails, the route buffered by the largest observed half-width is
// returned instead and fallback is set. An empty ring means no envelope could
// be built at all.
func BuildEnvelope(stations []StationResult, unioner geo.Unioner) (ring geo.Ring, fallback bool) {
	if len(stations) == 0 {
		return nil, false
	}
	if unioner == nil {
		unioner = geo.PolyclipUnioner{}
	}

	stride := len(stations) / envelopeMaxDisks
	if stride < 1 {
		stride = 1
	}

	disks := make([]geo.Ring, 0, len(stations)/stride+1)
	for i := 0; i < len(stations); i += stride {
		disks = append(disks, geo.Circle(stations[i].Position, stations[i].HalfWidth, diskSegments))
	}

	ring, err := unioner.Union(disks)
	if err == nil && len(ring) >= 3 {
		return ring, false
	}
	if err != nil {
		monitoring.Logf("envelope disk union failed, using buffered route: %v", err)
	}

	// Union unavailable or numerically failed: buffer the route by the
	// largest half-width seen anywhere along it.
	route := make(geo.Polyline, len(stations))
	maxHalfWidth := 0.0
	for i, st := range stations {
		route[i] = st.Position
		if st.HalfWidth > maxHalfWidth {
			maxHalfWidth = st.HalfWidth
		}
	}
	return geo.BufferPolyline(route, maxHalfWidth, fallbackCapSegments), true
}

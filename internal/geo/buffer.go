package geo

import "math"

// BufferPolyline returns a ring tracing the polyline offset by radius on both
// sides, with semicircular caps at the ends. Joints are not mitred; for the
// densely sampled, gently bending station lines this traces it is a usable
// coarse envelope. Returns nil for degenerate input.
func BufferPolyline(line Polyline, radius float64, capSegments int) Ring {
	if len(line) < 2 || radius <= 0 {
		return nil
	}
	if capSegments < 4 {
		capSegments = 4
	}

	normals := make([]Point, len(line))
	for i := range line {
		var dir Point
		switch {
		case i == 0:
			dir = line[1].Sub(line[0])
		case i == len(line)-1:
			dir = line[i].Sub(line[i-1])
		default:
			dir = line[i+1].Sub(line[i-1])
		}
		normals[i] = dir.Unit().Perp()
	}

	ring := make(Ring, 0, 2*len(line)+2*capSegments)

	// Left side, start to end.
	for i := range line {
		ring = append(ring, line[i].Add(normals[i].Scale(radius)))
	}
	// End cap, sweeping from +normal to -normal around the last point.
	ring = append(ring, arc(line[len(line)-1], normals[len(line)-1], radius, capSegments)...)
	// Right side, end back to start.
	for i := len(line) - 1; i >= 0; i-- {
		ring = append(ring, line[i].Add(normals[i].Scale(-radius)))
	}
	// Start cap.
	ring = append(ring, arc(line[0], normals[0].Scale(-1), radius, capSegments)...)

	return ring
}

// arc returns capSegments-1 intermediate points of a half circle of the given
// radius around center, sweeping clockwise from the +normal direction.
func arc(center, normal Point, radius float64, capSegments int) []Point {
	start := math.Atan2(normal.Y, normal.X)
	pts := make([]Point, 0, capSegments-1)
	for i := 1; i < capSegments; i++ {
		a := start - math.Pi*float64(i)/float64(capSegments)
		pts = append(pts, Point{
			X: center.X + radius*math.Cos(a),
			Y: center.Y + radius*math.Sin(a),
		})
	}
	return pts
}

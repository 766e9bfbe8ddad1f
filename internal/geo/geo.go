// Package geo holds the plain 2D value geometry shared across the corridor
// pipeline: points, polylines and polygon rings in a single projected
// coordinate space (metres). It deliberately has no dependency on any GIS
// framework; adapters convert host geometry into these types at the edges.
package geo

import "math"

// Point is a 2D coordinate in world units (metres).
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns p + q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p - q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Scale returns p scaled by s.
func (p Point) Scale(s float64) Point { return Point{p.X * s, p.Y * s} }

// Dot returns the dot product of p and q treated as vectors.
func (p Point) Dot(q Point) float64 { return p.X*q.X + p.Y*q.Y }

// Norm returns the Euclidean length of p treated as a vector.
func (p Point) Norm() float64 { return math.Hypot(p.X, p.Y) }

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 { return p.Sub(q).Norm() }

// Unit returns p scaled to length 1. The zero vector is returned unchanged.
func (p Point) Unit() Point {
	n := p.Norm()
	if n == 0 {
		return p
	}
	return p.Scale(1 / n)
}

// Perp returns the left-hand perpendicular of p (rotation by +90°).
func (p Point) Perp() Point { return Point{-p.Y, p.X} }

// Polyline is an ordered open sequence of points.
type Polyline []Point

// Length returns the total length of the polyline.
func (l Polyline) Length() float64 {
	var total float64
	for i := 1; i < len(l); i++ {
		total += l[i].Dist(l[i-1])
	}
	return total
}

// Ring is a closed polygon boundary. The closing segment from the last point
// back to the first is implicit.
type Ring []Point

// Area returns the absolute enclosed area of the ring (shoelace formula).
func (r Ring) Area() float64 {
	if len(r) < 3 {
		return 0
	}
	var sum float64
	for i := range r {
		j := (i + 1) % len(r)
		sum += r[i].X*r[j].Y - r[j].X*r[i].Y
	}
	return math.Abs(sum) / 2
}

// Circle approximates a circle of the given radius around center as a ring
// with the given number of segments, wound counter-clockwise.
func Circle(center Point, radius float64, segments int) Ring {
	if segments < 3 {
		segments = 3
	}
	ring := make(Ring, segments)
	for i := 0; i < segments; i++ {
		a := 2 * math.Pi * float64(i) / float64(segments)
		ring[i] = Point{
			X: center.X + radius*math.Cos(a),
			Y: center.Y + radius*math.Sin(a),
		}
	}
	return ring
}

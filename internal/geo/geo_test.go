package geo

import (
	"math"
	"testing"
)

func TestPointOps(t *testing.T) {
	p := Point{3, 4}
	if got := p.Norm(); got != 5 {
		t.Errorf("Norm() = %v, want 5", got)
	}
	if got := p.Unit().Norm(); math.Abs(got-1) > 1e-12 {
		t.Errorf("Unit().Norm() = %v, want 1", got)
	}
	if got := p.Perp().Dot(p); got != 0 {
		t.Errorf("Perp().Dot(p) = %v, want 0", got)
	}
	if got := (Point{}).Unit(); got != (Point{}) {
		t.Errorf("zero vector Unit() = %v, want zero", got)
	}
}

func TestPolylineLength(t *testing.T) {
	testCases := []struct {
		name string
		line Polyline
		want float64
	}{
		{"empty", nil, 0},
		{"single_point", Polyline{{0, 0}}, 0},
		{"straight", Polyline{{0, 0}, {100, 0}}, 100},
		{"l_shape", Polyline{{0, 0}, {3, 0}, {3, 4}}, 7},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.line.Length(); math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("Length() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestRingArea(t *testing.T) {
	square := Ring{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	if got := square.Area(); math.Abs(got-100) > 1e-9 {
		t.Errorf("square Area() = %v, want 100", got)
	}
	// Winding direction must not matter.
	reversed := Ring{{0, 10}, {10, 10}, {10, 0}, {0, 0}}
	if got := reversed.Area(); math.Abs(got-100) > 1e-9 {
		t.Errorf("reversed square Area() = %v, want 100", got)
	}
	if got := (Ring{{0, 0}, {1, 1}}).Area(); got != 0 {
		t.Errorf("degenerate ring Area() = %v, want 0", got)
	}
}

func TestCircle(t *testing.T) {
	c := Circle(Point{5, 5}, 2, 64)
	if len(c) != 64 {
		t.Fatalf("Circle returned %d points, want 64", len(c))
	}
	for _, p := range c {
		if d := p.Dist(Point{5, 5}); math.Abs(d-2) > 1e-9 {
			t.Errorf("circle point at distance %v from center, want 2", d)
		}
	}
	// A 64-gon covers nearly all of the true circle area.
	if got, want := c.Area(), math.Pi*4; got > want || got < 0.99*want {
		t.Errorf("circle Area() = %v, want slightly under %v", got, want)
	}
}

func TestBufferPolyline(t *testing.T) {
	line := Polyline{{0, 0}, {100, 0}}
	ring := BufferPolyline(line, 2.5, 16)
	if ring == nil {
		t.Fatal("BufferPolyline returned nil for valid input")
	}
	// Expect roughly a 100x5 ribbon plus two half-disc caps.
	want := 100*5 + math.Pi*2.5*2.5
	if got := ring.Area(); math.Abs(got-want) > 0.05*want {
		t.Errorf("buffer Area() = %v, want about %v", got, want)
	}

	if got := BufferPolyline(Polyline{{0, 0}}, 2.5, 16); got != nil {
		t.Errorf("single-point buffer = %v, want nil", got)
	}
	if got := BufferPolyline(line, 0, 16); got != nil {
		t.Errorf("zero-radius buffer = %v, want nil", got)
	}
}

func TestPolyclipUnionerOverlappingDiscs(t *testing.T) {
	u := PolyclipUnioner{}
	rings := []Ring{
		Circle(Point{0, 0}, 5, 32),
		Circle(Point{4, 0}, 5, 32),
	}
	merged, err := u.Union(rings)
	if err != nil {
		t.Fatalf("Union failed: %v", err)
	}
	one := rings[0].Area()
	if got := merged.Area(); got <= one || got >= 2*one {
		t.Errorf("union Area() = %v, want between %v and %v", got, one, 2*one)
	}
}

func TestPolyclipUnionerDisjointKeepsLargest(t *testing.T) {
	u := PolyclipUnioner{}
	merged, err := u.Union([]Ring{
		Circle(Point{0, 0}, 1, 32),
		Circle(Point{100, 0}, 10, 32),
	})
	if err != nil {
		t.Fatalf("Union failed: %v", err)
	}
	// Only the larger disc should survive.
	if got, want := merged.Area(), Circle(Point{}, 10, 32).Area(); math.Abs(got-want) > 0.01*want {
		t.Errorf("union Area() = %v, want %v", got, want)
	}
}

func TestPolyclipUnionerEmpty(t *testing.T) {
	if _, err := (PolyclipUnioner{}).Union(nil); err == nil {
		t.Error("expected error for empty input")
	}
}

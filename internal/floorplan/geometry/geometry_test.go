package geometry

import (
	"math"
	"testing"

	"floorplan/internal/floorplan/models"
)

func TestRoundHalf(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{9.84252, 10},
		{13.12336, 13},
		{9.7, 9.5},
		{4.24, 4},
		{4.25, 4.5},
		{0, 0},
	}
	for _, tt := range tests {
		if got := RoundHalf(tt.in); got != tt.want {
			t.Errorf("RoundHalf(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFeet(t *testing.T) {
	if got := Feet(1); got != 3.28084 {
		t.Errorf("Feet(1) = %v", got)
	}
	if got := Feet(3); math.Abs(got-9.84252) > 1e-9 {
		t.Errorf("Feet(3) = %v", got)
	}
}

func TestPlanBound(t *testing.T) {
	p := models.NewProject("Plan")
	if _, ok := PlanBound(p); ok {
		t.Fatal("empty plan reported bounds")
	}
	p.AddRoom(models.Room{X: 2, Z: 1, Width: 10, Length: 5})
	p.AddRoom(models.Room{X: 14, Z: 0, Width: 4, Length: 12})

	b, ok := PlanBound(p)
	if !ok {
		t.Fatal("expected bounds")
	}
	if b.Left() != 2 || b.Right() != 18 || b.Bottom() != 0 || b.Top() != 12 {
		t.Errorf("unexpected bound: %+v", b)
	}
}

func TestOpeningSegment(t *testing.T) {
	rooms := []models.Room{
		{X: 0, Z: 0, Width: 18, Length: 24},
		{X: 18, Z: 0, Width: 14, Length: 12},
	}

	tests := []struct {
		name string
		x, z float64
		want Segment
	}{
		{"on shared vertical wall", 18, 6, Segment{X1: 18, Z1: 4.5, X2: 18, Z2: 7.5}},
		{"on horizontal wall", 22, 12, Segment{X1: 20.5, Z1: 12, X2: 23.5, Z2: 12}},
		{"near west wall", 0.2, 10, Segment{X1: 0.2, Z1: 8.5, X2: 0.2, Z2: 11.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OpeningSegment(tt.x, tt.z, 3, rooms); got != tt.want {
				t.Errorf("OpeningSegment() = %+v, want %+v", got, tt.want)
			}
		})
	}

	if got := OpeningSegment(5, 5, 2, nil); got != (Segment{X1: 5, Z1: 4, X2: 5, Z2: 6}) {
		t.Errorf("no rooms: %+v", got)
	}
}

package capture

import (
	"errors"
	"math"
	"testing"

	"floorplan/internal/floorplan/models"
)

func translation(x, y, z float64) [16]float64 {
	return [16]float64{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		x, y, z, 1,
	}
}

func wall(x, y, z, dx, dy, dz float64) Surface {
	return Surface{Transform: translation(x, y, z), Dimensions: [3]float64{dx, dy, dz}}
}

// box returns four walls enclosing a w x l meter rectangle with the given height.
func box(w, l, h float64) []Surface {
	return []Surface{
		wall(w/2, h/2, 0, w, h, 0),
		wall(w/2, h/2, l, w, h, 0),
		wall(0, h/2, l/2, 0, h, l),
		wall(w, h/2, l/2, 0, h, l),
	}
}

func TestConvert_Room(t *testing.T) {
	tests := []struct {
		name       string
		walls      []Surface
		wantWidth  float64
		wantLength float64
		wantHeight float64
	}{
		{"no walls falls back to default", nil, 12, 12, 9},
		{"3m x 4m box", box(3, 4, 2.5), 10, 13, 8},
		{"tall walls clamp to 20ft", box(3, 4, 25), 10, 13, 20},
		{"low walls clamp to 8ft", box(3, 4, 1), 10, 13, 8},
		{"tiny room floors at 4ft", box(0.5, 0.3, 2.7), 4, 4, 9},
		{"single wall", []Surface{wall(1, 1.2, 1, 2, 2.4, 0.1)}, 6.5, 4, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Convert(Snapshot{Walls: tt.walls}, "Scan")
			r := res.Room
			if r.Width != tt.wantWidth || r.Length != tt.wantLength || r.Height != tt.wantHeight {
				t.Errorf("got %vx%vx%v, want %vx%vx%v", r.Width, r.Length, r.Height, tt.wantWidth, tt.wantLength, tt.wantHeight)
			}
			if r.X != 0 || r.Z != 0 {
				t.Errorf("room placed at (%v, %v), want origin", r.X, r.Z)
			}
			if r.Name != "Scan" {
				t.Errorf("Name = %q", r.Name)
			}
		})
	}
}

func TestConvert_UsesFactor(t *testing.T) {
	res := Convert(Snapshot{Walls: box(3, 4, 2.5)}, "Scan")
	// 3 m = 9.84252 ft and 4 m = 13.12336 ft before rounding.
	if math.Abs(res.Room.Width-3*3.28084) > 0.25 || math.Abs(res.Room.Length-4*3.28084) > 0.25 {
		t.Errorf("rounded dimensions drifted from the factor: %+v", res.Room)
	}
}

func TestConvert_Origin(t *testing.T) {
	walls := []Surface{
		wall(2, 1, 1, 2, 2, 0),
		wall(1, 1, 2, 0, 2, 2),
	}
	res := Convert(Snapshot{Walls: walls}, "Scan")
	if math.Abs(res.Origin[0]-1*3.28084) > 1e-9 || math.Abs(res.Origin[1]-1*3.28084) > 1e-9 {
		t.Errorf("Origin = %v", res.Origin)
	}
}

func TestConvert_Openings(t *testing.T) {
	snap := Snapshot{
		Walls: box(3, 4, 2.5),
		Doors: []Surface{
			wall(1, 1.0, 0, 0.9, 2.0, 0.05),
		},
		Windows: []Surface{
			wall(3, 1.5, 2, 1.2, 1.0, 0.05),
		},
	}

	res := Convert(snap, "Scan")
	if len(res.Doors) != 1 || len(res.Windows) != 1 {
		t.Fatalf("got %d doors, %d windows", len(res.Doors), len(res.Windows))
	}

	d := res.Doors[0]
	if d.IsExterior {
		t.Error("captured doors default to interior")
	}
	if math.Abs(d.X-3.28084) > 1e-9 || d.Z != 0 || math.Abs(d.Width-0.9*3.28084) > 1e-9 {
		t.Errorf("unexpected door: %+v", d)
	}

	w := res.Windows[0]
	if math.Abs(w.FromFloor-1.0*3.28084) > 1e-9 {
		t.Errorf("FromFloor = %v, want %v", w.FromFloor, 3.28084)
	}
	if math.Abs(w.Height-3.28084) > 1e-9 || math.Abs(w.Width-1.2*3.28084) > 1e-9 {
		t.Errorf("unexpected window: %+v", w)
	}
}

func TestNextPlacement(t *testing.T) {
	if x, z := NextPlacement(nil); x != 0 || z != 0 {
		t.Errorf("empty plan: (%v, %v)", x, z)
	}

	rooms := []models.Room{
		{X: 0, Width: 12},
		{X: 14, Width: 14},
		{X: 3, Width: 5},
	}
	if x, z := NextPlacement(rooms); x != 30 || z != 0 {
		t.Errorf("NextPlacement() = (%v, %v), want (30, 0)", x, z)
	}
}

func TestCheckSupported(t *testing.T) {
	if err := CheckSupported(StaticDevice(true)); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := CheckSupported(StaticDevice(false)); !errors.Is(err, ErrUnsupported) {
		t.Errorf("got %v, want ErrUnsupported", err)
	}
	if err := CheckSupported(nil); !errors.Is(err, ErrUnsupported) {
		t.Errorf("nil device: got %v", err)
	}
}

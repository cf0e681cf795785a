package capture

import (
	"errors"

	"floorplan/internal/floorplan/geometry"
	"floorplan/internal/floorplan/models"

	"github.com/paulmach/orb"
)

// ============================================================
// Captured room snapshot
// ============================================================

// Surface is one detected wall, door or window. Transform is a 4x4
// column-major matrix; Dimensions are (x, y, z) extents. Both in meters.
type Surface struct {
	Transform  [16]float64 `json:"transform"`
	Dimensions [3]float64  `json:"dimensions"`
}

// Position returns the translation column of the transform.
func (s Surface) Position() (x, y, z float64) {
	return s.Transform[12], s.Transform[13], s.Transform[14]
}

// Snapshot is the result of a finished capture session.
type Snapshot struct {
	Walls   []Surface `json:"walls"`
	Doors   []Surface `json:"doors"`
	Windows []Surface `json:"windows"`
}

// ErrUnsupported is returned when the capture device cannot scan.
var ErrUnsupported = errors.New("room capture is not supported on this device")

// Device reports whether the environment can produce a snapshot.
type Device interface {
	Supported() bool
}

// StaticDevice is a Device with a fixed answer, typically from config.
type StaticDevice bool

func (d StaticDevice) Supported() bool {
	return bool(d)
}

// CheckSupported must pass before any capture UI is shown.
func CheckSupported(d Device) error {
	if d == nil || !d.Supported() {
		return ErrUnsupported
	}
	return nil
}

// ============================================================
// Conversion
// ============================================================

const (
	DefaultWidth  = 12.0
	DefaultLength = 12.0
	DefaultHeight = 9.0

	MinSide   = 4.0
	MinHeight = 8.0
	MaxHeight = 20.0
)

// Result is one converted room with its openings, all in feet.
// Origin is the plan point (in feet) the room's top-left corner came from,
// so callers can move the openings together with the room.
type Result struct {
	Room    models.Room
	Doors   []models.Door
	Windows []models.Window
	Origin  orb.Point
}

// Convert turns a snapshot into a room at (0, 0) plus doors and windows.
// It never fails: without walls it falls back to a 12x12x9 room.
// The room id is left empty for the caller to assign.
func Convert(snap Snapshot, name string) Result {
	res := Result{
		Room:    convertRoom(snap.Walls, name),
		Doors:   make([]models.Door, 0, len(snap.Doors)),
		Windows: make([]models.Window, 0, len(snap.Windows)),
	}
	if b, ok := wallBound(snap.Walls); ok {
		res.Origin = orb.Point{geometry.Feet(b.Left()), geometry.Feet(b.Bottom())}
	}

	for _, d := range snap.Doors {
		x, _, z := d.Position()
		res.Doors = append(res.Doors, models.Door{
			X:             geometry.Feet(x),
			Z:             geometry.Feet(z),
			Width:         geometry.Feet(d.Dimensions[0]),
			IsExterior:    false,
			ConnectsRooms: []string{},
		})
	}

	for _, w := range snap.Windows {
		x, y, z := w.Position()
		res.Windows = append(res.Windows, models.Window{
			X:         geometry.Feet(x),
			Z:         geometry.Feet(z),
			Width:     geometry.Feet(w.Dimensions[0]),
			Height:    geometry.Feet(w.Dimensions[1]),
			FromFloor: geometry.Feet(y - w.Dimensions[1]/2),
		})
	}

	return res
}

func convertRoom(walls []Surface, name string) models.Room {
	b, ok := wallBound(walls)
	if !ok {
		return models.Room{
			Name:   name,
			Width:  DefaultWidth,
			Length: DefaultLength,
			Height: DefaultHeight,
		}
	}

	var maxHeight float64
	for _, w := range walls {
		if w.Dimensions[1] > maxHeight {
			maxHeight = w.Dimensions[1]
		}
	}

	width := geometry.Feet(b.Right() - b.Left())
	length := geometry.Feet(b.Top() - b.Bottom())
	height := geometry.Feet(maxHeight)

	return models.Room{
		Name:   name,
		Width:  max(MinSide, geometry.RoundHalf(width)),
		Length: max(MinSide, geometry.RoundHalf(length)),
		Height: geometry.Clamp(geometry.RoundHalf(height), MinHeight, MaxHeight),
	}
}

// wallBound accumulates position ± dimension/2 over x and z for every wall.
func wallBound(walls []Surface) (orb.Bound, bool) {
	if len(walls) == 0 {
		return orb.Bound{}, false
	}
	b := surfaceBound(walls[0])
	for _, w := range walls[1:] {
		b = b.Union(surfaceBound(w))
	}
	return b, true
}

func surfaceBound(s Surface) orb.Bound {
	x, _, z := s.Position()
	hx, hz := s.Dimensions[0]/2, s.Dimensions[2]/2
	return orb.Bound{
		Min: orb.Point{x - hx, z - hz},
		Max: orb.Point{x + hx, z + hz},
	}
}

// ============================================================
// Placement
// ============================================================

// PlacementGap separates a newly placed room from the rest of the plan.
const PlacementGap = 2.0

// NextPlacement returns where a new room goes: to the right of every
// existing room with a 2 ft gap, or at the origin for an empty plan.
func NextPlacement(rooms []models.Room) (x, z float64) {
	if len(rooms) == 0 {
		return 0, 0
	}
	right := rooms[0].X + rooms[0].Width
	for _, r := range rooms[1:] {
		right = max(right, r.X+r.Width)
	}
	return right + PlacementGap, 0
}

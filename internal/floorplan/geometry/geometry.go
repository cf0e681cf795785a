package geometry

import (
	"math"

	"floorplan/internal/floorplan/models"

	"github.com/paulmach/orb"
)

// ============================================================
// Units & rounding
// ============================================================

// MetersToFeet converts capture measurements into plan units.
const MetersToFeet = 3.28084

func Feet(meters float64) float64 {
	return meters * MetersToFeet
}

// RoundHalf rounds v to the nearest 0.5.
func RoundHalf(v float64) float64 {
	return math.Round(v*2) / 2
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ============================================================
// Bounds
// ============================================================

// RoomBound returns the plan rectangle covered by r.
func RoomBound(r models.Room) orb.Bound {
	return orb.Bound{
		Min: orb.Point{r.X, r.Z},
		Max: orb.Point{r.X + r.Width, r.Z + r.Length},
	}
}

// PlanBound returns the union of all room rectangles. ok is false for a
// project without rooms.
func PlanBound(p *models.Project) (orb.Bound, bool) {
	if len(p.Rooms) == 0 {
		return orb.Bound{}, false
	}
	b := RoomBound(p.Rooms[0])
	for _, r := range p.Rooms[1:] {
		b = b.Union(RoomBound(r))
	}
	return b, true
}

// ============================================================
// Openings
// ============================================================

// Segment is a straight plan segment in feet.
type Segment struct {
	X1, Z1 float64
	X2, Z2 float64
}

// OpeningSegment places an opening of the given width centered at (x, z)
// along the nearest room edge. Without rooms the opening runs along z.
func OpeningSegment(x, z, width float64, rooms []models.Room) Segment {
	half := width / 2
	vertical := Segment{X1: x, Z1: z - half, X2: x, Z2: z + half}
	horizontal := Segment{X1: x - half, Z1: z, X2: x + half, Z2: z}

	best := math.MaxFloat64
	out := vertical
	for _, r := range rooms {
		b := RoomBound(r)
		for _, edgeX := range []float64{b.Left(), b.Right()} {
			if d := edgeDistance(x, edgeX, z, b.Bottom(), b.Top()); d < best {
				best, out = d, vertical
			}
		}
		for _, edgeZ := range []float64{b.Bottom(), b.Top()} {
			if d := edgeDistance(z, edgeZ, x, b.Left(), b.Right()); d < best {
				best, out = d, horizontal
			}
		}
	}
	return out
}

// edgeDistance measures from a point to an axis-aligned edge: across is the
// coordinate perpendicular to the edge, along is clamped onto [lo, hi].
func edgeDistance(across, edge, along, lo, hi float64) float64 {
	da := across - edge
	db := along - Clamp(along, lo, hi)
	return math.Hypot(da, db)
}

package export

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"floorplan/internal/floorplan/geometry"
	"floorplan/internal/floorplan/models"
)

// Stroke colors shared by every drawn format.
var (
	doorColor   = color.RGBA{R: 0xd6, G: 0x27, B: 0x28, A: 0xff}
	windowColor = color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}
	dimColor    = color.RGBA{R: 0xff, G: 0x00, B: 0x00, A: 0xff}
	inkColor    = color.RGBA{A: 0xff}
	grayColor   = color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
	darkColor   = color.RGBA{R: 0x55, G: 0x55, B: 0x55, A: 0xff}
)

// Fallback extents for a plan without rooms.
const (
	emptyPlanWidth  = 50.0
	emptyPlanLength = 40.0
)

// planExtent is the far corner used to scale a drawing.
func planExtent(p *models.Project) (float64, float64) {
	b, ok := geometry.PlanBound(p)
	maxX, maxZ := b.Max[0], b.Max[1]
	if !ok || maxX <= 0 {
		maxX = emptyPlanWidth
	}
	if !ok || maxZ <= 0 {
		maxZ = emptyPlanLength
	}
	return maxX, maxZ
}

// dimensionsLabel formats whole feet, e.g. "12' × 10'".
func dimensionsLabel(r models.Room) string {
	return fmt.Sprintf("%d' × %d'", int(r.Width), int(r.Length))
}

func areaLabel(r models.Room) string {
	return fmt.Sprintf("%d sq ft", int(r.Area()))
}

func totalAreaLabel(p *models.Project) string {
	return fmt.Sprintf("Total Area: %d sq ft", int(p.TotalArea()))
}

// parseHexColor accepts "#rrggbb" or "rrggbb".
func parseHexColor(s string) (color.RGBA, bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return color.RGBA{}, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, false
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, true
}

// singleLine keeps entity names from breaking line-oriented formats.
func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func formatFloat(val float64) string {
	return strconv.FormatFloat(val, 'f', -1, 64)
}

package export

import (
	"strconv"
	"strings"

	"floorplan/internal/floorplan/geometry"
	"floorplan/internal/floorplan/models"
)

// ============================================================
// DXF (R2000 entity subset)
// ============================================================

// Layer names in table order. The table index + 1 is the layer color.
var dxfLayers = []string{"WALLS", "DOORS", "WINDOWS", "DIMENSIONS", "TEXT"}

const (
	dxfNameHeight      = 1.0
	dxfDimensionHeight = 0.7
	// Dimension text sits this far below the room name.
	dxfDimensionOffset = 2.0
)

type dxfWriter struct {
	sb strings.Builder
}

// pair writes one group code and its value, each on its own line.
func (w *dxfWriter) pair(code, value string) {
	w.sb.WriteString(code)
	w.sb.WriteByte('\n')
	w.sb.WriteString(value)
	w.sb.WriteByte('\n')
}

func (w *dxfWriter) num(code string, v float64) {
	w.pair(code, formatFloat(v))
}

func (w *dxfWriter) line(layer string, x1, y1, x2, y2 float64) {
	w.pair("0", "LINE")
	w.pair("8", layer)
	w.num("10", x1)
	w.num("20", y1)
	w.pair("30", "0")
	w.num("11", x2)
	w.num("21", y2)
	w.pair("31", "0")
}

// text writes a TEXT entity centered on (x, y).
func (w *dxfWriter) text(layer string, x, y, height float64, s string) {
	w.pair("0", "TEXT")
	w.pair("8", layer)
	w.num("10", x)
	w.num("20", y)
	w.pair("30", "0")
	w.num("40", height)
	w.pair("1", singleLine(s))
	w.pair("72", "1")
	w.pair("73", "2")
	w.num("11", x)
	w.num("21", y)
	w.pair("31", "0")
}

// EncodeDXF emits a minimal DXF drawing in feet: four WALLS lines and a
// centered name per room, plus door and window segments.
func EncodeDXF(p models.Project, opts Options) ([]byte, error) {
	var w dxfWriter

	w.pair("0", "SECTION")
	w.pair("2", "HEADER")
	w.pair("9", "$ACADVER")
	w.pair("1", "AC1015")
	w.pair("9", "$INSUNITS")
	w.pair("70", "2")
	w.pair("0", "ENDSEC")

	w.pair("0", "SECTION")
	w.pair("2", "TABLES")
	w.pair("0", "TABLE")
	w.pair("2", "LAYER")
	for i, layer := range dxfLayers {
		w.pair("0", "LAYER")
		w.pair("2", layer)
		w.pair("70", "0")
		w.pair("62", strconv.Itoa(i+1))
		w.pair("6", "CONTINUOUS")
	}
	w.pair("0", "ENDTAB")
	w.pair("0", "ENDSEC")

	w.pair("0", "SECTION")
	w.pair("2", "ENTITIES")

	for _, r := range p.Rooms {
		x1, y1 := r.X, r.Z
		x2, y2 := r.X+r.Width, r.Z+r.Length

		w.line("WALLS", x1, y1, x2, y1)
		w.line("WALLS", x2, y1, x2, y2)
		w.line("WALLS", x2, y2, x1, y2)
		w.line("WALLS", x1, y2, x1, y1)

		cx, cy := r.Center()
		w.text("TEXT", cx, cy, dxfNameHeight, r.Name)
		if opts.DXFDimensions {
			w.text("DIMENSIONS", cx, cy-dxfDimensionOffset, dxfDimensionHeight,
				formatFloat(r.Width)+"' x "+formatFloat(r.Length)+"'")
		}
	}

	for _, d := range p.Doors {
		s := geometry.OpeningSegment(d.X, d.Z, d.Width, p.Rooms)
		w.line("DOORS", s.X1, s.Z1, s.X2, s.Z2)
	}
	for _, win := range p.Windows {
		s := geometry.OpeningSegment(win.X, win.Z, win.Width, p.Rooms)
		w.line("WINDOWS", s.X1, s.Z1, s.X2, s.Z2)
	}

	w.pair("0", "ENDSEC")
	w.pair("0", "EOF")

	return []byte(w.sb.String()), nil
}

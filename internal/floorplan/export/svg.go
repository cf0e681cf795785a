package export

import (
	"fmt"
	"html"
	"strings"

	"floorplan/internal/floorplan/geometry"
	"floorplan/internal/floorplan/models"
)

// ============================================================
// SVG
// ============================================================

// SVG user units per plan foot.
const svgUnitsPerFoot = 10.0

type svgRenderer struct {
	p models.Project
}

// EncodeSVG draws the plan as a standalone SVG document.
func EncodeSVG(p models.Project) ([]byte, error) {
	r := svgRenderer{p: p}
	maxX, maxZ := planExtent(&p)
	width := maxX * svgUnitsPerFoot
	height := maxZ * svgUnitsPerFoot

	var elements []string
	elements = append(elements, r.renderRooms()...)
	elements = append(elements, r.renderOpenings()...)
	elements = append(elements, r.renderLabels()...)

	var builder strings.Builder
	builder.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	builder.WriteString(fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s">`,
		formatFloat(width), formatFloat(height), formatFloat(width), formatFloat(height)))
	builder.WriteString("\n")

	for _, elem := range elements {
		builder.WriteString("  ")
		builder.WriteString(elem)
		builder.WriteString("\n")
	}

	builder.WriteString(`</svg>`)
	builder.WriteString("\n")
	return []byte(builder.String()), nil
}

func (r svgRenderer) renderRooms() []string {
	var out []string

	for _, room := range r.p.Rooms {
		fill := "none"
		if c, ok := parseHexColor(room.Color); ok {
			fill = fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
		}
		out = append(out, fmt.Sprintf(`<rect id="%s" x="%s" y="%s" width="%s" height="%s" fill="%s" stroke="#000" />`,
			html.EscapeString(room.ID),
			formatFloat(room.X*svgUnitsPerFoot), formatFloat(room.Z*svgUnitsPerFoot),
			formatFloat(room.Width*svgUnitsPerFoot), formatFloat(room.Length*svgUnitsPerFoot), fill))
	}

	return out
}

func (r svgRenderer) renderOpenings() []string {
	var out []string

	for _, d := range r.p.Doors {
		s := geometry.OpeningSegment(d.X, d.Z, d.Width, r.p.Rooms)
		out = append(out, svgLine(d.ID, s, "#d62728"))
	}
	for _, w := range r.p.Windows {
		s := geometry.OpeningSegment(w.X, w.Z, w.Width, r.p.Rooms)
		out = append(out, svgLine(w.ID, s, "#1f77b4"))
	}

	return out
}

func (r svgRenderer) renderLabels() []string {
	var out []string

	for _, room := range r.p.Rooms {
		cx, cz := room.Center()
		out = append(out, fmt.Sprintf(`<text x="%s" y="%s" text-anchor="middle" font-family="sans-serif" font-size="12" font-weight="bold">%s</text>`,
			formatFloat(cx*svgUnitsPerFoot), formatFloat(cz*svgUnitsPerFoot), html.EscapeString(room.Name)))
		out = append(out, fmt.Sprintf(`<text x="%s" y="%s" text-anchor="middle" font-family="sans-serif" font-size="9" fill="#555">%s</text>`,
			formatFloat(cx*svgUnitsPerFoot), formatFloat(cz*svgUnitsPerFoot+12), html.EscapeString(areaLabel(room))))
	}

	return out
}

func svgLine(id string, s geometry.Segment, stroke string) string {
	return fmt.Sprintf(`<line id="%s" x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="3" />`,
		html.EscapeString(id),
		formatFloat(s.X1*svgUnitsPerFoot), formatFloat(s.Z1*svgUnitsPerFoot),
		formatFloat(s.X2*svgUnitsPerFoot), formatFloat(s.Z2*svgUnitsPerFoot), stroke)
}

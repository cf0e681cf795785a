package export

import (
	"fmt"
	"image/color"
	"time"

	"floorplan/internal/floorplan/geometry"
	"floorplan/internal/floorplan/models"
)

// ============================================================
// Vector page layout
// ============================================================

// Landscape letter in points (1/72 inch).
const (
	PageWidth   = 792.0
	PageHeight  = 612.0
	PageMargin  = 36.0
	pointsPerIn = 72.0

	// Vertical room for the title block and the footer.
	pageChrome = 100.0
	// Fraction of the drawable area the plan may fill.
	pageFill = 0.85
)

type ShapeKind int

const (
	ShapeRect ShapeKind = iota
	ShapeLine
	ShapeText
)

type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Shape is one drawing command. Rects use X, Y, W, H; lines run from
// (X, Y) to (X2, Y2); text is anchored at (X, Y) on its baseline.
type Shape struct {
	Kind      ShapeKind
	X, Y      float64
	W, H      float64
	X2, Y2    float64
	LineWidth float64
	Color     color.RGBA
	Text      string
	FontSize  float64
	Bold      bool
	Align     Align
}

// Page is a laid out plan ready for a vector backend.
type Page struct {
	Width, Height float64
	// Scale is points per foot.
	Scale   float64
	OffsetX float64
	OffsetY float64
	Shapes  []Shape
}

// FeetPerInch is the value printed in the scale note.
func (pg Page) FeetPerInch() float64 {
	return pointsPerIn / pg.Scale
}

// LayoutPage fits the whole plan on one landscape page.
func LayoutPage(p models.Project, generatedAt time.Time) Page {
	maxX, maxZ := planExtent(&p)
	drawW := PageWidth - PageMargin*2
	drawH := PageHeight - PageMargin*2 - pageChrome

	pg := Page{
		Width:   PageWidth,
		Height:  PageHeight,
		Scale:   min(drawW/maxX, drawH/maxZ) * pageFill,
		OffsetX: PageMargin + 20,
		OffsetY: PageMargin + 80,
	}

	pg.text(p.Name, PageWidth/2, PageMargin+20, 24, true, AlignCenter, inkColor)
	pg.text("Generated: "+generatedAt.Format("Jan 2, 2006"), PageWidth/2, PageMargin+40, 10, false, AlignCenter, grayColor)

	for _, r := range p.Rooms {
		x := pg.OffsetX + r.X*pg.Scale
		y := pg.OffsetY + r.Z*pg.Scale
		w := r.Width * pg.Scale
		h := r.Length * pg.Scale

		pg.Shapes = append(pg.Shapes, Shape{Kind: ShapeRect, X: x, Y: y, W: w, H: h, LineWidth: 1.5, Color: inkColor})

		cx, cy := x+w/2, y+h/2
		pg.text(r.Name, cx, cy-4, 10, true, AlignCenter, inkColor)
		pg.text(dimensionsLabel(r), cx, cy+8, 8, false, AlignCenter, darkColor)
		pg.text(areaLabel(r), cx, cy+18, 8, false, AlignCenter, darkColor)
	}

	for _, d := range p.Doors {
		pg.opening(geometry.OpeningSegment(d.X, d.Z, d.Width, p.Rooms), 3, doorColor)
		if d.IsExterior && d.Label != "" {
			pg.text(d.Label, pg.OffsetX+d.X*pg.Scale+6, pg.OffsetY+d.Z*pg.Scale+3, 7, false, AlignLeft, doorColor)
		}
	}
	for _, w := range p.Windows {
		pg.opening(geometry.OpeningSegment(w.X, w.Z, w.Width, p.Rooms), 3, windowColor)
	}

	if len(p.Rooms) > 0 {
		pg.overallDimensions(maxX, maxZ)
	}

	footerY := PageHeight - PageMargin - 8
	pg.text(totalAreaLabel(&p), PageMargin, footerY, 12, false, AlignLeft, inkColor)
	pg.text(fmt.Sprintf(`Scale: 1" = %.1f ft`, pg.FeetPerInch()), PageWidth-PageMargin, footerY, 10, false, AlignRight, grayColor)

	return pg
}

// overallDimensions draws the red extent lines below and right of the plan.
func (pg *Page) overallDimensions(maxX, maxZ float64) {
	totalW := maxX * pg.Scale
	totalH := maxZ * pg.Scale

	dimY := pg.OffsetY + totalH + 14
	pg.line(pg.OffsetX, dimY, pg.OffsetX+totalW, dimY, 0.75, dimColor)
	pg.line(pg.OffsetX, dimY-5, pg.OffsetX, dimY+5, 0.75, dimColor)
	pg.line(pg.OffsetX+totalW, dimY-5, pg.OffsetX+totalW, dimY+5, 0.75, dimColor)
	pg.text(feetInches(maxX), pg.OffsetX+totalW/2, dimY+12, 8, false, AlignCenter, dimColor)

	dimX := pg.OffsetX + totalW + 14
	pg.line(dimX, pg.OffsetY, dimX, pg.OffsetY+totalH, 0.75, dimColor)
	pg.line(dimX-5, pg.OffsetY, dimX+5, pg.OffsetY, 0.75, dimColor)
	pg.line(dimX-5, pg.OffsetY+totalH, dimX+5, pg.OffsetY+totalH, 0.75, dimColor)
	pg.text(feetInches(maxZ), dimX+8, pg.OffsetY+totalH/2, 8, false, AlignLeft, dimColor)
}

func (pg *Page) opening(s geometry.Segment, width float64, c color.RGBA) {
	pg.line(
		pg.OffsetX+s.X1*pg.Scale, pg.OffsetY+s.Z1*pg.Scale,
		pg.OffsetX+s.X2*pg.Scale, pg.OffsetY+s.Z2*pg.Scale,
		width, c,
	)
}

func (pg *Page) line(x1, y1, x2, y2, width float64, c color.RGBA) {
	pg.Shapes = append(pg.Shapes, Shape{Kind: ShapeLine, X: x1, Y: y1, X2: x2, Y2: y2, LineWidth: width, Color: c})
}

func (pg *Page) text(s string, x, y, size float64, bold bool, align Align, c color.RGBA) {
	pg.Shapes = append(pg.Shapes, Shape{Kind: ShapeText, X: x, Y: y, Text: s, FontSize: size, Bold: bold, Align: align, Color: c})
}

// feetInches renders a length like 46' 6".
func feetInches(feet float64) string {
	whole := int(feet)
	inches := int((feet - float64(whole)) * 12)
	return fmt.Sprintf(`%d' %d"`, whole, inches)
}

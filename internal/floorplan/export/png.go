package export

import (
	"bytes"
	"fmt"
	"math"
	"sync"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"floorplan/internal/floorplan/geometry"
	"floorplan/internal/floorplan/models"
)

// ============================================================
// Raster (PNG)
// ============================================================

const (
	pixelsPerFootBase = 15.0
	paddingBase       = 60.0
	nameFontBase      = 14.0
	detailFontRatio   = 0.8

	// MaxRasterSide bounds each side of the PNG canvas.
	MaxRasterSide = 16384
)

var (
	fontsOnce   sync.Once
	regularFont *opentype.Font
	boldFont    *opentype.Font
	fontsErr    error
)

func loadFonts() error {
	fontsOnce.Do(func() {
		regularFont, fontsErr = opentype.Parse(goregular.TTF)
		if fontsErr != nil {
			return
		}
		boldFont, fontsErr = opentype.Parse(gobold.TTF)
	})
	return fontsErr
}

func newFace(f *opentype.Font, size float64) (font.Face, error) {
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// RasterSize reports the canvas size EncodePNG would produce. Sides that do
// not fit the raster limit are reported as MaxRasterSide+1.
func RasterSize(p models.Project, scale float64) (width, height int) {
	w, h := rasterExtent(p, scale)
	return rasterSide(w), rasterSide(h)
}

func rasterExtent(p models.Project, scale float64) (width, height float64) {
	if scale <= 0 {
		scale = DefaultRasterScale
	}
	maxX, maxZ := planExtent(&p)
	ppf := pixelsPerFootBase * scale
	pad := paddingBase * scale
	return math.Ceil(maxX*ppf + pad*2), math.Ceil(maxZ*ppf + pad*2)
}

// rasterSide checks v in float64 before the int conversion so extents
// beyond the int range cannot wrap to a negative size.
func rasterSide(v float64) int {
	if !fitsRaster(v) {
		return MaxRasterSide + 1
	}
	return int(v)
}

func fitsRaster(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0 && v <= MaxRasterSide
}

// EncodePNG rasterizes the plan on a white canvas with a one foot grid.
func EncodePNG(p models.Project, opts Options) ([]byte, error) {
	opts = opts.withDefaults()
	scale := opts.RasterScale

	fw, fh := rasterExtent(p, scale)
	if !fitsRaster(fw) || !fitsRaster(fh) {
		return nil, &EncodeError{
			Format: FormatPNG,
			Err:    fmt.Errorf("canvas %gx%g exceeds %d px", fw, fh, MaxRasterSide),
		}
	}
	width, height := int(fw), int(fh)
	if err := loadFonts(); err != nil {
		return nil, &EncodeError{Format: FormatPNG, Err: err}
	}

	nameSize := nameFontBase * scale
	nameFace, err := newFace(boldFont, nameSize)
	if err != nil {
		return nil, &EncodeError{Format: FormatPNG, Err: err}
	}
	defer nameFace.Close()
	detailFace, err := newFace(regularFont, nameSize*detailFontRatio)
	if err != nil {
		return nil, &EncodeError{Format: FormatPNG, Err: err}
	}
	defer detailFace.Close()

	ppf := pixelsPerFootBase * scale
	pad := paddingBase * scale
	w, h := float64(width), float64(height)

	dc := gg.NewContext(width, height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	// Grid
	dc.SetRGBA(0.75, 0.75, 0.75, 0.5)
	dc.SetLineWidth(0.5)
	for x := pad; x <= w-pad; x += ppf {
		dc.DrawLine(x, pad, x, h-pad)
	}
	for y := pad; y <= h-pad; y += ppf {
		dc.DrawLine(pad, y, w-pad, y)
	}
	dc.Stroke()

	for _, r := range p.Rooms {
		rx := pad + r.X*ppf
		ry := pad + r.Z*ppf
		rw := r.Width * ppf
		rh := r.Length * ppf

		if fill, ok := parseHexColor(r.Color); ok {
			dc.SetColor(fill)
			dc.DrawRectangle(rx, ry, rw, rh)
			dc.Fill()
		}

		dc.SetColor(inkColor)
		dc.SetLineWidth(2 * scale)
		dc.DrawRectangle(rx, ry, rw, rh)
		dc.Stroke()

		cx, cy := rx+rw/2, ry+rh/2
		dc.SetFontFace(nameFace)
		dc.DrawStringAnchored(r.Name, cx, cy-nameSize*1.5, 0.5, 0.5)

		dc.SetFontFace(detailFace)
		dc.SetColor(darkColor)
		dc.DrawStringAnchored(dimensionsLabel(r), cx, cy, 0.5, 0.5)
		dc.DrawStringAnchored(areaLabel(r), cx, cy+nameSize, 0.5, 0.5)
	}

	drawOpening := func(s geometry.Segment) {
		dc.DrawLine(pad+s.X1*ppf, pad+s.Z1*ppf, pad+s.X2*ppf, pad+s.Z2*ppf)
		dc.Stroke()
	}
	dc.SetLineWidth(4 * scale)
	dc.SetColor(doorColor)
	for _, d := range p.Doors {
		drawOpening(geometry.OpeningSegment(d.X, d.Z, d.Width, p.Rooms))
	}
	dc.SetColor(windowColor)
	for _, win := range p.Windows {
		drawOpening(geometry.OpeningSegment(win.X, win.Z, win.Width, p.Rooms))
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, &EncodeError{Format: FormatPNG, Err: err}
	}
	return buf.Bytes(), nil
}

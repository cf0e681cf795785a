package export

import (
	"fmt"
	"strings"
	"time"

	"floorplan/internal/floorplan/codec"
	"floorplan/internal/floorplan/models"
)

// ============================================================
// Formats
// ============================================================

type Format string

const (
	FormatJSON Format = "json"
	FormatPDF  Format = "pdf"
	FormatPNG  Format = "png"
	FormatDXF  Format = "dxf"
	FormatSVG  Format = "svg"
	FormatXLSX Format = "xlsx"
)

// Formats lists every supported export format in menu order.
var Formats = []Format{FormatJSON, FormatPDF, FormatPNG, FormatDXF, FormatSVG, FormatXLSX}

// ParseFormat accepts a format name or file extension, case insensitive.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "."))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown export format %q", s)
}

func (f Format) Extension() string {
	return string(f)
}

func (f Format) MIMEType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatPDF:
		return "application/pdf"
	case FormatPNG:
		return "image/png"
	case FormatDXF:
		return "application/dxf"
	case FormatSVG:
		return "image/svg+xml"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "application/octet-stream"
}

// FileName derives the export file name from the project name.
func FileName(projectName string, f Format) string {
	base := strings.Join(strings.Fields(projectName), "-")
	if base == "" {
		base = "floor-plan"
	}
	return base + "." + f.Extension()
}

// ============================================================
// Options & dispatch
// ============================================================

// DefaultRasterScale is the device scale used when none is configured.
const DefaultRasterScale = 2.0

type Options struct {
	// RasterScale multiplies PNG pixel density and label size.
	RasterScale float64
	// GeneratedAt is printed on the PDF page and stored in its metadata.
	GeneratedAt time.Time
	// DXFDimensions adds a size annotation per room on the DIMENSIONS layer.
	DXFDimensions bool
}

func (o Options) withDefaults() Options {
	if o.RasterScale <= 0 {
		o.RasterScale = DefaultRasterScale
	}
	if o.GeneratedAt.IsZero() {
		o.GeneratedAt = time.Now().UTC()
	}
	return o
}

// Encode runs the encoder for f. Failures are always *EncodeError and
// never come with partial output.
func Encode(f Format, p models.Project, opts Options) ([]byte, error) {
	opts = opts.withDefaults()
	switch f {
	case FormatJSON:
		data, err := codec.EncodeJSON(p)
		if err != nil {
			return nil, &EncodeError{Format: f, Err: err}
		}
		return data, nil
	case FormatPDF:
		return EncodePDF(p, opts)
	case FormatPNG:
		return EncodePNG(p, opts)
	case FormatDXF:
		return EncodeDXF(p, opts)
	case FormatSVG:
		return EncodeSVG(p)
	case FormatXLSX:
		return EncodeXLSX(p)
	}
	return nil, &EncodeError{Format: f, Err: fmt.Errorf("unsupported format")}
}

package export

import (
	"bytes"

	"github.com/go-pdf/fpdf"

	"floorplan/internal/floorplan/models"
)

// EncodePDF renders the plan on a single landscape letter page.
func EncodePDF(p models.Project, opts Options) ([]byte, error) {
	opts = opts.withDefaults()
	page := LayoutPage(p, opts.GeneratedAt)

	pdf := fpdf.New("L", "pt", "Letter", "")
	pdf.SetCreationDate(opts.GeneratedAt)
	pdf.SetModificationDate(opts.GeneratedAt)
	pdf.SetTitle(p.Name, true)
	pdf.SetCreator("floorplan", true)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	// Core fonts are cp1252; the translator keeps "×" and accented names.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for _, s := range page.Shapes {
		switch s.Kind {
		case ShapeRect:
			pdf.SetDrawColor(int(s.Color.R), int(s.Color.G), int(s.Color.B))
			pdf.SetLineWidth(s.LineWidth)
			pdf.Rect(s.X, s.Y, s.W, s.H, "D")
		case ShapeLine:
			pdf.SetDrawColor(int(s.Color.R), int(s.Color.G), int(s.Color.B))
			pdf.SetLineWidth(s.LineWidth)
			pdf.Line(s.X, s.Y, s.X2, s.Y2)
		case ShapeText:
			style := ""
			if s.Bold {
				style = "B"
			}
			pdf.SetFont("Helvetica", style, s.FontSize)
			pdf.SetTextColor(int(s.Color.R), int(s.Color.G), int(s.Color.B))
			txt := tr(s.Text)
			x := s.X
			switch s.Align {
			case AlignCenter:
				x -= pdf.GetStringWidth(txt) / 2
			case AlignRight:
				x -= pdf.GetStringWidth(txt)
			}
			pdf.Text(x, s.Y, txt)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, &EncodeError{Format: FormatPDF, Err: err}
	}
	return buf.Bytes(), nil
}

package export

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"floorplan/internal/floorplan/models"
)

// ============================================================
// Room schedule (XLSX)
// ============================================================

const (
	RoomsSheet    = "Rooms"
	OpeningsSheet = "Openings"
)

var (
	roomHeaders    = []interface{}{"Name", "X", "Z", "Width", "Length", "Height", "Area (sq ft)", "Volume (cu ft)", "Perimeter (ft)", "Color"}
	openingHeaders = []interface{}{"Type", "ID", "X", "Z", "Width", "Height", "From Floor", "Exterior", "Label", "Rooms"}
)

// EncodeXLSX writes a workbook with one row per room and a total row,
// plus a sheet listing doors and windows.
func EncodeXLSX(p models.Project) ([]byte, error) {
	wb := excelize.NewFile()
	defer wb.Close()

	if err := writeRoomsSheet(wb, &p); err != nil {
		return nil, &EncodeError{Format: FormatXLSX, Err: err}
	}
	if err := writeOpeningsSheet(wb, &p); err != nil {
		return nil, &EncodeError{Format: FormatXLSX, Err: err}
	}

	buf, err := wb.WriteToBuffer()
	if err != nil {
		return nil, &EncodeError{Format: FormatXLSX, Err: err}
	}
	return buf.Bytes(), nil
}

func writeRoomsSheet(wb *excelize.File, p *models.Project) error {
	if err := wb.SetSheetName(wb.GetSheetName(0), RoomsSheet); err != nil {
		return err
	}
	if err := writeHeader(wb, RoomsSheet, roomHeaders); err != nil {
		return err
	}

	row := 2
	for _, r := range p.Rooms {
		values := []interface{}{r.Name, r.X, r.Z, r.Width, r.Length, r.Height, r.Area(), r.Volume(), r.Perimeter(), r.Color}
		if err := wb.SetSheetRow(RoomsSheet, fmt.Sprintf("A%d", row), &values); err != nil {
			return fmt.Errorf("room %s: %w", r.ID, err)
		}
		row++
	}

	if err := wb.SetCellValue(RoomsSheet, fmt.Sprintf("A%d", row), "Total"); err != nil {
		return err
	}
	if err := wb.SetCellValue(RoomsSheet, fmt.Sprintf("G%d", row), p.TotalArea()); err != nil {
		return err
	}
	bold, err := wb.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := wb.SetRowStyle(RoomsSheet, row, row, bold); err != nil {
		return err
	}

	return wb.SetColWidth(RoomsSheet, "A", "A", 24)
}

func writeOpeningsSheet(wb *excelize.File, p *models.Project) error {
	if _, err := wb.NewSheet(OpeningsSheet); err != nil {
		return err
	}
	if err := writeHeader(wb, OpeningsSheet, openingHeaders); err != nil {
		return err
	}

	row := 2
	for _, d := range p.Doors {
		values := []interface{}{"Door", d.ID, d.X, d.Z, d.Width, "", "", d.IsExterior, d.Label, strings.Join(d.ConnectsRooms, ", ")}
		if err := wb.SetSheetRow(OpeningsSheet, fmt.Sprintf("A%d", row), &values); err != nil {
			return fmt.Errorf("door %s: %w", d.ID, err)
		}
		row++
	}
	for _, w := range p.Windows {
		values := []interface{}{"Window", w.ID, w.X, w.Z, w.Width, w.Height, w.FromFloor, "", "", w.RoomID}
		if err := wb.SetSheetRow(OpeningsSheet, fmt.Sprintf("A%d", row), &values); err != nil {
			return fmt.Errorf("window %s: %w", w.ID, err)
		}
		row++
	}
	return nil
}

func writeHeader(wb *excelize.File, sheet string, headers []interface{}) error {
	if err := wb.SetSheetRow(sheet, "A1", &headers); err != nil {
		return err
	}
	style, err := wb.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E8F4F8"}, Pattern: 1},
	})
	if err != nil {
		return err
	}
	return wb.SetRowStyle(sheet, 1, 1, style)
}

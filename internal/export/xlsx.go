package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"water-quality/internal/models"
)

const xlsxSheet = "Report"

// XLSX writes the CSV layout into a single sheet, keeping numbers numeric
func XLSX(r models.ReportRecord) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	values := []interface{}{r.Year, r.StationID, string(r.Season), r.WQI, string(r.Category)}
	for _, p := range models.Pollutants {
		values = append(values, r.Pollutants[p])
	}

	for i, field := range r.Fields() {
		header, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(xlsxSheet, header, field.Label); err != nil {
			return nil, fmt.Errorf("failed to write header %s: %w", field.Label, err)
		}
		cell, err := excelize.CoordinatesToCellName(i+1, 2)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(xlsxSheet, cell, values[i]); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", field.Label, err)
		}
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(xlsxSheet, col, col, 14); err != nil {
			return nil, fmt.Errorf("failed to size column %s: %w", col, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

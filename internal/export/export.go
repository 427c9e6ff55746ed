// Package export renders a prediction's ReportRecord into downloadable
// byte streams. Every renderer is a pure function of the record.
package export

import (
	"fmt"

	"water-quality/internal/models"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatPDF  Format = "pdf"
	FormatXLSX Format = "xlsx"
	FormatPNG  Format = "png"
)

// Formats lists every supported export format
var Formats = []Format{FormatCSV, FormatPDF, FormatXLSX, FormatPNG}

func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unsupported export format %q", s)
}

// ContentType returns the MIME type of the format
func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv"
	case FormatPDF:
		return "application/pdf"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatPNG:
		return "image/png"
	}
	return "application/octet-stream"
}

// Filename returns the download name: report_<station>_<year>.pdf for PDF,
// pollutants_<station>_<year>.<ext> for the rest.
func (f Format) Filename(r models.ReportRecord) string {
	prefix := "pollutants"
	if f == FormatPDF {
		prefix = "report"
	}
	return fmt.Sprintf("%s_%s_%d.%s", prefix, r.StationID, r.Year, f)
}

// Render produces the export in the given format
func Render(f Format, r models.ReportRecord) ([]byte, error) {
	switch f {
	case FormatCSV:
		return CSV(r)
	case FormatPDF:
		return PDF(r)
	case FormatXLSX:
		return XLSX(r)
	case FormatPNG:
		return Chart(r)
	}
	return nil, fmt.Errorf("unsupported export format %q", f)
}

// Title is the heading used by the PDF report
func Title(r models.ReportRecord) string {
	return fmt.Sprintf("Water Quality Report - Station %s (%s, %d)", r.StationID, r.Season, r.Year)
}

package export

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"water-quality/internal/models"
)

// Layout in points, measured from the bottom of the page like the printed
// report it replaces.
const (
	pdfLeft     = 100.0
	pdfTitleY   = 800.0
	pdfFirstY   = 770.0
	pdfLineStep = 20.0
	pdfBottom   = 50.0
	pdfFontSize = 12.0
	pdfFontName = "Helvetica"
)

type pdfLine struct {
	Page int
	Y    float64
	Text string
}

// layoutPDF places the title and one "Label: value" line per field. A line
// that would fall below the bottom margin starts a new page at the title
// height.
func layoutPDF(title string, fields []models.Field) []pdfLine {
	lines := []pdfLine{{Page: 0, Y: pdfTitleY, Text: title}}

	page, y := 0, pdfFirstY
	for _, f := range fields {
		if y < pdfBottom {
			page++
			y = pdfTitleY
		}
		lines = append(lines, pdfLine{Page: page, Y: y, Text: fmt.Sprintf("%s: %s", f.Label, f.Value)})
		y -= pdfLineStep
	}
	return lines
}

// PDF renders the report on A4 pages
func PDF(r models.ReportRecord) ([]byte, error) {
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(Title(r), true)
	pdf.SetCreator("water-quality", true)

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	_, pageH := pdf.GetPageSize()

	page := -1
	for _, line := range layoutPDF(Title(r), r.Fields()) {
		for page < line.Page {
			pdf.AddPage()
			pdf.SetFont(pdfFontName, "", pdfFontSize)
			page++
		}
		pdf.Text(pdfLeft, pageH-line.Y, tr(line.Text))
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

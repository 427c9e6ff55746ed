package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"water-quality/internal/models"
)

func sampleRecord() models.ReportRecord {
	return models.ReportRecord{
		Year:      2026,
		StationID: "1",
		Season:    models.SeasonWinter,
		WQI:       -4.12,
		Category:  models.CategoryVeryPoor,
		Pollutants: models.PollutantEstimate{
			models.O2: 8.0, models.NO3: 5.0, models.NO2: 0.5,
			models.SO4: 10.0, models.PO4: 1.0, models.CL: 20.123456789,
		},
	}
}

// parseCSV reads an exported CSV back into a record
func parseCSV(t *testing.T, data []byte) models.ReportRecord {
	t.Helper()
	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	header, row := rows[0], rows[1]
	require.Equal(t, len(header), len(row))
	values := make(map[string]string, len(header))
	for i, h := range header {
		values[h] = row[i]
	}

	year, err := strconv.Atoi(values["Year"])
	require.NoError(t, err)
	wqi, err := strconv.ParseFloat(values["WQI"], 64)
	require.NoError(t, err)

	rec := models.ReportRecord{
		Year:       year,
		StationID:  values["Station ID"],
		Season:     models.Season(values["Season"]),
		WQI:        wqi,
		Category:   models.Category(values["Category"]),
		Pollutants: models.PollutantEstimate{},
	}
	for _, p := range models.Pollutants {
		v, err := strconv.ParseFloat(values[string(p)], 64)
		require.NoError(t, err)
		rec.Pollutants[p] = v
	}
	return rec
}

func TestCSVHeaderAndRow(t *testing.T) {
	data, err := CSV(sampleRecord())
	require.NoError(t, err)

	assert.Equal(t,
		"Year,Station ID,Season,WQI,Category,O2,NO3,NO2,SO4,PO4,CL\n"+
			"2026,1,Winter,-4.12,Very Poor,8.0,5.0,0.5,10.0,1.0,20.123456789\n",
		string(data))
}

func TestCSVRoundTrip(t *testing.T) {
	records := []models.ReportRecord{
		sampleRecord(),
		{
			Year: 2100, StationID: `st "north", bank`, Season: models.SeasonPostMonsoon,
			WQI: 55.55, Category: models.CategoryExcellent,
			Pollutants: models.PollutantEstimate{
				models.O2: 300.000001, models.NO3: 1e-7, models.NO2: 0,
				models.SO4: -2.5, models.PO4: math.Pi, models.CL: 1234567.875,
			},
		},
	}
	for _, want := range records {
		data, err := CSV(want)
		require.NoError(t, err)

		got := parseCSV(t, data)
		assert.InDelta(t, want.WQI, got.WQI, 0.005)
		got.WQI = want.WQI
		assert.Equal(t, want, got)
	}
}

func TestFilenamesAndContentTypes(t *testing.T) {
	r := sampleRecord()
	r.StationID = "42"
	r.Year = 2031

	assert.Equal(t, "pollutants_42_2031.csv", FormatCSV.Filename(r))
	assert.Equal(t, "report_42_2031.pdf", FormatPDF.Filename(r))
	assert.Equal(t, "pollutants_42_2031.xlsx", FormatXLSX.Filename(r))
	assert.Equal(t, "pollutants_42_2031.png", FormatPNG.Filename(r))

	assert.Equal(t, "text/csv", FormatCSV.ContentType())
	assert.Equal(t, "application/pdf", FormatPDF.ContentType())
	assert.Equal(t, "image/png", FormatPNG.ContentType())
}

func TestParseFormat(t *testing.T) {
	for _, f := range Formats {
		got, err := ParseFormat(string(f))
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}
	_, err := ParseFormat("docx")
	assert.Error(t, err)
}

func TestPDFLayoutSinglePage(t *testing.T) {
	r := sampleRecord()
	lines := layoutPDF(Title(r), r.Fields())

	require.Len(t, lines, 12)
	assert.Equal(t, pdfLine{Page: 0, Y: 800, Text: "Water Quality Report - Station 1 (Winter, 2026)"}, lines[0])
	assert.Equal(t, pdfLine{Page: 0, Y: 770, Text: "Year: 2026"}, lines[1])
	assert.Equal(t, pdfLine{Page: 0, Y: 710, Text: "WQI: -4.12"}, lines[4])
	assert.Equal(t, "Category: Very Poor", lines[5].Text)
	assert.Equal(t, pdfLine{Page: 0, Y: 570, Text: "CL: 20.123456789"}, lines[11])
}

func TestPDFLayoutPaginates(t *testing.T) {
	fields := make([]models.Field, 60)
	for i := range fields {
		fields[i] = models.Field{Label: fmt.Sprintf("F%d", i), Value: "v"}
	}
	lines := layoutPDF("title", fields)

	// 770, 750, ..., 50 fit on the first page: 37 lines
	for i, l := range lines[1:] {
		if i < 37 {
			assert.Equal(t, 0, l.Page, "line %d", i)
		} else {
			assert.Equal(t, 1, l.Page, "line %d", i)
		}
		assert.GreaterOrEqual(t, l.Y, pdfBottom)
	}
	assert.Equal(t, 800.0, lines[38].Y)
}

func TestPDFRenders(t *testing.T) {
	data, err := PDF(sampleRecord())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
	assert.True(t, bytes.Contains(data, []byte("%%EOF")))
}

func TestXLSXRoundTrip(t *testing.T) {
	data, err := XLSX(sampleRecord())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(xlsxSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Year", "Station ID", "Season", "WQI", "Category", "O2", "NO3", "NO2", "SO4", "PO4", "CL"}, rows[0])
	assert.Equal(t, "2026", rows[1][0])
	assert.Equal(t, "Very Poor", rows[1][4])

	wqi, err := strconv.ParseFloat(rows[1][3], 64)
	require.NoError(t, err)
	assert.InDelta(t, -4.12, wqi, 1e-9)

	for _, col := range []string{"A", "E", "K"} {
		width, err := f.GetColWidth(xlsxSheet, col)
		require.NoError(t, err)
		assert.Equal(t, 14.0, width, col)
	}
}

func TestChartIsPNG(t *testing.T) {
	data, err := Chart(sampleRecord())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")))
}

func TestRenderEveryFormat(t *testing.T) {
	for _, f := range Formats {
		data, err := Render(f, sampleRecord())
		require.NoError(t, err, f)
		assert.NotEmpty(t, data, f)
	}
}

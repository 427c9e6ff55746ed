package export

import (
	"bytes"
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"water-quality/internal/models"
)

// Chart draws the predicted pollutant levels as a PNG bar chart
func Chart(r models.ReportRecord) ([]byte, error) {
	p := plot.New()
	p.Title.Text = "Predicted Pollutant Levels"
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.Y.Label.Text = "Concentration"

	values := make(plotter.Values, len(models.Pollutants))
	labels := make([]string, len(models.Pollutants))
	for i, pol := range models.Pollutants {
		values[i] = r.Pollutants[pol]
		labels[i] = string(pol)
	}

	bars, err := plotter.NewBarChart(values, vg.Points(30))
	if err != nil {
		return nil, fmt.Errorf("failed to build chart: %w", err)
	}
	bars.Color = color.RGBA{R: 135, G: 206, B: 235, A: 255}
	bars.LineStyle.Width = vg.Length(0)

	p.Add(bars)
	p.Add(plotter.NewGrid())
	p.NominalX(labels...)

	wt, err := p.WriterTo(6*vg.Inch, 4*vg.Inch, "png")
	if err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}

	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode chart: %w", err)
	}
	return buf.Bytes(), nil
}

package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Season is one of the four calendar seasons the model was trained on
type Season string

const (
	SeasonSummer      Season = "Summer"
	SeasonMonsoon     Season = "Monsoon"
	SeasonWinter      Season = "Winter"
	SeasonPostMonsoon Season = "Post-Monsoon"
)

// Seasons lists the seasons in their display order
var Seasons = []Season{SeasonSummer, SeasonMonsoon, SeasonWinter, SeasonPostMonsoon}

// ParseSeason accepts the display label case-insensitively, with or without
// the hyphen/underscore in "Post-Monsoon".
func ParseSeason(s string) (Season, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer("-", "", "_", "", " ", "").Replace(key)
	for _, season := range Seasons {
		if strings.ToLower(strings.ReplaceAll(string(season), "-", "")) == key {
			return season, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSeason, s)
}

// Pollutant names one of the six predicted concentrations
type Pollutant string

const (
	O2  Pollutant = "O2"
	NO3 Pollutant = "NO3"
	NO2 Pollutant = "NO2"
	SO4 Pollutant = "SO4"
	PO4 Pollutant = "PO4"
	CL  Pollutant = "CL"
)

// Pollutants is the order the model emits its outputs in
var Pollutants = []Pollutant{O2, NO3, NO2, SO4, PO4, CL}

// Category is the water quality class derived from the WQI
type Category string

const (
	CategoryExcellent Category = "Excellent"
	CategoryGood      Category = "Good"
	CategoryPoor      Category = "Poor"
	CategoryVeryPoor  Category = "Very Poor"
)

// PredictionRequest is the raw user input
type PredictionRequest struct {
	Year      int    `json:"year"`
	StationID string `json:"station_id"`
	Season    Season `json:"season"`
}

// FeatureVector is the model input, aligned with the schema column order
type FeatureVector struct {
	Columns []string  `json:"columns"`
	Values  []float64 `json:"values"`
}

// Value returns the value of a named column
func (v FeatureVector) Value(column string) (float64, bool) {
	for i, c := range v.Columns {
		if c == column {
			return v.Values[i], true
		}
	}
	return 0, false
}

// PollutantEstimate maps each pollutant to its predicted concentration
type PollutantEstimate map[Pollutant]float64

// QualityAssessment is the scored and classified prediction
type QualityAssessment struct {
	WQI            float64  `json:"wqi"`
	Category       Category `json:"category"`
	Recommendation string   `json:"recommendation"`
}

// ReportRecord is the single record written into every export format
type ReportRecord struct {
	Year       int               `json:"year"`
	StationID  string            `json:"station_id"`
	Season     Season            `json:"season"`
	WQI        float64           `json:"wqi"`
	Category   Category          `json:"category"`
	Pollutants PollutantEstimate `json:"pollutants"`
}

// Field is one labelled, formatted value of a ReportRecord
type Field struct {
	Label string
	Value string
}

// Fields returns the record as labelled values in export order:
// Year, Station ID, Season, WQI, Category, then the pollutants.
func (r ReportRecord) Fields() []Field {
	fields := []Field{
		{Label: "Year", Value: strconv.Itoa(r.Year)},
		{Label: "Station ID", Value: r.StationID},
		{Label: "Season", Value: string(r.Season)},
		{Label: "WQI", Value: strconv.FormatFloat(r.WQI, 'f', 2, 64)},
		{Label: "Category", Value: string(r.Category)},
	}
	for _, p := range Pollutants {
		fields = append(fields, Field{Label: string(p), Value: FormatLevel(r.Pollutants[p])})
	}
	return fields
}

// FormatLevel renders a concentration as the shortest exact decimal,
// keeping a ".0" on integral values.
func FormatLevel(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}

package models

// PredictionResult is returned by /api/predict
type PredictionResult struct {
	ID         string            `json:"id"`
	Request    PredictionRequest `json:"request"`
	Features   FeatureVector     `json:"features"`
	Pollutants PollutantEstimate `json:"pollutants"`
	Assessment QualityAssessment `json:"assessment"`
	Record     ReportRecord      `json:"record"`
	// KnownStation is false when the station id has no schema column and was
	// encoded with no station effect.
	KnownStation bool     `json:"known_station"`
	Station      *Station `json:"station,omitempty"`
}

// StationsResponse is returned by /api/stations
type StationsResponse struct {
	Count    int       `json:"count"`
	Stations []Station `json:"stations"`
}

// SchemaResponse is returned by /api/schema
type SchemaResponse struct {
	Columns    []string    `json:"columns"`
	Seasons    []Season    `json:"seasons"`
	Pollutants []Pollutant `json:"pollutants"`
	YearMin    int         `json:"year_min"`
	YearMax    int         `json:"year_max"`
}

// ErrorResponse carries a failed request's message
type ErrorResponse struct {
	Error string `json:"error"`
}

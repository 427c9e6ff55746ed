package service

import (
	"fmt"
	"strings"

	"water-quality/internal/models"
)

// FeatureEncoder turns a request into the vector layout the model was trained on
type FeatureEncoder struct {
	rules   Rules
	columns []string
	index   map[string]int
}

// NewEncoder builds an encoder for the given schema. The schema must be
// non-empty and free of duplicate column names.
func NewEncoder(schema []string, rules Rules) (*FeatureEncoder, error) {
	if len(schema) == 0 {
		return nil, fmt.Errorf("schema has no columns")
	}

	index := make(map[string]int, len(schema))
	for i, col := range schema {
		if _, dup := index[col]; dup {
			return nil, fmt.Errorf("schema column %q appears more than once", col)
		}
		index[col] = i
	}

	columns := make([]string, len(schema))
	copy(columns, schema)

	return &FeatureEncoder{rules: rules, columns: columns, index: index}, nil
}

// Columns returns a copy of the schema
func (e *FeatureEncoder) Columns() []string {
	out := make([]string, len(e.columns))
	copy(out, e.columns)
	return out
}

// StationColumns returns the schema's station id columns in schema order
func (e *FeatureEncoder) StationColumns() []string {
	var cols []string
	for _, c := range e.columns {
		if strings.HasPrefix(c, e.rules.IDPrefix) {
			cols = append(cols, c)
		}
	}
	return cols
}

// KnownStation reports whether the station id has its own schema column.
// Matching is exact: "1" does not match "id_10".
func (e *FeatureEncoder) KnownStation(stationID string) bool {
	_, ok := e.index[e.rules.IDPrefix+stationID]
	return ok
}

// Encode produces the feature vector for a request. A station id without a
// schema column is encoded with every id column at 0.
func (e *FeatureEncoder) Encode(req models.PredictionRequest) (models.FeatureVector, error) {
	code, ok := e.rules.SeasonCodes[req.Season]
	if !ok {
		return models.FeatureVector{}, fmt.Errorf("%w: %q", models.ErrUnknownSeason, req.Season)
	}

	values := make([]float64, len(e.columns))
	if i, ok := e.index[e.rules.YearColumn]; ok {
		values[i] = float64(req.Year)
	}
	if i, ok := e.index[e.rules.SeasonColumn]; ok {
		values[i] = code
	}
	if i, ok := e.index[e.rules.IDPrefix+req.StationID]; ok {
		values[i] = 1
	}

	return models.FeatureVector{Columns: e.Columns(), Values: values}, nil
}

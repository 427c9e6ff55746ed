package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"water-quality/internal/models"
)

// Predictor runs the trained regression model on one feature vector
type Predictor interface {
	Predict(ctx context.Context, features models.FeatureVector) (models.PollutantEstimate, error)
}

// ShapeError reports a feature vector or model output that does not match
// what the model was trained with.
type ShapeError struct {
	Reason string
}

func (e *ShapeError) Error() string {
	return "feature shape mismatch: " + e.Reason
}

// CheckColumns returns a ShapeError unless got equals want element by element
func CheckColumns(want, got []string) error {
	if len(want) != len(got) {
		return &ShapeError{Reason: fmt.Sprintf("model expects %d columns, got %d", len(want), len(got))}
	}
	for i := range want {
		if want[i] != got[i] {
			return &ShapeError{Reason: fmt.Sprintf("column %d is %q, model expects %q", i, got[i], want[i])}
		}
	}
	return nil
}

// EstimateFromOutputs zips model outputs with the pollutant order
func EstimateFromOutputs(pollutants []models.Pollutant, outputs []float64) (models.PollutantEstimate, error) {
	if len(outputs) != len(pollutants) {
		return nil, &ShapeError{Reason: fmt.Sprintf("model returned %d outputs, want %d", len(outputs), len(pollutants))}
	}
	est := make(models.PollutantEstimate, len(pollutants))
	for i, p := range pollutants {
		est[p] = outputs[i]
	}
	return est, nil
}

// LinearModel is a multi-output linear regression exported as JSON:
// output[i] = Intercepts[i] + sum_j Coefficients[i][j] * x[j].
type LinearModel struct {
	Columns      []string    `json:"columns"`
	Intercepts   []float64   `json:"intercepts"`
	Coefficients [][]float64 `json:"coefficients"`

	pollutants []models.Pollutant
}

// LoadLinearModel reads and validates a model artifact
func LoadLinearModel(path string, pollutants []models.Pollutant) (*LinearModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model artifact: %w", err)
	}

	var m LinearModel
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to decode model artifact %s: %w", path, err)
	}
	if err := m.init(pollutants); err != nil {
		return nil, fmt.Errorf("invalid model artifact %s: %w", path, err)
	}
	return &m, nil
}

// NewLinearModel builds a model in memory
func NewLinearModel(columns []string, intercepts []float64, coefficients [][]float64, pollutants []models.Pollutant) (*LinearModel, error) {
	m := &LinearModel{Columns: columns, Intercepts: intercepts, Coefficients: coefficients}
	if err := m.init(pollutants); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *LinearModel) init(pollutants []models.Pollutant) error {
	if len(m.Columns) == 0 {
		return fmt.Errorf("model has no columns")
	}
	if len(m.Intercepts) != len(pollutants) {
		return fmt.Errorf("model has %d intercepts, want %d", len(m.Intercepts), len(pollutants))
	}
	if len(m.Coefficients) != len(pollutants) {
		return fmt.Errorf("model has %d coefficient rows, want %d", len(m.Coefficients), len(pollutants))
	}
	for i, row := range m.Coefficients {
		if len(row) != len(m.Columns) {
			return fmt.Errorf("coefficient row %d has %d values, want %d", i, len(row), len(m.Columns))
		}
	}
	m.pollutants = pollutants
	return nil
}

// Predict evaluates the model. The vector must carry exactly the model's columns.
func (m *LinearModel) Predict(ctx context.Context, features models.FeatureVector) (models.PollutantEstimate, error) {
	if err := CheckColumns(m.Columns, features.Columns); err != nil {
		return nil, err
	}
	if len(features.Values) != len(m.Columns) {
		return nil, &ShapeError{Reason: fmt.Sprintf("vector has %d values for %d columns", len(features.Values), len(m.Columns))}
	}

	outputs := make([]float64, len(m.Intercepts))
	for i, row := range m.Coefficients {
		sum := m.Intercepts[i]
		for j, coef := range row {
			sum += float64(coef * features.Values[j])
		}
		outputs[i] = sum
	}
	return EstimateFromOutputs(m.pollutants, outputs)
}

// LoadSchema reads the ordered list of model columns from a JSON array
func LoadSchema(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema artifact: %w", err)
	}

	var columns []string
	if err := json.Unmarshal(data, &columns); err != nil {
		return nil, fmt.Errorf("failed to decode schema artifact %s: %w", path, err)
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("schema artifact %s is empty", path)
	}
	return columns, nil
}

package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"water-quality/internal/models"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const testModelJSON = `{
	"columns": ["year", "season", "id_1", "id_10", "id_2", "id_22"],
	"intercepts": [8, 5, 0.5, 10, 1, 20],
	"coefficients": [
		[0, 0, 0, 0, 0, 0],
		[0, 0, 0, 0, 0, 0],
		[0, 0, 0, 0, 0, 0],
		[0, 0, 0, 0, 0, 0],
		[0, 0, 0, 0, 0, 0],
		[0.001, 0.5, 2, 0, 0, 0]
	]
}`

func TestLinearModelPredict(t *testing.T) {
	m, err := LoadLinearModel(writeFile(t, "model.json", testModelJSON), models.Pollutants)
	require.NoError(t, err)

	est, err := m.Predict(context.Background(), models.FeatureVector{
		Columns: testSchema,
		Values:  []float64{2000, 2, 1, 0, 0, 0},
	})
	require.NoError(t, err)

	assert.Equal(t, 8.0, est[models.O2])
	assert.Equal(t, 1.0, est[models.PO4])
	assert.InDelta(t, 20+2+1+2, est[models.CL], 1e-9)
}

func TestLinearModelShapeMismatch(t *testing.T) {
	m, err := LoadLinearModel(writeFile(t, "model.json", testModelJSON), models.Pollutants)
	require.NoError(t, err)

	cases := []models.FeatureVector{
		{Columns: testSchema[:5], Values: make([]float64, 5)},
		{Columns: []string{"season", "year", "id_1", "id_10", "id_2", "id_22"}, Values: make([]float64, 6)},
		{Columns: testSchema, Values: make([]float64, 4)},
	}
	for _, fv := range cases {
		_, err := m.Predict(context.Background(), fv)
		var shapeErr *ShapeError
		assert.True(t, errors.As(err, &shapeErr), "columns %v", fv.Columns)
	}
}

func TestLoadLinearModelValidates(t *testing.T) {
	bad := map[string]string{
		"not json":       `{`,
		"no columns":     `{"columns": [], "intercepts": [1,2,3,4,5,6], "coefficients": [[],[],[],[],[],[]]}`,
		"few intercepts": `{"columns": ["a"], "intercepts": [1], "coefficients": [[1],[1],[1],[1],[1],[1]]}`,
		"short coef row": `{"columns": ["a","b"], "intercepts": [1,2,3,4,5,6], "coefficients": [[1,1],[1],[1,1],[1,1],[1,1],[1,1]]}`,
		"few coef rows":  `{"columns": ["a"], "intercepts": [1,2,3,4,5,6], "coefficients": [[1]]}`,
	}
	for name, content := range bad {
		_, err := LoadLinearModel(writeFile(t, "model.json", content), models.Pollutants)
		assert.Error(t, err, name)
	}

	_, err := LoadLinearModel(filepath.Join(t.TempDir(), "missing.json"), models.Pollutants)
	assert.Error(t, err)
}

func TestEstimateFromOutputs(t *testing.T) {
	est, err := EstimateFromOutputs(models.Pollutants, []float64{1, 2, 3, 4, 5, 6})
	require.NoError(t, err)
	assert.Equal(t, 6.0, est[models.CL])
	assert.Equal(t, 1.0, est[models.O2])

	_, err = EstimateFromOutputs(models.Pollutants, []float64{1, 2, 3})
	var shapeErr *ShapeError
	assert.True(t, errors.As(err, &shapeErr))
}

func TestLoadSchema(t *testing.T) {
	cols, err := LoadSchema(writeFile(t, "cols.json", `["year","season","id_1"]`))
	require.NoError(t, err)
	assert.Equal(t, []string{"year", "season", "id_1"}, cols)

	_, err = LoadSchema(writeFile(t, "cols.json", `[]`))
	assert.Error(t, err)

	_, err = LoadSchema(writeFile(t, "cols.json", `{"year": 1}`))
	assert.Error(t, err)
}

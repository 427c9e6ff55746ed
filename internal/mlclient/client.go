package mlclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"water-quality/internal/models"
	"water-quality/internal/service"
)

type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client calls a model server that hosts the trained regressor
type Client struct {
	config     Config
	client     *http.Client
	pollutants []models.Pollutant
}

func NewClient(baseURL string, timeout time.Duration, pollutants []models.Pollutant) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		config: Config{
			BaseURL: strings.TrimRight(baseURL, "/"),
			Timeout: timeout,
		},
		client: &http.Client{
			Timeout: timeout,
		},
		pollutants: pollutants,
	}
}

type PredictRequest struct {
	Columns []string  `json:"columns"`
	Values  []float64 `json:"values"`
}

type PredictResponse struct {
	Predictions []float64 `json:"predictions"`
	Error       string    `json:"error,omitempty"`
}

// Predict posts the feature vector to {base}/predict
func (c *Client) Predict(ctx context.Context, features models.FeatureVector) (models.PollutantEstimate, error) {
	body, err := json.Marshal(PredictRequest{Columns: features.Columns, Values: features.Values})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal model request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/predict", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create model request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("model server request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read model response: %w", err)
	}

	var predResp PredictResponse
	decodeErr := json.Unmarshal(data, &predResp)

	// The model server answers 422 when the columns do not match its schema.
	if resp.StatusCode == http.StatusUnprocessableEntity {
		reason := predResp.Error
		if reason == "" {
			reason = "model server rejected the feature columns"
		}
		return nil, &service.ShapeError{Reason: reason}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("model server returned status: %d", resp.StatusCode)
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("failed to decode model response: %w", decodeErr)
	}

	return service.EstimateFromOutputs(c.pollutants, predResp.Predictions)
}

var _ service.Predictor = (*Client)(nil)

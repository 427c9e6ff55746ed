package mlclient

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"water-quality/internal/models"
	"water-quality/internal/service"
)

// RateLimitedPredictor wraps a Predictor with a token bucket
type RateLimitedPredictor struct {
	predictor service.Predictor
	limiter   *rate.Limiter
}

// NewRateLimitedPredictor allows rps requests per second with bursts of burst
func NewRateLimitedPredictor(predictor service.Predictor, rps float64, burst int) *RateLimitedPredictor {
	return &RateLimitedPredictor{
		predictor: predictor,
		limiter:   rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// Predict waits for permission or context cancellation, then forwards
func (r *RateLimitedPredictor) Predict(ctx context.Context, features models.FeatureVector) (models.PollutantEstimate, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait canceled: %w", err)
	}
	return r.predictor.Predict(ctx, features)
}

var _ service.Predictor = (*RateLimitedPredictor)(nil)

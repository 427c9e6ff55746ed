package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"water-quality/internal/models"
	"water-quality/internal/state"
)

var (
	ErrEmptyStation   = errors.New("please enter the station ID")
	ErrYearOutOfRange = errors.New("year out of range")
)

// PredictionService runs one request through encode, predict and score
type PredictionService struct {
	rules     Rules
	encoder   *FeatureEncoder
	predictor Predictor
	scorer    *Scorer
	stations  *state.Directory
}

func NewPredictionService(rules Rules, encoder *FeatureEncoder, predictor Predictor, stations *state.Directory) *PredictionService {
	if stations == nil {
		stations = state.NewDirectory(nil)
	}
	return &PredictionService{
		rules:     rules,
		encoder:   encoder,
		predictor: predictor,
		scorer:    NewScorer(rules),
		stations:  stations,
	}
}

func (s *PredictionService) Rules() Rules {
	return s.rules
}

func (s *PredictionService) Encoder() *FeatureEncoder {
	return s.encoder
}

func (s *PredictionService) Stations() *state.Directory {
	return s.stations
}

// Validate rejects a request before any computation and normalises its
// season. The station id is kept verbatim; only "" counts as missing.
func (s *PredictionService) Validate(req models.PredictionRequest) (models.PredictionRequest, error) {
	if req.StationID == "" {
		return req, ErrEmptyStation
	}
	if req.Year < s.rules.YearMin || req.Year > s.rules.YearMax {
		return req, fmt.Errorf("%w: %d not in [%d, %d]", ErrYearOutOfRange, req.Year, s.rules.YearMin, s.rules.YearMax)
	}
	season, err := models.ParseSeason(string(req.Season))
	if err != nil {
		return req, err
	}
	req.Season = season
	return req, nil
}

// Predict validates the request and returns the scored prediction
func (s *PredictionService) Predict(ctx context.Context, req models.PredictionRequest) (*models.PredictionResult, error) {
	req, err := s.Validate(req)
	if err != nil {
		return nil, err
	}

	features, err := s.encoder.Encode(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	estimate, err := s.predictor.Predict(ctx, features)
	if err != nil {
		return nil, fmt.Errorf("prediction failed: %w", err)
	}

	assessment := s.scorer.Assess(estimate)

	result := &models.PredictionResult{
		ID:           uuid.New().String(),
		Request:      req,
		Features:     features,
		Pollutants:   estimate,
		Assessment:   assessment,
		Record:       BuildRecord(req, estimate, assessment),
		KnownStation: s.encoder.KnownStation(req.StationID),
	}
	if st, ok := s.stations.Get(req.StationID); ok {
		result.Station = &st
	}
	return result, nil
}

// BuildRecord assembles the export record, with the WQI rounded for display
func BuildRecord(req models.PredictionRequest, est models.PollutantEstimate, qa models.QualityAssessment) models.ReportRecord {
	pollutants := make(models.PollutantEstimate, len(est))
	for p, v := range est {
		pollutants[p] = v
	}
	return models.ReportRecord{
		Year:       req.Year,
		StationID:  req.StationID,
		Season:     req.Season,
		WQI:        RoundWQI(qa.WQI),
		Category:   qa.Category,
		Pollutants: pollutants,
	}
}

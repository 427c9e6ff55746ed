package service

import (
	"strconv"

	"water-quality/internal/models"
)

// Scorer computes the WQI of a prediction and classifies it
type Scorer struct {
	rules Rules
}

func NewScorer(rules Rules) *Scorer {
	return &Scorer{rules: rules}
}

// WQI is the weighted sum of the pollutant levels
func (s *Scorer) WQI(est models.PollutantEstimate) float64 {
	var wqi float64
	for _, p := range s.rules.Pollutants {
		// the conversion keeps the product from being fused into an FMA
		wqi += float64(est[p] * s.rules.Weights[p])
	}
	return wqi
}

// Classify maps any WQI, including NaN, to exactly one category
func (s *Scorer) Classify(wqi float64) models.Category {
	switch {
	case wqi > s.rules.ExcellentAbove:
		return models.CategoryExcellent
	case wqi > s.rules.GoodAbove:
		return models.CategoryGood
	case wqi > s.rules.PoorAbove:
		return models.CategoryPoor
	default:
		return models.CategoryVeryPoor
	}
}

// Assess scores an estimate and attaches the matching recommendation
func (s *Scorer) Assess(est models.PollutantEstimate) models.QualityAssessment {
	wqi := s.WQI(est)
	category := s.Classify(wqi)

	recommendation := recommendMonitor
	if category == models.CategoryPoor || category == models.CategoryVeryPoor {
		recommendation = recommendTreatment
	}

	return models.QualityAssessment{
		WQI:            wqi,
		Category:       category,
		Recommendation: recommendation,
	}
}

// RoundWQI rounds to two decimals half-to-even on the exact binary value,
// so -4.125 becomes -4.12.
func RoundWQI(wqi float64) float64 {
	rounded, err := strconv.ParseFloat(strconv.FormatFloat(wqi, 'f', 2, 64), 64)
	if err != nil {
		return wqi
	}
	return rounded
}

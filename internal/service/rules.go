package service

import "water-quality/internal/models"

// Rules holds the fixed domain constants of the predictor: how inputs are
// encoded for the model and how its outputs are scored.
type Rules struct {
	SeasonCodes  map[models.Season]float64
	YearColumn   string
	SeasonColumn string
	IDPrefix     string

	Pollutants []models.Pollutant
	Weights    map[models.Pollutant]float64

	// A WQI strictly above a threshold earns that category.
	ExcellentAbove float64
	GoodAbove      float64
	PoorAbove      float64

	YearMin int
	YearMax int
}

const (
	recommendTreatment = "Not suitable for drinking. Immediate treatment recommended."
	recommendMonitor   = "Water quality is acceptable. Continue monitoring."
)

// DefaultRules returns the constants the model was trained and calibrated with
func DefaultRules() Rules {
	return Rules{
		SeasonCodes: map[models.Season]float64{
			models.SeasonSummer:      1,
			models.SeasonMonsoon:     2,
			models.SeasonWinter:      3,
			models.SeasonPostMonsoon: 4,
		},
		YearColumn:   "year",
		SeasonColumn: "season",
		IDPrefix:     "id_",
		Pollutants:   models.Pollutants,
		Weights: map[models.Pollutant]float64{
			models.O2:  0.20,
			models.NO3: -0.20,
			models.NO2: -0.15,
			models.SO4: -0.15,
			models.PO4: -0.15,
			models.CL:  -0.15,
		},
		ExcellentAbove: 50,
		GoodAbove:      30,
		PoorAbove:      10,
		YearMin:        2000,
		YearMax:        2100,
	}
}

package models

import "errors"

var ErrUnknownSeason = errors.New("unknown season")

// Station is a monitoring location from the station directory
type Station struct {
	ID        string  `json:"id" db:"id"`
	Name      string  `json:"name" db:"name"`
	Latitude  float64 `json:"latitude" db:"latitude"`
	Longitude float64 `json:"longitude" db:"longitude"`
}

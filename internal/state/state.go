package state

import (
	"sort"
	"sync"

	"water-quality/internal/models"
)

// Directory holds the station directory shown next to predictions. It is
// display-only and may be empty.
type Directory struct {
	mu       sync.RWMutex
	stations map[string]models.Station
}

// NewDirectory creates a directory with the given stations
func NewDirectory(stations []models.Station) *Directory {
	d := &Directory{}
	d.Replace(stations)
	return d
}

// Replace swaps the directory contents. Later duplicates of an id win.
func (d *Directory) Replace(stations []models.Station) {
	m := make(map[string]models.Station, len(stations))
	for _, s := range stations {
		m[s.ID] = s
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.stations = m
}

// Get retrieves a station by id
func (d *Directory) Get(id string) (models.Station, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	s, ok := d.stations[id]
	return s, ok
}

// List returns all stations sorted by id
func (d *Directory) List() []models.Station {
	d.mu.RLock()
	out := make([]models.Station, 0, len(d.stations))
	for _, s := range d.stations {
		out = append(out, s)
	}
	d.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Len returns the number of stations
func (d *Directory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.stations)
}

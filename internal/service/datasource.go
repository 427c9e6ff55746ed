package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"water-quality/internal/models"
	"water-quality/internal/state"
)

// StationSource loads the station directory from wherever it is kept
type StationSource interface {
	Name() string
	LoadStations(ctx context.Context) ([]models.Station, error)
}

// PostgresStationSource reads stations from a Postgres table
type PostgresStationSource struct {
	db *sqlx.DB
}

// NewPostgresStationSource connects and pings the database
func NewPostgresStationSource(ctx context.Context, dsn string) (*PostgresStationSource, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to stations database: %w", err)
	}
	return &PostgresStationSource{db: db}, nil
}

// NewPostgresStationSourceFromDB wraps an existing connection
func NewPostgresStationSourceFromDB(db *sqlx.DB) *PostgresStationSource {
	return &PostgresStationSource{db: db}
}

func (p *PostgresStationSource) Name() string {
	return "postgres"
}

type stationRow struct {
	ID        string          `db:"id"`
	Name      sql.NullString  `db:"name"`
	Latitude  sql.NullFloat64 `db:"latitude"`
	Longitude sql.NullFloat64 `db:"longitude"`
}

func (p *PostgresStationSource) LoadStations(ctx context.Context) ([]models.Station, error) {
	const query = `
		SELECT
			id::text AS id,
			name,
			latitude,
			longitude
		FROM stations
		ORDER BY id`

	var rows []stationRow
	if err := p.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to query stations: %w", err)
	}

	stations := make([]models.Station, 0, len(rows))
	for _, r := range rows {
		stations = append(stations, models.Station{
			ID:        r.ID,
			Name:      r.Name.String,
			Latitude:  r.Latitude.Float64,
			Longitude: r.Longitude.Float64,
		})
	}
	return stations, nil
}

func (p *PostgresStationSource) Close() error {
	if p.db != nil {
		return p.db.Close()
	}
	return nil
}

// CSVStationSource reads stations from a CSV file with the columns
// id, name, latitude, longitude.
type CSVStationSource struct {
	path string
}

func NewCSVStationSource(path string) *CSVStationSource {
	return &CSVStationSource{path: path}
}

func (c *CSVStationSource) Name() string {
	return "csv:" + c.path
}

func (c *CSVStationSource) LoadStations(ctx context.Context) ([]models.Station, error) {
	file, err := os.Open(c.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open station file: %w", err)
	}
	defer file.Close()

	df := dataframe.ReadCSV(file, dataframe.WithTypes(map[string]series.Type{
		"id":        series.String,
		"name":      series.String,
		"latitude":  series.Float,
		"longitude": series.Float,
	}))
	if df.Err != nil {
		return nil, fmt.Errorf("failed to parse station file %s: %w", c.path, df.Err)
	}

	have := make(map[string]bool)
	for _, name := range df.Names() {
		have[name] = true
	}
	for _, col := range []string{"id", "name", "latitude", "longitude"} {
		if !have[col] {
			return nil, fmt.Errorf("station file %s has no %q column", c.path, col)
		}
	}

	ids := df.Col("id").Records()
	names := df.Col("name").Records()
	lats := df.Col("latitude").Float()
	lons := df.Col("longitude").Float()

	stations := make([]models.Station, 0, df.Nrow())
	for i := range ids {
		stations = append(stations, models.Station{
			ID:        ids[i],
			Name:      names[i],
			Latitude:  lats[i],
			Longitude: lons[i],
		})
	}
	return stations, nil
}

// LoadDirectory builds the station directory from src. Any failure yields an
// empty directory; prediction never depends on it.
func LoadDirectory(ctx context.Context, src StationSource, logger *slog.Logger) *state.Directory {
	dir := state.NewDirectory(nil)
	if src == nil {
		return dir
	}

	stations, err := src.LoadStations(ctx)
	if err != nil {
		logger.Warn("station directory unavailable, continuing without it", "source", src.Name(), "error", err)
		return dir
	}

	dir.Replace(stations)
	logger.Info("station directory loaded", "source", src.Name(), "stations", len(stations))
	return dir
}

// RefreshDirectory reloads dir from src every interval until ctx is done.
// A failed reload keeps the previous contents.
func RefreshDirectory(ctx context.Context, dir *state.Directory, src StationSource, interval time.Duration, logger *slog.Logger) {
	if src == nil || interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			loadCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
			stations, err := src.LoadStations(loadCtx)
			cancel()
			if err != nil {
				logger.Warn("station directory refresh failed", "source", src.Name(), "error", err)
				continue
			}
			dir.Replace(stations)
			logger.Info("station directory refreshed", "source", src.Name(), "stations", len(stations))
		case <-ctx.Done():
			return
		}
	}
}

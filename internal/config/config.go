package config

import (
	"flag"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     string
	Env      string
	LogLevel string

	SchemaPath   string
	ModelPath    string
	ModelURL     string
	ModelTimeout time.Duration
	ModelRPS     float64
	ModelBurst   int

	StationsCSV     string
	StationsDBURL   string
	StationsRefresh time.Duration

	APIRPS      float64
	APIBurst    int
	CORSOrigins []string

	YearMin int
	YearMax int
}

// Load reads .env (if present), then the environment, then command-line
// flags, each overriding the previous.
func Load(args []string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("error loading .env file", "error", err)
	}

	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		Env:             getEnv("ENV", "development"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		SchemaPath:      getEnv("SCHEMA_PATH", "model_columns.json"),
		ModelPath:       getEnv("MODEL_PATH", "pollution_model.json"),
		ModelURL:        getEnv("MODEL_URL", ""),
		ModelTimeout:    getEnvDuration("MODEL_TIMEOUT", 10*time.Second),
		ModelRPS:        getEnvFloat("MODEL_RPS", 5),
		ModelBurst:      getEnvInt("MODEL_BURST", 10),
		StationsCSV:     getEnv("STATIONS_CSV", "station_locations.csv"),
		StationsDBURL:   getEnv("STATIONS_DB_URL", ""),
		StationsRefresh: getEnvDuration("STATIONS_REFRESH", 0),
		APIRPS:          getEnvFloat("API_RPS", 20),
		APIBurst:        getEnvInt("API_BURST", 40),
		CORSOrigins:     splitList(getEnv("CORS_ORIGINS", "http://localhost:3000,http://127.0.0.1:3000")),
		YearMin:         getEnvInt("YEAR_MIN", 2000),
		YearMax:         getEnvInt("YEAR_MAX", 2100),
	}

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.StringVar(&cfg.Port, "port", cfg.Port, "Port to run the server on")
	fs.StringVar(&cfg.SchemaPath, "schema", cfg.SchemaPath, "Path to the model column schema (JSON array)")
	fs.StringVar(&cfg.ModelPath, "model", cfg.ModelPath, "Path to the linear model artifact (JSON)")
	fs.StringVar(&cfg.ModelURL, "model-url", cfg.ModelURL, "Base URL of a remote model server; overrides -model")
	fs.StringVar(&cfg.StationsCSV, "stations", cfg.StationsCSV, "Path to the station directory CSV")
	fs.StringVar(&cfg.StationsDBURL, "stations-db", cfg.StationsDBURL, "Postgres DSN for the station directory; overrides -stations")
	fs.DurationVar(&cfg.StationsRefresh, "stations-refresh", cfg.StationsRefresh, "Station directory refresh interval (0 disables)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return v
}

func getEnvFloat(key string, fallback float64) float64 {
	v, err := strconv.ParseFloat(getEnv(key, ""), 64)
	if err != nil {
		return fallback
	}
	return v
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return v
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

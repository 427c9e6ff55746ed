package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"water-quality/internal/api"
	"water-quality/internal/config"
	"water-quality/internal/mlclient"
	"water-quality/internal/service"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(2)
	}
	logger := config.InitLogger(cfg.Env, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rules := service.DefaultRules()
	rules.YearMin, rules.YearMax = cfg.YearMin, cfg.YearMax

	// Artifacts are loaded once; without them no prediction is possible.
	schema, err := service.LoadSchema(cfg.SchemaPath)
	if err != nil {
		logger.Error("failed to load schema", "path", cfg.SchemaPath, "error", err)
		os.Exit(1)
	}
	encoder, err := service.NewEncoder(schema, rules)
	if err != nil {
		logger.Error("invalid schema", "path", cfg.SchemaPath, "error", err)
		os.Exit(1)
	}

	var predictor service.Predictor
	if cfg.ModelURL != "" {
		client := mlclient.NewClient(cfg.ModelURL, cfg.ModelTimeout, rules.Pollutants)
		predictor = mlclient.NewRateLimitedPredictor(client, cfg.ModelRPS, cfg.ModelBurst)
		logger.Info("using remote model", "url", cfg.ModelURL, "rps", cfg.ModelRPS)
	} else {
		model, err := service.LoadLinearModel(cfg.ModelPath, rules.Pollutants)
		if err != nil {
			logger.Error("failed to load model", "path", cfg.ModelPath, "error", err)
			os.Exit(1)
		}
		if err := service.CheckColumns(model.Columns, schema); err != nil {
			logger.Warn("model columns differ from schema, predictions will be rejected", "error", err)
		}
		predictor = model
		logger.Info("using local model", "path", cfg.ModelPath, "columns", len(model.Columns))
	}

	var source service.StationSource
	if cfg.StationsDBURL != "" {
		pg, err := service.NewPostgresStationSource(ctx, cfg.StationsDBURL)
		if err != nil {
			logger.Warn("station database unavailable, continuing without it", "error", err)
		} else {
			defer pg.Close()
			source = pg
		}
	} else if cfg.StationsCSV != "" {
		source = service.NewCSVStationSource(cfg.StationsCSV)
	}
	stations := service.LoadDirectory(ctx, source, logger)
	go service.RefreshDirectory(ctx, stations, source, cfg.StationsRefresh, logger)

	svc := service.NewPredictionService(rules, encoder, predictor, stations)
	handler := api.NewHandler(svc, logger)
	router := api.NewRouter(handler, api.RouterOptions{
		CORSOrigins: cfg.CORSOrigins,
		APIRPS:      cfg.APIRPS,
		APIBurst:    cfg.APIBurst,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("starting server", "addr", "http://localhost:"+cfg.Port, "schema_columns", len(schema), "stations", stations.Len())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}

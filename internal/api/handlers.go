package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"water-quality/internal/export"
	"water-quality/internal/models"
	"water-quality/internal/service"
)

type Handler struct {
	Service *service.PredictionService
	Logger  *slog.Logger
}

func NewHandler(svc *service.PredictionService, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{Service: svc, Logger: logger}
}

// RegisterRoutes mounts the page and the API; apiMiddlewares apply to /api only
func (h *Handler) RegisterRoutes(r chi.Router, apiMiddlewares ...func(http.Handler) http.Handler) {
	r.Get("/", h.Index)
	r.Post("/", h.SubmitForm)
	r.Get("/health", h.HealthCheck)

	r.Route("/api", func(r chi.Router) {
		r.Use(apiMiddlewares...)
		r.Post("/predict", h.Predict)
		r.Get("/export/{format}", h.Export)
		r.Get("/stations", h.ListStations)
		r.Get("/stations/{id}", h.GetStation)
		r.Get("/schema", h.GetSchema)
	})
}

// ============================================================================
// Health
// ============================================================================

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("OK"))
}

// ============================================================================
// Prediction
// ============================================================================

// Predict handles POST /api/predict
func (h *Handler) Predict(w http.ResponseWriter, r *http.Request) {
	var req models.PredictionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	result, err := h.Service.Predict(r.Context(), req)
	if err != nil {
		h.writePredictionError(w, req, err)
		return
	}

	w.Header().Set("X-Report-ID", result.ID)
	writeJSON(w, http.StatusOK, result)
}

// Export handles GET /api/export/{format}?year=&station_id=&season=.
// The prediction is recomputed from the inputs; a failed export does not
// affect anything else.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(chi.URLParam(r, "format"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	req, err := requestFromValues(r.URL.Query().Get("year"), r.URL.Query().Get("station_id"), r.URL.Query().Get("season"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.Service.Predict(r.Context(), req)
	if err != nil {
		h.writePredictionError(w, req, err)
		return
	}

	data, err := export.Render(format, result.Record)
	if err != nil {
		h.Logger.Error("export failed", "format", format, "station_id", req.StationID, "error", err)
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to export %s", format))
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", contentDisposition(format.Filename(result.Record)))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Write(data)
}

func (h *Handler) writePredictionError(w http.ResponseWriter, req models.PredictionRequest, err error) {
	var shapeErr *service.ShapeError
	switch {
	case errors.Is(err, service.ErrEmptyStation):
		writeError(w, http.StatusBadRequest, "Please enter the station ID")
	case errors.Is(err, service.ErrYearOutOfRange), errors.Is(err, models.ErrUnknownSeason):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &shapeErr):
		h.Logger.Error("feature shape mismatch", "station_id", req.StationID, "error", err)
		writeError(w, http.StatusUnprocessableEntity, shapeErr.Error())
	default:
		h.Logger.Error("prediction failed", "station_id", req.StationID, "error", err)
		writeError(w, http.StatusBadGateway, "Prediction failed")
	}
}

// ============================================================================
// Stations & schema
// ============================================================================

// ListStations handles GET /api/stations
func (h *Handler) ListStations(w http.ResponseWriter, r *http.Request) {
	stations := h.Service.Stations().List()
	writeJSON(w, http.StatusOK, models.StationsResponse{Count: len(stations), Stations: stations})
}

// GetStation handles GET /api/stations/{id}
func (h *Handler) GetStation(w http.ResponseWriter, r *http.Request) {
	st, ok := h.Service.Stations().Get(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "Station not found")
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// GetSchema handles GET /api/schema
func (h *Handler) GetSchema(w http.ResponseWriter, r *http.Request) {
	rules := h.Service.Rules()
	writeJSON(w, http.StatusOK, models.SchemaResponse{
		Columns:    h.Service.Encoder().Columns(),
		Seasons:    models.Seasons,
		Pollutants: rules.Pollutants,
		YearMin:    rules.YearMin,
		YearMax:    rules.YearMax,
	})
}

// ============================================================================
// Helpers
// ============================================================================

func requestFromValues(year, stationID, season string) (models.PredictionRequest, error) {
	y, err := strconv.Atoi(year)
	if err != nil {
		return models.PredictionRequest{}, fmt.Errorf("year must be an integer")
	}
	return models.PredictionRequest{Year: y, StationID: stationID, Season: models.Season(season)}, nil
}

// contentDisposition builds an RFC 6266 attachment header; non-ASCII names
// are carried as RFC 2231 filename*.
func contentDisposition(filename string) string {
	if v := mime.FormatMediaType("attachment", map[string]string{"filename": filename}); v != "" {
		return v
	}
	return "attachment"
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, models.ErrorResponse{Error: msg})
}

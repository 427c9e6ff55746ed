package api

import (
	"embed"
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"strconv"

	"water-quality/internal/models"
	"water-quality/internal/service"
)

//go:embed templates/index.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

type pollutantLevel struct {
	Name  models.Pollutant
	Level float64
}

type pageData struct {
	YearMin   int
	YearMax   int
	Year      int
	StationID string
	Season    models.Season
	Seasons   []models.Season

	Warning    string
	Result     *models.PredictionResult
	Pollutants []pollutantLevel
	Query      template.URL
}

func (h *Handler) newPageData() pageData {
	rules := h.Service.Rules()
	return pageData{
		YearMin:   rules.YearMin,
		YearMax:   rules.YearMax,
		Year:      2026,
		StationID: "1",
		Season:    models.SeasonSummer,
		Seasons:   models.Seasons,
	}
}

// Index handles GET /
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, h.newPageData())
}

// SubmitForm handles POST / from the page form
func (h *Handler) SubmitForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid form")
		return
	}

	data := h.newPageData()
	data.StationID = r.FormValue("station_id")
	if season, err := models.ParseSeason(r.FormValue("season")); err == nil {
		data.Season = season
	}

	year, err := strconv.Atoi(r.FormValue("year"))
	if err != nil {
		data.Warning = "Please enter a valid year"
		h.renderPage(w, data)
		return
	}
	data.Year = year

	req := models.PredictionRequest{Year: year, StationID: data.StationID, Season: models.Season(r.FormValue("season"))}
	result, err := h.Service.Predict(r.Context(), req)
	if err != nil {
		var shapeErr *service.ShapeError
		switch {
		case errors.Is(err, service.ErrEmptyStation):
			data.Warning = "Please enter the station ID"
		case errors.Is(err, service.ErrYearOutOfRange), errors.Is(err, models.ErrUnknownSeason):
			data.Warning = err.Error()
		case errors.As(err, &shapeErr):
			h.Logger.Error("feature shape mismatch", "station_id", req.StationID, "error", err)
			data.Warning = "The model rejected the input features: " + shapeErr.Reason
		default:
			h.Logger.Error("prediction failed", "station_id", req.StationID, "error", err)
			data.Warning = "Prediction failed, please try again"
		}
		h.renderPage(w, data)
		return
	}

	data.Result = result
	for _, p := range h.Service.Rules().Pollutants {
		data.Pollutants = append(data.Pollutants, pollutantLevel{Name: p, Level: result.Pollutants[p]})
	}
	q := url.Values{}
	q.Set("year", strconv.Itoa(result.Request.Year))
	q.Set("station_id", result.Request.StationID)
	q.Set("season", string(result.Request.Season))
	data.Query = template.URL(q.Encode())

	h.renderPage(w, data)
}

func (h *Handler) renderPage(w http.ResponseWriter, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, data); err != nil {
		h.Logger.Error("failed to render page", "error", err)
	}
}

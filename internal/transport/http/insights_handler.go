package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "f500cli/internal/errors"
)

// InsightsHandler serves the aggregation endpoints for a cached dataset.
type InsightsHandler struct {
	service      InsightsServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewInsightsHandler creates an insights handler.
func NewInsightsHandler(service InsightsServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *InsightsHandler {
	return &InsightsHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "insights_handler")),
		errorHandler: errorHandler,
	}
}

// RegisterRoutes mounts the insight routes on the dataset subtree.
func (h *InsightsHandler) RegisterRoutes(r chi.Router) {
	r.Get("/revenue-by-region", h.RevenueByRegion)
	r.Get("/mean-revenue-by-region", h.MeanRevenueByRegion)
	r.Get("/top-companies", h.TopCompanies)
	r.Get("/profit-margins", h.ProfitMargins)
	r.Get("/region-summary", h.RegionSummary)
	r.Get("/companies-by-subregion", h.CompaniesBySubregion)
	r.Get("/employees-by-subregion", h.EmployeesBySubregion)
}

// RevenueByRegion handles GET .../insights/revenue-by-region.
func (h *InsightsHandler) RevenueByRegion(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "datasetID")

	entries, err := h.service.RevenueByRegion(r.Context(), id)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"dataset_id": id,
		"entries":    entries,
	})
}

// MeanRevenueByRegion handles GET .../insights/mean-revenue-by-region.
func (h *InsightsHandler) MeanRevenueByRegion(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "datasetID")

	entries, err := h.service.MeanRevenueByRegion(r.Context(), id)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"dataset_id": id,
		"entries":    entries,
	})
}

// TopCompanies handles GET .../insights/top-companies?limit=N.
func (h *InsightsHandler) TopCompanies(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "datasetID")

	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			h.errorHandler.HandleError(w, r, apierrors.ErrValidation("limit", "limit must be an integer"))
			return
		}
		limit = n
	}

	top, err := h.service.TopCompanies(r.Context(), id, limit)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, top)
}

// ProfitMargins handles GET .../insights/profit-margins?region=R.
func (h *InsightsHandler) ProfitMargins(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "datasetID")
	region := r.URL.Query().Get("region")

	margins, err := h.service.ProfitMargins(r.Context(), id, region)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"dataset_id": id,
		"region":     region,
		"companies":  margins,
	})
}

// RegionSummary handles GET .../insights/region-summary?region=R.
func (h *InsightsHandler) RegionSummary(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "datasetID")
	region := r.URL.Query().Get("region")

	summary, err := h.service.RegionSummary(r.Context(), id, region)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, summary)
}

// CompaniesBySubregion handles GET .../insights/companies-by-subregion.
func (h *InsightsHandler) CompaniesBySubregion(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "datasetID")

	entries, err := h.service.CompaniesBySubregion(r.Context(), id)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"dataset_id": id,
		"entries":    entries,
	})
}

// EmployeesBySubregion handles GET .../insights/employees-by-subregion.
func (h *InsightsHandler) EmployeesBySubregion(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "datasetID")

	entries, err := h.service.EmployeesBySubregion(r.Context(), id)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"dataset_id": id,
		"entries":    entries,
	})
}

// Locations handles GET /api/datasets/{datasetID}/locations.
func (h *InsightsHandler) Locations(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "datasetID")

	locations, err := h.service.Locations(r.Context(), id)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"dataset_id": id,
		"locations":  locations,
	})
}

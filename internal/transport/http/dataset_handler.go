package http

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "f500cli/internal/errors"
	"f500cli/internal/exporter"
)

// DatasetHandler handles dataset upload and metadata requests.
type DatasetHandler struct {
	service        DatasetServiceInterface
	writer         *exporter.Writer
	logger         *slog.Logger
	errorHandler   *apierrors.ErrorHandler
	maxUploadBytes int64
}

// NewDatasetHandler creates a dataset handler.
func NewDatasetHandler(service DatasetServiceInterface, writer *exporter.Writer, logger *slog.Logger, errorHandler *apierrors.ErrorHandler, maxUploadBytes int64) *DatasetHandler {
	return &DatasetHandler{
		service:        service,
		writer:         writer,
		logger:         logger.With(slog.String("component", "dataset_handler")),
		errorHandler:   errorHandler,
		maxUploadBytes: maxUploadBytes,
	}
}

// DatasetCtx validates the dataset ID path parameter.
func (h *DatasetHandler) DatasetCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "datasetID")
		if id == "" {
			h.errorHandler.HandleError(w, r, apierrors.ErrValidation("dataset_id", "dataset ID is required"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Upload handles POST /api/datasets. The dataset arrives either as a
// multipart form with a "file" field or as the raw request body.
func (h *DatasetHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	filename, raw, err := h.readUpload(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("file", err.Error()))
		return
	}

	summary, err := h.service.Upload(r.Context(), filename, raw)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, summary)
}

func (h *DatasetHandler) readUpload(r *http.Request) (string, []byte, error) {
	file, header, err := r.FormFile("file")
	if err == nil {
		defer file.Close()
		raw, err := io.ReadAll(file)
		if err != nil {
			return "", nil, fmt.Errorf("failed to read uploaded file: %w", err)
		}
		return header.Filename, raw, nil
	}

	// Not a multipart form; take the raw body as CSV.
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read request body: %w", err)
	}
	return "", raw, nil
}

// Summary handles GET /api/datasets/{datasetID}.
func (h *DatasetHandler) Summary(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "datasetID")

	summary, err := h.service.Summary(r.Context(), id)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, summary)
}

// Regions handles GET /api/datasets/{datasetID}/regions.
func (h *DatasetHandler) Regions(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "datasetID")

	ds, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"dataset_id": id,
		"regions":    ds.Regions(),
	})
}

// Export handles GET /api/datasets/{datasetID}/export/{report}.
// Query parameters: format=csv|xlsx (default csv), limit for top-companies.
func (h *DatasetHandler) Export(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "datasetID")
	report := chi.URLParam(r, "report")

	ds, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	topN := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 50 {
			h.errorHandler.HandleError(w, r, apierrors.ErrValidation("limit", "limit must be between 1 and 50"))
			return
		}
		topN = n
	}

	headers, records, err := exporter.BuildReport(ds, report, topN)
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("report", err.Error()))
		return
	}

	format := r.URL.Query().Get("format")
	switch format {
	case "", "csv":
		data, err := h.writer.CSVBytes(headers, records)
		if err != nil {
			h.errorHandler.HandleError(w, r, apierrors.ExportError(report, err))
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.csv", report))
		w.Write(data)
	case "xlsx":
		data, err := h.writer.ExcelBytes(report, headers, records)
		if err != nil {
			h.errorHandler.HandleError(w, r, apierrors.ExportError(report, err))
			return
		}
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.xlsx", report))
		w.Write(data)
	default:
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("format", fmt.Sprintf("unsupported export format %q", format)))
	}
}

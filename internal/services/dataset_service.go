package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"f500cli/internal/dataset"
	apierrors "f500cli/internal/errors"
	"f500cli/internal/validation"
	"f500cli/pkg/contracts/domain"
)

// DatasetService owns the upload-clean-cache lifecycle of datasets.
type DatasetService struct {
	loader    *dataset.Loader
	store     *dataset.Store
	validator *validation.UploadValidator
	logger    *slog.Logger
}

// NewDatasetService creates a dataset service.
func NewDatasetService(loader *dataset.Loader, store *dataset.Store, validator *validation.UploadValidator, logger *slog.Logger) *DatasetService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DatasetService{
		loader:    loader,
		store:     store,
		validator: validator,
		logger:    logger.With(slog.String("component", "dataset_service")),
	}
}

// Upload validates, cleans and caches an uploaded dataset. Re-uploading
// identical bytes is a cache hit and returns the existing dataset's summary.
// All failures come back as *apierrors.APIError values.
func (s *DatasetService) Upload(ctx context.Context, filename string, raw []byte) (*domain.DatasetSummary, error) {
	kind, err := s.validator.ValidateUpload(filename, int64(len(raw)))
	if err != nil {
		if strings.Contains(err.Error(), "payload too large") {
			return nil, apierrors.ErrPayloadTooLarge
		}
		return nil, apierrors.ErrValidation("file", err.Error())
	}

	id := dataset.Fingerprint(raw)
	if cached, ok := s.store.Get(id); ok {
		s.logger.InfoContext(ctx, "dataset cache hit", slog.String("dataset_id", id))
		return s.summarize(cached), nil
	}

	var ds *domain.Dataset
	switch kind {
	case validation.KindExcel:
		ds, err = s.loader.LoadExcel(raw)
	default:
		ds, err = s.loader.Load(raw)
	}
	if err != nil {
		var parseErr *dataset.ParseError
		var schemaErr *dataset.SchemaError
		switch {
		case errors.As(err, &schemaErr):
			s.logger.WarnContext(ctx, "dataset schema invalid",
				slog.String("missing", strings.Join(schemaErr.Missing, ", ")))
			return nil, apierrors.DatasetSchemaError(schemaErr)
		case errors.As(err, &parseErr):
			s.logger.WarnContext(ctx, "dataset parse failed", slog.String("error", parseErr.Error()))
			return nil, apierrors.DatasetParseError(parseErr)
		default:
			return nil, fmt.Errorf("failed to load dataset: %w", err)
		}
	}

	ds.ID = id
	s.store.Put(ds)

	s.logger.InfoContext(ctx, "dataset stored",
		slog.String("dataset_id", id),
		slog.Int("rows", ds.Len()),
		slog.Int("dropped_rows", ds.DroppedRows))

	return s.summarize(ds), nil
}

// Get resolves a cached dataset by ID.
func (s *DatasetService) Get(ctx context.Context, id string) (*domain.Dataset, error) {
	ds, ok := s.store.Get(id)
	if !ok {
		return nil, apierrors.DatasetNotFoundError(id)
	}
	return ds, nil
}

// Summary returns the summary for a cached dataset.
func (s *DatasetService) Summary(ctx context.Context, id string) (*domain.DatasetSummary, error) {
	ds, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.summarize(ds), nil
}

// Invalidate drops a dataset from the cache.
func (s *DatasetService) Invalidate(ctx context.Context, id string) {
	s.store.Invalidate(id)
	s.logger.InfoContext(ctx, "dataset invalidated", slog.String("dataset_id", id))
}

// StoreStats exposes cache statistics for the health endpoint.
func (s *DatasetService) StoreStats() map[string]interface{} {
	return s.store.Stats()
}

func (s *DatasetService) summarize(ds *domain.Dataset) *domain.DatasetSummary {
	return &domain.DatasetSummary{
		ID:          ds.ID,
		Rows:        ds.Len(),
		DroppedRows: ds.DroppedRows,
		Regions:     ds.Regions(),
		HasLocation: ds.HasLocation,
		Diagnostics: ds.Diagnostics,
	}
}

package services

import (
	"context"
	"log/slog"

	"github.com/go-playground/validator/v10"

	apierrors "f500cli/internal/errors"
	"f500cli/internal/insights"
	"f500cli/pkg/contracts/domain"
)

// TopNParams carries the validated top-N selection parameter.
type TopNParams struct {
	Limit int `json:"limit" validate:"min=1,max=50"`
}

// RegionParams carries the validated region selection parameter.
type RegionParams struct {
	Region string `json:"region" validate:"required"`
}

// InsightsService runs the aggregation engine over cached datasets.
// Every call recomputes from the full in-memory table; nothing is mutated.
type InsightsService struct {
	datasets *DatasetService
	validate *validator.Validate
	logger   *slog.Logger
}

// NewInsightsService creates an insights service.
func NewInsightsService(datasets *DatasetService, logger *slog.Logger) *InsightsService {
	if logger == nil {
		logger = slog.Default()
	}
	return &InsightsService{
		datasets: datasets,
		validate: validator.New(),
		logger:   logger.With(slog.String("component", "insights_service")),
	}
}

// RevenueByRegion returns total revenue per region.
func (s *InsightsService) RevenueByRegion(ctx context.Context, id string) ([]domain.RegionRevenue, error) {
	ds, err := s.datasets.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return insights.RevenueByRegion(ds), nil
}

// MeanRevenueByRegion returns mean revenue per region.
func (s *InsightsService) MeanRevenueByRegion(ctx context.Context, id string) ([]domain.RegionRevenue, error) {
	ds, err := s.datasets.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return insights.MeanRevenueByRegion(ds), nil
}

// TopCompanies returns the top-N companies by revenue plus their total.
func (s *InsightsService) TopCompanies(ctx context.Context, id string, limit int) (*domain.TopCompanies, error) {
	if err := s.validate.Struct(TopNParams{Limit: limit}); err != nil {
		return nil, apierrors.ErrValidation("limit", "limit must be between 1 and 50")
	}

	ds, err := s.datasets.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	top := insights.TopByRevenue(ds, limit)
	s.logger.DebugContext(ctx, "computed top companies",
		slog.String("dataset_id", id),
		slog.Int("limit", limit),
		slog.Float64("total_revenue", top.TotalRevenue))
	return &top, nil
}

// ProfitMargins returns per-company margins for the selected region.
func (s *InsightsService) ProfitMargins(ctx context.Context, id, region string) ([]domain.CompanyMargin, error) {
	if err := s.validate.Struct(RegionParams{Region: region}); err != nil {
		return nil, apierrors.ErrValidation("region", "region is required")
	}

	ds, err := s.datasets.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return insights.ProfitMargins(ds, region), nil
}

// RegionSummary returns the scalar insights for a region with no-data
// sentinels; an absent region is a valid query and yields no_data=true.
func (s *InsightsService) RegionSummary(ctx context.Context, id, region string) (*domain.RegionSummary, error) {
	if err := s.validate.Struct(RegionParams{Region: region}); err != nil {
		return nil, apierrors.ErrValidation("region", "region is required")
	}

	ds, err := s.datasets.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	summary := insights.Summarize(ds, region)
	return &summary, nil
}

// CompaniesBySubregion returns company counts per subregion, descending.
func (s *InsightsService) CompaniesBySubregion(ctx context.Context, id string) ([]domain.SubregionCount, error) {
	ds, err := s.datasets.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return insights.CompaniesBySubregion(ds), nil
}

// EmployeesBySubregion returns employee totals per subregion, descending.
func (s *InsightsService) EmployeesBySubregion(ctx context.Context, id string) ([]domain.SubregionEmployees, error) {
	ds, err := s.datasets.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return insights.EmployeesBySubregion(ds), nil
}

// Locations returns the mappable company points.
func (s *InsightsService) Locations(ctx context.Context, id string) ([]domain.CompanyLocation, error) {
	ds, err := s.datasets.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return insights.Locations(ds), nil
}

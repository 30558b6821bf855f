package http

import (
	"context"

	"f500cli/pkg/contracts/domain"
)

// DatasetServiceInterface defines the dataset operations used by handlers.
type DatasetServiceInterface interface {
	Upload(ctx context.Context, filename string, raw []byte) (*domain.DatasetSummary, error)
	Get(ctx context.Context, id string) (*domain.Dataset, error)
	Summary(ctx context.Context, id string) (*domain.DatasetSummary, error)
	StoreStats() map[string]interface{}
}

// InsightsServiceInterface defines the aggregation operations used by handlers.
type InsightsServiceInterface interface {
	RevenueByRegion(ctx context.Context, id string) ([]domain.RegionRevenue, error)
	MeanRevenueByRegion(ctx context.Context, id string) ([]domain.RegionRevenue, error)
	TopCompanies(ctx context.Context, id string, limit int) (*domain.TopCompanies, error)
	ProfitMargins(ctx context.Context, id, region string) ([]domain.CompanyMargin, error)
	RegionSummary(ctx context.Context, id, region string) (*domain.RegionSummary, error)
	CompaniesBySubregion(ctx context.Context, id string) ([]domain.SubregionCount, error)
	EmployeesBySubregion(ctx context.Context, id string) ([]domain.SubregionEmployees, error)
	Locations(ctx context.Context, id string) ([]domain.CompanyLocation, error)
}

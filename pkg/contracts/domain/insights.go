package domain

// RegionRevenue is one entry of a per-region revenue aggregate
// (total or mean, depending on the producing operation).
type RegionRevenue struct {
	Region  string  `json:"region"`
	Revenue float64 `json:"revenue"`
}

// CompanyRevenue is one entry of the top-N-by-revenue ranking.
type CompanyRevenue struct {
	Name    string  `json:"name"`
	Revenue float64 `json:"revenue"`
}

// TopCompanies is the top-N ranking plus the sum of the selected revenues.
type TopCompanies struct {
	Limit        int              `json:"limit"`
	Companies    []CompanyRevenue `json:"companies"`
	TotalRevenue float64          `json:"total_revenue"`
}

// CompanyMargin is one per-company profit margin within a region.
type CompanyMargin struct {
	Name    string  `json:"name"`
	Revenue float64 `json:"revenue"`
	Profit  float64 `json:"profit"`
	Margin  float64 `json:"margin"`
}

// RegionSummary bundles the per-region scalar insights. A nil pointer means
// the value is undefined for the selection (no matching rows or fewer than
// two rows for growth) and must be rendered as an explicit no-data marker,
// never as NaN.
type RegionSummary struct {
	Region           string   `json:"region"`
	CompanyCount     int      `json:"company_count"`
	MeanProfitMargin *float64 `json:"mean_profit_margin,omitempty"`
	MeanEmployees    *float64 `json:"mean_employees,omitempty"`
	RevenueGrowth    *float64 `json:"revenue_growth,omitempty"`
	NationalGrowth   *float64 `json:"national_growth,omitempty"`
	NoData           bool     `json:"no_data"`
}

// SubregionCount is one entry of the companies-per-subregion aggregate.
type SubregionCount struct {
	Subregion string `json:"subregion"`
	Companies int    `json:"companies"`
}

// SubregionEmployees is one entry of the employees-per-subregion aggregate.
type SubregionEmployees struct {
	Subregion string `json:"subregion"`
	Employees int64  `json:"employees"`
}

// CompanyLocation is one mappable point for the geographic layer.
type CompanyLocation struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// DatasetSummary describes an uploaded dataset to the presentation layer.
type DatasetSummary struct {
	ID          string   `json:"id"`
	Rows        int      `json:"rows"`
	DroppedRows int      `json:"dropped_rows"`
	Regions     []string `json:"regions"`
	HasLocation bool     `json:"has_location"`
	Diagnostics []string `json:"diagnostics,omitempty"`
}

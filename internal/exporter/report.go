package exporter

import (
	"fmt"
	"strconv"

	"f500cli/internal/insights"
	"f500cli/pkg/contracts/domain"
)

// Report names accepted by BuildReport and the export endpoint.
const (
	ReportRevenueByRegion      = "revenue-by-region"
	ReportMeanRevenueByRegion  = "mean-revenue-by-region"
	ReportTopCompanies         = "top-companies"
	ReportCompaniesBySubregion = "companies-by-subregion"
	ReportEmployeesBySubregion = "employees-by-subregion"
	ReportCleanedRows          = "cleaned-rows"
)

// BuildReport materializes a named aggregate as headers + string records.
// topN only applies to the top-companies report.
func BuildReport(ds *domain.Dataset, report string, topN int) ([]string, [][]string, error) {
	switch report {
	case ReportRevenueByRegion:
		entries := insights.RevenueByRegion(ds)
		records := make([][]string, 0, len(entries))
		for _, e := range entries {
			records = append(records, []string{e.Region, formatFloat(e.Revenue)})
		}
		return []string{"STATE", "TOTAL_REVENUE"}, records, nil

	case ReportMeanRevenueByRegion:
		entries := insights.MeanRevenueByRegion(ds)
		records := make([][]string, 0, len(entries))
		for _, e := range entries {
			records = append(records, []string{e.Region, formatFloat(e.Revenue)})
		}
		return []string{"STATE", "AVG_REVENUE"}, records, nil

	case ReportTopCompanies:
		top := insights.TopByRevenue(ds, topN)
		records := make([][]string, 0, len(top.Companies))
		for _, c := range top.Companies {
			records = append(records, []string{c.Name, formatFloat(c.Revenue)})
		}
		return []string{"NAME", "REVENUES"}, records, nil

	case ReportCompaniesBySubregion:
		entries := insights.CompaniesBySubregion(ds)
		records := make([][]string, 0, len(entries))
		for _, e := range entries {
			records = append(records, []string{e.Subregion, strconv.Itoa(e.Companies)})
		}
		return []string{"COUNTY", "NUM_COMPANIES"}, records, nil

	case ReportEmployeesBySubregion:
		entries := insights.EmployeesBySubregion(ds)
		records := make([][]string, 0, len(entries))
		for _, e := range entries {
			records = append(records, []string{e.Subregion, strconv.FormatInt(e.Employees, 10)})
		}
		return []string{"COUNTY", "EMPLOYEES"}, records, nil

	case ReportCleanedRows:
		records := make([][]string, 0, ds.Len())
		for _, c := range ds.Companies {
			records = append(records, []string{
				c.Name,
				formatFloat(c.Revenue),
				formatFloat(c.Profit),
				strconv.FormatInt(c.Employees, 10),
				c.Region,
				c.Subregion,
			})
		}
		return []string{"NAME", "REVENUES", "PROFIT", "EMPLOYEES", "STATE", "COUNTY"}, records, nil

	default:
		return nil, nil, fmt.Errorf("unknown report %q", report)
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

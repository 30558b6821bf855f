// Package insights computes the dashboard aggregates over a cleaned dataset.
// Every function is pure: it reads the immutable dataset and request
// parameters, returns a fresh result, and shares no state between calls.
package insights

import (
	"sort"

	"f500cli/pkg/contracts/domain"
)

// MaxTopN bounds the top-N selection parameter.
const MaxTopN = 50

// RevenueByRegion sums revenue per region, one entry per distinct region in
// first-seen order. The entries partition total revenue: their sum equals
// the sum of revenue across the whole dataset.
func RevenueByRegion(ds *domain.Dataset) []domain.RegionRevenue {
	totals := make(map[string]float64)
	var order []string

	for _, c := range ds.Companies {
		if _, seen := totals[c.Region]; !seen {
			order = append(order, c.Region)
		}
		totals[c.Region] += c.Revenue
	}

	result := make([]domain.RegionRevenue, 0, len(order))
	for _, region := range order {
		result = append(result, domain.RegionRevenue{Region: region, Revenue: totals[region]})
	}
	return result
}

// MeanRevenueByRegion averages revenue per region, first-seen order.
func MeanRevenueByRegion(ds *domain.Dataset) []domain.RegionRevenue {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	var order []string

	for _, c := range ds.Companies {
		if _, seen := sums[c.Region]; !seen {
			order = append(order, c.Region)
		}
		sums[c.Region] += c.Revenue
		counts[c.Region]++
	}

	result := make([]domain.RegionRevenue, 0, len(order))
	for _, region := range order {
		result = append(result, domain.RegionRevenue{
			Region:  region,
			Revenue: sums[region] / float64(counts[region]),
		})
	}
	return result
}

// TopByRevenue returns the n companies with greatest revenue, sorted
// descending. The sort is stable, so revenue ties keep original row order,
// and the result length is min(n, rows). TotalRevenue sums the selection.
func TopByRevenue(ds *domain.Dataset, n int) domain.TopCompanies {
	if n < 1 {
		n = 1
	}
	if n > MaxTopN {
		n = MaxTopN
	}

	ranked := make([]domain.CompanyRevenue, 0, len(ds.Companies))
	for _, c := range ds.Companies {
		ranked = append(ranked, domain.CompanyRevenue{Name: c.Name, Revenue: c.Revenue})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Revenue > ranked[j].Revenue
	})

	if n > len(ranked) {
		n = len(ranked)
	}
	ranked = ranked[:n]

	var total float64
	for _, c := range ranked {
		total += c.Revenue
	}

	return domain.TopCompanies{Limit: n, Companies: ranked, TotalRevenue: total}
}

// ProfitMargins lists the per-company profit margin for every row of the
// selected region, in table order. A zero-revenue row yields margin 0.
func ProfitMargins(ds *domain.Dataset, region string) []domain.CompanyMargin {
	var result []domain.CompanyMargin
	for _, c := range ds.Companies {
		if c.Region != region {
			continue
		}
		result = append(result, domain.CompanyMargin{
			Name:    c.Name,
			Revenue: c.Revenue,
			Profit:  c.Profit,
			Margin:  c.ProfitMargin(),
		})
	}
	return result
}

// MeanProfitMargin averages the profit margins of the selected region.
// ok is false when the region has no rows; the mean of an empty selection
// is undefined and must be rendered as no-data, never NaN.
func MeanProfitMargin(ds *domain.Dataset, region string) (float64, bool) {
	var sum float64
	var count int
	for _, c := range ds.Companies {
		if c.Region == region {
			sum += c.ProfitMargin()
			count++
		}
	}
	if count == 0 {
		return 0, false
	}
	return sum / float64(count), true
}

// MeanEmployees averages the employee count of the selected region.
// ok is false when the region has no rows.
func MeanEmployees(ds *domain.Dataset, region string) (float64, bool) {
	var sum int64
	var count int
	for _, c := range ds.Companies {
		if c.Region == region {
			sum += c.Employees
			count++
		}
	}
	if count == 0 {
		return 0, false
	}
	return float64(sum) / float64(count), true
}

// RevenueGrowth reports the mean period-over-period revenue change within
// the region's rows and across the whole table. Changes are computed on
// consecutive rows in table order; the data carries no time field, so this
// measures row-adjacency drift, not temporal growth. Pairs with a zero
// previous revenue are skipped, and ok is false when no pair remains.
func RevenueGrowth(ds *domain.Dataset, region string) (regionGrowth float64, regionOK bool, nationalGrowth float64, nationalOK bool) {
	var regionRows []domain.Company
	for _, c := range ds.Companies {
		if c.Region == region {
			regionRows = append(regionRows, c)
		}
	}

	regionGrowth, regionOK = meanPctChange(regionRows)
	nationalGrowth, nationalOK = meanPctChange(ds.Companies)
	return regionGrowth, regionOK, nationalGrowth, nationalOK
}

func meanPctChange(rows []domain.Company) (float64, bool) {
	var sum float64
	var count int
	for i := 1; i < len(rows); i++ {
		prev := rows[i-1].Revenue
		if prev == 0 {
			continue
		}
		sum += (rows[i].Revenue - prev) / prev * 100
		count++
	}
	if count == 0 {
		return 0, false
	}
	return sum / float64(count), true
}

// Summarize bundles the per-region scalar insights with no-data sentinels.
func Summarize(ds *domain.Dataset, region string) domain.RegionSummary {
	summary := domain.RegionSummary{Region: region}

	for _, c := range ds.Companies {
		if c.Region == region {
			summary.CompanyCount++
		}
	}
	if summary.CompanyCount == 0 {
		summary.NoData = true
		return summary
	}

	if margin, ok := MeanProfitMargin(ds, region); ok {
		summary.MeanProfitMargin = &margin
	}
	if employees, ok := MeanEmployees(ds, region); ok {
		summary.MeanEmployees = &employees
	}
	regionGrowth, regionOK, nationalGrowth, nationalOK := RevenueGrowth(ds, region)
	if regionOK {
		summary.RevenueGrowth = &regionGrowth
	}
	if nationalOK {
		summary.NationalGrowth = &nationalGrowth
	}

	return summary
}

// CompaniesBySubregion counts companies per subregion, sorted descending by
// count. Ties keep first-seen order, so the "top" subregion is stable.
func CompaniesBySubregion(ds *domain.Dataset) []domain.SubregionCount {
	counts := make(map[string]int)
	var order []string

	for _, c := range ds.Companies {
		if _, seen := counts[c.Subregion]; !seen {
			order = append(order, c.Subregion)
		}
		counts[c.Subregion]++
	}

	result := make([]domain.SubregionCount, 0, len(order))
	for _, subregion := range order {
		result = append(result, domain.SubregionCount{Subregion: subregion, Companies: counts[subregion]})
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Companies > result[j].Companies
	})
	return result
}

// EmployeesBySubregion sums employees per subregion, sorted descending by
// total. Same tie policy as CompaniesBySubregion.
func EmployeesBySubregion(ds *domain.Dataset) []domain.SubregionEmployees {
	totals := make(map[string]int64)
	var order []string

	for _, c := range ds.Companies {
		if _, seen := totals[c.Subregion]; !seen {
			order = append(order, c.Subregion)
		}
		totals[c.Subregion] += c.Employees
	}

	result := make([]domain.SubregionEmployees, 0, len(order))
	for _, subregion := range order {
		result = append(result, domain.SubregionEmployees{Subregion: subregion, Employees: totals[subregion]})
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Employees > result[j].Employees
	})
	return result
}

// Locations returns the mappable rows (those with parsed coordinates).
func Locations(ds *domain.Dataset) []domain.CompanyLocation {
	var result []domain.CompanyLocation
	for _, c := range ds.Companies {
		if !c.HasLocation {
			continue
		}
		result = append(result, domain.CompanyLocation{
			Name:      c.Name,
			Latitude:  c.Latitude,
			Longitude: c.Longitude,
		})
	}
	return result
}

package domain

// Company represents one cleaned row of an uploaded dataset.
// Revenue, Profit and Employees are guaranteed numeric after cleaning;
// Latitude/Longitude are only meaningful when HasLocation is true.
type Company struct {
	Name        string  `json:"name"`
	Region      string  `json:"region"`
	Subregion   string  `json:"subregion"`
	Revenue     float64 `json:"revenue"`
	Profit      float64 `json:"profit"`
	Employees   int64   `json:"employees"`
	Latitude    float64 `json:"latitude,omitempty"`
	Longitude   float64 `json:"longitude,omitempty"`
	HasLocation bool    `json:"has_location"`
}

// ProfitMargin returns profit as a percentage of revenue.
// Defined as 0 when revenue is 0 so a zero-revenue row never divides by zero.
func (c Company) ProfitMargin() float64 {
	if c.Revenue == 0 {
		return 0
	}
	return c.Profit / c.Revenue * 100
}

// Dataset is the cleaned, immutable in-memory table for one uploaded file.
// Row order matches input order after filtering. Callers must not mutate
// Companies after construction; every aggregation reads it as-is.
type Dataset struct {
	ID          string    `json:"id"`
	Companies   []Company `json:"companies"`
	Diagnostics []string  `json:"diagnostics,omitempty"`
	DroppedRows int       `json:"dropped_rows"`
	HasLocation bool      `json:"has_location"`
}

// Len returns the number of cleaned rows.
func (d *Dataset) Len() int {
	return len(d.Companies)
}

// Regions returns the distinct region values in first-seen order.
func (d *Dataset) Regions() []string {
	seen := make(map[string]bool, 16)
	var regions []string
	for _, c := range d.Companies {
		if !seen[c.Region] {
			seen[c.Region] = true
			regions = append(regions, c.Region)
		}
	}
	return regions
}

// HasRegion reports whether any cleaned row belongs to the given region.
func (d *Dataset) HasRegion(region string) bool {
	for _, c := range d.Companies {
		if c.Region == region {
			return true
		}
	}
	return false
}

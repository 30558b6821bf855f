package dataset

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"f500cli/pkg/contracts/domain"
)

// Required columns of an uploaded dataset. Matched case-insensitively
// against the header; missing ones are reported with these spellings.
var requiredColumns = []string{"NAME", "REVENUES", "PROFIT", "EMPLOYEES", "STATE", "COUNTY"}

// Optional columns enabling the map layer.
const (
	columnLatitude  = "LATITUDE"
	columnLongitude = "LONGITUDE"
)

// ParseError indicates the raw input is not valid delimited tabular text.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("error reading file: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// SchemaError indicates required columns are absent from the header.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing columns in the uploaded data: %s", strings.Join(e.Missing, ", "))
}

// Loader turns raw uploaded bytes into a cleaned Dataset.
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a dataset loader.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger.With(slog.String("component", "dataset_loader"))}
}

// Load parses raw CSV bytes and cleans them into a Dataset.
// Failures surface as *ParseError or *SchemaError; row-level problems become
// diagnostics on the returned Dataset instead of errors.
func (l *Loader) Load(raw []byte) (*domain.Dataset, error) {
	reader := csv.NewReader(bytes.NewReader(raw))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	if len(records) == 0 {
		return nil, &ParseError{Err: fmt.Errorf("file contains no rows")}
	}

	return l.build(records[0], records[1:])
}

// build runs the shared cleaning pipeline over header + data rows.
func (l *Loader) build(header []string, rows [][]string) (*domain.Dataset, error) {
	columns := mapColumns(header)

	var missing []string
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Missing: missing}
	}

	latIdx, hasLat := columns[columnLatitude]
	lonIdx, hasLon := columns[columnLongitude]
	hasLocation := hasLat && hasLon

	ds := &domain.Dataset{HasLocation: hasLocation}

	for i, row := range rows {
		// Row numbers in diagnostics count from 1 at the header row,
		// matching what a user sees in a spreadsheet.
		rowNum := i + 2

		revenueRaw := cell(row, columns["REVENUES"])
		profitRaw := cell(row, columns["PROFIT"])
		employeesRaw := cell(row, columns["EMPLOYEES"])

		// Rows missing a required numeric value are dropped silently;
		// rows missing only name/region/subregion are kept.
		if revenueRaw == "" || profitRaw == "" || employeesRaw == "" {
			ds.DroppedRows++
			continue
		}

		revenue, err := parseCurrency(revenueRaw)
		if err != nil {
			ds.DroppedRows++
			ds.Diagnostics = append(ds.Diagnostics,
				fmt.Sprintf("row %d: REVENUES: cannot parse %q", rowNum, revenueRaw))
			continue
		}

		profit, err := parseCurrency(profitRaw)
		if err != nil {
			ds.DroppedRows++
			ds.Diagnostics = append(ds.Diagnostics,
				fmt.Sprintf("row %d: PROFIT: cannot parse %q", rowNum, profitRaw))
			continue
		}

		employees, err := parseCount(employeesRaw)
		if err != nil {
			ds.DroppedRows++
			ds.Diagnostics = append(ds.Diagnostics,
				fmt.Sprintf("row %d: EMPLOYEES: cannot parse %q", rowNum, employeesRaw))
			continue
		}

		company := domain.Company{
			Name:      cell(row, columns["NAME"]),
			Region:    cell(row, columns["STATE"]),
			Subregion: cell(row, columns["COUNTY"]),
			Revenue:   revenue,
			Profit:    profit,
			Employees: employees,
		}

		if hasLocation {
			lat, latErr := strconv.ParseFloat(cell(row, latIdx), 64)
			lon, lonErr := strconv.ParseFloat(cell(row, lonIdx), 64)
			if latErr == nil && lonErr == nil {
				company.Latitude = lat
				company.Longitude = lon
				company.HasLocation = true
			}
		}

		ds.Companies = append(ds.Companies, company)
	}

	l.logger.Info("dataset cleaned",
		slog.Int("rows", len(ds.Companies)),
		slog.Int("dropped", ds.DroppedRows),
		slog.Bool("has_location", ds.HasLocation))

	return ds, nil
}

// mapColumns maps normalized header names to their positions.
// The first occurrence of a duplicated header wins.
func mapColumns(header []string) map[string]int {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		key := strings.ToUpper(strings.TrimSpace(name))
		if _, exists := columns[key]; !exists {
			columns[key] = i
		}
	}
	return columns
}

// cell returns the trimmed value at idx, or "" when the row is short.
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseCurrency parses a currency-formatted value such as "$1,000.00" or
// "-$50.00". Already-plain numbers pass through unchanged.
func parseCurrency(s string) (float64, error) {
	cleaned := strings.ReplaceAll(s, "$", "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.TrimSpace(cleaned)
	return strconv.ParseFloat(cleaned, 64)
}

// parseCount parses a comma-grouped integer such as "1,000".
func parseCount(s string) (int64, error) {
	cleaned := strings.ReplaceAll(s, ",", "")
	cleaned = strings.TrimSpace(cleaned)
	return strconv.ParseInt(cleaned, 10, 64)
}

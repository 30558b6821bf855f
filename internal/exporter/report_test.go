package exporter

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"f500cli/pkg/contracts/domain"
)

func reportDataset() *domain.Dataset {
	return &domain.Dataset{
		ID: "test",
		Companies: []domain.Company{
			{Name: "Acme", Region: "CA", Subregion: "Santa Clara", Revenue: 1000, Profit: 100, Employees: 1000},
			{Name: "Beta", Region: "CA", Subregion: "Santa Clara", Revenue: 500, Profit: -50, Employees: 500},
			{Name: "Gamma", Region: "NY", Subregion: "Kings", Revenue: 800, Profit: 80, Employees: 200},
		},
	}
}

func TestBuildReport_RevenueByRegion(t *testing.T) {
	headers, records, err := BuildReport(reportDataset(), ReportRevenueByRegion, 10)
	require.NoError(t, err)

	assert.Equal(t, []string{"STATE", "TOTAL_REVENUE"}, headers)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"CA", "1500.00"}, records[0])
	assert.Equal(t, []string{"NY", "800.00"}, records[1])
}

func TestBuildReport_TopCompaniesHonorsLimit(t *testing.T) {
	headers, records, err := BuildReport(reportDataset(), ReportTopCompanies, 2)
	require.NoError(t, err)

	assert.Equal(t, []string{"NAME", "REVENUES"}, headers)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"Acme", "1000.00"}, records[0])
	assert.Equal(t, []string{"Gamma", "800.00"}, records[1])
}

func TestBuildReport_CleanedRows(t *testing.T) {
	headers, records, err := BuildReport(reportDataset(), ReportCleanedRows, 10)
	require.NoError(t, err)

	assert.Equal(t, []string{"NAME", "REVENUES", "PROFIT", "EMPLOYEES", "STATE", "COUNTY"}, headers)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"Beta", "500.00", "-50.00", "500", "CA", "Santa Clara"}, records[1])
}

func TestBuildReport_Subregions(t *testing.T) {
	_, records, err := BuildReport(reportDataset(), ReportCompaniesBySubregion, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"Santa Clara", "2"}, records[0])

	_, records, err = BuildReport(reportDataset(), ReportEmployeesBySubregion, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"Santa Clara", "1500"}, records[0])
}

func TestBuildReport_UnknownReport(t *testing.T) {
	_, _, err := BuildReport(reportDataset(), "bogus", 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown report "bogus"`)
}

func TestWriter_CSVBytes(t *testing.T) {
	writer := NewWriter(nil)

	data, err := writer.CSVBytes(
		[]string{"STATE", "TOTAL_REVENUE"},
		[][]string{{"CA", "1500.00"}, {"NY", "800.00"}},
	)
	require.NoError(t, err)
	assert.Equal(t, "STATE,TOTAL_REVENUE\nCA,1500.00\nNY,800.00\n", string(data))
}

func TestWriter_CSVBytes_QuotesEmbeddedCommas(t *testing.T) {
	writer := NewWriter(nil)

	data, err := writer.CSVBytes([]string{"NAME"}, [][]string{{"Acme, Inc."}})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"Acme, Inc."`)
}

func TestWriter_ExcelBytes(t *testing.T) {
	writer := NewWriter(nil)

	data, err := writer.ExcelBytes("revenue-by-region",
		[]string{"STATE", "TOTAL_REVENUE"},
		[][]string{{"CA", "1500.00"}},
	)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("revenue-by-region")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"STATE", "TOTAL_REVENUE"}, rows[0])
	assert.Equal(t, []string{"CA", "1500.00"}, rows[1])
}

func TestWriter_WriteCSVFile(t *testing.T) {
	writer := NewWriter(nil)
	path := filepath.Join(t.TempDir(), "reports", "out.csv")

	err := writer.WriteCSVFile(path, []string{"NAME"}, [][]string{{"Acme"}})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "NAME\nAcme\n", string(data))
}

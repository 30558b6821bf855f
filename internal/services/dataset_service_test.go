package services

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"f500cli/internal/dataset"
	apierrors "f500cli/internal/errors"
	"f500cli/internal/validation"
)

const sampleCSV = `NAME,REVENUES,PROFIT,EMPLOYEES,STATE,COUNTY
Acme,"$1,000.00",$100.00,"1,000",CA,Santa Clara
Beta,$500.00,-$50.00,500,CA,Santa Clara
`

func newDatasetService(t *testing.T, maxBytes int64) *DatasetService {
	t.Helper()
	logger := slog.Default()
	return NewDatasetService(
		dataset.NewLoader(logger),
		dataset.NewStore(8),
		validation.NewUploadValidator(logger, maxBytes),
		logger,
	)
}

func TestDatasetService_Upload(t *testing.T) {
	svc := newDatasetService(t, 1<<20)

	summary, err := svc.Upload(context.Background(), "fortune500.csv", []byte(sampleCSV))
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Rows)
	assert.Zero(t, summary.DroppedRows)
	assert.Equal(t, []string{"CA"}, summary.Regions)
	assert.Len(t, summary.ID, 16)

	ds, err := svc.Get(context.Background(), summary.ID)
	require.NoError(t, err)
	assert.Equal(t, summary.ID, ds.ID)
}

func TestDatasetService_Upload_CacheHit(t *testing.T) {
	svc := newDatasetService(t, 1<<20)

	first, err := svc.Upload(context.Background(), "a.csv", []byte(sampleCSV))
	require.NoError(t, err)

	second, err := svc.Upload(context.Background(), "renamed.csv", []byte(sampleCSV))
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "identical bytes must hit the cache")
	assert.Equal(t, int64(1), svc.StoreStats()["hit_count"])
}

func TestDatasetService_Upload_SchemaError(t *testing.T) {
	svc := newDatasetService(t, 1<<20)

	_, err := svc.Upload(context.Background(), "bad.csv", []byte("NAME,REVENUES\nAcme,100\n"))

	var apiErr *apierrors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
	assert.Equal(t, "DATASET_SCHEMA_INVALID", apiErr.ErrorCode)
	assert.Contains(t, apiErr.Details.(string), "PROFIT, EMPLOYEES, STATE, COUNTY")
}

func TestDatasetService_Upload_ParseError(t *testing.T) {
	svc := newDatasetService(t, 1<<20)

	_, err := svc.Upload(context.Background(), "bad.csv", []byte("NAME,REVENUES\n\"Acme,100\nBeta"))

	var apiErr *apierrors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
	assert.Equal(t, "DATASET_PARSE_FAILED", apiErr.ErrorCode)
}

func TestDatasetService_Upload_PayloadTooLarge(t *testing.T) {
	svc := newDatasetService(t, 16)

	_, err := svc.Upload(context.Background(), "big.csv", []byte(sampleCSV))

	var apiErr *apierrors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusRequestEntityTooLarge, apiErr.StatusCode)
}

func TestDatasetService_Upload_UnsupportedExtension(t *testing.T) {
	svc := newDatasetService(t, 1<<20)

	_, err := svc.Upload(context.Background(), "data.pdf", []byte(sampleCSV))

	var apiErr *apierrors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "VALIDATION_FAILED", apiErr.ErrorCode)
}

func TestDatasetService_Get_NotFound(t *testing.T) {
	svc := newDatasetService(t, 1<<20)

	_, err := svc.Get(context.Background(), "deadbeefdeadbeef")

	var apiErr *apierrors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "DATASET_NOT_FOUND", apiErr.ErrorCode)
}

func TestDatasetService_Invalidate(t *testing.T) {
	svc := newDatasetService(t, 1<<20)

	summary, err := svc.Upload(context.Background(), "a.csv", []byte(sampleCSV))
	require.NoError(t, err)

	svc.Invalidate(context.Background(), summary.ID)

	_, err = svc.Get(context.Background(), summary.ID)
	assert.Error(t, err)
}

func TestDatasetService_Summary_CarriesDiagnostics(t *testing.T) {
	svc := newDatasetService(t, 1<<20)

	input := sampleCSV + "Bad,abc,10,50,CA,Alameda\n"
	summary, err := svc.Upload(context.Background(), "a.csv", []byte(input))
	require.NoError(t, err)

	assert.Equal(t, 1, summary.DroppedRows)
	require.Len(t, summary.Diagnostics, 1)
	assert.True(t, strings.Contains(summary.Diagnostics[0], "REVENUES"))
}

package errors

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRequest() *http.Request {
	return httptest.NewRequest(http.MethodGet, "/api/datasets/abc", nil)
}

func TestErrorToProblem_APIErrorMapping(t *testing.T) {
	h := NewErrorHandler(slog.Default(), false)

	tests := []struct {
		name     string
		err      error
		status   int
		probType string
	}{
		{name: "dataset not found", err: DatasetNotFoundError("abc"), status: http.StatusNotFound, probType: TypeDatasetNotFound},
		{name: "parse failure", err: DatasetParseError(fmt.Errorf("error reading file: bad quote")), status: http.StatusUnprocessableEntity, probType: TypeDatasetParse},
		{name: "schema failure", err: DatasetSchemaError(fmt.Errorf("missing columns in the uploaded data: PROFIT")), status: http.StatusUnprocessableEntity, probType: TypeDatasetSchema},
		{name: "validation", err: ErrValidation("limit", "limit must be between 1 and 50"), status: http.StatusBadRequest, probType: TypeValidation},
		{name: "payload too large", err: ErrPayloadTooLarge, status: http.StatusRequestEntityTooLarge, probType: TypePayloadTooLarge},
		{name: "export failure", err: ExportError("top-companies", fmt.Errorf("disk full")), status: http.StatusInternalServerError, probType: TypeExportFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			problem := h.ErrorToProblem(tt.err, testRequest())
			assert.Equal(t, tt.status, problem.Status)
			assert.Equal(t, tt.probType, problem.Type)
			assert.Equal(t, "/api/datasets/abc", problem.Instance)
		})
	}
}

func TestErrorToProblem_ContextErrors(t *testing.T) {
	h := NewErrorHandler(slog.Default(), false)

	problem := h.ErrorToProblem(context.DeadlineExceeded, testRequest())
	assert.Equal(t, http.StatusGatewayTimeout, problem.Status)
	assert.Equal(t, TypeTimeout, problem.Type)
}

func TestErrorToProblem_UnknownErrorIsInternal(t *testing.T) {
	h := NewErrorHandler(slog.Default(), false)

	problem := h.ErrorToProblem(fmt.Errorf("something odd"), testRequest())
	assert.Equal(t, http.StatusInternalServerError, problem.Status)
	// Internal detail must not leak.
	assert.NotContains(t, problem.Detail, "something odd")
}

func TestHandleError_WritesProblemJSON(t *testing.T) {
	h := NewErrorHandler(slog.Default(), false)

	rec := httptest.NewRecorder()
	h.HandleError(rec, testRequest(), DatasetNotFoundError("abc"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":404`)
	assert.Contains(t, rec.Body.String(), TypeDatasetNotFound)
}

func TestProblemDetails_MarshalIncludesExtensions(t *testing.T) {
	problem := NewProblemDetails(http.StatusBadRequest, TypeValidation, "Bad Request", "nope", "/x").
		WithExtension("error_code", "VALIDATION_FAILED")

	data, err := problem.MarshalJSON()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"error_code":"VALIDATION_FAILED"`)
}

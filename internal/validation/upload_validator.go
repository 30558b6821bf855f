package validation

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
)

// UploadValidator checks uploaded dataset files before parsing.
type UploadValidator struct {
	logger   *slog.Logger
	maxBytes int64
}

// NewUploadValidator creates an upload validator with the given size cap.
func NewUploadValidator(logger *slog.Logger, maxBytes int64) *UploadValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &UploadValidator{
		logger:   logger.With(slog.String("component", "upload_validator")),
		maxBytes: maxBytes,
	}
}

// Kind identifies the parser an upload should be routed to.
type Kind string

const (
	KindCSV   Kind = "csv"
	KindExcel Kind = "xlsx"
)

// ValidateUpload checks size and extension and returns the input kind.
// An empty filename is treated as CSV, matching raw-body uploads.
func (v *UploadValidator) ValidateUpload(filename string, size int64) (Kind, error) {
	if size == 0 {
		v.logger.Warn("rejected empty upload", slog.String("filename", filename))
		return "", fmt.Errorf("uploaded file is empty")
	}
	if v.maxBytes > 0 && size > v.maxBytes {
		v.logger.Warn("rejected oversized upload",
			slog.String("filename", filename),
			slog.Int64("size", size),
			slog.Int64("max", v.maxBytes))
		return "", fmt.Errorf("payload too large: %d bytes exceeds limit of %d", size, v.maxBytes)
	}

	if filename == "" {
		return KindCSV, nil
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv", ".txt", "":
		return KindCSV, nil
	case ".xlsx":
		return KindExcel, nil
	default:
		v.logger.Warn("rejected upload with unsupported extension",
			slog.String("filename", filename))
		return "", fmt.Errorf("unsupported file type %s: expected .csv or .xlsx", filepath.Ext(filename))
	}
}

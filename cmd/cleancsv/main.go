package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"f500cli/internal/config"
	"f500cli/internal/dataset"
	"f500cli/internal/exporter"
	"f500cli/internal/infrastructure"
	"f500cli/internal/insights"
	"f500cli/pkg/contracts/domain"
)

func main() {
	in := flag.String("in", "", "input dataset file (.csv or .xlsx)")
	out := flag.String("out", "", "output directory for cleaned data and reports (defaults to exports)")
	topN := flag.Int("top", 10, "top-N size for the top-companies report (1-50)")
	flag.Parse()

	if *in == "" {
		fmt.Fprintln(os.Stderr, "usage: cleancsv -in dataset.csv [-out dir] [-top N]")
		os.Exit(2)
	}
	if *topN < 1 || *topN > insights.MaxTopN {
		fmt.Fprintf(os.Stderr, "top must be between 1 and %d\n", insights.MaxTopN)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = &config.Config{
			Logging: config.LoggingConfig{Level: "info", Output: "console"},
			Export:  config.ExportConfig{Dir: "exports"},
		}
	}
	if *out == "" {
		*out = cfg.Export.Dir
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}

	logger.Info("Starting dataset cleaning",
		slog.String("input", *in),
		slog.String("output_dir", *out))

	raw, err := os.ReadFile(*in)
	if err != nil {
		logger.Error("Cannot read input file", slog.String("error", err.Error()))
		os.Exit(1)
	}

	loader := dataset.NewLoader(logger)

	var ds *domain.Dataset
	switch strings.ToLower(filepath.Ext(*in)) {
	case ".xlsx":
		ds, err = loader.LoadExcel(raw)
	default:
		ds, err = loader.Load(raw)
	}
	if err != nil {
		logger.Error("Failed to clean dataset", slog.String("error", err.Error()))
		os.Exit(1)
	}
	ds.ID = dataset.Fingerprint(raw)

	logger.Info("Dataset cleaned",
		slog.String("dataset_id", ds.ID),
		slog.Int("rows", ds.Len()),
		slog.Int("dropped_rows", ds.DroppedRows))
	for _, diag := range ds.Diagnostics {
		logger.Warn("row diagnostic", slog.String("detail", diag))
	}

	writer := exporter.NewWriter(logger)
	reports := []string{
		exporter.ReportCleanedRows,
		exporter.ReportRevenueByRegion,
		exporter.ReportMeanRevenueByRegion,
		exporter.ReportTopCompanies,
		exporter.ReportCompaniesBySubregion,
		exporter.ReportEmployeesBySubregion,
	}

	for _, report := range reports {
		headers, records, err := exporter.BuildReport(ds, report, *topN)
		if err != nil {
			logger.Error("Failed to build report",
				slog.String("report", report),
				slog.String("error", err.Error()))
			os.Exit(1)
		}

		path := filepath.Join(*out, report+".csv")
		if err := writer.WriteCSVFile(path, headers, records); err != nil {
			logger.Error("Failed to write report",
				slog.String("report", report),
				slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("Cleaning complete",
		slog.Int("reports", len(reports)),
		slog.String("output_dir", *out))
}

// Command analyzer runs the batch glucose/health analysis pipeline:
// parse an Apple Health export and a Libre CSV, normalize, align the two
// series, aggregate into fixed windows, and export the datasets.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/georgekenefati/Apple-Health-DS/internal/alignment"
	"github.com/georgekenefati/Apple-Health-DS/internal/analytics"
	"github.com/georgekenefati/Apple-Health-DS/internal/config"
	"github.com/georgekenefati/Apple-Health-DS/internal/exporter"
	"github.com/georgekenefati/Apple-Health-DS/internal/glucose"
	"github.com/georgekenefati/Apple-Health-DS/internal/health"
	"github.com/georgekenefati/Apple-Health-DS/internal/infrastructure"
)

func main() {
	healthPath := flag.String("health", "", "path to the Apple Health export.xml (required)")
	glucosePath := flag.String("glucose", "", "path to the Libre glucose CSV (required)")
	configFile := flag.String("config", "", "optional YAML config file")
	tolerance := flag.Int("tolerance", 0, "alignment tolerance in minutes (overrides config)")
	window := flag.Int("window", 0, "aggregation window in minutes (overrides config)")
	format := flag.String("format", "", "export format: csv, xlsx, json or msgpack (overrides config)")
	outDir := flag.String("out", "", "output directory for reports (overrides config)")
	types := flag.String("types", "", "comma-separated HealthKit type filter (default: all records)")
	flag.Parse()

	if *healthPath == "" || *glucosePath == "" {
		fmt.Fprintln(os.Stderr, "usage: analyzer -health export.xml -glucose glucose.csv [options]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if *tolerance > 0 {
		cfg.Analysis.ToleranceMinutes = *tolerance
	}
	if *window > 0 {
		cfg.Analysis.WindowMinutes = *window
	}
	if *format != "" {
		cfg.Export.Format = *format
	}
	if *outDir != "" {
		cfg.Paths.ReportsDir = *outDir
	}

	exportFormat, err := exporter.ParseFormat(cfg.Export.Format)
	if err != nil {
		slog.Error("Invalid export format", "error", err)
		os.Exit(1)
	}

	paths, err := config.NewPaths(cfg.Paths)
	if err != nil {
		slog.Error("Failed to resolve paths", "error", err)
		os.Exit(1)
	}
	if err := paths.EnsureDirectories(); err != nil {
		slog.Error("Failed to create directories", "error", err)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("Failed to initialize logger", "error", err)
		os.Exit(1)
	}

	ctx := infrastructure.NewRunContext(context.Background())
	if err := run(ctx, cfg, paths, exportFormat, *healthPath, *glucosePath, *types, logger); err != nil {
		logger.ErrorContext(ctx, "analysis failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, paths *config.Paths, format exporter.Format,
	healthPath, glucosePath, typeFilter string, logger *slog.Logger) error {

	logger.InfoContext(ctx, "starting analysis",
		slog.String("health_path", healthPath),
		slog.String("glucose_path", glucosePath),
		slog.Int("tolerance_minutes", cfg.Analysis.ToleranceMinutes),
		slog.Int("window_minutes", cfg.Analysis.WindowMinutes),
		slog.String("format", string(format)))

	export, err := health.ParseExport(healthPath, logger)
	if err != nil {
		return err
	}

	table, err := glucose.LoadCSV(glucosePath, logger)
	if err != nil {
		return err
	}
	readings, err := glucose.Normalize(table, logger)
	if err != nil {
		return err
	}

	tir := glucose.TimeInRange(readings)
	logger.InfoContext(ctx, "glucose time in range",
		slog.Float64("in_range_percent", tir.TimeInRangePercent),
		slog.Float64("low_percent", tir.TimeLowPercent),
		slog.Float64("very_low_percent", tir.TimeVeryLowPercent),
		slog.Float64("high_percent", tir.TimeHighPercent),
		slog.Float64("very_high_percent", tir.TimeVeryHighPercent),
		slog.Float64("average_glucose", tir.AverageGlucose),
		slog.Float64("coefficient_variation", tir.CoefficientVariation),
		slog.Int("total_readings", tir.TotalReadings))

	records := export.Records(parseTypeFilter(typeFilter)...)
	aligned, err := alignment.Align(records, readings, float64(cfg.Analysis.ToleranceMinutes), logger)
	if err != nil {
		return err
	}

	windows, err := alignment.Aggregate(aligned, cfg.Analysis.WindowMinutes, logger)
	if err != nil {
		return err
	}

	summary := analytics.Summarize(aligned)
	logger.InfoContext(ctx, "dataset summary",
		slog.Int("aligned_records", summary.AlignedRecords),
		slog.Time("first_timestamp", summary.FirstTimestamp),
		slog.Time("last_timestamp", summary.LastTimestamp))

	for _, corr := range analytics.Correlations(aligned) {
		logger.InfoContext(ctx, "glucose correlation",
			slog.String("column", corr.Column),
			slog.Float64("coefficient", corr.Coefficient))
	}

	alignedPath := paths.GetReportPath("aligned_dataset." + format.Extension())
	if err := exporter.WriteAligned(alignedPath, format, aligned, logger); err != nil {
		return err
	}

	windowedPath := paths.GetReportPath("windowed_dataset." + format.Extension())
	if err := exporter.WriteWindowed(windowedPath, format, windows, logger); err != nil {
		return err
	}

	logger.InfoContext(ctx, "analysis complete",
		slog.Int("aligned_records", len(aligned)),
		slog.Int("windows", len(windows)),
		slog.String("aligned_path", alignedPath),
		slog.String("windowed_path", windowedPath))
	return nil
}

// parseTypeFilter splits the -types flag into HealthKit identifiers. An
// empty flag means no filter.
func parseTypeFilter(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}

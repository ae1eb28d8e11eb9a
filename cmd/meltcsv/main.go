// Command meltcsv loads the M5 sales and calendar tables, reshapes the wide
// sales table to long format and streams the result to a CSV in the results
// directory.
package main

import (
	"flag"
	"log/slog"
	"os"

	"m5cli/internal/config"
	"m5cli/internal/dataset"
	"m5cli/internal/exporter"
	"m5cli/internal/infrastructure"
)

func main() {
	dir := flag.String("dir", "", "directory containing the M5 csv files (defaults to the configured data dir)")
	out := flag.String("out", "sales_melted.csv", "output csv file, relative to the results dir")
	evaluation := flag.Bool("evaluation", false, "melt the evaluation sales variant instead of validation")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("failed to load config, using defaults", "error", err)
		cfg = config.Default()
	}
	if *dir == "" {
		*dir = cfg.Paths.DataDir
	}

	logger, closeLog, err := infrastructure.NewLogger(cfg.Logging)
	if err != nil {
		slog.Warn("failed to initialize logger, using default", "error", err)
		logger = slog.Default()
		closeLog = func() error { return nil }
	}
	defer closeLog()

	logger.Info("starting melt export",
		slog.String("data_dir", *dir),
		slog.String("output_file", *out),
		slog.Bool("evaluation", *evaluation))

	loader := dataset.NewLoader(*dir,
		dataset.WithFileKeys(cfg.FileKeys()),
		dataset.WithLogger(logger))

	calendar, err := loader.LoadCalendar()
	if err != nil {
		logger.Error("failed to load calendar", "error", err)
		os.Exit(1)
	}
	sales, err := loader.LoadSalesData(!*evaluation)
	if err != nil {
		logger.Error("failed to load sales data", "error", err)
		os.Exit(1)
	}

	melted, err := dataset.MeltSalesData(sales, calendar)
	if err != nil {
		logger.Error("failed to melt sales data", "error", err)
		os.Exit(1)
	}
	logger.Info("sales data melted", slog.Int("rows", len(melted)))

	writer := exporter.NewCSVWriter(cfg.Paths.ResultsDir, logger)
	if err := writer.WriteMeltedCSV(*out, melted); err != nil {
		logger.Error("failed to write melted csv", "error", err)
		os.Exit(1)
	}
}

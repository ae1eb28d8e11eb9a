// Command datainfo loads the M5 dataset and prints a diagnostic summary of
// every table: shape, columns, memory footprint and null counts. With -xlsx
// it also writes the summary workbook to the results directory.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"m5cli/internal/config"
	"m5cli/internal/dataset"
	"m5cli/internal/exporter"
	"m5cli/internal/infrastructure"
)

func main() {
	dir := flag.String("dir", "", "directory containing the M5 csv files (defaults to the configured data dir)")
	evaluation := flag.Bool("evaluation", false, "load the evaluation sales variant instead of validation")
	xlsxOut := flag.String("xlsx", "", "also write a summary workbook to this file in the results dir")
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

	logger.Info("starting data info report",
		slog.String("data_dir", *dir),
		slog.Bool("evaluation", *evaluation))

	loader := dataset.NewLoader(*dir,
		dataset.WithFileKeys(cfg.FileKeys()),
		dataset.WithLogger(logger))

	data, err := loader.LoadAllData(!*evaluation)
	if err != nil {
		logger.Error("failed to load data", "error", err)
		os.Exit(1)
	}

	info := data.Info()
	names := make([]string, 0, len(info))
	for name := range info {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		ti := info[name]
		fmt.Printf("\n%s:\n", name)
		fmt.Printf("  shape:   (%d, %d)\n", ti.Rows, ti.Cols)
		fmt.Printf("  memory:  %.2f MB\n", ti.MemoryMB)
		fmt.Printf("  columns: %d\n", ti.Cols)
		nulls := 0
		for _, n := range ti.NullCounts {
			nulls += n
		}
		fmt.Printf("  nulls:   %d\n", nulls)
	}

	if *xlsxOut != "" {
		hierarchy, err := dataset.BuildHierarchy(data.Sales, logger)
		if err != nil {
			logger.Error("failed to build hierarchy", "error", err)
			os.Exit(1)
		}
		writer := exporter.NewExcelWriter(cfg.Paths.ResultsDir, logger)
		if err := writer.WriteSummaryWorkbook(*xlsxOut, info, hierarchy); err != nil {
			logger.Error("failed to write summary workbook", "error", err)
			os.Exit(1)
		}
	}
}

// Command dataserver loads the M5 dataset once and serves the diagnostics
// API (table info, hierarchy, calendar lookups, metrics) until interrupted.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"m5cli/internal/config"
	"m5cli/internal/dataset"
	"m5cli/internal/infrastructure"
	"m5cli/internal/server"
)

func main() {
	dir := flag.String("dir", "", "directory containing the M5 csv files (defaults to the configured data dir)")
	evaluation := flag.Bool("evaluation", false, "serve the evaluation sales variant instead of validation")
	melt := flag.Bool("melt", false, "also melt the sales table at startup (costly for the full dataset)")
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

	logger.Info("loading dataset for diagnostics server",
		slog.String("data_dir", *dir),
		slog.Bool("evaluation", *evaluation),
		slog.Bool("melt", *melt))

	data, hierarchy, err := dataset.LoadAndPrepareData(*dir, !*evaluation, *melt,
		dataset.WithFileKeys(cfg.FileKeys()),
		dataset.WithLogger(logger))
	if err != nil {
		logger.Error("failed to load dataset", "error", err)
		os.Exit(1)
	}
	server.RecordDatasetLoad()
	if *melt {
		server.RecordMeltedRows(len(data.Melted))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg.Server, data, hierarchy, logger)
	if err := srv.ListenAndServe(ctx); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

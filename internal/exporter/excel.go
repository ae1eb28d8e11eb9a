package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/xuri/excelize/v2"

	"m5cli/internal/dataset"
)

// ExcelWriter produces the dataset summary workbook.
type ExcelWriter struct {
	resultsDir string
	logger     *slog.Logger
}

// NewExcelWriter creates an Excel writer rooted at the results directory.
func NewExcelWriter(resultsDir string, logger *slog.Logger) *ExcelWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExcelWriter{resultsDir: resultsDir, logger: logger}
}

const (
	tablesSheet    = "Tables"
	hierarchySheet = "Hierarchy"
)

// WriteSummaryWorkbook writes one workbook with a sheet of per-table
// diagnostics and a sheet of hierarchy level counts. The hierarchy sheet is
// omitted when hierarchy is nil.
func (w *ExcelWriter) WriteSummaryWorkbook(filePath string, info map[string]dataset.TableInfo, hierarchy *dataset.Hierarchy) error {
	fullPath := w.resolvePath(filePath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName(f.GetSheetName(0), tablesSheet)
	if err := writeTablesSheet(f, info); err != nil {
		return err
	}

	if hierarchy != nil {
		if _, err := f.NewSheet(hierarchySheet); err != nil {
			return fmt.Errorf("failed to add hierarchy sheet: %w", err)
		}
		if err := writeHierarchySheet(f, hierarchy); err != nil {
			return err
		}
	}

	if err := f.SaveAs(fullPath); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	w.logger.Info("summary workbook written",
		slog.String("path", fullPath),
		slog.Int("tables", len(info)))
	return nil
}

func writeTablesSheet(f *excelize.File, info map[string]dataset.TableInfo) error {
	header := []interface{}{"table", "rows", "cols", "memory_mb", "null_cells"}
	if err := f.SetSheetRow(tablesSheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write tables header: %w", err)
	}

	names := make([]string, 0, len(info))
	for name := range info {
		names = append(names, name)
	}
	sort.Strings(names)

	for i, name := range names {
		ti := info[name]
		nullCells := 0
		for _, n := range ti.NullCounts {
			nullCells += n
		}
		row := []interface{}{name, ti.Rows, ti.Cols, ti.MemoryMB, nullCells}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(tablesSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write tables row %d: %w", i+2, err)
		}
	}
	return nil
}

func writeHierarchySheet(f *excelize.File, h *dataset.Hierarchy) error {
	rows := [][]interface{}{
		{"level", "count"},
		{"states", len(h.States)},
		{"stores", len(h.Stores)},
		{"categories", len(h.Categories)},
		{"departments", len(h.Departments)},
		{"items", len(h.Items)},
	}
	for i, row := range rows {
		cell := fmt.Sprintf("A%d", i+1)
		if err := f.SetSheetRow(hierarchySheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write hierarchy row %d: %w", i+1, err)
		}
	}
	return nil
}

func (w *ExcelWriter) resolvePath(filePath string) string {
	if filepath.IsAbs(filePath) {
		return filePath
	}
	return filepath.Join(w.resultsDir, filePath)
}

package exporter

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"m5cli/internal/dataset"
)

func TestWriteSummaryWorkbook(t *testing.T) {
	dir := t.TempDir()
	w := NewExcelWriter(dir, slog.New(slog.NewTextHandler(io.Discard, nil)))

	info := map[string]dataset.TableInfo{
		"calendar": {Rows: 3, Cols: 18, MemoryMB: 0.01, NullCounts: map[string]int{"event_name_1": 2}},
		"sales":    {Rows: 2, Cols: 9, MemoryMB: 0.02, NullCounts: map[string]int{}},
	}
	hierarchy := &dataset.Hierarchy{
		States: []string{"CA"},
		Stores: []string{"CA_1"},
		Items:  []string{"HOBBIES_1_001", "HOBBIES_1_002"},
	}

	require.NoError(t, w.WriteSummaryWorkbook("summary.xlsx", info, hierarchy))

	f, err := excelize.OpenFile(filepath.Join(dir, "summary.xlsx"))
	require.NoError(t, err)
	defer f.Close()

	tables, err := f.GetRows("Tables")
	require.NoError(t, err)
	require.Len(t, tables, 3)
	assert.Equal(t, "table", tables[0][0])
	// Rows are sorted by table name.
	assert.Equal(t, "calendar", tables[1][0])
	assert.Equal(t, "sales", tables[2][0])
	assert.Equal(t, "2", tables[1][4], "calendar null cell total")

	hier, err := f.GetRows("Hierarchy")
	require.NoError(t, err)
	require.Len(t, hier, 6)
	assert.Equal(t, []string{"items", "2"}, hier[5])
}

func TestWriteSummaryWorkbook_NoHierarchy(t *testing.T) {
	dir := t.TempDir()
	w := NewExcelWriter(dir, slog.New(slog.NewTextHandler(io.Discard, nil)))

	require.NoError(t, w.WriteSummaryWorkbook("summary.xlsx", map[string]dataset.TableInfo{}, nil))

	f, err := excelize.OpenFile(filepath.Join(dir, "summary.xlsx"))
	require.NoError(t, err)
	defer f.Close()

	idx, err := f.GetSheetIndex("Hierarchy")
	require.NoError(t, err)
	assert.Equal(t, -1, idx)
}

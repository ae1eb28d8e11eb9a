package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeCSV writes rows to path, creating parent directories as needed.
func writeCSV(t *testing.T, path string, rows [][]string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w := csv.NewWriter(f)
	require.NoError(t, w.WriteAll(rows))
	w.Flush()
	require.NoError(t, w.Error())
}

var calendarHeader = []string{
	"date", "wm_yr_wk", "weekday", "wday", "month", "year", "d",
	"event_name_1", "event_type_1", "event_name_2", "event_type_2",
	"snap_CA", "snap_TX", "snap_WI",
}

// calendarRow builds one fixture calendar row. 2016-01-01 was a Friday, so
// d_2 and d_3 land on the weekend.
func calendarRow(date, weekday, wday, d, event string, snapCA string) []string {
	return []string{
		date, "11101", weekday, wday, "1", "2016", d,
		event, "", "", "",
		snapCA, "0", "0",
	}
}

// writeM5Fixtures lays down a minimal but schema-complete set of the five
// M5 files in a temp directory and returns the directory.
func writeM5Fixtures(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	writeCSV(t, filepath.Join(dir, "calendar.csv"), [][]string{
		calendarHeader,
		calendarRow("2016-01-01", "Friday", "6", "d_1", "NewYear", "1"),
		calendarRow("2016-01-02", "Saturday", "7", "d_2", "", "0"),
		calendarRow("2016-01-03", "Sunday", "1", "d_3", "", "0"),
	})

	salesHeader := []string{"id", "item_id", "dept_id", "cat_id", "store_id", "state_id", "d_1", "d_2", "d_3"}
	writeCSV(t, filepath.Join(dir, "sales_train_validation.csv"), [][]string{
		salesHeader,
		{"HOBBIES_1_001_CA_1_validation", "HOBBIES_1_001", "HOBBIES_1", "HOBBIES", "CA_1", "CA", "5", "0", "3"},
		{"HOBBIES_1_002_CA_1_validation", "HOBBIES_1_002", "HOBBIES_1", "HOBBIES", "CA_1", "CA", "5", "0", "3"},
	})
	writeCSV(t, filepath.Join(dir, "sales_train_evaluation.csv"), [][]string{
		salesHeader,
		{"FOODS_3_555_TX_2_evaluation", "FOODS_3_555", "FOODS_3", "FOODS", "TX_2", "TX", "1", "2", "4"},
	})

	writeCSV(t, filepath.Join(dir, "sell_prices.csv"), [][]string{
		{"store_id", "item_id", "wm_yr_wk", "sell_price"},
		{"CA_1", "HOBBIES_1_001", "11101", "9.58"},
		{"CA_1", "HOBBIES_1_002", "11101", "1.27"},
	})

	submission := [][]string{append([]string{"id"}, forecastColumns()...)}
	subRow := []string{"HOBBIES_1_001_CA_1_validation"}
	for range forecastColumns() {
		subRow = append(subRow, "0")
	}
	submission = append(submission, subRow)
	writeCSV(t, filepath.Join(dir, "sample_submission.csv"), submission)

	return dir
}

func forecastColumns() []string {
	cols := make([]string, 28)
	for i := range cols {
		cols[i] = fmt.Sprintf("F%d", i+1)
	}
	return cols
}

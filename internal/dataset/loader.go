package dataset

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"m5cli/internal/errors"
)

// dayColRe matches wide-format day columns (d_1, d_2, ...).
var dayColRe = regexp.MustCompile(`^d_\d+$`)

// File keys understood by the loader.
const (
	KeyCalendar             = "calendar"
	KeySalesTrainValidation = "sales_train_validation"
	KeySalesTrainEvaluation = "sales_train_evaluation"
	KeySellPrices           = "sell_prices"
	KeySampleSubmission     = "sample_submission"
)

// DefaultFileKeys returns the standard M5 file-key lookup.
func DefaultFileKeys() map[string]string {
	return map[string]string{
		KeyCalendar:             "calendar.csv",
		KeySalesTrainValidation: "sales_train_validation.csv",
		KeySalesTrainEvaluation: "sales_train_evaluation.csv",
		KeySellPrices:           "sell_prices.csv",
		KeySampleSubmission:     "sample_submission.csv",
	}
}

// Loader reads the M5 competition files from a data directory into typed
// tables. Each load reads the file fully into memory and returns a fresh
// snapshot; the loader holds no mutable state between calls.
type Loader struct {
	dataDir string
	files   map[string]string
	logger  *slog.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithFileKeys overrides the file-key lookup, e.g. to point the loader at
// fixture files.
func WithFileKeys(files map[string]string) Option {
	return func(l *Loader) {
		if len(files) > 0 {
			l.files = files
		}
	}
}

// WithLogger injects the logger used for load progress reporting.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewLoader creates a loader for the given data directory.
func NewLoader(dataDir string, opts ...Option) *Loader {
	l := &Loader{
		dataDir: dataDir,
		files:   DefaultFileKeys(),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// filePath resolves a file key to its full path.
func (l *Loader) filePath(key string) (string, error) {
	name, ok := l.files[key]
	if !ok {
		return "", errors.NewConfigError(fmt.Sprintf("no file configured for key %q", key), nil)
	}
	return filepath.Join(l.dataDir, name), nil
}

// readCSV opens and fully parses one configured file. The returned slice
// includes the header row.
func (l *Loader) readCSV(key string) ([][]string, string, error) {
	path, err := l.filePath(key)
	if err != nil {
		return nil, "", err
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, path, errors.NewNotFoundError(path, err)
		}
		return nil, path, errors.NewStorageError(fmt.Sprintf("failed to open %s", path), err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, path, errors.NewParsingError(fmt.Sprintf("failed to parse %s", path), err)
	}
	if len(records) == 0 {
		return nil, path, errors.NewParsingError(fmt.Sprintf("%s has no header row", path), nil)
	}
	return records, path, nil
}

// columnIndex maps header names to their positions.
func columnIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}
	return idx
}

// requireColumns verifies that every named column is present.
func requireColumns(idx map[string]int, path string, required ...string) error {
	for _, col := range required {
		if _, ok := idx[col]; !ok {
			return errors.NewParsingError(fmt.Sprintf("missing required column %q in %s", col, path), nil)
		}
	}
	return nil
}

// cell returns the trimmed value of a named column, or "" when the column
// is absent or the row is short.
func cell(row []string, idx map[string]int, name string) string {
	if i, ok := idx[name]; ok && i < len(row) {
		return strings.TrimSpace(row[i])
	}
	return ""
}

// cellInt parses a named column as an integer, tolerating blanks.
func cellInt(row []string, idx map[string]int, name string) int {
	v, _ := strconv.Atoi(cell(row, idx, name))
	return v
}

// cellFloat parses a named column as a float, tolerating blanks.
func cellFloat(row []string, idx map[string]int, name string) float64 {
	v, _ := strconv.ParseFloat(cell(row, idx, name), 64)
	return v
}

// countNulls tallies empty cells per column across all data rows.
func countNulls(header []string, rows [][]string) map[string]int {
	nulls := make(map[string]int, len(header))
	for _, name := range header {
		nulls[strings.TrimSpace(name)] = 0
	}
	for _, row := range rows {
		for i, name := range header {
			col := strings.TrimSpace(name)
			if i >= len(row) || strings.TrimSpace(row[i]) == "" {
				nulls[col]++
			}
		}
	}
	return nulls
}

// LoadCalendar loads the calendar table and derives the additional date
// features (year, month, day, day-of-week with Monday = 0, quarter and the
// weekend flag).
func (l *Loader) LoadCalendar() (*Calendar, error) {
	records, path, err := l.readCSV(KeyCalendar)
	if err != nil {
		return nil, err
	}
	l.logger.Info("loading calendar data", slog.String("path", path))

	header, rows := records[0], records[1:]
	idx := columnIndex(header)
	if err := requireColumns(idx, path, "date", "wm_yr_wk", "weekday", "wday", "month", "year", "d"); err != nil {
		return nil, err
	}

	cal := &Calendar{
		Days:    make([]CalendarDay, 0, len(rows)),
		columns: calendarColumns(header),
		nulls:   countNulls(header, rows),
	}
	for i, row := range rows {
		dateStr := cell(row, idx, "date")
		date, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return nil, errors.NewParsingError(
				fmt.Sprintf("cannot parse date %q at row %d of %s", dateStr, i+2, path), err)
		}

		day := CalendarDay{
			Date:       date,
			WmYrWk:     cellInt(row, idx, "wm_yr_wk"),
			Weekday:    cell(row, idx, "weekday"),
			Wday:       cellInt(row, idx, "wday"),
			Month:      cellInt(row, idx, "month"),
			Year:       cellInt(row, idx, "year"),
			D:          cell(row, idx, "d"),
			EventName1: cell(row, idx, "event_name_1"),
			EventType1: cell(row, idx, "event_type_1"),
			EventName2: cell(row, idx, "event_name_2"),
			EventType2: cell(row, idx, "event_type_2"),
			SnapCA:     cell(row, idx, "snap_CA") == "1",
			SnapTX:     cell(row, idx, "snap_TX") == "1",
			SnapWI:     cell(row, idx, "snap_WI") == "1",
		}

		// Derived features come from the parsed date, not the raw columns.
		day.Day = date.Day()
		day.DayOfWeek = (int(date.Weekday()) + 6) % 7 // Monday = 0
		day.Quarter = (int(date.Month())-1)/3 + 1
		day.IsWeekend = day.DayOfWeek == 5 || day.DayOfWeek == 6

		cal.Days = append(cal.Days, day)
	}

	l.logger.Info("calendar data loaded",
		slog.Int("rows", len(cal.Days)),
		slog.Int("cols", len(cal.columns)))
	return cal, nil
}

// calendarColumns extends the raw header with the derived feature names,
// matching the shape the table has after loading.
func calendarColumns(header []string) []string {
	cols := make([]string, 0, len(header)+6)
	for _, name := range header {
		cols = append(cols, strings.TrimSpace(name))
	}
	return append(cols, "day", "dayofweek", "quarter", "is_weekend")
}

// LoadSalesData loads the wide-format sales table. When useValidation is
// true the validation variant is read, otherwise the evaluation variant;
// the two share a schema and differ only in which file is read.
func (l *Loader) LoadSalesData(useValidation bool) (*SalesTable, error) {
	key := KeySalesTrainEvaluation
	if useValidation {
		key = KeySalesTrainValidation
	}

	records, path, err := l.readCSV(key)
	if err != nil {
		return nil, err
	}
	l.logger.Info("loading sales data", slog.String("path", path))

	header, rows := records[0], records[1:]
	idx := columnIndex(header)
	if err := requireColumns(idx, path, "id", "item_id", "dept_id", "cat_id", "store_id", "state_id"); err != nil {
		return nil, err
	}

	// Split the header into identifier and day columns; anything that does
	// not look like d_N is an identifier.
	var idCols, dayCols []string
	var dayIdx []int
	for i, name := range header {
		col := strings.TrimSpace(name)
		if dayColRe.MatchString(col) {
			dayCols = append(dayCols, col)
			dayIdx = append(dayIdx, i)
		} else {
			idCols = append(idCols, col)
		}
	}

	table := &SalesTable{
		IDColumns:  idCols,
		DayColumns: dayCols,
		Series:     make([]SalesSeries, 0, len(rows)),
		nulls:      countNulls(header, rows),
	}
	for _, row := range rows {
		series := SalesSeries{
			ID:      cell(row, idx, "id"),
			ItemID:  cell(row, idx, "item_id"),
			DeptID:  cell(row, idx, "dept_id"),
			CatID:   cell(row, idx, "cat_id"),
			StoreID: cell(row, idx, "store_id"),
			StateID: cell(row, idx, "state_id"),
			Units:   make([]int, len(dayCols)),
		}
		for j, col := range dayIdx {
			if col < len(row) {
				v, _ := strconv.Atoi(strings.TrimSpace(row[col]))
				series.Units[j] = v
			}
		}
		table.Series = append(table.Series, series)
	}

	l.logger.Info("sales data loaded",
		slog.Int("rows", len(table.Series)),
		slog.Int("day_columns", len(table.DayColumns)))
	return table, nil
}

// LoadPrices loads the weekly sell-price table.
func (l *Loader) LoadPrices() (*PriceTable, error) {
	records, path, err := l.readCSV(KeySellPrices)
	if err != nil {
		return nil, err
	}
	l.logger.Info("loading price data", slog.String("path", path))

	header, rows := records[0], records[1:]
	idx := columnIndex(header)
	if err := requireColumns(idx, path, "store_id", "item_id", "wm_yr_wk", "sell_price"); err != nil {
		return nil, err
	}

	table := &PriceTable{
		Rows:    make([]PriceRow, 0, len(rows)),
		columns: trimmedHeader(header),
		nulls:   countNulls(header, rows),
	}
	for _, row := range rows {
		table.Rows = append(table.Rows, PriceRow{
			StoreID:   cell(row, idx, "store_id"),
			ItemID:    cell(row, idx, "item_id"),
			WmYrWk:    cellInt(row, idx, "wm_yr_wk"),
			SellPrice: cellFloat(row, idx, "sell_price"),
		})
	}

	l.logger.Info("price data loaded", slog.Int("rows", len(table.Rows)))
	return table, nil
}

// LoadSampleSubmission loads the sample submission table. Every column
// after id is treated as a forecast slot.
func (l *Loader) LoadSampleSubmission() (*SubmissionTable, error) {
	records, path, err := l.readCSV(KeySampleSubmission)
	if err != nil {
		return nil, err
	}
	l.logger.Info("loading sample submission", slog.String("path", path))

	header, rows := records[0], records[1:]
	idx := columnIndex(header)
	if err := requireColumns(idx, path, "id"); err != nil {
		return nil, err
	}

	table := &SubmissionTable{
		Rows:    make([]SubmissionRow, 0, len(rows)),
		columns: trimmedHeader(header),
		nulls:   countNulls(header, rows),
	}
	idCol := idx["id"]
	for _, row := range rows {
		sub := SubmissionRow{Forecasts: make([]float64, 0, len(header)-1)}
		for i := range header {
			if i >= len(row) {
				break
			}
			if i == idCol {
				sub.ID = strings.TrimSpace(row[i])
				continue
			}
			v, _ := strconv.ParseFloat(strings.TrimSpace(row[i]), 64)
			sub.Forecasts = append(sub.Forecasts, v)
		}
		table.Rows = append(table.Rows, sub)
	}

	l.logger.Info("sample submission loaded", slog.Int("rows", len(table.Rows)))
	return table, nil
}

func trimmedHeader(header []string) []string {
	cols := make([]string, len(header))
	for i, name := range header {
		cols[i] = strings.TrimSpace(name)
	}
	return cols
}

// LoadAllData loads every table sequentially, failing fast on the first
// error. There is no partial-success mode: callers get either a complete
// dataset or none.
func (l *Loader) LoadAllData(useValidation bool) (*Dataset, error) {
	l.logger.Info("loading all M5 competition data", slog.Bool("use_validation", useValidation))

	calendar, err := l.LoadCalendar()
	if err != nil {
		return nil, err
	}
	sales, err := l.LoadSalesData(useValidation)
	if err != nil {
		return nil, err
	}
	prices, err := l.LoadPrices()
	if err != nil {
		return nil, err
	}
	submission, err := l.LoadSampleSubmission()
	if err != nil {
		return nil, err
	}

	l.logger.Info("all data loaded")
	return &Dataset{
		Calendar:   calendar,
		Sales:      sales,
		Prices:     prices,
		Submission: submission,
	}, nil
}

package dataset

import "log/slog"

// TableInfo is the diagnostic summary for one loaded table.
type TableInfo struct {
	Rows       int            `json:"rows"`
	Cols       int            `json:"cols"`
	Columns    []string       `json:"columns"`
	MemoryMB   float64        `json:"memory_usage_mb"`
	NullCounts map[string]int `json:"null_counts"`
}

const (
	bytesPerMB = 1 << 20
	// stringOverhead approximates the Go string header.
	stringOverhead = 16
)

func stringBytes(ss ...string) int64 {
	var n int64
	for _, s := range ss {
		n += stringOverhead + int64(len(s))
	}
	return n
}

// Info returns the calendar's diagnostic summary.
func (c *Calendar) Info() TableInfo {
	var mem int64
	for _, d := range c.Days {
		// time.Time plus the numeric and boolean fields.
		mem += 24 + 9*8 + 4
		mem += stringBytes(d.Weekday, d.D, d.EventName1, d.EventType1, d.EventName2, d.EventType2)
	}
	nulls := copyNulls(c.nulls)
	for _, derived := range []string{"day", "dayofweek", "quarter", "is_weekend"} {
		nulls[derived] = 0
	}
	return TableInfo{
		Rows:       len(c.Days),
		Cols:       len(c.columns),
		Columns:    append([]string(nil), c.columns...),
		MemoryMB:   float64(mem) / bytesPerMB,
		NullCounts: nulls,
	}
}

// Info returns the sales table's diagnostic summary.
func (t *SalesTable) Info() TableInfo {
	var mem int64
	for _, s := range t.Series {
		mem += stringBytes(s.ID, s.ItemID, s.DeptID, s.CatID, s.StoreID, s.StateID)
		mem += 24 + int64(len(s.Units))*8
	}
	cols := make([]string, 0, len(t.IDColumns)+len(t.DayColumns))
	cols = append(cols, t.IDColumns...)
	cols = append(cols, t.DayColumns...)
	return TableInfo{
		Rows:       len(t.Series),
		Cols:       len(cols),
		Columns:    cols,
		MemoryMB:   float64(mem) / bytesPerMB,
		NullCounts: copyNulls(t.nulls),
	}
}

// Info returns the price table's diagnostic summary.
func (t *PriceTable) Info() TableInfo {
	var mem int64
	for _, r := range t.Rows {
		mem += stringBytes(r.StoreID, r.ItemID) + 16
	}
	return TableInfo{
		Rows:       len(t.Rows),
		Cols:       len(t.columns),
		Columns:    append([]string(nil), t.columns...),
		MemoryMB:   float64(mem) / bytesPerMB,
		NullCounts: copyNulls(t.nulls),
	}
}

// Info returns the submission table's diagnostic summary.
func (t *SubmissionTable) Info() TableInfo {
	var mem int64
	for _, r := range t.Rows {
		mem += stringBytes(r.ID) + 24 + int64(len(r.Forecasts))*8
	}
	return TableInfo{
		Rows:       len(t.Rows),
		Cols:       len(t.columns),
		Columns:    append([]string(nil), t.columns...),
		MemoryMB:   float64(mem) / bytesPerMB,
		NullCounts: copyNulls(t.nulls),
	}
}

// Info returns the diagnostic summaries for every table in the dataset,
// keyed the same way LoadAllData keys them.
func (d *Dataset) Info() map[string]TableInfo {
	info := make(map[string]TableInfo, 4)
	if d.Calendar != nil {
		info["calendar"] = d.Calendar.Info()
	}
	if d.Sales != nil {
		info["sales"] = d.Sales.Info()
	}
	if d.Prices != nil {
		info["prices"] = d.Prices.Info()
	}
	if d.Submission != nil {
		info["sample_submission"] = d.Submission.Info()
	}
	return info
}

// DataInfo loads all tables fresh and reports their diagnostic summaries.
// Purely a read: nothing is cached or written.
func (l *Loader) DataInfo() (map[string]TableInfo, error) {
	data, err := l.LoadAllData(true)
	if err != nil {
		return nil, err
	}
	info := data.Info()
	for name, ti := range info {
		l.logger.Debug("table info",
			slog.String("table", name),
			slog.Int("rows", ti.Rows),
			slog.Int("cols", ti.Cols))
	}
	return info, nil
}

func copyNulls(nulls map[string]int) map[string]int {
	out := make(map[string]int, len(nulls))
	for k, v := range nulls {
		out[k] = v
	}
	return out
}

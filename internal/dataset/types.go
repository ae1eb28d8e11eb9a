package dataset

import (
	"time"
)

// CalendarDay is one row of the M5 calendar with derived date features.
type CalendarDay struct {
	Date       time.Time `json:"date"`
	WmYrWk     int       `json:"wm_yr_wk"`
	Weekday    string    `json:"weekday"`
	Wday       int       `json:"wday"`
	Month      int       `json:"month"`
	Year       int       `json:"year"`
	D          string    `json:"d"`
	EventName1 string    `json:"event_name_1,omitempty"`
	EventType1 string    `json:"event_type_1,omitempty"`
	EventName2 string    `json:"event_name_2,omitempty"`
	EventType2 string    `json:"event_type_2,omitempty"`
	SnapCA     bool      `json:"snap_CA"`
	SnapTX     bool      `json:"snap_TX"`
	SnapWI     bool      `json:"snap_WI"`

	// Derived features
	Day       int  `json:"day"`
	DayOfWeek int  `json:"dayofweek"` // Monday = 0
	Quarter   int  `json:"quarter"`
	IsWeekend bool `json:"is_weekend"`
}

// Calendar holds the parsed calendar table.
type Calendar struct {
	Days []CalendarDay

	columns []string
	nulls   map[string]int
}

// Lookup returns the calendar day with the given d key.
func (c *Calendar) Lookup(d string) (CalendarDay, bool) {
	for _, day := range c.Days {
		if day.D == d {
			return day, true
		}
	}
	return CalendarDay{}, false
}

// DateByD returns the d-key to date mapping used by the melt join.
func (c *Calendar) DateByD() map[string]time.Time {
	m := make(map[string]time.Time, len(c.Days))
	for _, day := range c.Days {
		m[day.D] = day.Date
	}
	return m
}

// SalesSeries is one wide-format row: a single (item, store) combination
// with one unit-sales count per day column.
type SalesSeries struct {
	ID      string `json:"id"`
	ItemID  string `json:"item_id"`
	DeptID  string `json:"dept_id"`
	CatID   string `json:"cat_id"`
	StoreID string `json:"store_id"`
	StateID string `json:"state_id"`
	// Units is aligned with SalesTable.DayColumns.
	Units []int `json:"units"`
}

// SalesTable holds the wide-format sales table.
type SalesTable struct {
	// IDColumns are the identifier columns, in header order.
	IDColumns []string
	// DayColumns are the d_N columns, in header order.
	DayColumns []string
	Series     []SalesSeries

	nulls map[string]int
}

// MeltedRow is one long-format sales row: a single (item, store, day)
// observation joined against the calendar. Date is the zero time when the
// d key had no calendar match.
type MeltedRow struct {
	ID      string    `json:"id"`
	ItemID  string    `json:"item_id"`
	DeptID  string    `json:"dept_id"`
	CatID   string    `json:"cat_id"`
	StoreID string    `json:"store_id"`
	StateID string    `json:"state_id"`
	D       string    `json:"d"`
	Sales   int       `json:"sales"`
	Date    time.Time `json:"date"`
}

// PriceRow is one row of the weekly sell-price table.
type PriceRow struct {
	StoreID   string  `json:"store_id"`
	ItemID    string  `json:"item_id"`
	WmYrWk    int     `json:"wm_yr_wk"`
	SellPrice float64 `json:"sell_price"`
}

// PriceTable holds the parsed sell-price table.
type PriceTable struct {
	Rows []PriceRow

	columns []string
	nulls   map[string]int
}

// SubmissionRow is one row of the sample submission: an id plus the
// F1..F28 forecast slots.
type SubmissionRow struct {
	ID        string    `json:"id"`
	Forecasts []float64 `json:"forecasts"`
}

// SubmissionTable holds the parsed sample submission.
type SubmissionTable struct {
	Rows []SubmissionRow

	columns []string
	nulls   map[string]int
}

// ItemGroup locates an item inside the category hierarchy.
type ItemGroup struct {
	DeptID string `json:"dept_id"`
	CatID  string `json:"cat_id"`
}

// Hierarchy is the categorical structure extracted from a sales table:
// distinct values per level plus the store to state and item to
// department/category lookups.
type Hierarchy struct {
	States      []string `json:"states"`
	Stores      []string `json:"stores"`
	Categories  []string `json:"categories"`
	Departments []string `json:"departments"`
	Items       []string `json:"items"`

	StoreState map[string]string    `json:"store_state_mapping"`
	ItemGroups map[string]ItemGroup `json:"item_hierarchy"`
}

// Dataset bundles all loaded tables. Every table is a read-only snapshot,
// fresh per load.
type Dataset struct {
	Calendar   *Calendar
	Sales      *SalesTable
	Prices     *PriceTable
	Submission *SubmissionTable

	// Melted is populated only when a long-format reshape was requested.
	Melted []MeltedRow
}

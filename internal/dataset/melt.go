package dataset

import (
	"sort"

	"m5cli/internal/errors"
)

// MeltSalesData converts a wide sales table into long format: one row per
// (series, day column), carrying the identifier columns plus the d key and
// that day's unit sales. Each row is left-joined against the calendar on d
// to attach the date; a d key with no calendar match keeps the zero date
// rather than failing. The result is sorted by item id then date,
// ascending, with undated rows ordering after dated ones for the same item
// and ties keeping their pre-sort order.
func MeltSalesData(sales *SalesTable, calendar *Calendar) ([]MeltedRow, error) {
	if sales == nil {
		return nil, errors.NewSchemaError("sales table is nil")
	}
	if calendar == nil {
		return nil, errors.NewSchemaError("calendar is nil")
	}
	if len(sales.IDColumns) == 0 {
		return nil, errors.NewSchemaError("sales table has no identifier columns")
	}
	if len(sales.DayColumns) == 0 {
		return nil, errors.NewSchemaError("sales table has no day columns to melt")
	}

	dateByD := calendar.DateByD()

	// Column-major generation (all series for d_1, then d_2, ...) so that
	// the stable sort below resolves ties the same way every run.
	melted := make([]MeltedRow, 0, len(sales.Series)*len(sales.DayColumns))
	for j, d := range sales.DayColumns {
		for _, s := range sales.Series {
			row := MeltedRow{
				ID:      s.ID,
				ItemID:  s.ItemID,
				DeptID:  s.DeptID,
				CatID:   s.CatID,
				StoreID: s.StoreID,
				StateID: s.StateID,
				D:       d,
			}
			if j < len(s.Units) {
				row.Sales = s.Units[j]
			}
			if date, ok := dateByD[d]; ok {
				row.Date = date
			}
			melted = append(melted, row)
		}
	}

	sort.SliceStable(melted, func(i, j int) bool {
		if melted[i].ItemID != melted[j].ItemID {
			return melted[i].ItemID < melted[j].ItemID
		}
		iDated, jDated := !melted[i].Date.IsZero(), !melted[j].Date.IsZero()
		switch {
		case iDated && jDated:
			return melted[i].Date.Before(melted[j].Date)
		case iDated:
			// Undated rows sort after dated ones.
			return true
		default:
			return false
		}
	})

	return melted, nil
}

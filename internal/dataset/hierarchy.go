package dataset

import (
	"log/slog"

	"m5cli/internal/errors"
)

// BuildHierarchy extracts the categorical structure from a wide sales
// table: the distinct states, stores, categories, departments and items in
// first-appearance order, plus the store-to-state and item-to-group
// lookups.
//
// A store that appears under two different states (or an item under two
// different department/category pairs) keeps the last-seen mapping, the
// same silent-overwrite behavior the melt join assumes upstream; here the
// conflict is at least logged as a warning so bad inputs surface.
func BuildHierarchy(sales *SalesTable, logger *slog.Logger) (*Hierarchy, error) {
	if sales == nil {
		return nil, errors.NewSchemaError("sales table is nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	h := &Hierarchy{
		StoreState: make(map[string]string),
		ItemGroups: make(map[string]ItemGroup),
	}

	seenState := make(map[string]bool)
	seenStore := make(map[string]bool)
	seenCat := make(map[string]bool)
	seenDept := make(map[string]bool)
	seenItem := make(map[string]bool)

	for _, s := range sales.Series {
		if !seenState[s.StateID] {
			seenState[s.StateID] = true
			h.States = append(h.States, s.StateID)
		}
		if !seenStore[s.StoreID] {
			seenStore[s.StoreID] = true
			h.Stores = append(h.Stores, s.StoreID)
		}
		if !seenCat[s.CatID] {
			seenCat[s.CatID] = true
			h.Categories = append(h.Categories, s.CatID)
		}
		if !seenDept[s.DeptID] {
			seenDept[s.DeptID] = true
			h.Departments = append(h.Departments, s.DeptID)
		}
		if !seenItem[s.ItemID] {
			seenItem[s.ItemID] = true
			h.Items = append(h.Items, s.ItemID)
		}

		if prev, ok := h.StoreState[s.StoreID]; ok && prev != s.StateID {
			logger.Warn("store mapped to multiple states, keeping last seen",
				slog.String("store_id", s.StoreID),
				slog.String("previous_state", prev),
				slog.String("new_state", s.StateID))
		}
		h.StoreState[s.StoreID] = s.StateID

		group := ItemGroup{DeptID: s.DeptID, CatID: s.CatID}
		if prev, ok := h.ItemGroups[s.ItemID]; ok && prev != group {
			logger.Warn("item mapped to multiple groups, keeping last seen",
				slog.String("item_id", s.ItemID),
				slog.String("previous_dept", prev.DeptID),
				slog.String("new_dept", group.DeptID))
		}
		h.ItemGroups[s.ItemID] = group
	}

	return h, nil
}

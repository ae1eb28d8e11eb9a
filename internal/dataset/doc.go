// Package dataset loads and reshapes the M5 competition retail sales data.
//
// The package has two halves. The Loader reads the five flat files
// (calendar, the two sales variants, sell prices, sample submission) from a
// configured directory into typed in-memory tables, deriving the calendar
// date features on the way in. The reshaping functions then turn the wide
// per-day sales table into long (date, value) rows and extract the
// state/store/category/department/item hierarchy.
//
// Basic usage:
//
//	loader := dataset.NewLoader("data", dataset.WithLogger(logger))
//	data, err := loader.LoadAllData(true)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Reshape and label:
//
//	melted, err := dataset.MeltSalesData(data.Sales, data.Calendar)
//	hierarchy, err := dataset.BuildHierarchy(data.Sales, logger)
//
// All loads are synchronous and read each file fully into memory; every
// call returns a fresh snapshot, so concurrent callers never share state.
package dataset

package dataset

// LoadData is a convenience wrapper: build a loader for dir and load every
// table.
func LoadData(dir string, useValidation bool, opts ...Option) (*Dataset, error) {
	return NewLoader(dir, opts...).LoadAllData(useValidation)
}

// LoadAndPrepareData loads every table, always builds the hierarchy, and
// melts the sales table to long format only when meltSales is set (the
// melt is by far the most expensive step, so it stays opt-in).
func LoadAndPrepareData(dir string, useValidation, meltSales bool, opts ...Option) (*Dataset, *Hierarchy, error) {
	loader := NewLoader(dir, opts...)

	data, err := loader.LoadAllData(useValidation)
	if err != nil {
		return nil, nil, err
	}

	hierarchy, err := BuildHierarchy(data.Sales, loader.logger)
	if err != nil {
		return nil, nil, err
	}

	if meltSales {
		melted, err := MeltSalesData(data.Sales, data.Calendar)
		if err != nil {
			return nil, nil, err
		}
		data.Melted = melted
	}

	return data, hierarchy, nil
}

package dataset

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietOpt() Option {
	return WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestLoadData(t *testing.T) {
	dir := writeM5Fixtures(t)

	data, err := LoadData(dir, true, quietOpt())
	require.NoError(t, err)

	require.NotNil(t, data.Calendar)
	require.NotNil(t, data.Sales)
	require.NotNil(t, data.Prices)
	require.NotNil(t, data.Submission)
	assert.Nil(t, data.Melted)
}

func TestLoadAndPrepareData_WithoutMelt(t *testing.T) {
	dir := writeM5Fixtures(t)

	data, hierarchy, err := LoadAndPrepareData(dir, true, false, quietOpt())
	require.NoError(t, err)

	// The hierarchy is always built; the melt is opt-in.
	require.NotNil(t, hierarchy)
	assert.Equal(t, []string{"CA"}, hierarchy.States)
	assert.Nil(t, data.Melted)
}

func TestLoadAndPrepareData_WithMelt(t *testing.T) {
	dir := writeM5Fixtures(t)

	data, hierarchy, err := LoadAndPrepareData(dir, true, true, quietOpt())
	require.NoError(t, err)

	require.NotNil(t, hierarchy)
	assert.Len(t, data.Melted, len(data.Sales.Series)*len(data.Sales.DayColumns))
}

func TestLoadAndPrepareData_LoadErrorPropagates(t *testing.T) {
	_, _, err := LoadAndPrepareData(t.TempDir(), true, true, quietOpt())
	require.Error(t, err)
}

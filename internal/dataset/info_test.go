package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatasetInfo(t *testing.T) {
	dir := writeM5Fixtures(t)
	data, err := quietLoader(t, dir).LoadAllData(true)
	require.NoError(t, err)

	info := data.Info()
	require.Len(t, info, 4)

	cal := info["calendar"]
	assert.Equal(t, 3, cal.Rows)
	// Raw header plus the four derived feature columns.
	assert.Equal(t, len(calendarHeader)+4, cal.Cols)
	assert.Contains(t, cal.Columns, "is_weekend")
	assert.Contains(t, cal.Columns, "dayofweek")
	assert.Greater(t, cal.MemoryMB, 0.0)
	// Two fixture rows have no event name.
	assert.Equal(t, 2, cal.NullCounts["event_name_1"])
	assert.Equal(t, 0, cal.NullCounts["date"])
	assert.Equal(t, 0, cal.NullCounts["is_weekend"])

	sales := info["sales"]
	assert.Equal(t, 2, sales.Rows)
	assert.Equal(t, 9, sales.Cols)
	assert.Equal(t, []string{"id", "item_id", "dept_id", "cat_id", "store_id", "state_id", "d_1", "d_2", "d_3"}, sales.Columns)

	prices := info["prices"]
	assert.Equal(t, 2, prices.Rows)
	assert.Equal(t, 4, prices.Cols)

	sub := info["sample_submission"]
	assert.Equal(t, 1, sub.Rows)
	assert.Equal(t, 29, sub.Cols)
}

func TestLoaderDataInfo(t *testing.T) {
	dir := writeM5Fixtures(t)

	info, err := quietLoader(t, dir).DataInfo()
	require.NoError(t, err)
	assert.Len(t, info, 4)
	assert.Equal(t, 2, info["sales"].Rows)
}

func TestLoaderDataInfo_PropagatesLoadError(t *testing.T) {
	_, err := quietLoader(t, t.TempDir()).DataInfo()
	require.Error(t, err)
}

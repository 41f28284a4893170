package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pomanager/po-admin/internal/service/models/isodate"
)

func TestParamsAlwaysCarryTextCriteria(t *testing.T) {
	params := Query{}.Params()

	// Blank criteria are sent as empty values; the backend treats empty as
	// "no filter".
	assert.True(t, params.Has("number"))
	assert.True(t, params.Has("startDate"))
	assert.True(t, params.Has("endDate"))
	assert.Equal(t, "", params.Get("number"))
	assert.Equal(t, "", params.Get("startDate"))
}

func TestParamsOmitEmptyProviderSelection(t *testing.T) {
	params := Query{}.Params()
	assert.False(t, params.Has("providerId"))
}

func TestParamsJoinProviderIDs(t *testing.T) {
	params := Query{ProviderIDs: []int64{2, 5}}.Params()
	assert.Equal(t, "2,5", params.Get("providerId"))

	params = Query{ProviderIDs: []int64{7}}.Params()
	assert.Equal(t, "7", params.Get("providerId"))
}

func TestParamsRenderDates(t *testing.T) {
	q := Query{
		StartDate: mustDate(t, "2026-07-30"),
		EndDate:   mustDate(t, "2026-08-30"),
	}

	params := q.Params()
	assert.Equal(t, "2026-07-30", params.Get("startDate"))
	assert.Equal(t, "2026-08-30", params.Get("endDate"))
}

func TestDefaultQuerySpansLastMonth(t *testing.T) {
	q := DefaultQuery()

	today := isodate.Today()
	require.False(t, q.StartDate.IsZero())
	require.False(t, q.EndDate.IsZero())
	assert.Equal(t, today.String(), q.EndDate.String())
	assert.Equal(t, today.AddMonths(-1).String(), q.StartDate.String())
	assert.Empty(t, q.Number)
	assert.Empty(t, q.ProviderIDs)
}

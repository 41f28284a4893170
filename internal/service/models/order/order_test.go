package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pomanager/po-admin/internal/service/compare"
	"github.com/pomanager/po-admin/internal/service/models/isodate"
)

func ptr[T any](v T) *T { return &v }

func mustDate(t *testing.T, s string) isodate.Date {
	t.Helper()
	d, err := isodate.Parse(s)
	require.NoError(t, err)

	return d
}

func TestParseSortField(t *testing.T) {
	tests := []struct {
		in   string
		want SortField
		ok   bool
	}{
		{in: "", want: SortByID, ok: true},
		{in: "id", want: SortByID, ok: true},
		{in: "number", want: SortByNumber, ok: true},
		{in: "date", want: SortByDate, ok: true},
		{in: "providerId", want: SortByProvider, ok: true},
		{in: "color", want: SortByID, ok: false},
	}

	for _, tt := range tests {
		got, ok := ParseSortField(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
	}
}

func TestSortByIDNumeric(t *testing.T) {
	orders := []Order{
		{ID: ptr(int64(10)), Number: "A"},
		{ID: ptr(int64(9)), Number: "B"},
		{ID: ptr(int64(100)), Number: "C"},
	}

	sorted := Sort(orders, SortByID, compare.Asc)
	assert.Equal(t, []string{"B", "A", "C"}, []string{sorted[0].Number, sorted[1].Number, sorted[2].Number})
}

func TestSortByNumberCaseInsensitive(t *testing.T) {
	orders := []Order{
		{ID: ptr(int64(1)), Number: "beta"},
		{ID: ptr(int64(2)), Number: "Alpha"},
	}

	sorted := Sort(orders, SortByNumber, compare.Asc)
	assert.Equal(t, "Alpha", sorted[0].Number)
}

func TestSortByDate(t *testing.T) {
	orders := []Order{
		{ID: ptr(int64(1)), Date: mustDate(t, "2026-08-20")},
		{ID: ptr(int64(2)), Date: mustDate(t, "2026-08-01")},
	}

	sorted := Sort(orders, SortByDate, compare.Desc)
	assert.Equal(t, int64(1), *sorted[0].ID)
}

func TestSortLeavesUnpersistedInPlace(t *testing.T) {
	orders := []Order{
		{Number: "draft"},
		{ID: ptr(int64(5)), Number: "five"},
	}

	sorted := Sort(orders, SortByID, compare.Asc)
	assert.Equal(t, "draft", sorted[0].Number)
}

func TestPersisted(t *testing.T) {
	assert.False(t, Order{}.Persisted())
	assert.True(t, Order{ID: ptr(int64(1))}.Persisted())
}

package order

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/pomanager/po-admin/internal/service/models/isodate"
)

// Query represents filter criteria for the order list. Blank criteria are
// passed through to the backend as empty values; the backend treats empty as
// "no filter". Values are never shape-validated here.
type Query struct {
	Number      string       `json:"number" schema:"number"`
	StartDate   isodate.Date `json:"startDate" schema:"startDate"`
	EndDate     isodate.Date `json:"endDate" schema:"endDate"`
	ProviderIDs []int64      `json:"providerIds,omitempty" schema:"providerIds"`
}

// DefaultQuery is the initial list filter: the last calendar month through
// today. Computed once when a view is constructed, not on later renders.
func DefaultQuery() Query {
	today := isodate.Today()

	return Query{
		StartDate: today.AddMonths(-1),
		EndDate:   today,
	}
}

// Params translates the criteria into backend query parameters. The
// multi-valued provider selection serializes as a single comma-joined
// providerId parameter and is omitted entirely when empty.
func (q Query) Params() url.Values {
	params := url.Values{}
	params.Set("number", q.Number)
	params.Set("startDate", q.StartDate.String())
	params.Set("endDate", q.EndDate.String())

	if len(q.ProviderIDs) > 0 {
		ids := make([]string, len(q.ProviderIDs))
		for i, id := range q.ProviderIDs {
			ids[i] = strconv.FormatInt(id, 10)
		}
		params.Set("providerId", strings.Join(ids, ","))
	}

	return params
}

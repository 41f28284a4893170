package isodate

import (
	"fmt"
	"strings"
	"time"
)

// Date is a calendar date without a time component. The upstream backend
// exchanges dates as ISO 8601 date-time strings; Date truncates them to the
// date portion on the way in and renders plain "2006-01-02" on the way out.
type Date struct {
	t time.Time
}

// layouts accepted when parsing upstream values, most specific first.
var layouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Parse parses an ISO 8601 date or date-time string into a Date.
func Parse(s string) (Date, error) {
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Of(t), nil
		}
	}

	return Date{}, fmt.Errorf("invalid date %q", s)
}

// Of truncates t to its calendar date.
func Of(t time.Time) Date {
	y, m, d := t.Date()

	return Date{t: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current calendar date.
func Today() Date {
	return Of(time.Now())
}

// AddMonths shifts the date by the given number of calendar months.
func (d Date) AddMonths(months int) Date {
	return Of(d.t.AddDate(0, months, 0))
}

// Time returns the date as a time.Time at midnight UTC.
func (d Date) Time() time.Time {
	return d.t
}

// IsZero reports whether the date is unset.
func (d Date) IsZero() bool {
	return d.t.IsZero()
}

// String renders the date as "2006-01-02", or "" when unset.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}

	return d.t.Format("2006-01-02")
}

// MarshalJSON renders the date portion only.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON accepts ISO 8601 date and date-time strings.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*d = Date{}

		return nil
	}

	parsed, err := Parse(s)
	if err != nil {
		return err
	}

	*d = parsed

	return nil
}

package compare

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pomanager/po-admin/internal/service/models/isodate"
)

// Direction of an ordering.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// ParseDirection parses a direction string, defaulting to ascending.
func ParseDirection(s string) Direction {
	if strings.EqualFold(s, string(Desc)) {
		return Desc
	}

	return Asc
}

// Toggle returns the opposite direction.
func (d Direction) Toggle() Direction {
	if d == Desc {
		return Asc
	}

	return Desc
}

// Kind is the declared comparison type of a sortable field.
type Kind int

const (
	// KindNumeric coerces both operands to a numeric value before comparing,
	// so "10" and 10 are equal-valued and 9 orders before "10".
	KindNumeric Kind = iota
	// KindTime compares calendar dates chronologically.
	KindTime
	// KindText compares case-insensitively after folding to lower case.
	KindText
	// KindNative compares by the natural ordering of the underlying value.
	KindNative
)

// Tri is a pure three-way comparison of a and b under the given kind,
// returning -1, 0 or 1. Operands are assumed well-formed for their kind;
// a nil operand (an id not yet assigned by the backend) compares equal to
// anything so that a stable sort leaves such rows in place.
func Tri(a, b any, kind Kind) int {
	if a == nil || b == nil {
		return 0
	}

	switch kind {
	case KindNumeric:
		return cmp(toFloat(a), toFloat(b))
	case KindTime:
		ta, tb := toTime(a), toTime(b)
		if ta.Equal(tb) {
			return 0
		}
		if ta.Before(tb) {
			return -1
		}

		return 1
	case KindText:
		return strings.Compare(strings.ToLower(toString(a)), strings.ToLower(toString(b)))
	default:
		return native(a, b)
	}
}

// Sorted returns a stably sorted copy of items ordered by the key under the
// given kind and direction. The input slice is never mutated.
func Sorted[T any](items []T, kind Kind, dir Direction, key func(T) any) []T {
	out := make([]T, len(items))
	copy(out, items)

	sort.SliceStable(out, func(i, j int) bool {
		c := Tri(key(out[i]), key(out[j]), kind)
		if dir == Desc {
			c = -c
		}

		return c < 0
	})

	return out
}

func cmp[T float64 | string](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case *int64:
		if n == nil {
			return 0
		}

		return float64(*n)
	case decimal.Decimal:
		f, _ := n.Float64()

		return f
	case string:
		f, _ := strconv.ParseFloat(n, 64)

		return f
	default:
		return 0
	}
}

func toTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case isodate.Date:
		return t.Time()
	case string:
		if d, err := isodate.Parse(t); err == nil {
			return d.Time()
		}

		return time.Time{}
	default:
		return time.Time{}
	}
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}

	return ""
}

func native(a, b any) int {
	switch x := a.(type) {
	case decimal.Decimal:
		y, ok := b.(decimal.Decimal)
		if !ok {
			return 0
		}

		return x.Cmp(y)
	case string:
		y, ok := b.(string)
		if !ok {
			return 0
		}

		return strings.Compare(x, y)
	case int64:
		y, ok := b.(int64)
		if !ok {
			return 0
		}

		return cmp(float64(x), float64(y))
	case float64:
		y, ok := b.(float64)
		if !ok {
			return 0
		}

		return cmp(x, y)
	default:
		return 0
	}
}

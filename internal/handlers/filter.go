package handlers

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// whereBuilder accumulates WHERE conditions with positional arguments.
// Every list endpoint builds its filter through this type so that
// role scoping, exact-match filters, and date ranges compose uniformly.
type whereBuilder struct {
	conds []string
	args  []interface{}
}

// arg registers a query argument and returns its placeholder.
func (b *whereBuilder) arg(v interface{}) string {
	b.args = append(b.args, v)
	return fmt.Sprintf("$%d", len(b.args))
}

// Eq adds an exact-match condition on col.
func (b *whereBuilder) Eq(col string, v interface{}) {
	b.conds = append(b.conds, col+" = "+b.arg(v))
}

// AnyOf adds a set-membership condition on col. An empty set matches nothing.
func (b *whereBuilder) AnyOf(col string, ids []string) {
	if ids == nil {
		ids = []string{}
	}
	b.conds = append(b.conds, col+" = ANY("+b.arg(ids)+")")
}

// Range adds a half-open [from, to) condition on col. Either bound may be
// nil for an open-ended range.
func (b *whereBuilder) Range(col string, from, to *time.Time) {
	if from != nil {
		b.conds = append(b.conds, col+" >= "+b.arg(*from))
	}
	if to != nil {
		b.conds = append(b.conds, col+" < "+b.arg(*to))
	}
}

// Clause renders the WHERE clause, or "" when no conditions were added.
func (b *whereBuilder) Clause() string {
	if len(b.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.conds, " AND ")
}

// Args returns the accumulated positional arguments.
func (b *whereBuilder) Args() []interface{} {
	return b.args
}

// dateLayouts accepted in query parameters: plain calendar dates and
// full RFC 3339 timestamps.
var dateLayouts = []string{"2006-01-02", time.RFC3339}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
}

// dayBounds returns the half-open interval covering the calendar day that
// starts at t: [t, t+24h).
func dayBounds(t time.Time) (time.Time, time.Time) {
	return t, t.Add(24 * time.Hour)
}

// applyDateFilters translates the date / startDate / endDate query
// parameters into a range condition on col.
//
// A bare date selects that single calendar day. startDate/endDate select
// [startDate, endDate+1day) so the end date is inclusive at day
// granularity; either bound may be omitted for an open-ended range.
// When both a date and a range are supplied the range wins, matching the
// behavior clients already depend on.
func applyDateFilters(b *whereBuilder, col string, q url.Values) error {
	startStr := q.Get("startDate")
	endStr := q.Get("endDate")

	if startStr != "" || endStr != "" {
		var from, to *time.Time
		if startStr != "" {
			t, err := parseDate(startStr)
			if err != nil {
				return err
			}
			from = &t
		}
		if endStr != "" {
			t, err := parseDate(endStr)
			if err != nil {
				return err
			}
			next := t.Add(24 * time.Hour)
			to = &next
		}
		b.Range(col, from, to)
		return nil
	}

	if dateStr := q.Get("date"); dateStr != "" {
		t, err := parseDate(dateStr)
		if err != nil {
			return err
		}
		from, to := dayBounds(t)
		b.Range(col, &from, &to)
	}

	return nil
}

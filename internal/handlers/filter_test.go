package handlers

import (
	"net/url"
	"testing"
	"time"
)

func TestWhereBuilder(t *testing.T) {
	t.Run("empty builder produces no clause", func(t *testing.T) {
		b := &whereBuilder{}
		if got := b.Clause(); got != "" {
			t.Errorf("Clause() = %q, want empty", got)
		}
		if got := len(b.Args()); got != 0 {
			t.Errorf("Args() has %d entries, want 0", got)
		}
	})

	t.Run("conditions are numbered in order", func(t *testing.T) {
		b := &whereBuilder{}
		b.Eq("status", "Pending")
		b.Eq("client_id", "abc")

		want := " WHERE status = $1 AND client_id = $2"
		if got := b.Clause(); got != want {
			t.Errorf("Clause() = %q, want %q", got, want)
		}
		args := b.Args()
		if len(args) != 2 || args[0] != "Pending" || args[1] != "abc" {
			t.Errorf("Args() = %v, want [Pending abc]", args)
		}
	})

	t.Run("range adds both bounds", func(t *testing.T) {
		b := &whereBuilder{}
		from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)
		b.Range("work_date", &from, &to)

		want := " WHERE work_date >= $1 AND work_date < $2"
		if got := b.Clause(); got != want {
			t.Errorf("Clause() = %q, want %q", got, want)
		}
	})

	t.Run("range with only lower bound", func(t *testing.T) {
		b := &whereBuilder{}
		from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
		b.Range("work_date", &from, nil)

		want := " WHERE work_date >= $1"
		if got := b.Clause(); got != want {
			t.Errorf("Clause() = %q, want %q", got, want)
		}
	})

	t.Run("anyOf with empty set still filters", func(t *testing.T) {
		b := &whereBuilder{}
		b.AnyOf("employee_id", []string{})

		want := " WHERE employee_id = ANY($1)"
		if got := b.Clause(); got != want {
			t.Errorf("Clause() = %q, want %q", got, want)
		}
	})
}

func TestApplyDateFilters(t *testing.T) {
	t.Run("bare date selects one day", func(t *testing.T) {
		b := &whereBuilder{}
		q := url.Values{"date": {"2024-03-15"}}
		if err := applyDateFilters(b, "a.work_date", q); err != nil {
			t.Fatalf("applyDateFilters: %v", err)
		}

		args := b.Args()
		if len(args) != 2 {
			t.Fatalf("Args() has %d entries, want 2", len(args))
		}
		from := args[0].(time.Time)
		to := args[1].(time.Time)
		if !from.Equal(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("from = %v", from)
		}
		if got := to.Sub(from); got != 24*time.Hour {
			t.Errorf("window = %v, want 24h", got)
		}
	})

	t.Run("end date is inclusive at day granularity", func(t *testing.T) {
		b := &whereBuilder{}
		q := url.Values{
			"startDate": {"2024-03-01"},
			"endDate":   {"2024-03-01"},
		}
		if err := applyDateFilters(b, "a.work_date", q); err != nil {
			t.Fatalf("applyDateFilters: %v", err)
		}

		args := b.Args()
		if len(args) != 2 {
			t.Fatalf("Args() has %d entries, want 2", len(args))
		}
		from := args[0].(time.Time)
		to := args[1].(time.Time)
		// A range of one day covers that whole day.
		if got := to.Sub(from); got != 24*time.Hour {
			t.Errorf("window = %v, want 24h", got)
		}
	})

	t.Run("range replaces bare date", func(t *testing.T) {
		b := &whereBuilder{}
		q := url.Values{
			"date":      {"2024-01-01"},
			"startDate": {"2024-03-01"},
			"endDate":   {"2024-03-31"},
		}
		if err := applyDateFilters(b, "a.work_date", q); err != nil {
			t.Fatalf("applyDateFilters: %v", err)
		}

		args := b.Args()
		if len(args) != 2 {
			t.Fatalf("Args() has %d entries, want 2", len(args))
		}
		from := args[0].(time.Time)
		if from.Month() != time.March {
			t.Errorf("from = %v, want the range start, not the bare date", from)
		}
	})

	t.Run("open ended range", func(t *testing.T) {
		b := &whereBuilder{}
		q := url.Values{"startDate": {"2024-03-01"}}
		if err := applyDateFilters(b, "a.work_date", q); err != nil {
			t.Fatalf("applyDateFilters: %v", err)
		}
		if len(b.Args()) != 1 {
			t.Errorf("Args() has %d entries, want 1", len(b.Args()))
		}
	})

	t.Run("no parameters adds nothing", func(t *testing.T) {
		b := &whereBuilder{}
		if err := applyDateFilters(b, "a.work_date", url.Values{}); err != nil {
			t.Fatalf("applyDateFilters: %v", err)
		}
		if got := b.Clause(); got != "" {
			t.Errorf("Clause() = %q, want empty", got)
		}
	})

	t.Run("invalid date is rejected", func(t *testing.T) {
		b := &whereBuilder{}
		q := url.Values{"date": {"15-03-2024"}}
		if err := applyDateFilters(b, "a.work_date", q); err == nil {
			t.Error("expected error for invalid date format")
		}
	})

	t.Run("rfc3339 timestamps are accepted", func(t *testing.T) {
		b := &whereBuilder{}
		q := url.Values{"date": {"2024-03-15T00:00:00Z"}}
		if err := applyDateFilters(b, "a.work_date", q); err != nil {
			t.Errorf("applyDateFilters: %v", err)
		}
	})
}

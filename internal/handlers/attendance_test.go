package handlers

import (
	"testing"

	"textile-backend/internal/models"
)

func strPtr(s string) *string { return &s }

func TestPlanMark(t *testing.T) {
	t.Run("first check-in inserts with Present", func(t *testing.T) {
		plan, reject := planMark(false, &models.MarkAttendanceRequest{CheckIn: true})
		if reject != "" {
			t.Fatalf("unexpected rejection %q", reject)
		}
		if !plan.Insert || !plan.CheckIn {
			t.Errorf("plan = %+v, want insert with check-in", plan)
		}
		if plan.Status == nil || *plan.Status != "Present" {
			t.Errorf("status = %v, want Present", plan.Status)
		}
	})

	t.Run("second check-in on the same day is rejected", func(t *testing.T) {
		_, reject := planMark(true, &models.MarkAttendanceRequest{CheckIn: true})
		if reject != "Attendance already marked for this date" {
			t.Errorf("rejection = %q, want already-marked message", reject)
		}
	})

	t.Run("check-out without a check-in is rejected", func(t *testing.T) {
		_, reject := planMark(false, &models.MarkAttendanceRequest{CheckOut: true})
		if reject != "No check-in record found for this date" {
			t.Errorf("rejection = %q, want no-check-in message", reject)
		}
	})

	t.Run("check-in then check-out updates the same record", func(t *testing.T) {
		in, reject := planMark(false, &models.MarkAttendanceRequest{CheckIn: true})
		if reject != "" {
			t.Fatalf("check-in rejected: %q", reject)
		}
		if !in.Insert {
			t.Error("check-in should insert the day's record")
		}

		out, reject := planMark(true, &models.MarkAttendanceRequest{CheckOut: true})
		if reject != "" {
			t.Fatalf("check-out rejected: %q", reject)
		}
		if out.Insert {
			t.Error("check-out should update, not insert a second record")
		}
		if !out.CheckOut {
			t.Errorf("plan = %+v, want check-out", out)
		}
	})

	t.Run("plain mark on a new day defaults to Absent", func(t *testing.T) {
		plan, reject := planMark(false, &models.MarkAttendanceRequest{})
		if reject != "" {
			t.Fatalf("unexpected rejection %q", reject)
		}
		if !plan.Insert {
			t.Error("expected an insert")
		}
		if plan.Status == nil || *plan.Status != "Absent" {
			t.Errorf("status = %v, want Absent", plan.Status)
		}
	})

	t.Run("plain mark without status keeps the existing status", func(t *testing.T) {
		plan, reject := planMark(true, &models.MarkAttendanceRequest{})
		if reject != "" {
			t.Fatalf("unexpected rejection %q", reject)
		}
		if plan.Insert {
			t.Error("expected a merge, not an insert")
		}
		if plan.Status != nil {
			t.Errorf("status = %q, want nil so the stored value survives", *plan.Status)
		}
	})

	t.Run("explicit status is carried through", func(t *testing.T) {
		plan, _ := planMark(true, &models.MarkAttendanceRequest{Status: strPtr("Leave")})
		if plan.Status == nil || *plan.Status != "Leave" {
			t.Errorf("merge status = %v, want Leave", plan.Status)
		}

		plan, _ = planMark(false, &models.MarkAttendanceRequest{CheckIn: true, Status: strPtr("Half-day")})
		if plan.Status == nil || *plan.Status != "Half-day" {
			t.Errorf("check-in status = %v, want Half-day", plan.Status)
		}
	})
}

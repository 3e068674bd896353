package models

import "testing"

func TestMarkAttendanceRequestValidate(t *testing.T) {
	t.Run("employee id is required", func(t *testing.T) {
		req := MarkAttendanceRequest{CheckIn: true}
		if errs := req.Validate(); errs["employeeId"] == "" {
			t.Error("expected employeeId error")
		}
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		status := "Vacation"
		req := MarkAttendanceRequest{EmployeeID: "abc", Status: &status}
		if errs := req.Validate(); errs["status"] == "" {
			t.Error("expected status error")
		}
	})

	t.Run("half-day is a known status", func(t *testing.T) {
		status := "Half-day"
		req := MarkAttendanceRequest{EmployeeID: "abc", Status: &status}
		if errs := req.Validate(); len(errs) != 0 {
			t.Errorf("Validate() = %v, want no errors", errs)
		}
	})
}

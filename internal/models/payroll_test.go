package models

import "testing"

func TestNetSalary(t *testing.T) {
	tests := []struct {
		name       string
		basic      float64
		allowances float64
		deductions float64
		want       float64
	}{
		{"basic only", 30000, 0, 0, 30000},
		{"with allowances", 30000, 5000, 0, 35000},
		{"with deductions", 30000, 0, 2000, 28000},
		{"all components", 30000, 5000, 2000, 33000},
		{"deductions exceed pay", 1000, 0, 1500, -500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NetSalary(tt.basic, tt.allowances, tt.deductions); got != tt.want {
				t.Errorf("NetSalary(%v, %v, %v) = %v, want %v",
					tt.basic, tt.allowances, tt.deductions, got, tt.want)
			}
		})
	}
}

func TestGeneratePayrollRequestValidate(t *testing.T) {
	t.Run("valid request passes", func(t *testing.T) {
		req := GeneratePayrollRequest{EmployeeID: "abc", Month: 6, Year: 2024}
		if errs := req.Validate(); len(errs) != 0 {
			t.Errorf("Validate() = %v, want no errors", errs)
		}
	})

	t.Run("missing employee is rejected", func(t *testing.T) {
		req := GeneratePayrollRequest{Month: 6, Year: 2024}
		if errs := req.Validate(); errs["employeeId"] == "" {
			t.Error("expected employeeId error")
		}
	})

	t.Run("month out of range is rejected", func(t *testing.T) {
		for _, month := range []int{0, 13, -1} {
			req := GeneratePayrollRequest{EmployeeID: "abc", Month: month, Year: 2024}
			if errs := req.Validate(); errs["month"] == "" {
				t.Errorf("month %d: expected month error", month)
			}
		}
	})

	t.Run("missing year is rejected", func(t *testing.T) {
		req := GeneratePayrollRequest{EmployeeID: "abc", Month: 6}
		if errs := req.Validate(); errs["year"] == "" {
			t.Error("expected year error")
		}
	})
}

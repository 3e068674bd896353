package models

// Payroll is one employee's salary record for a given month.
// At most one row exists per (employee, month, year).
type Payroll struct {
	ID          string  `json:"id"`
	EmployeeID  string  `json:"employeeId"`
	Month       int     `json:"month"`
	Year        int     `json:"year"`
	BasicSalary float64 `json:"basicSalary"`
	Allowances  float64 `json:"allowances"`
	Deductions  float64 `json:"deductions"`
	NetSalary   float64 `json:"netSalary"`
	Status      string  `json:"status"` // Pending, Paid
	PaymentDate *string `json:"paymentDate"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

// PayrollWithEmployee expands the employee reference with the linked
// user account for payroll listings.
type PayrollWithEmployee struct {
	Payroll
	Username    *string `json:"username"`
	Email       *string `json:"email"`
	Designation *string `json:"designation"`
}

// NetSalary computes the derived pay: basic plus allowances minus deductions.
func NetSalary(basic, allowances, deductions float64) float64 {
	return basic + allowances - deductions
}

// GeneratePayrollRequest creates a payroll record for one employee-month.
// Basic salary is taken from the employee profile, not the request.
type GeneratePayrollRequest struct {
	EmployeeID string  `json:"employeeId"`
	Month      int     `json:"month"`
	Year       int     `json:"year"`
	Allowances float64 `json:"allowances"`
	Deductions float64 `json:"deductions"`
}

// Validate checks required fields for payroll generation.
func (r *GeneratePayrollRequest) Validate() map[string]string {
	errors := map[string]string{}
	if r.EmployeeID == "" {
		errors["employeeId"] = "Employee ID is required"
	}
	if r.Month < 1 || r.Month > 12 {
		errors["month"] = "Month must be between 1 and 12"
	}
	if r.Year == 0 {
		errors["year"] = "Year is required"
	}
	return errors
}

// UpdatePayrollRequest holds the fields that can be updated.
// When any pay component changes and netSalary is not supplied explicitly,
// the net is recomputed from the merged components.
type UpdatePayrollRequest struct {
	BasicSalary *float64 `json:"basicSalary,omitempty"`
	Allowances  *float64 `json:"allowances,omitempty"`
	Deductions  *float64 `json:"deductions,omitempty"`
	NetSalary   *float64 `json:"netSalary,omitempty"`
	Status      *string  `json:"status,omitempty"`
	PaymentDate *string  `json:"paymentDate,omitempty"`
}

// MarkPaidRequest optionally overrides the payment date; defaults to now.
type MarkPaidRequest struct {
	PaymentDate *string `json:"paymentDate,omitempty"`
}

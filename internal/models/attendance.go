package models

// Attendance statuses.
var ValidAttendanceStatuses = map[string]bool{
	"Present":  true,
	"Absent":   true,
	"Leave":    true,
	"Half-day": true,
}

// Attendance is one employee's record for one calendar day.
// At most one row exists per (employee, day).
type Attendance struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employeeId"`
	Date         string  `json:"date"`
	CheckInTime  *string `json:"checkInTime"`
	CheckOutTime *string `json:"checkOutTime"`
	Status       string  `json:"status"`
	Remarks      *string `json:"remarks,omitempty"`
	CreatedAt    string  `json:"createdAt"`
	UpdatedAt    string  `json:"updatedAt"`
}

// AttendanceWithEmployee expands the employee reference with the linked
// user account and department name.
type AttendanceWithEmployee struct {
	Attendance
	Username       *string `json:"username"`
	Email          *string `json:"email"`
	DepartmentName *string `json:"departmentName"`
}

// MarkAttendanceRequest drives the check-in/check-out/status protocol.
// Exactly one of three shapes is expected: checkIn=true, checkOut=true,
// or neither (explicit status set).
type MarkAttendanceRequest struct {
	EmployeeID   string  `json:"employeeId"`
	Date         *string `json:"date,omitempty"`
	CheckIn      bool    `json:"checkIn,omitempty"`
	CheckOut     bool    `json:"checkOut,omitempty"`
	Status       *string `json:"status,omitempty"`
	CheckInTime  *string `json:"checkInTime,omitempty"`
	CheckOutTime *string `json:"checkOutTime,omitempty"`
}

// Validate checks required fields for marking attendance.
func (r *MarkAttendanceRequest) Validate() map[string]string {
	errors := map[string]string{}
	if r.EmployeeID == "" {
		errors["employeeId"] = "Employee ID is required"
	}
	if r.Status != nil && !ValidAttendanceStatuses[*r.Status] {
		errors["status"] = "Status must be 'Present', 'Absent', 'Leave', or 'Half-day'"
	}
	return errors
}

// UpdateAttendanceRequest holds the fields that can be updated on an
// existing record.
type UpdateAttendanceRequest struct {
	Status       *string `json:"status,omitempty"`
	CheckInTime  *string `json:"checkInTime,omitempty"`
	CheckOutTime *string `json:"checkOutTime,omitempty"`
	Remarks      *string `json:"remarks,omitempty"`
}

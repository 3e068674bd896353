package models

// Employee is the HR profile linked 1:1 to a User account.
type Employee struct {
	ID                    string   `json:"id"`
	UserID                string   `json:"userId"`
	DepartmentID          *string  `json:"departmentId"`
	Designation           *string  `json:"designation,omitempty"`
	Salary                *float64 `json:"salary,omitempty"`
	DateOfJoining         *string  `json:"dateOfJoining,omitempty"`
	DateOfBirth           *string  `json:"dateOfBirth,omitempty"`
	Phone                 *string  `json:"phone,omitempty"`
	Address               *string  `json:"address,omitempty"`
	PanNumber             *string  `json:"panNumber,omitempty"`
	AadharNumber          *string  `json:"aadharNumber,omitempty"`
	BankAccount           *string  `json:"bankAccount,omitempty"`
	BankName              *string  `json:"bankName,omitempty"`
	IfscCode              *string  `json:"ifscCode,omitempty"`
	EmergencyContactName  *string  `json:"emergencyContactName,omitempty"`
	EmergencyContactPhone *string  `json:"emergencyContactPhone,omitempty"`
	IsActive              bool     `json:"isActive"`
	CreatedAt             string   `json:"createdAt"`
	UpdatedAt             string   `json:"updatedAt"`
}

// EmployeeWithUser flattens the linked user account and department name
// into the employee record for list and detail responses.
type EmployeeWithUser struct {
	Employee
	Username       string  `json:"username"`
	Email          string  `json:"email"`
	Role           string  `json:"role"`
	DepartmentName *string `json:"departmentName"`
}

// CreateEmployeeRequest carries both halves of an employee creation:
// the user account and the HR profile.
type CreateEmployeeRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`

	DepartmentID          *string  `json:"departmentId,omitempty"`
	Designation           *string  `json:"designation,omitempty"`
	Salary                *float64 `json:"salary,omitempty"`
	DateOfJoining         *string  `json:"dateOfJoining,omitempty"`
	DateOfBirth           *string  `json:"dateOfBirth,omitempty"`
	Phone                 *string  `json:"phone,omitempty"`
	Address               *string  `json:"address,omitempty"`
	PanNumber             *string  `json:"panNumber,omitempty"`
	AadharNumber          *string  `json:"aadharNumber,omitempty"`
	BankAccount           *string  `json:"bankAccount,omitempty"`
	BankName              *string  `json:"bankName,omitempty"`
	IfscCode              *string  `json:"ifscCode,omitempty"`
	EmergencyContactName  *string  `json:"emergencyContactName,omitempty"`
	EmergencyContactPhone *string  `json:"emergencyContactPhone,omitempty"`
}

// Validate checks required fields for employee creation.
func (r *CreateEmployeeRequest) Validate() map[string]string {
	errors := map[string]string{}

	if r.Username == "" {
		errors["username"] = "Username is required"
	}
	if r.Email == "" {
		errors["email"] = "Email is required"
	}

	return errors
}

// UpdateEmployeeRequest holds the fields that can be updated.
// Pointer fields distinguish "omitted" from an explicit zero value,
// so salary 0 or isActive false still overwrite.
type UpdateEmployeeRequest struct {
	DepartmentID          *string  `json:"departmentId,omitempty"`
	Designation           *string  `json:"designation,omitempty"`
	Salary                *float64 `json:"salary,omitempty"`
	DateOfJoining         *string  `json:"dateOfJoining,omitempty"`
	DateOfBirth           *string  `json:"dateOfBirth,omitempty"`
	Phone                 *string  `json:"phone,omitempty"`
	Address               *string  `json:"address,omitempty"`
	PanNumber             *string  `json:"panNumber,omitempty"`
	AadharNumber          *string  `json:"aadharNumber,omitempty"`
	BankAccount           *string  `json:"bankAccount,omitempty"`
	BankName              *string  `json:"bankName,omitempty"`
	IfscCode              *string  `json:"ifscCode,omitempty"`
	EmergencyContactName  *string  `json:"emergencyContactName,omitempty"`
	EmergencyContactPhone *string  `json:"emergencyContactPhone,omitempty"`
	IsActive              *bool    `json:"isActive,omitempty"`
}

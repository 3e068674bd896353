package models

// Department groups employees under a named production unit.
type Department struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Description      *string `json:"description,omitempty"`
	HeadOfDepartment *string `json:"headOfDepartment"`
	CreatedAt        string  `json:"createdAt"`
	UpdatedAt        string  `json:"updatedAt"`
}

// DepartmentWithHead expands the head-of-department reference to the
// employee's designation and user account.
type DepartmentWithHead struct {
	Department
	HeadDesignation *string `json:"headDesignation"`
	HeadUsername    *string `json:"headUsername"`
	HeadEmail       *string `json:"headEmail"`
}

// CreateDepartmentRequest carries the fields for a new department.
type CreateDepartmentRequest struct {
	Name             string  `json:"name"`
	Description      *string `json:"description,omitempty"`
	HeadOfDepartment *string `json:"headOfDepartment,omitempty"`
}

// Validate checks required fields for department creation.
func (r *CreateDepartmentRequest) Validate() map[string]string {
	errors := map[string]string{}
	if r.Name == "" {
		errors["name"] = "Department name is required"
	}
	return errors
}

// UpdateDepartmentRequest holds the fields that can be updated.
type UpdateDepartmentRequest struct {
	Name             *string `json:"name,omitempty"`
	Description      *string `json:"description,omitempty"`
	HeadOfDepartment *string `json:"headOfDepartment,omitempty"`
}

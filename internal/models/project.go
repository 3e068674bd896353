package models

// ValidProjectStatuses for client projects.
var ValidProjectStatuses = map[string]bool{
	"Planned":   true,
	"Ongoing":   true,
	"Completed": true,
	"On Hold":   true,
}

// Project is a longer-running engagement for a client, staffed by
// employees from a department.
type Project struct {
	ID                string   `json:"id"`
	Title             string   `json:"title"`
	Description       *string  `json:"description,omitempty"`
	ClientID          *string  `json:"clientId"`
	Status            string   `json:"status"`
	AssignedEmployees []string `json:"assignedEmployees"`
	DepartmentID      *string  `json:"departmentId"`
	StartDate         *string  `json:"startDate"`
	Deadline          *string  `json:"deadline"`
	CompletionDate    *string  `json:"completionDate"`
	Budget            *float64 `json:"budget"`
	Progress          int      `json:"progress"`
	Priority          string   `json:"priority"`
	CreatedAt         string   `json:"createdAt"`
	UpdatedAt         string   `json:"updatedAt"`
}

// ProjectWithRefs expands client, department, and assigned employees.
type ProjectWithRefs struct {
	Project
	ClientUsername *string            `json:"clientUsername"`
	ClientEmail    *string            `json:"clientEmail"`
	DepartmentName *string            `json:"departmentName"`
	Employees      []EmployeeWithUser `json:"employees"`
}

// CreateProjectRequest carries the fields for a new project.
type CreateProjectRequest struct {
	Title             string   `json:"title"`
	Description       *string  `json:"description,omitempty"`
	Client            *string  `json:"client,omitempty"`
	Status            string   `json:"status,omitempty"`
	Department        *string  `json:"department,omitempty"`
	AssignedEmployees []string `json:"assignedEmployees,omitempty"`
	StartDate         *string  `json:"startDate,omitempty"`
	Deadline          *string  `json:"deadline,omitempty"`
	Budget            *float64 `json:"budget,omitempty"`
	Priority          string   `json:"priority,omitempty"`
}

// Validate checks required fields for project creation.
func (r *CreateProjectRequest) Validate() map[string]string {
	errors := map[string]string{}
	if r.Title == "" {
		errors["title"] = "Project title is required"
	}
	if r.Status != "" && !ValidProjectStatuses[r.Status] {
		errors["status"] = "Status must be 'Planned', 'Ongoing', 'Completed', or 'On Hold'"
	}
	return errors
}

// UpdateProjectRequest holds the fields that can be updated.
type UpdateProjectRequest struct {
	Title             *string   `json:"title,omitempty"`
	Description       *string   `json:"description,omitempty"`
	Client            *string   `json:"client,omitempty"`
	Status            *string   `json:"status,omitempty"`
	Department        *string   `json:"department,omitempty"`
	AssignedEmployees *[]string `json:"assignedEmployees,omitempty"`
	StartDate         *string   `json:"startDate,omitempty"`
	Deadline          *string   `json:"deadline,omitempty"`
	Budget            *float64  `json:"budget,omitempty"`
	Progress          *int      `json:"progress,omitempty"`
	Priority          *string   `json:"priority,omitempty"`
}

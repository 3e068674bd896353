package models

// Production pipeline stages.
var ValidStages = map[string]bool{
	"Raw Material":  true,
	"Weaving":       true,
	"Dyeing":        true,
	"Quality Check": true,
	"Packaging":     true,
	"Completed":     true,
}

// ValidTaskStatuses for production tasks.
var ValidTaskStatuses = map[string]bool{
	"Pending":     true,
	"In Progress": true,
	"Completed":   true,
	"On Hold":     true,
}

// ProductionTask is a unit of factory work tied to an order and a department.
type ProductionTask struct {
	ID                     string   `json:"id"`
	TaskName               string   `json:"taskName"`
	Description            *string  `json:"description,omitempty"`
	OrderID                *string  `json:"orderId"`
	DepartmentID           *string  `json:"departmentId"`
	AssignedTo             []string `json:"assignedTo"`
	Stage                  string   `json:"stage"`
	Status                 string   `json:"status"`
	Priority               string   `json:"priority"`
	StartDate              *string  `json:"startDate"`
	ExpectedCompletionDate *string  `json:"expectedCompletionDate"`
	ActualCompletionDate   *string  `json:"actualCompletionDate"`
	Progress               int      `json:"progress"`
	Quality                *string  `json:"quality"`
	Notes                  *string  `json:"notes,omitempty"`
	CreatedAt              string   `json:"createdAt"`
	UpdatedAt              string   `json:"updatedAt"`
}

// TaskWithRefs expands the order, department, and assigned-employee
// references for task listings.
type TaskWithRefs struct {
	ProductionTask
	OrderNumber       *string            `json:"orderNumber"`
	DepartmentName    *string            `json:"departmentName"`
	AssignedEmployees []EmployeeWithUser `json:"assignedEmployees"`
}

// ClampProgress keeps a progress percentage within [0, 100].
func ClampProgress(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// CreateTaskRequest carries the fields for a new production task.
type CreateTaskRequest struct {
	TaskName               string   `json:"taskName"`
	Description            *string  `json:"description,omitempty"`
	Order                  *string  `json:"order,omitempty"`
	Department             *string  `json:"department,omitempty"`
	AssignedTo             []string `json:"assignedTo,omitempty"`
	Stage                  string   `json:"stage,omitempty"`
	StartDate              *string  `json:"startDate,omitempty"`
	ExpectedCompletionDate *string  `json:"expectedCompletionDate,omitempty"`
	Priority               string   `json:"priority,omitempty"`
}

// Validate checks required fields for task creation.
func (r *CreateTaskRequest) Validate() map[string]string {
	errors := map[string]string{}
	if r.TaskName == "" {
		errors["taskName"] = "Task name is required"
	}
	if r.Stage != "" && !ValidStages[r.Stage] {
		errors["stage"] = "Invalid production stage"
	}
	return errors
}

// UpdateTaskRequest holds the fields that can be updated. Progress is a
// pointer so an explicit 0 still overwrites the stored value.
type UpdateTaskRequest struct {
	TaskName    *string   `json:"taskName,omitempty"`
	Description *string   `json:"description,omitempty"`
	Stage       *string   `json:"stage,omitempty"`
	Status      *string   `json:"status,omitempty"`
	Priority    *string   `json:"priority,omitempty"`
	AssignedTo  *[]string `json:"assignedTo,omitempty"`
	Progress    *int      `json:"progress,omitempty"`
	Quality     *string   `json:"quality,omitempty"`
	Notes       *string   `json:"notes,omitempty"`
}

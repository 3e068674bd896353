package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"textile-backend/internal/database"
	"textile-backend/internal/models"
)

// ProductionHandler handles production task HTTP requests.
type ProductionHandler struct {
	db database.Service
}

// NewProductionHandler creates a new ProductionHandler.
func NewProductionHandler(db database.Service) *ProductionHandler {
	return &ProductionHandler{db: db}
}

const taskCols = `t.id, t.task_name, t.description, t.order_id, t.department_id,
	t.assigned_to::text[], t.stage, t.status, t.priority,
	t.start_date::text, t.expected_completion_date::text,
	t.actual_completion_date::text, t.progress, t.quality, t.notes,
	t.created_at::text, t.updated_at::text`

const taskRetCols = `id, task_name, description, order_id, department_id,
	assigned_to::text[], stage, status, priority,
	start_date::text, expected_completion_date::text,
	actual_completion_date::text, progress, quality, notes,
	created_at::text, updated_at::text`

func scanTask(scanner interface {
	Scan(dest ...interface{}) error
}, t *models.ProductionTask) error {
	return scanner.Scan(
		&t.ID, &t.TaskName, &t.Description, &t.OrderID, &t.DepartmentID,
		&t.AssignedTo, &t.Stage, &t.Status, &t.Priority,
		&t.StartDate, &t.ExpectedCompletionDate,
		&t.ActualCompletionDate, &t.Progress, &t.Quality, &t.Notes,
		&t.CreatedAt, &t.UpdatedAt,
	)
}

func scanTaskWithRefs(scanner interface {
	Scan(dest ...interface{}) error
}, t *models.TaskWithRefs) error {
	return scanner.Scan(
		&t.ID, &t.TaskName, &t.Description, &t.OrderID, &t.DepartmentID,
		&t.AssignedTo, &t.Stage, &t.Status, &t.Priority,
		&t.StartDate, &t.ExpectedCompletionDate,
		&t.ActualCompletionDate, &t.Progress, &t.Quality, &t.Notes,
		&t.CreatedAt, &t.UpdatedAt,
		&t.OrderNumber, &t.DepartmentName,
	)
}

const taskWithRefsQuery = `
	SELECT ` + taskCols + `,
		o.order_number, d.name AS department_name
	FROM production_tasks t
	LEFT JOIN client_orders o ON o.id = t.order_id
	LEFT JOIN departments d ON d.id = t.department_id`

// fetchEmployeesByIDs resolves a set of employee IDs to full records in
// one query, for expanding assignment lists.
func fetchEmployeesByIDs(ctx context.Context, pool *pgxpool.Pool, ids []string) (map[string]models.EmployeeWithUser, error) {
	byID := map[string]models.EmployeeWithUser{}
	if len(ids) == 0 {
		return byID, nil
	}

	rows, err := pool.Query(ctx,
		employeeWithUserQuery+" WHERE e.id = ANY($1::uuid[])", ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var emp models.EmployeeWithUser
		if err := scanEmployeeWithUser(rows, &emp); err != nil {
			return nil, err
		}
		byID[emp.ID] = emp
	}
	return byID, rows.Err()
}

// expandAssignments resolves each ID list against the fetched employee
// map, silently skipping dangling references.
func expandAssignments(ids []string, byID map[string]models.EmployeeWithUser) []models.EmployeeWithUser {
	employees := []models.EmployeeWithUser{}
	for _, id := range ids {
		if emp, ok := byID[id]; ok {
			employees = append(employees, emp)
		}
	}
	return employees
}

// Create handles POST /api/production
func (h *ProductionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JSONError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		JSON(w, http.StatusBadRequest, map[string]interface{}{
			"message": "Validation failed",
			"details": errs,
		})
		return
	}

	stage := req.Stage
	if stage == "" {
		stage = "Raw Material"
	}
	priority := req.Priority
	if priority == "" {
		priority = "Medium"
	}
	assignedTo := req.AssignedTo
	if assignedTo == nil {
		assignedTo = []string{}
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	pool := h.db.GetPool()

	var task models.ProductionTask
	err := scanTask(pool.QueryRow(ctx, `
		INSERT INTO production_tasks (
			task_name, description, order_id, department_id, assigned_to,
			stage, priority, start_date, expected_completion_date
		)
		VALUES ($1, $2, $3, $4, $5::uuid[], $6, $7, $8, $9)
		RETURNING `+taskRetCols,
		req.TaskName, req.Description, req.Order, req.Department, assignedTo,
		stage, priority, req.StartDate, req.ExpectedCompletionDate,
	), &task)
	if err != nil {
		log.Printf("Error creating production task: %v", err)
		JSONError(w, http.StatusInternalServerError, "Failed to create production task")
		return
	}

	JSON(w, http.StatusCreated, task)
}

// List handles GET /api/production
// Expands the order number, department name, and assigned employees for
// each task. Assignments across all tasks are resolved in one batch query.
func (h *ProductionHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	pool := h.db.GetPool()

	b := &whereBuilder{}
	if stage := q.Get("stage"); stage != "" {
		b.Eq("t.stage", stage)
	}
	if status := q.Get("status"); status != "" {
		b.Eq("t.status", status)
	}
	if dept := q.Get("department"); dept != "" {
		b.Eq("t.department_id", dept)
	}
	if order := q.Get("order"); order != "" {
		b.Eq("t.order_id", order)
	}

	rows, err := pool.Query(ctx,
		taskWithRefsQuery+b.Clause()+" ORDER BY t.created_at DESC",
		b.Args()...)
	if err != nil {
		log.Printf("Error querying production tasks: %v", err)
		JSONError(w, http.StatusInternalServerError, "Failed to fetch production tasks")
		return
	}
	defer rows.Close()

	tasks := []models.TaskWithRefs{}
	allIDs := []string{}
	for rows.Next() {
		var t models.TaskWithRefs
		if err := scanTaskWithRefs(rows, &t); err != nil {
			log.Printf("Error scanning production task: %v", err)
			continue
		}
		allIDs = append(allIDs, t.AssignedTo...)
		tasks = append(tasks, t)
	}
	rows.Close()

	byID, err := fetchEmployeesByIDs(ctx, pool, allIDs)
	if err != nil {
		log.Printf("Error expanding task assignments: %v", err)
		JSONError(w, http.StatusInternalServerError, "Failed to fetch production tasks")
		return
	}
	for i := range tasks {
		tasks[i].AssignedEmployees = expandAssignments(tasks[i].AssignedTo, byID)
	}

	JSON(w, http.StatusOK, tasks)
}

// GetByID handles GET /api/production/{id}
func (h *ProductionHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	pool := h.db.GetPool()

	var task models.TaskWithRefs
	err := scanTaskWithRefs(pool.QueryRow(ctx,
		taskWithRefsQuery+" WHERE t.id = $1", id), &task)
	if err != nil {
		if isNotFoundError(err) {
			JSONError(w, http.StatusNotFound, "Production task not found")
			return
		}
		log.Printf("Error fetching production task %s: %v", id, err)
		JSONError(w, http.StatusInternalServerError, "Failed to fetch production task")
		return
	}

	byID, err := fetchEmployeesByIDs(ctx, pool, task.AssignedTo)
	if err != nil {
		log.Printf("Error expanding task assignments: %v", err)
		JSONError(w, http.StatusInternalServerError, "Failed to fetch production task")
		return
	}
	task.AssignedEmployees = expandAssignments(task.AssignedTo, byID)

	JSON(w, http.StatusOK, task)
}

// Update handles PUT /api/production/{id}
// Completing a task stamps the actual completion date the first time.
func (h *ProductionHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req models.UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JSONError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if req.Stage != nil && !models.ValidStages[*req.Stage] {
		JSONError(w, http.StatusBadRequest, "Invalid production stage")
		return
	}
	if req.Status != nil && !models.ValidTaskStatuses[*req.Status] {
		JSONError(w, http.StatusBadRequest, "Invalid task status")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	pool := h.db.GetPool()

	setClauses := []string{}
	args := []interface{}{}
	argIdx := 1

	addField := func(col string, val interface{}) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", col, argIdx))
		args = append(args, val)
		argIdx++
	}

	if req.TaskName != nil {
		addField("task_name", *req.TaskName)
	}
	if req.Description != nil {
		addField("description", *req.Description)
	}
	if req.Stage != nil {
		addField("stage", *req.Stage)
	}
	if req.Status != nil {
		addField("status", *req.Status)
		if *req.Status == "Completed" {
			setClauses = append(setClauses,
				"actual_completion_date = COALESCE(actual_completion_date, NOW())")
		}
	}
	if req.Priority != nil {
		addField("priority", *req.Priority)
	}
	if req.AssignedTo != nil {
		setClauses = append(setClauses, fmt.Sprintf("assigned_to = $%d::uuid[]", argIdx))
		args = append(args, *req.AssignedTo)
		argIdx++
	}
	if req.Progress != nil {
		addField("progress", models.ClampProgress(*req.Progress))
	}
	if req.Quality != nil {
		addField("quality", *req.Quality)
	}
	if req.Notes != nil {
		addField("notes", *req.Notes)
	}

	if len(setClauses) == 0 {
		JSONError(w, http.StatusBadRequest, "No fields to update")
		return
	}

	setClauses = append(setClauses, "updated_at = NOW()")

	query := fmt.Sprintf(`
		UPDATE production_tasks SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(setClauses, ", "), argIdx, taskRetCols)
	args = append(args, id)

	var task models.ProductionTask
	if err := scanTask(pool.QueryRow(ctx, query, args...), &task); err != nil {
		if isNotFoundError(err) {
			JSONError(w, http.StatusNotFound, "Production task not found")
			return
		}
		log.Printf("Error updating production task %s: %v", id, err)
		JSONError(w, http.StatusInternalServerError, "Failed to update production task")
		return
	}

	JSON(w, http.StatusOK, task)
}

// Delete handles DELETE /api/production/{id}
func (h *ProductionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	pool := h.db.GetPool()

	tag, err := pool.Exec(ctx, "DELETE FROM production_tasks WHERE id = $1", id)
	if err != nil {
		log.Printf("Error deleting production task %s: %v", id, err)
		JSONError(w, http.StatusInternalServerError, "Failed to delete production task")
		return
	}

	if tag.RowsAffected() == 0 {
		JSONError(w, http.StatusNotFound, "Production task not found")
		return
	}

	JSON(w, http.StatusOK, map[string]string{
		"message": "Production task deleted successfully",
	})
}

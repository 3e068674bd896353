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

	"textile-backend/internal/ctxkeys"
	"textile-backend/internal/database"
	"textile-backend/internal/models"
)

// ProjectHandler handles project-related HTTP requests.
type ProjectHandler struct {
	db database.Service
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(db database.Service) *ProjectHandler {
	return &ProjectHandler{db: db}
}

const projectCols = `p.id, p.title, p.description, p.client_id, p.status,
	p.assigned_employees::text[], p.department_id,
	p.start_date::text, p.deadline::text, p.completion_date::text,
	p.budget, p.progress, p.priority, p.created_at::text, p.updated_at::text`

const projectRetCols = `id, title, description, client_id, status,
	assigned_employees::text[], department_id,
	start_date::text, deadline::text, completion_date::text,
	budget, progress, priority, created_at::text, updated_at::text`

func scanProject(scanner interface {
	Scan(dest ...interface{}) error
}, p *models.Project) error {
	return scanner.Scan(
		&p.ID, &p.Title, &p.Description, &p.ClientID, &p.Status,
		&p.AssignedEmployees, &p.DepartmentID,
		&p.StartDate, &p.Deadline, &p.CompletionDate,
		&p.Budget, &p.Progress, &p.Priority, &p.CreatedAt, &p.UpdatedAt,
	)
}

func scanProjectWithRefs(scanner interface {
	Scan(dest ...interface{}) error
}, p *models.ProjectWithRefs) error {
	return scanner.Scan(
		&p.ID, &p.Title, &p.Description, &p.ClientID, &p.Status,
		&p.AssignedEmployees, &p.DepartmentID,
		&p.StartDate, &p.Deadline, &p.CompletionDate,
		&p.Budget, &p.Progress, &p.Priority, &p.CreatedAt, &p.UpdatedAt,
		&p.ClientUsername, &p.ClientEmail, &p.DepartmentName,
	)
}

const projectWithRefsQuery = `
	SELECT ` + projectCols + `,
		u.username, u.email, d.name AS department_name
	FROM projects p
	LEFT JOIN users u ON u.id = p.client_id
	LEFT JOIN departments d ON d.id = p.department_id`

// Create handles POST /api/projects
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateProjectRequest
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

	status := req.Status
	if status == "" {
		status = "Planned"
	}
	priority := req.Priority
	if priority == "" {
		priority = "Medium"
	}
	assigned := req.AssignedEmployees
	if assigned == nil {
		assigned = []string{}
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	pool := h.db.GetPool()

	var project models.Project
	err := scanProject(pool.QueryRow(ctx, `
		INSERT INTO projects (
			title, description, client_id, status, assigned_employees,
			department_id, start_date, deadline, budget, priority
		)
		VALUES ($1, $2, $3, $4, $5::uuid[], $6, $7, $8, $9, $10)
		RETURNING `+projectRetCols,
		req.Title, req.Description, req.Client, status, assigned,
		req.Department, req.StartDate, req.Deadline, req.Budget, priority,
	), &project)
	if err != nil {
		log.Printf("Error creating project: %v", err)
		JSONError(w, http.StatusInternalServerError, "Failed to create project")
		return
	}

	JSON(w, http.StatusCreated, project)
}

// List handles GET /api/projects
// Clients only see their own projects; admins can filter by client,
// status, and department.
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	pool := h.db.GetPool()

	b := &whereBuilder{}
	scopeClient(r.Context(), b, "p.client_id")
	if ctxkeys.CallerRole(r.Context()) != ctxkeys.RoleClient {
		if client := q.Get("client"); client != "" {
			b.Eq("p.client_id", client)
		}
	}
	if status := q.Get("status"); status != "" {
		b.Eq("p.status", status)
	}
	if dept := q.Get("department"); dept != "" {
		b.Eq("p.department_id", dept)
	}

	rows, err := pool.Query(ctx,
		projectWithRefsQuery+b.Clause()+" ORDER BY p.created_at DESC",
		b.Args()...)
	if err != nil {
		log.Printf("Error querying projects: %v", err)
		JSONError(w, http.StatusInternalServerError, "Failed to fetch projects")
		return
	}
	defer rows.Close()

	projects := []models.ProjectWithRefs{}
	allIDs := []string{}
	for rows.Next() {
		var p models.ProjectWithRefs
		if err := scanProjectWithRefs(rows, &p); err != nil {
			log.Printf("Error scanning project: %v", err)
			continue
		}
		allIDs = append(allIDs, p.AssignedEmployees...)
		projects = append(projects, p)
	}
	rows.Close()

	byID, err := fetchEmployeesByIDs(ctx, pool, allIDs)
	if err != nil {
		log.Printf("Error expanding project assignments: %v", err)
		JSONError(w, http.StatusInternalServerError, "Failed to fetch projects")
		return
	}
	for i := range projects {
		projects[i].Employees = expandAssignments(projects[i].AssignedEmployees, byID)
	}

	JSON(w, http.StatusOK, projects)
}

// GetByID handles GET /api/projects/{id}
func (h *ProjectHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	pool := h.db.GetPool()

	b := &whereBuilder{}
	b.Eq("p.id", id)
	scopeClient(r.Context(), b, "p.client_id")

	var project models.ProjectWithRefs
	err := scanProjectWithRefs(pool.QueryRow(ctx,
		projectWithRefsQuery+b.Clause(), b.Args()...), &project)
	if err != nil {
		if isNotFoundError(err) {
			JSONError(w, http.StatusNotFound, "Project not found")
			return
		}
		log.Printf("Error fetching project %s: %v", id, err)
		JSONError(w, http.StatusInternalServerError, "Failed to fetch project")
		return
	}

	byID, err := fetchEmployeesByIDs(ctx, pool, project.AssignedEmployees)
	if err != nil {
		log.Printf("Error expanding project assignments: %v", err)
		JSONError(w, http.StatusInternalServerError, "Failed to fetch project")
		return
	}
	project.Employees = expandAssignments(project.AssignedEmployees, byID)

	JSON(w, http.StatusOK, project)
}

// Update handles PUT /api/projects/{id}
// Completing a project stamps the completion date the first time.
func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req models.UpdateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JSONError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if req.Status != nil && !models.ValidProjectStatuses[*req.Status] {
		JSONError(w, http.StatusBadRequest, "Invalid project status")
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

	if req.Title != nil {
		addField("title", *req.Title)
	}
	if req.Description != nil {
		addField("description", *req.Description)
	}
	if req.Client != nil {
		addField("client_id", *req.Client)
	}
	if req.Status != nil {
		addField("status", *req.Status)
		if *req.Status == "Completed" {
			setClauses = append(setClauses,
				"completion_date = COALESCE(completion_date, NOW())")
		}
	}
	if req.Department != nil {
		addField("department_id", *req.Department)
	}
	if req.AssignedEmployees != nil {
		setClauses = append(setClauses, fmt.Sprintf("assigned_employees = $%d::uuid[]", argIdx))
		args = append(args, *req.AssignedEmployees)
		argIdx++
	}
	if req.StartDate != nil {
		addField("start_date", *req.StartDate)
	}
	if req.Deadline != nil {
		addField("deadline", *req.Deadline)
	}
	if req.Budget != nil {
		addField("budget", *req.Budget)
	}
	if req.Progress != nil {
		addField("progress", models.ClampProgress(*req.Progress))
	}
	if req.Priority != nil {
		addField("priority", *req.Priority)
	}

	if len(setClauses) == 0 {
		JSONError(w, http.StatusBadRequest, "No fields to update")
		return
	}

	setClauses = append(setClauses, "updated_at = NOW()")

	query := fmt.Sprintf(`
		UPDATE projects SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(setClauses, ", "), argIdx, projectRetCols)
	args = append(args, id)

	var project models.Project
	if err := scanProject(pool.QueryRow(ctx, query, args...), &project); err != nil {
		if isNotFoundError(err) {
			JSONError(w, http.StatusNotFound, "Project not found")
			return
		}
		log.Printf("Error updating project %s: %v", id, err)
		JSONError(w, http.StatusInternalServerError, "Failed to update project")
		return
	}

	JSON(w, http.StatusOK, project)
}

// Delete handles DELETE /api/projects/{id}
func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	pool := h.db.GetPool()

	tag, err := pool.Exec(ctx, "DELETE FROM projects WHERE id = $1", id)
	if err != nil {
		log.Printf("Error deleting project %s: %v", id, err)
		JSONError(w, http.StatusInternalServerError, "Failed to delete project")
		return
	}

	if tag.RowsAffected() == 0 {
		JSONError(w, http.StatusNotFound, "Project not found")
		return
	}

	JSON(w, http.StatusOK, map[string]string{
		"message": "Project deleted successfully",
	})
}

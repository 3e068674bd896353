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

	"textile-backend/internal/database"
	"textile-backend/internal/models"
)

// DepartmentHandler handles department-related HTTP requests.
type DepartmentHandler struct {
	db database.Service
}

// NewDepartmentHandler creates a new DepartmentHandler.
func NewDepartmentHandler(db database.Service) *DepartmentHandler {
	return &DepartmentHandler{db: db}
}

const departmentCols = `d.id, d.name, d.description, d.head_of_department,
	d.created_at::text, d.updated_at::text`

const departmentRetCols = `id, name, description, head_of_department,
	created_at::text, updated_at::text`

func scanDepartment(scanner interface {
	Scan(dest ...interface{}) error
}, dept *models.Department) error {
	return scanner.Scan(
		&dept.ID, &dept.Name, &dept.Description, &dept.HeadOfDepartment,
		&dept.CreatedAt, &dept.UpdatedAt,
	)
}

// departmentWithHeadQuery expands the head-of-department reference through
// the employee profile to the user account. A missing or dangling head
// simply yields NULL columns.
const departmentWithHeadQuery = `
	SELECT ` + departmentCols + `,
		e.designation AS head_designation,
		u.username AS head_username,
		u.email AS head_email
	FROM departments d
	LEFT JOIN employees e ON e.id = d.head_of_department
	LEFT JOIN users u ON u.id = e.user_id`

func scanDepartmentWithHead(scanner interface {
	Scan(dest ...interface{}) error
}, dept *models.DepartmentWithHead) error {
	return scanner.Scan(
		&dept.ID, &dept.Name, &dept.Description, &dept.HeadOfDepartment,
		&dept.CreatedAt, &dept.UpdatedAt,
		&dept.HeadDesignation, &dept.HeadUsername, &dept.HeadEmail,
	)
}

// Create handles POST /api/departments
func (h *DepartmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateDepartmentRequest
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

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	pool := h.db.GetPool()

	// Pre-check for a friendlier message; the unique index still guards
	// against concurrent creates.
	var exists bool
	if err := pool.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM departments WHERE name = $1)", req.Name,
	).Scan(&exists); err == nil && exists {
		JSONError(w, http.StatusBadRequest, "Department already exists")
		return
	}

	var dept models.Department
	err := scanDepartment(pool.QueryRow(ctx, `
		INSERT INTO departments (name, description, head_of_department)
		VALUES ($1, $2, $3)
		RETURNING `+departmentRetCols,
		req.Name, req.Description, req.HeadOfDepartment,
	), &dept)
	if err != nil {
		if isDuplicateKeyError(err) {
			JSONError(w, http.StatusBadRequest, "Department already exists")
			return
		}
		log.Printf("Error creating department: %v", err)
		JSONError(w, http.StatusInternalServerError, "Failed to create department")
		return
	}

	JSON(w, http.StatusCreated, dept)
}

// List handles GET /api/departments
func (h *DepartmentHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	pool := h.db.GetPool()

	rows, err := pool.Query(ctx, departmentWithHeadQuery+" ORDER BY d.name ASC")
	if err != nil {
		log.Printf("Error querying departments: %v", err)
		JSONError(w, http.StatusInternalServerError, "Failed to fetch departments")
		return
	}
	defer rows.Close()

	departments := []models.DepartmentWithHead{}
	for rows.Next() {
		var dept models.DepartmentWithHead
		if err := scanDepartmentWithHead(rows, &dept); err != nil {
			log.Printf("Error scanning department: %v", err)
			continue
		}
		departments = append(departments, dept)
	}

	JSON(w, http.StatusOK, departments)
}

// GetByID handles GET /api/departments/{id}
func (h *DepartmentHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	pool := h.db.GetPool()

	var dept models.DepartmentWithHead
	err := scanDepartmentWithHead(pool.QueryRow(ctx,
		departmentWithHeadQuery+" WHERE d.id = $1", id), &dept)
	if err != nil {
		if isNotFoundError(err) {
			JSONError(w, http.StatusNotFound, "Department not found")
			return
		}
		log.Printf("Error fetching department %s: %v", id, err)
		JSONError(w, http.StatusInternalServerError, "Failed to fetch department")
		return
	}

	JSON(w, http.StatusOK, dept)
}

// Update handles PUT /api/departments/{id}
func (h *DepartmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req models.UpdateDepartmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JSONError(w, http.StatusBadRequest, "Invalid JSON body")
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

	if req.Name != nil {
		addField("name", *req.Name)
	}
	if req.Description != nil {
		addField("description", *req.Description)
	}
	if req.HeadOfDepartment != nil {
		addField("head_of_department", *req.HeadOfDepartment)
	}

	if len(setClauses) == 0 {
		JSONError(w, http.StatusBadRequest, "No fields to update")
		return
	}

	setClauses = append(setClauses, "updated_at = NOW()")

	query := fmt.Sprintf(`
		UPDATE departments SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(setClauses, ", "), argIdx, departmentRetCols)
	args = append(args, id)

	var dept models.Department
	if err := scanDepartment(pool.QueryRow(ctx, query, args...), &dept); err != nil {
		if isNotFoundError(err) {
			JSONError(w, http.StatusNotFound, "Department not found")
			return
		}
		if isDuplicateKeyError(err) {
			JSONError(w, http.StatusBadRequest, "Department already exists")
			return
		}
		log.Printf("Error updating department %s: %v", id, err)
		JSONError(w, http.StatusInternalServerError, "Failed to update department")
		return
	}

	JSON(w, http.StatusOK, dept)
}

// Delete handles DELETE /api/departments/{id}
func (h *DepartmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	pool := h.db.GetPool()

	tag, err := pool.Exec(ctx, "DELETE FROM departments WHERE id = $1", id)
	if err != nil {
		log.Printf("Error deleting department %s: %v", id, err)
		JSONError(w, http.StatusInternalServerError, "Failed to delete department")
		return
	}

	if tag.RowsAffected() == 0 {
		JSONError(w, http.StatusNotFound, "Department not found")
		return
	}

	JSON(w, http.StatusOK, map[string]string{
		"message": "Department deleted successfully",
	})
}

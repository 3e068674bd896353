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
	"golang.org/x/crypto/bcrypt"

	"textile-backend/internal/ctxkeys"
	"textile-backend/internal/database"
	"textile-backend/internal/models"
)

// EmployeeHandler handles employee-related HTTP requests.
type EmployeeHandler struct {
	db database.Service
}

// NewEmployeeHandler creates a new EmployeeHandler.
func NewEmployeeHandler(db database.Service) *EmployeeHandler {
	return &EmployeeHandler{db: db}
}

// Central column lists keep Create/GetByID/List in sync.
// Aliased version (for SELECT with JOINs):
const employeeCols = `e.id, e.user_id, e.department_id, e.designation,
	e.salary, e.date_of_joining::text, e.date_of_birth::text,
	e.phone, e.address, e.pan_number, e.aadhar_number,
	e.bank_account, e.bank_name, e.ifsc_code,
	e.emergency_contact_name, e.emergency_contact_phone,
	e.is_active, e.created_at::text, e.updated_at::text`

// Unaliased version (for INSERT/UPDATE RETURNING):
const employeeRetCols = `id, user_id, department_id, designation,
	salary, date_of_joining::text, date_of_birth::text,
	phone, address, pan_number, aadhar_number,
	bank_account, bank_name, ifsc_code,
	emergency_contact_name, emergency_contact_phone,
	is_active, created_at::text, updated_at::text`

func scanEmployee(scanner interface {
	Scan(dest ...interface{}) error
}, emp *models.Employee) error {
	return scanner.Scan(
		&emp.ID, &emp.UserID, &emp.DepartmentID, &emp.Designation,
		&emp.Salary, &emp.DateOfJoining, &emp.DateOfBirth,
		&emp.Phone, &emp.Address, &emp.PanNumber, &emp.AadharNumber,
		&emp.BankAccount, &emp.BankName, &emp.IfscCode,
		&emp.EmergencyContactName, &emp.EmergencyContactPhone,
		&emp.IsActive, &emp.CreatedAt, &emp.UpdatedAt,
	)
}

func scanEmployeeWithUser(scanner interface {
	Scan(dest ...interface{}) error
}, emp *models.EmployeeWithUser) error {
	return scanner.Scan(
		&emp.ID, &emp.UserID, &emp.DepartmentID, &emp.Designation,
		&emp.Salary, &emp.DateOfJoining, &emp.DateOfBirth,
		&emp.Phone, &emp.Address, &emp.PanNumber, &emp.AadharNumber,
		&emp.BankAccount, &emp.BankName, &emp.IfscCode,
		&emp.EmergencyContactName, &emp.EmergencyContactPhone,
		&emp.IsActive, &emp.CreatedAt, &emp.UpdatedAt,
		&emp.Username, &emp.Email, &emp.Role, &emp.DepartmentName,
	)
}

const employeeWithUserQuery = `
	SELECT ` + employeeCols + `,
		u.username, u.email, u.role, d.name AS department_name
	FROM employees e
	JOIN users u ON u.id = e.user_id
	LEFT JOIN departments d ON d.id = e.department_id`

// defaultEmployeePassword is assigned when an admin creates an employee
// without choosing one; the employee is expected to change it.
const defaultEmployeePassword = "123456"

// Create handles POST /api/employees
// Creates the user account and the HR profile in one transaction so a
// failure partway through leaves no orphaned account.
func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateEmployeeRequest
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

	if req.Password == "" {
		req.Password = defaultEmployeePassword
	}
	if req.Role == "" {
		req.Role = ctxkeys.RoleEmployee
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		JSONError(w, http.StatusInternalServerError, "Failed to create employee")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	pool := h.db.GetPool()

	tx, err := pool.Begin(ctx)
	if err != nil {
		log.Printf("Error starting transaction: %v", err)
		JSONError(w, http.StatusInternalServerError, "Failed to create employee")
		return
	}
	defer tx.Rollback(ctx)

	var userID string
	err = tx.QueryRow(ctx, `
		INSERT INTO users (username, email, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		req.Username, req.Email, string(hash), req.Role,
	).Scan(&userID)
	if err != nil {
		if isDuplicateKeyError(err) {
			JSONError(w, http.StatusBadRequest, "User with this email already exists")
			return
		}
		log.Printf("Error creating employee user: %v", err)
		JSONError(w, http.StatusInternalServerError, "Failed to create employee")
		return
	}

	var employee models.Employee
	err = tx.QueryRow(ctx, `
		INSERT INTO employees (
			user_id, department_id, designation, salary,
			date_of_joining, date_of_birth, phone, address,
			pan_number, aadhar_number, bank_account, bank_name, ifsc_code,
			emergency_contact_name, emergency_contact_phone
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
		RETURNING `+employeeRetCols,
		userID, req.DepartmentID, req.Designation, req.Salary,
		req.DateOfJoining, req.DateOfBirth, req.Phone, req.Address,
		req.PanNumber, req.AadharNumber, req.BankAccount, req.BankName, req.IfscCode,
		req.EmergencyContactName, req.EmergencyContactPhone,
	).Scan(
		&employee.ID, &employee.UserID, &employee.DepartmentID, &employee.Designation,
		&employee.Salary, &employee.DateOfJoining, &employee.DateOfBirth,
		&employee.Phone, &employee.Address, &employee.PanNumber, &employee.AadharNumber,
		&employee.BankAccount, &employee.BankName, &employee.IfscCode,
		&employee.EmergencyContactName, &employee.EmergencyContactPhone,
		&employee.IsActive, &employee.CreatedAt, &employee.UpdatedAt,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			JSONError(w, http.StatusBadRequest, "Employee profile already exists for this user")
			return
		}
		log.Printf("Error creating employee: %v", err)
		JSONError(w, http.StatusInternalServerError, "Failed to create employee")
		return
	}

	if err := tx.Commit(ctx); err != nil {
		log.Printf("Error committing employee creation: %v", err)
		JSONError(w, http.StatusInternalServerError, "Failed to create employee")
		return
	}

	JSON(w, http.StatusCreated, employee)
}

// List handles GET /api/employees
func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	pool := h.db.GetPool()

	b := &whereBuilder{}
	if dept := q.Get("department"); dept != "" {
		b.Eq("e.department_id", dept)
	}
	if active := q.Get("isActive"); active != "" {
		b.Eq("e.is_active", active == "true")
	}

	rows, err := pool.Query(ctx,
		employeeWithUserQuery+b.Clause()+" ORDER BY e.created_at DESC",
		b.Args()...)
	if err != nil {
		log.Printf("Error querying employees: %v", err)
		JSONError(w, http.StatusInternalServerError, "Failed to fetch employees")
		return
	}
	defer rows.Close()

	employees := []models.EmployeeWithUser{}
	for rows.Next() {
		var emp models.EmployeeWithUser
		if err := scanEmployeeWithUser(rows, &emp); err != nil {
			log.Printf("Error scanning employee: %v", err)
			continue
		}
		employees = append(employees, emp)
	}

	JSON(w, http.StatusOK, employees)
}

// GetByID handles GET /api/employees/{id}
func (h *EmployeeHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	pool := h.db.GetPool()

	var emp models.EmployeeWithUser
	err := scanEmployeeWithUser(pool.QueryRow(ctx,
		employeeWithUserQuery+" WHERE e.id = $1", id), &emp)
	if err != nil {
		if isNotFoundError(err) {
			JSONError(w, http.StatusNotFound, "Employee not found")
			return
		}
		log.Printf("Error fetching employee %s: %v", id, err)
		JSONError(w, http.StatusInternalServerError, "Failed to fetch employee")
		return
	}

	JSON(w, http.StatusOK, emp)
}

// Profile handles GET /api/employees/profile
// Returns the employee record linked to the authenticated user.
func (h *EmployeeHandler) Profile(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.CallerID(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	pool := h.db.GetPool()

	var emp models.EmployeeWithUser
	err := scanEmployeeWithUser(pool.QueryRow(ctx,
		employeeWithUserQuery+" WHERE e.user_id = $1", userID), &emp)
	if err != nil {
		if isNotFoundError(err) {
			JSONError(w, http.StatusNotFound, "Employee profile not found")
			return
		}
		log.Printf("Error fetching employee profile for user %s: %v", userID, err)
		JSONError(w, http.StatusInternalServerError, "Failed to fetch profile")
		return
	}

	JSON(w, http.StatusOK, emp)
}

// Update handles PUT /api/employees/{id}
func (h *EmployeeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req models.UpdateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JSONError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	pool := h.db.GetPool()

	// Build dynamic SET clause, updating only the provided fields.
	setClauses := []string{}
	args := []interface{}{}
	argIdx := 1

	addField := func(col string, val interface{}) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", col, argIdx))
		args = append(args, val)
		argIdx++
	}

	if req.DepartmentID != nil {
		addField("department_id", *req.DepartmentID)
	}
	if req.Designation != nil {
		addField("designation", *req.Designation)
	}
	if req.Salary != nil {
		addField("salary", *req.Salary)
	}
	if req.DateOfJoining != nil {
		addField("date_of_joining", *req.DateOfJoining)
	}
	if req.DateOfBirth != nil {
		addField("date_of_birth", *req.DateOfBirth)
	}
	if req.Phone != nil {
		addField("phone", *req.Phone)
	}
	if req.Address != nil {
		addField("address", *req.Address)
	}
	if req.PanNumber != nil {
		addField("pan_number", *req.PanNumber)
	}
	if req.AadharNumber != nil {
		addField("aadhar_number", *req.AadharNumber)
	}
	if req.BankAccount != nil {
		addField("bank_account", *req.BankAccount)
	}
	if req.BankName != nil {
		addField("bank_name", *req.BankName)
	}
	if req.IfscCode != nil {
		addField("ifsc_code", *req.IfscCode)
	}
	if req.EmergencyContactName != nil {
		addField("emergency_contact_name", *req.EmergencyContactName)
	}
	if req.EmergencyContactPhone != nil {
		addField("emergency_contact_phone", *req.EmergencyContactPhone)
	}
	if req.IsActive != nil {
		addField("is_active", *req.IsActive)
	}

	if len(setClauses) == 0 {
		JSONError(w, http.StatusBadRequest, "No fields to update")
		return
	}

	setClauses = append(setClauses, "updated_at = NOW()")

	query := fmt.Sprintf(`
		UPDATE employees SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(setClauses, ", "), argIdx, employeeRetCols)
	args = append(args, id)

	var employee models.Employee
	if err := scanEmployee(pool.QueryRow(ctx, query, args...), &employee); err != nil {
		if isNotFoundError(err) {
			JSONError(w, http.StatusNotFound, "Employee not found")
			return
		}
		log.Printf("Error updating employee %s: %v", id, err)
		JSONError(w, http.StatusInternalServerError, "Failed to update employee")
		return
	}

	JSON(w, http.StatusOK, employee)
}

// Delete handles DELETE /api/employees/{id}
// Removes the employee profile and its linked user account together.
func (h *EmployeeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	pool := h.db.GetPool()

	tx, err := pool.Begin(ctx)
	if err != nil {
		log.Printf("Error starting transaction: %v", err)
		JSONError(w, http.StatusInternalServerError, "Failed to delete employee")
		return
	}
	defer tx.Rollback(ctx)

	var userID string
	err = tx.QueryRow(ctx,
		"DELETE FROM employees WHERE id = $1 RETURNING user_id", id).Scan(&userID)
	if err != nil {
		if isNotFoundError(err) {
			JSONError(w, http.StatusNotFound, "Employee not found")
			return
		}
		log.Printf("Error deleting employee %s: %v", id, err)
		JSONError(w, http.StatusInternalServerError, "Failed to delete employee")
		return
	}

	if _, err := tx.Exec(ctx, "DELETE FROM users WHERE id = $1", userID); err != nil {
		log.Printf("Error deleting employee user %s: %v", userID, err)
		JSONError(w, http.StatusInternalServerError, "Failed to delete employee")
		return
	}

	if err := tx.Commit(ctx); err != nil {
		log.Printf("Error committing employee deletion: %v", err)
		JSONError(w, http.StatusInternalServerError, "Failed to delete employee")
		return
	}

	JSON(w, http.StatusOK, map[string]string{
		"message": "Employee deleted successfully",
	})
}

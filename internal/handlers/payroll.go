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

// PayrollHandler handles payroll-related HTTP requests.
type PayrollHandler struct {
	db database.Service
}

// NewPayrollHandler creates a new PayrollHandler.
func NewPayrollHandler(db database.Service) *PayrollHandler {
	return &PayrollHandler{db: db}
}

const payrollCols = `p.id, p.employee_id, p.month, p.year,
	p.basic_salary, p.allowances, p.deductions, p.net_salary,
	p.status, p.payment_date::text, p.created_at::text, p.updated_at::text`

const payrollRetCols = `id, employee_id, month, year,
	basic_salary, allowances, deductions, net_salary,
	status, payment_date::text, created_at::text, updated_at::text`

func scanPayroll(scanner interface {
	Scan(dest ...interface{}) error
}, p *models.Payroll) error {
	return scanner.Scan(
		&p.ID, &p.EmployeeID, &p.Month, &p.Year,
		&p.BasicSalary, &p.Allowances, &p.Deductions, &p.NetSalary,
		&p.Status, &p.PaymentDate, &p.CreatedAt, &p.UpdatedAt,
	)
}

func scanPayrollWithEmployee(scanner interface {
	Scan(dest ...interface{}) error
}, p *models.PayrollWithEmployee) error {
	return scanner.Scan(
		&p.ID, &p.EmployeeID, &p.Month, &p.Year,
		&p.BasicSalary, &p.Allowances, &p.Deductions, &p.NetSalary,
		&p.Status, &p.PaymentDate, &p.CreatedAt, &p.UpdatedAt,
		&p.Username, &p.Email, &p.Designation,
	)
}

const payrollWithEmployeeQuery = `
	SELECT ` + payrollCols + `,
		u.username, u.email, e.designation
	FROM payrolls p
	LEFT JOIN employees e ON e.id = p.employee_id
	LEFT JOIN users u ON u.id = e.user_id`

// Generate handles POST /api/payroll
// The basic salary is read from the employee profile; only one payroll
// exists per employee per month.
func (h *PayrollHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req models.GeneratePayrollRequest
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

	var basicSalary *float64
	err := pool.QueryRow(ctx,
		"SELECT salary FROM employees WHERE id = $1", req.EmployeeID).Scan(&basicSalary)
	if err != nil {
		if isNotFoundError(err) {
			JSONError(w, http.StatusNotFound, "Employee not found")
			return
		}
		log.Printf("Error fetching employee salary: %v", err)
		JSONError(w, http.StatusInternalServerError, "Failed to generate payroll")
		return
	}

	basic := 0.0
	if basicSalary != nil {
		basic = *basicSalary
	}
	net := models.NetSalary(basic, req.Allowances, req.Deductions)

	var payroll models.Payroll
	err = scanPayroll(pool.QueryRow(ctx, `
		INSERT INTO payrolls (employee_id, month, year, basic_salary, allowances, deductions, net_salary)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+payrollRetCols,
		req.EmployeeID, req.Month, req.Year, basic, req.Allowances, req.Deductions, net,
	), &payroll)
	if err != nil {
		if isDuplicateKeyError(err) {
			JSONError(w, http.StatusBadRequest, "Payroll already generated for this month")
			return
		}
		log.Printf("Error generating payroll: %v", err)
		JSONError(w, http.StatusInternalServerError, "Failed to generate payroll")
		return
	}

	JSON(w, http.StatusCreated, payroll)
}

// List handles GET /api/payroll
// Admins see every record, optionally filtered by month, year, employee,
// or status. Employee callers only ever see their own records.
func (h *PayrollHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	pool := h.db.GetPool()

	b := &whereBuilder{}

	if ctxkeys.CallerRole(r.Context()) == ctxkeys.RoleEmployee {
		empID, err := employeeIDForUser(ctx, pool, ctxkeys.CallerID(r.Context()))
		if err != nil {
			if isNotFoundError(err) {
				JSON(w, http.StatusOK, []models.PayrollWithEmployee{})
				return
			}
			log.Printf("Error resolving employee for payroll: %v", err)
			JSONError(w, http.StatusInternalServerError, "Failed to fetch payroll")
			return
		}
		b.Eq("p.employee_id", empID)
	} else {
		if emp := q.Get("employee"); emp != "" {
			b.Eq("p.employee_id", emp)
		}
	}

	if month := q.Get("month"); month != "" {
		b.Eq("p.month", month)
	}
	if year := q.Get("year"); year != "" {
		b.Eq("p.year", year)
	}
	if status := q.Get("status"); status != "" {
		b.Eq("p.status", status)
	}

	rows, err := pool.Query(ctx,
		payrollWithEmployeeQuery+b.Clause()+" ORDER BY p.year DESC, p.month DESC",
		b.Args()...)
	if err != nil {
		log.Printf("Error querying payroll: %v", err)
		JSONError(w, http.StatusInternalServerError, "Failed to fetch payroll")
		return
	}
	defer rows.Close()

	payrolls := []models.PayrollWithEmployee{}
	for rows.Next() {
		var p models.PayrollWithEmployee
		if err := scanPayrollWithEmployee(rows, &p); err != nil {
			log.Printf("Error scanning payroll: %v", err)
			continue
		}
		payrolls = append(payrolls, p)
	}

	JSON(w, http.StatusOK, payrolls)
}

// GetByID handles GET /api/payroll/{id}
// Employee callers can only fetch their own records.
func (h *PayrollHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	pool := h.db.GetPool()

	b := &whereBuilder{}
	b.Eq("p.id", id)
	if ctxkeys.CallerRole(r.Context()) == ctxkeys.RoleEmployee {
		empID, err := employeeIDForUser(ctx, pool, ctxkeys.CallerID(r.Context()))
		if err != nil {
			JSONError(w, http.StatusNotFound, "Payroll record not found")
			return
		}
		b.Eq("p.employee_id", empID)
	}

	var p models.PayrollWithEmployee
	err := scanPayrollWithEmployee(pool.QueryRow(ctx,
		payrollWithEmployeeQuery+b.Clause(), b.Args()...), &p)
	if err != nil {
		if isNotFoundError(err) {
			JSONError(w, http.StatusNotFound, "Payroll record not found")
			return
		}
		log.Printf("Error fetching payroll %s: %v", id, err)
		JSONError(w, http.StatusInternalServerError, "Failed to fetch payroll")
		return
	}

	JSON(w, http.StatusOK, p)
}

// Update handles PUT /api/payroll/{id}
// When a pay component changes without an explicit net salary, the net
// is recomputed from the merged components.
func (h *PayrollHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req models.UpdatePayrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JSONError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	pool := h.db.GetPool()

	var current models.Payroll
	err := scanPayroll(pool.QueryRow(ctx,
		"SELECT "+payrollRetCols+" FROM payrolls WHERE id = $1", id), &current)
	if err != nil {
		if isNotFoundError(err) {
			JSONError(w, http.StatusNotFound, "Payroll record not found")
			return
		}
		log.Printf("Error fetching payroll %s: %v", id, err)
		JSONError(w, http.StatusInternalServerError, "Failed to update payroll")
		return
	}

	basic := current.BasicSalary
	allowances := current.Allowances
	deductions := current.Deductions
	componentChanged := false

	if req.BasicSalary != nil {
		basic = *req.BasicSalary
		componentChanged = true
	}
	if req.Allowances != nil {
		allowances = *req.Allowances
		componentChanged = true
	}
	if req.Deductions != nil {
		deductions = *req.Deductions
		componentChanged = true
	}

	net := current.NetSalary
	if req.NetSalary != nil {
		net = *req.NetSalary
	} else if componentChanged {
		net = models.NetSalary(basic, allowances, deductions)
	}

	setClauses := []string{}
	args := []interface{}{}
	argIdx := 1

	addField := func(col string, val interface{}) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", col, argIdx))
		args = append(args, val)
		argIdx++
	}

	addField("basic_salary", basic)
	addField("allowances", allowances)
	addField("deductions", deductions)
	addField("net_salary", net)
	if req.Status != nil {
		addField("status", *req.Status)
	}
	if req.PaymentDate != nil {
		addField("payment_date", *req.PaymentDate)
	}
	setClauses = append(setClauses, "updated_at = NOW()")

	query := fmt.Sprintf(`
		UPDATE payrolls SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(setClauses, ", "), argIdx, payrollRetCols)
	args = append(args, id)

	var payroll models.Payroll
	if err := scanPayroll(pool.QueryRow(ctx, query, args...), &payroll); err != nil {
		log.Printf("Error updating payroll %s: %v", id, err)
		JSONError(w, http.StatusInternalServerError, "Failed to update payroll")
		return
	}

	JSON(w, http.StatusOK, payroll)
}

// MarkPaid handles PATCH /api/payroll/{id}/pay
func (h *PayrollHandler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req models.MarkPaidRequest
	if r.Body != nil {
		// An empty body is fine; the payment date defaults to now.
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	paymentDate := time.Now().Format(time.RFC3339)
	if req.PaymentDate != nil && *req.PaymentDate != "" {
		paymentDate = *req.PaymentDate
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	pool := h.db.GetPool()

	var payroll models.Payroll
	err := scanPayroll(pool.QueryRow(ctx, `
		UPDATE payrolls SET status = 'Paid', payment_date = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING `+payrollRetCols,
		paymentDate, id), &payroll)
	if err != nil {
		if isNotFoundError(err) {
			JSONError(w, http.StatusNotFound, "Payroll record not found")
			return
		}
		log.Printf("Error marking payroll %s as paid: %v", id, err)
		JSONError(w, http.StatusInternalServerError, "Failed to mark payroll as paid")
		return
	}

	JSON(w, http.StatusOK, payroll)
}

// Delete handles DELETE /api/payroll/{id}
func (h *PayrollHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	pool := h.db.GetPool()

	tag, err := pool.Exec(ctx, "DELETE FROM payrolls WHERE id = $1", id)
	if err != nil {
		log.Printf("Error deleting payroll %s: %v", id, err)
		JSONError(w, http.StatusInternalServerError, "Failed to delete payroll")
		return
	}

	if tag.RowsAffected() == 0 {
		JSONError(w, http.StatusNotFound, "Payroll record not found")
		return
	}

	JSON(w, http.StatusOK, map[string]string{
		"message": "Payroll record deleted successfully",
	})
}

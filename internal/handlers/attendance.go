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

// AttendanceHandler handles attendance-related HTTP requests.
type AttendanceHandler struct {
	db database.Service
}

// NewAttendanceHandler creates a new AttendanceHandler.
func NewAttendanceHandler(db database.Service) *AttendanceHandler {
	return &AttendanceHandler{db: db}
}

const attendanceCols = `a.id, a.employee_id, a.work_date::text,
	a.check_in_time::text, a.check_out_time::text, a.status, a.remarks,
	a.created_at::text, a.updated_at::text`

const attendanceRetCols = `id, employee_id, work_date::text,
	check_in_time::text, check_out_time::text, status, remarks,
	created_at::text, updated_at::text`

func scanAttendance(scanner interface {
	Scan(dest ...interface{}) error
}, att *models.Attendance) error {
	return scanner.Scan(
		&att.ID, &att.EmployeeID, &att.Date,
		&att.CheckInTime, &att.CheckOutTime, &att.Status, &att.Remarks,
		&att.CreatedAt, &att.UpdatedAt,
	)
}

func scanAttendanceWithEmployee(scanner interface {
	Scan(dest ...interface{}) error
}, att *models.AttendanceWithEmployee) error {
	return scanner.Scan(
		&att.ID, &att.EmployeeID, &att.Date,
		&att.CheckInTime, &att.CheckOutTime, &att.Status, &att.Remarks,
		&att.CreatedAt, &att.UpdatedAt,
		&att.Username, &att.Email, &att.DepartmentName,
	)
}

const attendanceWithEmployeeQuery = `
	SELECT ` + attendanceCols + `,
		u.username, u.email, d.name AS department_name
	FROM attendance a
	LEFT JOIN employees e ON e.id = a.employee_id
	LEFT JOIN users u ON u.id = e.user_id
	LEFT JOIN departments d ON d.id = e.department_id`

// markPlan captures how a mark request applies to the employee's day:
// whether a row is inserted or updated, and which status lands.
type markPlan struct {
	Insert   bool
	Status   *string // nil leaves an existing record's status untouched
	CheckIn  bool
	CheckOut bool
}

// planMark decides the outcome of the check-in/check-out/status protocol
// against the day's existing record. A non-empty message rejects the mark.
func planMark(exists bool, req *models.MarkAttendanceRequest) (markPlan, string) {
	switch {
	case req.CheckIn:
		if exists {
			return markPlan{}, "Attendance already marked for this date"
		}
		status := "Present"
		if req.Status != nil {
			status = *req.Status
		}
		return markPlan{Insert: true, Status: &status, CheckIn: true}, ""

	case req.CheckOut:
		if !exists {
			return markPlan{}, "No check-in record found for this date"
		}
		return markPlan{CheckOut: true}, ""

	default:
		if exists {
			return markPlan{Status: req.Status}, ""
		}
		status := "Absent"
		if req.Status != nil {
			status = *req.Status
		}
		return markPlan{Insert: true, Status: &status}, ""
	}
}

// Mark handles POST /api/attendance
// One record exists per employee per day. Check-in creates the day's
// record and fails if it already exists; check-out completes it and
// fails if it does not; a plain status mark creates the record or
// merges into it, keeping fields the request left out.
func (h *AttendanceHandler) Mark(w http.ResponseWriter, r *http.Request) {
	var req models.MarkAttendanceRequest
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

	workDate := time.Now().Format("2006-01-02")
	if req.Date != nil && *req.Date != "" {
		t, err := parseDate(*req.Date)
		if err != nil {
			JSONError(w, http.StatusBadRequest, "Invalid date")
			return
		}
		workDate = t.Format("2006-01-02")
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	pool := h.db.GetPool()

	var existingID string
	err := pool.QueryRow(ctx,
		"SELECT id FROM attendance WHERE employee_id = $1 AND work_date = $2",
		req.EmployeeID, workDate).Scan(&existingID)
	if err != nil && !isNotFoundError(err) {
		log.Printf("Error checking attendance: %v", err)
		JSONError(w, http.StatusInternalServerError, "Failed to mark attendance")
		return
	}
	exists := err == nil

	plan, reject := planMark(exists, &req)
	if reject != "" {
		JSONError(w, http.StatusBadRequest, reject)
		return
	}

	var att models.Attendance

	switch {
	case plan.CheckIn:
		checkInTime := time.Now().Format(time.RFC3339)
		if req.CheckInTime != nil {
			checkInTime = *req.CheckInTime
		}
		err = scanAttendance(pool.QueryRow(ctx, `
			INSERT INTO attendance (employee_id, work_date, check_in_time, status)
			VALUES ($1, $2, $3, $4)
			RETURNING `+attendanceRetCols,
			req.EmployeeID, workDate, checkInTime, *plan.Status), &att)

	case plan.CheckOut:
		checkOutTime := time.Now().Format(time.RFC3339)
		if req.CheckOutTime != nil {
			checkOutTime = *req.CheckOutTime
		}
		err = scanAttendance(pool.QueryRow(ctx, `
			UPDATE attendance SET check_out_time = $1, updated_at = NOW()
			WHERE id = $2
			RETURNING `+attendanceRetCols,
			checkOutTime, existingID), &att)

	case plan.Insert:
		err = scanAttendance(pool.QueryRow(ctx, `
			INSERT INTO attendance (employee_id, work_date, check_in_time, check_out_time, status)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING `+attendanceRetCols,
			req.EmployeeID, workDate, req.CheckInTime, req.CheckOutTime, *plan.Status), &att)

	default:
		// Merge into the existing record; nil fields keep stored values.
		err = scanAttendance(pool.QueryRow(ctx, `
			UPDATE attendance SET
				status = COALESCE($1, status),
				check_in_time = COALESCE($2, check_in_time),
				check_out_time = COALESCE($3, check_out_time),
				updated_at = NOW()
			WHERE id = $4
			RETURNING `+attendanceRetCols,
			plan.Status, req.CheckInTime, req.CheckOutTime, existingID), &att)
	}

	if err != nil {
		if isDuplicateKeyError(err) {
			JSONError(w, http.StatusBadRequest, "Attendance already marked for this date")
			return
		}
		log.Printf("Error marking attendance: %v", err)
		JSONError(w, http.StatusInternalServerError, "Failed to mark attendance")
		return
	}

	status := http.StatusOK
	if !exists {
		status = http.StatusCreated
	}
	JSON(w, status, att)
}

// List handles GET /api/attendance
// Supports date, startDate/endDate, employee, and department filters.
// Attendance rows carry no department column, so a department filter is
// resolved to the department's employee IDs first.
func (h *AttendanceHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	pool := h.db.GetPool()

	b := &whereBuilder{}
	if err := applyDateFilters(b, "a.work_date", q); err != nil {
		JSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	if emp := q.Get("employee"); emp != "" {
		b.Eq("a.employee_id", emp)
	}
	if dept := q.Get("department"); dept != "" {
		ids, err := departmentEmployeeIDs(ctx, pool, dept)
		if err != nil {
			log.Printf("Error resolving department employees: %v", err)
			JSONError(w, http.StatusInternalServerError, "Failed to fetch attendance")
			return
		}
		b.AnyOf("a.employee_id", ids)
	}

	rows, err := pool.Query(ctx,
		attendanceWithEmployeeQuery+b.Clause()+" ORDER BY a.work_date DESC",
		b.Args()...)
	if err != nil {
		log.Printf("Error querying attendance: %v", err)
		JSONError(w, http.StatusInternalServerError, "Failed to fetch attendance")
		return
	}
	defer rows.Close()

	records := []models.AttendanceWithEmployee{}
	for rows.Next() {
		var att models.AttendanceWithEmployee
		if err := scanAttendanceWithEmployee(rows, &att); err != nil {
			log.Printf("Error scanning attendance: %v", err)
			continue
		}
		records = append(records, att)
	}

	JSON(w, http.StatusOK, records)
}

// ByEmployee handles GET /api/attendance/employee/{employeeId}
// Returns one employee's history, newest first, with optional date filters.
// Employee callers can only read their own history.
func (h *AttendanceHandler) ByEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeId")

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	pool := h.db.GetPool()

	if ctxkeys.CallerRole(r.Context()) == ctxkeys.RoleEmployee {
		ownID, err := employeeIDForUser(ctx, pool, ctxkeys.CallerID(r.Context()))
		if err != nil || ownID != employeeID {
			JSONError(w, http.StatusForbidden, "Access denied")
			return
		}
	}

	b := &whereBuilder{}
	b.Eq("a.employee_id", employeeID)
	if err := applyDateFilters(b, "a.work_date", r.URL.Query()); err != nil {
		JSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	rows, err := pool.Query(ctx, `
		SELECT `+attendanceCols+` FROM attendance a`+b.Clause()+`
		ORDER BY a.work_date DESC`, b.Args()...)
	if err != nil {
		log.Printf("Error querying attendance for employee %s: %v", employeeID, err)
		JSONError(w, http.StatusInternalServerError, "Failed to fetch attendance")
		return
	}
	defer rows.Close()

	records := []models.Attendance{}
	for rows.Next() {
		var att models.Attendance
		if err := scanAttendance(rows, &att); err != nil {
			log.Printf("Error scanning attendance: %v", err)
			continue
		}
		records = append(records, att)
	}

	JSON(w, http.StatusOK, records)
}

// Update handles PUT /api/attendance/{id}
func (h *AttendanceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req models.UpdateAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JSONError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if req.Status != nil && !models.ValidAttendanceStatuses[*req.Status] {
		JSONError(w, http.StatusBadRequest, "Invalid attendance status")
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

	if req.Status != nil {
		addField("status", *req.Status)
	}
	if req.CheckInTime != nil {
		addField("check_in_time", *req.CheckInTime)
	}
	if req.CheckOutTime != nil {
		addField("check_out_time", *req.CheckOutTime)
	}
	if req.Remarks != nil {
		addField("remarks", *req.Remarks)
	}

	if len(setClauses) == 0 {
		JSONError(w, http.StatusBadRequest, "No fields to update")
		return
	}

	setClauses = append(setClauses, "updated_at = NOW()")

	query := fmt.Sprintf(`
		UPDATE attendance SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(setClauses, ", "), argIdx, attendanceRetCols)
	args = append(args, id)

	var att models.Attendance
	if err := scanAttendance(pool.QueryRow(ctx, query, args...), &att); err != nil {
		if isNotFoundError(err) {
			JSONError(w, http.StatusNotFound, "Attendance record not found")
			return
		}
		log.Printf("Error updating attendance %s: %v", id, err)
		JSONError(w, http.StatusInternalServerError, "Failed to update attendance")
		return
	}

	JSON(w, http.StatusOK, att)
}

// Delete handles DELETE /api/attendance/{id}
func (h *AttendanceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	pool := h.db.GetPool()

	tag, err := pool.Exec(ctx, "DELETE FROM attendance WHERE id = $1", id)
	if err != nil {
		log.Printf("Error deleting attendance %s: %v", id, err)
		JSONError(w, http.StatusInternalServerError, "Failed to delete attendance")
		return
	}

	if tag.RowsAffected() == 0 {
		JSONError(w, http.StatusNotFound, "Attendance record not found")
		return
	}

	JSON(w, http.StatusOK, map[string]string{
		"message": "Attendance record deleted successfully",
	})
}

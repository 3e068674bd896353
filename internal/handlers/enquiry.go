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

// EnquiryHandler handles public enquiry HTTP requests.
type EnquiryHandler struct {
	db database.Service
}

// NewEnquiryHandler creates a new EnquiryHandler.
func NewEnquiryHandler(db database.Service) *EnquiryHandler {
	return &EnquiryHandler{db: db}
}

const enquiryCols = `id, name, email, subject, message, phone, status,
	created_at::text, updated_at::text`

func scanEnquiry(scanner interface {
	Scan(dest ...interface{}) error
}, e *models.Enquiry) error {
	return scanner.Scan(
		&e.ID, &e.Name, &e.Email, &e.Subject, &e.Message, &e.Phone,
		&e.Status, &e.CreatedAt, &e.UpdatedAt,
	)
}

// Create handles POST /api/enquiries
// The one unauthenticated write endpoint: the public contact form.
func (h *EnquiryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateEnquiryRequest
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

	var enquiry models.Enquiry
	err := scanEnquiry(pool.QueryRow(ctx, `
		INSERT INTO enquiries (name, email, subject, message, phone)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+enquiryCols,
		req.Name, req.Email, req.Subject, req.Message, req.Phone,
	), &enquiry)
	if err != nil {
		log.Printf("Error creating enquiry: %v", err)
		JSONError(w, http.StatusInternalServerError, "Failed to submit enquiry")
		return
	}

	JSON(w, http.StatusCreated, enquiry)
}

// List handles GET /api/enquiries
func (h *EnquiryHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	pool := h.db.GetPool()

	b := &whereBuilder{}
	if status := r.URL.Query().Get("status"); status != "" {
		b.Eq("status", status)
	}

	rows, err := pool.Query(ctx, `
		SELECT `+enquiryCols+` FROM enquiries`+b.Clause()+`
		ORDER BY created_at DESC`, b.Args()...)
	if err != nil {
		log.Printf("Error querying enquiries: %v", err)
		JSONError(w, http.StatusInternalServerError, "Failed to fetch enquiries")
		return
	}
	defer rows.Close()

	enquiries := []models.Enquiry{}
	for rows.Next() {
		var e models.Enquiry
		if err := scanEnquiry(rows, &e); err != nil {
			log.Printf("Error scanning enquiry: %v", err)
			continue
		}
		enquiries = append(enquiries, e)
	}

	JSON(w, http.StatusOK, enquiries)
}

// GetByID handles GET /api/enquiries/{id}
func (h *EnquiryHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	pool := h.db.GetPool()

	var enquiry models.Enquiry
	err := scanEnquiry(pool.QueryRow(ctx, `
		SELECT `+enquiryCols+` FROM enquiries WHERE id = $1`, id), &enquiry)
	if err != nil {
		if isNotFoundError(err) {
			JSONError(w, http.StatusNotFound, "Enquiry not found")
			return
		}
		log.Printf("Error fetching enquiry %s: %v", id, err)
		JSONError(w, http.StatusInternalServerError, "Failed to fetch enquiry")
		return
	}

	JSON(w, http.StatusOK, enquiry)
}

// Update handles PUT /api/enquiries/{id}
func (h *EnquiryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req models.UpdateEnquiryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JSONError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if req.Status != nil && !models.ValidEnquiryStatuses[*req.Status] {
		JSONError(w, http.StatusBadRequest, "Invalid enquiry status")
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
	if req.Subject != nil {
		addField("subject", *req.Subject)
	}
	if req.Message != nil {
		addField("message", *req.Message)
	}

	if len(setClauses) == 0 {
		JSONError(w, http.StatusBadRequest, "No fields to update")
		return
	}

	setClauses = append(setClauses, "updated_at = NOW()")

	query := fmt.Sprintf(`
		UPDATE enquiries SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(setClauses, ", "), argIdx, enquiryCols)
	args = append(args, id)

	var enquiry models.Enquiry
	if err := scanEnquiry(pool.QueryRow(ctx, query, args...), &enquiry); err != nil {
		if isNotFoundError(err) {
			JSONError(w, http.StatusNotFound, "Enquiry not found")
			return
		}
		log.Printf("Error updating enquiry %s: %v", id, err)
		JSONError(w, http.StatusInternalServerError, "Failed to update enquiry")
		return
	}

	JSON(w, http.StatusOK, enquiry)
}

// Delete handles DELETE /api/enquiries/{id}
func (h *EnquiryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	pool := h.db.GetPool()

	tag, err := pool.Exec(ctx, "DELETE FROM enquiries WHERE id = $1", id)
	if err != nil {
		log.Printf("Error deleting enquiry %s: %v", id, err)
		JSONError(w, http.StatusInternalServerError, "Failed to delete enquiry")
		return
	}

	if tag.RowsAffected() == 0 {
		JSONError(w, http.StatusNotFound, "Enquiry not found")
		return
	}

	JSON(w, http.StatusOK, map[string]string{
		"message": "Enquiry deleted successfully",
	})
}

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

// AwardHandler handles award and certification HTTP requests.
type AwardHandler struct {
	db database.Service
}

// NewAwardHandler creates a new AwardHandler.
func NewAwardHandler(db database.Service) *AwardHandler {
	return &AwardHandler{db: db}
}

const awardCols = `id, title, description, award_date::text,
	issuing_organization, certificate, image_url,
	category, display_order, created_at::text, updated_at::text`

func scanAward(scanner interface {
	Scan(dest ...interface{}) error
}, a *models.Award) error {
	return scanner.Scan(
		&a.ID, &a.Title, &a.Description, &a.AwardDate,
		&a.IssuingOrganization, &a.Certificate, &a.ImageURL,
		&a.Category, &a.DisplayOrder, &a.CreatedAt, &a.UpdatedAt,
	)
}

// Create handles POST /api/awards
func (h *AwardHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateAwardRequest
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

	category := req.Category
	if category == "" {
		category = "Award"
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	pool := h.db.GetPool()

	var award models.Award
	err := scanAward(pool.QueryRow(ctx, `
		INSERT INTO awards (
			title, description, award_date, issuing_organization,
			certificate, image_url, category, display_order
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+awardCols,
		req.Title, req.Description, req.AwardDate, req.IssuingOrganization,
		req.Certificate, req.ImageURL, category, req.DisplayOrder,
	), &award)
	if err != nil {
		log.Printf("Error creating award: %v", err)
		JSONError(w, http.StatusInternalServerError, "Failed to create award")
		return
	}

	JSON(w, http.StatusCreated, award)
}

// List handles GET /api/awards
// Public endpoint; ordered for display, then newest award first.
func (h *AwardHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	pool := h.db.GetPool()

	b := &whereBuilder{}
	if category := r.URL.Query().Get("category"); category != "" {
		b.Eq("category", category)
	}

	rows, err := pool.Query(ctx, `
		SELECT `+awardCols+` FROM awards`+b.Clause()+`
		ORDER BY display_order ASC, award_date DESC`, b.Args()...)
	if err != nil {
		log.Printf("Error querying awards: %v", err)
		JSONError(w, http.StatusInternalServerError, "Failed to fetch awards")
		return
	}
	defer rows.Close()

	awards := []models.Award{}
	for rows.Next() {
		var a models.Award
		if err := scanAward(rows, &a); err != nil {
			log.Printf("Error scanning award: %v", err)
			continue
		}
		awards = append(awards, a)
	}

	JSON(w, http.StatusOK, awards)
}

// GetByID handles GET /api/awards/{id}
func (h *AwardHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	pool := h.db.GetPool()

	var award models.Award
	err := scanAward(pool.QueryRow(ctx,
		"SELECT "+awardCols+" FROM awards WHERE id = $1", id), &award)
	if err != nil {
		if isNotFoundError(err) {
			JSONError(w, http.StatusNotFound, "Award not found")
			return
		}
		log.Printf("Error fetching award %s: %v", id, err)
		JSONError(w, http.StatusInternalServerError, "Failed to fetch award")
		return
	}

	JSON(w, http.StatusOK, award)
}

// Update handles PUT /api/awards/{id}
func (h *AwardHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req models.UpdateAwardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JSONError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if req.Category != nil && !models.ValidAwardCategories[*req.Category] {
		JSONError(w, http.StatusBadRequest, "Invalid award category")
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
	if req.AwardDate != nil {
		addField("award_date", *req.AwardDate)
	}
	if req.IssuingOrganization != nil {
		addField("issuing_organization", *req.IssuingOrganization)
	}
	if req.Certificate != nil {
		addField("certificate", *req.Certificate)
	}
	if req.ImageURL != nil {
		addField("image_url", *req.ImageURL)
	}
	if req.Category != nil {
		addField("category", *req.Category)
	}
	if req.DisplayOrder != nil {
		addField("display_order", *req.DisplayOrder)
	}

	if len(setClauses) == 0 {
		JSONError(w, http.StatusBadRequest, "No fields to update")
		return
	}

	setClauses = append(setClauses, "updated_at = NOW()")

	query := fmt.Sprintf(`
		UPDATE awards SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(setClauses, ", "), argIdx, awardCols)
	args = append(args, id)

	var award models.Award
	if err := scanAward(pool.QueryRow(ctx, query, args...), &award); err != nil {
		if isNotFoundError(err) {
			JSONError(w, http.StatusNotFound, "Award not found")
			return
		}
		log.Printf("Error updating award %s: %v", id, err)
		JSONError(w, http.StatusInternalServerError, "Failed to update award")
		return
	}

	JSON(w, http.StatusOK, award)
}

// Delete handles DELETE /api/awards/{id}
func (h *AwardHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	pool := h.db.GetPool()

	tag, err := pool.Exec(ctx, "DELETE FROM awards WHERE id = $1", id)
	if err != nil {
		log.Printf("Error deleting award %s: %v", id, err)
		JSONError(w, http.StatusInternalServerError, "Failed to delete award")
		return
	}

	if tag.RowsAffected() == 0 {
		JSONError(w, http.StatusNotFound, "Award not found")
		return
	}

	JSON(w, http.StatusOK, map[string]string{
		"message": "Award deleted successfully",
	})
}

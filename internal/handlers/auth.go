package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"textile-backend/internal/ctxkeys"
	"textile-backend/internal/database"
	"textile-backend/internal/models"
)

// AuthHandler handles registration, login, and profile requests.
type AuthHandler struct {
	db        database.Service
	jwtSecret string
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(db database.Service, jwtSecret string) *AuthHandler {
	return &AuthHandler{db: db, jwtSecret: jwtSecret}
}

const userCols = `id, username, email, password_hash, role,
	created_at::text, updated_at::text`

func scanUser(scanner interface {
	Scan(dest ...interface{}) error
}, u *models.User) error {
	return scanner.Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role,
		&u.CreatedAt, &u.UpdatedAt,
	)
}

// generateToken issues a signed JWT valid for 30 days.
func (h *AuthHandler) generateToken(userID, role string) (string, error) {
	claims := jwt.MapClaims{
		"userId": userID,
		"role":   role,
		"exp":    time.Now().Add(30 * 24 * time.Hour).Unix(),
		"iat":    time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.jwtSecret))
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
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
	if req.Role == "" {
		req.Role = ctxkeys.RoleEmployee
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		JSONError(w, http.StatusInternalServerError, "Failed to register user")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	pool := h.db.GetPool()

	var user models.User
	err = pool.QueryRow(ctx, `
		INSERT INTO users (username, email, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING `+userCols,
		req.Username, req.Email, string(hash), req.Role,
	).Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash,
		&user.Role, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			JSONError(w, http.StatusBadRequest, "User already exists")
			return
		}
		log.Printf("Error registering user: %v", err)
		JSONError(w, http.StatusInternalServerError, "Failed to register user")
		return
	}

	token, err := h.generateToken(user.ID, user.Role)
	if err != nil {
		log.Printf("Error signing token: %v", err)
		JSONError(w, http.StatusInternalServerError, "Failed to register user")
		return
	}

	JSON(w, http.StatusCreated, models.AuthResponse{Token: token, User: user})
}

// Login handles POST /api/auth/login
// Bad email and bad password produce the same response so credentials
// cannot be probed.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
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

	var user models.User
	err := scanUser(pool.QueryRow(ctx,
		"SELECT "+userCols+" FROM users WHERE email = $1", req.Email), &user)
	if err != nil {
		JSONError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		JSONError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := h.generateToken(user.ID, user.Role)
	if err != nil {
		log.Printf("Error signing token: %v", err)
		JSONError(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	JSON(w, http.StatusOK, models.AuthResponse{Token: token, User: user})
}

// Profile handles GET /api/auth/profile
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.CallerID(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	pool := h.db.GetPool()

	var user models.User
	err := scanUser(pool.QueryRow(ctx,
		"SELECT "+userCols+" FROM users WHERE id = $1", userID), &user)
	if err != nil {
		JSONError(w, http.StatusNotFound, "User not found")
		return
	}

	JSON(w, http.StatusOK, user)
}

// Logout handles POST /api/auth/logout
// Tokens are stateless; the client discards its copy.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"textile-backend/internal/ctxkeys"
)

const testSecret = "test-secret"

func signToken(t *testing.T, userID, role string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"userId": userID,
		"role":   role,
		"exp":    time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestAuth(t *testing.T) {
	var gotUserID, gotRole string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = ctxkeys.CallerID(r.Context())
		gotRole = ctxkeys.CallerRole(r.Context())
	})
	handler := Auth(testSecret)(next)

	t.Run("valid token passes through with context", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, "user-1", ctxkeys.RoleAdmin))
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if gotUserID != "user-1" || gotRole != ctxkeys.RoleAdmin {
			t.Errorf("context = (%q, %q), want (user-1, Admin)", gotUserID, gotRole)
		}
	})

	t.Run("missing header is rejected", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("wrong signature is rejected", func(t *testing.T) {
		claims := jwt.MapClaims{"userId": "user-1", "role": "Admin"}
		bad, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
			SignedString([]byte("other-secret"))

		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", "Bearer "+bad)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		claims := jwt.MapClaims{
			"userId": "user-1",
			"role":   "Admin",
			"exp":    time.Now().Add(-time.Hour).Unix(),
		}
		expired, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
			SignedString([]byte(testSecret))

		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", "Bearer "+expired)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})
}

func TestRequireRole(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	chain := Auth(testSecret)(RequireRole(ctxkeys.RoleAdmin)(next))

	t.Run("admin allowed", func(t *testing.T) {
		req := httptest.NewRequest("DELETE", "/", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, "user-1", ctxkeys.RoleAdmin))
		rec := httptest.NewRecorder()

		chain.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", rec.Code)
		}
	})

	t.Run("employee forbidden", func(t *testing.T) {
		req := httptest.NewRequest("DELETE", "/", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, "user-2", ctxkeys.RoleEmployee))
		rec := httptest.NewRecorder()

		chain.ServeHTTP(rec, req)

		if rec.Code != http.StatusForbidden {
			t.Errorf("status = %d, want 403", rec.Code)
		}
	})
}

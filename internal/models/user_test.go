package models

import "testing"

func TestRegisterRequestValidate(t *testing.T) {
	t.Run("complete request passes", func(t *testing.T) {
		req := RegisterRequest{
			Username: "asha",
			Email:    "asha@example.com",
			Password: "secret1",
			Role:     "Client",
		}
		if errs := req.Validate(); len(errs) != 0 {
			t.Errorf("Validate() = %v, want no errors", errs)
		}
	})

	t.Run("short password is rejected", func(t *testing.T) {
		req := RegisterRequest{Username: "asha", Email: "a@b.c", Password: "12345"}
		if errs := req.Validate(); errs["password"] == "" {
			t.Error("expected password error")
		}
	})

	t.Run("unknown role is rejected", func(t *testing.T) {
		req := RegisterRequest{Username: "asha", Email: "a@b.c", Password: "secret1", Role: "Manager"}
		if errs := req.Validate(); errs["role"] == "" {
			t.Error("expected role error")
		}
	})

	t.Run("empty role falls back to default later", func(t *testing.T) {
		req := RegisterRequest{Username: "asha", Email: "a@b.c", Password: "secret1"}
		if errs := req.Validate(); len(errs) != 0 {
			t.Errorf("Validate() = %v, want no errors", errs)
		}
	})
}

func TestLoginRequestValidate(t *testing.T) {
	t.Run("both fields required", func(t *testing.T) {
		req := LoginRequest{}
		errs := req.Validate()
		if errs["email"] == "" || errs["password"] == "" {
			t.Errorf("Validate() = %v, want email and password errors", errs)
		}
	})
}

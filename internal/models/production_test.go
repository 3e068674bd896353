package models

import "testing"

func TestClampProgress(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{-10, 0},
		{0, 0},
		{50, 50},
		{100, 100},
		{150, 100},
	}

	for _, tt := range tests {
		if got := ClampProgress(tt.in); got != tt.want {
			t.Errorf("ClampProgress(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestCreateTaskRequestValidate(t *testing.T) {
	t.Run("task name is required", func(t *testing.T) {
		req := CreateTaskRequest{}
		if errs := req.Validate(); errs["taskName"] == "" {
			t.Error("expected taskName error")
		}
	})

	t.Run("unknown stage is rejected", func(t *testing.T) {
		req := CreateTaskRequest{TaskName: "Weave batch 7", Stage: "Shipping"}
		if errs := req.Validate(); errs["stage"] == "" {
			t.Error("expected stage error")
		}
	})

	t.Run("known stage passes", func(t *testing.T) {
		req := CreateTaskRequest{TaskName: "Weave batch 7", Stage: "Weaving"}
		if errs := req.Validate(); len(errs) != 0 {
			t.Errorf("Validate() = %v, want no errors", errs)
		}
	})
}

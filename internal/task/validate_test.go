package task

import (
	"testing"
	"time"
)

func validCollection() *Collection {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return &Collection{
		SchemaVersion: SchemaVersion,
		Tasks: []Task{
			{
				ID:          "t1",
				Description: "Buy milk",
				Status:      StatusTodo,
				CreatedAt:   now,
				UpdatedAt:   now,
			},
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Collection)
		wantErr bool
	}{
		{
			name:    "valid collection",
			mutate:  func(c *Collection) {},
			wantErr: false,
		},
		{
			name:    "empty collection",
			mutate:  func(c *Collection) { c.Tasks = []Task{} },
			wantErr: false,
		},
		{
			name:    "wrong schema_version",
			mutate:  func(c *Collection) { c.SchemaVersion = 2 },
			wantErr: true,
		},
		{
			name:    "missing tasks",
			mutate:  func(c *Collection) { c.Tasks = nil },
			wantErr: true,
		},
		{
			name:    "task missing id",
			mutate:  func(c *Collection) { c.Tasks[0].ID = "" },
			wantErr: true,
		},
		{
			name:    "task empty description",
			mutate:  func(c *Collection) { c.Tasks[0].Description = "" },
			wantErr: true,
		},
		{
			name:    "task invalid status",
			mutate:  func(c *Collection) { c.Tasks[0].Status = "blocked" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validCollection()
			tt.mutate(c)

			result := c.Validate()
			if result.Valid == tt.wantErr {
				t.Errorf("Valid: got %v, want %v (errors: %v)", result.Valid, !tt.wantErr, result.Errors)
			}
			if !result.UsedSchema {
				t.Error("expected schema validation to be used")
			}
			if tt.wantErr && len(result.Errors) == 0 {
				t.Error("expected at least one error")
			}
		})
	}
}

func TestValidateMinimal(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Collection)
		wantErr bool
	}{
		{"valid", func(c *Collection) {}, false},
		{"wrong schema_version", func(c *Collection) { c.SchemaVersion = 0 }, true},
		{"nil tasks", func(c *Collection) { c.Tasks = nil }, true},
		{"missing description", func(c *Collection) { c.Tasks[0].Description = "" }, true},
		{"bad status", func(c *Collection) { c.Tasks[0].Status = "later" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validCollection()
			tt.mutate(c)

			result := &ValidationResult{Valid: true}
			c.validateMinimal(result)
			if result.Valid == tt.wantErr {
				t.Errorf("Valid: got %v, want %v (errors: %v)", result.Valid, !tt.wantErr, result.Errors)
			}
		})
	}
}

package validate

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/Junaid083/SprintSync/internal/model"
)

const (
	maxTitleLen       = 200
	maxDescriptionLen = 2000
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// TaskInput is the user-supplied write payload. Pointer fields distinguish
// "absent" from a zero value.
type TaskInput struct {
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Status         string     `json:"status"`
	Priority       string     `json:"priority"`
	TotalMinutes   *int       `json:"totalMinutes"`
	DueDate        *time.Time `json:"dueDate"`
	AssignedUserID *uuid.UUID `json:"assignedUserId"`
}

// Task evaluates every rule independently so the caller gets the complete
// error set in one pass. Nothing is auto-corrected.
func Task(in TaskInput, now time.Time) []FieldError {
	var errs []FieldError

	if strings.TrimSpace(in.Title) == "" {
		errs = append(errs, FieldError{"title", "Task title is required"})
	} else if utf8.RuneCountInString(in.Title) > maxTitleLen {
		errs = append(errs, FieldError{"title", "Task title cannot exceed 200 characters"})
	}

	if strings.TrimSpace(in.Description) == "" {
		errs = append(errs, FieldError{"description", "Task description is required"})
	} else if utf8.RuneCountInString(in.Description) > maxDescriptionLen {
		errs = append(errs, FieldError{"description", "Task description cannot exceed 2000 characters"})
	}

	if !model.ValidStatus(in.Status) {
		errs = append(errs, FieldError{"status", "Invalid task status"})
	}

	if !model.ValidPriority(in.Priority) {
		errs = append(errs, FieldError{"priority", "Invalid task priority"})
	}

	if in.TotalMinutes != nil && *in.TotalMinutes < 0 {
		errs = append(errs, FieldError{"totalMinutes", "Time cannot be negative"})
	}

	if in.DueDate != nil && !in.DueDate.After(now) {
		errs = append(errs, FieldError{"dueDate", "Due date must be in the future"})
	}

	return errs
}

// Status checks the status-only patch payload.
func Status(status string) []FieldError {
	if !model.ValidStatus(status) {
		return []FieldError{{"status", "Invalid task status"}}
	}
	return nil
}

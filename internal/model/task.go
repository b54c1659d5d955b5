package model

import (
	"time"

	"github.com/google/uuid"
)

// Task statuses
const (
	StatusTodo       = "todo"
	StatusInProgress = "in_progress"
	StatusDone       = "done"
)

// Task priorities
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// FilterAll is the sentinel meaning "do not narrow by this dimension".
const FilterAll = "all"

type Task struct {
	ID           uuid.UUID  `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Status       string     `json:"status"`
	Priority     string     `json:"priority"`
	TotalMinutes int        `json:"totalMinutes"`
	DueDate      *time.Time `json:"dueDate,omitempty"`
	OwnerID      uuid.UUID  `json:"ownerId"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// TaskWithOwner is the expanded shape produced by the repository join.
// It is a distinct type so the owner is never inferred from a field's
// runtime shape.
type TaskWithOwner struct {
	Task
	Owner AccountRef `json:"owner"`
}

// TaskFilter narrows a list query. Nil pointer fields mean "match any";
// the scope itself is carried separately and is never optional.
type TaskFilter struct {
	Status   *string
	Priority *string
	Search   string
	OwnerID  *uuid.UUID
}

type Pagination struct {
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	TotalTasks  int  `json:"totalTasks"`
	HasNextPage bool `json:"hasNextPage"`
	HasPrevPage bool `json:"hasPrevPage"`
}

type TaskPage struct {
	Tasks      []TaskWithOwner `json:"tasks"`
	Pagination Pagination      `json:"pagination"`
}

type TaskStats struct {
	ByStatus     map[string]int `json:"byStatus"`
	TotalTasks   int            `json:"totalTasks"`
	TotalMinutes int            `json:"totalMinutes"`
	Overdue      int            `json:"overdue"`
}

func ValidStatus(s string) bool {
	return s == StatusTodo || s == StatusInProgress || s == StatusDone
}

func ValidPriority(p string) bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

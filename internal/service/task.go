package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Junaid083/SprintSync/internal/apperr"
	"github.com/Junaid083/SprintSync/internal/authz"
	"github.com/Junaid083/SprintSync/internal/model"
	"github.com/Junaid083/SprintSync/internal/repo"
	"github.com/Junaid083/SprintSync/internal/validate"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// ListParams are the caller-chosen list filters after transport decoding.
// Empty or "all" strings mean "match any"; OwnerFilter only has effect for
// an admin scope.
type ListParams struct {
	Page        int
	Limit       int
	Status      string
	Priority    string
	Search      string
	OwnerFilter *uuid.UUID
}

type TaskService struct {
	repo repo.TaskRepository
	now  func() time.Time
}

func NewTaskService(repo repo.TaskRepository) *TaskService {
	return &TaskService{repo: repo, now: time.Now}
}

// WithClock overrides the time source. Used by tests.
func (s *TaskService) WithClock(now func() time.Time) *TaskService {
	s.now = now
	return s
}

// Create validates the payload, resolves the effective owner through the
// scope and persists. Validation errors are returned before any persistence
// call is attempted.
func (s *TaskService) Create(ctx context.Context, scope authz.Scope, in validate.TaskInput) (model.TaskWithOwner, error) {
	if in.Status == "" {
		in.Status = model.StatusTodo
	}
	if in.Priority == "" {
		in.Priority = model.PriorityMedium
	}

	if errs := validate.Task(in, s.now()); len(errs) > 0 {
		return model.TaskWithOwner{}, validationError(errs)
	}

	t := model.Task{
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Status:      in.Status,
		Priority:    in.Priority,
		DueDate:     in.DueDate,
		OwnerID:     scope.AssignOwner(in.AssignedUserID),
	}
	if in.TotalMinutes != nil {
		t.TotalMinutes = *in.TotalMinutes
	}

	return s.repo.Create(ctx, t)
}

func (s *TaskService) Get(ctx context.Context, scope authz.Scope, id uuid.UUID) (model.TaskWithOwner, error) {
	return s.repo.Get(ctx, id, scope)
}

func (s *TaskService) List(ctx context.Context, scope authz.Scope, p ListParams) (model.TaskPage, error) {
	if p.Page < 1 {
		p.Page = defaultPage
	}
	if p.Limit <= 0 {
		p.Limit = defaultLimit
	}
	if p.Limit > maxLimit {
		p.Limit = maxLimit
	}

	filter := model.TaskFilter{
		Search:  p.Search,
		OwnerID: scope.ListOwner(p.OwnerFilter),
	}
	if st := narrowed(p.Status); st != "" {
		filter.Status = &st
	}
	if pr := narrowed(p.Priority); pr != "" {
		filter.Priority = &pr
	}

	return s.repo.List(ctx, filter, p.Page, p.Limit)
}

// Update re-validates everything, including the due date against the
// instant of this write, and hands the repository a single conditional
// mutation under the caller's scope.
func (s *TaskService) Update(ctx context.Context, scope authz.Scope, id uuid.UUID, in validate.TaskInput) (model.TaskWithOwner, error) {
	if errs := validate.Task(in, s.now()); len(errs) > 0 {
		return model.TaskWithOwner{}, validationError(errs)
	}

	t := model.Task{
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Status:      in.Status,
		Priority:    in.Priority,
		DueDate:     in.DueDate,
	}
	if in.TotalMinutes != nil {
		t.TotalMinutes = *in.TotalMinutes
	}

	return s.repo.Update(ctx, id, t, scope.Reassignment(in.AssignedUserID), scope)
}

func (s *TaskService) UpdateStatus(ctx context.Context, scope authz.Scope, id uuid.UUID, status string) (model.TaskWithOwner, error) {
	if errs := validate.Status(status); len(errs) > 0 {
		return model.TaskWithOwner{}, validationError(errs)
	}
	return s.repo.UpdateStatus(ctx, id, status, scope)
}

func (s *TaskService) Delete(ctx context.Context, scope authz.Scope, id uuid.UUID) error {
	return s.repo.SoftDelete(ctx, id, scope)
}

func (s *TaskService) Stats(ctx context.Context, scope authz.Scope) (model.TaskStats, error) {
	return s.repo.Stats(ctx, scope)
}

// narrowed maps the "all" sentinel and absence to "no narrowing".
func narrowed(v string) string {
	if v == model.FilterAll {
		return ""
	}
	return v
}

func validationError(errs []validate.FieldError) *apperr.Error {
	messages := make([]string, 0, len(errs))
	for _, e := range errs {
		messages = append(messages, e.Message)
	}
	return apperr.Validation(strings.Join(messages, ", "), errs)
}

package repo

import (
	"context"

	"github.com/google/uuid"

	"github.com/Junaid083/SprintSync/internal/authz"
	"github.com/Junaid083/SprintSync/internal/model"
)

// TaskRepository persists tasks. Every operation takes the caller's scope
// and applies it as a hard AND on top of the soft-delete filter.
type TaskRepository interface {
	Create(ctx context.Context, t model.Task) (model.TaskWithOwner, error)
	Get(ctx context.Context, id uuid.UUID, scope authz.Scope) (model.TaskWithOwner, error)
	List(ctx context.Context, filter model.TaskFilter, page, limit int) (model.TaskPage, error)
	Update(ctx context.Context, id uuid.UUID, t model.Task, newOwner *uuid.UUID, scope authz.Scope) (model.TaskWithOwner, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string, scope authz.Scope) (model.TaskWithOwner, error)
	SoftDelete(ctx context.Context, id uuid.UUID, scope authz.Scope) error
	Stats(ctx context.Context, scope authz.Scope) (model.TaskStats, error)
}

// AccountRepository persists accounts.
type AccountRepository interface {
	Create(ctx context.Context, a model.Account) (model.Account, error)
	GetByEmail(ctx context.Context, email string) (model.Account, error)
	GetActive(ctx context.Context, id uuid.UUID) (model.Account, error)
	List(ctx context.Context) ([]model.AccountRef, error)
	TouchLastLogin(ctx context.Context, id uuid.UUID) error
}

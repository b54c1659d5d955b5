package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Junaid083/SprintSync/internal/apperr"
	"github.com/Junaid083/SprintSync/internal/authz"
	"github.com/Junaid083/SprintSync/internal/model"
	"github.com/Junaid083/SprintSync/internal/validate"
)

type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) Create(ctx context.Context, t model.Task) (model.TaskWithOwner, error) {
	args := m.Called(ctx, t)
	return args.Get(0).(model.TaskWithOwner), args.Error(1)
}

func (m *MockTaskRepository) Get(ctx context.Context, id uuid.UUID, scope authz.Scope) (model.TaskWithOwner, error) {
	args := m.Called(ctx, id, scope)
	return args.Get(0).(model.TaskWithOwner), args.Error(1)
}

func (m *MockTaskRepository) List(ctx context.Context, filter model.TaskFilter, page, limit int) (model.TaskPage, error) {
	args := m.Called(ctx, filter, page, limit)
	return args.Get(0).(model.TaskPage), args.Error(1)
}

func (m *MockTaskRepository) Update(ctx context.Context, id uuid.UUID, t model.Task, newOwner *uuid.UUID, scope authz.Scope) (model.TaskWithOwner, error) {
	args := m.Called(ctx, id, t, newOwner, scope)
	return args.Get(0).(model.TaskWithOwner), args.Error(1)
}

func (m *MockTaskRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string, scope authz.Scope) (model.TaskWithOwner, error) {
	args := m.Called(ctx, id, status, scope)
	return args.Get(0).(model.TaskWithOwner), args.Error(1)
}

func (m *MockTaskRepository) SoftDelete(ctx context.Context, id uuid.UUID, scope authz.Scope) error {
	args := m.Called(ctx, id, scope)
	return args.Error(0)
}

func (m *MockTaskRepository) Stats(ctx context.Context, scope authz.Scope) (model.TaskStats, error) {
	args := m.Called(ctx, scope)
	return args.Get(0).(model.TaskStats), args.Error(1)
}

func validTaskInput() validate.TaskInput {
	return validate.TaskInput{
		Title:       "Write release notes",
		Description: "Summarize the changes shipped this sprint",
		Status:      model.StatusTodo,
		Priority:    model.PriorityMedium,
	}
}

func assertValidation(t *testing.T, err error) *apperr.Error {
	t.Helper()
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.KindValidation, appErr.Kind)
	return appErr
}

func TestTaskService_Create(t *testing.T) {
	self := uuid.New()
	other := uuid.New()

	t.Run("validation happens before any persistence call", func(t *testing.T) {
		mockRepo := new(MockTaskRepository)
		service := NewTaskService(mockRepo)

		_, err := service.Create(context.Background(), authz.Scope{AccountID: self}, validate.TaskInput{})

		appErr := assertValidation(t, err)
		assert.NotEmpty(t, appErr.Fields)
		mockRepo.AssertNotCalled(t, "Create")
	})

	t.Run("defaults status and priority when absent", func(t *testing.T) {
		mockRepo := new(MockTaskRepository)
		mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(task model.Task) bool {
			return task.Status == model.StatusTodo && task.Priority == model.PriorityMedium
		})).Return(model.TaskWithOwner{}, nil)

		service := NewTaskService(mockRepo)
		in := validTaskInput()
		in.Status = ""
		in.Priority = ""

		_, err := service.Create(context.Background(), authz.Scope{AccountID: self}, in)
		require.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("non-admin cannot assign to another account", func(t *testing.T) {
		mockRepo := new(MockTaskRepository)
		mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(task model.Task) bool {
			return task.OwnerID == self
		})).Return(model.TaskWithOwner{}, nil)

		service := NewTaskService(mockRepo)
		in := validTaskInput()
		in.AssignedUserID = &other

		_, err := service.Create(context.Background(), authz.Scope{AccountID: self}, in)
		require.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("admin assigns to another account", func(t *testing.T) {
		mockRepo := new(MockTaskRepository)
		mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(task model.Task) bool {
			return task.OwnerID == other
		})).Return(model.TaskWithOwner{}, nil)

		service := NewTaskService(mockRepo)
		in := validTaskInput()
		in.AssignedUserID = &other

		_, err := service.Create(context.Background(), authz.Scope{AccountID: self, Admin: true}, in)
		require.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("past due date rejected", func(t *testing.T) {
		now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		past := now.Add(-time.Minute)

		mockRepo := new(MockTaskRepository)
		service := NewTaskService(mockRepo).WithClock(func() time.Time { return now })

		in := validTaskInput()
		in.DueDate = &past

		_, err := service.Create(context.Background(), authz.Scope{AccountID: self}, in)
		assertValidation(t, err)
		mockRepo.AssertNotCalled(t, "Create")
	})

	t.Run("title and description trimmed", func(t *testing.T) {
		mockRepo := new(MockTaskRepository)
		mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(task model.Task) bool {
			return task.Title == "Padded" && task.Description == "Also padded"
		})).Return(model.TaskWithOwner{}, nil)

		service := NewTaskService(mockRepo)
		in := validTaskInput()
		in.Title = "  Padded  "
		in.Description = " Also padded "

		_, err := service.Create(context.Background(), authz.Scope{AccountID: self}, in)
		require.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})
}

func TestTaskService_List(t *testing.T) {
	self := uuid.New()
	other := uuid.New()

	tests := []struct {
		name      string
		scope     authz.Scope
		params    ListParams
		checkCall func(*testing.T, model.TaskFilter, int, int)
	}{
		{
			name:   "defaults applied",
			scope:  authz.Scope{AccountID: self},
			params: ListParams{},
			checkCall: func(t *testing.T, filter model.TaskFilter, page, limit int) {
				assert.Equal(t, 1, page)
				assert.Equal(t, 10, limit)
			},
		},
		{
			name:   "limit capped",
			scope:  authz.Scope{AccountID: self},
			params: ListParams{Limit: 500},
			checkCall: func(t *testing.T, filter model.TaskFilter, page, limit int) {
				assert.Equal(t, 100, limit)
			},
		},
		{
			name:   "all sentinel means no narrowing",
			scope:  authz.Scope{AccountID: self},
			params: ListParams{Status: model.FilterAll, Priority: model.FilterAll},
			checkCall: func(t *testing.T, filter model.TaskFilter, page, limit int) {
				assert.Nil(t, filter.Status)
				assert.Nil(t, filter.Priority)
			},
		},
		{
			name:   "status and priority narrow",
			scope:  authz.Scope{AccountID: self},
			params: ListParams{Status: model.StatusDone, Priority: model.PriorityHigh},
			checkCall: func(t *testing.T, filter model.TaskFilter, page, limit int) {
				require.NotNil(t, filter.Status)
				assert.Equal(t, model.StatusDone, *filter.Status)
				require.NotNil(t, filter.Priority)
				assert.Equal(t, model.PriorityHigh, *filter.Priority)
			},
		},
		{
			name:   "non-admin owner filter is overridden by scope",
			scope:  authz.Scope{AccountID: self},
			params: ListParams{OwnerFilter: &other},
			checkCall: func(t *testing.T, filter model.TaskFilter, page, limit int) {
				require.NotNil(t, filter.OwnerID)
				assert.Equal(t, self, *filter.OwnerID)
			},
		},
		{
			name:   "admin owner filter honored",
			scope:  authz.Scope{AccountID: self, Admin: true},
			params: ListParams{OwnerFilter: &other},
			checkCall: func(t *testing.T, filter model.TaskFilter, page, limit int) {
				require.NotNil(t, filter.OwnerID)
				assert.Equal(t, other, *filter.OwnerID)
			},
		},
		{
			name:   "admin without filter sees all owners",
			scope:  authz.Scope{AccountID: self, Admin: true},
			params: ListParams{},
			checkCall: func(t *testing.T, filter model.TaskFilter, page, limit int) {
				assert.Nil(t, filter.OwnerID)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockTaskRepository)
			mockRepo.On("List", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
				Run(func(args mock.Arguments) {
					tt.checkCall(t,
						args.Get(1).(model.TaskFilter),
						args.Get(2).(int),
						args.Get(3).(int),
					)
				}).
				Return(model.TaskPage{}, nil)

			service := NewTaskService(mockRepo)
			_, err := service.List(context.Background(), tt.scope, tt.params)
			require.NoError(t, err)
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestTaskService_Update(t *testing.T) {
	self := uuid.New()
	other := uuid.New()
	taskID := uuid.New()

	t.Run("non-admin reassignment dropped", func(t *testing.T) {
		mockRepo := new(MockTaskRepository)
		mockRepo.On("Update", mock.Anything, taskID, mock.Anything, (*uuid.UUID)(nil), mock.Anything).
			Return(model.TaskWithOwner{}, nil)

		service := NewTaskService(mockRepo)
		in := validTaskInput()
		in.AssignedUserID = &other

		_, err := service.Update(context.Background(), authz.Scope{AccountID: self}, taskID, in)
		require.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("admin reassignment passed through", func(t *testing.T) {
		mockRepo := new(MockTaskRepository)
		mockRepo.On("Update", mock.Anything, taskID, mock.Anything, &other, mock.Anything).
			Return(model.TaskWithOwner{}, nil)

		service := NewTaskService(mockRepo)
		in := validTaskInput()
		in.AssignedUserID = &other

		_, err := service.Update(context.Background(), authz.Scope{AccountID: self, Admin: true}, taskID, in)
		require.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("update requires explicit status and priority", func(t *testing.T) {
		mockRepo := new(MockTaskRepository)
		service := NewTaskService(mockRepo)

		in := validTaskInput()
		in.Status = ""

		_, err := service.Update(context.Background(), authz.Scope{AccountID: self}, taskID, in)
		assertValidation(t, err)
		mockRepo.AssertNotCalled(t, "Update")
	})
}

func TestTaskService_UpdateStatus(t *testing.T) {
	self := uuid.New()
	taskID := uuid.New()

	t.Run("invalid status rejected before persistence", func(t *testing.T) {
		mockRepo := new(MockTaskRepository)
		service := NewTaskService(mockRepo)

		_, err := service.UpdateStatus(context.Background(), authz.Scope{AccountID: self}, taskID, "cancelled")
		assertValidation(t, err)
		mockRepo.AssertNotCalled(t, "UpdateStatus")
	})

	t.Run("valid status passed with scope", func(t *testing.T) {
		scope := authz.Scope{AccountID: self}
		mockRepo := new(MockTaskRepository)
		mockRepo.On("UpdateStatus", mock.Anything, taskID, model.StatusDone, scope).
			Return(model.TaskWithOwner{}, nil)

		service := NewTaskService(mockRepo)
		_, err := service.UpdateStatus(context.Background(), scope, taskID, model.StatusDone)
		require.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})
}

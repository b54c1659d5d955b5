package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Junaid083/SprintSync/internal/authz"
	"github.com/Junaid083/SprintSync/internal/model"
	"github.com/Junaid083/SprintSync/internal/service"
	"github.com/Junaid083/SprintSync/internal/validate"
	"github.com/Junaid083/SprintSync/pkg/respond"
)

type TaskHandler struct {
	service *service.TaskService
	logger  *zap.Logger
}

func NewTaskHandler(srv *service.TaskService, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		service: srv,
		logger:  logger,
	}
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	scope, ok := scopeFrom(r)
	if !ok {
		respond.Error(w, r, http.StatusUnauthorized, "Please log in")
		return
	}

	var in validate.TaskInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.logger.Debug("failed to decode json", zap.Error(err))
		respond.Error(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	task, err := h.service.Create(r.Context(), scope, in)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	w.Header().Set("Location", "/api/tasks/"+task.ID.String())
	respond.JSON(w, r, http.StatusCreated, task)
}

func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	scope, ok := scopeFrom(r)
	if !ok {
		respond.Error(w, r, http.StatusUnauthorized, "Please log in")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, r, http.StatusBadRequest, "Invalid task ID provided")
		return
	}

	task, err := h.service.Get(r.Context(), scope, id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, task)
}

func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	scope, ok := scopeFrom(r)
	if !ok {
		respond.Error(w, r, http.StatusUnauthorized, "Please log in")
		return
	}

	q := r.URL.Query()
	params := service.ListParams{
		Status:   q.Get("status"),
		Priority: q.Get("priority"),
		Search:   q.Get("search"),
	}
	params.Page, _ = strconv.Atoi(q.Get("page"))
	params.Limit, _ = strconv.Atoi(q.Get("limit"))

	if owner := q.Get("userId"); owner != "" && owner != model.FilterAll {
		id, err := uuid.Parse(owner)
		if err != nil {
			respond.Error(w, r, http.StatusBadRequest, "Invalid user ID provided")
			return
		}
		params.OwnerFilter = &id
	}

	page, err := h.service.List(r.Context(), scope, params)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, page)
}

func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	scope, ok := scopeFrom(r)
	if !ok {
		respond.Error(w, r, http.StatusUnauthorized, "Please log in")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, r, http.StatusBadRequest, "Invalid task ID provided")
		return
	}

	var in validate.TaskInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.Error(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	task, err := h.service.Update(r.Context(), scope, id, in)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, task)
}

func (h *TaskHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	scope, ok := scopeFrom(r)
	if !ok {
		respond.Error(w, r, http.StatusUnauthorized, "Please log in")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, r, http.StatusBadRequest, "Invalid task ID provided")
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	task, err := h.service.UpdateStatus(r.Context(), scope, id, req.Status)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, task)
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	scope, ok := scopeFrom(r)
	if !ok {
		respond.Error(w, r, http.StatusUnauthorized, "Please log in")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, r, http.StatusBadRequest, "Invalid task ID provided")
		return
	}

	if err := h.service.Delete(r.Context(), scope, id); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, map[string]string{"message": "Task deleted successfully"})
}

func (h *TaskHandler) Stats(w http.ResponseWriter, r *http.Request) {
	scope, ok := scopeFrom(r)
	if !ok {
		respond.Error(w, r, http.StatusUnauthorized, "Please log in")
		return
	}

	stats, err := h.service.Stats(r.Context(), scope)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, stats)
}

func scopeFrom(r *http.Request) (authz.Scope, bool) {
	claims, ok := ClaimsFrom(r.Context())
	if !ok {
		return authz.Scope{}, false
	}
	return authz.FromClaims(claims), true
}

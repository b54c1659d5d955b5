package handler

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/Junaid083/SprintSync/internal/service"
	"github.com/Junaid083/SprintSync/pkg/respond"
)

type SuggestHandler struct {
	service *service.SuggestService
	logger  *zap.Logger
}

func NewSuggestHandler(srv *service.SuggestService, logger *zap.Logger) *SuggestHandler {
	return &SuggestHandler{
		service: srv,
		logger:  logger,
	}
}

func (h *SuggestHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Input string `json:"input"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	suggestion, err := h.service.Suggest(r.Context(), req.Input)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, suggestion)
}

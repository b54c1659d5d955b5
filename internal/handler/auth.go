package handler

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/Junaid083/SprintSync/internal/model"
	"github.com/Junaid083/SprintSync/internal/service"
	"github.com/Junaid083/SprintSync/internal/token"
	"github.com/Junaid083/SprintSync/pkg/respond"
)

type AuthHandler struct {
	service *service.AuthService
	logger  *zap.Logger
}

func NewAuthHandler(srv *service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: srv,
		logger:  logger,
	}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	account, signed, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	http.SetCookie(w, sessionCookie(signed, int(token.DefaultTTL.Seconds())))
	respond.JSON(w, r, http.StatusOK, map[string]interface{}{
		"user": model.AccountRef{ID: account.ID, Email: account.Email, IsAdmin: account.IsAdmin},
	})
}

// Logout clears the credential cookie rather than waiting for it to expire.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, sessionCookie("", -1))
	respond.JSON(w, r, http.StatusOK, map[string]bool{"success": true})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFrom(r.Context())
	if !ok {
		respond.Error(w, r, http.StatusUnauthorized, "Please log in")
		return
	}

	account, err := h.service.Me(r.Context(), claims)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, account)
}

func (h *AuthHandler) Users(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.Users(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, users)
}

func sessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookie,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

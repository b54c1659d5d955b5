package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Junaid083/SprintSync/internal/repo"
	"github.com/Junaid083/SprintSync/internal/token"
	"github.com/Junaid083/SprintSync/internal/validate"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantKind   Kind
		wantStatus int
	}{
		{"expired token", token.ErrExpired, KindAuth, http.StatusUnauthorized},
		{"malformed token", token.ErrMalformed, KindAuth, http.StatusUnauthorized},
		{"bad signature", token.ErrSignatureInvalid, KindAuth, http.StatusUnauthorized},
		{"not found", repo.ErrorNotFound, KindNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("get task: %w", repo.ErrorNotFound), KindNotFound, http.StatusNotFound},
		{"conflict", repo.ErrorConflict, KindConflict, http.StatusConflict},
		{"unclassified", errors.New("pq: connection reset"), KindInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.err)
			assert.Equal(t, tt.wantKind, got.Kind)
			assert.Equal(t, tt.wantStatus, got.Status())
		})
	}
}

func TestClassify_PassesThroughClassified(t *testing.T) {
	original := Throttled("AI service is currently busy. Please try again in a few minutes.")
	got := Classify(fmt.Errorf("suggest: %w", original))
	assert.Same(t, original, got)
	assert.Equal(t, http.StatusTooManyRequests, got.Status())
}

func TestClassify_ValidationCarriesFields(t *testing.T) {
	fields := []validate.FieldError{
		{Field: "title", Message: "Task title is required"},
		{Field: "dueDate", Message: "Due date must be in the future"},
	}
	err := Validation("Please fix the following errors", fields)

	got := Classify(err)
	require.Equal(t, KindValidation, got.Kind)
	assert.Equal(t, http.StatusBadRequest, got.Status())
	assert.Equal(t, fields, got.Fields)
}

func TestInternal_NeverLeaksCause(t *testing.T) {
	cause := errors.New("pgx: password authentication failed for user \"app\"")
	err := Internal(cause)

	assert.Equal(t, http.StatusInternalServerError, err.Status())
	assert.NotContains(t, err.Public(), "pgx")
	assert.ErrorIs(t, err, cause, "cause must stay reachable for internal logging")
}

func TestPublic_GenericOnlyForInternal(t *testing.T) {
	assert.Equal(t, "Resource gone", NotFound("Resource gone").Public())
	assert.Equal(t, genericMessage, Internal(errors.New("boom")).Public())
}

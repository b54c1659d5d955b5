package handler

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/Junaid083/SprintSync/internal/apperr"
	"github.com/Junaid083/SprintSync/pkg/respond"
)

// writeError funnels every failure through the classifier so only the
// normalized message crosses the boundary. Unclassified causes are logged
// with full detail when a logger is available.
func writeError(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	appErr := apperr.Classify(err)

	if appErr.Kind == apperr.KindInternal && logger != nil {
		logger.Error("internal error", zap.Error(err), zap.String("path", r.URL.Path))
	}

	if appErr.Kind == apperr.KindValidation && len(appErr.Fields) > 0 {
		respond.FieldErrors(w, r, appErr.Status(), appErr.Public(), appErr.Fields)
		return
	}
	respond.Error(w, r, appErr.Status(), appErr.Public())
}

package respond

import (
	"encoding/json"
	"net/http"
)

func JSON(w http.ResponseWriter, r *http.Request, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(data)
}

func Error(w http.ResponseWriter, r *http.Request, code int, message string) {
	JSON(w, r, code, map[string]string{"error": message})
}

// FieldErrors attaches the full per-field list to a validation failure.
func FieldErrors(w http.ResponseWriter, r *http.Request, code int, message string, fields interface{}) {
	JSON(w, r, code, map[string]interface{}{
		"error":  message,
		"fields": fields,
	})
}

package handler

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// NewRouter wires every endpoint behind the shared auth middleware. Scope
// logic lives in authz; this layer only decodes transport.
func NewRouter(auth *AuthHandler, tasks *TaskHandler, suggest *SuggestHandler, mw *AuthMiddleware) chi.Router {
	r := chi.NewRouter()

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status":"ok"}`)
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", auth.Login)
		r.Post("/auth/logout", auth.Logout)

		r.Group(func(r chi.Router) {
			r.Use(mw.RequireAuth)

			r.Get("/auth/me", auth.Me)
			r.Get("/users", auth.Users)

			r.Route("/tasks", func(r chi.Router) {
				r.Post("/", tasks.Create)
				r.Get("/", tasks.List)
				r.Get("/stats", tasks.Stats)
				r.Get("/{id}", tasks.Get)
				r.Put("/{id}", tasks.Update)
				r.Patch("/{id}/status", tasks.UpdateStatus)
				r.Delete("/{id}", tasks.Delete)
			})

			r.Post("/ai/suggest", suggest.Suggest)
		})
	})

	return r
}

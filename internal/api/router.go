package api

import (
	"net/http"

	"github.com/emptyteabot/mind-os/internal/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter builds the full route table: static pages, API routes, and
// the catch-all redirect home for anything unmatched.
func NewRouter(h *Handler, index, admin http.HandlerFunc) chi.Router {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))
	r.Use(middleware.CORS([]string{"*"}))

	r.Get("/", index)
	r.Get("/admin", admin)
	h.RegisterRoutes(r)

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, "/", http.StatusFound)
	})

	return r
}

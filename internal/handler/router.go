package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	chatHandler "github.com/avrkr/advanced-friendly-chatbot/internal/handler/chat"
	middlewarePkg "github.com/avrkr/advanced-friendly-chatbot/internal/middleware"
	chatService "github.com/avrkr/advanced-friendly-chatbot/internal/service/chat"
	"github.com/avrkr/advanced-friendly-chatbot/pkg/utils"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(chatSvc *chatService.Service, environment string) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	production := environment == "production"
	started := time.Now().UTC()

	r.Route("/api", func(api chi.Router) {
		chatHandler.New(chatSvc, production).RegisterRoutes(api)

		api.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
				"status":      "OK",
				"timestamp":   time.Now().UTC(),
				"environment": environment,
				"uptime":      time.Since(started).String(),
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.RespondJSON(w, http.StatusNotFound, map[string]string{
			"error": "Endpoint not found",
			"path":  r.URL.Path,
		})
	})

	return r
}

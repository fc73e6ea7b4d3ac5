package chat

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/avrkr/advanced-friendly-chatbot/internal/model/settings"
	chatService "github.com/avrkr/advanced-friendly-chatbot/internal/service/chat"
	"github.com/avrkr/advanced-friendly-chatbot/pkg/utils"
)

// maxBodyBytes bounds chat request bodies (10MB, matching the frontend's
// upload allowance).
const maxBodyBytes = 10 << 20

// Handler exposes the chat API over HTTP.
type Handler struct {
	chatSvc    *chatService.Service
	production bool
}

// New creates the chat handler. In production, error details are hidden
// from responses.
func New(chatSvc *chatService.Service, production bool) *Handler {
	return &Handler{chatSvc: chatSvc, production: production}
}

// RegisterRoutes mounts the chat endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/chat", func(r chi.Router) {
		r.Post("/", h.handleTurn)
		r.Get("/settings/{userID}", h.handleGetSettings)
		r.Put("/settings/{userID}", h.handleUpdateSettings)
		r.Get("/conversation/{userID}", h.handleHistory)
		r.Delete("/conversation/{userID}", h.handleClear)
		r.Get("/stats/{userID}", h.handleStats)
	})
}

func (h *Handler) handleTurn(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Message        string          `json:"message"`
		UserID         string          `json:"userId"`
		UpdateSettings *settings.Patch `json:"updateSettings"`
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.chatSvc.HandleTurn(r.Context(), payload.UserID, payload.Message, payload.UpdateSettings)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	userSettings, err := h.chatSvc.Settings(r.Context(), userID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, userSettings)
}

func (h *Handler) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	var patch settings.Patch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.chatSvc.UpdateSettings(r.Context(), userID, &patch)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"message":  "Settings updated successfully",
		"settings": updated,
	})
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	limit := queryInt(r, "limit", 50)
	offset := queryInt(r, "offset", 0)

	page, err := h.chatSvc.History(r.Context(), userID, limit, offset)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, page)
}

func (h *Handler) handleClear(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	if err := h.chatSvc.Clear(r.Context(), userID); err != nil {
		h.respondServiceError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"message":   "Conversation history cleared successfully",
		"timestamp": time.Now().UTC(),
	})
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	stats, err := h.chatSvc.Stats(r.Context(), userID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, stats)
}

// respondServiceError maps the service error taxonomy onto HTTP statuses:
// validation 400, upstream 503, everything else 500 with a generic message.
func (h *Handler) respondServiceError(w http.ResponseWriter, err error) {
	var validationErr *chatService.ValidationError
	if errors.As(err, &validationErr) {
		utils.RespondError(w, http.StatusBadRequest, validationErr.Detail)
		return
	}

	var upstreamErr *chatService.UpstreamError
	if errors.As(err, &upstreamErr) {
		log.Printf("[chat] upstream failure: %v", err)
		utils.RespondError(w, http.StatusServiceUnavailable, upstreamErr.UserMessage, h.detail(err))
		return
	}

	log.Printf("[chat] internal error: %v", err)
	utils.RespondError(w, http.StatusInternalServerError, chatService.MsgInternal, h.detail(err))
}

// detail surfaces the raw error text outside production.
func (h *Handler) detail(err error) string {
	if h.production {
		return ""
	}
	return err.Error()
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return val
}

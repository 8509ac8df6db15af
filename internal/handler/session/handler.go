package session

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakura-edu/aichan-hiroba/backend/internal/model/feeling"
	"github.com/sakura-edu/aichan-hiroba/backend/internal/model/persona"
	sessionService "github.com/sakura-edu/aichan-hiroba/backend/internal/service/session"
	"github.com/sakura-edu/aichan-hiroba/backend/pkg/utils"
)

// Handler exposes the session lifecycle over HTTP.
type Handler struct {
	sessionSvc *sessionService.Service
	personas   persona.Store
	feelings   feeling.Store
}

// New creates the session handler.
func New(sessionSvc *sessionService.Service, personas persona.Store, feelings feeling.Store) *Handler {
	return &Handler{
		sessionSvc: sessionSvc,
		personas:   personas,
		feelings:   feelings,
	}
}

// RegisterRoutes mounts the session routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/session", h.handleStart)
	r.Get("/session", h.handleSnapshot)
	r.Delete("/session", h.handleReset)
	r.Post("/session/messages", h.handleSendMessage)
	r.Get("/session/stream", h.handleStream)
	r.Post("/session/finish", h.handleFinish)
	r.Post("/session/feelings/{feelingID}", h.handleToggleFeeling)
	r.Post("/session/report", h.handleGenerateReport)
	r.Get("/session/report/print", h.handlePrintReport)
}

func (h *Handler) handleStart(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Task      string `json:"task"`
		PersonaID string `json:"personaId"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if payload.PersonaID == "" {
		utils.RespondError(w, http.StatusBadRequest, "personaId is required")
		return
	}

	p, ok := h.personas.FindByID(payload.PersonaID)
	if !ok {
		utils.RespondError(w, http.StatusBadRequest, "persona not found")
		return
	}

	snapshot, err := h.sessionSvc.Start(r.Context(), payload.Task, p)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusCreated, snapshot)
}

func (h *Handler) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.sessionSvc.Snapshot(r.Context())
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"session": snapshot,
		"pending": h.sessionSvc.Pending(r.Context()),
	})
}

func (h *Handler) handleReset(w http.ResponseWriter, r *http.Request) {
	h.sessionSvc.Reset(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Text string `json:"text"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	userMsg, _, err := h.sessionSvc.Send(r.Context(), payload.Text)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	// The partner reply resolves asynchronously; clients poll GET /session
	// or hold the SSE/WebSocket stream instead.
	utils.RespondJSON(w, http.StatusAccepted, map[string]any{
		"message": userMsg,
		"pending": true,
	})
}

// handleStream sends a message and streams the exchange as SSE: the
// accepted user message, a typing notice, then the partner reply.
func (h *Handler) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.RespondError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	text := r.URL.Query().Get("message")
	if text == "" {
		utils.RespondError(w, http.StatusBadRequest, "message query parameter is required")
		return
	}

	userMsg, replies, err := h.sessionSvc.Send(r.Context(), text)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	utils.SetupSSEHeaders(w)
	utils.SendSSEEvent(w, flusher, "message", userMsg)
	utils.SendSSEEvent(w, flusher, "typing", map[string]bool{"typing": true})

	select {
	case <-r.Context().Done():
		// Client went away; the reply still resolves into the session log.
		return
	case reply, open := <-replies:
		if !open {
			utils.SendSSEEvent(w, flusher, "end", map[string]bool{"finished": true})
			return
		}
		if reply.Err != nil {
			utils.SendSSEEvent(w, flusher, "error", map[string]string{"error": "reply generation failed"})
			return
		}
		utils.SendSSEEvent(w, flusher, "message", reply.Message)
		utils.SendSSEEvent(w, flusher, "end", map[string]bool{"finished": true})
	}
}

func (h *Handler) handleFinish(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.sessionSvc.Finish(r.Context())
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, snapshot)
}

func (h *Handler) handleToggleFeeling(w http.ResponseWriter, r *http.Request) {
	feelingID := chi.URLParam(r, "feelingID")
	if _, ok := h.feelings.FindByID(feelingID); !ok {
		utils.RespondError(w, http.StatusBadRequest, "feeling not found")
		return
	}

	snapshot, err := h.sessionSvc.ToggleFeeling(r.Context(), feelingID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, snapshot)
}

func (h *Handler) handleGenerateReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.sessionSvc.GenerateReport(r.Context())
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, report)
}

func (h *Handler) respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, sessionService.ErrNoSession):
		utils.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, sessionService.ErrTaskRequired),
		errors.Is(err, sessionService.ErrEmptyMessage),
		errors.Is(err, sessionService.ErrNoFeelingSelected):
		utils.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, sessionService.ErrSessionActive),
		errors.Is(err, sessionService.ErrReplyPending),
		errors.Is(err, sessionService.ErrNotInProgress),
		errors.Is(err, sessionService.ErrNotCompleted):
		utils.RespondError(w, http.StatusConflict, err.Error())
	default:
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
	}
}

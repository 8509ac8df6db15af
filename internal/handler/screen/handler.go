// Package screen serves the three screen routes of the app. Each route
// returns the view state the frontend renders; routes whose guard is not
// satisfied redirect back to the start screen.
package screen

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakura-edu/aichan-hiroba/backend/internal/model/feeling"
	"github.com/sakura-edu/aichan-hiroba/backend/internal/model/hint"
	"github.com/sakura-edu/aichan-hiroba/backend/internal/model/persona"
	sessionModel "github.com/sakura-edu/aichan-hiroba/backend/internal/model/session"
	sessionService "github.com/sakura-edu/aichan-hiroba/backend/internal/service/session"
	"github.com/sakura-edu/aichan-hiroba/backend/pkg/utils"
)

const appTitle = `AIの"あいちゃん"と、わくわく相談ひろば`

// Handler routes the start, chat, and summary screens.
type Handler struct {
	sessionSvc *sessionService.Service
	personas   persona.Store
	feelings   feeling.Store
	hints      []hint.Hint
}

// New creates the screen handler.
func New(sessionSvc *sessionService.Service, personas persona.Store, feelings feeling.Store, hints []hint.Hint) *Handler {
	return &Handler{
		sessionSvc: sessionSvc,
		personas:   personas,
		feelings:   feelings,
		hints:      hints,
	}
}

// RegisterRoutes mounts the screen routes at the router root.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.handleStartScreen)
	r.Get("/chat", h.handleChatScreen)
	r.Get("/summary", h.handleSummaryScreen)
}

func (h *Handler) handleStartScreen(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"screen":   "start",
		"title":    appTitle,
		"personas": h.personas.List(),
	})
}

// handleChatScreen requires an in-progress session, else redirects to "/".
func (h *Handler) handleChatScreen(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.sessionSvc.Snapshot(r.Context())
	if err != nil || snapshot.State != sessionModel.StateInProgress {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"screen":  "chat",
		"session": snapshot,
		"hints":   h.hints,
		"pending": h.sessionSvc.Pending(r.Context()),
	})
}

// handleSummaryScreen requires a completed session, else redirects to "/".
func (h *Handler) handleSummaryScreen(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.sessionSvc.Snapshot(r.Context())
	if err != nil || snapshot.State == sessionModel.StateInProgress {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"screen":   "summary",
		"session":  snapshot,
		"feelings": h.feelings.List(),
	})
}

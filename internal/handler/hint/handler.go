package hint

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakura-edu/aichan-hiroba/backend/internal/model/hint"
	"github.com/sakura-edu/aichan-hiroba/backend/pkg/utils"
)

// Handler serves the starter-question catalog for the chat screen.
type Handler struct {
	hints []hint.Hint
}

// New creates the hint handler.
func New(hints []hint.Hint) *Handler {
	return &Handler{hints: hints}
}

// RegisterRoutes mounts the hint routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/hints", h.handleListHints)
}

func (h *Handler) handleListHints(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.hints)
}

package feeling

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakura-edu/aichan-hiroba/backend/internal/model/feeling"
	"github.com/sakura-edu/aichan-hiroba/backend/pkg/utils"
)

// Handler serves the reflection-tag catalog.
type Handler struct {
	feelings feeling.Store
}

// New creates the feeling handler.
func New(feelings feeling.Store) *Handler {
	return &Handler{feelings: feelings}
}

// RegisterRoutes mounts the feeling routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/feelings", h.handleListFeelings)
}

func (h *Handler) handleListFeelings(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.feelings.List())
}

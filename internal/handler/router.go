package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	chatHandler "github.com/sakura-edu/aichan-hiroba/backend/internal/handler/chat"
	feelingHandler "github.com/sakura-edu/aichan-hiroba/backend/internal/handler/feeling"
	hintHandler "github.com/sakura-edu/aichan-hiroba/backend/internal/handler/hint"
	personaHandler "github.com/sakura-edu/aichan-hiroba/backend/internal/handler/persona"
	screenHandler "github.com/sakura-edu/aichan-hiroba/backend/internal/handler/screen"
	sessionHandler "github.com/sakura-edu/aichan-hiroba/backend/internal/handler/session"
	middlewarePkg "github.com/sakura-edu/aichan-hiroba/backend/internal/middleware"
	feelingModel "github.com/sakura-edu/aichan-hiroba/backend/internal/model/feeling"
	hintModel "github.com/sakura-edu/aichan-hiroba/backend/internal/model/hint"
	personaModel "github.com/sakura-edu/aichan-hiroba/backend/internal/model/persona"
	sessionService "github.com/sakura-edu/aichan-hiroba/backend/internal/service/session"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(personas personaModel.Store, feelings feelingModel.Store, hints []hintModel.Hint, sessionSvc *sessionService.Service) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	screens := screenHandler.New(sessionSvc, personas, feelings, hints)
	screens.RegisterRoutes(r)

	r.Route("/api", func(api chi.Router) {
		personaHandler.New(personas).RegisterRoutes(api)
		feelingHandler.New(feelings).RegisterRoutes(api)
		hintHandler.New(hints).RegisterRoutes(api)
		sessionHandler.New(sessionSvc, personas, feelings).RegisterRoutes(api)
		chatHandler.NewWebSocketHandler(sessionSvc).RegisterRoutes(api)
	})

	return r
}

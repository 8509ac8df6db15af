package screen_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/sakura-edu/aichan-hiroba/backend/internal/analysis/respond"
	screenHandler "github.com/sakura-edu/aichan-hiroba/backend/internal/handler/screen"
	"github.com/sakura-edu/aichan-hiroba/backend/internal/model/feeling"
	"github.com/sakura-edu/aichan-hiroba/backend/internal/model/hint"
	"github.com/sakura-edu/aichan-hiroba/backend/internal/model/persona"
	sessionservice "github.com/sakura-edu/aichan-hiroba/backend/internal/service/session"
)

func setupRouter() (*chi.Mux, *sessionservice.Service) {
	engine := respond.NewEngine(respond.Config{
		Pick:     func(n int) int { return 0 },
		DelayMin: 0,
		DelayMax: 0,
	})
	svc := sessionservice.NewService(engine, feeling.NewMemoryStore(feeling.Seed()))
	handler := screenHandler.New(svc, persona.NewMemoryStore(persona.Seed()), feeling.NewMemoryStore(feeling.Seed()), hint.Seed())

	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r, svc
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestStartScreenListsPersonas(t *testing.T) {
	r, _ := setupRouter()

	resp := get(r, "/")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "robo-kun") {
		t.Fatal("start screen should list the persona catalog")
	}
}

func TestChatScreenRedirectsWithoutSession(t *testing.T) {
	r, _ := setupRouter()

	resp := get(r, "/chat")
	if resp.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", resp.Code)
	}
	if loc := resp.Header().Get("Location"); loc != "/" {
		t.Fatalf("expected redirect to /, got %s", loc)
	}
}

func TestSummaryScreenRedirectsWhileInProgress(t *testing.T) {
	r, svc := setupRouter()
	if _, err := svc.Start(context.Background(), "算数の文章問題", persona.Seed()[0]); err != nil {
		t.Fatalf("start: %v", err)
	}

	resp := get(r, "/summary")
	if resp.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", resp.Code)
	}
}

func TestChatScreenWithActiveSession(t *testing.T) {
	r, svc := setupRouter()
	if _, err := svc.Start(context.Background(), "算数の文章問題", persona.Seed()[0]); err != nil {
		t.Fatalf("start: %v", err)
	}

	resp := get(r, "/chat")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "算数の文章問題") {
		t.Fatal("chat screen should carry the session task")
	}
	if !strings.Contains(resp.Body.String(), "hints") {
		t.Fatal("chat screen should carry the hint questions")
	}
}

func TestSummaryScreenAfterFinish(t *testing.T) {
	r, svc := setupRouter()
	ctx := context.Background()
	if _, err := svc.Start(ctx, "算数の文章問題", persona.Seed()[0]); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := svc.Finish(ctx); err != nil {
		t.Fatalf("finish: %v", err)
	}

	resp := get(r, "/summary")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "feelings") {
		t.Fatal("summary screen should carry the feeling catalog")
	}

	// The chat screen is no longer reachable once the session completed.
	resp = get(r, "/chat")
	if resp.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", resp.Code)
	}
}

package chat

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/sakura-edu/aichan-hiroba/backend/internal/analysis/respond"
	"github.com/sakura-edu/aichan-hiroba/backend/internal/model/feeling"
	"github.com/sakura-edu/aichan-hiroba/backend/internal/model/persona"
	sessionModel "github.com/sakura-edu/aichan-hiroba/backend/internal/model/session"
	sessionservice "github.com/sakura-edu/aichan-hiroba/backend/internal/service/session"
)

// gatedResponder holds every reply until its gate channel is closed.
type gatedResponder struct {
	gate  chan struct{}
	reply string
}

func (g *gatedResponder) Respond(ctx context.Context, text string, p persona.Persona, history []sessionModel.Message) (string, error) {
	<-g.gate
	return g.reply, nil
}

func dialTestServer(t *testing.T) (*websocket.Conn, *sessionservice.Service) {
	t.Helper()
	engine := respond.NewEngine(respond.Config{
		Pick:     func(n int) int { return 0 },
		DelayMin: 0,
		DelayMax: 0,
	})
	return dialResponder(t, engine)
}

func dialResponder(t *testing.T, responder sessionservice.Responder) (*websocket.Conn, *sessionservice.Service) {
	t.Helper()

	svc := sessionservice.NewService(responder, feeling.NewMemoryStore(feeling.Seed()))

	r := chi.NewRouter()
	NewWebSocketHandler(svc).RegisterRoutes(r)

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/chat/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	return conn, svc
}

func readMessage(t *testing.T, conn *websocket.Conn) outgoingMessage {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg outgoingMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read: %v", err)
	}
	return msg
}

func TestWebSocketChatExchange(t *testing.T) {
	conn, svc := dialTestServer(t)

	if _, err := svc.Start(context.Background(), "算数の文章問題", persona.Seed()[0]); err != nil {
		t.Fatalf("start: %v", err)
	}

	if err := conn.WriteJSON(inboundMessage{Type: "message", Text: "こんにちは"}); err != nil {
		t.Fatalf("write: %v", err)
	}

	if msg := readMessage(t, conn); msg.Type != "message" {
		t.Fatalf("expected user message echo, got %s", msg.Type)
	}
	if msg := readMessage(t, conn); msg.Type != "typing" {
		t.Fatalf("expected typing notice, got %s", msg.Type)
	}
	if msg := readMessage(t, conn); msg.Type != "message" {
		t.Fatalf("expected partner reply, got %s", msg.Type)
	}

	snapshot, err := svc.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if len(snapshot.Messages) != 2 {
		t.Fatalf("expected 2 messages in log, got %d", len(snapshot.Messages))
	}
	if snapshot.Messages[1].Sender != sessionModel.SenderPartner {
		t.Fatalf("expected partner reply in log, got %s", snapshot.Messages[1].Sender)
	}
}

func TestWebSocketRejectsWithoutSession(t *testing.T) {
	conn, _ := dialTestServer(t)

	if err := conn.WriteJSON(inboundMessage{Type: "message", Text: "こんにちは"}); err != nil {
		t.Fatalf("write: %v", err)
	}

	if msg := readMessage(t, conn); msg.Type != "rejected" {
		t.Fatalf("expected rejection, got %s", msg.Type)
	}
}

func TestWebSocketFinish(t *testing.T) {
	conn, svc := dialTestServer(t)

	if _, err := svc.Start(context.Background(), "算数の文章問題", persona.Seed()[0]); err != nil {
		t.Fatalf("start: %v", err)
	}

	if err := conn.WriteJSON(inboundMessage{Type: "finish"}); err != nil {
		t.Fatalf("write: %v", err)
	}

	if msg := readMessage(t, conn); msg.Type != "finished" {
		t.Fatalf("expected finished, got %s", msg.Type)
	}

	snapshot, err := svc.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if snapshot.State != sessionModel.StateCompleted {
		t.Fatalf("expected completed state, got %s", snapshot.State)
	}
}

// The read loop must keep serving while a reply is still in flight: a
// learner can press finish mid-think and the partner message arrives after.
func TestWebSocketFinishWhileThinking(t *testing.T) {
	responder := &gatedResponder{gate: make(chan struct{}), reply: "その調子です！"}
	conn, svc := dialResponder(t, responder)

	if _, err := svc.Start(context.Background(), "算数の文章問題", persona.Seed()[0]); err != nil {
		t.Fatalf("start: %v", err)
	}

	if err := conn.WriteJSON(inboundMessage{Type: "message", Text: "こんにちは"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if msg := readMessage(t, conn); msg.Type != "message" {
		t.Fatalf("expected user message echo, got %s", msg.Type)
	}
	if msg := readMessage(t, conn); msg.Type != "typing" {
		t.Fatalf("expected typing notice, got %s", msg.Type)
	}

	// The reply is still gated; finish must go through immediately.
	if err := conn.WriteJSON(inboundMessage{Type: "finish"}); err != nil {
		t.Fatalf("write finish: %v", err)
	}
	if msg := readMessage(t, conn); msg.Type != "finished" {
		t.Fatalf("expected finished while reply pending, got %s", msg.Type)
	}

	close(responder.gate)
	if msg := readMessage(t, conn); msg.Type != "message" {
		t.Fatalf("expected late partner reply, got %s", msg.Type)
	}
}

func TestWebSocketUnknownType(t *testing.T) {
	conn, _ := dialTestServer(t)

	if err := conn.WriteJSON(inboundMessage{Type: "mystery"}); err != nil {
		t.Fatalf("write: %v", err)
	}

	if msg := readMessage(t, conn); msg.Type != "error" {
		t.Fatalf("expected error, got %s", msg.Type)
	}
}

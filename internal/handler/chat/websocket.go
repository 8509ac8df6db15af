package chat

import (
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	sessionService "github.com/sakura-edu/aichan-hiroba/backend/internal/service/session"
)

// WebSocketHandler runs the live chat channel: the client sends user
// messages over one connection and receives typing notices and partner
// replies on the same connection.
type WebSocketHandler struct {
	sessionSvc *sessionService.Service
	upgrader   websocket.Upgrader
}

// NewWebSocketHandler creates the websocket chat handler.
func NewWebSocketHandler(sessionSvc *sessionService.Service) *WebSocketHandler {
	return &WebSocketHandler{
		sessionSvc: sessionSvc,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes mounts the websocket route.
func (h *WebSocketHandler) RegisterRoutes(r chi.Router) {
	r.Get("/chat/ws", h.handleWebSocket)
}

type inboundMessage struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

type outgoingMessage struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data,omitempty"`
	Error     string      `json:"error,omitempty"`
	Timestamp int64       `json:"timestamp"`
}

// wsConn serializes writes: the read loop and the reply-delivery goroutine
// both push events onto the same connection.
type wsConn struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *wsConn) send(msg outgoingMessage) {
	msg.Timestamp = time.Now().UnixMilli()

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.conn.WriteJSON(msg); err != nil {
		log.Printf("[ws] write failed: %v", err)
	}
}

func (h *WebSocketHandler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[ws] upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	log.Printf("[ws] chat channel opened from %s", r.RemoteAddr)
	wc := &wsConn{conn: conn}

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[ws] read error: %v", err)
			}
			return
		}

		switch inbound.Type {
		case "message":
			h.handleUserMessage(r, wc, inbound.Text)
		case "finish":
			h.handleFinish(r, wc)
		default:
			wc.send(outgoingMessage{Type: "error", Error: "unknown message type"})
		}
	}
}

// handleUserMessage appends the user message and hands the pending reply to
// a delivery goroutine, so the read loop stays responsive while the partner
// is thinking. The service's single in-flight gate keeps the log ordering
// strict.
func (h *WebSocketHandler) handleUserMessage(r *http.Request, wc *wsConn, text string) {
	userMsg, replies, err := h.sessionSvc.Send(r.Context(), text)
	if err != nil {
		wc.send(outgoingMessage{Type: "rejected", Error: err.Error()})
		return
	}

	wc.send(outgoingMessage{Type: "message", Data: userMsg})
	wc.send(outgoingMessage{Type: "typing"})

	go h.deliverReply(wc, replies)
}

func (h *WebSocketHandler) deliverReply(wc *wsConn, replies <-chan sessionService.Reply) {
	reply, open := <-replies
	if !open {
		// Session discarded while the partner was thinking.
		wc.send(outgoingMessage{Type: "dropped"})
		return
	}
	if reply.Err != nil {
		wc.send(outgoingMessage{Type: "error", Error: "reply generation failed"})
		return
	}

	wc.send(outgoingMessage{Type: "message", Data: reply.Message})
}

func (h *WebSocketHandler) handleFinish(r *http.Request, wc *wsConn) {
	snapshot, err := h.sessionSvc.Finish(r.Context())
	if err != nil {
		if errors.Is(err, sessionService.ErrNoSession) || errors.Is(err, sessionService.ErrNotInProgress) {
			wc.send(outgoingMessage{Type: "rejected", Error: err.Error()})
			return
		}
		wc.send(outgoingMessage{Type: "error", Error: err.Error()})
		return
	}

	wc.send(outgoingMessage{Type: "finished", Data: snapshot})
}

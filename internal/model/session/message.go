package session

import "time"

// Sender identifies who authored a message.
type Sender string

const (
	SenderUser    Sender = "user"
	SenderPartner Sender = "partner"
)

// Message is one turn of the conversation. Messages are append-only and
// never edited after creation.
type Message struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Sender    Sender    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
}

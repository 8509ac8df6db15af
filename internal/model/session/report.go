package session

import "github.com/sakura-edu/aichan-hiroba/backend/internal/model/feeling"

// Report is the printable reflection document assembled once the learner
// has confirmed their feeling tags.
type Report struct {
	Task            string            `json:"task"`
	PartnerName     string            `json:"partnerName"`
	PartnerAvatar   string            `json:"partnerAvatar"`
	Summary         string            `json:"summary"`
	Feelings        []feeling.Feeling `json:"feelings"`
	DurationMinutes int               `json:"durationMinutes"`
	MessageCount    int               `json:"messageCount"`
}

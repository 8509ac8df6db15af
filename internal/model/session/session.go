package session

import (
	"time"

	"github.com/sakura-edu/aichan-hiroba/backend/internal/model/persona"
)

// State tracks where a session is in the start → chat → report flow. The
// "not started" phase is represented by the absence of a live session.
type State string

const (
	StateInProgress      State = "in_progress"
	StateCompleted       State = "completed"
	StateReportGenerated State = "report_generated"
)

// MaxFeelings caps how many reflection tags a learner may pick.
const MaxFeelings = 2

// Session is the complete record of one learning conversation, from task
// entry to the printed report.
type Session struct {
	ID         string          `json:"id"`
	Task       string          `json:"task"`
	Persona    persona.Persona `json:"persona"`
	Messages   []Message       `json:"messages"`
	StartTime  time.Time       `json:"startTime"`
	EndTime    *time.Time      `json:"endTime,omitempty"`
	Summary    string          `json:"summary,omitempty"`
	FeelingIDs []string        `json:"selectedFeelings"`
	State      State           `json:"state"`
}

// HasFeeling reports whether the given tag is currently selected.
func (s *Session) HasFeeling(id string) bool {
	for _, fid := range s.FeelingIDs {
		if fid == id {
			return true
		}
	}
	return false
}

// DurationMinutes returns the elapsed session time in whole minutes,
// flooring the seconds. Zero until the session is finished.
func (s *Session) DurationMinutes() int {
	if s.EndTime == nil {
		return 0
	}
	return int(s.EndTime.Sub(s.StartTime).Seconds()) / 60
}

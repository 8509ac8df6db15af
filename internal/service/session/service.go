package session

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sakura-edu/aichan-hiroba/backend/internal/analysis/summary"
	"github.com/sakura-edu/aichan-hiroba/backend/internal/model/feeling"
	"github.com/sakura-edu/aichan-hiroba/backend/internal/model/persona"
	"github.com/sakura-edu/aichan-hiroba/backend/internal/model/session"
)

var (
	ErrTaskRequired      = errors.New("task is required")
	ErrSessionActive     = errors.New("a session is already active")
	ErrNoSession         = errors.New("no active session")
	ErrNotInProgress     = errors.New("session is not in progress")
	ErrNotCompleted      = errors.New("session is not completed")
	ErrEmptyMessage      = errors.New("message text is required")
	ErrReplyPending      = errors.New("a reply is still pending")
	ErrNoFeelingSelected = errors.New("select at least one feeling")
)

// Responder produces the partner's reply to a user message, after the
// simulated thinking delay.
type Responder interface {
	Respond(ctx context.Context, text string, p persona.Persona, history []session.Message) (string, error)
}

// Reply delivers the asynchronous partner message for one Send call. The
// channel is closed without a value when the session was discarded before
// the reply resolved.
type Reply struct {
	Message session.Message
	Err     error
}

// Service owns the single live learning session and enforces the
// start → chat → finish → report state machine.
type Service struct {
	mu       sync.Mutex
	engine   Responder
	feelings feeling.Store

	current *session.Session
	report  *session.Report
	pending bool
	// gen changes whenever the live session does; in-flight replies carry
	// the gen they were dispatched under and are dropped on mismatch.
	gen uint64
}

// NewService bootstraps the in-memory session service.
func NewService(engine Responder, feelings feeling.Store) *Service {
	return &Service{engine: engine, feelings: feelings}
}

// Start creates the live session from a task and a chosen partner.
func (s *Service) Start(_ context.Context, task string, p persona.Persona) (session.Session, error) {
	task = strings.TrimSpace(task)
	if task == "" {
		return session.Session{}, ErrTaskRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil {
		return session.Session{}, ErrSessionActive
	}

	s.gen++
	s.current = &session.Session{
		ID:        uuid.NewString(),
		Task:      task,
		Persona:   p,
		Messages:  make([]session.Message, 0, 16),
		StartTime: time.Now().UTC(),
		State:     session.StateInProgress,
	}
	log.Printf("[session] started id=%s persona=%s", s.current.ID, p.ID)
	return s.snapshotLocked(), nil
}

// Send appends a user message and dispatches the partner reply. The reply
// resolves asynchronously on the returned channel after the thinking delay;
// only one reply may be in flight at a time.
func (s *Service) Send(_ context.Context, text string) (session.Message, <-chan Reply, error) {
	text = strings.TrimSpace(text)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return session.Message{}, nil, ErrNoSession
	}
	if s.current.State != session.StateInProgress {
		return session.Message{}, nil, ErrNotInProgress
	}
	if text == "" {
		return session.Message{}, nil, ErrEmptyMessage
	}
	if s.pending {
		return session.Message{}, nil, ErrReplyPending
	}

	userMsg := session.Message{
		ID:        uuid.NewString(),
		Text:      text,
		Sender:    session.SenderUser,
		Timestamp: time.Now().UTC(),
	}
	s.current.Messages = append(s.current.Messages, userMsg)
	s.pending = true

	history := make([]session.Message, len(s.current.Messages))
	copy(history, s.current.Messages)

	ch := make(chan Reply, 1)
	go s.dispatchReply(s.gen, text, s.current.Persona, history, ch)

	return userMsg, ch, nil
}

// dispatchReply runs off the caller's goroutine. It deliberately uses a
// background context: the reply outlives the HTTP request that sent the
// user message, and a discarded session drops it via the gen guard.
func (s *Service) dispatchReply(gen uint64, text string, p persona.Persona, history []session.Message, ch chan<- Reply) {
	defer close(ch)

	reply, err := s.engine.Respond(context.Background(), text, p, history)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.gen != gen {
		// Session was discarded while thinking; drop the reply.
		log.Printf("[session] dropping stale reply for persona=%s", p.ID)
		return
	}
	s.pending = false

	if err != nil {
		// The conversation simply goes without a partner message.
		log.Printf("[session] reply generation failed: %v", err)
		ch <- Reply{Err: err}
		return
	}

	partnerMsg := session.Message{
		ID:        uuid.NewString(),
		Text:      reply,
		Sender:    session.SenderPartner,
		Timestamp: time.Now().UTC(),
	}
	s.current.Messages = append(s.current.Messages, partnerMsg)
	ch <- Reply{Message: partnerMsg}
}

// Finish ends the chat phase, stamping the end time exactly once and
// generating the closing summary.
func (s *Service) Finish(_ context.Context) (session.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return session.Session{}, ErrNoSession
	}
	if s.current.State != session.StateInProgress {
		return session.Session{}, ErrNotInProgress
	}

	now := time.Now().UTC()
	s.current.EndTime = &now
	s.current.State = session.StateCompleted
	s.current.Summary = s.generateSummary()
	log.Printf("[session] finished id=%s messages=%d", s.current.ID, len(s.current.Messages))
	return s.snapshotLocked(), nil
}

// generateSummary never lets a summary failure block the flow; any panic
// degrades to the fixed fallback text.
func (s *Service) generateSummary() (text string) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[session] summary generation failed: %v", r)
			text = summary.Fallback
		}
	}()
	text = summary.Generate(s.current.Messages, s.current.Persona)
	if text == "" {
		text = summary.Fallback
	}
	return text
}

// ToggleFeeling flips a reflection tag on the completed session. Selecting
// a third tag while two are picked is a no-op.
func (s *Service) ToggleFeeling(_ context.Context, feelingID string) (session.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return session.Session{}, ErrNoSession
	}
	if s.current.State != session.StateCompleted {
		return session.Session{}, ErrNotCompleted
	}

	if s.current.HasFeeling(feelingID) {
		kept := s.current.FeelingIDs[:0]
		for _, id := range s.current.FeelingIDs {
			if id != feelingID {
				kept = append(kept, id)
			}
		}
		s.current.FeelingIDs = kept
	} else if len(s.current.FeelingIDs) < session.MaxFeelings {
		s.current.FeelingIDs = append(s.current.FeelingIDs, feelingID)
	}

	return s.snapshotLocked(), nil
}

// GenerateReport assembles the printable report and moves the session to
// its terminal state. At least one feeling tag must be selected.
func (s *Service) GenerateReport(_ context.Context) (session.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return session.Report{}, ErrNoSession
	}
	if s.current.State == session.StateReportGenerated && s.report != nil {
		return *s.report, nil
	}
	if s.current.State != session.StateCompleted {
		return session.Report{}, ErrNotCompleted
	}
	if len(s.current.FeelingIDs) == 0 {
		return session.Report{}, ErrNoFeelingSelected
	}

	selected := make([]feeling.Feeling, 0, len(s.current.FeelingIDs))
	for _, id := range s.current.FeelingIDs {
		if f, ok := s.feelings.FindByID(id); ok {
			selected = append(selected, f)
		}
	}

	report := session.Report{
		Task:            s.current.Task,
		PartnerName:     s.current.Persona.Name,
		PartnerAvatar:   s.current.Persona.Avatar,
		Summary:         s.current.Summary,
		Feelings:        selected,
		DurationMinutes: s.current.DurationMinutes(),
		MessageCount:    len(s.current.Messages),
	}
	s.current.State = session.StateReportGenerated
	s.report = &report
	return report, nil
}

// Report returns the generated report, if any.
func (s *Service) Report(_ context.Context) (session.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return session.Report{}, ErrNoSession
	}
	if s.report == nil {
		return session.Report{}, ErrNotCompleted
	}
	return *s.report, nil
}

// Reset discards the live session so a fresh one can start. Any in-flight
// reply resolves against a stale gen and is dropped.
func (s *Service) Reset(_ context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil {
		log.Printf("[session] discarded id=%s", s.current.ID)
	}
	s.gen++
	s.current = nil
	s.report = nil
	s.pending = false
}

// Snapshot returns a copy of the live session for rendering.
func (s *Service) Snapshot(_ context.Context) (session.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return session.Session{}, ErrNoSession
	}
	return s.snapshotLocked(), nil
}

// Pending reports whether a partner reply is still in flight.
func (s *Service) Pending(_ context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

func (s *Service) snapshotLocked() session.Session {
	snap := *s.current
	snap.Messages = make([]session.Message, len(s.current.Messages))
	copy(snap.Messages, s.current.Messages)
	snap.FeelingIDs = append([]string(nil), s.current.FeelingIDs...)
	return snap
}

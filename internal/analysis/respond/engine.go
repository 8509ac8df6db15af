package respond

import (
	"context"
	"math/rand"
	"strings"
	"time"

	"github.com/sakura-edu/aichan-hiroba/backend/internal/model/persona"
	"github.com/sakura-edu/aichan-hiroba/backend/internal/model/session"
)

// Marker tables shared with the summary engine. Matching is plain substring
// containment on the lowercased input, with no word-boundary checks.
var (
	greetingMarkers   = []string{"こんにちは", "はじめまして", "よろしく", "hello", "nice to meet you", "please help me"}
	confusionMarkers  = []string{"わからない", "難しい", "困った", "don't understand", "difficult", "stuck"}
	questionMarkers   = []string{"？", "?", "教えて", "explain", "teach me"}
	completionMarkers = []string{"できた", "終わった", "わかった", "done", "finished", "got it"}
)

// ContainsConfusionMarker reports whether text carries a difficulty marker.
func ContainsConfusionMarker(text string) bool {
	return containsAny(normalize(text), confusionMarkers)
}

// ContainsCompletionMarker reports whether text carries a completion marker.
func ContainsCompletionMarker(text string) bool {
	return containsAny(normalize(text), completionMarkers)
}

func normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

func containsAny(normalized string, markers []string) bool {
	for _, marker := range markers {
		if strings.Contains(normalized, marker) {
			return true
		}
	}
	return false
}

// Config tunes the engine.
type Config struct {
	// Pick returns a value in [0, n); injected by tests to pin choices.
	Pick func(n int) int
	// DelayMin/DelayMax bound the simulated thinking time. Zero disables
	// the wait; production defaults come from the config package.
	DelayMin time.Duration
	DelayMax time.Duration
}

// Engine selects canned partner replies from the persona phrase tables.
type Engine struct {
	pick     func(n int) int
	delayMin time.Duration
	delayMax time.Duration
}

// NewEngine builds an engine from cfg. A nil Pick falls back to the
// top-level math/rand source, which is safe for concurrent use; replies
// for overlapping sessions may draw from it at the same time.
func NewEngine(cfg Config) *Engine {
	pick := cfg.Pick
	if pick == nil {
		pick = rand.Intn
	}
	delayMin, delayMax := cfg.DelayMin, cfg.DelayMax
	if delayMax < delayMin {
		delayMax = delayMin
	}
	return &Engine{pick: pick, delayMin: delayMin, delayMax: delayMax}
}

// Select classifies text against the marker tables in fixed priority order
// (greeting, confusion, question, completion) and draws a reply from the
// matching category of the persona's phrase table. Unmatched input draws
// from the union of encouragement, question, and explanation phrases.
// The history argument is part of the contract but does not influence
// selection; only the latest utterance is classified.
func (e *Engine) Select(text string, p persona.Persona, history []session.Message) string {
	_ = history
	set := PhrasesFor(p.ID)
	normalized := normalize(text)

	switch {
	case containsAny(normalized, greetingMarkers):
		return e.choose(set.Greeting)
	case containsAny(normalized, confusionMarkers):
		return e.choose(set.Encouragement) + " " + e.choose(set.Question)
	case containsAny(normalized, questionMarkers):
		return e.choose(set.Explanation)
	case containsAny(normalized, completionMarkers):
		return e.choose(set.Praise)
	}

	pool := make([]string, 0, len(set.Encouragement)+len(set.Question)+len(set.Explanation))
	pool = append(pool, set.Encouragement...)
	pool = append(pool, set.Question...)
	pool = append(pool, set.Explanation...)
	return e.choose(pool)
}

// Respond runs Select and then waits out the simulated thinking delay.
// A cancelled context aborts the wait; the caller drops the reply.
func (e *Engine) Respond(ctx context.Context, text string, p persona.Persona, history []session.Message) (string, error) {
	reply := e.Select(text, p, history)

	if d := e.thinkDelay(); d > 0 {
		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-timer.C:
		}
	}
	return reply, nil
}

func (e *Engine) choose(phrases []string) string {
	if len(phrases) == 0 {
		return ""
	}
	return phrases[e.pick(len(phrases))]
}

func (e *Engine) thinkDelay() time.Duration {
	span := e.delayMax - e.delayMin
	if span <= 0 {
		return e.delayMin
	}
	steps := int(span/time.Millisecond) + 1
	return e.delayMin + time.Duration(e.pick(steps))*time.Millisecond
}

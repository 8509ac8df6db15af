// Package summary turns a finished conversation into the closing message
// shown on the reflection screen. Generation is deterministic: the same
// message log always yields the same text.
package summary

import (
	"strings"

	"github.com/sakura-edu/aichan-hiroba/backend/internal/analysis/respond"
	"github.com/sakura-edu/aichan-hiroba/backend/internal/model/persona"
	"github.com/sakura-edu/aichan-hiroba/backend/internal/model/session"
)

// Fallback is substituted when summary generation fails for any reason.
const Fallback = "一生懸命に学習に取り組んでいました！"

// activeThreshold is the user-message count at which the learner is called
// an active participant.
const activeThreshold = 5

const (
	clauseEngaged   = "たくさんの質問をして、積極的に学習に取り組んでいましたね！"
	clausePersisted = "最初は「難しい」と言っていましたが、最後まで諦めずに頑張りました！"
	clauseCompleted = "課題を最後までやり遂げることができました！"
)

// Generate builds the closing narrative from the message log. The persona
// argument is part of the contract but the current rule set does not vary
// the text by partner. Clauses are evaluated independently and joined in a
// fixed order regardless of which conditions fired.
func Generate(messages []session.Message, p persona.Persona) string {
	_ = p

	var userMessages []session.Message
	for _, m := range messages {
		if m.Sender == session.SenderUser {
			userMessages = append(userMessages, m)
		}
	}

	var clauses []string

	if len(userMessages) >= activeThreshold {
		clauses = append(clauses, clauseEngaged)
	}

	for _, m := range userMessages {
		if respond.ContainsConfusionMarker(m.Text) {
			clauses = append(clauses, clausePersisted)
			break
		}
	}

	for _, m := range userMessages {
		if respond.ContainsCompletionMarker(m.Text) {
			clauses = append(clauses, clauseCompleted)
			break
		}
	}

	if len(clauses) == 0 {
		clauses = append(clauses, Fallback)
	}

	return strings.Join(clauses, " ")
}

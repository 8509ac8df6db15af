package hint

// Hint is a starter question the chat screen offers when the learner is
// unsure what to type.
type Hint struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Emoji string `json:"emoji"`
}

// Seed provides the fixed hint-question catalog shown on the chat screen.
func Seed() []Hint {
	return []Hint{
		{ID: "how-to-start", Text: "どこから始めればいいですか？", Emoji: "🚀"},
		{ID: "give-hint", Text: "ヒントをください！", Emoji: "💡"},
		{ID: "show-example", Text: "例を見せてください", Emoji: "📝"},
		{ID: "is-this-right", Text: "これで合っていますか？", Emoji: "🤔"},
		{ID: "explain-again", Text: "もう一度教えてください", Emoji: "🔁"},
	}
}

package feeling

// Feeling is a reflection tag the learner attaches to a finished session.
type Feeling struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Emoji string `json:"emoji"`
}

// Seed provides the fixed reflection-tag catalog.
func Seed() []Feeling {
	return []Feeling{
		{ID: "many-questions", Label: "たくさん質問した", Emoji: "❓"},
		{ID: "never-gave-up", Label: "あきらめなかった", Emoji: "💪"},
		{ID: "good-ideas", Label: "いいこと思いついた", Emoji: "💡"},
		{ID: "worked-hard", Label: "一生懸命がんばった", Emoji: "⭐"},
		{ID: "helped-others", Label: "友達を助けられた", Emoji: "🤝"},
		{ID: "enjoyed-learning", Label: "楽しく学べた", Emoji: "😊"},
	}
}

// Store exposes feeling retrieval for HTTP handlers.
type Store interface {
	List() []Feeling
	FindByID(id string) (Feeling, bool)
}

// MemoryStore implements Store with an in-memory slice.
type MemoryStore struct {
	items []Feeling
}

// NewMemoryStore returns a MemoryStore preloaded with the supplied feelings.
func NewMemoryStore(items []Feeling) *MemoryStore {
	return &MemoryStore{items: append([]Feeling(nil), items...)}
}

// List returns the predefined feeling list.
func (s *MemoryStore) List() []Feeling {
	return append([]Feeling(nil), s.items...)
}

// FindByID looks up a feeling by identifier.
func (s *MemoryStore) FindByID(id string) (Feeling, bool) {
	for _, item := range s.items {
		if item.ID == id {
			return item, true
		}
	}
	return Feeling{}, false
}

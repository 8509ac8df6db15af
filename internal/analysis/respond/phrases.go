package respond

// PhraseSet groups a partner's candidate replies by category.
type PhraseSet struct {
	Greeting      []string
	Encouragement []string
	Question      []string
	Explanation   []string
	Praise        []string
}

// phrasesByPersona holds the per-partner reply tables. Text is intentionally
// hardcoded Japanese, matching the product copy.
var phrasesByPersona = map[string]PhraseSet{
	"robo-kun": {
		Greeting:      []string{"こんにちは！", "よろしくお願いします！", "一緒に頑張りましょう！"},
		Encouragement: []string{"その調子です！", "よく頑張っていますね！", "もう少しです！"},
		Question:      []string{"どう思いますか？", "他に方法はありますか？", "どこが難しいですか？"},
		Explanation:   []string{"詳しく説明しますね。", "順番に考えていきましょう。", "ポイントを整理してみましょう。"},
		Praise:        []string{"素晴らしいです！", "よくできました！", "完璧です！"},
	},
	"kotori-chan": {
		Greeting:      []string{"はーい！", "こんにちは〜", "よろしくね！"},
		Encouragement: []string{"大丈夫だよ〜", "ゆっくりでいいのよ", "一緒に頑張ろうね！"},
		Question:      []string{"どうかな？", "困ったことはある？", "もっと教えて〜"},
		Explanation:   []string{"わかりやすく説明するね", "一緒に考えてみよう", "ゆっくり進めようね"},
		Praise:        []string{"すごいね〜！", "よく頑張ったね！", "やったね！"},
	},
	"sensei-san": {
		Greeting:      []string{"こんにちは！", "よろしくお願いします！", "一緒に学びましょう！"},
		Encouragement: []string{"その調子です！", "よく頑張っています！", "もう一歩です！"},
		Question:      []string{"どう考えますか？", "他にアプローチはありますか？", "どこでつまずいていますか？"},
		Explanation:   []string{"詳しく説明しましょう。", "段階的に考えていきましょう。", "重要なポイントを押さえましょう。"},
		Praise:        []string{"素晴らしい理解です！", "よくできました！", "完璧な解答です！"},
	},
}

// genericPhrases is the fallback table for unrecognized persona ids.
var genericPhrases = PhraseSet{
	Greeting:      []string{"こんにちは！", "よろしく！"},
	Encouragement: []string{"頑張ろう！", "その調子！"},
	Question:      []string{"どう思う？", "他には？"},
	Explanation:   []string{"説明するね", "一緒に考えよう"},
	Praise:        []string{"すごい！", "よくできた！"},
}

// PhrasesFor returns the reply table for a persona id, falling back to the
// generic table for unknown ids.
func PhrasesFor(personaID string) PhraseSet {
	if set, ok := phrasesByPersona[personaID]; ok {
		return set
	}
	return genericPhrases
}

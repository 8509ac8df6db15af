package persona

// Persona captures a learning-partner character as exposed to the frontend.
type Persona struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Character   string `json:"character"`
	Avatar      string `json:"avatar"`
	Personality string `json:"personality"`
}

// Seed provides the fixed partner catalog required by the product spec.
func Seed() []Persona {
	return []Persona{
		{
			ID:          "robo-kun",
			Name:        "ロボくん",
			Character:   "しっかり者",
			Avatar:      "🤖",
			Personality: "論理的で丁寧に説明してくれる、頼りになるパートナーです。難しい問題も一緒に解決しましょう！",
		},
		{
			ID:          "kotori-chan",
			Name:        "ことりちゃん",
			Character:   "優しい",
			Avatar:      "🐦",
			Personality: "優しくて親しみやすい、励まし上手なパートナーです。わからないことがあっても安心して聞いてくださいね！",
		},
		{
			ID:          "sensei-san",
			Name:        "せんせいさん",
			Character:   "先生",
			Avatar:      "👨‍🏫",
			Personality: "経験豊富で、わかりやすく教えてくれる先生のようなパートナーです。学習のコツも教えてくれます！",
		},
	}
}

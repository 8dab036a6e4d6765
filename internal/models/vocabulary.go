package model

import "time"

// Statuts de progression d'un mot pour un utilisateur.
// L'absence de ligne user_vocabulary signifie "new" - ce statut n'est
// jamais stocké en base, il est dérivé
const (
	StatusNew      = "new"
	StatusLearning = "learning"
	StatusMastered = "mastered"
)

type VocabularyItem struct {
	ID             string    `json:"id,omitempty"`
	HSKLevel       int       `json:"hskLevel"`
	Hanzi          string    `json:"hanzi"`
	Pinyin         string    `json:"pinyin"`
	Meaning        string    `json:"meaning"`
	AudioURL       string    `json:"audioUrl,omitempty"`
	Example        string    `json:"example,omitempty"`
	ExamplePinyin  string    `json:"examplePinyin,omitempty"`
	ExampleMeaning string    `json:"exampleMeaning,omitempty"`
	CreatedAt      time.Time `json:"createdAt,omitempty"`
}

// UserProgress est la ligne user_vocabulary d'un couple (utilisateur, mot)
type UserProgress struct {
	UserID       string    `json:"userId,omitempty"`
	VocabID      string    `json:"vocabId,omitempty"`
	Status       string    `json:"status"`
	MasteryScore *float64  `json:"masteryScore,omitempty"`
	LastReviewed time.Time `json:"lastReviewed,omitempty"`
}

// VocabularyWithProgress associe un mot à la progression de l'appelant.
// Progress est nil pour un mot "new"
type VocabularyWithProgress struct {
	VocabularyItem
	Progress *UserProgress `json:"userProgress"`
}

// ProgressRow est la projection minimale (user_id, status) utilisée par
// les agrégations du dashboard et du classement
type ProgressRow struct {
	UserID string
	Status string
}

// LeveledProgressRow ajoute le niveau HSK du mot, pour la ventilation par niveau
type LeveledProgressRow struct {
	Status   string
	HSKLevel int
}

package model

import "time"

// DashboardStats contient toutes les statistiques pour le dashboard admin
type DashboardStats struct {
	TotalUsers       int `json:"totalUsers"`
	NewUsersToday    int `json:"newUsersToday"`
	NewUsersThisWeek int `json:"newUsersThisWeek"`
	TotalVocabulary  int `json:"totalVocabulary"`
	TotalMastered    int `json:"totalMastered"`
	TotalLearning    int `json:"totalLearning"`

	HSKDistribution []LevelCount `json:"hskDistribution"`
	TopLearners     []TopLearner `json:"topLearners"`
	RecentUsers     []RecentUser `json:"recentUsers"`

	GeneratedAt time.Time `json:"generatedAt"`
}

// LevelCount est un point de l'histogramme utilisateurs par niveau HSK
type LevelCount struct {
	Level int `json:"level"`
	Count int `json:"count"`
}

type TopLearner struct {
	ID        string `json:"id"`
	FullName  string `json:"fullName"`
	AvatarURL string `json:"avatarUrl,omitempty"`
	Mastered  int    `json:"mastered"`
	Learning  int    `json:"learning"`
}

type RecentUser struct {
	ID        string    `json:"id"`
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
	AvatarURL string    `json:"avatarUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// RankedUser est une entrée du classement général
type RankedUser struct {
	ID              string `json:"id"`
	FullName        string `json:"fullName"`
	AvatarURL       string `json:"avatarUrl,omitempty"`
	CurrentHSKLevel int    `json:"currentHskLevel"`
	Mastered        int    `json:"mastered"`
	Learning        int    `json:"learning"`
	TotalKnown      int    `json:"totalKnown"`
}

// Rankings est la réponse complète du classement, avec l'identifiant de
// l'appelant pour le surlignage "c'est moi" côté client
type Rankings struct {
	Rankings      []RankedUser `json:"rankings"`
	CurrentUserID string       `json:"currentUserId,omitempty"`
}

// BucketStats est la ventilation d'un bucket de niveaux pour un utilisateur.
// Invariant: New = Total - Mastered - Learning
type BucketStats struct {
	Bucket   string `json:"bucket"`
	Total    int    `json:"total"`
	Mastered int    `json:"mastered"`
	Learning int    `json:"learning"`
	New      int    `json:"new"`
}

// Package game implémente les trois mini-jeux (association, memory,
// bataille de frappe) sous forme de machines à états pures. Les parties
// sont éphémères: aucun état n'est persisté, seul l'upsert de progression
// du flux flashcards écrit en base
package game

// Word est la projection d'un mot de vocabulaire utilisée par les jeux
type Word struct {
	ID       string `json:"id"`
	Hanzi    string `json:"hanzi"`
	Pinyin   string `json:"pinyin"`
	Meaning  string `json:"meaning"`
	HSKLevel int    `json:"hskLevel"`
}

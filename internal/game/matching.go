package game

import (
	"fmt"
	"time"
)

// Constantes du jeu d'association hanzi / signification
const (
	MatchingWordsPerRound = 5
	MatchingBaseScore     = 100
	MatchingComboBonus    = 20

	// Délai visuel avant que la paire fausse ne revienne à l'état neutre.
	// Le moteur expose la valeur; l'application du délai appartient au client
	MatchingWrongRevertDelay = 600 * time.Millisecond
)

// États possibles d'une carte du jeu d'association
const (
	CardNeutral  = "neutral"
	CardSelected = "selected"
	CardMatched  = "matched"
	CardWrong    = "wrong"
)

// Côtés sélectionnables
const (
	SideLeft  = "left"  // colonne hanzi
	SideRight = "right" // colonne significations
)

// MatchingGame est la machine à états du jeu d'association. Une manche
// contient MatchingWordsPerRound paires; la partie se termine quand toutes
// les manches sont épuisées
type MatchingGame struct {
	allWords []Word
	round    int // 1-based
	words    []Word

	matched       map[string]bool
	selectedLeft  string
	selectedRight string
	wrongLeft     string
	wrongRight    string

	score         int
	combo         int
	roundComplete bool
	allComplete   bool
}

// PickResult décrit l'issue d'une sélection
type PickResult struct {
	Matched       bool `json:"matched"`
	Wrong         bool `json:"wrong"`
	Score         int  `json:"score"`
	Combo         int  `json:"combo"`
	RoundComplete bool `json:"roundComplete"`
	AllComplete   bool `json:"allComplete"`
}

// MatchingState est la vue sérialisable de la partie
type MatchingState struct {
	Round       int               `json:"round"`
	TotalRounds int               `json:"totalRounds"`
	Words       []Word            `json:"words"`
	LeftStates  map[string]string `json:"leftStates"`
	RightStates map[string]string `json:"rightStates"`
	Score       int               `json:"score"`
	Combo       int               `json:"combo"`
	Matched     int               `json:"matchedPairs"`

	RoundComplete bool `json:"roundComplete"`
	AllComplete   bool `json:"allComplete"`
}

// NewMatchingGame démarre une partie sur l'ensemble de mots fourni
// (déjà mélangé par l'appelant)
func NewMatchingGame(words []Word) (*MatchingGame, error) {
	if len(words) == 0 {
		return nil, fmt.Errorf("no words to play with")
	}
	g := &MatchingGame{allWords: words}
	g.startRound(1)
	return g, nil
}

func (g *MatchingGame) startRound(round int) {
	start := (round - 1) * MatchingWordsPerRound
	end := start + MatchingWordsPerRound
	if end > len(g.allWords) {
		end = len(g.allWords)
	}
	g.round = round
	g.words = g.allWords[start:end]
	g.matched = make(map[string]bool)
	g.selectedLeft, g.selectedRight = "", ""
	g.wrongLeft, g.wrongRight = "", ""
	g.roundComplete = false
}

// TotalRounds retourne le nombre de manches de la partie
func (g *MatchingGame) TotalRounds() int {
	return (len(g.allWords) + MatchingWordsPerRound - 1) / MatchingWordsPerRound
}

func (g *MatchingGame) inRound(id string) bool {
	for _, w := range g.words {
		if w.ID == id {
			return true
		}
	}
	return false
}

// Pick sélectionne une carte d'un côté. Quand les deux côtés sont
// sélectionnés la paire est résolue immédiatement: bonne paire -> matched,
// score += base + combo*bonus puis combo incrémente; mauvaise paire ->
// combo remis à zéro, les deux cartes passent en "wrong" et reviendront
// à l'état neutre à la prochaine sélection
func (g *MatchingGame) Pick(side, id string) (PickResult, error) {
	if g.allComplete {
		return PickResult{}, fmt.Errorf("game is already complete")
	}
	if g.roundComplete {
		return PickResult{}, fmt.Errorf("round is complete, advance to the next round")
	}
	if !g.inRound(id) {
		return PickResult{}, fmt.Errorf("word %s is not part of the current round", id)
	}
	if g.matched[id] {
		return PickResult{}, fmt.Errorf("word %s is already matched", id)
	}

	// Une paire fausse en attente revient au neutre dès l'action suivante
	g.wrongLeft, g.wrongRight = "", ""

	switch side {
	case SideLeft:
		g.selectedLeft = id
	case SideRight:
		g.selectedRight = id
	default:
		return PickResult{}, fmt.Errorf("invalid side %q", side)
	}

	if g.selectedLeft == "" || g.selectedRight == "" {
		return g.result(false, false), nil
	}

	// Les deux côtés sont sélectionnés: résolution
	if g.selectedLeft == g.selectedRight {
		g.matched[g.selectedLeft] = true
		g.score += MatchingBaseScore + g.combo*MatchingComboBonus
		g.combo++
		g.selectedLeft, g.selectedRight = "", ""

		if len(g.matched) == len(g.words) {
			g.roundComplete = true
			if g.round >= g.TotalRounds() {
				g.allComplete = true
			}
		}
		return g.result(true, false), nil
	}

	g.wrongLeft, g.wrongRight = g.selectedLeft, g.selectedRight
	g.selectedLeft, g.selectedRight = "", ""
	g.combo = 0
	return g.result(false, true), nil
}

// ResolveWrong remet explicitement la paire fausse à l'état neutre,
// une fois le délai d'affichage écoulé côté client
func (g *MatchingGame) ResolveWrong() {
	g.wrongLeft, g.wrongRight = "", ""
}

// NextRound passe à la manche suivante
func (g *MatchingGame) NextRound() error {
	if !g.roundComplete {
		return fmt.Errorf("current round is not complete")
	}
	if g.allComplete {
		return fmt.Errorf("game is already complete")
	}
	g.startRound(g.round + 1)
	return nil
}

// Score retourne le score courant
func (g *MatchingGame) Score() int { return g.score }

// Combo retourne la série de bonnes réponses en cours
func (g *MatchingGame) Combo() int { return g.combo }

func (g *MatchingGame) result(matched, wrong bool) PickResult {
	return PickResult{
		Matched:       matched,
		Wrong:         wrong,
		Score:         g.score,
		Combo:         g.combo,
		RoundComplete: g.roundComplete,
		AllComplete:   g.allComplete,
	}
}

// State retourne la vue complète de la partie
func (g *MatchingGame) State() MatchingState {
	left := make(map[string]string, len(g.words))
	right := make(map[string]string, len(g.words))
	for _, w := range g.words {
		left[w.ID] = g.cardState(w.ID, SideLeft)
		right[w.ID] = g.cardState(w.ID, SideRight)
	}
	return MatchingState{
		Round:         g.round,
		TotalRounds:   g.TotalRounds(),
		Words:         g.words,
		LeftStates:    left,
		RightStates:   right,
		Score:         g.score,
		Combo:         g.combo,
		Matched:       len(g.matched),
		RoundComplete: g.roundComplete,
		AllComplete:   g.allComplete,
	}
}

func (g *MatchingGame) cardState(id, side string) string {
	if g.matched[id] {
		return CardMatched
	}
	if side == SideLeft {
		if g.wrongLeft == id {
			return CardWrong
		}
		if g.selectedLeft == id {
			return CardSelected
		}
	} else {
		if g.wrongRight == id {
			return CardWrong
		}
		if g.selectedRight == id {
			return CardSelected
		}
	}
	return CardNeutral
}

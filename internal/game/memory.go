package game

import (
	"fmt"
	"math/rand"
	"time"
)

// Constantes du jeu de memory
const (
	MemoryPairsPerRound = 8
	MemoryMatchScore    = 150

	// Délai visuel avant le retour facedown d'une paire fausse
	MemoryMismatchRevertDelay = 1000 * time.Millisecond
)

// États d'une carte de memory
const (
	CardFacedown = "facedown"
	CardFaceup   = "faceup"
)

// Faces d'une carte: hanzi ou signification
const (
	FaceHanzi   = "hanzi"
	FaceMeaning = "meaning"
)

// MemoryCard est une carte de la grille. Chaque mot de la manche produit
// deux cartes, une par face
type MemoryCard struct {
	UID    string `json:"uid"`
	WordID string `json:"wordId"`
	Face   string `json:"face"`
	Hanzi  string `json:"hanzi,omitempty"`
	Pinyin string `json:"pinyin,omitempty"`
	Text   string `json:"text"`
	State  string `json:"state"`
}

// MemoryGame est la machine à états du memory. Au plus deux cartes sont
// face visible en attente de résolution
type MemoryGame struct {
	allWords []Word
	round    int
	cards    []MemoryCard

	flipped  []int // indices des cartes face visible en attente
	checking bool

	matchedPairs int
	score        int

	roundComplete bool
	allComplete   bool
}

// FlipOutcome décrit l'issue d'un retournement
type FlipOutcome struct {
	// Checking vaut true entre le deuxième retournement et la résolution
	Checking      bool `json:"checking"`
	Matched       bool `json:"matched"`
	Mismatched    bool `json:"mismatched"`
	Score         int  `json:"score"`
	MatchedPairs  int  `json:"matchedPairs"`
	RoundComplete bool `json:"roundComplete"`
	AllComplete   bool `json:"allComplete"`
}

// MemoryState est la vue sérialisable de la partie
type MemoryState struct {
	Round         int          `json:"round"`
	TotalRounds   int          `json:"totalRounds"`
	Cards         []MemoryCard `json:"cards"`
	Score         int          `json:"score"`
	MatchedPairs  int          `json:"matchedPairs"`
	RoundPairs    int          `json:"roundPairs"`
	Checking      bool         `json:"checking"`
	RoundComplete bool         `json:"roundComplete"`
	AllComplete   bool         `json:"allComplete"`
}

// NewMemoryGame démarre une partie de memory sur l'ensemble de mots fourni
func NewMemoryGame(words []Word) (*MemoryGame, error) {
	if len(words) == 0 {
		return nil, fmt.Errorf("no words to play with")
	}
	g := &MemoryGame{allWords: words}
	g.startRound(1)
	return g, nil
}

func (g *MemoryGame) startRound(round int) {
	start := (round - 1) * MemoryPairsPerRound
	end := start + MemoryPairsPerRound
	if end > len(g.allWords) {
		end = len(g.allWords)
	}
	roundWords := g.allWords[start:end]

	cards := make([]MemoryCard, 0, len(roundWords)*2)
	for _, w := range roundWords {
		cards = append(cards,
			MemoryCard{
				UID:    w.ID + ":hanzi",
				WordID: w.ID,
				Face:   FaceHanzi,
				Hanzi:  w.Hanzi,
				Pinyin: w.Pinyin,
				Text:   w.Hanzi,
				State:  CardFacedown,
			},
			MemoryCard{
				UID:    w.ID + ":meaning",
				WordID: w.ID,
				Face:   FaceMeaning,
				Text:   w.Meaning,
				State:  CardFacedown,
			},
		)
	}
	rand.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})

	g.round = round
	g.cards = cards
	g.flipped = nil
	g.checking = false
	g.matchedPairs = 0
	g.roundComplete = false
}

// TotalRounds retourne le nombre de manches de la partie
func (g *MemoryGame) TotalRounds() int {
	return (len(g.allWords) + MemoryPairsPerRound - 1) / MemoryPairsPerRound
}

// RoundPairs retourne le nombre de paires de la manche courante
func (g *MemoryGame) RoundPairs() int {
	return len(g.cards) / 2
}

func (g *MemoryGame) cardIndex(uid string) int {
	for i := range g.cards {
		if g.cards[i].UID == uid {
			return i
		}
	}
	return -1
}

// Flip retourne une carte face visible. Le retournement est refusé tant
// qu'une paire est en cours de vérification. Au deuxième retournement la
// partie passe en "checking"; l'appelant doit résoudre avec Resolve
func (g *MemoryGame) Flip(uid string) (FlipOutcome, error) {
	if g.allComplete {
		return FlipOutcome{}, fmt.Errorf("game is already complete")
	}
	if g.roundComplete {
		return FlipOutcome{}, fmt.Errorf("round is complete, advance to the next round")
	}
	if g.checking {
		return FlipOutcome{}, fmt.Errorf("a pair is being checked")
	}

	idx := g.cardIndex(uid)
	if idx < 0 {
		return FlipOutcome{}, fmt.Errorf("unknown card %s", uid)
	}
	if g.cards[idx].State != CardFacedown {
		return FlipOutcome{}, fmt.Errorf("card %s is not facedown", uid)
	}

	g.cards[idx].State = CardFaceup
	g.flipped = append(g.flipped, idx)

	if len(g.flipped) == 2 {
		g.checking = true
	}

	return g.outcome(false, false), nil
}

// Resolve tranche la paire en cours de vérification: même mot sur deux
// faces différentes -> matched et score fixe; sinon les deux cartes
// reviennent facedown (après le délai d'affichage, côté client)
func (g *MemoryGame) Resolve() (FlipOutcome, error) {
	if !g.checking {
		return FlipOutcome{}, fmt.Errorf("no pair to resolve")
	}

	first, second := &g.cards[g.flipped[0]], &g.cards[g.flipped[1]]
	matched := first.WordID == second.WordID && first.Face != second.Face

	if matched {
		first.State = CardMatched
		second.State = CardMatched
		g.matchedPairs++
		g.score += MemoryMatchScore

		if g.matchedPairs == g.RoundPairs() {
			g.roundComplete = true
			if g.round >= g.TotalRounds() {
				g.allComplete = true
			}
		}
	} else {
		first.State = CardFacedown
		second.State = CardFacedown
	}

	g.flipped = nil
	g.checking = false

	return g.outcome(matched, !matched), nil
}

// NextRound passe à la manche suivante
func (g *MemoryGame) NextRound() error {
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
func (g *MemoryGame) Score() int { return g.score }

func (g *MemoryGame) outcome(matched, mismatched bool) FlipOutcome {
	return FlipOutcome{
		Checking:      g.checking,
		Matched:       matched,
		Mismatched:    mismatched,
		Score:         g.score,
		MatchedPairs:  g.matchedPairs,
		RoundComplete: g.roundComplete,
		AllComplete:   g.allComplete,
	}
}

// State retourne la vue de la partie. Le texte des cartes facedown n'est
// pas masqué: le client est seul juge de ce qu'il affiche
func (g *MemoryGame) State() MemoryState {
	cards := make([]MemoryCard, len(g.cards))
	copy(cards, g.cards)
	return MemoryState{
		Round:         g.round,
		TotalRounds:   g.TotalRounds(),
		Cards:         cards,
		Score:         g.score,
		MatchedPairs:  g.matchedPairs,
		RoundPairs:    g.RoundPairs(),
		Checking:      g.checking,
		RoundComplete: g.roundComplete,
		AllComplete:   g.allComplete,
	}
}

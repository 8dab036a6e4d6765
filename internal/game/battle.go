package game

import (
	"fmt"
	"strings"
)

// Constantes de la bataille de frappe
const (
	BattleWordsPerPage = 25
	BattleBaseScore    = 100
	BattleStreakBonus  = 10
)

// États de la partie
const (
	BattlePlaying = "playing"
	BattleVictory = "victory"
)

// BattleGame présente un mot à la fois: la signification est affichée,
// le joueur doit taper le hanzi attendu. La partie porte sur une page de
// mots; le score et la série survivent au changement de page
type BattleGame struct {
	words  []Word
	index  int
	score  int
	streak int
	state  string
}

// AttackOutcome décrit l'issue d'une tentative
type AttackOutcome struct {
	Hit      bool `json:"hit"`
	Score    int  `json:"score"`
	Streak   int  `json:"streak"`
	Advanced bool `json:"advanced"`
	Victory  bool `json:"victory"`
}

// BattleState est la vue sérialisable de la partie
type BattleState struct {
	Words       []Word `json:"words"`
	Index       int    `json:"index"`
	CurrentWord *Word  `json:"currentWord,omitempty"`
	Score       int    `json:"score"`
	Streak      int    `json:"streak"`
	GameState   string `json:"gameState"`
}

// NewBattleGame démarre une partie sur une page de mots
func NewBattleGame(words []Word) (*BattleGame, error) {
	if len(words) == 0 {
		return nil, fmt.Errorf("no words to play with")
	}
	return &BattleGame{words: words, state: BattlePlaying}, nil
}

// CurrentWord retourne le mot courant, nil si la partie est finie
func (g *BattleGame) CurrentWord() *Word {
	if g.state != BattlePlaying || g.index >= len(g.words) {
		return nil
	}
	w := g.words[g.index]
	return &w
}

// Attack compare la saisie au hanzi attendu, insensible à la casse pour
// les translittérations latines. Réussite: score += base + série*bonus,
// la série s'allonge et le mot suivant arrive. Échec: la série retombe à
// zéro et le mot reste courant
func (g *BattleGame) Attack(input string) (AttackOutcome, error) {
	if g.state != BattlePlaying {
		return AttackOutcome{}, fmt.Errorf("game is not in progress")
	}
	input = strings.TrimSpace(input)
	if input == "" {
		return AttackOutcome{}, fmt.Errorf("empty input")
	}

	expected := g.words[g.index].Hanzi
	if !strings.EqualFold(input, expected) {
		g.streak = 0
		return AttackOutcome{Score: g.score, Streak: g.streak}, nil
	}

	g.score += BattleBaseScore + g.streak*BattleStreakBonus
	g.streak++
	g.advance()

	return AttackOutcome{
		Hit:      true,
		Score:    g.score,
		Streak:   g.streak,
		Advanced: true,
		Victory:  g.state == BattleVictory,
	}, nil
}

// Skip abandonne le mot courant: aucun point, série remise à zéro,
// passage au mot suivant
func (g *BattleGame) Skip() (AttackOutcome, error) {
	if g.state != BattlePlaying {
		return AttackOutcome{}, fmt.Errorf("game is not in progress")
	}
	g.streak = 0
	g.advance()
	return AttackOutcome{
		Score:    g.score,
		Streak:   g.streak,
		Advanced: true,
		Victory:  g.state == BattleVictory,
	}, nil
}

func (g *BattleGame) advance() {
	if g.index < len(g.words)-1 {
		g.index++
	} else {
		g.state = BattleVictory
	}
}

// LoadPage recharge la partie sur une nouvelle page de mots. L'index
// repart à zéro, le score et la série sont conservés
func (g *BattleGame) LoadPage(words []Word) error {
	if len(words) == 0 {
		return fmt.Errorf("no words on this page")
	}
	g.words = words
	g.index = 0
	g.state = BattlePlaying
	return nil
}

// Score retourne le score courant
func (g *BattleGame) Score() int { return g.score }

// Streak retourne la série de bonnes réponses en cours
func (g *BattleGame) Streak() int { return g.streak }

// State retourne la vue de la partie
func (g *BattleGame) State() BattleState {
	return BattleState{
		Words:       g.words,
		Index:       g.index,
		CurrentWord: g.CurrentWord(),
		Score:       g.score,
		Streak:      g.streak,
		GameState:   g.state,
	}
}

package game

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeWords(n int) []Word {
	words := make([]Word, 0, n)
	for i := 1; i <= n; i++ {
		words = append(words, Word{
			ID:      fmt.Sprintf("w%d", i),
			Hanzi:   fmt.Sprintf("汉%d", i),
			Pinyin:  fmt.Sprintf("pin%d", i),
			Meaning: fmt.Sprintf("meaning %d", i),
		})
	}
	return words
}

// matchPair sélectionne le même mot des deux côtés
func matchPair(t *testing.T, g *MatchingGame, id string) PickResult {
	t.Helper()
	_, err := g.Pick(SideLeft, id)
	require.NoError(t, err)
	res, err := g.Pick(SideRight, id)
	require.NoError(t, err)
	return res
}

func TestNewMatchingGame_RequiresWords(t *testing.T) {
	_, err := NewMatchingGame(nil)
	assert.Error(t, err)
}

func TestMatchingGame_ComboScoring(t *testing.T) {
	g, err := NewMatchingGame(makeWords(5))
	require.NoError(t, err)

	res := matchPair(t, g, "w1")
	assert.True(t, res.Matched)
	assert.Equal(t, 100, res.Score)
	assert.Equal(t, 1, res.Combo)

	res = matchPair(t, g, "w2")
	assert.Equal(t, 220, res.Score) // 100 + (100 + 1*20)

	res = matchPair(t, g, "w3")
	assert.Equal(t, 360, res.Score) // + (100 + 2*20)
	assert.Equal(t, 3, res.Combo)
}

func TestMatchingGame_WrongPairResetsComboOnly(t *testing.T) {
	g, err := NewMatchingGame(makeWords(5))
	require.NoError(t, err)

	matchPair(t, g, "w1")
	matchPair(t, g, "w2")
	require.Equal(t, 220, g.Score())

	_, err = g.Pick(SideLeft, "w3")
	require.NoError(t, err)
	res, err := g.Pick(SideRight, "w4")
	require.NoError(t, err)

	assert.True(t, res.Wrong)
	assert.Equal(t, 0, res.Combo)
	assert.Equal(t, 220, res.Score) // le score ne redescend jamais

	state := g.State()
	assert.Equal(t, CardWrong, state.LeftStates["w3"])
	assert.Equal(t, CardWrong, state.RightStates["w4"])

	// La paire fausse revient au neutre dès la sélection suivante
	_, err = g.Pick(SideLeft, "w5")
	require.NoError(t, err)
	state = g.State()
	assert.Equal(t, CardNeutral, state.LeftStates["w3"])
	assert.Equal(t, CardNeutral, state.RightStates["w4"])
}

func TestMatchingGame_WrongThenMatchRestartsCombo(t *testing.T) {
	g, err := NewMatchingGame(makeWords(5))
	require.NoError(t, err)

	matchPair(t, g, "w1")
	_, err = g.Pick(SideLeft, "w2")
	require.NoError(t, err)
	_, err = g.Pick(SideRight, "w3")
	require.NoError(t, err)

	// Après l'erreur, la paire suivante repart au score de base
	res := matchPair(t, g, "w2")
	assert.Equal(t, 200, res.Score)
	assert.Equal(t, 1, res.Combo)
}

func TestMatchingGame_RoundsAndCompletion(t *testing.T) {
	g, err := NewMatchingGame(makeWords(7))
	require.NoError(t, err)
	assert.Equal(t, 2, g.TotalRounds())

	for i := 1; i <= 5; i++ {
		matchPair(t, g, fmt.Sprintf("w%d", i))
	}
	state := g.State()
	assert.True(t, state.RoundComplete)
	assert.False(t, state.AllComplete)

	// La manche terminée n'accepte plus de sélection
	_, err = g.Pick(SideLeft, "w1")
	assert.Error(t, err)

	require.NoError(t, g.NextRound())
	state = g.State()
	assert.Equal(t, 2, state.Round)
	assert.Len(t, state.Words, 2)

	matchPair(t, g, "w6")
	res := matchPair(t, g, "w7")
	assert.True(t, res.AllComplete)

	assert.Error(t, g.NextRound())
	_, err = g.Pick(SideLeft, "w6")
	assert.Error(t, err)
}

func TestMatchingGame_PickValidation(t *testing.T) {
	g, err := NewMatchingGame(makeWords(5))
	require.NoError(t, err)

	_, err = g.Pick("middle", "w1")
	assert.Error(t, err)

	_, err = g.Pick(SideLeft, "unknown")
	assert.Error(t, err)

	matchPair(t, g, "w1")
	_, err = g.Pick(SideLeft, "w1")
	assert.Error(t, err, "matched word cannot be picked again")
}

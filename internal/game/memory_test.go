package game

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMemoryGame_BuildsTwoCardsPerWord(t *testing.T) {
	g, err := NewMemoryGame(makeWords(3))
	require.NoError(t, err)

	state := g.State()
	assert.Len(t, state.Cards, 6)
	assert.Equal(t, 3, state.RoundPairs)

	faces := make(map[string]int)
	for _, c := range state.Cards {
		assert.Equal(t, CardFacedown, c.State)
		faces[c.Face]++
	}
	assert.Equal(t, 3, faces[FaceHanzi])
	assert.Equal(t, 3, faces[FaceMeaning])
}

func TestMemoryGame_MatchPair(t *testing.T) {
	g, err := NewMemoryGame(makeWords(2))
	require.NoError(t, err)

	out, err := g.Flip("w1:hanzi")
	require.NoError(t, err)
	assert.False(t, out.Checking)

	out, err = g.Flip("w1:meaning")
	require.NoError(t, err)
	assert.True(t, out.Checking)

	// Troisième carte refusée tant que la paire n'est pas résolue
	_, err = g.Flip("w2:hanzi")
	assert.Error(t, err)

	out, err = g.Resolve()
	require.NoError(t, err)
	assert.True(t, out.Matched)
	assert.Equal(t, MemoryMatchScore, out.Score)
	assert.Equal(t, 1, out.MatchedPairs)
}

func TestMemoryGame_MismatchRevertsFacedown(t *testing.T) {
	g, err := NewMemoryGame(makeWords(2))
	require.NoError(t, err)

	_, err = g.Flip("w1:hanzi")
	require.NoError(t, err)
	_, err = g.Flip("w2:meaning")
	require.NoError(t, err)

	out, err := g.Resolve()
	require.NoError(t, err)
	assert.True(t, out.Mismatched)
	assert.Zero(t, out.Score)

	for _, c := range g.State().Cards {
		assert.Equal(t, CardFacedown, c.State)
	}
}

func TestMemoryGame_SameWordBothFlipsRequired(t *testing.T) {
	g, err := NewMemoryGame(makeWords(1))
	require.NoError(t, err)

	_, err = g.Flip("w1:hanzi")
	require.NoError(t, err)

	// La même carte ne peut pas être retournée deux fois
	_, err = g.Flip("w1:hanzi")
	assert.Error(t, err)
}

func TestMemoryGame_RoundsAndCompletion(t *testing.T) {
	// 10 mots: une manche de 8 paires puis une manche de 2
	g, err := NewMemoryGame(makeWords(10))
	require.NoError(t, err)
	assert.Equal(t, 2, g.TotalRounds())
	assert.Equal(t, 8, g.RoundPairs())

	for i := 1; i <= 8; i++ {
		matchMemoryPair(t, g, fmt.Sprintf("w%d", i))
	}
	state := g.State()
	assert.True(t, state.RoundComplete)
	assert.False(t, state.AllComplete)
	assert.Equal(t, 8*MemoryMatchScore, state.Score)

	require.NoError(t, g.NextRound())
	assert.Equal(t, 2, g.RoundPairs())

	matchMemoryPair(t, g, "w9")
	matchMemoryPair(t, g, "w10")

	state = g.State()
	assert.True(t, state.AllComplete)
	assert.Equal(t, 10*MemoryMatchScore, state.Score)
	assert.Error(t, g.NextRound())
}

func matchMemoryPair(t *testing.T, g *MemoryGame, wordID string) {
	t.Helper()
	_, err := g.Flip(wordID + ":hanzi")
	require.NoError(t, err)
	_, err = g.Flip(wordID + ":meaning")
	require.NoError(t, err)
	out, err := g.Resolve()
	require.NoError(t, err)
	require.True(t, out.Matched)
}

func TestMemoryGame_ResolveWithoutPair(t *testing.T) {
	g, err := NewMemoryGame(makeWords(2))
	require.NoError(t, err)

	_, err = g.Resolve()
	assert.Error(t, err)

	_, err = g.Flip("w1:hanzi")
	require.NoError(t, err)
	_, err = g.Resolve()
	assert.Error(t, err, "one flipped card is not a pair")
}

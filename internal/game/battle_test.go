package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBattleGame_RequiresWords(t *testing.T) {
	_, err := NewBattleGame(nil)
	assert.Error(t, err)
}

func TestBattleGame_HitScoringAndStreak(t *testing.T) {
	g, err := NewBattleGame(makeWords(3))
	require.NoError(t, err)

	out, err := g.Attack("汉1")
	require.NoError(t, err)
	assert.True(t, out.Hit)
	assert.Equal(t, 100, out.Score)
	assert.Equal(t, 1, out.Streak)
	assert.True(t, out.Advanced)

	out, err = g.Attack("汉2")
	require.NoError(t, err)
	assert.Equal(t, 210, out.Score) // 100 + (100 + 1*10)
	assert.Equal(t, 2, out.Streak)
}

func TestBattleGame_MissKeepsCurrentWord(t *testing.T) {
	g, err := NewBattleGame(makeWords(2))
	require.NoError(t, err)

	_, err = g.Attack("汉1")
	require.NoError(t, err)
	require.Equal(t, 1, g.Streak())

	out, err := g.Attack("wrong")
	require.NoError(t, err)
	assert.False(t, out.Hit)
	assert.False(t, out.Advanced)
	assert.Equal(t, 0, out.Streak)
	assert.Equal(t, 100, out.Score)

	// Le mot courant n'a pas bougé
	require.NotNil(t, g.CurrentWord())
	assert.Equal(t, "w2", g.CurrentWord().ID)
}

func TestBattleGame_CaseInsensitiveInput(t *testing.T) {
	words := []Word{{ID: "w1", Hanzi: "nihao", Meaning: "hello"}}
	g, err := NewBattleGame(words)
	require.NoError(t, err)

	out, err := g.Attack("  NiHao ")
	require.NoError(t, err)
	assert.True(t, out.Hit)
	assert.True(t, out.Victory)
}

func TestBattleGame_EmptyInputRejected(t *testing.T) {
	g, err := NewBattleGame(makeWords(1))
	require.NoError(t, err)

	_, err = g.Attack("   ")
	assert.Error(t, err)
}

func TestBattleGame_SkipAdvancesAndResetsStreak(t *testing.T) {
	g, err := NewBattleGame(makeWords(3))
	require.NoError(t, err)

	_, err = g.Attack("汉1")
	require.NoError(t, err)
	require.Equal(t, 1, g.Streak())

	out, err := g.Skip()
	require.NoError(t, err)
	assert.True(t, out.Advanced)
	assert.Equal(t, 0, out.Streak)
	assert.Equal(t, 100, out.Score)
	assert.Equal(t, "w3", g.CurrentWord().ID)
}

func TestBattleGame_VictoryThenLoadPage(t *testing.T) {
	g, err := NewBattleGame(makeWords(2))
	require.NoError(t, err)

	_, err = g.Attack("汉1")
	require.NoError(t, err)
	out, err := g.Attack("汉2")
	require.NoError(t, err)
	assert.True(t, out.Victory)
	assert.Nil(t, g.CurrentWord())

	// Partie finie: plus d'attaque ni de skip
	_, err = g.Attack("汉1")
	assert.Error(t, err)
	_, err = g.Skip()
	assert.Error(t, err)

	// Une nouvelle page relance la partie, score et série conservés
	score, streak := g.Score(), g.Streak()
	require.NoError(t, g.LoadPage(makeWords(2)))

	state := g.State()
	assert.Equal(t, BattlePlaying, state.GameState)
	assert.Equal(t, 0, state.Index)
	assert.Equal(t, score, state.Score)
	assert.Equal(t, streak, state.Streak)
}

func TestBattleGame_LoadPageRequiresWords(t *testing.T) {
	g, err := NewBattleGame(makeWords(1))
	require.NoError(t, err)
	assert.Error(t, g.LoadPage(nil))
}

package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_SessionOwnership(t *testing.T) {
	m := NewManager()

	s, err := m.StartMatching("alice", makeWords(5))
	require.NoError(t, err)
	require.NotNil(t, s.Matching)

	got, err := m.Get(s.ID, "alice")
	require.NoError(t, err)
	assert.Same(t, s, got)

	// La partie d'Alice n'est pas jouable par Bob
	_, err = m.Get(s.ID, "bob")
	assert.Error(t, err)
}

func TestManager_UnknownSession(t *testing.T) {
	m := NewManager()
	_, err := m.Get("missing", "alice")
	assert.Error(t, err)
}

func TestManager_Delete(t *testing.T) {
	m := NewManager()

	s, err := m.StartBattle("alice", makeWords(3))
	require.NoError(t, err)

	m.Delete(s.ID)
	_, err = m.Get(s.ID, "alice")
	assert.Error(t, err)
}

func TestManager_OneEngineBySession(t *testing.T) {
	m := NewManager()

	s, err := m.StartMemory("alice", makeWords(4))
	require.NoError(t, err)

	assert.NotNil(t, s.Memory)
	assert.Nil(t, s.Matching)
	assert.Nil(t, s.Battle)
}

func TestManager_StartRejectsEmptyWordSet(t *testing.T) {
	m := NewManager()

	_, err := m.StartMatching("alice", nil)
	assert.Error(t, err)
	_, err = m.StartMemory("alice", nil)
	assert.Error(t, err)
	_, err = m.StartBattle("alice", nil)
	assert.Error(t, err)
}
